package harness

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Scenario defines a conformance test scenario.
// Scenarios execute a sequence of store operations against an empty
// store and assert on per-step outcomes and the final state.
type Scenario struct {
	// Name uniquely identifies this scenario. Used as the golden file
	// name, so it should be filesystem-safe.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description,omitempty"`

	// Steps contains the operations to execute, in order.
	Steps []Step `yaml:"steps"`

	// Assertions validate the final store state.
	// Supported types: final_count, contains, order.
	Assertions []Assertion `yaml:"assertions,omitempty"`
}

// Step is a single store operation with an optional expectation.
type Step struct {
	// Op names the operation: add, find, find_by, update, delete, list.
	Op string `yaml:"op"`

	// Record carries the record for add.
	Record *RecordSpec `yaml:"record,omitempty"`

	// ID selects the target record for find, update, and delete.
	ID int `yaml:"id,omitempty"`

	// Changes carries the field→value change set for update.
	// Values are strings; "age" must parse as an integer.
	Changes map[string]string `yaml:"changes,omitempty"`

	// Field and Value drive find_by.
	Field string `yaml:"field,omitempty"`
	Value string `yaml:"value,omitempty"`

	// Expect validates the step outcome. Nil means the step must
	// simply not fail.
	Expect *Expect `yaml:"expect,omitempty"`
}

// RecordSpec is the YAML shape of a record.
type RecordSpec struct {
	ID    int               `yaml:"id"`
	Name  string            `yaml:"name"`
	Age   int               `yaml:"age"`
	Attrs map[string]string `yaml:"attrs,omitempty"`
}

// Expect specifies the expected outcome of a step.
type Expect struct {
	// Error is the expected store error code (e.g. "DUPLICATE_KEY").
	// Empty means the step must succeed.
	Error string `yaml:"error,omitempty"`

	// Found states whether find must locate a record.
	Found *bool `yaml:"found,omitempty"`

	// Count is the expected result size for find_by and list.
	Count *int `yaml:"count,omitempty"`

	// Record is a subset match on the single result of find: only the
	// named fields are compared, via the record's field accessor.
	Record map[string]string `yaml:"record,omitempty"`
}

// Assertion validates the final store state after all steps ran.
type Assertion struct {
	// Type is one of: final_count, contains, order.
	Type string `yaml:"type"`

	// Count is the expected store size (final_count).
	Count int `yaml:"count,omitempty"`

	// ID and Fields identify a record that must exist with the given
	// field values (contains). Fields uses subset-match semantics.
	ID     int               `yaml:"id,omitempty"`
	Fields map[string]string `yaml:"fields,omitempty"`

	// IDs is the exact expected listing order (order).
	IDs []int `yaml:"ids,omitempty"`
}

// LoadScenario reads and validates a scenario file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario: %w", err)
	}

	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("failed to parse scenario %s: %w", path, err)
	}

	if sc.Name == "" {
		return nil, fmt.Errorf("scenario %s: name is required", path)
	}
	if len(sc.Steps) == 0 {
		return nil, fmt.Errorf("scenario %s: at least one step is required", path)
	}
	for i, step := range sc.Steps {
		if err := validateStep(step); err != nil {
			return nil, fmt.Errorf("scenario %s: step %d: %w", path, i+1, err)
		}
	}
	return &sc, nil
}

func validateStep(step Step) error {
	switch step.Op {
	case "add":
		if step.Record == nil {
			return fmt.Errorf("add requires a record")
		}
	case "find", "delete":
		// id defaults to zero; a zero id is legal, nothing to check
	case "update":
		if len(step.Changes) == 0 {
			return fmt.Errorf("update requires changes")
		}
	case "find_by":
		if step.Field == "" {
			return fmt.Errorf("find_by requires a field")
		}
	case "list":
	default:
		return fmt.Errorf("unknown op %q", step.Op)
	}
	return nil
}
