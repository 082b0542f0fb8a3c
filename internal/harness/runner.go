package harness

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/roach88/rolodex/internal/record"
	"github.com/roach88/rolodex/internal/store"
)

// Step outcomes recorded in the trace. Errors carry the code in the
// event's Error field alongside OutcomeError.
const (
	OutcomeOK       = "ok"
	OutcomeNotFound = "not_found" // find on a missing id: normal, not an error
	OutcomeError    = "error"
)

// TraceEvent records one executed step and its observable outcome.
// Field values are strings so traces serialize deterministically.
type TraceEvent struct {
	Seq     int               `json:"seq"`
	Op      string            `json:"op"`
	Args    map[string]string `json:"args,omitempty"`
	Outcome string            `json:"outcome"`
	Error   string            `json:"error,omitempty"`
	Records []RecordView      `json:"records,omitempty"`
}

// RecordView is the serializable projection of a record.
type RecordView struct {
	ID    int               `json:"id"`
	Name  string            `json:"name"`
	Age   int               `json:"age"`
	Attrs map[string]string `json:"attrs,omitempty"`
}

// TraceSnapshot captures the full scenario execution for golden
// comparison: every event plus the final listing.
type TraceSnapshot struct {
	Scenario   string       `json:"scenario"`
	Trace      []TraceEvent `json:"trace"`
	FinalState []RecordView `json:"final_state"`
}

// RunResult holds the outcome of executing a scenario.
type RunResult struct {
	Trace      []TraceEvent
	FinalState []RecordView

	// Violations collects expectation and assertion failures. The
	// scenario executed to completion; these are verdicts, not
	// execution errors.
	Violations []error
}

// Passed reports whether every expectation and assertion held.
func (r *RunResult) Passed() bool {
	return len(r.Violations) == 0
}

// Snapshot builds the golden-comparable form of this result.
func (r *RunResult) Snapshot(scenarioName string) TraceSnapshot {
	return TraceSnapshot{
		Scenario:   scenarioName,
		Trace:      r.Trace,
		FinalState: r.FinalState,
	}
}

// AssertionError is returned when a step expectation or a final-state
// assertion fails.
type AssertionError struct {
	Step     int    // 1-based step number, 0 for final-state assertions
	Type     string // expectation/assertion type
	Expected string
	Actual   string
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder
	if e.Step > 0 {
		fmt.Fprintf(&buf, "step %d: ", e.Step)
	}
	fmt.Fprintf(&buf, "assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s", e.Actual)
	return buf.String()
}

// Run executes the scenario against a fresh store. The returned error
// reports execution problems (malformed steps); expectation failures
// land in RunResult.Violations.
func Run(sc *Scenario) (*RunResult, error) {
	s := store.New()
	result := &RunResult{}

	for i, step := range sc.Steps {
		event, err := execute(s, i+1, step)
		if err != nil {
			return nil, fmt.Errorf("step %d (%s): %w", i+1, step.Op, err)
		}
		result.Trace = append(result.Trace, event)

		if v := checkExpect(i+1, step, event); v != nil {
			result.Violations = append(result.Violations, v)
		}
	}

	result.FinalState = viewRecords(s.List())
	for _, a := range sc.Assertions {
		if v := checkAssertion(s, a); v != nil {
			result.Violations = append(result.Violations, v)
		}
	}
	return result, nil
}

func execute(s *store.Store, seq int, step Step) (TraceEvent, error) {
	event := TraceEvent{Seq: seq, Op: step.Op, Outcome: OutcomeOK}

	switch step.Op {
	case "add":
		event.Args = map[string]string{
			"id":   strconv.Itoa(step.Record.ID),
			"name": step.Record.Name,
			"age":  strconv.Itoa(step.Record.Age),
		}
		r, err := record.New(step.Record.ID, step.Record.Name, step.Record.Age, step.Record.Attrs)
		if err != nil {
			markError(&event, err)
			return event, nil
		}
		if err := s.Add(r); err != nil {
			markError(&event, err)
		}

	case "find":
		event.Args = map[string]string{"id": strconv.Itoa(step.ID)}
		r, ok := s.Find(step.ID)
		if !ok {
			event.Outcome = OutcomeNotFound
		} else {
			event.Records = viewRecords([]*record.Record{r})
		}

	case "find_by":
		event.Args = map[string]string{"field": step.Field, "value": step.Value}
		event.Records = viewRecords(s.FindByAttribute(step.Field, step.Value))

	case "update":
		event.Args = map[string]string{"id": strconv.Itoa(step.ID)}
		for k, v := range step.Changes {
			event.Args[k] = v
		}
		changes, err := store.ParseChanges(step.Changes)
		if err != nil {
			markError(&event, err)
			return event, nil
		}
		if err := s.Update(step.ID, changes); err != nil {
			markError(&event, err)
		}

	case "delete":
		event.Args = map[string]string{"id": strconv.Itoa(step.ID)}
		if err := s.Delete(step.ID); err != nil {
			markError(&event, err)
		}

	case "list":
		event.Records = viewRecords(s.List())

	default:
		return event, fmt.Errorf("unknown op %q", step.Op)
	}
	return event, nil
}

// markError stamps the event with the error's code. Store errors carry
// their own code; validation errors map to VALIDATION.
func markError(event *TraceEvent, err error) {
	event.Outcome = OutcomeError

	var serr *store.Error
	if errors.As(err, &serr) {
		event.Error = string(serr.Code)
		return
	}
	var verr *record.ValidationError
	if errors.As(err, &verr) {
		event.Error = "VALIDATION"
		return
	}
	event.Error = err.Error()
}

func viewRecords(records []*record.Record) []RecordView {
	if len(records) == 0 {
		return nil
	}
	out := make([]RecordView, len(records))
	for i, r := range records {
		out[i] = RecordView{ID: r.ID, Name: r.Name, Age: r.Age, Attrs: r.Attrs}
	}
	return out
}

func checkExpect(seq int, step Step, event TraceEvent) error {
	if step.Expect == nil {
		if event.Outcome == OutcomeError {
			return &AssertionError{
				Step:     seq,
				Type:     "step_success",
				Expected: "operation succeeds",
				Actual:   fmt.Sprintf("error %s", event.Error),
			}
		}
		return nil
	}
	exp := step.Expect

	if exp.Error != "" {
		if event.Error != exp.Error {
			return &AssertionError{
				Step:     seq,
				Type:     "expected_error",
				Expected: exp.Error,
				Actual:   fmt.Sprintf("outcome=%s error=%s", event.Outcome, event.Error),
			}
		}
		return nil
	}
	if event.Outcome == OutcomeError {
		return &AssertionError{
			Step:     seq,
			Type:     "step_success",
			Expected: "operation succeeds",
			Actual:   fmt.Sprintf("error %s", event.Error),
		}
	}

	if exp.Found != nil {
		found := event.Outcome != OutcomeNotFound && len(event.Records) > 0
		if found != *exp.Found {
			return &AssertionError{
				Step:     seq,
				Type:     "found",
				Expected: fmt.Sprintf("found=%v", *exp.Found),
				Actual:   fmt.Sprintf("found=%v", found),
			}
		}
	}

	if exp.Count != nil && len(event.Records) != *exp.Count {
		return &AssertionError{
			Step:     seq,
			Type:     "count",
			Expected: fmt.Sprintf("%d records", *exp.Count),
			Actual:   fmt.Sprintf("%d records", len(event.Records)),
		}
	}

	if len(exp.Record) > 0 {
		if len(event.Records) != 1 {
			return &AssertionError{
				Step:     seq,
				Type:     "record_match",
				Expected: "exactly one record",
				Actual:   fmt.Sprintf("%d records", len(event.Records)),
			}
		}
		if v := matchFields(event.Records[0], exp.Record); v != "" {
			return &AssertionError{
				Step:     seq,
				Type:     "record_match",
				Expected: fmt.Sprintf("fields %v", exp.Record),
				Actual:   v,
			}
		}
	}
	return nil
}

func checkAssertion(s *store.Store, a Assertion) error {
	switch a.Type {
	case "final_count":
		if s.Len() != a.Count {
			return &AssertionError{
				Type:     "final_count",
				Expected: fmt.Sprintf("%d records", a.Count),
				Actual:   fmt.Sprintf("%d records", s.Len()),
			}
		}

	case "contains":
		r, ok := s.Find(a.ID)
		if !ok {
			return &AssertionError{
				Type:     "contains",
				Expected: fmt.Sprintf("record %d present", a.ID),
				Actual:   "not found",
			}
		}
		view := RecordView{ID: r.ID, Name: r.Name, Age: r.Age, Attrs: r.Attrs}
		if v := matchFields(view, a.Fields); v != "" {
			return &AssertionError{
				Type:     "contains",
				Expected: fmt.Sprintf("record %d with fields %v", a.ID, a.Fields),
				Actual:   v,
			}
		}

	case "order":
		listed := s.List()
		var ids []int
		for _, r := range listed {
			ids = append(ids, r.ID)
		}
		if !equalInts(ids, a.IDs) {
			return &AssertionError{
				Type:     "order",
				Expected: fmt.Sprintf("listing order %v", a.IDs),
				Actual:   fmt.Sprintf("listing order %v", ids),
			}
		}

	default:
		return &AssertionError{
			Type:     a.Type,
			Expected: "a known assertion type (final_count, contains, order)",
			Actual:   fmt.Sprintf("unknown type %q", a.Type),
		}
	}
	return nil
}

// matchFields performs a subset comparison of expected field values
// against a record view. Returns "" on match, otherwise a description
// of the first mismatch.
func matchFields(view RecordView, fields map[string]string) string {
	for k, want := range fields {
		var got string
		switch k {
		case "id":
			got = strconv.Itoa(view.ID)
		case "name":
			got = view.Name
		case "age":
			got = strconv.Itoa(view.Age)
		default:
			got = view.Attrs[k]
		}
		if got != want {
			return fmt.Sprintf("field %q is %q, want %q", k, got, want)
		}
	}
	return ""
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
