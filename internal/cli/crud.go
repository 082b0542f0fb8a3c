package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/roach88/rolodex/internal/record"
	"github.com/roach88/rolodex/internal/store"
)

// session is the store a one-shot command operates on, plus a serial
// sequence advanced past every preloaded id. The store lives for the
// single invocation: a seed file is input only, nothing is written back.
type session struct {
	store   *store.Store
	serials *store.Sequence
}

// seedRecord is the YAML shape of one preloaded record.
type seedRecord struct {
	ID    int               `yaml:"id"`
	Name  string            `yaml:"name"`
	Age   int               `yaml:"age"`
	Attrs map[string]string `yaml:"attrs,omitempty"`
}

// newSession builds the store for a one-shot command, preloading it
// from the seed file when one is given.
func newSession(seedPath string) (*session, error) {
	sess := &session{store: store.New(), serials: store.NewSequence()}
	if seedPath == "" {
		return sess, nil
	}

	data, err := os.ReadFile(seedPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}
	var seeds []seedRecord
	if err := yaml.Unmarshal(data, &seeds); err != nil {
		return nil, fmt.Errorf("failed to parse seed file %s: %w", seedPath, err)
	}

	for i, sr := range seeds {
		r, err := record.New(sr.ID, sr.Name, sr.Age, sr.Attrs)
		if err != nil {
			return nil, fmt.Errorf("seed record %d: %w", i+1, err)
		}
		if err := sess.store.Add(r); err != nil {
			return nil, fmt.Errorf("seed record %d: %w", i+1, err)
		}
		// Keep generated serials clear of every seeded id.
		sess.serials.Observe(sr.ID)
	}
	return sess, nil
}

// recordView is the JSON projection of a record for CLI output.
type recordView struct {
	ID    int               `json:"id"`
	Name  string            `json:"name"`
	Age   int               `json:"age"`
	Attrs map[string]string `json:"attrs,omitempty"`
}

func viewOf(r *record.Record) recordView {
	return recordView{ID: r.ID, Name: r.Name, Age: r.Age, Attrs: r.Attrs}
}

func viewsOf(records []*record.Record) []recordView {
	out := make([]recordView, len(records))
	for i, r := range records {
		out[i] = viewOf(r)
	}
	return out
}

// formatterFor builds the output formatter for one command invocation.
func formatterFor(opts *RootOptions, cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:  opts.Format,
		Writer:  cmd.OutOrStdout(),
		Verbose: opts.Verbose,
	}
}

// operationErrorCode maps a failed store operation to the code shown
// to users.
func operationErrorCode(err error) string {
	var serr *store.Error
	if errors.As(err, &serr) {
		return string(serr.Code)
	}
	var verr *record.ValidationError
	if errors.As(err, &verr) {
		return "VALIDATION"
	}
	return "ERROR"
}

// failOperation renders the operation error and returns the exit-code
// carrier: failed store operations exit with ExitFailure.
func failOperation(f *OutputFormatter, op string, err error) error {
	if ferr := f.Error(operationErrorCode(err), err.Error(), nil); ferr != nil {
		return ferr
	}
	return NewExitError(ExitFailure, fmt.Sprintf("%s failed", op))
}

// addSeedFlag registers the shared --seed flag on a one-shot command.
func addSeedFlag(cmd *cobra.Command, seed *string) {
	cmd.Flags().StringVar(seed, "seed", "", "YAML file of records to preload")
}
