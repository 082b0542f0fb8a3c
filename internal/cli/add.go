package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/roach88/rolodex/internal/record"
)

// AddOptions holds flags for the add command.
type AddOptions struct {
	*RootOptions
	Seed       string
	ID         int
	Gender     string
	Occupation string
}

// NewAddCommand creates the add command.
func NewAddCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &AddOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "add <name> <age>",
		Short: "Add a record and print it",
		Long: `Add one record to the store and print the result.

The record gets the next serial unless --id is given. With --seed, the
store is preloaded from a YAML file first; adding an id that is already
present fails with DUPLICATE_KEY and exit code 1.

Example:
  rolodex add Alice 30 --occupation engineer
  rolodex add Bob 25 --seed people.yaml --id 7`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAdd(opts, args, cmd)
		},
	}

	addSeedFlag(cmd, &opts.Seed)
	cmd.Flags().IntVar(&opts.ID, "id", 0, "explicit serial id (default: next in sequence)")
	cmd.Flags().StringVar(&opts.Gender, "gender", "", "gender attribute")
	cmd.Flags().StringVar(&opts.Occupation, "occupation", "", "occupation attribute")

	return cmd
}

func runAdd(opts *AddOptions, args []string, cmd *cobra.Command) error {
	age, err := strconv.Atoi(args[1])
	if err != nil || age < 0 {
		return NewExitError(ExitCommandError, "age must be a non-negative number")
	}

	sess, err := newSession(opts.Seed)
	if err != nil {
		return NewExitError(ExitCommandError, err.Error())
	}

	id := opts.ID
	if id == 0 {
		id = sess.serials.Next()
	} else {
		sess.serials.Observe(id)
	}

	attrs := map[string]string{}
	if opts.Gender != "" {
		attrs[record.AttrGender] = opts.Gender
	}
	if opts.Occupation != "" {
		attrs[record.AttrOccupation] = opts.Occupation
	}

	f := formatterFor(opts.RootOptions, cmd)
	r, err := record.New(id, args[0], age, attrs)
	if err != nil {
		return failOperation(f, "add", err)
	}
	if err := sess.store.Add(r); err != nil {
		return failOperation(f, "add", err)
	}

	if opts.Format == "json" {
		return f.Success(viewOf(r))
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Entry added with id %d.\n", id)
	renderRecord(cmd.OutOrStdout(), r)
	return nil
}
