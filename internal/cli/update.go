package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/roach88/rolodex/internal/store"
)

// UpdateOptions holds flags for the update command.
type UpdateOptions struct {
	*RootOptions
	Seed       string
	Name       string
	Age        string
	Gender     string
	Occupation string
}

// NewUpdateCommand creates the update command.
func NewUpdateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &UpdateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update fields of a record",
		Long: `Update fields of the record with the given serial id.

Only the flags that are set change the record; everything else is kept.
The id itself is immutable. Exits 1 with NOT_FOUND when no record has
the id.

Example:
  rolodex update 1 --age 31 --seed people.yaml`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUpdate(opts, args[0], cmd)
		},
	}

	addSeedFlag(cmd, &opts.Seed)
	cmd.Flags().StringVar(&opts.Name, "name", "", "new name")
	cmd.Flags().StringVar(&opts.Age, "age", "", "new age")
	cmd.Flags().StringVar(&opts.Gender, "gender", "", "new gender attribute")
	cmd.Flags().StringVar(&opts.Occupation, "occupation", "", "new occupation attribute")

	return cmd
}

func runUpdate(opts *UpdateOptions, idArg string, cmd *cobra.Command) error {
	id, err := strconv.Atoi(idArg)
	if err != nil {
		return NewExitError(ExitCommandError, "id must be a number")
	}

	fields := map[string]string{}
	if cmd.Flags().Changed("name") {
		fields["name"] = opts.Name
	}
	if cmd.Flags().Changed("age") {
		fields["age"] = opts.Age
	}
	if cmd.Flags().Changed("gender") {
		fields["gender"] = opts.Gender
	}
	if cmd.Flags().Changed("occupation") {
		fields["occupation"] = opts.Occupation
	}

	changes, err := store.ParseChanges(fields)
	if err != nil {
		return NewExitError(ExitCommandError, err.Error())
	}
	if changes.IsZero() {
		return NewExitError(ExitCommandError, "nothing to update: no fields given")
	}

	sess, err := newSession(opts.Seed)
	if err != nil {
		return NewExitError(ExitCommandError, err.Error())
	}

	f := formatterFor(opts.RootOptions, cmd)
	if err := sess.store.Update(id, changes); err != nil {
		return failOperation(f, "update", err)
	}

	r, _ := sess.store.Find(id)
	if opts.Format == "json" {
		return f.Success(viewOf(r))
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Entry updated.")
	renderRecord(cmd.OutOrStdout(), r)
	return nil
}
