package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

// DeleteOptions holds flags for the delete command.
type DeleteOptions struct {
	*RootOptions
	Seed string
}

// NewDeleteCommand creates the delete command.
func NewDeleteCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &DeleteOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a record by serial id",
		Long: `Delete the record with the given serial id.

Exits 1 with NOT_FOUND when no record has the id.

Example:
  rolodex delete 2 --seed people.yaml`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDelete(opts, args[0], cmd)
		},
	}

	addSeedFlag(cmd, &opts.Seed)

	return cmd
}

func runDelete(opts *DeleteOptions, idArg string, cmd *cobra.Command) error {
	id, err := strconv.Atoi(idArg)
	if err != nil {
		return NewExitError(ExitCommandError, "id must be a number")
	}

	sess, err := newSession(opts.Seed)
	if err != nil {
		return NewExitError(ExitCommandError, err.Error())
	}

	f := formatterFor(opts.RootOptions, cmd)
	if err := sess.store.Delete(id); err != nil {
		return failOperation(f, "delete", err)
	}

	if opts.Format == "json" {
		return f.Success(struct {
			Deleted int `json:"deleted"`
		}{id})
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Entry deleted.")
	return nil
}
