package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

// GetOptions holds flags for the get command.
type GetOptions struct {
	*RootOptions
	Seed string
}

// NewGetCommand creates the get command.
func NewGetCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &GetOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "get <id>",
		Short: "Look up a record by serial id",
		Long: `Look up one record by its serial id via the index.

Exits 1 with NOT_FOUND when no record has the id.

Example:
  rolodex get 1 --seed people.yaml`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGet(opts, args[0], cmd)
		},
	}

	addSeedFlag(cmd, &opts.Seed)

	return cmd
}

func runGet(opts *GetOptions, idArg string, cmd *cobra.Command) error {
	id, err := strconv.Atoi(idArg)
	if err != nil {
		return NewExitError(ExitCommandError, "id must be a number")
	}

	sess, err := newSession(opts.Seed)
	if err != nil {
		return NewExitError(ExitCommandError, err.Error())
	}

	f := formatterFor(opts.RootOptions, cmd)
	r, ok := sess.store.Find(id)
	if !ok {
		if ferr := f.Error("NOT_FOUND", fmt.Sprintf("no record with id %d", id), nil); ferr != nil {
			return ferr
		}
		return NewExitError(ExitFailure, "get failed")
	}

	if opts.Format == "json" {
		return f.Success(viewOf(r))
	}
	renderRecord(cmd.OutOrStdout(), r)
	return nil
}
