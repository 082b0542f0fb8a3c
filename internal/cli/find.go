package cli

import (
	"github.com/spf13/cobra"
)

// FindOptions holds flags for the find command.
type FindOptions struct {
	*RootOptions
	Seed string
}

// NewFindCommand creates the find command.
func NewFindCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &FindOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "find <field> <value>",
		Short: "Search records by attribute",
		Long: `Search records by a named field, scanning in insertion order.

Matching is case-insensitive. An empty result is a normal outcome and
exits 0.

Example:
  rolodex find age 30 --seed people.yaml
  rolodex find occupation engineer --seed people.yaml`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFind(opts, args[0], args[1], cmd)
		},
	}

	addSeedFlag(cmd, &opts.Seed)

	return cmd
}

func runFind(opts *FindOptions, field, value string, cmd *cobra.Command) error {
	sess, err := newSession(opts.Seed)
	if err != nil {
		return NewExitError(ExitCommandError, err.Error())
	}

	matches := sess.store.FindByAttribute(field, value)

	if opts.Format == "json" {
		f := formatterFor(opts.RootOptions, cmd)
		return f.Success(viewsOf(matches))
	}
	renderRecords(cmd.OutOrStdout(), matches)
	return nil
}
