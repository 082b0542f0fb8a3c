package cli

import (
	"github.com/spf13/cobra"
)

// ListOptions holds flags for the list command.
type ListOptions struct {
	*RootOptions
	Seed string
}

// NewListCommand creates the list command.
func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ListOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all records in insertion order",
		Long: `List every record in the store, in insertion order.

Example:
  rolodex list --seed people.yaml
  rolodex list --seed people.yaml --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(opts, cmd)
		},
	}

	addSeedFlag(cmd, &opts.Seed)

	return cmd
}

func runList(opts *ListOptions, cmd *cobra.Command) error {
	sess, err := newSession(opts.Seed)
	if err != nil {
		return NewExitError(ExitCommandError, err.Error())
	}

	records := sess.store.List()
	if opts.Format == "json" {
		f := formatterFor(opts.RootOptions, cmd)
		return f.Success(viewsOf(records))
	}
	renderRecords(cmd.OutOrStdout(), records)
	return nil
}
