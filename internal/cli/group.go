package cli

import (
	"github.com/spf13/cobra"

	"github.com/deadlyengineer/lazyseq/internal/pipeline"
)

// GroupOptions holds flags for the group command.
type GroupOptions struct {
	*RootOptions
	Field int
}

// NewGroupCommand creates the group command.
func NewGroupCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &GroupOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "group [flags] FILE",
		Short: "Count runs of consecutive lines sharing a field",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			inputs, closeInputs, err := openInputs(cmd.InOrStdin(), args)
			if err != nil {
				return err
			}
			defer closeInputs()

			return pipeline.CountRuns(cmd.Context(), opts.Field, cmd.OutOrStdout(), inputs[0])
		},
	}

	cmd.Flags().IntVarP(&opts.Field, "field", "f", 0, "0-based index of the whitespace-separated field to group by")

	return cmd
}
