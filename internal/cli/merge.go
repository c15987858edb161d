package cli

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/deadlyengineer/lazyseq/internal/pipeline"
)

// MergeOptions holds flags for the merge command.
type MergeOptions struct {
	*RootOptions
	Config string
	Prefix bool
}

// NewMergeCommand creates the merge command.
func NewMergeCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &MergeOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "merge [flags] FILE...",
		Short: "Merge lines from several inputs by arrival",
		Long: `Merge lines from several inputs in the order they become available,
then apply the stages of a YAML pipeline.

Use - to read from stdin.

Example:
  seqcat merge --config pipeline.yaml access.log error.log
  tail -f app.log | seqcat merge --prefix - other.log`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMerge(cmd, opts, args)
		},
	}

	cmd.Flags().StringVarP(&opts.Config, "config", "c", "", "path to the YAML pipeline")
	cmd.Flags().BoolVar(&opts.Prefix, "prefix", false, "tag lines with the index of their input")

	return cmd
}

func runMerge(cmd *cobra.Command, opts *MergeOptions, names []string) error {
	cfg := &pipeline.Config{}

	if opts.Config != "" {
		loaded, err := pipeline.LoadFile(opts.Config)
		if err != nil {
			return err
		}

		cfg = loaded
	}

	if opts.Prefix {
		cfg.Prefix = true
	}

	inputs, closeInputs, err := openInputs(cmd.InOrStdin(), names)
	if err != nil {
		return err
	}
	defer closeInputs()

	slog.Debug("merging inputs", "inputs", len(inputs), "stages", len(cfg.Stages))

	return pipeline.Run(cmd.Context(), cfg, cmd.OutOrStdout(), inputs...)
}
