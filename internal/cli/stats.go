package cli

import (
	"github.com/spf13/cobra"

	"github.com/Sridharvn/crimp/internal/codec"
	"github.com/Sridharvn/crimp/internal/config"
	"github.com/Sridharvn/crimp/internal/pipeline"
	"github.com/Sridharvn/crimp/internal/tokenizer"
)

type statsOptions struct {
	aggressive bool
	unsafe     bool
}

// NewStatsCmd creates the stats command.
func NewStatsCmd() *cobra.Command {
	opts := &statsOptions{}

	cmd := &cobra.Command{
		Use:   "stats [file]",
		Short: "Show byte and token statistics without printing the payload",
		Example: `  crimp stats payload.json
  cat payload.json | crimp stats --aggressive`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStats(cmd, args, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.aggressive, "aggressive", false, "Trade encode time for smaller output")
	cmd.Flags().BoolVar(&opts.unsafe, "unsafe", false, "Allow lossy transforms (round trip not guaranteed)")

	return cmd
}

func runStats(cmd *cobra.Command, args []string, opts *statsOptions) error {
	cfg := config.LoadOrDefault()
	text, err := readInput(args, newStore())
	if err != nil {
		return err
	}

	codecOpts := codec.Options{
		Aggressive: cfg.Optimize.Aggressive,
		Unsafe:     cfg.Optimize.Unsafe,
	}
	if cmd.Flags().Changed("aggressive") {
		codecOpts.Aggressive = opts.aggressive
	}
	if cmd.Flags().Changed("unsafe") {
		codecOpts.Unsafe = opts.unsafe
	}

	p := pipeline.New(codec.NewZstd(), tokenizer.New(), pipeline.WithOptions(codecOpts))
	defer p.Close()

	p.SetInput(text)
	snap := p.RecomputeNow()
	if snap.State == pipeline.StateInvalid {
		return editorErrorToCommandError(snap.Err)
	}

	displayStats(p.StatsFor(snap))
	return nil
}
