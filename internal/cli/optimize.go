package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Sridharvn/crimp/internal/codec"
	"github.com/Sridharvn/crimp/internal/config"
	"github.com/Sridharvn/crimp/internal/pipeline"
	"github.com/Sridharvn/crimp/internal/tokenizer"
)

type optimizeOptions struct {
	aggressive bool
	unsafe     bool
	restore    bool
	output     string
	copy       bool
	pretty     bool
}

// NewOptimizeCmd creates the optimize command.
func NewOptimizeCmd() *cobra.Command {
	opts := &optimizeOptions{}

	cmd := &cobra.Command{
		Use:   "optimize [file]",
		Short: "Compress a JSON document and show the savings",
		Long: `Compresses a JSON document into a compact envelope and shows byte and
token statistics.

Input comes from a file argument, piped stdin, or the scratch input persisted
by the last watch session. The optimized envelope is printed to stdout; stats
are shown when stdout is a terminal.`,
		Example: `  crimp optimize payload.json            # Optimize a file
  cat payload.json | crimp optimize      # Optimize stdin
  crimp optimize payload.json --unsafe   # Allow lossy shortcuts
  crimp optimize payload.json -o out.json --copy
  crimp optimize payload.json --restore  # Show the restored half instead`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOptimize(cmd, args, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.aggressive, "aggressive", false, "Trade encode time for smaller output")
	cmd.Flags().BoolVar(&opts.unsafe, "unsafe", false, "Allow lossy transforms (round trip not guaranteed)")
	cmd.Flags().BoolVar(&opts.restore, "restore", false, "Print the restored value instead of the optimized envelope")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Write the result to a file")
	cmd.Flags().BoolVar(&opts.copy, "copy", false, "Copy the result to the terminal clipboard (OSC 52)")
	cmd.Flags().BoolVar(&opts.pretty, "pretty", false, "Indent the printed JSON")

	return cmd
}

func runOptimize(cmd *cobra.Command, args []string, opts *optimizeOptions) error {
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

	switch snap.State {
	case pipeline.StateEmpty:
		printWarning("input is empty")
		return nil
	case pipeline.StateInvalid:
		return editorErrorToCommandError(snap.Err)
	}

	mode := pipeline.ModeOptimized
	if opts.restore {
		mode = pipeline.ModeRestored
	}
	payload, err := serializeResult(snap.Result, mode, opts.pretty)
	if err != nil {
		return fmt.Errorf("failed to serialize result: %w", err)
	}

	if opts.output != "" {
		if err := os.WriteFile(opts.output, payload, config.DefaultFileMode); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		printSuccess("Wrote %s", opts.output)
	} else {
		fmt.Println(string(payload))
	}

	if opts.copy {
		copyToClipboard(string(payload))
		printSuccess("Copied to clipboard")
	}

	if opts.output != "" || stdoutIsTerminal() {
		displayStats(p.StatsFor(snap))
		if codecOpts.Unsafe {
			fmt.Println()
			fmt.Println(dim("(unsafe mode - round trip is not guaranteed)"))
		}
	}

	return nil
}

// serializeResult renders the selected half of a valid result.
func serializeResult(result *pipeline.Result, mode pipeline.OutputMode, pretty bool) ([]byte, error) {
	value := result.Optimized
	if mode == pipeline.ModeRestored {
		value = result.Restored
	}
	if pretty {
		return json.MarshalIndent(value, "", "  ")
	}
	return json.Marshal(value)
}

// editorErrorToCommandError converts the pipeline's error banner into a
// command error for the standard error path.
func editorErrorToCommandError(e *pipeline.EditorError) error {
	if e == nil {
		return fmt.Errorf("recomputation failed")
	}
	if e.Line > 0 {
		return fmt.Errorf("line %d: %s", e.Line, e.Message)
	}
	return fmt.Errorf("%s", e.Message)
}

func stdoutIsTerminal() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return (fi.Mode() & os.ModeCharDevice) != 0
}
