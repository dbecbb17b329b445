package cli

import (
	"github.com/spf13/cobra"

	"github.com/Sridharvn/crimp/internal/codec"
	"github.com/Sridharvn/crimp/internal/pipeline"
	"github.com/Sridharvn/crimp/internal/tokenizer"
)

type verifyOptions struct {
	aggressive bool
	unsafe     bool
}

// NewVerifyCmd creates the verify command.
func NewVerifyCmd() *cobra.Command {
	opts := &verifyOptions{}

	cmd := &cobra.Command{
		Use:   "verify [file]",
		Short: "Check that optimize and restore round-trip losslessly",
		Long: `Optimizes the input, restores the result, and compares the restored value
against the original input using canonical JSON equality (independent of key
order and whitespace).

A mismatch is expected when --unsafe is set: unsafe mode permits lossy
transforms such as boolean-to-integer coercion.`,
		Example: `  crimp verify payload.json
  crimp verify payload.json --unsafe   # Demonstrates the lossy round trip`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVerify(args, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.aggressive, "aggressive", false, "Trade encode time for smaller output")
	cmd.Flags().BoolVar(&opts.unsafe, "unsafe", false, "Allow lossy transforms (round trip not guaranteed)")

	return cmd
}

func runVerify(args []string, opts *verifyOptions) error {
	text, err := readInput(args, newStore())
	if err != nil {
		return err
	}

	p := pipeline.New(codec.NewZstd(), tokenizer.New(), pipeline.WithOptions(codec.Options{
		Aggressive: opts.aggressive,
		Unsafe:     opts.unsafe,
	}))
	defer p.Close()

	p.SetInput(text)
	snap := p.RecomputeNow()
	if snap.State == pipeline.StateInvalid {
		return editorErrorToCommandError(snap.Err)
	}

	result, err := p.Verify()
	if err != nil {
		return err
	}

	if result.Match {
		printSuccess("Round trip verified: restored value matches the input")
		return nil
	}

	printWarning("Round trip mismatch: %s", result.Detail)
	if opts.unsafe {
		printInfo("Note", "unsafe mode permits lossy transforms; this is expected")
	}
	return nil
}
