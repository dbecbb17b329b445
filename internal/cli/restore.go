package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Sridharvn/crimp/internal/codec"
	"github.com/Sridharvn/crimp/internal/config"
)

type restoreOptions struct {
	output string
	copy   bool
	pretty bool
}

// NewRestoreCmd creates the restore command.
func NewRestoreCmd() *cobra.Command {
	opts := &restoreOptions{}

	cmd := &cobra.Command{
		Use:   "restore [file]",
		Short: "Restore an optimized envelope back into the original JSON",
		Example: `  crimp restore out.json
  cat out.json | crimp restore --pretty`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRestore(args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Write the result to a file")
	cmd.Flags().BoolVar(&opts.copy, "copy", false, "Copy the result to the terminal clipboard (OSC 52)")
	cmd.Flags().BoolVar(&opts.pretty, "pretty", true, "Indent the printed JSON")

	return cmd
}

func runRestore(args []string, opts *restoreOptions) error {
	text, err := readInput(args, newStore())
	if err != nil {
		return err
	}

	var value any
	if err := json.Unmarshal([]byte(text), &value); err != nil {
		return fmt.Errorf("input is not valid JSON: %w", err)
	}

	restored, err := codec.NewZstd().Restore(value)
	if err != nil {
		return err
	}

	var payload []byte
	if opts.pretty {
		payload, err = json.MarshalIndent(restored, "", "  ")
	} else {
		payload, err = json.Marshal(restored)
	}
	if err != nil {
		return fmt.Errorf("failed to serialize restored value: %w", err)
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

	return nil
}
