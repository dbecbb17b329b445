package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Sridharvn/crimp/internal/config"
)

type initOptions struct {
	force bool
}

// NewInitCmd creates the init command.
func NewInitCmd() *cobra.Command {
	opts := &initOptions{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create the crimp configuration file",
		Long: `Interactive setup for crimp.

Writes a configuration file with the documentation repo, cache TTL and
default optimize options. Run with --force to overwrite an existing file
without prompting.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(opts)
		},
	}

	cmd.Flags().BoolVar(&opts.force, "force", false, "Overwrite an existing config without prompting")

	return cmd
}

func runInit(opts *initOptions) error {
	paths := config.NewPaths()

	if config.Exists() && !opts.force {
		fmt.Println("Crimp is already configured.")
		fmt.Printf("Config file: %s\n\n", paths.ConfigFile)

		if !promptYesNo("Do you want to reconfigure?") {
			return nil
		}
		fmt.Println()
	}

	cfg := config.NewDefaultConfig()

	repo := promptString(fmt.Sprintf("Documentation repo (default: %s):", config.DefaultDocsRepo))
	if repo != "" {
		if _, _, err := config.ParseRepo(repo); err != nil {
			return err
		}
		cfg.Docs.Repo = repo
	}

	if promptYesNo("Enable aggressive compression by default?") {
		cfg.Optimize.Aggressive = true
	}

	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	printSuccess("Config saved to %s", paths.ConfigFile)

	fmt.Println()
	fmt.Println("Next steps:")
	fmt.Printf("  %s   - compress a JSON file\n", info("crimp optimize <file>"))
	fmt.Printf("  %s      - live-preview while editing\n", info("crimp watch <file>"))
	fmt.Printf("  %s             - read about the backend\n", info("crimp docs"))

	return nil
}

// promptYesNo asks a yes/no question and returns true for yes.
func promptYesNo(question string) bool {
	fmt.Printf("%s [y/N] ", question)
	reader := bufio.NewReader(os.Stdin)
	answer, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}

// promptString asks for a line of input and returns the trimmed answer.
func promptString(question string) string {
	fmt.Printf("%s ", question)
	reader := bufio.NewReader(os.Stdin)
	answer, err := reader.ReadString('\n')
	if err != nil {
		return ""
	}
	return strings.TrimSpace(answer)
}
