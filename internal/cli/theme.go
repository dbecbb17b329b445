package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Sridharvn/crimp/internal/config"
	"github.com/Sridharvn/crimp/internal/store"
)

// NewThemeCmd creates the theme command.
func NewThemeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "theme [dark|light|auto]",
		Short: "Show or set the display theme",
		Long: `Shows the persisted theme preference, or sets it when an argument is
given. With auto, the theme follows the terminal's background color.`,
		Example: `  crimp theme
  crimp theme dark
  crimp theme auto`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTheme(args)
		},
	}
	return cmd
}

func runTheme(args []string) error {
	cfg := config.LoadOrDefault()
	st := newStore()

	if len(args) == 0 {
		pref := st.LoadString(store.KeyTheme, cfg.Theme)
		printInfo("Preference", pref)
		printInfo("Resolved", resolveTheme(pref))
		return nil
	}

	pref := args[0]
	switch pref {
	case "dark", "light", "auto":
	default:
		return fmt.Errorf("invalid theme %q: must be dark, light, or auto", pref)
	}

	st.SaveString(store.KeyTheme, pref)
	printSuccess("Theme set to %s (resolves to %s)", pref, resolveTheme(pref))
	return nil
}
