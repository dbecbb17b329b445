package cli

import (
	"fmt"
	"strings"

	"github.com/muesli/termenv"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/Sridharvn/crimp/internal/pipeline"
	"github.com/Sridharvn/crimp/internal/tokenizer"
)

// num formats integers with thousands grouping for the stat cards.
var num = message.NewPrinter(language.English)

// displayStats renders the before/after stat block.
func displayStats(stats pipeline.Stats) {
	fmt.Println()
	fmt.Printf("  %s: %s bytes, %s tokens\n", dim("Input"),
		num.Sprintf("%d", stats.InputSize), num.Sprintf("%d", stats.InputTokens))
	fmt.Printf("  %s: %s bytes, %s tokens\n", dim("Output"),
		num.Sprintf("%d", stats.OutputSize), num.Sprintf("%d", stats.OutputTokens))

	savings := fmt.Sprintf("%s%% bytes, %s%% tokens", stats.SavingsPct, stats.TokenSavingsPct)
	if strings.HasPrefix(stats.SavingsPct, "-") || strings.HasPrefix(stats.TokenSavingsPct, "-") {
		fmt.Printf("  %s: %s %s\n", dim("Saved"), savings, warning("(output grew)"))
	} else {
		fmt.Printf("  %s: %s\n", dim("Saved"), success(savings))
	}
	fmt.Printf("  %s: %s\n", dim("Encoding"), tokenizer.EncodingName)
}

// displayEditorError renders the error banner for an invalid pipeline state.
func displayEditorError(err *pipeline.EditorError) {
	if err.Line > 0 {
		printError("line %d: %s", err.Line, err.Message)
		return
	}
	printError("%s", err.Message)
}

// copyToClipboard writes text to the terminal clipboard via OSC 52.
// Best-effort: terminals without OSC 52 support silently ignore it.
func copyToClipboard(text string) {
	termenv.Copy(text)
}

// resolveTheme maps the persisted preference to dark or light, asking the
// terminal when the preference is auto.
func resolveTheme(pref string) string {
	switch pref {
	case "dark", "light":
		return pref
	default:
		if termenv.HasDarkBackground() {
			return "dark"
		}
		return "light"
	}
}
