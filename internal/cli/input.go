package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/Sridharvn/crimp/internal/config"
	"github.com/Sridharvn/crimp/internal/errors"
	"github.com/Sridharvn/crimp/internal/store"
)

// readInput resolves the JSON input for a one-shot command: an explicit file
// argument wins, then piped stdin, then the persisted scratch input from the
// last session.
func readInput(args []string, st *store.Store) (string, error) {
	if len(args) > 0 {
		data, err := os.ReadFile(args[0])
		if err != nil {
			if os.IsNotExist(err) {
				return "", errors.InputNotFound(args[0])
			}
			return "", fmt.Errorf("failed to read %s: %w", args[0], err)
		}
		return string(data), nil
	}

	if stdinIsPiped() {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), nil
	}

	if scratch := st.LoadString(store.KeyInput, ""); scratch != "" {
		return scratch, nil
	}

	return "", errors.New(errors.ErrInputNotFound, "no input",
		"Pass a JSON file path, pipe JSON on stdin, or run `crimp watch` first")
}

func stdinIsPiped() bool {
	fi, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (fi.Mode() & os.ModeCharDevice) == 0
}

// newStore builds the persistent value store at the default state location.
func newStore() *store.Store {
	return store.New(config.NewPaths())
}
