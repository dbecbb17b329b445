package cli

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/Sridharvn/crimp/internal/codec"
	"github.com/Sridharvn/crimp/internal/config"
	"github.com/Sridharvn/crimp/internal/pipeline"
	"github.com/Sridharvn/crimp/internal/tokenizer"
)

type watchOptions struct {
	aggressive bool
	unsafe     bool
}

// NewWatchCmd creates the watch command.
func NewWatchCmd() *cobra.Command {
	opts := &watchOptions{}

	cmd := &cobra.Command{
		Use:   "watch <file>",
		Short: "Live-preview compression of a JSON file while you edit it",
		Long: `Watches a JSON file and recomputes the optimized output whenever it
changes. Recomputation is debounced: rapid saves within the quiet window
coalesce into a single run using the latest content.

The input text and options are persisted, so a later ` + "`crimp optimize`" + `
with no arguments picks up where the watch session left off. Stop with
Ctrl-C.`,
		Example: `  crimp watch payload.json
  crimp watch payload.json --aggressive`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd, args[0], opts)
		},
	}

	cmd.Flags().BoolVar(&opts.aggressive, "aggressive", false, "Trade encode time for smaller output")
	cmd.Flags().BoolVar(&opts.unsafe, "unsafe", false, "Allow lossy transforms (round trip not guaranteed)")

	return cmd
}

func runWatch(cmd *cobra.Command, path string, opts *watchOptions) error {
	cfg := config.LoadOrDefault()
	st := newStore()

	absPath, err := filepath.Abs(path)
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

	p := pipeline.New(codec.NewZstd(), tokenizer.New(),
		pipeline.WithStore(st),
		pipeline.WithDebounce(cfg.DebounceDuration()),
	)
	defer p.Close()
	p.SetOptions(codecOpts)

	renderer := &watchRenderer{p: p}
	p.Subscribe(renderer.render)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the directory: editors typically replace files on save, which
	// drops inode-level watches.
	if err := watcher.Add(filepath.Dir(absPath)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(absPath), err)
	}

	feed := func() {
		data, err := os.ReadFile(absPath)
		if err != nil {
			// File momentarily absent during an editor's rename dance.
			return
		}
		p.SetInput(string(data))
	}

	fmt.Printf("Watching %s (quiet window %s). Ctrl-C to stop.\n",
		info(absPath), cfg.DebounceDuration())
	feed()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sig)

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Name != absPath {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
				feed()
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			printWarning("watcher error: %v", err)
		case <-sig:
			fmt.Println()
			fmt.Println(dim("Stopped."))
			return nil
		}
	}
}

// watchRenderer prints one status line per settled recomputation.
type watchRenderer struct {
	p *pipeline.Pipeline
}

func (r *watchRenderer) render(snap pipeline.Snapshot) {
	stamp := dim(time.Now().Format("15:04:05"))

	switch snap.State {
	case pipeline.StateEmpty:
		fmt.Printf("%s %s %s\n", stamp, warningIcon, dim("input is empty"))
		return
	case pipeline.StateInvalid:
		if snap.Err.Line > 0 {
			fmt.Printf("%s %s %s\n", stamp, errorIcon, danger(fmt.Sprintf("line %d: %s", snap.Err.Line, snap.Err.Message)))
		} else {
			fmt.Printf("%s %s %s\n", stamp, errorIcon, danger(snap.Err.Message))
		}
		return
	}

	stats := r.p.StatsFor(snap)
	fmt.Printf("%s %s %s tokens in, %s tokens out %s\n",
		stamp, successIcon,
		num.Sprintf("%d", stats.InputTokens), num.Sprintf("%d", stats.OutputTokens),
		success(fmt.Sprintf("(%s%% saved)", stats.TokenSavingsPct)))
}
