package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Sridharvn/crimp/internal/cache"
	"github.com/Sridharvn/crimp/internal/config"
	"github.com/Sridharvn/crimp/internal/docs"
	"github.com/Sridharvn/crimp/internal/errors"
	"github.com/Sridharvn/crimp/internal/registry"
)

type docsOptions struct {
	repo    string
	refresh bool
	full    bool
	offline bool
}

// NewDocsCmd creates the docs command.
func NewDocsCmd() *cobra.Command {
	opts := &docsOptions{}

	cmd := &cobra.Command{
		Use:   "docs",
		Short: "Show documentation for the compression backend",
		Long: `Fetches and displays documentation for the compression library from its
GitHub repository. Content is cached locally; when GitHub is unreachable
the cached copy is shown, and built-in content is used as a last resort.`,
		Example: `  crimp docs
  crimp docs --full
  crimp docs --refresh
  crimp docs --repo klauspost/compress`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDocs(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.repo, "repo", "", "Documentation repo as owner/repo (default from config)")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "Drop the cached copy and re-fetch")
	cmd.Flags().BoolVar(&opts.full, "full", false, "Print the full README instead of the summary")
	cmd.Flags().BoolVar(&opts.offline, "offline", false, "Use cached or built-in content only, skip fetch")

	return cmd
}

func runDocs(cmd *cobra.Command, opts *docsOptions) error {
	cfg := config.LoadOrDefault()
	paths := config.NewPaths()

	var owner, repo string
	var err error
	if opts.repo != "" {
		owner, repo, err = config.ParseRepo(opts.repo)
	} else {
		owner, repo, err = cfg.DocsOwnerRepo()
	}
	if err != nil {
		return err
	}

	c := cache.New(paths)

	if opts.refresh {
		if err := c.Clear(owner, repo); err != nil {
			printWarning("failed to clear docs cache: %v", err)
		}
	}

	var fetcher docs.Fetcher
	if opts.offline {
		fetcher = offlineFetcher{}
	} else {
		client, err := registry.NewBestClient()
		if err != nil {
			// Anonymous access is enough for public README reads.
			client, err = registry.NewUnauthenticatedClient()
			if err != nil {
				return errors.RegistryAuthFailed(err)
			}
		}
		fetcher = client
	}

	svc := docs.NewService(fetcher, c, cfg.Cache.TTLDuration())
	doc := svc.Get(cmd.Context(), owner, repo)

	displayDocument(doc, owner, repo, opts.full)
	return nil
}

// offlineFetcher fails every fetch so the service falls through to cache
// and built-in content.
type offlineFetcher struct{}

func (offlineFetcher) FetchReadme(_ context.Context, owner, repo string) (*registry.ReadmeResult, error) {
	return nil, fmt.Errorf("offline: not fetching %s/%s", owner, repo)
}

func (offlineFetcher) FetchPackageInfo(_ context.Context, owner, repo string) (*registry.PackageInfo, error) {
	return nil, fmt.Errorf("offline: not fetching %s/%s", owner, repo)
}

func displayDocument(doc *docs.Document, owner, repo string, full bool) {
	fmt.Printf("%s %s\n", info(doc.Title), dim("("+owner+"/"+repo+")"))

	if doc.Version != "" || doc.License != "" {
		line := "  "
		if doc.Version != "" {
			line += doc.Version
		}
		if doc.License != "" {
			if doc.Version != "" {
				line += ", "
			}
			line += doc.License
		}
		fmt.Println(dim(line))
	}

	fmt.Println()
	if full {
		fmt.Println(doc.Body)
	} else {
		if doc.Description != "" {
			fmt.Println(doc.Description)
			fmt.Println()
		}
		if doc.Summary != "" {
			fmt.Println(doc.Summary)
		}
	}

	fmt.Println()
	switch doc.Source {
	case docs.SourceFresh:
		printSuccess("Fetched from github.com/%s/%s", owner, repo)
	case docs.SourceCached:
		if doc.Age != "" {
			printInfo("Source", "cached copy from "+doc.Age)
		} else {
			printInfo("Source", "cached copy")
		}
	case docs.SourceFallback:
		printWarning("GitHub unreachable, showing built-in summary")
	}
}
