// Package docs supplies descriptive content about the compression backend.
//
// Content is fetched from the package's GitHub repository and cached locally
// with a TTL. Every failure path is non-fatal: a stale cache is better than
// nothing, and built-in fallback content is better than an error. The rest
// of the program treats this package as display-only.
package docs

import (
	"context"
	"log"
	"time"

	"github.com/Sridharvn/crimp/internal/cache"
	"github.com/Sridharvn/crimp/internal/registry"
)

// Source describes where a document came from.
type Source int

const (
	SourceFresh Source = iota
	SourceCached
	SourceFallback
)

// String returns the display name for a source.
func (s Source) String() string {
	switch s {
	case SourceFresh:
		return "fetched"
	case SourceCached:
		return "cached"
	case SourceFallback:
		return "offline fallback"
	default:
		return "unknown"
	}
}

// Document is the displayable result of a docs lookup.
type Document struct {
	Title       string
	Summary     string
	Body        string // full README markdown
	Description string
	License     string
	Version     string
	Source      Source
	Age         string // human-readable cache age, empty when fresh
}

// Fetcher is the registry surface the service needs. Satisfied by
// *registry.Client; stubbed in tests.
type Fetcher interface {
	FetchReadme(ctx context.Context, owner, repo string) (*registry.ReadmeResult, error)
	FetchPackageInfo(ctx context.Context, owner, repo string) (*registry.PackageInfo, error)
}

// Service resolves documentation with caching and fallback.
type Service struct {
	fetcher Fetcher
	cache   *cache.Cache
	ttl     time.Duration
}

// NewService creates a docs service. ttl bounds how long cached content is
// served without refetching.
func NewService(fetcher Fetcher, c *cache.Cache, ttl time.Duration) *Service {
	return &Service{fetcher: fetcher, cache: c, ttl: ttl}
}

// Get returns documentation for owner/repo. It never returns an error:
// fresh cache is served directly; otherwise a fetch is attempted, falling
// back to stale cache and finally to static content.
func (s *Service) Get(ctx context.Context, owner, repo string) *Document {
	content, meta, err := s.cache.Read(owner, repo)
	if err == nil && meta != nil && !meta.IsStale(s.ttl) {
		return documentFrom(content, meta, SourceCached)
	}

	if doc := s.fetch(ctx, owner, repo); doc != nil {
		return doc
	}

	// Fetch failed: serve stale cache when present.
	if err == nil && meta != nil {
		return documentFrom(content, meta, SourceCached)
	}

	return fallbackDocument(owner, repo)
}

// fetch pulls fresh content and updates the cache. Returns nil on failure.
func (s *Service) fetch(ctx context.Context, owner, repo string) *Document {
	readme, err := s.fetcher.FetchReadme(ctx, owner, repo)
	if err != nil {
		return nil
	}

	meta := &cache.Metadata{
		Owner:       owner,
		Repo:        repo,
		SHA:         readme.SHA,
		LastFetched: time.Now(),
	}

	// Package info enriches the display but its absence is not a failure.
	if info, err := s.fetcher.FetchPackageInfo(ctx, owner, repo); err == nil {
		meta.Description = info.Description
		meta.License = info.License
		meta.Version = info.Version
	}

	if err := s.cache.Write(owner, repo, readme.Content, meta); err != nil {
		log.Printf("debug: failed to write docs cache: %v", err)
	}

	return documentFrom(readme.Content, meta, SourceFresh)
}

func documentFrom(content string, meta *cache.Metadata, source Source) *Document {
	title, summary := Scrape(content)
	if title == "" {
		title = meta.RepoString()
	}

	doc := &Document{
		Title:       title,
		Summary:     summary,
		Body:        content,
		Description: meta.Description,
		License:     meta.License,
		Version:     meta.Version,
		Source:      source,
	}
	if source == SourceCached {
		doc.Age = meta.Age()
	}
	return doc
}
