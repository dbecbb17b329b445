package cache

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/Sridharvn/crimp/internal/config"
	"github.com/Sridharvn/crimp/internal/errors"
)

// Cache manages locally cached documentation per repository.
type Cache struct {
	paths *config.Paths
}

// New creates a cache manager.
func New(paths *config.Paths) *Cache {
	return &Cache{paths: paths}
}

// Read returns cached README content and metadata, or error if not cached.
func (c *Cache) Read(owner, repo string) (content string, meta *Metadata, err error) {
	contentPath := c.paths.DocsFile(owner, repo)
	metaPath := c.paths.DocsMetadataFile(owner, repo)

	contentBytes, err := os.ReadFile(contentPath)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil, errors.CacheNotFound(owner + "/" + repo)
		}
		return "", nil, err
	}

	metaBytes, err := os.ReadFile(metaPath)
	if err != nil {
		// Content exists but metadata doesn't - create minimal metadata
		meta = &Metadata{
			Owner:       owner,
			Repo:        repo,
			LastFetched: time.Now(),
		}
	} else {
		meta = &Metadata{}
		if err := json.Unmarshal(metaBytes, meta); err != nil {
			// Invalid metadata - create minimal metadata
			meta = &Metadata{
				Owner:       owner,
				Repo:        repo,
				LastFetched: time.Now(),
			}
		}
	}

	return string(contentBytes), meta, nil
}

// Write stores README content and metadata.
func (c *Cache) Write(owner, repo, content string, meta *Metadata) error {
	if err := os.MkdirAll(c.paths.CacheDir, 0755); err != nil {
		return err
	}

	contentPath := c.paths.DocsFile(owner, repo)
	metaPath := c.paths.DocsMetadataFile(owner, repo)

	if meta.LastFetched.IsZero() {
		meta.LastFetched = time.Now()
	}
	meta.Owner = owner
	meta.Repo = repo

	if err := os.WriteFile(contentPath, []byte(content), config.DefaultFileMode); err != nil {
		return err
	}

	metaBytes, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(metaPath, metaBytes, config.DefaultFileMode)
}

// Exists checks if cached docs exist for a repo.
func (c *Cache) Exists(owner, repo string) bool {
	_, err := os.Stat(c.paths.DocsFile(owner, repo))
	return err == nil
}

// Clear removes cached docs for a repo.
// Returns nil even if files don't exist (idempotent operation).
func (c *Cache) Clear(owner, repo string) error {
	contentPath := c.paths.DocsFile(owner, repo)
	metaPath := c.paths.DocsMetadataFile(owner, repo)

	if err := os.Remove(contentPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove cached docs: %w", err)
	}
	if err := os.Remove(metaPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove cache metadata: %w", err)
	}
	return nil
}

// GetMetadata returns only the metadata without reading content.
func (c *Cache) GetMetadata(owner, repo string) (*Metadata, error) {
	metaPath := c.paths.DocsMetadataFile(owner, repo)

	metaBytes, err := os.ReadFile(metaPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.CacheNotFound(owner + "/" + repo)
		}
		return nil, err
	}

	meta := &Metadata{}
	if err := json.Unmarshal(metaBytes, meta); err != nil {
		return nil, err
	}

	return meta, nil
}
