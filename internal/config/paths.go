// Package config handles crimp configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Paths provides all crimp-related filesystem paths.
type Paths struct {
	ConfigDir  string // ~/.config/crimp
	CacheDir   string // ~/.cache/crimp
	StateDir   string // ~/.local/state/crimp
	ConfigFile string // ~/.config/crimp/config.yaml
}

// NewPaths creates Paths using ~/.config, ~/.cache and ~/.local/state.
// We use these paths explicitly for cross-platform consistency rather than
// platform-specific defaults (like ~/Library/Application Support on macOS).
func NewPaths() *Paths {
	home := os.Getenv("HOME")
	configDir := filepath.Join(home, ".config", "crimp")
	cacheDir := filepath.Join(home, ".cache", "crimp")
	stateDir := filepath.Join(home, ".local", "state", "crimp")

	return &Paths{
		ConfigDir:  configDir,
		CacheDir:   cacheDir,
		StateDir:   stateDir,
		ConfigFile: filepath.Join(configDir, "config.yaml"),
	}
}

// NewPathsWithOverrides allows overriding directories for testing.
func NewPathsWithOverrides(configDir, cacheDir, stateDir string) *Paths {
	return &Paths{
		ConfigDir:  configDir,
		CacheDir:   cacheDir,
		StateDir:   stateDir,
		ConfigFile: filepath.Join(configDir, "config.yaml"),
	}
}

// DocsFile returns the path for cached documentation content.
func (p *Paths) DocsFile(owner, repo string) string {
	return filepath.Join(p.CacheDir, fmt.Sprintf("%s-%s.md", owner, repo))
}

// DocsMetadataFile returns the path for docs cache metadata sidecar.
func (p *Paths) DocsMetadataFile(owner, repo string) string {
	return filepath.Join(p.CacheDir, fmt.Sprintf("%s-%s.meta.json", owner, repo))
}

// StateFile returns the path for a persisted value under the state dir.
func (p *Paths) StateFile(key string) string {
	return filepath.Join(p.StateDir, key+".val")
}

// ParseRepo splits an "owner/repo" string.
func ParseRepo(repo string) (owner, name string, err error) {
	repo = strings.TrimPrefix(repo, "github.com/")
	parts := strings.Split(repo, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("invalid repository format: %s", repo)
	}
	return parts[0], parts[1], nil
}
