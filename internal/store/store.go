// Package store persists small named values between crimp runs.
//
// It is a string-keyed, string-valued store with JSON (de)serialization on
// top: strings are stored verbatim, everything else is JSON-encoded. Reads
// that fail for any reason fall back to the caller's default; writes that
// fail are logged and otherwise ignored. Storage trouble must never surface
// as a hard failure.
package store

import (
	"encoding/json"
	"log"
	"os"

	"github.com/Sridharvn/crimp/internal/config"
)

// Well-known keys.
const (
	KeyInput   = "input"   // last scratch input text
	KeyOptions = "options" // JSON-encoded compression options
	KeyTheme   = "theme"   // display preference
)

// Store manages persisted values under the state directory.
type Store struct {
	paths *config.Paths
}

// New creates a store backed by the given paths.
func New(paths *config.Paths) *Store {
	return &Store{paths: paths}
}

// LoadString returns the stored value for key, or def if absent.
// A stored JSON string is decoded; anything else is returned verbatim.
func (s *Store) LoadString(key, def string) string {
	raw, ok := s.read(key)
	if !ok {
		return def
	}

	var decoded string
	if err := json.Unmarshal(raw, &decoded); err == nil {
		return decoded
	}
	// Not a JSON string - treat the raw bytes as the value.
	return string(raw)
}

// LoadJSON decodes the stored value for key into out.
// Returns false (leaving out untouched) if the key is absent or corrupted.
func (s *Store) LoadJSON(key string, out any) bool {
	raw, ok := s.read(key)
	if !ok {
		return false
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return false
	}
	return true
}

// SaveString writes a string value verbatim. One write per call, no batching.
func (s *Store) SaveString(key, value string) {
	s.write(key, []byte(value))
}

// SaveJSON writes a JSON-encoded value.
func (s *Store) SaveJSON(key string, value any) {
	data, err := json.Marshal(value)
	if err != nil {
		log.Printf("debug: failed to encode state %q: %v", key, err)
		return
	}
	s.write(key, data)
}

// Delete removes a stored value. Missing keys are not an error.
func (s *Store) Delete(key string) {
	if err := os.Remove(s.paths.StateFile(key)); err != nil && !os.IsNotExist(err) {
		log.Printf("debug: failed to delete state %q: %v", key, err)
	}
}

func (s *Store) read(key string) ([]byte, bool) {
	data, err := os.ReadFile(s.paths.StateFile(key))
	if err != nil {
		return nil, false
	}
	return data, true
}

func (s *Store) write(key string, data []byte) {
	if err := os.MkdirAll(s.paths.StateDir, 0755); err != nil {
		log.Printf("debug: failed to create state directory: %v", err)
		return
	}
	if err := os.WriteFile(s.paths.StateFile(key), data, config.DefaultFileMode); err != nil {
		log.Printf("debug: failed to write state %q: %v", key, err)
	}
}
