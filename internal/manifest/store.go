// Package manifest persists and validates the section manifest.
package manifest

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hyperjump/shiori/internal/models"
)

// ErrNotBuilt is returned by Load when no manifest file exists yet. Callers
// should instruct the user to run a build.
var ErrNotBuilt = errors.New("manifest not built")

// ErrMalformed is returned by Load when the manifest file exists but cannot
// be decoded. Rebuilding is the recovery action.
var ErrMalformed = errors.New("manifest malformed")

// Store reads and writes the manifest file at a fixed path.
type Store struct {
	path string
}

// NewStore creates a store for the manifest at path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the manifest file path.
func (s *Store) Path() string {
	return s.path
}

// Load reads and decodes the manifest. A missing file yields ErrNotBuilt;
// an undecodable file yields ErrMalformed.
func (s *Store) Load() (models.Manifest, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotBuilt, s.path)
		}
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	var m models.Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if m == nil {
		return nil, fmt.Errorf("%w: null document set", ErrMalformed)
	}
	return m, nil
}

// Save writes the manifest, creating parent directories as needed. An empty
// document set is valid and serializes to an empty object.
func (s *Store) Save(m models.Manifest) error {
	if m == nil {
		m = models.Manifest{}
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("create manifest dir: %w", err)
	}
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("encode manifest: %w", err)
	}
	if err := os.WriteFile(s.path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}
	return nil
}
