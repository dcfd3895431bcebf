// Package localstore is the local key-value store backing anonymous
// installs: theme preference, the instance UUID, and the offline state
// snapshot live here as a single JSON file under the user config dir.
package localstore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
)

const (
	appDirName    = "devlens"
	storeFileName = "store.json"

	keyTheme      = "theme"
	keyInstanceID = "instance_id"
	keyState      = "state"
)

// DefaultTheme matches a fresh install
const DefaultTheme = "dark"

// Store is a JSON-file key-value store. All operations are safe for
// concurrent use within a single process.
type Store struct {
	path string

	mu     sync.Mutex
	values map[string]string
}

// DefaultPath returns the store location under the user config dir
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve user config dir: %w", err)
	}
	return filepath.Join(dir, appDirName, storeFileName), nil
}

// Open loads the store at path, creating an empty one if the file does
// not exist yet.
func Open(path string) (*Store, error) {
	s := &Store{path: path, values: make(map[string]string)}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read local store: %w", err)
	}

	if err := json.Unmarshal(data, &s.values); err != nil {
		return nil, fmt.Errorf("failed to parse local store: %w", err)
	}
	return s, nil
}

// Get returns the value for key, or "" if unset
func (s *Store) Get(key string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.values[key]
}

// Set stores key=value and writes the file through
func (s *Store) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return s.save()
}

// save writes the store atomically via a temp file rename
func (s *Store) save() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("failed to create store dir: %w", err)
	}

	data, err := json.MarshalIndent(s.values, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode local store: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("failed to write local store: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace local store: %w", err)
	}
	return nil
}

// Theme returns the saved theme preference, defaulting when unset
func (s *Store) Theme() string {
	if theme := s.Get(keyTheme); theme != "" {
		return theme
	}
	return DefaultTheme
}

// SetTheme saves the theme preference
func (s *Store) SetTheme(theme string) error {
	return s.Set(keyTheme, theme)
}

// InstanceID returns the anonymous instance UUID, minting and saving it
// on first call. The UUID is stable for the lifetime of the install.
func (s *Store) InstanceID() (string, error) {
	if id := s.Get(keyInstanceID); id != "" {
		return id, nil
	}

	id := uuid.NewString()
	if err := s.Set(keyInstanceID, id); err != nil {
		return "", err
	}
	return id, nil
}

// StateSnapshot returns the locally saved state snapshot, or nil if none
func (s *Store) StateSnapshot() []byte {
	if v := s.Get(keyState); v != "" {
		return []byte(v)
	}
	return nil
}

// SetStateSnapshot saves the state snapshot locally
func (s *Store) SetStateSnapshot(data []byte) error {
	return s.Set(keyState, string(data))
}
