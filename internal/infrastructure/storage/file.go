// Package storage persists the session credentials in a local JSON file,
// the console equivalent of browser localStorage / device async-storage.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/postqode/nexus-console/internal/core/ports"
)

// FileStore keeps the credentials at a fixed path, written atomically so a
// crash mid-save never leaves a truncated file behind.
type FileStore struct {
	path string
}

var _ ports.CredentialStore = (*FileStore)(nil)

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Load reads the stored credentials. A missing file is not an error: it
// means no one is logged in.
func (s *FileStore) Load() (*ports.Credentials, error) {
	raw, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read credentials: %w", err)
	}

	var creds ports.Credentials
	if err := json.Unmarshal(raw, &creds); err != nil {
		// A corrupt file is treated as no session rather than a fatal
		// startup error; the next Save rewrites it.
		return nil, nil
	}
	if creds.Token == "" || creds.User == nil {
		return nil, nil
	}
	return &creds, nil
}

// Save writes the credentials with owner-only permissions via a temp file
// and rename.
func (s *FileStore) Save(creds *ports.Credentials) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("create credentials dir: %w", err)
	}

	raw, err := json.Marshal(creds)
	if err != nil {
		return fmt.Errorf("marshal credentials: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".credentials-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		return fmt.Errorf("write credentials: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replace credentials file: %w", err)
	}
	return nil
}

// Clear removes the stored credentials. Clearing an already-empty store is
// a no-op.
func (s *FileStore) Clear() error {
	err := os.Remove(s.path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove credentials: %w", err)
	}
	return nil
}
