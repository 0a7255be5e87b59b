// Package creds persists the Tenable.io API key pair at a per-user path and
// handles the first-run prompt that bootstraps it.
package creds

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

var (
	// ErrNotFound means no credential file exists yet.
	ErrNotFound = errors.New("credential file not found")
	// ErrMalformed means a credential file exists but cannot be parsed.
	ErrMalformed = errors.New("invalid credential file")
)

// Credentials is the Tenable.io access/secret key pair.
type Credentials struct {
	AccessKey string
	SecretKey string
}

// credentialFile is the on-disk shape: {"tenable_io":{"a_key":...,"s_key":...}}.
type credentialFile struct {
	TenableIO struct {
		AKey string `json:"a_key"`
		SKey string `json:"s_key"`
	} `json:"tenable_io"`
}

// Store reads and writes the credential file at a fixed path.
type Store struct {
	path string
}

// NewStore returns a Store backed by the given file path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the file path the store operates on.
func (s *Store) Path() string {
	return s.path
}

// Load reads stored credentials. A missing file is ErrNotFound; an
// unparseable one is ErrMalformed.
func (s *Store) Load() (Credentials, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return Credentials{}, ErrNotFound
	}
	if err != nil {
		return Credentials{}, fmt.Errorf("reading %s: %w", s.path, err)
	}

	var file credentialFile
	if err := json.Unmarshal(data, &file); err != nil {
		return Credentials{}, fmt.Errorf("%w %s: %v", ErrMalformed, s.path, err)
	}
	if file.TenableIO.AKey == "" && file.TenableIO.SKey == "" {
		return Credentials{}, fmt.Errorf("%w %s: missing tenable_io keys", ErrMalformed, s.path)
	}

	return Credentials{AccessKey: file.TenableIO.AKey, SecretKey: file.TenableIO.SKey}, nil
}

// Save writes credentials, creating the parent directory owner-only if
// needed and restricting the file to owner read/write.
func (s *Store) Save(c Credentials) error {
	var file credentialFile
	file.TenableIO.AKey = c.AccessKey
	file.TenableIO.SKey = c.SecretKey

	data, err := json.MarshalIndent(file, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding credentials: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("creating credential directory: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("writing %s: %w", s.path, err)
	}
	// WriteFile's mode only applies to newly created files.
	if err := os.Chmod(s.path, 0o600); err != nil {
		return fmt.Errorf("restricting %s: %w", s.path, err)
	}
	return nil
}

// Obtain returns stored credentials, prompting for and persisting a new pair
// on first run. A malformed file is never overwritten; its error propagates.
func (s *Store) Obtain(p Prompter) (Credentials, error) {
	c, err := s.Load()
	if err == nil {
		return c, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return Credentials{}, err
	}

	access, secret, err := p.Ask()
	if err != nil {
		return Credentials{}, fmt.Errorf("prompting for API keys: %w", err)
	}

	c = Credentials{AccessKey: access, SecretKey: secret}
	if err := s.Save(c); err != nil {
		return Credentials{}, err
	}
	return c, nil
}
