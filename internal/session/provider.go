// Package session holds the client's credentials and the signed-in state
// derived from them.
//
// Credentials are always reached through an injected Provider; nothing in
// bialog keeps a process-wide token.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// ErrCredentialsCorrupted indicates the credentials file exists but cannot be read.
var ErrCredentialsCorrupted = errors.New("credentials file corrupted")

// ErrEmptyToken is returned when storing an empty token.
var ErrEmptyToken = errors.New("token cannot be empty")

// CredentialsVersion is the current schema version of the credentials file.
const CredentialsVersion = 1

// Provider supplies the bearer token for API calls.
type Provider interface {
	// Token returns the stored token and whether one is present.
	Token() (string, bool)
	// Store replaces the stored token.
	Store(token string) error
	// Clear removes the stored token.
	Clear() error
}

// StaticProvider keeps a token in memory.
type StaticProvider struct {
	mu    sync.RWMutex
	token string
}

// NewStaticProvider returns a provider holding token. An empty token means
// signed out.
func NewStaticProvider(token string) *StaticProvider {
	return &StaticProvider{token: strings.TrimSpace(token)}
}

// Token implements Provider.
func (p *StaticProvider) Token() (string, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.token, p.token != ""
}

// Store implements Provider.
func (p *StaticProvider) Store(token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return ErrEmptyToken
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.token = token
	return nil
}

// Clear implements Provider.
func (p *StaticProvider) Clear() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.token = ""
	return nil
}

// credentialsData is the serialized form of the credentials file.
type credentialsData struct {
	Version int       `json:"version"`
	Token   string    `json:"token"`
	SavedAt time.Time `json:"saved_at"`
}

// FileProvider persists the token as a JSON file readable only by the owner.
type FileProvider struct {
	mu       sync.RWMutex
	filePath string
	token    string
	loaded   bool
}

// NewFileProvider creates a FileProvider backed by filePath.
// If filePath is empty, it defaults to ~/.bialog/credentials.json.
func NewFileProvider(filePath string) (*FileProvider, error) {
	if filePath == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("determining home directory: %w", err)
		}
		filePath = filepath.Join(homeDir, ".bialog", "credentials.json")
	}
	return &FileProvider{filePath: filePath}, nil
}

// Load reads the credentials file. A missing file means signed out.
func (p *FileProvider) Load() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.loadLocked()
}

func (p *FileProvider) loadLocked() error {
	p.loaded = true
	p.token = ""

	data, err := os.ReadFile(p.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading credentials file: %w", err)
	}

	var stored credentialsData
	if unmarshalErr := json.Unmarshal(data, &stored); unmarshalErr != nil {
		return fmt.Errorf("%w: %w", ErrCredentialsCorrupted, unmarshalErr)
	}
	if stored.Version != CredentialsVersion {
		return fmt.Errorf("%w: unsupported version %d (expected %d)",
			ErrCredentialsCorrupted, stored.Version, CredentialsVersion)
	}

	p.token = stored.Token
	return nil
}

// Token implements Provider. The file is read on first use; a file that
// cannot be read is treated as signed out.
func (p *FileProvider) Token() (string, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.loaded {
		_ = p.loadLocked()
	}
	return p.token, p.token != ""
}

// Store implements Provider. The file is written atomically via a temp file.
func (p *FileProvider) Store(token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return ErrEmptyToken
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	data, err := json.MarshalIndent(credentialsData{
		Version: CredentialsVersion,
		Token:   token,
		SavedAt: time.Now().UTC(),
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling credentials: %w", err)
	}

	if mkdirErr := os.MkdirAll(filepath.Dir(p.filePath), 0o700); mkdirErr != nil {
		return fmt.Errorf("creating credentials directory: %w", mkdirErr)
	}

	tmpPath := p.filePath + ".tmp"
	if writeErr := os.WriteFile(tmpPath, data, 0o600); writeErr != nil {
		return fmt.Errorf("writing credentials temp file: %w", writeErr)
	}
	if renameErr := os.Rename(tmpPath, p.filePath); renameErr != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("renaming credentials temp file: %w", renameErr)
	}

	p.token = token
	p.loaded = true
	return nil
}

// Clear implements Provider. Removing a missing file is not an error.
func (p *FileProvider) Clear() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := os.Remove(p.filePath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing credentials file: %w", err)
	}
	p.token = ""
	p.loaded = true
	return nil
}

// FilePath returns the credentials file path.
func (p *FileProvider) FilePath() string {
	return p.filePath
}
