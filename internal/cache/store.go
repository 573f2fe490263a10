package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/bialog/bialog/internal/logging"
)

const fileExtension = ".json"

// Cache errors.
var (
	ErrNotFound   = errors.New("cache entry not found")
	ErrExpired    = errors.New("cache entry expired")
	ErrInvalidKey = errors.New("cache key cannot be empty")
	ErrDisabled   = errors.New("cache is disabled")
)

// Store is a file-backed cache. It is safe for concurrent use.
type Store struct {
	directory string
	enabled   bool
	ttl       time.Duration
	now       func() time.Time

	mu sync.RWMutex
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// NewStore creates a Store in directory, creating it if necessary. A disabled
// store or a non-positive ttl never touches the filesystem.
func NewStore(directory string, enabled bool, ttl time.Duration, opts ...Option) (*Store, error) {
	s := &Store{directory: directory, enabled: enabled && ttl > 0, ttl: ttl, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	if !s.enabled {
		return s, nil
	}
	if directory == "" {
		return nil, errors.New("cache directory cannot be empty")
	}
	if err := os.MkdirAll(directory, 0o750); err != nil {
		return nil, fmt.Errorf("creating cache directory: %w", err)
	}
	return s, nil
}

// Enabled reports whether the store caches anything.
func (s *Store) Enabled() bool {
	return s != nil && s.enabled
}

// Get returns the raw entry for key.
func (s *Store) Get(key string) (*Entry, error) {
	if !s.Enabled() {
		return nil, ErrDisabled
	}
	if key == "" {
		return nil, ErrInvalidKey
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("reading cache file: %w", err)
	}

	var entry Entry
	if unmarshalErr := json.Unmarshal(data, &entry); unmarshalErr != nil {
		return nil, fmt.Errorf("decoding cache entry: %w", unmarshalErr)
	}
	if entry.ExpiredAt(s.now()) {
		return nil, ErrExpired
	}
	return &entry, nil
}

// Set stores data under key, replacing any existing entry.
func (s *Store) Set(key string, data json.RawMessage) error {
	if !s.Enabled() {
		return ErrDisabled
	}
	if key == "" {
		return ErrInvalidKey
	}

	entryData, err := json.Marshal(newEntry(key, data, s.ttl, s.now()))
	if err != nil {
		return fmt.Errorf("encoding cache entry: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	path := s.path(key)
	tmp := path + ".tmp"
	if writeErr := os.WriteFile(tmp, entryData, 0o600); writeErr != nil {
		return fmt.Errorf("writing cache file: %w", writeErr)
	}
	if renameErr := os.Rename(tmp, path); renameErr != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("renaming cache file: %w", renameErr)
	}
	return nil
}

// Delete removes key. Deleting a missing key is not an error.
func (s *Store) Delete(key string) error {
	if !s.Enabled() {
		return ErrDisabled
	}
	if key == "" {
		return ErrInvalidKey
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path(key)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("deleting cache file: %w", err)
	}
	return nil
}

// Prune removes expired or unreadable entries and returns how many were removed.
func (s *Store) Prune() (int, error) {
	if !s.Enabled() {
		return 0, ErrDisabled
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	dirEntries, err := os.ReadDir(s.directory)
	if err != nil {
		return 0, fmt.Errorf("reading cache directory: %w", err)
	}

	now := s.now()
	removed := 0
	for _, de := range dirEntries {
		if de.IsDir() || filepath.Ext(de.Name()) != fileExtension {
			continue
		}
		path := filepath.Join(s.directory, de.Name())
		data, readErr := os.ReadFile(path)
		if readErr != nil {
			continue
		}
		var entry Entry
		if json.Unmarshal(data, &entry) != nil || entry.ExpiredAt(now) {
			if os.Remove(path) == nil {
				removed++
			}
		}
	}
	return removed, nil
}

func (s *Store) path(key string) string {
	sum := sha256.Sum256([]byte(key))
	return filepath.Join(s.directory, hex.EncodeToString(sum[:])+fileExtension)
}

// Key joins parts into a cache key.
func Key(parts ...string) string {
	return strings.Join(parts, "\x00")
}

// Fetch returns the cached value for key, or calls load and caches its result.
// Cache failures are logged and never fail the call.
func Fetch[T any](ctx context.Context, s *Store, key string, load func(context.Context) (T, error)) (T, error) {
	log := logging.FromContext(ctx)

	if s.Enabled() {
		entry, err := s.Get(key)
		if err == nil {
			var v T
			if decodeErr := json.Unmarshal(entry.Data, &v); decodeErr == nil {
				log.Debug().Str("component", "cache").Msg("cache hit")
				return v, nil
			}
		} else if !errors.Is(err, ErrNotFound) && !errors.Is(err, ErrExpired) {
			log.Warn().Str("component", "cache").Err(err).Msg("cache read failed")
		}
	}

	v, err := load(ctx)
	if err != nil {
		return v, err
	}

	if s.Enabled() {
		data, marshalErr := json.Marshal(v)
		if marshalErr == nil {
			marshalErr = s.Set(key, data)
		}
		if marshalErr != nil {
			log.Warn().Str("component", "cache").Err(marshalErr).Msg("cache write failed")
		}
	}
	return v, nil
}
