// Package restoration persists picker scroll state across restarts.
//
// A [Store] maps restoration IDs to [wheel.Snapshot] values and reads and
// writes them as a versioned YAML document:
//
//	version: v1.0.0
//	pickers:
//	  month:
//	    infinite: true
//	    raw_index: 4611686018427387907
//
// Files written by a different major version are rejected with
// [ErrIncompatible].
package restoration

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"github.com/go-drift/kit/pkg/wheel"
	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"
)

// FormatVersion is the version written by Save.
const FormatVersion = "v1.0.0"

// ErrIncompatible is returned for documents with an unknown major version.
var ErrIncompatible = errors.New("restoration: incompatible format version")

type document struct {
	Version string                    `yaml:"version"`
	Pickers map[string]wheel.Snapshot `yaml:"pickers,omitempty"`
}

// Store holds snapshots by restoration ID. It is safe for concurrent use.
type Store struct {
	mu      sync.Mutex
	entries map[string]wheel.Snapshot
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{entries: make(map[string]wheel.Snapshot)}
}

// Get returns the snapshot saved under id.
func (s *Store) Get(id string) (wheel.Snapshot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap, ok := s.entries[id]
	return snap, ok
}

// Restore returns the snapshot for id in the form [wheel.Options] expects,
// or nil if there is none.
func (s *Store) Restore(id string) *wheel.Snapshot {
	snap, ok := s.Get(id)
	if !ok {
		return nil
	}
	return &snap
}

// Put saves snap under id.
func (s *Store) Put(id string, snap wheel.Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[id] = snap
}

// Delete removes id.
func (s *Store) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, id)
}

// IDs returns the stored IDs in sorted order.
func (s *Store) IDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]string, 0, len(s.entries))
	for id := range s.entries {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Len returns the number of stored snapshots.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Decode parses a YAML document.
func Decode(data []byte) (*Store, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse restoration data: %w", err)
	}
	if err := checkVersion(doc.Version); err != nil {
		return nil, err
	}
	s := NewStore()
	for id, snap := range doc.Pickers {
		s.entries[id] = snap
	}
	return s, nil
}

// Encode renders the store as a YAML document.
func (s *Store) Encode() ([]byte, error) {
	s.mu.Lock()
	doc := document{Version: FormatVersion, Pickers: make(map[string]wheel.Snapshot, len(s.entries))}
	for id, snap := range s.entries {
		doc.Pickers[id] = snap
	}
	s.mu.Unlock()
	return yaml.Marshal(&doc)
}

// Load reads the store at path. A missing file yields an empty store.
func Load(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return NewStore(), nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return Decode(data)
}

// Save writes the store to path, replacing it atomically.
func (s *Store) Save(path string) error {
	data, err := s.Encode()
	if err != nil {
		return fmt.Errorf("failed to encode restoration data: %w", err)
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

func checkVersion(v string) error {
	if !semver.IsValid(v) {
		return fmt.Errorf("%w: invalid version %q", ErrIncompatible, v)
	}
	if semver.Major(v) != semver.Major(FormatVersion) {
		return fmt.Errorf("%w: %s (supported %s)", ErrIncompatible, v, semver.Major(FormatVersion))
	}
	return nil
}
