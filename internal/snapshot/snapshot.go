// Package snapshot persists the store's full state as a single local JSON
// document, read once at startup and overwritten on every mutation.
package snapshot

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/ddanilov/homeledger/internal/store"
)

// StoreName keys the persisted document, matching the single fixed store the
// application owns.
const StoreName = "finance-store"

// Repository persists and restores full store snapshots.
type Repository interface {
	// Save overwrites the snapshot. Last write wins; there is no batching.
	Save(snap store.Snapshot) error

	// Load reads the snapshot. ok is false when none has been saved yet.
	Load() (snap store.Snapshot, ok bool, err error)
}

// document is the on-disk layout: the snapshot wrapped with the store name.
type document struct {
	Name  string         `json:"name"`
	State store.Snapshot `json:"state"`
}

// FileRepository stores the snapshot in one JSON file.
type FileRepository struct {
	mu   sync.Mutex
	path string
}

// NewFileRepository creates a repository writing to path.
func NewFileRepository(path string) *FileRepository {
	return &FileRepository{path: path}
}

// Save implements Repository. The file is replaced via a temp file and
// rename so readers never observe a partial write.
func (r *FileRepository) Save(snap store.Snapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	data, err := json.MarshalIndent(document{Name: StoreName, State: snap}, "", "  ")
	if err != nil {
		return fmt.Errorf("Save: marshal snapshot: %w", err)
	}

	dir := filepath.Dir(r.path)
	tmp, err := os.CreateTemp(dir, ".finance-store-*")
	if err != nil {
		return fmt.Errorf("Save: create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("Save: write snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("Save: close temp file: %w", err)
	}
	if err := os.Rename(tmpName, r.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("Save: replace snapshot: %w", err)
	}
	return nil
}

// Load implements Repository.
func (r *FileRepository) Load() (store.Snapshot, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	data, err := os.ReadFile(r.path)
	if os.IsNotExist(err) {
		return store.Snapshot{}, false, nil
	}
	if err != nil {
		return store.Snapshot{}, false, fmt.Errorf("Load: read snapshot: %w", err)
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return store.Snapshot{}, false, fmt.Errorf("Load: unmarshal snapshot: %w", err)
	}
	return doc.State, true, nil
}

var _ Repository = (*FileRepository)(nil)
