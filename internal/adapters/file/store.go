package file

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/aretw0/espalier/pkg/matcher"
	"github.com/aretw0/espalier/pkg/ports"
)

// Store implements ports.RecordStore using the local filesystem.
// It stores automaton records as JSON files in a configured directory.
type Store struct {
	BasePath string
}

// New creates a new Store with the given base path.
// If basePath is empty, it defaults to ".espalier/records".
func New(basePath string) *Store {
	if basePath == "" {
		basePath = filepath.Join(".espalier", "records")
	}
	return &Store{BasePath: basePath}
}

// Save persists the record to a JSON file atomically.
// It writes to a temporary file first, syncs via fsync, and then renames it to the destination.
func (s *Store) Save(ctx context.Context, name string, rec *matcher.Record) error {
	if name == "" {
		return fmt.Errorf("record name cannot be empty")
	}

	// Ensure directory exists
	if err := os.MkdirAll(s.BasePath, 0755); err != nil {
		return fmt.Errorf("failed to ensure record directory: %w", err)
	}

	destPath := filepath.Join(s.BasePath, name+".json")

	data, err := matcher.MarshalRecord(rec)
	if err != nil {
		return fmt.Errorf("failed to marshal record: %w", err)
	}

	// 1. Create Temp File
	// we use the same directory to ensure we are on the same filesystem (required for atomic rename)
	tmpFile, err := os.CreateTemp(s.BasePath, "tmp-"+name+"-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	// Cleanup if anything below fails; after a successful rename the path is gone
	// and both calls are no-ops.
	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
	}()

	// 2. Write Data
	if _, err := tmpFile.Write(data); err != nil {
		return fmt.Errorf("failed to write to temp file: %w", err)
	}

	// 3. Fsync to ensure durability
	if err := tmpFile.Sync(); err != nil {
		return fmt.Errorf("failed to fsync temp file: %w", err)
	}

	// 4. Close File (cannot rename open file on Windows)
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	// 5. Atomic Rename
	// On Windows, os.Rename fails if dest exists, so remove it first. The
	// delete+rename window is acceptable compared to a partially written file.
	if _, err := os.Stat(destPath); err == nil {
		if err := os.Remove(destPath); err != nil {
			return fmt.Errorf("failed to remove existing record file for overwrite: %w", err)
		}
	}

	if err := os.Rename(tmpPath, destPath); err != nil {
		return fmt.Errorf("failed to rename temp file to record file: %w", err)
	}

	return nil
}

// Load retrieves the record from a JSON file.
func (s *Store) Load(ctx context.Context, name string) (*matcher.Record, error) {
	if name == "" {
		return nil, fmt.Errorf("record name cannot be empty")
	}

	filePath := filepath.Join(s.BasePath, name+".json")

	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ports.ErrRecordNotFound
		}
		return nil, fmt.Errorf("failed to read record file: %w", err)
	}

	rec, err := matcher.UnmarshalRecord(data)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal record: %w", err)
	}

	return rec, nil
}

// Delete removes the record file.
func (s *Store) Delete(ctx context.Context, name string) error {
	if name == "" {
		return fmt.Errorf("record name cannot be empty")
	}

	filePath := filepath.Join(s.BasePath, name+".json")

	err := os.Remove(filePath)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete record file: %w", err)
	}

	return nil
}

// List returns the names of all stored records.
func (s *Store) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.BasePath)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to list records: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if !entry.IsDir() && filepath.Ext(entry.Name()) == ".json" {
			name := entry.Name()
			names = append(names, name[:len(name)-len(".json")])
		}
	}

	return names, nil
}
