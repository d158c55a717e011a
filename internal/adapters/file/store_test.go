package file_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/espalier/internal/adapters/file"
	"github.com/aretw0/espalier/pkg/automaton"
	"github.com/aretw0/espalier/pkg/matcher"
	"github.com/aretw0/espalier/pkg/ports"
	contract "github.com/aretw0/espalier/pkg/ports/tests"
)

// Ensure Store implements RecordStore
var _ ports.RecordStore = (*file.Store)(nil)

func TestFileStore_Contract(t *testing.T) {
	store := file.New(t.TempDir())
	contract.RecordStoreContractTest(t, store)
}

func TestFileStore_DefaultPath(t *testing.T) {
	store := file.New("")
	assert.Equal(t, filepath.Join(".espalier", "records"), store.BasePath)
}

func TestFileStore_SaveWritesJSONFile(t *testing.T) {
	dir := t.TempDir()
	store := file.New(dir)
	ctx := context.Background()

	m, err := matcher.BuildKMP("ABAB")
	require.NoError(t, err)
	require.NoError(t, store.Save(ctx, "needle", m.Record()))

	data, err := os.ReadFile(filepath.Join(dir, "needle.json"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"algorithm": "kmp"`)
}

func TestFileStore_SaveEmptyName(t *testing.T) {
	store := file.New(t.TempDir())

	m, err := matcher.BuildKMP("AB")
	require.NoError(t, err)

	err = store.Save(context.Background(), "", m.Record())
	assert.Error(t, err)
}

func TestFileStore_LoadMalformedFile(t *testing.T) {
	dir := t.TempDir()
	store := file.New(dir)

	path := filepath.Join(dir, "broken.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"algorithm":`), 0644))

	_, err := store.Load(context.Background(), "broken")
	assert.ErrorIs(t, err, automaton.ErrMalformedRecord)
}

func TestFileStore_DeleteNonExistent(t *testing.T) {
	store := file.New(t.TempDir())

	// Idempotent: deleting a missing record is not an error.
	err := store.Delete(context.Background(), "ghost")
	assert.NoError(t, err)
}

func TestFileStore_ListIgnoresForeignFiles(t *testing.T) {
	dir := t.TempDir()
	store := file.New(dir)
	ctx := context.Background()

	m, err := matcher.BuildKMP("AB")
	require.NoError(t, err)
	require.NoError(t, store.Save(ctx, "first", m.Record()))
	require.NoError(t, store.Save(ctx, "second", m.Record()))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("not a record"), 0644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested.json"), 0755))

	names, err := store.List(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"first", "second"}, names)
}

func TestFileStore_ListMissingDirectory(t *testing.T) {
	store := file.New(filepath.Join(t.TempDir(), "absent"))

	names, err := store.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, names)
}
