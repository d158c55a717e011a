package tests

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/espalier/pkg/matcher"
	"github.com/aretw0/espalier/pkg/ports"
)

// RecordStoreContractTest is a reusable test suite that verifies if an adapter
// complies with ports.RecordStore. Adapters pass a connected store; the suite
// saves, reloads, overwrites, deletes and lists records through it.
func RecordStoreContractTest(t *testing.T, store ports.RecordStore) {
	t.Helper()

	ctx := context.Background()
	name := "contract-test-record-" + time.Now().Format("20060102150405")

	t.Run("Save and Load", func(t *testing.T) {
		rec := buildRecord(t, "AB", "CA")

		err := store.Save(ctx, name, rec)
		require.NoError(t, err, "Save should not return error")

		loaded, err := store.Load(ctx, name)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, rec.Algorithm, loaded.Algorithm)
		assert.Equal(t, rec.Patterns, loaded.Patterns)
		assert.Equal(t, rec.FailFunctions, loaded.FailFunctions)
		assert.Equal(t, rec.PatternMap, loaded.PatternMap)
		assert.Equal(t, rec.Automaton, loaded.Automaton)
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+name)
		assert.ErrorIs(t, err, ports.ErrRecordNotFound)
	})

	t.Run("Overwrite", func(t *testing.T) {
		first := buildRecord(t, "AB", "CA")
		second := buildRecord(t, "ACGT")

		require.NoError(t, store.Save(ctx, name, first))
		require.NoError(t, store.Save(ctx, name, second))

		loaded, err := store.Load(ctx, name)
		require.NoError(t, err)
		assert.Equal(t, second.Patterns, loaded.Patterns)
		assert.Equal(t, second.Automaton, loaded.Automaton)
	})

	t.Run("Delete", func(t *testing.T) {
		err := store.Save(ctx, name, buildRecord(t, "AB"))
		require.NoError(t, err)

		err = store.Delete(ctx, name)
		require.NoError(t, err, "Delete should not return error")

		_, err = store.Load(ctx, name)
		assert.ErrorIs(t, err, ports.ErrRecordNotFound, "Load after Delete should return ErrRecordNotFound")
	})

	t.Run("List", func(t *testing.T) {
		name1 := name + "-1"
		name2 := name + "-2"
		require.NoError(t, store.Save(ctx, name1, buildRecord(t, "AB")))
		require.NoError(t, store.Save(ctx, name2, buildRecord(t, "CA")))

		// Ensure cleanup
		defer func() {
			_ = store.Delete(ctx, name1)
			_ = store.Delete(ctx, name2)
		}()

		names, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, names, name1)
		assert.Contains(t, names, name2)
	})
}

func buildRecord(t *testing.T, patterns ...string) *matcher.Record {
	t.Helper()

	m, err := matcher.Build(matcher.AlgorithmAhoCorasick, patterns)
	require.NoError(t, err)
	return m.Record()
}
