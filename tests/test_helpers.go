package tests

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aretw0/espalier"
	"github.com/aretw0/espalier/internal/testutils"
)

// matcherVariants builds the same pattern set under every strategy and
// persistence combination: constructed with a precomputed table, constructed
// for on-the-fly searching, and both reopened from records saved through a
// file archive. Every variant must report identical matches.
func matcherVariants(t *testing.T, alg espalier.Algorithm, patterns []string) map[string]espalier.Matcher {
	t.Helper()
	ctx := context.Background()
	_, archive := testutils.SetupArchive(t)

	full, err := espalier.Build(alg, patterns)
	require.NoError(t, err)
	lazy, err := espalier.Build(alg, patterns, espalier.WithPrecompute(false))
	require.NoError(t, err)

	require.NoError(t, archive.Save(ctx, "full", full))
	require.NoError(t, archive.Save(ctx, "lazy", lazy))

	reopenedFull, err := archive.Open(ctx, "full")
	require.NoError(t, err)
	// A record with a complete table can still be walked lazily, and a sparse
	// record must be.
	crossMode, err := archive.Open(ctx, "full", espalier.WithPrecompute(false))
	require.NoError(t, err)
	reopenedLazy, err := archive.Open(ctx, "lazy", espalier.WithPrecompute(false))
	require.NoError(t, err)

	return map[string]espalier.Matcher{
		"built precomputed":    full,
		"built on-the-fly":     lazy,
		"reopened precomputed": reopenedFull,
		"reopened cross-mode":  crossMode,
		"reopened on-the-fly":  reopenedLazy,
	}
}
