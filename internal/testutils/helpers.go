package testutils

import (
	"path/filepath"
	"testing"

	"github.com/aretw0/espalier"
	"github.com/stretchr/testify/require"
)

// SetupArchive creates a temporary directory and opens a record archive over
// it. It returns the absolute path to the temp dir and the archive.
// It fails the test immediately on error.
func SetupArchive(t *testing.T, opts ...espalier.ArchiveOption) (string, *espalier.Archive) {
	t.Helper()

	tmpDir := t.TempDir()

	// The file store joins names onto this path, so hand it an absolute one.
	absPath, err := filepath.Abs(tmpDir)
	require.NoError(t, err, "Failed to get absolute path for temp dir")

	return absPath, espalier.NewArchive(absPath, opts...)
}
