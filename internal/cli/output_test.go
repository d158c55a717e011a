package cli

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/espalier/pkg/matcher"
)

func TestParseFormat(t *testing.T) {
	t.Run("Empty defaults to text", func(t *testing.T) {
		format, err := ParseFormat("")
		require.NoError(t, err)
		assert.Equal(t, FormatText, format)
	})

	t.Run("Known formats", func(t *testing.T) {
		for _, name := range []string{"text", "csv", "table"} {
			format, err := ParseFormat(name)
			require.NoError(t, err)
			assert.Equal(t, Format(name), format)
		}
	})

	t.Run("Unknown format fails", func(t *testing.T) {
		_, err := ParseFormat("xml")
		assert.ErrorContains(t, err, "unknown output format")
	})
}

func TestWriteMatches(t *testing.T) {
	matches := []matcher.Match{
		{Position: 1, Pattern: "she"},
		{Position: 2, Pattern: "he"},
	}

	t.Run("Text lists each match and a total", func(t *testing.T) {
		var out strings.Builder
		require.NoError(t, WriteMatches(&out, matches, FormatText, false))
		want := "Pattern 'she' found at position 1\n" +
			"Pattern 'he' found at position 2\n" +
			"\nTotal matches found: 2\n"
		assert.Equal(t, want, out.String())
	})

	t.Run("CSV emits a header and one row per match", func(t *testing.T) {
		var out strings.Builder
		require.NoError(t, WriteMatches(&out, matches, FormatCSV, false))
		assert.Equal(t, "position,pattern\n1,she\n2,he\n", out.String())
	})

	t.Run("Unstyled table is plain markdown", func(t *testing.T) {
		var out strings.Builder
		require.NoError(t, WriteMatches(&out, matches, FormatTable, false))
		assert.Contains(t, out.String(), "| Position | Pattern |")
		assert.Contains(t, out.String(), "| 1 | she |")
		assert.Contains(t, out.String(), "| 2 | he |")
		assert.Contains(t, out.String(), "Total matches found: 2")
	})

	t.Run("No matches still reports the total", func(t *testing.T) {
		var out strings.Builder
		require.NoError(t, WriteMatches(&out, nil, FormatText, false))
		assert.Equal(t, "\nTotal matches found: 0\n", out.String())
	})
}
