package matcher_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aretw0/espalier/pkg/matcher"
)

// FuzzSearchModeEquivalence checks that precomputed and on-the-fly searches
// agree on arbitrary inputs. Patterns arrive NUL-separated so the fuzzer can
// mutate the whole set at once.
func FuzzSearchModeEquivalence(f *testing.F) {
	f.Add("ABAB", "ABABAB")
	f.Add("he\x00she\x00his\x00hers", "ushers")
	f.Add("café", "un café féerique")
	f.Add("a\x00aa\x00aaa", "aaaa")
	f.Add("AB\x00BA", "")

	f.Fuzz(func(t *testing.T, rawPatterns, text string) {
		if len(rawPatterns) > 64 || len(text) > 1024 {
			return
		}
		var patterns []string
		for _, p := range strings.Split(rawPatterns, "\x00") {
			if p != "" {
				patterns = append(patterns, p)
			}
		}
		if len(patterns) == 0 {
			return
		}

		complete, err := matcher.BuildAhoCorasick(patterns, matcher.WithPrecompute(true))
		require.NoError(t, err)
		lazy, err := matcher.BuildAhoCorasick(patterns, matcher.WithPrecompute(false))
		require.NoError(t, err)

		want := complete.FindAll(text)
		require.Equal(t, want, lazy.FindAll(text), "patterns %q text %q", patterns, text)
		// A second walk runs on the cached failure edges and must agree too.
		require.Equal(t, want, lazy.FindAll(text), "patterns %q text %q rerun", patterns, text)
	})
}

// FuzzKMPMatchesNaiveScan checks both search modes against a rune-wise scan.
func FuzzKMPMatchesNaiveScan(f *testing.F) {
	f.Add("ABAB", "ABABAB")
	f.Add("aa", "aaaa")
	f.Add("é", "café")

	f.Fuzz(func(t *testing.T, pattern, text string) {
		if pattern == "" || len(pattern) > 32 || len(text) > 1024 {
			return
		}
		want := naiveFindAll(text, pattern)
		for _, mode := range searchModes {
			m, err := matcher.BuildKMP(pattern, mode.opts...)
			require.NoError(t, err)
			require.Equal(t, want, m.FindAll(text), "pattern %q text %q mode %s", pattern, text, mode.name)
		}
	})
}
