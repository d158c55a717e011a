package matcher_test

import (
	"cmp"
	"math/rand"
	"slices"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/require"

	"github.com/aretw0/espalier/pkg/matcher"
)

// naiveFindAll is the trivially-correct rune-wise reference the automata are
// checked against.
func naiveFindAll(text, pattern string) []matcher.Match {
	ts := []rune(text)
	ps := []rune(pattern)
	var found []matcher.Match
	for i := 0; i+len(ps) <= len(ts); i++ {
		ok := true
		for j, sym := range ps {
			if ts[i+j] != sym {
				ok = false
				break
			}
		}
		if ok {
			found = append(found, matcher.Match{Position: i, Pattern: pattern})
		}
	}
	return found
}

func randomString(r *rand.Rand, alphabet string, maxLen int) string {
	syms := []rune(alphabet)
	out := make([]rune, 1+r.Intn(maxLen))
	for i := range out {
		out[i] = syms[r.Intn(len(syms))]
	}
	return string(out)
}

func TestKMP_AgainstNaiveReference(t *testing.T) {
	r := rand.New(rand.NewSource(1))

	for i := 0; i < 300; i++ {
		pattern := randomString(r, "AB", 6)
		text := randomString(r, "AB", 40)
		want := naiveFindAll(text, pattern)

		for _, mode := range searchModes {
			opts := append([]matcher.Option{matcher.WithAlphabet("AB")}, mode.opts...)
			m, err := matcher.BuildKMP(pattern, opts...)
			require.NoError(t, err)
			require.Equal(t, want, m.FindAll(text),
				"pattern %q text %q mode %s", pattern, text, mode.name)
		}
	}
}

// substringFree reports whether no pattern occurs inside another. For such
// sets every occurrence of every pattern lands on that pattern's own
// accepting state, so the walk reports exactly the union of the per-pattern
// naive scans.
func substringFree(patterns []string) bool {
	for i, p := range patterns {
		for j, q := range patterns {
			if i != j && strings.Contains(q, p) {
				return false
			}
		}
	}
	return true
}

func TestAhoCorasick_AgainstNaiveReference(t *testing.T) {
	r := rand.New(rand.NewSource(2))

	for i := 0; i < 500; i++ {
		patterns := make([]string, 1+r.Intn(3))
		for j := range patterns {
			patterns[j] = randomString(r, "AB", 5)
		}
		if !substringFree(patterns) {
			continue
		}
		text := randomString(r, "AB", 40)

		var want []matcher.Match
		for _, p := range patterns {
			want = append(want, naiveFindAll(text, p)...)
		}
		// Matches surface in the order their occurrences end.
		slices.SortFunc(want, func(a, b matcher.Match) int {
			return cmp.Compare(
				a.Position+utf8.RuneCountInString(a.Pattern),
				b.Position+utf8.RuneCountInString(b.Pattern),
			)
		})

		for _, mode := range searchModes {
			opts := append([]matcher.Option{matcher.WithAlphabet("AB")}, mode.opts...)
			m, err := matcher.BuildAhoCorasick(patterns, opts...)
			require.NoError(t, err)
			require.Equal(t, want, m.FindAll(text),
				"patterns %q text %q mode %s", patterns, text, mode.name)
		}
	}
}

// Pattern sets where one pattern occurs inside another exercise the shadowing
// behavior; both modes must still agree with each other exactly.
func TestAhoCorasick_ModeEquivalence(t *testing.T) {
	r := rand.New(rand.NewSource(3))

	for i := 0; i < 300; i++ {
		patterns := make([]string, 1+r.Intn(4))
		for j := range patterns {
			patterns[j] = randomString(r, "AB", 5)
		}
		text := randomString(r, "AB", 60)

		complete, err := matcher.BuildAhoCorasick(patterns,
			matcher.WithAlphabet("AB"), matcher.WithPrecompute(true))
		require.NoError(t, err)
		lazy, err := matcher.BuildAhoCorasick(patterns,
			matcher.WithAlphabet("AB"), matcher.WithPrecompute(false))
		require.NoError(t, err)

		want := complete.FindAll(text)
		require.Equal(t, want, lazy.FindAll(text), "patterns %q text %q", patterns, text)
		// Cached failure edges from the first walk must not change results.
		require.Equal(t, want, lazy.FindAll(text), "patterns %q text %q rerun", patterns, text)
	}
}
