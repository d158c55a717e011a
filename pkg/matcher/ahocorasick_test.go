package matcher_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/espalier/pkg/automaton"
	"github.com/aretw0/espalier/pkg/matcher"
)

func TestBuildAhoCorasick_Errors(t *testing.T) {
	t.Run("NoPatterns", func(t *testing.T) {
		_, err := matcher.BuildAhoCorasick(nil)
		assert.ErrorIs(t, err, matcher.ErrNoPatterns)

		_, err = matcher.BuildAhoCorasick([]string{})
		assert.ErrorIs(t, err, matcher.ErrNoPatterns)
	})

	t.Run("EmptyPattern", func(t *testing.T) {
		_, err := matcher.BuildAhoCorasick([]string{"AB", ""})
		assert.ErrorIs(t, err, matcher.ErrEmptyPattern)
	})

	t.Run("PatternOutsideAlphabet", func(t *testing.T) {
		_, err := matcher.BuildAhoCorasick([]string{"AB", "AD"}, matcher.WithAlphabet("ABC"))
		assert.ErrorIs(t, err, automaton.ErrInvalidSymbol)
	})
}

func TestAhoCorasick_FindAll(t *testing.T) {
	tests := []struct {
		name     string
		patterns []string
		alphabet string
		text     string
		want     []matcher.Match
	}{
		{
			name:     "SinglePattern",
			patterns: []string{"ABC"},
			alphabet: "ABCDEF",
			text:     "AABCDEF",
			want:     []matcher.Match{{Position: 1, Pattern: "ABC"}},
		},
		{
			name:     "Periodic",
			patterns: []string{"AB"},
			text:     "ABABAB",
			want: []matcher.Match{
				{Position: 0, Pattern: "AB"},
				{Position: 2, Pattern: "AB"},
				{Position: 4, Pattern: "AB"},
			},
		},
		{
			name:     "OneOfSeveral",
			patterns: []string{"ABC", "AXXA", "ABX"},
			alphabet: "ABCX",
			text:     "XXXXABC",
			want:     []matcher.Match{{Position: 4, Pattern: "ABC"}},
		},
		{
			name:     "OverlappingPatterns",
			patterns: []string{"ABBAB", "BABBA"},
			text:     "ABABBABBBA",
			want: []matcher.Match{
				{Position: 1, Pattern: "BABBA"},
				{Position: 2, Pattern: "ABBAB"},
			},
		},
		{
			name:     "FallbackIntoSiblingBranch",
			patterns: []string{"AB", "CA"},
			text:     "ACA",
			want:     []matcher.Match{{Position: 1, Pattern: "CA"}},
		},
		{
			name:     "PatternIsPrefixOfAnother",
			patterns: []string{"ABABAC", "ABAB"},
			text:     "ABABAC",
			want: []matcher.Match{
				{Position: 0, Pattern: "ABAB"},
				{Position: 0, Pattern: "ABABAC"},
			},
		},
		{
			name:     "EmptyText",
			patterns: []string{"ABC"},
			text:     "",
			want:     nil,
		},
		{
			name:     "SymbolOutsideAlphabetResets",
			patterns: []string{"AB"},
			text:     "A#AB",
			want:     []matcher.Match{{Position: 2, Pattern: "AB"}},
		},
		{
			name:     "MultibyteRunes",
			patterns: []string{"éclair", "air"},
			text:     "ééclair",
			want:     []matcher.Match{{Position: 1, Pattern: "éclair"}},
		},
		{
			name:     "MultibyteRunesShortPattern",
			patterns: []string{"éclair", "air"},
			text:     "lair",
			want:     []matcher.Match{{Position: 1, Pattern: "air"}},
		},
	}

	for _, tt := range tests {
		for _, mode := range searchModes {
			t.Run(tt.name+"/"+mode.name, func(t *testing.T) {
				opts := make([]matcher.Option, 0, 2)
				opts = append(opts, mode.opts...)
				if tt.alphabet != "" {
					opts = append(opts, matcher.WithAlphabet(tt.alphabet))
				}

				m, err := matcher.BuildAhoCorasick(tt.patterns, opts...)
				require.NoError(t, err)
				assert.Equal(t, tt.want, m.FindAll(tt.text))
			})
		}
	}
}

// A state reports only its own pattern. When a longer pattern's walk covers
// the end of a shorter one, the shorter occurrence is not surfaced.
func TestAhoCorasick_ShorterSuffixPatternShadowed(t *testing.T) {
	for _, mode := range searchModes {
		t.Run(mode.name, func(t *testing.T) {
			m, err := matcher.BuildAhoCorasick([]string{"AB", "B"}, mode.opts...)
			require.NoError(t, err)

			assert.Equal(t, []matcher.Match{{Position: 0, Pattern: "AB"}}, m.FindAll("AB"))
			assert.Equal(t, []matcher.Match{
				{Position: 0, Pattern: "B"},
				{Position: 1, Pattern: "B"},
			}, m.FindAll("BB"))
		})
	}
}

func TestAhoCorasick_PatternMap(t *testing.T) {
	t.Run("PrefixBookkeeping", func(t *testing.T) {
		m, err := matcher.BuildAhoCorasick([]string{"ABC"})
		require.NoError(t, err)

		assert.Equal(t, map[automaton.State]string{
			0: "",
			1: "",
			2: "A",
			3: "ABC",
		}, m.PatternMap())
	})

	t.Run("PrefixPatternLandsOnExistingState", func(t *testing.T) {
		m, err := matcher.BuildAhoCorasick([]string{"ABABAC", "ABAB"})
		require.NoError(t, err)

		assert.Equal(t, map[automaton.State]string{
			0: "",
			1: "",
			2: "A",
			3: "AB",
			4: "ABAB",
			5: "ABAB",
			6: "ABABAC",
		}, m.PatternMap())
	})
}

func TestAhoCorasick_FailFunctions(t *testing.T) {
	tests := []struct {
		name     string
		patterns []string
		want     []automaton.State
	}{
		{
			name:     "InterleavedBranches",
			patterns: []string{"ABBAB", "BABBA"},
			want:     []automaton.State{0, 6, 6, 7, 8, 0, 1, 2, 3, 4, 0},
		},
		{
			name:     "TwoShortBranches",
			patterns: []string{"AB", "CA"},
			want:     []automaton.State{0, 0, 0, 1, 0},
		},
	}

	for _, tt := range tests {
		for _, mode := range searchModes {
			t.Run(tt.name+"/"+mode.name, func(t *testing.T) {
				m, err := matcher.BuildAhoCorasick(tt.patterns, mode.opts...)
				require.NoError(t, err)
				assert.Equal(t, tt.want, m.FailFunctions())
			})
		}
	}
}

func TestAhoCorasick_Accessors(t *testing.T) {
	m, err := matcher.BuildAhoCorasick([]string{"ABBAB", "BABBA"})
	require.NoError(t, err)

	assert.Equal(t, matcher.AlgorithmAhoCorasick, m.Algorithm())
	assert.Equal(t, []string{"ABBAB", "BABBA"}, m.Patterns())
	assert.Equal(t, 11, m.Automaton().NumStates())
	assert.Equal(t, []rune("AB"), m.Automaton().Alphabet())
}

func TestAhoCorasick_SearchStopsEarly(t *testing.T) {
	m, err := matcher.BuildAhoCorasick([]string{"AB"})
	require.NoError(t, err)

	var got []matcher.Match
	for pos, pattern := range m.Search("ABAB") {
		got = append(got, matcher.Match{Position: pos, Pattern: pattern})
		break
	}
	assert.Equal(t, []matcher.Match{{Position: 0, Pattern: "AB"}}, got)
	assert.Len(t, m.FindAll("ABAB"), 2)
}

func TestAhoCorasick_RepeatedSearchesStable(t *testing.T) {
	m, err := matcher.BuildAhoCorasick([]string{"ABBAB", "BABBA"}, matcher.WithPrecompute(false))
	require.NoError(t, err)

	first := m.FindAll("ABABBABBBA")
	require.Len(t, first, 2)
	assert.Equal(t, first, m.FindAll("ABABBABBBA"))
}
