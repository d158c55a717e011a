package matcher

import (
	"fmt"
	"iter"
	"log/slog"
	"slices"
)

// Algorithm names a matcher variant. The set is closed: exactly the
// single-pattern and multi-pattern constructions exist.
type Algorithm string

const (
	// AlgorithmKMP is the single-pattern prefix-function matcher.
	AlgorithmKMP Algorithm = "kmp"
	// AlgorithmAhoCorasick is the multi-pattern trie matcher.
	AlgorithmAhoCorasick Algorithm = "aho-corasick"
)

// ParseAlgorithm converts a name into an Algorithm.
func ParseAlgorithm(name string) (Algorithm, error) {
	switch Algorithm(name) {
	case AlgorithmKMP:
		return AlgorithmKMP, nil
	case AlgorithmAhoCorasick:
		return AlgorithmAhoCorasick, nil
	default:
		return "", fmt.Errorf("%q: %w", name, ErrUnknownAlgorithm)
	}
}

// Match is one pattern occurrence. Position is the rune index in the searched
// text where the occurrence starts.
type Match struct {
	Position int    `json:"position"`
	Pattern  string `json:"pattern"`
}

// Matcher is the capability shared by both variants: stream matches over a
// text and serialize to a persisted record.
//
// Search starts a fresh walk from the root on every call and yields matches
// lazily in text order; consuming the sequence is a forward-only single pass.
// Stopping consumption early abandons the walk without cost.
type Matcher interface {
	Algorithm() Algorithm
	Search(text string) iter.Seq2[int, string]
	FindAll(text string) []Match
	Record() *Record
}

// Option configures building and loading.
type Option func(*config)

type config struct {
	precompute bool
	alphabet   string
	logger     *slog.Logger
}

func newConfig(opts []Option) config {
	cfg := config{
		precompute: true,
		logger:     slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// WithPrecompute toggles transition precomputation. When enabled, which is the
// default, every (state, symbol) transition is filled in at build time and
// searching never touches the failure functions. When disabled the automaton
// stays sparse and failure chains are resolved and cached during searches.
func WithPrecompute(enabled bool) Option {
	return func(cfg *config) {
		cfg.precompute = enabled
	}
}

// WithAlphabet fixes the automaton alphabet instead of deriving it from the
// patterns. Building fails if a pattern uses a symbol outside the set.
func WithAlphabet(symbols string) Option {
	return func(cfg *config) {
		cfg.alphabet = symbols
	}
}

// WithLogger sets a structured logger. By default nothing is logged.
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *config) {
		if logger != nil {
			cfg.logger = logger
		}
	}
}

// Build constructs the matcher variant for the given algorithm from a pattern
// set. The single-pattern algorithm uses the first pattern and logs a warning
// when more are supplied.
func Build(alg Algorithm, patterns []string, opts ...Option) (Matcher, error) {
	switch alg {
	case AlgorithmKMP:
		if len(patterns) == 0 {
			return nil, ErrNoPatterns
		}
		if len(patterns) > 1 {
			cfg := newConfig(opts)
			cfg.logger.Warn("single-pattern algorithm ignores extra patterns",
				"pattern", patterns[0], "ignored", len(patterns)-1)
		}
		return BuildKMP(patterns[0], opts...)
	case AlgorithmAhoCorasick:
		return BuildAhoCorasick(patterns, opts...)
	default:
		return nil, fmt.Errorf("%q: %w", alg, ErrUnknownAlgorithm)
	}
}

// alphabetOf returns the automaton alphabet: the distinct symbols of the
// explicit set when one is given, otherwise every symbol used by the patterns.
func alphabetOf(explicit string, patterns ...string) []rune {
	source := patterns
	if explicit != "" {
		source = []string{explicit}
	}
	set := make(map[rune]struct{})
	for _, s := range source {
		for _, sym := range s {
			set[sym] = struct{}{}
		}
	}
	symbols := make([]rune, 0, len(set))
	for sym := range set {
		symbols = append(symbols, sym)
	}
	slices.Sort(symbols)
	return symbols
}

func collect(seq iter.Seq2[int, string]) []Match {
	var matches []Match
	for pos, pattern := range seq {
		matches = append(matches, Match{Position: pos, Pattern: pattern})
	}
	return matches
}
