package matcher

import (
	"fmt"
	"iter"
	"maps"
	"slices"
	"unicode/utf8"

	"github.com/aretw0/espalier/pkg/automaton"
)

// AhoCorasick is the multi-pattern matcher. Its automaton is a trie of all
// pattern prefixes with failure functions computed over it in breadth-first
// order, so one pass over the text finds every occurrence of every pattern.
type AhoCorasick struct {
	automaton  *automaton.Automaton
	fail       []automaton.State
	patterns   []string
	patternMap map[automaton.State]string
	lengths    map[automaton.State]int
	precompute bool
}

// BuildAhoCorasick constructs a multi-pattern matcher. The alphabet is
// derived from the patterns unless WithAlphabet fixes one.
func BuildAhoCorasick(patterns []string, opts ...Option) (*AhoCorasick, error) {
	cfg := newConfig(opts)
	if len(patterns) == 0 {
		return nil, ErrNoPatterns
	}
	for _, p := range patterns {
		if p == "" {
			return nil, ErrEmptyPattern
		}
	}

	a := automaton.New(alphabetOf(cfg.alphabet, patterns...))
	if _, err := a.AddState(false, true); err != nil {
		return nil, err
	}

	pm := map[automaton.State]string{0: ""}
	for _, p := range patterns {
		if err := insertPattern(a, pm, p); err != nil {
			return nil, fmt.Errorf("pattern %q: %w", p, err)
		}
	}

	// Failure resolution and row completion mutate rows the traversal
	// reads, so freeze the edge order first.
	seq, err := a.BreadthFirst()
	if err != nil {
		return nil, err
	}
	edges := slices.Collect(seq)

	fail := make([]automaton.State, a.NumStates())
	for _, e := range edges {
		if e.From == 0 {
			// States one symbol deep fall back to the root.
			continue
		}
		fail[e.To-1] = resolveFail(a, fail, e)
	}

	if cfg.precompute {
		if err := completeRoot(a); err != nil {
			return nil, err
		}
		for _, e := range edges {
			if err := completeState(a, e.To, fail[e.To-1]); err != nil {
				return nil, err
			}
		}
	}

	return &AhoCorasick{
		automaton:  a,
		fail:       fail,
		patterns:   slices.Clone(patterns),
		patternMap: pm,
		lengths:    runeLengths(pm),
		precompute: cfg.precompute,
	}, nil
}

// insertPattern extends the trie with one pattern. It walks existing edges as
// far as they match, allocates states for the remaining suffix, and records
// the prefix each new state represents. The landing state becomes accepting
// and maps to the full pattern.
func insertPattern(a *automaton.Automaton, pm map[automaton.State]string, pattern string) error {
	state, ok := a.InitialState()
	if !ok {
		return automaton.ErrNoInitialState
	}
	syms := []rune(pattern)

	i := 0
	for i < len(syms) {
		to, ok := a.Transition(state, syms[i])
		if !ok {
			break
		}
		state = to
		i++
	}

	if i == len(syms) {
		// The pattern is a prefix of one inserted earlier.
		pm[state] = pattern
		return a.SetAccepting(state, true)
	}

	for j := i; j < len(syms); j++ {
		s, err := a.AddState(j == len(syms)-1, false)
		if err != nil {
			return err
		}
		pm[s] = string(syms[:j])
		if err := a.AddTransition(state, syms[j], s, automaton.Success); err != nil {
			return err
		}
		state = s
	}
	pm[state] = pattern
	return nil
}

// resolveFail finds the failure target of the state e.To by chasing the
// failure chain from its parent until some state has a success edge on
// e.Symbol. The chain only visits shallower states, so their entries are
// already resolved.
func resolveFail(a *automaton.Automaton, fail []automaton.State, e automaton.Edge) automaton.State {
	j := fail[e.From-1]
	for {
		if to, ok := a.Transition(j, e.Symbol); ok {
			return to
		}
		if j == 0 {
			return 0
		}
		j = fail[j-1]
	}
}

func runeLengths(pm map[automaton.State]string) map[automaton.State]int {
	lengths := make(map[automaton.State]int, len(pm))
	for s, p := range pm {
		lengths[s] = utf8.RuneCountInString(p)
	}
	return lengths
}

// Algorithm returns AlgorithmAhoCorasick.
func (m *AhoCorasick) Algorithm() Algorithm {
	return AlgorithmAhoCorasick
}

// Patterns returns the patterns this matcher reports. For a matcher restored
// from a record without a pattern list, they are recovered from the pattern
// map of the accepting states.
func (m *AhoCorasick) Patterns() []string {
	return m.recordPatterns()
}

// Automaton exposes the underlying transition table.
func (m *AhoCorasick) Automaton() *automaton.Automaton {
	return m.automaton
}

// FailFunctions returns a copy of the failure-function array. Entry i holds
// the failure target of state i+1; the final entry is unused and zero.
func (m *AhoCorasick) FailFunctions() []automaton.State {
	return slices.Clone(m.fail)
}

// PatternMap returns a copy of the state-to-prefix mapping.
func (m *AhoCorasick) PatternMap() map[automaton.State]string {
	return maps.Clone(m.patternMap)
}

// Search lazily yields (position, pattern) for every occurrence of every
// pattern, including overlapping ones. Positions count runes. In on-the-fly
// mode the walk caches resolved failure edges, mutating the matcher, so
// concurrent searches must not share it; precomputed matchers are read-only.
func (m *AhoCorasick) Search(text string) iter.Seq2[int, string] {
	return func(yield func(int, string) bool) {
		state := automaton.State(0)
		index := 0
		for _, sym := range text {
			state = m.step(state, sym)
			if ok, err := m.automaton.IsAccepting(state); err == nil && ok {
				pattern := m.patternMap[state]
				if !yield(index-m.lengths[state]+1, pattern) {
					return
				}
			}
			index++
		}
	}
}

// FindAll is the eager form of Search.
func (m *AhoCorasick) FindAll(text string) []Match {
	return collect(m.Search(text))
}

func (m *AhoCorasick) step(state automaton.State, sym rune) automaton.State {
	if m.precompute {
		return stepComplete(m.automaton, state, sym)
	}
	return stepLazy(m.automaton, m.fail, state, sym)
}

// Record captures the matcher as a persisted envelope.
func (m *AhoCorasick) Record() *Record {
	return &Record{
		Algorithm:     AlgorithmAhoCorasick,
		Patterns:      m.recordPatterns(),
		Automaton:     m.automaton.Record(),
		FailFunctions: slices.Clone(m.fail),
		PatternMap:    maps.Clone(m.patternMap),
	}
}

func (m *AhoCorasick) recordPatterns() []string {
	if m.patterns != nil {
		return slices.Clone(m.patterns)
	}
	var patterns []string
	for s := automaton.State(0); int(s) < m.automaton.NumStates(); s++ {
		if ok, err := m.automaton.IsAccepting(s); err == nil && ok {
			patterns = append(patterns, m.patternMap[s])
		}
	}
	return patterns
}

func loadAhoCorasick(rec *Record, cfg config, strict bool) (*AhoCorasick, error) {
	a, err := automaton.FromRecord(rec.Automaton)
	if err != nil {
		return nil, err
	}
	if a.NumStates() == 0 {
		return nil, fmt.Errorf("multi-pattern record has no states: %w", automaton.ErrMalformedRecord)
	}
	if rec.PatternMap == nil {
		return nil, fmt.Errorf("multi-pattern record has no pattern map: %w", automaton.ErrMalformedRecord)
	}

	pm := make(map[automaton.State]string, len(rec.PatternMap))
	for s, p := range rec.PatternMap {
		if int(s) < 0 || int(s) >= a.NumStates() {
			return nil, fmt.Errorf("pattern map names state %d of %d: %w", s, a.NumStates(), automaton.ErrMalformedRecord)
		}
		pm[s] = p
	}
	for s := automaton.State(0); int(s) < a.NumStates(); s++ {
		accepting, err := a.IsAccepting(s)
		if err != nil {
			return nil, err
		}
		if accepting {
			if _, present := pm[s]; !present {
				return nil, fmt.Errorf("accepting state %d missing from pattern map: %w", s, automaton.ErrMalformedRecord)
			}
		}
	}

	fail := rec.FailFunctions
	if fail == nil {
		if strict {
			return nil, fmt.Errorf("record has no fail functions: %w", automaton.ErrMalformedRecord)
		}
		fail = make([]automaton.State, a.NumStates())
	} else {
		if len(fail) < a.NumStates()-1 {
			return nil, fmt.Errorf("fail functions cover %d states, automaton has %d: %w",
				len(fail), a.NumStates(), automaton.ErrMalformedRecord)
		}
		for i, target := range fail {
			if target < 0 || int(target) >= a.NumStates() {
				return nil, fmt.Errorf("fail function %d targets state %d: %w", i, target, automaton.ErrMalformedRecord)
			}
		}
		fail = slices.Clone(fail)
		for len(fail) < a.NumStates() {
			fail = append(fail, 0)
		}
	}

	return &AhoCorasick{
		automaton:  a,
		fail:       fail,
		patterns:   slices.Clone(rec.Patterns),
		patternMap: pm,
		lengths:    runeLengths(pm),
		precompute: cfg.precompute,
	}, nil
}
