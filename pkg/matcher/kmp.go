package matcher

import (
	"fmt"
	"iter"
	"slices"

	"github.com/aretw0/espalier/pkg/automaton"
)

// KMP is the single-pattern matcher. Its automaton is a chain of states, one
// per pattern prefix, and its failure functions are the classical prefix
// function of the pattern.
type KMP struct {
	automaton  *automaton.Automaton
	fail       []automaton.State
	pattern    string
	precompute bool
}

// BuildKMP constructs a single-pattern matcher. The alphabet is derived from
// the pattern unless WithAlphabet fixes one, in which case every pattern
// symbol must belong to it.
func BuildKMP(pattern string, opts ...Option) (*KMP, error) {
	cfg := newConfig(opts)
	if pattern == "" {
		return nil, ErrEmptyPattern
	}
	symbols := []rune(pattern)
	a := automaton.New(alphabetOf(cfg.alphabet, pattern))

	if _, err := a.AddState(false, true); err != nil {
		return nil, err
	}
	for i, sym := range symbols {
		s, err := a.AddState(i == len(symbols)-1, false)
		if err != nil {
			return nil, err
		}
		if err := a.AddTransition(automaton.State(i), sym, s, automaton.Success); err != nil {
			return nil, fmt.Errorf("pattern symbol %d: %w", i, err)
		}
	}

	fail := prefixFunction(a, symbols)

	if cfg.precompute {
		if err := completeRoot(a); err != nil {
			return nil, err
		}
		// Increasing state order is increasing depth here, so every state's
		// failure target is completed before the state itself.
		for s := automaton.State(1); s <= automaton.State(len(symbols)); s++ {
			if err := completeState(a, s, fail[s-1]); err != nil {
				return nil, err
			}
		}
	}

	return &KMP{
		automaton:  a,
		fail:       fail,
		pattern:    pattern,
		precompute: cfg.precompute,
	}, nil
}

// prefixFunction computes the failure target of every state past the root.
// Entry i holds the target of state i+1: the depth of the longest proper
// prefix of pattern[:i+1] that is also its suffix, found by chasing the
// failure chain until a success edge matches the next symbol.
func prefixFunction(a *automaton.Automaton, symbols []rune) []automaton.State {
	fail := make([]automaton.State, len(symbols))
	for i := 1; i < len(symbols); i++ {
		j := fail[i-1]
		for {
			if to, ok := a.Transition(j, symbols[i]); ok {
				fail[i] = to
				break
			}
			if j == 0 {
				break
			}
			j = fail[j-1]
		}
	}
	return fail
}

// Algorithm returns AlgorithmKMP.
func (m *KMP) Algorithm() Algorithm {
	return AlgorithmKMP
}

// Pattern returns the pattern this matcher was built for.
func (m *KMP) Pattern() string {
	return m.pattern
}

// Automaton exposes the underlying transition table.
func (m *KMP) Automaton() *automaton.Automaton {
	return m.automaton
}

// FailFunctions returns a copy of the failure-function array. Entry i holds
// the failure target of state i+1.
func (m *KMP) FailFunctions() []automaton.State {
	return slices.Clone(m.fail)
}

// Search lazily yields (position, pattern) for every occurrence of the
// pattern, including overlapping ones. Positions count runes. In on-the-fly
// mode the walk caches resolved failure edges, mutating the matcher, so
// concurrent searches must not share it; precomputed matchers are read-only.
func (m *KMP) Search(text string) iter.Seq2[int, string] {
	return func(yield func(int, string) bool) {
		state := automaton.State(0)
		index := 0
		for _, sym := range text {
			state = m.step(state, sym)
			if ok, err := m.automaton.IsAccepting(state); err == nil && ok {
				if !yield(index-int(state)+1, m.pattern) {
					return
				}
			}
			index++
		}
	}
}

// FindAll is the eager form of Search.
func (m *KMP) FindAll(text string) []Match {
	return collect(m.Search(text))
}

func (m *KMP) step(state automaton.State, sym rune) automaton.State {
	if m.precompute {
		return stepComplete(m.automaton, state, sym)
	}
	return stepLazy(m.automaton, m.fail, state, sym)
}

// Record captures the matcher as a persisted envelope.
func (m *KMP) Record() *Record {
	return &Record{
		Algorithm:     AlgorithmKMP,
		Pattern:       m.pattern,
		Automaton:     m.automaton.Record(),
		FailFunctions: slices.Clone(m.fail),
	}
}

func loadKMP(rec *Record, cfg config, strict bool) (*KMP, error) {
	a, err := automaton.FromRecord(rec.Automaton)
	if err != nil {
		return nil, err
	}
	if a.NumStates() == 0 {
		return nil, fmt.Errorf("single-pattern record has no states: %w", automaton.ErrMalformedRecord)
	}
	if rec.Pattern == "" {
		return nil, fmt.Errorf("single-pattern record has no pattern: %w", automaton.ErrMalformedRecord)
	}
	fail, err := loadFailFunctions(rec, a, strict)
	if err != nil {
		return nil, err
	}
	return &KMP{
		automaton:  a,
		fail:       fail,
		pattern:    rec.Pattern,
		precompute: cfg.precompute,
	}, nil
}

// loadFailFunctions validates the failure functions of a record against the
// automaton's state count. Strict loading requires the array to be present;
// the compatibility path synthesizes an all-root array instead.
func loadFailFunctions(rec *Record, a *automaton.Automaton, strict bool) ([]automaton.State, error) {
	fail := rec.FailFunctions
	if fail == nil {
		if strict {
			return nil, fmt.Errorf("record has no fail functions: %w", automaton.ErrMalformedRecord)
		}
		return make([]automaton.State, a.NumStates()-1), nil
	}
	if len(fail) < a.NumStates()-1 {
		return nil, fmt.Errorf("fail functions cover %d states, automaton has %d: %w",
			len(fail), a.NumStates(), automaton.ErrMalformedRecord)
	}
	for i, target := range fail {
		if target < 0 || int(target) >= a.NumStates() {
			return nil, fmt.Errorf("fail function %d targets state %d: %w", i, target, automaton.ErrMalformedRecord)
		}
	}
	return slices.Clone(fail), nil
}
