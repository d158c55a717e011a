package matcher

import (
	"fmt"

	"github.com/aretw0/espalier/pkg/automaton"
)

// stepComplete advances one symbol through a fully precomputed table. Symbols
// outside the alphabet reset the walk to the root. A missing transition on an
// alphabet symbol cannot happen in a correctly built table, so it panics with
// an error wrapping automaton.ErrInvariant rather than returning one.
func stepComplete(a *automaton.Automaton, state automaton.State, sym rune) automaton.State {
	if to, ok := a.Transition(state, sym); ok {
		return to
	}
	if !a.InAlphabet(sym) {
		return 0
	}
	panic(fmt.Errorf("state %d has no transition on %q: %w", state, sym, automaton.ErrInvariant))
}

// stepLazy advances one symbol using the failure functions. When the state has
// no edge for the symbol, the failure chain is followed until some ancestor
// state has one or the root is reached, and the resolved edge is cached on the
// original state so the chain is never rewalked for that (state, symbol) pair.
// Symbols outside the alphabet reset the walk to the root without caching.
func stepLazy(a *automaton.Automaton, fail []automaton.State, state automaton.State, sym rune) automaton.State {
	if to, ok := a.Transition(state, sym); ok {
		return to
	}
	if !a.InAlphabet(sym) {
		return 0
	}
	j := automaton.State(0)
	if state > 0 {
		j = fail[state-1]
	}
	var to automaton.State
	for {
		if t, ok := a.Transition(j, sym); ok {
			to = t
			break
		}
		if j == 0 {
			break
		}
		j = fail[j-1]
	}
	// Cannot fail: absence and alphabet membership were checked above.
	_ = a.AddTransition(state, sym, to, automaton.Failure)
	return to
}

// completeRoot gives the root a failure self-loop on every symbol that does
// not already start a success edge. The root never falls back anywhere but
// itself.
func completeRoot(a *automaton.Automaton) error {
	for _, sym := range a.Alphabet() {
		if a.HasTransition(0, sym) {
			continue
		}
		if err := a.AddTransition(0, sym, 0, automaton.Failure); err != nil {
			return err
		}
	}
	return nil
}

// completeState fills every missing transition of a state with a failure edge
// resolved through the row of its failure target. The target's row must
// already be complete, which holds when states are completed in order of
// increasing depth.
func completeState(a *automaton.Automaton, s, failTarget automaton.State) error {
	for _, sym := range a.Alphabet() {
		if a.HasTransition(s, sym) {
			continue
		}
		to, ok := a.Transition(failTarget, sym)
		if !ok {
			return fmt.Errorf("state %d has no transition on %q: %w", failTarget, sym, automaton.ErrInvariant)
		}
		if err := a.AddTransition(s, sym, to, automaton.Failure); err != nil {
			return err
		}
	}
	return nil
}
