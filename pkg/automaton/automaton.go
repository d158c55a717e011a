package automaton

import (
	"fmt"
	"slices"
)

// State identifies a single automaton state. States are dense integers
// allocated from zero in the order they are added.
type State int

// Kind classifies a transition edge.
type Kind string

const (
	// Success marks an edge that is part of the core pattern structure
	// (a trie edge or prefix-chain edge).
	Success Kind = "success"
	// Failure marks a fallback edge inserted during completion or cached
	// while resolving a failure chain.
	Failure Kind = "failure"
)

// Valid reports whether k is a known transition kind.
func (k Kind) Valid() bool {
	return k == Success || k == Failure
}

// Automaton is a deterministic finite automaton over a fixed alphabet.
//
// The zero value is not usable; create instances with New. States and
// transitions are only ever added, never removed.
type Automaton struct {
	// last is the highest allocated state id, or -1 while no states exist.
	last        State
	alphabet    map[rune]struct{}
	transitions map[State]map[rune]State
	kinds       map[State]map[rune]Kind
	initial     State
	hasInitial  bool
	accepting   map[State]struct{}
}

// New creates an empty automaton over the given alphabet.
// Duplicate symbols are collapsed.
func New(alphabet []rune) *Automaton {
	set := make(map[rune]struct{}, len(alphabet))
	for _, sym := range alphabet {
		set[sym] = struct{}{}
	}
	return &Automaton{
		last:        -1,
		alphabet:    set,
		transitions: make(map[State]map[rune]State),
		kinds:       make(map[State]map[rune]Kind),
		accepting:   make(map[State]struct{}),
	}
}

// AddState allocates the next state id.
// Requesting a second initial state fails with ErrDuplicateInitialState.
func (a *Automaton) AddState(accepting, initial bool) (State, error) {
	if initial && a.hasInitial {
		return 0, ErrDuplicateInitialState
	}
	a.last++
	if initial {
		a.initial = a.last
		a.hasInitial = true
	}
	if accepting {
		a.accepting[a.last] = struct{}{}
	}
	return a.last, nil
}

// AddTransition adds an edge from one state to another on a symbol.
// Both states must exist, the symbol must be in the alphabet, and the
// (from, symbol) pair must not already have an edge.
func (a *Automaton) AddTransition(from State, sym rune, to State, kind Kind) error {
	if a.last < 0 {
		return fmt.Errorf("no states allocated: %w", ErrInvalidState)
	}
	if from < 0 || from > a.last {
		return fmt.Errorf("state %d: %w", from, ErrInvalidState)
	}
	if to < 0 || to > a.last {
		return fmt.Errorf("state %d: %w", to, ErrInvalidState)
	}
	if _, ok := a.alphabet[sym]; !ok {
		return fmt.Errorf("symbol %q: %w", sym, ErrInvalidSymbol)
	}
	row, ok := a.transitions[from]
	if !ok {
		row = make(map[rune]State)
		a.transitions[from] = row
		a.kinds[from] = make(map[rune]Kind)
	}
	if _, ok := row[sym]; ok {
		return fmt.Errorf("state %d on symbol %q: %w", from, sym, ErrDuplicateTransition)
	}
	row[sym] = to
	a.kinds[from][sym] = kind
	return nil
}

// Transition returns the target of the edge from a state on a symbol.
// Absence of an edge is not an error; the second result reports presence.
func (a *Automaton) Transition(from State, sym rune) (State, bool) {
	row, ok := a.transitions[from]
	if !ok {
		return 0, false
	}
	to, ok := row[sym]
	return to, ok
}

// HasTransition reports whether an edge exists from a state on a symbol.
func (a *Automaton) HasTransition(from State, sym rune) bool {
	_, ok := a.Transition(from, sym)
	return ok
}

// TransitionKind returns the kind of the edge from a state on a symbol,
// if one exists.
func (a *Automaton) TransitionKind(from State, sym rune) (Kind, bool) {
	row, ok := a.kinds[from]
	if !ok {
		return "", false
	}
	kind, ok := row[sym]
	return kind, ok
}

// IsAccepting reports whether a state is accepting.
// Unlike Transition, referencing a state outside the allocated range is an
// error rather than a negative answer.
func (a *Automaton) IsAccepting(s State) (bool, error) {
	if s < 0 || s > a.last {
		return false, fmt.Errorf("state %d: %w", s, ErrInvalidState)
	}
	_, ok := a.accepting[s]
	return ok, nil
}

// SetAccepting marks or unmarks a state as accepting.
func (a *Automaton) SetAccepting(s State, accepting bool) error {
	if s < 0 || s > a.last {
		return fmt.Errorf("state %d: %w", s, ErrInvalidState)
	}
	if accepting {
		a.accepting[s] = struct{}{}
	} else {
		delete(a.accepting, s)
	}
	return nil
}

// NumStates returns the number of allocated states.
func (a *Automaton) NumStates() int {
	return int(a.last) + 1
}

// InitialState returns the initial state, if one has been set.
func (a *Automaton) InitialState() (State, bool) {
	return a.initial, a.hasInitial
}

// InAlphabet reports whether a symbol belongs to the automaton's alphabet.
func (a *Automaton) InAlphabet(sym rune) bool {
	_, ok := a.alphabet[sym]
	return ok
}

// Alphabet returns the alphabet as a sorted slice.
func (a *Automaton) Alphabet() []rune {
	syms := make([]rune, 0, len(a.alphabet))
	for sym := range a.alphabet {
		syms = append(syms, sym)
	}
	slices.Sort(syms)
	return syms
}
