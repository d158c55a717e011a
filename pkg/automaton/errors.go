package automaton

import "errors"

// ErrDuplicateInitialState is returned when a second state requests initial status.
var ErrDuplicateInitialState = errors.New("initial state already defined")

// ErrNoInitialState is returned when a traversal is requested on an automaton
// that has no initial state.
var ErrNoInitialState = errors.New("no initial state")

// ErrInvalidState is returned when an operation references a state id outside
// the allocated range.
var ErrInvalidState = errors.New("state does not exist")

// ErrInvalidSymbol is returned when a transition symbol is not a member of the
// automaton's alphabet.
var ErrInvalidSymbol = errors.New("symbol not in alphabet")

// ErrDuplicateTransition is returned when a transition is added for a
// (state, symbol) pair that already has one.
var ErrDuplicateTransition = errors.New("transition already defined")

// ErrMalformedRecord is returned when a persisted record cannot be rebuilt into
// a valid automaton.
var ErrMalformedRecord = errors.New("malformed automaton record")

// ErrInvariant reports an internal consistency failure, such as a transition
// that must exist by construction being absent. It indicates a builder bug
// rather than a usage error.
var ErrInvariant = errors.New("automaton invariant violated")
