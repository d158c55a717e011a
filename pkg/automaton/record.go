package automaton

import (
	"fmt"
	"slices"
	"strconv"
)

// Record is the flat serialized form of an automaton, as written to and read
// from persisted JSON documents.
//
// States holds the highest allocated state index, so the state count is
// States+1; it is null when the automaton has no states. Alphabet is an
// unordered set of single-character symbols; it is emitted sorted so that
// serialized documents are deterministic, and consumers must treat it as a
// set. Transition tables are keyed by the decimal string form of the source
// state.
type Record struct {
	States          *State                      `json:"states" mapstructure:"states"`
	Alphabet        []string                    `json:"alphabet" mapstructure:"alphabet"`
	Transitions     map[string]map[string]State `json:"transitions" mapstructure:"transitions"`
	TransitionKinds map[string]map[string]Kind  `json:"transition_kinds" mapstructure:"transition_kinds"`
	InitialState    *State                      `json:"initial_state" mapstructure:"initial_state"`
	AcceptingStates []State                     `json:"accepting_states" mapstructure:"accepting_states"`
}

// Record captures the automaton as a serializable snapshot.
func (a *Automaton) Record() *Record {
	r := &Record{
		Alphabet:        make([]string, 0, len(a.alphabet)),
		Transitions:     make(map[string]map[string]State, len(a.transitions)),
		TransitionKinds: make(map[string]map[string]Kind, len(a.kinds)),
		AcceptingStates: make([]State, 0, len(a.accepting)),
	}
	if a.last >= 0 {
		last := a.last
		r.States = &last
	}
	for _, sym := range a.Alphabet() {
		r.Alphabet = append(r.Alphabet, string(sym))
	}
	for from, row := range a.transitions {
		out := make(map[string]State, len(row))
		for sym, to := range row {
			out[string(sym)] = to
		}
		r.Transitions[strconv.Itoa(int(from))] = out
	}
	for from, row := range a.kinds {
		out := make(map[string]Kind, len(row))
		for sym, kind := range row {
			out[string(sym)] = kind
		}
		r.TransitionKinds[strconv.Itoa(int(from))] = out
	}
	if a.hasInitial {
		initial := a.initial
		r.InitialState = &initial
	}
	for s := range a.accepting {
		r.AcceptingStates = append(r.AcceptingStates, s)
	}
	slices.Sort(r.AcceptingStates)
	return r
}

// FromRecord rebuilds an automaton from its serialized form. Records that
// reference states outside the declared range, symbols outside the alphabet,
// or that carry mismatched transition tables fail with ErrMalformedRecord.
func FromRecord(r *Record) (*Automaton, error) {
	if r == nil {
		return nil, fmt.Errorf("nil record: %w", ErrMalformedRecord)
	}
	alphabet := make([]rune, 0, len(r.Alphabet))
	for _, s := range r.Alphabet {
		sym, err := parseSymbol(s)
		if err != nil {
			return nil, err
		}
		alphabet = append(alphabet, sym)
	}
	a := New(alphabet)

	if r.States == nil {
		if len(r.Transitions) > 0 || len(r.TransitionKinds) > 0 ||
			r.InitialState != nil || len(r.AcceptingStates) > 0 {
			return nil, fmt.Errorf("record references states but declares none: %w", ErrMalformedRecord)
		}
		return a, nil
	}
	if *r.States < 0 {
		return nil, fmt.Errorf("negative state bound %d: %w", *r.States, ErrMalformedRecord)
	}
	a.last = *r.States

	if len(r.Transitions) != len(r.TransitionKinds) {
		return nil, fmt.Errorf("transition and kind tables disagree: %w", ErrMalformedRecord)
	}
	for fromKey, row := range r.Transitions {
		from, err := a.parseState(fromKey)
		if err != nil {
			return nil, err
		}
		kindRow, ok := r.TransitionKinds[fromKey]
		if !ok || len(kindRow) != len(row) {
			return nil, fmt.Errorf("state %d: transition and kind tables disagree: %w", from, ErrMalformedRecord)
		}
		dst := make(map[rune]State, len(row))
		dstKinds := make(map[rune]Kind, len(row))
		for symKey, to := range row {
			sym, err := parseSymbol(symKey)
			if err != nil {
				return nil, err
			}
			if !a.InAlphabet(sym) {
				return nil, fmt.Errorf("symbol %q outside alphabet: %w", sym, ErrMalformedRecord)
			}
			if to < 0 || to > a.last {
				return nil, fmt.Errorf("transition target %d out of range: %w", to, ErrMalformedRecord)
			}
			kind, ok := kindRow[symKey]
			if !ok {
				return nil, fmt.Errorf("state %d on symbol %q has no kind: %w", from, sym, ErrMalformedRecord)
			}
			if !kind.Valid() {
				return nil, fmt.Errorf("unknown transition kind %q: %w", kind, ErrMalformedRecord)
			}
			dst[sym] = to
			dstKinds[sym] = kind
		}
		a.transitions[from] = dst
		a.kinds[from] = dstKinds
	}

	if r.InitialState != nil {
		if *r.InitialState < 0 || *r.InitialState > a.last {
			return nil, fmt.Errorf("initial state %d out of range: %w", *r.InitialState, ErrMalformedRecord)
		}
		a.initial = *r.InitialState
		a.hasInitial = true
	}
	for _, s := range r.AcceptingStates {
		if s < 0 || s > a.last {
			return nil, fmt.Errorf("accepting state %d out of range: %w", s, ErrMalformedRecord)
		}
		a.accepting[s] = struct{}{}
	}
	return a, nil
}

func (a *Automaton) parseState(key string) (State, error) {
	n, err := strconv.Atoi(key)
	if err != nil {
		return 0, fmt.Errorf("state key %q: %w", key, ErrMalformedRecord)
	}
	s := State(n)
	if s < 0 || s > a.last {
		return 0, fmt.Errorf("state %d out of range: %w", s, ErrMalformedRecord)
	}
	return s, nil
}

func parseSymbol(key string) (rune, error) {
	runes := []rune(key)
	if len(runes) != 1 {
		return 0, fmt.Errorf("symbol %q is not a single character: %w", key, ErrMalformedRecord)
	}
	return runes[0], nil
}
