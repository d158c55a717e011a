package validator

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/aretw0/espalier/pkg/automaton"
	"github.com/aretw0/espalier/pkg/matcher"
)

// CheckRecord inspects a persisted matcher record for structural problems
// beyond what loading verifies: states that no success edge reaches, failure
// links that do not point to a shallower state, and accepting states without
// a pattern to report. All problems found are reported together.
func CheckRecord(rec *matcher.Record) error {
	if rec == nil {
		return fmt.Errorf("nil record: %w", automaton.ErrMalformedRecord)
	}
	a, err := automaton.FromRecord(rec.Automaton)
	if err != nil {
		return err
	}

	var errors []string

	initial, hasInitial := a.InitialState()
	if a.NumStates() == 0 {
		errors = append(errors, "record declares no states")
	} else if !hasInitial {
		errors = append(errors, "record declares no initial state")
	}

	if hasInitial && a.NumStates() > 0 {
		depth := crawl(a, initial)
		for s := automaton.State(0); int(s) < a.NumStates(); s++ {
			if _, reached := depth[s]; !reached {
				errors = append(errors, fmt.Sprintf("state %d is unreachable through success edges", s))
			}
		}
		errors = append(errors, checkFailFunctions(a, rec.FailFunctions, depth)...)
	}

	errors = append(errors, checkPatternMap(a, rec.PatternMap)...)

	if len(errors) > 0 {
		return fmt.Errorf("found %d errors:\n- %s", len(errors), strings.Join(errors, "\n- "))
	}
	return nil
}

// Complete reports whether the record's transition table covers every
// (state, symbol) pair. Only complete tables can serve precomputed searches;
// sparse ones need the on-the-fly mode.
func Complete(rec *matcher.Record) (bool, error) {
	if rec == nil {
		return false, fmt.Errorf("nil record: %w", automaton.ErrMalformedRecord)
	}
	a, err := automaton.FromRecord(rec.Automaton)
	if err != nil {
		return false, err
	}
	symbols := a.Alphabet()
	for s := automaton.State(0); int(s) < a.NumStates(); s++ {
		for _, sym := range symbols {
			if !a.HasTransition(s, sym) {
				return false, nil
			}
		}
	}
	return true, nil
}

// crawl walks the success edges breadth-first from the initial state and
// returns the depth at which each state was first reached. Failure edges are
// deliberately ignored: every state of a well formed automaton hangs off the
// root through success edges alone.
func crawl(a *automaton.Automaton, initial automaton.State) map[automaton.State]int {
	depth := map[automaton.State]int{initial: 0}
	queue := []automaton.State{initial}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		for _, sym := range a.Alphabet() {
			to, ok := a.Transition(current, sym)
			if !ok {
				continue
			}
			if kind, _ := a.TransitionKind(current, sym); kind != automaton.Success {
				continue
			}
			if _, seen := depth[to]; seen {
				continue
			}
			depth[to] = depth[current] + 1
			queue = append(queue, to)
		}
	}
	return depth
}

// checkFailFunctions verifies the failure-link array: present, covering
// every state past the root, in bounds, and always pointing strictly closer
// to the root. Entry i belongs to state i+1; a trailing entry beyond the
// last state is tolerated as the conventional unused slot.
func checkFailFunctions(a *automaton.Automaton, fail []automaton.State, depth map[automaton.State]int) []string {
	n := a.NumStates()
	if fail == nil {
		if n > 1 {
			return []string{"record carries no fail functions"}
		}
		return nil
	}

	var errors []string
	if len(fail) < n-1 {
		errors = append(errors, fmt.Sprintf("fail functions cover %d states, automaton has %d", len(fail), n))
	}
	if len(fail) > n {
		errors = append(errors, fmt.Sprintf("fail functions name %d states, automaton has %d", len(fail), n))
	}

	for i, target := range fail {
		state := automaton.State(i + 1)
		if int(state) >= n {
			break
		}
		if target < 0 || int(target) >= n {
			errors = append(errors, fmt.Sprintf("fail function of state %d targets state %d, out of range", state, target))
			continue
		}
		stateDepth, stateReached := depth[state]
		targetDepth, targetReached := depth[target]
		if !stateReached || !targetReached {
			// Unreachable states are already reported by the crawl.
			continue
		}
		if targetDepth >= stateDepth {
			errors = append(errors, fmt.Sprintf("state %d fails to state %d at depth %d, not closer to the root",
				state, target, targetDepth))
		}
	}
	return errors
}

// checkPatternMap verifies that every accepting state can report a pattern.
func checkPatternMap(a *automaton.Automaton, pm map[automaton.State]string) []string {
	if pm == nil {
		return nil
	}

	var errors []string
	for _, s := range slices.Sorted(maps.Keys(pm)) {
		if int(s) < 0 || int(s) >= a.NumStates() {
			errors = append(errors, fmt.Sprintf("pattern map names state %d, out of range", s))
		}
	}
	for s := automaton.State(0); int(s) < a.NumStates(); s++ {
		accepting, err := a.IsAccepting(s)
		if err != nil || !accepting {
			continue
		}
		pattern, present := pm[s]
		if !present {
			errors = append(errors, fmt.Sprintf("accepting state %d has no pattern map entry", s))
			continue
		}
		if pattern == "" {
			errors = append(errors, fmt.Sprintf("accepting state %d maps to an empty pattern", s))
		}
	}
	return errors
}
