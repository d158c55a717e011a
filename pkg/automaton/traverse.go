package automaton

import (
	"iter"
	"slices"
)

// Edge is a single (from, symbol, to) transition triple.
type Edge struct {
	From   State
	Symbol rune
	To     State
}

// BreadthFirst returns a lazy breadth-first traversal of the transition table,
// or ErrNoInitialState when no initial state has been set.
//
// The traversal is seeded with the initial state's outgoing edges, excluding
// self-loops, and yields every distinct reachable edge exactly once. A state's
// own outgoing edges are enumerated only when one of its incoming edges is
// dequeued, so edges at smaller depth are always yielded before edges at
// greater depth. Failure-link propagation in pkg/matcher relies on exactly
// this ordering. Sibling edges of one state are yielded in symbol order.
//
// The traversal reads the table live; callers that mutate the table while
// iterating should collect the sequence first.
func (a *Automaton) BreadthFirst() (iter.Seq[Edge], error) {
	if !a.hasInitial {
		return nil, ErrNoInitialState
	}
	root := a.initial
	seq := func(yield func(Edge) bool) {
		var queue []Edge
		visited := make(map[Edge]struct{})
		enqueue := func(e Edge) {
			if _, seen := visited[e]; seen {
				return
			}
			visited[e] = struct{}{}
			queue = append(queue, e)
		}

		for _, sym := range a.rowSymbols(root) {
			to := a.transitions[root][sym]
			if to == root {
				continue
			}
			enqueue(Edge{From: root, Symbol: sym, To: to})
		}
		for len(queue) > 0 {
			e := queue[0]
			queue = queue[1:]
			if !yield(e) {
				return
			}
			for _, sym := range a.rowSymbols(e.To) {
				enqueue(Edge{From: e.To, Symbol: sym, To: a.transitions[e.To][sym]})
			}
		}
	}
	return seq, nil
}

// rowSymbols returns the symbols with outgoing edges from a state, sorted so
// that traversal order is deterministic.
func (a *Automaton) rowSymbols(s State) []rune {
	row, ok := a.transitions[s]
	if !ok {
		return nil
	}
	syms := make([]rune, 0, len(row))
	for sym := range row {
		syms = append(syms, sym)
	}
	slices.Sort(syms)
	return syms
}
