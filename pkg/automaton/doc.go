/*
Package automaton implements the deterministic finite automaton (DFA) that backs
the string matchers in this module.

The automaton is a plain state and transition table. It knows nothing about
patterns or search: states are dense integers allocated from zero, transitions
are keyed by (state, symbol) and classified as success or failure edges, and a
subset of states is marked accepting. Builders in pkg/matcher populate the table
and drive searches over it.

# Key Entities

  - State: integer state identifier; state 0 is the root once any state exists.
  - Kind: classifies an edge as Success (pattern structure) or Failure (fallback).
  - Edge: a (from, symbol, to) triple, produced by breadth-first traversal.
  - Record: the flat serialized form used at the persistence boundary.

The table is populated incrementally and never shrinks. During a search the
table is either read-only (every transition precomputed) or extended with cached
failure edges resolved on the fly; see pkg/matcher for both modes.
*/
package automaton
