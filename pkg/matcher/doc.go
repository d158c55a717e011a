/*
Package matcher builds and drives the two automaton-based string matchers:
a single-pattern matcher using the classical prefix-function construction
(Knuth-Morris-Pratt) and a multi-pattern matcher using a trie with failure
links (Aho-Corasick).

Both matchers walk text through a pkg/automaton table and stream matches as
(position, pattern) pairs, where positions count runes from the start of the
text. Two transition strategies are supported:

  - Precomputed: every (state, symbol) transition is filled in at build time.
    Searching is a plain table walk and the matcher is read-only, so one
    instance may serve concurrent searches.
  - On the fly: only the pattern edges and the failure-function values exist
    after building. Failure chains are resolved during the search and cached
    as new failure edges, which mutates the matcher; concurrent searches must
    not share an instance in this mode.

Matchers serialize to a Record envelope and can be rebuilt from one, including
records written without an algorithm tag by earlier versions of the format.
*/
package matcher
