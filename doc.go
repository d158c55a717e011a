/*
Package espalier is a finite-automaton string matching engine implementing the Knuth-Morris-Pratt and Aho-Corasick algorithms over a shared deterministic-automaton core.

It separates the automaton structure (states, alphabet, transitions) from the search strategy (precomputed transition tables or on-the-fly resolution with caching) and from persistence (JSON records stored on disk or in Redis).

# Concept

Espalier compiles one or more patterns into a deterministic finite automaton and then walks text through it, reporting every occurrence of every pattern in a single pass. Building is separated from searching: an automaton can be built once, saved as a JSON record, and reopened later by any process. This Hexagonal Architecture keeps the core free of I/O; storage backends, the HTTP server, and the MCP server are adapters around the same engine.

# Key Features

  - Single and Multi Pattern: KMP for one pattern, Aho-Corasick for pattern sets, behind one Matcher interface.
  - Two Search Modes: fully precomputed transition tables for read-only sharing, or lazy failure-edge resolution with caching for cheap builds.
  - Persistence: automaton records round-trip through JSON and can be stored on the filesystem or in Redis.
  - Streaming Results: matches are yielded as they are found, so a search can stop early without scanning the rest of the text.

# Usage

Build a matcher from patterns and search, or save it and reopen it later through an Archive.

	package main

	import (
		"context"
		"fmt"
		"log"

		"github.com/aretw0/espalier"
	)

	func main() {
		// Build a multi-pattern matcher
		m, err := espalier.Build(espalier.AlgorithmAhoCorasick, []string{"he", "she", "his"})
		if err != nil {
			log.Fatal(err)
		}

		// Search reports (position, pattern) for every occurrence
		for _, match := range m.FindAll("ushers") {
			fmt.Printf("%q at %d\n", match.Pattern, match.Position)
		}

		// Persist the automaton for later runs
		archive := espalier.NewArchive("") // defaults to .espalier/records
		ctx := context.Background()
		if err := archive.Save(ctx, "pronouns", m); err != nil {
			log.Fatal(err)
		}

		// Reopen without rebuilding
		reopened, err := archive.Open(ctx, "pronouns")
		if err != nil {
			log.Fatal(err)
		}
		fmt.Println(len(reopened.FindAll("she sells seashells")))
	}
*/
package espalier
