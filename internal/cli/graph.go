package cli

import (
	"fmt"

	"github.com/aretw0/espalier/internal/presentation/graph"
)

// GraphOptions contains all the configuration for the graph command.
type GraphOptions struct {
	Patterns     []string
	PatternsFile string
	DFAFile      string
	Algorithm    string
	Alphabet     string
	Debug        bool
}

// ExecuteGraph builds or loads an automaton and prints its Mermaid diagram.
func ExecuteGraph(opts GraphOptions) error {
	logger := createLogger(opts.Debug)

	// The diagram draws success edges and fail links only, so the on-the-fly
	// strategy suffices and sparse records stay graphable.
	m, err := resolveSearchMatcher(SearchOptions{
		Patterns:     opts.Patterns,
		PatternsFile: opts.PatternsFile,
		DFAFile:      opts.DFAFile,
		Algorithm:    opts.Algorithm,
		Alphabet:     opts.Alphabet,
		NoPrecompute: true,
	}, logger, true)
	if err != nil {
		return err
	}

	fmt.Print(graph.GenerateMermaid(m.Record()))
	return nil
}
