package espalier

import (
	"fmt"
	"io"
	"strings"
)

// Runner streams matches from an input text using provided IO.
// This allows for easy testing and integration with different frontends (CLI, pipes, etc).
type Runner struct {
	Input    io.Reader
	Output   io.Writer
	Headless bool
	Renderer ContentRenderer
}

// ContentRenderer is a function that transforms a line before outputting it.
// This allows for TUI rendering (markdown to ANSI) without coupling the core package.
type ContentRenderer func(string) (string, error)

// NewRunner creates a new Runner with unset IO.
// Callers wire Input/Output explicitly (os.Stdin/os.Stdout in the CLI).
func NewRunner() *Runner {
	return &Runner{
		Headless: false,
		Renderer: nil,
	}
}

// Run reads the whole input, searches it with the matcher and reports
// every occurrence on the output. Positions are rune offsets.
func (r *Runner) Run(m Matcher) error {
	if r.Input == nil {
		return fmt.Errorf("input reader must be set (use os.Stdin)")
	}
	if r.Output == nil {
		return fmt.Errorf("output writer must be set (use os.Stdout)")
	}

	data, err := io.ReadAll(r.Input)
	if err != nil {
		// Propagate errors (like "interrupted") so callers can tell them apart.
		return fmt.Errorf("input error: %w", err)
	}

	count := 0
	for pos, pattern := range m.Search(string(data)) {
		line := fmt.Sprintf("Pattern '%s' found at position %d", pattern, pos)
		if r.Renderer != nil {
			rendered, err := r.Renderer(line)
			if err == nil {
				line = strings.TrimRight(rendered, "\n")
			}
		}
		fmt.Fprintln(r.Output, line)
		count++
	}

	if !r.Headless {
		fmt.Fprintf(r.Output, "\nTotal matches found: %d\n", count)
	}
	return nil
}
