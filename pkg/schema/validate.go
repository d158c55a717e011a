package schema

import (
	"fmt"
	"strings"

	"github.com/aretw0/espalier/pkg/matcher"
)

// Validate checks the manifest for problems that would surface later as
// build failures: missing or empty patterns, an unknown algorithm name, and
// patterns using symbols outside a pinned alphabet.
// All failures found are reported together.
func (m *Manifest) Validate() error {
	var errs []error

	if len(m.Patterns) == 0 {
		errs = append(errs, &ValidationError{
			Field:  "patterns",
			Reason: "at least one pattern is required",
		})
	}
	for i, p := range m.Patterns {
		if p == "" {
			errs = append(errs, &ValidationError{
				Field:  "patterns",
				Reason: fmt.Sprintf("pattern %d is empty", i),
			})
		}
	}

	if m.Algorithm != "" {
		if _, err := matcher.ParseAlgorithm(m.Algorithm); err != nil {
			errs = append(errs, &ValidationError{
				Field:  "algorithm",
				Reason: "unknown algorithm",
				Value:  m.Algorithm,
			})
		}
	}

	if m.Alphabet != "" {
		for _, p := range m.Patterns {
			if sym, ok := missingSymbol(m.Alphabet, p); ok {
				errs = append(errs, &ValidationError{
					Field:  "alphabet",
					Reason: fmt.Sprintf("pattern %q uses symbol %q outside the alphabet", p, sym),
				})
			}
		}
	}

	if len(errs) > 0 {
		return &AggregateError{Errors: errs}
	}
	return nil
}

// missingSymbol returns the first symbol of pattern that the alphabet does
// not contain.
func missingSymbol(alphabet, pattern string) (rune, bool) {
	for _, sym := range pattern {
		if !strings.ContainsRune(alphabet, sym) {
			return sym, true
		}
	}
	return 0, false
}
