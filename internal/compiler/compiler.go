package compiler

import (
	"fmt"
	"log/slog"

	"github.com/aretw0/espalier/pkg/matcher"
	"github.com/aretw0/espalier/pkg/schema"
)

// Compiler is responsible for turning a pattern manifest into a matcher.
type Compiler struct {
	logger *slog.Logger
}

// New creates a compiler. A nil logger silences build diagnostics.
func New(logger *slog.Logger) *Compiler {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Compiler{logger: logger}
}

// Compile validates the manifest and builds the matcher it describes.
// A manifest without an algorithm compiles to the multi-pattern matcher,
// which also handles one-element pattern lists.
func (c *Compiler) Compile(manifest *schema.Manifest) (matcher.Matcher, error) {
	if manifest == nil {
		return nil, fmt.Errorf("manifest missing")
	}
	if err := manifest.Validate(); err != nil {
		return nil, fmt.Errorf("invalid manifest: %w", err)
	}

	alg := matcher.AlgorithmAhoCorasick
	if manifest.HasAlgorithm() {
		parsed, err := matcher.ParseAlgorithm(manifest.Algorithm)
		if err != nil {
			return nil, err
		}
		alg = parsed
	}

	opts := []matcher.Option{matcher.WithLogger(c.logger)}
	if manifest.Precompute != nil {
		opts = append(opts, matcher.WithPrecompute(*manifest.Precompute))
	}
	if manifest.Alphabet != "" {
		opts = append(opts, matcher.WithAlphabet(manifest.Alphabet))
	}

	return matcher.Build(alg, manifest.Patterns, opts...)
}
