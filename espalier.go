package espalier

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aretw0/espalier/internal/adapters/file"
	"github.com/aretw0/espalier/pkg/matcher"
	"github.com/aretw0/espalier/pkg/ports"
)

// Core types re-exported so that common usage needs only this package.
type (
	Matcher     = matcher.Matcher
	KMP         = matcher.KMP
	AhoCorasick = matcher.AhoCorasick
	Match       = matcher.Match
	Record      = matcher.Record
	Algorithm   = matcher.Algorithm
	Option      = matcher.Option
)

// Supported algorithms.
const (
	AlgorithmKMP         = matcher.AlgorithmKMP
	AlgorithmAhoCorasick = matcher.AlgorithmAhoCorasick
)

// ParseAlgorithm maps a name like "kmp" or "aho-corasick" to an Algorithm.
func ParseAlgorithm(name string) (Algorithm, error) {
	return matcher.ParseAlgorithm(name)
}

// Build constructs a matcher for the given algorithm and patterns.
func Build(alg Algorithm, patterns []string, opts ...Option) (Matcher, error) {
	return matcher.Build(alg, patterns, opts...)
}

// BuildKMP constructs a single-pattern matcher.
func BuildKMP(pattern string, opts ...Option) (*KMP, error) {
	return matcher.BuildKMP(pattern, opts...)
}

// BuildAhoCorasick constructs a multi-pattern matcher.
func BuildAhoCorasick(patterns []string, opts ...Option) (*AhoCorasick, error) {
	return matcher.BuildAhoCorasick(patterns, opts...)
}

// Load rebuilds a matcher from a persisted record.
func Load(rec *Record, opts ...Option) (Matcher, error) {
	return matcher.Load(rec, opts...)
}

// MarshalRecord renders a record as indented JSON, the on-disk document format.
func MarshalRecord(rec *Record) ([]byte, error) {
	return matcher.MarshalRecord(rec)
}

// UnmarshalRecord parses a persisted JSON document into a record.
func UnmarshalRecord(data []byte) (*Record, error) {
	return matcher.UnmarshalRecord(data)
}

// WithPrecompute controls whether the full transition table is materialized at
// build time (the default) or resolved lazily during searches.
func WithPrecompute(enabled bool) Option {
	return matcher.WithPrecompute(enabled)
}

// WithAlphabet fixes the automaton alphabet instead of deriving it from the patterns.
func WithAlphabet(symbols string) Option {
	return matcher.WithAlphabet(symbols)
}

// Archive manages named automaton records in a RecordStore.
// It is the high-level persistence entry point: build a matcher once, Save it
// under a name, and Open it later without rebuilding.
type Archive struct {
	store  ports.RecordStore
	logger *slog.Logger
}

// ArchiveOption defines a functional option for configuring an Archive.
type ArchiveOption func(*Archive)

// WithStore injects a custom RecordStore, bypassing the default filesystem store.
func WithStore(store ports.RecordStore) ArchiveOption {
	return func(a *Archive) {
		a.store = store
	}
}

// WithLogger sets a custom structured logger for the archive.
func WithLogger(logger *slog.Logger) ArchiveOption {
	return func(a *Archive) {
		a.logger = logger
	}
}

// NewArchive initializes an Archive.
// By default records are stored as JSON files under basePath; an empty
// basePath falls back to ".espalier/records". If WithStore is provided,
// basePath is ignored.
func NewArchive(basePath string, opts ...ArchiveOption) *Archive {
	a := &Archive{}

	for _, opt := range opts {
		opt(a)
	}

	if a.store == nil {
		a.store = file.New(basePath)
	}
	if a.logger == nil {
		a.logger = slog.New(slog.DiscardHandler)
	}

	return a
}

// Save persists the matcher's record under the given name.
func (a *Archive) Save(ctx context.Context, name string, m Matcher) error {
	if m == nil {
		return fmt.Errorf("matcher cannot be nil")
	}

	if err := a.store.Save(ctx, name, m.Record()); err != nil {
		return err
	}

	a.logger.Info("record saved", "name", name, "algorithm", m.Algorithm())
	return nil
}

// Open loads the record stored under the given name and rebuilds a matcher
// from it. Options apply to the restored matcher, so a record saved with a
// precomputed table can be reopened for on-the-fly searching and vice versa.
func (a *Archive) Open(ctx context.Context, name string, opts ...Option) (Matcher, error) {
	rec, err := a.store.Load(ctx, name)
	if err != nil {
		return nil, err
	}

	opts = append([]Option{matcher.WithLogger(a.logger)}, opts...)
	return matcher.Load(rec, opts...)
}

// Delete removes the record stored under the given name.
func (a *Archive) Delete(ctx context.Context, name string) error {
	return a.store.Delete(ctx, name)
}

// List returns the names of all stored records.
func (a *Archive) List(ctx context.Context) ([]string, error) {
	return a.store.List(ctx)
}

// Store returns the underlying RecordStore used by the archive.
func (a *Archive) Store() ports.RecordStore {
	return a.store
}
