package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/aretw0/espalier"
	"github.com/aretw0/espalier/internal/adapters/file"
	"github.com/aretw0/espalier/internal/compiler"
	"github.com/aretw0/espalier/internal/presentation/tui"
	"github.com/aretw0/espalier/internal/validator"
	"github.com/aretw0/espalier/pkg/matcher"
	"github.com/aretw0/espalier/pkg/schema"
	"golang.org/x/term"
)

// BuildOptions contains all the configuration for the build command.
type BuildOptions struct {
	Patterns     []string
	PatternsFile string
	Output       string
	Algorithm    string
	Alphabet     string
	NoPrecompute bool
	Debug        bool
}

// SearchOptions contains all the configuration for the search command.
type SearchOptions struct {
	Patterns     []string
	PatternsFile string
	DFAFile      string
	Text         string
	TextFile     string
	SaveDFA      string
	Format       string
	OutputFile   string
	Algorithm    string
	Alphabet     string
	NoPrecompute bool
	Debug        bool
}

// ExecuteBuild handles the 'build' command logic.
func ExecuteBuild(opts BuildOptions) error {
	logger := createLogger(opts.Debug)

	manifest, err := resolveManifest(opts.Patterns, opts.PatternsFile, opts.Algorithm, opts.Alphabet, opts.NoPrecompute)
	if err != nil {
		return err
	}

	m, err := buildMatcher(manifest, logger, false)
	if err != nil {
		return err
	}

	out := opts.Output
	if out == "" {
		out = "automaton.json"
	}
	path, err := saveRecord(out, m)
	if err != nil {
		return err
	}

	printSystemMessage("Automaton saved to '%s'.", path)
	return nil
}

// ExecuteSearch handles the 'search' command logic.
func ExecuteSearch(opts SearchOptions) error {
	logger := createLogger(opts.Debug)

	format, err := ParseFormat(opts.Format)
	if err != nil {
		return err
	}
	// Machine output on stdout must stay clean of system messages.
	quiet := format == FormatCSV && opts.OutputFile == ""

	m, err := resolveSearchMatcher(opts, logger, quiet)
	if err != nil {
		return err
	}

	if opts.SaveDFA != "" {
		path, err := saveRecord(opts.SaveDFA, m)
		if err != nil {
			return err
		}
		if !quiet {
			printSystemMessage("Automaton saved to '%s'.", path)
		}
	}

	sigCtx := NewSignalContext(context.Background())
	defer sigCtx.Cancel()

	source, closeSource, err := resolveTextSource(opts, sigCtx)
	if err != nil {
		return err
	}
	if closeSource != nil {
		defer closeSource()
	}

	out := io.Writer(os.Stdout)
	styled := false
	if opts.OutputFile != "" {
		f, err := os.Create(opts.OutputFile)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		out = f
	} else {
		styled = term.IsTerminal(int(os.Stdout.Fd()))
	}

	if format == FormatText {
		r := espalier.NewRunner()
		r.Input = source
		r.Output = out
		return handleExecutionError(r.Run(m))
	}

	if format == FormatTable && styled {
		tui.PrintBanner(espalier.Version)
	}

	data, err := io.ReadAll(source)
	if err != nil {
		return handleExecutionError(fmt.Errorf("input error: %w", err))
	}

	return WriteMatches(out, m.FindAll(string(data)), format, styled)
}

// resolveManifest merges pattern flags with an optional patterns file into
// one manifest. Explicit flags win over manifest values; patterns from both
// sources are combined.
func resolveManifest(patterns []string, patternsFile, algorithm, alphabet string, noPrecompute bool) (*schema.Manifest, error) {
	manifest := &schema.Manifest{
		Patterns:  patterns,
		Algorithm: algorithm,
		Alphabet:  alphabet,
	}

	if patternsFile != "" {
		fromFile, err := schema.LoadFile(patternsFile)
		if err != nil {
			return nil, err
		}
		manifest.Patterns = append(manifest.Patterns, fromFile.Patterns...)
		if manifest.Algorithm == "" {
			manifest.Algorithm = fromFile.Algorithm
		}
		if manifest.Alphabet == "" {
			manifest.Alphabet = fromFile.Alphabet
		}
		manifest.Precompute = fromFile.Precompute
	}

	if noPrecompute {
		off := false
		manifest.Precompute = &off
	}
	if len(manifest.Patterns) == 0 {
		return nil, fmt.Errorf("no patterns given: use --patterns or --patterns-file")
	}

	return manifest, nil
}

func buildMatcher(manifest *schema.Manifest, logger *slog.Logger, quiet bool) (matcher.Matcher, error) {
	if manifest.Algorithm == string(matcher.AlgorithmKMP) && len(manifest.Patterns) > 1 && !quiet {
		printSystemMessage("KMP matches a single pattern; using '%s'.", manifest.Patterns[0])
	}
	return compiler.New(logger).Compile(manifest)
}

// resolveSearchMatcher produces a matcher from either a saved record or
// pattern flags.
func resolveSearchMatcher(opts SearchOptions, logger *slog.Logger, quiet bool) (matcher.Matcher, error) {
	if opts.DFAFile != "" {
		if len(opts.Patterns) > 0 || opts.PatternsFile != "" {
			return nil, fmt.Errorf("--dfa-file cannot be combined with pattern flags")
		}

		data, err := os.ReadFile(opts.DFAFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read automaton file: %w", err)
		}
		rec, err := matcher.UnmarshalRecord(data)
		if err != nil {
			return nil, err
		}

		// A sparse table cannot serve precomputed searches; catch that here
		// rather than mid-search.
		if !opts.NoPrecompute {
			complete, err := validator.Complete(rec)
			if err != nil {
				return nil, err
			}
			if !complete {
				return nil, fmt.Errorf("record %q was saved without precomputed transitions; pass --no-precompute to search it", opts.DFAFile)
			}
		}

		loadOpts := []matcher.Option{matcher.WithLogger(logger)}
		if opts.NoPrecompute {
			loadOpts = append(loadOpts, matcher.WithPrecompute(false))
		}
		return matcher.Load(rec, loadOpts...)
	}

	manifest, err := resolveManifest(opts.Patterns, opts.PatternsFile, opts.Algorithm, opts.Alphabet, opts.NoPrecompute)
	if err != nil {
		return nil, err
	}
	return buildMatcher(manifest, logger, quiet)
}

func resolveTextSource(opts SearchOptions, sigCtx *SignalContext) (io.Reader, func() error, error) {
	switch {
	case opts.Text != "":
		if opts.TextFile != "" {
			return nil, nil, fmt.Errorf("use only one of --text and --file")
		}
		return strings.NewReader(opts.Text), nil, nil
	case opts.TextFile != "":
		f, err := os.Open(opts.TextFile)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open text file: %w", err)
		}
		return f, f.Close, nil
	default:
		// Reading from stdin; SIGINT unblocks the read.
		return NewInterruptibleReader(os.Stdin, sigCtx.Done()), nil, nil
	}
}

// saveRecord persists the matcher's record at the given path through the
// atomic file store. The stored name is the file name without its .json
// extension.
func saveRecord(path string, m matcher.Matcher) (string, error) {
	name := strings.TrimSuffix(filepath.Base(path), ".json")
	if name == "" || name == "." || name == string(filepath.Separator) {
		return "", fmt.Errorf("invalid output path %q", path)
	}

	dir := filepath.Dir(path)
	store := file.New(dir)
	if err := store.Save(context.Background(), name, m.Record()); err != nil {
		return "", err
	}
	return filepath.Join(dir, name+".json"), nil
}
