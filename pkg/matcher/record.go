package matcher

import (
	"encoding/json"
	"fmt"

	"github.com/mitchellh/mapstructure"

	"github.com/aretw0/espalier/pkg/automaton"
)

// Record is the persisted form of a matcher: the automaton snapshot plus the
// data needed to restore searching. The snapshot sits under the historical
// "dfa" key. Single-pattern records carry Pattern, multi-pattern records
// carry Patterns and PatternMap; both carry FailFunctions.
type Record struct {
	Algorithm     Algorithm                  `json:"algorithm,omitempty" mapstructure:"algorithm"`
	Pattern       string                     `json:"pattern,omitempty" mapstructure:"pattern"`
	Patterns      []string                   `json:"patterns,omitempty" mapstructure:"patterns"`
	Automaton     *automaton.Record          `json:"dfa" mapstructure:"dfa"`
	FailFunctions []automaton.State          `json:"fail_functions" mapstructure:"fail_functions"`
	PatternMap    map[automaton.State]string `json:"pattern_map,omitempty" mapstructure:"pattern_map"`
}

// Load reconstructs a matcher from a record. WithPrecompute selects the
// search mode of the restored matcher; the transition table is restored
// exactly as saved either way.
//
// Records written by Record carry an algorithm tag. For older records
// without one the algorithm is guessed from the record shape: a pattern map
// means multi-pattern, anything else single-pattern. Guessed loads tolerate
// missing fail functions and report through WithLogger.
func Load(rec *Record, opts ...Option) (Matcher, error) {
	cfg := newConfig(opts)
	if rec == nil {
		return nil, fmt.Errorf("nil record: %w", automaton.ErrMalformedRecord)
	}
	switch rec.Algorithm {
	case AlgorithmKMP:
		return loadKMP(rec, cfg, true)
	case AlgorithmAhoCorasick:
		return loadAhoCorasick(rec, cfg, true)
	case "":
		if rec.PatternMap != nil {
			cfg.logger.Warn("record carries no algorithm tag, guessing", "algorithm", AlgorithmAhoCorasick)
			return loadAhoCorasick(rec, cfg, false)
		}
		cfg.logger.Warn("record carries no algorithm tag, guessing", "algorithm", AlgorithmKMP)
		return loadKMP(rec, cfg, false)
	default:
		return nil, fmt.Errorf("%q: %w", rec.Algorithm, ErrUnknownAlgorithm)
	}
}

// MarshalRecord renders a record as indented JSON, the on-disk document
// format.
func MarshalRecord(rec *Record) ([]byte, error) {
	return json.MarshalIndent(rec, "", "  ")
}

// UnmarshalRecord parses a persisted JSON document. The record is only
// shape-checked here; Load performs the full validation.
func UnmarshalRecord(data []byte) (*Record, error) {
	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("unmarshal record: %v: %w", err, automaton.ErrMalformedRecord)
	}
	return &rec, nil
}

// DecodeRecord builds a record from generic decoded JSON, as handed over by
// transports that parse request bodies into maps. Numeric fields tolerate
// the float64 values JSON decoding produces.
func DecodeRecord(raw map[string]any) (*Record, error) {
	var rec Record
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &rec,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return nil, err
	}
	if err := dec.Decode(raw); err != nil {
		return nil, fmt.Errorf("decode record: %v: %w", err, automaton.ErrMalformedRecord)
	}
	return &rec, nil
}
