package validator

import (
	"strings"
	"testing"

	"github.com/aretw0/espalier/pkg/matcher"
)

func buildRecord(t *testing.T, patterns []string, opts ...matcher.Option) *matcher.Record {
	t.Helper()
	m, err := matcher.BuildAhoCorasick(patterns, opts...)
	if err != nil {
		t.Fatalf("BuildAhoCorasick failed: %v", err)
	}
	return m.Record()
}

func TestCheckRecord_ValidRecords(t *testing.T) {
	// A freshly built record must pass in both transition strategies.
	precomputed := buildRecord(t, []string{"he", "she", "his", "hers"})
	if err := CheckRecord(precomputed); err != nil {
		t.Errorf("precomputed record should be valid: %v", err)
	}

	sparse := buildRecord(t, []string{"he", "she"}, matcher.WithPrecompute(false))
	if err := CheckRecord(sparse); err != nil {
		t.Errorf("sparse record should be valid: %v", err)
	}

	kmp, err := matcher.BuildKMP("ABABAC")
	if err != nil {
		t.Fatalf("BuildKMP failed: %v", err)
	}
	if err := CheckRecord(kmp.Record()); err != nil {
		t.Errorf("single-pattern record should be valid: %v", err)
	}
}

func TestCheckRecord_UnreachableState(t *testing.T) {
	rec := buildRecord(t, []string{"AB", "CA"})

	// Declare one extra state that nothing points at.
	extra := *rec.Automaton.States + 1
	rec.Automaton.States = &extra
	rec.FailFunctions = append(rec.FailFunctions, 0)

	err := CheckRecord(rec)
	if err == nil {
		t.Fatal("CheckRecord should have failed, got nil")
	}
	if !strings.Contains(err.Error(), "unreachable") {
		t.Errorf("Expected 'unreachable' error, got: %v", err)
	}
}

func TestCheckRecord_FailLinkNotCloserToRoot(t *testing.T) {
	rec := buildRecord(t, []string{"ab", "ba"})

	// State 1 sits one symbol deep; pointing its failure link at a state
	// two symbols deep breaks the chain-shortening invariant.
	rec.FailFunctions[0] = 2

	err := CheckRecord(rec)
	if err == nil {
		t.Fatal("CheckRecord should have failed, got nil")
	}
	if !strings.Contains(err.Error(), "not closer to the root") {
		t.Errorf("Expected depth-ordering error, got: %v", err)
	}
}

func TestCheckRecord_FailLinkOutOfRange(t *testing.T) {
	rec := buildRecord(t, []string{"AB"})
	rec.FailFunctions[0] = 99

	err := CheckRecord(rec)
	if err == nil {
		t.Fatal("CheckRecord should have failed, got nil")
	}
	if !strings.Contains(err.Error(), "out of range") {
		t.Errorf("Expected out-of-range error, got: %v", err)
	}
}

func TestCheckRecord_MissingFailFunctions(t *testing.T) {
	rec := buildRecord(t, []string{"AB"})
	rec.FailFunctions = nil

	err := CheckRecord(rec)
	if err == nil {
		t.Fatal("CheckRecord should have failed, got nil")
	}
	if !strings.Contains(err.Error(), "no fail functions") {
		t.Errorf("Expected missing fail functions error, got: %v", err)
	}
}

func TestCheckRecord_AcceptingStateWithoutPattern(t *testing.T) {
	rec := buildRecord(t, []string{"AB", "CA"})

	for s, p := range rec.PatternMap {
		if p == "AB" {
			delete(rec.PatternMap, s)
		}
	}

	err := CheckRecord(rec)
	if err == nil {
		t.Fatal("CheckRecord should have failed, got nil")
	}
	if !strings.Contains(err.Error(), "no pattern map entry") {
		t.Errorf("Expected pattern map error, got: %v", err)
	}
}

func TestCheckRecord_ReportsAllProblems(t *testing.T) {
	rec := buildRecord(t, []string{"ab", "ba"})
	rec.FailFunctions[0] = 99
	for s, p := range rec.PatternMap {
		if p == "ba" {
			rec.PatternMap[s] = ""
		}
	}

	err := CheckRecord(rec)
	if err == nil {
		t.Fatal("CheckRecord should have failed, got nil")
	}
	if !strings.Contains(err.Error(), "2 errors") {
		t.Errorf("Expected both problems reported, got: %v", err)
	}
}

func TestCheckRecord_MalformedAutomaton(t *testing.T) {
	rec := buildRecord(t, []string{"AB"})
	rec.Automaton.TransitionKinds = nil

	if err := CheckRecord(rec); err == nil {
		t.Fatal("CheckRecord should have failed, got nil")
	}
}

func TestComplete(t *testing.T) {
	precomputed := buildRecord(t, []string{"he", "she"})
	complete, err := Complete(precomputed)
	if err != nil {
		t.Fatalf("Complete failed: %v", err)
	}
	if !complete {
		t.Error("precomputed record should have a complete table")
	}

	sparse := buildRecord(t, []string{"he", "she"}, matcher.WithPrecompute(false))
	complete, err = Complete(sparse)
	if err != nil {
		t.Fatalf("Complete failed: %v", err)
	}
	if complete {
		t.Error("sparse record should not have a complete table")
	}

	if _, err := Complete(nil); err == nil {
		t.Error("Complete(nil) should fail")
	}
}
