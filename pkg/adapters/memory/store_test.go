package memory_test

import (
	"context"
	"testing"

	"github.com/aretw0/espalier/pkg/adapters/memory"
	"github.com/aretw0/espalier/pkg/matcher"
	"github.com/aretw0/espalier/pkg/ports/tests"
)

func TestMemoryStore_Contract(t *testing.T) {
	store := memory.NewStore()
	tests.RecordStoreContractTest(t, store)
}

func TestMemoryStore_Isolation(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()

	m, err := matcher.BuildAhoCorasick([]string{"AB", "CA"})
	if err != nil {
		t.Fatalf("BuildAhoCorasick failed: %v", err)
	}
	rec := m.Record()

	if err := store.Save(ctx, "shared", rec); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	// Mutating the saved record must not touch the stored copy.
	rec.Patterns[0] = "XX"
	rec.Automaton.Transitions["0"]["A"] = 99

	loaded, err := store.Load(ctx, "shared")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Patterns[0] != "AB" {
		t.Errorf("Stored record leaked caller mutation: %v", loaded.Patterns)
	}
	if loaded.Automaton.Transitions["0"]["A"] == 99 {
		t.Error("Stored transition table leaked caller mutation")
	}

	// Mutating a loaded record must not touch the stored copy either.
	loaded.PatternMap[1] = "poisoned"

	again, err := store.Load(ctx, "shared")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if again.PatternMap[1] == "poisoned" {
		t.Error("Stored pattern map leaked loaded-record mutation")
	}
}
