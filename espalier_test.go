package espalier_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aretw0/espalier"
	"github.com/aretw0/espalier/pkg/adapters/memory"
	"github.com/aretw0/espalier/pkg/ports"
)

func TestFacade_Integration(t *testing.T) {
	// 0. Setup temp record directory
	basePath := t.TempDir()
	archive := espalier.NewArchive(basePath)
	ctx := context.Background()

	// 1. Build through the facade
	m, err := espalier.Build(espalier.AlgorithmAhoCorasick, []string{"AB", "CA"})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	// 2. Save and verify the record landed on disk
	if err := archive.Save(ctx, "pair", m); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(basePath, "pair.json")); err != nil {
		t.Fatalf("Expected record file on disk: %v", err)
	}

	// 3. Reopen and search
	reopened, err := archive.Open(ctx, "pair")
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	matches := reopened.FindAll("ACA")
	if len(matches) != 1 || matches[0].Position != 1 || matches[0].Pattern != "CA" {
		t.Errorf("Expected single match 'CA' at 1, got %v", matches)
	}

	// 4. List and Delete
	names, err := archive.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	found := false
	for _, name := range names {
		if name == "pair" {
			found = true
		}
	}
	if !found {
		t.Errorf("Expected 'pair' in listed names, got %v", names)
	}

	if err := archive.Delete(ctx, "pair"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := archive.Open(ctx, "pair"); !errors.Is(err, ports.ErrRecordNotFound) {
		t.Errorf("Expected ErrRecordNotFound after delete, got %v", err)
	}
}

func TestArchive_WithStore(t *testing.T) {
	store := memory.NewStore()
	basePath := filepath.Join(t.TempDir(), "never-created")
	archive := espalier.NewArchive(basePath, espalier.WithStore(store))
	ctx := context.Background()

	m, err := espalier.BuildKMP("ABAB")
	if err != nil {
		t.Fatalf("BuildKMP failed: %v", err)
	}
	if err := archive.Save(ctx, "needle", m); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	// The injected store must bypass the filesystem entirely.
	if _, err := os.Stat(basePath); !os.IsNotExist(err) {
		t.Errorf("Expected base path to stay absent, stat returned %v", err)
	}

	// Restored search mode follows the Open options.
	reopened, err := archive.Open(ctx, "needle", espalier.WithPrecompute(false))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	matches := reopened.FindAll("ABABAB")
	if len(matches) != 2 {
		t.Errorf("Expected 2 matches, got %v", matches)
	}
}

func TestArchive_SaveNilMatcher(t *testing.T) {
	archive := espalier.NewArchive(t.TempDir())
	if err := archive.Save(context.Background(), "nothing", nil); err == nil {
		t.Error("Expected error when saving nil matcher")
	}
}

func TestVersion_Embedded(t *testing.T) {
	if strings.TrimSpace(espalier.Version) == "" {
		t.Error("Expected embedded version to be non-empty")
	}
}
