package main

import (
	"context"
	"fmt"
	"os"

	"github.com/aretw0/espalier"
	"github.com/aretw0/espalier/internal/adapters/file"
)

func main() {
	targetDir := ".espalier/records"
	if len(os.Args) > 1 {
		targetDir = os.Args[1]
	}

	fmt.Printf("Generating demo records in: %s\n", targetDir)

	// The store creates the directory and writes each record atomically.
	store := file.New(targetDir)
	ctx := context.TODO()

	// 1. Single pattern (Precomputed)
	single, err := espalier.BuildKMP("ABAB")
	check(err)
	check(store.Save(ctx, "single-abab", single.Record()))

	// 2. Multi pattern (Precomputed)
	multi, err := espalier.BuildAhoCorasick([]string{"he", "she", "his", "hers"})
	check(err)
	check(store.Save(ctx, "multi-ushers", multi.Record()))

	// 3. Sparse variant (search it with --no-precompute)
	sparse, err := espalier.BuildAhoCorasick([]string{"he", "she", "his", "hers"}, espalier.WithPrecompute(false))
	check(err)
	check(store.Save(ctx, "multi-ushers-sparse", sparse.Record()))

	// 4. Fixed alphabet (full ACGT table regardless of which symbols the patterns use)
	dna, err := espalier.BuildAhoCorasick([]string{"GATTACA", "TATA"}, espalier.WithAlphabet("ACGT"))
	check(err)
	check(store.Save(ctx, "dna-motifs", dna.Record()))

	fmt.Println("Done. Inspect with: espalier records ls --dir", targetDir)
}

func check(err error) {
	if err != nil {
		panic(err)
	}
}
