package main

import (
	"fmt"
	"os"

	"github.com/aretw0/espalier/internal/validator"
	"github.com/aretw0/espalier/pkg/matcher"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate <record.json>",
	Short: "Check a saved record for consistency",
	Long:  `Parses a saved automaton record and reports unreachable states, broken fail links, and pattern map gaps before use.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := runValidate(args); err != nil {
			fmt.Printf("Validation failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Record is valid! ✅")
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read record: %w", err)
	}

	rec, err := matcher.UnmarshalRecord(data)
	if err != nil {
		return err
	}

	// 1. Structural checks
	// Crawls the success edges from the initial state and reports every
	// problem at once.
	if err := validator.CheckRecord(rec); err != nil {
		return err
	}

	// 2. Rebuild
	// Loading trips on anything the structural pass cannot see. The
	// on-the-fly strategy accepts both sparse and full tables.
	if _, err := matcher.Load(rec, matcher.WithPrecompute(false)); err != nil {
		return err
	}

	complete, err := validator.Complete(rec)
	if err != nil {
		return err
	}
	if !complete {
		fmt.Println("Note: record has a sparse transition table; search it with --no-precompute.")
	}

	return nil
}
