package main

import (
	"fmt"
	"os"

	"github.com/aretw0/espalier/internal/cli"
	"github.com/spf13/cobra"
)

// buildCmd represents the build command
var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build an automaton and save it as a JSON record",
	Long: `Compiles the given patterns into a matching automaton and writes the
resulting record to disk. The record can later be loaded by 'search' and
'graph' without rebuilding.`,
	Run: func(cmd *cobra.Command, args []string) {
		patterns, _ := cmd.Flags().GetStringSlice("patterns")
		if len(patterns) == 0 && len(args) > 0 {
			patterns = args
		}
		patternsFile, _ := cmd.Flags().GetString("patterns-file")
		output, _ := cmd.Flags().GetString("output")
		algorithm, _ := cmd.Flags().GetString("algorithm")
		alphabet, _ := cmd.Flags().GetString("alphabet")
		noPrecompute, _ := cmd.Flags().GetBool("no-precompute")
		debug, _ := cmd.Flags().GetBool("debug")

		err := cli.ExecuteBuild(cli.BuildOptions{
			Patterns:     patterns,
			PatternsFile: patternsFile,
			Output:       output,
			Algorithm:    algorithm,
			Alphabet:     alphabet,
			NoPrecompute: noPrecompute,
			Debug:        debug,
		})
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(buildCmd)

	buildCmd.Flags().StringSliceP("patterns", "p", nil, "Patterns to compile (repeatable)")
	buildCmd.Flags().String("patterns-file", "", "File with patterns (txt, yaml or json)")
	buildCmd.Flags().StringP("output", "o", "automaton.json", "Path for the saved record")
	buildCmd.Flags().StringP("algorithm", "a", "", "Algorithm: 'kmp' or 'aho-corasick' (default aho-corasick)")
	buildCmd.Flags().String("alphabet", "", "Restrict the automaton to this alphabet")
	buildCmd.Flags().Bool("no-precompute", false, "Skip the full transition table (trie and fail links only)")
}
