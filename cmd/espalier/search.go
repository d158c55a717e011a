package main

import (
	"fmt"
	"os"

	"github.com/aretw0/espalier/internal/cli"
	"github.com/spf13/cobra"
)

// searchCmd represents the search command
var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search text for pattern occurrences",
	Long: `Builds an automaton (or loads a saved record) and reports every
occurrence of the patterns in the given text. Text comes from --text,
--file or stdin. Positions are rune offsets from the start of the text.`,
	Run: func(cmd *cobra.Command, args []string) {
		patterns, _ := cmd.Flags().GetStringSlice("patterns")
		if len(patterns) == 0 && len(args) > 0 {
			patterns = args
		}
		patternsFile, _ := cmd.Flags().GetString("patterns-file")
		dfaFile, _ := cmd.Flags().GetString("dfa-file")
		text, _ := cmd.Flags().GetString("text")
		textFile, _ := cmd.Flags().GetString("file")
		saveDFA, _ := cmd.Flags().GetString("save-dfa")
		format, _ := cmd.Flags().GetString("format")
		outputFile, _ := cmd.Flags().GetString("output")
		algorithm, _ := cmd.Flags().GetString("algorithm")
		alphabet, _ := cmd.Flags().GetString("alphabet")
		noPrecompute, _ := cmd.Flags().GetBool("no-precompute")
		debug, _ := cmd.Flags().GetBool("debug")

		err := cli.ExecuteSearch(cli.SearchOptions{
			Patterns:     patterns,
			PatternsFile: patternsFile,
			DFAFile:      dfaFile,
			Text:         text,
			TextFile:     textFile,
			SaveDFA:      saveDFA,
			Format:       format,
			OutputFile:   outputFile,
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
	rootCmd.AddCommand(searchCmd)

	searchCmd.Flags().StringSliceP("patterns", "p", nil, "Patterns to search for (repeatable)")
	searchCmd.Flags().String("patterns-file", "", "File with patterns (txt, yaml or json)")
	searchCmd.Flags().String("dfa-file", "", "Load a saved automaton record instead of building")
	searchCmd.Flags().StringP("text", "t", "", "Text to search")
	searchCmd.Flags().StringP("file", "f", "", "File with the text to search")
	searchCmd.Flags().String("save-dfa", "", "Also save the automaton record at this path")
	searchCmd.Flags().String("format", "text", "Output format: 'text', 'csv' or 'table'")
	searchCmd.Flags().StringP("output", "o", "", "Write matches to this file instead of stdout")
	searchCmd.Flags().StringP("algorithm", "a", "", "Algorithm: 'kmp' or 'aho-corasick' (default aho-corasick)")
	searchCmd.Flags().String("alphabet", "", "Restrict the automaton to this alphabet")
	searchCmd.Flags().Bool("no-precompute", false, "Resolve transitions on the fly instead of precomputing")
}
