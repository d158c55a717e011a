package main

import (
	"fmt"
	"os"

	"github.com/aretw0/espalier/internal/cli"
	"github.com/spf13/cobra"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Export the automaton visualization",
	Long:  `Builds an automaton (or loads a saved record) and outputs a Mermaid diagram (graph TD) of its states, transitions and fail links.`,
	Run: func(cmd *cobra.Command, args []string) {
		patterns, _ := cmd.Flags().GetStringSlice("patterns")
		if len(patterns) == 0 && len(args) > 0 {
			patterns = args
		}
		patternsFile, _ := cmd.Flags().GetString("patterns-file")
		dfaFile, _ := cmd.Flags().GetString("dfa-file")
		algorithm, _ := cmd.Flags().GetString("algorithm")
		alphabet, _ := cmd.Flags().GetString("alphabet")
		debug, _ := cmd.Flags().GetBool("debug")

		err := cli.ExecuteGraph(cli.GraphOptions{
			Patterns:     patterns,
			PatternsFile: patternsFile,
			DFAFile:      dfaFile,
			Algorithm:    algorithm,
			Alphabet:     alphabet,
			Debug:        debug,
		})
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)

	graphCmd.Flags().StringSliceP("patterns", "p", nil, "Patterns to compile (repeatable)")
	graphCmd.Flags().String("patterns-file", "", "File with patterns (txt, yaml or json)")
	graphCmd.Flags().String("dfa-file", "", "Visualize a saved automaton record")
	graphCmd.Flags().StringP("algorithm", "a", "", "Algorithm: 'kmp' or 'aho-corasick' (default aho-corasick)")
	graphCmd.Flags().String("alphabet", "", "Restrict the automaton to this alphabet")
}
