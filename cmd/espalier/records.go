package main

import (
	"fmt"
	"os"

	"github.com/aretw0/espalier/internal/cli"
	"github.com/aretw0/espalier/pkg/matcher"
	"github.com/aretw0/espalier/pkg/ports"
	"github.com/spf13/cobra"
)

var recordsCmd = &cobra.Command{
	Use:   "records",
	Short: "Manage stored automaton records",
	Long:  `List, inspect, and remove automaton records stored in .espalier/records.`,
}

var recordsLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List all stored records",
	Run: func(cmd *cobra.Command, args []string) {
		store := getStore(cmd)
		records, err := store.List(cmd.Context())
		if err != nil {
			fmt.Printf("Error listing records: %v\n", err)
			os.Exit(1)
		}

		if len(records) == 0 {
			fmt.Println("No records found.")
			return
		}

		fmt.Println("Stored Records:")
		for _, r := range records {
			fmt.Println("- " + r)
		}
	},
}

var recordsInspectCmd = &cobra.Command{
	Use:   "inspect <name>",
	Short: "Print the JSON record of a stored automaton",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		name := args[0]
		store := getStore(cmd)

		rec, err := store.Load(cmd.Context(), name)
		if err != nil {
			fmt.Printf("Error loading record '%s': %v\n", name, err)
			os.Exit(1)
		}

		// Pretty print JSON
		data, err := matcher.MarshalRecord(rec)
		if err != nil {
			fmt.Printf("Error marshaling record: %v\n", err)
			os.Exit(1)
		}

		fmt.Println(string(data))
	},
}

var recordsRmCmd = &cobra.Command{
	Use:   "rm <name>...",
	Short: "Remove one or more records",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		store := getStore(cmd)
		hasError := false

		for _, name := range args {
			if err := store.Delete(cmd.Context(), name); err != nil {
				fmt.Printf("Error removing '%s': %v\n", name, err)
				hasError = true
			} else {
				fmt.Printf("Removed record '%s'\n", name)
			}
		}

		if hasError {
			os.Exit(1)
		}
	},
}

// TODO: Add support for --all flag in rm command

func init() {
	rootCmd.AddCommand(recordsCmd)
	recordsCmd.AddCommand(recordsLsCmd)
	recordsCmd.AddCommand(recordsInspectCmd)
	recordsCmd.AddCommand(recordsRmCmd)

	recordsCmd.PersistentFlags().String("dir", "", "Directory holding the records (default .espalier/records)")
}

func getStore(cmd *cobra.Command) ports.RecordStore {
	dir, _ := cmd.Flags().GetString("dir")
	// An empty dir maps to the .espalier/records default; ESPALIER_STORE_KEY
	// adds encryption at rest.
	store, err := cli.ResolveStore(dir)
	if err != nil {
		fmt.Printf("Error resolving record store: %v\n", err)
		os.Exit(1)
	}
	return store
}
