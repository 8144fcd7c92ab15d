// Package main provides the entry point for the grant-scout CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "grant_scout",
	Short: "Funding opportunity discovery and scoring",
	Long:  "Grant Scout filters bulk IRS exempt-organization data into funding candidates, scores them across six weighted dimensions, and analyzes foundation grant patterns, funding history, and board networks.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
