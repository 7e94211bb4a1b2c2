// Package main provides the entry point for the SlideIn API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "slidein",
	Short: "SlideIn cold-email assistant API server",
	Long:  "SlideIn drafts personalized outreach emails from arbitrary webpages: it fetches and cleans a page, infers its context, resolves a recipient, and generates a ready-to-send draft.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
