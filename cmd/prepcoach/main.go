// Package main provides the entry point for the Interview Prep Coach HTTP API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "prepcoach",
	Short: "Interview Prep Coach HTTP API Server",
	Long:  "Interview Prep Coach tracks target roles, interview schedules, and prep checklists, and runs AI mock interviews with a scripted fallback via REST API.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
