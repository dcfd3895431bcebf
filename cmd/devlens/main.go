// Package main provides the entry point for the DevLens CLI and HTTP API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "devlens",
	Short: "AI-powered GitHub profile auditor",
	Long:  "DevLens fetches a developer's public GitHub footprint and produces an LLM-backed technical audit: seniority, strengths, weaknesses, skill matrix, and head-to-head comparisons.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
