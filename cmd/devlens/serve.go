package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/devlens/devlens/internal/analysis"
	"github.com/devlens/devlens/internal/config"
	"github.com/devlens/devlens/internal/db"
	"github.com/devlens/devlens/internal/github"
	"github.com/devlens/devlens/internal/llm"
	"github.com/devlens/devlens/internal/logger"
	"github.com/devlens/devlens/internal/server"
)

var (
	servePort int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes REST endpoints for profile audits, comparisons, chat, subscriptions, and talent pipeline folders.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (defaults to PORT env var or 8080)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg, err := config.FromEnv()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("port") {
		cfg.Port = servePort
	}
	merged := cfg.MergeWithDefaults(config.Config{})
	if err := merged.Validate(); err != nil {
		return err
	}

	if merged.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL environment variable is required")
	}
	if merged.GeminiAPIKey == "" {
		return analysis.ErrCredentialMissing
	}

	log, err := logger.New(merged.JSONLogs, merged.Verbose)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	database, err := db.Connect(ctx, merged.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer database.Close()

	if err := database.Migrate(ctx); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	llmClient, err := llm.NewClient(ctx, llm.DefaultConfig(), merged.GeminiAPIKey)
	if err != nil {
		return fmt.Errorf("failed to create LLM client: %w", err)
	}
	defer func() { _ = llmClient.Close() }()

	var githubOpts []github.Option
	if merged.GitHubToken != "" {
		githubOpts = append(githubOpts, github.WithToken(merged.GitHubToken))
	}
	if merged.RepoLimit > 0 {
		githubOpts = append(githubOpts, github.WithRepoLimit(merged.RepoLimit))
	}

	analyzer := analysis.NewAnalyzer(llmClient)

	srv, err := server.New(server.Config{
		Port:      merged.Port,
		Store:     database,
		Fetcher:   github.NewClient(githubOpts...),
		Analyzer:  analyzer,
		Assistant: analyzer,
		Logger:    log,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}
