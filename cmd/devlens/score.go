package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	scoreAPIKey string
	scoreJob    string
	scoreJSON   bool
)

var scoreCmd = &cobra.Command{
	Use:   "score-resume <resume-file>",
	Short: "Score a resume against a job description",
	Long: `Read a plain-text resume from a file and score it against a job
description on a 0-100 scale, with pros and cons. Scoring does not
consume credits.`,
	Args: cobra.ExactArgs(1),
	RunE: runScoreResume,
}

func init() {
	scoreCmd.Flags().StringVar(&scoreAPIKey, "api-key", "", "Gemini API Key (optional, defaults to GEMINI_API_KEY env var)")
	scoreCmd.Flags().StringVarP(&scoreJob, "job", "j", "", "Job description to score against (required)")
	scoreCmd.Flags().BoolVar(&scoreJSON, "json", false, "Print the raw score JSON instead of formatted output")
	_ = scoreCmd.MarkFlagRequired("job")
	rootCmd.AddCommand(scoreCmd)
}

func runScoreResume(_ *cobra.Command, args []string) error {
	ctx := context.Background()

	resume, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read resume file: %w", err)
	}

	_, analyzer, cleanup, err := newAuditTools(ctx, scoreAPIKey)
	if err != nil {
		return err
	}
	defer cleanup()

	result, err := analyzer.ScoreResume(ctx, string(resume), scoreJob)
	if err != nil {
		return err
	}

	if scoreJSON {
		out, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	}

	fmt.Printf("Resume score: %.0f/100\n\n%s\n", result.Score, result.Summary)
	if len(result.Pros) > 0 {
		fmt.Println("\nPros:")
		for _, p := range result.Pros {
			fmt.Printf("  + %s\n", p)
		}
	}
	if len(result.Cons) > 0 {
		fmt.Println("\nCons:")
		for _, c := range result.Cons {
			fmt.Printf("  - %s\n", c)
		}
	}
	return nil
}
