package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var (
	questionsAPIKey string
	questionsJob    string
	questionsJSON   bool
)

var questionsCmd = &cobra.Command{
	Use:   "questions <username>",
	Short: "Generate interview questions for a candidate",
	Long: `Generate interview questions tailored to a candidate's public GitHub
work and a job description. Question generation does not consume credits.`,
	Args: cobra.ExactArgs(1),
	RunE: runQuestions,
}

func init() {
	questionsCmd.Flags().StringVar(&questionsAPIKey, "api-key", "", "Gemini API Key (optional, defaults to GEMINI_API_KEY env var)")
	questionsCmd.Flags().StringVarP(&questionsJob, "job", "j", "", "Job description to tailor the questions to (required)")
	questionsCmd.Flags().BoolVar(&questionsJSON, "json", false, "Print the raw question JSON instead of formatted output")
	_ = questionsCmd.MarkFlagRequired("job")
	rootCmd.AddCommand(questionsCmd)
}

func runQuestions(_ *cobra.Command, args []string) error {
	ctx := context.Background()
	username := args[0]

	_, analyzer, cleanup, err := newAuditTools(ctx, questionsAPIKey)
	if err != nil {
		return err
	}
	defer cleanup()

	result, err := analyzer.GenerateInterviewQuestions(ctx, username, questionsJob)
	if err != nil {
		return err
	}

	if questionsJSON {
		out, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	}

	if len(result.Questions) == 0 {
		fmt.Println("No questions generated. Try a different job description.")
		return nil
	}
	for i, q := range result.Questions {
		fmt.Printf("%d. %s\n   Topic: %s | Difficulty: %s\n", i+1, q.Question, q.Topic, q.Difficulty)
	}
	return nil
}
