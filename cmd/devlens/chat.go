package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var (
	chatAPIKey  string
	chatContext string
)

var chatCmd = &cobra.Command{
	Use:   "chat <username> <question>",
	Short: "Ask a follow-up question about a profile",
	Long: `Ask a free-form question about a previously audited GitHub profile.
Chat turns do not consume credits.`,
	Args: cobra.ExactArgs(2),
	RunE: runChat,
}

func init() {
	chatCmd.Flags().StringVar(&chatAPIKey, "api-key", "", "Gemini API Key (optional, defaults to GEMINI_API_KEY env var)")
	chatCmd.Flags().StringVar(&chatContext, "context", "", "Prior audit findings to ground the answer in")
	rootCmd.AddCommand(chatCmd)
}

func runChat(_ *cobra.Command, args []string) error {
	ctx := context.Background()
	username, question := args[0], args[1]

	_, analyzer, cleanup, err := newAuditTools(ctx, chatAPIKey)
	if err != nil {
		return err
	}
	defer cleanup()

	answer, err := analyzer.ChatAboutProfile(ctx, username, question, chatContext)
	if err != nil {
		return err
	}

	fmt.Println(answer)
	return nil
}
