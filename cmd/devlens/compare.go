package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/devlens/devlens/internal/audit"
	"github.com/devlens/devlens/internal/observability"
)

var (
	compareAPIKey  string
	compareJob     string
	compareVerbose bool
	compareJSON    bool
)

var compareCmd = &cobra.Command{
	Use:   "compare <user1> <user2>",
	Short: "Compare two GitHub profiles head to head",
	Long: `Fetch both users' GitHub data concurrently and run a head-to-head LLM
comparison. Optionally score both against a job description. The whole
comparison consumes a single credit.`,
	Args: cobra.ExactArgs(2),
	RunE: runCompare,
}

func init() {
	compareCmd.Flags().StringVar(&compareAPIKey, "api-key", "", "Gemini API Key (optional, defaults to GEMINI_API_KEY env var)")
	compareCmd.Flags().StringVarP(&compareJob, "job", "j", "", "Job description to score both candidates against")
	compareCmd.Flags().BoolVarP(&compareVerbose, "verbose", "v", false, "Print detailed debug information")
	compareCmd.Flags().BoolVar(&compareJSON, "json", false, "Print the raw comparison JSON instead of formatted output")
	rootCmd.AddCommand(compareCmd)
}

func runCompare(_ *cobra.Command, args []string) error {
	ctx := context.Background()
	user1, user2 := args[0], args[1]

	sess, err := openSession(compareVerbose)
	if err != nil {
		return err
	}
	defer sess.close()

	fetcher, analyzer, cleanup, err := newAuditTools(ctx, compareAPIKey)
	if err != nil {
		return err
	}
	defer cleanup()

	runner := audit.NewRunner(fetcher, analyzer, func(event audit.ProgressEvent) {
		fmt.Fprintf(os.Stderr, "%s\n", event.Message)
	})

	result := runner.RunComparison(ctx, user1, user2, compareJob, sess.state.Subscription())
	if result.Err != nil {
		return result.Err
	}

	sess.state.SetSubscription(result.Subscription)

	if compareJSON {
		out, err := json.MarshalIndent(result.Comparison, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	}

	printer := observability.NewPrinter(os.Stdout)
	printer.PrintComparison(result.Comparison, user1, user2)
	printer.PrintSubscription(result.Subscription)
	return nil
}
