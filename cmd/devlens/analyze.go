package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/devlens/devlens/internal/audit"
	"github.com/devlens/devlens/internal/observability"
	"github.com/devlens/devlens/internal/talent"
)

var (
	analyzeAPIKey  string
	analyzeVerbose bool
	analyzeJSON    bool
	analyzeSaveTo  string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <username>",
	Short: "Audit a GitHub profile",
	Long: `Fetch a GitHub user's profile and repositories, run the LLM audit, and
print the result. Each successful audit consumes one credit on the free tier.`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeAPIKey, "api-key", "", "Gemini API Key (optional, defaults to GEMINI_API_KEY env var)")
	analyzeCmd.Flags().BoolVarP(&analyzeVerbose, "verbose", "v", false, "Print detailed debug information")
	analyzeCmd.Flags().BoolVar(&analyzeJSON, "json", false, "Print the raw audit JSON instead of formatted output")
	analyzeCmd.Flags().StringVar(&analyzeSaveTo, "save-to", "", "Save the audited candidate into the named pipeline folder")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(_ *cobra.Command, args []string) error {
	ctx := context.Background()
	username := args[0]

	sess, err := openSession(analyzeVerbose)
	if err != nil {
		return err
	}
	defer sess.close()

	fetcher, analyzer, cleanup, err := newAuditTools(ctx, analyzeAPIKey)
	if err != nil {
		return err
	}
	defer cleanup()

	printer := observability.NewPrinter(os.Stdout)

	runner := audit.NewRunner(fetcher, analyzer, func(event audit.ProgressEvent) {
		fmt.Fprintf(os.Stderr, "%s\n", event.Message)
	})

	result := runner.Run(ctx, username, sess.state.Subscription())
	if result.Err != nil {
		return result.Err
	}

	sess.state.SetSubscription(result.Subscription)

	if analyzeJSON {
		out, err := json.MarshalIndent(result.Analysis, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
	} else {
		if analyzeVerbose {
			printer.PrintProfile(result.UserData)
			if summary, err := fetcher.FetchContributionSummary(ctx, username); err == nil && summary != "" {
				fmt.Fprintf(os.Stderr, "%s\n", summary)
			}
		}
		printer.PrintAnalysis(result.Analysis)
		printer.PrintSubscription(result.Subscription)
	}

	if analyzeSaveTo != "" {
		saveCandidate(sess, analyzeSaveTo, talent.Candidate{
			Username:  username,
			Name:      result.UserData.Profile.DisplayName(),
			Avatar:    result.UserData.Profile.AvatarURL,
			Seniority: result.Analysis.Seniority,
			AddedAt:   time.Now().UTC(),
		})
	}

	return nil
}

// saveCandidate files a candidate under the named folder, creating the
// folder if it does not exist yet.
func saveCandidate(sess *session, folderName string, c talent.Candidate) {
	pipeline := sess.state.Pipeline()
	var folderID string
	for _, folder := range pipeline.Folders {
		if folder.Name == folderName {
			folderID = folder.ID
			break
		}
	}
	if folderID == "" {
		folderID = sess.state.CreateFolder(folderName).ID
	}
	sess.state.AddCandidate(folderID, c)
	fmt.Fprintf(os.Stderr, "Saved @%s to folder %q\n", c.Username, folderName)
}
