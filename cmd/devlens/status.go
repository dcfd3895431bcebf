package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/devlens/devlens/internal/observability"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the current subscription and saved folders",
	RunE:  runStatus,
}

var upgradeCmd = &cobra.Command{
	Use:   "upgrade",
	Short: "Upgrade the local subscription to the PRO tier",
	RunE:  runUpgrade,
}

func init() {
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(upgradeCmd)
}

func runStatus(_ *cobra.Command, _ []string) error {
	sess, err := openSession(false)
	if err != nil {
		return err
	}
	defer sess.close()

	if instanceID, err := sess.local.InstanceID(); err == nil {
		fmt.Printf("Instance: %s\n", instanceID)
	}

	printer := observability.NewPrinter(os.Stdout)
	printer.PrintSubscription(sess.state.Subscription())

	pipeline := sess.state.Pipeline()
	if len(pipeline.Folders) == 0 {
		fmt.Println("No pipeline folders yet.")
		return nil
	}

	fmt.Printf("Pipeline: %d folders, %d candidates\n", len(pipeline.Folders), pipeline.TotalCandidates())
	for _, folder := range pipeline.Folders {
		fmt.Printf("  %s (%d candidates)\n", folder.Name, len(folder.Candidates))
		for _, c := range folder.Candidates {
			fmt.Printf("    @%s", c.Username)
			if c.Seniority != "" {
				fmt.Printf(" (%s)", c.Seniority)
			}
			fmt.Println()
		}
	}
	return nil
}

func runUpgrade(_ *cobra.Command, _ []string) error {
	sess, err := openSession(false)
	if err != nil {
		return err
	}
	defer sess.close()

	sub := sess.state.Upgrade()
	observability.NewPrinter(os.Stdout).PrintSubscription(sub)
	return nil
}
