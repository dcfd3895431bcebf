package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/devlens/devlens/internal/localstore"
)

var themeCmd = &cobra.Command{
	Use:   "theme [dark|light]",
	Short: "Show or set the UI theme preference",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runTheme,
}

func init() {
	rootCmd.AddCommand(themeCmd)
}

func runTheme(_ *cobra.Command, args []string) error {
	path, err := localstore.DefaultPath()
	if err != nil {
		return err
	}
	local, err := localstore.Open(path)
	if err != nil {
		return err
	}

	if len(args) == 0 {
		fmt.Println(local.Theme())
		return nil
	}

	theme := args[0]
	if theme != "dark" && theme != "light" {
		return fmt.Errorf("unknown theme %q: expected dark or light", theme)
	}
	if err := local.SetTheme(theme); err != nil {
		return err
	}
	fmt.Printf("Theme set to %s\n", theme)
	return nil
}
