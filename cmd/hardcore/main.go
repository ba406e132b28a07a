package main

import (
	"os"

	"github.com/hardcoreai/shell/cli"
	"github.com/hardcoreai/shell/cmd"
)

func main() {
	rootCmd := cli.NewStandardCommand(
		"hardcore",
		"AI firmware shell for the hardcore backend",
	)

	rootCmd.AddCommand(cmd.NewVersionCmd())
	rootCmd.AddCommand(cmd.NewDetectCmd())
	rootCmd.AddCommand(cmd.NewGenerateCmd())
	rootCmd.AddCommand(cmd.NewBuildCmd())
	rootCmd.AddCommand(cmd.NewFlashCmd())
	rootCmd.AddCommand(cmd.NewChatCmd())
	rootCmd.AddCommand(cmd.NewPeripheralsCmd())
	rootCmd.AddCommand(cmd.NewBoardsCmd())
	rootCmd.AddCommand(cmd.NewSettingsCmd())
	rootCmd.AddCommand(cmd.NewLogsCmd())

	cli.ApplyStyledHelpRecursive(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
