package cmd

import (
	"fmt"
	"os"

	"github.com/hardcoreai/shell/cli"
	"github.com/hardcoreai/shell/pkg/models"
	"github.com/hardcoreai/shell/tui/theme"
	"github.com/spf13/cobra"
)

// NewBuildCmd creates the `build` command.
func NewBuildCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build [project-path]",
		Short: "Compile the firmware project on the backend",
		Long: `Compiles the firmware project for the active board. Without an argument
the current directory is built.

Examples:
  # Build the current directory
  hardcore build

  # Build a specific project for a specific board
  hardcore build ~/projects/thermostat --board esp32dev
`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := cli.GetOptions(cmd)
			handler := cli.NewErrorHandler(opts.Verbose)

			sh, err := newShell(cmd)
			if err != nil {
				return handler.Handle(err)
			}
			if boardID, _ := cmd.Flags().GetString("board"); boardID != "" {
				sh.session.Select(boardID)
			}

			projectPath := ""
			if len(args) > 0 {
				projectPath = args[0]
			} else if cwd, err := os.Getwd(); err == nil {
				projectPath = cwd
			}

			resp, err := sh.orch.Build(cmd.Context(), projectPath)
			if err != nil {
				return handler.Handle(err)
			}

			t := theme.DefaultTheme
			for _, msg := range resp.Messages {
				fmt.Println(t.Muted.Render(msg))
			}
			if resp.Status != models.StatusSuccess {
				fmt.Println(t.Error.Render("build failed"))
				os.Exit(1)
			}
			fmt.Println(t.Success.Render("build succeeded"))
			return nil
		},
	}

	cmd.Flags().String("board", "", "Override the target board")
	return cmd
}
