package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/hardcoreai/shell/cli"
	"github.com/hardcoreai/shell/errors"
	"github.com/hardcoreai/shell/state"
	"github.com/hardcoreai/shell/tui/theme"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// NewSettingsCmd creates the `settings` command group.
func NewSettingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Manage hardcore settings",
	}

	cmd.AddCommand(newAPIKeyCmd())

	return cmd
}

func newAPIKeyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "api-key",
		Short: "Set the AI provider API key",
		Long: `Stores the API key in the local state file, then pushes it to the
backend. The local copy is authoritative: if the backend is down the key
is still saved and synced on the next backend interaction.

Examples:
  # Prompt for the key without echoing it
  hardcore settings api-key
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := cli.GetOptions(cmd)
			handler := cli.NewErrorHandler(opts.Verbose)
			t := theme.DefaultTheme

			fmt.Fprint(os.Stderr, "API key: ")
			raw, err := term.ReadPassword(int(os.Stdin.Fd()))
			fmt.Fprintln(os.Stderr)
			if err != nil {
				return err
			}
			key := strings.TrimSpace(string(raw))
			if key == "" {
				return handler.Handle(errors.InvalidInput("API key must not be empty"))
			}

			// Local first: the state file is the source of truth.
			if err := state.Set(state.KeyAPIKey, key); err != nil {
				return handler.Handle(err)
			}
			fmt.Println(t.Success.Render("✓ API key saved locally"))

			// Backend sync is best-effort.
			sh, err := newShell(cmd)
			if err != nil {
				return nil
			}
			if err := sh.gw.SaveAPIKey(cmd.Context(), key); err != nil {
				fmt.Println(t.Warning.Render("backend not reachable; key will sync when it comes up"))
				return nil
			}
			fmt.Println(t.Success.Render("✓ API key synced to backend"))
			return nil
		},
	}
}
