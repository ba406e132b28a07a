package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/hardcoreai/shell/cli"
	"github.com/hardcoreai/shell/tui/theme"
	"github.com/spf13/cobra"
)

// NewDetectCmd creates the `detect` command.
func NewDetectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "detect",
		Short: "Detect connected boards",
		Long: `Asks the backend to enumerate boards connected over serial. The first
detected board becomes the active board for generate, build and flash.

Examples:
  # List connected boards
  hardcore detect

  # Machine-readable output
  hardcore detect --json
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := cli.GetOptions(cmd)
			sh, err := newShell(cmd)
			if err != nil {
				return cli.NewErrorHandler(opts.Verbose).Handle(err)
			}

			devices, err := sh.orch.Detect(cmd.Context())
			if err != nil {
				return cli.NewErrorHandler(opts.Verbose).Handle(err)
			}

			if opts.JSONOutput {
				out, err := json.MarshalIndent(devices, "", "  ")
				if err != nil {
					return err
				}
				fmt.Println(string(out))
				return nil
			}

			t := theme.DefaultTheme
			for i, d := range devices {
				marker := "  "
				if i == 0 {
					marker = t.Success.Render("* ")
				}
				line := fmt.Sprintf("%s%s on %s", marker, t.Bold.Render(d.Board), d.Port)
				if d.ChipType != "" {
					line += t.Muted.Render(fmt.Sprintf(" (%s)", d.ChipType))
				}
				fmt.Println(line)
			}
			fmt.Println(t.Muted.Render("* active board"))
			return nil
		},
	}
}
