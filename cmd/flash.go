package cmd

import (
	"fmt"

	"github.com/hardcoreai/shell/cli"
	"github.com/hardcoreai/shell/pkg/events"
	"github.com/hardcoreai/shell/tui/theme"
	"github.com/spf13/cobra"
)

// NewFlashCmd creates the `flash` command.
func NewFlashCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "flash",
		Short: "Build and flash the firmware to the connected board",
		Long: `Builds and writes the current firmware to the connected board. Runs a
device detection first unless a port and board are already known.

Examples:
  # Detect, build and flash in one go
  hardcore flash

  # Flash a known port without detection
  hardcore flash --port COM3 --board esp32dev
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := cli.GetOptions(cmd)
			handler := cli.NewErrorHandler(opts.Verbose)

			sh, err := newShell(cmd)
			if err != nil {
				return handler.Handle(err)
			}

			port, _ := cmd.Flags().GetString("port")
			boardID, _ := cmd.Flags().GetString("board")
			if port != "" || boardID != "" {
				sh.session.RecordDetection(boardID, port)
			} else {
				if _, err := sh.orch.Detect(cmd.Context()); err != nil {
					return handler.Handle(err)
				}
			}

			t := theme.DefaultTheme
			sh.bus.Subscribe(events.FlashStart, func(payload any) {
				fmt.Println(t.Info.Render("flashing..."))
			})
			sh.bus.Subscribe(events.FlashComplete, func(payload any) {
				result := payload.(events.FlashResult)
				if result.Success {
					fmt.Println(t.Success.Render("✓ flash complete"))
				} else {
					fmt.Println(t.Error.Render("✗ flash failed: " + result.Error))
				}
			})

			if _, err := sh.orch.Flash(cmd.Context()); err != nil {
				return handler.Handle(err)
			}
			return nil
		},
	}

	cmd.Flags().String("port", "", "Serial port to flash")
	cmd.Flags().String("board", "", "Board identifier to flash")
	return cmd
}
