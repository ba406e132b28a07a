package cmd

import (
	"fmt"
	"os"
	"slices"

	"github.com/hardcoreai/shell/cli"
	"github.com/hardcoreai/shell/pkg/board"
	"github.com/hardcoreai/shell/pkg/peripherals"
	"github.com/hardcoreai/shell/tui/theme"
	"github.com/spf13/cobra"
)

// NewPeripheralsCmd creates the `peripherals` command group.
func NewPeripheralsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "peripherals",
		Aliases: []string{"periph"},
		Short:   "Inspect and validate peripheral configuration files",
	}

	cmd.AddCommand(newPeripheralsInitCmd())
	cmd.AddCommand(newPeripheralsValidateCmd())
	cmd.AddCommand(newPeripheralsPromptCmd())

	return cmd
}

func newPeripheralsInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init [file]",
		Short: "Write a starter peripheral configuration file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "peripherals.json"
			if len(args) > 0 {
				path = args[0]
			}
			if _, err := os.Stat(path); err == nil {
				return fmt.Errorf("%s already exists", path)
			}

			cfg := peripherals.Config{
				GPIO:  []peripherals.GPIOPin{{ID: "gpio-1", Pin: 2, Label: "LED", Mode: "OUTPUT"}},
				Clock: peripherals.Clock{FrequencyMHz: 240},
			}
			if err := peripherals.SaveFile(path, cfg); err != nil {
				return err
			}

			t := theme.DefaultTheme
			fmt.Printf("%s %s\n", t.Success.Render("✓"), path)
			return nil
		},
	}
}

func newPeripheralsValidateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <file>",
		Short: "Validate a peripheral configuration against the schema",
		Long: `Checks a peripheral configuration JSON file against the embedded schema
and, when a board is known, warns about pins outside the board's range
and pins shared between peripherals.

Examples:
  # Validate a configuration file
  hardcore peripherals validate sensors.json

  # Validate against a specific board's pinout
  hardcore peripherals validate sensors.json --board uno
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := cli.GetOptions(cmd)
			handler := cli.NewErrorHandler(opts.Verbose)

			cfg, err := peripherals.LoadFile(args[0])
			if err != nil {
				return handler.Handle(err)
			}

			t := theme.DefaultTheme
			boardID, _ := cmd.Flags().GetString("board")
			if boardID != "" && !slices.Contains(board.Supported(), boardID) {
				fmt.Println(t.Warning.Render(fmt.Sprintf("unknown board %q, using generic pin range", boardID)))
			}

			warnings := cfg.ValidatePins(boardID)
			for _, pin := range cfg.PinConflicts() {
				warnings = append(warnings, fmt.Sprintf("pin %d is used by more than one peripheral", pin))
			}
			for _, w := range warnings {
				fmt.Println(t.Warning.Render("warning: " + w))
			}

			fmt.Printf("%s %d peripherals configured\n", t.Success.Render("✓"), cfg.Total())
			return nil
		},
	}
	cmd.Flags().String("board", "", "Board to validate pin ranges against")
	return cmd
}

func newPeripheralsPromptCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prompt <file>",
		Short: "Render the generation prompt for a peripheral configuration",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := cli.GetOptions(cmd)
			handler := cli.NewErrorHandler(opts.Verbose)

			cfg, err := peripherals.LoadFile(args[0])
			if err != nil {
				return handler.Handle(err)
			}

			boardID, _ := cmd.Flags().GetString("board")
			fmt.Println(cfg.Prompt(boardID))
			return nil
		},
	}
	cmd.Flags().String("board", "", "Board identifier to embed in the prompt")
	return cmd
}
