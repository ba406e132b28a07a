package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hardcoreai/shell/cli"
	"github.com/hardcoreai/shell/pkg/files"
	"github.com/hardcoreai/shell/pkg/models"
	"github.com/hardcoreai/shell/pkg/peripherals"
	"github.com/hardcoreai/shell/tui/theme"
	"github.com/spf13/cobra"
)

// NewGenerateCmd creates the `generate` command.
func NewGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate [prompt...]",
		Short: "Generate firmware from a prompt or a peripheral configuration",
		Long: `Sends a generation request to the backend. With a prompt, the request
goes through the conversational endpoint; with --peripherals, the
structured configuration file drives generation instead.

Generated firmware is written into the workspace as main.cpp unless
--output names a different file.

Examples:
  # Generate from a natural-language prompt
  hardcore generate "blink an LED on pin 2 every second"

  # Generate from a saved peripheral configuration
  hardcore generate --peripherals sensors.json

  # Write the firmware somewhere specific
  hardcore generate --peripherals sensors.json -o src/main.cpp
`,
		RunE: runGenerateE,
	}

	cmd.Flags().StringP("peripherals", "p", "", "Path to a peripheral configuration JSON file")
	cmd.Flags().StringP("output", "o", "", "File to write generated firmware to")
	cmd.Flags().String("board", "", "Override the target board")

	return cmd
}

func runGenerateE(cmd *cobra.Command, args []string) error {
	opts := cli.GetOptions(cmd)
	handler := cli.NewErrorHandler(opts.Verbose)

	sh, err := newShell(cmd)
	if err != nil {
		return handler.Handle(err)
	}

	if boardID, _ := cmd.Flags().GetString("board"); boardID != "" {
		sh.session.Select(boardID)
	}

	// The registry subscribes to the bus so a code response lands in a
	// buffer and on disk the same way the IDE shell would take it.
	registry := files.NewRegistry()
	registry.BindGenerated(sh.bus, sh.cfg.Workspace.Dir)

	periphFile, _ := cmd.Flags().GetString("peripherals")
	t := theme.DefaultTheme

	var firmware string
	if periphFile != "" {
		cfg, err := peripherals.LoadFile(periphFile)
		if err != nil {
			return handler.Handle(err)
		}
		store := peripherals.NewStore(sh.bus)
		store.Replace(cfg)

		resp, err := sh.orch.GenerateFromPeripherals(cmd.Context(), store)
		if err != nil {
			return handler.Handle(err)
		}
		if resp.IsChat || resp.Firmware == "" {
			fmt.Println(t.Info.Render("backend needs clarification:"))
			fmt.Println(resp.Message)
			return nil
		}
		firmware = resp.Firmware
	} else {
		message := strings.TrimSpace(strings.Join(args, " "))
		resp, err := sh.orch.Generate(cmd.Context(), message)
		if err != nil {
			return handler.Handle(err)
		}
		if resp.ResponseType != models.ResponseTypeCode || resp.Firmware == "" {
			fmt.Println(resp.Message)
			return nil
		}
		firmware = resp.Firmware
	}

	outPath, _ := cmd.Flags().GetString("output")
	if outPath == "" {
		if f, ok := registry.Active(); ok && f.Dirty {
			if err := registry.Save(f.Path); err != nil {
				return handler.Handle(err)
			}
			outPath = f.Path
		} else {
			outPath = filepath.Join(sh.cfg.Workspace.Dir, "main.cpp")
			if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
				return err
			}
			if err := os.WriteFile(outPath, []byte(firmware), 0o644); err != nil {
				return err
			}
		}
	} else {
		if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
			return err
		}
		if err := os.WriteFile(outPath, []byte(firmware), 0o644); err != nil {
			return err
		}
	}

	fmt.Printf("%s %s\n", t.Success.Render("✓"), outPath)
	return nil
}
