// Package cmd implements the hardcore CLI commands.
package cmd

import (
	"github.com/hardcoreai/shell/cli"
	"github.com/hardcoreai/shell/config"
	"github.com/hardcoreai/shell/pkg/board"
	"github.com/hardcoreai/shell/pkg/events"
	"github.com/hardcoreai/shell/pkg/gateway"
	"github.com/hardcoreai/shell/pkg/orchestrator"
	"github.com/spf13/cobra"
)

// shell bundles the wired-together runtime a command needs: config,
// backend client, event bus, board session and the orchestrator.
type shell struct {
	cfg     *config.Config
	gw      *gateway.Client
	bus     *events.Bus
	session *board.Session
	orch    *orchestrator.Orchestrator
}

// newShell loads configuration and wires the command runtime.
func newShell(cmd *cobra.Command) (*shell, error) {
	opts := cli.GetOptions(cmd)

	var cfg *config.Config
	var err error
	if opts.ConfigFile != "" {
		cfg, err = config.Load(opts.ConfigFile)
	} else {
		cfg, err = config.LoadDefault()
	}
	if err != nil {
		return nil, err
	}

	gw := gateway.NewClient(cfg.Backend.URL)
	bus := events.NewBus()
	session := board.NewSession(cfg.Board.Default)

	return &shell{
		cfg:     cfg,
		gw:      gw,
		bus:     bus,
		session: session,
		orch:    orchestrator.New(gw, bus, session),
	}, nil
}
