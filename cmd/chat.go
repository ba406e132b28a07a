package cmd

import (
	"fmt"
	"time"

	"github.com/hardcoreai/shell/cli"
	"github.com/hardcoreai/shell/pkg/events"
	"github.com/hardcoreai/shell/pkg/files"
	"github.com/hardcoreai/shell/tui/chat"
	"github.com/spf13/cobra"
)

// NewChatCmd creates the `chat` command.
func NewChatCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Open the interactive firmware chat",
		Long: `Opens a streaming chat session with the backend. Generated firmware is
written into the workspace as you go.

Examples:
  # Start a chat session
  hardcore chat
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := cli.GetOptions(cmd)
			handler := cli.NewErrorHandler(opts.Verbose)

			sh, err := newShell(cmd)
			if err != nil {
				return handler.Handle(err)
			}

			// Generated code flows bus -> registry -> disk, the same
			// path the generate command uses.
			registry := files.NewRegistry()
			registry.BindGenerated(sh.bus, sh.cfg.Workspace.Dir)
			sh.bus.Subscribe(events.CodeGenerated, func(payload interface{}) {
				if f, ok := registry.Active(); ok && f.Dirty {
					_ = registry.Save(f.Path)
				}
			})

			// External edits to workspace files reload clean buffers.
			if watcher, err := files.NewWatcher(registry, sh.cfg.Workspace.Dir); err == nil {
				go watcher.Run(cmd.Context())
			}

			sessionID, _ := cmd.Flags().GetString("session")
			if sessionID == "" {
				sessionID = fmt.Sprintf("shell-%d", time.Now().Unix())
			}

			stream, err := sh.gw.OpenChatStream(cmd.Context(), sessionID)
			if err != nil {
				return handler.Handle(err)
			}
			defer stream.Close()

			return chat.Run(cmd.Context(), stream, sh.bus, sh.session)
		},
	}

	cmd.Flags().String("session", "", "Chat session identifier (default: generated)")
	return cmd
}
