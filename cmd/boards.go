package cmd

import (
	"fmt"

	"github.com/hardcoreai/shell/pkg/board"
	"github.com/hardcoreai/shell/tui/theme"
	"github.com/spf13/cobra"
)

// NewBoardsCmd creates the `boards` command.
func NewBoardsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "boards",
		Short: "List supported boards and their pin ranges",
		RunE: func(cmd *cobra.Command, args []string) error {
			t := theme.DefaultTheme
			for _, id := range board.Supported() {
				pinout := board.Lookup(id)
				fmt.Printf("%-16s %s  %s\n", t.Bold.Render(id), pinout.Name,
					t.Muted.Render(fmt.Sprintf("(%s, %d usable pins)", pinout.Chip, len(pinout.Pins))))
			}
			return nil
		},
	}
}
