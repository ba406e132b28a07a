package cmd

import (
	"encoding/json"
	"fmt"
	"runtime"

	"github.com/hardcoreai/shell/version"
	"github.com/spf13/cobra"
)

// NewVersionCmd creates the `version` command.
func NewVersionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print hardcore version information",
		RunE: func(cmd *cobra.Command, args []string) error {
			info := version.GetInfo()
			jsonOutput, _ := cmd.Flags().GetBool("json")
			if jsonOutput {
				out, err := json.MarshalIndent(info, "", "  ")
				if err != nil {
					return err
				}
				fmt.Println(string(out))
				return nil
			}

			fmt.Printf("hardcore %s\n", info.Version)
			fmt.Printf("  Commit:    %s\n", info.Commit)
			fmt.Printf("  Branch:    %s\n", info.Branch)
			fmt.Printf("  Built:     %s\n", info.BuildDate)
			fmt.Printf("  Arch:      %s/%s\n", runtime.GOOS, runtime.GOARCH)
			return nil
		},
	}
	return cmd
}
