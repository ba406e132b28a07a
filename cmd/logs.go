package cmd

import (
	"bufio"
	"fmt"
	"io"
	stdlog "log"
	"os"

	"github.com/hardcoreai/shell/cli"
	"github.com/hardcoreai/shell/errors"
	"github.com/hardcoreai/shell/tui/theme"
	"github.com/hpcloud/tail"
	"github.com/spf13/cobra"
)

// NewLogsCmd creates the `logs` command.
func NewLogsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Show the backend log",
		Long: `Prints the backend log file configured under backend.log_file in
hardcore.yml.

Examples:
  # Print the backend log
  hardcore logs

  # Follow new log lines
  hardcore logs -f
`,
		RunE: runLogsE,
	}

	cmd.Flags().BoolP("follow", "f", false, "Follow log output")
	cmd.Flags().Int("tail", -1, "Number of lines to show from the end of the log (default: all)")

	return cmd
}

func runLogsE(cmd *cobra.Command, args []string) error {
	opts := cli.GetOptions(cmd)
	handler := cli.NewErrorHandler(opts.Verbose)

	sh, err := newShell(cmd)
	if err != nil {
		return handler.Handle(err)
	}

	logFile := sh.cfg.Backend.LogFile
	if logFile == "" {
		return handler.Handle(errors.ConfigInvalid("backend.log_file is not set"))
	}
	if _, err := os.Stat(logFile); err != nil {
		t := theme.DefaultTheme
		fmt.Println(t.Muted.Render("no backend log at " + logFile))
		return nil
	}

	follow, _ := cmd.Flags().GetBool("follow")
	if !follow {
		return printLogFile(logFile, cmd)
	}

	t, err := tail.TailFile(logFile, tail.Config{
		Follow:   true,
		ReOpen:   true,
		Location: &tail.SeekInfo{Offset: 0, Whence: io.SeekEnd},
		Logger:   stdlog.New(io.Discard, "", 0),
	})
	if err != nil {
		return err
	}
	defer t.Stop()

	for {
		select {
		case line, ok := <-t.Lines:
			if !ok {
				return nil
			}
			fmt.Println(line.Text)
		case <-cmd.Context().Done():
			return nil
		}
	}
}

func printLogFile(path string, cmd *cobra.Command) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	tailN, _ := cmd.Flags().GetInt("tail")
	if tailN < 0 {
		_, err = io.Copy(os.Stdout, f)
		return err
	}

	var lines []string
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return err
	}
	if tailN < len(lines) {
		lines = lines[len(lines)-tailN:]
	}
	for _, line := range lines {
		fmt.Println(line)
	}
	return nil
}
