package logging

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

// PrettyLogger provides pretty formatted console output for user-facing
// command results, separate from the structured logrus sinks.
type PrettyLogger struct {
	writer io.Writer
	styles PrettyStyles
	color  bool
}

// PrettyStyles contains lipgloss styles for different log types
type PrettyStyles struct {
	Success lipgloss.Style
	Info    lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
	Key     lipgloss.Style
	Value   lipgloss.Style
	Path    lipgloss.Style
}

// DefaultPrettyStyles returns the default styling for pretty logs
func DefaultPrettyStyles() PrettyStyles {
	return PrettyStyles{
		Success: lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true),
		Info:    lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		Warning: lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		Key:     lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Value:   lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true),
		Path:    lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Italic(true),
	}
}

// NewPrettyLogger creates a pretty logger wrapper
func NewPrettyLogger() *PrettyLogger {
	color := isatty.IsTerminal(os.Stderr.Fd()) &&
		termenv.EnvColorProfile() != termenv.Ascii
	return &PrettyLogger{
		writer: os.Stderr,
		styles: DefaultPrettyStyles(),
		color:  color,
	}
}

// WithWriter sets a custom writer for pretty output
func (p *PrettyLogger) WithWriter(w io.Writer) *PrettyLogger {
	p.writer = w
	return p
}

func (p *PrettyLogger) render(style lipgloss.Style, s string) string {
	if !p.color {
		return s
	}
	return style.Render(s)
}

// Success logs a success message with a checkmark
func (p *PrettyLogger) Success(message string) {
	fmt.Fprintf(p.writer, "%s %s\n",
		p.render(p.styles.Success, "✓"),
		p.render(p.styles.Success, message))
}

// Info logs an info message
func (p *PrettyLogger) Info(message string) {
	fmt.Fprintf(p.writer, "%s\n", p.render(p.styles.Info, message))
}

// Warning logs a warning message
func (p *PrettyLogger) Warning(message string) {
	fmt.Fprintf(p.writer, "%s %s\n",
		p.render(p.styles.Warning, "!"),
		p.render(p.styles.Warning, message))
}

// Error logs an error message with a cross
func (p *PrettyLogger) Error(message string) {
	fmt.Fprintf(p.writer, "%s %s\n",
		p.render(p.styles.Error, "✗"),
		p.render(p.styles.Error, message))
}

// KeyValue logs an aligned key/value detail line
func (p *PrettyLogger) KeyValue(key, value string) {
	fmt.Fprintf(p.writer, "  %s %s\n",
		p.render(p.styles.Key, key+":"),
		p.render(p.styles.Value, value))
}
