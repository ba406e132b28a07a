// Package chat implements the interactive chat TUI over the backend's
// streaming chat endpoint.
package chat

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/hardcoreai/shell/pkg/board"
	"github.com/hardcoreai/shell/pkg/events"
	"github.com/hardcoreai/shell/pkg/gateway"
	"github.com/hardcoreai/shell/tui/theme"
)

// frameMsg wraps one websocket frame for the bubbletea loop.
type frameMsg struct {
	frame gateway.StreamFrame
	ok    bool
}

type flashDoneMsg events.FlashResult

// Model is the chat TUI. It owns the websocket stream and forwards
// generated code onto the event bus, where the file registry picks it
// up exactly as it would from a non-streaming generation.
type Model struct {
	viewport  viewport.Model
	input     textinput.Model
	spinner   spinner.Model
	stream    *gateway.ChatStream
	bus       *events.Bus
	session   *board.Session
	theme     *theme.Theme
	lines     []string
	waiting   bool
	ready     bool
	width     int
	height    int
	flashDone chan events.FlashResult
	err       error
}

// New creates the chat model over an open stream.
func New(stream *gateway.ChatStream, bus *events.Bus, session *board.Session) *Model {
	t := theme.DefaultTheme

	ti := textinput.New()
	ti.Placeholder = "Describe the firmware you want..."
	ti.PlaceholderStyle = t.Placeholder
	ti.TextStyle = t.Input
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(t.Colors.Orange)

	m := &Model{
		input:     ti,
		spinner:   sp,
		stream:    stream,
		bus:       bus,
		session:   session,
		theme:     t,
		flashDone: make(chan events.FlashResult, 4),
	}

	// Flash outcomes surface in the transcript regardless of which
	// surface started the flash.
	bus.Subscribe(events.FlashComplete, func(payload interface{}) {
		if result, ok := payload.(events.FlashResult); ok {
			m.flashDone <- result
		}
	})

	return m
}

// Run drives the TUI until the user quits.
func Run(ctx context.Context, stream *gateway.ChatStream, bus *events.Bus, session *board.Session) error {
	p := tea.NewProgram(New(stream, bus, session), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick, m.waitForFrame(), m.waitForFlash())
}

func (m *Model) waitForFrame() tea.Cmd {
	return func() tea.Msg {
		frame, ok := <-m.stream.Frames()
		return frameMsg{frame: frame, ok: ok}
	}
}

func (m *Model) waitForFlash() tea.Cmd {
	return func() tea.Msg {
		return flashDoneMsg(<-m.flashDone)
	}
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if !m.ready {
			m.viewport = viewport.New(msg.Width, msg.Height-3)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = msg.Height - 3
		}
		m.input.Width = msg.Width - 4
		m.setContent()

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.stream.Close()
			return m, tea.Quit
		case "enter":
			if m.waiting {
				break
			}
			text := strings.TrimSpace(m.input.Value())
			if text == "" {
				break
			}
			m.appendLine(m.theme.Bold.Render("you: ") + text)
			m.input.Reset()
			if err := m.stream.Send(gateway.StreamRequest{
				Message:   text,
				BoardType: m.session.Effective(),
			}); err != nil {
				m.err = err
				m.appendLine(m.theme.Error.Render("send failed: " + err.Error()))
				break
			}
			m.waiting = true
		}

	case frameMsg:
		if !msg.ok {
			m.waiting = false
			m.appendLine(m.theme.Muted.Render("connection closed"))
			break
		}
		m.handleFrame(msg.frame)
		cmds = append(cmds, m.waitForFrame())

	case flashDoneMsg:
		result := events.FlashResult(msg)
		if result.Success {
			m.appendLine(m.theme.Success.Render("✓ flash complete"))
		} else {
			m.appendLine(m.theme.Error.Render("✗ flash failed: " + result.Error))
		}
		cmds = append(cmds, m.waitForFlash())

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)
	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

func (m *Model) handleFrame(frame gateway.StreamFrame) {
	switch frame.Type {
	case gateway.FrameAck:
		// Nothing to display, the spinner already shows activity.
	case gateway.FrameProgress:
		if frame.Message != "" {
			m.appendLine(m.theme.Muted.Render(frame.Message))
		}
	case gateway.FrameComplete:
		m.waiting = false
		if frame.Message != "" {
			m.appendLine(m.theme.Info.Render("hardcore: ") + frame.Message)
		}
		if frame.Code != "" {
			m.bus.Publish(events.CodeGenerated, events.CodeGeneratedPayload{
				Code:     frame.Code,
				FileName: "main.cpp",
			})
			m.appendLine(m.theme.Success.Render("✓ firmware written to main.cpp"))
		}
	case gateway.FrameError:
		m.waiting = false
		m.appendLine(m.theme.Error.Render("error: " + frame.Message))
	}
}

func (m *Model) appendLine(line string) {
	m.lines = append(m.lines, line)
	m.setContent()
	m.viewport.GotoBottom()
}

func (m *Model) setContent() {
	if !m.ready {
		return
	}
	wrap := lipgloss.NewStyle().Width(m.viewport.Width)
	var wrapped []string
	for _, line := range m.lines {
		wrapped = append(wrapped, wrap.Render(line))
	}
	m.viewport.SetContent(strings.Join(wrapped, "\n"))
}

func (m *Model) View() string {
	if !m.ready {
		return "Connecting..."
	}

	status := m.theme.Muted.Render(fmt.Sprintf("board: %s", boardLabel(m.session)))
	if m.waiting {
		status = m.spinner.View() + " " + m.theme.Muted.Render("generating...")
	}

	return m.viewport.View() + "\n" + status + "\n" + m.input.View()
}

func boardLabel(s *board.Session) string {
	if s.Connected() {
		return s.Effective() + " on " + s.Port()
	}
	if s.Effective() == "" {
		return "none"
	}
	return s.Effective() + " (not connected)"
}
