package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Row is one patient line in the dashboard.
type Row struct {
	Rank        int
	PatientID   string
	Score       int
	Immediate   bool
	WaitMinutes int
}

// QueueProvider is the interface for fetching and mutating queue data.
// The CLI layer implements it over the queue and state manager.
type QueueProvider interface {
	// Ranked returns the queue in rank order
	Ranked() ([]Row, error)

	// ServeNext pops the highest-ranked patient
	ServeNext() (*Row, error)

	// Remove deletes a patient by id
	Remove(patientID string) error
}

// KeyMap defines the key bindings for the dashboard.
type KeyMap struct {
	Quit    key.Binding
	Up      key.Binding
	Down    key.Binding
	Serve   key.Binding
	Remove  key.Binding
	Refresh key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("k/↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("j/↓", "down"),
		),
		Serve: key.NewBinding(
			key.WithKeys("s", "enter"),
			key.WithHelp("s", "serve next"),
		),
		Remove: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "remove selected"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
	}
}

// refreshInterval is how often the dashboard re-reads the queue.
const refreshInterval = 5 * time.Second

type tickMsg time.Time

type rowsMsg struct {
	rows []Row
	err  error
}

// Model is the dashboard's BubbleTea model.
type Model struct {
	provider QueueProvider
	keys     KeyMap
	rows     []Row
	cursor   int
	width    int
	height   int
	status   string
	err      error
}

// NewModel creates a dashboard model over a queue provider.
func NewModel(provider QueueProvider) Model {
	return Model{
		provider: provider,
		keys:     DefaultKeyMap(),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.refresh(), tick())
}

func tick() tea.Cmd {
	return tea.Tick(refreshInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) refresh() tea.Cmd {
	provider := m.provider
	return func() tea.Msg {
		rows, err := provider.Ranked()
		return rowsMsg{rows: rows, err: err}
	}
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tickMsg:
		return m, tea.Batch(m.refresh(), tick())

	case rowsMsg:
		m.err = msg.err
		if msg.err == nil {
			m.rows = msg.rows
			if m.cursor >= len(m.rows) && len(m.rows) > 0 {
				m.cursor = len(m.rows) - 1
			}
		}
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil

		case key.Matches(msg, m.keys.Down):
			if m.cursor < len(m.rows)-1 {
				m.cursor++
			}
			return m, nil

		case key.Matches(msg, m.keys.Serve):
			served, err := m.provider.ServeNext()
			if err != nil {
				m.status = fmt.Sprintf("serve: %v", err)
				return m, nil
			}
			m.status = fmt.Sprintf("Now serving %s (score %d)", served.PatientID, served.Score)
			return m, m.refresh()

		case key.Matches(msg, m.keys.Remove):
			if m.cursor >= len(m.rows) {
				return m, nil
			}
			id := m.rows[m.cursor].PatientID
			if err := m.provider.Remove(id); err != nil {
				m.status = fmt.Sprintf("remove: %v", err)
				return m, nil
			}
			m.status = fmt.Sprintf("Removed %s", id)
			return m, m.refresh()

		case key.Matches(msg, m.keys.Refresh):
			return m, m.refresh()
		}
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder

	immediate := 0
	for _, row := range m.rows {
		if row.Immediate {
			immediate++
		}
	}

	title := TitleStyle.Render("triageq — waiting room")
	summary := MutedStyle.Render(fmt.Sprintf("  %d waiting, %d immediate", len(m.rows), immediate))
	b.WriteString(title + summary + "\n\n")

	if m.err != nil {
		b.WriteString(ErrorStyle.Render(fmt.Sprintf("error: %v", m.err)) + "\n")
	}

	if len(m.rows) == 0 {
		b.WriteString(MutedStyle.Render("The waiting room is empty.") + "\n")
	} else {
		b.WriteString(HeaderStyle.Render(fmt.Sprintf("  %-4s %-16s %-6s %s", "RANK", "PATIENT", "SCORE", "EST WAIT")) + "\n")
		for i, row := range m.rows {
			line := fmt.Sprintf("%-4d %-16s %-6d %s",
				row.Rank,
				Truncate(row.PatientID, 16),
				row.Score,
				formatWait(row.WaitMinutes),
			)

			icon := "○"
			if row.Immediate {
				icon = lipgloss.NewStyle().Foreground(ColorError).Render("●")
			}

			if i == m.cursor {
				b.WriteString(icon + " " + SelectedStyle.Render(line) + "\n")
			} else {
				b.WriteString(icon + " " + line + "\n")
			}
		}
	}

	b.WriteString("\n")
	if m.status != "" {
		b.WriteString(StatusBarStyle.Render(" "+m.status+" ") + "\n")
	}
	b.WriteString(HelpStyle.Render("s serve · x remove · r refresh · j/k move · q quit"))

	return b.String()
}

// formatWait renders an estimated wait as a compact duration.
func formatWait(minutes int) string {
	if minutes < 60 {
		return fmt.Sprintf("%dm", minutes)
	}
	return fmt.Sprintf("%dh%02dm", minutes/60, minutes%60)
}

// Run starts the dashboard over the given provider and blocks until quit.
func Run(provider QueueProvider) error {
	p := tea.NewProgram(NewModel(provider), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
