// Package tui is the interactive front end: an extract action, the weekly
// table and a copy-to-clipboard action.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog/log"

	"github.com/Tiliavir/autoprep/internal/grid"
	"github.com/Tiliavir/autoprep/internal/model"
	"github.com/Tiliavir/autoprep/internal/report"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	spinnerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	helpStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Margin(1, 0, 0, 0)
	okStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	errStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	tableBox     = lipgloss.NewStyle().BorderStyle(lipgloss.NormalBorder()).BorderForeground(lipgloss.Color("240"))
	appStyle     = lipgloss.NewStyle().Margin(1, 2, 0, 2)
)

// Fetcher performs one retrieval. It runs off the UI loop and must honour
// ctx cancellation.
type Fetcher func(ctx context.Context) (report.Outcome, error)

// CopyFunc writes text to the clipboard.
type CopyFunc func(text string) error

// fetchDoneMsg carries the completed retrieval back to the UI loop.
type fetchDoneMsg struct {
	outcome report.Outcome
	err     error
}

// Model is the bubbletea model of the interactive screen.
type Model struct {
	title   string
	fetch   Fetcher
	copy    CopyFunc
	table   table.Model
	spinner spinner.Model

	loading bool
	hasData bool
	cancel  context.CancelFunc

	status      string
	statusStyle lipgloss.Style
	quitting    bool
}

// New creates the screen. title is shown above the table.
func New(title string, fetch Fetcher, copyFn CopyFunc) Model {
	t := table.New(
		table.WithColumns([]table.Column{
			{Title: grid.Header[0], Width: 28},
			{Title: grid.Header[1], Width: 7},
			{Title: grid.Header[2], Width: 7},
		}),
		table.WithFocused(true),
		table.WithHeight(10),
	)
	styles := table.DefaultStyles()
	styles.Header = styles.Header.BorderStyle(lipgloss.NormalBorder()).BorderBottom(true).Bold(true)
	styles.Selected = styles.Selected.Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57"))
	t.SetStyles(styles)

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = spinnerStyle

	return Model{
		title:       title,
		fetch:       fetch,
		copy:        copyFn,
		table:       t,
		spinner:     s,
		status:      "Press e to extract data from Clockify.",
		statusStyle: lipgloss.NewStyle(),
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "e", "enter":
			return m.startFetch()
		case "c":
			return m.copyTable(), nil
		case "esc":
			if m.loading && m.cancel != nil {
				m.cancel()
				m.setStatus("Cancelling…", warnStyle)
			}
			return m, nil
		case "q", "ctrl+c":
			if m.cancel != nil {
				m.cancel()
			}
			m.quitting = true
			return m, tea.Quit
		}

	case fetchDoneMsg:
		return m.finishFetch(msg), nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.WindowSizeMsg:
		// title, status, help and the table border take about 10 lines
		m.table.SetHeight(max(msg.Height-10, 3))
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// startFetch launches a retrieval unless one is already running.
func (m Model) startFetch() (tea.Model, tea.Cmd) {
	if m.loading {
		return m, nil
	}
	ctx, cancel := context.WithCancel(context.Background())
	m.loading = true
	m.cancel = cancel
	m.setStatus("Obtaining data…", lipgloss.NewStyle())
	log.Debug().Msg("retrieval started")

	fetch := m.fetch
	return m, tea.Batch(m.spinner.Tick, func() tea.Msg {
		out, err := fetch(ctx)
		return fetchDoneMsg{outcome: out, err: err}
	})
}

func (m Model) finishFetch(msg fetchDoneMsg) Model {
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
	m.loading = false

	if msg.err != nil {
		log.Debug().Err(msg.err).Msg("retrieval failed")
		m.setStatus(fmt.Sprintf("Retrieval failed: %v. Press e to retry.", msg.err), errStyle)
		return m
	}

	m.table.SetRows(tableRows(msg.outcome.Rows))
	m.table.GotoTop()
	m.hasData = true

	status := fmt.Sprintf("%s: %d member(s).", msg.outcome.Range.Label(), len(msg.outcome.Rows))
	style := okStyle
	if n := len(msg.outcome.Skipped); n > 0 {
		status += fmt.Sprintf(" %d without tracked time.", n)
	}
	if n := len(msg.outcome.Failed); n > 0 {
		names := make([]string, 0, n)
		for _, f := range msg.outcome.Failed {
			names = append(names, f.User.Name)
		}
		status += fmt.Sprintf(" Failed: %s.", strings.Join(names, ", "))
		style = warnStyle
	}
	m.setStatus(status, style)
	return m
}

// copyTable puts the displayed grid, header included, on the clipboard.
func (m Model) copyTable() Model {
	if !m.hasData {
		m.setStatus("Nothing to copy yet. Press e to extract data first.", warnStyle)
		return m
	}
	if err := m.copy(m.GridText()); err != nil {
		m.setStatus(fmt.Sprintf("Copy failed: %v", err), errStyle)
		return m
	}
	m.setStatus("Copied!", okStyle)
	return m
}

// GridText serializes the table as currently displayed.
func (m Model) GridText() string {
	cols := m.table.Columns()
	cells := make([]string, 0, len(cols)*(len(m.table.Rows())+1))
	for _, c := range cols {
		cells = append(cells, c.Title)
	}
	for _, r := range m.table.Rows() {
		cells = append(cells, r...)
	}
	return grid.Serialize(cells, len(cols))
}

func (m *Model) setStatus(s string, style lipgloss.Style) {
	m.status = s
	m.statusStyle = style
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	var b strings.Builder
	b.WriteString(titleStyle.Render(m.title))
	b.WriteString("\n\n")
	b.WriteString(tableBox.Render(m.table.View()))
	b.WriteString("\n")
	if m.loading {
		b.WriteString(m.spinner.View() + " ")
	}
	b.WriteString(m.statusStyle.Render(m.status))

	help := "e extract • c copy • ↑/↓ scroll • q quit"
	if m.loading {
		help = "esc cancel • q quit"
	}
	b.WriteString(helpStyle.Render(help))
	return appStyle.Render(b.String())
}

func tableRows(rows []model.Row) []table.Row {
	out := make([]table.Row, len(rows))
	for i, r := range rows {
		out[i] = table.Row{r.Member, r.Hours, r.Minutes}
	}
	return out
}

// Run starts the interactive program and blocks until the user quits.
func Run(m Model) error {
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
