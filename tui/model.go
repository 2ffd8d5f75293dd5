package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/grovetools/praise/errors"
	"github.com/grovetools/praise/pkg/presenter"
	"github.com/grovetools/praise/pkg/workers"
	"github.com/grovetools/praise/tui/keymap"
	"github.com/grovetools/praise/tui/theme"
)

// WorkerSource enumerates the current workers.
type WorkerSource func() ([]workers.Worker, error)

// WorkersChangedMsg asks the model to enumerate the workers again.
type WorkersChangedMsg struct{}

type workersLoadedMsg struct {
	list []workers.Worker
	err  error
}

// Model is the bubbletea model for `praise tui`.
type Model struct {
	title     string
	keys      keymap.KeyMap
	help      help.Model
	theme     *theme.Theme
	presenter *presenter.Presenter
	source    WorkerSource

	workers []workers.Worker
	view    presenter.View
	loaded  bool
	cursor  int
	err     error
	width   int
}

// New creates the model. Workers are enumerated when the program starts.
func New(title string, p *presenter.Presenter, source WorkerSource, keys keymap.KeyMap) Model {
	return Model{
		title:     title,
		keys:      keys,
		help:      help.New(),
		theme:     theme.DefaultTheme,
		presenter: p,
		source:    source,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return m.load
}

func (m Model) load() tea.Msg {
	list, err := m.source()
	return workersLoadedMsg{list: list, err: err}
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case WorkersChangedMsg:
		return m, m.load

	case workersLoadedMsg:
		first := !m.loaded
		m.loaded = true
		m.err = msg.err
		if msg.err == nil {
			m.workers = msg.list
		}
		m.refresh()
		if first && m.view.Current >= 0 {
			m.cursor = m.view.Current
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.workers)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Top):
		m.cursor = 0
	case key.Matches(msg, m.keys.Bottom):
		if len(m.workers) > 0 {
			m.cursor = len(m.workers) - 1
		}
	case key.Matches(msg, m.keys.Praise):
		m.event(m.presenter.Click(m.workers, m.cursor))
	case key.Matches(msg, m.keys.Another):
		m.event(m.presenter.Another(m.workers))
		if m.view.Current >= 0 {
			m.cursor = m.view.Current
		}
	}
	return m, nil
}

// event records the outcome of a presenter event. A missing worker list is
// already explained by the view's notice.
func (m *Model) event(err error) {
	if err != nil && !errors.Is(err, errors.ErrCodeNoWorkers) {
		m.err = err
	} else {
		m.err = nil
	}
	m.refresh()
}

func (m *Model) refresh() {
	m.view = m.presenter.Render(m.workers)
	if m.cursor >= len(m.workers) {
		m.cursor = max(len(m.workers)-1, 0)
	}
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.loaded {
		return m.theme.Muted.Render("Loading workers...")
	}

	var b strings.Builder
	b.WriteString(m.theme.Header.Render("🫶 " + m.title))
	b.WriteString("\n")

	left := m.renderWorkers()
	right := m.renderPraise()
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, left, "  ", right))
	b.WriteString("\n\n")

	if m.err != nil {
		b.WriteString(m.theme.Error.Render("✗ " + m.err.Error()))
		b.WriteString("\n")
	}
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m Model) renderWorkers() string {
	var lines []string
	lines = append(lines, m.theme.Title.Render("Workers"))
	if len(m.workers) == 0 {
		lines = append(lines, m.theme.Muted.Render("(none)"))
	}
	for i, w := range m.workers {
		marker := "  "
		if i == m.view.Current {
			marker = "★ "
		}
		line := marker + w.Name
		if w.Placeholder {
			line += m.theme.Muted.Render(" (placeholder)")
		}
		if i == m.cursor {
			line = m.theme.Selected.Render("▸ " + line)
		} else {
			line = "  " + line
		}
		lines = append(lines, line)
	}
	return m.theme.Box.Render(strings.Join(lines, "\n"))
}

func (m Model) renderPraise() string {
	var lines []string
	lines = append(lines, m.theme.Title.Render("Your praise"))

	if last := m.view.Last; last != nil {
		lines = append(lines,
			m.theme.Praise.Render(last.Message),
			"🕒 "+last.Time,
			"for: "+m.theme.Accent.Render(last.Who),
		)
	}
	if m.view.Notice != "" {
		style := m.theme.Info
		if m.view.NoticeLevel == "warning" {
			style = m.theme.Warning
		}
		notice := m.view.Notice
		if m.view.State == presenter.StateEmpty && len(m.workers) > 0 {
			notice = "worker を選んで enter で褒めます"
		}
		lines = append(lines, style.Render(notice))
	}

	lines = append(lines, "", m.theme.Title.Render("History"))
	for _, h := range m.view.History {
		lines = append(lines, fmt.Sprintf("%s - %s - %s", m.theme.Muted.Render(h.Time), h.Who, h.Message))
	}
	if m.view.TotalHistory > len(m.view.History) {
		lines = append(lines, m.theme.Muted.Render(
			fmt.Sprintf("%d 件中 %d 件を表示", m.view.TotalHistory, len(m.view.History))))
	}
	return m.theme.Box.Render(strings.Join(lines, "\n"))
}
