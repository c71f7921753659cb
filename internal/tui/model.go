// Package tui is the terminal front-end of the position viewer.
package tui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/alex65536/fenview/internal/boardview"
	"github.com/alex65536/fenview/internal/posbrowser"
)

var (
	appStyle    = lipgloss.NewStyle().Padding(1, 2)
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#b58863"))
	totalStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#6b7280"))
	evalStyle   = lipgloss.NewStyle().MarginTop(1)
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#6b7280")).Italic(true)
)

type loadedMsg struct {
	records []posbrowser.Record
}

type Options struct {
	DarkSquare string
}

type Model struct {
	load     tea.Cmd
	keys     KeyMap
	palette  boardview.Palette
	browser  *posbrowser.Browser
	loading  bool
	spinner  spinner.Model
	help     help.Model
	quitting bool
}

// New creates a model that fetches the positions from src once, when the program starts.
func New(ctx context.Context, log *slog.Logger, src posbrowser.Source, o Options) (Model, error) {
	palette, err := boardview.NewPalette(o.DarkSquare)
	if err != nil {
		return Model{}, fmt.Errorf("palette: %w", err)
	}
	s := spinner.New()
	s.Spinner = spinner.Dot
	return Model{
		load: func() tea.Msg {
			return loadedMsg{records: posbrowser.Load(ctx, log, src)}
		},
		keys:    DefaultKeyMap,
		palette: palette,
		browser: posbrowser.New(nil),
		loading: true,
		spinner: s,
		help:    help.New(),
	}, nil
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.load)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		return m, nil

	case loadedMsg:
		m.browser = posbrowser.New(msg.records)
		m.loading = false
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		}
		if m.loading {
			return m, nil
		}
		// The browser is replaced instead of mutated, so copies of the model stay intact.
		br := m.browser.Clone()
		switch {
		case key.Matches(msg, m.keys.Prev):
			br.Prev()
		case key.Matches(msg, m.keys.Next):
			br.Next()
		case key.Matches(msg, m.keys.First):
			br.Seek(0)
		case key.Matches(msg, m.keys.Last):
			br.Seek(br.Len() - 1)
		}
		m.browser = br
		return m, nil
	}
	return m, nil
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	var b strings.Builder
	if m.loading {
		_, _ = b.WriteString(m.spinner.View() + " Loading positions...")
		_, _ = b.WriteString("\n\n" + m.help.View(m.keys))
		return appStyle.Render(b.String())
	}

	v := m.browser.View()
	_, _ = b.WriteString(headerStyle.Render(fmt.Sprintf("FEN %d", v.Counter)))
	_, _ = b.WriteString(totalStyle.Render(fmt.Sprintf(" of %d", v.Total)))
	_, _ = b.WriteString("\n\n")
	if v.Empty() {
		_, _ = b.WriteString(mutedStyle.Render("no positions"))
	} else {
		_, _ = b.WriteString(renderBoard(v, m.palette))
	}
	_, _ = b.WriteString(evalStyle.Render("Engine Eval: " + v.EngineEval))
	_, _ = b.WriteString("\n\n" + m.help.View(m.keys))
	return appStyle.Render(b.String())
}

// Current returns the displayed position, mostly for tests and for printing it on exit.
func (m Model) Current() (posbrowser.View, bool) {
	return m.browser.View(), !m.loading
}

func Run(ctx context.Context, m Model) error {
	p := tea.NewProgram(m, tea.WithContext(ctx), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run program: %w", err)
	}
	return nil
}
