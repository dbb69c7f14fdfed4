// Package tui provides an interactive terminal browser for ranked
// recommendation results. It lets the user flip between scoring
// strategies and watch the cached result set re-rank in place, without
// re-running the query.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/runger/bistro/internal/engine"
	"github.com/runger/bistro/internal/session"
)

type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	Strategy key.Binding
	Quit     key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Strategy, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down}, {k.Strategy, k.Quit}}
}

var keys = keyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "move up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "move down"),
	),
	Strategy: key.NewBinding(
		key.WithKeys("s", "tab"),
		key.WithHelp("s", "switch strategy"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "esc", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

var (
	titleStyle    = lipgloss.NewStyle().Bold(true)
	headerStyle   = lipgloss.NewStyle().Faint(true).Underline(true)
	selectedStyle = lipgloss.NewStyle().Reverse(true)
	strategyStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
)

// Model is the Bubble Tea model for the result browser.
type Model struct {
	sess       *session.Session
	strategies []string // cycle order for the "s" key
	stratIdx   int
	results    []engine.Scored

	selection int
	offset    int // first visible row
	width     int
	height    int
	err       error
	help      help.Model
}

// NewModel creates a browser over an active session. strategies is the
// cycle order for strategy switching and must contain the session's
// current strategy.
func NewModel(sess *session.Session, strategies []string) Model {
	idx := 0
	for i, name := range strategies {
		if name == sess.Strategy() {
			idx = i
			break
		}
	}
	return Model{
		sess:       sess,
		strategies: strategies,
		stratIdx:   idx,
		results:    sess.Results(),
		width:      80,
		height:     24,
		help:       help.New(),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.clampScroll()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, keys.Up):
		if m.selection > 0 {
			m.selection--
		}
		m.clampScroll()
		return m, nil

	case key.Matches(msg, keys.Down):
		if m.selection < len(m.results)-1 {
			m.selection++
		}
		m.clampScroll()
		return m, nil

	case key.Matches(msg, keys.Strategy):
		return m.cycleStrategy(), nil
	}
	return m, nil
}

// cycleStrategy reranks the cached filtered set under the next
// strategy. The selection resets because row identity changes with the
// ordering.
func (m Model) cycleStrategy() Model {
	if len(m.strategies) == 0 {
		return m
	}
	m.stratIdx = (m.stratIdx + 1) % len(m.strategies)

	results, err := m.sess.Rerank(context.Background(), m.strategies[m.stratIdx])
	if err != nil {
		m.err = err
		return m
	}
	m.err = nil
	m.results = results
	m.selection = 0
	m.offset = 0
	return m
}

func (m *Model) clampScroll() {
	visible := m.visibleRows()
	if m.selection < m.offset {
		m.offset = m.selection
	}
	if m.selection >= m.offset+visible {
		m.offset = m.selection - visible + 1
	}
	if m.offset < 0 {
		m.offset = 0
	}
}

// visibleRows returns how many result rows fit below the chrome
// (title, strategy line, header, help line).
func (m Model) visibleRows() int {
	rows := m.height - 5
	if rows < 1 {
		rows = 1
	}
	return rows
}

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("bistro — recommendations"))
	b.WriteString("\n")
	b.WriteString("strategy: ")
	b.WriteString(strategyStyle.Render(m.sess.Strategy()))
	b.WriteString(fmt.Sprintf("  (%d matches)", len(m.results)))
	if m.err != nil {
		b.WriteString("  ")
		b.WriteString(errorStyle.Render(m.err.Error()))
	}
	b.WriteString("\n")

	if len(m.results) == 0 {
		b.WriteString("\nNo restaurants match your preferences. Try broader filters.\n")
		b.WriteString(m.help.View(keys))
		return b.String()
	}

	nameW, cityW := m.columnWidths()
	b.WriteString(headerStyle.Render(fmt.Sprintf("   %-*s  %-*s  %5s  %6s  %6s",
		nameW, "name", cityW, "city", "score", "rating", "votes")))
	b.WriteString("\n")

	end := m.offset + m.visibleRows()
	if end > len(m.results) {
		end = len(m.results)
	}
	for i := m.offset; i < end; i++ {
		row := m.renderRow(i, nameW, cityW)
		if i == m.selection {
			row = selectedStyle.Render(row)
		}
		b.WriteString(row)
		b.WriteString("\n")
	}

	b.WriteString(m.help.View(keys))
	return b.String()
}

func (m Model) renderRow(i, nameW, cityW int) string {
	sc := m.results[i]
	r := sc.Restaurant

	rating := "-"
	if r.Rating != nil {
		rating = fmt.Sprintf("%.1f", *r.Rating)
	}
	votes := "-"
	if r.Votes != nil {
		votes = fmt.Sprintf("%d", *r.Votes)
	}

	return fmt.Sprintf("%2d %-*s  %-*s  %.3f  %6s  %6s",
		i+1,
		nameW, runewidth.Truncate(r.Name, nameW, "…"),
		cityW, runewidth.Truncate(r.City, cityW, "…"),
		sc.Score, rating, votes)
}

// columnWidths splits the width left over after numeric columns between
// name and city.
func (m Model) columnWidths() (nameW, cityW int) {
	// "nn " prefix + score/rating/votes columns + separators ≈ 28 cells.
	avail := m.width - 28
	if avail < 20 {
		avail = 20
	}
	nameW = avail * 2 / 3
	cityW = avail - nameW
	return nameW, cityW
}
