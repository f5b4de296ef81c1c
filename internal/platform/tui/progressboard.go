package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vkotlar/parlor/internal/progress"
	"github.com/vkotlar/parlor/internal/registry"
	"github.com/vkotlar/parlor/internal/storage"
)

const maxHistoryRows = 50

// BoardKeyMap defines the key bindings for the progress board.
type BoardKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	NextGame key.Binding
	PrevGame key.Binding
	Quit     key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k BoardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextGame, k.PrevGame, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k BoardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.NextGame, k.PrevGame, k.Quit},
	}
}

// DefaultBoardKeyMap returns default progress board bindings.
func DefaultBoardKeyMap() BoardKeyMap {
	return BoardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		NextGame: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next game"),
		),
		PrevGame: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "prev game"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// BoardModel is the Bubble Tea model for the progress board: current
// progress per game plus the recent win/loss history for the selected one.
type BoardModel struct {
	games      []registry.Info
	gameCursor int
	progress   *progress.Store
	results    *storage.Store // May be nil; history section hidden
	table      table.Model
	help       help.Model
	keys       BoardKeyMap
	width      int
	height     int
	quitting   bool
}

// NewBoardModel creates a progress board over all registered games.
func NewBoardModel(ps *progress.Store, results *storage.Store, width, height int) BoardModel {
	h := help.New()
	h.ShowAll = false

	m := BoardModel{
		games:    registry.List(),
		progress: ps,
		results:  results,
		keys:     DefaultBoardKeyMap(),
		help:     h,
		width:    width,
		height:   height,
	}
	m.table = m.buildTable()
	m.loadHistory()
	return m
}

func (m *BoardModel) buildTable() table.Model {
	columns := []table.Column{
		{Title: "When", Width: 18},
		{Title: "Level", Width: 7},
		{Title: "Score", Width: 8},
		{Title: "Outcome", Width: 9},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(4, m.height-10)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.Bold(true).Foreground(lipgloss.Color("212"))
	s.Selected = s.Selected.Foreground(lipgloss.Color("231")).Background(lipgloss.Color("57"))
	t.SetStyles(s)
	return t
}

// loadHistory fills the table with the selected game's recent results.
func (m *BoardModel) loadHistory() {
	if m.results == nil || len(m.games) == 0 {
		return
	}

	entries, err := m.results.RecentResults(m.games[m.gameCursor].ID, maxHistoryRows)
	if err != nil {
		m.table.SetRows(nil)
		return
	}

	rows := make([]table.Row, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, table.Row{
			e.CreatedAt.Format("2006-01-02 15:04"),
			fmt.Sprintf("%d", e.Level),
			fmt.Sprintf("%d", e.Score),
			e.Outcome,
		})
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// Init initializes the board.
func (m BoardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the board.
func (m BoardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.NextGame):
			if len(m.games) > 0 {
				m.gameCursor = (m.gameCursor + 1) % len(m.games)
				m.loadHistory()
			}
			return m, nil

		case key.Matches(msg, m.keys.PrevGame):
			if len(m.games) > 0 {
				m.gameCursor = (m.gameCursor - 1 + len(m.games)) % len(m.games)
				m.loadHistory()
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table.SetHeight(max(4, m.height-10))
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the board.
func (m BoardModel) View() string {
	if m.quitting {
		return ""
	}
	if len(m.games) == 0 {
		return "no games registered\n"
	}

	game := m.games[m.gameCursor]
	rec := m.progress.Get(game.ID)

	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("%s  (%d/%d)", game.Title, m.gameCursor+1, len(m.games))))
	b.WriteString("\n")
	b.WriteString(statusStyle.Render(fmt.Sprintf(
		"current level %d · highest level %d · total score %d",
		rec.CurrentLevel, rec.HighestLevel, rec.TotalScore)))
	b.WriteString("\n\n")

	if m.results != nil {
		b.WriteString(m.table.View())
		b.WriteString("\n")
	} else {
		b.WriteString(helpStyle.Render("history unavailable (no database)"))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	b.WriteString("\n")
	return b.String()
}

// RunBoard runs the progress board until the user quits.
func RunBoard(ps *progress.Store, results *storage.Store, width, height int) error {
	model := NewBoardModel(ps, results, width, height)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
