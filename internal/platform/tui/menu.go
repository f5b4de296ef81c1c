package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vkotlar/parlor/internal/registry"
	"github.com/vkotlar/parlor/internal/storage"
	"github.com/vkotlar/parlor/internal/voice"
)

// MenuKeyMap defines the key bindings for the game picker.
type MenuKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Quit   key.Binding
}

// DefaultMenuKeyMap returns default picker bindings.
func DefaultMenuKeyMap() MenuKeyMap {
	return MenuKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "move down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "play"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c", "esc"),
			key.WithHelp("q", "quit"),
		),
	}
}

// MenuModel is the Bubble Tea model for the game picker.
type MenuModel struct {
	items    []registry.Info
	cursor   int
	keys     MenuKeyMap
	deps     registry.Deps
	width    int
	height   int
	quitting bool
	selected *registry.Info
}

// NewMenuModel creates a picker over all registered games. The progress
// store in deps supplies the level and score shown per entry.
func NewMenuModel(deps registry.Deps) MenuModel {
	return MenuModel{
		items: registry.List(),
		keys:  DefaultMenuKeyMap(),
		deps:  deps,
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}

		case key.Matches(msg, m.keys.Down):
			if m.cursor < len(m.items)-1 {
				m.cursor++
			}

		case key.Matches(msg, m.keys.Select):
			if len(m.items) > 0 {
				selected := m.items[m.cursor]
				m.selected = &selected
				return m, tea.Quit
			}
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}

	return m, nil
}

// View renders the picker with per-game progress.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render("P A R L O R"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(statusStyle.Render("Pick a game"), m.width))
	b.WriteString("\n\n")

	for i, item := range m.items {
		rec := m.deps.Progress.Get(item.ID)
		line := fmt.Sprintf("%s  (level %d · score %d)", item.Title, rec.CurrentLevel, rec.TotalScore)
		if i == m.cursor {
			line = selectedStyle.Render("> " + line)
		} else {
			line = "  " + line
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(helpStyle.Render("up/down: navigate · enter: play · q: quit"), m.width))
	b.WriteString("\n")

	return b.String()
}

// Selected returns the chosen game, or nil.
func (m MenuModel) Selected() *registry.Info { return m.selected }

// IsQuitting reports whether the user asked to exit.
func (m MenuModel) IsQuitting() bool { return m.quitting }

// centerText centers text within given width.
func centerText(text string, width int) string {
	if len(text) >= width {
		return text
	}
	padding := (width - len(text)) / 2
	return strings.Repeat(" ", padding) + text
}

// SessionModel manages the full flow: picker -> game -> picker.
// This is the top-level model for the menu command and SSH sessions.
type SessionModel struct {
	deps      registry.Deps
	results   *storage.Store
	listener  voice.Listener
	menu      MenuModel
	gameModel *GameModel
	inGame    bool
	quitting  bool
	err       error
}

// NewSessionModel creates the picker-first flow model.
func NewSessionModel(deps registry.Deps, results *storage.Store, listener voice.Listener) SessionModel {
	return SessionModel{
		deps:     deps,
		results:  results,
		listener: listener,
		menu:     NewMenuModel(deps),
	}
}

// Init initializes the flow.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the flow.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.inGame && m.gameModel != nil {
		return m.updateGame(msg)
	}
	return m.updateMenu(msg)
}

func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	if m.menu.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if selected := m.menu.Selected(); selected != nil {
		session, err := registry.Create(selected.ID, m.deps)
		if err != nil {
			m.err = err
			m.quitting = true
			return m, tea.Quit
		}

		gameModel := NewGameModel(session, m.deps.Feed, m.results, m.listener)
		m.gameModel = &gameModel
		m.inGame = true
		return m, m.gameModel.Init()
	}

	return m, cmd
}

func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.gameModel.Update(msg)
	if gameModel, ok := newModel.(GameModel); ok {
		m.gameModel = &gameModel
	}

	if m.gameModel.BackToMenu() {
		m.inGame = false
		m.gameModel = nil
		m.menu = NewMenuModel(m.deps)
		return m, m.menu.Init()
	}

	if m.gameModel.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	return m, cmd
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}
	if m.inGame && m.gameModel != nil {
		return m.gameModel.View()
	}
	return m.menu.View()
}

// Err returns the error that ended the session, if any.
func (m SessionModel) Err() error { return m.err }

// RunMenu runs the picker-first flow until the user quits.
func RunMenu(deps registry.Deps, results *storage.Store, listener voice.Listener) error {
	model := NewSessionModel(deps, results, listener)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return err
	}
	if m, ok := finalModel.(SessionModel); ok && m.Err() != nil {
		return m.Err()
	}
	return nil
}
