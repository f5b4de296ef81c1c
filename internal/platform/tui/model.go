package tui

import (
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vkotlar/parlor/internal/command"
	"github.com/vkotlar/parlor/internal/core"
	"github.com/vkotlar/parlor/internal/registry"
	"github.com/vkotlar/parlor/internal/storage"
	"github.com/vkotlar/parlor/internal/voice"
)

const maxNotices = 4

// VoiceLineMsg carries one recognized text line from the voice listener.
type VoiceLineMsg string

// VoiceErrMsg carries a voice-engine error. The game keeps running on
// typed input; the error is only surfaced as a notice.
type VoiceErrMsg struct{ Err error }

type voiceClosedMsg struct{}

// noticeBuffer collects feed notices for display. Sessions publish
// synchronously during Apply/Tick, which run inside Update, so the
// buffer is current by the time View renders. The mutex covers the
// voice goroutine path.
type noticeBuffer struct {
	mu      sync.Mutex
	notices []core.Notice
}

func (b *noticeBuffer) add(n core.Notice) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.notices = append(b.notices, n)
	if len(b.notices) > maxNotices {
		b.notices = b.notices[len(b.notices)-maxNotices:]
	}
}

func (b *noticeBuffer) list() []core.Notice {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]core.Notice, len(b.notices))
	copy(out, b.notices)
	return out
}

// GameModel is the Bubble Tea model for playing a single session.
// It drives the one-second tick, feeds typed and voice input through
// the command interpreter, and renders snapshots.
type GameModel struct {
	session  registry.Session
	interp   *command.Interpreter
	results  *storage.Store // May be nil; best-effort history
	listener voice.Listener // May be nil; typed input always works
	notices  *noticeBuffer
	input    textinput.Model

	width       int
	height      int
	standalone  bool // Quit on esc instead of returning to a menu
	quitting    bool
	backToMenu  bool
	resultSaved bool // One history row per terminal phase entry
}

// NewGameModel wires a session into the UI. The feed must be the same
// one handed to the session factory; results and listener may be nil.
func NewGameModel(session registry.Session, feed *core.Feed, results *storage.Store, listener voice.Listener) GameModel {
	buf := &noticeBuffer{}
	feed.Subscribe(buf.add)

	// Session rules first, shared restart command last.
	rules := append(session.Rules(), command.NewGameRule())
	interp := command.New(rules...)

	ti := textinput.New()
	ti.Placeholder = "say or type a command"
	ti.Prompt = "> "
	ti.CharLimit = 120
	ti.Focus()

	return GameModel{
		session:  session,
		interp:   interp,
		results:  results,
		listener: listener,
		notices:  buf,
		input:    ti,
	}
}

// Init starts the session and the tick loop.
func (m GameModel) Init() tea.Cmd {
	m.session.Start()

	cmds := []tea.Cmd{tickCmd(), textinput.Blink}
	if m.listener != nil {
		cmds = append(cmds, waitForVoice(m.listener))
	}
	return tea.Batch(cmds...)
}

// waitForVoice blocks on the listener until the next recognized line or
// engine error arrives.
func waitForVoice(l voice.Listener) tea.Cmd {
	return func() tea.Msg {
		for {
			select {
			case line, ok := <-l.Lines():
				if !ok {
					return voiceClosedMsg{}
				}
				return VoiceLineMsg(line)
			case err, ok := <-l.Errs():
				if !ok {
					return voiceClosedMsg{}
				}
				return VoiceErrMsg{Err: err}
			}
		}
	}
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case TickMsg:
		m.session.Tick()
		m.trackResult()
		return m, tickCmd()

	case VoiceLineMsg:
		m.submit(string(msg))
		return m, waitForVoice(m.listener)

	case VoiceErrMsg:
		m.notices.add(core.Notice{Kind: core.NoticeError, Message: fmt.Sprintf("voice input error: %v", msg.Err)})
		return m, waitForVoice(m.listener)

	case voiceClosedMsg:
		m.notices.add(core.Notice{Kind: core.NoticeError, Message: "voice input ended, keyboard only"})
		return m, nil
	}

	// Cursor blink and other component messages go to the input.
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.quitting = true
		return m, tea.Quit
	case "esc":
		if m.standalone {
			m.quitting = true
			return m, tea.Quit
		}
		m.backToMenu = true
		return m, nil
	case "enter":
		text := m.input.Value()
		m.input.SetValue("")
		m.submit(text)
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submit passes one line of recognized or typed text through the
// interpreter. Unrecognized text is ignored silently, matching how a
// recognizer's stray output should be treated.
func (m *GameModel) submit(text string) {
	action, ok := m.interp.Interpret(text)
	if !ok {
		return
	}
	m.session.Apply(action)
	m.trackResult()
}

// trackResult appends one history row per win or loss.
func (m *GameModel) trackResult() {
	phase := m.session.Phase()
	if !phase.Terminal() {
		m.resultSaved = false
		return
	}
	if m.resultSaved || m.results == nil {
		return
	}
	snap := m.session.Snapshot()
	outcome := "won"
	if phase == core.PhaseLost {
		outcome = "lost"
	}
	//nolint:errcheck // Best-effort history, game continues regardless
	m.results.RecordResult(m.session.ID(), snap.Level, snap.Score, outcome)
	m.resultSaved = true
}

// View renders the current snapshot.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}

	snap := m.session.Snapshot()
	var b strings.Builder

	title := titleStyle.Render(m.session.Title())
	status := statusStyle.Render(fmt.Sprintf(
		"level %d · score %d · attempts %d", snap.Level, snap.Score, snap.Attempts))
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, title, "  ", status))
	b.WriteString("\n")

	switch snap.Phase {
	case core.PhaseMemorize:
		b.WriteString(memorizeStyle.Render(fmt.Sprintf("Memorize! Starting in %d...", snap.Countdown)))
	case core.PhaseWon:
		b.WriteString(wonStyle.Render("You won!"))
	case core.PhaseLost:
		b.WriteString(lostStyle.Render("Game over. Say \"new game\" to try again."))
	}
	b.WriteString("\n")

	b.WriteString(boardStyle.Render(strings.Join(snap.Board, "\n")))
	b.WriteString("\n")

	for _, n := range m.notices.list() {
		style := successStyle
		if n.Kind == core.NoticeError {
			style = errorStyle
		}
		b.WriteString(style.Render(n.Message))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("commands: " + strings.Join(snap.Commands, " · ")))
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("esc: menu · ctrl+c: quit"))
	b.WriteString("\n")

	return b.String()
}

// IsQuitting reports whether the user asked to exit entirely.
func (m GameModel) IsQuitting() bool { return m.quitting }

// BackToMenu reports whether the user asked to return to the picker.
func (m GameModel) BackToMenu() bool { return m.backToMenu }

// Run starts a standalone Bubble Tea program for a single game.
func Run(session registry.Session, feed *core.Feed, results *storage.Store, listener voice.Listener) error {
	model := NewGameModel(session, feed, results, listener)
	model.standalone = true

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
