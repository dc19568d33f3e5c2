// Package picker is the interactive session: it owns the corpus, the query,
// the filtered view and the selection, and runs the bubbletea control loop
// until the user confirms or quits.
package picker

import (
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/robottwo/hui/internal/history"
)

// Mode gates how input events are interpreted.
type Mode int

const (
	// Browsing navigates the list; confirm and quit are only legal here.
	Browsing Mode = iota
	// Editing routes keystrokes into the query line.
	Editing
)

// DefaultTickInterval is used when Options leaves TickInterval unset.
const DefaultTickInterval = 250 * time.Millisecond

// Options tunes the picker session.
type Options struct {
	// TickInterval is how often the loop wakes up to re-rank a changed query.
	TickInterval time.Duration
}

// tickMsg drives the debounced re-rank.
type tickMsg time.Time

type keyMap struct {
	StartFilter key.Binding
	Quit        key.Binding
	ForceQuit   key.Binding
	Confirm     key.Binding
	Cancel      key.Binding
	Up          key.Binding
	Down        key.Binding
}

var defaultKeyMap = keyMap{
	StartFilter: key.NewBinding(key.WithKeys("/")),
	Quit:        key.NewBinding(key.WithKeys("q", "ctrl+c")),
	ForceQuit:   key.NewBinding(key.WithKeys("ctrl+c")),
	Confirm:     key.NewBinding(key.WithKeys("enter")),
	Cancel:      key.NewBinding(key.WithKeys("esc")),
	Up:          key.NewBinding(key.WithKeys("up")),
	Down:        key.NewBinding(key.WithKeys("down")),
}

type appModel struct {
	corpus history.Corpus
	view   []string
	cursor int

	textInput textinput.Model
	mode      Mode

	// lastQuery is the query text observed at the previous tick; the view
	// is only recomputed when the current text differs from it.
	lastQuery string

	result string

	width  int
	height int

	keys         keyMap
	tickInterval time.Duration
	logger       *zap.Logger

	listStyle         lipgloss.Style
	inputStyle        lipgloss.Style
	inputEditingStyle lipgloss.Style
	selectedStyle     lipgloss.Style
	helpStyle         lipgloss.Style
	helpKeyStyle      lipgloss.Style
}

func initialModel(corpus history.Corpus, logger *zap.Logger, options Options) appModel {
	textInput := textinput.New()
	textInput.Prompt = ""
	textInput.Placeholder = "type to filter"
	textInput.Cursor.SetMode(cursor.CursorBlink)

	interval := options.TickInterval
	if interval <= 0 {
		interval = DefaultTickInterval
	}

	return appModel{
		corpus: corpus,
		view:   corpus,
		cursor: 0,

		textInput: textInput,
		mode:      Browsing,
		lastQuery: "",

		keys:         defaultKeyMap,
		tickInterval: interval,
		logger:       logger,

		listStyle: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")),
		inputStyle: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")),
		inputEditingStyle: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("9")),
		selectedStyle: lipgloss.NewStyle().
			Background(lipgloss.Color("9")).
			Bold(true),
		helpStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("243")),
		helpKeyStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("243")).
			Bold(true),
	}
}

func (m appModel) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.scheduleTick())
}

func (m appModel) scheduleTick() tea.Cmd {
	return tea.Tick(m.tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// selected returns the entry under the cursor. On an empty view there is no
// selection.
func (m appModel) selected() (string, bool) {
	if len(m.view) == 0 {
		return "", false
	}
	return m.view[m.cursor], true
}

// moveDown advances the selection with wraparound; an empty view pins the
// cursor at 0.
func (m *appModel) moveDown() {
	if len(m.view) == 0 {
		m.cursor = 0
		return
	}
	m.cursor = (m.cursor + 1) % len(m.view)
}

// moveUp retreats the selection with wraparound.
func (m *appModel) moveUp() {
	if len(m.view) == 0 {
		m.cursor = 0
		return
	}
	m.cursor--
	if m.cursor < 0 {
		m.cursor = len(m.view) - 1
	}
}

func (m *appModel) clampCursor() {
	if len(m.view) == 0 {
		m.cursor = 0
		return
	}
	if m.cursor >= len(m.view) {
		m.cursor = len(m.view) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// Pick runs the interactive session over the corpus and returns the entry
// the user confirmed, or "" if the session ended without a selection.
func Pick(corpus history.Corpus, logger *zap.Logger, options Options) (string, error) {
	p := tea.NewProgram(
		initialModel(corpus, logger, options),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	m, err := p.Run()
	if err != nil {
		return "", err
	}

	appModel, ok := m.(appModel)
	if !ok {
		logger.Error("picker resulted in an unexpected app model")
		panic("picker resulted in an unexpected app model")
	}

	if appModel.result != "" {
		logger.Info("selection confirmed", zap.String("entry", appModel.result))
	} else {
		logger.Info("session ended without a selection")
	}

	return appModel.result, nil
}
