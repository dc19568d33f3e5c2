package picker

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/robottwo/hui/internal/rank"
)

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tickMsg:
		// Re-rank only when the query text actually changed since the last
		// tick, so navigation-only ticks stay free.
		query := m.textInput.Value()
		if query != m.lastQuery {
			m.view = rank.Rank(m.corpus, query)
			m.cursor = 0
			m.lastQuery = query
			m.logger.Debug("re-ranked view",
				zap.String("query", query),
				zap.Int("matches", len(m.view)),
			)
		}
		return m, m.scheduleTick()

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.textInput.Width = max(0, msg.Width-6)
		return m, nil

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.KeyMsg:
		if m.mode == Browsing {
			return m.handleBrowsingKey(msg)
		}
		return m.handleEditingKey(msg)
	}

	return m.updateTextInput(msg)
}

func (m appModel) handleBrowsingKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.StartFilter):
		return m.startEditing()

	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Confirm):
		// An empty view confirms nothing; the session still ends and the
		// caller sees no selection.
		if entry, ok := m.selected(); ok {
			m.result = entry
		}
		return m, tea.Quit

	case key.Matches(msg, m.keys.Down):
		m.moveDown()
		return m, nil

	case key.Matches(msg, m.keys.Up):
		m.moveUp()
		return m, nil
	}

	return m, nil
}

func (m appModel) handleEditingKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.ForceQuit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Cancel):
		// Cancel abandons the filter entirely: query cleared, view reset to
		// the unfiltered corpus.
		m.textInput.Reset()
		m.textInput.Blur()
		m.mode = Browsing
		m.view = m.corpus
		m.lastQuery = ""
		m.clampCursor()
		return m, nil

	case key.Matches(msg, m.keys.Confirm):
		// Stop editing, keeping the current query, view and cursor.
		m.textInput.Blur()
		m.mode = Browsing
		return m, nil

	case key.Matches(msg, m.keys.Down):
		m.textInput.Blur()
		m.mode = Browsing
		m.moveDown()
		return m, nil

	case key.Matches(msg, m.keys.Up):
		m.textInput.Blur()
		m.mode = Browsing
		m.moveUp()
		return m, nil
	}

	return m.updateTextInput(msg)
}

func (m appModel) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Button == tea.MouseButtonWheelUp:
		m.leaveEditing()
		m.moveUp()
		return m, nil

	case msg.Button == tea.MouseButtonWheelDown:
		m.leaveEditing()
		m.moveDown()
		return m, nil

	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		switch m.regionAt(msg.Y) {
		case regionList:
			if idx, ok := m.rowAt(msg.Y); ok {
				m.leaveEditing()
				m.cursor = idx
			}
			return m, nil
		case regionInput:
			if m.mode == Browsing {
				// Unlike "/", clicking the query line resumes editing the
				// existing query rather than starting over.
				m.mode = Editing
				return m, m.textInput.Focus()
			}
			return m, nil
		}
	}

	return m, nil
}

func (m appModel) startEditing() (tea.Model, tea.Cmd) {
	m.textInput.Reset()
	m.mode = Editing
	return m, m.textInput.Focus()
}

// leaveEditing drops back to browsing, keeping the query and view as they
// are. A navigation action while editing is both a "confirm filter" and the
// move itself.
func (m *appModel) leaveEditing() {
	if m.mode != Editing {
		return
	}
	m.textInput.Blur()
	m.mode = Browsing
}

func (m appModel) updateTextInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}
