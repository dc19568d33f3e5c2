package picker

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// Fixed vertical layout, top to bottom: the list takes whatever is left,
// the query line is a bordered single row, the help line is the last row.
const (
	inputHeight = 3
	helpHeight  = 1
)

// region identifies which part of the screen a pointer event landed in.
type region int

const (
	regionNone region = iota
	regionList
	regionInput
)

// listRows is the number of entry rows visible inside the list border.
func (m appModel) listRows() int {
	return max(0, m.height-inputHeight-helpHeight-2)
}

// scrollTop is the view index of the first visible row. It is derived from
// the cursor so the selection is always on screen.
func (m appModel) scrollTop() int {
	rows := m.listRows()
	if rows <= 0 || m.cursor < rows {
		return 0
	}
	return m.cursor - rows + 1
}

// regionAt resolves a screen row to a region identity. Border rows belong
// to no region.
func (m appModel) regionAt(y int) region {
	rows := m.listRows()
	switch {
	case y >= 1 && y < 1+rows:
		return regionList
	case y >= rows+2 && y < rows+2+inputHeight:
		return regionInput
	default:
		return regionNone
	}
}

// rowAt resolves a screen row inside the list region to an index into the
// current view.
func (m appModel) rowAt(y int) (int, bool) {
	if m.regionAt(y) != regionList {
		return 0, false
	}
	idx := y - 1 + m.scrollTop()
	if idx >= len(m.view) {
		return 0, false
	}
	return idx, true
}

func (m appModel) View() string {
	// Nothing sensible to draw before the first WindowSizeMsg.
	if m.width <= 0 || m.height <= 0 {
		return ""
	}

	list := m.listStyle.
		Width(max(1, m.width-2)).
		Height(m.listRows()).
		MaxHeight(m.listRows() + 2).
		Render(m.listView())

	inputStyle := m.inputStyle
	if m.mode == Editing {
		inputStyle = m.inputEditingStyle
	}
	input := inputStyle.
		Width(max(1, m.width-2)).
		Render(m.textInput.View())

	return lipgloss.JoinVertical(lipgloss.Left, list, input, m.helpView())
}

func (m appModel) listView() string {
	rows := m.listRows()
	if rows <= 0 {
		return ""
	}

	if len(m.view) == 0 {
		return m.helpStyle.Render("  no matching history entries")
	}

	top := m.scrollTop()
	end := min(top+rows, len(m.view))

	lines := make([]string, 0, end-top)
	for i := top; i < end; i++ {
		lines = append(lines, m.renderRow(i))
	}
	return strings.Join(lines, "\n")
}

// renderRow renders one entry row, truncated to the list width. Multi-line
// commands collapse onto one row for display only; the confirmed entry
// keeps its real newlines.
func (m appModel) renderRow(i int) string {
	entry := strings.ReplaceAll(m.view[i], "\n", "↵")

	marker := "  "
	if i == m.cursor && m.mode == Browsing {
		marker = "> "
	}

	width := max(1, m.width-4)
	line := marker + runewidth.Truncate(entry, width-2, "…")

	if i == m.cursor && m.mode == Browsing {
		// Pad so the highlight spans the full row.
		if pad := width - uniseg.StringWidth(line); pad > 0 {
			line += strings.Repeat(" ", pad)
		}
		return m.selectedStyle.Render(line)
	}
	return line
}

func (m appModel) helpView() string {
	count := fmt.Sprintf("%s entries", humanize.Comma(int64(len(m.view))))

	var help string
	if m.mode == Browsing {
		help = m.helpKeyStyle.Render("/") + m.helpStyle.Render(" filter · ") +
			m.helpKeyStyle.Render("enter") + m.helpStyle.Render(" copy and exit · ") +
			m.helpKeyStyle.Render("q") + m.helpStyle.Render(" exit · ")
	} else {
		help = m.helpKeyStyle.Render("enter") + m.helpStyle.Render(" keep filter · ") +
			m.helpKeyStyle.Render("esc") + m.helpStyle.Render(" clear filter · ")
	}

	return " " + help + m.helpStyle.Render(count)
}
