package cli

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/poimap/pkg/core/poi"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// MapListModel - Interactive map selection
// =============================================================================

// MapListModel is the bubbletea model behind `poimap map pick`.
type MapListModel struct {
	Maps      []*poi.Map
	CurrentID string
	Cursor    int
	Selected  *poi.Map
	Height    int
	Offset    int
}

// NewMapListModel creates a map list with the cursor on the current map.
func NewMapListModel(maps []*poi.Map, currentID string) MapListModel {
	m := MapListModel{Maps: maps, CurrentID: currentID, Height: 15}
	for i, mp := range maps {
		if mp.ID == currentID {
			m.Cursor = i
		}
	}
	m.clampOffset()
	return m
}

func (m MapListModel) Init() tea.Cmd {
	return nil
}

func (m MapListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
			}
		case "down", "j":
			if m.Cursor < len(m.Maps)-1 {
				m.Cursor++
			}
		case "enter":
			if len(m.Maps) > 0 {
				m.Selected = m.Maps[m.Cursor]
			}
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-6, 5)
	}
	m.clampOffset()
	return m, nil
}

// clampOffset scrolls the window so the cursor stays visible.
func (m *MapListModel) clampOffset() {
	if m.Cursor < m.Offset {
		m.Offset = m.Cursor
	}
	if m.Cursor >= m.Offset+m.Height {
		m.Offset = m.Cursor - m.Height + 1
	}
}

func (m MapListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Map"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.Maps))
	for i := m.Offset; i < end; i++ {
		mp := m.Maps[i]

		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		mark := " "
		if mp.ID == m.CurrentID {
			mark = iconCurrent
		}

		line := fmt.Sprintf("%s%s %-28s %3d POIs  %s", cursor, mark, mp.Name, len(mp.POIs),
			listDimStyle.Render(formatRelativeTime(mp.UpdatedAt)))
		if i == m.Cursor {
			b.WriteString(listSelectedStyle.Render(line))
		} else {
			b.WriteString(listNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Maps))))

	return b.String()
}

// =============================================================================
// Helpers
// =============================================================================

func formatRelativeTime(t time.Time) string {
	if t.IsZero() {
		return "—"
	}
	diff := time.Since(t)

	switch {
	case diff < time.Minute:
		return "just now"
	case diff < time.Hour:
		return fmt.Sprintf("%dm ago", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(diff.Hours()))
	case diff < 7*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(diff.Hours()/24))
	default:
		return t.Format("Jan 2, 2006")
	}
}
