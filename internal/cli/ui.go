package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/poimap/pkg/core/bearing"
	"github.com/matzehuels/poimap/pkg/core/poi"
)

// stdout receives all command output. Tests swap it for a buffer.
var stdout io.Writer = os.Stdout

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary actions
	colorGreen  = lipgloss.Color("35")  // Green - success
	colorYellow = lipgloss.Color("220") // Amber - warnings
	colorRed    = lipgloss.Color("167") // Soft red - errors
	colorBlue   = lipgloss.Color("75")  // Light blue - commands
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorGray   = lipgloss.Color("245") // Gray - secondary text
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

// =============================================================================
// Styles
// =============================================================================

var (
	// StyleTitle for main headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleDim for secondary/muted text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleSuccess for success messages.
	StyleSuccess = lipgloss.NewStyle().Foreground(colorGreen)

	// StyleWarning for warning messages.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)
)

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)

	styleCached   = lipgloss.NewStyle().Foreground(colorGreen)
	styleComputed = lipgloss.NewStyle().Foreground(colorGray)

	styleCommand = lipgloss.NewStyle().Foreground(colorBlue)
	styleHeader  = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	styleCycle   = lipgloss.NewStyle().Foreground(colorRed)
)

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "→"
	iconCurrent = "●"
	iconCached  = "cached"
	iconFresh   = "fresh"
)

// =============================================================================
// Status Output
// =============================================================================

func printSuccess(format string, args ...any) {
	fmt.Fprintln(stdout, styleIconSuccess.Render(iconSuccess)+" "+fmt.Sprintf(format, args...))
}

func printError(format string, args ...any) {
	fmt.Fprintln(stdout, styleIconError.Render(iconError)+" "+fmt.Sprintf(format, args...))
}

func printWarning(format string, args ...any) {
	fmt.Fprintln(stdout, styleIconWarning.Render(iconWarning)+" "+StyleWarning.Render(fmt.Sprintf(format, args...)))
}

func printInfo(format string, args ...any) {
	fmt.Fprintln(stdout, styleIconInfo.Render(iconInfo)+" "+fmt.Sprintf(format, args...))
}

// printDetail prints an indented detail line.
func printDetail(format string, args ...any) {
	fmt.Fprintln(stdout, "  "+StyleDim.Render(fmt.Sprintf(format, args...)))
}

// printFile prints a file output line.
func printFile(path string) {
	fmt.Fprintln(stdout, "  "+StyleDim.Render(iconArrow)+" "+StyleValue.Render(path))
}

// printKeyValue prints a labeled value.
func printKeyValue(key, value string) {
	keyStyle := lipgloss.NewStyle().Foreground(colorGray).Width(12)
	fmt.Fprintln(stdout, keyStyle.Render(key)+" "+StyleValue.Render(value))
}

// printNextStep prints a suggested next command.
func printNextStep(description, cmd string) {
	fmt.Fprintln(stdout, StyleDim.Render(description+":")+" "+styleCommand.Render(cmd))
}

// =============================================================================
// Recalculation Output
// =============================================================================

// printStats prints recalculation statistics on a single line.
func printStats(pois, edges, updated int, cached bool) {
	parts := []string{
		fmt.Sprintf("%d POIs", pois),
		fmt.Sprintf("%d references", edges),
		fmt.Sprintf("%d moved", updated),
	}

	status := styleComputed.Render(iconFresh)
	if cached {
		status = styleCached.Render(iconCached)
	}

	line := "  "
	for i, part := range parts {
		if i > 0 {
			line += StyleDim.Render(" · ")
		}
		line += StyleDim.Render(part)
	}
	fmt.Fprintln(stdout, line+StyleDim.Render(" · ")+status)
}

// printCycles prints each cycle as an arrow chain closed on its first id.
func printCycles(cycles [][]string, names map[string]string) {
	for _, c := range cycles {
		labels := make([]string, 0, len(c)+1)
		for _, id := range c {
			labels = append(labels, displayName(id, names))
		}
		labels = append(labels, displayName(c[0], names))
		fmt.Fprintln(stdout, "  "+styleCycle.Render(strings.Join(labels, " "+iconArrow+" ")))
	}
}

func displayName(id string, names map[string]string) string {
	if n, ok := names[id]; ok && n != "" {
		return n
	}
	return id
}

// =============================================================================
// Tables
// =============================================================================

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return styleHeader
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})
}

// printMapTable lists maps, marking the current one.
func printMapTable(maps []*poi.Map, currentID string) {
	t := newTable("", "Name", "ID", "POIs", "Updated")
	for _, m := range maps {
		mark := ""
		if m.ID == currentID {
			mark = StyleSuccess.Render(iconCurrent)
		}
		t.Row(mark, m.Name, m.ID, fmt.Sprint(len(m.POIs)), formatRelativeTime(m.UpdatedAt))
	}
	fmt.Fprintln(stdout, t.Render())
}

// printPOITable lists POIs with their positions and definition mode.
func printPOITable(pois []poi.POI) {
	t := newTable("", "Name", "ID", "Type", "X", "Y", "Depth", "Mode")
	for _, p := range pois {
		info := p.Category.Info()
		mode := string(p.DefinitionMode)
		if p.IsBearingDefined() {
			mode = fmt.Sprintf("%s (%d)", mode, len(p.BearingRecords))
		}
		t.Row(info.Emoji, p.Name, p.ID, info.Label,
			fmt.Sprintf("%.1f", p.X), fmt.Sprintf("%.1f", p.Y), fmt.Sprintf("%.0fm", p.Depth), mode)
	}
	fmt.Fprintln(stdout, t.Render())
}

// printRecordTable lists the bearing records of p.
func printRecordTable(p poi.POI, names map[string]string) {
	t := newTable("ID", "Reference", "Bearing", "Distance", "Direction")
	for _, r := range p.BearingRecords {
		t.Row(r.ID, displayName(r.ReferencePOIID, names),
			fmt.Sprintf("%.0f° %s", r.Bearing, bearing.Compass(r.Bearing)),
			fmt.Sprintf("%.0fm", r.Distance), string(r.Direction))
	}
	fmt.Fprintln(stdout, t.Render())
}

func poiNames(pois []poi.POI) map[string]string {
	names := make(map[string]string, len(pois))
	for _, p := range pois {
		names[p.ID] = p.Name
	}
	return names
}
