package report

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/okian/nightwatch/internal/domain/model"
	"github.com/okian/nightwatch/internal/domain/sleep"
)

var (
	colorGray   = lipgloss.Color("#6272A4")
	colorCyan   = lipgloss.Color("#8BE9FD")
	colorGreen  = lipgloss.Color("#50FA7B")
	colorYellow = lipgloss.Color("#F1FA8C")
	colorRed    = lipgloss.Color("#FF5555")

	panelStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorGray).Padding(0, 1)
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	dimStyle   = lipgloss.NewStyle().Foreground(colorGray)
)

// shades maps a counter's share of the row maximum to a glyph.
var shades = []rune{'·', '░', '▒', '▓', '█'}

// Heatmap renders the minute tables of guards as one row per guard, scaled
// to each row's own maximum. Guards are drawn in the order given.
func Heatmap(w io.Writer, tables *sleep.Tables, guards []model.GuardID) error {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render("Minutes asleep, 00:00-00:59"))
	sb.WriteString("\n")
	sb.WriteString(dimStyle.Render(axis()))

	for _, id := range guards {
		t, ok := tables.Get(id)
		if !ok {
			continue
		}
		sb.WriteString("\n")
		sb.WriteString(row(id, t))
	}

	_, err := fmt.Fprintln(w, panelStyle.Render(sb.String()))
	return err
}

func axis() string {
	var sb strings.Builder
	sb.WriteString(strings.Repeat(" ", labelWidth))
	for m := 0; m < model.MinutesPerHour; m += 10 {
		fmt.Fprintf(&sb, "%-10d", m)
	}
	return sb.String()
}

const labelWidth = 8

func row(id model.GuardID, t *sleep.Table) string {
	peak := slices.Max(t[:])

	var sb strings.Builder
	sb.WriteString(dimStyle.Render(fmt.Sprintf("#%-*d", labelWidth-1, id)))
	for _, c := range t {
		sb.WriteString(cellStyle(c, peak).Render(string(shade(c, peak))))
	}
	sb.WriteString(dimStyle.Render(fmt.Sprintf(" %d", t.Total())))
	return sb.String()
}

func shade(c, peak int) rune {
	if c == 0 || peak == 0 {
		return shades[0]
	}
	i := 1 + (c*(len(shades)-2))/peak
	return shades[min(i, len(shades)-1)]
}

func cellStyle(c, peak int) lipgloss.Style {
	switch {
	case peak == 0 || c == 0:
		return dimStyle
	case c*3 >= peak*2:
		return lipgloss.NewStyle().Foreground(colorRed)
	case c*3 >= peak:
		return lipgloss.NewStyle().Foreground(colorYellow)
	default:
		return lipgloss.NewStyle().Foreground(colorGreen)
	}
}
