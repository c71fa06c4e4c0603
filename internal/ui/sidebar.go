package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	sidebarStyle = lipgloss.NewStyle().
			Width(sidebarWidth).
			Padding(0, 1).
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("238"))

	sidebarTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("111"))
	cursorStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Bold(true)
	entryStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	entryMetaStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	favGlyphStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	dimStyle          = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// renderSidebar draws the filtered station list with the cursor kept in
// view.
func (m Model) renderSidebar(rows int) string {
	var b strings.Builder

	title := fmt.Sprintf("stations · %s (%d)", m.filterMode, len(m.filtered))
	b.WriteString(sidebarTitleStyle.Render(title))
	b.WriteByte('\n')

	switch {
	case m.loading:
		b.WriteString(dimStyle.Render("loading station list..."))
	case m.loadErr != nil:
		b.WriteString(dimStyle.Render("station list unavailable"))
	case len(m.filtered) == 0:
		b.WriteString(dimStyle.Render("no stations"))
	default:
		b.WriteString(m.renderEntries(rows - 2))
	}

	return sidebarStyle.Height(rows).Render(b.String())
}

func (m Model) renderEntries(visible int) string {
	if visible < 1 {
		visible = 1
	}

	// Scroll so the cursor stays on screen.
	offset := 0
	if m.listIndex >= visible {
		offset = m.listIndex - visible + 1
	}

	var b strings.Builder
	for i := offset; i < len(m.filtered) && i < offset+visible; i++ {
		rec := m.filtered[i]

		cursor := "  "
		if i == m.listIndex {
			cursor = cursorStyle.Render("> ")
		}

		fav := " "
		if m.store.IsFavorite(rec.Key()) {
			fav = favGlyphStyle.Render("♥")
		}

		name := rec.Name
		if name == "" {
			name = rec.StreamURL
		}
		line := cursor + fav + " " + entryStyle.Render(truncate(name, sidebarWidth-8))
		b.WriteString(line)
		b.WriteByte('\n')

		if i == m.listIndex && rec.Location() != "" {
			b.WriteString("     " + entryMetaStyle.Render(truncate(rec.Location(), sidebarWidth-9)))
			b.WriteByte('\n')
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func truncate(s string, max int) string {
	if max < 1 {
		return ""
	}
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-1]) + "…"
}
