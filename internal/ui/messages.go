package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-globeradio/internal/player"
)

// statusMessages maps language code → playback status → status line text.
// The language code is supplied externally; unknown codes fall back to
// English.
var statusMessages = map[string]map[player.Status]string{
	"en": {
		player.StatusIdle:     "pick a station",
		player.StatusLoading:  "connecting...",
		player.StatusPlaying:  "on air",
		player.StatusPaused:   "paused",
		player.StatusFailed:   "stream failed, try another station",
		player.StatusTimedOut: "no answer, try another station",
	},
	"de": {
		player.StatusIdle:     "Sender wählen",
		player.StatusLoading:  "Verbinde...",
		player.StatusPlaying:  "auf Sendung",
		player.StatusPaused:   "pausiert",
		player.StatusFailed:   "Stream fehlgeschlagen, anderen Sender wählen",
		player.StatusTimedOut: "keine Antwort, anderen Sender wählen",
	},
}

// statusText selects the status line for a language, falling back to
// English for unknown languages, and to the raw status name as a last
// resort.
func statusText(lang string, s player.Status) string {
	if table, ok := statusMessages[lang]; ok {
		if msg, ok := table[s]; ok {
			return msg
		}
	}
	if msg, ok := statusMessages["en"][s]; ok {
		return msg
	}
	return s.String()
}

var (
	statusBarStyle   = lipgloss.NewStyle().Background(lipgloss.Color("236")).Foreground(lipgloss.Color("252"))
	nowPlayingStyle  = lipgloss.NewStyle().Background(lipgloss.Color("236")).Foreground(lipgloss.Color("114")).Bold(true)
	statusFavStyle   = lipgloss.NewStyle().Background(lipgloss.Color("236")).Foreground(lipgloss.Color("205"))
	statusLoadStyle  = lipgloss.NewStyle().Background(lipgloss.Color("236")).Foreground(lipgloss.Color("229"))
	statusErrorStyle = lipgloss.NewStyle().Background(lipgloss.Color("236")).Foreground(lipgloss.Color("203"))
)

// renderStatusBar draws the bottom line: now-playing identity, favorite
// indicator, status text and volume.
func (m Model) renderStatusBar() string {
	var parts []string

	if m.session.Current != nil {
		name := m.session.Current.Name
		if loc := m.session.Current.Location(); loc != "" {
			name += " (" + loc + ")"
		}
		parts = append(parts, nowPlayingStyle.Render(" "+truncate(name, m.width/2)))
		if m.favorite {
			parts = append(parts, statusFavStyle.Render("♥"))
		}
	}

	msg := m.statusMsg
	if msg == "" {
		msg = statusText(m.lang, m.session.Status)
	}
	switch m.session.Status {
	case player.StatusFailed, player.StatusTimedOut:
		parts = append(parts, statusErrorStyle.Render(msg))
	case player.StatusLoading:
		parts = append(parts, statusLoadStyle.Render(msg))
	default:
		parts = append(parts, statusBarStyle.Render(msg))
	}

	parts = append(parts, statusBarStyle.Render(fmt.Sprintf("vol %3.0f%%", m.player.Volume()*100)))

	line := strings.Join(parts, statusBarStyle.Render("  "))
	return statusBarStyle.Width(max(m.width, 1)).Render(line)
}
