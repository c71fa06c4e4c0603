// Package ui provides the terminal user interface using Bubble Tea.
package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-globeradio/internal/config"
	"github.com/litescript/ls-globeradio/internal/globe"
	"github.com/litescript/ls-globeradio/internal/player"
	"github.com/litescript/ls-globeradio/internal/station"
	"github.com/litescript/ls-globeradio/internal/store"
)

// FilterMode selects which stations the sidebar lists.
type FilterMode int

const (
	FilterAll FilterMode = iota
	FilterFavorites
	FilterHistory
)

func (f FilterMode) String() string {
	switch f {
	case FilterFavorites:
		return "favorites"
	case FilterHistory:
		return "history"
	default:
		return "all"
	}
}

// Msg types for Bubble Tea
type (
	// FrameTickMsg drives one frame of the render loop. It is re-armed
	// only after the previous frame's update completes, so frames never
	// overlap or coalesce.
	FrameTickMsg time.Time

	// StationsMsg delivers the station list fetch result.
	StationsMsg struct {
		Records []station.Record
		Skipped int
		Err     error
	}

	// PlayerEventMsg forwards a player notification into the program loop.
	PlayerEventMsg player.Event
)

const (
	scaleMin  = 0.5
	scaleMax  = 3.0
	scaleStep = 1.15
)

// Model is the root Bubble Tea model.
type Model struct {
	// Dependencies, injected once at startup.
	cfg    config.Config
	engine *globe.Engine
	player *player.Player
	store  *store.Store

	directory *station.Directory

	// UI state
	width   int
	height  int
	ready   bool
	loading bool
	loadErr error

	filterMode FilterMode
	listIndex  int
	filtered   []station.Record

	scaleTarget float64

	session   player.Session
	favorite  bool
	statusMsg string
	lang      string
}

// New creates the root UI model. All collaborators are passed in
// explicitly; there is no ambient global lookup.
func New(cfg config.Config, engine *globe.Engine, pl *player.Player, st *store.Store) Model {
	return Model{
		cfg:         cfg,
		engine:      engine,
		player:      pl,
		store:       st,
		loading:     true,
		scaleTarget: 1.0,
		session:     pl.Session(),
		lang:        cfg.Language,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return frameTickCmd(m.cfg.TickRate)
}

func frameTickCmd(rate time.Duration) tea.Cmd {
	return tea.Tick(rate, func(t time.Time) tea.Msg {
		return FrameTickMsg(t)
	})
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true

	case FrameTickMsg:
		m.engine.Step()
		return m, frameTickCmd(m.cfg.TickRate)

	case StationsMsg:
		m.loading = false
		if msg.Err != nil {
			m.loadErr = msg.Err
			return m, nil
		}
		m.directory = station.NewDirectory(msg.Records)
		m.engine.SetStations(m.directory.Records())
		m.player.SetDirectory(m.directory)
		m = m.refreshFiltered()

	case PlayerEventMsg:
		m = m.applyPlayerEvent(player.Event(msg))

	case tea.MouseMsg:
		m = m.handleMouse(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) applyPlayerEvent(ev player.Event) Model {
	m.session = m.player.Session()
	switch ev.Kind {
	case player.EventNowPlaying:
		if ev.Station != nil {
			m.engine.SelectByKey(ev.Station.Key())
		}
	case player.EventStatus:
		m.favorite = ev.Favorite
		m.statusMsg = statusText(m.lang, ev.Status)
		// History views change as playback lands entries.
		if m.filterMode == FilterHistory {
			m = m.refreshFiltered()
		}
	}
	return m
}

func (m Model) handleMouse(msg tea.MouseMsg) Model {
	cols, rows := m.globeSize()
	if msg.X >= cols || msg.Y >= rows {
		return m
	}

	px, py, w, h := globePixel(msg.X, msg.Y, cols, rows)

	switch msg.Action {
	case tea.MouseActionMotion:
		m.engine.HoverAt(px, py, w, h)

	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonLeft:
			if marker, ok := m.engine.ClickAt(px, py, w, h); ok {
				m.player.Play(marker.Station)
			}
		case tea.MouseButtonWheelUp:
			m = m.zoom(scaleStep)
		case tea.MouseButtonWheelDown:
			m = m.zoom(1 / scaleStep)
		}
	}
	return m
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "up", "k":
		if m.listIndex > 0 {
			m.listIndex--
		}
	case "down", "j":
		if m.listIndex < len(m.filtered)-1 {
			m.listIndex++
		}

	case "enter":
		if rec, ok := m.selectedStation(); ok {
			m.player.Play(rec)
		}

	case " ":
		m.player.TogglePlay()
	case "p":
		m.player.Previous()
	case "r":
		m.player.Random()

	case "f":
		if rec, ok := m.favoriteTarget(); ok {
			if _, err := m.store.ToggleFavorite(rec.Key()); err == nil && m.filterMode == FilterFavorites {
				m = m.refreshFiltered()
			}
			m.favorite = m.store.IsFavorite(m.currentKey())
		}

	case "+", "=":
		m.player.SetVolume(m.player.Volume() + 0.05)
	case "-":
		m.player.SetVolume(m.player.Volume() - 0.05)

	case "z":
		m = m.zoom(scaleStep)
	case "x":
		m = m.zoom(1 / scaleStep)

	case "left":
		m.engine.Camera().Rotate(-15, 0)
	case "right":
		m.engine.Camera().Rotate(15, 0)
	case "shift+up":
		m.engine.Camera().Rotate(0, 10)
	case "shift+down":
		m.engine.Camera().Rotate(0, -10)

	case "tab":
		m.filterMode = (m.filterMode + 1) % 3
		m.listIndex = 0
		m = m.refreshFiltered()
	}

	return m, nil
}

func (m Model) zoom(factor float64) Model {
	m.scaleTarget = clampScale(m.scaleTarget * factor)
	m.engine.SetScaleTarget(m.scaleTarget)
	return m
}

func clampScale(s float64) float64 {
	if s < scaleMin {
		return scaleMin
	}
	if s > scaleMax {
		return scaleMax
	}
	return s
}

// refreshFiltered re-evaluates the sidebar list for the active filter.
func (m Model) refreshFiltered() Model {
	switch {
	case m.directory == nil:
		m.filtered = nil
	case m.filterMode == FilterFavorites:
		m.filtered = m.directory.Filter(func(r station.Record) bool {
			return m.store.IsFavorite(r.Key())
		})
	case m.filterMode == FilterHistory:
		m.filtered = m.store.History()
	default:
		m.filtered = m.directory.Records()
	}

	if m.listIndex >= len(m.filtered) {
		m.listIndex = 0
	}
	return m
}

func (m Model) selectedStation() (station.Record, bool) {
	if m.listIndex < 0 || m.listIndex >= len(m.filtered) {
		return station.Record{}, false
	}
	return m.filtered[m.listIndex], true
}

// favoriteTarget picks the station the favorite key acts on: the playing
// station when one is selected, the list cursor otherwise.
func (m Model) favoriteTarget() (station.Record, bool) {
	if m.session.Current != nil {
		return *m.session.Current, true
	}
	return m.selectedStation()
}

func (m Model) currentKey() string {
	if m.session.Current == nil {
		return ""
	}
	return m.session.Current.Key()
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "initializing..."
	}

	cols, rows := m.globeSize()
	globePane := m.renderGlobe(cols, rows)
	sidebar := m.renderSidebar(rows)

	main := lipgloss.JoinHorizontal(lipgloss.Top, globePane, sidebar)
	return lipgloss.JoinVertical(lipgloss.Left, main, m.renderStatusBar())
}

// globeSize returns the globe pane dimensions in cells.
func (m Model) globeSize() (cols, rows int) {
	cols = m.width - sidebarWidth
	if cols < 1 {
		cols = 1
	}
	rows = m.height - 1 // status bar
	if rows < 1 {
		rows = 1
	}
	return cols, rows
}
