package player

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/litescript/ls-globeradio/internal/station"
)

// DefaultLoadTimeout bounds how long a play attempt may stay in Loading.
const DefaultLoadTimeout = 5 * time.Second

// Library is the durable state the player reads and writes: history
// recording and the favorite indicator. *store.Store satisfies it.
type Library interface {
	PushHistory(station.Record) error
	HistoryAt(int) (station.Record, bool)
	IsFavorite(string) bool
}

// EventKind discriminates player notifications.
type EventKind int

const (
	// EventNowPlaying fires when the selected station changes (optimistic:
	// before playback is confirmed).
	EventNowPlaying EventKind = iota
	// EventStatus fires on every status transition.
	EventStatus
)

// Event is a player notification delivered via the notify func. Station is
// set for EventNowPlaying; Status and Favorite for EventStatus.
type Event struct {
	Kind     EventKind
	Station  *station.Record
	Status   Status
	Favorite bool
}

// Session is the singleton playback state. It is created at startup and
// mutated only through the player's transition operations.
type Session struct {
	Current *station.Record
	Status  Status
	Volume  float64
}

// Config configures a Player.
type Config struct {
	Backend     Backend
	Directory   *station.Directory
	Library     Library
	Notify      func(Event) // must not call back into the player
	LoadTimeout time.Duration
	Logger      zerolog.Logger
	Rand        *rand.Rand // defaults to a time-seeded source
}

// Player is the playback state machine. Async open results and the load
// timeout race against new selections; every continuation carries the
// generation it belongs to and is discarded if a later selection has
// superseded it. Entering TimedOut hard-cancels the pending attempt, so a
// late success never resurrects a timed-out station.
type Player struct {
	mu sync.Mutex

	backend   Backend
	directory *station.Directory
	library   Library
	notify    func(Event)
	log       zerolog.Logger
	rng       *rand.Rand

	loadTimeout time.Duration

	gen           uint64
	session       Session
	handle        Handle
	timer         *time.Timer
	cancelAttempt context.CancelFunc
}

// New creates a player in the Idle state at full volume.
func New(cfg Config) *Player {
	if cfg.LoadTimeout <= 0 {
		cfg.LoadTimeout = DefaultLoadTimeout
	}
	if cfg.Rand == nil {
		cfg.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if cfg.Notify == nil {
		cfg.Notify = func(Event) {}
	}
	return &Player{
		backend:     cfg.Backend,
		directory:   cfg.Directory,
		library:     cfg.Library,
		notify:      cfg.Notify,
		log:         cfg.Logger,
		rng:         cfg.Rand,
		loadTimeout: cfg.LoadTimeout,
		session:     Session{Status: StatusIdle, Volume: 1.0},
	}
}

// SetDirectory swaps the station directory after a reload.
func (p *Player) SetDirectory(d *station.Directory) {
	p.mu.Lock()
	p.directory = d
	p.mu.Unlock()
}

// Session returns a snapshot of the playback state.
func (p *Player) Session() Session {
	p.mu.Lock()
	defer p.mu.Unlock()
	snap := p.session
	if p.session.Current != nil {
		cur := *p.session.Current
		snap.Current = &cur
	}
	return snap
}

// Play selects a station: any current stream is released first, the
// now-playing identity updates immediately (optimistic), and a cancelable
// load timeout is armed before the open attempt is issued.
func (p *Player) Play(rec station.Record) {
	p.mu.Lock()
	p.gen++
	gen := p.gen

	p.releaseLocked()

	r := rec
	p.session.Current = &r
	p.session.Status = StatusLoading

	ctx, cancel := context.WithCancel(context.Background())
	p.cancelAttempt = cancel
	p.timer = time.AfterFunc(p.loadTimeout, func() { p.onTimeout(gen) })
	p.mu.Unlock()

	p.log.Debug().Str("station", rec.Name).Str("url", rec.StreamURL).Msg("play")
	p.emit(Event{Kind: EventNowPlaying, Station: &r})
	p.emitStatus(StatusLoading, rec.Key())

	go func() {
		h, err := p.backend.Open(ctx, rec.StreamURL)
		p.onOpenResult(gen, rec, h, err)
	}()
}

// onTimeout fires when an attempt is still Loading past the deadline.
func (p *Player) onTimeout(gen uint64) {
	p.mu.Lock()
	if gen != p.gen || p.session.Status != StatusLoading {
		p.mu.Unlock()
		return
	}
	p.session.Status = StatusTimedOut
	if p.cancelAttempt != nil {
		p.cancelAttempt()
		p.cancelAttempt = nil
	}
	key := p.currentKeyLocked()
	p.mu.Unlock()

	p.log.Warn().Msg("playback load timed out")
	p.emitStatus(StatusTimedOut, key)
}

// onOpenResult applies an open attempt's outcome, unless a newer selection
// or the timeout has already superseded it.
func (p *Player) onOpenResult(gen uint64, rec station.Record, h Handle, err error) {
	p.mu.Lock()
	if gen != p.gen || p.session.Status != StatusLoading {
		p.mu.Unlock()
		if h != nil {
			_ = h.Close()
		}
		return
	}

	p.stopTimerLocked()

	if err != nil {
		p.session.Status = StatusFailed
		p.cancelAttempt = nil
		p.mu.Unlock()

		p.log.Warn().Err(err).Str("station", rec.Name).Msg("playback open failed")
		p.emitStatus(StatusFailed, rec.Key())
		return
	}

	p.handle = h
	p.session.Status = StatusPlaying
	_ = h.SetVolume(p.session.Volume)
	p.mu.Unlock()

	if pushErr := p.library.PushHistory(rec); pushErr != nil {
		p.log.Error().Err(pushErr).Msg("record history")
	}

	p.log.Info().Str("station", rec.Name).Msg("playing")
	p.emitStatus(StatusPlaying, rec.Key())
}

// TogglePlay pauses a playing stream or resumes a paused one without
// re-fetching. Any other state is a no-op.
func (p *Player) TogglePlay() {
	p.mu.Lock()
	var next Status
	switch p.session.Status {
	case StatusPlaying:
		if p.handle != nil {
			_ = p.handle.Pause()
		}
		next = StatusPaused
	case StatusPaused:
		if p.handle != nil {
			_ = p.handle.Resume()
		}
		next = StatusPlaying
	default:
		p.mu.Unlock()
		return
	}
	p.session.Status = next
	key := p.currentKeyLocked()
	p.mu.Unlock()

	p.emitStatus(next, key)
}

// Previous replays the second-most-recent history entry (index 0 is the
// station playing right now). No-op with fewer than two entries.
func (p *Player) Previous() {
	rec, ok := p.library.HistoryAt(1)
	if !ok {
		return
	}
	p.Play(rec)
}

// Random plays a uniformly random station, excluding the current one.
// No-op when the directory (minus current) is empty.
func (p *Player) Random() {
	p.mu.Lock()
	d := p.directory
	exclude := p.currentKeyLocked()
	rng := p.rng
	p.mu.Unlock()

	if d == nil {
		return
	}
	rec, ok := d.Random(exclude, rng)
	if !ok {
		return
	}
	p.Play(rec)
}

// SetVolume clamps v to [0, 1] and forwards it to the live stream.
func (p *Player) SetVolume(v float64) {
	if v < 0 {
		v = 0
	} else if v > 1 {
		v = 1
	}
	p.mu.Lock()
	p.session.Volume = v
	h := p.handle
	p.mu.Unlock()

	if h != nil {
		_ = h.SetVolume(v)
	}
}

// Volume returns the session volume.
func (p *Player) Volume() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.session.Volume
}

// Stop releases any stream and returns to Idle, keeping the selection.
func (p *Player) Stop() {
	p.mu.Lock()
	p.gen++
	p.releaseLocked()
	p.session.Status = StatusIdle
	key := p.currentKeyLocked()
	p.mu.Unlock()

	p.emitStatus(StatusIdle, key)
}

// releaseLocked cancels the pending attempt and timer and closes the live
// handle. Callers hold p.mu. Every path that supersedes an attempt goes
// through here, so timers never leak.
func (p *Player) releaseLocked() {
	p.stopTimerLocked()
	if p.cancelAttempt != nil {
		p.cancelAttempt()
		p.cancelAttempt = nil
	}
	if p.handle != nil {
		_ = p.handle.Close()
		p.handle = nil
	}
}

func (p *Player) stopTimerLocked() {
	if p.timer != nil {
		p.timer.Stop()
		p.timer = nil
	}
}

func (p *Player) currentKeyLocked() string {
	if p.session.Current == nil {
		return ""
	}
	return p.session.Current.Key()
}

func (p *Player) emit(e Event) {
	p.notify(e)
}

func (p *Player) emitStatus(s Status, stationKey string) {
	fav := false
	if stationKey != "" && p.library != nil {
		fav = p.library.IsFavorite(stationKey)
	}
	p.notify(Event{Kind: EventStatus, Status: s, Favorite: fav})
}
