// Package player implements the playback state machine for the globe radio.
package player

// Status is the playback lifecycle state.
//
// Transitions: Idle → Loading → {Playing | Failed | TimedOut};
// Playing ↔ Paused; any state → Loading on a new selection.
type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusPlaying
	StatusPaused
	StatusFailed
	StatusTimedOut
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusLoading:
		return "loading"
	case StatusPlaying:
		return "playing"
	case StatusPaused:
		return "paused"
	case StatusFailed:
		return "failed"
	case StatusTimedOut:
		return "timed out"
	default:
		return "unknown"
	}
}
