package globe

import (
	"github.com/litescript/ls-globeradio/internal/station"
)

// Engine drives one cooperative frame at a time: advance the scale
// animation, reproject markers when the scale moved, ease the camera.
// Nothing inside a step blocks; async results (station load, playback)
// arrive as messages observed by later steps. The host re-arms the tick
// only after the previous step completes, so steps never overlap.
type Engine struct {
	markers []*Marker
	anim    *ScaleAnimator
	cam     *Camera
	frame   uint64

	hovered  *Marker
	selected *Marker

	// Swappable hit-testing strategies.
	HoverPicker Picker
	ClickPicker Picker
}

// NewEngine creates an engine with default pickers and an idle animator.
func NewEngine(cam *Camera) *Engine {
	return &Engine{
		anim:        NewScaleAnimator(1.0),
		cam:         cam,
		HoverPicker: ScreenSpacePicker{ThresholdPx: DefaultHitThresholdPx},
		ClickPicker: RayPicker{MarkerRadius: DefaultMarkerRadius},
	}
}

// SetStations replaces all markers from a freshly loaded directory. This is
// the only marker lifecycle event: created here, destroyed only by the next
// full reload.
func (e *Engine) SetStations(records []station.Record) {
	e.markers = make([]*Marker, 0, len(records))
	scale := e.anim.Current()
	for _, rec := range records {
		e.markers = append(e.markers, NewMarker(rec, scale))
	}
	e.hovered = nil
	e.selected = nil
}

// Step runs one frame: animator tick, conditional reprojection, camera
// easing, frame counter.
func (e *Engine) Step() {
	if e.anim.Tick() {
		scale := e.anim.Current()
		for _, m := range e.markers {
			m.Reproject(scale)
		}
	}
	e.cam.Tick()
	e.frame++
}

// SetScaleTarget starts animating the globe toward a new scale.
func (e *Engine) SetScaleTarget(scale float64) {
	e.anim.SetTarget(scale)
}

// HoverAt runs the hover strategy and maintains highlight state: the
// previously hovered marker is reset, the new one is set. Selected markers
// keep their selection highlight.
func (e *Engine) HoverAt(px, py, width, height float64) (*Marker, bool) {
	m, ok := e.HoverPicker.Pick(e.markers, e.cam, px, py, width, height)

	if e.hovered != nil && e.hovered != m && e.hovered != e.selected {
		e.hovered.Highlight = HighlightNormal
	}
	e.hovered = nil

	if !ok {
		return nil, false
	}
	if m != e.selected {
		m.Highlight = HighlightHovered
	}
	e.hovered = m
	return m, true
}

// ClickAt runs the click strategy and moves the selection highlight to the
// hit marker. The caller dispatches the hit station to playback.
func (e *Engine) ClickAt(px, py, width, height float64) (*Marker, bool) {
	m, ok := e.ClickPicker.Pick(e.markers, e.cam, px, py, width, height)
	if !ok {
		return nil, false
	}
	e.Select(m)
	return m, true
}

// Select moves the selection highlight to a marker (nil clears it).
func (e *Engine) Select(m *Marker) {
	if e.selected != nil && e.selected != m {
		e.selected.Highlight = HighlightNormal
	}
	e.selected = m
	if m != nil {
		m.Highlight = HighlightSelected
	}
}

// SelectByKey selects the marker for a station key, if present.
func (e *Engine) SelectByKey(key string) {
	for _, m := range e.markers {
		if m.Station.Key() == key {
			e.Select(m)
			return
		}
	}
}

// Markers returns the live marker slice. Callers must not reorder it;
// iteration order is the hit-testing tie-break order.
func (e *Engine) Markers() []*Marker {
	return e.markers
}

// Camera returns the engine's camera.
func (e *Engine) Camera() *Camera {
	return e.cam
}

// Scale returns the current animated scale.
func (e *Engine) Scale() float64 {
	return e.anim.Current()
}

// Animating reports whether the scale animation is in flight.
func (e *Engine) Animating() bool {
	return e.anim.Animating()
}

// Frame returns the number of completed steps.
func (e *Engine) Frame() uint64 {
	return e.frame
}
