// Package globe owns the visual model of the station globe: markers, beams,
// the orbit camera, the scale animator and pointer hit-testing.
package globe

import (
	"github.com/litescript/ls-globeradio/internal/geo"
	"github.com/litescript/ls-globeradio/internal/station"
)

const (
	// BaseRadius is the unscaled globe radius in globe-space units.
	BaseRadius = 1.0

	// beamHeight is the unscaled beam extent above the surface.
	beamHeight = 0.08
)

// Highlight is a marker's visual emphasis.
type Highlight int

const (
	HighlightNormal Highlight = iota
	HighlightHovered
	HighlightSelected
)

// Marker is the visual point for one station. Position and Beam are derived:
// always a pure function of (station coordinate, current scale), recomputed
// via Reproject and never edited in place.
type Marker struct {
	Station   station.Record
	Highlight Highlight

	Position geo.Vec3
	Beam     geo.BeamGeometry
}

// NewMarker creates a marker for a station, positioned at the given scale.
func NewMarker(rec station.Record, scale float64) *Marker {
	m := &Marker{Station: rec}
	m.Reproject(scale)
	return m
}

// Reproject recomputes position and beam for the given global scale.
func (m *Marker) Reproject(scale float64) {
	r := BaseRadius * scale
	m.Position = geo.Project(m.Station.Latitude, m.Station.Longitude, r)
	m.Beam = geo.Beam(m.Station.Latitude, m.Station.Longitude, r, (BaseRadius+beamHeight)*scale)
}
