package globe

import (
	"math"

	"github.com/litescript/ls-globeradio/internal/geo"
)

// DefaultHitThresholdPx is the hover acceptance radius in pixels.
const DefaultHitThresholdPx = 10.0

// Picker resolves a 2D pointer position to a marker. Both built-in
// strategies are O(n) over the marker slice; the interface exists so a
// spatially accelerated strategy can be swapped in later without touching
// callers.
type Picker interface {
	Pick(markers []*Marker, cam *Camera, px, py, width, height float64) (*Marker, bool)
}

// ScreenSpacePicker picks the marker nearest to the pointer in screen
// space, accepted only within ThresholdPx. Used for hover.
//
// Exact distance ties resolve to the first marker in iteration order. That
// is an accepted ambiguity, not a stable sort.
type ScreenSpacePicker struct {
	ThresholdPx float64
}

// Pick implements Picker.
func (s ScreenSpacePicker) Pick(markers []*Marker, cam *Camera, px, py, width, height float64) (*Marker, bool) {
	threshold := s.ThresholdPx
	if threshold <= 0 {
		threshold = DefaultHitThresholdPx
	}

	var best *Marker
	bestDist := math.Inf(1)

	for _, m := range markers {
		x, y, visible := cam.ProjectToScreen(m.Position, width, height)
		if !visible {
			continue
		}
		dx, dy := x-px, y-py
		d := math.Sqrt(dx*dx + dy*dy)
		if d < bestDist {
			bestDist = d
			best = m
		}
	}

	if best == nil || bestDist >= threshold {
		return nil, false
	}
	return best, true
}

// RayPicker casts a ray from the camera through the pointer and intersects
// it against each marker's bounding sphere, taking the nearest hit along
// the ray. Used for clicks.
type RayPicker struct {
	// MarkerRadius is the bounding sphere radius in globe-space units.
	MarkerRadius float64
}

// DefaultMarkerRadius bounds a marker for ray picking.
const DefaultMarkerRadius = 0.04

// Pick implements Picker.
func (r RayPicker) Pick(markers []*Marker, cam *Camera, px, py, width, height float64) (*Marker, bool) {
	radius := r.MarkerRadius
	if radius <= 0 {
		radius = DefaultMarkerRadius
	}

	origin, dir := cam.Ray(px, py, width, height)

	var best *Marker
	bestT := math.Inf(1)

	for _, m := range markers {
		t, hit := raySphere(origin, dir, m.Position, radius)
		if hit && t < bestT {
			bestT = t
			best = m
		}
	}

	return best, best != nil
}

// raySphere returns the nearest positive ray parameter at which a unit-speed
// ray intersects a sphere.
func raySphere(origin, dir, center geo.Vec3, radius float64) (float64, bool) {
	oc := origin.Sub(center)
	b := oc.Dot(dir)
	c := oc.Dot(oc) - radius*radius

	disc := b*b - c
	if disc < 0 {
		return 0, false
	}

	sqrtDisc := math.Sqrt(disc)
	t := -b - sqrtDisc
	if t < 0 {
		t = -b + sqrtDisc
	}
	if t < 0 {
		return 0, false
	}
	return t, true
}
