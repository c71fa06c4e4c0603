// Package geo converts geographic coordinates to positions in globe space.
package geo

import "math"

// MinBeamLength is the floor applied to a beam's length when its surface and
// tip radii nearly coincide, so downstream geometry never divides by zero.
const MinBeamLength = 1e-6

// Project converts a geographic coordinate and radius to a Cartesian position.
//
// Latitude is in degrees north (-90 to +90), longitude in degrees east
// (-180 to +180), radius must be positive. Longitude is offset by 180° and
// the x-axis is negated (left-handed convention); markers and beams both go
// through this function so they stay coincident under any scale.
func Project(latDeg, lonDeg, radius float64) Vec3 {
	phi := degToRad(90 - latDeg)
	theta := degToRad(lonDeg + 180)

	sinPhi := math.Sin(phi)
	return Vec3{
		X: -radius * sinPhi * math.Cos(theta),
		Y: radius * math.Cos(phi),
		Z: radius * sinPhi * math.Sin(theta),
	}
}

// BeamGeometry describes the segment from a marker's surface position out to
// an elevated tip. It is derived state: recomputed from the station's
// coordinate and the current scale, never patched in place.
type BeamGeometry struct {
	Midpoint Vec3
	Axis     Vec3 // unit vector pointing from surface toward tip
	Length   float64
	// Degenerate is set when surface and tip nearly coincide; the length is
	// clamped to MinBeamLength and callers should skip rendering.
	Degenerate bool
}

// Beam computes the beam segment for a coordinate between two radii.
func Beam(latDeg, lonDeg, surfaceRadius, tipRadius float64) BeamGeometry {
	surface := Project(latDeg, lonDeg, surfaceRadius)
	tip := Project(latDeg, lonDeg, tipRadius)

	d := tip.Sub(surface)
	length := d.Length()

	g := BeamGeometry{Midpoint: surface.Add(tip).Scale(0.5)}
	if length < MinBeamLength {
		// Near-zero beam: keep the outward radial as the axis so orientation
		// stays well-defined.
		g.Length = MinBeamLength
		g.Axis = surface.Normalize()
		g.Degenerate = true
		return g
	}

	g.Length = length
	g.Axis = d.Scale(1 / length)
	return g
}

// degToRad converts degrees to radians.
func degToRad(deg float64) float64 {
	return deg * math.Pi / 180
}
