package geo

import (
	"math"
	"testing"
)

func TestProject_RadiusPreserved(t *testing.T) {
	radii := []float64{0.5, 1.0, 6371.0}

	for _, r := range radii {
		for lat := -90.0; lat <= 90; lat += 15 {
			for lon := -180.0; lon <= 180; lon += 30 {
				p := Project(lat, lon, r)
				if math.Abs(p.Length()-r) > 1e-9*r {
					t.Errorf("Project(%v, %v, %v).Length() = %v, want %v",
						lat, lon, r, p.Length(), r)
				}
			}
		}
	}
}

func TestProject_KnownPoints(t *testing.T) {
	tests := []struct {
		name     string
		lat, lon float64
		expected Vec3
	}{
		// lon 0 maps to theta=180°: x = +r on the left-handed axis
		{"equator, prime meridian", 0, 0, Vec3{X: 1, Y: 0, Z: 0}},
		{"north pole", 90, 0, Vec3{X: 0, Y: 1, Z: 0}},
		{"south pole", -90, 0, Vec3{X: 0, Y: -1, Z: 0}},
		{"equator, antimeridian", 0, -180, Vec3{X: -1, Y: 0, Z: 0}},
		{"equator, 90E", 0, 90, Vec3{X: 0, Y: 0, Z: -1}},
		{"equator, 90W", 0, -90, Vec3{X: 0, Y: 0, Z: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Project(tt.lat, tt.lon, 1.0)
			if got.DistanceTo(tt.expected) > 1e-9 {
				t.Errorf("Project(%v, %v, 1) = %+v, want %+v",
					tt.lat, tt.lon, got, tt.expected)
			}
		})
	}
}

func TestProject_MonotonicScaling(t *testing.T) {
	// Growing the radius must strictly grow every marker's distance
	// from the origin.
	coords := []struct{ lat, lon float64 }{
		{40.7, -74.0}, // New York
		{51.5, 0},     // London
		{-33.9, 151.2},
		{90, 0},
	}

	for _, c := range coords {
		prev := Project(c.lat, c.lon, 1.0).Length()
		for _, s := range []float64{1.1, 1.5, 2.0, 3.5} {
			cur := Project(c.lat, c.lon, s).Length()
			if cur <= prev {
				t.Errorf("(%v, %v): length at scale %v = %v, not greater than %v",
					c.lat, c.lon, s, cur, prev)
			}
			prev = cur
		}
	}
}

func TestProject_MarkerBeamCoincident(t *testing.T) {
	// The surface endpoint of a beam must be the marker position itself;
	// both sides use the same projection and sign convention.
	lat, lon := 48.85, 2.35
	marker := Project(lat, lon, 1.0)
	beam := Beam(lat, lon, 1.0, 1.1)

	surface := beam.Midpoint.Sub(beam.Axis.Scale(beam.Length / 2))
	if surface.DistanceTo(marker) > 1e-9 {
		t.Errorf("beam surface endpoint %+v does not coincide with marker %+v", surface, marker)
	}
}

func TestBeam(t *testing.T) {
	lat, lon := 40.7, -74.0
	b := Beam(lat, lon, 1.0, 1.2)

	if b.Degenerate {
		t.Fatal("beam with distinct radii reported degenerate")
	}

	// Length equals the distance between the projected endpoints.
	wantLen := Project(lat, lon, 1.0).DistanceTo(Project(lat, lon, 1.2))
	if math.Abs(b.Length-wantLen) > 1e-12 {
		t.Errorf("Length = %v, want %v", b.Length, wantLen)
	}

	// Axis is unit length and points outward (away from the origin).
	if math.Abs(b.Axis.Length()-1) > 1e-12 {
		t.Errorf("Axis length = %v, want 1", b.Axis.Length())
	}
	if b.Axis.Dot(b.Midpoint) <= 0 {
		t.Errorf("Axis %+v does not point from surface toward tip", b.Axis)
	}

	// Midpoint sits halfway between the endpoints.
	wantMid := Project(lat, lon, 1.1)
	if b.Midpoint.DistanceTo(wantMid) > 1e-9 {
		t.Errorf("Midpoint = %+v, want %+v", b.Midpoint, wantMid)
	}
}

func TestBeam_Degenerate(t *testing.T) {
	b := Beam(10, 20, 1.0, 1.0)

	if !b.Degenerate {
		t.Fatal("coincident radii should report degenerate")
	}
	if b.Length < MinBeamLength {
		t.Errorf("Length = %v, want clamped to at least %v", b.Length, MinBeamLength)
	}
	// Orientation falls back to the outward radial.
	want := Project(10, 20, 1.0).Normalize()
	if b.Axis.DistanceTo(want) > 1e-9 {
		t.Errorf("degenerate Axis = %+v, want radial %+v", b.Axis, want)
	}
}

func TestVec3(t *testing.T) {
	a := Vec3{X: 1, Y: 2, Z: 3}
	b := Vec3{X: -1, Y: 0, Z: 2}

	if got := a.Dot(b); got != 5 {
		t.Errorf("Dot = %v, want 5", got)
	}
	if got := a.Cross(b); got != (Vec3{X: 4, Y: -5, Z: 2}) {
		t.Errorf("Cross = %+v, want {4 -5 2}", got)
	}
	if got := (Vec3{X: 3, Y: 4}).Length(); got != 5 {
		t.Errorf("Length = %v, want 5", got)
	}
	if got := (Vec3{}).Normalize(); got != (Vec3{}) {
		t.Errorf("Normalize zero = %+v, want zero", got)
	}
	n := a.Normalize()
	if math.Abs(n.Length()-1) > 1e-12 {
		t.Errorf("Normalize length = %v, want 1", n.Length())
	}
}
