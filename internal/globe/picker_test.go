package globe

import (
	"testing"

	"github.com/litescript/ls-globeradio/internal/station"
)

func markerAt(name string, lat, lon float64) *Marker {
	return NewMarker(station.Record{
		StreamURL: "http://" + name + ".example/stream",
		Name:      name,
		Latitude:  lat,
		Longitude: lon,
	}, 1.0)
}

func TestScreenSpacePicker_HitAndMiss(t *testing.T) {
	cam := testCamera()
	// lon -90 projects to the front pole for a camera on +Z.
	front := markerAt("front", 0, -90)
	markers := []*Marker{front, markerAt("side", 0, -140)}

	picker := ScreenSpacePicker{ThresholdPx: 10}

	// Pointer exactly on the front marker's screen position.
	x, y, visible := cam.ProjectToScreen(front.Position, 100, 100)
	if !visible {
		t.Fatal("front marker should be visible")
	}

	got, ok := picker.Pick(markers, cam, x, y, 100, 100)
	if !ok {
		t.Fatal("expected a hit at the marker's own position")
	}
	if got != front {
		t.Errorf("picked %q, want front", got.Station.Name)
	}

	// Pointer farther than the threshold from every marker: no hit.
	if _, ok := picker.Pick(markers, cam, x+50, y+50, 100, 100); ok {
		t.Error("expected no hit far from every marker")
	}

	// Just outside the threshold is still a miss (strict <).
	if _, ok := picker.Pick(markers, cam, x+10, y, 100, 100); ok {
		t.Error("distance equal to the threshold must not hit")
	}
	if _, ok := picker.Pick(markers, cam, x+9, y, 100, 100); !ok {
		t.Error("distance inside the threshold must hit")
	}
}

func TestScreenSpacePicker_TieBreakFirstWins(t *testing.T) {
	cam := testCamera()
	// Two stations sharing a coordinate project to the same pixel.
	a := markerAt("first", 10, -90)
	b := markerAt("second", 10, -90)
	markers := []*Marker{a, b}

	x, y, _ := cam.ProjectToScreen(a.Position, 100, 100)

	got, ok := ScreenSpacePicker{ThresholdPx: 10}.Pick(markers, cam, x, y, 100, 100)
	if !ok {
		t.Fatal("expected a hit")
	}
	if got != a {
		t.Error("exact tie must resolve to the first marker in iteration order")
	}
}

func TestScreenSpacePicker_IgnoresHiddenMarkers(t *testing.T) {
	cam := testCamera()
	// lon 90 is the far side for a camera on +Z.
	hidden := markerAt("hidden", 0, 90)

	if _, ok := (ScreenSpacePicker{ThresholdPx: 10}).Pick([]*Marker{hidden}, cam, 50, 50, 100, 100); ok {
		t.Error("marker on the far side of the globe must not be hoverable")
	}
}

func TestRayPicker_NearestAlongRay(t *testing.T) {
	cam := testCamera()
	front := markerAt("front", 0, -90)
	// The antipode sits on the same center ray, farther along it.
	back := markerAt("back", 0, 90)
	markers := []*Marker{back, front}

	got, ok := RayPicker{MarkerRadius: 0.05}.Pick(markers, cam, 50, 50, 100, 100)
	if !ok {
		t.Fatal("expected the center ray to hit")
	}
	if got != front {
		t.Errorf("picked %q, want the nearer marker along the ray", got.Station.Name)
	}
}

func TestRayPicker_Miss(t *testing.T) {
	cam := testCamera()
	markers := []*Marker{markerAt("front", 0, -90)}

	// A ray through the viewport corner passes well clear of the marker.
	if _, ok := (RayPicker{MarkerRadius: 0.05}).Pick(markers, cam, 0, 0, 100, 100); ok {
		t.Error("corner ray should miss the front marker")
	}
}
