package globe

import (
	"math"
	"testing"

	"github.com/litescript/ls-globeradio/internal/geo"
)

// testCamera returns a camera on the +Z axis at distance 3 with no easing
// pending, so projections are deterministic.
func testCamera() *Camera {
	return &Camera{distance: 3.0, fovDeg: 45}
}

func TestCamera_ProjectToScreen_Center(t *testing.T) {
	cam := testCamera()

	// The front pole of the globe sits dead center in the viewport.
	x, y, visible := cam.ProjectToScreen(geo.Vec3{Z: 1}, 100, 100)
	if !visible {
		t.Fatal("front-facing point should be visible")
	}
	if math.Abs(x-50) > 1e-9 || math.Abs(y-50) > 1e-9 {
		t.Errorf("projected to (%v, %v), want (50, 50)", x, y)
	}
}

func TestCamera_ProjectToScreen_Offsets(t *testing.T) {
	cam := testCamera()

	// A point up and to the camera's right lands up-right of center.
	x, y, visible := cam.ProjectToScreen(geo.Vec3{X: 0.3, Y: 0.3, Z: 0.9}.Normalize(), 200, 100)
	if !visible {
		t.Fatal("point should be visible")
	}
	if x <= 100 {
		t.Errorf("x = %v, want > 100 (right of center)", x)
	}
	if y >= 50 {
		t.Errorf("y = %v, want < 50 (above center)", y)
	}
}

func TestCamera_ProjectToScreen_FarSideHidden(t *testing.T) {
	cam := testCamera()

	// The antipode faces away from the eye and must be occluded.
	if _, _, visible := cam.ProjectToScreen(geo.Vec3{Z: -1}, 100, 100); visible {
		t.Error("far-side point should be hidden by the globe")
	}

	// A point behind the eye must also be rejected.
	if _, _, visible := cam.ProjectToScreen(geo.Vec3{Z: 5}, 100, 100); visible {
		t.Error("point behind the near plane should not be visible")
	}
}

func TestCamera_Ray_ThroughCenter(t *testing.T) {
	cam := testCamera()

	origin, dir := cam.Ray(50, 50, 100, 100)

	if origin.DistanceTo(geo.Vec3{Z: 3}) > 1e-9 {
		t.Errorf("ray origin = %+v, want eye at {0 0 3}", origin)
	}
	if dir.DistanceTo(geo.Vec3{Z: -1}) > 1e-9 {
		t.Errorf("center ray dir = %+v, want {0 0 -1}", dir)
	}
}

func TestCamera_Ray_ProjectRoundTrip(t *testing.T) {
	cam := testCamera()
	p := geo.Project(35, -100, 1.0)

	x, y, visible := cam.ProjectToScreen(p, 160, 90)
	if !visible {
		t.Skip("test point not on the visible hemisphere for this camera")
	}

	// A ray cast back through the projected position must pass very close
	// to the original point.
	origin, dir := cam.Ray(x, y, 160, 90)
	toP := p.Sub(origin)
	along := toP.Dot(dir)
	closest := origin.Add(dir.Scale(along))
	if miss := closest.DistanceTo(p); miss > 1e-6 {
		t.Errorf("ray misses projected point by %v", miss)
	}
}

func TestCamera_TickEasesTowardTarget(t *testing.T) {
	cam := testCamera()
	cam.Rotate(90, 30)

	if !cam.Tick() {
		t.Fatal("first tick after Rotate should move the camera")
	}
	if cam.Yaw() <= 0 || cam.Yaw() >= 90 {
		t.Errorf("yaw after one tick = %v, want between 0 and 90", cam.Yaw())
	}

	for i := 0; i < 2000 && cam.Tick(); i++ {
	}
	if math.Abs(cam.Yaw()-90) > 0.01 || math.Abs(cam.Pitch()-30) > 0.01 {
		t.Errorf("camera settled at (%v, %v), want (90, 30)", cam.Yaw(), cam.Pitch())
	}
}

func TestCamera_PitchClamped(t *testing.T) {
	cam := testCamera()
	cam.Rotate(0, 500)

	for i := 0; i < 2000 && cam.Tick(); i++ {
	}
	if cam.Pitch() > maxPitchDeg+1e-6 {
		t.Errorf("pitch = %v, want clamped at %v", cam.Pitch(), float64(maxPitchDeg))
	}
}
