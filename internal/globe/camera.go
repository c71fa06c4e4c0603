package globe

import (
	"math"

	"github.com/litescript/ls-globeradio/internal/geo"
)

const (
	// cameraDamping eases yaw/pitch toward their targets each tick.
	cameraDamping = 0.1

	// nearPlane rejects projections of points at or behind the eye.
	nearPlane = 0.05

	// pitch is clamped short of the poles to keep the view basis stable.
	maxPitchDeg = 85
)

// Camera is a damped orbit camera looking at the globe's center.
// Yaw and pitch are in degrees; distance is in globe-space units.
type Camera struct {
	yaw   float64
	pitch float64

	targetYaw   float64
	targetPitch float64

	distance float64
	fovDeg   float64
}

// NewCamera creates a camera at the default orbit.
func NewCamera() *Camera {
	return &Camera{
		pitch:       20,
		targetPitch: 20,
		distance:    3.0,
		fovDeg:      45,
	}
}

// Eye returns the camera position in globe space.
func (c *Camera) Eye() geo.Vec3 {
	yaw := degToRad(c.yaw)
	pitch := degToRad(c.pitch)
	cosP := math.Cos(pitch)
	return geo.Vec3{
		X: c.distance * cosP * math.Sin(yaw),
		Y: c.distance * math.Sin(pitch),
		Z: c.distance * cosP * math.Cos(yaw),
	}
}

// Rotate adjusts the orbit targets. The actual yaw/pitch ease toward them
// over subsequent ticks.
func (c *Camera) Rotate(dYawDeg, dPitchDeg float64) {
	c.targetYaw += dYawDeg
	c.targetPitch = clamp(c.targetPitch+dPitchDeg, -maxPitchDeg, maxPitchDeg)
}

// Tick eases yaw and pitch toward their targets. Returns true if the
// camera moved.
func (c *Camera) Tick() bool {
	moved := false
	if d := c.targetYaw - c.yaw; math.Abs(d) > 1e-4 {
		c.yaw += d * cameraDamping
		moved = true
	} else {
		c.yaw = c.targetYaw
	}
	if d := c.targetPitch - c.pitch; math.Abs(d) > 1e-4 {
		c.pitch += d * cameraDamping
		moved = true
	} else {
		c.pitch = c.targetPitch
	}
	return moved
}

// basis returns the view basis: forward toward the origin, right, and up.
func (c *Camera) basis() (forward, right, up geo.Vec3) {
	eye := c.Eye()
	forward = eye.Scale(-1).Normalize()
	right = forward.Cross(geo.Vec3{Y: 1}).Normalize()
	up = right.Cross(forward)
	return forward, right, up
}

// ProjectToScreen maps a globe-space point to viewport coordinates.
// Visible is false when the point is behind the near plane or on the far
// side of the globe (its outward normal faces away from the eye).
func (c *Camera) ProjectToScreen(p geo.Vec3, width, height float64) (x, y float64, visible bool) {
	eye := c.Eye()
	forward, right, up := c.basis()

	rel := p.Sub(eye)
	depth := rel.Dot(forward)
	if depth < nearPlane {
		return 0, 0, false
	}

	// Horizon occlusion: a surface point is hidden when it faces away.
	if p.Dot(eye.Sub(p)) < 0 {
		return 0, 0, false
	}

	focal := (height / 2) / math.Tan(degToRad(c.fovDeg)/2)
	x = width/2 + rel.Dot(right)/depth*focal
	y = height/2 - rel.Dot(up)/depth*focal
	return x, y, true
}

// Ray constructs a pick ray from the eye through a viewport position.
func (c *Camera) Ray(px, py, width, height float64) (origin, dir geo.Vec3) {
	forward, right, up := c.basis()

	tanHalf := math.Tan(degToRad(c.fovDeg) / 2)
	aspect := width / height

	ndcX := 2*px/width - 1
	ndcY := 1 - 2*py/height

	dir = forward.
		Add(right.Scale(ndcX * tanHalf * aspect)).
		Add(up.Scale(ndcY * tanHalf)).
		Normalize()
	return c.Eye(), dir
}

// Yaw returns the current yaw in degrees.
func (c *Camera) Yaw() float64 { return c.yaw }

// Pitch returns the current pitch in degrees.
func (c *Camera) Pitch() float64 { return c.pitch }

// Distance returns the orbit distance.
func (c *Camera) Distance() float64 { return c.distance }

// FOV returns the vertical field of view in degrees.
func (c *Camera) FOV() float64 { return c.fovDeg }

func degToRad(deg float64) float64 {
	return deg * math.Pi / 180
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
