package globe

import "math"

const (
	// scaleEpsilon is the snap threshold for the scale animation.
	scaleEpsilon = 0.01

	// scaleDamping is the per-tick easing factor toward the target.
	scaleDamping = 0.1
)

// ScaleAnimator eases the global radius scale toward a target. It is a
// scalar low-pass filter: each tick moves a fixed fraction of the remaining
// distance, so it approaches the target asymptotically and never overshoots.
// Deterministic for a fixed tick cadence.
type ScaleAnimator struct {
	current   float64
	target    float64
	animating bool
}

// NewScaleAnimator creates an animator at rest at the given scale.
func NewScaleAnimator(initial float64) *ScaleAnimator {
	return &ScaleAnimator{current: initial, target: initial}
}

// Current returns the scale to render this frame.
func (a *ScaleAnimator) Current() float64 {
	return a.current
}

// Target returns the scale being eased toward.
func (a *ScaleAnimator) Target() float64 {
	return a.target
}

// Animating reports whether the animation is still in flight.
func (a *ScaleAnimator) Animating() bool {
	return a.animating
}

// SetTarget starts easing toward a new scale.
func (a *ScaleAnimator) SetTarget(scale float64) {
	a.target = scale
	a.animating = true
}

// Tick advances the animation one frame and reports whether the current
// scale changed. A changed tick obliges the caller to reproject every
// marker and beam.
func (a *ScaleAnimator) Tick() bool {
	if !a.animating {
		return false
	}

	if math.Abs(a.target-a.current) > scaleEpsilon {
		a.current += (a.target - a.current) * scaleDamping
		return true
	}

	changed := a.current != a.target
	a.current = a.target
	a.animating = false
	return changed
}
