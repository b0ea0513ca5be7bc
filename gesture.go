package vantage

import "math"

// GestureKind classifies an in-flight touch interaction.
type GestureKind uint8

const (
	GestureNone GestureKind = iota
	GesturePan
	GestureZoom
)

// String returns the gesture name used in logs and tests.
func (k GestureKind) String() string {
	switch k {
	case GesturePan:
		return "pan"
	case GestureZoom:
		return "zoom"
	default:
		return "none"
	}
}

// GestureState is the lifecycle record of one gesture: created on first
// touch, mutated on moves, finalized and discarded on release.
type GestureState struct {
	Kind            GestureKind
	IsActive        bool
	StartPosition   Vec2
	CurrentPosition Vec2

	// Pinch-only fields.
	InitialPinchDistance float64
	InitialPinchCenter   Vec2

	StartTimeMs float64
	DurationMs  float64

	prev       Vec2    // previous pan position, for incremental deltas
	prevCenter Vec2    // previous pinch center
	prevDist   float64 // previous pinch distance
	totalMove  float64
}

// GestureDelta is the position change a gesture emits. Scale is 1.0 for pure
// pans; for pinches it is the frame-over-frame distance ratio raised to
// zoomSensitivity, so multiplying the deltas of a whole pinch yields
// (finalDistance/initialDistance)^zoomSensitivity.
type GestureDelta struct {
	X, Y             float64
	Scale            float64
	CenterX, CenterY float64
}

const (
	tapMaxMovementPx = 10.0
	tapMaxDurationMs = 250.0
)

// GestureRecognizer turns per-frame touch point sets into pan and pinch-zoom
// deltas. The state machine follows touch-point count: 0 idle, 1 pan,
// 2 zoom, more than 2 ignored. Deltas are incremental, not absolute, so
// long drags cannot accumulate drift.
type GestureRecognizer struct {
	state GestureState

	panSensitivity  float64
	zoomSensitivity float64

	// gestureCount counts every started gesture, including rapid start/end
	// cycles, which are always independent gestures.
	gestureCount int

	OnGestureStart func(state GestureState)
	OnGestureDelta func(delta GestureDelta)
	OnGestureEnd   func(state GestureState)
	OnTap          func(at Vec2)
}

// NewGestureRecognizer creates a recognizer with the given sensitivities.
// Zero or negative sensitivities default to 1.0.
func NewGestureRecognizer(panSensitivity, zoomSensitivity float64) *GestureRecognizer {
	if panSensitivity <= 0 {
		panSensitivity = 1.0
	}
	if zoomSensitivity <= 0 {
		zoomSensitivity = 1.0
	}
	return &GestureRecognizer{
		panSensitivity:  panSensitivity,
		zoomSensitivity: zoomSensitivity,
	}
}

// State returns a copy of the current gesture state.
func (g *GestureRecognizer) State() GestureState {
	return g.state
}

// GestureCount reports how many gestures have started since construction.
func (g *GestureRecognizer) GestureCount() int {
	return g.gestureCount
}

// ProcessTouches ingests the complete set of active touch points for one
// frame. A malformed event with zero touch points while idle is ignored
// entirely and never starts a gesture.
func (g *GestureRecognizer) ProcessTouches(touches []Vec2, tsMs float64) {
	switch {
	case len(touches) == 0:
		g.endGesture(tsMs)
	case len(touches) == 1:
		g.processPan(touches[0], tsMs)
	case len(touches) == 2:
		g.processPinch(touches[0], touches[1], tsMs)
	default:
		// More than two touch points: ignored, state unchanged.
	}
}

func (g *GestureRecognizer) startGesture(kind GestureKind, at Vec2, tsMs float64) {
	g.state = GestureState{
		Kind:            kind,
		IsActive:        true,
		StartPosition:   at,
		CurrentPosition: at,
		StartTimeMs:     tsMs,
		prev:            at,
	}
	g.gestureCount++
	if g.OnGestureStart != nil {
		g.OnGestureStart(g.state)
	}
}

func (g *GestureRecognizer) endGesture(tsMs float64) {
	if !g.state.IsActive {
		return
	}
	g.state.IsActive = false
	g.state.DurationMs = tsMs - g.state.StartTimeMs

	if g.state.Kind == GesturePan &&
		g.state.totalMove < tapMaxMovementPx &&
		g.state.DurationMs < tapMaxDurationMs {
		if g.OnTap != nil {
			g.OnTap(g.state.CurrentPosition)
		}
	}

	if g.OnGestureEnd != nil {
		g.OnGestureEnd(g.state)
	}
	g.state = GestureState{}
}

func (g *GestureRecognizer) processPan(touch Vec2, tsMs float64) {
	if g.state.IsActive && g.state.Kind == GestureZoom {
		// Lost a finger mid-pinch: the pinch ends and a fresh pan begins.
		g.endGesture(tsMs)
	}
	if !g.state.IsActive {
		g.startGesture(GesturePan, touch, tsMs)
		return
	}

	dx := (touch.X - g.state.prev.X) * g.panSensitivity
	dy := (touch.Y - g.state.prev.Y) * g.panSensitivity
	g.state.totalMove += Distance(g.state.prev, touch)
	g.state.prev = touch
	g.state.CurrentPosition = touch
	g.state.DurationMs = tsMs - g.state.StartTimeMs

	if dx == 0 && dy == 0 {
		return
	}
	if g.OnGestureDelta != nil {
		g.OnGestureDelta(GestureDelta{
			X: dx, Y: dy, Scale: 1.0,
			CenterX: touch.X, CenterY: touch.Y,
		})
	}
}

func (g *GestureRecognizer) processPinch(t0, t1 Vec2, tsMs float64) {
	center := Center(t0, t1)
	dist := Distance(t0, t1)

	if !g.state.IsActive || g.state.Kind != GestureZoom {
		if g.state.IsActive {
			g.endGesture(tsMs) // pan promoted to pinch
		}
		g.startGesture(GestureZoom, center, tsMs)
		g.state.InitialPinchDistance = dist
		g.state.InitialPinchCenter = center
		g.state.prevCenter = center
		g.state.prevDist = dist
		return
	}

	scale := 1.0
	if g.state.prevDist > 0 {
		scale = math.Pow(dist/g.state.prevDist, g.zoomSensitivity)
	}
	g.state.prevDist = dist

	// Two-finger pan-while-zooming: the center's incremental movement is a
	// pan delta in its own right.
	cdx := (center.X - g.state.prevCenter.X) * g.panSensitivity
	cdy := (center.Y - g.state.prevCenter.Y) * g.panSensitivity
	g.state.prevCenter = center
	g.state.CurrentPosition = center
	g.state.DurationMs = tsMs - g.state.StartTimeMs

	if g.OnGestureDelta != nil {
		g.OnGestureDelta(GestureDelta{
			X: cdx, Y: cdy, Scale: scale,
			CenterX: center.X, CenterY: center.Y,
		})
	}
}
