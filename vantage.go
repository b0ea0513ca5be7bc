package vantage

import "math"

// Position is the virtual camera's logical location over the canvas and its
// zoom. X and Y are canvas-space offsets; Scale is the zoom factor
// (1.0 = no zoom, >1 = zoomed in).
type Position struct {
	X, Y, Scale float64
}

// Vec2 is a 2D point or offset. Used for touch coordinates, pinch centers,
// and grid math throughout the API.
type Vec2 struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Intersects reports whether r and other overlap.
// Adjacent rectangles (sharing only an edge) are considered intersecting.
func (r Rect) Intersects(other Rect) bool {
	return r.X <= other.X+other.Width &&
		r.X+r.Width >= other.X &&
		r.Y <= other.Y+other.Height &&
		r.Y+r.Height >= other.Y
}

// Constraints bounds the camera. Read-only after construction.
type Constraints struct {
	MinPosition Vec2
	MaxPosition Vec2
	MinScale    float64
	MaxScale    float64
	// Padding shrinks the usable position range on all sides.
	Padding float64
}

// Valid reports whether the constraints are internally consistent.
func (c Constraints) Valid() bool {
	return c.MinScale > 0 &&
		c.MinScale <= c.MaxScale &&
		c.MinPosition.X <= c.MaxPosition.X &&
		c.MinPosition.Y <= c.MaxPosition.Y
}

// Transform is the descriptor handed to the render surface once per frame.
// The surface decides how to paint it (GeoM, CSS transform, draw call).
type Transform struct {
	TranslateX, TranslateY float64
	Scale                  float64
}

// TransformFor converts a camera position into the render transform for a
// viewport of the given size: the position is the point the camera centers on.
func TransformFor(pos Position, viewportW, viewportH float64) Transform {
	return Transform{
		TranslateX: viewportW/2 - pos.X*pos.Scale,
		TranslateY: viewportH/2 - pos.Y*pos.Scale,
		Scale:      pos.Scale,
	}
}

// MovementKind names one of the closed set of camera movements.
type MovementKind uint8

const (
	MovePanTilt MovementKind = iota
	MoveZoomIn
	MoveZoomOut
	MoveDollyZoom
	MoveRackFocus
	MoveMatchCut
)

// String returns the hyphenated movement name used in logs and announcements.
func (k MovementKind) String() string {
	switch k {
	case MovePanTilt:
		return "pan-tilt"
	case MoveZoomIn:
		return "zoom-in"
	case MoveZoomOut:
		return "zoom-out"
	case MoveDollyZoom:
		return "dolly-zoom"
	case MoveRackFocus:
		return "rack-focus"
	case MoveMatchCut:
		return "match-cut"
	default:
		return "unknown"
	}
}

// GridLayout selects how logical grid cells map onto the canvas.
type GridLayout uint8

const (
	Layout2x3      GridLayout = iota // 2 rows, 3 columns
	Layout3x2                        // 3 rows, 2 columns
	Layout1x6                        // single row of 6
	LayoutCircular                   // cells on a circle around the canvas center
)

// Dimensions returns rows and columns for rectangular layouts.
// Circular layouts report 1 row and their cell count.
func (l GridLayout) Dimensions() (rows, cols int) {
	switch l {
	case Layout2x3:
		return 2, 3
	case Layout3x2:
		return 3, 2
	case Layout1x6:
		return 1, 6
	case LayoutCircular:
		return 1, 6
	default:
		return 2, 3
	}
}

// RenderSurface receives the camera transform once per frame. Implementations
// are free to paint it however they like; the engine never touches pixels.
type RenderSurface interface {
	ApplyTransform(t Transform)
}

// AppearanceEffect is implemented by render surfaces that can visually focus
// one section while dimming the rest. Used by the rack-focus movement.
type AppearanceEffect interface {
	ApplyFocus(sectionID string)
	ClearFocus()
}

// AnchorResolver resolves a match-cut anchor to a canvas position by opaque
// section ID. The second return is false when the anchor cannot be located.
type AnchorResolver interface {
	AnchorPosition(sectionID string) (Position, bool)
}

// Announcer receives human-readable movement descriptions. Live-region
// semantics: a new message replaces the previous one, nothing is queued.
type Announcer interface {
	Announce(message string)
}

// Unsubscribe removes a previously registered listener.
type Unsubscribe func()

// Lerp performs linear interpolation between a and b.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// clamp restricts v to [lo, hi].
func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(v, hi))
}
