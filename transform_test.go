package vantage

import (
	"math"
	"testing"
)

const epsilon = 1e-9

func approxEqual(a, b, eps float64) bool {
	return math.Abs(a-b) < eps
}

func testConstraints() Constraints {
	return Constraints{
		MinPosition: Vec2{X: 0, Y: 0},
		MaxPosition: Vec2{X: 3000, Y: 2000},
		MinScale:    0.5,
		MaxScale:    3.0,
	}
}

func TestValidateClampsScale(t *testing.T) {
	// Requesting scale 5.0 against [0.5, 3.0] clamps to 3.0.
	pos, clamped := Validate(Position{X: 0, Y: 0, Scale: 5.0}, testConstraints())
	if !clamped {
		t.Error("clamped = false, want true")
	}
	if pos.X != 0 || pos.Y != 0 || pos.Scale != 3.0 {
		t.Errorf("Validate = %+v, want {0 0 3}", pos)
	}
}

func TestValidateIdempotent(t *testing.T) {
	c := testConstraints()
	in := Position{X: 1500, Y: 900, Scale: 1.5}
	out, clamped := Validate(in, c)
	if clamped {
		t.Error("clamped = true for an in-bounds position")
	}
	if out != in {
		t.Errorf("Validate changed a valid position: %+v -> %+v", in, out)
	}
	// Validating the result again returns it unchanged.
	again, clamped2 := Validate(out, c)
	if clamped2 || again != out {
		t.Errorf("Validate not idempotent: %+v -> %+v", out, again)
	}
}

func TestValidateClampsPosition(t *testing.T) {
	tests := []struct {
		name string
		in   Position
		want Position
	}{
		{"below min", Position{X: -100, Y: -50, Scale: 1}, Position{X: 0, Y: 0, Scale: 1}},
		{"above max", Position{X: 9000, Y: 9000, Scale: 1}, Position{X: 3000, Y: 2000, Scale: 1}},
		{"scale floor", Position{X: 10, Y: 10, Scale: 0.1}, Position{X: 10, Y: 10, Scale: 0.5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, clamped := Validate(tt.in, testConstraints())
			if !clamped {
				t.Error("clamped = false, want true")
			}
			if got != tt.want {
				t.Errorf("Validate(%+v) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

func TestValidatePadding(t *testing.T) {
	c := testConstraints()
	c.Padding = 100
	pos, clamped := Validate(Position{X: 50, Y: 1990, Scale: 1}, c)
	if !clamped {
		t.Error("clamped = false, want true")
	}
	if pos.X != 100 || pos.Y != 1900 {
		t.Errorf("padded clamp = (%g, %g), want (100, 1900)", pos.X, pos.Y)
	}
}

func TestValidatePaddingCollapse(t *testing.T) {
	// Padding bigger than the range collapses to the center instead of
	// producing an inverted interval.
	c := Constraints{
		MaxPosition: Vec2{X: 100, Y: 100},
		MinScale:    0.5, MaxScale: 3,
		Padding: 80,
	}
	pos, _ := Validate(Position{X: 0, Y: 100, Scale: 1}, c)
	if pos.X != 50 || pos.Y != 50 {
		t.Errorf("collapsed clamp = (%g, %g), want (50, 50)", pos.X, pos.Y)
	}
}

func TestGridToCanvasRectLayouts(t *testing.T) {
	canvas := Rect{Width: 3000, Height: 2000}

	tests := []struct {
		name         string
		layout       GridLayout
		gx, gy       int
		wantX, wantY float64
	}{
		{"2x3 origin", Layout2x3, 0, 0, 500, 500},
		{"2x3 last", Layout2x3, 2, 1, 2500, 1500},
		{"3x2 origin", Layout3x2, 0, 0, 750, 1000.0 / 3},
		{"1x6 third", Layout1x6, 2, 0, 1250, 1000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pos := GridToCanvas(tt.gx, tt.gy, tt.layout, canvas)
			if !approxEqual(pos.X, tt.wantX, 1e-6) || !approxEqual(pos.Y, tt.wantY, 1e-6) {
				t.Errorf("GridToCanvas = (%g, %g), want (%g, %g)", pos.X, pos.Y, tt.wantX, tt.wantY)
			}
			if pos.Scale != 1.0 {
				t.Errorf("Scale = %g, want 1.0", pos.Scale)
			}
		})
	}
}

func TestGridToCanvasClampsCell(t *testing.T) {
	canvas := Rect{Width: 3000, Height: 2000}
	out := GridToCanvas(99, -5, Layout2x3, canvas)
	corner := GridToCanvas(2, 0, Layout2x3, canvas)
	if out != corner {
		t.Errorf("out-of-range cell = %+v, want clamped %+v", out, corner)
	}
}

func TestGridToCanvasCircular(t *testing.T) {
	canvas := Rect{Width: 3000, Height: 2000}
	// Index 0 sits at 12 o'clock: canvas center minus the ring radius in Y.
	pos := GridToCanvas(0, 0, LayoutCircular, canvas)
	radius := 2000.0 / 3
	if !approxEqual(pos.X, 1500, 1e-6) || !approxEqual(pos.Y, 1000-radius, 1e-6) {
		t.Errorf("circular[0] = (%g, %g), want (1500, %g)", pos.X, pos.Y, 1000-radius)
	}

	// All six cells are equidistant from the canvas center.
	for i := 0; i < 6; i++ {
		p := GridToCanvas(i, 0, LayoutCircular, canvas)
		d := Distance(Vec2{X: 1500, Y: 1000}, Vec2{X: p.X, Y: p.Y})
		if !approxEqual(d, radius, 1e-6) {
			t.Errorf("circular[%d] distance = %g, want %g", i, d, radius)
		}
	}
}

func TestRectContains(t *testing.T) {
	r := Rect{X: 10, Y: 20, Width: 100, Height: 50}
	if !r.Contains(10, 20) || !r.Contains(110, 70) {
		t.Error("edge points should be inside")
	}
	if !r.Contains(60, 45) {
		t.Error("interior point should be inside")
	}
	if r.Contains(9.9, 45) || r.Contains(60, 70.1) {
		t.Error("outside points should not be inside")
	}
}

func TestRectIntersects(t *testing.T) {
	a := Rect{X: 0, Y: 0, Width: 100, Height: 100}
	if !a.Intersects(Rect{X: 50, Y: 50, Width: 100, Height: 100}) {
		t.Error("overlapping rects should intersect")
	}
	// Sharing only an edge still counts.
	if !a.Intersects(Rect{X: 100, Y: 0, Width: 100, Height: 100}) {
		t.Error("edge-adjacent rects should intersect")
	}
	if a.Intersects(Rect{X: 101, Y: 0, Width: 100, Height: 100}) {
		t.Error("separated rects should not intersect")
	}
}

func TestDistance(t *testing.T) {
	d := Distance(Vec2{X: 100, Y: 100}, Vec2{X: 200, Y: 100})
	if !approxEqual(d, 100, epsilon) {
		t.Errorf("Distance = %g, want 100", d)
	}
	d = Distance(Vec2{X: 0, Y: 0}, Vec2{X: 3, Y: 4})
	if !approxEqual(d, 5, epsilon) {
		t.Errorf("Distance = %g, want 5", d)
	}
}

func TestCenter(t *testing.T) {
	c := Center(Vec2{X: 100, Y: 100}, Vec2{X: 200, Y: 100})
	if c.X != 150 || c.Y != 100 {
		t.Errorf("Center = %+v, want {150 100}", c)
	}
}

func TestTransformFor(t *testing.T) {
	// Camera centered on (1500, 1000) at scale 2 in a 1280x720 viewport.
	tr := TransformFor(Position{X: 1500, Y: 1000, Scale: 2}, 1280, 720)
	if tr.Scale != 2 {
		t.Errorf("Scale = %g, want 2", tr.Scale)
	}
	if !approxEqual(tr.TranslateX, 640-3000, epsilon) {
		t.Errorf("TranslateX = %g, want %g", tr.TranslateX, 640-3000.0)
	}
	if !approxEqual(tr.TranslateY, 360-2000, epsilon) {
		t.Errorf("TranslateY = %g, want %g", tr.TranslateY, 360-2000.0)
	}
}
