package vantage

import "testing"

// recordingGestures collects every callback a recognizer fires.
type recordingGestures struct {
	starts []GestureState
	deltas []GestureDelta
	ends   []GestureState
	taps   []Vec2
}

func newRecognizerWithRecorder(panSens, zoomSens float64) (*GestureRecognizer, *recordingGestures) {
	rec := &recordingGestures{}
	g := NewGestureRecognizer(panSens, zoomSens)
	g.OnGestureStart = func(s GestureState) { rec.starts = append(rec.starts, s) }
	g.OnGestureDelta = func(d GestureDelta) { rec.deltas = append(rec.deltas, d) }
	g.OnGestureEnd = func(s GestureState) { rec.ends = append(rec.ends, s) }
	g.OnTap = func(at Vec2) { rec.taps = append(rec.taps, at) }
	return g, rec
}

func TestPanDelta(t *testing.T) {
	// Pan start at (100,100), move to (150,120), sensitivity 1.0.
	g, rec := newRecognizerWithRecorder(1.0, 1.0)

	g.ProcessTouches([]Vec2{{X: 100, Y: 100}}, 0)
	g.ProcessTouches([]Vec2{{X: 150, Y: 120}}, 16)

	if len(rec.starts) != 1 {
		t.Fatalf("starts = %d, want 1", len(rec.starts))
	}
	if rec.starts[0].Kind != GesturePan {
		t.Errorf("kind = %s, want pan", rec.starts[0].Kind)
	}
	if len(rec.deltas) != 1 {
		t.Fatalf("deltas = %d, want 1", len(rec.deltas))
	}
	d := rec.deltas[0]
	if d.X != 50 || d.Y != 20 || d.Scale != 1.0 || d.CenterX != 150 || d.CenterY != 120 {
		t.Errorf("delta = %+v, want {50 20 1 150 120}", d)
	}
}

func TestPanDeltasAreIncremental(t *testing.T) {
	g, rec := newRecognizerWithRecorder(1.0, 1.0)

	g.ProcessTouches([]Vec2{{X: 0, Y: 0}}, 0)
	g.ProcessTouches([]Vec2{{X: 10, Y: 0}}, 16)
	g.ProcessTouches([]Vec2{{X: 30, Y: 0}}, 32)

	if len(rec.deltas) != 2 {
		t.Fatalf("deltas = %d, want 2", len(rec.deltas))
	}
	if rec.deltas[0].X != 10 || rec.deltas[1].X != 20 {
		t.Errorf("deltas = %g, %g, want 10, 20", rec.deltas[0].X, rec.deltas[1].X)
	}
}

func TestPanSensitivityScalesDeltas(t *testing.T) {
	g, rec := newRecognizerWithRecorder(2.0, 1.0)
	g.ProcessTouches([]Vec2{{X: 0, Y: 0}}, 0)
	g.ProcessTouches([]Vec2{{X: 10, Y: 5}}, 16)
	if rec.deltas[0].X != 20 || rec.deltas[0].Y != 10 {
		t.Errorf("delta = %+v, want {20 10}", rec.deltas[0])
	}
}

func TestPinchScaleAndCenter(t *testing.T) {
	// Touches (100,100)/(200,100) -> (50,100)/(250,100): distance doubles,
	// center stays at (150,100).
	g, rec := newRecognizerWithRecorder(1.0, 1.0)

	g.ProcessTouches([]Vec2{{X: 100, Y: 100}, {X: 200, Y: 100}}, 0)
	g.ProcessTouches([]Vec2{{X: 50, Y: 100}, {X: 250, Y: 100}}, 16)

	if len(rec.starts) != 1 || rec.starts[0].Kind != GestureZoom {
		t.Fatalf("starts = %+v, want one zoom start", rec.starts)
	}
	if rec.starts[0].InitialPinchDistance != 100 {
		t.Errorf("initial distance = %g, want 100", rec.starts[0].InitialPinchDistance)
	}
	if len(rec.deltas) != 1 {
		t.Fatalf("deltas = %d, want 1", len(rec.deltas))
	}
	d := rec.deltas[0]
	if !approxEqual(d.Scale, 2.0, 1e-9) {
		t.Errorf("scale = %g, want 2.0", d.Scale)
	}
	if d.CenterX != 150 || d.CenterY != 100 {
		t.Errorf("center = (%g, %g), want (150, 100)", d.CenterX, d.CenterY)
	}
	if d.X != 0 || d.Y != 0 {
		t.Errorf("pan component = (%g, %g), want (0, 0)", d.X, d.Y)
	}
}

func TestPinchZoomSensitivityPower(t *testing.T) {
	// With zoomSensitivity 0.5, a 4x distance change emits sqrt(4) = 2.
	g, rec := newRecognizerWithRecorder(1.0, 0.5)

	g.ProcessTouches([]Vec2{{X: 0, Y: 0}, {X: 100, Y: 0}}, 0)
	g.ProcessTouches([]Vec2{{X: 0, Y: 0}, {X: 400, Y: 0}}, 16)

	if !approxEqual(rec.deltas[0].Scale, 2.0, 1e-9) {
		t.Errorf("scale = %g, want 2.0", rec.deltas[0].Scale)
	}
}

func TestPinchPanWhileZooming(t *testing.T) {
	g, rec := newRecognizerWithRecorder(1.0, 1.0)

	g.ProcessTouches([]Vec2{{X: 100, Y: 100}, {X: 200, Y: 100}}, 0)
	// Both fingers translate +30 in X while spreading.
	g.ProcessTouches([]Vec2{{X: 110, Y: 100}, {X: 250, Y: 100}}, 16)

	d := rec.deltas[0]
	if !approxEqual(d.X, 30, 1e-9) {
		t.Errorf("center pan X = %g, want 30", d.X)
	}
	if !approxEqual(d.Scale, 1.4, 1e-9) {
		t.Errorf("scale = %g, want 1.4", d.Scale)
	}
}

func TestZeroTouchesNeverStartsGesture(t *testing.T) {
	g, rec := newRecognizerWithRecorder(1.0, 1.0)

	g.ProcessTouches(nil, 0)
	g.ProcessTouches([]Vec2{}, 16)

	if len(rec.starts) != 0 {
		t.Errorf("starts = %d, want 0 for empty touch lists", len(rec.starts))
	}
	if g.State().IsActive {
		t.Error("state active after empty events")
	}
}

func TestMoreThanTwoTouchesIgnored(t *testing.T) {
	g, rec := newRecognizerWithRecorder(1.0, 1.0)

	g.ProcessTouches([]Vec2{{X: 0, Y: 0}}, 0)
	g.ProcessTouches([]Vec2{{X: 1, Y: 1}, {X: 2, Y: 2}, {X: 3, Y: 3}}, 16)

	// Three touches: no new events, pan still active.
	if len(rec.starts) != 1 {
		t.Errorf("starts = %d, want 1", len(rec.starts))
	}
	if !g.State().IsActive || g.State().Kind != GesturePan {
		t.Errorf("state = %+v, want active pan", g.State())
	}
}

func TestTapClassification(t *testing.T) {
	g, rec := newRecognizerWithRecorder(1.0, 1.0)

	// Short, nearly motionless touch: a tap.
	g.ProcessTouches([]Vec2{{X: 50, Y: 50}}, 0)
	g.ProcessTouches([]Vec2{{X: 52, Y: 51}}, 50)
	g.ProcessTouches(nil, 100)

	if len(rec.taps) != 1 {
		t.Fatalf("taps = %d, want 1", len(rec.taps))
	}
	if rec.taps[0].X != 52 || rec.taps[0].Y != 51 {
		t.Errorf("tap at %+v, want {52 51}", rec.taps[0])
	}
}

func TestLongPressIsNotTap(t *testing.T) {
	g, rec := newRecognizerWithRecorder(1.0, 1.0)

	g.ProcessTouches([]Vec2{{X: 50, Y: 50}}, 0)
	g.ProcessTouches(nil, 400) // held past the tap duration threshold

	if len(rec.taps) != 0 {
		t.Errorf("taps = %d, want 0 for a long press", len(rec.taps))
	}
}

func TestBigMovementIsNotTap(t *testing.T) {
	g, rec := newRecognizerWithRecorder(1.0, 1.0)

	g.ProcessTouches([]Vec2{{X: 50, Y: 50}}, 0)
	g.ProcessTouches([]Vec2{{X: 150, Y: 50}}, 50)
	g.ProcessTouches(nil, 100)

	if len(rec.taps) != 0 {
		t.Errorf("taps = %d, want 0 for a swipe", len(rec.taps))
	}
}

func TestRapidCyclesAreIndependentGestures(t *testing.T) {
	g, rec := newRecognizerWithRecorder(1.0, 1.0)

	// Three start/end cycles less than 200ms apart each.
	for i := 0; i < 3; i++ {
		ts := float64(i) * 120
		g.ProcessTouches([]Vec2{{X: 10, Y: 10}}, ts)
		g.ProcessTouches(nil, ts+60)
	}

	if g.GestureCount() != 3 {
		t.Errorf("GestureCount = %d, want 3", g.GestureCount())
	}
	if len(rec.starts) != 3 || len(rec.ends) != 3 {
		t.Errorf("starts/ends = %d/%d, want 3/3", len(rec.starts), len(rec.ends))
	}
}

func TestPanPromotedToPinch(t *testing.T) {
	g, rec := newRecognizerWithRecorder(1.0, 1.0)

	g.ProcessTouches([]Vec2{{X: 100, Y: 100}}, 0)
	g.ProcessTouches([]Vec2{{X: 100, Y: 100}, {X: 200, Y: 100}}, 16)

	if len(rec.ends) != 1 {
		t.Errorf("ends = %d, want 1 (pan finalized)", len(rec.ends))
	}
	if g.State().Kind != GestureZoom {
		t.Errorf("kind = %s, want zoom", g.State().Kind)
	}
}

func TestPinchDowngradedToPan(t *testing.T) {
	g, _ := newRecognizerWithRecorder(1.0, 1.0)

	g.ProcessTouches([]Vec2{{X: 100, Y: 100}, {X: 200, Y: 100}}, 0)
	g.ProcessTouches([]Vec2{{X: 120, Y: 100}}, 16)

	if g.State().Kind != GesturePan || !g.State().IsActive {
		t.Errorf("state = %+v, want active pan after losing a finger", g.State())
	}
}

func TestGestureDurationTracked(t *testing.T) {
	g, rec := newRecognizerWithRecorder(1.0, 1.0)

	g.ProcessTouches([]Vec2{{X: 0, Y: 0}}, 100)
	g.ProcessTouches([]Vec2{{X: 50, Y: 0}}, 200)
	g.ProcessTouches(nil, 350)

	if rec.ends[0].DurationMs != 250 {
		t.Errorf("duration = %g, want 250", rec.ends[0].DurationMs)
	}
}
