package vantage

import (
	"bytes"
	"strings"
	"testing"
)

func TestTrackerDisabledStillSteps(t *testing.T) {
	o := newTestOrchestrator(t, wideConfig(), nil)

	ticks := 0
	o.OnPositionChange(func(Position) { ticks++ })

	var buf bytes.Buffer
	d := NewDebugTracker(false, 1)
	d.out = &buf

	d.Track(o, 0)
	d.Track(o, 16)

	if ticks != 2 {
		t.Errorf("ticks = %d, want 2 (Track always steps)", ticks)
	}
	if buf.Len() != 0 {
		t.Errorf("disabled tracker printed %q", buf.String())
	}
}

func TestTrackerPrintsOnCadence(t *testing.T) {
	o := newTestOrchestrator(t, wideConfig(), nil)

	var buf bytes.Buffer
	d := NewDebugTracker(true, 2)
	d.out = &buf

	d.Track(o, 0)
	if buf.Len() != 0 {
		t.Fatalf("printed before the cadence elapsed: %q", buf.String())
	}

	d.Track(o, 16)
	out := buf.String()
	if !strings.Contains(out, "[vantage] step:") {
		t.Fatalf("output = %q, want a step line", out)
	}

	d.Track(o, 32)
	d.Track(o, 48)
	if got := strings.Count(buf.String(), "\n"); got != 2 {
		t.Errorf("lines = %d after 4 ticks at every=2, want 2", got)
	}
}

func TestTrackerDefaultCadence(t *testing.T) {
	d := NewDebugTracker(true, 0)
	if d.every != 60 {
		t.Errorf("every = %d, want default 60", d.every)
	}
}
