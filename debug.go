package vantage

import (
	"fmt"
	"io"
	"os"
	"time"
)

// DebugTracker wraps an Orchestrator step with stderr timing output, in the
// same spirit as a frame profiler: enable it while chasing a slow tick, leave
// it off otherwise.
type DebugTracker struct {
	enabled bool
	every   int
	tick    int
	out     io.Writer
}

// NewDebugTracker prints stats every `every` ticks when enabled.
func NewDebugTracker(enabled bool, every int) *DebugTracker {
	if every <= 0 {
		every = 60
	}
	return &DebugTracker{enabled: enabled, every: every, out: os.Stderr}
}

// Track runs one orchestrator step and prints the timing breakdown on the
// configured cadence.
func (d *DebugTracker) Track(o *Orchestrator, nowMs float64) {
	if !d.enabled {
		o.Step(nowMs)
		return
	}

	start := time.Now()
	o.Step(nowMs)
	total := time.Since(start)

	d.tick++
	if d.tick%d.every != 0 {
		return
	}

	snapshot := o.Monitor().Snapshot()
	_, _ = fmt.Fprintf(d.out,
		"[vantage] step: %v | fps: %.1f (avg %.1f) | runs: %d | quality: %s | dropped: %d\n",
		total, snapshot.FPS, snapshot.AverageFPS, snapshot.ActiveAnimations,
		o.QualityLevel(), snapshot.DroppedFrames)
}
