// Package vantage is a 2D spatial canvas navigation and camera movement
// engine: it keeps a virtual camera position over a logical content grid,
// animates transitions between positions as named camera movements
// (pan-tilt, zoom, dolly-zoom, rack-focus, match-cut), and reconciles the
// animation against a real-time performance budget.
//
// # Quick start
//
// Build an [Orchestrator] from a [Config], attach it to an Ebitengine window
// through a [Driver], and navigate:
//
//	cfg := vantage.DefaultConfig()
//	sections := vantage.NewSectionRegistry(vantage.Layout2x3,
//		vantage.Rect{Width: 3000, Height: 2000})
//	sections.Add(vantage.Section{ID: "hero", Name: "Hero", Priority: 10})
//
//	o, err := vantage.NewOrchestrator(cfg, nil, nil, sections, nil)
//	if err != nil {
//		log.Fatal(err)
//	}
//	d := vantage.NewDriver(o)
//	if err := vantage.Run(d, vantage.RunConfig{Title: "Portfolio"}); err != nil {
//		log.Fatal(err)
//	}
//
// # Architecture
//
// The engine is a single-writer cooperative loop. Input sources (the
// [GestureRecognizer] for touch, the [AccessibilityController] for
// keyboard, and direct [Orchestrator.RequestMovement] calls) only enqueue
// intents. [Orchestrator.Step] runs once per host frame and is the sole
// place the camera position mutates: the [PerformanceMonitor] records the
// frame first, intents drain, the [Scheduler] advances active
// [AnimationRun] interpolations (tweened via [gween]), the result is
// clamped to the configured [Constraints], and the [Transform] is published
// to the render surface exactly once.
//
// Sustained poor frame timing walks the [QualityManager] down its five
// levels one step at a time; each level caps movement durations and may
// force probabilistic frame skipping. That degraded smoothness is the only
// externally visible failure mode: every runtime error (out-of-bounds
// targets, missing match-cut anchors, the dolly-zoom one-shot guard, the
// concurrency cap) recovers locally with a logged warning.
//
// [gween]: https://github.com/tanema/gween
package vantage
