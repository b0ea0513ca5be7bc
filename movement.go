package vantage

import "log"

// MovementConfig is the per-kind animation recipe. The quality manager may
// override fields before execution (duration caps, forced frame skip).
type MovementConfig struct {
	DurationMs     float64
	Easing         EasingID
	UseGPUHint     bool
	AllowFrameSkip bool
}

// ConfigFor returns the base config for a movement kind, before quality
// overrides. A closed switch rather than a strategy hierarchy: the kind set
// is fixed and each entry is pure data.
func ConfigFor(kind MovementKind) MovementConfig {
	switch kind {
	case MovePanTilt:
		return MovementConfig{DurationMs: 800, Easing: EaseOutQuad, UseGPUHint: true, AllowFrameSkip: true}
	case MoveZoomIn:
		return MovementConfig{DurationMs: 600, Easing: EaseOutSine, UseGPUHint: true, AllowFrameSkip: true}
	case MoveZoomOut:
		return MovementConfig{DurationMs: 600, Easing: EaseOutSine, UseGPUHint: true, AllowFrameSkip: true}
	case MoveDollyZoom:
		return MovementConfig{DurationMs: 1400, Easing: EaseInOutCubic, UseGPUHint: true, AllowFrameSkip: false}
	case MoveRackFocus:
		return MovementConfig{DurationMs: 400, Easing: EaseLinear, UseGPUHint: false, AllowFrameSkip: false}
	case MoveMatchCut:
		return MovementConfig{DurationMs: 1000, Easing: EaseAthletic, UseGPUHint: true, AllowFrameSkip: false}
	default:
		return MovementConfig{DurationMs: 800, Easing: EaseLinear, UseGPUHint: true, AllowFrameSkip: true}
	}
}

// MovementRequest describes one requested camera movement. SectionID names
// the rack-focus target or the match-cut "to" anchor; FromSectionID names
// the match-cut "from" anchor.
type MovementRequest struct {
	Kind          MovementKind
	Target        Position
	SectionID     string
	FromSectionID string
}

const (
	// dollyCompensationK scales the parallax term (1/scale - 1) * k that is
	// added to both axes during a dolly-zoom.
	dollyCompensationK = 40.0

	// matchCutFallbackDX/DY offset the pan-tilt fallback when match-cut
	// anchors cannot be located.
	matchCutFallbackDX = 120.0
	matchCutFallbackDY = 80.0
)

// MovementController dispatches over movement kinds, applies quality
// overrides, enforces the dolly-zoom one-shot guard and the concurrency cap,
// and hands execution to the Scheduler. All rejections are logged warnings
// that resolve the request immediately; none of them surface as errors.
type MovementController struct {
	sched   *Scheduler
	quality *QualityManager

	concurrencyCap int
	dollyUsed      bool

	appearance AppearanceEffect
	anchors    AnchorResolver
}

// NewMovementController wires a controller to its scheduler and quality
// manager. cap <= 0 gets the default of 3 concurrent animations.
func NewMovementController(sched *Scheduler, quality *QualityManager, cap int) *MovementController {
	if cap <= 0 {
		cap = 3
	}
	return &MovementController{
		sched:          sched,
		quality:        quality,
		concurrencyCap: cap,
	}
}

// SetAppearanceEffect attaches the rack-focus style pass implementation.
func (c *MovementController) SetAppearanceEffect(effect AppearanceEffect) {
	c.appearance = effect
}

// SetAnchorResolver attaches the match-cut anchor lookup.
func (c *MovementController) SetAnchorResolver(resolver AnchorResolver) {
	c.anchors = resolver
}

// DollyZoomUsed reports whether the one-shot dolly-zoom has executed.
func (c *MovementController) DollyZoomUsed() bool {
	return c.dollyUsed
}

// Execute runs one movement from current toward the request's target. The
// update callback receives each interpolated position; the completion
// callback fires exactly once, including for requests rejected by the
// one-shot guard or the concurrency cap (which produce no run and no
// position change). A new request supersedes any in-flight run of the same
// kind: the stale run is cancelled before the replacement starts, so two
// conflicting requests never interpolate against each other. The returned
// run is nil when no animation was created.
func (c *MovementController) Execute(req MovementRequest, current Position,
	onUpdate func(progress float64, pos Position), onComplete func()) *AnimationRun {

	if req.Kind == MoveRackFocus {
		c.executeRackFocus(req)
		if onComplete != nil {
			onComplete()
		}
		return nil
	}

	if req.Kind == MoveDollyZoom && c.dollyUsed {
		log.Printf("vantage: dolly-zoom already executed this session, ignoring request")
		if onComplete != nil {
			onComplete()
		}
		return nil
	}

	kind := req.Kind
	target := req.Target

	if kind == MoveMatchCut {
		kind, target = c.resolveMatchCut(req, current)
	}

	// Superseding runs before the cap check frees the slot the stale run held.
	if n := c.sched.CancelKind(kind); n > 0 {
		log.Printf("vantage: %s request superseded %d in-flight run(s) of the same kind", kind, n)
	}

	if c.sched.ActiveCount() >= c.concurrencyCap {
		log.Printf("vantage: %s rejected, %d animations already running (cap %d)",
			req.Kind, c.sched.ActiveCount(), c.concurrencyCap)
		if onComplete != nil {
			onComplete()
		}
		return nil
	}

	cfg := ConfigFor(kind)
	cfg = c.applyQualityOverrides(cfg)

	update := onUpdate
	if req.Kind == MoveDollyZoom {
		c.dollyUsed = true
		update = dollyCompensated(onUpdate)
	}

	run := NewRun(kind, current, target, cfg, update, onComplete)
	c.sched.Start(run)
	return run
}

// executeRackFocus performs the non-positional focus pass. An empty section
// ID clears the current focus treatment.
func (c *MovementController) executeRackFocus(req MovementRequest) {
	if c.appearance == nil {
		log.Printf("vantage: rack-focus requested but no appearance effect is attached")
		return
	}
	if req.SectionID == "" {
		c.appearance.ClearFocus()
		return
	}
	c.appearance.ApplyFocus(req.SectionID)
}

// resolveMatchCut computes the match-cut target from the two shared anchors.
// When either anchor is missing it falls back to a pan-tilt from the current
// position offset by a fixed delta, exactly preserving the fallback contract.
func (c *MovementController) resolveMatchCut(req MovementRequest, current Position) (MovementKind, Position) {
	if c.anchors != nil {
		from, okFrom := c.anchors.AnchorPosition(req.FromSectionID)
		to, okTo := c.anchors.AnchorPosition(req.SectionID)
		if okFrom && okTo {
			// Move the camera so the "to" anchor lands at the screen offset
			// the "from" anchor currently occupies.
			return MoveMatchCut, Position{
				X:     to.X - (from.X - current.X),
				Y:     to.Y - (from.Y - current.Y),
				Scale: current.Scale,
			}
		}
	}
	log.Printf("vantage: match-cut anchors %q/%q not found, falling back to pan-tilt",
		req.FromSectionID, req.SectionID)
	return MovePanTilt, Position{
		X:     current.X + matchCutFallbackDX,
		Y:     current.Y + matchCutFallbackDY,
		Scale: current.Scale,
	}
}

// applyQualityOverrides caps the duration and forces frame skipping or
// drops the GPU hint according to the current optimization bundle.
func (c *MovementController) applyQualityOverrides(cfg MovementConfig) MovementConfig {
	if c.quality == nil {
		return cfg
	}
	bundle := c.quality.Bundle()
	if bundle.MaxDurationMs > 0 && cfg.DurationMs > bundle.MaxDurationMs {
		cfg.DurationMs = bundle.MaxDurationMs
	}
	if bundle.ForceFrameSkip {
		cfg.AllowFrameSkip = true
	}
	if !bundle.GPUHint {
		cfg.UseGPUHint = false
	}
	return cfg
}

// dollyCompensated wraps an update callback with the parallax compensation
// term that produces the dolly-zoom's perspective-shift look. Scale and
// translation interpolate together; the compensation is added to both axes.
func dollyCompensated(onUpdate func(progress float64, pos Position)) func(float64, Position) {
	if onUpdate == nil {
		return nil
	}
	return func(progress float64, pos Position) {
		if pos.Scale != 0 {
			comp := (1/pos.Scale - 1) * dollyCompensationK
			pos.X += comp
			pos.Y += comp
		}
		onUpdate(progress, pos)
	}
}
