package vantage

import (
	"math/rand"

	"github.com/google/uuid"
	"github.com/tanema/gween"
)

// RunStatus is the lifecycle state of an AnimationRun.
type RunStatus uint8

const (
	RunPending RunStatus = iota
	RunRunning
	RunCompleted
	RunCancelled
)

// AnimationRun is one in-flight interpolation from one camera position to
// another. Runs are owned exclusively by the Scheduler; callers observe the
// interpolated position through the update callback only.
type AnimationRun struct {
	ID       uuid.UUID
	Kind     MovementKind
	Duration float64 // milliseconds
	From, To Position
	Progress float64
	Status   RunStatus

	tweenX, tweenY, tweenScale *gween.Tween
	elapsed                    float64 // milliseconds
	allowFrameSkip             bool

	onUpdate   func(progress float64, pos Position)
	onComplete func()
}

// SkipPolicy reports whether frame skipping is currently in force.
// The Scheduler consults it once per run per frame.
type SkipPolicy func() bool

// Scheduler advances a bounded set of concurrently progressing runs, one
// tick per host frame. It is not safe for concurrent use: the engine is a
// single-writer cooperative loop and the orchestrator is the only caller.
type Scheduler struct {
	runs []*AnimationRun

	// rng gates probabilistic frame skipping. Injectable so tests can seed it.
	rng      *rand.Rand
	skipProb float64

	skipPolicy SkipPolicy
}

// NewScheduler creates a Scheduler with the given frame-skip probability and
// RNG. A nil rng gets a default source; a nil policy never skips.
func NewScheduler(skipProb float64, rng *rand.Rand, policy SkipPolicy) *Scheduler {
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	if skipProb < 0 {
		skipProb = 0
	}
	if skipProb > 1 {
		skipProb = 1
	}
	return &Scheduler{
		rng:        rng,
		skipProb:   skipProb,
		skipPolicy: policy,
	}
}

// NewRun builds a pending run from a movement config. The run does not
// progress until handed to Start.
func NewRun(kind MovementKind, from, to Position, cfg MovementConfig,
	onUpdate func(progress float64, pos Position), onComplete func()) *AnimationRun {
	return &AnimationRun{
		ID:             uuid.New(),
		Kind:           kind,
		Duration:       cfg.DurationMs,
		From:           from,
		To:             to,
		Status:         RunPending,
		allowFrameSkip: cfg.AllowFrameSkip,
		onUpdate:       onUpdate,
		onComplete:     onComplete,
		tweenX:         newTween(from.X, to.X, cfg.DurationMs, cfg.Easing),
		tweenY:         newTween(from.Y, to.Y, cfg.DurationMs, cfg.Easing),
		tweenScale:     newTween(from.Scale, to.Scale, cfg.DurationMs, cfg.Easing),
	}
}

func newTween(from, to, durationMs float64, easing EasingID) *gween.Tween {
	seconds := float32(durationMs / 1000)
	if seconds <= 0 {
		seconds = 1e-6 // zero-duration runs finish on the first tick
	}
	return gween.New(float32(from), float32(to), seconds, EasingFunc(easing))
}

// Start registers the run with the frame loop. Pending runs become running;
// anything else is rejected and left untouched.
func (s *Scheduler) Start(run *AnimationRun) bool {
	if run == nil || run.Status != RunPending {
		return false
	}
	run.Status = RunRunning
	s.runs = append(s.runs, run)
	return true
}

// ActiveCount reports how many runs are currently progressing.
func (s *Scheduler) ActiveCount() int {
	return len(s.runs)
}

// Cancel stops the run with the given ID. Cancelled runs never invoke their
// completion callback. Returns false if no such run is active.
func (s *Scheduler) Cancel(id uuid.UUID) bool {
	for i, run := range s.runs {
		if run.ID == id {
			run.Status = RunCancelled
			s.runs = append(s.runs[:i], s.runs[i+1:]...)
			return true
		}
	}
	return false
}

// CancelKind cancels every active run of the given movement kind. Used when
// a new conflicting movement request targets the same logical destination.
func (s *Scheduler) CancelKind(kind MovementKind) int {
	n := 0
	kept := s.runs[:0]
	for _, run := range s.runs {
		if run.Kind == kind {
			run.Status = RunCancelled
			n++
			continue
		}
		kept = append(kept, run)
	}
	s.runs = kept
	return n
}

// CancelAll cancels every active run. Used on teardown.
func (s *Scheduler) CancelAll() {
	for _, run := range s.runs {
		run.Status = RunCancelled
	}
	s.runs = s.runs[:0]
}

// Step advances all active runs by dtMs milliseconds and fires their update
// callbacks. Completed runs fire exactly one final update carrying the exact
// target position (never the eased value, to avoid floating-point drift),
// then the completion callback, then release their slot.
//
// The surviving set is rebuilt into a fresh slice and committed before any
// callback fires, so completion handlers can reentrantly Start a follow-up
// run or Cancel a sibling without corrupting the frame loop.
func (s *Scheduler) Step(dtMs float64) {
	if len(s.runs) == 0 {
		return
	}
	dt := float32(dtMs / 1000)

	type frameUpdate struct {
		run       *AnimationRun
		progress  float64
		pos       Position
		completed bool
	}

	snapshot := s.runs
	kept := make([]*AnimationRun, 0, len(snapshot))
	updates := make([]frameUpdate, 0, len(snapshot))

	for _, run := range snapshot {
		run.elapsed += dtMs
		run.Progress = 1
		if run.Duration > 0 {
			run.Progress = clamp(run.elapsed/run.Duration, 0, 1)
		}

		x, doneX := run.tweenX.Update(dt)
		y, doneY := run.tweenY.Update(dt)
		sc, doneScale := run.tweenScale.Update(dt)

		if doneX && doneY && doneScale {
			run.Progress = 1
			run.Status = RunCompleted
			updates = append(updates, frameUpdate{run: run, progress: 1, pos: run.To, completed: true})
			continue
		}

		kept = append(kept, run)
		if s.shouldSkip(run) {
			// Skip the write-back but keep the run scheduled: the tweens above
			// already advanced, so smoothness is traded for CPU headroom.
			continue
		}
		updates = append(updates, frameUpdate{
			run:      run,
			progress: run.Progress,
			pos:      Position{X: float64(x), Y: float64(y), Scale: float64(sc)},
		})
	}
	s.runs = kept

	for _, u := range updates {
		if u.run.Status == RunCancelled {
			continue // cancelled by an earlier callback within this tick
		}
		if u.run.onUpdate != nil {
			u.run.onUpdate(u.progress, u.pos)
		}
		if u.completed && u.run.onComplete != nil {
			u.run.onComplete()
		}
	}
}

// shouldSkip gates the probabilistic frame skip: the run's config must allow
// it, the quality policy must request it, and the RNG roll must land.
func (s *Scheduler) shouldSkip(run *AnimationRun) bool {
	if !run.allowFrameSkip || s.skipPolicy == nil || !s.skipPolicy() {
		return false
	}
	return s.rng.Float64() < s.skipProb
}
