package vantage

// syntheticFrame is one frame's worth of injected input: the full set of
// active touch points plus any keyboard commands, exactly what the driver
// would have polled from real hardware.
type syntheticFrame struct {
	touches []Vec2
	cmds    []Command
}

// InputInjector queues synthetic touch and keyboard events that are consumed
// one frame at a time through the same code path as real input. Used by the
// scripted test runner and by integration tests that drive the engine
// headless.
type InputInjector struct {
	gestures *GestureRecognizer
	keyboard *AccessibilityController
	queue    []syntheticFrame
}

// NewInputInjector wires an injector to the engine's input sources.
func NewInputInjector(gestures *GestureRecognizer, keyboard *AccessibilityController) *InputInjector {
	return &InputInjector{gestures: gestures, keyboard: keyboard}
}

// InjectTouches queues one frame with the given active touch points.
func (in *InputInjector) InjectTouches(points ...Vec2) {
	in.queue = append(in.queue, syntheticFrame{touches: points})
}

// InjectRelease queues one frame with no touch points, ending any gesture.
func (in *InputInjector) InjectRelease() {
	in.queue = append(in.queue, syntheticFrame{})
}

// InjectKey queues a keyboard command on its own frame.
func (in *InputInjector) InjectKey(cmd Command) {
	in.queue = append(in.queue, syntheticFrame{cmds: []Command{cmd}})
}

// InjectDrag queues a full one-finger drag: touch at from, linearly
// interpolated moves, release at to. The sequence consumes `frames` frames;
// minimum is 2 (touch + release).
func (in *InputInjector) InjectDrag(from, to Vec2, frames int) {
	if frames < 2 {
		frames = 2
	}
	in.InjectTouches(from)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		in.InjectTouches(Vec2{
			X: Lerp(from.X, to.X, t),
			Y: Lerp(from.Y, to.Y, t),
		})
	}
	in.InjectTouches(to)
	in.InjectRelease()
}

// InjectPinch queues a two-finger pinch from the pair (a0, b0) to the pair
// (a1, b1) over the given number of frames, then releases both fingers.
func (in *InputInjector) InjectPinch(a0, b0, a1, b1 Vec2, frames int) {
	if frames < 2 {
		frames = 2
	}
	in.InjectTouches(a0, b0)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		in.InjectTouches(
			Vec2{X: Lerp(a0.X, a1.X, t), Y: Lerp(a0.Y, a1.Y, t)},
			Vec2{X: Lerp(b0.X, b1.X, t), Y: Lerp(b0.Y, b1.Y, t)},
		)
	}
	in.InjectTouches(a1, b1)
	in.InjectRelease()
}

// Pending reports how many injected frames remain.
func (in *InputInjector) Pending() int {
	return len(in.queue)
}

// Consume delivers the next queued frame to the input sources and returns
// true; returns false when the queue is empty. Call once per frame tick,
// before Orchestrator.Step.
func (in *InputInjector) Consume(tsMs float64) bool {
	if len(in.queue) == 0 {
		return false
	}
	frame := in.queue[0]
	in.queue = in.queue[1:]

	if in.gestures != nil {
		in.gestures.ProcessTouches(frame.touches, tsMs)
	}
	if in.keyboard != nil {
		for _, cmd := range frame.cmds {
			in.keyboard.Handle(cmd)
		}
	}
	return true
}
