package vantage

import (
	"fmt"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Driver hosts the engine on Ebitengine: it polls pointer, touch, and
// keyboard state each tick, steps the orchestrator, and paints the published
// transform. It doubles as the engine's render surface; apps that need
// section-level drawing (rack-focus treatments) draw through ContentDraw.
type Driver struct {
	o *Orchestrator

	// Content is the pre-rendered canvas image the camera pans over. Apps
	// needing per-section treatments set ContentDraw instead.
	Content *ebiten.Image

	// ContentDraw, when set, paints the content under the given transform
	// and supersedes Content.
	ContentDraw func(screen *ebiten.Image, t Transform)

	// ShowFPS draws the FPS/quality overlay in the corner.
	ShowFPS bool

	transform Transform
	start     time.Time

	touchIDs []ebiten.TouchID
	touchBuf []Vec2

	screenW, screenH int
}

// NewDriver wires a driver to an orchestrator and registers itself as the
// render surface.
func NewDriver(o *Orchestrator) *Driver {
	d := &Driver{
		o:         o,
		start:     time.Now(),
		transform: Transform{Scale: 1},
	}
	o.SetSurface(d)
	return d
}

// ApplyTransform implements RenderSurface.
func (d *Driver) ApplyTransform(t Transform) {
	d.transform = t
}

// Transform returns the last published camera transform.
func (d *Driver) Transform() Transform {
	return d.transform
}

// nowMs returns milliseconds since driver start, the engine's frame clock.
func (d *Driver) nowMs() float64 {
	return float64(time.Since(d.start)) / float64(time.Millisecond)
}

// Update implements ebiten.Game: one engine tick.
func (d *Driver) Update() error {
	ts := d.nowMs()

	d.pollTouches(ts)
	d.pollKeyboard()
	d.pollWheel()

	d.o.Step(ts)
	return nil
}

// pollTouches feeds the gesture recognizer the full active touch set. With
// no real touches, a held left mouse button acts as a single touch point, so
// desktop pointers drag the canvas the same way fingers do.
func (d *Driver) pollTouches(tsMs float64) {
	d.touchIDs = ebiten.AppendTouchIDs(d.touchIDs[:0])
	d.touchBuf = d.touchBuf[:0]

	for _, id := range d.touchIDs {
		x, y := ebiten.TouchPosition(id)
		d.touchBuf = append(d.touchBuf, Vec2{X: float64(x), Y: float64(y)})
	}

	if len(d.touchBuf) == 0 && ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		mx, my := ebiten.CursorPosition()
		d.touchBuf = append(d.touchBuf, Vec2{X: float64(mx), Y: float64(my)})
	}

	d.o.Gestures().ProcessTouches(d.touchBuf, tsMs)
}

// keyCommands maps just-pressed keys to accessibility commands. Arrows and
// WASD both navigate, matching the usual game bindings.
var keyCommands = map[ebiten.Key]Command{
	ebiten.KeyArrowLeft:  CmdMoveLeft,
	ebiten.KeyA:          CmdMoveLeft,
	ebiten.KeyArrowRight: CmdMoveRight,
	ebiten.KeyD:          CmdMoveRight,
	ebiten.KeyArrowUp:    CmdMoveUp,
	ebiten.KeyW:          CmdMoveUp,
	ebiten.KeyArrowDown:  CmdMoveDown,
	ebiten.KeyS:          CmdMoveDown,
	ebiten.KeyEqual:      CmdZoomIn,
	ebiten.KeyMinus:      CmdZoomOut,
	ebiten.KeyHome:       CmdResetView,
	ebiten.KeyR:          CmdResetView,
}

func (d *Driver) pollKeyboard() {
	for key, cmd := range keyCommands {
		if inpututil.IsKeyJustPressed(key) {
			d.o.Keyboard().Handle(cmd)
		}
	}
}

// pollWheel maps scroll wheel movement to zoom deltas through the same
// intent path as pinch gestures.
func (d *Driver) pollWheel() {
	_, wy := ebiten.Wheel()
	if wy == 0 {
		return
	}
	mx, my := ebiten.CursorPosition()
	d.o.ApplyDelta(GestureDelta{
		Scale:   math.Pow(1.1, wy),
		CenterX: float64(mx),
		CenterY: float64(my),
	})
}

// Draw implements ebiten.Game: paints the content under the current camera
// transform and the optional FPS overlay.
func (d *Driver) Draw(screen *ebiten.Image) {
	t := d.transform

	switch {
	case d.ContentDraw != nil:
		d.ContentDraw(screen, t)
	case d.Content != nil:
		var op ebiten.DrawImageOptions
		op.GeoM.Scale(t.Scale, t.Scale)
		op.GeoM.Translate(t.TranslateX, t.TranslateY)
		screen.DrawImage(d.Content, &op)
	}

	if d.ShowFPS {
		snapshot := d.o.Monitor().Snapshot()
		ebitenutil.DebugPrint(screen, fmt.Sprintf(
			"FPS: %.1f (avg %.1f)\nQuality: %s\nRuns: %d",
			ebiten.ActualFPS(), snapshot.AverageFPS,
			d.o.QualityLevel(), snapshot.ActiveAnimations))
	}
}

// Layout implements ebiten.Game and forwards the viewport size to the engine.
func (d *Driver) Layout(outsideWidth, outsideHeight int) (int, int) {
	d.screenW, d.screenH = outsideWidth, outsideHeight
	d.o.SetViewport(float64(outsideWidth), float64(outsideHeight))
	return outsideWidth, outsideHeight
}

// RunConfig configures the Run convenience wrapper.
type RunConfig struct {
	Title         string
	Width, Height int
}

// Run opens a window and drives the engine until the window closes. For
// full control, implement ebiten.Game yourself and embed a Driver.
func Run(d *Driver, cfg RunConfig) error {
	if cfg.Width <= 0 {
		cfg.Width = 1280
	}
	if cfg.Height <= 0 {
		cfg.Height = 720
	}
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowTitle(cfg.Title)
	d.o.Start()
	defer d.o.Dispose()
	return ebiten.RunGame(d)
}
