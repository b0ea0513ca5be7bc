package vantage

import (
	"fmt"
	"log"
	"time"
)

// Command is a discrete keyboard navigation command.
type Command uint8

const (
	CmdMoveLeft Command = iota
	CmdMoveRight
	CmdMoveUp
	CmdMoveDown
	CmdZoomIn
	CmdZoomOut
	CmdResetView
)

// String returns the command name used in logs.
func (c Command) String() string {
	switch c {
	case CmdMoveLeft:
		return "move-left"
	case CmdMoveRight:
		return "move-right"
	case CmdMoveUp:
		return "move-up"
	case CmdMoveDown:
		return "move-down"
	case CmdZoomIn:
		return "zoom-in"
	case CmdZoomOut:
		return "zoom-out"
	case CmdResetView:
		return "reset-view"
	default:
		return "unknown"
	}
}

// CommandTarget is what the accessibility controller drives. The orchestrator
// implements it; keyboard commands go through the exact same delta contract
// as gestures, which guarantees movement parity between input modes.
type CommandTarget interface {
	ApplyDelta(d GestureDelta)
	ResetView()
	Position() Position
}

// LocationDescriber supplies optional spatial context for announcements,
// e.g. "Currently viewing Focus section, top-left of canvas".
type LocationDescriber interface {
	DescribeLocation(pos Position) (string, bool)
}

const (
	defaultPanStepPx      = 100.0
	defaultZoomStepFactor = 1.25
	defaultResponseBudget = 100 * time.Millisecond
)

// AccessibilityController maps keyboard commands onto gesture-equivalent
// position deltas and emits human-readable announcements for each successful
// command. Exceeding the response budget is logged, never fatal.
type AccessibilityController struct {
	target    CommandTarget
	announcer Announcer
	locator   LocationDescriber

	announcementsEnabled bool
	panStep              float64
	zoomFactor           float64
	responseBudget       time.Duration

	// now is injectable for deterministic budget tests.
	now func() time.Time
}

// NewAccessibilityController wires the controller to its command target.
// The announcer may be nil, which disables announcements.
func NewAccessibilityController(target CommandTarget, announcer Announcer) *AccessibilityController {
	return &AccessibilityController{
		target:               target,
		announcer:            announcer,
		announcementsEnabled: announcer != nil,
		panStep:              defaultPanStepPx,
		zoomFactor:           defaultZoomStepFactor,
		responseBudget:       defaultResponseBudget,
		now:                  time.Now,
	}
}

// SetLocationDescriber attaches the spatial-context source.
func (a *AccessibilityController) SetLocationDescriber(l LocationDescriber) {
	a.locator = l
}

// SetAnnouncementsEnabled toggles announcements without detaching the announcer.
func (a *AccessibilityController) SetAnnouncementsEnabled(enabled bool) {
	a.announcementsEnabled = enabled && a.announcer != nil
}

// SetResponseBudget overrides the default 100ms command budget.
func (a *AccessibilityController) SetResponseBudget(d time.Duration) {
	if d > 0 {
		a.responseBudget = d
	}
}

// Handle executes one keyboard command and returns the announcement text
// (empty when announcements are disabled). Deltas are expressed in content
// space, identical to gesture deltas: "move left" shifts the content right
// so the camera travels left.
func (a *AccessibilityController) Handle(cmd Command) string {
	start := a.now()

	var msg string
	switch cmd {
	case CmdMoveLeft:
		a.target.ApplyDelta(GestureDelta{X: a.panStep, Scale: 1.0})
		msg = "Moved left"
	case CmdMoveRight:
		a.target.ApplyDelta(GestureDelta{X: -a.panStep, Scale: 1.0})
		msg = "Moved right"
	case CmdMoveUp:
		a.target.ApplyDelta(GestureDelta{Y: a.panStep, Scale: 1.0})
		msg = "Moved up"
	case CmdMoveDown:
		a.target.ApplyDelta(GestureDelta{Y: -a.panStep, Scale: 1.0})
		msg = "Moved down"
	case CmdZoomIn:
		a.target.ApplyDelta(GestureDelta{Scale: a.zoomFactor})
		msg = fmt.Sprintf("Zoomed in to %.0f%%", a.target.Position().Scale*100)
	case CmdZoomOut:
		a.target.ApplyDelta(GestureDelta{Scale: 1 / a.zoomFactor})
		msg = fmt.Sprintf("Zoomed out to %.0f%%", a.target.Position().Scale*100)
	case CmdResetView:
		a.target.ResetView()
		msg = "Reset view"
	default:
		log.Printf("vantage: unknown keyboard command %d", cmd)
		return ""
	}

	if a.locator != nil {
		if ctx, ok := a.locator.DescribeLocation(a.target.Position()); ok {
			msg += ". " + ctx
		}
	}

	if a.announcementsEnabled {
		a.announcer.Announce(msg)
	}

	if elapsed := a.now().Sub(start); elapsed > a.responseBudget {
		log.Printf("vantage: %s took %v, over the %v response budget", cmd, elapsed, a.responseBudget)
	}

	if !a.announcementsEnabled {
		return ""
	}
	return msg
}
