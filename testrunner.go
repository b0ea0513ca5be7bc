package vantage

import (
	"encoding/json"
	"fmt"
	"log"
)

// testStep represents a single action in a navigation test script.
type testStep struct {
	Action  string  `json:"action"`
	Label   string  `json:"label,omitempty"`
	FromX   float64 `json:"fromX,omitempty"`
	FromY   float64 `json:"fromY,omitempty"`
	ToX     float64 `json:"toX,omitempty"`
	ToY     float64 `json:"toY,omitempty"`
	Frames  int     `json:"frames,omitempty"`
	Key     string  `json:"key,omitempty"`
	Kind    string  `json:"kind,omitempty"`
	Section string  `json:"section,omitempty"`
}

// testScript is the top-level JSON structure for a test script.
type testScript struct {
	Steps []testStep `json:"steps"`
}

// TestRunner sequences injected gestures, keyboard commands, and movement
// requests across frames for automated navigation testing.
type TestRunner struct {
	steps     []testStep
	cursor    int
	waitCount int
	done      bool
}

// LoadTestScript parses a JSON test script.
func LoadTestScript(jsonData []byte) (*TestRunner, error) {
	var script testScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("parse test script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse test script: no steps")
	}
	return &TestRunner{steps: script.Steps}, nil
}

// Done reports whether all steps have been executed.
func (r *TestRunner) Done() bool {
	return r.done
}

// Step advances the runner by one frame: drains any injected input first,
// then starts the next scripted action. Call once per tick before
// Orchestrator.Step.
func (r *TestRunner) Step(o *Orchestrator, inj *InputInjector, tsMs float64) {
	if r.done {
		return
	}

	if inj.Consume(tsMs) {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}

	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	step := r.steps[r.cursor]
	r.cursor++

	switch step.Action {
	case "drag":
		inj.InjectDrag(Vec2{X: step.FromX, Y: step.FromY}, Vec2{X: step.ToX, Y: step.ToY}, step.Frames)
	case "pinch":
		// Symmetric pinch around the midpoint of from/to.
		mid := Center(Vec2{X: step.FromX, Y: step.FromY}, Vec2{X: step.ToX, Y: step.ToY})
		inj.InjectPinch(
			Vec2{X: step.FromX, Y: step.FromY}, Vec2{X: step.ToX, Y: step.ToY},
			Vec2{X: mid.X - (mid.X-step.FromX)*2, Y: mid.Y - (mid.Y-step.FromY)*2},
			Vec2{X: mid.X + (step.ToX-mid.X)*2, Y: mid.Y + (step.ToY-mid.Y)*2},
			step.Frames,
		)
	case "key":
		if cmd, ok := commandByName(step.Key); ok {
			inj.InjectKey(cmd)
		} else {
			log.Printf("vantage: test script: unknown key command %q", step.Key)
		}
	case "move":
		if kind, ok := movementByName(step.Kind); ok {
			o.Request(MovementRequest{
				Kind:      kind,
				Target:    Position{X: step.ToX, Y: step.ToY, Scale: 1.0},
				SectionID: step.Section,
			})
		} else {
			log.Printf("vantage: test script: unknown movement %q", step.Kind)
		}
	case "section":
		o.NavigateToSection(step.Section)
	case "wait":
		if step.Frames > 0 {
			r.waitCount = step.Frames - 1
		}
	default:
		log.Printf("vantage: test script: unknown action %q", step.Action)
	}
}

func commandByName(name string) (Command, bool) {
	for cmd := CmdMoveLeft; cmd <= CmdResetView; cmd++ {
		if cmd.String() == name {
			return cmd, true
		}
	}
	return 0, false
}

func movementByName(name string) (MovementKind, bool) {
	for kind := MovePanTilt; kind <= MoveMatchCut; kind++ {
		if kind.String() == name {
			return kind, true
		}
	}
	return 0, false
}
