// Package input turns SDL2 events into viewer actions.
package input

import (
	"github.com/veandco/go-sdl2/sdl"
)

// Action is something the viewer was asked to do this frame.
type Action int

const (
	ActionNone Action = iota
	ActionQuit
	ActionRegenerate
	ActionToggleMode
	ActionToggleBounds
	ActionScreenshot
)

func (a Action) String() string {
	switch a {
	case ActionQuit:
		return "quit"
	case ActionRegenerate:
		return "regenerate"
	case ActionToggleMode:
		return "toggle-mode"
	case ActionToggleBounds:
		return "toggle-bounds"
	case ActionScreenshot:
		return "screenshot"
	default:
		return "none"
	}
}

// Bindings maps keys to actions.
type Bindings map[sdl.Scancode]Action

// DefaultBindings returns the viewer key map.
func DefaultBindings() Bindings {
	return Bindings{
		sdl.SCANCODE_ESCAPE: ActionQuit,
		sdl.SCANCODE_R:      ActionRegenerate,
		sdl.SCANCODE_TAB:    ActionToggleMode,
		sdl.SCANCODE_B:      ActionToggleBounds,
		sdl.SCANCODE_F12:    ActionScreenshot,
	}
}

// Input collects the actions and resizes of one frame.
type Input struct {
	bindings Bindings
	actions  []Action

	resized       bool
	width, height int
}

// New creates an input handler with the given bindings.
func New(bindings Bindings) *Input {
	return &Input{
		bindings: bindings,
		actions:  make([]Action, 0, 4),
	}
}

// Update polls pending SDL events. Key repeats are ignored.
func (i *Input) Update() {
	i.actions = i.actions[:0]
	i.resized = false

	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			i.actions = append(i.actions, ActionQuit)

		case *sdl.WindowEvent:
			if e.Event == sdl.WINDOWEVENT_SIZE_CHANGED {
				i.resized = true
				i.width, i.height = int(e.Data1), int(e.Data2)
			}

		case *sdl.KeyboardEvent:
			if e.Type != sdl.KEYDOWN || e.Repeat != 0 {
				continue
			}
			if a, ok := i.bindings[e.Keysym.Scancode]; ok {
				i.actions = append(i.actions, a)
			}
		}
	}
}

// Actions returns the actions from the last Update, in event order.
func (i *Input) Actions() []Action {
	return i.actions
}

// Has reports whether a was requested in the last Update.
func (i *Input) Has(a Action) bool {
	for _, got := range i.actions {
		if got == a {
			return true
		}
	}
	return false
}

// Resized returns the new window size if it changed during the last Update.
func (i *Input) Resized() (width, height int, ok bool) {
	return i.width, i.height, i.resized
}
