// Package hotkey turns global key presses into the control actions that
// drive the autotyper while some other application holds focus.
package hotkey

// Action is one control triggered by a global key.
type Action int

const (
	// ActionType types the next line.
	ActionType Action = iota
	// ActionCycleCase flips the upper/lower case mode.
	ActionCycleCase
	// ActionCycleContent advances the content mode.
	ActionCycleContent
	// ActionCycleSpeed advances the speed preset.
	ActionCycleSpeed
	// ActionCycleStyle advances the typing style.
	ActionCycleStyle
	// ActionToggleConsole shows or hides the console window.
	ActionToggleConsole
	// ActionQuit exits the program.
	ActionQuit
)

func (a Action) String() string {
	switch a {
	case ActionType:
		return "type"
	case ActionCycleCase:
		return "cycle_case"
	case ActionCycleContent:
		return "cycle_content"
	case ActionCycleSpeed:
		return "cycle_speed"
	case ActionCycleStyle:
		return "cycle_style"
	case ActionToggleConsole:
		return "toggle_console"
	case ActionQuit:
		return "quit"
	}
	return "unknown"
}

// Listener reports global key presses as Actions.
type Listener interface {
	Register() error
	Unregister()
	Events() <-chan Action
}
