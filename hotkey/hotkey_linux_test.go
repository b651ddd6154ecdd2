//go:build linux

package hotkey

import "testing"

func TestActionForCode(t *testing.T) {
	cases := []struct {
		code uint16
		want Action
	}{
		{keyTab, ActionType},
		{keyCapsLock, ActionCycleCase},
		{keyLShift, ActionCycleContent},
		{keyRShift, ActionCycleContent},
		{keyLCtrl, ActionCycleSpeed},
		{keyRCtrl, ActionCycleSpeed},
		{keyLAlt, ActionCycleStyle},
		{keyRAlt, ActionCycleStyle},
		{keyF10, ActionToggleConsole},
		{keyEsc, ActionQuit},
	}
	for _, c := range cases {
		got, ok := actionForCode(c.code)
		if !ok || got != c.want {
			t.Errorf("actionForCode(%d) = %v, %v; want %v", c.code, got, ok, c.want)
		}
	}

	// Unbound keys are ignored.
	if _, ok := actionForCode(30); ok { // KEY_A
		t.Error("KEY_A should not map to an action")
	}
}
