//go:build !linux

package hotkey

import (
	"golang.design/x/hotkey"
)

// Outside Linux there is no raw evdev access, so plain unmodified keys like
// Tab or CapsLock cannot be grabbed globally. The controls register as
// Ctrl+Shift chords instead.
var chords = []struct {
	key    hotkey.Key
	action Action
}{
	{hotkey.KeyT, ActionType},
	{hotkey.KeyU, ActionCycleCase},
	{hotkey.KeyM, ActionCycleContent},
	{hotkey.KeyS, ActionCycleSpeed},
	{hotkey.KeyY, ActionCycleStyle},
	{hotkey.KeyH, ActionToggleConsole},
	{hotkey.KeyQ, ActionQuit},
}

type xListener struct {
	hks    []*hotkey.Hotkey
	events chan Action
}

func New() Listener {
	return &xListener{
		events: make(chan Action, 8),
	}
}

func (h *xListener) Register() error {
	mods := []hotkey.Modifier{hotkey.ModCtrl, hotkey.ModShift}
	for _, c := range chords {
		hk := hotkey.New(mods, c.key)
		if err := hk.Register(); err != nil {
			h.Unregister()
			return err
		}
		h.hks = append(h.hks, hk)

		action := c.action
		go func(hk *hotkey.Hotkey) {
			for {
				<-hk.Keydown()
				select {
				case h.events <- action:
				default:
				}
			}
		}(hk)
	}
	return nil
}

func (h *xListener) Unregister() {
	for _, hk := range h.hks {
		hk.Unregister()
	}
	h.hks = nil
}

func (h *xListener) Events() <-chan Action {
	return h.events
}

// Help describes the active key bindings for display.
func Help() string {
	return "Ctrl+Shift+ T: type  U: case  M: content  S: speed  Y: style  H: console  Q: quit"
}

func Diagnose() (string, error) {
	return "hotkey support available (Ctrl+Shift chords)", nil
}
