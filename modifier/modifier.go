// Package modifier holds keyboard modifiers down across a typed sequence,
// used by ladder mode which types its whole line with shift held.
package modifier

import (
	"sync"

	"github.com/micmonay/keybd_event"
)

var (
	kb     keybd_event.KeyBonding
	kbOnce sync.Once
	kbErr  error
)

func initKB() error {
	kbOnce.Do(func() {
		kb, kbErr = keybd_event.NewKeyBonding()
		if kbErr == nil {
			kb.HasSHIFT(true)
		}
	})
	return kbErr
}

// HoldShift presses shift and leaves it held until ReleaseShift.
func HoldShift() error {
	if err := initKB(); err != nil {
		return err
	}
	return kb.Press()
}

// ReleaseShift lifts the shift press from HoldShift.
func ReleaseShift() error {
	if err := initKB(); err != nil {
		return err
	}
	return kb.Release()
}
