//go:build windows

package typer

import (
	"fmt"
	"time"
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	user32        = windows.NewLazySystemDLL("user32.dll")
	procSendInput = user32.NewProc("SendInput")
)

const (
	inputKeyboard    = 1
	keyeventfKeyup   = 0x0002
	keyeventfUnicode = 0x0004
	vkReturn         = 0x0D
)

type keybdInput struct {
	wVk         uint16
	wScan       uint16
	dwFlags     uint32
	time        uint32
	dwExtraInfo uintptr
}

type winInput struct {
	inputType uint32
	ki        keybdInput
	padding   uint64
}

type winBackend struct{}

// NewBackend returns the SendInput-based backend. Construction fails when
// user32.SendInput cannot be resolved.
func NewBackend() (Backend, error) {
	if err := procSendInput.Find(); err != nil {
		return nil, fmt.Errorf("typer: SendInput unavailable: %w", err)
	}
	return &winBackend{}, nil
}

// Inject posts the character to the system event queue as a unicode key
// event. A logical newline is sent as the hardware Return key instead, so
// receivers see an actual Enter press rather than a literal character.
func (b *winBackend) Inject(r rune) error {
	var in winInput
	in.inputType = inputKeyboard
	if r == '\n' {
		in.ki.wVk = vkReturn
	} else {
		in.ki.wScan = uint16(r)
		in.ki.dwFlags = keyeventfUnicode
	}
	if err := send(&in); err != nil {
		return err
	}
	time.Sleep(pressHold)
	in.ki.dwFlags |= keyeventfKeyup
	return send(&in)
}

func send(in *winInput) error {
	n, _, err := procSendInput.Call(1, uintptr(unsafe.Pointer(in)), unsafe.Sizeof(*in))
	if n == 0 {
		return fmt.Errorf("typer: SendInput rejected event: %w", err)
	}
	return nil
}
