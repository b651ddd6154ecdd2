//go:build linux

package hotkey

import (
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

const (
	evKey    = 1
	keyPress = 1
)

// evdev key codes for the control keys.
const (
	keyEsc      = 1
	keyTab      = 15
	keyLCtrl    = 29
	keyLShift   = 42
	keyRShift   = 54
	keyLAlt     = 56
	keyCapsLock = 58
	keyF10      = 68
	keyRCtrl    = 97
	keyRAlt     = 100
)

const inputEventSize = 24

// actionForCode maps a pressed evdev key to its control action: Tab types,
// CapsLock flips case, Shift cycles content, Ctrl cycles speed, Alt cycles
// style, F10 toggles the console, Esc quits.
func actionForCode(code uint16) (Action, bool) {
	switch code {
	case keyTab:
		return ActionType, true
	case keyCapsLock:
		return ActionCycleCase, true
	case keyLShift, keyRShift:
		return ActionCycleContent, true
	case keyLCtrl, keyRCtrl:
		return ActionCycleSpeed, true
	case keyLAlt, keyRAlt:
		return ActionCycleStyle, true
	case keyF10:
		return ActionToggleConsole, true
	case keyEsc:
		return ActionQuit, true
	}
	return 0, false
}

type linuxListener struct {
	events chan Action
	files  []*os.File
	stop   chan struct{}
	once   sync.Once
}

func New() Listener {
	return &linuxListener{
		events: make(chan Action, 8),
	}
}

func (h *linuxListener) Register() error {
	keyboards, err := findKeyboards()
	if err != nil {
		return fmt.Errorf("finding keyboards: %w", err)
	}
	if len(keyboards) == 0 {
		return fmt.Errorf("no keyboard devices found (is user in 'input' group?)")
	}

	h.stop = make(chan struct{})

	for _, path := range keyboards {
		f, err := os.Open(path)
		if err != nil {
			continue
		}
		h.files = append(h.files, f)
		go h.readEvents(f)
	}

	if len(h.files) == 0 {
		return fmt.Errorf("could not open any keyboard device (run: sudo usermod -aG input $USER, then re-login)")
	}

	return nil
}

func (h *linuxListener) readEvents(f *os.File) {
	buf := make([]byte, inputEventSize*16)

	for {
		select {
		case <-h.stop:
			return
		default:
		}

		n, err := f.Read(buf)
		if err != nil {
			return
		}

		for i := 0; i+inputEventSize <= n; i += inputEventSize {
			evType := binary.LittleEndian.Uint16(buf[i+16:])
			evCode := binary.LittleEndian.Uint16(buf[i+18:])
			evValue := int32(binary.LittleEndian.Uint32(buf[i+20:]))

			if evType != evKey || evValue != keyPress {
				continue
			}

			action, ok := actionForCode(evCode)
			if !ok {
				continue
			}
			select {
			case h.events <- action:
			default:
			}
		}
	}
}

func (h *linuxListener) Unregister() {
	h.once.Do(func() {
		if h.stop != nil {
			close(h.stop)
		}
		for _, f := range h.files {
			f.Close()
		}
	})
}

func (h *linuxListener) Events() <-chan Action {
	return h.events
}

func findKeyboards() ([]string, error) {
	entries, err := os.ReadDir("/dev/input")
	if err != nil {
		return nil, err
	}

	var keyboards []string
	for _, e := range entries {
		if !strings.HasPrefix(e.Name(), "event") {
			continue
		}
		path := filepath.Join("/dev/input", e.Name())
		if isKeyboard(e.Name()) {
			keyboards = append(keyboards, path)
		}
	}
	return keyboards, nil
}

func isKeyboard(eventName string) bool {
	capsPath := filepath.Join("/sys/class/input", eventName, "device", "capabilities", "key")
	data, err := os.ReadFile(capsPath)
	if err != nil {
		return false
	}
	caps := strings.TrimSpace(string(data))
	return len(caps) > 10
}

// Help describes the active key bindings for display.
func Help() string {
	return "Tab: type  CapsLock: case  Shift: content  Ctrl: speed  Alt: style  F10: console  Esc: quit"
}

func Diagnose() (string, error) {
	keyboards, err := findKeyboards()
	if err != nil {
		return "", fmt.Errorf("cannot scan input devices: %w", err)
	}
	if len(keyboards) == 0 {
		return "", fmt.Errorf("no keyboard devices found (is user in 'input' group?)")
	}

	var opened string
	for _, path := range keyboards {
		f, err := os.Open(path)
		if err == nil {
			f.Close()
			opened = path
			break
		}
	}
	if opened == "" {
		return "", fmt.Errorf("found %d keyboard(s) but cannot open any (run: sudo usermod -aG input $USER)", len(keyboards))
	}

	return fmt.Sprintf("%d keyboard(s) found, opened %s", len(keyboards), opened), nil
}
