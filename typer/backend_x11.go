//go:build linux

package typer

import (
	"fmt"
	"time"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
)

const (
	keysymBackspace = 0xFF08
	keysymTab       = 0xFF09
	keysymReturn    = 0xFF0D
)

type x11Backend struct {
	conn     *xgb.Conn
	root     xproto.Window
	keycodes map[xproto.Keysym]xproto.Keycode
}

// NewBackend connects to the X display and snapshots the server's keyboard
// mapping. Construction fails when no display is reachable.
func NewBackend() (Backend, error) {
	conn, err := xgb.NewConn()
	if err != nil {
		return nil, fmt.Errorf("typer: connecting to X display: %w", err)
	}
	setup := xproto.Setup(conn)
	b := &x11Backend{
		conn: conn,
		root: setup.DefaultScreen(conn).Root,
	}
	if err := b.loadKeycodes(setup); err != nil {
		conn.Close()
		return nil, err
	}
	return b, nil
}

func (b *x11Backend) loadKeycodes(setup *xproto.SetupInfo) error {
	first := setup.MinKeycode
	count := byte(setup.MaxKeycode - setup.MinKeycode + 1)
	reply, err := xproto.GetKeyboardMapping(b.conn, first, count).Reply()
	if err != nil {
		return fmt.Errorf("typer: reading keyboard mapping: %w", err)
	}
	per := int(reply.KeysymsPerKeycode)
	b.keycodes = make(map[xproto.Keysym]xproto.Keycode)
	for i := 0; i < int(count); i++ {
		for j := 0; j < per; j++ {
			ks := reply.Keysyms[i*per+j]
			if ks == 0 {
				continue
			}
			if _, ok := b.keycodes[ks]; !ok {
				b.keycodes[ks] = first + xproto.Keycode(i)
			}
		}
	}
	return nil
}

// keysymFor resolves a rune to its X keysym. Control characters the engine
// emits map to their named keysyms; Latin-1 runes are their own keysym and
// anything else falls back to the Unicode keysym range.
func keysymFor(r rune) xproto.Keysym {
	switch r {
	case '\n', '\r':
		return keysymReturn
	case '\b':
		return keysymBackspace
	case '\t':
		return keysymTab
	}
	if r < 0x100 {
		return xproto.Keysym(r)
	}
	return xproto.Keysym(0x01000000 | r)
}

// Inject sends a synthetic key press and release to the window that holds
// input focus. Focus is queried per character, so typing follows focus if it
// moves mid-task. Each send is followed by a sync to keep delivery ordered.
func (b *x11Backend) Inject(r rune) error {
	// Symbols absent from the current layout resolve to keycode 0; the
	// event is still sent, matching a lookup miss on a real keyboard map.
	code := b.keycodes[keysymFor(r)]

	focus, err := xproto.GetInputFocus(b.conn).Reply()
	if err != nil {
		return fmt.Errorf("typer: querying input focus: %w", err)
	}
	win := focus.Focus

	press := xproto.KeyPressEvent{
		Detail:     code,
		Time:       xproto.TimeCurrentTime,
		Root:       b.root,
		Event:      win,
		Child:      xproto.WindowNone,
		SameScreen: true,
	}
	if err := b.send(win, xproto.EventMaskKeyPress, string(press.Bytes())); err != nil {
		return err
	}
	time.Sleep(pressHold)
	release := xproto.KeyReleaseEvent(press)
	return b.send(win, xproto.EventMaskKeyRelease, string(release.Bytes()))
}

func (b *x11Backend) send(win xproto.Window, mask uint32, ev string) error {
	if err := xproto.SendEventChecked(b.conn, true, win, mask, ev).Check(); err != nil {
		return fmt.Errorf("typer: delivering key event: %w", err)
	}
	b.conn.Sync()
	return nil
}
