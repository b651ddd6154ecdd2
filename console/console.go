// Package console shows and hides the tool's own console window so the
// terminal can disappear while typing happens elsewhere.
package console

import "errors"

// ErrUnsupported is returned where the host has no controllable console
// window (anywhere but Windows).
var ErrUnsupported = errors.New("console: window toggling not supported on this platform")

// Toggle hides the console window if visible, shows and refocuses it if
// hidden. Returns the new visibility.
func Toggle() (visible bool, err error) {
	return toggle()
}
