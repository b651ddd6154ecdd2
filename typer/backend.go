package typer

import (
	"errors"
	"time"
)

// Backend injects one logical character into the OS input pipeline as a
// synthetic key-down/key-up pair aimed at whatever window currently holds
// input focus. Implementations are side-effecting and non-idempotent.
type Backend interface {
	Inject(r rune) error
}

// pressHold is the real-time gap between the down and up events of a single
// injected character.
const pressHold = 10 * time.Millisecond

// ErrUnsupported is returned by NewBackend when the host has no usable
// input-injection mechanism.
var ErrUnsupported = errors.New("typer: no input backend available on this platform")
