//go:build !windows && !linux

package typer

// NewBackend fails on platforms without an injection path.
func NewBackend() (Backend, error) {
	return nil, ErrUnsupported
}
