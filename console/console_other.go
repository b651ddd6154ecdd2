//go:build !windows

package console

func toggle() (bool, error) {
	return true, ErrUnsupported
}
