package typer

import "sync"

// Fake is an in-memory Backend that records every injected rune. Tests use
// it in place of the platform backends.
type Fake struct {
	mu      sync.Mutex
	typed   []rune
	failAt  int // 1-based injection index that fails; 0 disables
	failErr error
	count   int
}

func NewFake() *Fake {
	return &Fake{}
}

// FailAt makes the n-th Inject call (1-based) return err.
func (f *Fake) FailAt(n int, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failAt = n
	f.failErr = err
}

func (f *Fake) Inject(r rune) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.count++
	if f.failAt > 0 && f.count == f.failAt {
		return f.failErr
	}
	f.typed = append(f.typed, r)
	return nil
}

// Typed returns everything injected so far, backspaces included.
func (f *Fake) Typed() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return string(f.typed)
}

// Committed replays the injected stream with backspace semantics, yielding
// the text an application would end up displaying.
func (f *Fake) Committed() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []rune
	for _, r := range f.typed {
		if r == '\b' {
			if len(out) > 0 {
				out = out[:len(out)-1]
			}
			continue
		}
		out = append(out, r)
	}
	return string(out)
}
