// Package typer simulates keyboard typing character by character, with
// configurable cadence and randomized typo-then-correction behavior. One
// background task at a time drives a platform Backend; control calls only
// touch atomic configuration fields and a shared cancellation flag.
package typer

import (
	"fmt"
	"math"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"
	"unicode"
)

// Mode selects the delay model applied after each injected character.
type Mode int32

const (
	// ModeInstant injects with no inter-character delay.
	ModeInstant Mode = iota
	// ModeHumanLike draws a random delay per character, stretched after
	// punctuation and shortened for repeated keys.
	ModeHumanLike
	// ModeMachineGun uses a fixed minimal delay.
	ModeMachineGun
)

func (m Mode) String() string {
	switch m {
	case ModeInstant:
		return "instant"
	case ModeHumanLike:
		return "human"
	case ModeMachineGun:
		return "machinegun"
	}
	return "unknown"
}

// offsets applied to a letter's code point when faking an adjacent-key slip.
var typoOffsets = [...]int32{-2, -1, 1, 2}

type task struct {
	done chan struct{}
	err  error // written by the task goroutine before done is closed
}

// Engine owns the typing configuration and at most one in-flight typing task.
// All methods are safe to call concurrently; configuration changes take
// effect from the next character the running task processes.
type Engine struct {
	backend Backend

	minDelay atomic.Int64 // nanoseconds
	maxDelay atomic.Int64
	errRate  atomic.Uint64 // math.Float64bits
	mode     atomic.Int32

	cancel atomic.Bool

	startMu sync.Mutex // serializes Type callers (join-before-start)
	mu      sync.Mutex // guards cur
	cur     *task

	// rng is only ever touched by the single in-flight task goroutine;
	// tasks never overlap, so no locking is needed.
	rng *rand.Rand
}

// New returns an Engine driving the given backend. A nil rng gets a
// time-seeded source; tests pass a seeded one for reproducible typos.
func New(backend Backend, rng *rand.Rand) *Engine {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	e := &Engine{backend: backend, rng: rng}
	e.SetSpeed(0.05, 0.2)
	e.SetErrorRate(0.005)
	e.SetMode(ModeHumanLike)
	return e
}

// Type drains any previous task, then launches a background task typing text
// into the focused window. It does not block on the new task.
func (e *Engine) Type(text string) {
	e.startMu.Lock()
	defer e.startMu.Unlock()

	e.Wait()
	e.cancel.Store(false)

	t := &task{done: make(chan struct{})}
	e.mu.Lock()
	e.cur = t
	e.mu.Unlock()

	go e.run(text, t)
}

// Stop sets the cancellation flag and blocks until the running task has
// exited. No-op when nothing is running. The task observes the flag before
// its next character, so nothing is injected after Stop returns.
func (e *Engine) Stop() {
	e.cancel.Store(true)
	e.Wait()
}

// Wait blocks until the current task (if any) finishes, naturally or by
// cancellation, and returns its result. An injection failure aborts the task
// and is reported here; the engine itself stays usable.
func (e *Engine) Wait() error {
	e.mu.Lock()
	t := e.cur
	e.mu.Unlock()
	if t == nil {
		return nil
	}
	<-t.done
	return t.err
}

// SetSpeed sets the inter-character delay range in seconds. Values are
// normalized rather than rejected: negatives clamp to zero and an inverted
// range collapses to min.
func (e *Engine) SetSpeed(min, max float64) {
	if min < 0 {
		min = 0
	}
	if max < min {
		max = min
	}
	e.minDelay.Store(int64(min * float64(time.Second)))
	e.maxDelay.Store(int64(max * float64(time.Second)))
}

// Speed returns the active delay range in seconds.
func (e *Engine) Speed() (min, max float64) {
	return float64(e.minDelay.Load()) / float64(time.Second),
		float64(e.maxDelay.Load()) / float64(time.Second)
}

// SetErrorRate sets the per-letter typo probability, clamped into [0,1].
func (e *Engine) SetErrorRate(rate float64) {
	e.errRate.Store(math.Float64bits(math.Max(0, math.Min(1, rate))))
}

// ErrorRate returns the active typo probability.
func (e *Engine) ErrorRate() float64 {
	return math.Float64frombits(e.errRate.Load())
}

// SetMode sets the active delay model.
func (e *Engine) SetMode(m Mode) {
	e.mode.Store(int32(m))
}

// Mode returns the active delay model.
func (e *Engine) Mode() Mode {
	return Mode(e.mode.Load())
}

// PressEnter injects a single logical newline, independent of any in-flight
// task. Used to submit whatever was just typed.
func (e *Engine) PressEnter() error {
	return e.backend.Inject('\n')
}

func (e *Engine) run(text string, t *task) {
	defer close(t.done)

	runes := []rune(text)
	var last rune
	i := 0
	for i < len(runes) {
		// Cancellation is observed here only; the sleeps below are not
		// interruptible, which bounds cancellation latency to one delay.
		if e.cancel.Load() {
			return
		}

		r := runes[i]
		if unicode.IsLetter(r) && e.rng.Float64() < e.ErrorRate() {
			n, err := e.typoDetour(runes[i:])
			if err != nil {
				t.err = err
				return
			}
			i += n
			continue
		}

		if err := e.backend.Inject(r); err != nil {
			t.err = fmt.Errorf("injecting %q: %w", r, err)
			return
		}
		time.Sleep(e.delay(r, last))
		last = r
		i++
	}
}

// typoDetour types one to three wrong characters starting at window[0], pauses as if
// noticing the mistake, backspaces over them, and retypes the originals. The
// committed output is identical to typing the window directly. Returns how
// many source characters were consumed.
func (e *Engine) typoDetour(window []rune) (int, error) {
	n := 1 + e.rng.Intn(min(3, len(window)))

	wrong := make([]rune, n)
	for j := 0; j < n; j++ {
		r := window[j]
		if unicode.IsLetter(r) {
			wrong[j] = r + typoOffsets[e.rng.Intn(len(typoOffsets))]
		} else {
			wrong[j] = r
		}
	}

	for _, r := range wrong {
		if err := e.backend.Inject(r); err != nil {
			return 0, fmt.Errorf("injecting typo %q: %w", r, err)
		}
		time.Sleep(e.baseDelay())
	}
	e.sleepBetween(100*time.Millisecond, 300*time.Millisecond)

	for range wrong {
		if err := e.backend.Inject('\b'); err != nil {
			return 0, fmt.Errorf("injecting backspace: %w", err)
		}
		e.sleepBetween(50*time.Millisecond, 150*time.Millisecond)
	}

	for j := 0; j < n; j++ {
		if err := e.backend.Inject(window[j]); err != nil {
			return 0, fmt.Errorf("injecting correction %q: %w", window[j], err)
		}
		time.Sleep(e.baseDelay())
	}
	return n, nil
}

// baseDelay is the mode delay without punctuation or repeat modifiers.
func (e *Engine) baseDelay() time.Duration {
	switch e.Mode() {
	case ModeInstant:
		return 0
	case ModeMachineGun:
		return time.Duration(e.minDelay.Load())
	}
	lo, hi := e.minDelay.Load(), e.maxDelay.Load()
	return time.Duration(lo) + time.Duration(e.rng.Float64()*float64(hi-lo))
}

// delay computes the post-injection pause for r. Punctuation stretches and a
// repeated key shortens the human-like draw; the factors compose.
func (e *Engine) delay(r, last rune) time.Duration {
	d := e.baseDelay()
	if e.Mode() != ModeHumanLike {
		return d
	}
	switch r {
	case ',', ';', ':':
		d = time.Duration(float64(d) * 1.5)
	case '.', '!', '?':
		d = time.Duration(float64(d) * 2.0)
	}
	if r == last {
		d = time.Duration(float64(d) * 0.8)
	}
	return d
}

func (e *Engine) sleepBetween(lo, hi time.Duration) {
	time.Sleep(lo + time.Duration(e.rng.Float64()*float64(hi-lo)))
}
