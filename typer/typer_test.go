package typer

import (
	"errors"
	"math/rand"
	"strings"
	"testing"
	"time"
)

func newTestEngine(f *Fake, seed int64) *Engine {
	e := New(f, rand.New(rand.NewSource(seed)))
	e.SetSpeed(0, 0)
	e.SetErrorRate(0)
	e.SetMode(ModeInstant)
	return e
}

func TestErrorRateClamped(t *testing.T) {
	e := newTestEngine(NewFake(), 1)
	cases := []struct{ in, want float64 }{
		{-0.5, 0},
		{0, 0},
		{0.3, 0.3},
		{1, 1},
		{7.2, 1},
	}
	for _, c := range cases {
		e.SetErrorRate(c.in)
		if got := e.ErrorRate(); got != c.want {
			t.Errorf("SetErrorRate(%v): got %v, want %v", c.in, got, c.want)
		}
	}
}

func TestSpeedNormalized(t *testing.T) {
	e := newTestEngine(NewFake(), 1)
	e.SetSpeed(-1, 0.2)
	if lo, _ := e.Speed(); lo != 0 {
		t.Errorf("negative min not clamped: %v", lo)
	}
	e.SetSpeed(0.5, 0.1)
	lo, hi := e.Speed()
	if hi < lo {
		t.Errorf("inverted range survived: (%v, %v)", lo, hi)
	}
}

func TestInstantModeIgnoresDelayRange(t *testing.T) {
	f := NewFake()
	e := newTestEngine(f, 1)
	e.SetSpeed(10, 20) // would take minutes if the range were honored

	text := strings.Repeat("the quick brown fox. ", 20)
	start := time.Now()
	e.Type(text)
	if err := e.Wait(); err != nil {
		t.Fatalf("Wait: %v", err)
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("instant task took %v", elapsed)
	}
	if f.Typed() != text {
		t.Errorf("typed %q, want %q", f.Typed(), text)
	}
}

func TestNoTypoWithoutLetters(t *testing.T) {
	f := NewFake()
	e := newTestEngine(f, 42)
	e.SetErrorRate(1)

	text := "123 456.78!? ,,"
	e.Type(text)
	if err := e.Wait(); err != nil {
		t.Fatalf("Wait: %v", err)
	}
	if f.Typed() != text {
		t.Errorf("typed %q, want %q (detour must not trigger on non-letters)", f.Typed(), text)
	}
}

func TestTypoDetourPreservesContent(t *testing.T) {
	f := NewFake()
	e := newTestEngine(f, 7)
	e.SetErrorRate(1) // every letter triggers a detour

	text := "ab"
	e.Type(text)
	if err := e.Wait(); err != nil {
		t.Fatalf("Wait: %v", err)
	}
	if got := f.Committed(); got != text {
		t.Errorf("committed %q, want %q", got, text)
	}
	if !strings.ContainsRune(f.Typed(), '\b') {
		t.Error("expected at least one backspace in the raw stream")
	}
}

func TestTypoDetourMixedWindow(t *testing.T) {
	f := NewFake()
	e := newTestEngine(f, 3)
	e.SetErrorRate(1)

	// Non-letters inside a detour window are copied, not substituted.
	text := "a1b"
	e.Type(text)
	if err := e.Wait(); err != nil {
		t.Fatalf("Wait: %v", err)
	}
	if got := f.Committed(); got != text {
		t.Errorf("committed %q, want %q", got, text)
	}
}

func TestStopCancelsTask(t *testing.T) {
	f := NewFake()
	e := newTestEngine(f, 1)
	e.SetMode(ModeMachineGun)
	e.SetSpeed(0.02, 0.02)

	text := strings.Repeat("x", 500)
	e.Type(text)
	time.Sleep(60 * time.Millisecond)
	e.Stop()

	n := len(f.Typed())
	if n == 0 {
		t.Fatal("nothing was typed before Stop")
	}
	if n >= len(text) {
		t.Fatalf("task completed despite Stop (%d chars)", n)
	}
	time.Sleep(60 * time.Millisecond)
	if len(f.Typed()) != n {
		t.Errorf("injection continued after Stop returned: %d -> %d", n, len(f.Typed()))
	}
}

func TestStopIdleIsNoop(t *testing.T) {
	e := newTestEngine(NewFake(), 1)
	done := make(chan struct{})
	go func() {
		e.Stop()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Stop blocked with no task running")
	}
}

func TestBackToBackTypeSerializes(t *testing.T) {
	f := NewFake()
	e := newTestEngine(f, 1)
	e.SetMode(ModeMachineGun)
	e.SetSpeed(0.001, 0.001)

	e.Type("aaaaaaaaaa")
	e.Type("bbbbbbbbbb")
	if err := e.Wait(); err != nil {
		t.Fatalf("Wait: %v", err)
	}
	if got, want := f.Typed(), "aaaaaaaaaabbbbbbbbbb"; got != want {
		t.Errorf("typed %q, want %q", got, want)
	}
}

func TestHumanLikeDelayMultipliers(t *testing.T) {
	e := newTestEngine(NewFake(), 1)
	e.SetMode(ModeHumanLike)
	e.SetSpeed(0.1, 0.1) // degenerate range makes the draw deterministic

	base := 100 * time.Millisecond
	cases := []struct {
		r, last rune
		want    time.Duration
	}{
		{'h', 0, base},
		{',', 0, time.Duration(float64(base) * 1.5)},
		{'.', 0, 2 * base},
		{'h', 'h', time.Duration(float64(base) * 0.8)},
		{'.', '.', time.Duration(float64(base) * 2.0 * 0.8)},
	}
	for _, c := range cases {
		if got := e.delay(c.r, c.last); got != c.want {
			t.Errorf("delay(%q, %q) = %v, want %v", c.r, c.last, got, c.want)
		}
	}
}

func TestMachineGunUsesMinDelay(t *testing.T) {
	e := newTestEngine(NewFake(), 1)
	e.SetMode(ModeMachineGun)
	e.SetSpeed(0.03, 0.5)
	if got, want := e.delay('.', 0), 30*time.Millisecond; got != want {
		t.Errorf("delay = %v, want %v (no punctuation stretch outside human mode)", got, want)
	}
}

func TestPressEnter(t *testing.T) {
	f := NewFake()
	e := newTestEngine(f, 1)
	if err := e.PressEnter(); err != nil {
		t.Fatalf("PressEnter: %v", err)
	}
	if f.Typed() != "\n" {
		t.Errorf("typed %q, want %q", f.Typed(), "\n")
	}
}

func TestInjectionErrorAbortsTask(t *testing.T) {
	f := NewFake()
	boom := errors.New("display gone")
	f.FailAt(3, boom)

	e := newTestEngine(f, 1)
	e.Type("12345")
	err := e.Wait()
	if !errors.Is(err, boom) {
		t.Fatalf("Wait error = %v, want wrapped %v", err, boom)
	}
	if f.Typed() != "12" {
		t.Errorf("typed %q after failure, want %q", f.Typed(), "12")
	}

	// The engine stays usable for the next task.
	e.Type("67")
	if err := e.Wait(); err != nil {
		t.Fatalf("Wait after recovery: %v", err)
	}
	if f.Typed() != "1267" {
		t.Errorf("typed %q, want %q", f.Typed(), "1267")
	}
}

func TestWaitWithoutTask(t *testing.T) {
	e := newTestEngine(NewFake(), 1)
	if err := e.Wait(); err != nil {
		t.Errorf("Wait with no task: %v", err)
	}
}

func TestModeStrings(t *testing.T) {
	if ModeInstant.String() != "instant" || ModeHumanLike.String() != "human" || ModeMachineGun.String() != "machinegun" {
		t.Error("unexpected mode names")
	}
}
