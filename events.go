package main

import "fmt"

// EventSink abstracts the display layer so the Bubble Tea TUI and the plain
// console output receive the same status events.
type EventSink interface {
	Status(text string)
	Typing(active bool)
	Typed(line string)
	Log(format string, args ...any)
}

// consoleSink prints events straight to stdout, for -plain mode and
// non-interactive terminals.
type consoleSink struct{}

func (consoleSink) Status(text string) {
	fmt.Println(text)
}

func (consoleSink) Typing(active bool) {
	if active {
		fmt.Println("typing...")
	}
}

func (consoleSink) Typed(line string) {
	fmt.Printf("typed: %s\n", line)
}

func (consoleSink) Log(format string, args ...any) {
	fmt.Printf(format+"\n", args...)
}
