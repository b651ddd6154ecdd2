// Package wordlist picks lines to type from flat text files, deduplicating
// across a session and composing them according to the active content mode.
package wordlist

import (
	"bufio"
	"fmt"
	"math/rand"
	"os"
	"strings"
	"sync"
	"time"
)

// Mode selects how picked lines are composed.
type Mode int

const (
	// ModeNormal types one random line, occasionally from the filler list
	// or with a symbol prefix.
	ModeNormal Mode = iota
	// ModeLadder types one line with spaces turned into newlines, shift held.
	ModeLadder
	// ModeParagraph joins up to thirty random lines into one block.
	ModeParagraph
	// ModeBeef joins two distinct lines with " and ".
	ModeBeef
	// ModeDemon rotates through short/middle/long compositions.
	ModeDemon
)

func (m Mode) String() string {
	switch m {
	case ModeNormal:
		return "normal"
	case ModeLadder:
		return "ladder"
	case ModeParagraph:
		return "paragraph"
	case ModeBeef:
		return "beef"
	case ModeDemon:
		return "demon"
	}
	return "unknown"
}

// Next cycles to the following content mode.
func (m Mode) Next() Mode {
	return (m + 1) % (ModeDemon + 1)
}

// Line is one composed piece of text ready for the typing engine.
type Line struct {
	Text      string
	HoldShift bool
}

// Paths names the three source files.
type Paths struct {
	Words string
	Fill  string
	Short string
}

var symbols = []string{"- ", "# "}

const pickRetries = 30

// Picker selects and composes lines. Safe for use from one goroutine at a
// time per call; internal state is still mutex-guarded since hotkey handling
// and the doctor can race on it.
type Picker struct {
	mu        sync.Mutex
	paths     Paths
	rng       *rand.Rand
	used      map[string]bool
	demonUsed map[string]bool
}

// New returns a Picker over the given files. A nil rng gets a time-seeded
// source.
func New(paths Paths, rng *rand.Rand) *Picker {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Picker{
		paths:     paths,
		rng:       rng,
		used:      make(map[string]bool),
		demonUsed: make(map[string]bool),
	}
}

// Pick composes a line for the given content mode. Lines already typed this
// session are skipped; when a source is exhausted Pick returns an error.
func (p *Picker) Pick(mode Mode) (Line, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	switch mode {
	case ModeNormal:
		return p.normal()
	case ModeLadder:
		return p.ladder()
	case ModeParagraph:
		return p.paragraph()
	case ModeBeef:
		return p.beef()
	case ModeDemon:
		return p.demon()
	}
	return Line{}, fmt.Errorf("wordlist: unknown mode %d", mode)
}

func (p *Picker) normal() (Line, error) {
	for range pickRetries {
		// One draw decides both the filler detour and the symbol prefix.
		choice := 1 + p.rng.Intn(13)
		source := p.paths.Words
		if choice == 1 {
			source = p.paths.Fill
		}
		line, err := p.randomLine(source)
		if err != nil {
			return Line{}, err
		}
		if p.used[line] {
			continue
		}
		p.used[line] = true
		if choice == 2 {
			line = symbols[p.rng.Intn(len(symbols))] + line
		}
		return Line{Text: line}, nil
	}
	return Line{}, fmt.Errorf("wordlist: no unused lines left in %s", p.paths.Words)
}

func (p *Picker) ladder() (Line, error) {
	line, err := p.freshLine(p.paths.Words)
	if err != nil {
		return Line{}, err
	}
	return Line{Text: strings.ReplaceAll(line, " ", "\n"), HoldShift: true}, nil
}

func (p *Picker) paragraph() (Line, error) {
	var lines []string
	for range 30 {
		line, err := p.randomLine(p.paths.Words)
		if err != nil {
			break
		}
		lines = append(lines, line)
	}
	if len(lines) == 0 {
		return Line{}, fmt.Errorf("wordlist: nothing readable in %s", p.paths.Words)
	}
	p.used[lines[len(lines)-1]] = true
	return Line{Text: strings.Join(lines, " ")}, nil
}

func (p *Picker) beef() (Line, error) {
	first, err := p.freshLine(p.paths.Words)
	if err != nil {
		return Line{}, err
	}
	for range pickRetries {
		second, err := p.randomLine(p.paths.Words)
		if err != nil {
			return Line{}, err
		}
		if second == first || p.used[second] {
			continue
		}
		p.used[second] = true
		return Line{Text: first + " and " + second}, nil
	}
	return Line{}, fmt.Errorf("wordlist: could not find a second distinct line in %s", p.paths.Words)
}

func (p *Picker) demon() (Line, error) {
	kind := p.demonKind()
	var text string
	var err error
	switch kind {
	case "short":
		text, err = p.freshLine(p.paths.Short)
	case "middle":
		text, err = p.freshLine(p.paths.Words)
	case "long":
		text, err = p.demonLong()
	}
	if err != nil {
		return Line{}, err
	}
	return Line{Text: text}, nil
}

// demonKind rotates through short/middle/long, resetting once all three have
// been served.
func (p *Picker) demonKind() string {
	kinds := []string{"short", "middle", "long"}
	var remaining []string
	for _, k := range kinds {
		if !p.demonUsed[k] {
			remaining = append(remaining, k)
		}
	}
	if len(remaining) == 0 {
		p.demonUsed = make(map[string]bool)
		remaining = kinds
	}
	kind := remaining[p.rng.Intn(len(remaining))]
	p.demonUsed[kind] = true
	return kind
}

func (p *Picker) demonLong() (string, error) {
	picked := make(map[string]bool)
	for attempts := 0; len(picked) < 4 && attempts < 100; attempts++ {
		line, err := p.randomLine(p.paths.Words)
		if err != nil {
			return "", err
		}
		if !p.used[line] {
			picked[line] = true
		}
	}
	if len(picked) < 4 {
		return "", fmt.Errorf("wordlist: not enough unused lines in %s for a long demon", p.paths.Words)
	}
	lines := make([]string, 0, len(picked))
	for line := range picked {
		p.used[line] = true
		lines = append(lines, line)
	}
	return strings.Join(lines, " and "), nil
}

// freshLine draws until it finds a line not yet typed this session and marks
// it used.
func (p *Picker) freshLine(path string) (string, error) {
	for range pickRetries {
		line, err := p.randomLine(path)
		if err != nil {
			return "", err
		}
		if p.used[line] {
			continue
		}
		p.used[line] = true
		return line, nil
	}
	return "", fmt.Errorf("wordlist: no unused lines left in %s", path)
}

// randomLine re-reads the file on every draw so edits to the source files
// take effect without a restart.
func (p *Picker) randomLine(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("wordlist: opening %s: %w", path, err)
	}
	defer f.Close()

	var lines []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line != "" {
			lines = append(lines, line)
		}
	}
	if err := sc.Err(); err != nil {
		return "", fmt.Errorf("wordlist: reading %s: %w", path, err)
	}
	if len(lines) == 0 {
		return "", fmt.Errorf("wordlist: %s has no usable lines", path)
	}
	return lines[p.rng.Intn(len(lines))], nil
}
