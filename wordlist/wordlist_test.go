package wordlist

import (
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func testPicker(t *testing.T, words, fill, short string) *Picker {
	t.Helper()
	dir := t.TempDir()
	return New(Paths{
		Words: writeFile(t, dir, "words.txt", words),
		Fill:  writeFile(t, dir, "fill.txt", fill),
		Short: writeFile(t, dir, "short.txt", short),
	}, rand.New(rand.NewSource(1)))
}

func TestNormalPicksFromWordlist(t *testing.T) {
	p := testPicker(t, "alpha\nbravo\ncharlie\n", "filler\n", "hi\n")
	seen := map[string]bool{}
	for i := 0; i < 3; i++ {
		line, err := p.Pick(ModeNormal)
		if err != nil {
			t.Fatalf("pick %d: %v", i, err)
		}
		text := strings.TrimPrefix(strings.TrimPrefix(line.Text, "- "), "# ")
		if seen[text] {
			t.Errorf("line %q repeated", text)
		}
		seen[text] = true
		if line.HoldShift {
			t.Error("normal mode must not hold shift")
		}
	}
}

func TestNormalExhaustion(t *testing.T) {
	p := testPicker(t, "only\n", "only\n", "only\n")
	if _, err := p.Pick(ModeNormal); err != nil {
		t.Fatalf("first pick: %v", err)
	}
	if _, err := p.Pick(ModeNormal); err == nil {
		t.Fatal("expected error once every line has been used")
	}
}

func TestNormalSkipsBlankLines(t *testing.T) {
	p := testPicker(t, "\n\n  \nword\n\n", "f\n", "s\n")
	line, err := p.Pick(ModeNormal)
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(line.Text) == "" {
		t.Errorf("picked blank line %q", line.Text)
	}
}

func TestLadderReplacesSpacesAndHoldsShift(t *testing.T) {
	p := testPicker(t, "one two three\n", "f\n", "s\n")
	line, err := p.Pick(ModeLadder)
	if err != nil {
		t.Fatal(err)
	}
	if line.Text != "one\ntwo\nthree" {
		t.Errorf("ladder text %q", line.Text)
	}
	if !line.HoldShift {
		t.Error("ladder mode must hold shift")
	}
}

func TestParagraphJoinsLines(t *testing.T) {
	p := testPicker(t, "a\nb\nc\n", "f\n", "s\n")
	line, err := p.Pick(ModeParagraph)
	if err != nil {
		t.Fatal(err)
	}
	if parts := strings.Split(line.Text, " "); len(parts) != 30 {
		t.Errorf("paragraph has %d parts, want 30", len(parts))
	}
}

func TestBeefJoinsTwoDistinctLines(t *testing.T) {
	p := testPicker(t, "left\nright\n", "f\n", "s\n")
	line, err := p.Pick(ModeBeef)
	if err != nil {
		t.Fatal(err)
	}
	parts := strings.Split(line.Text, " and ")
	if len(parts) != 2 || parts[0] == parts[1] {
		t.Errorf("beef line %q", line.Text)
	}
}

func TestDemonRotatesKinds(t *testing.T) {
	words := "w1\nw2\nw3\nw4\nw5\nw6\nw7\nw8\nw9\nw10\nw11\nw12\n"
	p := testPicker(t, words, "f\n", "s1\ns2\ns3\n")

	kinds := map[string]bool{}
	for i := 0; i < 3; i++ {
		kind := p.demonKind()
		if kinds[kind] {
			t.Fatalf("kind %q served twice before reset", kind)
		}
		kinds[kind] = true
	}
	if len(kinds) != 3 {
		t.Fatalf("expected all three kinds, got %v", kinds)
	}
	// Fourth call resets the rotation.
	if kind := p.demonKind(); !kinds[kind] {
		t.Fatalf("unexpected kind %q after reset", kind)
	}
}

func TestDemonLongNeedsFourLines(t *testing.T) {
	p := testPicker(t, "a\nb\nc\nd\ne\n", "f\n", "s\n")
	text, err := p.demonLong()
	if err != nil {
		t.Fatal(err)
	}
	if parts := strings.Split(text, " and "); len(parts) != 4 {
		t.Errorf("long demon has %d parts: %q", len(parts), text)
	}

	short := testPicker(t, "a\nb\n", "f\n", "s\n")
	if _, err := short.demonLong(); err == nil {
		t.Error("expected error with fewer than four distinct lines")
	}
}

func TestMissingFile(t *testing.T) {
	p := New(Paths{Words: "/nonexistent/words.txt"}, rand.New(rand.NewSource(1)))
	if _, err := p.Pick(ModeLadder); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestModeCycle(t *testing.T) {
	m := ModeNormal
	for i := 0; i < 5; i++ {
		m = m.Next()
	}
	if m != ModeNormal {
		t.Errorf("cycle of five did not return to normal, got %v", m)
	}
}
