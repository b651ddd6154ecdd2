package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.TypingStyle != "human" {
		t.Errorf("default style %q", cfg.TypingStyle)
	}
	if cfg.ErrorRate != 0.005 {
		t.Errorf("default error rate %v", cfg.ErrorRate)
	}
	if len(cfg.Speeds) != 4 {
		t.Errorf("expected 4 speed presets, got %d", len(cfg.Speeds))
	}
	if !cfg.PressEnter {
		t.Error("press_enter should default to true")
	}
}

func TestMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.CaseMode != "lower" {
		t.Errorf("case mode %q", cfg.CaseMode)
	}
}

func TestYAMLOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
wordlist: /data/words.txt
typing_style: machinegun
error_rate: 0.1
case_mode: upper
speeds:
  - {min: 0.01, max: 0.02}
speed_index: 0
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Wordlist != "/data/words.txt" {
		t.Errorf("wordlist %q", cfg.Wordlist)
	}
	if cfg.TypingStyle != "machinegun" {
		t.Errorf("style %q", cfg.TypingStyle)
	}
	if cfg.ErrorRate != 0.1 {
		t.Errorf("error rate %v", cfg.ErrorRate)
	}
	if len(cfg.Speeds) != 1 || cfg.Speeds[0].Min != 0.01 {
		t.Errorf("speeds %+v", cfg.Speeds)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("typing_style: instant\n"), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("AUTOTYPER_TYPING_STYLE", "human")
	t.Setenv("AUTOTYPER_ERROR_RATE", "0.25")

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.TypingStyle != "human" {
		t.Errorf("env override lost, style %q", cfg.TypingStyle)
	}
	if cfg.ErrorRate != 0.25 {
		t.Errorf("env error rate %v", cfg.ErrorRate)
	}
}

func TestBadValuesNormalized(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("speed_index: 99\ncase_mode: shouty\n"), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.SpeedIndex != 0 {
		t.Errorf("speed index %d", cfg.SpeedIndex)
	}
	if cfg.CaseMode != "lower" {
		t.Errorf("case mode %q", cfg.CaseMode)
	}
}
