// Package config loads the autotyper configuration from a YAML file with
// environment variable overrides on top.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// SpeedPreset is one (min, max) inter-character delay range in seconds.
type SpeedPreset struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

// Config holds the application configuration.
type Config struct {
	Wordlist   string `yaml:"wordlist"`
	Filler     string `yaml:"filler"`
	Shortwords string `yaml:"shortwords"`

	TypingStyle string        `yaml:"typing_style"` // instant | human | machinegun
	ErrorRate   float64       `yaml:"error_rate"`
	Speeds      []SpeedPreset `yaml:"speeds"`
	SpeedIndex  int           `yaml:"speed_index"`

	CaseMode     string `yaml:"case_mode"` // upper | lower
	CopyToClip   bool   `yaml:"copy_to_clipboard"`
	PressEnter   bool   `yaml:"press_enter"`
	LogPath      string `yaml:"log_path"`
	PlainConsole bool   `yaml:"plain_console"` // skip the TUI even on a TTY
}

// DefaultSpeeds are the built-in presets, fastest first.
var DefaultSpeeds = []SpeedPreset{
	{0.03, 0.10},
	{0.07, 0.2},
	{0.15, 0.25},
	{0.2, 0.5},
}

// SpeedNames label the presets for display, index-aligned with DefaultSpeeds.
var SpeedNames = []string{"Fast", "Medium", "Slow", "Very slow"}

// Load reads the config file at path (missing file is fine, defaults apply)
// and then applies environment overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{
		Wordlist:    "assets/wordlist.txt",
		Filler:      "assets/filler.txt",
		Shortwords:  "assets/shortwords.txt",
		TypingStyle: "human",
		ErrorRate:   0.005,
		CaseMode:    "lower",
		PressEnter:  true,
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("config: reading %s: %w", path, err)
			}
		} else if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("config: parsing %s: %w", path, err)
		}
	}

	applyEnv(cfg)

	if len(cfg.Speeds) == 0 {
		cfg.Speeds = DefaultSpeeds
	}
	if cfg.SpeedIndex < 0 || cfg.SpeedIndex >= len(cfg.Speeds) {
		cfg.SpeedIndex = 0
	}
	if cfg.CaseMode != "upper" && cfg.CaseMode != "lower" {
		cfg.CaseMode = "lower"
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("AUTOTYPER_WORDLIST"); v != "" {
		cfg.Wordlist = v
	}
	if v := os.Getenv("AUTOTYPER_FILLER"); v != "" {
		cfg.Filler = v
	}
	if v := os.Getenv("AUTOTYPER_SHORTWORDS"); v != "" {
		cfg.Shortwords = v
	}
	if v := os.Getenv("AUTOTYPER_TYPING_STYLE"); v != "" {
		cfg.TypingStyle = v
	}
	if v := os.Getenv("AUTOTYPER_ERROR_RATE"); v != "" {
		if rate, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.ErrorRate = rate
		}
	}
	if v := os.Getenv("AUTOTYPER_CASE_MODE"); v != "" {
		cfg.CaseMode = v
	}
	if v := os.Getenv("AUTOTYPER_COPY_TO_CLIPBOARD"); v != "" {
		cfg.CopyToClip = v == "true" || v == "1"
	}
	if v := os.Getenv("AUTOTYPER_LOG_PATH"); v != "" {
		cfg.LogPath = v
	}
}
