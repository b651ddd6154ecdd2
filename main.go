package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	cb "github.com/atotto/clipboard"
	"github.com/joho/godotenv"

	"autotyper/config"
	"autotyper/console"
	"autotyper/doctor"
	"autotyper/hotkey"
	"autotyper/log"
	"autotyper/modifier"
	"autotyper/shutdown"
	"autotyper/typer"
	"autotyper/wordlist"
)

var version = "dev"

// styles is the typing style rotation, index-aligned with cycling order.
var styles = []typer.Mode{typer.ModeInstant, typer.ModeHumanLike, typer.ModeMachineGun}

func styleIndex(name string) int {
	for i, s := range styles {
		if s.String() == name {
			return i
		}
	}
	return 1 // human
}

type app struct {
	cfg    *config.Config
	engine *typer.Engine
	picker *wordlist.Picker
	sink   EventSink

	mu          sync.Mutex // guards the mode fields below
	caseMode    string
	contentMode wordlist.Mode
	styleIdx    int
	speedIdx    int

	typing     atomic.Bool
	typedCount atomic.Int64
}

var shutdownOnce sync.Once

func (a *app) gracefulShutdown() {
	shutdownOnce.Do(func() {
		a.engine.Stop()
		if n := a.typedCount.Load(); n > 0 {
			log.SessionEnd(int(n))
		}
		log.Close()
		tuiMu.Lock()
		if tuiProgram != nil {
			tuiProgram.Quit()
		}
		tuiMu.Unlock()
		os.Exit(0)
	})
}

func initCrashLog() {
	if log.Dir() == "" {
		return
	}
	crashPath := filepath.Join(log.Dir(), "crash_log.txt")
	crashFile, err := os.OpenFile(crashPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err == nil {
		fmt.Fprintf(crashFile, "\n=== Session %s [pid=%d] ===\n", time.Now().Format("2006-01-02 15:04:05"), os.Getpid())
		debug.SetCrashOutput(crashFile, debug.CrashOptions{})
	}
}

func run() {
	// .env next to the binary can hold AUTOTYPER_* overrides
	godotenv.Load()

	configFlag := flag.String("config", "config.yaml", "Path to YAML configuration file")
	logPathFlag := flag.String("logpath", "", "log directory path (default: OS-specific location, use ./ for current dir)")
	versionFlag := flag.Bool("version", false, "Print version and exit")
	doctorFlag := flag.Bool("doctor", false, "Run system diagnostics and exit")
	plainFlag := flag.Bool("plain", false, "Plain console output instead of the TUI")
	flag.Parse()

	if *versionFlag {
		fmt.Printf("autotyper %s\n", version)
		os.Exit(0)
	}

	if *doctorFlag {
		os.Exit(doctor.Run())
	}

	cfg, err := config.Load(*configFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logFlag := *logPathFlag
	if logFlag == "" {
		logFlag = cfg.LogPath
	}
	logPath, err := log.ResolveDir(logFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to resolve log directory: %v\n", err)
		os.Exit(1)
	}
	log.SetDir(logPath)
	if err := log.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open logs: %v\n", err)
	}
	initCrashLog()

	backend, err := typer.NewBackend()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		log.Errorf("backend construction failed: %v", err)
		os.Exit(1)
	}

	a := &app{
		cfg:         cfg,
		engine:      typer.New(backend, nil),
		picker:      wordlist.New(wordlist.Paths{Words: cfg.Wordlist, Fill: cfg.Filler, Short: cfg.Shortwords}, nil),
		caseMode:    cfg.CaseMode,
		contentMode: wordlist.ModeNormal,
		styleIdx:    styleIndex(cfg.TypingStyle),
		speedIdx:    cfg.SpeedIndex,
	}
	a.engine.SetErrorRate(cfg.ErrorRate)
	a.engine.SetMode(styles[a.styleIdx])
	preset := cfg.Speeds[a.speedIdx]
	a.engine.SetSpeed(preset.Min, preset.Max)

	hk := hotkey.New()
	if err := hk.Register(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: cannot register hotkeys: %v\n", err)
		log.Errorf("hotkey registration failed: %v", err)
		os.Exit(1)
	}
	defer hk.Unregister()

	if *plainFlag || cfg.PlainConsole {
		a.sink = consoleSink{}
		fmt.Println("autotyper", version)
		fmt.Println(hotkey.Help())
	} else {
		tuiMu.Lock()
		tuiProgram = NewTUIProgram()
		tuiMu.Unlock()
		a.sink = tuiSink{}

		go func() {
			if _, err := tuiProgram.Run(); err != nil {
				log.Errorf("TUI error: %v", err)
				os.Exit(1)
			}
			a.gracefulShutdown()
		}()
	}

	min, max := a.engine.Speed()
	log.SessionStart(a.contentMode.String(), a.engine.Mode().String(), min, max)
	a.sink.Status(a.statusLine())

	sigCh := make(chan os.Signal, 1)
	shutdown.Notify(sigCh)

	for {
		select {
		case action := <-hk.Events():
			a.handle(action)
		case <-sigCh:
			a.gracefulShutdown()
			return
		}
	}
}

func (a *app) handle(action hotkey.Action) {
	switch action {
	case hotkey.ActionType:
		go a.typeNext()

	case hotkey.ActionCycleCase:
		a.mu.Lock()
		if a.caseMode == "lower" {
			a.caseMode = "upper"
		} else {
			a.caseMode = "lower"
		}
		a.mu.Unlock()
		a.statusChanged()

	case hotkey.ActionCycleContent:
		a.mu.Lock()
		a.contentMode = a.contentMode.Next()
		a.mu.Unlock()
		a.statusChanged()

	case hotkey.ActionCycleSpeed:
		a.mu.Lock()
		a.speedIdx = (a.speedIdx + 1) % len(a.cfg.Speeds)
		preset := a.cfg.Speeds[a.speedIdx]
		a.mu.Unlock()
		a.engine.SetSpeed(preset.Min, preset.Max)
		a.statusChanged()

	case hotkey.ActionCycleStyle:
		a.mu.Lock()
		a.styleIdx = (a.styleIdx + 1) % len(styles)
		style := styles[a.styleIdx]
		a.mu.Unlock()
		a.engine.SetMode(style)
		a.statusChanged()

	case hotkey.ActionToggleConsole:
		visible, err := console.Toggle()
		if err != nil {
			a.sink.Log("console toggle: %v", err)
			log.Warnf("console toggle: %v", err)
			return
		}
		log.Info(fmt.Sprintf("console visible: %v", visible))

	case hotkey.ActionQuit:
		a.gracefulShutdown()
	}
}

func (a *app) statusChanged() {
	a.sink.Status(a.statusLine())
	log.Info("status: " + a.statusLine())
}

func (a *app) statusLine() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	speedName := fmt.Sprintf("preset %d", a.speedIdx+1)
	if a.speedIdx < len(config.SpeedNames) {
		speedName = config.SpeedNames[a.speedIdx]
	}
	return fmt.Sprintf("[%s | %s | %s | %s]",
		a.contentMode, styles[a.styleIdx], speedName, a.caseMode)
}

// typeNext picks a line for the active content mode and types it into the
// focused window. Re-entrant triggers while a line is in flight are dropped,
// same as holding Tab must not queue up lines.
func (a *app) typeNext() {
	if !a.typing.CompareAndSwap(false, true) {
		return
	}
	defer a.typing.Store(false)

	a.mu.Lock()
	contentMode := a.contentMode
	caseMode := a.caseMode
	a.mu.Unlock()

	line, err := a.picker.Pick(contentMode)
	if err != nil {
		a.sink.Log("nothing to type: %v", err)
		log.Errorf("pick failed: %v", err)
		return
	}

	text := line.Text
	if caseMode == "upper" {
		text = strings.ToUpper(text)
	} else {
		text = strings.ToLower(text)
	}

	// Let the triggering keystroke settle before injecting our own events.
	time.Sleep(50 * time.Millisecond)

	held := false
	if line.HoldShift {
		if err := modifier.HoldShift(); err != nil {
			log.Warnf("shift hold failed: %v", err)
		} else {
			held = true
		}
	}

	a.sink.Typing(true)
	start := time.Now()
	a.engine.Type(text)
	err = a.engine.Wait()
	a.sink.Typing(false)

	if held {
		if relErr := modifier.ReleaseShift(); relErr != nil {
			log.Warnf("shift release failed: %v", relErr)
		}
	}
	if err != nil {
		a.sink.Log("typing aborted: %v", err)
		log.Errorf("typing aborted: %v", err)
		return
	}

	if a.cfg.PressEnter {
		if err := a.engine.PressEnter(); err != nil {
			log.Errorf("press enter: %v", err)
		}
	}
	if a.cfg.CopyToClip {
		if err := cb.WriteAll(text); err != nil {
			log.Warnf("clipboard copy: %v", err)
		}
	}

	a.typedCount.Add(1)
	log.TypedLine(text)
	log.TypedMetrics(log.LineMetrics{
		Chars:       len([]rune(text)),
		DurationMs:  float64(time.Since(start).Microseconds()) / 1000,
		ContentMode: contentMode.String(),
		TypingMode:  a.engine.Mode().String(),
	})
	a.sink.Typed(text)
}
