package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

// Filter input quiet period before a coalesced re-render
const debounceDelay = 120 * time.Millisecond

// monitorState is the view-controller state: the view configuration plus
// scroll and edit state. It is only ever mutated by the event loop; the
// poller and the debouncer reach it through the atomic dirty flag alone.
type monitorState struct {
	cfg          ViewConfig
	scrollOffset int
	editingQuery bool
	canvas       *chartCanvas
	debounce     *debouncer
	logger       zerolog.Logger
	dirty        atomic.Bool
}

func newMonitorState(asciiCharts bool, logger zerolog.Logger) *monitorState {
	state := &monitorState{
		cfg:    defaultViewConfig(),
		canvas: newChartCanvas(chartCellCols, chartCellRows),
		logger: logger,
	}
	if asciiCharts {
		state.canvas.SetDensity(blockDensityX, blockDensityY)
	}
	state.debounce = newDebouncer(debounceDelay, state.markDirty)
	return state
}

func (st *monitorState) markDirty() {
	st.dirty.Store(true)
}

func (st *monitorState) consumeDirty() bool {
	return st.dirty.Swap(false)
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOrDefault(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envBoolOrDefault(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func main() {
	// Optional .env file; absence is fine
	godotenv.Load()

	// Command-line flags, with env-provided defaults
	baseURL := flag.String("url", envOrDefault("AIRSCOPE_URL", "http://127.0.0.1:5000"), "Base URL of the scanner endpoint")
	intervalMS := flag.Int("interval", envIntOrDefault("AIRSCOPE_INTERVAL_MS", 2000), "Delay between polls in ms, measured from cycle completion")
	refreshRate := flag.Int("refresh", 4, "TUI refresh rate in updates per second (default: 4)")
	logPath := flag.String("log", envOrDefault("AIRSCOPE_LOG", "airscope.log"), "Log file path (the TUI owns the terminal)")
	asciiCharts := flag.Bool("ascii", false, "Use coarse block charts instead of braille")
	flag.Parse()

	logFile, err := os.OpenFile(*logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening log file: %v\n", err)
		os.Exit(1)
	}
	defer logFile.Close()
	logger := zerolog.New(logFile).With().Timestamp().Logger()

	// Calculate refresh interval from refresh rate
	refreshInterval := time.Second / time.Duration(*refreshRate)

	store := NewDeviceStore()
	pollState := &PollState{}
	state := newMonitorState(*asciiCharts, logger)
	if !envBoolOrDefault("AIRSCOPE_MASK", true) {
		state.cfg.MaskMACs = false
	}

	// Done channel for graceful shutdown
	done := make(chan struct{})

	poller := &Poller{
		URL:      *baseURL + "/api/devices",
		Interval: time.Duration(*intervalMS) * time.Millisecond,
		Store:    store,
		State:    pollState,
		Logger:   logger,
		OnUpdate: state.markDirty,
	}
	go poller.Run(done)

	// Initialize screen
	s, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating screen: %v\n", err)
		os.Exit(1)
	}
	if err := s.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing screen: %v\n", err)
		os.Exit(1)
	}
	defer s.Fini()

	s.SetStyle(tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite))
	s.EnableMouse() // Mouse support for scrolling and header clicks

	// Handle signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	// Ticker for refresh
	ticker := time.NewTicker(refreshInterval)
	defer ticker.Stop()

	logger.Info().Str("url", poller.URL).Dur("interval", poller.Interval).Msg("monitor started")

	// Initial draw
	drawMonitor(s, store, pollState, state)

	// Event loop
	quit := false
	for !quit {
		select {
		case <-ticker.C:
			drawMonitor(s, store, pollState, state)

		case <-sigChan:
			quit = true

		default:
			// Check for key events (non-blocking)
			if s.HasPendingEvent() {
				ev := s.PollEvent()
				switch ev := ev.(type) {
				case *tcell.EventKey:
					if handleKeyboardEvent(ev, store, pollState, state, s) {
						quit = true
					}
				case *tcell.EventMouse:
					handleMouseEvent(ev, state, s)
				case *tcell.EventResize:
					s.Sync()
					drawMonitor(s, store, pollState, state)
				}
			} else if state.consumeDirty() {
				drawMonitor(s, store, pollState, state)
			}
			time.Sleep(10 * time.Millisecond)
		}
	}

	close(done)
	state.debounce.stop()
	logger.Info().Msg("monitor stopped")
}
