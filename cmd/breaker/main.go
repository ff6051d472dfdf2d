// breaker is a brick breaker for the terminal.
//
// Usage:
//
//	breaker play             - Play in this terminal
//	breaker serve            - Start SSH server for remote play
//	breaker simulate         - Run an autopilot session without a terminal
//	breaker config           - Print the default configuration
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible gameplay
//	--config <path>       - Game config file (.yaml or .toml)
//	--log-level <level>   - debug, info, warn or error
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-breaker/internal/config"
	"github.com/vovakirdan/tui-breaker/internal/core"
	"github.com/vovakirdan/tui-breaker/internal/metrics"
	"github.com/vovakirdan/tui-breaker/internal/platform/web"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagConfig   string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "breaker",
	Short: "Breaker - a brick breaker for your terminal",
	Long: `Breaker is a brick breaker that runs in your terminal, over SSH,
or headless for soak runs.

Available commands:
  play      - Play in this terminal
  serve     - Start SSH server for remote play
  simulate  - Run an autopilot session without a terminal
  config    - Print the default configuration

Examples:
  breaker play
  breaker play --mouse --http :8080
  breaker serve --ssh :2222
  breaker simulate --ticks 10000 --png final.png
  breaker config > ~/.breaker/breakout.yaml`,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to game config (.yaml or .toml)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(configCmd)
}

// newLogger builds the process logger writing to w.
func newLogger(w io.Writer, prefix string) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		logger.Warn("unknown log level, using info", "level", flagLogLevel)
		level = log.InfoLevel
	}
	logger.SetLevel(level)
	return logger
}

// fileLogger logs to ~/.breaker/breaker.log while the TUI owns the terminal.
// The returned closer is never nil.
func fileLogger(prefix string) (*log.Logger, func()) {
	home, err := os.UserHomeDir()
	if err != nil {
		return log.New(io.Discard), func() {}
	}
	dir := filepath.Join(home, ".breaker")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return log.New(io.Discard), func() {}
	}
	f, err := os.OpenFile(filepath.Join(dir, "breaker.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return log.New(io.Discard), func() {}
	}
	return newLogger(f, prefix), func() { _ = f.Close() }
}

// loadConfig resolves the game configuration or exits.
func loadConfig() config.Breakout {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return cfg
}

// runtimeConfig builds the runtime config for a screen of the given size.
func runtimeConfig(width, height int) core.RuntimeConfig {
	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     seed,
	}
}

// startHTTP serves the spectator and metrics surface in the background
// until ctx is cancelled. An empty addr disables it.
func startHTTP(ctx context.Context, addr string, feed *web.Feed, rec *metrics.Recorder, logger *log.Logger) {
	if addr == "" {
		return
	}
	srv := web.NewServer(web.Config{Addr: addr, Logger: logger}, feed, rec)
	go func() {
		if err := srv.Run(ctx); err != nil {
			logger.Error("http server stopped", "error", err)
		}
	}()
}
