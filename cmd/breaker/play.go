package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-breaker/internal/audio"
	"github.com/vovakirdan/tui-breaker/internal/games/breakout"
	"github.com/vovakirdan/tui-breaker/internal/metrics"
	"github.com/vovakirdan/tui-breaker/internal/platform/tui"
	"github.com/vovakirdan/tui-breaker/internal/platform/web"
)

var (
	flagMouse    bool
	flagMute     bool
	flagPlayHTTP string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in this terminal",
	Long: `Start a brick breaker session in this terminal.

Controls:
  Left/Right, A/D  - Move paddle
  Mouse            - Move paddle in pointer mode
  M                - Toggle keys/pointer control
  Space            - Start, restart after the game ends
  P/Esc            - Pause
  Ctrl+S           - Save a PNG screenshot to ~/.breaker/screenshots
  Q/Ctrl+C         - Quit

Examples:
  breaker play
  breaker play --mute
  breaker play --seed 42 --config ./my-breakout.toml
  breaker play --http :8080   # spectate at http://localhost:8080/snapshot`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagMouse, "mouse", true, "Report mouse motion for pointer control")
	playCmd.Flags().BoolVar(&flagMute, "mute", false, "Disable sound")
	playCmd.Flags().StringVar(&flagPlayHTTP, "http", "", "Serve metrics and spectator feed on this address")
}

func runPlay(_ *cobra.Command, _ []string) {
	logger, closeLog := fileLogger("breaker")
	defer closeLog()

	cfg := loadConfig()
	if flagMute {
		cfg.Audio.Enabled = false
	}

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}
	rc := runtimeConfig(width, height)

	game, err := breakout.New(cfg, rc)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	player := audio.Open(cfg.Audio, logger)
	defer player.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	opts := tui.Options{
		Audio:     player,
		SessionID: "local",
		Logger:    logger,
	}
	if flagPlayHTTP != "" {
		opts.Feed = web.NewFeed()
		opts.Metrics = metrics.New()
		opts.Metrics.SessionStarted()
		defer opts.Metrics.SessionEnded()
		startHTTP(ctx, flagPlayHTTP, opts.Feed, opts.Metrics, logger)
	}

	logger.Info("session started", "seed", rc.Seed, "fps", rc.TickRate)
	if err := tui.Run(game, rc, opts, flagMouse); err != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		os.Exit(1)
	}
	logger.Info("session ended", "score", game.State().Score, "phase", game.State().Phase)
}
