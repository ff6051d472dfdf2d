package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-breaker/internal/games/breakout"
	"github.com/vovakirdan/tui-breaker/internal/metrics"
	"github.com/vovakirdan/tui-breaker/internal/platform/headless"
	"github.com/vovakirdan/tui-breaker/internal/platform/web"
)

var (
	flagTicks     int
	flagPNG       string
	flagRealtime  bool
	flagSimHTTP   string
	flagNoRestart bool
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run an autopilot session without a terminal",
	Long: `Run the simulation headless with an autopilot at the paddle and
print a summary. Runs with the same --seed and --config always end in
the same state.

Examples:
  breaker simulate --ticks 36000 --seed 7
  breaker simulate --ticks 600 --png final.png
  breaker simulate --realtime --http :8080   # watch the bot via /ws`,
	Args: cobra.NoArgs,
	Run:  runSimulate,
}

func init() {
	simulateCmd.Flags().IntVar(&flagTicks, "ticks", 3600, "Number of ticks to simulate")
	simulateCmd.Flags().StringVar(&flagPNG, "png", "", "Write the final frame to this PNG file")
	simulateCmd.Flags().BoolVar(&flagRealtime, "realtime", false, "Pace ticks at --fps instead of running flat out")
	simulateCmd.Flags().StringVar(&flagSimHTTP, "http", "", "Serve metrics and spectator feed on this address")
	simulateCmd.Flags().BoolVar(&flagNoRestart, "no-restart", false, "Stop playing once a session ends")
}

func runSimulate(_ *cobra.Command, _ []string) {
	logger := newLogger(os.Stderr, "breaker-sim")

	cfg := loadConfig()
	cfg.Audio.Enabled = false
	rc := runtimeConfig(80, 24)

	game, err := breakout.New(cfg, rc)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := headless.Options{
		Ticks:     flagTicks,
		Pilot:     &headless.Autopilot{Restart: !flagNoRestart},
		Realtime:  flagRealtime,
		PNGPath:   flagPNG,
		SessionID: "autopilot",
		Logger:    logger,
	}
	if flagSimHTTP != "" {
		opts.Feed = web.NewFeed()
		opts.Metrics = metrics.New()
		startHTTP(ctx, flagSimHTTP, opts.Feed, opts.Metrics, logger)
	}

	logger.Info("simulating", "ticks", flagTicks, "seed", rc.Seed)
	sum, err := headless.Run(ctx, game, opts)
	if err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("ticks:       %d\n", sum.Ticks)
	fmt.Printf("phase:       %s (%s)\n", sum.Phase, sum.Outcome)
	fmt.Printf("score:       %d (best %d)\n", sum.Score, sum.BestScore)
	fmt.Printf("lives:       %d\n", sum.Lives)
	fmt.Printf("bricks left: %d\n", sum.BricksLeft)
	fmt.Printf("sessions:    %d finished, %d won\n", sum.Finished, sum.Wins)
	fmt.Printf("state hash:  %016x\n", sum.Hash)
}
