// Package headless runs brick breaker sessions without a terminal, driven by
// an autopilot. It backs the simulate command and soak tests.
package headless

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-breaker/internal/core"
	"github.com/vovakirdan/tui-breaker/internal/games/breakout"
	"github.com/vovakirdan/tui-breaker/internal/metrics"
	"github.com/vovakirdan/tui-breaker/internal/platform/web"
	"github.com/vovakirdan/tui-breaker/internal/render"
)

// Options controls a headless run. Zero values are usable.
type Options struct {
	Ticks int // Number of simulation ticks to run

	// Pilot drives the paddle; nil leaves the game without input.
	Pilot *Autopilot

	// Realtime paces ticks at the game's tick rate instead of running flat out.
	Realtime bool

	PNGPath string // Final frame is written here when set

	Metrics   *metrics.Recorder
	Feed      *web.Feed
	SessionID string
	Logger    *log.Logger
}

// Summary describes a finished run.
type Summary struct {
	Ticks      int
	Score      int
	Lives      int
	Phase      string
	Outcome    string
	BricksLeft int
	Finished   int // Sessions that reached the end phase
	Wins       int
	BestScore  int
	Hash       uint64 // Hash of the final snapshot
}

// Run steps the game opts.Ticks times. It stops early with the context's
// error when ctx is cancelled; the summary then covers the ticks run so far.
func Run(ctx context.Context, game *breakout.Game, opts Options) (Summary, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	var ticker *time.Ticker
	if opts.Realtime {
		rate := game.Runtime().TickRate
		if rate <= 0 {
			rate = 60
		}
		ticker = time.NewTicker(time.Second / time.Duration(rate))
		defer ticker.Stop()
	}

	var sum Summary
	var err error
	snap := game.Snapshot()

	for sum.Ticks < opts.Ticks {
		if err = wait(ctx, ticker); err != nil {
			break
		}

		in := core.NewInputFrame()
		if opts.Pilot != nil {
			in = opts.Pilot.Input(snap)
		}

		start := time.Now()
		res := game.Step(in)
		opts.Metrics.ObserveStep(res, time.Since(start))
		sum.Ticks++

		snap = game.Snapshot()
		opts.Feed.Publish(opts.SessionID, snap)
		sum.BestScore = max(sum.BestScore, res.State.Score)

		if core.CountCues(res.Events, core.CueGameOver) > 0 || core.CountCues(res.Events, core.CueWin) > 0 {
			sum.Finished++
			if res.State.Won {
				sum.Wins++
			}
			logger.Info("session finished",
				"tick", snap.Tick,
				"outcome", snap.Outcome,
				"score", res.State.Score,
			)
		}
	}

	sum.Score = snap.Score
	sum.Lives = snap.Lives
	sum.Phase = snap.Phase
	sum.Outcome = snap.Outcome
	sum.BricksLeft = len(snap.Bricks)
	sum.Hash = snap.Hash()

	if opts.PNGPath != "" {
		if pngErr := render.SavePNG(opts.PNGPath, snap, render.Options{}); pngErr != nil {
			return sum, fmt.Errorf("headless: %w", pngErr)
		}
		logger.Info("frame saved", "path", opts.PNGPath)
	}

	return sum, err
}

func wait(ctx context.Context, ticker *time.Ticker) error {
	if ticker == nil {
		return ctx.Err()
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-ticker.C:
		return nil
	}
}
