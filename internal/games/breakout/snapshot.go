package breakout

import (
	"math"

	"github.com/vovakirdan/tui-breaker/internal/core"
)

// BrickView is a live brick as seen by renderers.
type BrickView struct {
	Rect  core.Rect  `json:"rect"`
	Color core.Color `json:"color"`
}

// Snapshot is a read-only copy of everything a renderer or spectator needs.
// It shares no memory with the game.
type Snapshot struct {
	Tick        uint64      `json:"tick"`
	WorldW      float64     `json:"world_w"`
	WorldH      float64     `json:"world_h"`
	Phase       string      `json:"phase"`
	Outcome     string      `json:"outcome"`
	Paused      bool        `json:"paused"`
	Control     string      `json:"control"`
	Score       int         `json:"score"`
	Lives       int         `json:"lives"`
	Paddle      core.Rect   `json:"paddle"`
	Ball        core.Circle `json:"ball"`
	BallVX      float64     `json:"ball_vx"`
	BallVY      float64     `json:"ball_vy"`
	Bricks      []BrickView `json:"bricks"`
	BricksTotal int         `json:"bricks_total"`
}

// Snapshot returns the current game state as a Snapshot.
func (g *Game) Snapshot() Snapshot {
	bricks := make([]BrickView, 0, g.field.CountLive())
	for _, b := range g.field.Live() {
		bricks = append(bricks, BrickView{Rect: b.Rect, Color: b.Color})
	}

	return Snapshot{
		Tick:        g.tick,
		WorldW:      g.cfg.World.Width,
		WorldH:      g.cfg.World.Height,
		Phase:       g.phase.String(),
		Outcome:     g.outcome.String(),
		Paused:      g.paused,
		Control:     g.mode.String(),
		Score:       g.score,
		Lives:       g.lives,
		Paddle:      g.paddle.Bounds(),
		Ball:        g.ball.Circle(),
		BallVX:      g.ball.VX,
		BallVY:      g.ball.VY,
		Bricks:      bricks,
		BricksTotal: g.field.Len(),
	}
}

// Hash returns a simple hash of the snapshot for determinism testing.
func (snap *Snapshot) Hash() uint64 {
	h := snap.Tick
	mix := func(v uint64) { h = h*31 + v }
	mixF := func(f float64) { mix(math.Float64bits(f)) }
	mixS := func(s string) {
		for i := 0; i < len(s); i++ {
			mix(uint64(s[i]))
		}
	}

	mixS(snap.Phase)
	mixS(snap.Outcome)
	mixS(snap.Control)
	mix(uint64(snap.Score)) //#nosec G115 -- hash computation
	mix(uint64(snap.Lives)) //#nosec G115 -- hash computation
	if snap.Paused {
		mix(1)
	}

	mixF(snap.Paddle.X)
	mixF(snap.Paddle.Y)
	mixF(snap.Ball.X)
	mixF(snap.Ball.Y)
	mixF(snap.BallVX)
	mixF(snap.BallVY)

	for _, b := range snap.Bricks {
		mixF(b.Rect.X)
		mixF(b.Rect.Y)
		mix(uint64(b.Color))
	}

	return h
}
