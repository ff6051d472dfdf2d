package headless

import (
	"math"

	"github.com/vovakirdan/tui-breaker/internal/core"
	"github.com/vovakirdan/tui-breaker/internal/games/breakout"
)

// Autopilot plays the game from snapshots. It starts and restarts sessions
// and keeps the paddle under the ball, striking it off-centre so the ball
// never settles into a vertical loop.
type Autopilot struct {
	// Restart begins a new session after the previous one ended.
	Restart bool
}

// Input chooses the input for the next tick.
func (a Autopilot) Input(snap breakout.Snapshot) core.InputFrame {
	in := core.NewInputFrame()

	switch snap.Phase {
	case breakout.PhaseStart.String():
		in.Set(core.ActionStart)
		return in
	case breakout.PhaseEnd.String():
		if a.Restart {
			in.Set(core.ActionRestart)
		}
		return in
	}
	if snap.Paused {
		in.Set(core.ActionPause)
		return in
	}

	target := a.target(snap)
	if snap.Control == breakout.ControlPointer.String() {
		in.SetPointer(target)
		return in
	}

	centre := snap.Paddle.X + snap.Paddle.W/2
	// Half a paddle step of slack keeps the paddle from jittering
	slack := math.Max(math.Abs(snap.BallVX), 1) / 2
	switch {
	case target < centre-slack:
		in.Set(core.ActionLeft)
	case target > centre+slack:
		in.Set(core.ActionRight)
	}
	return in
}

// target is where the paddle centre should be. The side of the offset
// flips with every brick scored.
func (a Autopilot) target(snap breakout.Snapshot) float64 {
	bias := snap.Paddle.W * 0.25
	if (snap.Score/breakout.BrickPoints)%2 == 1 {
		bias = -bias
	}
	return snap.Ball.X + bias
}
