package breakout

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/vovakirdan/tui-breaker/internal/config"
	"github.com/vovakirdan/tui-breaker/internal/core"
)

// Phase is the session state.
type Phase int

const (
	PhaseStart Phase = iota // Title screen, waiting for the start trigger
	PhasePlay               // Ball in play
	PhaseEnd                // Session over, waiting for restart
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseStart:
		return "start"
	case PhasePlay:
		return "play"
	case PhaseEnd:
		return "end"
	default:
		return "unknown"
	}
}

// Outcome is how a session ended.
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeWin
	OutcomeLoss
)

// String returns the outcome name.
func (o Outcome) String() string {
	switch o {
	case OutcomeWin:
		return "win"
	case OutcomeLoss:
		return "loss"
	default:
		return "none"
	}
}

// seedStream is the PCG stream selector paired with the runtime seed.
const seedStream = 0x9E3779B97F4A7C15

// Game owns one brick breaker session. It is not safe for concurrent use;
// each session gets its own Game.
type Game struct {
	cfg      config.Breakout
	runtime  core.RuntimeConfig
	layout   *Field  // Pristine wall, cloned on reset
	maxAngle float64 // Radians
	mode     ControlMode
	rng      *rand.Rand

	paddle *Paddle
	ball   *Ball
	field  *Field

	phase   Phase
	outcome Outcome
	score   int
	lives   int
	paused  bool
	tick    uint64

	events core.Events
}

// New validates the configuration, lays out the wall and returns a game in
// the start phase. The runtime seed drives every random choice, so equal
// seeds and inputs replay identically.
func New(cfg config.Breakout, runtime core.RuntimeConfig) (*Game, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("breakout: %w", err)
	}

	grid, err := GridSpecFromConfig(cfg.Bricks)
	if err != nil {
		return nil, err
	}
	layout, err := NewField(grid, cfg.World.Width)
	if err != nil {
		return nil, err
	}

	seed := uint64(runtime.Seed) //#nosec G115 -- seed bits are reinterpreted, not range-checked
	g := &Game{
		cfg:      cfg,
		runtime:  runtime,
		layout:   layout,
		maxAngle: cfg.Ball.MaxBounceAngle * math.Pi / 180,
		mode:     ParseControlMode(cfg.Paddle.Control),
		rng:      rand.New(rand.NewPCG(seed, seedStream)),
	}
	g.Reset()
	return g, nil
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return "breakout"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Breakout"
}

// Reset restores the initial session: fresh wall, centred paddle, new ball,
// zero score, full lives and the start phase. The control mode is kept.
func (g *Game) Reset() {
	g.paddle = NewPaddle(g.cfg.Paddle, g.cfg.World, g.mode)
	g.ball = g.newBall()
	g.field = g.layout.Clone()

	g.phase = PhaseStart
	g.outcome = OutcomeNone
	g.score = 0
	g.lives = g.cfg.Gameplay.Lives
	g.paused = false
}

func (g *Game) newBall() *Ball {
	return NewBall(
		g.cfg.World.Width/2,
		g.cfg.World.Height/2,
		g.cfg.Ball.Radius,
		g.cfg.Ball.Speed,
		g.rng,
	)
}

// Step advances the simulation by one tick and returns the state together
// with the events produced during the tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++

	if in.Has(core.ActionToggleMode) {
		g.paddle.ToggleMode()
		g.mode = g.paddle.Mode
	}

	switch g.phase {
	case PhaseStart:
		if in.Has(core.ActionStart) {
			g.phase = PhasePlay
			g.events.PlayTrack(core.TrackPlay, true)
		}

	case PhasePlay:
		if in.Has(core.ActionPause) {
			g.paused = !g.paused
		}
		if !g.paused {
			g.advance(in)
		}

	case PhaseEnd:
		if in.Has(core.ActionRestart) {
			g.Reset()
			g.events.StopTrack()
		}
	}

	return core.StepResult{
		State:  g.State(),
		Events: g.events.Drain(),
	}
}

// advance runs one physics tick: paddle, ball and walls, paddle bounce,
// bricks, then the end-of-ball and end-of-session checks.
func (g *Game) advance(in core.InputFrame) {
	g.paddle.Update(SignalFromInput(in), g.cfg.World.Width)
	g.ball.Update(g.cfg.World.Width, &g.events)
	g.ball.BouncePaddle(g.paddle, g.maxAngle, &g.events)

	if out := Resolve(g.ball, g.field, &g.events); out.Hit {
		g.score += out.Points
	}

	if g.ball.Lost(g.cfg.World.Height) {
		g.lives--
		if g.lives > 0 {
			g.ball = g.newBall()
			g.events.Cue(core.CueBallLost)
			return
		}
		g.lives = 0
		g.finish(OutcomeLoss, core.CueGameOver)
		return
	}

	if g.field.Cleared() {
		g.finish(OutcomeWin, core.CueWin)
	}
}

func (g *Game) finish(outcome Outcome, cue string) {
	g.phase = PhaseEnd
	g.outcome = outcome
	g.events.Cue(cue)
	g.events.StopTrack()
	g.events.PlayTrack(core.TrackEnd, false)
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.score,
		Lives:    g.lives,
		Phase:    g.phase.String(),
		GameOver: g.phase == PhaseEnd,
		Won:      g.outcome == OutcomeWin,
		Paused:   g.paused,
	}
}

// Phase returns the current phase.
func (g *Game) Phase() Phase {
	return g.phase
}

// Outcome returns how the session ended, or OutcomeNone while it runs.
func (g *Game) Outcome() Outcome {
	return g.outcome
}

// ControlMode returns the active paddle control mode.
func (g *Game) ControlMode() ControlMode {
	return g.mode
}

// Config returns the configuration the game was built with.
func (g *Game) Config() config.Breakout {
	return g.cfg
}

// Runtime returns the runtime configuration the game was built with.
func (g *Game) Runtime() core.RuntimeConfig {
	return g.runtime
}
