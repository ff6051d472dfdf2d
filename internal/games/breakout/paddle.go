package breakout

import (
	"github.com/vovakirdan/tui-breaker/internal/config"
	"github.com/vovakirdan/tui-breaker/internal/core"
)

// ControlMode selects how the paddle reads its input.
type ControlMode int

const (
	ControlKeys    ControlMode = iota // Held left/right flags, fixed speed per tick
	ControlPointer                    // Paddle centred on a horizontal pointer
)

// String returns the config name of the mode.
func (m ControlMode) String() string {
	if m == ControlPointer {
		return config.ControlPointer
	}
	return config.ControlKeys
}

// ParseControlMode maps a config name to a mode. Unknown names select keys.
func ParseControlMode(name string) ControlMode {
	if name == config.ControlPointer {
		return ControlPointer
	}
	return ControlKeys
}

// ControlSignal is the paddle input sampled once per tick.
type ControlSignal struct {
	Left    bool
	Right   bool
	Pointer core.Pointer
}

// SignalFromInput extracts the paddle signal from an input frame.
func SignalFromInput(in core.InputFrame) ControlSignal {
	return ControlSignal{
		Left:    in.Has(core.ActionLeft),
		Right:   in.Has(core.ActionRight),
		Pointer: in.Pointer,
	}
}

// Paddle represents the player's paddle.
type Paddle struct {
	X, Y          float64 // Top-left corner
	Width, Height float64
	Speed         float64 // Pixels per tick in key mode
	Mode          ControlMode
}

// NewPaddle creates a paddle centred horizontally, offset from the bottom of the world.
func NewPaddle(cfg config.Paddle, world config.World, mode ControlMode) *Paddle {
	return &Paddle{
		X:      world.Width/2 - cfg.Width/2,
		Y:      world.Height - cfg.BottomOffset,
		Width:  cfg.Width,
		Height: cfg.Height,
		Speed:  cfg.Speed,
		Mode:   mode,
	}
}

// Update moves the paddle from the control signal and clamps it to [0, screenW-Width].
// In pointer mode a missing pointer sample leaves the paddle where it is.
func (p *Paddle) Update(sig ControlSignal, screenW float64) {
	switch p.Mode {
	case ControlPointer:
		if sig.Pointer.Valid {
			p.X = sig.Pointer.X - p.Width/2
		}
	default:
		if sig.Left {
			p.X -= p.Speed
		}
		if sig.Right {
			p.X += p.Speed
		}
	}

	p.X = core.ClampF(p.X, 0, max(0, screenW-p.Width))
}

// ToggleMode switches between key and pointer control.
func (p *Paddle) ToggleMode() {
	if p.Mode == ControlPointer {
		p.Mode = ControlKeys
	} else {
		p.Mode = ControlPointer
	}
}

// Bounds returns the paddle rectangle.
func (p *Paddle) Bounds() core.Rect {
	return core.NewRect(p.X, p.Y, p.Width, p.Height)
}

// CenterX returns the paddle's horizontal centre.
func (p *Paddle) CenterX() float64 {
	return p.X + p.Width/2
}
