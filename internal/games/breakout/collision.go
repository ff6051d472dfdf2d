package breakout

import (
	"math"

	"github.com/vovakirdan/tui-breaker/internal/core"
)

// BrickPoints is the score awarded per destroyed brick.
const BrickPoints = 10

// Axis is the velocity component reversed by a collision.
type Axis int

const (
	AxisNone Axis = iota
	AxisX
	AxisY
)

// String returns the axis name.
func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	default:
		return "none"
	}
}

// CollisionOutcome reports the result of one brick pass.
type CollisionOutcome struct {
	Hit    bool
	Index  int // Row-major index of the destroyed brick, -1 when nothing was hit
	Points int
	Axis   Axis
}

// Resolve checks the ball against the live bricks in row-major order and
// destroys the first one it overlaps. At most one brick breaks per call.
// The ball reverses along the axis of greater centre-to-centre separation;
// ties reverse the vertical component.
func Resolve(ball *Ball, field *Field, events *core.Events) CollisionOutcome {
	bounds := ball.Bounds()

	for i := range field.bricks {
		brick := &field.bricks[i]
		if brick.Destroyed || !bounds.Intersects(brick.Rect) {
			continue
		}

		field.Destroy(i)
		events.Cue(core.CueBrickBreak)

		cx, cy := brick.Rect.Center()
		axis := AxisY
		if math.Abs(ball.X-cx) > math.Abs(ball.Y-cy) {
			ball.BounceX()
			axis = AxisX
		} else {
			ball.BounceY()
		}

		return CollisionOutcome{
			Hit:    true,
			Index:  i,
			Points: BrickPoints,
			Axis:   axis,
		}
	}

	return CollisionOutcome{Index: -1}
}
