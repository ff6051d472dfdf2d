package breakout

import (
	"math"
	"math/rand/v2"

	"github.com/vovakirdan/tui-breaker/internal/core"
)

// Ball represents the ball state in world coordinates.
type Ball struct {
	X, Y   float64 // Position (center)
	Radius float64
	VX, VY float64 // Velocity per tick
}

// NewBall creates a ball that launches upward with a random horizontal direction.
// speed is applied to each axis.
func NewBall(x, y, radius, speed float64, rng *rand.Rand) *Ball {
	vx := speed
	if rng.IntN(2) == 0 {
		vx = -speed
	}
	return &Ball{
		X:      x,
		Y:      y,
		Radius: radius,
		VX:     vx,
		VY:     -speed,
	}
}

// Speed returns the velocity magnitude.
func (b *Ball) Speed() float64 {
	return math.Hypot(b.VX, b.VY)
}

// Circle returns the ball's shape.
func (b *Ball) Circle() core.Circle {
	return core.Circle{X: b.X, Y: b.Y, R: b.Radius}
}

// Bounds returns the ball's bounding box.
func (b *Ball) Bounds() core.Rect {
	return b.Circle().Bounds()
}

// BounceX reverses horizontal velocity.
func (b *Ball) BounceX() {
	b.VX = -b.VX
}

// BounceY reverses vertical velocity.
func (b *Ball) BounceY() {
	b.VY = -b.VY
}

// Update moves the ball by its velocity and reflects it off the left, right
// and top walls, queueing a bounce cue per reflection. A wall only reflects a
// ball moving toward it, so a ball still overlapping the wall after a bounce
// is not flipped back. The bottom is open; see Lost.
func (b *Ball) Update(worldW float64, events *core.Events) {
	b.X += b.VX
	b.Y += b.VY

	if (b.X-b.Radius <= 0 && b.VX < 0) || (b.X+b.Radius >= worldW && b.VX > 0) {
		b.BounceX()
		events.Cue(core.CueBounce)
	}
	if b.Y-b.Radius <= 0 && b.VY < 0 {
		b.BounceY()
		events.Cue(core.CueBounce)
	}
}

// Lost reports whether the ball's center has passed the bottom of the world.
func (b *Ball) Lost(worldH float64) bool {
	return b.Y > worldH
}

// BouncePaddle reflects a descending ball that overlaps the paddle.
// The outgoing angle from vertical grows linearly with the distance between the
// impact point and the paddle centre, reaching maxAngle (radians) at either edge.
// Speed is preserved and the ball always leaves upward. Returns true on a bounce.
func (b *Ball) BouncePaddle(p *Paddle, maxAngle float64, events *core.Events) bool {
	if b.VY <= 0 || !b.Bounds().Intersects(p.Bounds()) {
		return false
	}

	events.Cue(core.CueBounce)

	offset := core.ClampF((b.X-p.X)/p.Width, 0, 1)
	angle := (offset - 0.5) * 2 * maxAngle
	speed := b.Speed()

	b.VX = speed * math.Sin(angle)
	b.VY = -math.Abs(speed * math.Cos(angle))
	return true
}
