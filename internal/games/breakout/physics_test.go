package breakout

import (
	"errors"
	"math"
	"math/rand/v2"
	"testing"

	"github.com/vovakirdan/tui-breaker/internal/config"
	"github.com/vovakirdan/tui-breaker/internal/core"
)

const eps = 1e-9

func approx(a, b float64) bool {
	return math.Abs(a-b) < eps
}

func defaultPaddle() *Paddle {
	cfg := config.Default()
	return NewPaddle(cfg.Paddle, cfg.World, ControlKeys)
}

func TestNewBallLaunchesUpward(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	for range 20 {
		b := NewBall(400, 300, 8, 4, rng)
		if b.VY != -4 {
			t.Errorf("VY = %v, expected -4", b.VY)
		}
		if b.VX != 4 && b.VX != -4 {
			t.Errorf("VX = %v, expected ±4", b.VX)
		}
		if b.X != 400 || b.Y != 300 {
			t.Errorf("position = (%v, %v), expected (400, 300)", b.X, b.Y)
		}
	}
}

func TestBallUpdateMoves(t *testing.T) {
	var events core.Events
	b := &Ball{X: 400, Y: 300, Radius: 8, VX: 4, VY: -4}
	b.Update(800, &events)

	if b.X != 404 || b.Y != 296 {
		t.Errorf("position = (%v, %v), expected (404, 296)", b.X, b.Y)
	}
	if events.Len() != 0 {
		t.Errorf("events = %v, expected none", events.Drain())
	}
}

func TestBallTopBounce(t *testing.T) {
	var events core.Events
	b := &Ball{X: 400, Y: 10, Radius: 8, VX: 0, VY: -4}

	b.Update(800, &events)
	if b.VY != 4 {
		t.Fatalf("VY = %v, expected 4", b.VY)
	}

	b.Update(800, &events)
	got := events.Drain()
	if n := core.CountCues(got, core.CueBounce); n != 1 {
		t.Errorf("bounce cues = %d, expected 1 (%v)", n, got)
	}
}

func TestBallWallBouncePreservesSpeed(t *testing.T) {
	tests := []struct {
		name   string
		ball   Ball
		wantVX float64
		wantVY float64
	}{
		{"left wall", Ball{X: 10, Y: 300, Radius: 8, VX: -4, VY: 3}, 4, 3},
		{"right wall", Ball{X: 790, Y: 300, Radius: 8, VX: 4, VY: -3}, -4, -3},
		{"top wall", Ball{X: 400, Y: 9, Radius: 8, VX: 2, VY: -5}, 2, 5},
		{"corner", Ball{X: 9, Y: 9, Radius: 8, VX: -4, VY: -4}, 4, 4},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var events core.Events
			b := tc.ball
			before := b.Speed()

			b.Update(800, &events)

			if b.VX != tc.wantVX || b.VY != tc.wantVY {
				t.Errorf("velocity = (%v, %v), expected (%v, %v)", b.VX, b.VY, tc.wantVX, tc.wantVY)
			}
			if !approx(b.Speed(), before) {
				t.Errorf("speed = %v, expected %v", b.Speed(), before)
			}
			if core.CountCues(events.Drain(), core.CueBounce) == 0 {
				t.Error("expected a bounce cue")
			}
		})
	}
}

func TestBallDoesNotStickToWall(t *testing.T) {
	var events core.Events
	// Still overlapping the left wall but already moving away
	b := &Ball{X: 2, Y: 300, Radius: 8, VX: 4, VY: 0}
	b.Update(800, &events)

	if b.VX != 4 {
		t.Errorf("VX = %v, expected 4", b.VX)
	}
	if events.Len() != 0 {
		t.Errorf("events = %v, expected none", events.Drain())
	}
}

func TestBallLost(t *testing.T) {
	tests := []struct {
		y    float64
		lost bool
	}{
		{599, false},
		{600, false},
		{600.5, true},
		{700, true},
	}
	for _, tc := range tests {
		b := &Ball{X: 400, Y: tc.y, Radius: 8}
		if got := b.Lost(600); got != tc.lost {
			t.Errorf("Lost() at y=%v = %v, expected %v", tc.y, got, tc.lost)
		}
	}
}

func TestBouncePaddle(t *testing.T) {
	maxAngle := 60 * math.Pi / 180

	tests := []struct {
		name    string
		ballX   float64
		wantDir int // sign of VX after the bounce
	}{
		{"centre", 400, 0},
		{"right edge", 450, 1},
		{"left edge", 350, -1},
		{"past left edge", 345, -1},
		{"right half", 430, 1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var events core.Events
			p := defaultPaddle() // X 350, Y 550, 100x15
			b := &Ball{X: tc.ballX, Y: 545, Radius: 8, VX: 3, VY: 4}
			before := b.Speed()

			if !b.BouncePaddle(p, maxAngle, &events) {
				t.Fatal("BouncePaddle() = false, expected true")
			}
			if b.VY >= 0 {
				t.Errorf("VY = %v, expected negative", b.VY)
			}
			if !approx(b.Speed(), before) {
				t.Errorf("speed = %v, expected %v", b.Speed(), before)
			}
			switch {
			case tc.wantDir == 0 && math.Abs(b.VX) > eps:
				t.Errorf("VX = %v, expected 0", b.VX)
			case tc.wantDir > 0 && b.VX <= 0:
				t.Errorf("VX = %v, expected positive", b.VX)
			case tc.wantDir < 0 && b.VX >= 0:
				t.Errorf("VX = %v, expected negative", b.VX)
			}
			if n := core.CountCues(events.Drain(), core.CueBounce); n != 1 {
				t.Errorf("bounce cues = %d, expected 1", n)
			}
		})
	}
}

func TestBouncePaddleEdgeAngle(t *testing.T) {
	var events core.Events
	maxAngle := 60 * math.Pi / 180
	p := defaultPaddle()
	b := &Ball{X: 450, Y: 545, Radius: 8, VX: 0, VY: 5}

	b.BouncePaddle(p, maxAngle, &events)

	angle := math.Atan2(b.VX, -b.VY)
	if !approx(angle, maxAngle) {
		t.Errorf("angle = %v, expected %v", angle, maxAngle)
	}
}

func TestBouncePaddleIgnored(t *testing.T) {
	tests := []struct {
		name string
		ball Ball
	}{
		{"moving up", Ball{X: 400, Y: 545, Radius: 8, VX: 0, VY: -4}},
		{"above paddle", Ball{X: 400, Y: 500, Radius: 8, VX: 0, VY: 4}},
		{"beside paddle", Ball{X: 300, Y: 555, Radius: 8, VX: 0, VY: 4}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var events core.Events
			b := tc.ball
			if b.BouncePaddle(defaultPaddle(), math.Pi/3, &events) {
				t.Error("BouncePaddle() = true, expected false")
			}
			if b != tc.ball {
				t.Errorf("ball changed to %+v", b)
			}
			if events.Len() != 0 {
				t.Error("expected no events")
			}
		})
	}
}

func TestPaddleUpdate(t *testing.T) {
	tests := []struct {
		name  string
		mode  ControlMode
		start float64
		sig   ControlSignal
		want  float64
	}{
		{"key left", ControlKeys, 350, ControlSignal{Left: true}, 342},
		{"key right", ControlKeys, 350, ControlSignal{Right: true}, 358},
		{"key both", ControlKeys, 350, ControlSignal{Left: true, Right: true}, 350},
		{"key clamp left", ControlKeys, 3, ControlSignal{Left: true}, 0},
		{"key clamp right", ControlKeys, 695, ControlSignal{Right: true}, 700},
		{"key ignores pointer", ControlKeys, 350, ControlSignal{Pointer: core.Pointer{X: 10, Valid: true}}, 350},
		{"pointer centres", ControlPointer, 350, ControlSignal{Pointer: core.Pointer{X: 200, Valid: true}}, 150},
		{"pointer clamp left", ControlPointer, 350, ControlSignal{Pointer: core.Pointer{X: 10, Valid: true}}, 0},
		{"pointer clamp right", ControlPointer, 350, ControlSignal{Pointer: core.Pointer{X: 790, Valid: true}}, 700},
		{"pointer missing", ControlPointer, 123, ControlSignal{}, 123},
		{"pointer ignores keys", ControlPointer, 350, ControlSignal{Left: true}, 350},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := defaultPaddle()
			p.Mode = tc.mode
			p.X = tc.start
			p.Update(tc.sig, 800)
			if p.X != tc.want {
				t.Errorf("X = %v, expected %v", p.X, tc.want)
			}
		})
	}
}

func TestPaddleToggleMode(t *testing.T) {
	p := defaultPaddle()
	p.ToggleMode()
	if p.Mode != ControlPointer {
		t.Errorf("Mode = %v, expected pointer", p.Mode)
	}
	p.ToggleMode()
	if p.Mode != ControlKeys {
		t.Errorf("Mode = %v, expected keys", p.Mode)
	}
}

func defaultGrid(t *testing.T) GridSpec {
	t.Helper()
	grid, err := GridSpecFromConfig(config.Default().Bricks)
	if err != nil {
		t.Fatal(err)
	}
	return grid
}

func TestNewFieldLayout(t *testing.T) {
	f, err := NewField(defaultGrid(t), 800)
	if err != nil {
		t.Fatalf("NewField() failed: %v", err)
	}

	if f.Len() != 80 || f.CountLive() != 80 {
		t.Fatalf("Len() = %d, CountLive() = %d, expected 80", f.Len(), f.CountLive())
	}

	tests := []struct {
		index int
		rect  core.Rect
		color core.Color
	}{
		{0, core.NewRect(2.5, 50, 75, 25), core.ColorRed},
		{11, core.NewRect(82.5, 80, 75, 25), core.ColorOrange},
		{79, core.NewRect(722.5, 260, 75, 25), core.ColorPink},
	}
	for _, tc := range tests {
		b := f.At(tc.index)
		if b.Rect != tc.rect {
			t.Errorf("At(%d).Rect = %+v, expected %+v", tc.index, b.Rect, tc.rect)
		}
		if b.Color != tc.color {
			t.Errorf("At(%d).Color = %v, expected %v", tc.index, b.Color, tc.color)
		}
	}
}

func TestNewFieldPaletteCycles(t *testing.T) {
	grid := defaultGrid(t)
	grid.Rows = 3
	grid.Palette = []core.Color{core.ColorBlue, core.ColorGreen}

	f, err := NewField(grid, 800)
	if err != nil {
		t.Fatal(err)
	}
	if got := f.At(2 * grid.Cols).Color; got != core.ColorBlue {
		t.Errorf("row 2 color = %v, expected blue", got)
	}
}

func TestNewFieldInvalid(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*GridSpec)
		screenW float64
	}{
		{"zero rows", func(g *GridSpec) { g.Rows = 0 }, 800},
		{"negative cols", func(g *GridSpec) { g.Cols = -2 }, 800},
		{"zero width", func(g *GridSpec) { g.Width = 0 }, 800},
		{"negative padding", func(g *GridSpec) { g.Padding = -1 }, 800},
		{"wider than screen", func(g *GridSpec) {}, 700},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			grid := defaultGrid(t)
			tc.mutate(&grid)
			if _, err := NewField(grid, tc.screenW); !errors.Is(err, ErrInvalidGrid) {
				t.Errorf("NewField() error = %v, expected ErrInvalidGrid", err)
			}
		})
	}
}

func TestFieldDestroyIsIdempotent(t *testing.T) {
	f, err := NewField(defaultGrid(t), 800)
	if err != nil {
		t.Fatal(err)
	}

	if !f.Destroy(3) {
		t.Fatal("first Destroy() = false, expected true")
	}
	if f.Destroy(3) {
		t.Error("second Destroy() = true, expected false")
	}
	if f.Destroy(-1) || f.Destroy(80) {
		t.Error("Destroy() out of range should be false")
	}
	if f.CountLive() != 79 {
		t.Errorf("CountLive() = %d, expected 79", f.CountLive())
	}
	if len(f.Live()) != 79 {
		t.Errorf("len(Live()) = %d, expected 79", len(f.Live()))
	}
}

func TestFieldCloneIsIndependent(t *testing.T) {
	f, err := NewField(defaultGrid(t), 800)
	if err != nil {
		t.Fatal(err)
	}
	clone := f.Clone()
	clone.Destroy(0)

	if f.CountLive() != 80 || f.At(0).Destroyed {
		t.Error("destroying a brick in the clone changed the original")
	}
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name      string
		ball      Ball
		wantIndex int
		wantAxis  Axis
		wantVX    float64
		wantVY    float64
	}{
		// Touches brick 0 from below without reaching row 1
		{"from below", Ball{X: 40, Y: 70, Radius: 8, VX: 1, VY: -4}, 0, AxisY, 1, 4},
		// Straddles bricks 0 and 1; row-major order picks brick 0
		{"from the side", Ball{X: 85, Y: 62.5, Radius: 8, VX: -4, VY: 1}, 0, AxisX, 4, 1},
		{"miss", Ball{X: 400, Y: 400, Radius: 8, VX: 4, VY: -4}, -1, AxisNone, 4, -4},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f, err := NewField(defaultGrid(t), 800)
			if err != nil {
				t.Fatal(err)
			}
			var events core.Events
			b := tc.ball

			out := Resolve(&b, f, &events)

			if out.Index != tc.wantIndex || out.Axis != tc.wantAxis {
				t.Errorf("Resolve() = %+v, expected index %d axis %v", out, tc.wantIndex, tc.wantAxis)
			}
			if b.VX != tc.wantVX || b.VY != tc.wantVY {
				t.Errorf("velocity = (%v, %v), expected (%v, %v)", b.VX, b.VY, tc.wantVX, tc.wantVY)
			}

			cues := core.CountCues(events.Drain(), core.CueBrickBreak)
			if tc.wantIndex >= 0 {
				if !out.Hit || out.Points != BrickPoints || cues != 1 || f.CountLive() != 79 {
					t.Errorf("hit = %v, points = %d, cues = %d, live = %d", out.Hit, out.Points, cues, f.CountLive())
				}
			} else if out.Hit || cues != 0 || f.CountLive() != 80 {
				t.Errorf("miss reported hit = %v, cues = %d, live = %d", out.Hit, cues, f.CountLive())
			}
		})
	}
}

func TestResolveDestroyedBrickScoresOnce(t *testing.T) {
	f, err := NewField(defaultGrid(t), 800)
	if err != nil {
		t.Fatal(err)
	}
	var events core.Events
	b := Ball{X: 40, Y: 70, Radius: 8, VX: 0, VY: -4}

	first := Resolve(&b, f, &events)
	second := Resolve(&b, f, &events)

	if !first.Hit {
		t.Fatal("first Resolve() missed")
	}
	if second.Hit {
		t.Errorf("second Resolve() = %+v, expected a miss on the destroyed brick", second)
	}
	if n := core.CountCues(events.Drain(), core.CueBrickBreak); n != 1 {
		t.Errorf("brick_break cues = %d, expected 1", n)
	}
}
