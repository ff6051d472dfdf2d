// Package config provides YAML/TOML-based game configuration loading and
// validation for the brick breaker.
package config

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/tui-breaker/internal/core"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Control mode names accepted by Paddle.Control.
const (
	ControlKeys    = "keys"
	ControlPointer = "pointer"
)

// Breakout contains all configuration for the brick breaker.
type Breakout struct {
	World    World    `yaml:"world" toml:"world"`
	Paddle   Paddle   `yaml:"paddle" toml:"paddle"`
	Ball     Ball     `yaml:"ball" toml:"ball"`
	Bricks   Bricks   `yaml:"bricks" toml:"bricks"`
	Gameplay Gameplay `yaml:"gameplay" toml:"gameplay"`
	Audio    Audio    `yaml:"audio" toml:"audio"`
}

// World defines the playfield size in pixels.
type World struct {
	Width  float64 `yaml:"width" toml:"width"`
	Height float64 `yaml:"height" toml:"height"`
}

// Paddle defines paddle parameters.
type Paddle struct {
	Width        float64 `yaml:"width" toml:"width"`
	Height       float64 `yaml:"height" toml:"height"`
	Speed        float64 `yaml:"speed" toml:"speed"`                 // Pixels per tick in key mode
	BottomOffset float64 `yaml:"bottom_offset" toml:"bottom_offset"` // Paddle top = world height - offset
	Control      string  `yaml:"control" toml:"control"`             // "keys" or "pointer"
}

// Ball defines ball parameters.
type Ball struct {
	Radius         float64 `yaml:"radius" toml:"radius"`
	Speed          float64 `yaml:"speed" toml:"speed"`                       // Per-axis launch speed
	MaxBounceAngle float64 `yaml:"max_bounce_angle" toml:"max_bounce_angle"` // Degrees from vertical
}

// Bricks defines the brick grid layout.
type Bricks struct {
	Rows    int      `yaml:"rows" toml:"rows"`
	Cols    int      `yaml:"cols" toml:"cols"`
	Width   float64  `yaml:"width" toml:"width"`
	Height  float64  `yaml:"height" toml:"height"`
	Padding float64  `yaml:"padding" toml:"padding"`
	Top     float64  `yaml:"top" toml:"top"`
	Palette []string `yaml:"palette" toml:"palette"`
}

// Gameplay defines session rules.
type Gameplay struct {
	Lives int `yaml:"lives" toml:"lives"`
}

// Audio defines the sound player settings.
type Audio struct {
	Enabled  bool    `yaml:"enabled" toml:"enabled"`
	Volume   float64 `yaml:"volume" toml:"volume"`       // 0.0 - 1.0
	CueRate  float64 `yaml:"cue_rate" toml:"cue_rate"`   // Max cues of one name per second
	CueBurst int     `yaml:"cue_burst" toml:"cue_burst"` // Burst allowance per cue name
}

// ColorPalette resolves the configured brick row colors.
func (b Bricks) ColorPalette() ([]core.Color, error) {
	palette := make([]core.Color, 0, len(b.Palette))
	for _, name := range b.Palette {
		c, err := core.ParseColor(name)
		if err != nil {
			return nil, err
		}
		palette = append(palette, c)
	}
	return palette, nil
}

// Validate checks the configuration and reports every problem found.
func (c Breakout) Validate() error {
	var errs []error
	add := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalidConfig}, args...)...))
	}

	if c.World.Width <= 0 || c.World.Height <= 0 {
		add("world size must be positive, got %vx%v", c.World.Width, c.World.Height)
	}

	if c.Paddle.Width <= 0 || c.Paddle.Height <= 0 {
		add("paddle size must be positive, got %vx%v", c.Paddle.Width, c.Paddle.Height)
	}
	if c.Paddle.Width > c.World.Width {
		add("paddle width %v exceeds world width %v", c.Paddle.Width, c.World.Width)
	}
	if c.Paddle.Speed < 0 {
		add("paddle speed must not be negative, got %v", c.Paddle.Speed)
	}
	if c.Paddle.BottomOffset <= 0 || c.Paddle.BottomOffset > c.World.Height {
		add("paddle bottom_offset must be within (0, %v], got %v", c.World.Height, c.Paddle.BottomOffset)
	}
	if c.Paddle.Control != ControlKeys && c.Paddle.Control != ControlPointer {
		add("paddle control must be %q or %q, got %q", ControlKeys, ControlPointer, c.Paddle.Control)
	}

	if c.Ball.Radius <= 0 {
		add("ball radius must be positive, got %v", c.Ball.Radius)
	}
	if c.Ball.Speed <= 0 {
		add("ball speed must be positive, got %v", c.Ball.Speed)
	}
	if c.Ball.MaxBounceAngle <= 0 || c.Ball.MaxBounceAngle >= 90 {
		add("ball max_bounce_angle must be within (0, 90), got %v", c.Ball.MaxBounceAngle)
	}

	if c.Bricks.Rows <= 0 || c.Bricks.Cols <= 0 {
		add("brick grid must have positive rows and cols, got %dx%d", c.Bricks.Rows, c.Bricks.Cols)
	}
	if c.Bricks.Width <= 0 || c.Bricks.Height <= 0 {
		add("brick size must be positive, got %vx%v", c.Bricks.Width, c.Bricks.Height)
	}
	if c.Bricks.Padding < 0 {
		add("brick padding must not be negative, got %v", c.Bricks.Padding)
	}
	if len(c.Bricks.Palette) == 0 {
		add("brick palette must not be empty")
	} else if _, err := c.Bricks.ColorPalette(); err != nil {
		add("brick palette: %v", err)
	}

	if c.Gameplay.Lives <= 0 {
		add("lives must be positive, got %d", c.Gameplay.Lives)
	}

	if c.Audio.Volume < 0 || c.Audio.Volume > 1 {
		add("audio volume must be within [0, 1], got %v", c.Audio.Volume)
	}
	if c.Audio.CueRate < 0 || c.Audio.CueBurst < 0 {
		add("audio cue_rate and cue_burst must not be negative")
	}

	return errors.Join(errs...)
}
