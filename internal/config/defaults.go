package config

import (
	_ "embed"
)

//go:embed defaults/breakout.yaml
var defaultBreakoutYAML []byte

// Default returns the built-in configuration: an 800x600 world with an 8x10
// brick wall, a 100px paddle and three lives.
func Default() Breakout {
	return Breakout{
		World: World{
			Width:  800,
			Height: 600,
		},
		Paddle: Paddle{
			Width:        100,
			Height:       15,
			Speed:        8,
			BottomOffset: 50,
			Control:      ControlKeys,
		},
		Ball: Ball{
			Radius:         8,
			Speed:          4,
			MaxBounceAngle: 60,
		},
		Bricks: Bricks{
			Rows:    8,
			Cols:    10,
			Width:   75,
			Height:  25,
			Padding: 5,
			Top:     50,
			Palette: []string{"red", "orange", "yellow", "green", "cyan", "blue", "purple", "pink"},
		},
		Gameplay: Gameplay{
			Lives: 3,
		},
		Audio: Audio{
			Enabled:  true,
			Volume:   0.5,
			CueRate:  30,
			CueBurst: 4,
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultBreakoutYAML
}
