package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-breaker/internal/core"
)

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v, expected nil", err)
	}
}

func TestEmbeddedYAMLMatchesDefault(t *testing.T) {
	var cfg Breakout
	if err := yaml.Unmarshal(DefaultYAML(), &cfg); err != nil {
		t.Fatalf("embedded YAML does not parse: %v", err)
	}
	if !reflect.DeepEqual(cfg, Default()) {
		t.Errorf("embedded YAML = %+v, expected %+v", cfg, Default())
	}
}

func TestLoadFileYAMLPartial(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	content := "bricks:\n  rows: 4\n  cols: 6\ngameplay:\n  lives: 5\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() failed: %v", err)
	}

	if cfg.Bricks.Rows != 4 || cfg.Bricks.Cols != 6 {
		t.Errorf("grid = %dx%d, expected 4x6", cfg.Bricks.Rows, cfg.Bricks.Cols)
	}
	if cfg.Gameplay.Lives != 5 {
		t.Errorf("lives = %d, expected 5", cfg.Gameplay.Lives)
	}
	// Untouched fields keep their defaults
	if cfg.Paddle.Width != 100 {
		t.Errorf("paddle width = %v, expected default 100", cfg.Paddle.Width)
	}
	if cfg.Bricks.Width != 75 {
		t.Errorf("brick width = %v, expected default 75", cfg.Bricks.Width)
	}
}

func TestLoadFileTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.toml")
	content := `
[paddle]
control = "pointer"
width = 120.0

[ball]
speed = 5.0
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() failed: %v", err)
	}

	if cfg.Paddle.Control != ControlPointer {
		t.Errorf("control = %q, expected %q", cfg.Paddle.Control, ControlPointer)
	}
	if cfg.Paddle.Width != 120 {
		t.Errorf("paddle width = %v, expected 120", cfg.Paddle.Width)
	}
	if cfg.Ball.Speed != 5 {
		t.Errorf("ball speed = %v, expected 5", cfg.Ball.Speed)
	}
	if cfg.Ball.Radius != 8 {
		t.Errorf("ball radius = %v, expected default 8", cfg.Ball.Radius)
	}
}

func TestLoadCustomPathErrors(t *testing.T) {
	dir := t.TempDir()

	t.Run("missing file", func(t *testing.T) {
		if _, err := Load(filepath.Join(dir, "nope.yaml")); err == nil {
			t.Error("Load() should fail for a missing custom file")
		}
	})

	t.Run("malformed yaml", func(t *testing.T) {
		path := filepath.Join(dir, "bad.yaml")
		if err := os.WriteFile(path, []byte("bricks: [unclosed"), 0o600); err != nil {
			t.Fatal(err)
		}
		if _, err := Load(path); err == nil {
			t.Error("Load() should fail for malformed YAML")
		}
	})

	t.Run("invalid grid", func(t *testing.T) {
		path := filepath.Join(dir, "grid.yaml")
		if err := os.WriteFile(path, []byte("bricks:\n  rows: 0\n  cols: -3\n"), 0o600); err != nil {
			t.Fatal(err)
		}
		_, err := Load(path)
		if !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("Load() error = %v, expected ErrInvalidConfig", err)
		}
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Breakout)
	}{
		{"zero rows", func(c *Breakout) { c.Bricks.Rows = 0 }},
		{"negative cols", func(c *Breakout) { c.Bricks.Cols = -1 }},
		{"zero brick width", func(c *Breakout) { c.Bricks.Width = 0 }},
		{"negative brick height", func(c *Breakout) { c.Bricks.Height = -25 }},
		{"negative padding", func(c *Breakout) { c.Bricks.Padding = -1 }},
		{"empty palette", func(c *Breakout) { c.Bricks.Palette = nil }},
		{"unknown palette color", func(c *Breakout) { c.Bricks.Palette = []string{"red", "mauve"} }},
		{"zero lives", func(c *Breakout) { c.Gameplay.Lives = 0 }},
		{"unknown control", func(c *Breakout) { c.Paddle.Control = "joystick" }},
		{"paddle wider than world", func(c *Breakout) { c.Paddle.Width = 900 }},
		{"right angle bounce", func(c *Breakout) { c.Ball.MaxBounceAngle = 90 }},
		{"zero ball speed", func(c *Breakout) { c.Ball.Speed = 0 }},
		{"volume too loud", func(c *Breakout) { c.Audio.Volume = 2 }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Validate() = %v, expected ErrInvalidConfig", err)
			}
		})
	}
}

func TestColorPalette(t *testing.T) {
	b := Bricks{Palette: []string{"Red", " orange ", "PINK"}}
	palette, err := b.ColorPalette()
	if err != nil {
		t.Fatalf("ColorPalette() failed: %v", err)
	}

	expected := []core.Color{core.ColorRed, core.ColorOrange, core.ColorPink}
	if !reflect.DeepEqual(palette, expected) {
		t.Errorf("ColorPalette() = %v, expected %v", palette, expected)
	}
}
