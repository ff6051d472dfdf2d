// Package breakout implements the brick breaker simulation: paddle, ball,
// brick field, collision resolution and the session state machine.
package breakout

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/tui-breaker/internal/config"
	"github.com/vovakirdan/tui-breaker/internal/core"
)

// ErrInvalidGrid is returned when a brick grid cannot be laid out.
var ErrInvalidGrid = errors.New("breakout: invalid brick grid")

// GridSpec describes the brick wall layout.
type GridSpec struct {
	Rows, Cols    int
	Width, Height float64 // Brick size
	Padding       float64 // Gap between neighbouring bricks
	Top           float64 // Y of the first row
	Palette       []core.Color
}

// GridSpecFromConfig builds a grid spec from the brick configuration.
func GridSpecFromConfig(cfg config.Bricks) (GridSpec, error) {
	palette, err := cfg.ColorPalette()
	if err != nil {
		return GridSpec{}, fmt.Errorf("%w: %w", ErrInvalidGrid, err)
	}
	return GridSpec{
		Rows:    cfg.Rows,
		Cols:    cfg.Cols,
		Width:   cfg.Width,
		Height:  cfg.Height,
		Padding: cfg.Padding,
		Top:     cfg.Top,
		Palette: palette,
	}, nil
}

// RowWidth returns the horizontal extent of one row of bricks.
func (s GridSpec) RowWidth() float64 {
	return float64(s.Cols)*(s.Width+s.Padding) - s.Padding
}

// ColorForRow returns the palette color of a row, cycling when there are
// more rows than colors.
func (s GridSpec) ColorForRow(row int) core.Color {
	if len(s.Palette) == 0 {
		return core.ColorDefault
	}
	return s.Palette[row%len(s.Palette)]
}

// Brick is one cell of the wall.
type Brick struct {
	Rect      core.Rect
	Color     core.Color
	Row, Col  int
	Destroyed bool
}

// Field is the brick wall. Bricks are stored row-major and never move.
type Field struct {
	spec   GridSpec
	bricks []Brick
	live   int
}

// NewField lays out a rows x cols grid centred horizontally on a screen of
// width screenW. Every brick starts live.
func NewField(spec GridSpec, screenW float64) (*Field, error) {
	switch {
	case spec.Rows <= 0 || spec.Cols <= 0:
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidGrid, spec.Rows, spec.Cols)
	case spec.Width <= 0 || spec.Height <= 0:
		return nil, fmt.Errorf("%w: brick size %vx%v", ErrInvalidGrid, spec.Width, spec.Height)
	case spec.Padding < 0:
		return nil, fmt.Errorf("%w: negative padding %v", ErrInvalidGrid, spec.Padding)
	case spec.RowWidth() > screenW:
		return nil, fmt.Errorf("%w: row width %v exceeds screen width %v", ErrInvalidGrid, spec.RowWidth(), screenW)
	}

	offsetX := (screenW - spec.RowWidth()) / 2

	f := &Field{
		spec:   spec,
		bricks: make([]Brick, 0, spec.Rows*spec.Cols),
	}
	for row := range spec.Rows {
		for col := range spec.Cols {
			f.bricks = append(f.bricks, Brick{
				Rect: core.NewRect(
					offsetX+float64(col)*(spec.Width+spec.Padding),
					spec.Top+float64(row)*(spec.Height+spec.Padding),
					spec.Width,
					spec.Height,
				),
				Color: spec.ColorForRow(row),
				Row:   row,
				Col:   col,
			})
		}
	}
	f.live = len(f.bricks)
	return f, nil
}

// Clone creates a deep copy of the field (for reset).
func (f *Field) Clone() *Field {
	clone := &Field{
		spec:   f.spec,
		bricks: make([]Brick, len(f.bricks)),
		live:   f.live,
	}
	copy(clone.bricks, f.bricks)
	return clone
}

// Spec returns the layout the field was built from.
func (f *Field) Spec() GridSpec {
	return f.spec
}

// Len returns the total number of bricks, live or not.
func (f *Field) Len() int {
	return len(f.bricks)
}

// At returns the brick at row-major index i.
func (f *Field) At(i int) Brick {
	return f.bricks[i]
}

// CountLive returns the number of bricks not yet destroyed.
func (f *Field) CountLive() int {
	return f.live
}

// Cleared reports whether every brick has been destroyed.
func (f *Field) Cleared() bool {
	return f.live == 0
}

// Live returns copies of the bricks still standing, in row-major order.
func (f *Field) Live() []Brick {
	out := make([]Brick, 0, f.live)
	for _, b := range f.bricks {
		if !b.Destroyed {
			out = append(out, b)
		}
	}
	return out
}

// Destroy marks brick i destroyed. Destroyed bricks stay destroyed: a second
// call returns false and changes nothing.
func (f *Field) Destroy(i int) bool {
	if i < 0 || i >= len(f.bricks) || f.bricks[i].Destroyed {
		return false
	}
	f.bricks[i].Destroyed = true
	f.live--
	return true
}
