// Package render rasterises game snapshots to images at world resolution.
package render

import (
	"fmt"
	"image"
	"image/color"
	"io"

	"github.com/fogleman/gg"

	"github.com/vovakirdan/tui-breaker/internal/games/breakout"
)

// Options tunes frame rendering.
type Options struct {
	FontPath string  // TrueType font for text; empty uses the built-in bitmap face
	FontSize float64 // Points, only with FontPath
}

const outline = 2.0

var (
	background = color.Black
	foreground = color.White
)

// Frame draws the snapshot: bricks with a black outline, paddle, ball,
// score and lives, and the phase overlay.
func Frame(snap breakout.Snapshot, opts Options) image.Image {
	return draw(snap, opts).Image()
}

// EncodePNG writes the rendered frame as PNG.
func EncodePNG(w io.Writer, snap breakout.Snapshot, opts Options) error {
	if err := draw(snap, opts).EncodePNG(w); err != nil {
		return fmt.Errorf("render: encode png: %w", err)
	}
	return nil
}

// SavePNG writes the rendered frame to a PNG file.
func SavePNG(path string, snap breakout.Snapshot, opts Options) error {
	if err := draw(snap, opts).SavePNG(path); err != nil {
		return fmt.Errorf("render: save %s: %w", path, err)
	}
	return nil
}

func draw(snap breakout.Snapshot, opts Options) *gg.Context {
	w, h := int(snap.WorldW), int(snap.WorldH)
	dc := gg.NewContext(w, h)

	if opts.FontPath != "" {
		size := opts.FontSize
		if size <= 0 {
			size = 24
		}
		// Fall back to the bitmap face silently; text is decoration
		_ = dc.LoadFontFace(opts.FontPath, size)
	}

	dc.SetColor(background)
	dc.Clear()

	for _, b := range snap.Bricks {
		dc.SetColor(b.Color.RGBA())
		dc.DrawRectangle(b.Rect.X, b.Rect.Y, b.Rect.W, b.Rect.H)
		dc.Fill()

		dc.SetColor(background)
		dc.SetLineWidth(outline)
		dc.DrawRectangle(b.Rect.X, b.Rect.Y, b.Rect.W, b.Rect.H)
		dc.Stroke()
	}

	dc.SetColor(foreground)
	dc.DrawRectangle(snap.Paddle.X, snap.Paddle.Y, snap.Paddle.W, snap.Paddle.H)
	dc.Fill()

	dc.DrawCircle(snap.Ball.X, snap.Ball.Y, snap.Ball.R)
	dc.Fill()

	dc.DrawString(fmt.Sprintf("Score: %d", snap.Score), 10, 30)
	dc.DrawStringAnchored(fmt.Sprintf("Lives: %d", snap.Lives), snap.WorldW-10, 30, 1, 0)

	drawOverlay(dc, snap)
	return dc
}

func drawOverlay(dc *gg.Context, snap breakout.Snapshot) {
	cx, cy := snap.WorldW/2, snap.WorldH/2

	var title, hint string
	switch snap.Phase {
	case breakout.PhaseStart.String():
		title, hint = "BREAKOUT", "Press SPACE to start"
	case breakout.PhaseEnd.String():
		title = "GAME OVER!"
		if snap.Outcome == breakout.OutcomeWin.String() {
			title = "YOU WIN!"
		}
		hint = "Press SPACE to restart"
	default:
		if !snap.Paused {
			return
		}
		title = "PAUSED"
	}

	dc.SetColor(foreground)
	dc.DrawStringAnchored(title, cx, cy+60, 0.5, 0.5)
	if hint != "" {
		dc.DrawStringAnchored(hint, cx, cy+90, 0.5, 0.5)
	}
}
