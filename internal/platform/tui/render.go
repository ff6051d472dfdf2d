package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-breaker/internal/core"
	"github.com/vovakirdan/tui-breaker/internal/games/breakout"
)

// Visual characters for rendering
const (
	BrickChar  = '█'
	PaddleChar = '▀'
	BallChar   = '●'
)

// colorStyles maps core.Color to lipgloss styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault: lipgloss.NewStyle(),
	core.ColorBlack:   lipgloss.NewStyle().Foreground(lipgloss.Color("0")),
	core.ColorWhite:   lipgloss.NewStyle().Foreground(lipgloss.Color("15")),
	core.ColorRed:     lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	core.ColorOrange:  lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
	core.ColorYellow:  lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
	core.ColorGreen:   lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
	core.ColorCyan:    lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
	core.ColorBlue:    lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
	core.ColorPurple:  lipgloss.NewStyle().Foreground(lipgloss.Color("5")),
	core.ColorPink:    lipgloss.NewStyle().Foreground(lipgloss.Color("218")),
	core.ColorGray:    lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			startColor := s.GetCell(x, y).Color

			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			style, ok := colorStyles[startColor]
			if !ok {
				style = colorStyles[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}

// viewport maps world pixels onto the terminal cells inside the playfield box.
// Row 0 holds the HUD, the box spans rows 1..H-2, the last row is left for help.
type viewport struct {
	x0, y0     int // First interior cell
	cols, rows int // Interior size in cells
	worldW     float64
	worldH     float64
	sx, sy     float64 // Cells per world pixel
	screenW    int
	screenH    int
	tooSmall   bool
}

const (
	minScreenW = 20
	minScreenH = 8
)

func newViewport(screenW, screenH int, worldW, worldH float64) viewport {
	v := viewport{
		x0:      1,
		y0:      2,
		cols:    screenW - 2,
		rows:    screenH - 4,
		worldW:  worldW,
		worldH:  worldH,
		screenW: screenW,
		screenH: screenH,
	}
	if screenW < minScreenW || screenH < minScreenH || worldW <= 0 || worldH <= 0 {
		v.tooSmall = true
		return v
	}
	v.sx = float64(v.cols) / worldW
	v.sy = float64(v.rows) / worldH
	return v
}

// span converts a world interval to a half-open cell range, at least one cell wide.
func span(from, to, scale float64, limit int) (int, int) {
	start := int(math.Floor(from * scale))
	end := int(math.Floor(to * scale))
	if end <= start {
		end = start + 1
	}
	return core.Clamp(start, 0, limit), core.Clamp(end, 0, limit)
}

// fillRect paints a world rectangle.
func (v viewport) fillRect(s *core.Screen, r core.Rect, ch rune, c core.Color) {
	x0, x1 := span(r.X, r.Right(), v.sx, v.cols)
	y0, y1 := span(r.Y, r.Bottom(), v.sy, v.rows)
	s.FillCells(v.x0+x0, v.y0+y0, x1-x0, y1-y0, ch, c)
}

// cell returns the screen cell of a world point.
func (v viewport) cell(x, y float64) (int, int) {
	cx := core.Clamp(int(x*v.sx), 0, v.cols-1)
	cy := core.Clamp(int(y*v.sy), 0, v.rows-1)
	return v.x0 + cx, v.y0 + cy
}

// WorldX converts a terminal column to the world x at the centre of that column.
func (v viewport) WorldX(col int) float64 {
	if v.tooSmall || v.cols <= 0 {
		return 0
	}
	c := core.Clamp(col-v.x0, 0, v.cols-1)
	return (float64(c) + 0.5) / v.sx
}

// drawSnapshot renders a snapshot with HUD and overlays onto the screen.
func drawSnapshot(s *core.Screen, v viewport, snap breakout.Snapshot) {
	s.Clear()

	if v.tooSmall {
		s.DrawTextCentered(s.Height()/2, fmt.Sprintf("Terminal too small (%dx%d)", v.screenW, v.screenH))
		return
	}

	s.DrawTextColor(1, 0, fmt.Sprintf("Score: %d", snap.Score), core.ColorWhite)
	lives := fmt.Sprintf("Lives: %d", snap.Lives)
	s.DrawTextColor(s.Width()/2-len(lives)/2, 0, lives, core.ColorWhite)
	mode := "mode: " + snap.Control
	s.DrawTextColor(s.Width()-len(mode)-1, 0, mode, core.ColorGray)

	s.DrawBox(0, 1, v.cols+2, v.rows+2)

	for _, b := range snap.Bricks {
		v.fillRect(s, b.Rect, BrickChar, b.Color)
	}
	v.fillRect(s, snap.Paddle, PaddleChar, core.ColorWhite)

	bx, by := v.cell(snap.Ball.X, snap.Ball.Y)
	if snap.Ball.Y <= snap.WorldH {
		s.SetCell(bx, by, BallChar, core.ColorWhite)
	}

	drawOverlay(s, v, snap)
}

func drawOverlay(s *core.Screen, v viewport, snap breakout.Snapshot) {
	var lines []string
	color := core.ColorWhite

	switch snap.Phase {
	case breakout.PhaseStart.String():
		lines = []string{"B R E A K O U T", "", "Press SPACE to start", "m toggles mouse control"}
	case breakout.PhaseEnd.String():
		title := "GAME OVER!"
		color = core.ColorRed
		if snap.Outcome == breakout.OutcomeWin.String() {
			title = "YOU WIN!"
			color = core.ColorGreen
		}
		lines = []string{title, fmt.Sprintf("Final score: %d", snap.Score), "", "Press SPACE to restart"}
	default:
		if !snap.Paused {
			return
		}
		lines = []string{"PAUSED", "", "Press P to resume"}
	}

	top := v.y0 + v.rows*2/3 - len(lines)/2
	for i, line := range lines {
		if line == "" {
			continue
		}
		x := v.x0 + (v.cols-len([]rune(line)))/2
		s.DrawTextColor(x, top+i, line, color)
	}
}
