package core

import (
	"fmt"
	"image/color"
	"strings"
)

// Color identifies a palette entry. Renderers map it to terminal styles or RGB.
type Color uint8

// Predefined colors for game elements.
const (
	ColorDefault Color = iota
	ColorBlack
	ColorWhite
	ColorRed
	ColorOrange
	ColorYellow
	ColorGreen
	ColorCyan
	ColorBlue
	ColorPurple
	ColorPink
	ColorGray
)

var colorNames = map[Color]string{
	ColorDefault: "default",
	ColorBlack:   "black",
	ColorWhite:   "white",
	ColorRed:     "red",
	ColorOrange:  "orange",
	ColorYellow:  "yellow",
	ColorGreen:   "green",
	ColorCyan:    "cyan",
	ColorBlue:    "blue",
	ColorPurple:  "purple",
	ColorPink:    "pink",
	ColorGray:    "gray",
}

var colorRGBA = map[Color]color.RGBA{
	ColorDefault: {255, 255, 255, 255},
	ColorBlack:   {0, 0, 0, 255},
	ColorWhite:   {255, 255, 255, 255},
	ColorRed:     {255, 0, 0, 255},
	ColorOrange:  {255, 165, 0, 255},
	ColorYellow:  {255, 255, 0, 255},
	ColorGreen:   {0, 255, 0, 255},
	ColorCyan:    {0, 255, 255, 255},
	ColorBlue:    {0, 0, 255, 255},
	ColorPurple:  {128, 0, 128, 255},
	ColorPink:    {255, 192, 203, 255},
	ColorGray:    {128, 128, 128, 255},
}

// String returns the lowercase color name.
func (c Color) String() string {
	if name, ok := colorNames[c]; ok {
		return name
	}
	return "unknown"
}

// RGBA returns the 8-bit RGB value used by raster renderers.
func (c Color) RGBA() color.RGBA {
	if rgba, ok := colorRGBA[c]; ok {
		return rgba
	}
	return colorRGBA[ColorDefault]
}

// MarshalText encodes the color by name.
func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText decodes a color name.
func (c *Color) UnmarshalText(text []byte) error {
	parsed, err := ParseColor(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// ParseColor resolves a color name (case-insensitive).
func ParseColor(name string) (Color, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for c, n := range colorNames {
		if n == name {
			return c, nil
		}
	}
	return ColorDefault, fmt.Errorf("core: unknown color %q", name)
}

// DefaultPalette is the row palette of the classic brick wall, top row first.
func DefaultPalette() []Color {
	return []Color{
		ColorRed,
		ColorOrange,
		ColorYellow,
		ColorGreen,
		ColorCyan,
		ColorBlue,
		ColorPurple,
		ColorPink,
	}
}
