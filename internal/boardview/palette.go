package boardview

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
)

const DefaultDarkSquare = "#b58863"

type Palette struct {
	Light string
	Dark  string
}

// NewPalette derives both square colours from the dark one. An empty string means the default.
func NewPalette(dark string) (Palette, error) {
	if dark == "" {
		dark = DefaultDarkSquare
	}
	c, err := colorful.Hex(dark)
	if err != nil {
		return Palette{}, fmt.Errorf("parse colour %q: %w", dark, err)
	}
	white := colorful.Color{R: 1, G: 1, B: 1}
	return Palette{
		Light: c.BlendLab(white, 0.6).Clamped().Hex(),
		Dark:  c.Hex(),
	}, nil
}

func (p Palette) Square(dark bool) string {
	if dark {
		return p.Dark
	}
	return p.Light
}
