package valueobjects

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

const (
	DefaultGarmentColor = "#1e40af"
	genericColorName    = "colored"
)

var colorNames = map[string]string{
	"#1e40af": "navy blue",
	"#334155": "charcoal",
	"#166534": "forest green",
	"#9f1239": "burgundy",
	"#7e22ce": "royal purple",
	"#c2410c": "rust orange",
}

// ColorName returns a human readable name for prompt text. Lookup is
// case-insensitive; unmapped codes get a generic label.
func ColorName(hex string) string {
	if name, ok := colorNames[strings.ToLower(hex)]; ok {
		return name
	}
	return genericColorName
}

// Color is a 24-bit garment color. The text is kept as supplied so the name
// lookup sees exactly what the client sent.
type Color struct {
	hex string
	raw string
	rgb colorful.Color
}

// ParseColor accepts "#rrggbb", "rrggbb" and the short "#rgb" form.
func ParseColor(hex string) (Color, error) {
	s := strings.TrimSpace(hex)
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	if len(s) != 7 && len(s) != 4 {
		return Color{}, fmt.Errorf("%w: invalid garment color %q", ErrValidation, hex)
	}

	c, err := colorful.Hex(s)
	if err != nil {
		return Color{}, fmt.Errorf("%w: invalid garment color %q", ErrValidation, hex)
	}

	return Color{hex: s, raw: hex, rgb: c}, nil
}

func (c Color) Hex() string {
	return c.hex
}

func (c Color) Name() string {
	return ColorName(c.raw)
}

// NRGBA returns the color at the given opacity, optionally darkened by shade
// (1 keeps the color, 0.8 is 80% luminance).
func (c Color) NRGBA(alpha uint8, shade float64) color.NRGBA {
	shaded := c.rgb
	if shade > 0 && shade != 1 {
		shaded = colorful.Color{R: c.rgb.R * shade, G: c.rgb.G * shade, B: c.rgb.B * shade}.Clamped()
	}
	r, g, b := shaded.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: alpha}
}
