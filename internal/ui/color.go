package ui

import (
	"image/color"
	"strconv"
	"strings"
)

// hexToColor parses "#RRGGBB" into an opaque NRGBA, falling back to black
// on malformed input so a bad setting never breaks rendering.
func hexToColor(hex string) color.Color {
	s := strings.TrimPrefix(hex, "#")
	if len(s) == 3 {
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil || len(s) != 6 {
		return color.NRGBA{A: 255}
	}
	return color.NRGBA{
		R: uint8(v >> 16),
		G: uint8(v >> 8),
		B: uint8(v),
		A: 255,
	}
}

// colorToHex renders a color as the "#RRGGBB" form the stroke model stores.
func colorToHex(c color.Color) string {
	r, g, b, _ := c.RGBA()
	const hexdigits = "0123456789ABCDEF"
	out := make([]byte, 0, 7)
	out = append(out, '#')
	for _, v := range []uint32{r >> 8, g >> 8, b >> 8} {
		out = append(out, hexdigits[v>>4], hexdigits[v&0xF])
	}
	return string(out)
}
