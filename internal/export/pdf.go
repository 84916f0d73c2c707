package export

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"SketchBoard/internal/state"
)

// WritePDF exports the visible strokes as vector line work on a landscape
// A4 page, scaled so the whole board fits.
func WritePDF(w io.Writer, boardW, boardH int, strokes []state.Stroke) error {
	p := gofpdf.New("L", "mm", "A4", "")
	p.AddPage()

	pageW, pageH := p.GetPageSize()
	scale := pageW / float64(boardW)
	if s := pageH / float64(boardH); s < scale {
		scale = s
	}

	for _, st := range strokes {
		if len(st.Points) == 0 {
			continue
		}
		r, g, b, err := hexRGB(st.Style.Color)
		if err != nil {
			return fmt.Errorf("export: stroke %s: %w", st.ID, err)
		}
		p.SetDrawColor(r, g, b)
		p.SetLineWidth(float64(st.Style.Width) * scale)
		p.SetLineCapStyle("round")
		p.SetLineJoinStyle("round")

		first := st.Points[0]
		last := st.Points[len(st.Points)-1]
		switch st.Shape {
		case state.ShapePen:
			for i := 1; i < len(st.Points); i++ {
				a, c := st.Points[i-1], st.Points[i]
				p.Line(
					float64(a.X)*scale, float64(a.Y)*scale,
					float64(c.X)*scale, float64(c.Y)*scale,
				)
			}
		case state.ShapeLine:
			p.Line(
				float64(first.X)*scale, float64(first.Y)*scale,
				float64(last.X)*scale, float64(last.Y)*scale,
			)
		case state.ShapeRect:
			x, y, w, h := rectOf(first, last, scale)
			p.Rect(x, y, w, h, "D")
		case state.ShapeEllipse:
			x, y, w, h := rectOf(first, last, scale)
			p.Ellipse(x+w/2, y+h/2, w/2, h/2, 0, "D")
		}
	}
	return p.Output(w)
}

// SavePDF writes the exported board to a file.
func SavePDF(path string, boardW, boardH int, strokes []state.Stroke) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("export: create %s: %w", path, err)
	}
	defer f.Close()
	if err := WritePDF(f, boardW, boardH, strokes); err != nil {
		return err
	}
	return f.Close()
}

func rectOf(a, b state.Point, scale float64) (x, y, w, h float64) {
	x1, y1 := float64(a.X)*scale, float64(a.Y)*scale
	x2, y2 := float64(b.X)*scale, float64(b.Y)*scale
	if x2 < x1 {
		x1, x2 = x2, x1
	}
	if y2 < y1 {
		y1, y2 = y2, y1
	}
	return x1, y1, x2 - x1, y2 - y1
}

// hexRGB parses "#RRGGBB" (or "#RGB") into 8-bit channels.
func hexRGB(hex string) (r, g, b int, err error) {
	s := strings.TrimPrefix(hex, "#")
	switch len(s) {
	case 3:
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	case 6:
	default:
		return 0, 0, 0, fmt.Errorf("bad hex color %q", hex)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("bad hex color %q: %w", hex, err)
	}
	return int(v >> 16 & 0xFF), int(v >> 8 & 0xFF), int(v & 0xFF), nil
}
