// Package render replays committed strokes onto an offscreen surface.
// The software rasterizer is deterministic, so the PNG handed to the save
// dialog, the spectator feed and the AI critic is always a pure function of
// the history's undo stack.
package render

import (
	"bytes"
	"fmt"
	"image"
	"io"

	"github.com/gogpu/gg"

	"SketchBoard/internal/state"
)

// Renderer draws stroke lists onto a fixed-size surface with a flat
// background color.
type Renderer struct {
	width      int
	height     int
	background string
}

func New(width, height int, background string) *Renderer {
	return &Renderer{width: width, height: height, background: background}
}

func (r *Renderer) Size() (w, h int) {
	return r.width, r.height
}

func (r *Renderer) Background() string {
	return r.background
}

// replay draws the background and every stroke in order onto a fresh
// context.
func (r *Renderer) replay(strokes []state.Stroke) (*gg.Context, error) {
	dc := gg.NewContext(r.width, r.height)
	dc.SetHexColor(r.background)
	dc.DrawRectangle(0, 0, float64(r.width), float64(r.height))
	if err := dc.Fill(); err != nil {
		return nil, fmt.Errorf("render: background fill: %w", err)
	}
	for _, s := range strokes {
		if err := drawStroke(dc, s); err != nil {
			return nil, err
		}
	}
	return dc, nil
}

// Image renders the strokes in order onto a fresh surface.
func (r *Renderer) Image(strokes []state.Stroke) (image.Image, error) {
	dc, err := r.replay(strokes)
	if err != nil {
		return nil, err
	}
	return dc.Image(), nil
}

// EncodePNG renders the strokes and writes the surface as PNG.
func (r *Renderer) EncodePNG(strokes []state.Stroke, w io.Writer) error {
	dc, err := r.replay(strokes)
	if err != nil {
		return err
	}
	if err := dc.EncodePNG(w); err != nil {
		return fmt.Errorf("render: encode png: %w", err)
	}
	return nil
}

// PNG is EncodePNG into a byte slice, for the AI critic and the snapshot
// endpoint.
func (r *Renderer) PNG(strokes []state.Stroke) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.EncodePNG(strokes, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func drawStroke(dc *gg.Context, s state.Stroke) error {
	if len(s.Points) == 0 {
		return nil
	}
	dc.SetHexColor(s.Style.Color)
	dc.SetLineWidth(float64(s.Style.Width))
	// Round caps and joins make consecutive short pen segments read as one
	// continuous curve instead of a jagged polyline.
	dc.SetLineCap(gg.LineCapRound)
	dc.SetLineJoin(gg.LineJoinRound)

	first := s.Points[0]
	last := s.Points[len(s.Points)-1]

	switch s.Shape {
	case state.ShapePen:
		if len(s.Points) == 1 {
			// Degenerate stroke: a dot of the brush width.
			dc.DrawCircle(float64(first.X), float64(first.Y), float64(s.Style.Width)/2)
			if err := dc.Fill(); err != nil {
				return fmt.Errorf("render: dot: %w", err)
			}
			return nil
		}
		dc.MoveTo(float64(first.X), float64(first.Y))
		for _, p := range s.Points[1:] {
			dc.LineTo(float64(p.X), float64(p.Y))
		}
	case state.ShapeLine:
		dc.DrawLine(float64(first.X), float64(first.Y), float64(last.X), float64(last.Y))
	case state.ShapeRect:
		x, y, w, h := boundsOf(first, last)
		dc.DrawRectangle(x, y, w, h)
	case state.ShapeEllipse:
		x, y, w, h := boundsOf(first, last)
		dc.DrawEllipse(x+w/2, y+h/2, w/2, h/2)
	default:
		return fmt.Errorf("render: unknown shape %q", s.Shape)
	}
	if err := dc.Stroke(); err != nil {
		return fmt.Errorf("render: stroke %s: %w", s.ID, err)
	}
	return nil
}

func boundsOf(a, b state.Point) (x, y, w, h float64) {
	x1, y1 := float64(a.X), float64(a.Y)
	x2, y2 := float64(b.X), float64(b.Y)
	if x2 < x1 {
		x1, x2 = x2, x1
	}
	if y2 < y1 {
		y1, y2 = y2, y1
	}
	return x1, y1, x2 - x1, y2 - y1
}
