package state

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Point is a single canvas coordinate. Points are never mutated after they
// are recorded into a stroke.
type Point struct {
	X float32 `json:"x"`
	Y float32 `json:"y"`
}

// Shape selects how a stroke's points are interpreted when rendered.
type Shape string

const (
	// ShapePen is a freehand polyline through every recorded point.
	ShapePen Shape = "pen"
	// ShapeLine is a straight segment between the first and last point.
	ShapeLine Shape = "line"
	// ShapeRect is the outline of the rectangle spanned by the first and
	// last point.
	ShapeRect Shape = "rect"
	// ShapeEllipse is the outline of the ellipse inscribed in that rectangle.
	ShapeEllipse Shape = "ellipse"
)

// Style carries the visual attributes of a stroke. Color is a hex string
// such as "#1A2B3C".
type Style struct {
	Color string  `json:"color"`
	Width float32 `json:"width"`
}

// Validate reports whether the style can be drawn at all.
func (s Style) Validate() error {
	if s.Color == "" {
		return fmt.Errorf("style: empty color")
	}
	if s.Width <= 0 {
		return fmt.Errorf("style: width %v is not positive", s.Width)
	}
	return nil
}

// Stroke is one pointer-down-to-pointer-up gesture. A single-point pen
// stroke is degenerate but valid and renders as a dot. Once committed to
// the history a stroke is immutable.
type Stroke struct {
	ID     string    `json:"id"`
	Shape  Shape     `json:"shape"`
	Points []Point   `json:"points"`
	Style  Style     `json:"style"`
	Time   time.Time `json:"time"`
}

func newStroke(p Point, shape Shape, style Style) *Stroke {
	return &Stroke{
		ID:     uuid.NewString(),
		Shape:  shape,
		Points: []Point{p},
		Style:  style,
		Time:   time.Now(),
	}
}

// Clone returns a deep copy so callers can hold a stroke without aliasing
// the history's point slices.
func (s Stroke) Clone() Stroke {
	pts := make([]Point, len(s.Points))
	copy(pts, s.Points)
	s.Points = pts
	return s
}
