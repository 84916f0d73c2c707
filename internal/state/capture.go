package state

// Capture turns raw pointer events into a stroke. It is a two-state machine:
// Idle until Begin, Capturing until End. Extend and End while Idle are
// no-ops, never errors.
type Capture struct {
	active *Stroke
}

// Capturing reports whether a stroke is in progress.
func (c *Capture) Capturing() bool {
	return c.active != nil
}

// Begin starts a new stroke containing exactly p. It has no drawing side
// effect; there is nothing to connect the point to yet. Beginning while a
// stroke is already active discards the unfinished stroke first.
func (c *Capture) Begin(p Point, shape Shape, style Style) {
	c.active = newStroke(p, shape, style)
}

// Extend feeds the next pointer position into the active stroke. For pen
// strokes the point is appended; for shape strokes the release point is
// re-anchored so the stroke always holds [anchor, current]. It returns the
// previous point so the caller can render the incremental segment, and
// ok=false while Idle.
func (c *Capture) Extend(p Point) (prev Point, ok bool) {
	if c.active == nil {
		return Point{}, false
	}
	prev = c.active.Points[len(c.active.Points)-1]
	if c.active.Shape == ShapePen {
		c.active.Points = append(c.active.Points, p)
	} else if len(c.active.Points) == 1 {
		c.active.Points = append(c.active.Points, p)
	} else {
		c.active.Points[len(c.active.Points)-1] = p
	}
	return prev, true
}

// End freezes the active stroke, clears the capture state and returns the
// stroke for committing. While Idle it returns ok=false.
func (c *Capture) End() (Stroke, bool) {
	if c.active == nil {
		return Stroke{}, false
	}
	s := *c.active
	c.active = nil
	return s, true
}

// Active returns a copy of the in-progress stroke for preview rendering,
// or ok=false while Idle.
func (c *Capture) Active() (Stroke, bool) {
	if c.active == nil {
		return Stroke{}, false
	}
	return c.active.Clone(), true
}
