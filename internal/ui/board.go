package ui

import (
	"image/color"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"SketchBoard/internal/state"
)

// BoardWidget is the interactive drawing surface. Pointer handlers are thin
// adapters over the capture state machine and the history log; the widget
// itself keeps no drawing logic beyond translating strokes into canvas
// primitives.
type BoardWidget struct {
	widget.BaseWidget

	mu      sync.RWMutex
	history *state.History
	capture state.Capture

	background string
	brushColor string
	brushWidth float32
	tool       state.Shape
	eraser     bool

	// OnCommit fires after a stroke lands in the history.
	OnCommit func(state.Stroke)
	// OnHistoryChange fires after undo, redo or clear.
	OnHistoryChange func()
}

var _ fyne.Widget = (*BoardWidget)(nil)
var _ fyne.Draggable = (*BoardWidget)(nil)
var _ desktop.Mouseable = (*BoardWidget)(nil)

func NewBoardWidget(h *state.History, background, brushColor string, brushWidth float32) *BoardWidget {
	b := &BoardWidget{
		history:    h,
		background: background,
		brushColor: brushColor,
		brushWidth: brushWidth,
		tool:       state.ShapePen,
	}
	b.ExtendBaseWidget(b)
	return b
}

func (b *BoardWidget) SetColor(hex string) {
	b.mu.Lock()
	b.brushColor = hex
	b.eraser = false
	b.mu.Unlock()
}

func (b *BoardWidget) SetWidth(w float32) {
	b.mu.Lock()
	b.brushWidth = w
	b.mu.Unlock()
}

func (b *BoardWidget) SetTool(t state.Shape) {
	b.mu.Lock()
	b.tool = t
	b.mu.Unlock()
}

func (b *BoardWidget) SetEraser(on bool) {
	b.mu.Lock()
	b.eraser = on
	b.mu.Unlock()
}

func (b *BoardWidget) Eraser() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.eraser
}

// currentStyle resolves the active drawing style. The eraser is the same
// capture machine drawing with the background color.
func (b *BoardWidget) currentStyle() state.Style {
	b.mu.RLock()
	defer b.mu.RUnlock()
	c := b.brushColor
	if b.eraser {
		c = b.background
	}
	return state.Style{Color: c, Width: b.brushWidth}
}

func (b *BoardWidget) MouseDown(e *desktop.MouseEvent) {
	if e.Button != desktop.MouseButtonPrimary {
		return
	}
	style := b.currentStyle()
	if style.Validate() != nil {
		return
	}
	b.mu.Lock()
	b.capture.Begin(state.Point{X: e.Position.X, Y: e.Position.Y}, b.tool, style)
	b.mu.Unlock()
	b.Refresh()
}

func (b *BoardWidget) Dragged(e *fyne.DragEvent) {
	b.mu.Lock()
	_, ok := b.capture.Extend(state.Point{X: e.Position.X, Y: e.Position.Y})
	b.mu.Unlock()
	if ok {
		b.Refresh()
	}
}

func (b *BoardWidget) DragEnd() {}

func (b *BoardWidget) MouseUp(e *desktop.MouseEvent) {
	if e.Button != desktop.MouseButtonPrimary {
		return
	}
	b.mu.Lock()
	stroke, ok := b.capture.End()
	b.mu.Unlock()
	if !ok {
		return
	}
	b.history.CommitStroke(stroke)
	if b.OnCommit != nil {
		b.OnCommit(stroke)
	}
	b.Refresh()
}

func (b *BoardWidget) MouseIn(*desktop.MouseEvent)    {}
func (b *BoardWidget) MouseOut()                      {}
func (b *BoardWidget) MouseMoved(*desktop.MouseEvent) {}

// Undo rolls back the latest action. Returns false when there was nothing
// to undo.
func (b *BoardWidget) Undo() bool {
	ok := b.history.Undo()
	if ok {
		b.historyChanged()
	}
	return ok
}

// Redo re-applies the most recently undone action.
func (b *BoardWidget) Redo() bool {
	ok := b.history.Redo()
	if ok {
		b.historyChanged()
	}
	return ok
}

// ClearBoard commits an undoable clear action.
func (b *BoardWidget) ClearBoard() {
	b.history.Clear()
	b.historyChanged()
}

func (b *BoardWidget) historyChanged() {
	if b.OnHistoryChange != nil {
		b.OnHistoryChange()
	}
	b.Refresh()
}

func (b *BoardWidget) CreateRenderer() fyne.WidgetRenderer {
	return &boardRenderer{
		board:      b,
		background: canvas.NewRectangle(hexToColor(b.background)),
	}
}

type boardRenderer struct {
	board      *BoardWidget
	background *canvas.Rectangle
}

// Objects rebuilds the full canvas object list from the history on every
// refresh: a full replay, so the visible surface always equals the undo
// stack. The in-progress stroke is appended last as a live preview.
func (r *boardRenderer) Objects() []fyne.CanvasObject {
	strokes := r.board.history.Visible()

	r.board.mu.RLock()
	if active, ok := r.board.capture.Active(); ok {
		strokes = append(strokes, active)
	}
	r.board.mu.RUnlock()

	objects := []fyne.CanvasObject{r.background}
	for _, s := range strokes {
		objects = append(objects, strokeObjects(s)...)
	}
	return objects
}

// strokeObjects converts one stroke into canvas primitives. Fyne lines have
// butt caps, so circles are placed on every joint and endpoint to fake the
// round caps and joins of the offscreen renderer.
func strokeObjects(s state.Stroke) []fyne.CanvasObject {
	if len(s.Points) == 0 {
		return nil
	}
	col := hexToColor(s.Style.Color)
	w := s.Style.Width
	first := s.Points[0]
	last := s.Points[len(s.Points)-1]

	switch s.Shape {
	case state.ShapePen:
		var objs []fyne.CanvasObject
		for i := 0; i+1 < len(s.Points); i++ {
			objs = append(objs, segment(s.Points[i], s.Points[i+1], col, w))
		}
		for _, p := range s.Points {
			objs = append(objs, jointDot(p, col, w))
		}
		return objs
	case state.ShapeLine:
		return []fyne.CanvasObject{
			segment(first, last, col, w),
			jointDot(first, col, w),
			jointDot(last, col, w),
		}
	case state.ShapeRect:
		rect := canvas.NewRectangle(color.Transparent)
		rect.StrokeColor = col
		rect.StrokeWidth = w
		x, y, rw, rh := boundsOf(first, last)
		rect.Move(fyne.NewPos(x, y))
		rect.Resize(fyne.NewSize(rw, rh))
		return []fyne.CanvasObject{rect}
	case state.ShapeEllipse:
		circ := canvas.NewCircle(color.Transparent)
		circ.StrokeColor = col
		circ.StrokeWidth = w
		circ.Position1 = fyne.NewPos(first.X, first.Y)
		circ.Position2 = fyne.NewPos(last.X, last.Y)
		return []fyne.CanvasObject{circ}
	}
	return nil
}

func segment(a, b state.Point, col color.Color, w float32) fyne.CanvasObject {
	line := canvas.NewLine(col)
	line.StrokeWidth = w
	line.Position1 = fyne.NewPos(a.X, a.Y)
	line.Position2 = fyne.NewPos(b.X, b.Y)
	return line
}

func jointDot(p state.Point, col color.Color, w float32) fyne.CanvasObject {
	dot := canvas.NewCircle(col)
	r := w / 2
	dot.Position1 = fyne.NewPos(p.X-r, p.Y-r)
	dot.Position2 = fyne.NewPos(p.X+r, p.Y+r)
	return dot
}

func boundsOf(a, b state.Point) (x, y, w, h float32) {
	x1, y1, x2, y2 := a.X, a.Y, b.X, b.Y
	if x2 < x1 {
		x1, x2 = x2, x1
	}
	if y2 < y1 {
		y1, y2 = y2, y1
	}
	return x1, y1, x2 - x1, y2 - y1
}

func (r *boardRenderer) Layout(size fyne.Size) {
	r.background.Resize(size)
}

func (r *boardRenderer) MinSize() fyne.Size {
	return fyne.NewSize(300, 300)
}

func (r *boardRenderer) Refresh() {
	canvas.Refresh(r.board)
}

func (r *boardRenderer) Destroy() {}
