package render

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"SketchBoard/internal/state"
)

const background = "#FFFFFF"

func testRenderer() *Renderer {
	return New(120, 90, background)
}

func penStroke(id, color string, width float32, pts ...state.Point) state.Stroke {
	return state.Stroke{
		ID:     id,
		Shape:  state.ShapePen,
		Points: pts,
		Style:  state.Style{Color: color, Width: width},
	}
}

func mustPNG(t *testing.T, r *Renderer, strokes []state.Stroke) []byte {
	t.Helper()
	data, err := r.PNG(strokes)
	require.NoError(t, err)
	return data
}

func TestRenderIsDeterministic(t *testing.T) {
	r := testRenderer()
	strokes := []state.Stroke{
		penStroke("a", "#000000", 4, state.Point{X: 10, Y: 10}, state.Point{X: 60, Y: 40}, state.Point{X: 100, Y: 20}),
		penStroke("b", "#FF0000", 2, state.Point{X: 5, Y: 80}, state.Point{X: 110, Y: 5}),
	}

	first := mustPNG(t, r, strokes)
	second := mustPNG(t, r, strokes)
	assert.True(t, bytes.Equal(first, second))
}

func TestRenderPNGDecodes(t *testing.T) {
	r := testRenderer()
	data := mustPNG(t, r, nil)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 120, img.Bounds().Dx())
	assert.Equal(t, 90, img.Bounds().Dy())
}

func TestUndoThenRedoRestoresPixels(t *testing.T) {
	r := testRenderer()
	h := state.NewHistory()
	h.CommitStroke(penStroke("a", "#000000", 4, state.Point{X: 10, Y: 10}, state.Point{X: 50, Y: 50}))
	h.CommitStroke(penStroke("b", "#0000FF", 6, state.Point{X: 20, Y: 70}, state.Point{X: 90, Y: 30}))

	before := mustPNG(t, r, h.Visible())

	require.True(t, h.Undo())
	afterUndo := mustPNG(t, r, h.Visible())
	assert.False(t, bytes.Equal(before, afterUndo))

	require.True(t, h.Redo())
	afterRedo := mustPNG(t, r, h.Visible())
	assert.True(t, bytes.Equal(before, afterRedo))
}

func TestClearThenUndoRestoresPixels(t *testing.T) {
	r := testRenderer()
	h := state.NewHistory()
	h.CommitStroke(penStroke("a", "#000000", 4, state.Point{X: 10, Y: 10}, state.Point{X: 50, Y: 50}))
	h.CommitStroke(penStroke("b", "#00FF00", 3, state.Point{X: 15, Y: 60}, state.Point{X: 80, Y: 20}))

	before := mustPNG(t, r, h.Visible())
	blank := mustPNG(t, r, nil)

	h.Clear()
	assert.True(t, bytes.Equal(blank, mustPNG(t, r, h.Visible())))

	require.True(t, h.Undo())
	assert.True(t, bytes.Equal(before, mustPNG(t, r, h.Visible())))
}

func TestEraserStrokeRestoresBackground(t *testing.T) {
	r := testRenderer()
	blank := mustPNG(t, r, nil)

	// Erasing is drawing with the background color; a wider eraser pass
	// over the same centerline must leave the surface pixel-identical to
	// an empty board.
	drawn := penStroke("pen", "#000000", 4, state.Point{X: 20, Y: 20}, state.Point{X: 80, Y: 70})
	eraser := penStroke("erase", background, 14, state.Point{X: 20, Y: 20}, state.Point{X: 80, Y: 70})

	erased := mustPNG(t, r, []state.Stroke{drawn, eraser})
	assert.True(t, bytes.Equal(blank, erased))
}

func TestRenderSinglePointDot(t *testing.T) {
	r := testRenderer()
	blank := mustPNG(t, r, nil)
	dot := mustPNG(t, r, []state.Stroke{penStroke("dot", "#000000", 8, state.Point{X: 60, Y: 45})})
	assert.False(t, bytes.Equal(blank, dot))
}

func TestRenderShapes(t *testing.T) {
	r := testRenderer()
	for _, shape := range []state.Shape{state.ShapeLine, state.ShapeRect, state.ShapeEllipse} {
		s := state.Stroke{
			ID:     string(shape),
			Shape:  shape,
			Points: []state.Point{{X: 15, Y: 15}, {X: 100, Y: 70}},
			Style:  state.Style{Color: "#000000", Width: 3},
		}
		data, err := r.PNG([]state.Stroke{s})
		require.NoError(t, err, "shape %s", shape)
		assert.False(t, bytes.Equal(data, mustPNG(t, r, nil)), "shape %s drew nothing", shape)
	}
}

func TestRenderUnknownShapeFails(t *testing.T) {
	r := testRenderer()
	s := state.Stroke{
		ID:     "bad",
		Shape:  state.Shape("scribble"),
		Points: []state.Point{{X: 1, Y: 1}, {X: 2, Y: 2}},
		Style:  state.Style{Color: "#000000", Width: 3},
	}
	_, err := r.PNG([]state.Stroke{s})
	assert.Error(t, err)
}
