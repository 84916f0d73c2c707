package export

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"SketchBoard/internal/render"
	"SketchBoard/internal/state"
)

func sampleStrokes() []state.Stroke {
	return []state.Stroke{
		{
			ID:     "pen",
			Shape:  state.ShapePen,
			Points: []state.Point{{X: 10, Y: 10}, {X: 40, Y: 25}, {X: 70, Y: 10}},
			Style:  state.Style{Color: "#000000", Width: 4},
		},
		{
			ID:     "rect",
			Shape:  state.ShapeRect,
			Points: []state.Point{{X: 20, Y: 40}, {X: 90, Y: 80}},
			Style:  state.Style{Color: "#FF0000", Width: 2},
		},
		{
			ID:     "ellipse",
			Shape:  state.ShapeEllipse,
			Points: []state.Point{{X: 30, Y: 30}, {X: 60, Y: 60}},
			Style:  state.Style{Color: "#00F", Width: 1},
		},
	}
}

func TestSavePNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "board.png")
	r := render.New(120, 90, "#FFFFFF")

	require.NoError(t, SavePNG(path, r, sampleStrokes()))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 120, img.Bounds().Dx())
	assert.Equal(t, 90, img.Bounds().Dy())
}

func TestSavePDF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "board.pdf")

	require.NoError(t, SavePDF(path, 120, 90, sampleStrokes()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, len(data) > 0)
	assert.Equal(t, "%PDF", string(data[:4]))
}

func TestWritePDFRejectsBadColor(t *testing.T) {
	bad := []state.Stroke{{
		ID:     "bad",
		Shape:  state.ShapePen,
		Points: []state.Point{{X: 0, Y: 0}, {X: 1, Y: 1}},
		Style:  state.Style{Color: "not-a-color", Width: 1},
	}}
	var buf bytes.Buffer
	assert.Error(t, WritePDF(&buf, 120, 90, bad))
}

func TestHexRGB(t *testing.T) {
	r, g, b, err := hexRGB("#1A2B3C")
	require.NoError(t, err)
	assert.Equal(t, []int{0x1A, 0x2B, 0x3C}, []int{r, g, b})

	r, g, b, err = hexRGB("#F00")
	require.NoError(t, err)
	assert.Equal(t, []int{0xFF, 0, 0}, []int{r, g, b})

	_, _, _, err = hexRGB("#12345")
	assert.Error(t, err)
}
