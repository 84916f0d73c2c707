package export

import (
	"fmt"
	"io"
	"os"

	"SketchBoard/internal/render"
	"SketchBoard/internal/state"
)

// WritePNG renders the strokes through the offscreen renderer and writes
// the result as PNG. Saving is a pixel capture of the replay surface, so
// the file always matches the history's undo stack.
func WritePNG(w io.Writer, r *render.Renderer, strokes []state.Stroke) error {
	return r.EncodePNG(strokes, w)
}

// SavePNG writes the rendered board to a file.
func SavePNG(path string, r *render.Renderer, strokes []state.Stroke) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("export: create %s: %w", path, err)
	}
	defer f.Close()
	if err := WritePNG(f, r, strokes); err != nil {
		return err
	}
	return f.Close()
}
