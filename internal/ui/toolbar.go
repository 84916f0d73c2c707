package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"SketchBoard/internal/state"
)

// colorSwatch is a tappable square of paint.
type colorSwatch struct {
	widget.BaseWidget
	Color    color.Color
	OnTapped func(color.Color)
}

func newColorSwatch(c color.Color, tapped func(color.Color)) *colorSwatch {
	s := &colorSwatch{Color: c, OnTapped: tapped}
	s.ExtendBaseWidget(s)
	return s
}

func (s *colorSwatch) CreateRenderer() fyne.WidgetRenderer {
	rect := canvas.NewRectangle(s.Color)
	rect.SetMinSize(fyne.NewSize(28, 28))

	border := canvas.NewRectangle(color.Transparent)
	border.StrokeColor = color.Gray{Y: 150}
	border.StrokeWidth = 1

	return widget.NewSimpleRenderer(container.NewStack(rect, border))
}

func (s *colorSwatch) Tapped(_ *fyne.PointEvent) {
	if s.OnTapped != nil {
		s.OnTapped(s.Color)
	}
}

var toolNames = map[string]state.Shape{
	"Pen":       state.ShapePen,
	"Line":      state.ShapeLine,
	"Rectangle": state.ShapeRect,
	"Ellipse":   state.ShapeEllipse,
}

// newToolbar assembles the tool strip across the top of the window.
func newToolbar(a *App) fyne.CanvasObject {
	tools := widget.NewRadioGroup([]string{"Pen", "Line", "Rectangle", "Ellipse"}, func(name string) {
		if shape, ok := toolNames[name]; ok {
			a.board.SetTool(shape)
		}
	})
	tools.Horizontal = true
	tools.SetSelected("Pen")

	a.eraserCheck = widget.NewCheck("Eraser", a.board.SetEraser)

	onColorTapped := func(c color.Color) {
		a.board.SetColor(colorToHex(c))
		// Picking a color always drops out of eraser mode.
		a.eraserCheck.SetChecked(false)
	}
	colorBox := container.NewHBox(
		newColorSwatch(color.Black, onColorTapped),
		newColorSwatch(color.NRGBA{R: 255, A: 255}, onColorTapped),
		newColorSwatch(color.NRGBA{G: 160, A: 255}, onColorTapped),
		newColorSwatch(color.NRGBA{B: 255, A: 255}, onColorTapped),
		newColorSwatch(color.NRGBA{R: 255, G: 200, A: 255}, onColorTapped),
	)

	widthSlider := widget.NewSlider(1, 30)
	widthSlider.SetValue(float64(a.cfg.Board.BrushWidth))
	widthSlider.OnChanged = func(v float64) {
		a.board.SetWidth(float32(v))
	}
	sliderBox := container.New(layout.NewGridWrapLayout(fyne.NewSize(140, 35)), widthSlider)

	edit := widget.NewToolbar(
		widget.NewToolbarAction(theme.ContentUndoIcon(), func() { a.undo() }),
		widget.NewToolbarAction(theme.ContentRedoIcon(), func() { a.redo() }),
		widget.NewToolbarAction(theme.DeleteIcon(), func() { a.clear() }),
		widget.NewToolbarSeparator(),
		widget.NewToolbarAction(theme.DocumentSaveIcon(), func() { a.savePNG() }),
		widget.NewToolbarAction(theme.DocumentPrintIcon(), func() { a.exportPDF() }),
	)

	a.analyzeBtn = widget.NewButtonWithIcon("Analyze (AI)", theme.SearchIcon(), func() { a.analyze() })

	return container.NewHBox(
		widget.NewLabel("Tool:"),
		tools,
		a.eraserCheck,
		widget.NewSeparator(),
		widget.NewLabel("Color:"),
		colorBox,
		widget.NewSeparator(),
		widget.NewLabel("Size:"),
		sliderBox,
		widget.NewSeparator(),
		edit,
		a.analyzeBtn,
		layout.NewSpacer(),
	)
}
