package ui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"

	"SketchBoard/internal/ai"
	"SketchBoard/internal/config"
	"SketchBoard/internal/export"
	"SketchBoard/internal/render"
	"SketchBoard/internal/share"
	"SketchBoard/internal/state"
)

const analyzeTimeout = 90 * time.Second

// App owns the whole per-session application state: the window, the board
// widget, the history it draws from and the optional collaborators.
type App struct {
	cfg      config.Config
	history  *state.History
	renderer *render.Renderer
	analyzer ai.Analyzer
	feed     *share.Server
	log      *slog.Logger

	fyneApp fyne.App
	window  fyne.Window
	board   *BoardWidget
	status  *widget.Label

	analyzeBtn  *widget.Button
	eraserCheck *widget.Check
}

// New wires the UI around an already-constructed core. analyzer and feed
// may be nil when unconfigured.
func New(cfg config.Config, history *state.History, renderer *render.Renderer,
	analyzer ai.Analyzer, feed *share.Server, logger *slog.Logger) *App {

	a := &App{
		cfg:      cfg,
		history:  history,
		renderer: renderer,
		analyzer: analyzer,
		feed:     feed,
		log:      logger,
	}

	a.fyneApp = app.New()
	a.window = a.fyneApp.NewWindow("SketchBoard")
	a.window.Resize(fyne.NewSize(float32(cfg.Board.Width), float32(cfg.Board.Height)))

	a.board = NewBoardWidget(history, cfg.Board.Background, cfg.Board.BrushColor, cfg.Board.BrushWidth)
	a.board.OnCommit = a.strokeCommitted
	a.board.OnHistoryChange = a.historyChanged

	a.status = widget.NewLabel("Ready")
	bottom := container.NewHBox(a.status)
	if feed != nil {
		bottom.Add(widget.NewLabel("Sharing: " + feed.ShareLink()))
	}

	content := container.NewBorder(newToolbar(a), bottom, nil, nil, a.board)
	a.window.SetContent(content)
	a.bindShortcuts()

	return a
}

// Run shows the window and blocks until it closes.
func (a *App) Run() {
	a.window.ShowAndRun()
}

func (a *App) bindShortcuts() {
	cv := a.window.Canvas()
	cv.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyZ, Modifier: fyne.KeyModifierControl},
		func(fyne.Shortcut) { a.undo() })
	cv.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyY, Modifier: fyne.KeyModifierControl},
		func(fyne.Shortcut) { a.redo() })
	cv.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyS, Modifier: fyne.KeyModifierControl},
		func(fyne.Shortcut) { a.savePNG() })
	cv.SetOnTypedKey(func(ev *fyne.KeyEvent) {
		if ev.Name == fyne.KeyE {
			a.eraserCheck.SetChecked(!a.board.Eraser())
		}
	})
}

func (a *App) strokeCommitted(s state.Stroke) {
	a.status.SetText(fmt.Sprintf("%d actions", a.history.Len()))
	if a.feed != nil {
		go a.feed.BroadcastStroke(s)
	}
}

func (a *App) historyChanged() {
	if a.feed != nil {
		go a.feed.BroadcastRefresh()
	}
}

func (a *App) undo() {
	if !a.board.Undo() {
		a.status.SetText("Nothing to undo")
		return
	}
	a.status.SetText("Undone")
}

func (a *App) redo() {
	if !a.board.Redo() {
		a.status.SetText("Nothing to redo")
		return
	}
	a.status.SetText("Redone")
}

func (a *App) clear() {
	a.board.ClearBoard()
	a.status.SetText("Cleared (undo to restore)")
}

func (a *App) savePNG() {
	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		if writer == nil {
			return // cancelled
		}
		defer writer.Close()
		if err := export.WritePNG(writer, a.renderer, a.history.Visible()); err != nil {
			a.log.Error("save png failed", "err", err)
			dialog.ShowError(err, a.window)
			return
		}
		a.status.SetText("Saved " + writer.URI().Name())
	}, a.window)
	d.SetFileName("sketch.png")
	d.SetFilter(storage.NewExtensionFileFilter([]string{".png"}))
	d.Show()
}

func (a *App) exportPDF() {
	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		if writer == nil {
			return
		}
		defer writer.Close()
		w, h := a.renderer.Size()
		if err := export.WritePDF(writer, w, h, a.history.Visible()); err != nil {
			a.log.Error("export pdf failed", "err", err)
			dialog.ShowError(err, a.window)
			return
		}
		a.status.SetText("Exported " + writer.URI().Name())
	}, a.window)
	d.SetFileName("sketch.pdf")
	d.SetFilter(storage.NewExtensionFileFilter([]string{".pdf"}))
	d.Show()
}

// analyze captures the board and asks the configured critic about it on a
// worker goroutine. The trigger is disabled until the call finishes so
// requests never overlap; results are marshaled back to the UI thread.
func (a *App) analyze() {
	if a.analyzer == nil {
		dialog.ShowInformation("AI not configured",
			"Set GEMINI_API_KEY (Google Gemini) or HF_API_TOKEN (Hugging Face) to enable AI analysis.",
			a.window)
		return
	}

	pngData, err := a.renderer.PNG(a.history.Visible())
	if err != nil {
		dialog.ShowError(err, a.window)
		return
	}

	a.analyzeBtn.Disable()
	a.status.SetText("Analyzing with " + a.analyzer.Name() + "...")

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), analyzeTimeout)
		defer cancel()
		result, err := a.analyzer.Analyze(ctx, pngData)

		fyne.Do(func() {
			a.analyzeBtn.Enable()
			if err != nil {
				a.status.SetText("Analysis failed")
				if errors.Is(err, ai.ErrModelLoading) {
					dialog.ShowInformation("AI Analysis", err.Error(), a.window)
					return
				}
				a.log.Error("analysis failed", "provider", a.analyzer.Name(), "err", err)
				dialog.ShowError(err, a.window)
				return
			}
			a.status.SetText("Analysis complete")
			dialog.ShowInformation("AI Analysis", result.String(), a.window)
		})
	}()
}
