// Main application window wiring the editor core to the widget tree
package gui

import (
	"fmt"
	"log/slog"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"interactive-image-editor/internal/config"
	"interactive-image-editor/internal/core"
)

// Application represents the main editor window
type Application struct {
	app    fyne.App
	window fyne.Window
	logger *slog.Logger

	editor *core.Editor

	// GUI components
	canvas       *ImageCanvas
	controls     *ControlPanel
	historyPanel *HistoryPanel
	menuHandler  *MenuHandler
	statusLabel  *widget.Label

	mainContent *container.Split
}

func NewApplication(app fyne.App, editor *core.Editor, cfg *config.Config, logger *slog.Logger) *Application {
	window := app.NewWindow("🖼️ Image Editor")
	window.Resize(fyne.NewSize(float32(cfg.Window.Width), float32(cfg.Window.Height)))
	window.CenterOnScreen()

	appInstance := &Application{
		app:    app,
		window: window,
		logger: logger,
		editor: editor,
	}

	appInstance.initializeGUI(cfg)
	appInstance.setupLayout()
	appInstance.setupCallbacks()
	appInstance.setupShortcuts()

	return appInstance
}

func (a *Application) initializeGUI(cfg *config.Config) {
	a.canvas = NewImageCanvas(a.logger)
	a.controls = NewControlPanel(a.editor, cfg.Preview.DebounceMs, a.logger)
	a.historyPanel = NewHistoryPanel()
	a.menuHandler = NewMenuHandler(a.window, a.editor, a.logger)
	a.statusLabel = widget.NewLabel("Open an image to start editing")
	a.statusLabel.Wrapping = fyne.TextWrapWord
}

func (a *Application) setupLayout() {
	statusCard := widget.NewCard("📊 Status", "", a.statusLabel)

	rightPanels := container.NewVSplit(
		container.NewScroll(a.controls.GetContainer()),
		container.NewVBox(statusCard, a.historyPanel.GetContainer()),
	)
	rightPanels.SetOffset(0.7)

	a.mainContent = container.NewHSplit(
		container.NewPadded(a.canvas.GetContainer()),
		rightPanels,
	)
	a.mainContent.SetOffset(0.72)

	a.window.SetMainMenu(a.menuHandler.GetMainMenu())
	a.window.SetContent(a.mainContent)
}

func (a *Application) setupCallbacks() {
	a.menuHandler.SetCallbacks(
		// onImageLoaded
		func(path string) {
			a.controls.Enable()
			a.refreshAll()
		},
		// onImageSaved
		func(path string) {
			a.setStatus(fmt.Sprintf("Saved to %s", path))
		},
	)

	a.controls.SetCallbacks(
		// onEdited: a committed edit, undo/redo or reset happened
		func() {
			a.refreshAll()
		},
		// onPreview: live preview updated, no history change
		func() {
			a.refreshWorkingImage()
		},
		// onError
		func(err error) {
			a.showError("Processing Error", err)
		},
	)
}

func (a *Application) setupShortcuts() {
	canvas := a.window.Canvas()

	canvas.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyZ, Modifier: fyne.KeyModifierControl}, func(fyne.Shortcut) {
		if a.editor.Undo() {
			a.refreshAll()
		}
	})
	canvas.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyY, Modifier: fyne.KeyModifierControl}, func(fyne.Shortcut) {
		if a.editor.Redo() {
			a.refreshAll()
		}
	})
	canvas.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyO, Modifier: fyne.KeyModifierControl}, func(fyne.Shortcut) {
		a.menuHandler.OpenImage()
	})
	canvas.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyS, Modifier: fyne.KeyModifierControl}, func(fyne.Shortcut) {
		a.menuHandler.SaveImage()
	})
}

// refreshAll redraws both views, the history log and the status line.
func (a *Application) refreshAll() {
	a.refreshWorkingImage()

	if original, err := a.editor.OriginalImage(); err == nil {
		a.canvas.UpdateOriginal(original)
	}

	a.historyPanel.SetEntries(a.editor.History())
	a.controls.SetUndoRedoState(a.editor.CanUndo(), a.editor.CanRedo())

	if meta, ok := a.editor.Metadata(); ok {
		a.setStatus(fmt.Sprintf("%s (%dx%d, %d channels)",
			a.editor.SourcePath(), meta.Width, meta.Height, meta.Channels))
	}
}

func (a *Application) refreshWorkingImage() {
	working, err := a.editor.CurrentImage()
	if err != nil {
		a.logger.Debug("No working image to display", "error", err)
		return
	}
	a.canvas.UpdateWorking(working)
}

func (a *Application) setStatus(text string) {
	a.statusLabel.SetText(text)
}

func (a *Application) showError(title string, err error) {
	a.logger.Error(title, "error", err)
	dialog.ShowError(err, a.window)
}

// ShowAndRun displays the window and enters the event loop.
func (a *Application) ShowAndRun() {
	a.window.ShowAndRun()
}
