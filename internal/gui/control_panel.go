// Control panel with filter buttons and live-preview sliders
package gui

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"interactive-image-editor/internal/core"
	"interactive-image-editor/internal/filters"
)

// ControlPanel hosts one-shot filter buttons and the sliders that drive
// preview gestures. A slider drag produces many preview updates and a
// single committed history entry when it ends.
type ControlPanel struct {
	editor *core.Editor
	logger *slog.Logger

	container *fyne.Container

	// One-shot filters
	grayscaleBtn *widget.Button
	edgeBtn      *widget.Button
	rotateBtns   []*widget.Button
	flipHBtn     *widget.Button
	flipVBtn     *widget.Button

	// Preview sliders
	blurSlider       *widget.Slider
	brightnessSlider *widget.Slider
	contrastSlider   *widget.Slider
	resizeSlider     *widget.Slider

	// History controls
	undoBtn  *widget.Button
	redoBtn  *widget.Button
	resetBtn *widget.Button

	// Preview debounce. previewGen invalidates callbacks that were already
	// in flight when the slider was released.
	debounce     time.Duration
	previewTimer *time.Timer
	previewGen   uint64
	timerMu      sync.Mutex

	enabled bool

	onEdited  func()
	onPreview func()
	onError   func(error)
}

func NewControlPanel(editor *core.Editor, debounceMs int, logger *slog.Logger) *ControlPanel {
	panel := &ControlPanel{
		editor:   editor,
		logger:   logger,
		debounce: time.Duration(debounceMs) * time.Millisecond,
	}

	panel.initializeUI()
	return panel
}

func (cp *ControlPanel) initializeUI() {
	cp.grayscaleBtn = widget.NewButton("⬜ Grayscale", func() {
		cp.applyFilter("grayscale", nil)
	})
	cp.edgeBtn = widget.NewButton("🔲 Edge Detection", func() {
		cp.applyFilter("edge", filters.DefaultParams("edge"))
	})

	for _, angle := range []int{90, 180, 270} {
		angle := angle
		btn := widget.NewButton(fmt.Sprintf("↻ %d°", angle), func() {
			cp.applyFilter("rotate", map[string]interface{}{"angle": angle})
		})
		cp.rotateBtns = append(cp.rotateBtns, btn)
	}

	cp.flipHBtn = widget.NewButton("⇋ Flip H", func() {
		cp.applyFilter("flip", map[string]interface{}{"direction": "horizontal"})
	})
	cp.flipVBtn = widget.NewButton("⇵ Flip V", func() {
		cp.applyFilter("flip", map[string]interface{}{"direction": "vertical"})
	})

	cp.blurSlider = cp.newPreviewSlider("blur", "intensity", 1, 1, func(v float64) map[string]interface{} {
		return map[string]interface{}{"intensity": int(v)}
	})
	cp.brightnessSlider = cp.newPreviewSlider("brightness", "value", 1, 1, func(v float64) map[string]interface{} {
		return map[string]interface{}{"value": int(v)}
	})
	cp.contrastSlider = cp.newPreviewSlider("contrast", "value", 0.1, 1, func(v float64) map[string]interface{} {
		return map[string]interface{}{"value": v}
	})
	cp.resizeSlider = cp.newPreviewSlider("resize", "scale", 5, 100, func(v float64) map[string]interface{} {
		return map[string]interface{}{"scale": v / 100.0}
	})

	cp.undoBtn = widget.NewButton("↶ Undo", func() {
		if cp.editor.Undo() && cp.onEdited != nil {
			cp.onEdited()
		}
	})
	cp.redoBtn = widget.NewButton("↷ Redo", func() {
		if cp.editor.Redo() && cp.onEdited != nil {
			cp.onEdited()
		}
	})
	cp.resetBtn = widget.NewButton("↻ Reset to Original", func() {
		if err := cp.editor.ResetToOriginal(); err != nil {
			cp.reportError(err)
			return
		}
		if cp.onEdited != nil {
			cp.onEdited()
		}
	})
	cp.resetBtn.Importance = widget.HighImportance

	filtersCard := widget.NewCard("🎨 Filters", "", container.NewVBox(
		cp.grayscaleBtn,
		cp.edgeBtn,
		container.NewGridWithColumns(3, cp.rotateBtns[0], cp.rotateBtns[1], cp.rotateBtns[2]),
		container.NewGridWithColumns(2, cp.flipHBtn, cp.flipVBtn),
	))

	slidersCard := widget.NewCard("🎚️ Adjustments", "", container.NewVBox(
		widget.NewLabel("Blur intensity"),
		cp.blurSlider,
		widget.NewLabel("Brightness"),
		cp.brightnessSlider,
		widget.NewLabel("Contrast"),
		cp.contrastSlider,
		widget.NewLabel("Resize (%)"),
		cp.resizeSlider,
	))

	historyCard := widget.NewCard("🕘 History", "", container.NewVBox(
		container.NewGridWithColumns(2, cp.undoBtn, cp.redoBtn),
		cp.resetBtn,
	))

	cp.container = container.NewVBox(
		filtersCard,
		slidersCard,
		historyCard,
	)

	cp.Disable()
}

// newPreviewSlider builds a slider whose bounds and initial value come from
// the filter's own parameter metadata. displayScale maps the parameter
// range onto display units (resize shows percent). A drag drives a preview
// gesture: debounced updates while moving, one commit when released.
func (cp *ControlPanel) newPreviewSlider(filterKey, paramName string, step, displayScale float64, toParams func(float64) map[string]interface{}) *widget.Slider {
	min, max, initial, ok := filters.ParameterRange(filterKey, paramName)
	if !ok {
		cp.logger.Warn("No numeric metadata for slider parameter", "filter", filterKey, "param", paramName)
		min, max, initial = 0, 1, 0
	}

	slider := widget.NewSlider(min*displayScale, max*displayScale)
	slider.Step = step
	slider.Value = initial * displayScale

	slider.OnChanged = func(v float64) {
		if !cp.enabled {
			return
		}
		cp.schedulePreview(filterKey, toParams(v))
	}

	slider.OnChangeEnded = func(v float64) {
		if !cp.enabled {
			return
		}
		cp.stopPreviewTimer()

		params := toParams(v)
		if err := cp.editor.ValidateParams(filterKey, params); err != nil {
			cp.logger.Warn("Slider value outside advisory range", "filter", filterKey, "error", err)
		}

		if err := cp.editor.PreviewUpdate(filterKey, params); err != nil {
			cp.reportError(err)
			return
		}
		if err := cp.editor.PreviewCommit(); err != nil {
			cp.reportError(err)
			return
		}
		if cp.onEdited != nil {
			cp.onEdited()
		}
	}

	return slider
}

// schedulePreview debounces slider movement so a fast drag does not queue
// a transform per pixel of travel.
func (cp *ControlPanel) schedulePreview(filterKey string, params map[string]interface{}) {
	cp.timerMu.Lock()
	defer cp.timerMu.Unlock()

	if cp.previewTimer != nil {
		cp.previewTimer.Stop()
	}

	cp.previewGen++
	gen := cp.previewGen

	cp.previewTimer = time.AfterFunc(cp.debounce, func() {
		cp.runScheduledPreview(gen, filterKey, params)
	})
}

// runScheduledPreview applies a debounced update unless the slider was
// released (or a newer update scheduled) after this callback was armed. A
// timer whose callback has already started cannot be stopped, so the
// generation check keeps it from reopening a gesture after the commit.
func (cp *ControlPanel) runScheduledPreview(gen uint64, filterKey string, params map[string]interface{}) {
	cp.timerMu.Lock()
	stale := gen != cp.previewGen
	cp.timerMu.Unlock()
	if stale {
		return
	}

	if err := cp.editor.PreviewUpdate(filterKey, params); err != nil {
		cp.logger.Debug("Preview update failed", "filter", filterKey, "error", err)
		return
	}
	if cp.onPreview != nil {
		fyne.Do(cp.onPreview)
	}
}

func (cp *ControlPanel) stopPreviewTimer() {
	cp.timerMu.Lock()
	defer cp.timerMu.Unlock()

	cp.previewGen++
	if cp.previewTimer != nil {
		cp.previewTimer.Stop()
		cp.previewTimer = nil
	}
}

func (cp *ControlPanel) applyFilter(key string, params map[string]interface{}) {
	if err := cp.editor.ApplyFilter(key, params); err != nil {
		cp.reportError(err)
		return
	}
	if cp.onEdited != nil {
		cp.onEdited()
	}
}

func (cp *ControlPanel) reportError(err error) {
	if cp.onError != nil {
		cp.onError(err)
	} else {
		cp.logger.Error("Control panel error", "error", err)
	}
}

func (cp *ControlPanel) GetContainer() fyne.CanvasObject {
	return cp.container
}

// SetUndoRedoState enables the history buttons to match stack contents.
func (cp *ControlPanel) SetUndoRedoState(canUndo, canRedo bool) {
	if canUndo {
		cp.undoBtn.Enable()
	} else {
		cp.undoBtn.Disable()
	}
	if canRedo {
		cp.redoBtn.Enable()
	} else {
		cp.redoBtn.Disable()
	}
}

func (cp *ControlPanel) Enable() {
	cp.enabled = true
	cp.grayscaleBtn.Enable()
	cp.edgeBtn.Enable()
	for _, btn := range cp.rotateBtns {
		btn.Enable()
	}
	cp.flipHBtn.Enable()
	cp.flipVBtn.Enable()
	cp.resetBtn.Enable()
	cp.SetUndoRedoState(cp.editor.CanUndo(), cp.editor.CanRedo())
}

func (cp *ControlPanel) Disable() {
	cp.enabled = false
	cp.grayscaleBtn.Disable()
	cp.edgeBtn.Disable()
	for _, btn := range cp.rotateBtns {
		btn.Disable()
	}
	cp.flipHBtn.Disable()
	cp.flipVBtn.Disable()
	cp.undoBtn.Disable()
	cp.redoBtn.Disable()
	cp.resetBtn.Disable()
}

func (cp *ControlPanel) SetCallbacks(onEdited, onPreview func(), onError func(error)) {
	cp.onEdited = onEdited
	cp.onPreview = onPreview
	cp.onError = onError
}
