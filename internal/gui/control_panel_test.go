package gui

import (
	"io"
	"log/slog"
	"testing"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/require"
	"gocv.io/x/gocv"

	"interactive-image-editor/internal/core"
)

func newTestControlPanel(t *testing.T) (*ControlPanel, *core.Editor) {
	t.Helper()
	test.NewApp()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	editor := core.NewEditor(0, logger)
	t.Cleanup(editor.Close)

	mat := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(100, 100, 100, 0), 10, 10, gocv.MatTypeCV8UC3)
	defer mat.Close()
	require.NoError(t, editor.SetImage(mat, "test.png"))

	// Long debounce so the armed timer never fires on its own during a test
	panel := NewControlPanel(editor, 60000, logger)
	t.Cleanup(panel.stopPreviewTimer)
	panel.Enable()

	return panel, editor
}

func TestSliders_BoundsComeFromFilterMetadata(t *testing.T) {
	panel, _ := newTestControlPanel(t)

	require.Equal(t, 1.0, panel.blurSlider.Min)
	require.Equal(t, 50.0, panel.blurSlider.Max)
	require.Equal(t, 5.0, panel.blurSlider.Value)

	require.Equal(t, -100.0, panel.brightnessSlider.Min)
	require.Equal(t, 100.0, panel.brightnessSlider.Max)
	require.Equal(t, 0.0, panel.brightnessSlider.Value)

	require.Equal(t, 0.5, panel.contrastSlider.Min)
	require.Equal(t, 3.0, panel.contrastSlider.Max)
	require.Equal(t, 1.0, panel.contrastSlider.Value)

	// Resize displays the scale factor as percent
	require.Equal(t, 25.0, panel.resizeSlider.Min)
	require.Equal(t, 400.0, panel.resizeSlider.Max)
	require.Equal(t, 100.0, panel.resizeSlider.Value)
}

func (cp *ControlPanel) currentPreviewGen() uint64 {
	cp.timerMu.Lock()
	defer cp.timerMu.Unlock()
	return cp.previewGen
}

func TestScheduledPreview_StaleGenerationIsDropped(t *testing.T) {
	panel, editor := newTestControlPanel(t)
	params := map[string]interface{}{"value": 10}

	// A callback armed before the slider was released runs with a stale
	// generation and must not reopen a gesture after the commit
	panel.schedulePreview("brightness", params)
	gen := panel.currentPreviewGen()
	panel.stopPreviewTimer()

	panel.runScheduledPreview(gen, "brightness", params)
	require.False(t, editor.PreviewActive())

	// The current generation still drives the preview
	panel.schedulePreview("brightness", params)
	panel.runScheduledPreview(panel.currentPreviewGen(), "brightness", params)
	require.True(t, editor.PreviewActive())
}

func TestScheduledPreview_NewerUpdateSupersedesOlder(t *testing.T) {
	panel, editor := newTestControlPanel(t)

	panel.schedulePreview("brightness", map[string]interface{}{"value": 10})
	stale := panel.currentPreviewGen()
	panel.schedulePreview("brightness", map[string]interface{}{"value": 20})

	panel.runScheduledPreview(stale, "brightness", map[string]interface{}{"value": 10})
	require.False(t, editor.PreviewActive())

	panel.runScheduledPreview(panel.currentPreviewGen(), "brightness", map[string]interface{}{"value": 20})
	require.True(t, editor.PreviewActive())

	snap, err := editor.Snapshot()
	require.NoError(t, err)
	defer snap.Close()
	require.Equal(t, uint8(120), snap.GetVecbAt(5, 5)[0])
}
