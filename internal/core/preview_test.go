package core_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"interactive-image-editor/internal/core"
)

func newPreviewWithDoc(t *testing.T, value float64) (*core.PreviewSession, *core.History, *core.Document) {
	t.Helper()

	doc := newTestDocument(t, value)
	history := core.NewHistory(0, testLogger())
	t.Cleanup(history.Close)
	history.Attach(doc)

	preview := core.NewPreviewSession(history, testLogger())
	t.Cleanup(preview.Close)
	preview.Attach(doc)

	return preview, history, doc
}

func TestPreview_UpdatesComputeFromFixedBaseline(t *testing.T) {
	preview, _, doc := newPreviewWithDoc(t, 100)

	require.NoError(t, preview.Update("brightness", map[string]interface{}{"value": 10}))
	require.True(t, preview.Active())
	require.Equal(t, uint8(110), pixel(t, doc))

	// Each update reapplies to the gesture baseline, not to the last preview
	require.NoError(t, preview.Update("brightness", map[string]interface{}{"value": 20}))
	require.Equal(t, uint8(120), pixel(t, doc))

	require.NoError(t, preview.Update("brightness", map[string]interface{}{"value": 5}))
	require.Equal(t, uint8(105), pixel(t, doc))
}

func TestPreview_CommitIsOneUndoStep(t *testing.T) {
	preview, history, doc := newPreviewWithDoc(t, 100)

	require.NoError(t, preview.Update("brightness", map[string]interface{}{"value": 10}))
	require.NoError(t, preview.Update("brightness", map[string]interface{}{"value": 40}))
	require.NoError(t, preview.Commit())

	require.False(t, preview.Active())
	require.Equal(t, uint8(140), pixel(t, doc))
	require.Equal(t, 1, history.Depth())

	require.True(t, history.Undo())
	require.Equal(t, uint8(100), pixel(t, doc))
	require.False(t, history.CanUndo())
}

func TestPreview_CommitWithoutGesture(t *testing.T) {
	preview, _, _ := newPreviewWithDoc(t, 100)

	require.Error(t, preview.Commit())
}

func TestPreview_CommitClearsRedo(t *testing.T) {
	preview, history, _ := newPreviewWithDoc(t, 100)

	require.NoError(t, history.Apply("brightness", map[string]interface{}{"value": 10}))
	require.True(t, history.Undo())
	require.True(t, history.CanRedo())

	require.NoError(t, preview.Update("contrast", map[string]interface{}{"value": 1.5}))
	require.NoError(t, preview.Commit())

	require.False(t, history.CanRedo())
}

func TestPreview_CancelRestoresBaseline(t *testing.T) {
	preview, history, doc := newPreviewWithDoc(t, 100)

	require.NoError(t, preview.Update("brightness", map[string]interface{}{"value": 50}))
	require.Equal(t, uint8(150), pixel(t, doc))

	require.NoError(t, preview.Cancel())

	require.False(t, preview.Active())
	require.Equal(t, uint8(100), pixel(t, doc))
	require.Equal(t, 0, history.Depth())
}

func TestPreview_FilterSwitchStartsFreshGesture(t *testing.T) {
	preview, _, doc := newPreviewWithDoc(t, 100)

	require.NoError(t, preview.Update("brightness", map[string]interface{}{"value": 50}))
	require.Equal(t, uint8(150), pixel(t, doc))

	// Switching filters mid-gesture discards the uncommitted preview and
	// computes the new filter against the restored baseline
	require.NoError(t, preview.Update("contrast", map[string]interface{}{"value": 2.0}))
	require.Equal(t, uint8(200), pixel(t, doc))

	require.NoError(t, preview.Cancel())
	require.Equal(t, uint8(100), pixel(t, doc))
}

func TestPreview_FailedUpdateKeepsLastPreview(t *testing.T) {
	preview, history, doc := newPreviewWithDoc(t, 100)

	require.NoError(t, preview.Update("resize", map[string]interface{}{"scale": 0.5}))
	require.Equal(t, 5, doc.Width())

	// 10x10 baseline at scale 0.01 collapses to zero pixels
	require.Error(t, preview.Update("resize", map[string]interface{}{"scale": 0.01}))
	require.True(t, preview.Active())
	require.Equal(t, 5, doc.Width())

	require.NoError(t, preview.Update("resize", map[string]interface{}{"scale": 0.8}))
	require.Equal(t, 8, doc.Width())

	require.NoError(t, preview.Commit())
	require.True(t, history.Undo())
	require.Equal(t, 10, doc.Width())
}

func TestPreview_InvalidateEndsGesture(t *testing.T) {
	preview, _, _ := newPreviewWithDoc(t, 100)

	require.NoError(t, preview.Update("brightness", map[string]interface{}{"value": 10}))
	require.True(t, preview.Active())

	preview.Invalidate()

	require.False(t, preview.Active())
	require.Error(t, preview.Commit())
}

func TestPreview_UpdateRequiresDocumentAndKnownFilter(t *testing.T) {
	history := core.NewHistory(0, testLogger())
	defer history.Close()

	detached := core.NewPreviewSession(history, testLogger())
	defer detached.Close()

	require.Error(t, detached.Update("brightness", map[string]interface{}{"value": 10}))

	preview, _, _ := newPreviewWithDoc(t, 100)
	require.Error(t, preview.Update("sepia", nil))
	require.False(t, preview.Active())
}
