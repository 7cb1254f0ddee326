// Editor composes the document, filter registry, history engine and
// preview session behind the call surface the GUI uses.
package core

import (
	"fmt"
	"image"
	"log/slog"
	"sync"

	"gocv.io/x/gocv"

	"interactive-image-editor/internal/filters"
	imgio "interactive-image-editor/internal/io"
)

// Editor is the coordinating service for one editing session. Registry and
// history are independent components composed here, not mixed into one
// manager.
type Editor struct {
	mu      sync.RWMutex
	logger  *slog.Logger
	loader  *imgio.ImageLoader
	doc     *Document
	history *History
	preview *PreviewSession
}

// NewEditor creates an editor with no document loaded.
func NewEditor(maxHistory int, logger *slog.Logger) *Editor {
	history := NewHistory(maxHistory, logger)
	return &Editor{
		logger:  logger,
		loader:  imgio.NewImageLoader(logger),
		history: history,
		preview: NewPreviewSession(history, logger),
	}
}

// OpenImage loads a file and replaces the current document. On load
// failure nothing changes: no document, no history reset.
func (e *Editor) OpenImage(path string) error {
	mat, err := e.loader.LoadImage(path)
	if err != nil {
		return err
	}
	defer mat.Close()

	return e.SetImage(mat, path)
}

// SetImage installs an in-memory image as a new document. The mat is
// cloned; the caller keeps ownership.
func (e *Editor) SetImage(mat gocv.Mat, path string) error {
	doc, err := NewDocument(mat, path)
	if err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	old := e.doc
	e.doc = doc
	e.preview.Attach(doc)
	e.history.Attach(doc)

	if old != nil {
		old.Close()
	}

	e.logger.Info("EDITOR: Document opened",
		"path", path,
		"width", doc.Width(),
		"height", doc.Height())
	return nil
}

// SaveImage writes the current buffer to a path. Saving does not rebase
// the original; call RebaseOriginal afterwards if a later reset should
// revert to the saved state.
func (e *Editor) SaveImage(path string) error {
	doc := e.document()
	if doc == nil {
		return fmt.Errorf("no image loaded to save")
	}

	snapshot := doc.Snapshot()
	defer snapshot.Close()

	return e.loader.SaveImage(snapshot, path)
}

// ApplyFilter applies a registered filter as one committed, undoable edit.
// Any running preview gesture is ended first; its baseline is stale once a
// committed edit lands.
func (e *Editor) ApplyFilter(key string, params map[string]interface{}) error {
	if e.document() == nil {
		return fmt.Errorf("no image loaded")
	}

	e.preview.Invalidate()
	return e.history.Apply(key, params)
}

// Undo reverts the last committed edit. Returns false when nothing can be
// undone.
func (e *Editor) Undo() bool {
	e.preview.Invalidate()
	return e.history.Undo()
}

// Redo reapplies the last undone edit.
func (e *Editor) Redo() bool {
	e.preview.Invalidate()
	return e.history.Redo()
}

// ResetToOriginal restores the original buffer and clears the undo/redo
// stacks, making the original the floor for undo.
func (e *Editor) ResetToOriginal() error {
	doc := e.document()
	if doc == nil {
		return fmt.Errorf("no image loaded")
	}

	e.preview.Invalidate()
	if err := doc.ResetToOriginal(); err != nil {
		return err
	}

	e.history.ClearStacks()
	e.history.AppendLog(Operation{Description: "Reset to original"})
	return nil
}

// RebaseOriginal makes the current buffer the new original.
func (e *Editor) RebaseOriginal() error {
	doc := e.document()
	if doc == nil {
		return fmt.Errorf("no image loaded")
	}
	return doc.RebaseOriginal()
}

// PreviewUpdate recomputes the live preview from the gesture baseline.
func (e *Editor) PreviewUpdate(key string, params map[string]interface{}) error {
	return e.preview.Update(key, params)
}

// PreviewCommit folds the running gesture into one history entry.
func (e *Editor) PreviewCommit() error {
	return e.preview.Commit()
}

// PreviewCancel discards the running gesture and restores the baseline.
func (e *Editor) PreviewCancel() error {
	return e.preview.Cancel()
}

// PreviewActive reports whether a preview gesture is in progress.
func (e *Editor) PreviewActive() bool {
	return e.preview.Active()
}

// ListFilters returns all filter keys in registration order.
func (e *Editor) ListFilters() []string {
	return filters.Keys()
}

// DescribeFilter returns display information for a filter key.
func (e *Editor) DescribeFilter(key string) (filters.FilterInfo, bool) {
	return filters.Describe(key)
}

// ValidateParams runs the advisory parameter check for a filter.
func (e *Editor) ValidateParams(key string, params map[string]interface{}) error {
	return filters.ValidateParams(key, params)
}

// CurrentImage converts the current buffer for display. The returned
// image shares no storage with the document.
func (e *Editor) CurrentImage() (image.Image, error) {
	doc := e.document()
	if doc == nil {
		return nil, fmt.Errorf("no image loaded")
	}

	snapshot := doc.Snapshot()
	defer snapshot.Close()

	return snapshot.ToImage()
}

// OriginalImage converts the original buffer for display.
func (e *Editor) OriginalImage() (image.Image, error) {
	doc := e.document()
	if doc == nil {
		return nil, fmt.Errorf("no image loaded")
	}

	original := doc.Original()
	defer original.Close()

	return original.ToImage()
}

// HasImage reports whether a document is loaded.
func (e *Editor) HasImage() bool {
	return e.document() != nil
}

// Metadata returns the current document's metadata.
func (e *Editor) Metadata() (Metadata, bool) {
	doc := e.document()
	if doc == nil {
		return Metadata{}, false
	}
	return doc.Metadata(), true
}

// SourcePath returns the loaded file's path.
func (e *Editor) SourcePath() string {
	doc := e.document()
	if doc == nil {
		return ""
	}
	return doc.SourcePath()
}

// History returns the operation log.
func (e *Editor) History() []Operation {
	return e.history.Log()
}

// CanUndo reports whether an undo step is available.
func (e *Editor) CanUndo() bool {
	return e.history.CanUndo()
}

// CanRedo reports whether a redo step is available.
func (e *Editor) CanRedo() bool {
	return e.history.CanRedo()
}

// Snapshot returns a clone of the current buffer. The caller owns it.
func (e *Editor) Snapshot() (gocv.Mat, error) {
	doc := e.document()
	if doc == nil {
		return gocv.NewMat(), fmt.Errorf("no image loaded")
	}
	return doc.Snapshot(), nil
}

// SupportedFormats lists the file formats the editor reads and writes.
func (e *Editor) SupportedFormats() []string {
	return e.loader.SupportedExtensions()
}

// Close releases the document, history snapshots and preview baseline.
func (e *Editor) Close() {
	e.preview.Close()
	e.history.Close()

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.doc != nil {
		e.doc.Close()
		e.doc = nil
	}
}

func (e *Editor) document() *Document {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.doc
}
