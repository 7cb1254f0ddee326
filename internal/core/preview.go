// Preview session: non-destructive slider-driven adjustment.
// Every update is computed from a fixed baseline captured when the
// gesture started, so dragging a slider back and forth is lossless.
package core

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"gocv.io/x/gocv"

	"interactive-image-editor/internal/filters"
)

// PreviewSession sits between the GUI sliders and the document. It never
// touches the undo/redo stacks until Commit folds the gesture into one
// history entry.
type PreviewSession struct {
	mu      sync.Mutex
	doc     *Document
	history *History
	logger  *slog.Logger

	active     bool
	gestureID  string
	filterKey  string
	lastParams map[string]interface{}
	baseline   gocv.Mat

	// Monotonic per-gesture counter: a computed result is applied only if
	// no newer update arrived while it was being processed.
	seq uint64
}

// NewPreviewSession creates an idle preview session.
func NewPreviewSession(history *History, logger *slog.Logger) *PreviewSession {
	return &PreviewSession{
		history:  history,
		logger:   logger,
		baseline: gocv.NewMat(),
	}
}

// Attach binds the session to a document, discarding any active gesture.
func (ps *PreviewSession) Attach(doc *Document) {
	ps.mu.Lock()
	defer ps.mu.Unlock()

	ps.discardLocked()
	ps.doc = doc
}

// Active reports whether a preview gesture is in progress.
func (ps *PreviewSession) Active() bool {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	return ps.active
}

// Update recomputes the preview for new slider parameters. The first
// update of a gesture captures the baseline; switching to a different
// filter key discards the running gesture and starts a new one from a
// fresh baseline. Processing errors leave the last good preview displayed.
func (ps *PreviewSession) Update(key string, params map[string]interface{}) error {
	ps.mu.Lock()

	if ps.doc == nil {
		ps.mu.Unlock()
		return fmt.Errorf("no document loaded")
	}

	filter, exists := filters.Get(key)
	if !exists {
		ps.mu.Unlock()
		return fmt.Errorf("%w: %s", filters.ErrUnknownFilter, key)
	}

	if ps.active && ps.filterKey != key {
		// Different filter ends the gesture: restore the baseline so the
		// uncommitted preview never leaks into the new gesture
		if err := ps.doc.Replace(ps.baseline); err != nil {
			ps.mu.Unlock()
			return err
		}
		ps.discardLocked()
	}

	if !ps.active {
		ps.baseline = ps.doc.Snapshot()
		ps.gestureID = uuid.NewString()
		ps.filterKey = key
		ps.active = true
		ps.logger.Debug("PREVIEW: Gesture started", "gesture", ps.gestureID, "filter", key)
	}

	ps.seq++
	seq := ps.seq
	gesture := ps.gestureID
	input := ps.baseline.Clone()
	ps.lastParams = copyParams(params)
	ps.mu.Unlock()

	// Compute outside the lock so a fast drag never serializes behind a
	// slow transform; the seq/gesture check below drops stale results.
	result, err := filter.Apply(input, params)
	input.Close()
	if err != nil {
		ps.logger.Error("PREVIEW: Update failed, keeping last preview", "filter", key, "error", err)
		return err
	}
	defer result.Close()

	ps.mu.Lock()
	defer ps.mu.Unlock()

	if !ps.active || ps.gestureID != gesture || ps.seq != seq {
		ps.logger.Debug("PREVIEW: Dropping superseded result", "gesture", gesture, "seq", seq)
		return nil
	}

	if err := ps.doc.Replace(result); err != nil {
		ps.logger.Error("PREVIEW: Replace failed", "error", err)
		return err
	}

	return nil
}

// Commit folds the displayed preview into permanent history: the baseline
// goes onto the undo stack so one undo reverts the whole gesture, the redo
// stack is invalidated, and one log entry is appended.
func (ps *PreviewSession) Commit() error {
	ps.mu.Lock()
	defer ps.mu.Unlock()

	if !ps.active {
		return fmt.Errorf("no preview gesture to commit")
	}

	info, _ := filters.Describe(ps.filterKey)
	op := Operation{
		Filter:      ps.filterKey,
		Params:      copyParams(ps.lastParams),
		Description: describeOperation(info.DisplayName, ps.lastParams),
	}

	// Ownership of the baseline transfers to the history
	ps.history.RecordCommitted(op, ps.baseline)
	ps.baseline = gocv.NewMat()
	ps.active = false
	ps.filterKey = ""
	ps.lastParams = nil

	ps.logger.Info("PREVIEW: Gesture committed", "gesture", ps.gestureID)
	ps.gestureID = ""
	return nil
}

// Cancel discards the gesture and restores the baseline to the document.
func (ps *PreviewSession) Cancel() error {
	ps.mu.Lock()
	defer ps.mu.Unlock()

	if !ps.active {
		return nil
	}

	if err := ps.doc.Replace(ps.baseline); err != nil {
		return err
	}

	ps.logger.Debug("PREVIEW: Gesture cancelled", "gesture", ps.gestureID)
	ps.discardLocked()
	return nil
}

// Invalidate forcibly ends any gesture without restoring the baseline.
// Called when the document changes under the session.
func (ps *PreviewSession) Invalidate() {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	ps.discardLocked()
}

// Close releases any held baseline.
func (ps *PreviewSession) Close() {
	ps.Invalidate()
}

func (ps *PreviewSession) discardLocked() {
	ps.baseline.Close()
	ps.baseline = gocv.NewMat()
	ps.active = false
	ps.gestureID = ""
	ps.filterKey = ""
	ps.lastParams = nil
}
