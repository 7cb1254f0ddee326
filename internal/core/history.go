// History engine: bounded undo/redo stacks plus an operation log.
// Every committed mutation of the document goes through here so each
// edit is individually reversible.
package core

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"gocv.io/x/gocv"

	"interactive-image-editor/internal/filters"
)

// DefaultMaxHistory bounds the undo and redo stacks when no limit is configured.
const DefaultMaxHistory = 50

// Operation is one entry in the append-only operation log.
type Operation struct {
	Filter      string
	Params      map[string]interface{}
	Description string
	At          time.Time
}

// History mediates committed edits to a document. Snapshots on the stacks
// are owned by the history and closed on eviction or reset.
type History struct {
	mu       sync.Mutex
	doc      *Document
	logger   *slog.Logger
	undo     []gocv.Mat
	redo     []gocv.Mat
	log      []Operation
	maxDepth int
}

// NewHistory creates a history engine with the given stack bound.
func NewHistory(maxDepth int, logger *slog.Logger) *History {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxHistory
	}
	return &History{
		logger:   logger,
		undo:     make([]gocv.Mat, 0, maxDepth),
		redo:     make([]gocv.Mat, 0, maxDepth),
		maxDepth: maxDepth,
	}
}

// Attach binds the history to a document, discarding all prior state.
// Called whenever a new document replaces the current one.
func (h *History) Attach(doc *Document) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.resetLocked()
	h.doc = doc
}

// Apply looks up a filter, applies it to the current buffer and records
// the prior state for undo. On any failure the stacks and the document
// are left exactly as they were, except that a new forward edit attempt
// has already invalidated redo.
func (h *History) Apply(key string, params map[string]interface{}) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.doc == nil {
		return fmt.Errorf("no document loaded")
	}

	filter, exists := filters.Get(key)
	if !exists {
		return fmt.Errorf("%w: %s", filters.ErrUnknownFilter, key)
	}

	snapshot := h.doc.Snapshot()
	h.pushLocked(&h.undo, snapshot)
	h.clearStackLocked(&h.redo)

	result, err := filter.Apply(snapshot, params)
	if err != nil {
		// Pop the snapshot just pushed so the stack stays consistent
		h.popDiscardLocked(&h.undo)
		h.logger.Error("HISTORY: Filter application failed", "filter", key, "error", err)
		return err
	}
	defer result.Close()

	if err := h.doc.Replace(result); err != nil {
		h.popDiscardLocked(&h.undo)
		return err
	}

	h.log = append(h.log, Operation{
		Filter:      key,
		Params:      copyParams(params),
		Description: describeOperation(filter.GetName(), params),
		At:          time.Now(),
	})

	h.logger.Info("HISTORY: Applied filter", "filter", key, "undo_depth", len(h.undo))
	return nil
}

// RecordCommitted pushes a pre-edit snapshot onto the undo stack and logs
// the operation without touching the document. The document already holds
// the committed result; ownership of baseline transfers to the history.
// Used by the preview session so a whole slider gesture undoes as one step.
func (h *History) RecordCommitted(op Operation, baseline gocv.Mat) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.pushLocked(&h.undo, baseline)
	h.clearStackLocked(&h.redo)
	op.At = time.Now()
	h.log = append(h.log, op)

	h.logger.Info("HISTORY: Recorded committed edit", "description", op.Description, "undo_depth", len(h.undo))
}

// Undo reverts the last committed edit. Returns false when there is
// nothing to undo.
func (h *History) Undo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.doc == nil || len(h.undo) == 0 {
		return false
	}

	current := h.doc.Snapshot()
	h.pushLocked(&h.redo, current)

	previous := h.undo[len(h.undo)-1]
	h.undo = h.undo[:len(h.undo)-1]

	if err := h.doc.Replace(previous); err != nil {
		// Put everything back; the document was not touched
		h.undo = append(h.undo, previous)
		h.popDiscardLocked(&h.redo)
		h.logger.Error("HISTORY: Undo failed", "error", err)
		return false
	}
	previous.Close()

	h.logger.Debug("HISTORY: Undo", "undo_depth", len(h.undo), "redo_depth", len(h.redo))
	return true
}

// Redo reapplies the last undone edit. Returns false when there is
// nothing to redo.
func (h *History) Redo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.doc == nil || len(h.redo) == 0 {
		return false
	}

	current := h.doc.Snapshot()
	h.pushLocked(&h.undo, current)

	next := h.redo[len(h.redo)-1]
	h.redo = h.redo[:len(h.redo)-1]

	if err := h.doc.Replace(next); err != nil {
		h.redo = append(h.redo, next)
		h.popDiscardLocked(&h.undo)
		h.logger.Error("HISTORY: Redo failed", "error", err)
		return false
	}
	next.Close()

	h.logger.Debug("HISTORY: Redo", "undo_depth", len(h.undo), "redo_depth", len(h.redo))
	return true
}

// CanUndo reports whether an undo step is available.
func (h *History) CanUndo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.undo) > 0
}

// CanRedo reports whether a redo step is available.
func (h *History) CanRedo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.redo) > 0
}

// Depth returns the number of undoable steps.
func (h *History) Depth() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.undo)
}

// AppendLog adds a log-only entry with no stack change.
func (h *History) AppendLog(op Operation) {
	h.mu.Lock()
	defer h.mu.Unlock()
	op.At = time.Now()
	h.log = append(h.log, op)
}

// Log returns a copy of the operation log in chronological order.
func (h *History) Log() []Operation {
	h.mu.Lock()
	defer h.mu.Unlock()

	entries := make([]Operation, len(h.log))
	copy(entries, h.log)
	return entries
}

// Reset clears both stacks and the operation log.
func (h *History) Reset() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.resetLocked()
}

// ClearStacks drops undo and redo state but keeps the operation log.
// Used by reset-to-original, which makes the original the undo floor.
func (h *History) ClearStacks() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clearStackLocked(&h.undo)
	h.clearStackLocked(&h.redo)
}

// Close releases all held snapshots.
func (h *History) Close() {
	h.Reset()
}

func (h *History) resetLocked() {
	h.clearStackLocked(&h.undo)
	h.clearStackLocked(&h.redo)
	h.log = h.log[:0]
}

// pushLocked appends a snapshot, evicting and closing the oldest entry
// when the stack is at its bound.
func (h *History) pushLocked(stack *[]gocv.Mat, mat gocv.Mat) {
	if len(*stack) >= h.maxDepth {
		oldest := (*stack)[0]
		oldest.Close()
		copy(*stack, (*stack)[1:])
		*stack = (*stack)[:len(*stack)-1]
	}
	*stack = append(*stack, mat)
}

func (h *History) popDiscardLocked(stack *[]gocv.Mat) {
	if len(*stack) == 0 {
		return
	}
	top := (*stack)[len(*stack)-1]
	top.Close()
	*stack = (*stack)[:len(*stack)-1]
}

func (h *History) clearStackLocked(stack *[]gocv.Mat) {
	for i := range *stack {
		(*stack)[i].Close()
	}
	*stack = (*stack)[:0]
}

func copyParams(params map[string]interface{}) map[string]interface{} {
	if params == nil {
		return nil
	}
	out := make(map[string]interface{}, len(params))
	for k, v := range params {
		out[k] = v
	}
	return out
}

func describeOperation(name string, params map[string]interface{}) string {
	if len(params) == 0 {
		return fmt.Sprintf("Applied %s", name)
	}
	return fmt.Sprintf("Applied %s with params: %v", name, params)
}
