// Document holds one image editing session with thread-safe access
package core

import (
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"gocv.io/x/gocv"
)

// Metadata contains image information derived from the current buffer
type Metadata struct {
	Width    int
	Height   int
	Channels int
	Type     gocv.MatType
	Format   string
}

// Document owns the original and current buffers for one source file.
// Edits replace the current buffer wholesale; every hand-off is a clone so
// no caller can alias the document's own storage.
type Document struct {
	mu         sync.RWMutex
	id         string
	sourcePath string
	original   gocv.Mat
	current    gocv.Mat
	metadata   Metadata
}

// NewDocument constructs a document from a decoded image. The mat is
// cloned; the caller keeps ownership of its copy.
func NewDocument(mat gocv.Mat, sourcePath string) (*Document, error) {
	if err := validateMat(mat); err != nil {
		return nil, err
	}

	doc := &Document{
		id:         uuid.NewString(),
		sourcePath: sourcePath,
		original:   mat.Clone(),
		current:    mat.Clone(),
	}
	doc.metadata = metadataFor(doc.current, sourcePath)

	return doc, nil
}

// ID returns the document session identifier.
func (d *Document) ID() string {
	return d.id
}

// SourcePath returns the path the document was loaded from.
func (d *Document) SourcePath() string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.sourcePath
}

// Replace sets the current buffer. Pure state update: callers decide
// whether this implies a history write.
func (d *Document) Replace(mat gocv.Mat) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if mat.Empty() {
		return fmt.Errorf("cannot replace with empty image")
	}

	if !d.current.Empty() {
		d.current.Close()
	}
	d.current = mat.Clone()
	d.metadata = metadataFor(d.current, d.sourcePath)

	return nil
}

// Snapshot returns a clone of the current buffer. The caller owns the
// returned mat and must close it.
func (d *Document) Snapshot() gocv.Mat {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.current.Empty() {
		return gocv.NewMat()
	}
	return d.current.Clone()
}

// Original returns a clone of the original buffer.
func (d *Document) Original() gocv.Mat {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.original.Empty() {
		return gocv.NewMat()
	}
	return d.original.Clone()
}

// ResetToOriginal restores the current buffer from the original.
func (d *Document) ResetToOriginal() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.original.Empty() {
		return fmt.Errorf("no original image available")
	}

	if !d.current.Empty() {
		d.current.Close()
	}
	d.current = d.original.Clone()
	d.metadata = metadataFor(d.current, d.sourcePath)

	return nil
}

// RebaseOriginal makes the current buffer the new original, so a later
// reset reverts to this state instead of the pristine load.
func (d *Document) RebaseOriginal() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.current.Empty() {
		return fmt.Errorf("no current image available")
	}

	if !d.original.Empty() {
		d.original.Close()
	}
	d.original = d.current.Clone()

	return nil
}

// Metadata returns dimensions and format information for the current buffer.
func (d *Document) Metadata() Metadata {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.metadata
}

// Width returns the current buffer width in pixels.
func (d *Document) Width() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.metadata.Width
}

// Height returns the current buffer height in pixels.
func (d *Document) Height() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.metadata.Height
}

// Close releases both buffers.
func (d *Document) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.original.Empty() {
		d.original.Close()
	}
	if !d.current.Empty() {
		d.current.Close()
	}
	d.original = gocv.NewMat()
	d.current = gocv.NewMat()
}

func metadataFor(mat gocv.Mat, sourcePath string) Metadata {
	return Metadata{
		Width:    mat.Cols(),
		Height:   mat.Rows(),
		Channels: mat.Channels(),
		Type:     mat.Type(),
		Format:   formatFromPath(sourcePath),
	}
}

func formatFromPath(path string) string {
	idx := strings.LastIndexByte(path, '.')
	if idx < 0 || idx == len(path)-1 {
		return "unknown"
	}
	return strings.ToLower(path[idx+1:])
}

func validateMat(mat gocv.Mat) error {
	if mat.Empty() {
		return fmt.Errorf("image is empty")
	}

	if mat.Cols() <= 0 || mat.Rows() <= 0 {
		return fmt.Errorf("invalid dimensions: %dx%d", mat.Cols(), mat.Rows())
	}

	channels := mat.Channels()
	if channels != 1 && channels != 3 && channels != 4 {
		return fmt.Errorf("unsupported channel count: %d", channels)
	}

	const maxDimension = 16384
	if mat.Cols() > maxDimension || mat.Rows() > maxDimension {
		return fmt.Errorf("image too large: %dx%d (max: %d)", mat.Cols(), mat.Rows(), maxDimension)
	}

	return nil
}
