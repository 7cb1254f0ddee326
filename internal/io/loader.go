// Image loading and saving at the filesystem boundary
package io

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"gocv.io/x/gocv"
)

// ErrUnsupportedFormat is returned for extensions outside the supported set.
var ErrUnsupportedFormat = errors.New("unsupported image format")

// ErrLoadFailed is returned when a file cannot be decoded.
var ErrLoadFailed = errors.New("failed to load image")

// ErrSaveFailed is returned when a file cannot be written.
var ErrSaveFailed = errors.New("failed to save image")

// supportedExtensions is the static list of recognized container formats.
var supportedExtensions = []string{".jpg", ".jpeg", ".png", ".bmp"}

// ImageLoader handles image file operations
type ImageLoader struct {
	logger *slog.Logger
}

func NewImageLoader(logger *slog.Logger) *ImageLoader {
	return &ImageLoader{
		logger: logger,
	}
}

// LoadImage decodes a file into a color Mat. Failure leaves no partial
// state; the caller owns the returned mat.
func (il *ImageLoader) LoadImage(filepath string) (gocv.Mat, error) {
	il.logger.Debug("Loading image", "filepath", filepath)

	if !il.isSupportedImageFormat(filepath) {
		return gocv.NewMat(), fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath)
	}

	mat := gocv.IMRead(filepath, gocv.IMReadColor)
	if mat.Empty() {
		return gocv.NewMat(), fmt.Errorf("%w: %s", ErrLoadFailed, filepath)
	}

	il.logger.Info("Image loaded successfully",
		"filepath", filepath,
		"width", mat.Cols(),
		"height", mat.Rows(),
		"channels", mat.Channels())

	return mat, nil
}

// SaveImage encodes a Mat to the container format chosen by the path's
// extension. Failure leaves in-memory state untouched.
func (il *ImageLoader) SaveImage(mat gocv.Mat, filepath string) error {
	il.logger.Debug("Saving image", "filepath", filepath)

	if mat.Empty() {
		return fmt.Errorf("%w: cannot save empty image", ErrSaveFailed)
	}

	if !il.isSupportedImageFormat(filepath) {
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath)
	}

	if ok := gocv.IMWrite(filepath, mat); !ok {
		return fmt.Errorf("%w: %s", ErrSaveFailed, filepath)
	}

	il.logger.Info("Image saved successfully",
		"filepath", filepath,
		"width", mat.Cols(),
		"height", mat.Rows(),
		"channels", mat.Channels())

	return nil
}

// ValidateImageFile checks that a path points to a readable image without
// keeping the decoded data.
func (il *ImageLoader) ValidateImageFile(filepath string) error {
	if !il.isSupportedImageFormat(filepath) {
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath)
	}

	mat := gocv.IMRead(filepath, gocv.IMReadGrayScale)
	defer mat.Close()

	if mat.Empty() {
		return fmt.Errorf("%w: invalid or corrupted file", ErrLoadFailed)
	}

	if mat.Cols() <= 0 || mat.Rows() <= 0 {
		return fmt.Errorf("%w: invalid image dimensions", ErrLoadFailed)
	}

	return nil
}

// SupportedExtensions returns the recognized file extensions.
func (il *ImageLoader) SupportedExtensions() []string {
	exts := make([]string, len(supportedExtensions))
	copy(exts, supportedExtensions)
	return exts
}

func (il *ImageLoader) isSupportedImageFormat(filepath string) bool {
	ext := strings.ToLower(getFileExtension(filepath))

	for _, format := range supportedExtensions {
		if ext == format {
			return true
		}
	}

	return false
}

func getFileExtension(filepath string) string {
	for i := len(filepath) - 1; i >= 0; i-- {
		if filepath[i] == '.' {
			return filepath[i:]
		}
		if filepath[i] == '/' || filepath[i] == '\\' {
			break
		}
	}
	return ""
}
