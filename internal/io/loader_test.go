package io_test

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gocv.io/x/gocv"

	imgio "interactive-image-editor/internal/io"
)

func newTestLoader() *imgio.ImageLoader {
	return imgio.NewImageLoader(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestLoadSaveRoundTrip(t *testing.T) {
	loader := newTestLoader()
	path := filepath.Join(t.TempDir(), "out.png")

	mat := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(60, 120, 180, 0), 8, 12, gocv.MatTypeCV8UC3)
	defer mat.Close()

	require.NoError(t, loader.SaveImage(mat, path))

	loaded, err := loader.LoadImage(path)
	require.NoError(t, err)
	defer loaded.Close()

	require.Equal(t, 8, loaded.Rows())
	require.Equal(t, 12, loaded.Cols())
	require.Equal(t, uint8(60), loaded.GetVecbAt(4, 4)[0])
}

func TestLoadImage_Errors(t *testing.T) {
	loader := newTestLoader()

	_, err := loader.LoadImage("animation.gif")
	require.True(t, errors.Is(err, imgio.ErrUnsupportedFormat))

	_, err = loader.LoadImage(filepath.Join(t.TempDir(), "missing.png"))
	require.True(t, errors.Is(err, imgio.ErrLoadFailed))
}

func TestSaveImage_Errors(t *testing.T) {
	loader := newTestLoader()

	empty := gocv.NewMat()
	defer empty.Close()
	err := loader.SaveImage(empty, filepath.Join(t.TempDir(), "out.png"))
	require.True(t, errors.Is(err, imgio.ErrSaveFailed))

	mat := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(0, 0, 0, 0), 4, 4, gocv.MatTypeCV8UC3)
	defer mat.Close()
	err = loader.SaveImage(mat, filepath.Join(t.TempDir(), "out.webp"))
	require.True(t, errors.Is(err, imgio.ErrUnsupportedFormat))
}

func TestValidateImageFile(t *testing.T) {
	loader := newTestLoader()
	dir := t.TempDir()

	mat := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(50, 50, 50, 0), 8, 8, gocv.MatTypeCV8UC3)
	defer mat.Close()

	good := filepath.Join(dir, "good.png")
	require.NoError(t, loader.SaveImage(mat, good))
	require.NoError(t, loader.ValidateImageFile(good))

	// Supported extension but not decodable
	junk := filepath.Join(dir, "junk.png")
	require.NoError(t, os.WriteFile(junk, []byte("not an image"), 0o644))
	err := loader.ValidateImageFile(junk)
	require.True(t, errors.Is(err, imgio.ErrLoadFailed))

	err = loader.ValidateImageFile(filepath.Join(dir, "anim.gif"))
	require.True(t, errors.Is(err, imgio.ErrUnsupportedFormat))
}

func TestSupportedExtensions_ReturnsCopy(t *testing.T) {
	loader := newTestLoader()

	exts := loader.SupportedExtensions()
	require.Contains(t, exts, ".png")
	require.Contains(t, exts, ".jpg")

	exts[0] = ".tiff"
	require.NotContains(t, loader.SupportedExtensions(), ".tiff")
}
