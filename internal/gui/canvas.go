// Image canvas showing the original and working buffers side by side
package gui

import (
	"image"
	"image/color"
	"log/slog"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// ImageCanvas displays the original image next to the live working image
type ImageCanvas struct {
	logger *slog.Logger

	split        *container.Split
	originalView *widget.Card
	workingView  *widget.Card
	originalImg  *canvas.Image
	workingImg   *canvas.Image
}

func NewImageCanvas(logger *slog.Logger) *ImageCanvas {
	ic := &ImageCanvas{logger: logger}
	ic.initializeUI()
	return ic
}

func (ic *ImageCanvas) initializeUI() {
	ic.originalImg = newDisplayImage(placeholderImage())
	ic.workingImg = newDisplayImage(placeholderImage())

	ic.originalView = widget.NewCard("Original", "", ic.originalImg)
	ic.workingView = widget.NewCard("Working", "", ic.workingImg)

	ic.split = container.NewVSplit(ic.originalView, ic.workingView)
	ic.split.SetOffset(0.5)
}

func (ic *ImageCanvas) GetContainer() fyne.CanvasObject {
	return ic.split
}

// UpdateOriginal replaces the original view's image.
func (ic *ImageCanvas) UpdateOriginal(img image.Image) {
	ic.originalImg = newDisplayImage(img)
	ic.originalView.SetContent(ic.originalImg)
}

// UpdateWorking replaces the working view's image.
func (ic *ImageCanvas) UpdateWorking(img image.Image) {
	ic.workingImg = newDisplayImage(img)
	ic.workingView.SetContent(ic.workingImg)
}

// Clear restores both views to the placeholder.
func (ic *ImageCanvas) Clear() {
	ic.UpdateOriginal(placeholderImage())
	ic.UpdateWorking(placeholderImage())
}

func newDisplayImage(img image.Image) *canvas.Image {
	display := canvas.NewImageFromImage(img)
	display.FillMode = canvas.ImageFillContain
	display.ScaleMode = canvas.ImageScaleSmooth
	display.SetMinSize(fyne.NewSize(320, 240))
	return display
}

func placeholderImage() image.Image {
	img := image.NewRGBA(image.Rect(0, 0, 320, 240))
	for y := 0; y < 240; y++ {
		for x := 0; x < 320; x++ {
			img.Set(x, y, color.RGBA{240, 240, 240, 255})
		}
	}
	return img
}
