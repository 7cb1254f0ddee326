// Menu handler for file actions
package gui

import (
	"fmt"
	"log/slog"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"

	"interactive-image-editor/internal/core"
	"interactive-image-editor/internal/filters"
)

// MenuHandler handles menu actions
type MenuHandler struct {
	window fyne.Window
	editor *core.Editor
	logger *slog.Logger

	onImageLoaded func(string)
	onImageSaved  func(string)
}

func NewMenuHandler(window fyne.Window, editor *core.Editor, logger *slog.Logger) *MenuHandler {
	return &MenuHandler{
		window: window,
		editor: editor,
		logger: logger,
	}
}

func (mh *MenuHandler) GetMainMenu() *fyne.MainMenu {
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("Open Image...", mh.OpenImage),
		fyne.NewMenuItem("Save", mh.SaveImage),
		fyne.NewMenuItem("Save As...", mh.SaveImageAs),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Exit", func() {
			mh.window.Close()
		}),
	)

	editMenu := fyne.NewMenu("Edit",
		fyne.NewMenuItem("Undo", func() {
			if mh.editor.Undo() && mh.onImageLoaded != nil {
				mh.onImageLoaded(mh.editor.SourcePath())
			}
		}),
		fyne.NewMenuItem("Redo", func() {
			if mh.editor.Redo() && mh.onImageLoaded != nil {
				mh.onImageLoaded(mh.editor.SourcePath())
			}
		}),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Reset to Original", func() {
			if err := mh.editor.ResetToOriginal(); err != nil {
				mh.showError("Reset Failed", err)
				return
			}
			if mh.onImageLoaded != nil {
				mh.onImageLoaded(mh.editor.SourcePath())
			}
		}),
	)

	helpMenu := fyne.NewMenu("Help",
		fyne.NewMenuItem("Filter Information", mh.showFilterInfo),
		fyne.NewMenuItem("About", mh.showAbout),
	)

	return fyne.NewMainMenu(fileMenu, editMenu, helpMenu)
}

// OpenImage shows the file-open dialog and loads the chosen image.
func (mh *MenuHandler) OpenImage() {
	mh.logger.Info("Opening file dialog for image selection")

	fileDialog := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			mh.showError("File Dialog Error", err)
			return
		}
		if reader == nil {
			return
		}
		defer reader.Close()

		filepath := reader.URI().Path()
		mh.logger.Info("Loading selected image", "filepath", filepath)

		if err := mh.editor.OpenImage(filepath); err != nil {
			mh.showError("Failed to Load Image", err)
			return
		}

		if mh.onImageLoaded != nil {
			mh.onImageLoaded(filepath)
		}
	}, mh.window)

	fileDialog.SetFilter(storage.NewExtensionFileFilter(mh.editor.SupportedFormats()))
	fileDialog.Show()
}

// SaveImage writes the working image back to its source path.
func (mh *MenuHandler) SaveImage() {
	if !mh.editor.HasImage() {
		mh.showError("No Image", fmt.Errorf("no image loaded to save"))
		return
	}

	path := mh.editor.SourcePath()
	if err := mh.editor.SaveImage(path); err != nil {
		mh.showError("Failed to Save Image", err)
		return
	}

	if mh.onImageSaved != nil {
		mh.onImageSaved(path)
	}
}

// SaveImageAs shows the file-save dialog and writes the working image.
func (mh *MenuHandler) SaveImageAs() {
	if !mh.editor.HasImage() {
		mh.showError("No Image", fmt.Errorf("no image loaded to save"))
		return
	}

	fileDialog := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			mh.showError("File Dialog Error", err)
			return
		}
		if writer == nil {
			return
		}
		defer writer.Close()

		filepath := writer.URI().Path()
		mh.logger.Info("Saving image", "filepath", filepath)

		if err := mh.editor.SaveImage(filepath); err != nil {
			mh.showError("Failed to Save Image", err)
			return
		}

		if mh.onImageSaved != nil {
			mh.onImageSaved(filepath)
		}
	}, mh.window)

	fileDialog.SetFileName("edited_image.png")
	fileDialog.SetFilter(storage.NewExtensionFileFilter(mh.editor.SupportedFormats()))
	fileDialog.Show()
}

// showFilterInfo lists every registered filter with its description and
// parameter metadata, built from the registry rather than a static text.
func (mh *MenuHandler) showFilterInfo() {
	rows := container.NewVBox(
		widget.NewLabel(fmt.Sprintf("%d filters available", filters.Count())),
		widget.NewSeparator(),
	)

	for _, key := range filters.Keys() {
		info, ok := filters.Describe(key)
		if !ok {
			continue
		}

		rows.Add(widget.NewLabelWithStyle(info.DisplayName, fyne.TextAlignLeading, fyne.TextStyle{Bold: true}))
		rows.Add(widget.NewLabel(info.Description))

		for _, param := range filters.Parameters(key) {
			rows.Add(widget.NewLabel(describeParameter(param)))
		}
		rows.Add(widget.NewSeparator())
	}

	scroll := container.NewScroll(rows)
	scroll.SetMinSize(fyne.NewSize(420, 360))

	infoDialog := dialog.NewCustom("Filter Information", "Close", scroll, mh.window)
	infoDialog.Show()
}

func describeParameter(param filters.ParameterInfo) string {
	line := fmt.Sprintf("    %s (%s): default %v", param.Name, param.Type, param.Default)
	if param.Min != nil && param.Max != nil {
		line += fmt.Sprintf(", range %v to %v", param.Min, param.Max)
	}
	if len(param.Options) > 0 {
		line += fmt.Sprintf(", one of %s", strings.Join(param.Options, ", "))
	}
	return line
}

func (mh *MenuHandler) showAbout() {
	content := container.NewVBox(
		widget.NewLabel("Image Editor"),
		widget.NewSeparator(),
		widget.NewLabel("A desktop image editor with filters,"),
		widget.NewLabel("live slider preview and linear undo/redo."),
		widget.NewSeparator(),
		widget.NewLabel("Built with Go, Fyne and OpenCV"),
	)

	aboutDialog := dialog.NewCustom("About", "Close", content, mh.window)
	aboutDialog.Resize(fyne.NewSize(400, 240))
	aboutDialog.Show()
}

func (mh *MenuHandler) showError(title string, err error) {
	mh.logger.Error(title, "error", err)
	dialog.ShowError(err, mh.window)
}

func (mh *MenuHandler) SetCallbacks(onImageLoaded, onImageSaved func(string)) {
	mh.onImageLoaded = onImageLoaded
	mh.onImageSaved = onImageSaved
}
