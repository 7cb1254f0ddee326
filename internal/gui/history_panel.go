// Operation log display
package gui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"interactive-image-editor/internal/core"
)

// HistoryPanel shows the append-only operation log, newest entry last.
type HistoryPanel struct {
	card    *widget.Card
	list    *widget.List
	entries []core.Operation
}

func NewHistoryPanel() *HistoryPanel {
	hp := &HistoryPanel{}

	hp.list = widget.NewList(
		func() int {
			return len(hp.entries)
		},
		func() fyne.CanvasObject {
			return widget.NewLabel("operation")
		},
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			if id < 0 || id >= len(hp.entries) {
				return
			}
			entry := hp.entries[id]
			obj.(*widget.Label).SetText(entry.At.Format("15:04:05") + "  " + entry.Description)
		},
	)

	scroll := container.NewScroll(hp.list)
	scroll.SetMinSize(fyne.NewSize(260, 160))
	hp.card = widget.NewCard("📜 Operations", "", scroll)

	return hp
}

func (hp *HistoryPanel) GetContainer() fyne.CanvasObject {
	return hp.card
}

// SetEntries replaces the displayed log.
func (hp *HistoryPanel) SetEntries(entries []core.Operation) {
	hp.entries = entries
	hp.list.Refresh()

	if len(hp.entries) > 0 {
		hp.list.ScrollToBottom()
	}
}
