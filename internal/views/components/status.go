package components

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// StatusBar shows the last action, lead count and edit mode
type StatusBar struct {
	container   *fyne.Container
	statusLabel *widget.Label
	countLabel  *widget.Label
	editLabel   *widget.Label
	fileLabel   *widget.Label
}

// NewStatusBar creates a new status bar component
func NewStatusBar() *StatusBar {
	sb := &StatusBar{}
	sb.statusLabel = widget.NewLabel("Ready")
	sb.countLabel = widget.NewLabel("Leads: 0")
	sb.editLabel = widget.NewLabel("Editing: off")
	sb.fileLabel = widget.NewLabel("")
	sb.container = container.NewHBox(
		sb.statusLabel,
		widget.NewSeparator(),
		sb.countLabel,
		widget.NewSeparator(),
		sb.editLabel,
		widget.NewSeparator(),
		sb.fileLabel,
	)
	return sb
}

// SetStatus updates the main status message
func (sb *StatusBar) SetStatus(status string) {
	sb.statusLabel.SetText(status)
}

func (sb *StatusBar) SetLeadCount(count int) {
	sb.countLabel.SetText(fmt.Sprintf("Leads: %d", count))
}

func (sb *StatusBar) SetEditMode(enabled bool) {
	if enabled {
		sb.editLabel.SetText("Editing: on")
		return
	}
	sb.editLabel.SetText("Editing: off")
}

func (sb *StatusBar) SetDataFile(path string) {
	sb.fileLabel.SetText(path)
}

// GetContainer returns the status bar container
func (sb *StatusBar) GetContainer() *fyne.Container {
	return sb.container
}
