package components

import (
	"contractor-leads/internal/export"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// Toolbar holds the table actions: refresh, exports and the edit toggle
type Toolbar struct {
	container     *fyne.Container
	refreshButton *widget.Button
	exportButtons map[export.Format]*widget.Button
	editCheck     *widget.Check

	// Event handlers
	refreshHandler  func()
	exportHandler   func(export.Format)
	editModeHandler func(bool)
}

// NewToolbar creates a new toolbar component
func NewToolbar() *Toolbar {
	toolbar := &Toolbar{exportButtons: make(map[export.Format]*widget.Button)}
	toolbar.createComponents()
	toolbar.buildLayout()
	return toolbar
}

func (t *Toolbar) createComponents() {
	t.refreshButton = widget.NewButtonWithIcon("Refresh", theme.ViewRefreshIcon(), func() {
		if t.refreshHandler != nil {
			t.refreshHandler()
		}
	})

	for _, format := range export.Formats {
		format := format
		t.exportButtons[format] = widget.NewButtonWithIcon("Export "+format.Title(), theme.DocumentSaveIcon(), func() {
			if t.exportHandler != nil {
				t.exportHandler(format)
			}
		})
	}

	t.editCheck = widget.NewCheck("Enable Editing", func(enabled bool) {
		if t.editModeHandler != nil {
			t.editModeHandler(enabled)
		}
	})
}

func (t *Toolbar) buildLayout() {
	exportSection := container.NewHBox()
	for _, format := range export.Formats {
		exportSection.Add(t.exportButtons[format])
	}

	t.container = container.NewHBox(
		t.refreshButton,
		widget.NewSeparator(),
		exportSection,
		widget.NewSeparator(),
		t.editCheck,
	)
}

// SetRefreshHandler sets the refresh handler
func (t *Toolbar) SetRefreshHandler(handler func()) {
	t.refreshHandler = handler
}

// SetExportHandler sets the handler for every export button
func (t *Toolbar) SetExportHandler(handler func(export.Format)) {
	t.exportHandler = handler
}

// SetEditModeHandler sets the handler for the edit toggle
func (t *Toolbar) SetEditModeHandler(handler func(bool)) {
	t.editModeHandler = handler
}

// SetEditMode moves the toggle without firing the handler.
func (t *Toolbar) SetEditMode(enabled bool) {
	handler := t.editModeHandler
	t.editModeHandler = nil
	t.editCheck.SetChecked(enabled)
	t.editModeHandler = handler
}

func (t *Toolbar) EditMode() bool {
	return t.editCheck.Checked
}

// GetContainer returns the toolbar container
func (t *Toolbar) GetContainer() *fyne.Container {
	return t.container
}
