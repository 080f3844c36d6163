package views

import (
	"contractor-leads/internal/export"
	"contractor-leads/internal/models"
	"contractor-leads/internal/projection"
	"contractor-leads/internal/views/components"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
)

// MainView is the leads window: form, toolbar and table on the Leads tab,
// placeholder tabs beside it and a status bar underneath.
type MainView struct {
	window        fyne.Window
	mainContainer *fyne.Container
	tabs          *container.AppTabs
	form          *components.LeadForm
	toolbar       *components.Toolbar
	table         *components.LeadsTable
	statusBar     *components.StatusBar

	// Event handlers - connected to controller
	submitHandler   func(models.Lead)
	refreshHandler  func()
	exportHandler   func(export.Format)
	editModeHandler func(bool)
	deleteHandler   func(string)
	saveHandler     func()
}

// NewMainView creates a new main view over the table model
func NewMainView(window fyne.Window, model components.LeadsModel) *MainView {
	view := &MainView{window: window}

	view.initializeComponents(model)
	view.buildLayout()
	view.buildMenu()
	view.setupEventHandlers()

	return view
}

func (mv *MainView) initializeComponents(model components.LeadsModel) {
	mv.form = components.NewLeadForm()
	mv.toolbar = components.NewToolbar()
	mv.table = components.NewLeadsTable(model)
	mv.statusBar = components.NewStatusBar()
}

func (mv *MainView) buildLayout() {
	leads := container.NewBorder(
		container.NewVBox(mv.form.GetContainer(), mv.toolbar.GetContainer()),
		nil,
		nil,
		nil,
		mv.table.GetContainer(),
	)

	items := append([]*container.TabItem{container.NewTabItem("Leads", leads)}, components.PlaceholderTabs()...)
	mv.tabs = container.NewAppTabs(items...)

	mv.mainContainer = container.NewBorder(
		nil,
		mv.statusBar.GetContainer(),
		nil,
		nil,
		mv.tabs,
	)

	mv.window.SetContent(mv.mainContainer)
}

func (mv *MainView) buildMenu() {
	save := fyne.NewMenuItem("Save", func() {
		if mv.saveHandler != nil {
			mv.saveHandler()
		}
	})
	save.Shortcut = &desktop.CustomShortcut{KeyName: fyne.KeyS, Modifier: fyne.KeyModifierShortcutDefault}

	formats := make([]*fyne.MenuItem, 0, len(export.Formats))
	for _, format := range export.Formats {
		format := format
		formats = append(formats, fyne.NewMenuItem(format.Title()+"...", func() {
			if mv.exportHandler != nil {
				mv.exportHandler(format)
			}
		}))
	}
	exportItem := fyne.NewMenuItem("Export", nil)
	exportItem.ChildMenu = fyne.NewMenu("", formats...)

	refresh := fyne.NewMenuItem("Refresh Table", func() {
		if mv.refreshHandler != nil {
			mv.refreshHandler()
		}
	})

	mv.window.SetMainMenu(fyne.NewMainMenu(
		fyne.NewMenu("File", save, exportItem, fyne.NewMenuItemSeparator(), refresh),
	))
}

// setupEventHandlers connects internal component events
func (mv *MainView) setupEventHandlers() {
	mv.form.SetSubmitHandler(func(lead models.Lead) {
		if mv.submitHandler != nil {
			mv.submitHandler(lead)
		}
	})

	mv.toolbar.SetRefreshHandler(func() {
		if mv.refreshHandler != nil {
			mv.refreshHandler()
		}
	})

	mv.toolbar.SetExportHandler(func(format export.Format) {
		if mv.exportHandler != nil {
			mv.exportHandler(format)
		}
	})

	mv.toolbar.SetEditModeHandler(func(enabled bool) {
		if mv.editModeHandler != nil {
			mv.editModeHandler(enabled)
		}
	})

	mv.table.SetDeleteHandler(func(rowID string) {
		if mv.deleteHandler != nil {
			mv.deleteHandler(rowID)
		}
	})

	mv.table.SetNoticeHandler(func(err error) {
		mv.ShowInfo("Edit not applied", err.Error())
	})

	mv.window.Canvas().AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyS, Modifier: fyne.KeyModifierShortcutDefault}, func(fyne.Shortcut) {
		if mv.saveHandler != nil {
			mv.saveHandler()
		}
	})
}

// Event handler setters - called by controller

func (mv *MainView) SetSubmitHandler(handler func(models.Lead)) {
	mv.submitHandler = handler
}

func (mv *MainView) SetRefreshHandler(handler func()) {
	mv.refreshHandler = handler
}

func (mv *MainView) SetExportHandler(handler func(export.Format)) {
	mv.exportHandler = handler
}

func (mv *MainView) SetEditModeHandler(handler func(bool)) {
	mv.editModeHandler = handler
}

func (mv *MainView) SetDeleteHandler(handler func(string)) {
	mv.deleteHandler = handler
}

func (mv *MainView) SetSaveHandler(handler func()) {
	mv.saveHandler = handler
}

// UI update methods - called by controller

// RenderRows redraws the table from a projection snapshot
func (mv *MainView) RenderRows(rows []projection.Row) {
	fyne.Do(func() {
		mv.table.Render(rows)
		mv.statusBar.SetLeadCount(len(rows))
	})
}

// UpdateStatus updates the status bar message
func (mv *MainView) UpdateStatus(status string) {
	fyne.Do(func() {
		mv.statusBar.SetStatus(status)
	})
}

// SetEditMode reflects edit mode in the toolbar and status bar
func (mv *MainView) SetEditMode(enabled bool) {
	fyne.Do(func() {
		mv.toolbar.SetEditMode(enabled)
		mv.statusBar.SetEditMode(enabled)
	})
}

func (mv *MainView) SetDataFile(path string) {
	fyne.Do(func() {
		mv.statusBar.SetDataFile(path)
	})
}

// ShowError displays an error dialog
func (mv *MainView) ShowError(title string, err error) {
	fyne.Do(func() {
		dialog.ShowError(err, mv.window)
	})
}

// ShowInfo displays an information dialog
func (mv *MainView) ShowInfo(title, message string) {
	fyne.Do(func() {
		dialog.ShowInformation(title, message, mv.window)
	})
}

// ShowConfirm displays a confirmation dialog
func (mv *MainView) ShowConfirm(title, message string, callback func(bool)) {
	fyne.Do(func() {
		dialog.ShowConfirm(title, message, callback, mv.window)
	})
}

// ShowSaveDialog displays a file save dialog with a suggested file name
func (mv *MainView) ShowSaveDialog(fileName string, callback func(fyne.URIWriteCloser, error)) {
	fyne.Do(func() {
		d := dialog.NewFileSave(callback, mv.window)
		d.SetFileName(fileName)
		d.Show()
	})
}

// Show displays the view
func (mv *MainView) Show() {
	fyne.Do(func() {
		mv.window.Show()
	})
}
