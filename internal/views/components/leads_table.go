package components

import (
	"contractor-leads/internal/models"
	"contractor-leads/internal/projection"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// LeadsModel is the part of the projection the table talks to.
type LeadsModel interface {
	Rows() []projection.Row
	BeginEdit(rowID string, field models.Field) error
	Commit(edit projection.CellEdit) error
	AbandonEdit(rowID string, field models.Field)
	Select(rowID string, field models.Field, value string) error
}

// LeadsTable renders projection rows as a grid of editable cells.
type LeadsTable struct {
	model  LeadsModel
	grid   *fyne.Container
	scroll *container.Scroll

	noticeHandler func(error)
	deleteHandler func(rowID string)
}

func NewLeadsTable(model LeadsModel) *LeadsTable {
	t := &LeadsTable{model: model}
	t.grid = container.New(layout.NewGridLayoutWithColumns(len(projection.Columns)))
	t.scroll = container.NewScroll(t.grid)
	t.Render(model.Rows())
	return t
}

// SetNoticeHandler sets where rejected edits are reported
func (t *LeadsTable) SetNoticeHandler(handler func(error)) {
	t.noticeHandler = handler
}

// SetDeleteHandler sets the handler for delete requests; it must confirm first.
func (t *LeadsTable) SetDeleteHandler(handler func(rowID string)) {
	t.deleteHandler = handler
}

// Render replaces every cell. Callers run it on the UI goroutine.
func (t *LeadsTable) Render(rows []projection.Row) {
	objects := make([]fyne.CanvasObject, 0, (len(rows)+1)*len(projection.Columns))
	for _, col := range projection.Columns {
		objects = append(objects, widget.NewLabelWithStyle(col.Title, fyne.TextAlignLeading, fyne.TextStyle{Bold: true}))
	}

	for _, row := range rows {
		for i, col := range projection.Columns {
			objects = append(objects, t.cell(row, col, row.Cells[i]))
		}
	}

	t.grid.Objects = objects
	t.grid.Refresh()
}

func (t *LeadsTable) cell(row projection.Row, col projection.Column, value string) fyne.CanvasObject {
	rowID := row.ID
	switch col.Kind {
	case projection.KindChoice:
		sel := widget.NewSelect(col.Choices, nil)
		sel.SetSelected(value)
		field := col.Field
		sel.OnChanged = func(choice string) {
			if err := t.model.Select(rowID, field, choice); err != nil {
				t.notice(err)
			}
		}
		return sel
	case projection.KindAction:
		return widget.NewButtonWithIcon("Delete", theme.DeleteIcon(), func() {
			if t.deleteHandler != nil {
				t.deleteHandler(rowID)
			}
		})
	default:
		return newCellEntry(t, rowID, col.Field, value)
	}
}

func (t *LeadsTable) notice(err error) {
	if t.noticeHandler != nil {
		t.noticeHandler(err)
	}
}

func (t *LeadsTable) GetContainer() fyne.CanvasObject {
	return t.scroll
}

// cellEntry commits when the user presses Enter or leaves the cell. The edit
// opens on the first keystroke that would change the text, so focusing or
// tabbing through a locked cell stays quiet.
type cellEntry struct {
	widget.Entry

	table    *LeadsTable
	rowID    string
	field    models.Field
	original string
	editing  bool
	rejected bool
}

func newCellEntry(table *LeadsTable, rowID string, field models.Field, value string) *cellEntry {
	e := &cellEntry{table: table, rowID: rowID, field: field, original: value}
	e.ExtendBaseWidget(e)
	e.SetText(value)
	e.OnSubmitted = func(string) { e.finish() }
	return e
}

func (e *cellEntry) FocusLost() {
	e.Entry.FocusLost()
	e.finish()
}

func (e *cellEntry) TypedRune(r rune) {
	e.begin()
	if e.rejected {
		return
	}
	e.Entry.TypedRune(r)
}

func (e *cellEntry) TypedKey(key *fyne.KeyEvent) {
	switch key.Name {
	case fyne.KeyBackspace, fyne.KeyDelete:
		e.begin()
		if e.rejected {
			return
		}
	}
	e.Entry.TypedKey(key)
}

func (e *cellEntry) TypedShortcut(shortcut fyne.Shortcut) {
	switch shortcut.(type) {
	case *fyne.ShortcutPaste, *fyne.ShortcutCut:
		e.begin()
		if e.rejected {
			return
		}
	}
	e.Entry.TypedShortcut(shortcut)
}

func (e *cellEntry) begin() {
	if e.editing {
		return
	}
	e.editing = true
	if err := e.table.model.BeginEdit(e.rowID, e.field); err != nil {
		e.rejected = true
		e.table.notice(err)
	}
}

func (e *cellEntry) finish() {
	if !e.editing {
		return
	}
	e.editing = false

	if e.rejected {
		e.rejected = false
		e.SetText(e.original)
		return
	}
	if e.Text == e.original {
		e.table.model.AbandonEdit(e.rowID, e.field)
		return
	}

	err := e.table.model.Commit(projection.CellEdit{RowID: e.rowID, Field: e.field, Value: e.Text})
	if err != nil {
		e.SetText(e.original)
		e.table.notice(err)
		return
	}
	e.original = e.Text
}
