// Package projection keeps the editable leads table in step with the store.
//
// The view never touches the store. It reports what the user did (an edit
// started, a cell committed, a choice picked, a delete confirmed) and the
// projection applies it by the row's stable ID, so a delete that shifted
// positions in the meantime cannot misdirect an edit. A refresh requested while a cell editor is open waits for
// that editor to commit or be abandoned, so in-flight text is never thrown
// away by a rebuild.
package projection

import (
	"errors"
	"fmt"
	"sync"

	"contractor-leads/internal/logger"
	"contractor-leads/internal/models"
)

var (
	ErrEditingDisabled = errors.New("editing must be enabled to edit this cell")
	ErrNotEditable     = errors.New("column is not editable")
	ErrRowNotFound     = errors.New("row no longer exists")
)

// Row is a rendered snapshot of one lead. Cells align with Columns.
type Row struct {
	ID    string
	Index int
	Cells []string
}

// Cell returns the rendered value for field.
func (r Row) Cell(field models.Field) string {
	for i, col := range Columns {
		if col.Kind != KindAction && col.Field == field {
			return r.Cells[i]
		}
	}
	return ""
}

// CellEdit is the commit message a view sends when a cell editor finishes.
type CellEdit struct {
	RowID string
	Field models.Field
	Value string
}

type editKey struct {
	rowID string
	field models.Field
}

// Projection owns the mutable reference to the store on behalf of the table
type Projection struct {
	store  *models.LeadStore
	logger logger.Logger

	mu             sync.Mutex
	rows           []Row
	editMode       bool
	active         *editKey
	refreshPending bool
	listeners      []func([]Row)
}

func New(store *models.LeadStore, log logger.Logger) *Projection {
	if log == nil {
		log = logger.NoOpLogger{}
	}
	p := &Projection{store: store, logger: log}
	p.rows = p.build()
	return p
}

// OnChange registers a listener called with fresh rows after every rebuild.
func (p *Projection) OnChange(fn func([]Row)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.listeners = append(p.listeners, fn)
}

// Rows returns the current snapshot
func (p *Projection) Rows() []Row {
	p.mu.Lock()
	defer p.mu.Unlock()

	rows := make([]Row, len(p.rows))
	copy(rows, p.rows)
	return rows
}

// Refresh rebuilds every row from the store. It reports false when the
// rebuild was deferred behind an open cell editor.
func (p *Projection) Refresh() bool {
	p.mu.Lock()
	if p.active != nil {
		p.refreshPending = true
		p.mu.Unlock()
		p.logger.Debug("Projection", "refresh deferred behind active edit", nil)
		return false
	}
	rows := p.rebuildLocked()
	listeners := p.listeners
	p.mu.Unlock()

	p.notify(listeners, rows)
	return true
}

func (p *Projection) rebuildLocked() []Row {
	p.rows = p.build()
	p.refreshPending = false

	rows := make([]Row, len(p.rows))
	copy(rows, p.rows)
	return rows
}

func (p *Projection) build() []Row {
	leads := p.store.All()
	rows := make([]Row, len(leads))
	for i, lead := range leads {
		rows[i] = Row{ID: lead.ID, Index: i, Cells: cellsFor(lead)}
	}
	return rows
}

func cellsFor(lead models.Lead) []string {
	cells := make([]string, len(Columns))
	for j, col := range Columns {
		switch {
		case col.Kind == KindAction:
			cells[j] = "Delete"
		case col.Field == models.FieldJobType:
			cells[j] = string(lead.JobType.Choice())
		default:
			cells[j] = lead.Value(col.Field)
		}
	}
	return cells
}

func (p *Projection) notify(listeners []func([]Row), rows []Row) {
	for _, fn := range listeners {
		fn(rows)
	}
}

// EditMode reports whether gated columns accept input
func (p *Projection) EditMode() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.editMode
}

// SetEditMode opens or closes the gated columns.
func (p *Projection) SetEditMode(enabled bool) {
	p.mu.Lock()
	p.editMode = enabled
	p.mu.Unlock()

	p.logger.Info("Projection", "edit mode changed", map[string]interface{}{"enabled": enabled})
}

// ToggleEditMode flips edit mode and returns the new state.
func (p *Projection) ToggleEditMode() bool {
	p.mu.Lock()
	enabled := !p.editMode
	p.mu.Unlock()

	p.SetEditMode(enabled)
	return enabled
}

// CanEdit reports whether a cell editor for field may accept input.
func (p *Projection) CanEdit(field models.Field) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.canEditLocked(field)
}

func (p *Projection) canEditLocked(field models.Field) error {
	col, ok := ColumnFor(field)
	if !ok {
		return fmt.Errorf("%w: %q", ErrNotEditable, field)
	}
	if col.Gated && !p.editMode {
		return fmt.Errorf("%w: %s", ErrEditingDisabled, field)
	}
	return nil
}

// BeginEdit marks a cell editor as open. Refreshes wait until it closes.
func (p *Projection) BeginEdit(rowID string, field models.Field) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.canEditLocked(field); err != nil {
		return err
	}
	p.active = &editKey{rowID: rowID, field: field}
	return nil
}

// AbandonEdit closes an editor without committing and runs any deferred refresh.
func (p *Projection) AbandonEdit(rowID string, field models.Field) {
	p.finishEdit(editKey{rowID: rowID, field: field})
}

// Commit writes a finished cell edit through to the store.
func (p *Projection) Commit(edit CellEdit) error {
	p.mu.Lock()
	err := p.canEditLocked(edit.Field)
	if err == nil {
		err = p.applyLocked(edit)
	}
	p.mu.Unlock()

	p.finishEdit(editKey{rowID: edit.RowID, field: edit.Field})

	if err != nil {
		p.logger.Warning("Projection", "edit rejected", map[string]interface{}{
			"row":   edit.RowID,
			"field": string(edit.Field),
			"error": err.Error(),
		})
		return err
	}
	p.logger.Debug("Projection", "edit committed", map[string]interface{}{
		"row":   edit.RowID,
		"field": string(edit.Field),
	})
	return nil
}

// Select commits a dropdown choice immediately.
func (p *Projection) Select(rowID string, field models.Field, value string) error {
	col, ok := ColumnFor(field)
	if !ok || col.Kind != KindChoice {
		return fmt.Errorf("%w: %q is not a choice column", ErrNotEditable, field)
	}
	return p.Commit(CellEdit{RowID: rowID, Field: field, Value: value})
}

func (p *Projection) applyLocked(edit CellEdit) error {
	if err := p.store.UpdateFieldByID(edit.RowID, edit.Field, edit.Value); err != nil {
		return rowError(edit.RowID, err)
	}
	lead, err := p.store.GetByID(edit.RowID)
	if err != nil {
		return rowError(edit.RowID, err)
	}

	for i := range p.rows {
		if p.rows[i].ID == edit.RowID {
			p.rows[i].Cells = cellsFor(lead)
		}
	}
	return nil
}

// rowError reports a vanished lead as ErrRowNotFound.
func rowError(rowID string, err error) error {
	if errors.Is(err, models.ErrLeadNotFound) {
		return fmt.Errorf("%w: %s", ErrRowNotFound, rowID)
	}
	return err
}

func (p *Projection) finishEdit(key editKey) {
	p.mu.Lock()
	if p.active == nil || *p.active != key {
		p.mu.Unlock()
		return
	}
	p.active = nil
	pending := p.refreshPending
	p.mu.Unlock()

	if pending {
		p.Refresh()
	}
}

// RefreshPending reports whether a rebuild is waiting on an open editor.
func (p *Projection) RefreshPending() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.refreshPending
}

// DeleteRequest holds a pending row removal until the user answers.
type DeleteRequest struct {
	p     *Projection
	rowID string
	done  bool
}

// RequestDelete starts the confirmation step for a row.
func (p *Projection) RequestDelete(rowID string) (*DeleteRequest, error) {
	if _, ok := p.store.IndexOf(rowID); !ok {
		return nil, fmt.Errorf("%w: %s", ErrRowNotFound, rowID)
	}
	return &DeleteRequest{p: p, rowID: rowID}, nil
}

// RowID is the row awaiting confirmation
func (r *DeleteRequest) RowID() string {
	return r.rowID
}

// Confirm removes the row and rebuilds the table, since every later row
// changes position.
func (r *DeleteRequest) Confirm() error {
	if r.done {
		return nil
	}
	r.done = true

	p := r.p
	p.mu.Lock()
	if err := p.store.RemoveByID(r.rowID); err != nil {
		p.mu.Unlock()
		return rowError(r.rowID, err)
	}
	if p.active != nil && p.active.rowID == r.rowID {
		p.active = nil
	}
	p.mu.Unlock()

	p.logger.Info("Projection", "lead deleted", map[string]interface{}{"row": r.rowID})
	p.Refresh()
	return nil
}

// Cancel drops the request; the store is untouched.
func (r *DeleteRequest) Cancel() {
	r.done = true
}
