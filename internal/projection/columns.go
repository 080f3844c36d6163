package projection

import "contractor-leads/internal/models"

// ColumnKind tells the view which widget a cell needs
type ColumnKind int

const (
	KindText ColumnKind = iota
	KindChoice
	KindAction
)

// Column describes one table column. Action columns have no Field.
type Column struct {
	Title   string
	Field   models.Field
	Kind    ColumnKind
	Gated   bool
	Choices []string
}

// ActionsTitle heads the delete-control column; it is never persisted.
const ActionsTitle = "Actions"

// Columns is the fixed table layout.
var Columns = []Column{
	{Title: string(models.FieldLeadStatus), Field: models.FieldLeadStatus, Kind: KindChoice, Choices: statusChoices()},
	{Title: string(models.FieldName), Field: models.FieldName, Kind: KindText, Gated: true},
	{Title: string(models.FieldAddress), Field: models.FieldAddress, Kind: KindText, Gated: true},
	{Title: string(models.FieldPhone), Field: models.FieldPhone, Kind: KindText, Gated: true},
	{Title: string(models.FieldEmail), Field: models.FieldEmail, Kind: KindText, Gated: true},
	{Title: string(models.FieldNotes), Field: models.FieldNotes, Kind: KindText},
	{Title: string(models.FieldJobType), Field: models.FieldJobType, Kind: KindChoice, Choices: jobTypeChoices()},
	{Title: string(models.FieldReferredBy), Field: models.FieldReferredBy, Kind: KindText},
	{Title: string(models.FieldReferredTo), Field: models.FieldReferredTo, Kind: KindText},
	{Title: ActionsTitle, Kind: KindAction},
}

// ColumnFor finds the column bound to field.
func ColumnFor(field models.Field) (Column, bool) {
	for _, col := range Columns {
		if col.Kind != KindAction && col.Field == field {
			return col, true
		}
	}
	return Column{}, false
}

func statusChoices() []string {
	choices := make([]string, len(models.Statuses))
	for i, s := range models.Statuses {
		choices[i] = string(s)
	}
	return choices
}

func jobTypeChoices() []string {
	choices := make([]string, len(models.JobTypes))
	for i, j := range models.JobTypes {
		choices[i] = string(j)
	}
	return choices
}
