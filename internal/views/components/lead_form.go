package components

import (
	"contractor-leads/internal/models"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// LeadForm collects a new lead
type LeadForm struct {
	container       *fyne.Container
	nameEntry       *widget.Entry
	addressEntry    *widget.Entry
	phoneEntry      *widget.Entry
	emailEntry      *widget.Entry
	notesEntry      *widget.Entry
	referredByEntry *widget.Entry
	jobTypeSelect   *widget.Select
	submitButton    *widget.Button

	submitHandler func(models.Lead)
}

func NewLeadForm() *LeadForm {
	f := &LeadForm{}
	f.createComponents()
	f.buildLayout()
	return f
}

func (f *LeadForm) createComponents() {
	f.nameEntry = widget.NewEntry()
	f.nameEntry.SetPlaceHolder("Name")
	f.addressEntry = widget.NewEntry()
	f.addressEntry.SetPlaceHolder("Address")
	f.phoneEntry = widget.NewEntry()
	f.phoneEntry.SetPlaceHolder("Phone")
	f.emailEntry = widget.NewEntry()
	f.emailEntry.SetPlaceHolder("Email")
	f.notesEntry = widget.NewMultiLineEntry()
	f.notesEntry.SetPlaceHolder("Notes")
	f.notesEntry.SetMinRowsVisible(3)
	f.referredByEntry = widget.NewEntry()
	f.referredByEntry.SetPlaceHolder("Referred By")

	choices := make([]string, len(models.JobTypes))
	for i, j := range models.JobTypes {
		choices[i] = string(j)
	}
	f.jobTypeSelect = widget.NewSelect(choices, nil)
	f.jobTypeSelect.SetSelected(choices[0])

	f.submitButton = widget.NewButton("Submit", f.Submit)
	f.submitButton.Importance = widget.HighImportance
}

func (f *LeadForm) buildLayout() {
	form := widget.NewForm(
		widget.NewFormItem("Name", f.nameEntry),
		widget.NewFormItem("Address", f.addressEntry),
		widget.NewFormItem("Phone", f.phoneEntry),
		widget.NewFormItem("Email", f.emailEntry),
		widget.NewFormItem("Notes", f.notesEntry),
		widget.NewFormItem("Referred By", f.referredByEntry),
		widget.NewFormItem("Job Type", f.jobTypeSelect),
	)

	f.container = container.NewVBox(
		widget.NewLabelWithStyle("New Lead", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		form,
		f.submitButton,
	)
}

// SetSubmitHandler sets the handler called with the entered lead
func (f *LeadForm) SetSubmitHandler(handler func(models.Lead)) {
	f.submitHandler = handler
}

// Submit hands the entered values to the handler and clears the form.
func (f *LeadForm) Submit() {
	lead := models.Lead{
		Name:       f.nameEntry.Text,
		Address:    f.addressEntry.Text,
		Phone:      f.phoneEntry.Text,
		Email:      f.emailEntry.Text,
		Notes:      f.notesEntry.Text,
		ReferredBy: f.referredByEntry.Text,
		JobType:    models.JobType(f.jobTypeSelect.Selected),
	}
	if f.submitHandler != nil {
		f.submitHandler(lead)
	}
	f.Reset()
}

// Reset clears every input and puts Job Type back on the first option.
func (f *LeadForm) Reset() {
	for _, entry := range []*widget.Entry{
		f.nameEntry, f.addressEntry, f.phoneEntry,
		f.emailEntry, f.notesEntry, f.referredByEntry,
	} {
		entry.SetText("")
	}
	f.jobTypeSelect.SetSelectedIndex(0)
}

func (f *LeadForm) GetContainer() *fyne.Container {
	return f.container
}
