package models

import (
	"fmt"
)

// Field names a lead attribute. The string value is the persisted JSON key.
type Field string

const (
	FieldName       Field = "Name"
	FieldAddress    Field = "Address"
	FieldPhone      Field = "Phone"
	FieldEmail      Field = "Email"
	FieldNotes      Field = "Notes"
	FieldReferredBy Field = "Referred By"
	FieldReferredTo Field = "Referred To"
	FieldJobType    Field = "Job Type"
	FieldLeadStatus Field = "Lead Status"
)

// Fields lists every lead attribute in record order.
var Fields = []Field{
	FieldName,
	FieldAddress,
	FieldPhone,
	FieldEmail,
	FieldNotes,
	FieldReferredBy,
	FieldReferredTo,
	FieldJobType,
	FieldLeadStatus,
}

// JobType classifies the work a lead is asking for
type JobType string

const (
	JobResidential JobType = "Residential"
	JobCommercial  JobType = "Commercial"
	JobOther       JobType = "Other"
	// JobUnknown is what older input forms stored; it is shown as JobOther.
	JobUnknown JobType = "Unknown"
)

// JobTypes are the dropdown choices, in display order.
var JobTypes = []JobType{JobResidential, JobCommercial, JobOther}

// Choice maps a stored job type onto one of the dropdown choices.
func (j JobType) Choice() JobType {
	switch j {
	case JobResidential, JobCommercial:
		return j
	default:
		return JobOther
	}
}

// LeadStatus tracks a lead through the sales pipeline
type LeadStatus string

const (
	StatusInSystem     LeadStatus = "In System"
	StatusGoodLead     LeadStatus = "Good Lead"
	StatusContactLater LeadStatus = "Contact Later"
	StatusBadLead      LeadStatus = "Bad Lead"
	StatusPassedAlong  LeadStatus = "Passed Along"
	StatusClosed       LeadStatus = "Closed"
)

// Statuses are the dropdown choices, in pipeline order.
var Statuses = []LeadStatus{
	StatusInSystem,
	StatusGoodLead,
	StatusContactLater,
	StatusBadLead,
	StatusPassedAlong,
	StatusClosed,
}

// DefaultStatus is assigned to every lead that arrives without one.
const DefaultStatus = StatusInSystem

// Lead is a single contractor sales lead. ID is process-local and never persisted.
type Lead struct {
	ID         string     `json:"-"`
	Name       string     `json:"Name"`
	Address    string     `json:"Address"`
	Phone      string     `json:"Phone"`
	Email      string     `json:"Email"`
	Notes      string     `json:"Notes"`
	ReferredBy string     `json:"Referred By"`
	ReferredTo string     `json:"Referred To"`
	JobType    JobType    `json:"Job Type"`
	Status     LeadStatus `json:"Lead Status"`
}

// Get returns the text value of a field.
func (l Lead) Get(field Field) (string, error) {
	switch field {
	case FieldName:
		return l.Name, nil
	case FieldAddress:
		return l.Address, nil
	case FieldPhone:
		return l.Phone, nil
	case FieldEmail:
		return l.Email, nil
	case FieldNotes:
		return l.Notes, nil
	case FieldReferredBy:
		return l.ReferredBy, nil
	case FieldReferredTo:
		return l.ReferredTo, nil
	case FieldJobType:
		return string(l.JobType), nil
	case FieldLeadStatus:
		return string(l.Status), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownField, field)
}

// Value is Get for callers iterating a known field list.
func (l Lead) Value(field Field) string {
	v, _ := l.Get(field)
	return v
}

// Set overwrites a field. Values are not validated, except that an empty
// Lead Status falls back to DefaultStatus so a lead never loses its status.
func (l *Lead) Set(field Field, value string) error {
	switch field {
	case FieldName:
		l.Name = value
	case FieldAddress:
		l.Address = value
	case FieldPhone:
		l.Phone = value
	case FieldEmail:
		l.Email = value
	case FieldNotes:
		l.Notes = value
	case FieldReferredBy:
		l.ReferredBy = value
	case FieldReferredTo:
		l.ReferredTo = value
	case FieldJobType:
		l.JobType = JobType(value)
	case FieldLeadStatus:
		l.Status = LeadStatus(value)
		l.Normalize()
	default:
		return fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	return nil
}

// Normalize applies the record defaults.
func (l *Lead) Normalize() {
	if l.Status == "" {
		l.Status = DefaultStatus
	}
}

// SameFields reports whether two leads agree on every persisted field.
func (l Lead) SameFields(other Lead) bool {
	a, b := l, other
	a.ID, b.ID = "", ""
	return a == b
}
