package models

import (
	"regexp"
	"strings"
	"time"
)

// FormStatus enumerates the helper form lifecycle states.
type FormStatus string

const (
	FormPending  FormStatus = "PENDING"
	FormApproved FormStatus = "APPROVED"
	FormRejected FormStatus = "REJECTED"
)

var nationalIDPattern = regexp.MustCompile(`^[0-9]{7,10}$`)

// HelperForm records one staffing assignment (helper) against a project.
// Rejected helpers are redone by registering a new form, not by editing the
// rejected one.
type HelperForm struct {
	ID            string     `db:"id" json:"id"`
	ProjectID     string     `db:"project_id" json:"project_id"`
	HelperCount   int        `db:"helper_count" json:"helper_count"`
	HelperName    string     `db:"helper_name" json:"helper_name"`
	HelperSurname string     `db:"helper_surname" json:"helper_surname"`
	NationalID    string     `db:"national_id" json:"national_id"`
	Faculty       string     `db:"faculty" json:"faculty"`
	Status        FormStatus `db:"status" json:"status"`
	CreatedAt     time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time  `db:"updated_at" json:"updated_at"`
}

// Valid reports whether all required fields are present. Status transitions
// later in the lifecycle do not re-check this.
func (f *HelperForm) Valid() bool {
	return strings.TrimSpace(f.HelperName) != "" &&
		strings.TrimSpace(f.HelperSurname) != "" &&
		strings.TrimSpace(f.NationalID) != "" &&
		strings.TrimSpace(f.Faculty) != "" &&
		f.HelperCount > 0 &&
		f.ProjectID != ""
}

// ValidNationalID reports whether the national id is 7 to 10 digits.
func (f *HelperForm) ValidNationalID() bool {
	return nationalIDPattern.MatchString(f.NationalID)
}

// HelperFullName returns the helper's display name.
func (f *HelperForm) HelperFullName() string {
	return f.HelperName + " " + f.HelperSurname
}

// Pending reports whether the form has not been reviewed yet.
func (f *HelperForm) Pending() bool {
	return f.Status == FormPending
}

// FormFilter captures filtering criteria for listing helper forms.
type FormFilter struct {
	ProjectID string
	Status    *FormStatus
}
