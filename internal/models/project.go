package models

import (
	"strings"
	"time"
)

// Project represents a research project owned by a director. The required
// helper count is set once, either manually or pre-filled from the staffing
// planning document, and drives the quota evaluation.
type Project struct {
	ID              string     `db:"id" json:"id"`
	Name            string     `db:"name" json:"name"`
	Code            string     `db:"code" json:"code"`
	Description     string     `db:"description" json:"description"`
	Type            string     `db:"type" json:"type"`
	StartDate       *time.Time `db:"start_date" json:"start_date,omitempty"`
	EndDate         *time.Time `db:"end_date" json:"end_date,omitempty"`
	RequiredHelpers int        `db:"required_helpers" json:"required_helpers"`
	OwnerID         string     `db:"owner_id" json:"owner_id"`
	CreatedAt       time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time  `db:"updated_at" json:"updated_at"`
}

// Valid reports whether the project satisfies its construction invariants.
// Updates after construction do not re-validate, matching the legacy system.
func (p *Project) Valid() bool {
	return strings.TrimSpace(p.Name) != "" &&
		strings.TrimSpace(p.Code) != "" &&
		p.RequiredHelpers >= 0 &&
		p.OwnerID != ""
}

// Shortfall returns how many helpers are still missing given the number of
// registered forms. Negative values mean the quota is met or exceeded.
func (p *Project) Shortfall(registered int) int {
	return p.RequiredHelpers - registered
}
