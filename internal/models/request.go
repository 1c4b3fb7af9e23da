package models

import (
	"strings"
	"time"
)

// RequestStatus enumerates the request lifecycle states.
type RequestStatus string

const (
	RequestPending  RequestStatus = "PENDING"
	RequestApproved RequestStatus = "APPROVED"
	RequestRejected RequestStatus = "REJECTED"
	// RequestAdvised marks a request the reviewing authority answered with
	// guidance instead of a verdict.
	RequestAdvised RequestStatus = "ADVISED"
)

// RequestKind discriminates the typed request variants. The legacy system
// modeled these as subclasses; here a single Request carries the kind plus a
// mutually exclusive detail field per kind.
type RequestKind string

const (
	KindGeneric  RequestKind = "GENERIC"
	KindPermit   RequestKind = "PERMIT"
	KindDocument RequestKind = "DOCUMENT"
)

// Request is an escalation from a director to the reviewing authority.
type Request struct {
	ID           string        `db:"id" json:"id"`
	Date         time.Time     `db:"date" json:"date"`
	Subject      string        `db:"subject" json:"subject"`
	Body         string        `db:"body" json:"body"`
	Status       RequestStatus `db:"status" json:"status"`
	RequesterID  string        `db:"requester_id" json:"requester_id"`
	ReviewerID   *string       `db:"reviewer_id" json:"reviewer_id,omitempty"`
	Kind         RequestKind   `db:"kind" json:"kind"`
	PermitCode   *string       `db:"permit_code" json:"permit_code,omitempty"`
	DocumentType *string       `db:"document_type" json:"document_type,omitempty"`
	CreatedAt    time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time     `db:"updated_at" json:"updated_at"`
}

// ValidDetail reports whether the kind-specific detail satisfies its
// invariants: permit codes need at least 3 characters, document types must
// be non-empty, and the detail fields are mutually exclusive per kind.
func (r *Request) ValidDetail() bool {
	switch r.Kind {
	case KindPermit:
		return r.PermitCode != nil && len(strings.TrimSpace(*r.PermitCode)) >= 3 && r.DocumentType == nil
	case KindDocument:
		return r.DocumentType != nil && strings.TrimSpace(*r.DocumentType) != "" && r.PermitCode == nil
	case KindGeneric:
		return r.PermitCode == nil && r.DocumentType == nil
	default:
		return false
	}
}

// RequestFilter captures filtering criteria for listing requests.
type RequestFilter struct {
	RequesterID string
	Status      *RequestStatus
}
