package models

import "time"

// Audit actions recorded by the API.
const (
	AuditActionLogin      = "LOGIN"
	AuditActionUserCreate = "USER_CREATE"
	AuditActionUserDelete = "USER_DELETE"
)

// AuditLog stores a trace of sensitive operations.
type AuditLog struct {
	ID         string    `db:"id" json:"id"`
	UserID     *string   `db:"user_id" json:"user_id,omitempty"`
	Action     string    `db:"action" json:"action"`
	Resource   string    `db:"resource" json:"resource"`
	ResourceID *string   `db:"resource_id" json:"resource_id,omitempty"`
	Detail     []byte    `db:"detail" json:"detail,omitempty"`
	IPAddress  string    `db:"ip_address" json:"ip_address"`
	UserAgent  string    `db:"user_agent" json:"user_agent"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}
