package models

import (
	"strings"
	"time"
)

// Notification is a fire-and-forget message to a user, either emitted by
// the quota evaluator or pushed manually by a reviewer. Recipients poll
// their list; there is no delivery acknowledgment.
type Notification struct {
	ID          string    `db:"id" json:"id"`
	Date        time.Time `db:"date" json:"date"`
	Message     string    `db:"message" json:"message"`
	RecipientID string    `db:"recipient_id" json:"recipient_id"`
	Read        bool      `db:"read" json:"read"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// Valid reports whether the notification satisfies its construction
// invariants.
func (n *Notification) Valid() bool {
	return strings.TrimSpace(n.Message) != "" && n.RecipientID != ""
}
