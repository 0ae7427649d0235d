package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"cotillion/backend/internal/config"
)

// AskStatus is the lifecycle state of an ask. An ask starts pending and
// moves to exactly one terminal state.
type AskStatus string

const (
	// AskPending is the initial state of every ask.
	AskPending AskStatus = "pending"
	// AskAccepted means the recipient accepted and a pairing was created.
	AskAccepted AskStatus = "accepted"
	// AskDeclined means the recipient turned the ask down.
	AskDeclined AskStatus = "declined"
	// AskCanceled means the sender withdrew the ask.
	AskCanceled AskStatus = "canceled"
	// AskSuperseded marks pending asks foreclosed when either endpoint
	// got paired through a different ask.
	AskSuperseded AskStatus = "superseded"
)

// Resolved reports whether the status is terminal.
func (s AskStatus) Resolved() bool {
	return s != AskPending
}

// Ask is a directed pairing offer from a girl to a guy.
type Ask struct {
	ID         string    `gorm:"primaryKey" json:"id"`
	FromUserID string    `gorm:"index;not null" json:"fromUserId"`
	ToUserID   string    `gorm:"index;not null" json:"toUserId"`
	Status     AskStatus `gorm:"type:varchar(12);default:'pending';index" json:"status"`
	Message    string    `gorm:"size:280" json:"message"`
	CreatedAt  time.Time `json:"createdAt"`
}

// BeforeCreate generates a UUID and defaults the status to pending.
func (a *Ask) BeforeCreate(tx *gorm.DB) (err error) {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	if a.Status == "" {
		a.Status = AskPending
	}
	return
}

// TruncateMessage silently clips an ask message to the maximum length.
// Overlong messages are truncated rather than rejected.
func TruncateMessage(s string) string {
	runes := []rune(s)
	if len(runes) > config.MessageMaxLen {
		return string(runes[:config.MessageMaxLen])
	}
	return s
}
