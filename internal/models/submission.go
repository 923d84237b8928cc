package models

import (
	"time"

	"github.com/google/uuid"
)

// Submission lifecycle states. PENDING is the only non-terminal state; once a
// submission leaves it the status never changes again.
const (
	StatusPending      = "PENDING"
	StatusVerified     = "VERIFIED"
	StatusRejected     = "REJECTED"
	StatusNeedsChanges = "NEEDS_CHANGES"
)

// Contribution categories.
const (
	TypeIdea  = "idea"
	TypeWork  = "work"
	TypeAsset = "asset"
)

// Submission is a user contribution awaiting or having received a verification
// decision. UserID is immutable after creation. ReviewedAt and ReviewedBy stay
// nil until an admin decides.
type Submission struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_id"`
	Title       string     `gorm:"size:200;not null" json:"title"`
	Description string     `gorm:"type:text;not null" json:"description"`
	Type        string     `gorm:"size:20;not null" json:"type"`
	FileURL     *string    `gorm:"size:500" json:"file_url,omitempty"`
	Status      string     `gorm:"size:20;not null;default:'PENDING';index:idx_submissions_status_created_at,priority:1" json:"status"`
	CreatedAt   time.Time  `gorm:"index:idx_submissions_status_created_at,priority:2" json:"created_at"`
	ReviewedAt  *time.Time `json:"reviewed_at,omitempty"`
	ReviewedBy  *uuid.UUID `gorm:"type:uuid" json:"reviewed_by,omitempty"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}
