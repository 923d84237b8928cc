package models

import (
	"time"

	"github.com/google/uuid"
)

// Admin decision verbs. The log records the verb, the submission records the
// resulting state.
const (
	DecisionApprove        = "APPROVE"
	DecisionReject         = "REJECT"
	DecisionRequestChanges = "REQUEST_CHANGES"
)

// VerificationLog is the append-only audit trail of admin decisions. Rows are
// never updated or deleted; exactly one row exists per real decision.
type VerificationLog struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	SubmissionID uuid.UUID `gorm:"type:uuid;not null;index" json:"submission_id"`
	AdminID      uuid.UUID `gorm:"type:uuid;not null;index" json:"admin_id"`
	Decision     string    `gorm:"size:20;not null" json:"decision"`
	Status       string    `gorm:"size:20;not null" json:"status"`
	Notes        string    `gorm:"size:5000" json:"notes,omitempty"`
	CreatedAt    time.Time `gorm:"index" json:"created_at"`

	Submission Submission `gorm:"foreignKey:SubmissionID" json:"-"`
	Admin      User       `gorm:"foreignKey:AdminID" json:"-"`
}
