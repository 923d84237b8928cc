package services

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/phyn2-2/veritas-phase1/internal/dto"
	"github.com/phyn2-2/veritas-phase1/internal/models"
	"gorm.io/gorm"
)

// decisionStatus maps admin decision verbs to the resulting submission state.
var decisionStatus = map[string]string{
	models.DecisionApprove:        models.StatusVerified,
	models.DecisionReject:         models.StatusRejected,
	models.DecisionRequestChanges: models.StatusNeedsChanges,
}

// VerificationService applies admin decisions to pending submissions.
type VerificationService struct {
	db *gorm.DB
}

func NewVerificationService(db *gorm.DB) *VerificationService {
	return &VerificationService{db: db}
}

// Decide transitions a submission out of PENDING on behalf of an admin.
//
// The admin flag is re-read from storage here rather than trusted from the
// caller, so revoking admin rights takes effect on the next request. The
// status update and the audit log row commit atomically under a row lock on
// the submission; a second identical decision is a no-op success, a second
// different decision fails with ErrAlreadyDecided.
func (s *VerificationService) Decide(submissionID, adminID uuid.UUID, req *dto.VerifyRequest) (*models.Submission, error) {
	newStatus, ok := decisionStatus[strings.ToUpper(strings.TrimSpace(req.Decision))]
	if !ok {
		return nil, validationErr("decision must be one of: APPROVE, REJECT, REQUEST_CHANGES")
	}
	notes := strings.TrimSpace(req.Notes)
	if len(notes) > 5000 {
		return nil, validationErr("notes must be at most 5000 characters")
	}

	var admin models.User
	if err := s.db.First(&admin, "id = ?", adminID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAdminRequired
		}
		return nil, fmt.Errorf("failed to load admin: %w", err)
	}
	if !admin.IsAdmin {
		return nil, ErrAdminRequired
	}

	var submission models.Submission
	err := s.db.Transaction(func(tx *gorm.DB) error {
		// Row lock: a concurrent decision for the same submission waits here
		// and then observes the committed terminal state.
		if err := lockForUpdate(tx).First(&submission, "id = ?", submissionID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrSubmissionNotFound
			}
			return fmt.Errorf("failed to lock submission: %w", err)
		}

		if submission.Status != models.StatusPending {
			if submission.Status == newStatus {
				// Identical retry: report success, append nothing. The audit
				// trail stays at one row per real decision.
				return nil
			}
			return ErrAlreadyDecided
		}

		now := time.Now().UTC()
		submission.Status = newStatus
		submission.ReviewedAt = &now
		submission.ReviewedBy = &admin.ID

		if err := tx.Model(&models.Submission{}).
			Where("id = ?", submission.ID).
			Updates(map[string]interface{}{
				"status":      newStatus,
				"reviewed_at": now,
				"reviewed_by": admin.ID,
			}).Error; err != nil {
			return fmt.Errorf("failed to update submission: %w", err)
		}

		log := models.VerificationLog{
			ID:           uuid.New(),
			SubmissionID: submission.ID,
			AdminID:      admin.ID,
			Decision:     strings.ToUpper(strings.TrimSpace(req.Decision)),
			Status:       newStatus,
			Notes:        notes,
		}
		return tx.Create(&log).Error
	})
	if err != nil {
		return nil, err
	}

	slog.Info("submission decided",
		"submission_id", submission.ID.String(),
		"admin_id", admin.ID.String(),
		"status", submission.Status,
	)
	return &submission, nil
}

// Logs returns the audit trail for a submission, oldest first.
func (s *VerificationService) Logs(submissionID uuid.UUID) ([]models.VerificationLog, error) {
	var logs []models.VerificationLog
	err := s.db.Where("submission_id = ?", submissionID).
		Order("created_at ASC").
		Find(&logs).Error
	return logs, err
}
