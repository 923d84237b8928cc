package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/phyn2-2/veritas-phase1/internal/config"
	"github.com/phyn2-2/veritas-phase1/internal/dto"
	"github.com/phyn2-2/veritas-phase1/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SubmissionService owns submission creation (with the pending-quota guard)
// and owner-scoped reads.
type SubmissionService struct {
	db  *gorm.DB
	cfg *config.Config
}

func NewSubmissionService(db *gorm.DB, cfg *config.Config) *SubmissionService {
	return &SubmissionService{db: db, cfg: cfg}
}

// lockForUpdate adds SELECT ... FOR UPDATE on Postgres. SQLite (tests) has no
// row locks; its single writer serializes transactions instead.
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "postgres" {
		return tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return tx
}

// Create inserts a PENDING submission if the owner is under the per-user
// pending quota and the system is under the global cap. The quota check and
// the insert run in one transaction under a row lock on the owner, so two
// concurrent attempts from the same user cannot both pass a check that only
// admits one.
func (s *SubmissionService) Create(userID uuid.UUID, req *dto.CreateSubmissionRequest) (*models.Submission, error) {
	if err := validateSubmission(req); err != nil {
		return nil, err
	}

	submission := models.Submission{
		ID:          uuid.New(),
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
		Type:        req.Type,
		FileURL:     req.FileURL,
		Status:      models.StatusPending,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		// Lock the owner row: concurrent creates for the same user queue up
		// here and re-count after the winner commits.
		var owner models.User
		if err := lockForUpdate(tx).First(&owner, "id = ?", userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return fmt.Errorf("failed to lock user row: %w", err)
		}

		var userPending int64
		if err := tx.Model(&models.Submission{}).
			Where("user_id = ? AND status = ?", userID, models.StatusPending).
			Count(&userPending).Error; err != nil {
			return fmt.Errorf("failed to count pending submissions: %w", err)
		}
		if userPending >= int64(s.cfg.MaxPendingPerUser) {
			return ErrQuotaExceeded
		}

		var globalPending int64
		if err := tx.Model(&models.Submission{}).
			Where("status = ?", models.StatusPending).
			Count(&globalPending).Error; err != nil {
			return fmt.Errorf("failed to count global pending: %w", err)
		}
		if globalPending >= int64(s.cfg.GlobalPendingCap) {
			return ErrGlobalCapReached
		}

		return tx.Create(&submission).Error
	})
	if err != nil {
		return nil, err
	}

	return &submission, nil
}

// ListMine returns the requester's own submissions, any status, newest first.
func (s *SubmissionService) ListMine(userID uuid.UUID, page, limit int) ([]models.Submission, int64, error) {
	var submissions []models.Submission
	var total int64

	query := s.db.Model(&models.Submission{}).Where("user_id = ?", userID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&submissions).Error
	if err != nil {
		return nil, 0, err
	}
	return submissions, total, nil
}

// Get returns a submission the requester is allowed to see: the owner always,
// anyone once it is VERIFIED. Everything else reports not-found so the
// existence of other users' submissions does not leak.
func (s *SubmissionService) Get(id uuid.UUID, requester *models.User) (*models.Submission, error) {
	var submission models.Submission
	if err := s.db.First(&submission, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubmissionNotFound
		}
		return nil, err
	}

	if submission.UserID != requester.ID && submission.Status != models.StatusVerified {
		return nil, ErrSubmissionNotFound
	}
	return &submission, nil
}

// ListPending returns the admin review queue, oldest first (FIFO fairness).
func (s *SubmissionService) ListPending(page, limit int) ([]models.Submission, int64, error) {
	var submissions []models.Submission
	var total int64

	query := s.db.Model(&models.Submission{}).Where("status = ?", models.StatusPending)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("created_at ASC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&submissions).Error
	if err != nil {
		return nil, 0, err
	}
	return submissions, total, nil
}
