package services

import (
	"github.com/phyn2-2/veritas-phase1/internal/models"
	"gorm.io/gorm"
)

// CatalogService is the public, read-only view over VERIFIED submissions.
type CatalogService struct {
	db *gorm.DB
}

func NewCatalogService(db *gorm.DB) *CatalogService {
	return &CatalogService{db: db}
}

// ListVerified pages through the verified catalog. Ordering is by decision
// time then id, which is stable and deterministic across pages; a page past
// the end returns an empty list, not an error.
func (s *CatalogService) ListVerified(page, limit int) ([]models.Submission, int64, error) {
	var assets []models.Submission
	var total int64

	query := s.db.Model(&models.Submission{}).Where("status = ?", models.StatusVerified)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("reviewed_at DESC, id").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&assets).Error
	if err != nil {
		return nil, 0, err
	}
	return assets, total, nil
}
