package repositories

import (
	"fmt"

	"gorm.io/gorm"

	"resumely/resume-analyzer/internal/models"
)

// AnalysisRepository writes analysis rows. Reads go through
// ResumeRepository's preloads.
type AnalysisRepository interface {
	Create(analysis *models.Analysis) error
}

type analysisRepository struct {
	db *gorm.DB
}

func NewAnalysisRepository(db *gorm.DB) AnalysisRepository {
	return &analysisRepository{db: db}
}

func (r *analysisRepository) Create(analysis *models.Analysis) error {
	if err := r.db.Create(analysis).Error; err != nil {
		return fmt.Errorf("failed to create analysis: %w", err)
	}
	return nil
}
