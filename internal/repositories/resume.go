package repositories

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"resumely/resume-analyzer/internal/models"
)

var ErrResumeNotFound = errors.New("resume not found")

type ResumeRepository interface {
	Create(resume *models.Resume) error
	FindByID(id uuid.UUID) (*models.Resume, error)
	FindByIDWithAnalysis(id uuid.UUID) (*models.Resume, error)
	FindRecent(limit int) ([]models.Resume, error)
	UpdateIndexStatus(id uuid.UUID, status models.IndexStatus) error
	FindByIndexStatus(status models.IndexStatus, limit int) ([]models.Resume, error)
	Delete(id uuid.UUID) error
}

type resumeRepository struct {
	db *gorm.DB
}

func NewResumeRepository(db *gorm.DB) ResumeRepository {
	return &resumeRepository{db: db}
}

func (r *resumeRepository) Create(resume *models.Resume) error {
	if err := r.db.Create(resume).Error; err != nil {
		return fmt.Errorf("failed to create resume: %w", err)
	}
	return nil
}

func (r *resumeRepository) FindByID(id uuid.UUID) (*models.Resume, error) {
	var resume models.Resume
	if err := r.db.Where("id = ?", id).First(&resume).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrResumeNotFound
		}
		return nil, fmt.Errorf("failed to find resume: %w", err)
	}
	return &resume, nil
}

func (r *resumeRepository) FindByIDWithAnalysis(id uuid.UUID) (*models.Resume, error) {
	var resume models.Resume
	if err := r.db.Preload("Analysis").Where("id = ?", id).First(&resume).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrResumeNotFound
		}
		return nil, fmt.Errorf("failed to find resume: %w", err)
	}
	return &resume, nil
}

// FindRecent returns the newest resumes with their analyses preloaded,
// newest first.
func (r *resumeRepository) FindRecent(limit int) ([]models.Resume, error) {
	var resumes []models.Resume
	err := r.db.
		Preload("Analysis").
		Order("created_at DESC").
		Limit(limit).
		Find(&resumes).Error

	if err != nil {
		return nil, fmt.Errorf("failed to list resumes: %w", err)
	}

	return resumes, nil
}

func (r *resumeRepository) UpdateIndexStatus(id uuid.UUID, status models.IndexStatus) error {
	result := r.db.Model(&models.Resume{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"index_status": status,
			"updated_at":   time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update index status: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return ErrResumeNotFound
	}

	return nil
}

func (r *resumeRepository) FindByIndexStatus(status models.IndexStatus, limit int) ([]models.Resume, error) {
	var resumes []models.Resume
	err := r.db.
		Where("index_status = ?", status).
		Order("created_at ASC").
		Limit(limit).
		Find(&resumes).Error

	if err != nil {
		return nil, fmt.Errorf("failed to find resumes by index status: %w", err)
	}

	return resumes, nil
}

func (r *resumeRepository) Delete(id uuid.UUID) error {
	result := r.db.Where("id = ?", id).Delete(&models.Resume{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete resume: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrResumeNotFound
	}
	return nil
}
