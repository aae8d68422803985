package repositories

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"alfredoptarigan/resume-portfolio/internal/models"
)

type JobMatchRepository interface {
	// Create assigns the next identifier to match and stores it.
	Create(ctx context.Context, match *models.JobMatch) error
	FindByID(ctx context.Context, id uint64) (*models.JobMatch, error)
}

type jobMatchRepository struct {
	db *gorm.DB
}

func NewJobMatchRepository(db *gorm.DB) JobMatchRepository {
	return &jobMatchRepository{db: db}
}

func (r *jobMatchRepository) Create(ctx context.Context, match *models.JobMatch) error {
	match.ID = 0
	if err := r.db.WithContext(ctx).Create(match).Error; err != nil {
		return fmt.Errorf("failed to create job match: %w", err)
	}
	return nil
}

func (r *jobMatchRepository) FindByID(ctx context.Context, id uint64) (*models.JobMatch, error) {
	var match models.JobMatch
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&match).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find job match: %w", err)
	}

	match.ImprovedResumeData.Normalize()
	return &match, nil
}
