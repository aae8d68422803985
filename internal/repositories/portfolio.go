package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"alfredoptarigan/resume-portfolio/internal/models"
)

type PortfolioRepository interface {
	// Upsert stores the record under its username, replacing any previous
	// record as a whole.
	Upsert(ctx context.Context, portfolio *models.Portfolio) error
	// FindPublicByUsername returns ErrNotFound when the record is absent or
	// not public.
	FindPublicByUsername(ctx context.Context, username string) (*models.Portfolio, error)
}

type portfolioRepository struct {
	db *gorm.DB
}

func NewPortfolioRepository(db *gorm.DB) PortfolioRepository {
	return &portfolioRepository{db: db}
}

// Upsert implements PortfolioRepository.
func (r *portfolioRepository) Upsert(ctx context.Context, portfolio *models.Portfolio) error {
	if portfolio.UpdatedAt.IsZero() {
		portfolio.UpdatedAt = time.Now().UTC()
	}

	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "username"}},
			DoUpdates: clause.AssignmentColumns([]string{"template", "resume_data", "is_public", "updated_at"}),
		}).
		Create(portfolio).Error
	if err != nil {
		return fmt.Errorf("failed to upsert portfolio: %w", err)
	}

	return nil
}

// FindPublicByUsername implements PortfolioRepository.
func (r *portfolioRepository) FindPublicByUsername(ctx context.Context, username string) (*models.Portfolio, error) {
	var portfolio models.Portfolio
	err := r.db.WithContext(ctx).
		Where("username = ? AND is_public = ?", username, true).
		First(&portfolio).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find portfolio: %w", err)
	}

	portfolio.ResumeData.Normalize()
	return &portfolio, nil
}
