package repositories

import (
	"context"
	"sync"
	"time"

	"alfredoptarigan/resume-portfolio/internal/models"
)

type memoryPortfolioRepository struct {
	mu         sync.RWMutex
	byUsername map[string]models.Portfolio
}

// NewMemoryPortfolioRepository keeps portfolios in a mutex-guarded map. Records
// are copied in and out so callers never alias stored data.
func NewMemoryPortfolioRepository() PortfolioRepository {
	return &memoryPortfolioRepository{byUsername: make(map[string]models.Portfolio)}
}

// Upsert implements PortfolioRepository.
func (r *memoryPortfolioRepository) Upsert(_ context.Context, portfolio *models.Portfolio) error {
	if portfolio.UpdatedAt.IsZero() {
		portfolio.UpdatedAt = time.Now().UTC()
	}
	record := portfolio.Clone()

	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.byUsername[record.Username]; ok {
		record.ID = existing.ID
	} else {
		record.ID = uint(len(r.byUsername) + 1)
	}
	r.byUsername[record.Username] = record
	portfolio.ID = record.ID

	return nil
}

// FindPublicByUsername implements PortfolioRepository.
func (r *memoryPortfolioRepository) FindPublicByUsername(_ context.Context, username string) (*models.Portfolio, error) {
	r.mu.RLock()
	record, ok := r.byUsername[username]
	r.mu.RUnlock()

	if !ok || !record.IsPublic {
		return nil, ErrNotFound
	}

	out := record.Clone()
	return &out, nil
}
