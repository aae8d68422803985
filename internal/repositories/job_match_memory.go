package repositories

import (
	"context"
	"sync"

	"alfredoptarigan/resume-portfolio/internal/models"
)

type memoryJobMatchRepository struct {
	mu      sync.Mutex
	nextID  uint64
	matches map[uint64]models.JobMatch
}

// NewMemoryJobMatchRepository is an append-only store whose identifiers start
// at 1 and increase by one per Create for the life of the process.
func NewMemoryJobMatchRepository() JobMatchRepository {
	return &memoryJobMatchRepository{
		nextID:  1,
		matches: make(map[uint64]models.JobMatch),
	}
}

func (r *memoryJobMatchRepository) Create(_ context.Context, match *models.JobMatch) error {
	record := match.Clone()

	r.mu.Lock()
	record.ID = r.nextID
	r.nextID++
	r.matches[record.ID] = record
	r.mu.Unlock()

	match.ID = record.ID
	return nil
}

func (r *memoryJobMatchRepository) FindByID(_ context.Context, id uint64) (*models.JobMatch, error) {
	r.mu.Lock()
	record, ok := r.matches[id]
	r.mu.Unlock()

	if !ok {
		return nil, ErrNotFound
	}

	out := record.Clone()
	return &out, nil
}
