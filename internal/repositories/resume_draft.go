package repositories

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"alfredoptarigan/resume-portfolio/internal/models"
)

type ResumeDraftRepository interface {
	// Save replaces the draft stored under draft.Username.
	Save(ctx context.Context, draft *models.ResumeDraft) error
	FindByUsername(ctx context.Context, username string) (*models.ResumeDraft, error)
}

type resumeDraftRepository struct {
	db *gorm.DB
}

func NewResumeDraftRepository(db *gorm.DB) ResumeDraftRepository {
	return &resumeDraftRepository{db: db}
}

func (r *resumeDraftRepository) Save(ctx context.Context, draft *models.ResumeDraft) error {
	if draft.UpdatedAt.IsZero() {
		draft.UpdatedAt = time.Now().UTC()
	}

	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "username"}},
			DoUpdates: clause.AssignmentColumns([]string{"resume_data", "updated_at"}),
		}).
		Create(draft).Error
	if err != nil {
		return fmt.Errorf("failed to save resume draft: %w", err)
	}
	return nil
}

func (r *resumeDraftRepository) FindByUsername(ctx context.Context, username string) (*models.ResumeDraft, error) {
	var draft models.ResumeDraft
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&draft).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find resume draft: %w", err)
	}

	draft.ResumeData.Normalize()
	return &draft, nil
}

type memoryResumeDraftRepository struct {
	mu     sync.RWMutex
	drafts map[string]models.ResumeDraft
}

func NewMemoryResumeDraftRepository() ResumeDraftRepository {
	return &memoryResumeDraftRepository{drafts: make(map[string]models.ResumeDraft)}
}

func (r *memoryResumeDraftRepository) Save(_ context.Context, draft *models.ResumeDraft) error {
	if draft.UpdatedAt.IsZero() {
		draft.UpdatedAt = time.Now().UTC()
	}
	record := draft.Clone()

	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.drafts[record.Username]; ok {
		record.ID = existing.ID
	} else {
		record.ID = uint(len(r.drafts) + 1)
	}
	r.drafts[record.Username] = record
	draft.ID = record.ID

	return nil
}

func (r *memoryResumeDraftRepository) FindByUsername(_ context.Context, username string) (*models.ResumeDraft, error) {
	r.mu.RLock()
	record, ok := r.drafts[username]
	r.mu.RUnlock()

	if !ok {
		return nil, ErrNotFound
	}
	out := record.Clone()
	return &out, nil
}
