package repositories

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// UploadRepository keeps extracted document text between upload and parse.
type UploadRepository interface {
	// Save stores text and returns the opaque upload id it can be read back with.
	Save(ctx context.Context, text string) (string, error)
	// Get returns ErrNotFound for unknown or expired ids.
	Get(ctx context.Context, uploadID string) (string, error)
}

type memoryUpload struct {
	text      string
	expiresAt time.Time
}

type memoryUploadRepository struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	uploads map[string]memoryUpload
}

func NewMemoryUploadRepository(ttl time.Duration) UploadRepository {
	return &memoryUploadRepository{
		ttl:     ttl,
		now:     time.Now,
		uploads: make(map[string]memoryUpload),
	}
}

func (r *memoryUploadRepository) Save(_ context.Context, text string) (string, error) {
	id := uuid.New().String()
	now := r.now()

	r.mu.Lock()
	defer r.mu.Unlock()

	for key, u := range r.uploads {
		if now.After(u.expiresAt) {
			delete(r.uploads, key)
		}
	}
	r.uploads[id] = memoryUpload{text: text, expiresAt: now.Add(r.ttl)}

	return id, nil
}

func (r *memoryUploadRepository) Get(_ context.Context, uploadID string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.uploads[uploadID]
	if !ok {
		return "", ErrNotFound
	}
	if r.now().After(u.expiresAt) {
		delete(r.uploads, uploadID)
		return "", ErrNotFound
	}
	return u.text, nil
}
