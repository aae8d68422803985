package services

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"strings"

	"go.uber.org/zap"

	"alfredoptarigan/resume-portfolio/internal/models"
	"alfredoptarigan/resume-portfolio/internal/repositories"
)

type ResumeService interface {
	// Upload extracts the text of an uploaded document and keeps it under a
	// new upload id.
	Upload(ctx context.Context, file *multipart.FileHeader) (string, error)
	// Parse turns the text stored under uploadID into a StructuredResume.
	Parse(ctx context.Context, uploadID string) (*models.StructuredResume, error)
	// SaveDraft stores the working copy of a user's résumé.
	SaveDraft(ctx context.Context, username string, resume models.StructuredResume) error
	// GetDraft returns the saved working copy, or ErrNotFound.
	GetDraft(ctx context.Context, username string) (*models.StructuredResume, error)
}

type resumeService struct {
	storage   StorageService
	parser    DocumentParserService
	uploads   repositories.UploadRepository
	drafts    repositories.ResumeDraftRepository
	extractor ExtractorService
	logger    *zap.Logger
}

func NewResumeService(
	storage StorageService,
	parser DocumentParserService,
	uploads repositories.UploadRepository,
	drafts repositories.ResumeDraftRepository,
	extractor ExtractorService,
	logger *zap.Logger,
) ResumeService {
	return &resumeService{
		storage:   storage,
		parser:    parser,
		uploads:   uploads,
		drafts:    drafts,
		extractor: extractor,
		logger:    logger,
	}
}

// Upload implements ResumeService. The stored file is removed once its text
// has been read.
func (s *resumeService) Upload(ctx context.Context, file *multipart.FileHeader) (string, error) {
	filename, filePath, err := s.storage.SaveFile(file)
	if err != nil {
		return "", err
	}
	defer func() {
		if err := s.storage.DeleteFile(filename); err != nil {
			s.logger.Warn("failed to remove uploaded file", zap.String("file", filename), zap.Error(err))
		}
	}()

	text, err := s.parser.ExtractText(filePath)
	if err != nil {
		if errors.Is(err, ErrInvalidInput) {
			return "", err
		}
		return "", fmt.Errorf("failed to extract document text: %w: %w", ErrInvalidInput, err)
	}

	uploadID, err := s.uploads.Save(ctx, text)
	if err != nil {
		return "", fmt.Errorf("failed to store upload: %w", err)
	}

	s.logger.Info("resume uploaded",
		zap.String("upload_id", uploadID),
		zap.String("original_name", file.Filename),
		zap.Int("text_length", len(text)),
	)

	return uploadID, nil
}

// Parse implements ResumeService.
func (s *resumeService) Parse(ctx context.Context, uploadID string) (*models.StructuredResume, error) {
	uploadID = strings.TrimSpace(uploadID)
	if uploadID == "" {
		return nil, fmt.Errorf("upload id is required: %w", ErrInvalidInput)
	}

	text, err := s.uploads.Get(ctx, uploadID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("upload %q not found or expired: %w", uploadID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to load upload: %w", err)
	}

	resume, err := s.extractor.Extract(ctx, text)
	if err != nil {
		s.logger.Error("resume extraction failed", zap.String("upload_id", uploadID), zap.Error(err))
		return nil, err
	}

	return resume, nil
}

// SaveDraft implements ResumeService.
func (s *resumeService) SaveDraft(ctx context.Context, username string, resume models.StructuredResume) error {
	normalized := NormalizeUsername(username)
	if normalized == "" {
		return fmt.Errorf("username is required: %w", ErrInvalidInput)
	}

	resume.Normalize()
	draft := &models.ResumeDraft{Username: normalized, ResumeData: resume.Clone()}
	if err := s.drafts.Save(ctx, draft); err != nil {
		return fmt.Errorf("failed to save resume draft: %w", err)
	}

	s.logger.Info("resume draft saved", zap.String("username", normalized))
	return nil
}

// GetDraft implements ResumeService.
func (s *resumeService) GetDraft(ctx context.Context, username string) (*models.StructuredResume, error) {
	normalized := NormalizeUsername(username)
	draft, err := s.drafts.FindByUsername(ctx, normalized)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("resume draft %q: %w", normalized, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to load resume draft: %w", err)
	}

	resume := draft.ResumeData.Clone()
	return &resume, nil
}
