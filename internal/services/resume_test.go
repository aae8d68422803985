package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"alfredoptarigan/resume-portfolio/internal/models"
	"alfredoptarigan/resume-portfolio/internal/repositories"
)

type stubExtractor struct {
	resume *models.StructuredResume
	err    error
	texts  []string
}

func (s *stubExtractor) Extract(_ context.Context, rawText string) (*models.StructuredResume, error) {
	s.texts = append(s.texts, rawText)
	return s.resume, s.err
}

func TestParseUsesStoredUploadText(t *testing.T) {
	ctx := context.Background()
	uploads := repositories.NewMemoryUploadRepository(10 * time.Minute)
	extractor := &stubExtractor{resume: &models.StructuredResume{Personal: models.Personal{Name: "Jane"}}}
	svc := NewResumeService(NewStorageService(t.TempDir()), NewDocumentParserService(), uploads, repositories.NewMemoryResumeDraftRepository(), extractor, zap.NewNop())

	uploadID, err := uploads.Save(ctx, "Jane Doe\nGo developer")
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	resume, err := svc.Parse(ctx, uploadID)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if resume.Personal.Name != "Jane" {
		t.Fatalf("unexpected resume: %+v", resume)
	}
	if len(extractor.texts) != 1 || extractor.texts[0] != "Jane Doe\nGo developer" {
		t.Fatalf("extractor got %q", extractor.texts)
	}
}

func TestParseErrors(t *testing.T) {
	ctx := context.Background()
	uploads := repositories.NewMemoryUploadRepository(10 * time.Minute)
	extractor := &stubExtractor{err: ErrExtractionUnavailable}
	svc := NewResumeService(NewStorageService(t.TempDir()), NewDocumentParserService(), uploads, repositories.NewMemoryResumeDraftRepository(), extractor, zap.NewNop())

	if _, err := svc.Parse(ctx, " "); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if _, err := svc.Parse(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	uploadID, _ := uploads.Save(ctx, "text")
	if _, err := svc.Parse(ctx, uploadID); !errors.Is(err, ErrConfigurationMissing) {
		t.Fatalf("expected extractor error to propagate, got %v", err)
	}
}

func TestSaveAndGetDraft(t *testing.T) {
	ctx := context.Background()
	svc := NewResumeService(NewStorageService(t.TempDir()), NewDocumentParserService(),
		repositories.NewMemoryUploadRepository(time.Minute), repositories.NewMemoryResumeDraftRepository(),
		&stubExtractor{}, zap.NewNop())

	if _, err := svc.GetDraft(ctx, "jane"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound before saving, got %v", err)
	}

	if err := svc.SaveDraft(ctx, " Jane ", models.StructuredResume{Personal: models.Personal{Name: "Jane"}}); err != nil {
		t.Fatalf("save draft: %v", err)
	}

	draft, err := svc.GetDraft(ctx, "JANE")
	if err != nil {
		t.Fatalf("get draft: %v", err)
	}
	if draft.Personal.Name != "Jane" || draft.Skills == nil {
		t.Fatalf("unexpected draft: %+v", draft)
	}

	if err := svc.SaveDraft(ctx, "", models.StructuredResume{}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for blank username, got %v", err)
	}
}
