package services

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"go.uber.org/zap"

	"alfredoptarigan/resume-portfolio/internal/models"
	"alfredoptarigan/resume-portfolio/internal/repositories"
)

type countingPortfolioRepo struct {
	repositories.PortfolioRepository
	lookups atomic.Int64
}

func (r *countingPortfolioRepo) FindPublicByUsername(ctx context.Context, username string) (*models.Portfolio, error) {
	r.lookups.Add(1)
	return r.PortfolioRepository.FindPublicByUsername(ctx, username)
}

func newTestPortfolioService() (PortfolioService, *countingPortfolioRepo) {
	repo := &countingPortfolioRepo{PortfolioRepository: repositories.NewMemoryPortfolioRepository()}
	return NewPortfolioService(repo, zap.NewNop()), repo
}

func sampleResume(name string) models.StructuredResume {
	return models.StructuredResume{
		Personal: models.Personal{Name: name, Title: "Engineer"},
		Skills:   []string{"Go", "SQL"},
	}
}

func TestPublishThenResolveIsCaseInsensitive(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestPortfolioService()

	published, err := svc.Publish(ctx, "Jane-Doe123", "minimal", sampleResume("Jane"))
	if err != nil {
		t.Fatalf("publish: %v", err)
	}
	if published.Username != "jane-doe123" || !published.IsPublic {
		t.Fatalf("unexpected record: %+v", published)
	}

	for _, id := range []string{"jane-doe123", "Jane-Doe123", "JANE-DOE123"} {
		resume, err := svc.Resolve(ctx, id)
		if err != nil {
			t.Fatalf("resolve %q: %v", id, err)
		}
		if resume.Personal.Name != "Jane" {
			t.Fatalf("resolve %q: unexpected resume %+v", id, resume)
		}
	}
}

func TestResolveRejectsWithoutLookup(t *testing.T) {
	ctx := context.Background()
	svc, repo := newTestPortfolioService()

	// Records stored under names the resolver must never serve.
	for _, name := range []string{"favicon.ico", "john.doe", "ab"} {
		if _, err := svc.Publish(ctx, name, "minimal", sampleResume(name)); err != nil {
			t.Fatalf("publish %q: %v", name, err)
		}
	}

	tests := []string{
		"favicon.ico",
		"FAVICON.ICO",
		"robots.txt",
		"sitemap.xml",
		"john.doe",
		"ab",
		"a_b_c",
		"this-username-is-far-too-long-to-be-valid",
		"jane doe",
		"",
	}

	for _, id := range tests {
		t.Run(id, func(t *testing.T) {
			_, err := svc.Resolve(ctx, id)
			if !errors.Is(err, ErrNotFound) {
				t.Fatalf("expected ErrNotFound, got %v", err)
			}
		})
	}

	if n := repo.lookups.Load(); n != 0 {
		t.Fatalf("expected no store lookups, got %d", n)
	}
}

func TestResolveUnknownUsername(t *testing.T) {
	svc, repo := newTestPortfolioService()

	_, err := svc.Resolve(context.Background(), "nobody")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if repo.lookups.Load() != 1 {
		t.Fatalf("expected one lookup, got %d", repo.lookups.Load())
	}
}

func TestPublishIsIdempotent(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestPortfolioService()

	for i := 0; i < 3; i++ {
		if _, err := svc.Publish(ctx, "jane", "minimal", sampleResume("Jane")); err != nil {
			t.Fatalf("publish #%d: %v", i, err)
		}
	}

	resume, err := svc.Resolve(ctx, "jane")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if resume.Personal.Name != "Jane" || len(resume.Skills) != 2 {
		t.Fatalf("unexpected resume: %+v", resume)
	}
}

func TestPublishReplacesPreviousResume(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestPortfolioService()

	if _, err := svc.Publish(ctx, "jane", "minimal", sampleResume("Jane")); err != nil {
		t.Fatalf("publish: %v", err)
	}
	if _, err := svc.Publish(ctx, "JANE", "modern", models.StructuredResume{Personal: models.Personal{Name: "Jane D."}}); err != nil {
		t.Fatalf("republish: %v", err)
	}

	resume, err := svc.Resolve(ctx, "jane")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if resume.Personal.Name != "Jane D." || len(resume.Skills) != 0 {
		t.Fatalf("expected wholesale replacement, got %+v", resume)
	}
}

func TestResolveReturnsCopy(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestPortfolioService()

	if _, err := svc.Publish(ctx, "jane", "minimal", sampleResume("Jane")); err != nil {
		t.Fatalf("publish: %v", err)
	}

	first, _ := svc.Resolve(ctx, "jane")
	first.Skills[0] = "mutated"

	second, err := svc.Resolve(ctx, "jane")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if second.Skills[0] != "Go" {
		t.Fatalf("stored resume was mutated through a resolved copy: %v", second.Skills)
	}
}

func TestResolveAfterPublishForValidUsernames(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestPortfolioService()

	usernames := []string{
		"abc",
		"a-b",
		"---",
		"123",
		"jane-doe-2024",
		"abcdefghijklmnopqrstuvwxyz0123",
	}

	for _, username := range usernames {
		t.Run(username, func(t *testing.T) {
			if _, err := svc.Publish(ctx, username, "minimal", sampleResume(username)); err != nil {
				t.Fatalf("publish: %v", err)
			}
			resume, err := svc.Resolve(ctx, username)
			if err != nil {
				t.Fatalf("resolve: %v", err)
			}
			if resume.Personal.Name != username {
				t.Fatalf("resolved wrong record: %+v", resume.Personal)
			}
		})
	}
}

func TestPublishRequiresUsername(t *testing.T) {
	svc, _ := newTestPortfolioService()

	_, err := svc.Publish(context.Background(), "   ", "minimal", sampleResume("x"))
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
