package repositories

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"alfredoptarigan/resume-portfolio/internal/models"
)

func TestMemoryPortfolioUpsertReplacesWholeRecord(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryPortfolioRepository()

	first := &models.Portfolio{
		Username:   "jane",
		Template:   "classic",
		ResumeData: models.StructuredResume{Personal: models.Personal{Name: "Jane"}},
		IsPublic:   true,
	}
	if err := repo.Upsert(ctx, first); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	second := &models.Portfolio{
		Username:   "jane",
		Template:   "modern",
		ResumeData: models.StructuredResume{Personal: models.Personal{Name: "Jane D."}},
		IsPublic:   true,
	}
	if err := repo.Upsert(ctx, second); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	got, err := repo.FindPublicByUsername(ctx, "jane")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if got.Template != "modern" || got.ResumeData.Personal.Name != "Jane D." {
		t.Fatalf("unexpected record: %+v", got)
	}
	if got.ID != first.ID {
		t.Fatalf("expected id to be kept across upserts, got %d and %d", first.ID, got.ID)
	}
}

func TestMemoryPortfolioHidesPrivateRecords(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryPortfolioRepository()

	if err := repo.Upsert(ctx, &models.Portfolio{Username: "hidden", Template: "t"}); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	if _, err := repo.FindPublicByUsername(ctx, "hidden"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for private record, got %v", err)
	}
	if _, err := repo.FindPublicByUsername(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for missing record, got %v", err)
	}
}

func TestMemoryPortfolioDoesNotAliasCallerData(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryPortfolioRepository()

	input := &models.Portfolio{
		Username:   "jane",
		Template:   "t",
		ResumeData: models.StructuredResume{Skills: []string{"go"}},
		IsPublic:   true,
	}
	if err := repo.Upsert(ctx, input); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	input.ResumeData.Skills[0] = "mutated"

	got, err := repo.FindPublicByUsername(ctx, "jane")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	got.ResumeData.Skills = append(got.ResumeData.Skills, "extra")

	again, _ := repo.FindPublicByUsername(ctx, "jane")
	if len(again.ResumeData.Skills) != 1 || again.ResumeData.Skills[0] != "go" {
		t.Fatalf("stored record was aliased: %v", again.ResumeData.Skills)
	}
}

func TestMemoryPortfolioConcurrentReadersSeeWholeRecords(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryPortfolioRepository()

	record := func(i int) *models.Portfolio {
		tag := fmt.Sprintf("v%d", i)
		return &models.Portfolio{
			Username:   "jane",
			Template:   tag,
			ResumeData: models.StructuredResume{Personal: models.Personal{Title: tag}},
			IsPublic:   true,
		}
	}
	if err := repo.Upsert(ctx, record(0)); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	var wg sync.WaitGroup
	for i := 1; i <= 50; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			_ = repo.Upsert(ctx, record(i))
		}(i)
		go func() {
			defer wg.Done()
			got, err := repo.FindPublicByUsername(ctx, "jane")
			if err != nil {
				t.Errorf("find: %v", err)
				return
			}
			if got.Template != got.ResumeData.Personal.Title {
				t.Errorf("torn record: template %q with resume %q", got.Template, got.ResumeData.Personal.Title)
			}
		}()
	}
	wg.Wait()
}
