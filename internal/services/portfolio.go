package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"

	"alfredoptarigan/resume-portfolio/internal/models"
	"alfredoptarigan/resume-portfolio/internal/repositories"
)

var usernamePattern = regexp.MustCompile(`^[a-z0-9-]{3,30}$`)

// reservedPaths are requests browsers and crawlers make against the site root.
var reservedPaths = map[string]struct{}{
	"favicon.ico": {},
	"robots.txt":  {},
	"sitemap.xml": {},
}

type PortfolioService interface {
	// Publish stores resume under the normalized username and makes it public,
	// replacing any earlier portfolio for that name.
	Publish(ctx context.Context, username, template string, resume models.StructuredResume) (*models.Portfolio, error)
	// Resolve returns the public résumé for a requested id, or ErrNotFound.
	Resolve(ctx context.Context, requestedID string) (*models.StructuredResume, error)
}

type portfolioService struct {
	repo   repositories.PortfolioRepository
	now    func() time.Time
	logger *zap.Logger
}

func NewPortfolioService(repo repositories.PortfolioRepository, logger *zap.Logger) PortfolioService {
	return &portfolioService{
		repo:   repo,
		now:    time.Now,
		logger: logger,
	}
}

// NormalizeUsername is the canonical form portfolios are stored and served under.
func NormalizeUsername(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}

// Publish implements PortfolioService.
func (s *portfolioService) Publish(ctx context.Context, username, template string, resume models.StructuredResume) (*models.Portfolio, error) {
	normalized := NormalizeUsername(username)
	if normalized == "" {
		return nil, fmt.Errorf("username is required: %w", ErrInvalidInput)
	}

	resume.Normalize()
	portfolio := &models.Portfolio{
		Username:   normalized,
		Template:   strings.TrimSpace(template),
		ResumeData: resume.Clone(),
		IsPublic:   true,
		UpdatedAt:  s.now().UTC(),
	}

	if err := s.repo.Upsert(ctx, portfolio); err != nil {
		return nil, fmt.Errorf("failed to publish portfolio: %w", err)
	}

	s.logger.Info("portfolio published",
		zap.String("username", normalized),
		zap.String("template", portfolio.Template),
	)

	return portfolio, nil
}

// Resolve implements PortfolioService. Reserved paths, dotted ids and ids
// outside the username pattern are rejected before the store is consulted.
func (s *portfolioService) Resolve(ctx context.Context, requestedID string) (*models.StructuredResume, error) {
	normalized := strings.ToLower(requestedID)

	if _, reserved := reservedPaths[normalized]; reserved {
		return nil, fmt.Errorf("reserved path %q: %w", requestedID, ErrNotFound)
	}
	if strings.Contains(requestedID, ".") {
		return nil, fmt.Errorf("portfolio id %q contains a dot: %w", requestedID, ErrNotFound)
	}
	if !usernamePattern.MatchString(normalized) {
		return nil, fmt.Errorf("portfolio id %q is not a valid username: %w", requestedID, ErrNotFound)
	}

	portfolio, err := s.repo.FindPublicByUsername(ctx, normalized)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("portfolio %q: %w", normalized, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to resolve portfolio: %w", err)
	}

	resume := portfolio.ResumeData.Clone()
	return &resume, nil
}
