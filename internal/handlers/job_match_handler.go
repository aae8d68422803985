package handlers

import (
	"bytes"
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"alfredoptarigan/resume-portfolio/internal/models"
	"alfredoptarigan/resume-portfolio/internal/services"
)

type JobMatchHandler struct {
	jobMatchService  services.JobMatchService
	resumeService    services.ResumeService
	portfolioService services.PortfolioService
	logger           *zap.Logger
}

func NewJobMatchHandler(
	jobMatchService services.JobMatchService,
	resumeService services.ResumeService,
	portfolioService services.PortfolioService,
	logger *zap.Logger,
) *JobMatchHandler {
	return &JobMatchHandler{
		jobMatchService:  jobMatchService,
		resumeService:    resumeService,
		portfolioService: portfolioService,
		logger:           logger,
	}
}

// HandleEvaluate handles POST /job-match/evaluate
func (h *JobMatchHandler) HandleEvaluate(c *fiber.Ctx) error {
	var req models.JobMatchEvaluateRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request payload")
	}

	jobDescription := strings.TrimSpace(req.JobDescription)
	if jobDescription == "" {
		return badRequest(c, "jobDescription is required")
	}

	var resume *models.StructuredResume
	switch raw := bytes.TrimSpace(req.ResumeData); {
	case len(raw) > 0 && !bytes.Equal(raw, []byte("null")):
		parsed, err := models.ParseResume(raw)
		if err != nil {
			return writeError(c, h.logger, err)
		}
		resume = parsed
	case strings.TrimSpace(req.Username) != "":
		resolved, err := h.resumeForUser(c.UserContext(), strings.TrimSpace(req.Username))
		if err != nil {
			return writeError(c, h.logger, err)
		}
		resume = resolved
	default:
		return badRequest(c, "resumeData or username is required")
	}

	match, err := h.jobMatchService.Evaluate(c.UserContext(), *resume, jobDescription)
	if err != nil {
		return writeError(c, h.logger, err)
	}

	return c.JSON(models.JobMatchEvaluateResponse{
		JobMatchID:     match.ID,
		OriginalScore:  match.OriginalScore,
		ImprovedScore:  match.ImprovedScore,
		ImprovedResume: match.ImprovedResumeData,
		Analysis:       match.AnalysisText,
		CreatedAt:      match.CreatedAt,
	})
}

// HandleGetResult handles GET /job-match/:id
func (h *JobMatchHandler) HandleGetResult(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return badRequest(c, "invalid job match id format")
	}

	match, err := h.jobMatchService.GetJobMatch(c.UserContext(), id)
	if err != nil {
		return writeError(c, h.logger, err)
	}

	return c.JSON(match)
}

// resumeForUser prefers the user's saved draft over the published portfolio.
func (h *JobMatchHandler) resumeForUser(ctx context.Context, username string) (*models.StructuredResume, error) {
	resume, err := h.resumeService.GetDraft(ctx, username)
	if err == nil {
		return resume, nil
	}
	if !errors.Is(err, services.ErrNotFound) {
		return nil, err
	}
	return h.portfolioService.Resolve(ctx, username)
}
