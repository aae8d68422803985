package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"go.uber.org/zap"

	"alfredoptarigan/resume-portfolio/internal/models"
	"alfredoptarigan/resume-portfolio/internal/repositories"
)

type JobMatchService interface {
	// Evaluate scores resume against jobDescription through the workflow and
	// persists the result under a freshly allocated id.
	Evaluate(ctx context.Context, resume models.StructuredResume, jobDescription string) (*models.JobMatch, error)
	GetJobMatch(ctx context.Context, id uint64) (*models.JobMatch, error)
}

// workflowResult is the canonical shape of a workflow reply after aliases
// have been folded.
type workflowResult struct {
	OriginalScore  float64        `json:"originalScore"`
	ImprovedScore  float64        `json:"improvedScore"`
	ImprovedResume map[string]any `json:"improvedResume"`
	Analysis       string         `json:"analysis"`
}

// workflowFieldAliases lists the accepted spellings per field, in priority order.
var workflowFieldAliases = []struct {
	field string
	keys  []string
}{
	{field: "originalScore", keys: []string{"originalScore", "original_score"}},
	{field: "improvedScore", keys: []string{"improvedScore", "improved_score"}},
	{field: "improvedResume", keys: []string{"improvedResume", "improvedResumeJson", "improved_resume", "improved_resume_json"}},
	{field: "analysis", keys: []string{"analysis", "analysisText", "analysis_text"}},
}

type jobMatchService struct {
	workflow WorkflowClient
	repo     repositories.JobMatchRepository
	now      func() time.Time
	logger   *zap.Logger
}

func NewJobMatchService(workflow WorkflowClient, repo repositories.JobMatchRepository, logger *zap.Logger) JobMatchService {
	return &jobMatchService{
		workflow: workflow,
		repo:     repo,
		now:      time.Now,
		logger:   logger,
	}
}

// Evaluate implements JobMatchService.
func (s *jobMatchService) Evaluate(ctx context.Context, resume models.StructuredResume, jobDescription string) (*models.JobMatch, error) {
	jobDescription = strings.TrimSpace(jobDescription)
	if jobDescription == "" {
		return nil, fmt.Errorf("job description is required: %w", ErrInvalidInput)
	}

	resume.Normalize()
	payload, err := s.workflow.RequestJobMatch(ctx, resume, jobDescription)
	if err != nil {
		s.logger.Error("workflow request failed", zap.Error(err))
		return nil, err
	}

	result, err := decodeWorkflowResult(payload)
	if err != nil {
		s.logger.Error("workflow response rejected", zap.Error(err))
		return nil, err
	}

	improved, err := models.ResumeFromValue(result.ImprovedResume)
	if err != nil {
		return nil, fmt.Errorf("improved resume: %w: %w", ErrUpstreamContractViolation, err)
	}

	match := &models.JobMatch{
		JobDescription:     jobDescription,
		OriginalScore:      result.OriginalScore,
		ImprovedScore:      result.ImprovedScore,
		ImprovedResumeData: *improved,
		AnalysisText:       result.Analysis,
		CreatedAt:          s.now().UTC(),
	}
	if err := s.repo.Create(ctx, match); err != nil {
		return nil, fmt.Errorf("failed to save job match: %w", err)
	}

	s.logger.Info("job match evaluated",
		zap.Uint64("job_match_id", match.ID),
		zap.Float64("original_score", match.OriginalScore),
		zap.Float64("improved_score", match.ImprovedScore),
	)

	return match, nil
}

// GetJobMatch implements JobMatchService.
func (s *jobMatchService) GetJobMatch(ctx context.Context, id uint64) (*models.JobMatch, error) {
	match, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("job match %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get job match: %w", err)
	}
	return match, nil
}

// decodeWorkflowResult folds the accepted spellings onto canonical keys and
// decodes them strictly. Missing or mistyped fields are contract violations.
func decodeWorkflowResult(payload any) (*workflowResult, error) {
	obj, ok := payload.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("workflow response is %T, not an object: %w", payload, ErrUpstreamContractViolation)
	}

	canonical := make(map[string]any, len(workflowFieldAliases))
	for _, alias := range workflowFieldAliases {
		if v, found := firstMatch(obj, alias.keys...); found {
			canonical[alias.field] = v
		}
	}

	var result workflowResult
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:     &result,
		TagName:    "json",
		ErrorUnset: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create workflow decoder: %w", err)
	}
	if err := decoder.Decode(canonical); err != nil {
		return nil, fmt.Errorf("workflow response: %w: %w", ErrUpstreamContractViolation, err)
	}

	return &result, nil
}

// firstMatch returns the value of the first key present with a non-null value.
func firstMatch(obj map[string]any, keys ...string) (any, bool) {
	for _, key := range keys {
		if v, ok := obj[key]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}
