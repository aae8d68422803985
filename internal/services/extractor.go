package services

import (
	"context"
	"time"

	"go.uber.org/zap"

	"alfredoptarigan/resume-portfolio/internal/logger"
	"alfredoptarigan/resume-portfolio/internal/models"
)

const rawReplyLogLimit = 2000

// TextGenerator is the model call the extractor depends on.
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

type ExtractorService interface {
	Extract(ctx context.Context, rawText string) (*models.StructuredResume, error)
}

type extractorService struct {
	generator TextGenerator
	prompts   *PromptBuilder
	timeout   time.Duration
	logger    *zap.Logger
}

// NewExtractorService builds the résumé extractor. A nil generator yields an
// extractor that always fails with ErrExtractionUnavailable.
func NewExtractorService(generator TextGenerator, timeout time.Duration, log *zap.Logger) ExtractorService {
	return &extractorService{
		generator: generator,
		prompts:   NewPromptBuilder(),
		timeout:   timeout,
		logger:    log,
	}
}

// Extract implements ExtractorService.
func (e *extractorService) Extract(ctx context.Context, rawText string) (*models.StructuredResume, error) {
	if e.generator == nil {
		return nil, ErrExtractionUnavailable
	}

	reply, err := e.generate(ctx, e.prompts.BuildExtractionPrompt(rawText))
	if err != nil {
		return nil, err
	}

	payload, ok := locateJSON(reply)
	if !ok {
		e.logger.Warn("model reply did not contain JSON, retrying with strict hint",
			zap.String("reply", logger.TruncateForLog(reply, rawReplyLogLimit)),
		)

		reply, err = e.generate(ctx, e.prompts.BuildStrictExtractionPrompt(rawText))
		if err != nil {
			return nil, err
		}

		payload, ok = locateJSON(reply)
		if !ok {
			e.logger.Error("strict retry reply did not contain JSON",
				zap.String("reply", logger.TruncateForLog(reply, rawReplyLogLimit)),
			)
			return nil, extractionFailed(ErrUpstreamContractViolation, "no JSON object in model reply", nil)
		}
	}

	resume, err := models.ResumeFromValue(payload)
	if err != nil {
		e.logger.Error("model reply does not match resume shape", zap.Error(err))
		return nil, extractionFailed(ErrUpstreamContractViolation, "model reply does not match resume shape", err)
	}

	return resume, nil
}

// generate runs one model call under its own deadline.
func (e *extractorService) generate(ctx context.Context, prompt string) (string, error) {
	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	reply, err := e.generator.GenerateText(ctx, prompt)
	if err != nil {
		return "", extractionFailed(ErrUpstreamUnavailable, "model call failed", err)
	}
	return reply, nil
}
