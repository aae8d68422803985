package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"google.golang.org/genai"
)

type GeminiService interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
	Model() string
}

type geminiService struct {
	client      *genai.Client
	modelName   string
	temperature float32
	maxTokens   int32
	logger      *zap.Logger
}

// NewGeminiService creates a client for the Gemini API. baseURL overrides the
// SDK endpoint when non-empty.
func NewGeminiService(ctx context.Context, apiKey, baseURL, model string, logger *zap.Logger) (GeminiService, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, fmt.Errorf("gemini api key is required: %w", ErrConfigurationMissing)
	}

	cfg := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}
	if baseURL != "" {
		cfg.HTTPOptions = genai.HTTPOptions{BaseURL: baseURL}
	}

	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &geminiService{
		client:      client,
		modelName:   model,
		temperature: 0.2,
		maxTokens:   4096,
		logger:      logger,
	}, nil
}

// GenerateText implements GeminiService. The reply is every text part of every
// candidate joined with newlines.
func (g *geminiService) GenerateText(ctx context.Context, prompt string) (string, error) {
	temperature := g.temperature
	config := &genai.GenerateContentConfig{
		Temperature:      &temperature,
		MaxOutputTokens:  g.maxTokens,
		ResponseMIMEType: "application/json",
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.modelName, genai.Text(prompt), config)
	if err != nil {
		g.logger.Warn("gemini request failed", zap.String("model", g.modelName), zap.Error(err))
		return "", fmt.Errorf("failed to generate text: %w", err)
	}
	if resp == nil {
		return "", errors.New("no response generated (nil response)")
	}

	var parts []string
	for _, candidate := range resp.Candidates {
		if candidate == nil || candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part == nil || part.Text == "" {
				continue
			}
			parts = append(parts, part.Text)
		}
	}

	g.logger.Debug("gemini response received",
		zap.String("model", g.modelName),
		zap.Int("candidates", len(resp.Candidates)),
		zap.Int("parts", len(parts)),
	)

	return strings.TrimSpace(strings.Join(parts, "\n")), nil
}

func (g *geminiService) Model() string {
	return g.modelName
}
