package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"alfredoptarigan/resume-portfolio/internal/logger"
	"alfredoptarigan/resume-portfolio/internal/models"
)

const (
	workflowSecretHeader = "x-workflow-secret"
	workflowSource       = "job-match-api"
)

// WorkflowClient calls the external job-match workflow.
type WorkflowClient interface {
	// RequestJobMatch posts the résumé and job description and returns the
	// decoded, envelope-unwrapped response body.
	RequestJobMatch(ctx context.Context, resume models.StructuredResume, jobDescription string) (any, error)
}

type workflowRequest struct {
	Resume         models.StructuredResume `json:"resume"`
	ResumeData     models.StructuredResume `json:"resumeData"`
	JobDescription string                  `json:"jobDescription"`
	Source         string                  `json:"source"`
}

type workflowClient struct {
	webhookURL string
	secret     string
	timeout    time.Duration
	httpClient *http.Client
	logger     *zap.Logger
}

func NewWorkflowClient(webhookURL, secret string, timeout time.Duration, log *zap.Logger) WorkflowClient {
	return &workflowClient{
		webhookURL: strings.TrimSpace(webhookURL),
		secret:     secret,
		timeout:    timeout,
		httpClient: &http.Client{},
		logger:     log,
	}
}

// RequestJobMatch implements WorkflowClient.
func (c *workflowClient) RequestJobMatch(ctx context.Context, resume models.StructuredResume, jobDescription string) (any, error) {
	if c.webhookURL == "" {
		return nil, fmt.Errorf("workflow webhook url is not configured: %w", ErrConfigurationMissing)
	}

	body, err := json.Marshal(workflowRequest{
		Resume:         resume,
		ResumeData:     resume,
		JobDescription: jobDescription,
		Source:         workflowSource,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal workflow request: %w", err)
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.webhookURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create workflow request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.secret != "" {
		req.Header.Set(workflowSecretHeader, c.secret)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to reach workflow: %w: %w", ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read workflow response: %w: %w", ErrUpstreamUnavailable, err)
	}

	c.logger.Debug("workflow responded",
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail := logger.TruncateForLog(string(respBody), 500)
		c.logger.Warn("workflow returned error status", zap.Int("status", resp.StatusCode), zap.String("body", detail))
		return nil, fmt.Errorf("workflow returned status %d: %s: %w", resp.StatusCode, detail, ErrUpstreamUnavailable)
	}

	if len(bytes.TrimSpace(respBody)) == 0 {
		return nil, fmt.Errorf("workflow returned an empty body: %w", ErrUpstreamUnavailable)
	}

	var payload any
	if err := json.Unmarshal(respBody, &payload); err != nil {
		return nil, fmt.Errorf("workflow returned non-JSON body: %w: %w", ErrUpstreamUnavailable, err)
	}

	return unwrapWorkflowPayload(payload), nil
}

// unwrapWorkflowPayload strips one level of the envelopes workflow engines
// commonly wrap results in.
func unwrapWorkflowPayload(payload any) any {
	switch v := payload.(type) {
	case []any:
		if len(v) == 0 {
			return map[string]any{}
		}
		return v[0]
	case map[string]any:
		if len(v) == 0 {
			return v
		}
		if _, ok := v["originalScore"]; ok {
			return v
		}
		if _, ok := v["improvedResume"]; ok {
			return v
		}
		for _, key := range []string{"body", "data", "result", "output"} {
			if inner, ok := v[key]; ok {
				return inner
			}
		}
		return v
	default:
		return payload
	}
}
