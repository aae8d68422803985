package models

import (
	"encoding/json"
	"time"
)

type UploadResponse struct {
	UploadID string `json:"uploadId"`
}

type ParseRequest struct {
	UploadID string `json:"uploadId" validate:"required"`
}

type ParseResponse struct {
	ResumeData StructuredResume `json:"resumeData"`
}

type UpdateResumeRequest struct {
	Username   string          `json:"username" validate:"required,max=64"`
	ResumeData json.RawMessage `json:"resumeData" validate:"required"`
}

type UpdateResumeResponse struct {
	Status string `json:"status"`
}

type DeployRequest struct {
	Username   string          `json:"username" validate:"required,max=64"`
	Template   string          `json:"template" validate:"required,max=64"`
	ResumeData json.RawMessage `json:"resumeData" validate:"required"`
}

type DeployResponse struct {
	URL string `json:"url"`
}

type PortfolioResponse struct {
	ResumeData StructuredResume `json:"resumeData"`
}

// JobMatchEvaluateRequest carries either the résumé itself or the username
// whose saved draft, or else published portfolio, is evaluated.
type JobMatchEvaluateRequest struct {
	Username       string          `json:"username"`
	ResumeData     json.RawMessage `json:"resumeData"`
	JobDescription string          `json:"jobDescription"`
}

type JobMatchEvaluateResponse struct {
	JobMatchID     uint64           `json:"jobMatchId"`
	OriginalScore  float64          `json:"originalScore"`
	ImprovedScore  float64          `json:"improvedScore"`
	ImprovedResume StructuredResume `json:"improvedResume"`
	Analysis       string           `json:"analysis"`
	CreatedAt      time.Time        `json:"createdAt"`
}

type ErrorResponse struct {
	Detail string `json:"detail"`
	Code   int    `json:"code"`
}
