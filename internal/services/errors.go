package services

import (
	"errors"
	"fmt"
)

// Failure categories. Callers tell them apart with errors.Is.
var (
	ErrConfigurationMissing      = errors.New("configuration missing")
	ErrInvalidInput              = errors.New("invalid input")
	ErrUpstreamUnavailable       = errors.New("upstream unavailable")
	ErrUpstreamContractViolation = errors.New("upstream contract violation")
	ErrNotFound                  = errors.New("not found")
)

var (
	ErrExtractionUnavailable = fmt.Errorf("resume extraction unavailable: %w", ErrConfigurationMissing)
	ErrExtractionFailed      = errors.New("resume extraction failed")
)

// extractionFailed tags err with ErrExtractionFailed and the given category.
func extractionFailed(category error, detail string, err error) error {
	if err != nil {
		return fmt.Errorf("%w: %s: %w: %w", ErrExtractionFailed, detail, category, err)
	}
	return fmt.Errorf("%w: %s: %w", ErrExtractionFailed, detail, category)
}
