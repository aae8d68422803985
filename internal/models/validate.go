package models

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

// ErrInvalidResume is returned when a payload does not have the résumé shape.
var ErrInvalidResume = errors.New("invalid resume data")

//go:embed resume.schema.json
var resumeSchemaJSON string

var resumeSchema = sync.OnceValues(func() (*gojsonschema.Schema, error) {
	return gojsonschema.NewSchema(gojsonschema.NewStringLoader(resumeSchemaJSON))
})

// ValidateResume checks a decoded JSON value against resume.schema.json.
// Absent fields are allowed; present fields must carry the right type.
func ValidateResume(v any) error {
	schema, err := resumeSchema()
	if err != nil {
		return fmt.Errorf("failed to load resume schema: %w", err)
	}

	res, err := schema.Validate(gojsonschema.NewGoLoader(v))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidResume, err)
	}
	if res.Valid() {
		return nil
	}

	msgs := make([]string, 0, len(res.Errors()))
	for _, e := range res.Errors() {
		msgs = append(msgs, e.String())
	}
	return fmt.Errorf("%w: %s", ErrInvalidResume, strings.Join(msgs, "; "))
}
