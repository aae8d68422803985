package models

import (
	"encoding/json"
	"fmt"
)

type Personal struct {
	Name    string `json:"name"`
	Title   string `json:"title"`
	Summary string `json:"summary"`
	// Photo is the legacy single-photo slot still present in stored payloads.
	Photo          string `json:"photo"`
	PrimaryPhoto   string `json:"primaryPhoto"`
	SecondaryPhoto string `json:"secondaryPhoto"`
}

type Contact struct {
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Location string `json:"location"`
}

type Links struct {
	GitHub    string `json:"github"`
	LinkedIn  string `json:"linkedin"`
	Twitter   string `json:"twitter"`
	Portfolio string `json:"portfolio"`
}

type Experience struct {
	Company     string `json:"company"`
	Role        string `json:"role"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	Description string `json:"description"`
}

type Project struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Tech        []string `json:"tech"`
	Link        string   `json:"link"`
}

// StructuredResume is the canonical résumé document shared by extraction,
// portfolios and job matches.
type StructuredResume struct {
	Personal   Personal     `json:"personal"`
	Contact    Contact      `json:"contact"`
	Links      Links        `json:"links"`
	Experience []Experience `json:"experience"`
	Projects   []Project    `json:"projects"`
	Skills     []string     `json:"skills"`
	Education  []string     `json:"education"`
}

// Normalize replaces nil sequences with empty ones so the document never
// serializes a null field.
func (r *StructuredResume) Normalize() {
	if r.Experience == nil {
		r.Experience = []Experience{}
	}
	if r.Projects == nil {
		r.Projects = []Project{}
	}
	for i := range r.Projects {
		if r.Projects[i].Tech == nil {
			r.Projects[i].Tech = []string{}
		}
	}
	if r.Skills == nil {
		r.Skills = []string{}
	}
	if r.Education == nil {
		r.Education = []string{}
	}
}

// Clone returns a deep copy. Records embedding a résumé never share its slices.
func (r StructuredResume) Clone() StructuredResume {
	out := r
	out.Experience = append(make([]Experience, 0, len(r.Experience)), r.Experience...)
	out.Projects = make([]Project, len(r.Projects))
	for i, p := range r.Projects {
		p.Tech = cloneStrings(p.Tech)
		out.Projects[i] = p
	}
	out.Skills = cloneStrings(r.Skills)
	out.Education = cloneStrings(r.Education)
	return out
}

func cloneStrings(s []string) []string {
	return append(make([]string, 0, len(s)), s...)
}

// ResumeFromValue validates a decoded JSON value against the résumé schema and
// converts it into a normalized StructuredResume.
func ResumeFromValue(v any) (*StructuredResume, error) {
	if err := ValidateResume(v); err != nil {
		return nil, err
	}

	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal resume: %w", err)
	}

	var resume StructuredResume
	if err := json.Unmarshal(raw, &resume); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResume, err)
	}
	resume.Normalize()

	return &resume, nil
}

// ParseResume decodes raw JSON into a validated, normalized StructuredResume.
func ParseResume(data []byte) (*StructuredResume, error) {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResume, err)
	}
	return ResumeFromValue(v)
}
