package services

import "strings"

const resumeSchemaHint = "You are a resume parser. Extract ALL relevant details from the resume text. " +
	"Return ONLY valid JSON (no markdown, no code fences, no commentary). " +
	"Use empty strings or empty arrays when a field is missing. " +
	"Keep descriptions concise.\n\n" +
	"Schema:\n" +
	`{` +
	`"personal": {"name": "", "title": "", "summary": "", "photo": "", "primaryPhoto": "", "secondaryPhoto": ""},` +
	`"contact": {"email": "", "phone": "", "location": ""},` +
	`"links": {"github": "", "linkedin": "", "twitter": "", "portfolio": ""},` +
	`"experience": [{"company": "", "role": "", "startDate": "", "endDate": "", "description": ""}],` +
	`"projects": [{"name": "", "description": "", "tech": [""], "link": ""}],` +
	`"skills": [""],` +
	`"education": [""]` +
	`}`

const strictJSONHint = "IMPORTANT: Output ONLY a JSON object. No prose, no markdown. " +
	"Start with '{' and end with '}'."

type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// BuildExtractionPrompt creates the first-attempt prompt for résumé extraction.
func (pb *PromptBuilder) BuildExtractionPrompt(resumeText string) string {
	return withResumeText(resumeSchemaHint, resumeText)
}

// BuildStrictExtractionPrompt is used for the single retry after a reply
// without a JSON payload.
func (pb *PromptBuilder) BuildStrictExtractionPrompt(resumeText string) string {
	return withResumeText(resumeSchemaHint+"\n\n"+strictJSONHint, resumeText)
}

func withResumeText(instructions, resumeText string) string {
	var b strings.Builder
	b.Grow(len(instructions) + len(resumeText) + 16)
	b.WriteString(instructions)
	b.WriteString("\n\nResume text:\n")
	b.WriteString(resumeText)
	return b.String()
}
