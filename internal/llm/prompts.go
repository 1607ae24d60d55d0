// Package llm - prompts.go provides the prompt builders for every structured
// extraction and judgment the scoring pipeline asks of the model.
package llm

import (
	"fmt"
	"strings"
)

// ExtractionSchema defines the structure for LLM-based content extraction.
type ExtractionSchema struct {
	Name        string        // Schema name (e.g., "ResumeEntities")
	Description string        // System prompt preamble describing the extraction task
	Fields      []SchemaField // Expected output fields
}

// SchemaField defines a single field in the extraction output.
type SchemaField struct {
	Name        string // JSON field name
	Type        string // Type hint: "string", "[]string", "map[string]string"
	Description string // Description for the LLM
	Required    bool   // Whether this field is required
}

// BuildExtractionPrompt constructs the LLM prompt from schema and input text.
func BuildExtractionPrompt(schema ExtractionSchema, inputText string) string {
	var sb strings.Builder

	sb.WriteString(schema.Description)
	sb.WriteString("\n\n")

	sb.WriteString("Return ONLY valid JSON matching this exact structure:\n{\n")
	for i, field := range schema.Fields {
		typeHint := field.Type
		if typeHint == "" {
			typeHint = "string"
		}
		requiredHint := ""
		if field.Required {
			requiredHint = " (required)"
		}
		sb.WriteString(fmt.Sprintf("  \"%s\": %s%s", field.Name, typeHint, requiredHint))
		if field.Description != "" {
			sb.WriteString(fmt.Sprintf(" // %s", field.Description))
		}
		if i < len(schema.Fields)-1 {
			sb.WriteString(",")
		}
		sb.WriteString("\n")
	}
	sb.WriteString("}\n\n")

	sb.WriteString("IMPORTANT:\n")
	sb.WriteString("- Extract information directly from the text, do not invent or summarize.\n")
	sb.WriteString("- Return ONLY the JSON object, no markdown, no explanation, no code blocks.\n\n")

	sb.WriteString("Input text:\n\"\"\"\n")
	sb.WriteString(inputText)
	sb.WriteString("\n\"\"\"\n")

	return sb.String()
}

// --- Predefined Schemas ---

// ResumeEntitiesSchema returns the extraction schema for candidate resumes.
func ResumeEntitiesSchema() ExtractionSchema {
	return ExtractionSchema{
		Name: "ResumeEntities",
		Description: `You are an expert resume parser. Your task is to extract structured entities from a raw resume.
Score each skill between 0 and 1 by how strongly and recently the resume evidences it.`,
		Fields: []SchemaField{
			{
				Name:        "skills",
				Type:        "[{\"name\": \"string\", \"score\": number}]",
				Description: "Skills evidenced by work experience, with a 0-1 presence score",
				Required:    true,
			},
			{
				Name:        "certification_skills",
				Type:        "[\"string\"]",
				Description: "Skills evidenced only by certifications or coursework",
				Required:    false,
			},
			{
				Name:        "experiences",
				Type:        "[{\"title\": \"string\", \"organization\": \"string\", \"industry\": \"string\", \"start_date\": \"string\", \"end_date\": \"string\"}]",
				Description: "Work history, most recent first",
				Required:    true,
			},
			{
				Name:        "overall_years",
				Type:        "number",
				Description: "Total years of professional experience",
				Required:    false,
			},
		},
	}
}

// JobDescriptionSchema returns the extraction schema for job postings.
func JobDescriptionSchema() ExtractionSchema {
	return ExtractionSchema{
		Name: "JobDescription",
		Description: `You are an expert job posting parser. Your task is to extract structured requirements from a raw job description.
Use null for any field the posting does not state.`,
		Fields: []SchemaField{
			{
				Name:        "required_skills",
				Type:        "[\"string\"]",
				Description: "Skill names the role requires",
				Required:    true,
			},
			{
				Name:        "job_title",
				Type:        "\"string\"",
				Description: "The title of the role",
				Required:    true,
			},
			{
				Name:        "industries",
				Type:        "[\"string\"]",
				Description: "Industry segment(s) of the hiring organization",
				Required:    false,
			},
			{
				Name:        "overall_years",
				Type:        "number",
				Description: "Overall years of experience required",
				Required:    false,
			},
			{
				Name:        "people_management",
				Type:        "boolean",
				Description: "Whether the role requires people management experience",
				Required:    false,
			},
			{
				Name:        "software",
				Type:        "[\"string\"]",
				Description: "Programming languages, tools or software the role requires",
				Required:    false,
			},
		},
	}
}

// BasicsSchema returns the extraction schema for resume contact basics.
func BasicsSchema() ExtractionSchema {
	return ExtractionSchema{
		Name: "ResumeBasics",
		Description: `You are an expert resume parser. Extract the candidate's contact and profile basics.
Use null for anything the resume does not state; never guess.`,
		Fields: []SchemaField{
			{Name: "name", Type: "\"string\"", Description: "Candidate full name", Required: true},
			{Name: "email", Type: "\"string\"", Description: "Email address", Required: false},
			{Name: "phone", Type: "\"string\"", Description: "Phone number", Required: false},
			{Name: "location", Type: "\"string\"", Description: "City/region", Required: false},
			{Name: "current_title", Type: "\"string\"", Description: "Most recent job title", Required: false},
			{Name: "expected_salary", Type: "number", Description: "Expected salary if stated", Required: false},
			{Name: "experience_years", Type: "number", Description: "Total years of experience", Required: false},
		},
	}
}

// factorRubric lists the seven weighted rubric categories. The maxima sum to
// 250 raw points; the model normalizes the total to a 0-100 final score.
var factorRubric = []struct {
	Factor string
	Max    int
}{
	{"Relevant Experience", 70},
	{"Title", 30},
	{"Responsibilities", 40},
	{"People Management Experience", 20},
	{"Preferred Industry", 20},
	{"Programming Languages and Software", 30},
	{"Communication Skills", 40},
}

// BuildFactorAnalysisPrompt constructs the rubric-scoring prompt for a resume
// against a job description.
func BuildFactorAnalysisPrompt(jobText, resumeText string) string {
	var sb strings.Builder

	sb.WriteString("You are an expert recruiter. Assess the candidature below against the job description ")
	sb.WriteString("using the following factors and maximum scores:\n")
	for _, r := range factorRubric {
		sb.WriteString(fmt.Sprintf("- %s: %d\n", r.Factor, r.Max))
	}
	sb.WriteString("\nScore every factor out of its maximum, then normalize the 250-point total to a 0-100 final score.\n\n")

	sb.WriteString("Return ONLY valid JSON matching this exact structure:\n")
	sb.WriteString(`{
  "calculations": [{"factor": "factor name", "score": "earned/maximum"}],
  "final_score_explanation": "string",
  "final_score": number
}`)
	sb.WriteString("\n\nThe calculations array must contain every factor listed above, in order, ")
	sb.WriteString("with score formatted exactly as \"earned/maximum\" (e.g. \"15/20\").\n\n")

	sb.WriteString("Job description:\n\"\"\"\n")
	sb.WriteString(jobText)
	sb.WriteString("\n\"\"\"\n\nResume:\n\"\"\"\n")
	sb.WriteString(resumeText)
	sb.WriteString("\n\"\"\"\n")

	return sb.String()
}

// BuildMatchSummaryPrompt constructs the narrative match-summary prompt.
func BuildMatchSummaryPrompt(jobText, resumeText string) string {
	var sb strings.Builder

	sb.WriteString("You are an expert recruiter. Write a short, factual summary of how well the candidate ")
	sb.WriteString("below matches the job description: strengths first, then gaps. Four sentences maximum.\n\n")
	sb.WriteString("Return ONLY valid JSON: {\"summary\": \"string\"}\n\n")
	sb.WriteString("Job description:\n\"\"\"\n")
	sb.WriteString(jobText)
	sb.WriteString("\n\"\"\"\n\nResume:\n\"\"\"\n")
	sb.WriteString(resumeText)
	sb.WriteString("\n\"\"\"\n")

	return sb.String()
}

// BuildTitleMatchPrompt constructs the boolean title-similarity judgment
// prompt. The response contract is a JSON object with a boolean "result" key.
func BuildTitleMatchPrompt(jobTitle string, candidateTitles []string) string {
	var sb strings.Builder

	sb.WriteString("Does any of the candidate's job titles perform a similar function to the target job title? ")
	sb.WriteString("Judge by function, not wording.\n\n")
	sb.WriteString(fmt.Sprintf("Target job title: %s\n", jobTitle))
	sb.WriteString(fmt.Sprintf("Candidate job titles: %s\n\n", strings.Join(candidateTitles, ", ")))
	sb.WriteString("Return ONLY valid JSON: {\"result\": true|false}\n")

	return sb.String()
}
