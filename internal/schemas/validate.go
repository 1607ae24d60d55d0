// Package schemas is the strict parse-and-validate boundary for every JSON
// shape the LLM produces. Raw responses are validated against a JSON Schema
// and decoded into typed structs here; the three null representations the
// model emits ("null" string, JSON null, missing key) are folded into Go zero
// values at this boundary so downstream logic never re-checks them.
package schemas

import (
	"github.com/xeipuuv/gojsonschema"
)

// Inline JSON Schemas for the LLM response shapes. Kept next to their parsers
// so a schema change and its decoder change review together.
const (
	resumeSchema = `{
		"type": "object",
		"required": ["skills", "experiences"],
		"properties": {
			"skills": {
				"type": "array",
				"items": {
					"type": "object",
					"required": ["name", "score"],
					"properties": {
						"name": {"type": "string"},
						"score": {"type": "number"}
					}
				}
			},
			"certification_skills": {
				"type": ["array", "null"],
				"items": {"type": ["string", "null"]}
			},
			"experiences": {
				"type": "array",
				"items": {
					"type": "object",
					"required": ["title"],
					"properties": {
						"title": {"type": ["string", "null"]},
						"organization": {"type": ["string", "null"]},
						"industry": {"type": ["string", "null"]},
						"start_date": {"type": ["string", "null"]},
						"end_date": {"type": ["string", "null"]}
					}
				}
			},
			"overall_years": {"type": ["number", "string", "null"]}
		}
	}`

	jobDescriptionSchema = `{
		"type": "object",
		"required": ["required_skills", "job_title"],
		"properties": {
			"required_skills": {
				"type": "array",
				"items": {"type": ["string", "null"]}
			},
			"job_title": {"type": ["string", "null"]},
			"industries": {
				"type": ["array", "string", "null"],
				"items": {"type": ["string", "null"]}
			},
			"overall_years": {"type": ["number", "string", "null"]},
			"people_management": {"type": ["boolean", "null"]},
			"software": {
				"type": ["array", "null"],
				"items": {"type": ["string", "null"]}
			}
		}
	}`

	basicsSchema = `{
		"type": "object",
		"required": ["name"],
		"properties": {
			"name": {"type": "string"},
			"email": {"type": ["string", "null"]},
			"phone": {"type": ["string", "null"]},
			"location": {"type": ["string", "null"]},
			"current_title": {"type": ["string", "null"]},
			"expected_salary": {"type": ["number", "string", "null"]},
			"experience_years": {"type": ["number", "string", "null"]}
		}
	}`

	factorSchema = `{
		"type": "object",
		"required": ["calculations", "final_score", "final_score_explanation"],
		"properties": {
			"calculations": {
				"type": "array",
				"minItems": 1,
				"items": {
					"type": "object",
					"required": ["factor", "score"],
					"properties": {
						"factor": {"type": "string"},
						"score": {"type": "string"}
					}
				}
			},
			"final_score": {"type": ["number", "string"]},
			"final_score_explanation": {"type": "string"}
		}
	}`

	summarySchema = `{
		"type": "object",
		"required": ["summary"],
		"properties": {
			"summary": {"type": "string"}
		}
	}`

	titleMatchSchema = `{
		"type": "object",
		"required": ["result"],
		"properties": {
			"result": {"type": "boolean"}
		}
	}`
)

// validateAgainst validates JSON document content against a schema string and
// returns a structured *ValidationError on mismatch.
func validateAgainst(schemaContent, jsonContent string) error {
	schemaLoader := gojsonschema.NewStringLoader(schemaContent)
	documentLoader := gojsonschema.NewStringLoader(jsonContent)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return &ContractViolationError{
			Schema:  "(document)",
			Message: "response is not valid JSON",
			Cause:   err,
		}
	}

	if result.Valid() {
		return nil
	}

	validationErr := &ValidationError{
		Errors: make([]FieldError, 0, len(result.Errors())),
	}
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		validationErr.Errors = append(validationErr.Errors, FieldError{
			Field:   field,
			Message: desc.Description(),
		})
	}
	return validationErr
}
