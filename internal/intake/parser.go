// Package intake parses and validates patient intake files.
//
// Intake files carry YAML front matter (identifier, age, vitals, symptoms)
// followed by free-text clinical notes. The notes are fed to the risk
// classifier alongside the structured symptoms.
package intake

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/openclinic/triageq/internal/triage"
)

var validate = validator.New()

// ParseFile reads and parses an intake file from disk.
func ParseFile(path string) (*triage.Record, error) {
	content, err := os.ReadFile(path) // #nosec G304 - path comes from the operator's command line
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	return Parse(string(content), path)
}

// Parse parses intake content with YAML front matter.
// The format is: ---\nyaml\n---\nclinical notes
func Parse(content string, filePath string) (*triage.Record, error) {
	// Split front matter and notes
	parts := strings.SplitN(content, "---", 3)
	if len(parts) < 3 {
		return nil, fmt.Errorf("invalid intake file format: missing front matter delimiters")
	}

	// parts[0] is empty (before first ---)
	// parts[1] is the YAML front matter
	// parts[2] is the clinical notes

	var rec triage.Record
	if err := yaml.Unmarshal([]byte(parts[1]), &rec); err != nil {
		return nil, fmt.Errorf("parse front matter: %w", err)
	}

	// Set derived fields
	rec.FilePath = filePath
	rec.Notes = strings.TrimSpace(parts[2])
	rec.ArrivedAt = time.Now()

	if err := Validate(&rec); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	return &rec, nil
}

// Validate checks a record against the intake schema: required fields,
// clinical measurement ranges, and cross-field consistency.
func Validate(rec *triage.Record) error {
	if rec == nil {
		return &triage.ValidationError{
			Message: "record is nil",
		}
	}

	if err := validate.Struct(rec); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			return fieldError(fieldErrs[0])
		}
		return fmt.Errorf("validate record: %w", err)
	}

	if !rec.RiskLevel.IsValid() {
		return &triage.ValidationError{
			Field:   "risk_level",
			Message: fmt.Sprintf("invalid value %q: must be IMMEDIATE, HIGH, MEDIUM, or LOW", rec.RiskLevel),
		}
	}

	// Diastolic cannot exceed systolic when both are measured
	if rec.Vitals.BPSystolic != nil && rec.Vitals.BPDiastolic != nil &&
		*rec.Vitals.BPDiastolic > *rec.Vitals.BPSystolic {
		return &triage.ValidationError{
			Field:   "vitals.bp_diastolic",
			Message: "cannot exceed systolic pressure",
		}
	}

	return nil
}

// fieldError converts a validator field error into a ValidationError with
// a readable message.
func fieldError(e validator.FieldError) *triage.ValidationError {
	field := strings.TrimPrefix(e.Namespace(), "Record.")
	field = strings.ToLower(field)

	var msg string
	switch e.Tag() {
	case "required":
		msg = "is required"
	case "min":
		msg = fmt.Sprintf("must have at least %s entries", e.Param())
	case "gte":
		msg = fmt.Sprintf("must be at least %s (got %v)", e.Param(), e.Value())
	case "lte":
		msg = fmt.Sprintf("must be at most %s (got %v)", e.Param(), e.Value())
	default:
		msg = fmt.Sprintf("failed validation %q", e.Tag())
	}

	return &triage.ValidationError{Field: field, Message: msg}
}
