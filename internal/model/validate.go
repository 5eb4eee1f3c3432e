package model

import (
	"fmt"
	"strings"
)

// ValidationError holds a list of field-level validation errors.
type ValidationError struct {
	Errors []FieldError
}

// FieldError represents a single validation failure on a named field.
type FieldError struct {
	Field   string
	Message string
}

// Error formats the validation error as a semicolon-separated list of field messages.
func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Errors))
	for i, fe := range e.Errors {
		parts[i] = fe.Field + ": " + fe.Message
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// HasErrors reports whether the validation error contains any field errors.
func (e *ValidationError) HasErrors() bool {
	return len(e.Errors) > 0
}

// WeightOverflowError builds the validation error returned when a step write
// would push a project's weight total past MaxStepWeight. available is the
// remaining percentage the caller may still assign.
func WeightOverflowError(available int) *ValidationError {
	if available < 0 {
		available = 0
	}
	return &ValidationError{Errors: []FieldError{{
		Field:   "weight_percentage",
		Message: fmt.Sprintf("total weight cannot exceed %d%%; %d%% available", MaxStepWeight, available),
	}}}
}

// ValidateProject checks a Project for constraint violations.
// It returns a *ValidationError if any rules fail, or nil if the project is valid.
func ValidateProject(p *Project) error {
	var ve ValidationError

	if strings.TrimSpace(p.Title) == "" {
		ve.Errors = append(ve.Errors, FieldError{Field: "title", Message: "is required"})
	}
	if p.UserID == "" {
		ve.Errors = append(ve.Errors, FieldError{Field: "user_id", Message: "is required"})
	}

	if ve.HasErrors() {
		return &ve
	}
	return nil
}

// ValidateTask checks a Task for constraint violations.
func ValidateTask(t *Task) error {
	var ve ValidationError

	if strings.TrimSpace(t.Title) == "" {
		ve.Errors = append(ve.Errors, FieldError{Field: "title", Message: "is required"})
	}
	if t.UserID == "" {
		ve.Errors = append(ve.Errors, FieldError{Field: "user_id", Message: "is required"})
	}
	if !t.Status.IsValid() {
		ve.Errors = append(ve.Errors, FieldError{
			Field:   "status",
			Message: fmt.Sprintf("invalid value %q", t.Status),
		})
	}
	if !t.Priority.IsValid() {
		ve.Errors = append(ve.Errors, FieldError{
			Field:   "priority",
			Message: fmt.Sprintf("invalid value %q", t.Priority),
		})
	}

	if ve.HasErrors() {
		return &ve
	}
	return nil
}

// ValidateNote checks a Note for constraint violations.
func ValidateNote(n *Note) error {
	var ve ValidationError

	if strings.TrimSpace(n.Title) == "" {
		ve.Errors = append(ve.Errors, FieldError{Field: "title", Message: "is required"})
	}
	if n.UserID == "" {
		ve.Errors = append(ve.Errors, FieldError{Field: "user_id", Message: "is required"})
	}

	if ve.HasErrors() {
		return &ve
	}
	return nil
}

// ValidateStep checks a ProjectStep for per-record constraint violations.
// The cross-record weight-sum invariant is enforced by the progress engine,
// which can see the project's full step set.
func ValidateStep(s *ProjectStep) error {
	var ve ValidationError

	if strings.TrimSpace(s.Title) == "" {
		ve.Errors = append(ve.Errors, FieldError{Field: "title", Message: "is required"})
	}
	if s.ProjectID == "" {
		ve.Errors = append(ve.Errors, FieldError{Field: "project_id", Message: "is required"})
	}
	if s.WeightPercentage <= 0 || s.WeightPercentage > MaxStepWeight {
		ve.Errors = append(ve.Errors, FieldError{
			Field:   "weight_percentage",
			Message: fmt.Sprintf("must be between 1 and %d, got %d", MaxStepWeight, s.WeightPercentage),
		})
	}
	if !s.Status.IsValid() {
		ve.Errors = append(ve.Errors, FieldError{
			Field:   "status",
			Message: fmt.Sprintf("invalid value %q", s.Status),
		})
	}

	if ve.HasErrors() {
		return &ve
	}
	return nil
}
