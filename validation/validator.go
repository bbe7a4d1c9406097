package validation

import (
	"fmt"
	"math"
	"regexp"
	"slices"
	"strings"

	apperrors "github.com/rapidrescue/rescuedge/errors"
)

// Specialties are the hospital specialty tags the registry recognizes.
var Specialties = []string{"TRAUMA", "BURN", "CARDIAC", "NEURO", "GENERAL"}

var e164Pattern = regexp.MustCompile(`^\+[1-9][0-9]{6,14}$`)

// IsSpecialty reports whether s is a known specialty tag.
func IsSpecialty(s string) bool {
	return slices.Contains(Specialties, s)
}

// FieldError describes one invalid field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Validator collects field errors.
type Validator struct {
	errors []FieldError
}

// New creates an empty Validator.
func New() *Validator {
	return &Validator{}
}

// AddError records an error for field.
func (v *Validator) AddError(field, message string) {
	v.errors = append(v.errors, FieldError{Field: field, Message: message})
}

// HasErrors reports whether any error was recorded.
func (v *Validator) HasErrors() bool {
	return len(v.errors) > 0
}

// Errors returns the recorded errors.
func (v *Validator) Errors() []FieldError {
	return v.errors
}

// Validate returns nil, or a 400 AppError listing every field error.
func (v *Validator) Validate() *apperrors.AppError {
	if !v.HasErrors() {
		return nil
	}

	messages := make([]string, len(v.errors))
	for i, e := range v.errors {
		messages[i] = fmt.Sprintf("%s: %s", e.Field, e.Message)
	}

	appErr := apperrors.Validation(strings.Join(messages, "; "))
	appErr.Details = map[string]any{"fields": v.errors}
	return appErr
}

// Required checks that value is not blank.
func (v *Validator) Required(field, value string) *Validator {
	if strings.TrimSpace(value) == "" {
		v.AddError(field, "is required")
	}
	return v
}

// Min checks that value is at least minVal.
func (v *Validator) Min(field string, value, minVal int) *Validator {
	if value < minVal {
		v.AddError(field, fmt.Sprintf("must be at least %d", minVal))
	}
	return v
}

// Phone checks that value is an E.164 phone number such as +919876543210.
func (v *Validator) Phone(field, value string) *Validator {
	if !e164Pattern.MatchString(value) {
		v.AddError(field, "must be a phone number in E.164 format")
	}
	return v
}

// Coordinates checks that lat and lng are finite and within range.
func (v *Validator) Coordinates(field string, lat, lng float64) *Validator {
	if math.IsNaN(lat) || lat < -90 || lat > 90 {
		v.AddError(field+".lat", "must be a latitude between -90 and 90")
	}
	if math.IsNaN(lng) || lng < -180 || lng > 180 {
		v.AddError(field+".lng", "must be a longitude between -180 and 180")
	}
	return v
}

// Specialty checks that a non-empty value is a known specialty tag.
func (v *Validator) Specialty(field, value string) *Validator {
	if value != "" && !IsSpecialty(value) {
		v.AddError(field, "must be one of: "+strings.Join(Specialties, ", "))
	}
	return v
}

// Custom records message for field when condition is false.
func (v *Validator) Custom(condition bool, field, message string) *Validator {
	if !condition {
		v.AddError(field, message)
	}
	return v
}
