package validation

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/yigit/curso/internal/pkg/apperrors"
)

// Course field limits
const (
	DescriptionMaxLength = 250
)

// Form field names, as submitted by the course form
const (
	FieldName        = "name"
	FieldDescription = "description"
	FieldCSRFToken   = "csrf_token"
	// FieldForm holds errors that belong to no single field
	FieldForm        = "form"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// "notblank" rejects whitespace-only strings; "required" alone accepts them
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	// "maxrunes" counts characters instead of bytes
	_ = v.RegisterValidation("maxrunes", func(fl validator.FieldLevel) bool {
		var limit int
		if _, err := fmt.Sscanf(fl.Param(), "%d", &limit); err != nil {
			return false
		}
		return utf8.RuneCountInString(fl.Field().String()) <= limit
	})
	return v
}

// Errors maps a form field to the messages shown next to it.
// It is the Invalid outcome of form validation.
type Errors struct {
	Fields map[string][]string
	cause  error
}

// NewErrors creates an empty set of field errors
func NewErrors() *Errors {
	return &Errors{Fields: map[string][]string{}}
}

// Add appends a message for field
func (e *Errors) Add(field, message string) *Errors {
	e.Fields[field] = append(e.Fields[field], message)
	return e
}

// WithCause records the error that produced these field errors
func (e *Errors) WithCause(err error) *Errors {
	e.cause = err
	return e
}

// Empty reports whether no field has an error
func (e *Errors) Empty() bool {
	return e == nil || len(e.Fields) == 0
}

// Get returns the messages for a field
func (e *Errors) Get(field string) []string {
	if e == nil {
		return nil
	}
	return e.Fields[field]
}

// Error implements the error interface
func (e *Errors) Error() string {
	fields := make([]string, 0, len(e.Fields))
	for f := range e.Fields {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f+": "+strings.Join(e.Fields[f], ", "))
	}
	return apperrors.ErrValidationFailed.Error() + ": " + strings.Join(parts, "; ")
}

// Unwrap exposes ErrValidationFailed and the optional cause to errors.Is
func (e *Errors) Unwrap() []error {
	if e.cause != nil {
		return []error{apperrors.ErrValidationFailed, e.cause}
	}
	return []error{apperrors.ErrValidationFailed}
}

// AsErrors extracts field errors from err, if any
func AsErrors(err error) (*Errors, bool) {
	var verrs *Errors
	if errors.As(err, &verrs) {
		return verrs, true
	}
	return nil, false
}

// CourseInput is a validated course submission
type CourseInput struct {
	Name        string
	Description string
}

type courseRules struct {
	Name        string `validate:"required,notblank"`
	Description string `validate:"required,notblank,maxrunes=250"`
}

// ValidateCourseForm checks a course submission. It returns either the
// validated input or *Errors describing every failing field.
func ValidateCourseForm(name, description string) (CourseInput, error) {
	err := validate.Struct(courseRules{Name: name, Description: description})
	if err == nil {
		return CourseInput{Name: name, Description: description}, nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return CourseInput{}, fmt.Errorf("validating course form: %w", err)
	}

	verrs := NewErrors()
	for _, fe := range fieldErrs {
		field := formField(fe.StructField())
		if len(verrs.Get(field)) > 0 {
			// One message per field is enough for the form
			continue
		}
		verrs.Add(field, formatFieldError(fe))
	}
	return CourseInput{}, verrs
}

func formField(structField string) string {
	switch structField {
	case "Name":
		return FieldName
	case "Description":
		return FieldDescription
	default:
		return strings.ToLower(structField)
	}
}

// formatFieldError creates a human-readable validation error message
func formatFieldError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "notblank":
		return "This field is required."
	case "maxrunes":
		return fmt.Sprintf("Field cannot be longer than %s characters.", fe.Param())
	default:
		return "Invalid value."
	}
}
