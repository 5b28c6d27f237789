package session

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// CreateSessionParams describes a new session. All string fields are
// required; CapacityTotal is optional and must be positive when set
// (zero means unlimited).
type CreateSessionParams struct {
	Title         string    `validate:"required"`
	Sport         string    `validate:"required"`
	Venue         string    `validate:"required"`
	TeamA         string    `validate:"required"`
	TeamB         string    `validate:"required"`
	ScheduledAt   time.Time `validate:"required"`
	CapacityTotal int       `validate:"omitempty,gt=0"`
	CreatorID     string    `validate:"required"`
}

var paramsValidator = validator.New(validator.WithRequiredStructEnabled())

// Validate checks the parameters against their rules plus the schedule rule:
// ScheduledAt must be strictly after now. Returns an error wrapping
// ErrValidation and a ValidationError with field-level details.
func (p CreateSessionParams) Validate(now time.Time) error {
	ve := NewValidationError()

	if err := paramsValidator.Struct(p); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return errors.Join(ErrValidation, err)
		}
		for _, fe := range fieldErrs {
			ve.Add(fe.Field(), ruleMessage(fe))
		}
	}

	if !ve.Has("ScheduledAt") && !p.ScheduledAt.After(now) {
		ve.Add("ScheduledAt", "must be in the future")
	}

	if ve.IsEmpty() {
		return nil
	}
	return errors.Join(ErrValidation, ve)
}

func ruleMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	default:
		return fmt.Sprintf("failed %q validation", fe.Tag())
	}
}

// ValidationError represents field validation errors.
// It's based on url.Values to leverage built-in string slice handling.
type ValidationError url.Values

// NewValidationError creates an empty validation error.
func NewValidationError() ValidationError {
	return make(ValidationError)
}

// Error implements the error interface with a human-readable summary.
func (e ValidationError) Error() string {
	if len(e) == 0 {
		return "validation failed"
	}

	var parts []string
	for field, messages := range e {
		if len(messages) > 0 {
			parts = append(parts, fmt.Sprintf("%s: %s", field, messages[0]))
		}
	}
	return fmt.Sprintf("validation error: %s", strings.Join(parts, ", "))
}

// Add adds an error message for a field.
func (e ValidationError) Add(field, message string) {
	url.Values(e).Add(field, message)
}

// Get returns the first error message for a field.
func (e ValidationError) Get(field string) string {
	return url.Values(e).Get(field)
}

// Has checks if a field has any errors.
func (e ValidationError) Has(field string) bool {
	return len(e[field]) > 0
}

// IsEmpty returns true if there are no validation errors.
func (e ValidationError) IsEmpty() bool {
	return len(e) == 0
}
