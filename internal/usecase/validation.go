package usecase

import (
	"fmt"
	"net/mail"
	"strings"

	"github.com/partpeople/lead-portal/internal/entity"
)

type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// joinValidation folds field errors into one DomainError for the handler.
func joinValidation(errs []ValidationError) *DomainError {
	if len(errs) == 0 {
		return nil
	}
	parts := make([]string, len(errs))
	for i, e := range errs {
		parts[i] = e.Error()
	}
	return NewValidation(strings.Join(parts, "; "))
}

func ValidateCreateLeadInput(input CreateLeadInput) []ValidationError {
	var errors []ValidationError

	if strings.TrimSpace(input.Company) == "" {
		errors = append(errors, ValidationError{"company", "is required"})
	} else if len(input.Company) > 200 {
		errors = append(errors, ValidationError{"company", "must not exceed 200 characters"})
	}

	if input.Email != "" {
		if _, err := mail.ParseAddress(input.Email); err != nil {
			errors = append(errors, ValidationError{"email", "is invalid"})
		}
	}

	if input.Status != "" {
		errors = append(errors, ValidationError{"status", "cannot be set directly; use the transition endpoints"})
	}

	return errors
}

func ValidateUpdateLeadInput(input UpdateLeadInput) []ValidationError {
	var errors []ValidationError

	if input.Company != nil && strings.TrimSpace(*input.Company) == "" {
		errors = append(errors, ValidationError{"company", "must not be empty"})
	}

	if input.Email != nil && *input.Email != "" {
		if _, err := mail.ParseAddress(*input.Email); err != nil {
			errors = append(errors, ValidationError{"email", "is invalid"})
		}
	}

	if input.Status != nil {
		errors = append(errors, ValidationError{"status", "cannot be set directly; use the transition endpoints"})
	}

	return errors
}

func ValidateCreateMessageInput(input CreateMessageInput) []ValidationError {
	var errors []ValidationError

	if input.Direction == "" {
		errors = append(errors, ValidationError{"direction", "is required"})
	} else if !entity.Direction(input.Direction).Valid() {
		errors = append(errors, ValidationError{"direction", "must be inbound or outbound"})
	}

	if strings.TrimSpace(input.From) == "" {
		errors = append(errors, ValidationError{"from", "is required"})
	}
	if strings.TrimSpace(input.To) == "" {
		errors = append(errors, ValidationError{"to", "is required"})
	}
	if strings.TrimSpace(input.Body) == "" {
		errors = append(errors, ValidationError{"body", "is required"})
	}

	return errors
}
