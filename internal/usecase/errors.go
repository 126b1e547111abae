package usecase

// Error codes carried by DomainError. Handlers translate them to HTTP
// statuses; anything that is not a DomainError is a technical failure.
const (
	CodeNotFound          = "NOT_FOUND"
	CodeInvalidTransition = "INVALID_TRANSITION"
	CodeValidation        = "VALIDATION_ERROR"
	CodeImmutableMessage  = "IMMUTABLE_MESSAGE"
	CodeMissingDemoURL    = "MISSING_DEMO_URL"
	CodeConflict          = "CONFLICT"
)

type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

func IsDomainError(err error) bool {
	_, ok := err.(*DomainError)
	return ok
}

func NewNotFound(message string) *DomainError {
	return &DomainError{Code: CodeNotFound, Message: message}
}

// NewInvalidTransition names the unmet precondition, not a generic failure.
func NewInvalidTransition(message string) *DomainError {
	return &DomainError{Code: CodeInvalidTransition, Message: message}
}

func NewImmutableMessage(message string) *DomainError {
	return &DomainError{Code: CodeImmutableMessage, Message: message}
}

func NewMissingDemoURL(message string) *DomainError {
	return &DomainError{Code: CodeMissingDemoURL, Message: message}
}

func NewConflict(message string) *DomainError {
	return &DomainError{Code: CodeConflict, Message: message}
}

func NewValidation(message string) *DomainError {
	return &DomainError{Code: CodeValidation, Message: message}
}
