package domain

import "fmt"

// DomainError represents a domain-specific error
type DomainError struct {
	Code    string
	Message string
	Err     error
}

// Error implements the error interface
func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError creates a new DomainError
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Err:     nil,
	}
}

// NewDomainErrorWithCause creates a new DomainError with an underlying cause
func NewDomainErrorWithCause(code, message string, err error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Common domain error codes
const (
	ErrCodeValidation     = "VALIDATION_ERROR"
	ErrCodeEmbedding      = "EMBEDDING_ERROR"
	ErrCodeRetrieval      = "RETRIEVAL_ERROR"
	ErrCodeUnknownUseCase = "UNKNOWN_USE_CASE"
	ErrCodeCompletion     = "COMPLETION_ERROR"
	ErrCodeUnauthorized   = "UNAUTHORIZED"
	ErrCodeInternalError  = "INTERNAL_ERROR"
)

// Validation errors
var (
	ErrEmptyQuery        = NewDomainError(ErrCodeValidation, "query text cannot be empty")
	ErrInvalidTopK       = NewDomainError(ErrCodeValidation, "top-k must be greater than zero")
	ErrChunkTextTooLong  = NewDomainError(ErrCodeValidation, "chunk text exceeds maximum length")
	ErrSourceNameTooLong = NewDomainError(ErrCodeValidation, "chunk source exceeds maximum length")
	ErrWrongDimensions   = NewDomainError(ErrCodeValidation, "embedding vector has wrong dimensionality")
)

// Pipeline errors
var (
	ErrUnknownUseCase = NewDomainError(ErrCodeUnknownUseCase, "unknown use case")
	ErrNoCompletion   = NewDomainError(ErrCodeCompletion, "completion service returned no choices")
)

// NewEmbeddingError wraps a failure from the embedding service boundary.
func NewEmbeddingError(err error) *DomainError {
	return NewDomainErrorWithCause(ErrCodeEmbedding, "embedding failed", err)
}

// NewRetrievalError wraps a failure from the vector store boundary.
func NewRetrievalError(err error) *DomainError {
	return NewDomainErrorWithCause(ErrCodeRetrieval, "retrieval failed", err)
}

// NewCompletionError wraps a failure from the completion service boundary.
func NewCompletionError(err error) *DomainError {
	return NewDomainErrorWithCause(ErrCodeCompletion, "completion failed", err)
}
