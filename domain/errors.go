package domain

import "errors"

// ErrServiceNotFound is returned when a record is absent from the relational
// store or is inactive. It is an outcome, not a failure.
var ErrServiceNotFound = errors.New("service not found")

// ErrDocumentNotFound is returned when an engine-side document is absent,
// e.g. deleting an id that was never indexed.
var ErrDocumentNotFound = errors.New("document not found in index")

// IsNotFound reports whether err is one of the not-found outcomes.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrServiceNotFound) || errors.Is(err, ErrDocumentNotFound)
}

// ValidationError rejects malformed input before any I/O happens.
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	return "validation: " + e.Field + ": " + e.Msg
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// RepositoryError represents an infrastructure error from the repository layer.
type RepositoryError struct {
	Op  string
	Err string
}

func (e *RepositoryError) Error() string {
	return e.Op + ": " + e.Err
}

// SearchEngineError represents an infrastructure error from the search engine layer.
type SearchEngineError struct {
	Op  string
	Err string
}

func (e *SearchEngineError) Error() string {
	return e.Op + ": " + e.Err
}
