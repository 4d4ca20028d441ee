package signature

import "fmt"

// ValidationError represents a schema-level validation error.
// These errors occur when a signature file violates structural requirements
// (e.g., missing signatures list, invalid version number).
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s: %s", e.Field, e.Message)
}

// SignatureError represents an error specific to an individual signature.
type SignatureError struct {
	Index   int    // 0-based index of the signature in the file
	ID      string // Signature ID (may be empty if ID field is missing)
	Field   string
	Message string
	Cause   error // Underlying error (e.g., regex compile error)
}

func (e *SignatureError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("signature %q: %s: %s", e.ID, e.Field, e.Message)
	}
	return fmt.Sprintf("signature[%d]: %s: %s", e.Index, e.Field, e.Message)
}

// Unwrap returns the underlying cause of the error.
func (e *SignatureError) Unwrap() error {
	return e.Cause
}
