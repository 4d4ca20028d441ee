package report

import (
	"errors"
	"fmt"
)

// Recoverable analysis conditions. None of them fails an analysis; they
// are collected into Report.Recovered.
var (
	// ErrNoTimestampFound means the input contains no HH:MM:SS.mmm timestamp,
	// so there is no log body to extract from.
	ErrNoTimestampFound = errors.New("no timestamp found")

	// ErrFieldExtractionMiss means a field's pattern did not match.
	ErrFieldExtractionMiss = errors.New("field not found")

	// ErrUnmappedSettingValue means a setting token has no display mapping.
	ErrUnmappedSettingValue = errors.New("unmapped setting value")

	// ErrMalformedErrorBlock means the final error block does not start
	// with an error head line.
	ErrMalformedErrorBlock = errors.New("malformed error block")
)

// ErrNoSeverityGlyph is returned by ParseNote when a rendered note does not
// start with a recognized severity glyph.
var ErrNoSeverityGlyph = errors.New("note has no severity glyph")

// FieldError records which field missed.
type FieldError struct {
	Field string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %v", e.Field, ErrFieldExtractionMiss)
}

// Unwrap returns ErrFieldExtractionMiss.
func (e *FieldError) Unwrap() error {
	return ErrFieldExtractionMiss
}

// SettingError records a setting token that could not be mapped.
type SettingError struct {
	Setting SettingName
	Token   string
	Err     error
}

func (e *SettingError) Error() string {
	return fmt.Sprintf("setting %s: token %q: %v", e.Setting, e.Token, e.Err)
}

// Unwrap returns the underlying cause.
func (e *SettingError) Unwrap() error {
	return e.Err
}
