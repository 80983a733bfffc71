package siteconfig

import (
	"errors"
	"fmt"
	"strings"
)

// Error types
var (
	// ErrValidationFailed indicates a candidate violates one or more config invariants
	ErrValidationFailed = errors.New("validation failed")

	// ErrDuplicateIdentity indicates a record with the same slug already exists
	ErrDuplicateIdentity = errors.New("duplicate identity")

	// ErrNotFound indicates no record exists for the slug
	ErrNotFound = errors.New("site config not found")

	// ErrGenerationFailed indicates the content generator failed or returned unusable content
	ErrGenerationFailed = errors.New("generation failed")

	// ErrConfigurationError indicates the generation service is missing a required credential
	ErrConfigurationError = errors.New("generation service not configured")

	// ErrObjectNotFound indicates a snapshot object is missing from blob storage
	ErrObjectNotFound = errors.New("object not found")
)

// Violation describes a single broken invariant.
type Violation struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

func (v Violation) String() string {
	return fmt.Sprintf("%s: %s", v.Field, v.Message)
}

// ValidationError carries every violation found in a candidate.
type ValidationError struct {
	Violations []Violation
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		parts[i] = v.String()
	}
	return fmt.Sprintf("validation failed: %s", strings.Join(parts, "; "))
}

// Is reports ErrValidationFailed as a match so callers can use errors.Is.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidationFailed
}

// Fields returns the violated field paths in order of discovery.
func (e *ValidationError) Fields() []string {
	fields := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		fields[i] = v.Field
	}
	return fields
}

// RecordError represents an error related to a record operation
type RecordError struct {
	Slug string
	Op   string
	Err  error
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("site config operation %s failed for slug %q: %v", e.Op, e.Slug, e.Err)
}

func (e *RecordError) Unwrap() error {
	return e.Err
}

// GenerationError represents a failed call to the content generator
type GenerationError struct {
	Mode string
	Err  error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("generation (%s) failed: %v", e.Mode, e.Err)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}
