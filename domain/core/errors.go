package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Input errors
	ErrMalformedInput = errors.New("malformed analysis input")
	ErrEmptySection   = errors.New("optional analysis section absent")

	// Export errors
	ErrSerialization = errors.New("serialization failed")

	// Configuration errors
	ErrInvalidThresholds = errors.New("invalid significance thresholds")
)

// Error constructors with context
func NewMalformedInputError(field string, reason string) error {
	return fmt.Errorf("%w: %s: %s", ErrMalformedInput, field, reason)
}

func NewEmptySectionError(section string) error {
	return fmt.Errorf("%w: %s", ErrEmptySection, section)
}

func NewSerializationError(field string, value float64) error {
	return fmt.Errorf("%w: non-finite value %v in field %s", ErrSerialization, value, field)
}

// Error checking helpers
func IsMalformedInputError(err error) bool {
	return errors.Is(err, ErrMalformedInput)
}

func IsEmptySectionError(err error) bool {
	return errors.Is(err, ErrEmptySection)
}

func IsSerializationError(err error) bool {
	return errors.Is(err, ErrSerialization)
}
