package errors

import (
	"math"
	"regexp"
)

// MaxPanelSize bounds scene and request dimensions.
const MaxPanelSize = 1 << 20

// MaxElements bounds the number of elements in one scene.
const MaxElements = 1024

// elementNameRegex matches names usable as element references and SVG ids.
var elementNameRegex = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_.-]*$`)

// ValidateElementName validates an element name used for constraint references.
//
// Names must:
//   - Be non-empty and at most 128 characters
//   - Start with a letter or underscore
//   - Contain only letters, digits, '_', '.', and '-'
func ValidateElementName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidScene, "element name cannot be empty")
	}

	if len(name) > 128 {
		return New(ErrCodeInvalidScene, "element name too long (max 128 characters)")
	}

	if !elementNameRegex.MatchString(name) {
		return New(ErrCodeInvalidScene, "invalid element name: %q", name)
	}

	return nil
}

// ValidateSize validates a single dimension. Zero means "size to content"
// and is accepted; negative, NaN, infinite and oversized values are not.
func ValidateSize(what string, v float64) error {
	switch {
	case math.IsNaN(v) || math.IsInf(v, 0):
		return New(ErrCodeInvalidSize, "%s must be a finite number", what)
	case v < 0:
		return New(ErrCodeInvalidSize, "%s cannot be negative (got %g)", what, v)
	case v > MaxPanelSize:
		return New(ErrCodeInvalidSize, "%s too large (max %d)", what, MaxPanelSize)
	}
	return nil
}
