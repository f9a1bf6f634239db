package relpanel

import (
	"errors"
	"fmt"
	"strings"

	apperr "github.com/matzehuels/relpanel/pkg/errors"
)

var (
	// ErrReferenceNotFound matches a [*ReferenceNotFoundError]: a constraint
	// names a sibling that the panel's name lookup does not know.
	ErrReferenceNotFound = errors.New("reference not found")

	// ErrInvalidReference matches an [*InvalidReferenceError]: a constraint
	// references an element that is not a child of the panel.
	ErrInvalidReference = errors.New("invalid reference")

	// ErrCircularDependency matches a [*CircularDependencyError]: resolution
	// revisited a node whose own resolution was still in progress.
	ErrCircularDependency = errors.New("circular dependency")

	// ErrLayoutTooComplex matches a [*ComplexityError]: the desired size
	// walk ran out of its visit budget.
	ErrLayoutTooComplex = errors.New("layout too complex")
)

// ReferenceNotFoundError is returned while building the graph when a
// constraint's target name is not in the lookup.
type ReferenceNotFoundError struct {
	Name    string     // Unknown target name
	Kind    Constraint // Constraint that declared it
	Element string     // Declaring element
}

func (e *ReferenceNotFoundError) Error() string {
	return fmt.Sprintf("%s of %s: the name %q does not exist in the current context", e.Kind, e.Element, e.Name)
}

// Is matches [ErrReferenceNotFound].
func (e *ReferenceNotFoundError) Is(target error) bool { return target == ErrReferenceNotFound }

// Code returns the error code for this error type.
func (e *ReferenceNotFoundError) Code() apperr.Code { return apperr.ErrCodeReferenceNotFound }

// InvalidReferenceError is returned while building the graph when a
// constraint references an element outside the panel's children.
type InvalidReferenceError struct {
	Kind    Constraint // Constraint that declared it
	Element string     // Declaring element
	Target  string     // Name of the target, when it has one
}

func (e *InvalidReferenceError) Error() string {
	if e.Target != "" {
		return fmt.Sprintf("%s of %s: element %q is not a child of the panel", e.Kind, e.Element, e.Target)
	}
	return fmt.Sprintf("%s of %s: element does not exist in the current context", e.Kind, e.Element)
}

// Is matches [ErrInvalidReference].
func (e *InvalidReferenceError) Is(target error) bool { return target == ErrInvalidReference }

// Code returns the error code for this error type.
func (e *InvalidReferenceError) Code() apperr.Code { return apperr.ErrCodeInvalidReference }

// CircularDependencyError is returned by [Graph.Measure] and [Graph.Arrange]
// when the constraints form a cycle. Path lists the elements on the cycle,
// starting and ending with the element that was revisited.
type CircularDependencyError struct {
	Axis Axis // Axis being re-resolved, or Both during measure
	Path []string
}

func (e *CircularDependencyError) Error() string {
	msg := "circular dependency detected"
	if e.Axis != Both {
		msg += " (" + e.Axis.String() + ")"
	}
	if len(e.Path) > 0 {
		msg += ": " + strings.Join(e.Path, " -> ")
	}
	return msg
}

// Is matches [ErrCircularDependency].
func (e *CircularDependencyError) Is(target error) bool { return target == ErrCircularDependency }

// Code returns the error code for this error type.
func (e *CircularDependencyError) Code() apperr.Code { return apperr.ErrCodeCircularDependency }

// ComplexityError is returned by [Graph.Measure] when computing the desired
// size would visit more nodes than the graph's walk budget allows. Chains
// that fork to both sides of a node at every step grow exponentially.
type ComplexityError struct {
	Axis   Axis // Axis whose walk ran out
	Budget int  // Visits allowed per measure pass
}

func (e *ComplexityError) Error() string {
	return fmt.Sprintf("layout too complex: %s desired size needs more than %d node visits", e.Axis, e.Budget)
}

// Is matches [ErrLayoutTooComplex].
func (e *ComplexityError) Is(target error) bool { return target == ErrLayoutTooComplex }

// Code returns the error code for this error type.
func (e *ComplexityError) Code() apperr.Code { return apperr.ErrCodeLayoutTooComplex }
