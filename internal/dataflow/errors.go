package dataflow

import (
	"errors"
	"fmt"
)

var (
	// ErrCyclicDependency indicates the declared dependency edges form a cycle.
	ErrCyclicDependency = errors.New("attrflow: cyclic dependency")
	// ErrUnknownDependency indicates a spec depends on a name that is not declared.
	ErrUnknownDependency = errors.New("attrflow: unknown dependency")
	// ErrUnknownAttribute indicates a get or set referenced an undeclared name.
	ErrUnknownAttribute = errors.New("attrflow: unknown attribute")
	// ErrDuplicateAttribute indicates two specs share the same name.
	ErrDuplicateAttribute = errors.New("attrflow: duplicate attribute")
	// ErrInvalidSpec indicates an attribute spec is internally inconsistent.
	ErrInvalidSpec = errors.New("attrflow: invalid attribute spec")
	// ErrNotDependency indicates an updater read an attribute it did not declare.
	ErrNotDependency = errors.New("attrflow: attribute is not a declared dependency")
	// ErrInvariantViolation signals internal state the engine guarantees is
	// unreachable, such as a dirty independent attribute.
	ErrInvariantViolation = errors.New("attrflow: invariant violation")
)

// UpdaterError wraps a failure raised by a user-supplied update rule. The
// attribute stays dirty, so a later get retries the computation.
type UpdaterError struct {
	Attribute string
	Err       error
}

func (e *UpdaterError) Error() string {
	return fmt.Sprintf("attrflow: updater for %q: %v", e.Attribute, e.Err)
}

func (e *UpdaterError) Unwrap() error {
	return e.Err
}

func wrapSpecErr(name, msg string) error {
	if name == "" {
		return fmt.Errorf("%w: %s", ErrInvalidSpec, msg)
	}
	return fmt.Errorf("%w: %q: %s", ErrInvalidSpec, name, msg)
}
