package dataflow

import (
	"fmt"
	"strings"
)

// Type holds the attribute specifications and the validated dependency graph
// for one object type. It is built once, shared read-only by every instance
// of the type, and safe for concurrent use after construction.
type Type struct {
	specs map[string]*AttributeSpec
	names []string

	// forward maps an attribute to the attributes it reads from; reverse is
	// its inverse, mapping an attribute to its direct dependents.
	forward map[string][]string
	reverse map[string][]string
}

// NewType validates the given specs and constructs the shared dependency
// graph. It fails with ErrDuplicateAttribute, ErrInvalidSpec,
// ErrUnknownDependency, or ErrCyclicDependency; no instance of a type that
// failed construction can exist.
func NewType(specs []AttributeSpec) (*Type, error) {
	t := &Type{
		specs:   make(map[string]*AttributeSpec, len(specs)),
		names:   make([]string, 0, len(specs)),
		forward: make(map[string][]string, len(specs)),
		reverse: make(map[string][]string, len(specs)),
	}

	for i := range specs {
		spec := specs[i]
		if err := spec.validate(); err != nil {
			return nil, err
		}
		if _, exists := t.specs[spec.Name]; exists {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateAttribute, spec.Name)
		}
		spec.Dependencies = append([]string(nil), spec.Dependencies...)
		t.specs[spec.Name] = &spec
		t.names = append(t.names, spec.Name)
	}

	// First pass: forward edges straight from the declarations, checking
	// that every dependency is itself declared.
	for _, name := range t.names {
		spec := t.specs[name]
		for _, dep := range spec.Dependencies {
			if _, ok := t.specs[dep]; !ok {
				return nil, fmt.Errorf("%w: %q depends on undeclared %q", ErrUnknownDependency, name, dep)
			}
		}
		t.forward[name] = spec.Dependencies
	}

	// Second pass: invert forward into reverse edges.
	for _, name := range t.names {
		for _, dep := range t.forward[name] {
			t.reverse[dep] = append(t.reverse[dep], name)
		}
	}

	if err := t.detectCycles(); err != nil {
		return nil, err
	}
	return t, nil
}

// detectCycles runs a depth-first search over forward edges with the classic
// three-color marking: done nodes are fully visited, inProgress nodes are on
// the current recursion stack, everything else is unvisited. Reaching an
// inProgress node means the declarations contain a cycle.
func (t *Type) detectCycles() error {
	done := make(map[string]bool, len(t.names))
	inProgress := make(map[string]bool, len(t.names))
	var stack []string

	var visit func(name string) error
	visit = func(name string) error {
		if done[name] {
			return nil
		}
		if inProgress[name] {
			return fmt.Errorf("%w: %s", ErrCyclicDependency, cyclePath(stack, name))
		}

		inProgress[name] = true
		stack = append(stack, name)

		for _, dep := range t.forward[name] {
			if err := visit(dep); err != nil {
				return err
			}
		}

		stack = stack[:len(stack)-1]
		delete(inProgress, name)
		done[name] = true
		return nil
	}

	for _, name := range t.names {
		if !done[name] {
			if err := visit(name); err != nil {
				return err
			}
		}
	}
	return nil
}

// cyclePath renders the offending portion of the recursion stack, closing
// the loop back to the repeated node, e.g. "a -> b -> a".
func cyclePath(stack []string, repeated string) string {
	start := 0
	for i, name := range stack {
		if name == repeated {
			start = i
			break
		}
	}
	parts := append(append([]string(nil), stack[start:]...), repeated)
	return strings.Join(parts, " -> ")
}

// Attributes returns all attribute names in declaration order.
func (t *Type) Attributes() []string {
	return append([]string(nil), t.names...)
}

// Spec returns the specification for a declared attribute.
func (t *Type) Spec(name string) (*AttributeSpec, bool) {
	spec, ok := t.specs[name]
	return spec, ok
}

// Dependencies returns the names the given attribute reads from, in
// declaration order.
func (t *Type) Dependencies(name string) ([]string, error) {
	if _, ok := t.specs[name]; !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownAttribute, name)
	}
	return append([]string(nil), t.forward[name]...), nil
}

// Dependents returns the attributes that directly depend on the given one.
func (t *Type) Dependents(name string) ([]string, error) {
	if _, ok := t.specs[name]; !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownAttribute, name)
	}
	return append([]string(nil), t.reverse[name]...), nil
}
