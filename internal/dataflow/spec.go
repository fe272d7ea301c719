package dataflow

import (
	"context"

	"github.com/zclconf/go-cty/cty"
)

// Kind distinguishes attributes that are assigned directly from attributes
// that are derived from others.
type Kind int

const (
	// Independent attributes are set directly and never derived.
	Independent Kind = iota
	// Determinant attributes are computed from their dependencies by an
	// update rule and recomputed lazily.
	Determinant
)

func (k Kind) String() string {
	switch k {
	case Independent:
		return "independent"
	case Determinant:
		return "determinant"
	default:
		return "unknown"
	}
}

// Resolver grants an updater read access to the current values of the
// attribute's declared dependencies. Reading any other attribute fails with
// ErrNotDependency.
type Resolver interface {
	Get(ctx context.Context, name string) (cty.Value, error)
}

// Updater recomputes a determinant attribute. It reads fresh dependency
// values through the resolver and returns the new value. The engine treats
// it as opaque: any error propagates to the caller of Get and leaves the
// attribute dirty.
type Updater func(ctx context.Context, deps Resolver) (cty.Value, error)

// AttributeSpec is the immutable declaration-time metadata for one attribute.
//
// Independent attributes carry an initial value and have no dependencies and
// no updater. Determinant attributes carry an updater and an ordered list of
// dependency names; they have no initial value and start dirty.
type AttributeSpec struct {
	Name         string
	Kind         Kind
	Dependencies []string
	Initial      cty.Value
	Update       Updater
}

func (s *AttributeSpec) validate() error {
	if s.Name == "" {
		return wrapSpecErr(s.Name, "name must not be empty")
	}
	switch s.Kind {
	case Independent:
		if len(s.Dependencies) > 0 {
			return wrapSpecErr(s.Name, "independent attribute must not declare dependencies")
		}
		if s.Update != nil {
			return wrapSpecErr(s.Name, "independent attribute must not declare an updater")
		}
	case Determinant:
		if s.Update == nil {
			return wrapSpecErr(s.Name, "determinant attribute requires an updater")
		}
		if len(s.Dependencies) == 0 {
			return wrapSpecErr(s.Name, "determinant attribute requires at least one dependency")
		}
		seen := make(map[string]struct{}, len(s.Dependencies))
		for _, dep := range s.Dependencies {
			if dep == s.Name {
				return wrapSpecErr(s.Name, "attribute must not depend on itself")
			}
			if _, dup := seen[dep]; dup {
				return wrapSpecErr(s.Name, "dependency "+dep+" listed twice")
			}
			seen[dep] = struct{}{}
		}
	default:
		return wrapSpecErr(s.Name, "unknown kind")
	}
	return nil
}
