package config

import (
	"context"

	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
)

// Loader is the interface for a format-specific declaration loader.
type Loader interface {
	// Load reads attribute declarations from the given paths (files or
	// directories) and translates them into the declaration model.
	Load(ctx context.Context, paths ...string) (*Model, error)
}

// Model is the unified representation of a type's attribute declarations,
// in declaration order.
type Model struct {
	Attributes []*Attribute
}

// Attribute is one declared attribute. Exactly one of Initial, Update, or
// UpdateFunc is set: Initial makes it independent, the other two make it a
// determinant with either an expression updater or a registered Go updater.
type Attribute struct {
	Name string

	// Initial is the evaluated initial value of an independent attribute.
	Initial cty.Value

	// Inputs are the declared dependency names. For expression updaters the
	// loader fills them in from the expression when the declaration omits
	// them.
	Inputs []string

	// Update is the unevaluated update expression of an expression
	// determinant.
	Update hcl.Expression

	// UpdateFunc names a Go updater registered at startup.
	UpdateFunc string

	// DeclRange locates the declaration for error reporting.
	DeclRange hcl.Range
}

// Independent reports whether the declaration describes an independent
// attribute.
func (a *Attribute) Independent() bool {
	return a.Update == nil && a.UpdateFunc == ""
}
