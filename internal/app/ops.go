package app

import (
	"fmt"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"
)

// OpKind identifies an operation in the script.
type OpKind int

const (
	// OpGet reads an attribute and prints its value.
	OpGet OpKind = iota
	// OpSet assigns a new value to an attribute.
	OpSet
)

// Operation is one entry in the ordered script executed against the
// instance: either `get:<name>` or `set:<name>=<expression>`.
type Operation struct {
	Kind      OpKind
	Attribute string
	// RawValue is the unparsed value expression of a set operation.
	RawValue string
}

// ParseOperation parses the CLI form of an operation.
func ParseOperation(s string) (Operation, error) {
	switch {
	case strings.HasPrefix(s, "get:"):
		name := strings.TrimPrefix(s, "get:")
		if name == "" {
			return Operation{}, fmt.Errorf("invalid operation %q: missing attribute name", s)
		}
		return Operation{Kind: OpGet, Attribute: name}, nil

	case strings.HasPrefix(s, "set:"):
		assignment := strings.TrimPrefix(s, "set:")
		name, raw, found := strings.Cut(assignment, "=")
		if !found || name == "" || raw == "" {
			return Operation{}, fmt.Errorf("invalid operation %q: want set:<name>=<value>", s)
		}
		return Operation{Kind: OpSet, Attribute: name, RawValue: raw}, nil

	default:
		return Operation{}, fmt.Errorf("invalid operation %q: want get:<name> or set:<name>=<value>", s)
	}
}

// parseValue evaluates a set operation's value as a constant HCL expression.
func parseValue(raw string) (cty.Value, error) {
	expr, diags := hclsyntax.ParseExpression([]byte(raw), "cli", hcl.InitialPos)
	if diags.HasErrors() {
		return cty.NilVal, fmt.Errorf("parsing value %q: %w", raw, diags)
	}
	val, diags := expr.Value(nil)
	if diags.HasErrors() {
		return cty.NilVal, fmt.Errorf("evaluating value %q: %w", raw, diags)
	}
	return val, nil
}

// formatValue renders a value for console output. Strings print unquoted,
// matching how the demo flows narrate their results.
func formatValue(val cty.Value) string {
	switch {
	case val == cty.NilVal:
		return "<unset>"
	case val.Type() == cty.String:
		return val.AsString()
	case val.Type() == cty.Number:
		return val.AsBigFloat().Text('f', -1)
	case val.Type() == cty.Bool:
		if val.True() {
			return "true"
		}
		return "false"
	default:
		return val.GoString()
	}
}
