// Package builder turns a loaded declaration model into a validated
// dataflow.Type, compiling expression update rules into closures and
// resolving named Go updaters through the registry.
package builder

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/attrflow/internal/config"
	"github.com/vk/attrflow/internal/ctxlog"
	"github.com/vk/attrflow/internal/dataflow"
	"github.com/vk/attrflow/internal/registry"
)

// Build constructs the shared attribute type from a declaration model. All
// declaration-time failures surface here: unknown update_func names, unknown
// dependencies, and dependency cycles. Nothing is evaluated.
func Build(ctx context.Context, model *config.Model, reg *registry.Registry) (*dataflow.Type, error) {
	logger := ctxlog.FromContext(ctx)

	specs := make([]dataflow.AttributeSpec, 0, len(model.Attributes))
	for _, decl := range model.Attributes {
		switch {
		case decl.Independent():
			specs = append(specs, dataflow.AttributeSpec{
				Name:    decl.Name,
				Kind:    dataflow.Independent,
				Initial: decl.Initial,
			})

		case decl.Update != nil:
			specs = append(specs, dataflow.AttributeSpec{
				Name:         decl.Name,
				Kind:         dataflow.Determinant,
				Dependencies: decl.Inputs,
				Update:       compileExpression(decl.Name, decl.Inputs, decl.Update),
			})

		default:
			fn, ok := reg.Updater(decl.UpdateFunc)
			if !ok {
				return nil, fmt.Errorf("attribute %q: update_func %q is not registered", decl.Name, decl.UpdateFunc)
			}
			specs = append(specs, dataflow.AttributeSpec{
				Name:         decl.Name,
				Kind:         dataflow.Determinant,
				Dependencies: decl.Inputs,
				Update:       fn,
			})
		}
	}

	typ, err := dataflow.NewType(specs)
	if err != nil {
		return nil, err
	}
	logger.Debug("attribute type built", "attributes", len(specs))
	return typ, nil
}

// compileExpression wraps an HCL update expression as an updater. Dependency
// values are fetched through the resolver at call time, so the expression
// always sees fresh inputs.
func compileExpression(name string, deps []string, expr hcl.Expression) dataflow.Updater {
	return func(ctx context.Context, r dataflow.Resolver) (cty.Value, error) {
		vars := make(map[string]cty.Value, len(deps))
		for _, dep := range deps {
			val, err := r.Get(ctx, dep)
			if err != nil {
				return cty.NilVal, err
			}
			vars[dep] = val
		}

		evalCtx := &hcl.EvalContext{
			Variables: vars,
			Functions: exprFunctions,
		}
		val, diags := expr.Value(evalCtx)
		if diags.HasErrors() {
			return cty.NilVal, fmt.Errorf("evaluating update expression of %q: %w", name, diags)
		}
		return val, nil
	}
}
