// Package stringcalc is a built-in updater module that assembles arithmetic
// expressions as strings, one updater per attribute of the demo flow in
// examples/strings. It exists to exercise the update_func path; expression
// updaters cover the same graph numerically in examples/dataflow.
package stringcalc

import (
	"context"
	"fmt"

	"github.com/zclconf/go-cty/cty"

	"github.com/vk/attrflow/internal/dataflow"
	"github.com/vk/attrflow/internal/registry"
)

// Module registers the stringcalc updaters.
type Module struct{}

// Register implements registry.Module.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterUpdater("stringcalc.update_a2", updateA2)
	r.RegisterUpdater("stringcalc.update_a3", updateA3)
	r.RegisterUpdater("stringcalc.update_a4", updateA4)
	r.RegisterUpdater("stringcalc.update_a5", updateA5)
	r.RegisterUpdater("stringcalc.update_a7", updateA7)
}

func updateA2(ctx context.Context, deps dataflow.Resolver) (cty.Value, error) {
	a1, err := operand(ctx, deps, "a1")
	if err != nil {
		return cty.NilVal, err
	}
	return cty.StringVal(fmt.Sprintf("(%s+2)", a1)), nil
}

func updateA3(ctx context.Context, deps dataflow.Resolver) (cty.Value, error) {
	a2, err := operand(ctx, deps, "a2")
	if err != nil {
		return cty.NilVal, err
	}
	return cty.StringVal(fmt.Sprintf("(%s+3)", a2)), nil
}

func updateA4(ctx context.Context, deps dataflow.Resolver) (cty.Value, error) {
	a1, err := operand(ctx, deps, "a1")
	if err != nil {
		return cty.NilVal, err
	}
	a2, err := operand(ctx, deps, "a2")
	if err != nil {
		return cty.NilVal, err
	}
	return cty.StringVal(fmt.Sprintf("(%s*%s+4)", a1, a2)), nil
}

func updateA5(ctx context.Context, deps dataflow.Resolver) (cty.Value, error) {
	a1, err := operand(ctx, deps, "a1")
	if err != nil {
		return cty.NilVal, err
	}
	a2, err := operand(ctx, deps, "a2")
	if err != nil {
		return cty.NilVal, err
	}
	a3, err := operand(ctx, deps, "a3")
	if err != nil {
		return cty.NilVal, err
	}
	a6, err := operand(ctx, deps, "a6")
	if err != nil {
		return cty.NilVal, err
	}
	return cty.StringVal(fmt.Sprintf("(%s+%s+%s*%s+5)", a1, a2, a3, a6)), nil
}

func updateA7(ctx context.Context, deps dataflow.Resolver) (cty.Value, error) {
	a4, err := operand(ctx, deps, "a4")
	if err != nil {
		return cty.NilVal, err
	}
	a5, err := operand(ctx, deps, "a5")
	if err != nil {
		return cty.NilVal, err
	}
	return cty.StringVal(fmt.Sprintf("(%s*%s+7)", a4, a5)), nil
}

// operand renders a dependency value for embedding into an expression
// string. Numbers render without a decimal point when whole.
func operand(ctx context.Context, deps dataflow.Resolver, name string) (string, error) {
	val, err := deps.Get(ctx, name)
	if err != nil {
		return "", err
	}
	switch val.Type() {
	case cty.String:
		return val.AsString(), nil
	case cty.Number:
		return val.AsBigFloat().Text('f', -1), nil
	default:
		return "", fmt.Errorf("stringcalc: dependency %q has unsupported type %s", name, val.Type().FriendlyName())
	}
}
