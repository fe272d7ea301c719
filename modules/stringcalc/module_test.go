package stringcalc

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/attrflow/internal/dataflow"
	"github.com/vk/attrflow/internal/registry"
)

type mapResolver map[string]cty.Value

func (m mapResolver) Get(ctx context.Context, name string) (cty.Value, error) {
	val, ok := m[name]
	if !ok {
		return cty.NilVal, fmt.Errorf("no value for %q", name)
	}
	return val, nil
}

func TestModule_RegistersAllUpdaters(t *testing.T) {
	r := registry.New()
	(&Module{}).Register(r)

	for _, name := range []string{
		"stringcalc.update_a2",
		"stringcalc.update_a3",
		"stringcalc.update_a4",
		"stringcalc.update_a5",
		"stringcalc.update_a7",
	} {
		_, ok := r.Updater(name)
		assert.True(t, ok, name)
	}
}

func TestUpdaters_AssembleExpressions(t *testing.T) {
	ctx := context.Background()
	deps := mapResolver{
		"a1": cty.NumberIntVal(1),
		"a2": cty.StringVal("(1+2)"),
		"a3": cty.StringVal("((1+2)+3)"),
		"a4": cty.StringVal("(1*(1+2)+4)"),
		"a5": cty.StringVal("(1+(1+2)+((1+2)+3)*6+5)"),
		"a6": cty.NumberIntVal(6),
	}

	cases := []struct {
		fn   dataflow.Updater
		want string
	}{
		{updateA2, "(1+2)"},
		{updateA3, "((1+2)+3)"},
		{updateA4, "(1*(1+2)+4)"},
		{updateA5, "(1+(1+2)+((1+2)+3)*6+5)"},
		{updateA7, "((1*(1+2)+4)*(1+(1+2)+((1+2)+3)*6+5)+7)"},
	}
	for _, tc := range cases {
		val, err := tc.fn(ctx, deps)
		require.NoError(t, err)
		assert.Equal(t, tc.want, val.AsString())
	}
}

func TestUpdaters_PropagateResolverErrors(t *testing.T) {
	_, err := updateA2(context.Background(), mapResolver{})
	assert.Error(t, err)
}

func TestOperand_RejectsUnsupportedTypes(t *testing.T) {
	_, err := operand(context.Background(), mapResolver{"a1": cty.True}, "a1")
	require.Error(t, err)
	assert.ErrorContains(t, err, "unsupported type")
}
