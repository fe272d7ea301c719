package registry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/attrflow/internal/config"
	"github.com/vk/attrflow/internal/dataflow"
)

func noopUpdater(ctx context.Context, deps dataflow.Resolver) (cty.Value, error) {
	return cty.True, nil
}

func TestRegisterUpdater(t *testing.T) {
	t.Run("lookup returns the registered handler", func(t *testing.T) {
		r := New()
		r.RegisterUpdater("demo.fn", noopUpdater)

		fn, ok := r.Updater("demo.fn")
		require.True(t, ok)
		require.NotNil(t, fn)

		val, err := fn(context.Background(), nil)
		require.NoError(t, err)
		assert.True(t, val.RawEquals(cty.True))
	})

	t.Run("unknown name misses", func(t *testing.T) {
		_, ok := New().Updater("demo.missing")
		assert.False(t, ok)
	})

	t.Run("duplicate registration panics", func(t *testing.T) {
		r := New()
		r.RegisterUpdater("demo.fn", noopUpdater)
		assert.PanicsWithValue(t, `updater with name "demo.fn" already registered`, func() {
			r.RegisterUpdater("demo.fn", noopUpdater)
		})
	})

	t.Run("nil handler panics", func(t *testing.T) {
		assert.Panics(t, func() {
			New().RegisterUpdater("demo.nil", nil)
		})
	})
}

func TestValidate(t *testing.T) {
	model := &config.Model{Attributes: []*config.Attribute{
		{Name: "base", Initial: cty.NumberIntVal(1)},
		{Name: "a", Inputs: []string{"base"}, UpdateFunc: "demo.a"},
		{Name: "b", Inputs: []string{"base"}, UpdateFunc: "demo.b"},
	}}

	t.Run("passes when every handler is registered", func(t *testing.T) {
		r := New()
		r.RegisterUpdater("demo.a", noopUpdater)
		r.RegisterUpdater("demo.b", noopUpdater)
		assert.NoError(t, r.Validate(model))
	})

	t.Run("reports every missing handler at once", func(t *testing.T) {
		err := New().Validate(model)
		require.Error(t, err)
		assert.ErrorContains(t, err, `attribute "a": update_func "demo.a" is not registered`)
		assert.ErrorContains(t, err, `attribute "b": update_func "demo.b" is not registered`)
	})
}
