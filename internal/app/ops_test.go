package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

func TestParseOperation(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		cases := []struct {
			in   string
			want Operation
		}{
			{"get:a7", Operation{Kind: OpGet, Attribute: "a7"}},
			{"set:a6=4", Operation{Kind: OpSet, Attribute: "a6", RawValue: "4"}},
			{`set:name="hello"`, Operation{Kind: OpSet, Attribute: "name", RawValue: `"hello"`}},
		}
		for _, tc := range cases {
			op, err := ParseOperation(tc.in)
			require.NoError(t, err, tc.in)
			assert.Equal(t, tc.want, op)
		}
	})

	t.Run("invalid", func(t *testing.T) {
		for _, in := range []string{
			"get:",
			"set:",
			"set:a6",
			"set:=4",
			"set:a6=",
			"delete:a6",
			"a7",
		} {
			_, err := ParseOperation(in)
			assert.Error(t, err, in)
		}
	})
}

func TestParseValue(t *testing.T) {
	val, err := parseValue("42")
	require.NoError(t, err)
	assert.True(t, val.RawEquals(cty.NumberIntVal(42)))

	val, err = parseValue(`"hello"`)
	require.NoError(t, err)
	assert.True(t, val.RawEquals(cty.StringVal("hello")))

	val, err = parseValue("true")
	require.NoError(t, err)
	assert.True(t, val.RawEquals(cty.True))

	_, err = parseValue("][")
	assert.Error(t, err)
}

func TestFormatValue(t *testing.T) {
	assert.Equal(t, "<unset>", formatValue(cty.NilVal))
	assert.Equal(t, "hello", formatValue(cty.StringVal("hello")))
	assert.Equal(t, "322", formatValue(cty.NumberIntVal(322)))
	assert.Equal(t, "2.5", formatValue(cty.NumberFloatVal(2.5)))
	assert.Equal(t, "true", formatValue(cty.True))
	assert.Equal(t, "false", formatValue(cty.False))
}
