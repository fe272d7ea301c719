// Package schema holds the HCL block structures that flow files decode into.
package schema

import (
	"github.com/hashicorp/hcl/v2"
)

// Attribute represents an `attribute` block from a user's flow file.
//
// An independent attribute sets `value`; a determinant sets `update` (an
// expression over other attributes) or `update_func` (the name of a
// registered Go updater). `inputs` declares the dependency names and may be
// omitted for expression updaters, in which case the loader infers it from
// the expression's variable references.
type Attribute struct {
	Name       string         `hcl:"name,label"`
	Value      hcl.Expression `hcl:"value,optional"`
	Inputs     []string       `hcl:"inputs,optional"`
	Update     hcl.Expression `hcl:"update,optional"`
	UpdateFunc string         `hcl:"update_func,optional"`
}

// FlowConfig represents the top-level structure of a flow file.
type FlowConfig struct {
	Attributes []*Attribute `hcl:"attribute,block"`
	Body       hcl.Body     `hcl:",remain"`
}
