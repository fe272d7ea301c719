package hcl

import (
	"fmt"
	"sort"

	"github.com/hashicorp/hcl/v2"

	"github.com/vk/attrflow/internal/config"
	"github.com/vk/attrflow/internal/schema"
)

// translateAttribute converts a decoded attribute block into the agnostic
// declaration model, classifying it as independent or determinant and
// resolving its dependency list.
func translateAttribute(block *schema.Attribute) (*config.Attribute, hcl.Diagnostics) {
	var diags hcl.Diagnostics

	declRange := declarationRange(block)
	attr := &config.Attribute{
		Name:      block.Name,
		DeclRange: declRange,
	}

	forms := 0
	if block.Value != nil {
		forms++
	}
	if block.Update != nil {
		forms++
	}
	if block.UpdateFunc != "" {
		forms++
	}
	if forms != 1 {
		diags = append(diags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Invalid attribute declaration",
			Detail:   fmt.Sprintf("Attribute %q must set exactly one of \"value\", \"update\", or \"update_func\".", block.Name),
			Subject:  &declRange,
		})
		return attr, diags
	}

	switch {
	case block.Value != nil:
		if len(block.Inputs) > 0 {
			diags = append(diags, &hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Invalid attribute declaration",
				Detail:   fmt.Sprintf("Independent attribute %q must not declare inputs.", block.Name),
				Subject:  &declRange,
			})
			return attr, diags
		}
		if refs := referencedNames(block.Value); len(refs) > 0 {
			diags = append(diags, &hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Invalid initial value",
				Detail:   fmt.Sprintf("The initial value of %q must be a constant expression, but it references %v.", block.Name, refs),
				Subject:  &declRange,
			})
			return attr, diags
		}
		val, valDiags := block.Value.Value(nil)
		diags = append(diags, valDiags...)
		if valDiags.HasErrors() {
			return attr, diags
		}
		attr.Initial = val

	case block.Update != nil:
		refs := referencedNames(block.Update)
		if len(block.Inputs) == 0 {
			if len(refs) == 0 {
				diags = append(diags, &hcl.Diagnostic{
					Severity: hcl.DiagError,
					Summary:  "Invalid update expression",
					Detail:   fmt.Sprintf("The update expression of %q references no attributes, so its dependencies cannot be inferred.", block.Name),
					Subject:  &declRange,
				})
				return attr, diags
			}
			attr.Inputs = refs
		} else {
			declared := make(map[string]struct{}, len(block.Inputs))
			for _, name := range block.Inputs {
				declared[name] = struct{}{}
			}
			for _, ref := range refs {
				if _, ok := declared[ref]; !ok {
					diags = append(diags, &hcl.Diagnostic{
						Severity: hcl.DiagError,
						Summary:  "Undeclared dependency",
						Detail:   fmt.Sprintf("The update expression of %q references %q, which is not listed in inputs.", block.Name, ref),
						Subject:  &declRange,
					})
				}
			}
			if diags.HasErrors() {
				return attr, diags
			}
			attr.Inputs = append([]string(nil), block.Inputs...)
		}
		attr.Update = block.Update

	default:
		if len(block.Inputs) == 0 {
			diags = append(diags, &hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Invalid attribute declaration",
				Detail:   fmt.Sprintf("Attribute %q uses update_func and must declare its inputs explicitly.", block.Name),
				Subject:  &declRange,
			})
			return attr, diags
		}
		attr.Inputs = append([]string(nil), block.Inputs...)
		attr.UpdateFunc = block.UpdateFunc
	}

	return attr, diags
}

// referencedNames returns the sorted, deduplicated root names of every
// variable the expression reads.
func referencedNames(expr hcl.Expression) []string {
	unique := make(map[string]struct{})
	for _, traversal := range expr.Variables() {
		unique[traversal.RootName()] = struct{}{}
	}
	names := make([]string, 0, len(unique))
	for name := range unique {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func declarationRange(block *schema.Attribute) hcl.Range {
	switch {
	case block.Value != nil:
		return block.Value.Range()
	case block.Update != nil:
		return block.Update.Range()
	default:
		return hcl.Range{}
	}
}
