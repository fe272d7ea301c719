// Package hcl implements the HCL-backed declaration loader. It discovers and
// parses flow files, decodes them against the schema, and translates the
// result into the format-agnostic config model, inferring dependencies from
// update expressions where the declaration omits them.
package hcl
