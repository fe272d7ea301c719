// Package config defines the format-agnostic declaration model produced by a
// configuration loader and consumed by the builder. It keeps update rules as
// unevaluated expressions; evaluation strategy belongs to the builder.
package config
