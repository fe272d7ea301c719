package hcl

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/vk/attrflow/internal/config"
	"github.com/vk/attrflow/internal/ctxlog"
	"github.com/vk/attrflow/internal/schema"
)

// Loader reads .hcl flow files and produces the declaration model.
type Loader struct {
	parser *hclparse.Parser
}

// NewLoader returns a Loader backed by a fresh HCL parser.
func NewLoader() *Loader {
	return &Loader{parser: hclparse.NewParser()}
}

// Load implements config.Loader. Each path may be a single .hcl file or a
// directory searched recursively; files parse in sorted path order so the
// resulting declaration order is deterministic.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)

	files, err := collectFlowFiles(paths)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no .hcl flow files found under %s", strings.Join(paths, ", "))
	}
	logger.Debug("flow files discovered", "count", len(files))

	model := &config.Model{}
	declared := make(map[string]hcl.Range)
	var diags hcl.Diagnostics

	for _, path := range files {
		file, parseDiags := l.parser.ParseHCLFile(path)
		diags = append(diags, parseDiags...)
		if parseDiags.HasErrors() {
			continue
		}

		var flow schema.FlowConfig
		diags = append(diags, gohcl.DecodeBody(file.Body, nil, &flow)...)

		for _, block := range flow.Attributes {
			attr, attrDiags := translateAttribute(block)
			diags = append(diags, attrDiags...)
			if attrDiags.HasErrors() {
				continue
			}
			if prev, dup := declared[attr.Name]; dup {
				diags = append(diags, &hcl.Diagnostic{
					Severity: hcl.DiagError,
					Summary:  "Duplicate attribute declaration",
					Detail:   fmt.Sprintf("Attribute %q was already declared at %s.", attr.Name, prev),
					Subject:  &attr.DeclRange,
				})
				continue
			}
			declared[attr.Name] = attr.DeclRange
			model.Attributes = append(model.Attributes, attr)
		}
	}

	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to load flow declarations: %w", diags)
	}
	logger.Debug("flow declarations loaded", "attributes", len(model.Attributes))
	return model, nil
}

// collectFlowFiles expands the given paths into a sorted, deduplicated list
// of .hcl files. Directories are walked recursively; a plain file is taken
// as-is regardless of extension so single-file runs can use any name.
func collectFlowFiles(paths []string) ([]string, error) {
	seen := make(map[string]struct{})
	var files []string

	add := func(path string) {
		if _, ok := seen[path]; ok {
			return
		}
		seen[path] = struct{}{}
		files = append(files, path)
	}

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("flow path %s: %w", path, err)
		}
		if !info.IsDir() {
			add(path)
			continue
		}
		walkErr := filepath.WalkDir(path, func(entry string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && strings.HasSuffix(d.Name(), ".hcl") {
				add(entry)
			}
			return nil
		})
		if walkErr != nil {
			return nil, fmt.Errorf("walking flow path %s: %w", path, walkErr)
		}
	}

	sort.Strings(files)
	return files, nil
}
