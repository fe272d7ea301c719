// Package registry resolves update_func declarations to Go updater
// implementations. Resolution happens once at build time, so a missing or
// misspelled handler name is a construction error, never a runtime lookup
// failure.
package registry

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/vk/attrflow/internal/config"
	"github.com/vk/attrflow/internal/dataflow"
)

// Module is the interface compiled-in updater modules implement to
// contribute their handlers to a registry.
type Module interface {
	Register(r *Registry)
}

// Registry holds the named Go updaters available to flow declarations.
type Registry struct {
	updaters map[string]dataflow.Updater
}

// New creates an empty Registry.
func New() *Registry {
	return &Registry{updaters: make(map[string]dataflow.Updater)}
}

// RegisterUpdater makes a Go updater available under the given name.
// Registering the same name twice is a programmer error and panics.
func (r *Registry) RegisterUpdater(name string, fn dataflow.Updater) {
	if fn == nil {
		panic(fmt.Sprintf("updater %q registered with nil function", name))
	}
	if _, exists := r.updaters[name]; exists {
		panic(fmt.Sprintf("updater with name %q already registered", name))
	}
	slog.Debug("registering updater handler", "name", name)
	r.updaters[name] = fn
}

// Updater looks up a registered updater by name.
func (r *Registry) Updater(name string) (dataflow.Updater, bool) {
	fn, ok := r.updaters[name]
	return fn, ok
}

// Validate checks that every update_func the model references resolves to a
// registered handler, reporting all misses at once.
func (r *Registry) Validate(model *config.Model) error {
	var errs []string
	for _, attr := range model.Attributes {
		if attr.UpdateFunc == "" {
			continue
		}
		if _, ok := r.updaters[attr.UpdateFunc]; !ok {
			errs = append(errs, fmt.Sprintf("attribute %q: update_func %q is not registered", attr.Name, attr.UpdateFunc))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("registry validation failed:\n- %s", strings.Join(errs, "\n- "))
	}
	return nil
}
