package dataflow

import (
	"context"
	"fmt"
	"time"

	"github.com/vk/attrflow/internal/ctxlog"
	"github.com/zclconf/go-cty/cty"
)

// Instance is the per-object state for one Type: the current cached value
// and dirty flag of every declared attribute.
//
// An Instance assumes a single logical thread of control; it performs no
// locking. Callers that share one instance across goroutines must serialize
// whole Get/Set calls externally. The Type behind it may be shared freely.
type Instance struct {
	typ    *Type
	values map[string]cty.Value
	dirty  map[string]bool
	hooks  Hooks
}

// InstanceOption configures instance creation.
type InstanceOption func(*Instance)

// WithHooks attaches engine callbacks to the instance.
func WithHooks(h Hooks) InstanceOption {
	return func(in *Instance) {
		in.hooks = in.hooks.Merge(h)
	}
}

// NewInstance allocates fresh per-instance state. Independent attributes
// start clean with their declared initial value; determinant attributes
// start unset and dirty. Nothing is computed here.
func (t *Type) NewInstance(opts ...InstanceOption) *Instance {
	in := &Instance{
		typ:    t,
		values: make(map[string]cty.Value, len(t.names)),
		dirty:  make(map[string]bool, len(t.names)),
	}
	for _, name := range t.names {
		spec := t.specs[name]
		if spec.Kind == Independent {
			in.values[name] = spec.Initial
			in.dirty[name] = false
		} else {
			in.values[name] = cty.NilVal
			in.dirty[name] = true
		}
	}
	for _, opt := range opts {
		opt(in)
	}
	return in
}

// Type returns the shared type metadata this instance was created from.
func (in *Instance) Type() *Type {
	return in.typ
}

// Dirty reports whether the attribute's cached value is stale.
func (in *Instance) Dirty(name string) (bool, error) {
	if _, ok := in.typ.specs[name]; !ok {
		return false, fmt.Errorf("%w: %q", ErrUnknownAttribute, name)
	}
	return in.dirty[name], nil
}

// Set assigns a new value to an attribute and marks every transitive
// dependent dirty. No recomputation happens during this call; dependents are
// refreshed lazily on their next Get.
//
// Setting a determinant attribute is permitted: it pins the value, clearing
// the attribute's own dirty flag, and propagates dirtiness to its dependents
// exactly as an independent assignment would. The pin holds until one of the
// attribute's own dependencies changes and marks it dirty again.
func (in *Instance) Set(ctx context.Context, name string, value cty.Value) error {
	spec, ok := in.typ.specs[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownAttribute, name)
	}
	ctxlog.FromContext(ctx).Debug("attribute assigned", "attribute", name, "kind", spec.Kind.String())

	in.values[name] = value
	in.dirty[name] = false
	in.invoke(ctx, in.hooks.OnSet, Event{Attribute: name, Kind: spec.Kind, Value: value})

	in.invalidateDependents(ctx, name)
	return nil
}

// invalidateDependents walks reverse edges breadth-first from the changed
// attribute, flagging everything reachable. Re-flagging an already dirty
// attribute is idempotent, so the walk does not cut off early; visited
// tracking alone bounds the work.
func (in *Instance) invalidateDependents(ctx context.Context, name string) {
	visited := map[string]bool{name: true}
	queue := append([]string(nil), in.typ.reverse[name]...)

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		if visited[current] {
			continue
		}
		visited[current] = true

		in.dirty[current] = true
		spec := in.typ.specs[current]
		in.invoke(ctx, in.hooks.OnInvalidate, Event{Attribute: current, Kind: spec.Kind})
		queue = append(queue, in.typ.reverse[current]...)
	}
}

// Get returns a value consistent with the current values of all of the
// attribute's transitive dependencies, recomputing stale determinants on the
// way. Recursion bottoms out at clean attributes, so each attribute's
// updater runs at most once per invalidation.
func (in *Instance) Get(ctx context.Context, name string) (cty.Value, error) {
	spec, ok := in.typ.specs[name]
	if !ok {
		return cty.NilVal, fmt.Errorf("%w: %q", ErrUnknownAttribute, name)
	}

	if !in.dirty[name] {
		in.invoke(ctx, in.hooks.OnCacheHit, Event{Attribute: name, Kind: spec.Kind, Value: in.values[name]})
		return in.values[name], nil
	}

	// Independent attributes only change through Set, which clears the flag.
	if spec.Kind == Independent {
		return cty.NilVal, fmt.Errorf("%w: independent attribute %q is dirty", ErrInvariantViolation, name)
	}

	logger := ctxlog.FromContext(ctx)
	logger.Debug("recomputing attribute", "attribute", name, "dependencies", spec.Dependencies)

	for _, dep := range spec.Dependencies {
		if _, err := in.Get(ctx, dep); err != nil {
			return cty.NilVal, err
		}
	}

	started := time.Now()
	value, err := spec.Update(ctx, &boundResolver{instance: in, spec: spec})
	elapsed := time.Since(started)
	if err != nil {
		// The attribute stays dirty; a failed recompute must never be
		// cached as fresh.
		uerr := &UpdaterError{Attribute: name, Err: err}
		in.invoke(ctx, in.hooks.OnRecompute, Event{Attribute: name, Kind: spec.Kind, Duration: elapsed, Err: uerr})
		return cty.NilVal, uerr
	}
	if value == cty.NilVal {
		return cty.NilVal, fmt.Errorf("%w: updater for %q returned no value", ErrInvariantViolation, name)
	}

	in.values[name] = value
	in.dirty[name] = false
	in.invoke(ctx, in.hooks.OnRecompute, Event{Attribute: name, Kind: spec.Kind, Value: value, Duration: elapsed})
	logger.Debug("attribute recomputed", "attribute", name, "duration", elapsed)
	return value, nil
}

func (in *Instance) invoke(ctx context.Context, hook HookFunc, event Event) {
	if hook != nil {
		hook(ctx, event)
	}
}

// boundResolver restricts an updater to the dependencies its attribute
// declared. Dependencies are resolved before the updater runs, so these
// reads are cache hits in the normal flow.
type boundResolver struct {
	instance *Instance
	spec     *AttributeSpec
}

func (r *boundResolver) Get(ctx context.Context, name string) (cty.Value, error) {
	declared := false
	for _, dep := range r.spec.Dependencies {
		if dep == name {
			declared = true
			break
		}
	}
	if !declared {
		return cty.NilVal, fmt.Errorf("%w: %q reads %q", ErrNotDependency, r.spec.Name, name)
	}
	return r.instance.Get(ctx, name)
}
