package dataflow

import (
	"context"
	"time"

	"github.com/zclconf/go-cty/cty"
)

// Event describes one engine action on a single attribute. Duration is only
// meaningful for recompute events; Err is only set when a recompute failed.
type Event struct {
	Attribute string
	Kind      Kind
	Value     cty.Value
	Duration  time.Duration
	Err       error
}

// HookFunc is invoked synchronously for engine notifications.
type HookFunc func(context.Context, Event)

// Hooks aggregates optional engine callbacks. The zero value is valid and
// disables all notifications.
type Hooks struct {
	// OnSet fires after a value is assigned through the set protocol.
	OnSet HookFunc
	// OnInvalidate fires for every attribute marked dirty during propagation.
	OnInvalidate HookFunc
	// OnCacheHit fires when a get returns a cached value without recomputing.
	OnCacheHit HookFunc
	// OnRecompute fires after an updater ran, successfully or not.
	OnRecompute HookFunc
}

// Merge combines two hook sets, running the receiver's callbacks first.
func (h Hooks) Merge(other Hooks) Hooks {
	return Hooks{
		OnSet:        chainHooks(h.OnSet, other.OnSet),
		OnInvalidate: chainHooks(h.OnInvalidate, other.OnInvalidate),
		OnCacheHit:   chainHooks(h.OnCacheHit, other.OnCacheHit),
		OnRecompute:  chainHooks(h.OnRecompute, other.OnRecompute),
	}
}

func chainHooks(first, second HookFunc) HookFunc {
	switch {
	case first == nil:
		return second
	case second == nil:
		return first
	default:
		return func(ctx context.Context, event Event) {
			first(ctx, event)
			second(ctx, event)
		}
	}
}
