package scope

import (
	"context"
	"errors"

	"github.com/objtrack/objtrack"
)

// ErrNoScope indicates that no registry is in scope on the context.
var ErrNoScope = errors.New("no registry in scope")

// registryKey is the context key for the current registry. The generic
// parameter makes registries for different object types independent of
// each other on the same context.
type registryKey[T any] struct{}

// Run executes fn with a current registry in scope.
//
// When ctx does not yet carry a registry for T, Run creates one with
// opts and installs it for the duration of fn. When it does, Run is
// reentrant: fn observes and shares the outer registry, opts are
// ignored, and no second registry is created.
func Run[T any](ctx context.Context, fn func(context.Context) error, opts ...objtrack.Option) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if _, ok := lookup[T](ctx); ok {
		return fn(ctx)
	}
	return fn(With(ctx, objtrack.New[T](opts...)))
}

// With returns a copy of ctx carrying reg as the current registry.
// It is the explicit counterpart of Run for callers that manage the
// registry's lifetime themselves.
func With[T any](ctx context.Context, reg *objtrack.Registry[T]) context.Context {
	return context.WithValue(ctx, registryKey[T]{}, reg)
}

// Current returns the registry in scope on ctx. It fails with
// KindOutOfScope when ctx is not derived from a Run or With call for T.
func Current[T any](ctx context.Context) (*objtrack.Registry[T], error) {
	if reg, ok := lookup[T](ctx); ok {
		return reg, nil
	}
	return nil, objtrack.NewOutOfScopeError("scope.Current", ErrNoScope)
}

func lookup[T any](ctx context.Context) (*objtrack.Registry[T], bool) {
	if ctx == nil {
		return nil, false
	}
	reg, ok := ctx.Value(registryKey[T]{}).(*objtrack.Registry[T])
	return reg, ok
}
