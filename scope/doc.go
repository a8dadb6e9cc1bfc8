// Package scope carries a "current" identity registry on a
// context.Context, so collaborating code can share one registry across a
// call chain without passing it explicitly.
//
// Go has no sanctioned goroutine-local storage, so the scope is the
// explicit-context variant of an ambient thread-local slot: the registry
// rides on the context that already flows through the call chain.
//
// # Usage
//
// A unit of work enters a scope with Run. Nested Run calls on the same
// context are reentrant and reuse the outer registry:
//
//	err := scope.Run[Node](ctx, func(ctx context.Context) error {
//		reg, _ := scope.Current[Node](ctx)
//		// ... nested calls see the same registry via scope.Current
//		return encode(ctx, root)
//	})
//
// Current fails with an out-of-scope error when the context is not
// derived from a Run (or With) call:
//
//	if _, err := scope.Current[Node](ctx); errors.Is(err, scope.ErrNoScope) {
//		// no unit of work is active
//	}
//
// Scopes for different object types are independent: a registry
// installed by Run[A] is invisible to Current[B].
package scope
