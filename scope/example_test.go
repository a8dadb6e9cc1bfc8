package scope_test

import (
	"context"
	"fmt"

	"github.com/objtrack/objtrack/scope"
)

func ExampleRun() {
	type record struct{ name string }

	_ = scope.Run[record](context.Background(), func(ctx context.Context) error {
		outer, _ := scope.Current[record](ctx)

		// Nested calls share the outermost registry.
		return scope.Run[record](ctx, func(ctx context.Context) error {
			inner, _ := scope.Current[record](ctx)
			fmt.Println(outer == inner)
			return nil
		})
	})
	// Output: true
}

func ExampleCurrent() {
	type record struct{ name string }

	_, err := scope.Current[record](context.Background())
	fmt.Println(err != nil)
	// Output: true
}
