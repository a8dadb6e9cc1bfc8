package objtrack

import (
	"fmt"
	"weak"
)

// Key is a hashable identity token for a tracked object.
//
// Two Key values compare equal if and only if they were derived from the
// same object instance, regardless of whether the objects are equal by
// value. The token holds only a weak reference, so keeping a Key in a map
// does not prevent its object from being reclaimed, and the token remains
// a valid map key after reclamation.
//
// A key derived from an object before it died still matches its own map
// entries, but no key derived from any live object can ever collide with
// it; dead entries exist only to be purged.
type Key[T any] struct {
	// ref supplies both the identity (weak pointers made from the same
	// object compare equal, even after the object is reclaimed) and the
	// reclaimable handle to the object itself.
	ref weak.Pointer[T]
}

// KeyOf derives the identity token for obj.
//
// Deriving a key does not register obj for reclamation tracking, which
// makes KeyOf suitable for transient lookup probes: probing a map with a
// fresh key leaves no trace when the object is not present.
func KeyOf[T any](obj *T) Key[T] {
	return Key[T]{ref: weak.Make(obj)}
}

// Object resolves the underlying object, or nil once it has been reclaimed.
func (k Key[T]) Object() *T {
	return k.ref.Value()
}

// Alive reports whether the underlying object has not yet been reclaimed.
func (k Key[T]) Alive() bool {
	return k.ref.Value() != nil
}

// String returns a human-oriented representation of the token.
// It is intended for debug output only; use the Key value itself as the
// unique identity.
func (k Key[T]) String() string {
	return fmt.Sprintf("%p", k.ref.Value())
}
