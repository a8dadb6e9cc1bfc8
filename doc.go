// Package objtrack provides a thread-safe registry that assigns stable,
// unique numeric identifiers to objects based on object identity, not
// value equality.
//
// # Core Concepts
//
// The package is organized around three cooperating pieces:
//
//   - Registry: owns the identity-to-identifier bijection, a monotonic
//     counter, and the reclamation machinery
//   - Key: a hashable identity token that holds only a weak reference to
//     its object
//   - scope (subpackage): a reentrant "current registry" carried on a
//     context.Context
//
// # Identity, Not Equality
//
// Two distinct objects that are equal by value receive different
// identifiers; repeated registrations of the same object always return
// the same identifier:
//
//	reg := objtrack.New[bytes.Buffer]()
//
//	a, b := new(bytes.Buffer), new(bytes.Buffer)
//	idA, _ := reg.ID(a) // 1
//	idB, _ := reg.ID(b) // 2, even though *a == *b
//	idA2, _ := reg.ID(a) // 1 again
//
// # Reclamation
//
// The registry holds only weak references, so registration never keeps
// an object alive. When a tracked object is garbage collected, the
// runtime queues a notification; the registry drains the queue and
// purges dead entries at the start of every operation. A retired
// identifier is never issued again.
//
// # Explicit Identifiers
//
// SetID re-establishes a known identity-to-identifier binding, for
// example when reconstructing objects from a stream that already carries
// identifiers. SetID never touches the sequential counter, so explicitly
// bound identifiers and sequentially issued ones can collide later if
// callers do not keep the ranges apart; see the SetID documentation.
//
// # Error Handling
//
// The package uses sentinel errors and a structured error type:
//
//	if err := reg.SetID(obj, 5); errors.Is(err, objtrack.ErrConflict) {
//		// identifier 5 is taken by another live object
//	}
//
// # Thread Safety
//
// All Registry methods are safe for concurrent use. Operations
// serialize on a single per-registry mutex; none of them block on
// external resources.
package objtrack
