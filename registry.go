package objtrack

import (
	"context"
	"log/slog"
	"runtime"
	"sync"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// instrumentationName is the scope name used for OpenTelemetry instruments.
const instrumentationName = "github.com/objtrack/objtrack"

// Registry assigns stable, unique numeric identifiers to objects based on
// object identity. Identifiers start at 1 and are never reused; 0 means
// "not registered".
//
// The registry holds only weak references to the objects it tracks, so a
// registered object remains eligible for garbage collection. Once an
// object has been reclaimed, its entry is purged during the next flush
// and its identifier is retired permanently.
//
// All methods are safe for concurrent use. Every operation serializes on
// a single per-registry mutex and drains pending reclamation
// notifications before touching the maps, so callers never observe a
// stale entry.
type Registry[T any] struct {
	name     string
	instance string
	logger   *slog.Logger

	mu      sync.Mutex
	forward map[Key[T]]uint64
	reverse map[uint64]Key[T]
	next    uint64

	// pending collects identity tokens whose objects have been reclaimed.
	// Runtime cleanups append to it without holding mu; flushLocked
	// drains it under mu.
	pendingMu sync.Mutex
	pending   []Key[T]

	issued metric.Int64Counter
	purged metric.Int64Counter
	attrs  metric.MeasurementOption
}

// New creates an empty registry. The identifier sequence starts at 1.
func New[T any](opts ...Option) *Registry[T] {
	cfg := newOptions(opts...)

	r := &Registry[T]{
		name:     cfg.name,
		instance: newInstanceID(),
		logger:   cfg.logger,
		forward:  make(map[Key[T]]uint64, cfg.capacity),
		reverse:  make(map[uint64]Key[T], cfg.capacity),
		next:     1,
	}

	meter := cfg.meterProvider.Meter(instrumentationName)
	r.issued, _ = meter.Int64Counter("objtrack.ids.issued",
		metric.WithDescription("Identifiers allocated by first-time registrations."),
		metric.WithUnit("1"))
	r.purged, _ = meter.Int64Counter("objtrack.entries.purged",
		metric.WithDescription("Registry entries removed after their object was reclaimed."),
		metric.WithUnit("1"))
	r.attrs = metric.WithAttributes(
		attribute.String("registry.name", r.name),
		attribute.String("registry.instance", r.instance),
	)

	return r
}

// Name returns the configured registry name.
func (r *Registry[T]) Name() string {
	return r.name
}

// Instance returns the unique identifier of this registry instance.
// It distinguishes concurrently running registries in logs and metrics.
func (r *Registry[T]) Instance() string {
	return r.instance
}

// String implements fmt.Stringer.
func (r *Registry[T]) String() string {
	return r.name + "/" + r.instance
}

// ID returns the identifier for obj, allocating the next sequential
// identifier when obj has not been registered before. Registering an
// object does not prevent it from being garbage collected.
//
// ID fails with KindInvalidArgument when obj is nil and with
// KindExhausted when the identifier counter has wrapped; in the latter
// case existing bindings remain valid.
func (r *Registry[T]) ID(obj *T) (uint64, error) {
	const op = "Registry.ID"

	if obj == nil {
		return 0, NewInvalidArgumentError(op, ErrNilObject)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.flushLocked()

	key := KeyOf(obj)
	if id, ok := r.forward[key]; ok {
		return id, nil
	}

	// next wraps to 0 after the final identifier has been issued.
	if r.next == 0 {
		return 0, NewExhaustedError(op, ErrExhausted)
	}

	id := r.next
	r.next++
	r.bindLocked(key, id)
	r.trackLocked(obj, key)

	r.issued.Add(context.Background(), 1, r.attrs)
	if r.logger != nil {
		r.logger.Debug("identifier issued",
			"registry", r.name,
			"instance", r.instance,
			"id", id)
	}

	return id, nil
}

// NextID returns the identifier the next first-time ID call would
// allocate, without allocating it and without flushing. It returns 0
// when the identifier space is exhausted.
func (r *Registry[T]) NextID() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.next
}

// CheckID returns the identifier for obj if it is registered, or 0
// otherwise. Unlike ID, it never allocates and never registers obj for
// reclamation tracking.
func (r *Registry[T]) CheckID(obj *T) (uint64, error) {
	const op = "Registry.CheckID"

	if obj == nil {
		return 0, NewInvalidArgumentError(op, ErrNilObject)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.flushLocked()

	return r.forward[KeyOf(obj)], nil
}

// SetID binds obj to an explicit identifier, typically one recovered from
// a stream that already carries identifiers. Binding an identifier the
// sequential counter has not reached yet is allowed.
//
// SetID is a no-op when obj is already bound to id, and fails with
// KindConflict when id is bound to a different still-live object. It
// never consults or advances the sequential counter: callers mixing
// explicit identifiers with sequentially issued ones are responsible for
// keeping the two ranges apart.
func (r *Registry[T]) SetID(obj *T, id uint64) error {
	const op = "Registry.SetID"

	if obj == nil {
		return NewInvalidArgumentError(op, ErrNilObject)
	}
	if id == 0 {
		return NewInvalidArgumentError(op, ErrZeroID)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.flushLocked()

	key := KeyOf(obj)

	if existing, ok := r.reverse[id]; ok {
		if existing == key {
			return nil
		}
		if existing.Alive() {
			return NewConflictError(op, ErrConflict).WithContext(map[string]any{
				"id":       id,
				"registry": r.String(),
			})
		}
		// The previous holder is dead but its reclamation notification
		// has not been delivered yet; retire it now.
		delete(r.forward, existing)
	}

	_, tracked := r.forward[key]
	if tracked {
		// Rebinding an already registered object: drop the old reverse
		// entry so the maps stay inverse views of each other.
		delete(r.reverse, r.forward[key])
	}

	r.bindLocked(key, id)
	if !tracked {
		r.trackLocked(obj, key)
	}

	if r.logger != nil {
		r.logger.Debug("identifier bound",
			"registry", r.name,
			"instance", r.instance,
			"id", id)
	}

	return nil
}

// Object resolves an identifier back to its object. The second return
// value is false when the identifier was never issued or when the bound
// object has already been reclaimed.
func (r *Registry[T]) Object(id uint64) (*T, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.flushLocked()

	key, ok := r.reverse[id]
	if !ok {
		return nil, false
	}

	// The object may have died after the last delivered notification;
	// report it absent rather than returning nil.
	obj := key.Object()
	if obj == nil {
		return nil, false
	}
	return obj, true
}

// Flush drains all pending reclamation notifications and removes the
// corresponding entries from the registry. It is idempotent and safe to
// call at any time; every other operation flushes implicitly first.
func (r *Registry[T]) Flush() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.flushLocked()
}

// Len returns the number of live entries after a flush.
func (r *Registry[T]) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.flushLocked()
	return len(r.forward)
}

// bindLocked installs the (key, id) pair in both maps. Callers hold mu.
func (r *Registry[T]) bindLocked(key Key[T], id uint64) {
	r.forward[key] = id
	r.reverse[id] = key
}

// trackLocked arranges for key to be queued for purging once obj becomes
// unreachable. Callers hold mu.
func (r *Registry[T]) trackLocked(obj *T, key Key[T]) {
	runtime.AddCleanup(obj, r.reclaimed, key)
}

// reclaimed runs on the runtime's cleanup goroutine after a tracked
// object becomes unreachable. It must not take mu: it only parks the
// token for the next flush.
func (r *Registry[T]) reclaimed(key Key[T]) {
	r.pendingMu.Lock()
	r.pending = append(r.pending, key)
	r.pendingMu.Unlock()
}

// flushLocked drains the pending reclamation list and purges dead
// entries from both maps. Callers hold mu.
func (r *Registry[T]) flushLocked() {
	r.pendingMu.Lock()
	dead := r.pending
	r.pending = nil
	r.pendingMu.Unlock()

	if len(dead) == 0 {
		return
	}

	removed := 0
	for _, key := range dead {
		id, ok := r.forward[key]
		if !ok {
			// Already purged, or the identifier was rebound to another
			// object after this one died.
			continue
		}
		delete(r.forward, key)
		delete(r.reverse, id)
		removed++
	}

	if removed > 0 {
		r.purged.Add(context.Background(), int64(removed), r.attrs)
		if r.logger != nil {
			r.logger.Debug("reclaimed entries purged",
				"registry", r.name,
				"instance", r.instance,
				"count", removed)
		}
	}
}
