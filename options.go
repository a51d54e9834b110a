// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package lnq

// Options configures queue creation and algorithm selection.
type Options struct {
	// Consumer constraint (determines whether lock-free is allowed)
	singleConsumer bool

	// Force the mutex-guarded queue even when lock-free is allowed
	locked bool
}

// Builder creates queues with fluent configuration.
//
// The builder selects the algorithm from the consumer constraint and the
// Locked hint.
//
// Example:
//
//	// Lock-free MPSC (one consumer goroutine)
//	q := lnq.BuildMPSC[Event](lnq.New().SingleConsumer())
//
//	// Mutex-guarded queue, any number of consumers
//	q := lnq.Build[Event](lnq.New())
type Builder struct {
	opts Options
}

// New creates a queue builder.
//
// Example:
//
//	q := lnq.Build[int](lnq.New().SingleConsumer())
func New() *Builder {
	return &Builder{}
}

// SingleConsumer declares that only one goroutine will dequeue.
// Enables the lock-free MPSC algorithm.
func (b *Builder) SingleConsumer() *Builder {
	b.opts.singleConsumer = true
	return b
}

// Locked selects the mutex-guarded queue regardless of constraints.
//
// Trade-off: Dequeue never reports a spurious empty, at the cost of
// blocking under contention.
func (b *Builder) Locked() *Builder {
	b.opts.locked = true
	return b
}

// Build creates a Queue[T] with automatic algorithm selection.
//
// Algorithm selection:
//
//	SingleConsumer, not Locked → MPSC (tail exchange, lock-free)
//	otherwise                  → Locked (single mutex)
//
// For concrete return types, use:
//   - BuildMPSC[T](b) → *MPSC[T]
//   - BuildLocked[T](b) → *Locked[T]
func Build[T any](b *Builder) Queue[T] {
	if b.opts.singleConsumer && !b.opts.locked {
		return NewMPSC[T]()
	}
	return NewLocked[T]()
}

// BuildMPSC creates an MPSC queue with compile-time type safety.
// Panics if builder is not configured with SingleConsumer(), or if Locked() is set.
func BuildMPSC[T any](b *Builder) *MPSC[T] {
	if !b.opts.singleConsumer || b.opts.locked {
		panic("lnq: BuildMPSC requires SingleConsumer() without Locked()")
	}
	return NewMPSC[T]()
}

// BuildLocked creates a mutex-guarded queue. Any configuration is accepted.
func BuildLocked[T any](b *Builder) *Locked[T] {
	return NewLocked[T]()
}

// pad is cache line padding to prevent false sharing.
type pad [64]byte
