// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package lnq

import (
	"fmt"

	"code.hybscloud.com/atomix"
)

// MPSC is an unbounded lock-free multi-producer single-consumer queue
// built from linked nodes.
//
// Producers serialize on a single atomic exchange of tail, then attach the
// new node to the previous tail's forward link. The two steps are not
// atomic together: between them the new node is reachable from tail but
// not yet from head (the pending-link window).
//
// The consumer never waits inside Dequeue. When the head node has no
// successor, the consumer takes it anyway and marks its link awaited. A
// producer that finds the mark cannot link behind the taken node, so it
// publishes its node directly as the new head (handoff).
//
// Consequently Dequeue may return ErrWouldBlock while a push is in flight.
// Treat that result as "possibly empty" and poll again (see [Receive]),
// or use [MPSC.Empty] once producers are quiescent.
//
// Memory: one node (payload + pointer) per element in flight
type MPSC[T any] struct {
	_        pad
	head     atomix.Pointer[node[T]] // Consumer cursor; producers store it only on handoff
	_        pad
	tail     atomix.Pointer[node[T]] // Producers exchange
	_        pad
	awaited  *node[T] // Marker, never linked
	handoffs atomix.Uint64
	stalls   atomix.Uint64
}

// NewMPSC creates an empty lock-free MPSC queue.
func NewMPSC[T any]() *MPSC[T] {
	return &MPSC[T]{awaited: new(node[T])}
}

// Enqueue appends a copy of *elem. It always returns nil.
// Safe for any number of producer goroutines.
func (q *MPSC[T]) Enqueue(elem *T) error {
	n := newNode(*elem)
	q.link(q.reserve(n), n)
	return nil
}

// reserve claims n's position in the enqueue order and returns the
// previous tail. After reserve, n is reachable from tail only.
//
// AcqRel: release publishes n's payload to the next producer that
// exchanges tail, acquire pairs with the previous producer's release.
func (q *MPSC[T]) reserve(n *node[T]) *node[T] {
	return q.tail.SwapAcqRel(n)
}

// link makes n reachable from head, either behind prev or as head itself.
func (q *MPSC[T]) link(prev, n *node[T]) {
	if prev == nil {
		// First enqueue ever: tail is never nil again.
		q.head.StoreRelease(n)
		return
	}
	if prev.next.CompareAndSwapAcqRel(nil, n) {
		return
	}
	// The consumer already took prev and marked its link awaited.
	q.handoffs.AddAcqRel(1)
	q.head.StoreRelease(n)
}

// Dequeue removes and returns the oldest linked element (single consumer only).
//
// Returns (zero-value, ErrWouldBlock) if no element is reachable. This can
// be spurious: an enqueue that has exchanged tail but not yet published its
// node is not visible until it does.
func (q *MPSC[T]) Dequeue() (T, error) {
	var zero T
	h := q.head.LoadAcquire()
	if h == nil {
		return zero, ErrWouldBlock
	}

	next := h.next.LoadAcquire()
	switch classify(next, q.awaited) {
	case linkAwaited:
		// h was already taken; its successor is still being handed off.
		if q.tail.LoadAcquire() != h {
			q.stalls.AddAcqRel(1)
		}
		return zero, ErrWouldBlock
	case linkEmpty:
		// Claim the wait on h's link. A producer that links in between
		// wins the exchange and the successor is advanced to normally.
		if next = h.next.SwapAcqRel(q.awaited); next != nil {
			q.head.StoreRelaxed(next)
		}
	case linkLinked:
		// Only the consumer stores head while h has a real successor.
		q.head.StoreRelaxed(next)
	}
	return h.take(), nil
}

// Empty reports whether no element is reachable and none is pending
// (single consumer only).
//
// Empty returns false while an enqueue is inside the pending-link window,
// so a false result followed by ErrWouldBlock from Dequeue means "retry".
// The result is exact only when no enqueue runs concurrently.
func (q *MPSC[T]) Empty() bool {
	h := q.head.LoadAcquire()
	if h == nil {
		return q.tail.LoadAcquire() == nil
	}
	if classify(h.next.LoadAcquire(), q.awaited) != linkAwaited {
		return false
	}
	return q.tail.LoadAcquire() == h
}

// Handoffs returns how many enqueues published their node through head
// because the consumer had already taken the previous tail.
func (q *MPSC[T]) Handoffs() uint64 {
	return q.handoffs.LoadAcquire()
}

// Stalls returns how many Dequeue calls reported empty while an enqueue
// was inside the pending-link window.
func (q *MPSC[T]) Stalls() uint64 {
	return q.stalls.LoadAcquire()
}

// String renders the head and tail node addresses.
func (q *MPSC[T]) String() string {
	return fmt.Sprintf("head=%p tail=%p", q.head.LoadRelaxed(), q.tail.LoadRelaxed())
}
