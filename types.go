// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package lnq

// Queue is the combined producer-consumer interface for an unbounded
// FIFO queue.
//
// The interface intentionally excludes length: MPSC cannot report one
// without cross-core synchronization on every operation. Track counts in
// application logic when needed.
//
// Example:
//
//	q := lnq.Build[int](lnq.New().SingleConsumer())
//
//	val := 42
//	q.Enqueue(&val)
//
//	elem, err := q.Dequeue()
//	if err == nil {
//	    fmt.Println(elem)
//	}
type Queue[T any] interface {
	Producer[T]
	Consumer[T]
}

// Producer is the interface for enqueueing elements.
//
// The element is passed by pointer to avoid copying large structs at the
// call site. The queue stores a copy of the pointed-to value in a fresh
// node, so the original can be modified after Enqueue returns.
type Producer[T any] interface {
	// Enqueue adds an element to the queue.
	// Unbounded queues always return nil. Panics if elem is nil.
	Enqueue(elem *T) error
}

// Consumer is the interface for dequeueing elements.
//
// The element is returned by value and the node's slot is cleared to
// allow garbage collection of referenced objects.
type Consumer[T any] interface {
	// Dequeue removes and returns the oldest element.
	// Returns (zero-value, ErrWouldBlock) if none is available.
	//
	// Thread safety depends on queue type:
	//   - MPSC: single consumer only
	//   - Locked: multiple consumers safe
	Dequeue() (T, error)
}
