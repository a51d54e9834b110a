// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package lnq

import (
	"fmt"
	"sync"

	"code.hybscloud.com/atomix"
)

// Locked is an unbounded FIFO queue guarded by a single mutex.
//
// Every operation is serialized by the lock, so dequeues observe enqueues
// in one global order. Locked is the oracle that MPSC is checked against,
// and the safe choice when more than one goroutine dequeues.
//
// A critical section that does not run to completion (a panic while the
// lock is held) poisons the queue. Every later call panics with
// [ErrPoisoned].
type Locked[T any] struct {
	mu       sync.Mutex
	head     *node[T] // nil iff empty
	tail     *node[T] // nil iff empty
	poisoned atomix.Bool
}

// NewLocked creates an empty mutex-guarded queue.
func NewLocked[T any]() *Locked[T] {
	return &Locked[T]{}
}

// Enqueue appends a copy of *elem. It always returns nil.
// Safe for any number of goroutines.
func (q *Locked[T]) Enqueue(elem *T) error {
	done := false
	q.lock()
	defer q.unlock(&done)

	n := newNode(*elem)
	if q.tail != nil {
		q.tail.next.Store(n)
	}
	q.tail = n
	if q.head == nil {
		q.head = n
	}

	done = true
	return nil
}

// Dequeue removes and returns the oldest element.
// Returns (zero-value, ErrWouldBlock) if the queue is empty.
// Safe for any number of goroutines.
func (q *Locked[T]) Dequeue() (T, error) {
	done := false
	q.lock()
	defer q.unlock(&done)

	h := q.head
	if h == nil {
		done = true
		var zero T
		return zero, ErrWouldBlock
	}
	if h == q.tail {
		q.tail = nil
	}
	q.head = h.next.Load()
	h.next.Store(nil)

	done = true
	return h.take(), nil
}

// Empty reports whether the queue holds no elements.
func (q *Locked[T]) Empty() bool {
	done := false
	q.lock()
	defer q.unlock(&done)

	empty := q.head == nil
	done = true
	return empty
}

// Poisoned reports whether a critical section was aborted.
func (q *Locked[T]) Poisoned() bool {
	return q.poisoned.LoadAcquire()
}

// String renders the head and tail node addresses.
func (q *Locked[T]) String() string {
	done := false
	q.lock()
	defer q.unlock(&done)

	s := fmt.Sprintf("head=%p tail=%p", q.head, q.tail)
	done = true
	return s
}

func (q *Locked[T]) lock() {
	q.mu.Lock()
	if q.poisoned.LoadAcquire() {
		q.mu.Unlock()
		panic(ErrPoisoned)
	}
}

// unlock releases the mutex, poisoning the queue first if the critical
// section exited before setting *done.
func (q *Locked[T]) unlock(done *bool) {
	if !*done {
		q.poisoned.StoreRelease(true)
	}
	q.mu.Unlock()
}
