// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package lnq provides unbounded FIFO queues built from linked nodes.
//
// Two queues implement the same contract with different concurrency
// strategies, so each can be checked against the other:
//
//   - MPSC: lock-free, Multi-Producer Single-Consumer
//   - Locked: one mutex, any number of producers and consumers
//
// # Quick Start
//
//	q := lnq.NewMPSC[Event]()
//	q := lnq.NewLocked[*Request]()
//
// Builder API selects the algorithm from the consumer constraint:
//
//	q := lnq.Build[Event](lnq.New().SingleConsumer())           // → MPSC
//	q := lnq.Build[Event](lnq.New())                            // → Locked
//	q := lnq.Build[Event](lnq.New().SingleConsumer().Locked())  // → Locked
//
// # Basic Usage
//
//	q := lnq.NewMPSC[int]()
//
//	// Enqueue (never blocks, never fails)
//	value := 42
//	q.Enqueue(&value)
//
//	// Dequeue (non-blocking)
//	elem, err := q.Dequeue()
//	if lnq.IsWouldBlock(err) {
//	    // Nothing reachable right now - try again later
//	}
//
// # Event Aggregation (MPSC)
//
//	q := lnq.NewMPSC[Event]()
//
//	for sensor := range slices.Values(sensors) {
//	    go func(s Sensor) {
//	        for ev := range s.Events() {
//	            q.Enqueue(&ev)
//	        }
//	    }(sensor)
//	}
//
//	go func() {
//	    for {
//	        ev, err := lnq.Receive[Event](ctx, q)
//	        if err != nil {
//	            return // ctx done
//	        }
//	        aggregate(ev)
//	    }
//	}()
//
// # The Lock-Free Algorithm
//
// Enqueue allocates a node and exchanges it into tail. The exchange is
// the only point where producers serialize, and it fixes the enqueue
// order. The producer then attaches the node behind the previous tail.
// Between the two steps the node is reachable from tail but not from
// head.
//
// Dequeue takes the head node. If the node already has a successor, head
// advances to it. If not, the consumer swaps an awaited marker into the
// node's link and still returns the node. A producer whose attach finds
// the marker publishes its node as head instead (handoff). The marker is
// a private node per queue, so it never collides with a real link.
//
// # Spurious Empty
//
// MPSC.Dequeue makes one attempt and never waits. While a handoff is in
// flight it returns [ErrWouldBlock] although an element is on its way.
// Callers that need the element should poll:
//
//	// Retry loop with backoff
//	backoff := iox.Backoff{}
//	for {
//	    elem, err := q.Dequeue()
//	    if err == nil {
//	        backoff.Reset()
//	        process(elem)
//	        continue
//	    }
//	    backoff.Wait()
//	}
//
// [Receive] packages this loop with a short spin phase and context
// cancellation. Once producers are quiescent, [MPSC.Empty] is exact.
//
// # Thread Safety
//
//   - MPSC: Multiple producer goroutines, one consumer goroutine
//   - Locked: Multiple producer and consumer goroutines
//
// Calling MPSC.Dequeue from two goroutines at once is undefined behavior
// and is not detected.
//
// # Memory
//
// Every element costs one node. Nodes are never pooled or reused, so a
// stale compare-and-swap can never match a recycled node (no ABA). A node
// becomes garbage once the consumer has moved head past it. Reclamation
// is left to the garbage collector and stays out of the enqueue and
// dequeue paths.
//
// # Poisoning
//
// A panic inside a Locked critical section (for example Enqueue(nil))
// leaves the queue poisoned. Every later call panics with [ErrPoisoned].
//
// # Dependencies
//
// This package uses [code.hybscloud.com/iox] for semantic errors and
// backoff, [code.hybscloud.com/atomix] for node links, flags and counters with
// explicit memory ordering, and [code.hybscloud.com/spin] for CPU pause
// instructions.
package lnq
