// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package lnq

import (
	"context"
	"iter"

	"code.hybscloud.com/iox"
	"code.hybscloud.com/spin"
)

// receiveSpins bounds the busy-wait phase of Receive. A pending-link
// window lasts a handful of instructions on the producer side, so most
// spurious empties resolve within it.
const receiveSpins = 64

// Receive dequeues from c, retrying while it reports ErrWouldBlock.
//
// Receive spins briefly, then backs off until an element arrives or ctx
// is done, in which case it returns ctx.Err(). Errors other than
// ErrWouldBlock are returned as is.
//
// Receive calls c.Dequeue, so the consumer constraints of c apply.
func Receive[T any](ctx context.Context, c Consumer[T]) (T, error) {
	sw := spin.Wait{}
	for range receiveSpins {
		elem, err := c.Dequeue()
		if !IsWouldBlock(err) {
			return elem, err
		}
		sw.Once()
	}

	backoff := iox.Backoff{}
	for {
		elem, err := c.Dequeue()
		if !IsWouldBlock(err) {
			return elem, err
		}
		if err := ctx.Err(); err != nil {
			var zero T
			return zero, err
		}
		backoff.Wait()
	}
}

// All returns an iterator that dequeues from c until it reports
// ErrWouldBlock. For MPSC the iterator may stop early under a concurrent
// enqueue; it does not retry.
func All[T any](c Consumer[T]) iter.Seq[T] {
	return func(yield func(T) bool) {
		for {
			elem, err := c.Dequeue()
			if err != nil || !yield(elem) {
				return
			}
		}
	}
}
