// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package lnq

import (
	"errors"

	"code.hybscloud.com/iox"
)

// ErrWouldBlock indicates the queue has no element to dequeue right now.
//
// Queues in this package are unbounded, so Enqueue never returns it. For
// [MPSC] the result may be spurious while an enqueue is in flight; the
// caller should retry (with backoff or [Receive]) rather than propagate it.
//
// This is an alias for [iox.ErrWouldBlock] for ecosystem consistency.
var ErrWouldBlock = iox.ErrWouldBlock

// ErrPoisoned is the panic value raised by a [Locked] queue whose critical
// section was aborted by an earlier panic. The queue's links may be
// inconsistent and it must not be used again.
var ErrPoisoned = errors.New("lnq: queue poisoned by a panic while locked")

// IsWouldBlock reports whether err is, or wraps, [ErrWouldBlock]. Dequeue
// callers use it to tell "nothing reachable yet" apart from [ErrPoisoned]
// and other real failures.
func IsWouldBlock(err error) bool {
	return iox.IsWouldBlock(err)
}
