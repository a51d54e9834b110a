// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package lnq

import "code.hybscloud.com/atomix"

// node carries one payload and a forward link.
//
// A node is allocated by the producer before it becomes visible to the
// queue and is never reused. Once the consumer advances past it the node
// is left to the garbage collector.
type node[T any] struct {
	next  atomix.Pointer[node[T]]
	value T
}

func newNode[T any](v T) *node[T] {
	return &node[T]{value: v}
}

// take returns the payload and clears the slot so the node no longer
// pins whatever the payload references.
func (n *node[T]) take() T {
	v := n.value
	var zero T
	n.value = zero
	return v
}

// linkState classifies a loaded forward link.
type linkState uint8

const (
	linkEmpty   linkState = iota // no known successor
	linkLinked                   // points at a real successor
	linkAwaited                  // consumer is waiting; producer must hand off via head
)

func (s linkState) String() string {
	switch s {
	case linkEmpty:
		return "empty"
	case linkLinked:
		return "linked"
	case linkAwaited:
		return "awaited"
	default:
		return "unknown"
	}
}

// classify maps a loaded link to its state. awaited is the queue's private
// marker node, which is never linked into a chain.
func classify[T any](next, awaited *node[T]) linkState {
	switch next {
	case nil:
		return linkEmpty
	case awaited:
		return linkAwaited
	default:
		return linkLinked
	}
}
