// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package lnq

import (
	"errors"
	"testing"
)

// These tests split Enqueue into reserve (tail exchange) and link so each
// interleaving of the pending-link window can be constructed exactly.

func mustDequeue(t *testing.T, q *MPSC[int], want int) {
	t.Helper()
	got, err := q.Dequeue()
	if err != nil {
		t.Fatalf("Dequeue: %v, want %d", err, want)
	}
	if got != want {
		t.Fatalf("Dequeue: got %d, want %d", got, want)
	}
}

func mustBlock(t *testing.T, q *MPSC[int]) {
	t.Helper()
	if v, err := q.Dequeue(); !errors.Is(err, ErrWouldBlock) {
		t.Fatalf("Dequeue: got (%d, %v), want ErrWouldBlock", v, err)
	}
}

func TestNewNode(t *testing.T) {
	n := newNode(7)
	if n.next.Load() != nil {
		t.Fatal("new node has a forward link")
	}
	if got := n.take(); got != 7 {
		t.Fatalf("take: got %d, want 7", got)
	}
	if n.value != 0 {
		t.Fatalf("take left payload %d in the node", n.value)
	}
}

func TestClassify(t *testing.T) {
	awaited := new(node[int])
	succ := newNode(1)

	tests := []struct {
		next *node[int]
		want linkState
	}{
		{nil, linkEmpty},
		{awaited, linkAwaited},
		{succ, linkLinked},
	}
	for _, tt := range tests {
		if got := classify(tt.next, awaited); got != tt.want {
			t.Errorf("classify(%p): got %v, want %v", tt.next, got, tt.want)
		}
	}
	if s := linkState(9).String(); s != "unknown" {
		t.Errorf("String: got %q, want unknown", s)
	}
}

// TestFirstEnqueuePending covers the empty-to-non-empty transition: tail
// has been exchanged but head is not yet published.
func TestFirstEnqueuePending(t *testing.T) {
	q := NewMPSC[int]()
	a := newNode(1)

	if prev := q.reserve(a); prev != nil {
		t.Fatalf("reserve on new queue: prev=%p, want nil", prev)
	}
	mustBlock(t, q)
	if q.Empty() {
		t.Fatal("Empty: got true with a reserved node")
	}

	q.link(nil, a)
	mustDequeue(t, q, 1)
	if !q.Empty() {
		t.Fatal("Empty: got false after drain")
	}
	if q.Handoffs() != 0 {
		t.Fatalf("Handoffs: got %d, want 0", q.Handoffs())
	}
}

// TestPendingLinkTakenByConsumer covers the consumer reaching a node whose
// successor is reserved but not linked. The consumer takes the node and
// marks the link awaited; the producer then hands off through head.
func TestPendingLinkTakenByConsumer(t *testing.T) {
	q := NewMPSC[int]()
	one := 1
	q.Enqueue(&one)

	b := newNode(2)
	prev := q.reserve(b)
	if prev == nil || prev.value != 1 {
		t.Fatal("reserve: prev is not the first node")
	}

	// Consumer takes node 1 even though b is pending behind it.
	mustDequeue(t, q, 1)
	if got := classify(prev.next.Load(), q.awaited); got != linkAwaited {
		t.Fatalf("link after take: got %v, want awaited", got)
	}

	// Spurious empty: b is owed but not reachable.
	mustBlock(t, q)
	if q.Empty() {
		t.Fatal("Empty: got true inside the pending-link window")
	}
	if q.Stalls() != 1 {
		t.Fatalf("Stalls: got %d, want 1", q.Stalls())
	}

	// Producer finds the awaited mark and publishes b as head.
	q.link(prev, b)
	if q.Handoffs() != 1 {
		t.Fatalf("Handoffs: got %d, want 1", q.Handoffs())
	}
	mustDequeue(t, q, 2)
	mustBlock(t, q)
	if !q.Empty() {
		t.Fatal("Empty: got false after drain")
	}
}

// TestPendingLinkAttachedFirst covers the producer attaching before the
// consumer looks: the ordinary linked path, no handoff.
func TestPendingLinkAttachedFirst(t *testing.T) {
	q := NewMPSC[int]()
	one := 1
	q.Enqueue(&one)

	b := newNode(2)
	prev := q.reserve(b)
	q.link(prev, b)

	mustDequeue(t, q, 1)
	mustDequeue(t, q, 2)
	if q.Handoffs() != 0 {
		t.Fatalf("Handoffs: got %d, want 0", q.Handoffs())
	}
}

// TestPendingChain reserves two nodes behind a taken head and links them
// out of order: the second producer links behind the first before the
// first hands off.
func TestPendingChain(t *testing.T) {
	q := NewMPSC[int]()
	one := 1
	q.Enqueue(&one)

	b := newNode(2)
	prevB := q.reserve(b)
	c := newNode(3)
	prevC := q.reserve(c)
	if prevC != b {
		t.Fatal("reserve: second prev is not b")
	}

	mustDequeue(t, q, 1) // marks node 1 awaited
	q.link(prevC, c)     // c behind b, b not yet reachable
	mustBlock(t, q)

	q.link(prevB, b) // handoff: head = b, chain b -> c
	mustDequeue(t, q, 2)
	mustDequeue(t, q, 3)
	mustBlock(t, q)
	if !q.Empty() {
		t.Fatal("Empty: got false after drain")
	}
}

// TestLastNodeThenEnqueue covers draining to the last node and enqueueing
// afterwards: the taken last node stays as an awaited head until the
// next producer hands off.
func TestLastNodeThenEnqueue(t *testing.T) {
	q := NewMPSC[int]()
	one := 1
	q.Enqueue(&one)
	mustDequeue(t, q, 1)

	if h := q.head.Load(); h == nil || classify(h.next.Load(), q.awaited) != linkAwaited {
		t.Fatal("head after taking the last node is not awaited")
	}
	if q.Stalls() != 0 {
		t.Fatalf("Stalls: got %d, want 0", q.Stalls())
	}

	two := 2
	q.Enqueue(&two)
	mustDequeue(t, q, 2)
	if q.Handoffs() != 1 {
		t.Fatalf("Handoffs: got %d, want 1", q.Handoffs())
	}
}
