// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package lnq_test

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"testing"
	"time"

	"code.hybscloud.com/lnq"
)

func TestReceiveImmediate(t *testing.T) {
	q := lnq.NewMPSC[int]()
	v := 3
	q.Enqueue(&v)

	got, err := lnq.Receive[int](context.Background(), q)
	if err != nil || got != 3 {
		t.Fatalf("Receive: got (%d, %v), want (3, nil)", got, err)
	}
}

func TestReceiveDeadline(t *testing.T) {
	queues := []struct {
		name string
		q    lnq.Consumer[int]
	}{
		{"MPSC", lnq.NewMPSC[int]()},
		{"Locked", lnq.NewLocked[int]()},
	}

	for _, tt := range queues {
		t.Run(tt.name, func(t *testing.T) {
			ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
			defer cancel()

			start := time.Now()
			_, err := lnq.Receive(ctx, tt.q)
			if !errors.Is(err, context.DeadlineExceeded) {
				t.Fatalf("Receive on empty: got %v, want DeadlineExceeded", err)
			}
			if time.Since(start) < 20*time.Millisecond {
				t.Fatal("Receive returned before the deadline")
			}
		})
	}
}

// TestReceiveLateProducer verifies Receive picks up a value enqueued
// after it started polling.
func TestReceiveLateProducer(t *testing.T) {
	q := lnq.NewMPSC[string]()
	go func() {
		time.Sleep(5 * time.Millisecond)
		s := "late"
		q.Enqueue(&s)
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	got, err := lnq.Receive[string](ctx, q)
	if err != nil || got != "late" {
		t.Fatalf("Receive: got (%q, %v), want (late, nil)", got, err)
	}
}

// failingConsumer returns a non-semantic error.
type failingConsumer struct{ err error }

func (c failingConsumer) Dequeue() (int, error) { return 0, c.err }

func TestReceivePropagatesFailure(t *testing.T) {
	boom := errors.New("boom")
	_, err := lnq.Receive[int](context.Background(), failingConsumer{boom})
	if !errors.Is(err, boom) {
		t.Fatalf("Receive: got %v, want boom", err)
	}
}

func TestAll(t *testing.T) {
	for _, q := range []lnq.Queue[int]{lnq.NewMPSC[int](), lnq.NewLocked[int]()} {
		for i := range 5 {
			q.Enqueue(&i)
		}
		got := slices.Collect(lnq.All[int](q))
		if want := []int{0, 1, 2, 3, 4}; !slices.Equal(got, want) {
			t.Fatalf("All: got %v, want %v", got, want)
		}
		if _, err := q.Dequeue(); !lnq.IsWouldBlock(err) {
			t.Fatalf("Dequeue after All: got %v", err)
		}
	}
}

func TestAllEarlyBreak(t *testing.T) {
	q := lnq.NewLocked[int]()
	for i := range 5 {
		q.Enqueue(&i)
	}
	for v := range lnq.All[int](q) {
		if v == 1 {
			break
		}
	}
	got, err := q.Dequeue()
	if err != nil || got != 2 {
		t.Fatalf("Dequeue after break: got (%d, %v), want (2, nil)", got, err)
	}
}

func TestErrorClassification(t *testing.T) {
	if !lnq.IsWouldBlock(lnq.ErrWouldBlock) {
		t.Error("IsWouldBlock(ErrWouldBlock) = false")
	}
	if !lnq.IsWouldBlock(fmt.Errorf("dequeue: %w", lnq.ErrWouldBlock)) {
		t.Error("IsWouldBlock(wrapped ErrWouldBlock) = false")
	}
	if lnq.IsWouldBlock(nil) || lnq.IsWouldBlock(lnq.ErrPoisoned) {
		t.Error("IsWouldBlock: want false for nil and ErrPoisoned")
	}
}
