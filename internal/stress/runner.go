// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package stress runs multi-producer single-consumer workloads against
// the lnq queues and checks the result for lost, duplicated and
// reordered values.
package stress

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"runtime"
	"slices"
	"sync"
	"time"

	"code.hybscloud.com/atomix"
	"code.hybscloud.com/iox"
	"code.hybscloud.com/lnq"
	"github.com/eapache/queue"
)

// ErrCheckFailed is wrapped by Run when a report has violations or the
// two queues disagree.
var ErrCheckFailed = errors.New("stress: check failed")

// Report is the outcome of one workload on one queue.
type Report struct {
	Queue    string
	Produced int
	Consumed int

	Duplicates      int
	Missing         int
	OutOfRange      int
	OrderViolations int
	TimedOut        bool

	// Dequeue calls that returned ErrWouldBlock before every value arrived
	Empties int
	// MPSC diagnostics; zero for Locked
	Handoffs uint64
	Stalls   uint64

	Elapsed time.Duration
	// Most recent consumed values, oldest first
	Recent []int

	values []int
}

// OK reports whether the run delivered every value exactly once and in
// per-producer order.
func (r Report) OK() bool {
	return !r.TimedOut && r.Duplicates == 0 && r.Missing == 0 &&
		r.OutOfRange == 0 && r.OrderViolations == 0
}

// Run executes the configured workload and returns one report per queue.
// With QueueBoth, Locked runs first and MPSC must deliver the same
// multiset.
func Run(ctx context.Context, cfg Config, log *Logger) ([]Report, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var kinds []string
	switch cfg.Queue {
	case QueueBoth:
		kinds = []string{QueueLocked, QueueMPSC}
	default:
		kinds = []string{cfg.Queue}
	}

	reports := make([]Report, 0, len(kinds))
	var failed []error
	for i, kind := range kinds {
		var q lnq.Queue[int]
		if kind == QueueMPSC {
			q = lnq.NewMPSC[int]()
		} else {
			q = lnq.NewLocked[int]()
		}

		log.Info("stress run", "queue", kind,
			"producers", cfg.Producers, "items", cfg.ItemsPerProducer)
		r := runOne(ctx, kind, q, cfg, uint64(i))
		logReport(log, r)
		if !r.OK() {
			failed = append(failed, fmt.Errorf("%w: %s", ErrCheckFailed, kind))
		}
		reports = append(reports, r)
	}

	if len(reports) == 2 && !sameMultiset(reports[0].values, reports[1].values) {
		log.Error("oracle mismatch", "oracle", reports[0].Queue, "queue", reports[1].Queue)
		failed = append(failed, fmt.Errorf("%w: %s and %s delivered different values",
			ErrCheckFailed, reports[0].Queue, reports[1].Queue))
	}
	return reports, errors.Join(failed...)
}

func runOne(ctx context.Context, kind string, q lnq.Queue[int], cfg Config, seed uint64) Report {
	ctx, cancel := context.WithTimeout(ctx, time.Duration(cfg.Timeout))
	defer cancel()

	total := cfg.Producers * cfg.ItemsPerProducer
	var produced atomix.Int64
	start := time.Now()

	var wg sync.WaitGroup
	for p := range cfg.Producers {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			rng := rand.New(rand.NewPCG(seed, uint64(id)))
			for i := range cfg.ItemsPerProducer {
				v := id*valueStride + i
				q.Enqueue(&v)
				produced.Add(1)
				if cfg.YieldEvery > 0 && rng.IntN(cfg.YieldEvery) == 0 {
					runtime.Gosched()
				}
			}
		}(p)
	}

	r := consume(ctx, q, cfg, total)
	wg.Wait()

	r.Queue = kind
	r.Produced = int(produced.Load())
	r.Elapsed = time.Since(start)
	if m, ok := q.(*lnq.MPSC[int]); ok {
		r.Handoffs = m.Handoffs()
		r.Stalls = m.Stalls()
	}
	return r
}

// consume is the single consumer. It stops after total values or when
// ctx is done, then tallies what was seen.
func consume(ctx context.Context, q lnq.Consumer[int], cfg Config, total int) Report {
	var r Report
	seen := make([]int, total)
	next := make([]int, cfg.Producers)
	history := queue.New()
	r.values = make([]int, 0, total)

	backoff := iox.Backoff{}
	for r.Consumed < total {
		v, err := q.Dequeue()
		if err != nil {
			r.Empties++
			if ctx.Err() != nil {
				r.TimedOut = true
				break
			}
			backoff.Wait()
			continue
		}
		backoff.Reset()
		r.Consumed++
		r.values = append(r.values, v)

		if cfg.History > 0 {
			history.Add(v)
			if history.Length() > cfg.History {
				history.Remove()
			}
		}

		p, i := v/valueStride, v%valueStride
		if v < 0 || p >= cfg.Producers || i >= cfg.ItemsPerProducer {
			r.OutOfRange++
			continue
		}
		if seen[p*cfg.ItemsPerProducer+i]++; seen[p*cfg.ItemsPerProducer+i] > 1 {
			r.Duplicates++
		}
		if i != next[p] {
			r.OrderViolations++
		}
		next[p] = i + 1
	}

	for _, n := range seen {
		if n == 0 {
			r.Missing++
		}
	}
	r.Recent = make([]int, history.Length())
	for i := range r.Recent {
		r.Recent[i] = history.Get(i).(int)
	}
	return r
}

func sameMultiset(a, b []int) bool {
	a, b = slices.Clone(a), slices.Clone(b)
	slices.Sort(a)
	slices.Sort(b)
	return slices.Equal(a, b)
}

func logReport(log *Logger, r Report) {
	attrs := []any{
		"queue", r.Queue,
		"produced", r.Produced,
		"consumed", r.Consumed,
		"empties", r.Empties,
		"handoffs", r.Handoffs,
		"stalls", r.Stalls,
		"elapsed", r.Elapsed,
	}
	if r.OK() {
		log.Info("stress passed", attrs...)
		return
	}
	attrs = append(attrs,
		"duplicates", r.Duplicates,
		"missing", r.Missing,
		"out_of_range", r.OutOfRange,
		"order_violations", r.OrderViolations,
		"timed_out", r.TimedOut,
		"recent", r.Recent,
	)
	log.Error("stress failed", attrs...)
}
