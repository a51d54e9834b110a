// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package stress

import (
	"fmt"
	"io"

	"code.hybscloud.com/lnq"
)

// DemoQueue is a queue that can render its head and tail.
type DemoQueue interface {
	lnq.Queue[int]
	fmt.Stringer
}

// Demo enqueues two rounds of five values, draining after each round and
// printing every value together with the queue state after the dequeue.
func Demo(w io.Writer, q DemoQueue) error {
	for round := range 2 {
		for i := 1; i <= 5; i++ {
			v := 10*round + i
			if err := q.Enqueue(&v); err != nil {
				return err
			}
		}
		for v := range lnq.All[int](q) {
			if _, err := fmt.Fprintf(w, "Got: %d\nState: %s\n", v, q); err != nil {
				return err
			}
		}
	}
	return nil
}
