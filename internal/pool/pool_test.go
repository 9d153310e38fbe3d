// ABOUTME: Tests for the fixed-size worker pool
// ABOUTME: Verifies all submitted tasks run and Wait blocks until they finish

package pool

import (
	"sync/atomic"
	"testing"
)

func TestWorkerPoolRunsAllTasks(t *testing.T) {
	p := New(16)
	defer p.Close()

	var count int64
	const n = 200

	for range n {
		p.Submit(func() {
			atomic.AddInt64(&count, 1)
		})
	}
	p.Wait()

	if got := atomic.LoadInt64(&count); got != n {
		t.Fatalf("expected %d completed tasks, got %d", n, got)
	}
}

func TestWorkerPoolWaitIsReusable(t *testing.T) {
	p := New(4)
	defer p.Close()

	for round := 0; round < 3; round++ {
		var count int64
		for range 10 {
			p.Submit(func() {
				atomic.AddInt64(&count, 1)
			})
		}
		p.Wait()

		if count != 10 {
			t.Fatalf("round %d: expected 10 completed tasks, got %d", round, count)
		}
	}
}
