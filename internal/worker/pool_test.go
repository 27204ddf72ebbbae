package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type errResult struct{ err error }

func (r errResult) GetError() error { return r.err }

// funcJob adapts a function to Job
type funcJob func(ctx context.Context) error

func (f funcJob) Execute(ctx context.Context) Result {
	return errResult{err: f(ctx)}
}

func sleepJob(d time.Duration) funcJob {
	return func(ctx context.Context) error {
		select {
		case <-time.After(d):
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// collect reads Results until the pool closes it
func collect(p *Pool) <-chan []Result {
	out := make(chan []Result, 1)
	go func() {
		var results []Result
		for r := range p.Results() {
			results = append(results, r)
		}
		out <- results
	}()
	return out
}

func TestNewPool_WorkerFloor(t *testing.T) {
	assert.Equal(t, 5, NewPool(context.Background(), 5).workers)
	assert.Equal(t, 1, NewPool(context.Background(), 0).workers)
	assert.Equal(t, 1, NewPool(context.Background(), -3).workers)
}

func TestPool_Wait(t *testing.T) {
	pool := NewPool(context.Background(), 3)
	pool.Start()

	var executed atomic.Int32
	for i := 0; i < 6; i++ {
		require.True(t, pool.Submit(funcJob(func(context.Context) error {
			executed.Add(1)
			return nil
		})))
	}

	results := pool.Wait()
	assert.Len(t, results, 6)
	assert.Equal(t, int32(6), executed.Load())
}

func TestPool_BoundedConcurrency(t *testing.T) {
	const workers, jobs = 4, 40

	pool := NewPool(context.Background(), workers)
	pool.Start()
	done := collect(pool)

	var current, peak atomic.Int32
	for i := 0; i < jobs; i++ {
		pool.Submit(funcJob(func(context.Context) error {
			n := current.Add(1)
			for {
				old := peak.Load()
				if n <= old || peak.CompareAndSwap(old, n) {
					break
				}
			}
			time.Sleep(5 * time.Millisecond)
			current.Add(-1)
			return nil
		}))
	}
	pool.Close()

	results := <-done
	assert.Len(t, results, jobs)
	assert.LessOrEqual(t, peak.Load(), int32(workers))
	assert.Positive(t, peak.Load())
}

func TestPool_ErrorsAreResults(t *testing.T) {
	boom := errors.New("boom")

	pool := NewPool(context.Background(), 2)
	pool.Start()
	pool.Submit(funcJob(func(context.Context) error { return nil }))
	pool.Submit(funcJob(func(context.Context) error { return boom }))
	pool.Submit(funcJob(func(context.Context) error { return boom }))

	failed := 0
	for _, r := range pool.Wait() {
		if errors.Is(r.GetError(), boom) {
			failed++
		}
	}
	assert.Equal(t, 2, failed)
}

func TestPool_Shutdown(t *testing.T) {
	pool := NewPool(context.Background(), 2)
	pool.Start()
	done := collect(pool)

	pool.Submit(sleepJob(time.Second))
	pool.Submit(sleepJob(time.Second))

	start := time.Now()
	pool.Shutdown()
	<-done

	assert.Less(t, time.Since(start), 500*time.Millisecond, "shutdown cancels in-flight jobs")
	assert.False(t, pool.Submit(sleepJob(0)), "submit after shutdown is refused")
}

func TestPool_ParentCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	pool := NewPool(ctx, 1)
	pool.Start()

	started := make(chan struct{})
	var jobErr atomic.Value
	pool.Submit(funcJob(func(ctx context.Context) error {
		close(started)
		<-ctx.Done()
		jobErr.Store(ctx.Err())
		return ctx.Err()
	}))

	<-started
	cancel()

	assert.Eventually(t, func() bool { return jobErr.Load() != nil }, time.Second, 5*time.Millisecond)
	assert.False(t, pool.Submit(sleepJob(0)))
	pool.Shutdown()
}
