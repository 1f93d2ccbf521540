package worker

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/lgbarn/chessrules-go/internal/game"
	"github.com/lgbarn/chessrules-go/internal/output"
	"github.com/lgbarn/chessrules-go/internal/testutil"
)

// noopProcessFunc returns a basic process function that does nothing.
func noopProcessFunc() ProcessFunc {
	return func(_ context.Context, item WorkItem) ProcessResult {
		return ProcessResult{Index: item.Index, Source: item.Source}
	}
}

// countingProcessFunc returns a process function that increments a counter.
func countingProcessFunc(counter *int32) ProcessFunc {
	return func(_ context.Context, item WorkItem) ProcessResult {
		atomic.AddInt32(counter, 1)
		return ProcessResult{Index: item.Index}
	}
}

// importFunc plays each movetext in its own session.
func importFunc(_ context.Context, item WorkItem) ProcessResult {
	s := game.NewSession()
	res := s.Import(item.Movetext)
	return ProcessResult{Index: item.Index, Source: item.Source, Record: output.NewRecord(item.Source, s, res.Diagnostics)}
}

// collectResults drains the result channel and returns the count.
func collectResults(pool *Pool) int {
	count := 0
	for range pool.Results() {
		count++
	}
	return count
}

func TestPoolBasic(t *testing.T) {
	var processed int32
	pool := NewPool(countingProcessFunc(&processed), WithWorkers(4), WithBufferSize(10))
	pool.Start(context.Background())

	const numItems = 10
	for i := 0; i < numItems; i++ {
		pool.Submit(WorkItem{Index: i, Movetext: "1. e4"})
	}

	go pool.Close()

	if got := collectResults(pool); got != numItems {
		t.Errorf("results = %d; want %d", got, numItems)
	}
	if got := atomic.LoadInt32(&processed); got != numItems {
		t.Errorf("processed = %d; want %d", got, numItems)
	}
}

// TestPoolEarlyStop tests early termination with Stop().
func TestPoolEarlyStop(t *testing.T) {
	var processedCount int32

	slowProcessFunc := func(_ context.Context, item WorkItem) ProcessResult {
		time.Sleep(10 * time.Millisecond)
		atomic.AddInt32(&processedCount, 1)
		return ProcessResult{Index: item.Index}
	}

	pool := NewPool(slowProcessFunc, WithWorkers(2), WithBufferSize(100))
	pool.Start(context.Background())

	const numItems = 50
	for i := 0; i < numItems; i++ {
		pool.Submit(WorkItem{Index: i})
	}

	time.Sleep(30 * time.Millisecond)
	pool.Stop()

	go pool.Close()
	collectResults(pool)

	if processed := atomic.LoadInt32(&processedCount); processed >= numItems {
		t.Logf("early stop may not have prevented all processing: %d processed", processed)
	}
}

func TestPoolStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	pool := NewPool(noopProcessFunc())
	pool.Start(ctx)

	cancel()
	deadline := time.Now().Add(time.Second)
	for !pool.IsStopped() && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	if !pool.IsStopped() {
		t.Error("pool should stop when its context is cancelled")
	}
	if pool.TrySubmit(WorkItem{}) {
		t.Error("TrySubmit after cancel should return false")
	}
	pool.Close()
}

// TestPoolTrySubmit tests non-blocking submission.
func TestPoolTrySubmit(t *testing.T) {
	slowProcessFunc := func(context.Context, WorkItem) ProcessResult {
		time.Sleep(100 * time.Millisecond)
		return ProcessResult{}
	}

	pool := NewPool(slowProcessFunc, WithBufferSize(2))
	pool.Start(context.Background())

	if !pool.TrySubmit(WorkItem{Index: 0}) {
		t.Error("first TrySubmit should succeed")
	}
	if !pool.TrySubmit(WorkItem{Index: 1}) {
		t.Error("second TrySubmit should succeed")
	}

	// Third might fail if buffer is full (timing-dependent, just verify no panic)
	pool.TrySubmit(WorkItem{Index: 2})

	pool.Stop()
	if pool.TrySubmit(WorkItem{Index: 3}) {
		t.Error("TrySubmit after Stop should return false")
	}

	go pool.Close()
	collectResults(pool)
}

func TestNewPoolOptions(t *testing.T) {
	tests := []struct {
		name        string
		opts        []PoolOption
		wantWorkers int
		wantBuffer  int
	}{
		{"defaults", nil, 1, 10},
		{"with workers", []PoolOption{WithWorkers(4)}, 4, 10},
		{"with buffer size", []PoolOption{WithBufferSize(50)}, 1, 50},
		{"with multiple options", []PoolOption{WithWorkers(8), WithBufferSize(100)}, 8, 100},
		{"invalid workers ignored", []PoolOption{WithWorkers(0)}, 1, 10},
		{"invalid buffer size ignored", []PoolOption{WithBufferSize(-5)}, 1, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pool := NewPool(noopProcessFunc(), tt.opts...)
			if got := pool.NumWorkers(); got != tt.wantWorkers {
				t.Errorf("NumWorkers() = %d; want %d", got, tt.wantWorkers)
			}
			if pool.bufferSize != tt.wantBuffer {
				t.Errorf("bufferSize = %d; want %d", pool.bufferSize, tt.wantBuffer)
			}
		})
	}
}

// TestPoolNoRace is designed to be run with -race flag.
func TestPoolNoRace(t *testing.T) {
	var counter int32
	pool := NewPool(countingProcessFunc(&counter), WithWorkers(8), WithBufferSize(50))
	pool.Start(context.Background())

	const numItems = 100
	go func() {
		for i := 0; i < numItems; i++ {
			pool.Submit(WorkItem{Index: i})
		}
		pool.Close()
	}()

	collectResults(pool)

	if got := atomic.LoadInt32(&counter); got != numItems {
		t.Errorf("processed = %d; want %d", got, numItems)
	}
}

func TestRun_ImportsInOrder(t *testing.T) {
	items := []WorkItem{
		{Index: 0, Source: "mate", Movetext: testutil.ScholarsMate},
		{Index: 1, Source: "fool", Movetext: testutil.FoolsMate},
		{Index: 2, Source: "bad", Movetext: "1. e4 Qxx"},
		{Index: 3, Source: "empty", Movetext: ""},
	}

	results := Run(context.Background(), items, importFunc, WithWorkers(3))
	testutil.AssertEqual(t, len(results), len(items))

	for i, r := range results {
		testutil.AssertEqual(t, r.Index, i)
		testutil.AssertEqual(t, r.Source, items[i].Source)
		testutil.AssertNotNil(t, r.Record)
	}
	testutil.AssertEqual(t, results[0].Record.Result(), "1-0")
	testutil.AssertEqual(t, results[1].Record.Result(), "0-1")
	testutil.AssertEqual(t, len(results[2].Record.Diagnostics), 1)
	testutil.AssertEqual(t, len(results[3].Record.Moves), 0)
}
