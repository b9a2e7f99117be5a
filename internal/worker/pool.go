// Package worker provides a worker pool for replaying games in parallel.
// Each work item is replayed on its own engine, so no game is ever shared
// between goroutines.
package worker

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/lgbarn/chessrules-go/internal/output"
)

// WorkItem is one input line to replay.
type WorkItem struct {
	Index  int    // Original index for ordering
	LineNo int    // 1-based line number in the source
	Source string // Input name, for error messages
	Line   string
}

// ProcessResult is the outcome of replaying one line.
type ProcessResult struct {
	Index        int
	GameID       string
	Snapshot     *output.Snapshot // Final state; nil if the line could not start a game
	Plies        int              // Moves applied before any error
	Hash         uint64           // Zobrist key of the final position
	ShouldOutput bool             // Whether the game passed the configured filters
	Error        error
}

// ProcessFunc is the function signature for processing a work item.
type ProcessFunc func(ctx context.Context, item WorkItem) ProcessResult

// Pool manages a pool of workers for parallel game replay.
type Pool struct {
	numWorkers  int
	bufferSize  int
	workChan    chan WorkItem
	resultChan  chan ProcessResult
	processFunc ProcessFunc
	wg          sync.WaitGroup
	stopFlag    int32 // Atomic flag for early termination
}

// PoolOption configures a Pool.
type PoolOption func(*Pool)

// WithWorkers sets the number of worker goroutines.
func WithWorkers(n int) PoolOption {
	return func(p *Pool) {
		if n >= 1 {
			p.numWorkers = n
		}
	}
}

// WithBufferSize sets the channel buffer size.
func WithBufferSize(size int) PoolOption {
	return func(p *Pool) {
		if size >= 1 {
			p.bufferSize = size
		}
	}
}

// NewPool creates a worker pool. processFunc is required; the defaults are
// one worker and a buffer size of 10.
func NewPool(processFunc ProcessFunc, opts ...PoolOption) *Pool {
	p := &Pool{
		numWorkers:  1,
		bufferSize:  10,
		processFunc: processFunc,
	}
	for _, opt := range opts {
		opt(p)
	}
	// Create channels after options are applied
	p.workChan = make(chan WorkItem, p.bufferSize)
	p.resultChan = make(chan ProcessResult, p.bufferSize)
	return p
}

// Start starts the worker goroutines. Cancelling ctx stops the pool.
func (p *Pool) Start(ctx context.Context) {
	for i := 0; i < p.numWorkers; i++ {
		p.wg.Add(1)
		go p.worker(ctx)
	}
}

// worker processes items from the work channel until it is closed.
func (p *Pool) worker(ctx context.Context) {
	defer p.wg.Done()

	for item := range p.workChan {
		if ctx.Err() != nil {
			p.Stop()
		}
		if p.IsStopped() {
			continue // Drain channel without processing
		}
		p.resultChan <- p.processFunc(ctx, item)
	}
}

// Submit queues a work item, blocking while the buffer is full. It returns
// ctx.Err() if ctx ends first and false for a stopped pool.
func (p *Pool) Submit(ctx context.Context, item WorkItem) (bool, error) {
	if p.IsStopped() {
		return false, nil
	}
	select {
	case p.workChan <- item:
		return true, nil
	case <-ctx.Done():
		return false, ctx.Err()
	}
}

// Stop signals workers to stop processing new items.
// Items already in the channel will be drained but not processed.
func (p *Pool) Stop() {
	atomic.StoreInt32(&p.stopFlag, 1)
}

// IsStopped returns true if the pool has been stopped.
func (p *Pool) IsStopped() bool {
	return atomic.LoadInt32(&p.stopFlag) != 0
}

// Close closes the work channel and waits for all workers to finish.
// The result channel is closed once every worker is done.
func (p *Pool) Close() {
	close(p.workChan)
	p.wg.Wait()
	close(p.resultChan)
}

// Results returns the result channel for reading processed results.
// Results arrive in completion order; see Ordered.
func (p *Pool) Results() <-chan ProcessResult {
	return p.resultChan
}

// NumWorkers returns the number of workers in the pool.
func (p *Pool) NumWorkers() int {
	return p.numWorkers
}

// Ordered re-sequences results by Index, starting at 0. Results held back
// waiting for a missing index are released in index order when in closes.
func Ordered(in <-chan ProcessResult) <-chan ProcessResult {
	out := make(chan ProcessResult)
	go func() {
		defer close(out)
		pending := make(map[int]ProcessResult)
		next := 0
		for r := range in {
			pending[r.Index] = r
			for {
				ready, ok := pending[next]
				if !ok {
					break
				}
				delete(pending, next)
				out <- ready
				next++
			}
		}
		// Gaps left by a stopped pool
		for len(pending) > 0 {
			if r, ok := pending[next]; ok {
				delete(pending, next)
				out <- r
			}
			next++
		}
	}()
	return out
}
