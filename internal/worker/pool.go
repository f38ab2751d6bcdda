// Package worker provides a worker pool for parallel position analysis.
// Each work item carries its own FEN, so workers share no board state.
package worker

import (
	"context"
	"sync"
	"sync/atomic"
)

// WorkItem is one position to analyse.
type WorkItem struct {
	FEN   string
	Moves []string // Coordinate moves to play from FEN before analysing
	Index int      // Original index for ordering results
	Line  int      // Source line, for error messages
}

// ProcessResult is the outcome of analysing one position.
type ProcessResult struct {
	Index  int
	Line   int
	Report interface{} // Opaque analysis payload; typed by consumer
	Error  error
}

// ProcessFunc analyses a single work item.
type ProcessFunc func(item WorkItem) ProcessResult

// Pool runs a ProcessFunc over submitted items on a fixed set of goroutines.
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

// NewPool creates a pool. Defaults: 1 worker, buffer size of 10.
func NewPool(processFunc ProcessFunc, opts ...PoolOption) *Pool {
	p := &Pool{
		numWorkers:  1,
		bufferSize:  10,
		processFunc: processFunc,
	}
	for _, opt := range opts {
		opt(p)
	}
	p.workChan = make(chan WorkItem, p.bufferSize)
	p.resultChan = make(chan ProcessResult, p.bufferSize)
	return p
}

// Start starts the worker goroutines.
func (p *Pool) Start() {
	for i := 0; i < p.numWorkers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
}

func (p *Pool) worker() {
	defer p.wg.Done()

	for item := range p.workChan {
		if p.IsStopped() {
			continue // Drain without processing
		}
		p.resultChan <- p.processFunc(item)
	}
}

// Submit queues an item. It blocks while the buffer is full.
func (p *Pool) Submit(item WorkItem) {
	p.workChan <- item
}

// Stop makes workers drain the remaining items without processing them.
func (p *Pool) Stop() {
	atomic.StoreInt32(&p.stopFlag, 1)
}

// IsStopped returns true if the pool has been stopped.
func (p *Pool) IsStopped() bool {
	return atomic.LoadInt32(&p.stopFlag) != 0
}

// Close closes the work channel and waits for all workers to finish, then
// closes the result channel.
func (p *Pool) Close() {
	close(p.workChan)
	p.wg.Wait()
	close(p.resultChan)
}

// Results returns the result channel for reading processed results.
func (p *Pool) Results() <-chan ProcessResult {
	return p.resultChan
}

// NumWorkers returns the number of workers in the pool.
func (p *Pool) NumWorkers() int {
	return p.numWorkers
}

// Run analyses items and returns their results in item order. Cancelling ctx
// stops the pool; items not yet processed are missing from the result.
func (p *Pool) Run(ctx context.Context, items []WorkItem) []ProcessResult {
	p.Start()
	go func() {
		defer p.Close()
		for _, item := range items {
			select {
			case <-ctx.Done():
				p.Stop()
				return
			case p.workChan <- item:
			}
		}
	}()

	slots := make([]*ProcessResult, len(items))
	for result := range p.Results() {
		r := result
		if r.Index >= 0 && r.Index < len(slots) {
			slots[r.Index] = &r
		}
		if ctx.Err() != nil {
			p.Stop()
		}
	}

	results := make([]ProcessResult, 0, len(items))
	for _, r := range slots {
		if r != nil {
			results = append(results, *r)
		}
	}
	return results
}
