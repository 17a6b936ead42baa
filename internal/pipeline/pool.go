package pipeline

import (
	"context"
	"sync"
	"time"
)

// CompileTask asks the pool to recompile one document.
type CompileTask struct {
	DocumentID string
	Persist    bool
	Timestamp  time.Time
}

// CompileResult is delivered to callbacks when a task finishes.
type CompileResult struct {
	DocumentID string
	Result     *Result
	Err        error
	Duration   time.Duration
}

// CompileCallback is called when a compilation completes.
type CompileCallback func(result CompileResult)

// Metrics tracks pool performance.
type Metrics struct {
	TotalRuns      int64
	SuccessfulRuns int64
	FailedRuns     int64
	TotalDuration  time.Duration
	mutex          sync.RWMutex
}

// Pool runs compilations on a fixed set of workers. The preview server
// enqueues a task per change burst; duplicate tasks for the same document
// are cheap because compilation is pure and idempotent.
type Pool struct {
	pipeline  *Pipeline
	workers   int
	tasks     chan CompileTask
	priority  chan CompileTask
	results   chan CompileResult
	callbacks []CompileCallback
	metrics   *Metrics
	workerWg  sync.WaitGroup
	resultWg  sync.WaitGroup
	cancel    context.CancelFunc
	mu        sync.Mutex
}

// NewPool creates a pool over the given pipeline.
func NewPool(p *Pipeline, workers int) *Pool {
	if workers < 1 {
		workers = 1
	}
	return &Pool{
		pipeline: p,
		workers:  workers,
		tasks:    make(chan CompileTask, 100),
		priority: make(chan CompileTask, 10),
		results:  make(chan CompileResult, 100),
		metrics:  &Metrics{},
	}
}

// Start launches the workers and the result dispatcher.
func (pl *Pool) Start(ctx context.Context) {
	ctx, pl.cancel = context.WithCancel(ctx)

	for i := 0; i < pl.workers; i++ {
		pl.workerWg.Add(1)
		go pl.worker(ctx)
	}

	pl.resultWg.Add(1)
	go pl.dispatchResults(ctx)
}

// Stop cancels the workers and waits for all goroutines to finish.
func (pl *Pool) Stop() {
	if pl.cancel != nil {
		pl.cancel()
	}
	pl.workerWg.Wait()
	pl.resultWg.Wait()
}

// Enqueue queues a document for compilation. A full queue drops the task;
// the next change will requeue it.
func (pl *Pool) Enqueue(documentID string, persist bool) {
	task := CompileTask{DocumentID: documentID, Persist: persist, Timestamp: time.Now()}
	select {
	case pl.tasks <- task:
	default:
	}
}

// EnqueueWithPriority queues a document ahead of regular tasks.
func (pl *Pool) EnqueueWithPriority(documentID string, persist bool) {
	task := CompileTask{DocumentID: documentID, Persist: persist, Timestamp: time.Now()}
	select {
	case pl.priority <- task:
	default:
	}
}

// AddCallback registers a callback invoked on every completed task. Must be
// called before Start.
func (pl *Pool) AddCallback(cb CompileCallback) {
	pl.mu.Lock()
	defer pl.mu.Unlock()
	pl.callbacks = append(pl.callbacks, cb)
}

// GetMetrics returns a snapshot of the pool metrics.
func (pl *Pool) GetMetrics() Metrics {
	pl.metrics.mutex.RLock()
	defer pl.metrics.mutex.RUnlock()
	return Metrics{
		TotalRuns:      pl.metrics.TotalRuns,
		SuccessfulRuns: pl.metrics.SuccessfulRuns,
		FailedRuns:     pl.metrics.FailedRuns,
		TotalDuration:  pl.metrics.TotalDuration,
	}
}

func (pl *Pool) worker(ctx context.Context) {
	defer pl.workerWg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case task := <-pl.priority:
			pl.process(ctx, task)
		case task := <-pl.tasks:
			pl.process(ctx, task)
		}
	}
}

func (pl *Pool) process(ctx context.Context, task CompileTask) {
	start := time.Now()

	var result *Result
	var err error
	if task.Persist {
		result, err = pl.pipeline.CompileAndPersist(ctx, task.DocumentID)
	} else {
		result, err = pl.pipeline.CompileDocument(ctx, task.DocumentID)
	}

	out := CompileResult{
		DocumentID: task.DocumentID,
		Result:     result,
		Err:        err,
		Duration:   time.Since(start),
	}
	pl.updateMetrics(out)

	select {
	case pl.results <- out:
	case <-ctx.Done():
	}
}

func (pl *Pool) dispatchResults(ctx context.Context) {
	defer pl.resultWg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case result := <-pl.results:
			pl.mu.Lock()
			callbacks := pl.callbacks
			pl.mu.Unlock()
			for _, cb := range callbacks {
				cb(result)
			}
		}
	}
}

func (pl *Pool) updateMetrics(result CompileResult) {
	pl.metrics.mutex.Lock()
	defer pl.metrics.mutex.Unlock()
	pl.metrics.TotalRuns++
	if result.Err == nil && result.Result != nil && result.Result.OK() {
		pl.metrics.SuccessfulRuns++
	} else {
		pl.metrics.FailedRuns++
	}
	pl.metrics.TotalDuration += result.Duration
}
