package concurrent

import (
	"context"
	"sync"
)

type Job[T any] struct {
	ID    int
	Input T
}

type Result[G any] struct {
	ID    int
	Value G
	Err   error
}

type JobFunc[T any, G any] func(ctx context.Context, job T) (G, error)

/*
WorkerPool. numWorkers goroutines consume jobs from a buffered queue and push one Result per job. jobs already
queued when ctx is canceled are answered with ctx.Err() without running.
*/
type WorkerPool[T any, G any] struct {
	numWorkers int
	jobQueue   chan Job[T]
	results    chan Result[G]
	wg         sync.WaitGroup
}

func NewWorkerPool[T any, G any](numWorkers, jobQueueSize int) *WorkerPool[T, G] {
	if numWorkers < 1 {
		numWorkers = 1
	}
	return &WorkerPool[T, G]{
		numWorkers: numWorkers,
		jobQueue:   make(chan Job[T], jobQueueSize),
		results:    make(chan Result[G], jobQueueSize),
	}
}

func (wp *WorkerPool[T, G]) worker(ctx context.Context, jobFunc JobFunc[T, G]) {
	defer wp.wg.Done()
	for job := range wp.jobQueue {
		if err := ctx.Err(); err != nil {
			wp.results <- Result[G]{ID: job.ID, Err: err}
			continue
		}
		res, err := jobFunc(ctx, job.Input)
		wp.results <- Result[G]{ID: job.ID, Value: res, Err: err}
	}
}

func (wp *WorkerPool[T, G]) Start(ctx context.Context, jobFunc JobFunc[T, G]) {
	for i := 0; i < wp.numWorkers; i++ {
		wp.wg.Add(1)
		go wp.worker(ctx, jobFunc)
	}
}

// Wait. block until every worker exits, then close the results channel. call after Close.
func (wp *WorkerPool[T, G]) Wait() {
	wp.wg.Wait()
	close(wp.results)
}

func (wp *WorkerPool[T, G]) AddJob(id int, input T) {
	wp.jobQueue <- Job[T]{ID: id, Input: input}
}

func (wp *WorkerPool[T, G]) CollectResults() <-chan Result[G] {
	return wp.results
}

// Close. no more jobs.
func (wp *WorkerPool[T, G]) Close() {
	close(wp.jobQueue)
}

// RunAll. run jobFunc on every input with numWorkers workers. results keep the order of inputs; the error of the
// lowest failing input is returned.
func RunAll[T any, G any](ctx context.Context, numWorkers int, inputs []T, jobFunc JobFunc[T, G]) ([]G, error) {
	wp := NewWorkerPool[T, G](numWorkers, len(inputs))
	for i, in := range inputs {
		wp.AddJob(i, in)
	}
	wp.Close()
	wp.Start(ctx, jobFunc)

	go wp.Wait()

	out := make([]G, len(inputs))
	errs := make([]error, len(inputs))
	for res := range wp.CollectResults() {
		out[res.ID] = res.Value
		errs[res.ID] = res.Err
	}
	for _, err := range errs {
		if err != nil {
			return out, err
		}
	}
	return out, nil
}
