package concurrent

import (
	"errors"
	"sync"
	"time"
)

var ErrScheduleTimeout = errors.New("schedule error: timed out")

type JobFunc[T any, G any] func(job T) G

/*
WorkerPool runs typed jobs on a fixed number of workers (Start, AddJob, CollectResults) and, for
event handlers, arbitrary tasks on a bounded set of goroutines (Spawn, Schedule, ScheduleTimeout).
The two sides are independent.
*/
type WorkerPool[T any, G any] struct {
	numWorkers int
	jobQueue   chan T
	results    chan G
	wg         sync.WaitGroup

	sem       chan struct{}
	work      chan func()
	closeOnce sync.Once
}

func NewWorkerPool[T any, G any](numWorkers, jobQueueSize int) *WorkerPool[T, G] {
	return &WorkerPool[T, G]{
		numWorkers: numWorkers,
		jobQueue:   make(chan T, jobQueueSize),
		results:    make(chan G, jobQueueSize),
		sem:        make(chan struct{}, numWorkers),
		work:       make(chan func(), jobQueueSize),
	}
}

func (wp *WorkerPool[T, G]) worker(jobFunc JobFunc[T, G]) {
	defer wp.wg.Done()
	for job := range wp.jobQueue {
		wp.results <- jobFunc(job)
	}
}

func (wp *WorkerPool[T, G]) Start(jobFunc JobFunc[T, G]) {
	for i := 0; i < wp.numWorkers; i++ {
		wp.wg.Add(1)
		go wp.worker(jobFunc)
	}
}

// Wait blocks until every worker returned, then closes the results channel.
func (wp *WorkerPool[T, G]) Wait() {
	wp.wg.Wait()
	close(wp.results)
}

func (wp *WorkerPool[T, G]) AddJob(job T) {
	wp.jobQueue <- job
}

func (wp *WorkerPool[T, G]) CollectResults() chan G {
	return wp.results
}

// Close stops accepting jobs and tasks.
func (wp *WorkerPool[T, G]) Close() {
	wp.closeOnce.Do(func() {
		close(wp.jobQueue)
		close(wp.work)
	})
}

// Spawn starts n task goroutines right away, without waiting for work.
func (wp *WorkerPool[T, G]) Spawn(n int) {
	for i := 0; i < n; i++ {
		select {
		case wp.sem <- struct{}{}:
			go wp.taskWorker(func() {})
		default:
			return
		}
	}
}

// Schedule runs task on a pool goroutine, blocking while the pool is saturated.
func (wp *WorkerPool[T, G]) Schedule(task func()) {
	_ = wp.schedule(task, nil)
}

// ScheduleTimeout is Schedule giving up after timeout.
func (wp *WorkerPool[T, G]) ScheduleTimeout(timeout time.Duration, task func()) error {
	timer := time.NewTimer(timeout)
	defer timer.Stop()
	return wp.schedule(task, timer.C)
}

func (wp *WorkerPool[T, G]) schedule(task func(), timeout <-chan time.Time) error {
	select {
	case <-timeout:
		return ErrScheduleTimeout
	case wp.work <- task:
		return nil
	case wp.sem <- struct{}{}:
		go wp.taskWorker(task)
		return nil
	}
}

func (wp *WorkerPool[T, G]) taskWorker(task func()) {
	defer func() { <-wp.sem }()

	task()
	for task := range wp.work {
		task()
	}
}
