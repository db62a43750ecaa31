/*
Package worker provides a bounded worker pool for concurrent task
processing with optional rate limiting and context cancellation support.

Basic usage:

	pool, err := worker.NewPool(worker.Config{
		Workers:   4,
		RateLimit: 100, // ops/sec, 0 for unlimited
	})
	if err != nil {
		return err
	}
	if err := pool.Start(ctx); err != nil {
		return err
	}
	defer pool.Stop()

	pool.Submit(worker.Task{
		ID: 1,
		Execute: func(ctx context.Context) (worker.Result, error) {
			return worker.Result{ID: 1, Data: "processed"}, nil
		},
	})

	results, err := pool.Wait()
*/
package worker

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Task represents a unit of work to be processed by the pool.
type Task struct {
	// ID identifies the task in error messages.
	ID int

	// Execute performs the actual work. It receives a context for
	// cancellation support.
	Execute func(context.Context) (Result, error)
}

// Result represents the output of a processed task.
type Result struct {
	// ID matches the task that produced this result.
	ID int

	// Data holds the actual result data.
	Data interface{}

	// order preserves submission order across workers.
	order int
}

// Config holds the configuration for the worker pool.
type Config struct {
	// Workers is the number of concurrent workers.
	Workers int

	// RateLimit caps task starts per second (0 for unlimited).
	RateLimit int
}

// Pool defines the interface for a worker pool.
type Pool interface {
	// Start launches the workers.
	Start(context.Context) error

	// Submit adds a task for processing. It fails once the pool is
	// draining or its context is cancelled.
	Submit(Task) error

	// Wait blocks until all submitted tasks are processed and returns
	// their results in submission order, or the first task error.
	Wait() ([]Result, error)

	// Stop cancels outstanding work and shuts the pool down.
	Stop() error
}

type pool struct {
	config  Config
	limiter *rate.Limiter

	tasks   chan taskWithOrder
	results chan Result
	errs    chan error
	wg      sync.WaitGroup

	ctx    context.Context
	cancel context.CancelFunc

	// collected is owned by the collector goroutine until collectDone is
	// closed.
	collected    []Result
	collectDone  chan struct{}
	closeResults sync.Once

	mu       sync.Mutex
	started  bool
	draining bool
	order    int
}

type taskWithOrder struct {
	Task
	order int
}

// NewPool creates a new worker pool with the given configuration.
func NewPool(config Config) (Pool, error) {
	if config.Workers <= 0 {
		return nil, fmt.Errorf("number of workers must be positive")
	}
	if config.RateLimit < 0 {
		return nil, fmt.Errorf("rate limit must be non-negative")
	}

	var limiter *rate.Limiter
	if config.RateLimit > 0 {
		limiter = rate.NewLimiter(rate.Limit(config.RateLimit), 1)
	}

	return &pool{
		config:  config,
		limiter: limiter,
		tasks:   make(chan taskWithOrder, config.Workers*2),
		results: make(chan Result, config.Workers*2),
		errs:    make(chan error, config.Workers),
	}, nil
}

func (p *pool) Start(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.started {
		return fmt.Errorf("pool already started")
	}

	p.ctx, p.cancel = context.WithCancel(ctx)
	p.started = true

	// Drain results continuously so workers never block on a full results
	// channel, no matter how many tasks are submitted before Wait.
	p.collectDone = make(chan struct{})
	go func() {
		defer close(p.collectDone)
		for result := range p.results {
			p.collected = append(p.collected, result)
		}
	}()

	for i := 0; i < p.config.Workers; i++ {
		p.wg.Add(1)
		go p.worker()
	}

	return nil
}

func (p *pool) Submit(task Task) error {
	p.mu.Lock()
	if !p.started {
		p.mu.Unlock()
		return fmt.Errorf("pool not started")
	}
	if p.draining {
		p.mu.Unlock()
		return fmt.Errorf("pool is draining")
	}
	order := p.order
	p.order++
	p.mu.Unlock()

	select {
	case <-p.ctx.Done():
		return fmt.Errorf("pool is shutting down: %w", p.ctx.Err())
	case p.tasks <- taskWithOrder{Task: task, order: order}:
		return nil
	}
}

func (p *pool) Wait() ([]Result, error) {
	p.mu.Lock()
	if !p.started {
		p.mu.Unlock()
		return nil, fmt.Errorf("pool not started")
	}
	if !p.draining {
		p.draining = true
		close(p.tasks)
	}
	p.mu.Unlock()

	p.wg.Wait()
	p.closeResults.Do(func() { close(p.results) })
	<-p.collectDone

	results := p.collected
	sort.Slice(results, func(i, j int) bool {
		return results[i].order < results[j].order
	})

	select {
	case err := <-p.errs:
		return nil, err
	default:
	}

	if err := p.ctx.Err(); err != nil {
		return results, err
	}

	return results, nil
}

func (p *pool) Stop() error {
	p.mu.Lock()
	if !p.started {
		p.mu.Unlock()
		return nil
	}
	if !p.draining {
		p.draining = true
		close(p.tasks)
	}
	p.cancel()
	p.mu.Unlock()

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		p.closeResults.Do(func() { close(p.results) })
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-time.After(500 * time.Millisecond):
		return fmt.Errorf("shutdown timed out")
	}
}

func (p *pool) worker() {
	defer p.wg.Done()

	for task := range p.tasks {
		if p.limiter != nil {
			if err := p.limiter.Wait(p.ctx); err != nil {
				return
			}
		}

		select {
		case <-p.ctx.Done():
			return
		default:
		}

		result, err := task.Execute(p.ctx)
		if err != nil {
			select {
			case p.errs <- fmt.Errorf("task %d failed: %w", task.ID, err):
			default:
				// Error channel full; first error wins.
			}
			continue
		}

		result.order = task.order

		select {
		case <-p.ctx.Done():
			return
		case p.results <- result:
		}
	}
}
