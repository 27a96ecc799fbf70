package worker

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"
)

// Task represents a unit of work executed by the pool.
type Task func(ctx context.Context) error

// Pool defines a simple worker pool.
type Pool interface {
	// Submit 排入工作但不等待；pool 已停止或佇列已滿時回傳 false
	Submit(name string, t Task) bool
	Stop()
}

type job struct {
	name string
	task Task
}

// queuePerWorker is how many pending jobs each worker may have queued.
const queuePerWorker = 64

// NewPool creates a pool with n workers. n<=0 defaults to 1.
// 工作失敗或 panic 只會寫 log，不影響其他 worker
func NewPool(n int, log *zap.Logger) Pool {
	if n <= 0 {
		n = 1
	}
	ctx, cancel := context.WithCancel(context.Background())
	p := &pool{jobs: make(chan job, n*queuePerWorker), log: log, ctx: ctx, cancel: cancel}
	p.wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer p.wg.Done()
			for j := range p.jobs {
				p.run(j)
			}
		}()
	}
	return p
}

type pool struct {
	jobs   chan job
	wg     sync.WaitGroup
	log    *zap.Logger
	ctx    context.Context
	cancel context.CancelFunc

	mu      sync.RWMutex
	stopped bool
}

func (p *pool) run(j job) {
	defer func() {
		if r := recover(); r != nil {
			p.log.Error("worker task panic", zap.String("task", j.name), zap.String("panic", fmt.Sprint(r)))
		}
	}()
	if j.task == nil {
		return
	}
	if err := j.task(p.ctx); err != nil {
		p.log.Warn("worker task failed", zap.String("task", j.name), zap.Error(err))
	}
}

func (p *pool) Submit(name string, t Task) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.stopped {
		return false
	}
	select {
	case p.jobs <- job{name: name, task: t}:
		return true
	default:
		p.log.Warn("worker queue full, task dropped", zap.String("task", name))
		return false
	}
}

// Stop 等待已排入的工作完成後才取消 context
func (p *pool) Stop() {
	p.mu.Lock()
	if p.stopped {
		p.mu.Unlock()
		return
	}
	p.stopped = true
	close(p.jobs)
	p.mu.Unlock()

	p.wg.Wait()
	p.cancel()
}
