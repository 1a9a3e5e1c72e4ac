package parallel

import (
	"runtime"
	"sync"
)

type (
	WorkerFunc func(func())
	WaitFunc   func(done bool)
)

// Pool runs submitted jobs on a fixed number of goroutines. With a single
// worker jobs run inline on the submitting goroutine.
type Pool struct {
	workers sync.WaitGroup
	pending sync.WaitGroup
	jobs    chan func()
	stop    func()
}

func Start(numWorkers int) *Pool {
	if numWorkers < 1 {
		numWorkers = runtime.GOMAXPROCS(0)
	}

	pool := &Pool{stop: func() {}}
	if numWorkers == 1 {
		return pool
	}

	pool.jobs = make(chan func(), numWorkers)
	for range numWorkers {
		pool.workers.Go(func() {
			for f := range pool.jobs {
				f()
			}
		})
	}
	pool.stop = sync.OnceFunc(func() { close(pool.jobs) })

	return pool
}

func (p *Pool) Do(f func()) {
	if p.jobs == nil {
		f()
		return
	}

	p.pending.Add(1)
	p.jobs <- func() {
		defer p.pending.Done()
		f()
	}
}

// Wait blocks until every submitted job has finished. Passing done also stops
// the workers; Do must not be called afterwards.
func (p *Pool) Wait(done bool) {
	p.pending.Wait()
	if done {
		p.stop()
		p.workers.Wait()
	}
}

func (p *Pool) Worker() WorkerFunc { return p.Do }
func (p *Pool) Waiter() WaitFunc   { return p.Wait }
