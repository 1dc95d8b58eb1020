package workers

import "context"

// Workers starts a group of workers in order and stops them in reverse.
type Workers struct {
	workers []Worker
}

// NewWorkers creates a group from ws.
func NewWorkers(ws ...Worker) *Workers {
	return &Workers{workers: ws}
}

// Add appends a worker. It must be called before Start.
func (w *Workers) Add(worker Worker) {
	w.workers = append(w.workers, worker)
}

func (w *Workers) Len() int {
	return len(w.workers)
}

// Start starts every worker in registration order.
func (w *Workers) Start(ctx context.Context) {
	for _, worker := range w.workers {
		worker.Start(ctx)
	}
}

// Stop stops the workers in reverse order.
func (w *Workers) Stop() {
	for i := len(w.workers) - 1; i >= 0; i-- {
		w.workers[i].Stop()
	}
}
