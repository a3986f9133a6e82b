package worker

import (
	"context"
	"log"
)

// Task is a unit of deferred work. Failures are logged and dropped, never
// retried; tasks must tolerate running after the request that queued them
// has already been answered.
type Task struct {
	Name string
	Run  func(ctx context.Context) error
}

// Worker drains a bounded queue of tasks on a single goroutine. Submit
// never blocks the caller: when the queue is full the task is dropped with
// a log line.
type Worker struct {
	tasks chan Task
}

func New(queueSize int) *Worker {
	if queueSize <= 0 {
		queueSize = 1
	}
	return &Worker{tasks: make(chan Task, queueSize)}
}

// Start runs the drain loop until ctx is cancelled.
func (w *Worker) Start(ctx context.Context) {
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case task := <-w.tasks:
				if err := task.Run(ctx); err != nil {
					log.Printf("worker: task %q failed: %v", task.Name, err)
				}
			}
		}
	}()
}

// Submit enqueues a task, dropping it if the queue is full.
func (w *Worker) Submit(task Task) {
	select {
	case w.tasks <- task:
	default:
		log.Printf("worker: queue full, dropping task %q", task.Name)
	}
}
