package document

import "sync"

// TaskQueue holds work deferred past the current event-handling step.
// The owner of the event loop drains it with Flush once the step returns.
type TaskQueue struct {
	mu    sync.Mutex
	tasks []func()
}

// NewTaskQueue creates an empty queue
func NewTaskQueue() *TaskQueue {
	return &TaskQueue{}
}

// Defer enqueues fn to run on the next Flush
func (q *TaskQueue) Defer(fn func()) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.tasks = append(q.tasks, fn)
}

// Len returns the number of pending tasks
func (q *TaskQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.tasks)
}

// Flush runs the tasks pending at call time, in order, and returns how many ran.
// Tasks deferred while flushing wait for the next Flush.
func (q *TaskQueue) Flush() int {
	q.mu.Lock()
	tasks := q.tasks
	q.tasks = nil
	q.mu.Unlock()

	for _, task := range tasks {
		task()
	}
	return len(tasks)
}
