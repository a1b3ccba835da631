package client

import (
	"context"
	"errors"
	"sync"
)

var (
	ErrTaskExists    = errors.New("a task is already pending for this item")
	ErrTaskCancelled = errors.New("task cancelled")
)

// Task is the handle a running background job gets. Its writes go through
// Commit so they can never land after the task was cancelled.
type Task struct {
	ItemID string

	mu        sync.Mutex
	cancelled bool
	cancel    context.CancelFunc
	done      chan struct{}
}

// Commit runs write unless the task has been cancelled. A Cancel issued while
// write is running waits for it to return.
func (t *Task) Commit(write func() error) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.cancelled {
		return ErrTaskCancelled
	}
	return write()
}

func (t *Task) markCancelled() {
	t.mu.Lock()
	t.cancelled = true
	t.mu.Unlock()
	t.cancel()
}

type TaskFunc func(ctx context.Context, task *Task) error

// TaskRegistry runs at most one background task per item id.
type TaskRegistry struct {
	mu    sync.Mutex
	tasks map[string]*Task
	wg    sync.WaitGroup
}

func NewTaskRegistry() *TaskRegistry {
	return &TaskRegistry{tasks: make(map[string]*Task)}
}

// Start runs fn in its own goroutine. The task context is detached from the
// caller, only Cancel stops it.
func (r *TaskRegistry) Start(itemID string, fn TaskFunc) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tasks[itemID]; ok {
		return ErrTaskExists
	}

	ctx, cancel := context.WithCancel(context.Background())
	task := &Task{ItemID: itemID, cancel: cancel, done: make(chan struct{})}
	r.tasks[itemID] = task
	r.wg.Add(1)

	go func() {
		defer r.wg.Done()
		defer close(task.done)
		defer cancel()
		defer r.remove(task)
		_ = fn(ctx, task)
	}()
	return nil
}

// Cancel stops the pending task for itemID and waits for it to exit. It
// reports whether a task was pending.
func (r *TaskRegistry) Cancel(itemID string) bool {
	r.mu.Lock()
	task, ok := r.tasks[itemID]
	r.mu.Unlock()
	if !ok {
		return false
	}
	task.markCancelled()
	<-task.done
	return true
}

// Wait blocks until every started task has finished or ctx is done.
func (r *TaskRegistry) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		r.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (r *TaskRegistry) Pending() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.tasks)
}

func (r *TaskRegistry) IsPending(itemID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.tasks[itemID]
	return ok
}

func (r *TaskRegistry) remove(task *Task) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.tasks[task.ItemID] == task {
		delete(r.tasks, task.ItemID)
	}
}
