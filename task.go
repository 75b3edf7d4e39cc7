package arena

import (
	"sync"
	"sync/atomic"
)

// scheduledTask represents a callback scheduled for a future tick.
type scheduledTask struct {
	// executeAt is the tick the task should execute at
	executeAt uint64

	// seq orders tasks due at the same tick by scheduling order
	seq uint64

	// fn is the callback
	fn func()

	// period is the repeat interval in ticks, 0 for one-shot tasks
	period uint64

	// handle is shared with the owner for cancellation
	handle *TaskHandle

	// index is the heap index for efficient removal
	index int
}

func (t *scheduledTask) before(o *scheduledTask) bool {
	if t.executeAt != o.executeAt {
		return t.executeAt < o.executeAt
	}
	return t.seq < o.seq
}

// taskQueue is a priority queue for scheduled tasks.
// It uses a binary heap for O(log n) insertion and removal.
type taskQueue struct {
	mu   sync.Mutex
	heap []*scheduledTask
	seq  uint64
}

// newTaskQueue creates a new task queue.
func newTaskQueue() *taskQueue {
	return &taskQueue{
		heap: make([]*scheduledTask, 0, 64),
	}
}

// compactHeap removes cancelled tasks from the heap and rebuilds the heap property.
func (q *taskQueue) compactHeap() {
	write := 0
	for read := 0; read < len(q.heap); read++ {
		if !q.heap[read].handle.cancelled.Load() {
			q.heap[write] = q.heap[read]
			q.heap[write].index = write
			write++
		}
	}

	for i := write; i < len(q.heap); i++ {
		q.heap[i] = nil
	}
	q.heap = q.heap[:write]

	for i := len(q.heap)/2 - 1; i >= 0; i-- {
		q.down(i, len(q.heap))
	}
}

// Push adds a task to the queue with periodic cleanup to prevent memory leaks.
func (q *taskQueue) Push(task *scheduledTask) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.heap) > 100 && len(q.heap)%100 == 0 {
		q.compactHeap()
	}

	q.seq++
	task.seq = q.seq
	task.index = len(q.heap)
	q.heap = append(q.heap, task)
	q.up(task.index)
}

// PopDue removes and returns all live tasks due at or before the tick.
func (q *taskQueue) PopDue(now uint64) []*scheduledTask {
	q.mu.Lock()
	defer q.mu.Unlock()

	var due []*scheduledTask
	cancelledCount := 0

	for len(q.heap) > 0 && q.heap[0].executeAt <= now {
		task := q.pop()
		if !task.handle.cancelled.Load() {
			due = append(due, task)
		} else {
			cancelledCount++
		}
	}

	if cancelledCount > 50 && len(q.heap) > 0 {
		q.compactHeap()
	}

	return due
}

// Pending returns the number of tasks that were not cancelled.
func (q *taskQueue) Pending() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	n := 0
	for _, t := range q.heap {
		if !t.handle.cancelled.Load() {
			n++
		}
	}
	return n
}

// pop removes and returns the minimum task. Caller must hold lock.
func (q *taskQueue) pop() *scheduledTask {
	n := len(q.heap) - 1
	q.swap(0, n)
	q.down(0, n)
	task := q.heap[n]
	q.heap[n] = nil // Allow GC
	q.heap = q.heap[:n]
	task.index = -1
	return task
}

// up moves task at index up the heap.
func (q *taskQueue) up(i int) {
	for {
		parent := (i - 1) / 2
		if parent == i || !q.heap[i].before(q.heap[parent]) {
			break
		}
		q.swap(i, parent)
		i = parent
	}
}

// down moves task at index down the heap.
func (q *taskQueue) down(i, n int) {
	for {
		left := 2*i + 1
		if left >= n || left < 0 {
			break
		}
		j := left
		if right := left + 1; right < n && q.heap[right].before(q.heap[left]) {
			j = right
		}
		if !q.heap[j].before(q.heap[i]) {
			break
		}
		q.swap(i, j)
		i = j
	}
}

// swap swaps two tasks in the heap.
func (q *taskQueue) swap(i, j int) {
	q.heap[i], q.heap[j] = q.heap[j], q.heap[i]
	q.heap[i].index = i
	q.heap[j].index = j
}

// TaskHandle allows cancelling a scheduled callback. Owners keep the handle
// and cancel it before scheduling a replacement for the same resource.
type TaskHandle struct {
	cancelled atomic.Bool
	done      atomic.Bool
}

// Cancel cancels the task. Cancelling a nil, fired or cancelled handle is a no-op.
func (h *TaskHandle) Cancel() {
	if h != nil {
		h.cancelled.Store(true)
	}
}

// Active reports whether the task will still run.
func (h *TaskHandle) Active() bool {
	return h != nil && !h.cancelled.Load() && !h.done.Load()
}

// Cancelled reports whether the task was cancelled.
func (h *TaskHandle) Cancelled() bool {
	return h != nil && h.cancelled.Load()
}
