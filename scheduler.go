package arena

import (
	"fmt"
	"log/slog"
	"runtime/debug"
	"sync"
	"sync/atomic"
	"time"
)

// TicksPerSecond is the tick rate of the TickScheduler.
const TicksPerSecond = 20

// Scheduler provides delayed and repeating callbacks measured in ticks.
// Callbacks run to completion on the scheduler's goroutine, one at a time.
type Scheduler interface {
	// ScheduleOnce runs fn once after delay ticks.
	ScheduleOnce(delay int, fn func()) *TaskHandle

	// ScheduleRepeating runs fn every period ticks until the handle is cancelled.
	ScheduleRepeating(period int, fn func()) *TaskHandle
}

// Executor serialises calls onto the goroutine that owns match state.
type Executor interface {
	// Do runs fn on the owning goroutine and returns once it completed.
	Do(fn func())
}

// inlineExecutor runs calls on the caller's goroutine. It is used when the
// scheduler does not own a goroutine.
type inlineExecutor struct{}

func (inlineExecutor) Do(fn func()) { fn() }

// TickScheduler is a single-threaded tick loop. It runs scheduled callbacks in
// tick order and serialises calls submitted through Do between ticks, so all
// match state is mutated by one goroutine.
//
// Before Start is called, or after Stop, the scheduler is driven manually
// with Advance and Do runs inline on the caller's goroutine. Inline calls,
// manual ticks and the loop all hold the same lock, so state is still only
// touched by one goroutine at a time.
type TickScheduler struct {
	log   *slog.Logger
	queue *taskQueue

	// exec is held while callbacks or calls run.
	exec sync.Mutex

	// Execution state
	running atomic.Bool
	inbox   chan func()
	stopCh  chan struct{}
	doneCh  chan struct{}
	stopMu  sync.RWMutex

	// Tick tracking
	tickRate   time.Duration
	tickNumber atomic.Uint64
}

// NewTickScheduler creates a scheduler ticking at TicksPerSecond.
func NewTickScheduler(log *slog.Logger) *TickScheduler {
	if log == nil {
		log = slog.Default()
	}
	return &TickScheduler{
		log:      log,
		queue:    newTaskQueue(),
		inbox:    make(chan func(), 64),
		tickRate: time.Second / TicksPerSecond,
	}
}

// Start begins the scheduler's tick loop.
func (s *TickScheduler) Start() {
	s.stopMu.Lock()
	defer s.stopMu.Unlock()
	if s.running.Swap(true) {
		return // Already running
	}
	s.stopCh = make(chan struct{})
	s.doneCh = make(chan struct{})
	go s.tickLoop()
}

// Stop gracefully shuts down the tick loop. Pending tasks stay queued.
func (s *TickScheduler) Stop() {
	s.stopMu.Lock()
	defer s.stopMu.Unlock()
	if !s.running.Load() {
		return // Not running
	}
	close(s.stopCh)
	<-s.doneCh
	s.running.Store(false)
}

// tickLoop is the main scheduler loop.
func (s *TickScheduler) tickLoop() {
	defer close(s.doneCh)

	ticker := time.NewTicker(s.tickRate)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopCh:
			// Calls accepted before Stop still complete.
			for {
				select {
				case fn := <-s.inbox:
					s.exec.Lock()
					fn()
					s.exec.Unlock()
				default:
					return
				}
			}

		case <-ticker.C:
			s.exec.Lock()
			s.step()
			s.exec.Unlock()

		case fn := <-s.inbox:
			s.exec.Lock()
			fn()
			s.exec.Unlock()
		}
	}
}

// Advance runs n ticks synchronously. It must not be used while the loop runs.
func (s *TickScheduler) Advance(n int) {
	s.exec.Lock()
	defer s.exec.Unlock()
	for i := 0; i < n; i++ {
		s.step()
	}
}

// Tick returns the current tick number.
func (s *TickScheduler) Tick() uint64 {
	return s.tickNumber.Load()
}

// Pending returns the number of tasks that are scheduled and not cancelled.
func (s *TickScheduler) Pending() int {
	return s.queue.Pending()
}

// Do runs fn on the scheduler goroutine and waits for it. Calling Do from a
// scheduled callback deadlocks; callbacks already own the state.
func (s *TickScheduler) Do(fn func()) {
	s.stopMu.RLock()
	if !s.running.Load() {
		s.stopMu.RUnlock()
		s.exec.Lock()
		defer s.exec.Unlock()
		s.run("call", fn)
		return
	}
	done := make(chan struct{})
	s.inbox <- func() {
		defer close(done)
		s.run("call", fn)
	}
	s.stopMu.RUnlock()
	<-done
}

// ScheduleOnce runs fn once after delay ticks. A delay below one tick runs fn
// on the next tick.
func (s *TickScheduler) ScheduleOnce(delay int, fn func()) *TaskHandle {
	return s.schedule(delay, 0, fn)
}

// ScheduleRepeating runs fn every period ticks, starting period ticks from now.
func (s *TickScheduler) ScheduleRepeating(period int, fn func()) *TaskHandle {
	if period < 1 {
		period = 1
	}
	return s.schedule(period, uint64(period), fn)
}

func (s *TickScheduler) schedule(delay int, period uint64, fn func()) *TaskHandle {
	if delay < 1 {
		delay = 1
	}
	handle := &TaskHandle{}
	s.queue.Push(&scheduledTask{
		executeAt: s.tickNumber.Load() + uint64(delay),
		fn:        fn,
		period:    period,
		handle:    handle,
	})
	return handle
}

// step executes one scheduler tick.
func (s *TickScheduler) step() {
	now := s.tickNumber.Add(1)

	for _, task := range s.queue.PopDue(now) {
		// An earlier task in this tick may have cancelled this one.
		if task.handle.cancelled.Load() {
			continue
		}
		s.run("task", task.fn)

		if task.period > 0 && !task.handle.cancelled.Load() {
			task.executeAt = now + task.period
			s.queue.Push(task)
			continue
		}
		task.handle.done.Store(true)
	}
}

// run executes fn with panic recovery. A panicking callback is logged and the
// loop keeps going.
func (s *TickScheduler) run(kind string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			err := fmt.Errorf("arena: panic in %s: %v", kind, r)
			s.log.Error(err.Error(), "stack", string(debug.Stack()))
		}
	}()
	fn()
}
