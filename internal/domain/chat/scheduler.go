package chat

import (
	"sync"
	"time"
)

// Task is a deferred reply that can be canceled before it fires.
type Task struct {
	owner    string
	id       uint64
	done     chan struct{}
	timer    *time.Timer
	once     sync.Once
	canceled bool
}

// Done is closed once the task has either run or been canceled.
func (t *Task) Done() <-chan struct{} { return t.done }

// Canceled reports whether the task was stopped before running.
func (t *Task) Canceled() bool {
	select {
	case <-t.done:
		return t.canceled
	default:
		return false
	}
}

func (t *Task) finish(canceled bool) bool {
	finished := false
	t.once.Do(func() {
		t.canceled = canceled
		close(t.done)
		finished = true
	})
	return finished
}

// Scheduler runs deferred replies grouped by owner so that tearing down a
// session drops all of its pending replies.
type Scheduler struct {
	mu      sync.Mutex
	seq     uint64
	pending map[string]map[uint64]*Task
}

// NewScheduler constructs an empty scheduler.
func NewScheduler() *Scheduler {
	return &Scheduler{pending: make(map[string]map[uint64]*Task)}
}

// Schedule runs fn after delay unless the task is canceled first.
func (s *Scheduler) Schedule(owner string, delay time.Duration, fn func()) *Task {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq++
	id := s.seq
	task := &Task{owner: owner, id: id, done: make(chan struct{})}
	// the callback blocks on s.mu until the task is registered
	task.timer = time.AfterFunc(delay, func() {
		s.forget(owner, id)
		task.once.Do(func() {
			fn()
			close(task.done)
		})
	})
	if s.pending[owner] == nil {
		s.pending[owner] = make(map[uint64]*Task)
	}
	s.pending[owner][id] = task
	return task
}

// Cancel stops a single task. It reports false if the task already ran.
func (s *Scheduler) Cancel(task *Task) bool {
	if task == nil {
		return false
	}
	task.timer.Stop()
	s.forget(task.owner, task.id)
	return task.finish(true)
}

// CancelOwner stops every pending task of owner and returns how many were dropped.
func (s *Scheduler) CancelOwner(owner string) int {
	s.mu.Lock()
	tasks := s.pending[owner]
	delete(s.pending, owner)
	s.mu.Unlock()

	dropped := 0
	for _, task := range tasks {
		if s.Cancel(task) {
			dropped++
		}
	}
	return dropped
}

// Pending counts tasks that have not fired yet for owner.
func (s *Scheduler) Pending(owner string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending[owner])
}

func (s *Scheduler) forget(owner string, id uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	tasks := s.pending[owner]
	delete(tasks, id)
	if len(tasks) == 0 {
		delete(s.pending, owner)
	}
}
