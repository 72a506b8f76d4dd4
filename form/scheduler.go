package form

import (
	"go.uber.org/zap"
)

const defaultMaxPasses = 16

// Scheduler batches work until the owner settles it. Jobs queued under the
// same key within one pass run once, and settle effects run once per pass in
// which values changed.
type Scheduler struct {
	jobs   []func()
	queued map[string]bool

	effects map[int]func()
	order   []int
	nextID  int

	dirty     bool
	maxPasses int
	logger    *zap.Logger
}

func NewScheduler(logger *zap.Logger, maxPasses int) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if maxPasses <= 0 {
		maxPasses = defaultMaxPasses
	}
	return &Scheduler{
		queued:    make(map[string]bool),
		effects:   make(map[int]func()),
		maxPasses: maxPasses,
		logger:    logger,
	}
}

// Queue adds fn to the next pass unless a job with the same key is already
// waiting.
func (s *Scheduler) Queue(key string, fn func()) {
	if s.queued[key] {
		return
	}
	s.queued[key] = true
	s.jobs = append(s.jobs, fn)
}

// MarkDirty records that values changed since the last settle.
func (s *Scheduler) MarkDirty() {
	s.dirty = true
}

// Subscribe registers a settle effect. Effects run in subscription order.
func (s *Scheduler) Subscribe(fn func()) (cancel func()) {
	id := s.nextID
	s.nextID++
	s.effects[id] = fn
	s.order = append(s.order, id)

	return func() {
		if _, ok := s.effects[id]; !ok {
			return
		}
		delete(s.effects, id)
		for i, existing := range s.order {
			if existing == id {
				s.order = append(s.order[:i:i], s.order[i+1:]...)
				break
			}
		}
	}
}

// Pending reports whether a Flush would do any work.
func (s *Scheduler) Pending() bool {
	return s.dirty || len(s.jobs) > 0
}

// Flush runs passes until nothing is pending and returns how many passes ran.
// Each pass first runs the settle effects (when values changed) and then the
// queued jobs. Work still pending after the pass limit is left for the next
// Flush.
func (s *Scheduler) Flush() int {
	passes := 0
	for s.Pending() {
		if passes == s.maxPasses {
			s.logger.Warn("scheduler did not settle", zap.Int("passes", passes))
			break
		}
		passes++

		if s.dirty {
			s.dirty = false
			for _, id := range append([]int(nil), s.order...) {
				if fn, ok := s.effects[id]; ok {
					fn()
				}
			}
		}

		jobs := s.jobs
		s.jobs = nil
		s.queued = make(map[string]bool)
		for _, job := range jobs {
			job()
		}
	}
	return passes
}
