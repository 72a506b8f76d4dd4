package form

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestScheduler_QueueDeduplicates(t *testing.T) {
	s := NewScheduler(zap.NewNop(), 0)
	runs := 0
	s.Queue("a", func() { runs++ })
	s.Queue("a", func() { runs++ })
	s.Queue("b", func() { runs++ })

	assert.True(t, s.Pending())
	assert.Equal(t, 1, s.Flush())
	assert.Equal(t, 2, runs)
	assert.False(t, s.Pending())
}

func TestScheduler_EffectsRunOncePerDirtyPass(t *testing.T) {
	s := NewScheduler(nil, 0)
	runs := 0
	s.Subscribe(func() { runs++ })

	s.Flush()
	assert.Equal(t, 0, runs)

	s.MarkDirty()
	s.MarkDirty()
	s.Flush()
	assert.Equal(t, 1, runs)
}

func TestScheduler_EffectOrderAndCancel(t *testing.T) {
	s := NewScheduler(nil, 0)
	var order []string
	s.Subscribe(func() { order = append(order, "first") })
	cancel := s.Subscribe(func() { order = append(order, "second") })
	s.Subscribe(func() { order = append(order, "third") })

	s.MarkDirty()
	s.Flush()
	assert.Equal(t, []string{"first", "second", "third"}, order)

	cancel()
	cancel()
	order = nil
	s.MarkDirty()
	s.Flush()
	assert.Equal(t, []string{"first", "third"}, order)
}

func TestScheduler_JobsQueuedDuringFlushRunNextPass(t *testing.T) {
	s := NewScheduler(nil, 0)
	var order []string
	s.Queue("outer", func() {
		order = append(order, "outer")
		s.Queue("inner", func() { order = append(order, "inner") })
	})

	assert.Equal(t, 2, s.Flush())
	assert.Equal(t, []string{"outer", "inner"}, order)
}

func TestScheduler_PassLimit(t *testing.T) {
	s := NewScheduler(nil, 3)
	s.Subscribe(func() { s.MarkDirty() })

	s.MarkDirty()
	assert.Equal(t, 3, s.Flush())
	assert.True(t, s.Pending())
}
