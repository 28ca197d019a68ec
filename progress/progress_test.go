package progress

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProgress_Update(t *testing.T) {
	tracker := New()
	tracker.Update(Delta{Mutations: 2, Detections: 1, CyclesFound: 3})
	tracker.Update(Delta{Preemptions: 1, Terminations: 1})

	counters := tracker.Snapshot()
	assert.Equal(t, 2, counters.Mutations)
	assert.Equal(t, 1, counters.Detections)
	assert.Equal(t, 3, counters.CyclesFound)
	assert.Equal(t, 1, counters.Preemptions)
	assert.Equal(t, 1, counters.Terminations)
	assert.False(t, counters.StartedAt.IsZero())
}

func TestProgress_OnChange(t *testing.T) {
	tracker := New()
	var seen []Counters
	tracker.OnChange(func(c Counters) { seen = append(seen, c) })
	tracker.Update(Delta{Mutations: 1})
	tracker.Update(Delta{Mutations: 1})
	assert.Len(t, seen, 2)
	assert.Equal(t, 2, seen[1].Mutations)
}

func TestProgress_NilTolerance(t *testing.T) {
	var tracker *Progress
	tracker.Update(Delta{Mutations: 1})
	assert.Equal(t, Counters{}, tracker.Snapshot())
	assert.Nil(t, FromContext(context.Background()))
	assert.Nil(t, FromContext(nil))
}

func TestWithProgress(t *testing.T) {
	tracker := New()
	ctx := WithProgress(context.Background(), tracker)
	FromContext(ctx).Update(Delta{Detections: 1})
	assert.Equal(t, 1, tracker.Snapshot().Detections)
}
