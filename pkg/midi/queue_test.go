package midi

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tyrbujac/vst3host/pkg/vst3"
)

func TestEnqueueNoteEvents(t *testing.T) {
	q := NewQueue()

	require.NoError(t, q.Enqueue(EventTypeNoteOn, 0, 60, 100, 10))
	require.NoError(t, q.Enqueue(EventTypeNoteOff, 1, 60, 0, 20))
	assert.Equal(t, 2, q.Len())

	ev, res := q.Event(0)
	require.True(t, res.OK())
	assert.Equal(t, vst3.EventNoteOn, ev.Type)
	assert.Equal(t, int16(0), ev.Channel)
	assert.Equal(t, int16(60), ev.Pitch)
	assert.Equal(t, int32(10), ev.SampleOffset)
	assert.Equal(t, int32(-1), ev.NoteID)
	assert.Equal(t, vst3.EventIsLive, ev.Flags)
	assert.InDelta(t, 100.0/127.0, float64(ev.Velocity), 1e-6)

	ev, res = q.Event(1)
	require.True(t, res.OK())
	assert.Equal(t, vst3.EventNoteOff, ev.Type)
	assert.Equal(t, float32(0), ev.Velocity)
}

func TestEnqueuePreservesOrder(t *testing.T) {
	q := NewQueue()
	for i := 0; i < 5; i++ {
		require.NoError(t, q.Enqueue(EventTypeNoteOn, 0, uint8(60+i), 100, int32(i)))
	}
	for i := int32(0); i < 5; i++ {
		ev, res := q.Event(i)
		require.True(t, res.OK())
		assert.Equal(t, i, ev.SampleOffset)
		assert.Equal(t, int16(60)+int16(i), ev.Pitch)
	}
}

func TestEnqueueFull(t *testing.T) {
	q := NewQueue()
	for i := 0; i < QueueCapacity; i++ {
		require.NoError(t, q.Enqueue(EventTypeNoteOn, 0, 64, 100, 0))
	}
	assert.Equal(t, QueueCapacity, q.Len())

	err := q.Enqueue(EventTypeNoteOn, 0, 64, 100, 0)
	var full *QueueFullError
	require.ErrorAs(t, err, &full)
	assert.Equal(t, QueueCapacity, full.Capacity)

	// The failed enqueue must not corrupt the queue.
	assert.Equal(t, QueueCapacity, q.Len())

	q.Clear()
	assert.Equal(t, 0, q.Len())
	assert.NoError(t, q.Enqueue(EventTypeNoteOn, 0, 64, 100, 0))
}

func TestEnqueueControlChangeIsNoop(t *testing.T) {
	q := NewQueue()
	require.NoError(t, q.Enqueue(EventTypeControlChange, 0, 7, 127, 0))
	assert.Equal(t, 0, q.Len())
}

func TestEnqueueUnknownType(t *testing.T) {
	q := NewQueue()
	err := q.Enqueue(EventType(99), 0, 0, 0, 0)
	var unknown *UnknownEventTypeError
	require.True(t, errors.As(err, &unknown))
	assert.Equal(t, EventType(99), unknown.Type)
	assert.Equal(t, 0, q.Len())
}

func TestEventOutOfRange(t *testing.T) {
	q := NewQueue()
	require.NoError(t, q.Enqueue(EventTypeNoteOn, 0, 64, 100, 0))

	_, res := q.Event(-1)
	assert.Equal(t, vst3.InvalidArgument, res)
	_, res = q.Event(1)
	assert.Equal(t, vst3.InvalidArgument, res)
}
