package midi

import (
	"sync"

	"github.com/tyrbujac/vst3host/pkg/vst3"
)

// QueueCapacity is the fixed number of events a queue holds between two
// process calls.
const QueueCapacity = 128

// Queue is a bounded FIFO of note events accumulated between process
// calls. Events are single-use per block: the processing engine drains the
// queue unconditionally after every call. Storage is a fixed array so the
// audio thread never allocates.
type Queue struct {
	mu     sync.Mutex
	events [QueueCapacity]vst3.Event
	count  int32
}

// NewQueue returns an empty queue.
func NewQueue() *Queue {
	return &Queue{}
}

// Enqueue appends one structured event. Control-change events are accepted
// and discarded (the feature is deferred, not an error) so callers need not
// distinguish types yet. Returns QueueFullError at capacity and
// UnknownEventTypeError for codes outside the supported set.
func (q *Queue) Enqueue(eventType EventType, channel, data1, data2 uint8, sampleOffset int32) error {
	var vt vst3.EventType
	switch eventType {
	case EventTypeNoteOn:
		vt = vst3.EventNoteOn
	case EventTypeNoteOff:
		vt = vst3.EventNoteOff
	case EventTypeControlChange:
		// Deferred: CC needs the parameter-change path, not the event list.
		return nil
	default:
		return &UnknownEventTypeError{Type: eventType}
	}

	q.mu.Lock()
	defer q.mu.Unlock()

	if q.count >= QueueCapacity {
		return &QueueFullError{Capacity: QueueCapacity}
	}

	q.events[q.count] = vst3.Event{
		BusIndex:     0,
		SampleOffset: sampleOffset,
		Flags:        vst3.EventIsLive,
		Type:         vt,
		Channel:      int16(channel),
		Pitch:        int16(data1),
		Velocity:     NormalizeVelocity(data2),
		NoteID:       -1,
	}
	q.count++
	return nil
}

// Len reports the number of pending events.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return int(q.count)
}

// Clear drops all pending events.
func (q *Queue) Clear() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.count = 0
}

// EventCount implements vst3.EventList.
func (q *Queue) EventCount() int32 {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.count
}

// Event implements vst3.EventList.
func (q *Queue) Event(index int32) (vst3.Event, vst3.Result) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if index < 0 || index >= q.count {
		return vst3.Event{}, vst3.InvalidArgument
	}
	return q.events[index], vst3.ResultOK
}
