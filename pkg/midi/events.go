// Package midi provides the event model and the bounded per-instance queue
// that feeds note events into the realtime process call.
package midi

import "fmt"

// EventType is the external event code accepted by Queue.Enqueue. The
// values match the host's C-era wire codes: 0 note-on, 1 note-off, 2
// control-change.
type EventType uint8

const (
	EventTypeNoteOn EventType = iota
	EventTypeNoteOff
	EventTypeControlChange
)

// String returns a readable name for the event type.
func (t EventType) String() string {
	switch t {
	case EventTypeNoteOn:
		return "NoteOn"
	case EventTypeNoteOff:
		return "NoteOff"
	case EventTypeControlChange:
		return "ControlChange"
	default:
		return fmt.Sprintf("EventType(%d)", uint8(t))
	}
}

// UnknownEventTypeError reports an event code outside the supported set.
type UnknownEventTypeError struct {
	Type EventType
}

func (e *UnknownEventTypeError) Error() string {
	return fmt.Sprintf("unknown MIDI event type %d", uint8(e.Type))
}

// QueueFullError reports an enqueue on a queue already at capacity. The
// caller decides whether to drop or coalesce; the queue does neither.
type QueueFullError struct {
	Capacity int
}

func (e *QueueFullError) Error() string {
	return fmt.Sprintf("event queue full (capacity %d)", e.Capacity)
}

// NormalizeVelocity maps an integer MIDI velocity 0-127 to the normalized
// 0.0-1.0 range plugins expect.
func NormalizeVelocity(v uint8) float32 {
	return float32(v) / 127.0
}
