package vst3

// Process modes
const (
	ProcessModeRealtime int32 = 0
	ProcessModeOffline  int32 = 1
)

// Symbolic sample sizes
const (
	Sample32 int32 = 0
	Sample64 int32 = 1
)

// ProcessSetup carries the processing configuration negotiated once before
// activation.
type ProcessSetup struct {
	ProcessMode        int32
	SymbolicSampleSize int32
	MaxSamplesPerBlock int32
	SampleRate         float64
}

// AudioBusBuffers is the fixed channel layout of one bus for one process
// call. Channel slices alias caller-owned memory; neither side copies.
type AudioBusBuffers struct {
	NumChannels  int32
	SilenceFlags uint64
	Channels     [][]float32
}

// ProcessData is the argument block of the single realtime process call.
// InputEvents is nil when no events are pending for the block; an empty but
// present list has different semantics to some plugins than no list.
type ProcessData struct {
	ProcessMode        int32
	SymbolicSampleSize int32
	NumSamples         int32
	Inputs             []AudioBusBuffers
	Outputs            []AudioBusBuffers
	InputEvents        EventList
}

// EventType discriminates the events delivered alongside an audio block.
type EventType int32

const (
	EventNoteOn  EventType = 0
	EventNoteOff EventType = 1
)

// Event flags
const (
	EventIsLive uint16 = 1
)

// Event is one timestamped note event. SampleOffset is the sample-accurate
// position inside the current block, in [0, blockSize).
type Event struct {
	BusIndex     int32
	SampleOffset int32
	Flags        uint16
	Type         EventType
	Channel      int16
	Pitch        int16
	Velocity     float32 // normalized 0.0 - 1.0
	NoteID       int32
	Tuning       float32
}

// EventList is the read-only event stream a plugin consumes during one
// process call.
type EventList interface {
	EventCount() int32
	Event(index int32) (Event, Result)
}
