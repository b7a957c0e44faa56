package host

import (
	"fmt"

	"github.com/tyrbujac/vst3host/pkg/midi"
)

// Process runs one realtime block through the plugin. The four buffers are
// caller-owned and aliased into the fixed stereo descriptors without
// copying; frames must not exceed the block size negotiated at
// initialization. Pending queued events ride along as the input event
// stream - attached only when non-empty, because an empty-but-present
// stream means something different to some plugins than no stream at all.
// The queue is cleared unconditionally afterwards, consumed or not.
//
// A ProcessingError means the output buffer contents are undefined for
// this block. It is not fatal: the instance stays active and reusable.
//
// This method runs on the audio thread, does not allocate and does not
// log.
func (inst *Instance) Process(inLeft, inRight, outLeft, outRight []float32, frames int32) error {
	if !inst.active || inst.processor == nil {
		return &ProcessingError{Reason: "instance not active"}
	}
	if frames < 0 || frames > inst.maxBlockSize {
		return &ProcessingError{Reason: "frame count exceeds negotiated block size"}
	}
	n := int(frames)
	if len(inLeft) < n || len(inRight) < n || len(outLeft) < n || len(outRight) < n {
		return &ProcessingError{Reason: "buffer shorter than frame count"}
	}

	inst.inBus[0].Channels[0] = inLeft[:n]
	inst.inBus[0].Channels[1] = inRight[:n]
	inst.outBus[0].Channels[0] = outLeft[:n]
	inst.outBus[0].Channels[1] = outRight[:n]
	inst.data.NumSamples = frames

	if inst.events.Len() > 0 {
		inst.data.InputEvents = inst.events
	} else {
		inst.data.InputEvents = nil
	}

	res := inst.processor.Process(&inst.data)

	// Events are single-use per block.
	inst.events.Clear()

	if !res.OK() {
		return &ProcessingError{Reason: "plugin process call failed", Result: res}
	}
	return nil
}

// QueueEvent appends a note event for delivery with the next Process call.
// Velocities are integer 0-127 and normalized to 0.0-1.0 on the way in;
// the sample offset must fall inside the current block. Control-change
// events are accepted as a successful no-op (deferred feature). Returns
// midi.QueueFullError when the 128-event capacity is exhausted; the caller
// decides whether to drop or coalesce.
func (inst *Instance) QueueEvent(eventType midi.EventType, channel, data1, data2 uint8, sampleOffset int32) error {
	if sampleOffset < 0 || sampleOffset >= inst.maxBlockSize {
		return fmt.Errorf("sample offset %d outside block of %d frames", sampleOffset, inst.maxBlockSize)
	}
	return inst.events.Enqueue(eventType, channel, data1, data2, sampleOffset)
}

// PendingEvents reports the number of events queued for the next block.
func (inst *Instance) PendingEvents() int {
	return inst.events.Len()
}
