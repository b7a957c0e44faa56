package midi

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEventTypeString(t *testing.T) {
	assert.Equal(t, "NoteOn", EventTypeNoteOn.String())
	assert.Equal(t, "NoteOff", EventTypeNoteOff.String())
	assert.Equal(t, "ControlChange", EventTypeControlChange.String())
	assert.Equal(t, "EventType(42)", EventType(42).String())
}

func TestNormalizeVelocity(t *testing.T) {
	assert.Equal(t, float32(0), NormalizeVelocity(0))
	assert.Equal(t, float32(1), NormalizeVelocity(127))
	assert.InDelta(t, 0.5, float64(NormalizeVelocity(64)), 0.01)
}
