package host

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tyrbujac/vst3host/internal/testplug"
)

func TestStateRoundTrip(t *testing.T) {
	_, src := loadFixture(t)
	fixtureComponent(t, src).SetGain(0.25)
	require.True(t, fixtureController(t, src).SetParamNormalized(testplug.GainParamID, 0.25).OK())

	record, err := src.ExportState()
	require.NoError(t, err)

	// Header plus one 8-byte gain blob per side.
	require.Len(t, record, 8+8+8)
	assert.Equal(t, uint32(8), binary.NativeEndian.Uint32(record[0:4]))
	assert.Equal(t, uint32(8), binary.NativeEndian.Uint32(record[4:8]))

	_, dst := loadFixture(t)
	require.NoError(t, dst.ImportState(record))

	assert.Equal(t, 0.25, fixtureComponent(t, dst).Gain())
	// The controller display follows the processor blob.
	assert.Equal(t, 0.25, fixtureController(t, dst).Gain())
}

func TestImportStateTooShort(t *testing.T) {
	_, inst := loadFixture(t)
	var fmtErr *StateFormatError
	require.ErrorAs(t, inst.ImportState(nil), &fmtErr)
	require.ErrorAs(t, inst.ImportState(make([]byte, 7)), &fmtErr)
}

func TestImportStateDeclaredLengthsExceedRecord(t *testing.T) {
	_, inst := loadFixture(t)

	record := make([]byte, 16)
	binary.NativeEndian.PutUint32(record[0:4], 100)
	binary.NativeEndian.PutUint32(record[4:8], 0)

	var fmtErr *StateFormatError
	require.ErrorAs(t, inst.ImportState(record), &fmtErr)

	// Lengths that only overflow when summed must not slip past.
	binary.NativeEndian.PutUint32(record[0:4], ^uint32(0))
	binary.NativeEndian.PutUint32(record[4:8], ^uint32(0))
	require.ErrorAs(t, inst.ImportState(record), &fmtErr)
}

func TestImportStateMalformedLeavesStateUntouched(t *testing.T) {
	_, inst := loadFixture(t)
	comp := fixtureComponent(t, inst)
	comp.SetGain(0.75)

	record := make([]byte, 10)
	binary.NativeEndian.PutUint32(record[0:4], 100)

	require.Error(t, inst.ImportState(record))
	assert.Equal(t, 0.75, comp.Gain())
}

func TestImportStateEmptyBlobs(t *testing.T) {
	_, inst := loadFixture(t)
	comp := fixtureComponent(t, inst)
	comp.SetGain(0.75)

	// A valid record with two zero-length blobs applies nothing.
	require.NoError(t, inst.ImportState(make([]byte, 8)))
	assert.Equal(t, 0.75, comp.Gain())
}

func TestExportImportWithoutController(t *testing.T) {
	_, inst := loadFixture(t)
	inst.controller = nil
	fixtureComponent(t, inst).SetGain(0.5)

	record, err := inst.ExportState()
	require.NoError(t, err)
	assert.Equal(t, uint32(0), binary.NativeEndian.Uint32(record[4:8]))

	_, dst := loadFixture(t)
	dst.controller = nil
	require.NoError(t, dst.ImportState(record))
	assert.Equal(t, 0.5, fixtureComponent(t, dst).Gain())
}
