package host

import (
	"encoding/binary"

	"github.com/tyrbujac/vst3host/pkg/vst3"
)

// State record layout:
//
//	[4 bytes processor length, uint32]
//	[4 bytes controller length, uint32]
//	[processor blob] [controller blob]
//
// Lengths are native byte order, so records are not portable across host
// architectures. A controller length of zero means no controller state was
// captured.
const stateHeaderSize = 8

// ExportState captures the processor's and, independently, the
// controller's opaque state blobs into one length-prefixed record. A
// controller that refuses the query degrades to an empty controller blob;
// a processor refusal fails the export.
func (inst *Instance) ExportState() ([]byte, error) {
	procStream := vst3.NewMemoryStream()
	if res := inst.component.GetState(procStream); !res.OK() {
		return nil, &PluginProtocolError{Op: "export state", Reason: "component rejected state query", Result: res}
	}
	procBlob := procStream.Bytes()

	var ctrlBlob []byte
	if inst.controller != nil {
		ctrlStream := vst3.NewMemoryStream()
		if res := inst.controller.GetState(ctrlStream); res.OK() {
			ctrlBlob = ctrlStream.Bytes()
		} else {
			inst.log.WithField("result", int32(res)).Warn("Controller rejected state query")
		}
	}

	record := make([]byte, stateHeaderSize+len(procBlob)+len(ctrlBlob))
	binary.NativeEndian.PutUint32(record[0:4], uint32(len(procBlob)))
	binary.NativeEndian.PutUint32(record[4:8], uint32(len(ctrlBlob)))
	copy(record[stateHeaderSize:], procBlob)
	copy(record[stateHeaderSize+len(procBlob):], ctrlBlob)
	return record, nil
}

// ImportState validates and applies a previously exported record. The
// processor blob is authoritative: its rejection fails the import. It is
// then replayed to the controller's component-state sync point so
// parameter displays follow. The controller blob is a display-only
// convenience; its rejection is logged and swallowed.
//
// Malformed records fail with StateFormatError before anything is applied,
// leaving the instance's current state unmodified.
func (inst *Instance) ImportState(record []byte) error {
	if len(record) < stateHeaderSize {
		return &StateFormatError{Reason: "record shorter than 8-byte header"}
	}
	procLen := binary.NativeEndian.Uint32(record[0:4])
	ctrlLen := binary.NativeEndian.Uint32(record[4:8])
	if uint64(stateHeaderSize)+uint64(procLen)+uint64(ctrlLen) > uint64(len(record)) {
		return &StateFormatError{Reason: "declared blob lengths exceed record size"}
	}

	pLen, cLen := int(procLen), int(ctrlLen)
	procBlob := record[stateHeaderSize : stateHeaderSize+pLen]
	ctrlBlob := record[stateHeaderSize+pLen : stateHeaderSize+pLen+cLen]

	if pLen > 0 {
		if res := inst.component.SetState(vst3.NewMemoryStreamFrom(procBlob)); !res.OK() {
			return &PluginProtocolError{Op: "import state", Reason: "component rejected state", Result: res}
		}
		// Sync the controller's parameter display from the same blob.
		if inst.controller != nil {
			inst.controller.SetComponentState(vst3.NewMemoryStreamFrom(procBlob))
		}
	}

	if cLen > 0 && inst.controller != nil {
		if res := inst.controller.SetState(vst3.NewMemoryStreamFrom(ctrlBlob)); !res.OK() {
			inst.log.WithField("result", int32(res)).Warn("Controller rejected its state blob")
		}
	}
	return nil
}
