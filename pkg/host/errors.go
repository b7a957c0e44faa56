package host

import (
	"fmt"

	"github.com/tyrbujac/vst3host/pkg/vst3"
)

// ComponentCreateError reports that a module exposed no usable audio class
// or that instantiating the selected class failed.
type ComponentCreateError struct {
	Path   string
	Reason string
}

func (e *ComponentCreateError) Error() string {
	return fmt.Sprintf("create component from %q: %s", e.Path, e.Reason)
}

// ComponentInitError reports a non-success return from the component's
// initialize call.
type ComponentInitError struct {
	Plugin string
	Result vst3.Result
}

func (e *ComponentInitError) Error() string {
	return fmt.Sprintf("initialize component %q: plugin returned %d", e.Plugin, e.Result)
}

// ProcessingError reports a failed realtime process call. It is never
// fatal to the instance: output buffer contents are undefined for the
// failed block, but deactivation and reuse remain valid.
type ProcessingError struct {
	Reason string
	Result vst3.Result
}

func (e *ProcessingError) Error() string {
	if e.Result != vst3.ResultOK {
		return fmt.Sprintf("process audio: %s (plugin returned %d)", e.Reason, e.Result)
	}
	return fmt.Sprintf("process audio: %s", e.Reason)
}

// StateFormatError reports a malformed state record. The instance's
// current state is left unmodified.
type StateFormatError struct {
	Reason string
}

func (e *StateFormatError) Error() string {
	return fmt.Sprintf("state record: %s", e.Reason)
}

// NoEditorError reports an editor operation on an instance that has no
// editor available, or one attempted out of order.
type NoEditorError struct {
	Reason string
}

func (e *NoEditorError) Error() string {
	return fmt.Sprintf("editor: %s", e.Reason)
}

// UnsupportedPlatformError reports that the plugin's view cannot attach to
// the host window's platform type.
type UnsupportedPlatformError struct {
	PlatformType string
}

func (e *UnsupportedPlatformError) Error() string {
	return fmt.Sprintf("plugin view does not support platform type %q", e.PlatformType)
}

// PluginProtocolError reports an unexpected non-success return from a
// capability call not covered by a narrower error type.
type PluginProtocolError struct {
	Op     string
	Reason string
	Result vst3.Result
}

func (e *PluginProtocolError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("%s: %s (plugin returned %d)", e.Op, e.Reason, e.Result)
	}
	return fmt.Sprintf("%s: plugin returned %d", e.Op, e.Result)
}
