package host

import (
	"github.com/sirupsen/logrus"

	"github.com/tyrbujac/vst3host/pkg/vst3"
)

// Window is the host-owned native container an editor view attaches into.
// Handle is the opaque platform identifier forwarded to the view; Resize
// is the single piece of window-system glue the embedder needs, invoked
// when the plugin requests a new editor size.
type Window interface {
	Handle() uintptr
	PlatformType() string
	Resize(width, height int32) error
}

// editorSession tracks the per-instance editor state machine:
// Closed -> Open -> Attached -> Open -> Closed. Attached nests inside
// Open; detaching returns to Open, not Closed.
type editorSession struct {
	view   vst3.PlugView
	frame  *plugFrame
	window Window
	open   bool
}

// HasEditor probes whether the plugin can produce an editor view. The
// probe view is released immediately.
func (inst *Instance) HasEditor() bool {
	if inst.controller == nil {
		return false
	}
	view := inst.controller.CreateView(vst3.ViewTypeEditor)
	if view == nil {
		return false
	}
	view.Release()
	return true
}

// OpenEditor requests an editor view from the controller. Idempotent when
// already open. Fails with NoEditorError when the instance has no
// controller or the plugin produces no view.
func (inst *Instance) OpenEditor() error {
	if inst.controller == nil {
		return &NoEditorError{Reason: "no edit controller available"}
	}
	if inst.editor.open {
		return nil
	}
	view := inst.controller.CreateView(vst3.ViewTypeEditor)
	if view == nil {
		return &NoEditorError{Reason: "plugin produced no editor view"}
	}
	inst.editor.view = view
	inst.editor.open = true
	inst.log.Debug("Editor opened")
	return nil
}

// EditorOpen reports whether an editor view exists.
func (inst *Instance) EditorOpen() bool {
	return inst.editor.open
}

// EditorSize returns the view's current size in pixels.
func (inst *Instance) EditorSize() (width, height int32, err error) {
	if inst.editor.view == nil {
		return 0, 0, &NoEditorError{Reason: "editor not open"}
	}
	rect, res := inst.editor.view.GetSize()
	if !res.OK() {
		return 0, 0, &PluginProtocolError{Op: "editor size", Reason: "view rejected size query", Result: res}
	}
	return rect.Width(), rect.Height(), nil
}

// AttachEditor embeds the open editor view into the host window. If the
// view is already attached elsewhere it is fully detached first. The
// window's platform type is verified against the view before anything
// else, and the resize callback is installed with SetFrame strictly
// before the attach call - both ends of many plugins enforce that
// ordering by crashing.
func (inst *Instance) AttachEditor(win Window) error {
	if !inst.editor.open || inst.editor.view == nil {
		return &NoEditorError{Reason: "editor not open - call OpenEditor first"}
	}
	if win == nil {
		return &NoEditorError{Reason: "nil window"}
	}
	view := inst.editor.view

	if inst.editor.window != nil {
		view.SetFrame(nil)
		view.Removed()
		inst.editor.window = nil
	}

	if res := view.IsPlatformTypeSupported(win.PlatformType()); res != vst3.ResultTrue {
		return &UnsupportedPlatformError{PlatformType: win.PlatformType()}
	}

	if inst.editor.frame == nil {
		inst.editor.frame = &plugFrame{inst: inst}
	}
	if res := view.SetFrame(inst.editor.frame); !res.OK() {
		inst.log.WithField("result", int32(res)).Warn("View rejected resize frame")
	}

	if res := view.Attached(win.Handle(), win.PlatformType()); !res.OK() {
		return &PluginProtocolError{Op: "attach editor", Reason: "view rejected attach", Result: res}
	}
	inst.editor.window = win
	inst.log.WithField("platform", win.PlatformType()).Debug("Editor attached")
	return nil
}

// AttachedWindow returns the window the editor is currently attached to,
// or nil.
func (inst *Instance) AttachedWindow() Window {
	return inst.editor.window
}

// CloseEditor clears the resize callback, detaches from any window,
// releases the view and returns the session to Closed. Idempotent and
// safe from any state.
func (inst *Instance) CloseEditor() {
	if inst.editor.view != nil {
		inst.editor.view.SetFrame(nil)
		if inst.editor.window != nil {
			inst.editor.view.Removed()
			inst.editor.window = nil
		}
		inst.editor.view.Release()
		inst.editor.view = nil
	}
	inst.editor.frame = nil
	if inst.editor.open {
		inst.log.Debug("Editor closed")
	}
	inst.editor.open = false
}

// plugFrame is the resize callback installed on the view. The plugin may
// call ResizeView at any time while attached, including synchronously from
// inside a resize it triggered itself; the guard answers such reentrant
// requests negatively instead of reprocessing them.
type plugFrame struct {
	inst     *Instance
	resizing bool
}

// ResizeView implements vst3.PlugFrame: resize the host container to the
// requested size, then tell the view about the new size only if its own
// cached size actually differs.
func (f *plugFrame) ResizeView(view vst3.PlugView, newSize vst3.ViewRect) vst3.Result {
	if view == nil {
		return vst3.InvalidArgument
	}
	if f.resizing {
		return vst3.ResultFalse
	}
	f.resizing = true
	defer func() { f.resizing = false }()

	width, height := newSize.Width(), newSize.Height()
	if win := f.inst.editor.window; win != nil {
		if err := win.Resize(width, height); err != nil {
			f.inst.log.WithFields(logrus.Fields{
				"width":  width,
				"height": height,
			}).WithError(err).Warn("Host window resize failed")
		}
	}

	if current, res := view.GetSize(); res.OK() {
		if current.Width() != width || current.Height() != height {
			view.OnSize(newSize)
		}
	}
	return vst3.ResultOK
}
