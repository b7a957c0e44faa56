// Package vst3 defines the host-facing surface of the VST3 plugin ABI:
// result codes, class descriptors, capability interfaces and the value
// types exchanged across the module boundary. The binary marshalling layer
// that backs these interfaces lives outside this repository; everything
// here consumes plugin objects exactly as the ABI specifies them.
package vst3

// Result mirrors the ABI's tresult. Zero is success; any other value is a
// plugin-defined failure code.
type Result int32

// Result codes - we need these as stable values, not symbolic constants
// from a header.
const (
	ResultOK        Result = 0
	ResultTrue      Result = 0 // Same as OK
	ResultFalse     Result = 1
	NotImplemented  Result = -1
	InvalidArgument Result = -2
)

// OK reports whether r is a success code.
func (r Result) OK() bool {
	return r == ResultOK
}

// ClassID identifies a plugin class inside a factory.
type ClassID [16]byte

// Class categories
const (
	CategoryAudioEffect = "Audio Module Class"
)

// Parameter types
type (
	ParamID    = uint32
	ParamValue = float64
)

// Parameter flags
const (
	ParamCanAutomate int32 = 1 << 0
	ParamIsReadOnly  int32 = 1 << 1
	ParamIsBypass    int32 = 1 << 16
)

// ParameterInfo describes a single controller parameter.
type ParameterInfo struct {
	ID           ParamID
	Title        string
	ShortTitle   string
	Units        string
	StepCount    int32
	DefaultValue ParamValue
	Flags        int32
}

// Media types for bus activation
type MediaType int32

const (
	MediaTypeAudio MediaType = 0
	MediaTypeEvent MediaType = 1
)

// Bus directions
type BusDirection int32

const (
	BusDirectionInput  BusDirection = 0
	BusDirectionOutput BusDirection = 1
)

// Restart flags passed to ComponentHandler.RestartComponent.
type RestartFlags int32

const (
	RestartReloadComponent    RestartFlags = 1 << 0
	RestartIOChanged          RestartFlags = 1 << 1
	RestartParamValuesChanged RestartFlags = 1 << 2
	RestartLatencyChanged     RestartFlags = 1 << 3
)

// View types requested from EditController.CreateView.
const (
	ViewTypeEditor = "editor"
)

// Platform types a view may be attached to. The window handle passed with
// them is opaque to the host.
const (
	PlatformTypeHWND      = "HWND"
	PlatformTypeNSView    = "NSView"
	PlatformTypeX11Window = "X11EmbedWindowID"
)

// ViewRect is the view geometry exchanged with PlugView.
type ViewRect struct {
	Left   int32
	Top    int32
	Right  int32
	Bottom int32
}

// Width returns the horizontal extent of the rect.
func (r ViewRect) Width() int32 {
	return r.Right - r.Left
}

// Height returns the vertical extent of the rect.
func (r ViewRect) Height() int32 {
	return r.Bottom - r.Top
}
