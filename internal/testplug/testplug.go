// Package testplug is an in-process gain plugin used as a fixture by the
// host tests and the probe tool. It implements the full capability
// surface - component, processor, controller, connection points and an
// editor view - with deliberately simple semantics: one gain parameter,
// output = input * gain, note events counted.
package testplug

import (
	"encoding/binary"
	"math"
	"sync/atomic"

	"github.com/tyrbujac/vst3host/pkg/module"
	"github.com/tyrbujac/vst3host/pkg/vst3"
)

// ModuleName registers the plugin for loading via "builtin:testplug".
const ModuleName = "testplug"

// Path is the loadable path of the builtin module.
const Path = module.BuiltinScheme + ModuleName

var (
	componentID  = vst3.ClassID{0x7e, 0x57, 0x91, 0x06, 0x1a, 0x2b, 0x3c, 0x4d, 0x5e, 0x6f, 0x70, 0x81, 0x92, 0xa3, 0xb4, 0xc5}
	controllerID = vst3.ClassID{0x7e, 0x57, 0x91, 0x06, 0x1a, 0x2b, 0x3c, 0x4d, 0x5e, 0x6f, 0x70, 0x81, 0x92, 0xa3, 0xb4, 0xc6}
)

// GainParamID is the single parameter the plugin exposes.
const GainParamID vst3.ParamID = 100

func init() {
	module.Register(ModuleName, NewFactory)
}

// NewFactory returns a fresh factory. Each Load gets its own so tests
// never share plugin state across instances.
func NewFactory() vst3.Factory {
	return &factory{}
}

type factory struct{}

func (f *factory) Info() vst3.FactoryInfo {
	return vst3.FactoryInfo{Vendor: "vst3host project", URL: "https://github.com/tyrbujac/vst3host"}
}

func (f *factory) ClassInfos() []vst3.ClassInfo {
	return []vst3.ClassInfo{
		{
			ID:            componentID,
			Name:          "Test Gain",
			Category:      vst3.CategoryAudioEffect,
			SubCategories: "Fx|Tools",
			Vendor:        "vst3host project",
			Version:       "1.0.0",
		},
		{
			ID:       controllerID,
			Name:     "Test Gain Controller",
			Category: "Component Controller Class",
			Vendor:   "vst3host project",
			Version:  "1.0.0",
		},
	}
}

func (f *factory) CreateInstance(id vst3.ClassID) vst3.Unknown {
	switch id {
	case componentID:
		return &Component{gain: 1.0}
	case controllerID:
		return &Controller{gain: 1.0}
	}
	return nil
}

// refCount is the shared reference-counting base.
type refCount struct {
	refs uint32
}

func (r *refCount) AddRef() uint32  { return atomic.AddUint32(&r.refs, 1) }
func (r *refCount) Release() uint32 { return atomic.AddUint32(&r.refs, ^uint32(0)) }

// GainMessage carries a gain update over the connection point link.
type GainMessage struct {
	Value float64
}

func writeGain(stream vst3.Stream, gain float64) vst3.Result {
	var buf [8]byte
	binary.NativeEndian.PutUint64(buf[:], math.Float64bits(gain))
	if _, res := stream.Write(buf[:]); !res.OK() {
		return vst3.ResultFalse
	}
	return vst3.ResultOK
}

func readGain(stream vst3.Stream, gain *float64) vst3.Result {
	var buf [8]byte
	n, res := stream.Read(buf[:])
	if !res.OK() || n < 8 {
		return vst3.ResultFalse
	}
	*gain = math.Float64frombits(binary.NativeEndian.Uint64(buf[:]))
	return vst3.ResultOK
}

// Component is the processing half. Exported counters let tests observe
// what actually reached the audio path.
type Component struct {
	refCount

	gain       float64
	setup      vst3.ProcessSetup
	processing bool
	peer       vst3.ConnectionPoint

	Initialized bool
	Terminated  bool
	HostName    string

	// Event delivery observations.
	NotesOn   int
	NotesOff  int
	LastEvent vst3.Event

	// SawEvents records whether the last process call carried an event
	// list at all.
	SawEvents bool

	// FailProcess makes Process return a failure code, for exercising the
	// host's non-fatal processing error path.
	FailProcess bool
}

func (c *Component) Initialize(ctx vst3.HostContext) vst3.Result {
	if ctx != nil {
		c.HostName = ctx.Name()
	}
	c.Initialized = true
	return vst3.ResultOK
}

func (c *Component) Terminate() vst3.Result {
	c.Terminated = true
	return vst3.ResultOK
}

func (c *Component) GetControllerClassID() (vst3.ClassID, vst3.Result) {
	return controllerID, vst3.ResultOK
}

func (c *Component) ActivateBus(mediaType vst3.MediaType, dir vst3.BusDirection, index int32, active bool) vst3.Result {
	if mediaType == vst3.MediaTypeAudio && index == 0 {
		return vst3.ResultOK
	}
	return vst3.InvalidArgument
}

func (c *Component) GetState(stream vst3.Stream) vst3.Result {
	return writeGain(stream, c.gain)
}

func (c *Component) SetState(stream vst3.Stream) vst3.Result {
	return readGain(stream, &c.gain)
}

// Gain exposes the current gain for test assertions.
func (c *Component) Gain() float64 { return c.gain }

// SetGain overrides the gain directly, bypassing the state and message
// paths.
func (c *Component) SetGain(gain float64) { c.gain = gain }

func (c *Component) SetupProcessing(setup vst3.ProcessSetup) vst3.Result {
	if setup.SymbolicSampleSize != vst3.Sample32 {
		return vst3.ResultFalse
	}
	c.setup = setup
	return vst3.ResultOK
}

func (c *Component) CanProcessSampleSize(size int32) vst3.Result {
	if size == vst3.Sample32 {
		return vst3.ResultTrue
	}
	return vst3.ResultFalse
}

func (c *Component) SetProcessing(active bool) vst3.Result {
	c.processing = active
	return vst3.ResultOK
}

func (c *Component) Process(data *vst3.ProcessData) vst3.Result {
	if !c.processing || c.FailProcess {
		return vst3.ResultFalse
	}

	c.SawEvents = data.InputEvents != nil
	if data.InputEvents != nil {
		n := data.InputEvents.EventCount()
		for i := int32(0); i < n; i++ {
			ev, res := data.InputEvents.Event(i)
			if !res.OK() {
				continue
			}
			switch ev.Type {
			case vst3.EventNoteOn:
				c.NotesOn++
			case vst3.EventNoteOff:
				c.NotesOff++
			}
			c.LastEvent = ev
		}
	}

	gain := float32(c.gain)
	for bus := range data.Outputs {
		out := &data.Outputs[bus]
		for ch := 0; ch < len(out.Channels); ch++ {
			dst := out.Channels[ch]
			var src []float32
			if bus < len(data.Inputs) && ch < len(data.Inputs[bus].Channels) {
				src = data.Inputs[bus].Channels[ch]
			}
			for i := range dst {
				if src != nil && i < len(src) {
					dst[i] = src[i] * gain
				} else {
					dst[i] = 0
				}
			}
		}
	}
	return vst3.ResultOK
}

func (c *Component) GetTailSamples() uint32 { return 0 }

func (c *Component) Connect(other vst3.ConnectionPoint) vst3.Result {
	c.peer = other
	return vst3.ResultOK
}

func (c *Component) Disconnect(other vst3.ConnectionPoint) vst3.Result {
	c.peer = nil
	return vst3.ResultOK
}

func (c *Component) Notify(message any) vst3.Result {
	if msg, ok := message.(GainMessage); ok {
		c.gain = msg.Value
		return vst3.ResultOK
	}
	return vst3.NotImplemented
}

// Connected exposes connection state for test assertions.
func (c *Component) Connected() bool { return c.peer != nil }

// Controller is the edit half: one normalized gain parameter and an
// editor view.
type Controller struct {
	refCount

	gain    float64
	handler vst3.ComponentHandler
	peer    vst3.ConnectionPoint

	Initialized bool
	Terminated  bool

	// NoView makes CreateView fail, for exercising editor-less plugins.
	NoView bool
}

func (c *Controller) Initialize(ctx vst3.HostContext) vst3.Result {
	c.Initialized = true
	return vst3.ResultOK
}

func (c *Controller) Terminate() vst3.Result {
	c.Terminated = true
	return vst3.ResultOK
}

func (c *Controller) SetComponentState(stream vst3.Stream) vst3.Result {
	return readGain(stream, &c.gain)
}

func (c *Controller) GetState(stream vst3.Stream) vst3.Result {
	return writeGain(stream, c.gain)
}

func (c *Controller) SetState(stream vst3.Stream) vst3.Result {
	return readGain(stream, &c.gain)
}

func (c *Controller) GetParameterCount() int32 { return 1 }

func (c *Controller) GetParameterInfo(index int32) (vst3.ParameterInfo, vst3.Result) {
	if index != 0 {
		return vst3.ParameterInfo{}, vst3.InvalidArgument
	}
	return vst3.ParameterInfo{
		ID:           GainParamID,
		Title:        "Gain",
		Units:        "",
		DefaultValue: 1.0,
		Flags:        vst3.ParamCanAutomate,
	}, vst3.ResultOK
}

func (c *Controller) GetParamNormalized(id vst3.ParamID) vst3.ParamValue {
	if id != GainParamID {
		return 0
	}
	return c.gain
}

func (c *Controller) SetParamNormalized(id vst3.ParamID, value vst3.ParamValue) vst3.Result {
	if id != GainParamID {
		return vst3.InvalidArgument
	}
	c.gain = value
	return vst3.ResultOK
}

func (c *Controller) SetComponentHandler(handler vst3.ComponentHandler) vst3.Result {
	c.handler = handler
	return vst3.ResultOK
}

// Handler exposes the installed callback handler for test assertions.
func (c *Controller) Handler() vst3.ComponentHandler { return c.handler }

// Gain exposes the controller's parameter value for test assertions.
func (c *Controller) Gain() float64 { return c.gain }

func (c *Controller) CreateView(viewType string) vst3.PlugView {
	if c.NoView || viewType != vst3.ViewTypeEditor {
		return nil
	}
	return &View{size: vst3.ViewRect{Right: 400, Bottom: 300}}
}

func (c *Controller) Connect(other vst3.ConnectionPoint) vst3.Result {
	c.peer = other
	return vst3.ResultOK
}

func (c *Controller) Disconnect(other vst3.ConnectionPoint) vst3.Result {
	c.peer = nil
	return vst3.ResultOK
}

func (c *Controller) Notify(message any) vst3.Result {
	return vst3.NotImplemented
}

// View is a headless editor view good enough for protocol testing: it
// tracks attach state, its size rectangle and the installed frame.
type View struct {
	refCount

	size     vst3.ViewRect
	frame    vst3.PlugFrame
	attached bool
	parent   uintptr
	platform string

	// FrameAtAttach records whether a frame was already installed when
	// Attached ran, so tests can verify the required call ordering.
	FrameAtAttach bool
}

func (v *View) IsPlatformTypeSupported(platformType string) vst3.Result {
	switch platformType {
	case vst3.PlatformTypeHWND, vst3.PlatformTypeNSView, vst3.PlatformTypeX11Window:
		return vst3.ResultTrue
	}
	return vst3.ResultFalse
}

func (v *View) Attached(parent uintptr, platformType string) vst3.Result {
	if v.attached {
		return vst3.ResultFalse
	}
	v.attached = true
	v.parent = parent
	v.platform = platformType
	v.FrameAtAttach = v.frame != nil
	return vst3.ResultOK
}

func (v *View) Removed() vst3.Result {
	v.attached = false
	v.parent = 0
	v.platform = ""
	return vst3.ResultOK
}

func (v *View) SetFrame(frame vst3.PlugFrame) vst3.Result {
	v.frame = frame
	return vst3.ResultOK
}

func (v *View) GetSize() (vst3.ViewRect, vst3.Result) {
	return v.size, vst3.ResultOK
}

func (v *View) OnSize(newSize vst3.ViewRect) vst3.Result {
	v.size = newSize
	return vst3.ResultOK
}

// IsAttached exposes attach state for test assertions.
func (v *View) IsAttached() bool { return v.attached }

// Frame exposes the installed resize callback for test assertions.
func (v *View) Frame() vst3.PlugFrame { return v.frame }

// RequestResize simulates a plugin-initiated resize: it asks the host
// frame for the new size the way a real editor would after a user drags
// its corner. Returns NotImplemented when no frame is installed.
func (v *View) RequestResize(width, height int32) vst3.Result {
	if v.frame == nil {
		return vst3.NotImplemented
	}
	return v.frame.ResizeView(v, vst3.ViewRect{Right: width, Bottom: height})
}
