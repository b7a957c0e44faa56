package host

import (
	"github.com/sirupsen/logrus"

	"github.com/tyrbujac/vst3host/pkg/midi"
	"github.com/tyrbujac/vst3host/pkg/module"
	"github.com/tyrbujac/vst3host/pkg/scan"
	"github.com/tyrbujac/vst3host/pkg/vst3"
)

// Defaults applied until Initialize negotiates real values.
const (
	defaultSampleRate = 44100.0
	defaultBlockSize  = 512
)

// Instance is one live plugin: the processing object, the optional
// controller, their connection, the per-instance event queue and the
// editor session. All capability objects are shared-owned with the plugin
// module; the instance releases its references on Unload and never assumes
// they were the last.
type Instance struct {
	host *Host
	mod  *module.Module

	class       vst3.ClassInfo
	factoryInfo vst3.FactoryInfo

	component  vst3.Component
	processor  vst3.AudioProcessor
	controller vst3.EditController
	connected  bool

	sampleRate   float64
	maxBlockSize int32
	initialized  bool
	active       bool

	events *midi.Queue

	// Persistent process-call scaffolding; the audio thread reuses these
	// instead of allocating.
	inBus  [1]vst3.AudioBusBuffers
	outBus [1]vst3.AudioBusBuffers
	data   vst3.ProcessData

	editor editorSession

	log *logrus.Entry
}

// Load opens the module at path, selects its first audio-effect class and
// performs the full interface negotiation: instantiate the component,
// initialize it with the host context, query the processing capability,
// bring up the controller if the component declares one, install the
// shared callback handler and connect the two connection points.
//
// Missing processor capability, missing controller and missing connection
// support are degraded-but-valid outcomes. Only no-audio-class, component
// creation failure and component initialize failure are hard errors, and
// those leave nothing behind.
func (h *Host) Load(path string) (*Instance, error) {
	mod, err := module.Load(path)
	if err != nil {
		return nil, err
	}

	factory := mod.Factory()
	var class vst3.ClassInfo
	found := false
	for _, ci := range factory.ClassInfos() {
		if ci.Category == vst3.CategoryAudioEffect {
			class = ci
			found = true
			break
		}
	}
	if !found {
		mod.Unload()
		return nil, &ComponentCreateError{Path: path, Reason: "no audio effect class found in module"}
	}

	log := h.log.WithFields(logrus.Fields{
		"plugin": class.Name,
		"path":   path,
	})

	obj := factory.CreateInstance(class.ID)
	if obj == nil {
		mod.Unload()
		return nil, &ComponentCreateError{Path: path, Reason: "factory could not create component instance"}
	}
	component, ok := obj.(vst3.Component)
	if !ok {
		obj.Release()
		mod.Unload()
		return nil, &ComponentCreateError{Path: path, Reason: "created object does not expose the component interface"}
	}

	if res := component.Initialize(h.ctx); !res.OK() {
		component.Release()
		mod.Unload()
		return nil, &ComponentInitError{Plugin: class.Name, Result: res}
	}

	inst := &Instance{
		host:         h,
		mod:          mod,
		class:        class,
		factoryInfo:  factory.Info(),
		component:    component,
		sampleRate:   defaultSampleRate,
		maxBlockSize: defaultBlockSize,
		events:       midi.NewQueue(),
		log:          log,
	}

	// Some plugins split the processing role off the component; absence is
	// degraded, not fatal.
	if processor, ok := obj.(vst3.AudioProcessor); ok {
		inst.processor = processor
	} else {
		log.Warn("Component exposes no audio processor capability")
	}

	inst.negotiateController(factory)

	h.trackInstance()
	log.WithFields(logrus.Fields{
		"controller": inst.controller != nil,
		"connected":  inst.connected,
	}).Info("Plugin loaded")
	return inst, nil
}

// negotiateController brings up the controller side when the component
// declares one: create, initialize, install the shared callback handler
// and connect both connection points. Every failure here degrades the
// instance instead of failing the load.
func (inst *Instance) negotiateController(factory vst3.Factory) {
	cid, res := inst.component.GetControllerClassID()
	if !res.OK() {
		inst.log.Debug("Component declares no controller class")
		return
	}

	obj := factory.CreateInstance(cid)
	if obj == nil {
		inst.log.Warn("Factory could not create controller instance")
		return
	}
	controller, ok := obj.(vst3.EditController)
	if !ok {
		obj.Release()
		inst.log.Warn("Controller object does not expose the edit controller interface")
		return
	}

	if res := controller.Initialize(inst.host.ctx); !res.OK() {
		controller.Release()
		inst.log.WithField("result", int32(res)).Warn("Controller initialize failed")
		return
	}
	inst.controller = controller

	// Skipping the handler is tolerated by the protocol but makes many
	// plugins misbehave or crash on user interaction later.
	if res := controller.SetComponentHandler(inst.host.handler); !res.OK() {
		inst.log.WithField("result", int32(res)).Warn("Controller rejected component handler")
	}

	componentCP, haveCompCP := inst.component.(vst3.ConnectionPoint)
	controllerCP, haveCtrlCP := controller.(vst3.ConnectionPoint)
	if haveCompCP && haveCtrlCP {
		componentCP.Connect(controllerCP)
		controllerCP.Connect(componentCP)
		inst.connected = true
	} else {
		inst.log.Debug("Plugin does not support connection points")
	}
}

// Initialize negotiates the processing configuration and activates the
// main stereo buses. Valid once the instance is loaded; must precede
// Activate.
func (inst *Instance) Initialize(sampleRate float64, maxBlockSize int32) error {
	if inst.processor == nil {
		return &PluginProtocolError{Op: "initialize", Reason: "no audio processor capability"}
	}

	setup := vst3.ProcessSetup{
		ProcessMode:        vst3.ProcessModeRealtime,
		SymbolicSampleSize: vst3.Sample32,
		MaxSamplesPerBlock: maxBlockSize,
		SampleRate:         sampleRate,
	}
	if res := inst.processor.SetupProcessing(setup); !res.OK() {
		return &PluginProtocolError{Op: "initialize", Reason: "setup processing rejected", Result: res}
	}

	// Instruments have no audio input; a refused input bus is fine.
	if res := inst.component.ActivateBus(vst3.MediaTypeAudio, vst3.BusDirectionInput, 0, true); !res.OK() {
		inst.log.WithField("result", int32(res)).Debug("Input bus not activated")
	}
	if res := inst.component.ActivateBus(vst3.MediaTypeAudio, vst3.BusDirectionOutput, 0, true); !res.OK() {
		return &PluginProtocolError{Op: "initialize", Reason: "activate output bus rejected", Result: res}
	}

	inst.sampleRate = sampleRate
	inst.maxBlockSize = maxBlockSize
	inst.initialized = true

	// Fixed stereo descriptors; channel slices are filled per process call
	// with caller-owned memory.
	inst.inBus[0] = vst3.AudioBusBuffers{NumChannels: 2, Channels: make([][]float32, 2)}
	inst.outBus[0] = vst3.AudioBusBuffers{NumChannels: 2, Channels: make([][]float32, 2)}
	inst.data = vst3.ProcessData{
		ProcessMode:        vst3.ProcessModeRealtime,
		SymbolicSampleSize: vst3.Sample32,
		Inputs:             inst.inBus[:],
		Outputs:            inst.outBus[:],
	}

	inst.log.WithFields(logrus.Fields{
		"sampleRate": sampleRate,
		"blockSize":  maxBlockSize,
	}).Debug("Plugin initialized")
	return nil
}

// Activate starts realtime processing.
func (inst *Instance) Activate() error {
	if !inst.initialized || inst.processor == nil {
		return &PluginProtocolError{Op: "activate", Reason: "instance not initialized"}
	}
	if res := inst.processor.SetProcessing(true); !res.OK() {
		return &PluginProtocolError{Op: "activate", Reason: "set processing rejected", Result: res}
	}
	inst.active = true
	return nil
}

// Deactivate stops realtime processing. Safe to call in any state.
func (inst *Instance) Deactivate() {
	if inst.active && inst.processor != nil {
		inst.processor.SetProcessing(false)
	}
	inst.active = false
}

// Active reports whether the instance accepts Process calls.
func (inst *Instance) Active() bool {
	return inst.active
}

// Initialized reports whether processing has been configured.
func (inst *Instance) Initialized() bool {
	return inst.initialized
}

// Unload tears the instance down in strict order: close the editor,
// deactivate, disconnect the connection points, terminate both objects,
// release the host's references and drop the module handle. The instance
// is unusable afterwards.
func (inst *Instance) Unload() {
	inst.CloseEditor()
	inst.Deactivate()

	if inst.connected {
		if componentCP, ok := inst.component.(vst3.ConnectionPoint); ok {
			if controllerCP, ok := inst.controller.(vst3.ConnectionPoint); ok {
				componentCP.Disconnect(controllerCP)
				controllerCP.Disconnect(componentCP)
			}
		}
		inst.connected = false
	}

	if inst.controller != nil {
		inst.controller.Terminate()
		inst.controller.Release()
		inst.controller = nil
	}
	if inst.component != nil {
		inst.component.Terminate()
		inst.component.Release()
		inst.component = nil
	}
	inst.processor = nil
	inst.initialized = false

	if inst.mod != nil {
		inst.mod.Unload()
		inst.mod = nil
	}
	inst.host.untrackInstance()
	inst.log.Info("Plugin unloaded")
}

// Info describes the loaded plugin class.
type Info struct {
	Name         string
	Vendor       string
	Version      string
	Category     string
	Path         string
	IsInstrument bool
	IsEffect     bool
}

// Info returns the plugin's class descriptor data.
func (inst *Instance) Info() Info {
	vendor := inst.class.Vendor
	if vendor == "" {
		vendor = inst.factoryInfo.Vendor
	}
	isInstrument, isEffect := scan.Classify(inst.class.Name, inst.class.SubCategories)
	return Info{
		Name:         inst.class.Name,
		Vendor:       vendor,
		Version:      inst.class.Version,
		Category:     inst.class.SubCategories,
		Path:         inst.mod.Path(),
		IsInstrument: isInstrument,
		IsEffect:     isEffect,
	}
}
