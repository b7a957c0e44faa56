package vst3

// Unknown is the root of every capability object. Plugin objects are
// reference counted and shared-owned across the module boundary; the host
// must pair every reference it takes with a Release and never assume it
// holds the last one. Additional capabilities are discovered by type
// assertion on the same object, mirroring the ABI's interface query.
type Unknown interface {
	AddRef() uint32
	Release() uint32
}

// HostContext is the host application object handed to plugin objects at
// initialization. It outlives every instance created with it.
type HostContext interface {
	Name() string
}

// Component is the plugin's primary lifecycle object. The same underlying
// object may additionally expose AudioProcessor, EditController or
// ConnectionPoint facets.
type Component interface {
	Unknown

	Initialize(ctx HostContext) Result
	Terminate() Result

	// GetControllerClassID reports the class of the plugin's separate edit
	// controller, if it has one. ResultFalse means the plugin has no
	// controller class.
	GetControllerClassID() (ClassID, Result)

	ActivateBus(media MediaType, dir BusDirection, index int32, active bool) Result

	GetState(s Stream) Result
	SetState(s Stream) Result
}

// AudioProcessor is the realtime processing facet of a component.
type AudioProcessor interface {
	Unknown

	SetupProcessing(setup ProcessSetup) Result
	CanProcessSampleSize(symbolicSampleSize int32) Result
	SetProcessing(active bool) Result
	Process(data *ProcessData) Result
	GetTailSamples() uint32
}

// EditController is the parameter and GUI facet of a plugin, often a
// distinct object from the component.
type EditController interface {
	Unknown

	Initialize(ctx HostContext) Result
	Terminate() Result

	// SetComponentState syncs the controller's parameter display from a
	// processor state blob.
	SetComponentState(s Stream) Result
	GetState(s Stream) Result
	SetState(s Stream) Result

	GetParameterCount() int32
	GetParameterInfo(index int32) (ParameterInfo, Result)
	GetParamNormalized(id ParamID) ParamValue
	SetParamNormalized(id ParamID, value ParamValue) Result

	SetComponentHandler(handler ComponentHandler) Result

	// CreateView returns a new editor view or nil when the plugin has no
	// GUI for the requested view type.
	CreateView(viewType string) PlugView
}

// ConnectionPoint links a component and its controller so they can exchange
// messages directly. Both ends must be connected before parameter or state
// traffic between them is reliable.
type ConnectionPoint interface {
	Connect(other ConnectionPoint) Result
	Disconnect(other ConnectionPoint) Result
	Notify(message any) Result
}

// ComponentHandler is implemented by the host and handed to every
// controller. Plugins call it to report user-driven parameter edits and to
// request restarts; many treat a failure return as fatal.
type ComponentHandler interface {
	BeginEdit(id ParamID) Result
	PerformEdit(id ParamID, value ParamValue) Result
	EndEdit(id ParamID) Result
	RestartComponent(flags RestartFlags) Result
}

// PlugView is a plugin's native editor surface. Call ordering matters: the
// frame must be installed with SetFrame before Attached, and cleared again
// before Removed on teardown.
type PlugView interface {
	Unknown

	IsPlatformTypeSupported(platformType string) Result
	Attached(parent uintptr, platformType string) Result
	Removed() Result
	SetFrame(frame PlugFrame) Result
	GetSize() (ViewRect, Result)
	OnSize(newSize ViewRect) Result
}

// PlugFrame is the host-supplied resize callback installed on a view. The
// view calls ResizeView whenever the plugin wants a new size; the host
// resizes its container and acknowledges.
type PlugFrame interface {
	ResizeView(view PlugView, newSize ViewRect) Result
}
