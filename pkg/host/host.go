// Package host implements the plugin lifecycle and processing core: module
// loading and interface negotiation, the component/controller connection
// protocol, the realtime audio+event process call, binary state capture and
// restore, and native editor embedding with resize negotiation.
//
// Lifecycle and GUI operations belong on the process's UI thread; the
// Process call belongs on the audio thread and may only overlap lifecycle
// operations while the instance is active. The caller serializes
// everything else (the ABI does not promise thread-safe plugin objects).
package host

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"

	"github.com/tyrbujac/vst3host/pkg/vst3"
)

// DefaultName identifies the host application to plugins that ask.
const DefaultName = "vst3host"

// Options configures a Host. The zero value is usable: logging goes to the
// logrus standard logger and metrics are not registered anywhere.
type Options struct {
	// Name is reported to plugins through the host context.
	Name string

	// Logger receives lifecycle and degraded-capability diagnostics.
	Logger *logrus.Logger

	// Metrics, when set, receives the callback-handler counters.
	Metrics prometheus.Registerer
}

// appContext is the process-wide host context object shared read-only by
// all instances. It must outlive every instance created with it.
type appContext struct {
	name string
}

func (c *appContext) Name() string {
	return c.name
}

// Host owns the process-scoped services every plugin instance depends on:
// the host context and the shared callback handler. Create one Host at
// startup, shut it down once after the last instance is unloaded.
type Host struct {
	ctx     vst3.HostContext
	handler *CallbackHandler
	log     *logrus.Logger

	mu        sync.Mutex
	instances int
	closed    bool
}

// New creates the host singletons.
func New(opts Options) *Host {
	name := opts.Name
	if name == "" {
		name = DefaultName
	}
	log := opts.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Host{
		ctx:     &appContext{name: name},
		handler: newCallbackHandler(log, opts.Metrics),
		log:     log,
	}
}

// Context returns the shared host context object.
func (h *Host) Context() vst3.HostContext {
	return h.ctx
}

// Handler returns the shared callback handler.
func (h *Host) Handler() *CallbackHandler {
	return h.handler
}

// Shutdown tears down the host services. Instances still alive at this
// point hold references to objects about to disappear; that is a caller
// bug, reported loudly rather than papered over.
func (h *Host) Shutdown() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	if h.instances > 0 {
		h.log.WithField("instances", h.instances).
			Warn("Host shutdown with live plugin instances")
	}
	h.closed = true
}

func (h *Host) trackInstance() {
	h.mu.Lock()
	h.instances++
	h.mu.Unlock()
}

func (h *Host) untrackInstance() {
	h.mu.Lock()
	if h.instances > 0 {
		h.instances--
	}
	h.mu.Unlock()
}
