package host

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"

	"github.com/tyrbujac/vst3host/pkg/vst3"
)

// CallbackHandler is the process-wide component handler shared by every
// instance. Plugins call it to report user-driven parameter edits and to
// request restarts. Plugins are frequently written to treat a handler
// failure as fatal, so every method accepts the call and returns success;
// the host observes the traffic through structured logs and counters
// instead of rejecting it.
type CallbackHandler struct {
	log *logrus.Logger

	edits    *prometheus.CounterVec
	restarts prometheus.Counter
}

func newCallbackHandler(log *logrus.Logger, reg prometheus.Registerer) *CallbackHandler {
	h := &CallbackHandler{
		log: log,
		edits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "vst3host",
			Name:      "parameter_edit_callbacks_total",
			Help:      "Parameter edit callbacks received from plugins, by phase.",
		}, []string{"phase"}),
		restarts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "vst3host",
			Name:      "restart_requests_total",
			Help:      "Restart requests received from plugins.",
		}),
	}
	if reg != nil {
		reg.MustRegister(h.edits, h.restarts)
	}
	return h
}

// BeginEdit implements vst3.ComponentHandler.
func (h *CallbackHandler) BeginEdit(id vst3.ParamID) vst3.Result {
	h.log.WithFields(logrus.Fields{
		"param": id,
	}).Debug("Plugin began parameter edit")
	h.edits.WithLabelValues("begin").Inc()
	return vst3.ResultOK
}

// PerformEdit implements vst3.ComponentHandler. Edits arrive at control
// rates too high to log per call; they are only counted.
func (h *CallbackHandler) PerformEdit(id vst3.ParamID, value vst3.ParamValue) vst3.Result {
	h.edits.WithLabelValues("perform").Inc()
	return vst3.ResultOK
}

// EndEdit implements vst3.ComponentHandler.
func (h *CallbackHandler) EndEdit(id vst3.ParamID) vst3.Result {
	h.log.WithFields(logrus.Fields{
		"param": id,
	}).Debug("Plugin ended parameter edit")
	h.edits.WithLabelValues("end").Inc()
	return vst3.ResultOK
}

// RestartComponent implements vst3.ComponentHandler.
func (h *CallbackHandler) RestartComponent(flags vst3.RestartFlags) vst3.Result {
	h.log.WithFields(logrus.Fields{
		"flags": int32(flags),
	}).Info("Plugin requested component restart")
	h.restarts.Inc()
	return vst3.ResultOK
}
