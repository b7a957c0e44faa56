package host

import "github.com/tyrbujac/vst3host/pkg/vst3"

// Parameter access runs through the controller. Instances negotiated
// without one degrade to neutral results: zero count, zero values,
// no-op sets.

// ParameterCount returns the number of controller parameters, zero when
// no controller exists.
func (inst *Instance) ParameterCount() int32 {
	if inst.controller == nil {
		return 0
	}
	return inst.controller.GetParameterCount()
}

// ParameterInfo returns the descriptor of the parameter at index.
func (inst *Instance) ParameterInfo(index int32) (vst3.ParameterInfo, error) {
	if inst.controller == nil {
		return vst3.ParameterInfo{}, &PluginProtocolError{Op: "parameter info", Reason: "no edit controller"}
	}
	info, res := inst.controller.GetParameterInfo(index)
	if !res.OK() {
		return vst3.ParameterInfo{}, &PluginProtocolError{Op: "parameter info", Reason: "controller rejected index", Result: res}
	}
	return info, nil
}

// ParameterValue returns the normalized value of a parameter, zero when no
// controller exists.
func (inst *Instance) ParameterValue(id vst3.ParamID) vst3.ParamValue {
	if inst.controller == nil {
		return 0
	}
	return inst.controller.GetParamNormalized(id)
}

// SetParameterValue sets a parameter's normalized value. A missing
// controller makes this a no-op.
func (inst *Instance) SetParameterValue(id vst3.ParamID, value vst3.ParamValue) error {
	if inst.controller == nil {
		return nil
	}
	if res := inst.controller.SetParamNormalized(id, value); !res.OK() {
		return &PluginProtocolError{Op: "set parameter", Reason: "controller rejected value", Result: res}
	}
	return nil
}
