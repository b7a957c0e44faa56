//go:build !linux && !darwin && !freebsd

package module

import "github.com/tyrbujac/vst3host/pkg/vst3"

func openShared(path string) (vst3.Factory, error) {
	return nil, &ModuleLoadError{Path: path, Reason: "shared-object plugins are not supported on this platform"}
}
