//go:build linux || darwin || freebsd

package module

import (
	"plugin"

	"github.com/tyrbujac/vst3host/pkg/vst3"
)

// factorySymbol is the entry point a plugin shared object must export:
// a func() vst3.Factory, matching the ABI's module entry convention.
const factorySymbol = "GetPluginFactory"

func openShared(path string) (vst3.Factory, error) {
	p, err := plugin.Open(path)
	if err != nil {
		return nil, &ModuleLoadError{Path: path, Reason: "open shared object", Err: err}
	}

	sym, err := p.Lookup(factorySymbol)
	if err != nil {
		return nil, &ModuleLoadError{Path: path, Reason: "missing " + factorySymbol + " symbol", Err: err}
	}

	entry, ok := sym.(func() vst3.Factory)
	if !ok {
		if entryPtr, ok := sym.(*func() vst3.Factory); ok {
			entry = *entryPtr
		} else {
			return nil, &ModuleLoadError{Path: path, Reason: factorySymbol + " has wrong type"}
		}
	}

	factory := entry()
	if factory == nil {
		return nil, &ModuleLoadError{Path: path, Reason: factorySymbol + " returned no factory"}
	}
	return factory, nil
}
