// Package module loads plugin modules and resolves their object
// factories. A module is addressed by filesystem path; loading maps code
// into the process and is not reentrant-safe per path. Callers must not
// unload a module while any instance created from it is alive.
package module

import (
	"fmt"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/tyrbujac/vst3host/pkg/vst3"
)

// BuiltinScheme prefixes paths that resolve against the in-process
// registry instead of the filesystem, e.g. "builtin:gain".
const BuiltinScheme = "builtin:"

// ModuleLoadError reports a failure to open a module or resolve its
// factory.
type ModuleLoadError struct {
	Path   string
	Reason string
	Err    error
}

func (e *ModuleLoadError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("load module %q: %s: %v", e.Path, e.Reason, e.Err)
	}
	return fmt.Sprintf("load module %q: %s", e.Path, e.Reason)
}

func (e *ModuleLoadError) Unwrap() error {
	return e.Err
}

// Module is a loaded plugin module handle.
type Module struct {
	path    string
	factory vst3.Factory
}

// Path returns the path the module was loaded from.
func (m *Module) Path() string {
	return m.path
}

// Factory returns the module's object factory.
func (m *Module) Factory() vst3.Factory {
	return m.factory
}

// Unload releases the module handle. Code mapped by the shared-object
// backend stays resident for the life of the process; Unload only
// invalidates the handle.
func (m *Module) Unload() error {
	m.factory = nil
	return nil
}

var (
	builtinMu sync.RWMutex
	builtins  = make(map[string]func() vst3.Factory)
)

// Register adds an in-process factory under the given builtin name. Hosts
// that statically link effects use this instead of shared objects, as does
// the test suite.
func Register(name string, factory func() vst3.Factory) {
	builtinMu.Lock()
	defer builtinMu.Unlock()
	builtins[name] = factory
}

// Load opens the module at path and resolves its factory. Paths prefixed
// with "builtin:" resolve against the registry; everything else goes
// through the platform shared-object loader.
func Load(path string) (*Module, error) {
	if name, ok := strings.CutPrefix(path, BuiltinScheme); ok {
		builtinMu.RLock()
		factory, found := builtins[name]
		builtinMu.RUnlock()
		if !found {
			return nil, &ModuleLoadError{Path: path, Reason: "no such builtin module"}
		}
		return &Module{path: path, factory: factory()}, nil
	}

	factory, err := openShared(path)
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"path":    path,
		"classes": len(factory.ClassInfos()),
	}).Debug("Loaded plugin module")

	return &Module{path: path, factory: factory}, nil
}
