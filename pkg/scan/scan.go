// Package scan discovers plugin modules on disk and classifies them by
// reading their factory metadata. Scanning loads each candidate just long
// enough to read class info, then unloads it again; a module that fails
// to load is logged and skipped, never fatal.
package scan

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/tyrbujac/vst3host/pkg/module"
	"github.com/tyrbujac/vst3host/pkg/vst3"
)

// Info describes one discovered plugin class.
type Info struct {
	Name         string
	Vendor       string
	Version      string
	Category     string
	Path         string
	IsInstrument bool
	IsEffect     bool
}

// Subcategory keywords used for classification. Checked against the
// factory's subcategory string first; the plugin name is only a
// tie-breaker.
var instrumentKeywords = []string{
	"Instrument", "Synth", "Sampler", "Drum", "Piano", "Sound Generator", "Generator",
}

var effectKeywords = []string{
	"Fx", "Effect",
}

// Classify decides instrument versus effect from the subcategory string
// and the plugin name. Plugins that declare nothing recognizable default
// to instrument, which is the safer assumption for a host that wants to
// route MIDI at it.
func Classify(name, subCategories string) (isInstrument, isEffect bool) {
	for _, kw := range instrumentKeywords {
		if strings.Contains(subCategories, kw) {
			isInstrument = true
			break
		}
	}
	for _, kw := range effectKeywords {
		if strings.Contains(subCategories, kw) {
			isEffect = true
			break
		}
	}

	// Some effects ship with empty subcategories but advertise themselves
	// in the name.
	if !isInstrument && !isEffect {
		if strings.Contains(strings.ToUpper(name), " FX") {
			isEffect = true
		} else {
			isInstrument = true
		}
	}
	return isInstrument, isEffect
}

// Scanner walks directories for loadable plugin modules.
type Scanner struct {
	log *logrus.Entry
}

// New returns a scanner logging through the given logger.
func New(logger *logrus.Logger) *Scanner {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Scanner{log: logger.WithField("component", "scan")}
}

// Directory scans one directory non-recursively and returns every audio
// effect class found in loadable modules. Unloadable entries are logged
// and skipped.
func (s *Scanner) Directory(dir string) ([]Info, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var found []Info
	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())
		if !s.candidate(entry.Name()) {
			continue
		}
		infos, err := s.Probe(path)
		if err != nil {
			s.log.WithField("path", path).WithError(err).Warn("Skipping unloadable module")
			continue
		}
		found = append(found, infos...)
	}
	return found, nil
}

// Probe loads one module, reads the factory metadata of every audio
// effect class it exposes and unloads it again.
func (s *Scanner) Probe(path string) ([]Info, error) {
	mod, err := module.Load(path)
	if err != nil {
		return nil, err
	}
	defer mod.Unload()

	factory := mod.Factory()
	factoryInfo := factory.Info()

	var infos []Info
	for _, ci := range factory.ClassInfos() {
		if ci.Category != vst3.CategoryAudioEffect {
			continue
		}
		vendor := ci.Vendor
		if vendor == "" {
			vendor = factoryInfo.Vendor
		}
		isInstrument, isEffect := Classify(ci.Name, ci.SubCategories)
		infos = append(infos, Info{
			Name:         ci.Name,
			Vendor:       vendor,
			Version:      ci.Version,
			Category:     ci.SubCategories,
			Path:         path,
			IsInstrument: isInstrument,
			IsEffect:     isEffect,
		})
	}
	return infos, nil
}

// candidate filters directory entries down to plausible plugin modules.
// Registered in-process modules never appear on disk; probe those by name
// with Probe directly.
func (s *Scanner) candidate(name string) bool {
	switch filepath.Ext(name) {
	case ".so", ".dylib", ".vst3":
		return true
	}
	return false
}

// StandardLocations returns the conventional plugin directories for the
// current platform, filtered to those that exist.
func StandardLocations() []string {
	var candidates []string
	switch runtime.GOOS {
	case "darwin":
		home, _ := os.UserHomeDir()
		candidates = []string{
			"/Library/Audio/Plug-Ins/VST3",
			filepath.Join(home, "Library/Audio/Plug-Ins/VST3"),
		}
	case "windows":
		candidates = []string{
			filepath.Join(os.Getenv("ProgramFiles"), "Common Files", "VST3"),
		}
	default:
		home, _ := os.UserHomeDir()
		candidates = []string{
			"/usr/lib/vst3",
			"/usr/local/lib/vst3",
			filepath.Join(home, ".vst3"),
		}
	}

	var existing []string
	for _, dir := range candidates {
		if st, err := os.Stat(dir); err == nil && st.IsDir() {
			existing = append(existing, dir)
		}
	}
	return existing
}
