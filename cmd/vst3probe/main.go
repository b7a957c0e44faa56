// vst3probe scans for plugin modules and exercises the full host
// lifecycle against one of them: load, negotiate, initialize, run a
// silent block, capture state and probe the editor. It is the
// command-line smoke test for the host core.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"

	"github.com/tyrbujac/vst3host/internal/config"
	_ "github.com/tyrbujac/vst3host/internal/testplug"
	"github.com/tyrbujac/vst3host/pkg/host"
	"github.com/tyrbujac/vst3host/pkg/scan"
)

func main() {
	var (
		configPath = flag.String("config", "", "HCL configuration file")
		pluginPath = flag.String("plugin", "", "plugin module to probe (default: scan only)")
		listOnly   = flag.Bool("list", false, "scan and list plugins without probing")
	)
	flag.Parse()

	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			log.WithError(err).Fatal("Could not load configuration")
		}
		cfg = loaded
	}
	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(level)
	}

	if err := run(log, cfg, *pluginPath, *listOnly); err != nil {
		log.WithError(err).Fatal("Probe failed")
	}
}

func run(log *logrus.Logger, cfg *config.Config, pluginPath string, listOnly bool) error {
	scanner := scan.New(log)
	dirs := append(scan.StandardLocations(), cfg.ScanPaths...)
	for _, dir := range dirs {
		infos, err := scanner.Directory(dir)
		if err != nil {
			log.WithField("dir", dir).WithError(err).Warn("Scan failed")
			continue
		}
		for _, info := range infos {
			log.WithFields(logrus.Fields{
				"name":       info.Name,
				"vendor":     info.Vendor,
				"category":   info.Category,
				"instrument": info.IsInstrument,
				"path":       info.Path,
			}).Info("Found plugin")
		}
	}
	if listOnly || pluginPath == "" {
		return nil
	}

	registry := prometheus.NewRegistry()
	h := host.New(host.Options{Logger: log, Metrics: registry})
	defer h.Shutdown()

	inst, err := h.Load(pluginPath)
	if err != nil {
		return err
	}
	defer inst.Unload()

	info := inst.Info()
	fmt.Fprintf(os.Stdout, "%s %s by %s (%s)\n", info.Name, info.Version, info.Vendor, info.Category)

	if err := inst.Initialize(cfg.SampleRate, cfg.BlockSize); err != nil {
		return err
	}
	if err := inst.Activate(); err != nil {
		return err
	}

	// One silent block proves the process call survives.
	n := int(cfg.BlockSize)
	inL, inR := make([]float32, n), make([]float32, n)
	outL, outR := make([]float32, n), make([]float32, n)
	if err := inst.Process(inL, inR, outL, outR, cfg.BlockSize); err != nil {
		return err
	}
	log.Info("Processed one silent block")

	record, err := inst.ExportState()
	if err != nil {
		return err
	}
	log.WithField("bytes", len(record)).Info("Captured state record")

	for i := int32(0); i < inst.ParameterCount(); i++ {
		pi, err := inst.ParameterInfo(i)
		if err != nil {
			continue
		}
		fmt.Fprintf(os.Stdout, "  param %d: %s = %v\n", pi.ID, pi.Title, inst.ParameterValue(pi.ID))
	}

	if inst.HasEditor() {
		if err := inst.OpenEditor(); err == nil {
			if w, h, err := inst.EditorSize(); err == nil {
				log.WithFields(logrus.Fields{"width": w, "height": h}).Info("Editor available")
			}
			inst.CloseEditor()
		}
	} else {
		log.Info("Plugin has no editor")
	}

	inst.Deactivate()
	return nil
}
