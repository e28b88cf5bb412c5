package main

import (
	"os"

	"gopkg.in/yaml.v3"
)

// config is the driver's load-once settings: spec.md §9's interpreter-vs-
// compiled mode flag and a table of native function descriptors. Only Mode
// reaches lowering, as lower.Options.InterpreterMode; NativeFunctions is
// loaded but not passed to internal/lower or the type table. internal/lower
// itself never touches the filesystem or this type, preserving "no hidden
// globals".
type config struct {
	Mode            string            `yaml:"mode"` // "interpreter" or "compiled"
	NativeFunctions map[string]string `yaml:"nativeFunctions"`
}

func defaultConfig() *config {
	return &config{Mode: "compiled", NativeFunctions: map[string]string{}}
}

func loadConfig(path string) (*config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
