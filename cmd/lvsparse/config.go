// SPDX-License-Identifier: MIT

package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/katalvlaran/lvsparse/telemetry"
	"gopkg.in/yaml.v3"
)

// Config is the YAML configuration of the CLI. Flags override it.
type Config struct {
	Workers     int              `yaml:"workers"`
	Log         LogConfig        `yaml:"log"`
	Telemetry   telemetry.Config `yaml:"telemetry"`
	MetricsAddr string           `yaml:"metrics_addr"`
	Bench       BenchConfig      `yaml:"bench"`
}

// LogConfig selects the slog handler.
type LogConfig struct {
	Format string `yaml:"format"` // text | json
	Level  string `yaml:"level"`  // debug | info | warn | error
}

// BenchConfig describes one synthetic benchmark run.
type BenchConfig struct {
	Nodes  int     `yaml:"nodes"`
	P      float64 `yaml:"p"`
	Feat   int     `yaml:"feat"`
	Op     string  `yaml:"op"`
	Reduce string  `yaml:"reduce"`
	DType  string  `yaml:"dtype"`
	Index  string  `yaml:"index"` // int32 | int64
	Seed   int64   `yaml:"seed"`
	Repeat int     `yaml:"repeat"`
}

func defaultConfig() Config {
	return Config{
		Log:       LogConfig{Format: "text", Level: "info"},
		Telemetry: telemetry.DefaultConfig(),
		Bench: BenchConfig{
			Nodes:  10_000,
			P:      0.001,
			Feat:   16,
			Op:     "mul",
			Reduce: "sum",
			DType:  "float32",
			Index:  "int64",
			Seed:   1,
			Repeat: 3,
		},
	}
}

// loadConfig overlays the YAML file at path onto the defaults. Unknown keys
// are rejected. An empty path or an empty file returns the defaults.
func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}

	return cfg, nil
}
