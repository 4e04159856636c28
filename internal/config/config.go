// Package config handles geomconv configuration loading and management.
package config

import (
	"fmt"

	"github.com/Faultbox/geomconv/pkg/formats"
)

// Config holds all converter settings.
type Config struct {
	Convert ConvertConfig `yaml:"convert"`
	Output  OutputConfig  `yaml:"output"`
	Logging LoggingConfig `yaml:"logging"`
}

// ConvertConfig selects the pipeline stages. Stages run in field order.
type ConvertConfig struct {
	StrictTopology  bool `yaml:"strict_topology"`  // Fail on 1-2 vertex primitives
	Flatten         bool `yaml:"flatten"`          // Bake transforms into coordinates
	Index           bool `yaml:"index"`            // Promote non-indexed nodes
	Triangulate     bool `yaml:"triangulate"`      // Expand fans and strips
	Combine         bool `yaml:"combine"`          // Merge all shapes into one, flattening first
	GenerateNormals bool `yaml:"generate_normals"` // Per-vertex normals for triangle shapes
}

// OutputConfig holds output settings.
type OutputConfig struct {
	Format    string `yaml:"format"`    // x3dv, x3db, glb or yaml
	Dir       string `yaml:"dir"`       // Empty writes next to the input
	Generator string `yaml:"generator"` // glTF asset generator
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Convert: ConvertConfig{
			StrictTopology:  false,
			Flatten:         false,
			Index:           true,
			Triangulate:     false,
			Combine:         false,
			GenerateNormals: false,
		},
		Output: OutputConfig{
			Format:    formats.FormatX3DV,
			Dir:       "",
			Generator: formats.DefaultGenerator,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Validate checks values that cannot be checked by the YAML decoder.
func (c *Config) Validate() error {
	if !formats.ValidFormat(c.Output.Format) {
		return fmt.Errorf("output.format: %w: %q", formats.ErrUnknownFormat, c.Output.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unknown level %q", c.Logging.Level)
	}
	return nil
}
