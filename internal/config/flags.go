package config

import "flag"

// Flags holds command-line overrides. Register them on each subcommand's
// flag set.
type Flags struct {
	Config      string
	Debug       bool
	Format      string
	OutputDir   string
	LogFile     string
	Strict      bool
	Flatten     bool
	Triangulate bool
	Combine     bool
	Normals     bool
	NoIndex     bool
}

// Register adds the flags to fs.
func (f *Flags) Register(fs *flag.FlagSet) {
	fs.StringVar(&f.Config, "config", "", "Path to config file")
	fs.BoolVar(&f.Debug, "debug", false, "Enable debug logging")
	fs.StringVar(&f.Format, "format", "", "Output format (x3dv, x3db, glb, yaml)")
	fs.StringVar(&f.OutputDir, "o", "", "Output directory")
	fs.StringVar(&f.LogFile, "log-file", "", "Also log to this file")
	fs.BoolVar(&f.Strict, "strict", false, "Fail on primitives with fewer than 3 vertices")
	fs.BoolVar(&f.Flatten, "flatten", false, "Bake shape transforms into coordinates")
	fs.BoolVar(&f.Triangulate, "triangulate", false, "Expand fans and strips to triangles")
	fs.BoolVar(&f.Combine, "combine", false, "Merge all shapes into one")
	fs.BoolVar(&f.Normals, "normals", false, "Generate per-vertex normals")
	fs.BoolVar(&f.NoIndex, "no-index", false, "Keep non-indexed nodes as they are")
}

// apply applies CLI flag overrides to the config.
func (f *Flags) apply(cfg *Config) {
	if f.Debug {
		cfg.Logging.Level = "debug"
	}
	if f.Format != "" {
		cfg.Output.Format = f.Format
	}
	if f.OutputDir != "" {
		cfg.Output.Dir = f.OutputDir
	}
	if f.LogFile != "" {
		cfg.Logging.LogFile = f.LogFile
	}
	if f.Strict {
		cfg.Convert.StrictTopology = true
	}
	if f.Flatten {
		cfg.Convert.Flatten = true
	}
	if f.Triangulate {
		cfg.Convert.Triangulate = true
	}
	if f.Combine {
		cfg.Convert.Combine = true
	}
	if f.Normals {
		cfg.Convert.GenerateNormals = true
	}
	if f.NoIndex {
		cfg.Convert.Index = false
	}
}
