// geomconv converts X3D geometry between indexed and non-indexed forms.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/Faultbox/geomconv/internal/config"
	"github.com/Faultbox/geomconv/internal/convert"
	"github.com/Faultbox/geomconv/internal/logger"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "info":
		cmdInfo(args)
	case "index":
		cmdConvert("index", args, func(c *config.ConvertConfig) {
			c.Index = true
		})
	case "triangulate", "tri":
		cmdConvert("triangulate", args, func(c *config.ConvertConfig) {
			c.Index, c.Triangulate = true, true
		})
	case "combine":
		cmdConvert("combine", args, func(c *config.ConvertConfig) {
			c.Flatten, c.Index, c.Triangulate, c.Combine = true, true, true, true
		})
	case "convert":
		cmdConvert("convert", args, nil)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`geomconv - X3D geometry index-format converter

Usage:
  geomconv <command> [options] <file>...

Commands:
  info <scene>                  Show shapes, primitives and topology problems
  index <scene>...              Promote non-indexed geometry to indexed
  triangulate <scene>...        Expand fans and strips to IndexedTriangleSet
  combine <scene>...            Flatten, triangulate and merge into one shape
  convert <scene>...            Run the stages selected by config and flags

Inputs are YAML scene documents (.yaml, .yml) or X3DB streams (.x3db).

Options:
  -config <path>     Config file (default ./geomconv.yaml or user config dir)
  -format <fmt>      Output format: x3dv, x3db, glb, yaml
  -o <dir>           Output directory (default next to input)
  -strict            Fail on primitives with fewer than 3 vertices
  -flatten           Bake transforms (convert only)
  -triangulate       Expand fans and strips (convert only)
  -combine           Merge all shapes, flattening first (convert only)
  -normals           Generate per-vertex normals
  -no-index          Skip index promotion (convert only)
  -debug             Enable debug logging
  -log-file <path>   Also log to a rotating file

Examples:
  geomconv info scene.yaml
  geomconv index -format x3dv scene.yaml
  geomconv triangulate -format glb -o build scene.yaml
  geomconv convert -config pipeline.yaml scenes/*.yaml`)
}

// setup parses flags, loads config and initializes logging.
func setup(name string, args []string) (*config.Config, []string) {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	var f config.Flags
	f.Register(fs)
	fs.Parse(args)

	cfg, err := config.Load(&f)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logger: %v\n", err)
		os.Exit(1)
	}
	logger.Debug("config loaded",
		zap.String("command", name),
		zap.String("format", cfg.Output.Format),
		zap.Any("convert", cfg.Convert),
	)
	return cfg, fs.Args()
}

func cmdInfo(args []string) {
	_, files := setup("info", args)
	defer logger.Sync()

	if len(files) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: geomconv info <scene>")
		os.Exit(1)
	}

	failed := false
	for _, path := range files {
		scene, err := convert.ReadScene(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			failed = true
			continue
		}

		infos := convert.Describe(scene)
		fmt.Printf("%s: %d shapes\n\n", path, len(infos))
		fmt.Printf("  %-16s %-24s %8s %8s %10s\n", "DEF", "TYPE", "POINTS", "PRIMS", "TRIANGLES")
		fmt.Printf("  %s\n", strings.Repeat("-", 70))

		var triangles int
		for _, info := range infos {
			def := info.DEF
			if def == "" {
				def = "(none)"
			}
			if info.Placed {
				def += "*"
			}
			fmt.Printf("  %-16s %-24s %8d %8d %10d\n", def, info.Type, info.Points, info.Primitives, info.Triangles)
			if info.Err != nil {
				fmt.Printf("    ! %v\n", info.Err)
				logger.Warn("invalid geometry", zap.String("input", path), zap.String("def", info.DEF), zap.Error(info.Err))
			}
			triangles += info.Triangles
		}
		fmt.Printf("\nTotal triangles: %d (* = has transform)\n", triangles)
	}

	if failed {
		logger.Sync()
		os.Exit(1)
	}
}

func cmdConvert(name string, args []string, stages func(*config.ConvertConfig)) {
	cfg, files := setup(name, args)
	defer logger.Sync()

	if len(files) < 1 {
		fmt.Fprintf(os.Stderr, "Usage: geomconv %s [options] <scene>...\n", name)
		os.Exit(1)
	}
	if stages != nil {
		stages(&cfg.Convert)
	}

	conv := convert.NewConverter(cfg, logger.Named(name))
	failed := 0
	for _, path := range files {
		outPath, stats, err := conv.ConvertFile(path)
		if err != nil {
			logger.Error("conversion failed", zap.String("input", path), zap.Error(err))
			failed++
			continue
		}
		fmt.Printf("%s -> %s (%d shapes, %d triangles)\n", path, outPath, stats.ShapesOut, stats.Triangles)
		logger.Info("converted", zap.String("input", path), zap.String("output", outPath), zap.Int("malformed", stats.Malformed))
	}
	logger.Sugar.Debugf("%s: %d of %d files converted", name, len(files)-failed, len(files))

	if failed > 0 {
		fmt.Fprintf(os.Stderr, "%d of %d files failed\n", failed, len(files))
		logger.Sync()
		os.Exit(1)
	}
}
