package convert

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/Faultbox/geomconv/internal/config"
	"github.com/Faultbox/geomconv/pkg/formats"
	"github.com/Faultbox/geomconv/pkg/geometry"
)

// ErrUnsupportedInput is returned for input files that are neither YAML
// scene documents nor X3DB streams.
var ErrUnsupportedInput = errors.New("unsupported input file")

// ReadScene loads a scene from a .yaml, .yml or .x3db file.
func ReadScene(path string) (*geometry.Scene, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return formats.ParseSceneFile(path)
	case ".x3db":
		f, err := formats.ParseX3DBFile(path)
		if err != nil {
			return nil, err
		}
		return f.Scene()
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedInput, path)
}

// OutputPath returns where the converted form of input is written: dir (or
// the input's directory when empty) plus the input's base name with the
// format's extension.
func OutputPath(input, dir, format string) string {
	if dir == "" {
		dir = filepath.Dir(input)
	}
	base := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	return filepath.Join(dir, base+formats.Extension(format))
}

// Converter converts scene files according to a loaded configuration.
type Converter struct {
	cfg      *config.Config
	pipeline *Pipeline
	log      *zap.Logger
}

// NewConverter creates a Converter. A nil logger discards output.
func NewConverter(cfg *config.Config, log *zap.Logger) *Converter {
	if log == nil {
		log = zap.NewNop()
	}
	return &Converter{
		cfg:      cfg,
		pipeline: NewPipeline(cfg.Convert, log.Named("pipeline")),
		log:      log,
	}
}

// ConvertFile reads input, runs the pipeline and writes the result. It
// returns the output path.
func (c *Converter) ConvertFile(input string) (string, Stats, error) {
	scene, err := ReadScene(input)
	if err != nil {
		return "", Stats{}, err
	}
	c.log.Debug("scene loaded", zap.String("input", input), zap.Int("shapes", len(scene.Shapes)))

	out, stats, err := c.pipeline.Run(scene)
	if err != nil {
		return "", stats, fmt.Errorf("converting %s: %w", input, err)
	}

	outPath := OutputPath(input, c.cfg.Output.Dir, c.cfg.Output.Format)
	if samePath(input, outPath) {
		return "", stats, fmt.Errorf("output %s would overwrite input", outPath)
	}
	if err := os.MkdirAll(filepath.Dir(outPath), 0755); err != nil {
		return "", stats, fmt.Errorf("creating output dir: %w", err)
	}
	if err := formats.WriteFile(out, outPath, c.cfg.Output.Format, c.cfg.Output.Generator); err != nil {
		return "", stats, fmt.Errorf("writing %s: %w", outPath, err)
	}

	c.log.Info("converted",
		zap.String("input", input),
		zap.String("output", outPath),
		zap.String("format", c.cfg.Output.Format),
	)
	return outPath, stats, nil
}

func samePath(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	return errA == nil && errB == nil && absA == absB
}
