// Package convert runs the configured geometry conversion stages over a
// scene and handles scene files on disk.
package convert

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/geomconv/internal/config"
	"github.com/Faultbox/geomconv/pkg/geometry"
)

// Stats summarizes one pipeline run.
type Stats struct {
	ShapesIn  int
	ShapesOut int
	Malformed int // shapes that failed topology validation
	Triangles int
	Duration  time.Duration
	StagesRun []string
}

// Pipeline applies conversion stages in a fixed order: validate, flatten,
// index, triangulate, combine, normals. Combining implies flattening.
type Pipeline struct {
	cfg config.ConvertConfig
	log *zap.Logger
}

// NewPipeline creates a pipeline. A nil logger discards output.
func NewPipeline(cfg config.ConvertConfig, log *zap.Logger) *Pipeline {
	if log == nil {
		log = zap.NewNop()
	}
	return &Pipeline{cfg: cfg, log: log}
}

// Run converts scene and returns a new scene. The input is not modified.
func (p *Pipeline) Run(scene *geometry.Scene) (*geometry.Scene, Stats, error) {
	start := time.Now()
	stats := Stats{ShapesIn: len(scene.Shapes)}

	malformed, err := p.validate(scene)
	if err != nil {
		return nil, stats, err
	}
	stats.Malformed = malformed
	stats.StagesRun = append(stats.StagesRun, "validate")

	out := scene
	if p.cfg.Flatten || p.cfg.Combine {
		if out, err = flatten(out); err != nil {
			return nil, stats, fmt.Errorf("flatten: %w", err)
		}
		stats.StagesRun = append(stats.StagesRun, "flatten")
	}
	if p.cfg.Index {
		if out, err = out.Map(indexShape); err != nil {
			return nil, stats, fmt.Errorf("index: %w", err)
		}
		stats.StagesRun = append(stats.StagesRun, "index")
	}
	if p.cfg.Triangulate {
		if out, err = out.Map(triangulateShape); err != nil {
			return nil, stats, fmt.Errorf("triangulate: %w", err)
		}
		stats.StagesRun = append(stats.StagesRun, "triangulate")
	}
	if p.cfg.Combine {
		if out, err = combine(out); err != nil {
			return nil, stats, fmt.Errorf("combine: %w", err)
		}
		stats.StagesRun = append(stats.StagesRun, "combine")
	}
	if p.cfg.GenerateNormals {
		if out, err = out.Map(normalsShape); err != nil {
			return nil, stats, fmt.Errorf("normals: %w", err)
		}
		stats.StagesRun = append(stats.StagesRun, "normals")
	}

	for _, sh := range out.Shapes {
		if sh.Geometry == nil {
			continue
		}
		n, err := geometry.TriangleCount(sh.Geometry)
		if err != nil {
			return nil, stats, fmt.Errorf("counting triangles of %s: %w", sh.DEF, err)
		}
		stats.Triangles += n
	}
	stats.ShapesOut = len(out.Shapes)
	stats.Duration = time.Since(start)

	p.log.Info("pipeline finished",
		zap.Int("shapes_in", stats.ShapesIn),
		zap.Int("shapes_out", stats.ShapesOut),
		zap.Int("triangles", stats.Triangles),
		zap.Strings("stages", stats.StagesRun),
		zap.Duration("took", stats.Duration),
	)
	return out, stats, nil
}

// validate checks every shape's topology. Malformed primitives abort the
// run in strict mode and are logged otherwise; bad indices and count
// mismatches always abort.
func (p *Pipeline) validate(scene *geometry.Scene) (int, error) {
	malformed := 0
	for i, sh := range scene.Shapes {
		if sh.Geometry == nil {
			p.log.Debug("shape has no geometry", zap.Int("shape", i), zap.String("def", sh.DEF))
			continue
		}
		err := geometry.Validate(sh.Geometry)
		if err == nil {
			continue
		}
		if p.cfg.StrictTopology || !errors.Is(err, geometry.ErrMalformedTopology) {
			return 0, fmt.Errorf("shape %d (%s): %w", i, sh.DEF, err)
		}
		malformed++
		p.log.Warn("malformed topology, degenerate primitives will be dropped",
			zap.Int("shape", i),
			zap.String("def", sh.DEF),
			zap.Stringer("type", sh.Geometry.Type()),
			zap.Error(err),
		)
	}
	return malformed, nil
}

func flatten(scene *geometry.Scene) (*geometry.Scene, error) {
	out := &geometry.Scene{Shapes: make([]*geometry.Shape, 0, len(scene.Shapes))}
	for i, sh := range scene.Shapes {
		flat, err := geometry.Flatten(sh)
		if err != nil {
			return nil, fmt.Errorf("shape %d (%s): %w", i, sh.DEF, err)
		}
		out.Shapes = append(out.Shapes, flat)
	}
	return out, nil
}

func indexShape(g geometry.Geometry) (geometry.Geometry, error) {
	if g == nil {
		return nil, nil
	}
	return geometry.ToIndexed(g)
}

// triangulateShape expands triangle geometry; lines pass through indexed.
func triangulateShape(g geometry.Geometry) (geometry.Geometry, error) {
	if g == nil {
		return nil, nil
	}
	switch g.Type() {
	case geometry.NodeLineSet, geometry.NodeIndexedLineSet:
		return geometry.ToIndexed(g)
	}
	its, err := geometry.Triangulate(g)
	if err != nil {
		return nil, err
	}
	return its, nil
}

// normalsShape expands triangle geometry and gives it per-vertex normals;
// lines pass through.
func normalsShape(g geometry.Geometry) (geometry.Geometry, error) {
	if g == nil {
		return nil, nil
	}
	switch g.Type() {
	case geometry.NodeLineSet, geometry.NodeIndexedLineSet:
		return g, nil
	}
	its, err := geometry.Triangulate(g)
	if err != nil {
		return nil, err
	}
	return geometry.GenerateNormals(its)
}

// combine merges all triangle shapes into the first position and keeps line
// shapes after it.
func combine(scene *geometry.Scene) (*geometry.Scene, error) {
	merged, err := geometry.Combine(scene.Shapes)
	if err != nil {
		return nil, err
	}
	out := &geometry.Scene{Shapes: []*geometry.Shape{merged}}
	for _, sh := range scene.Shapes {
		if sh.Geometry == nil {
			continue
		}
		switch sh.Geometry.Type() {
		case geometry.NodeLineSet, geometry.NodeIndexedLineSet:
			out.Shapes = append(out.Shapes, sh)
		}
	}
	return out, nil
}
