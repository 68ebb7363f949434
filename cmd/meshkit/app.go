package main

import (
	"fmt"

	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/chazu/meshkit/internal/config"
	"github.com/chazu/meshkit/pkg/mesh"
	"github.com/chazu/meshkit/pkg/script"
	"github.com/chazu/meshkit/pkg/tessellate"
)

// App runs scripts and summarises the meshes they build.
type App struct {
	engine *script.Engine
	log    *zap.Logger
}

// MeshReport is the JSON-serializable summary of one mesh.
type MeshReport struct {
	Name    string              `json:"name"`
	Kind    string              `json:"kind"`
	Verts   int                 `json:"verts"`
	Edges   int                 `json:"edges"`
	Faces   int                 `json:"faces"`
	Polys   int                 `json:"polys"`
	Marked  int                 `json:"marked"`
	Labels  int                 `json:"labels"`
	Area    float64             `json:"area"`
	Volume  float64             `json:"volume,omitempty"`
	Buffers *tessellate.Buffers `json:"buffers,omitempty"`
}

// EvalErrorData is a JSON-serializable eval error.
type EvalErrorData struct {
	Line    int    `json:"line"`
	Col     int    `json:"col"`
	Message string `json:"message"`
}

// Report is the full result of running a script.
type Report struct {
	Value  string          `json:"value"`
	Meshes []MeshReport    `json:"meshes"`
	Errors []EvalErrorData `json:"errors"`
}

// NewApp creates an App configured from cfg.
func NewApp(cfg *config.Config, log *zap.Logger) (*App, error) {
	k, err := cfg.PredicateKernel()
	if err != nil {
		return nil, err
	}
	eng := script.NewEngine(
		script.WithPredicates(k),
		script.WithLogger(log),
		script.WithTimeout(cfg.Script.Timeout),
		script.WithCreaseAngle(cfg.CreaseAngle()),
	)
	return &App{engine: eng, log: log}, nil
}

// Evaluate runs source and reports every mesh it built. With buffers set
// each report also carries the tessellated triangle buffers.
func (a *App) Evaluate(source string, buffers bool) Report {
	report := Report{Meshes: []MeshReport{}, Errors: []EvalErrorData{}}

	res, evalErrs, err := a.engine.Evaluate(source)
	if err != nil {
		a.log.Error("evaluate failed", zap.Error(err))
		report.Errors = append(report.Errors, EvalErrorData{Message: err.Error()})
		return report
	}
	if len(evalErrs) > 0 {
		for _, e := range evalErrs {
			report.Errors = append(report.Errors, EvalErrorData{Line: e.Line, Col: e.Col, Message: e.Message})
		}
		return report
	}

	report.Value = res.Value
	for i, m := range res.Meshes {
		r := summarize(fmt.Sprintf("mesh%d", i), m)
		if buffers {
			b, err := tessellate.Tessellate(m, r.Name)
			if err != nil {
				report.Errors = append(report.Errors, EvalErrorData{Message: "tessellation failed: " + err.Error()})
				continue
			}
			r.Buffers = b
		}
		report.Meshes = append(report.Meshes, r)
	}
	return report
}

func summarize(name string, m *mesh.Mesh) MeshReport {
	r := MeshReport{
		Name:   name,
		Kind:   m.Kind().String(),
		Verts:  m.NumVerts(),
		Edges:  m.NumEdges(),
		Faces:  m.NumFaces(),
		Polys:  m.NumPolys(),
		Marked: m.NumMarkedEdges(),
		Labels: len(lo.Uniq(m.Labels())),
		Area:   m.Area(),
	}
	if m.Kind() == mesh.KindPolyhedral {
		r.Volume = m.Volume()
	}
	return r
}
