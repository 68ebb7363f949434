package main

import (
	"bytes"
	"encoding/json"
	"math"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/chazu/meshkit/internal/config"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	app, err := NewApp(config.Default(), zap.NewNop())
	if err != nil {
		t.Fatal(err)
	}
	return app
}

func TestE2ECubePipeline(t *testing.T) {
	report := newTestApp(t).Evaluate(`
(def m (box 1 1 1))
(mark-creases m)
(pad-creases m)
`, true)
	if len(report.Errors) > 0 {
		t.Fatalf("errors: %v", report.Errors)
	}
	if report.Value != "6" {
		t.Errorf("Value = %q, want 6 split faces", report.Value)
	}
	if len(report.Meshes) != 1 {
		t.Fatalf("got %d meshes, want 1", len(report.Meshes))
	}
	m := report.Meshes[0]
	if m.Kind != "surface" || m.Faces != 24 || m.Verts != 14 || m.Marked != 12 {
		t.Errorf("report %+v, want surface with 24 faces 14 verts 12 marked", m)
	}
	if math.Abs(m.Area-6) > 1e-9 {
		t.Errorf("Area = %v, want 6", m.Area)
	}
	if m.Buffers == nil || m.Buffers.TriangleCount() != 24 || len(m.Buffers.MarkedEdges) != 24 {
		t.Errorf("buffers %+v, want 24 triangles and 12 marked pairs", m.Buffers)
	}
}

func TestE2ELayoutLabels(t *testing.T) {
	report := newTestApp(t).Evaluate("(coarse-layout (box 2 1 1))", false)
	if len(report.Errors) > 0 {
		t.Fatalf("errors: %v", report.Errors)
	}
	if got := report.Meshes[0].Labels; got != 6 {
		t.Errorf("distinct labels = %d, want 6", got)
	}
	if report.Meshes[0].Buffers != nil {
		t.Error("buffers included without being asked for")
	}
}

func TestE2ETetmeshVolume(t *testing.T) {
	report := newTestApp(t).Evaluate(`
(def tm (tetmesh (list (vec3 0 0 0) (vec3 1 0 0) (vec3 0 1 0) (vec3 0 0 1)) [[0 1 2 3]]))
(split-poly tm 0 (vec3 0.25 0.25 0.25))
`, false)
	if len(report.Errors) > 0 {
		t.Fatalf("errors: %v", report.Errors)
	}
	m := report.Meshes[0]
	if m.Kind != "polyhedral" || m.Polys != 4 || math.Abs(m.Volume-1.0/6) > 1e-12 {
		t.Errorf("report %+v, want 4 polys of total volume 1/6", m)
	}
}

func TestE2EEmptySource(t *testing.T) {
	report := newTestApp(t).Evaluate("", false)
	if len(report.Errors) != 0 || len(report.Meshes) != 0 {
		t.Errorf("report %+v, want empty", report)
	}
}

func TestE2ESyntaxError(t *testing.T) {
	report := newTestApp(t).Evaluate("(box 1 1", false)
	if len(report.Errors) == 0 {
		t.Fatal("expected an error")
	}
	if len(report.Meshes) != 0 {
		t.Errorf("meshes reported for a failed script: %v", report.Meshes)
	}
}

func TestE2EBuiltinError(t *testing.T) {
	report := newTestApp(t).Evaluate("(box -1 1 1)", false)
	if len(report.Errors) != 1 || !strings.Contains(report.Errors[0].Message, "positive") {
		t.Errorf("errors %v, want the dimension error", report.Errors)
	}
}

func TestE2ERapidEvaluation(t *testing.T) {
	app := newTestApp(t)
	for i := 0; i < 20; i++ {
		report := app.Evaluate("(num-faces (box 1 1 1))", false)
		if len(report.Errors) > 0 || report.Value != "6" {
			t.Fatalf("iteration %d: %+v", i, report)
		}
	}
}

func TestPrintReport(t *testing.T) {
	var buf bytes.Buffer
	printReport(&buf, Report{
		Value:  "12",
		Meshes: []MeshReport{{Name: "mesh0", Kind: "surface", Verts: 8, Edges: 12, Faces: 6, Marked: 12, Labels: 1, Area: 6}},
		Errors: []EvalErrorData{{Line: 3, Message: "boom"}},
	})
	want := "error: line 3: boom\n" +
		"mesh0: surface verts=8 edges=12 faces=6 polys=0 marked=12 labels=1 area=6\n" +
		"value: 12\n"
	if buf.String() != want {
		t.Errorf("printReport =\n%s\nwant\n%s", buf.String(), want)
	}
}

func TestReportJSON(t *testing.T) {
	report := newTestApp(t).Evaluate("(box 1 1 1)", true)
	data, err := json.Marshal(report)
	if err != nil {
		t.Fatal(err)
	}
	var back struct {
		Meshes []struct {
			Buffers struct {
				Indices []uint32 `json:"indices"`
			} `json:"buffers"`
		} `json:"meshes"`
	}
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatal(err)
	}
	if len(back.Meshes) != 1 || len(back.Meshes[0].Buffers.Indices) != 36 {
		t.Errorf("decoded %+v, want one mesh with 36 indices", back)
	}
}
