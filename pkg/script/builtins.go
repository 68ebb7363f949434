package script

import (
	"errors"
	"fmt"
	"strings"

	v2 "github.com/deadsy/sdfx/vec/v2"
	v3 "github.com/deadsy/sdfx/vec/v3"
	zygo "github.com/glycerine/zygomys/zygo"
	"github.com/golang/geo/s1"

	"github.com/chazu/meshkit/pkg/features"
	"github.com/chazu/meshkit/pkg/geom"
	"github.com/chazu/meshkit/pkg/layout"
	"github.com/chazu/meshkit/pkg/mesh"
	"github.com/chazu/meshkit/pkg/polykernel"
	"github.com/chazu/meshkit/pkg/shapes"
)

// session holds the meshes one evaluation builds.
type session struct {
	e      *Engine
	meshes []*mesh.Mesh
	last   *mesh.Mesh
}

func (s *session) meshOptions() []mesh.Option {
	return []mesh.Option{mesh.WithPredicates(s.e.pred), mesh.WithLogger(s.e.log)}
}

func (s *session) add(m *mesh.Mesh) zygo.Sexp {
	s.meshes = append(s.meshes, m)
	s.last = m
	return &sexpMesh{m: m, id: len(s.meshes) - 1}
}

// toMesh extracts the mesh behind a sexpMesh and makes it the current one.
func (s *session) toMesh(x zygo.Sexp) (*mesh.Mesh, error) {
	sm, ok := x.(*sexpMesh)
	if !ok {
		return nil, fmt.Errorf("expected mesh, got %T (%s)", x, x.SexpString(nil))
	}
	s.last = sm.m
	return sm.m, nil
}

// ---------------------------------------------------------------------------
// Custom Sexp types for passing Go values through the zygomys environment
// ---------------------------------------------------------------------------

type sexpMesh struct {
	m  *mesh.Mesh
	id int
}

func (x *sexpMesh) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(mesh %d %s :verts %d :faces %d)", x.id, x.m.Kind(), x.m.NumVerts(), x.m.NumFaces())
}
func (x *sexpMesh) Type() *zygo.RegisteredType { return nil }

type sexpVec2 struct {
	vec v2.Vec
}

func (v *sexpVec2) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(vec2 %g %g)", v.vec.X, v.vec.Y)
}
func (v *sexpVec2) Type() *zygo.RegisteredType { return nil }

type sexpVec3 struct {
	vec v3.Vec
}

func (v *sexpVec3) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(vec3 %g %g %g)", v.vec.X, v.vec.Y, v.vec.Z)
}
func (v *sexpVec3) Type() *zygo.RegisteredType { return nil }

// ---------------------------------------------------------------------------
// Argument helpers
// ---------------------------------------------------------------------------

// kwArgs holds a mixed positional and keyword argument list.
type kwArgs struct {
	kw         map[string]zygo.Sexp
	positional []zygo.Sexp
}

// parseArgs separates keyword arguments, marked by preprocessSource, from
// positional ones. A trailing keyword with no value maps to SexpNull.
func parseArgs(args []zygo.Sexp) kwArgs {
	res := kwArgs{kw: make(map[string]zygo.Sexp)}
	for i := 0; i < len(args); i++ {
		str, ok := args[i].(*zygo.SexpStr)
		if !ok || !strings.HasPrefix(str.S, kwPrefix) {
			res.positional = append(res.positional, args[i])
			continue
		}
		name := str.S[len(kwPrefix):]
		if i+1 < len(args) {
			res.kw[name] = args[i+1]
			i++
		} else {
			res.kw[name] = zygo.SexpNull
		}
	}
	return res
}

func toFloat64(s zygo.Sexp) (float64, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return float64(v.Val), nil
	case *zygo.SexpFloat:
		return v.Val, nil
	}
	return 0, fmt.Errorf("expected number, got %T (%s)", s, s.SexpString(nil))
}

func toInt(s zygo.Sexp) (int, error) {
	if v, ok := s.(*zygo.SexpInt); ok {
		return int(v.Val), nil
	}
	return 0, fmt.Errorf("expected integer, got %T (%s)", s, s.SexpString(nil))
}

func toVec2(s zygo.Sexp) (v2.Vec, error) {
	if v, ok := s.(*sexpVec2); ok {
		return v.vec, nil
	}
	return v2.Vec{}, fmt.Errorf("expected vec2, got %T (%s)", s, s.SexpString(nil))
}

func toVec3(s zygo.Sexp) (v3.Vec, error) {
	if v, ok := s.(*sexpVec3); ok {
		return v.vec, nil
	}
	return v3.Vec{}, fmt.Errorf("expected vec3, got %T (%s)", s, s.SexpString(nil))
}

// sexpListToSlice converts a list or array to a Go slice.
func sexpListToSlice(s zygo.Sexp) ([]zygo.Sexp, error) {
	switch v := s.(type) {
	case *zygo.SexpPair:
		return zygo.ListToArray(v)
	case *zygo.SexpArray:
		return v.Val, nil
	case *zygo.SexpSentinel:
		if v == zygo.SexpNull {
			return nil, nil
		}
	}
	return nil, fmt.Errorf("expected list or array, got %T", s)
}

func toVec3List(s zygo.Sexp) ([]v3.Vec, error) {
	items, err := sexpListToSlice(s)
	if err != nil {
		return nil, err
	}
	out := make([]v3.Vec, len(items))
	for i, it := range items {
		if out[i], err = toVec3(it); err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
	}
	return out, nil
}

func toIntList(s zygo.Sexp) ([]int, error) {
	items, err := sexpListToSlice(s)
	if err != nil {
		return nil, err
	}
	out := make([]int, len(items))
	for i, it := range items {
		if out[i], err = toInt(it); err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
	}
	return out, nil
}

func toIntLists(s zygo.Sexp) ([][]int, error) {
	items, err := sexpListToSlice(s)
	if err != nil {
		return nil, err
	}
	out := make([][]int, len(items))
	for i, it := range items {
		if out[i], err = toIntList(it); err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
	}
	return out, nil
}

func intSexp(n int) zygo.Sexp { return &zygo.SexpInt{Val: int64(n)} }

func floatSexp(f float64) zygo.Sexp { return &zygo.SexpFloat{Val: f} }

func intListSexp(ids []int) zygo.Sexp {
	items := make([]zygo.Sexp, len(ids))
	for i, id := range ids {
		items[i] = intSexp(id)
	}
	return zygo.MakeList(items)
}

// cellsArg reads the optional :cells keyword of the sampled shapes.
func cellsArg(pa kwArgs) (int, error) {
	v, ok := pa.kw["cells"]
	if !ok {
		return shapes.DefaultCells, nil
	}
	return toInt(v)
}

var errArity = errors.New("wrong number of arguments")

func arity(name string, args []zygo.Sexp, n int) error {
	if len(args) != n {
		return fmt.Errorf("%s takes %d arguments, got %d: %w", name, n, len(args), errArity)
	}
	return nil
}

// meshIDPoint reads the (mesh id point) arguments of the split and
// collapse builtins.
func (s *session) meshIDPoint(name string, args []zygo.Sexp) (*mesh.Mesh, int, v3.Vec, error) {
	if err := arity(name, args, 3); err != nil {
		return nil, 0, v3.Vec{}, err
	}
	m, err := s.toMesh(args[0])
	if err != nil {
		return nil, 0, v3.Vec{}, fmt.Errorf("%s: %w", name, err)
	}
	id, err := toInt(args[1])
	if err != nil {
		return nil, 0, v3.Vec{}, fmt.Errorf("%s: id: %w", name, err)
	}
	p, err := toVec3(args[2])
	if err != nil {
		return nil, 0, v3.Vec{}, fmt.Errorf("%s: point: %w", name, err)
	}
	return m, id, p, nil
}

// ---------------------------------------------------------------------------
// Builtin registration
// ---------------------------------------------------------------------------

// registerBuiltins installs the mesh builtins into env. Names use
// underscores because preprocessSource rewrites kebab-case symbols.
func registerBuiltins(env *zygo.Zlisp, s *session) {

	// (vec2 x y) and (vec3 x y z)
	env.AddFunction("vec2", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if err := arity(name, args, 2); err != nil {
			return zygo.SexpNull, err
		}
		var c [2]float64
		for i := range c {
			f, err := toFloat64(args[i])
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("vec2: %w", err)
			}
			c[i] = f
		}
		return &sexpVec2{vec: v2.Vec{X: c[0], Y: c[1]}}, nil
	})
	env.AddFunction("vec3", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if err := arity(name, args, 3); err != nil {
			return zygo.SexpNull, err
		}
		var c [3]float64
		for i := range c {
			f, err := toFloat64(args[i])
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("vec3: %w", err)
			}
			c[i] = f
		}
		return &sexpVec3{vec: v3.Vec{X: c[0], Y: c[1], Z: c[2]}}, nil
	})

	// -----------------------------------------------------------------------
	// Construction
	// -----------------------------------------------------------------------

	// (surface (list (vec3 ...) ...) (list (list 0 1 2) ...))
	env.AddFunction("surface", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if err := arity(name, args, 2); err != nil {
			return zygo.SexpNull, err
		}
		verts, err := toVec3List(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("surface: vertices: %w", err)
		}
		faces, err := toIntLists(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("surface: faces: %w", err)
		}
		m, err := mesh.NewSurface(verts, faces, s.meshOptions()...)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("surface: %w", err)
		}
		return s.add(m), nil
	})

	// (tetmesh (list (vec3 ...) ...) (list (list 0 1 2 3) ...))
	env.AddFunction("tetmesh", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if err := arity(name, args, 2); err != nil {
			return zygo.SexpNull, err
		}
		verts, err := toVec3List(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("tetmesh: vertices: %w", err)
		}
		lists, err := toIntLists(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("tetmesh: tets: %w", err)
		}
		tets := make([][4]int, len(lists))
		for i, l := range lists {
			if len(l) != 4 {
				return zygo.SexpNull, fmt.Errorf("tetmesh: tet %d has %d vertices, want 4", i, len(l))
			}
			copy(tets[i][:], l)
		}
		m, err := mesh.NewTetmesh(verts, tets, s.meshOptions()...)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("tetmesh: %w", err)
		}
		return s.add(m), nil
	})

	// (box x y z)
	env.AddFunction("box", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if err := arity(name, args, 3); err != nil {
			return zygo.SexpNull, err
		}
		var d [3]float64
		for i := range d {
			f, err := toFloat64(args[i])
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("box: %w", err)
			}
			d[i] = f
		}
		m, err := shapes.Box(d[0], d[1], d[2], s.meshOptions()...)
		if err != nil {
			return zygo.SexpNull, err
		}
		return s.add(m), nil
	})

	// (sphere radius :cells 32)
	env.AddFunction("sphere", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if err := arity(name, pa.positional, 1); err != nil {
			return zygo.SexpNull, err
		}
		r, err := toFloat64(pa.positional[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("sphere: radius: %w", err)
		}
		cells, err := cellsArg(pa)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("sphere: cells: %w", err)
		}
		m, err := shapes.Sphere(r, cells, s.meshOptions()...)
		if err != nil {
			return zygo.SexpNull, err
		}
		return s.add(m), nil
	})

	// (cylinder height radius :cells 32)
	env.AddFunction("cylinder", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if err := arity(name, pa.positional, 2); err != nil {
			return zygo.SexpNull, err
		}
		h, err := toFloat64(pa.positional[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("cylinder: height: %w", err)
		}
		r, err := toFloat64(pa.positional[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("cylinder: radius: %w", err)
		}
		cells, err := cellsArg(pa)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("cylinder: cells: %w", err)
		}
		m, err := shapes.Cylinder(h, r, cells, s.meshOptions()...)
		if err != nil {
			return zygo.SexpNull, err
		}
		return s.add(m), nil
	})

	// -----------------------------------------------------------------------
	// Queries
	// -----------------------------------------------------------------------

	counts := map[string]func(*mesh.Mesh) int{
		"num_verts":  (*mesh.Mesh).NumVerts,
		"num_edges":  (*mesh.Mesh).NumEdges,
		"num_faces":  (*mesh.Mesh).NumFaces,
		"num_polys":  (*mesh.Mesh).NumPolys,
		"num_marked": (*mesh.Mesh).NumMarkedEdges,
	}
	for fn, count := range counts {
		env.AddFunction(fn, func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
			if err := arity(name, args, 1); err != nil {
				return zygo.SexpNull, err
			}
			m, err := s.toMesh(args[0])
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("%s: %w", name, err)
			}
			return intSexp(count(m)), nil
		})
	}

	measures := map[string]func(*mesh.Mesh) float64{
		"area":   (*mesh.Mesh).Area,
		"volume": (*mesh.Mesh).Volume,
	}
	for fn, measure := range measures {
		env.AddFunction(fn, func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
			if err := arity(name, args, 1); err != nil {
				return zygo.SexpNull, err
			}
			m, err := s.toMesh(args[0])
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("%s: %w", name, err)
			}
			return floatSexp(measure(m)), nil
		})
	}

	// (check m) is true or fails with the first violation.
	env.AddFunction("check", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if err := arity(name, args, 1); err != nil {
			return zygo.SexpNull, err
		}
		m, err := s.toMesh(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("check: %w", err)
		}
		if err := m.Validate(); err != nil {
			return zygo.SexpNull, fmt.Errorf("check: %w", err)
		}
		return &zygo.SexpBool{Val: true}, nil
	})

	// -----------------------------------------------------------------------
	// Editing
	// -----------------------------------------------------------------------

	// (split-face m fid (vec3 ...)) returns the ids of the new faces.
	env.AddFunction("split_face", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		m, fid, p, err := s.meshIDPoint("split-face", args)
		if err != nil {
			return zygo.SexpNull, err
		}
		ids, err := m.FaceSplit(fid, p)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("split-face: %w", err)
		}
		return intListSexp(ids), nil
	})

	// (split-edge m eid (vec3 ...)) returns the new vertex id.
	env.AddFunction("split_edge", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		m, eid, p, err := s.meshIDPoint("split-edge", args)
		if err != nil {
			return zygo.SexpNull, err
		}
		vid, err := m.EdgeSplit(eid, p)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("split-edge: %w", err)
		}
		return intSexp(vid), nil
	})

	// (split-poly m pid (vec3 ...)) returns the ids of the new polys.
	env.AddFunction("split_poly", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		m, pid, p, err := s.meshIDPoint("split-poly", args)
		if err != nil {
			return zygo.SexpNull, err
		}
		ids, err := m.PolySplit(pid, p)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("split-poly: %w", err)
		}
		return intListSexp(ids), nil
	})

	// (collapse-edge m eid (vec3 ...)) returns the surviving vertex id.
	env.AddFunction("collapse_edge", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		m, eid, p, err := s.meshIDPoint("collapse-edge", args)
		if err != nil {
			return zygo.SexpNull, err
		}
		if eid < 0 || eid >= m.NumEdges() {
			return zygo.SexpNull, fmt.Errorf("collapse-edge: edge %d of %d: %w", eid, m.NumEdges(), mesh.ErrOutOfRange)
		}
		lo := min(m.Edge(eid)[0], m.Edge(eid)[1])
		remap, err := m.EdgeCollapse(eid, p)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("collapse-edge: %w", err)
		}
		return intSexp(remap.Verts[lo]), nil
	})

	// (mark-edge m v0 v1) and (unmark-edge m v0 v1) return the edge id.
	for fn, marked := range map[string]bool{"mark_edge": true, "unmark_edge": false} {
		env.AddFunction(fn, func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
			if err := arity(name, args, 3); err != nil {
				return zygo.SexpNull, err
			}
			m, err := s.toMesh(args[0])
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("%s: %w", name, err)
			}
			v0, err := toInt(args[1])
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("%s: %w", name, err)
			}
			v1, err := toInt(args[2])
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("%s: %w", name, err)
			}
			eid, ok := m.EdgeID(v0, v1)
			if !ok {
				return zygo.SexpNull, fmt.Errorf("%s: no edge between %d and %d", name, v0, v1)
			}
			if err := m.EdgeSetMarked(eid, marked); err != nil {
				return zygo.SexpNull, fmt.Errorf("%s: %w", name, err)
			}
			return intSexp(eid), nil
		})
	}

	// -----------------------------------------------------------------------
	// Features and layout
	// -----------------------------------------------------------------------

	// (mark-creases m) or (mark-creases m degrees)
	env.AddFunction("mark_creases", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 1 && len(args) != 2 {
			return zygo.SexpNull, fmt.Errorf("mark-creases takes a mesh and an optional angle: %w", errArity)
		}
		m, err := s.toMesh(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("mark-creases: %w", err)
		}
		thresh := s.e.crease
		if len(args) == 2 {
			deg, err := toFloat64(args[1])
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("mark-creases: angle: %w", err)
			}
			thresh = s1.Angle(deg) * s1.Degree
		}
		return intSexp(features.MarkSharpCreases(m, thresh)), nil
	})

	// (pad-creases m) returns the number of faces split.
	env.AddFunction("pad_creases", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if err := arity("pad-creases", args, 1); err != nil {
			return zygo.SexpNull, err
		}
		m, err := s.toMesh(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("pad-creases: %w", err)
		}
		n, err := features.PadCreases(m)
		if err != nil {
			return zygo.SexpNull, err
		}
		return intSexp(n), nil
	})

	// (self-intersections m) returns the number of intersecting face pairs.
	env.AddFunction("self_intersections", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if err := arity("self-intersections", args, 1); err != nil {
			return zygo.SexpNull, err
		}
		m, err := s.toMesh(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("self-intersections: %w", err)
		}
		pairs, err := features.SelfIntersections(m)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("self-intersections: %w", err)
		}
		return intSexp(len(pairs)), nil
	})

	// (ray-hits m origin dir) returns the ids of the faces the ray hits.
	env.AddFunction("ray_hits", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if err := arity("ray-hits", args, 3); err != nil {
			return zygo.SexpNull, err
		}
		m, err := s.toMesh(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("ray-hits: %w", err)
		}
		origin, err := toVec3(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("ray-hits: origin: %w", err)
		}
		dir, err := toVec3(args[2])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("ray-hits: direction: %w", err)
		}
		hits, err := features.RayHits(m, geom.NewRay(origin, dir))
		if err != nil {
			return zygo.SexpNull, err
		}
		return intListSexp(hits), nil
	})

	// (coarse-layout m) returns the number of patches.
	env.AddFunction("coarse_layout", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if err := arity("coarse-layout", args, 1); err != nil {
			return zygo.SexpNull, err
		}
		m, err := s.toMesh(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("coarse-layout: %w", err)
		}
		res, err := layout.CoarseQuadLayout(m)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("coarse-layout: %w", err)
		}
		return intSexp(res.NumPatches), nil
	})

	env.AddFunction("singular_verts", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if err := arity("singular-verts", args, 1); err != nil {
			return zygo.SexpNull, err
		}
		m, err := s.toMesh(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("singular-verts: %w", err)
		}
		return intListSexp(layout.SingularVerts(m)), nil
	})

	// -----------------------------------------------------------------------
	// Geometry
	// -----------------------------------------------------------------------

	// (kernel-area (list (vec2 ...) ...)) accepts vec2 or vec3 rings.
	env.AddFunction("kernel_area", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if err := arity("kernel-area", args, 1); err != nil {
			return zygo.SexpNull, err
		}
		items, err := sexpListToSlice(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("kernel-area: %w", err)
		}
		solver := polykernel.New(polykernel.WithPredicates(s.e.pred), polykernel.WithLogger(s.e.log))
		if len(items) > 0 {
			if _, ok := items[0].(*sexpVec3); ok {
				pts, err := toVec3List(args[0])
				if err != nil {
					return zygo.SexpNull, fmt.Errorf("kernel-area: %w", err)
				}
				area, _ := solver.Kernel3D(pts)
				return floatSexp(area), nil
			}
		}
		pts := make([]v2.Vec, len(items))
		for i, it := range items {
			if pts[i], err = toVec2(it); err != nil {
				return zygo.SexpNull, fmt.Errorf("kernel-area: item %d: %w", i, err)
			}
		}
		area, _ := solver.Kernel(pts)
		return floatSexp(area), nil
	})

	env.AddFunction("orient2d", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if err := arity(name, args, 3); err != nil {
			return zygo.SexpNull, err
		}
		var p [3]v2.Vec
		for i := range p {
			v, err := toVec2(args[i])
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("orient2d: %w", err)
			}
			p[i] = v
		}
		return floatSexp(s.e.pred.Orient2D(p[0], p[1], p[2])), nil
	})

	env.AddFunction("orient3d", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if err := arity(name, args, 4); err != nil {
			return zygo.SexpNull, err
		}
		var p [4]v3.Vec
		for i := range p {
			v, err := toVec3(args[i])
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("orient3d: %w", err)
			}
			p[i] = v
		}
		return floatSexp(s.e.pred.Orient3D(p[0], p[1], p[2], p[3])), nil
	})
}
