// Package mesh stores polygonal surface meshes and polyhedral volume meshes
// as flat arrays of vertices, edges, faces and polys addressed by integer id,
// together with every adjacency relation between them.
//
// A Mesh has a Kind. Surface meshes are made of faces only; polyhedral
// meshes group faces into polys with a per-incidence winding bit. Methods
// that only make sense for one kind return ErrCapability on the other.
//
// Adjacency is always consistent with primary connectivity. Edits either
// complete or fail with an error and leave the mesh untouched. A Mesh has a
// single owner; concurrent readers are safe only while nobody mutates it.
package mesh

import (
	"fmt"

	v3 "github.com/deadsy/sdfx/vec/v3"
	"go.uber.org/zap"

	"github.com/chazu/meshkit/pkg/predicates"
)

// Kind is the element capability of a mesh.
type Kind int

const (
	KindSurface Kind = iota
	KindPolyhedral
)

func (k Kind) String() string {
	switch k {
	case KindSurface:
		return "surface"
	case KindPolyhedral:
		return "polyhedral"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Mesh is an index-based incidence structure.
type Mesh struct {
	kind Kind
	pred *predicates.Kernel
	log  *zap.Logger
	t    *topology
}

// Option configures a Mesh.
type Option func(*Mesh)

// WithPredicates sets the predicate kernel used by geometric checks in the
// editor. The default is an inexact kernel.
func WithPredicates(k *predicates.Kernel) Option {
	return func(m *Mesh) {
		if k != nil {
			m.pred = k
		}
	}
}

// WithLogger sets the logger for edit diagnostics. The default discards.
func WithLogger(l *zap.Logger) Option {
	return func(m *Mesh) {
		if l != nil {
			m.log = l
		}
	}
}

func newMesh(kind Kind, opts []Option) *Mesh {
	m := &Mesh{
		kind: kind,
		pred: predicates.Default(),
		log:  zap.NewNop(),
	}
	for _, o := range opts {
		o(m)
	}
	return m
}

// NewSurface builds a surface mesh. Face vertex lists are copied. Edges are
// numbered in order of first occurrence while scanning faces.
func NewSurface(verts []v3.Vec, faces [][]int, opts ...Option) (*Mesh, error) {
	m := newMesh(KindSurface, opts)
	t, err := build(append([]v3.Vec(nil), verts...), cloneInts(faces), nil, nil, nil)
	if err != nil {
		return nil, err
	}
	m.t = t
	m.log.Debug("surface mesh built",
		zap.Int("verts", len(t.verts)),
		zap.Int("edges", len(t.edges)),
		zap.Int("faces", len(t.faces)))
	return m, nil
}

// NewPolyhedral builds a volume mesh. polys[p] lists face ids and
// winding[p][i] is true when face polys[p][i], in its stored vertex order,
// is counter-clockwise seen from outside poly p.
func NewPolyhedral(verts []v3.Vec, faces, polys [][]int, winding [][]bool, opts ...Option) (*Mesh, error) {
	m := newMesh(KindPolyhedral, opts)
	if polys == nil {
		polys = [][]int{}
	}
	if winding == nil {
		winding = [][]bool{}
	}
	t, err := build(append([]v3.Vec(nil), verts...), cloneInts(faces), cloneInts(polys), cloneBools(winding), nil)
	if err != nil {
		return nil, err
	}
	m.t = t
	m.log.Debug("polyhedral mesh built",
		zap.Int("verts", len(t.verts)),
		zap.Int("faces", len(t.faces)),
		zap.Int("polys", len(t.polys)))
	return m, nil
}

// NewTetmesh builds a polyhedral mesh from tetrahedra. Shared triangles are
// stored once, in the vertex order of the first tet that uses them, and the
// winding of every incidence is derived from each tet's orientation. Both
// orientations of the input tets are accepted; flat tets are rejected.
func NewTetmesh(verts []v3.Vec, tets [][4]int, opts ...Option) (*Mesh, error) {
	m := newMesh(KindPolyhedral, opts)
	nv := len(verts)

	var faces [][]int
	polys := make([][]int, len(tets))
	winding := make([][]bool, len(tets))
	byKey := make(map[[3]int]int)

	for tid, tet := range tets {
		for _, v := range tet {
			if v < 0 || v >= nv {
				return nil, structural("tet", tid, "vertex %d out of range [0,%d)", v, nv)
			}
		}
		p := [4]v3.Vec{verts[tet[0]], verts[tet[1]], verts[tet[2]], verts[tet[3]]}
		o := m.pred.Orient3D(p[0], p[1], p[2], p[3])
		if o == 0 {
			return nil, structural("tet", tid, "is flat")
		}
		for _, tf := range predicates.TetFaces {
			loop := []int{tet[tf[0]], tet[tf[1]], tet[tf[2]]}
			if o > 0 {
				// Left-handed tet: the table loops point inwards.
				loop[1], loop[2] = loop[2], loop[1]
			}
			k := sortedTri(loop)
			fid, ok := byKey[k]
			if !ok {
				fid = len(faces)
				byKey[k] = fid
				faces = append(faces, loop)
			}
			polys[tid] = append(polys[tid], fid)
			winding[tid] = append(winding[tid], sameCycle(faces[fid], loop))
		}
	}
	if faces == nil {
		faces = [][]int{}
	}
	t, err := build(append([]v3.Vec(nil), verts...), faces, polys, winding, nil)
	if err != nil {
		return nil, err
	}
	m.t = t
	m.log.Debug("tetmesh built",
		zap.Int("verts", len(t.verts)),
		zap.Int("faces", len(t.faces)),
		zap.Int("tets", len(t.polys)))
	return m, nil
}

func sortedTri(f []int) [3]int {
	a, b, c := f[0], f[1], f[2]
	if a > b {
		a, b = b, a
	}
	if b > c {
		b, c = c, b
	}
	if a > b {
		a, b = b, a
	}
	return [3]int{a, b, c}
}

// sameCycle reports whether b is a rotation of a.
func sameCycle(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	n := len(a)
	for off := 0; off < n; off++ {
		if a[off] != b[0] {
			continue
		}
		for i := 0; i < n; i++ {
			if a[(off+i)%n] != b[i] {
				return false
			}
		}
		return true
	}
	return false
}

// Kind returns the mesh kind.
func (m *Mesh) Kind() Kind { return m.kind }

// Predicates returns the predicate kernel used by the editor.
func (m *Mesh) Predicates() *predicates.Kernel { return m.pred }

// Logger returns the mesh logger. Algorithms working on the mesh log through it.
func (m *Mesh) Logger() *zap.Logger { return m.log }

// Clone returns an independent deep copy sharing the kernel and logger.
func (m *Mesh) Clone() *Mesh {
	t := m.t
	c := &topology{
		verts:      append([]v3.Vec(nil), t.verts...),
		faces:      cloneInts(t.faces),
		polys:      cloneInts(t.polys),
		winding:    cloneBools(t.winding),
		marked:     append([]bool(nil), t.marked...),
		faceLabels: append([]int(nil), t.faceLabels...),
		polyLabels: append([]int(nil), t.polyLabels...),
		keys:       make(map[edgeKey]int, len(t.keys)),
		v2v:        cloneInts(t.v2v),
		v2e:        cloneInts(t.v2e),
		v2f:        cloneInts(t.v2f),
		v2p:        cloneInts(t.v2p),
		e2f:        cloneInts(t.e2f),
		e2p:        cloneInts(t.e2p),
		f2e:        cloneInts(t.f2e),
		f2p:        cloneInts(t.f2p),
		p2e:        cloneInts(t.p2e),
		p2v:        cloneInts(t.p2v),
	}
	c.edges = append([][2]int(nil), t.edges...)
	for k, v := range t.keys {
		c.keys[k] = v
	}
	return &Mesh{kind: m.kind, pred: m.pred, log: m.log, t: c}
}

// rebuild derives a fresh snapshot from new primary data, carrying marks by
// vertex pair and the given labels. It does not publish the snapshot.
func (m *Mesh) rebuild(verts []v3.Vec, faces, polys [][]int, winding [][]bool, order [][2]int,
	marks map[edgeKey]bool, faceLabels, polyLabels []int) (*topology, error) {
	if m.kind == KindPolyhedral {
		if polys == nil {
			polys = [][]int{}
		}
		if winding == nil {
			winding = [][]bool{}
		}
	}
	t, err := build(verts, faces, polys, winding, order)
	if err != nil {
		return nil, fmt.Errorf("mesh: rebuild: %w", err)
	}
	t.applyMarks(marks)
	copy(t.faceLabels, faceLabels)
	copy(t.polyLabels, polyLabels)
	return t, nil
}
