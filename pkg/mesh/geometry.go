package mesh

import (
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/golang/geo/s1"

	"github.com/chazu/meshkit/pkg/geom"
)

func (m *Mesh) facePoints(fid int) []v3.Vec {
	f := m.t.faces[fid]
	pts := make([]v3.Vec, len(f))
	for i, v := range f {
		pts[i] = m.t.verts[v]
	}
	return pts
}

// FacePoints returns the positions of the vertices of fid in loop order.
func (m *Mesh) FacePoints(fid int) []v3.Vec { return m.facePoints(fid) }

// FaceNormal returns the unit Newell normal of fid following its winding.
func (m *Mesh) FaceNormal(fid int) v3.Vec {
	return geom.PolygonNormal(m.facePoints(fid))
}

// FaceCentroid returns the average of the vertices of fid.
func (m *Mesh) FaceCentroid(fid int) v3.Vec {
	return geom.Centroid3(m.facePoints(fid))
}

// FaceArea returns the area of fid.
func (m *Mesh) FaceArea(fid int) float64 {
	return geom.PolygonArea3(m.facePoints(fid))
}

// Area returns the sum of all face areas.
func (m *Mesh) Area() float64 {
	var a float64
	for fid := range m.t.faces {
		a += m.FaceArea(fid)
	}
	return a
}

// EdgeLength returns the length of eid.
func (m *Mesh) EdgeLength(eid int) float64 {
	e := m.t.edges[eid]
	return m.t.verts[e[1]].Sub(m.t.verts[e[0]]).Length()
}

// EdgeMidpoint returns the midpoint of eid.
func (m *Mesh) EdgeMidpoint(eid int) v3.Vec {
	e := m.t.edges[eid]
	return m.t.verts[e[0]].Add(m.t.verts[e[1]]).MulScalar(0.5)
}

// EdgeDihedralAngle returns the angle between the normals of the two faces
// incident to eid: zero for a flat edge, 90 degrees for a cube edge. ok is
// false unless exactly two faces share eid.
func (m *Mesh) EdgeDihedralAngle(eid int) (angle s1.Angle, ok bool) {
	ef := m.t.e2f[eid]
	if len(ef) != 2 {
		return 0, false
	}
	n0 := geom.ToR3(m.FaceNormal(ef[0]))
	n1 := geom.ToR3(m.FaceNormal(ef[1]))
	return n0.Angle(n1), true
}

// PolyCentroid returns the average of the vertices of pid.
func (m *Mesh) PolyCentroid(pid int) v3.Vec {
	vs := m.t.p2v[pid]
	pts := make([]v3.Vec, len(vs))
	for i, v := range vs {
		pts[i] = m.t.verts[v]
	}
	return geom.Centroid3(pts)
}

// PolyVolume returns the volume enclosed by pid, fan-triangulating every
// face from its outward loop. The result is negative when the winding bits
// describe an inside-out poly.
func (m *Mesh) PolyVolume(pid int) float64 {
	ref := m.PolyCentroid(pid)
	var vol float64
	for i := range m.t.polys[pid] {
		loop := m.polyFaceLoop(pid, i)
		a := m.t.verts[loop[0]]
		for j := 1; j+1 < len(loop); j++ {
			vol += geom.TetVolume(ref, a, m.t.verts[loop[j]], m.t.verts[loop[j+1]])
		}
	}
	return vol
}

// Volume returns the summed volume of every poly.
func (m *Mesh) Volume() float64 {
	var v float64
	for pid := range m.t.polys {
		v += m.PolyVolume(pid)
	}
	return v
}

// BoundingBox returns the axis-aligned box around all vertices.
func (m *Mesh) BoundingBox() sdf.Box3 {
	return geom.Bounds3(m.t.verts)
}
