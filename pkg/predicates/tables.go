package predicates

// Sub-simplex numbering shared with the mesh store.

// TriEdges lists triangle edges as vertex offset pairs.
var TriEdges = [3][2]int{
	{0, 1},
	{1, 2},
	{2, 0},
}

// TetFaces lists tet faces as vertex offset triples. For a tet with positive
// right-handed volume (Orient3D(t0, t1, t2, t3) < 0) every face normal points
// outwards. Face i is opposite to vertex 3-i.
var TetFaces = [4][3]int{
	{0, 2, 1},
	{0, 1, 3},
	{0, 3, 2},
	{1, 2, 3},
}

// TetEdges lists tet edges as vertex offset pairs.
var TetEdges = [6][2]int{
	{0, 2},
	{2, 1},
	{1, 0},
	{1, 3},
	{3, 0},
	{2, 3},
}

// tetFaceOpposite[v] is the face opposite to vertex v.
var tetFaceOpposite = [4]int{3, 2, 1, 0}

// tetEdgeIndex returns the index in TetEdges of the edge joining vertex
// offsets a and b, or -1.
func tetEdgeIndex(a, b int) int {
	for i, e := range TetEdges {
		if (e[0] == a && e[1] == b) || (e[0] == b && e[1] == a) {
			return i
		}
	}
	return -1
}
