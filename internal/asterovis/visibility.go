package asterovis

import (
	"math"
	"sort"
)

// FaceVisibilityGraph stores, for every face, the set of faces it has an
// unobstructed line of sight to, in compressed-row form. Offsets has length
// nfaces+1; the four value arrays run in parallel over all visible pairs.
// Built once, immutable afterwards.
type FaceVisibilityGraph struct {
	Offsets     []int
	Targets     []int
	ViewFactors []Real
	Distances   []Real
	Dirs        []Vector3 // unit, source centroid → target centroid
}

// VisibilityRow is one face's adjacency: slice views into the CSR arrays.
type VisibilityRow struct {
	Targets     []int
	ViewFactors []Real
	Distances   []Real
	Dirs        []Vector3
}

// NFaces returns the number of source faces the graph was built over.
func (g *FaceVisibilityGraph) NFaces() int { return len(g.Offsets) - 1 }

// NPairs returns the total number of visible (directed) pairs.
func (g *FaceVisibilityGraph) NPairs() int { return len(g.Targets) }

// VisibleCount returns how many faces are visible from face i.
func (g *FaceVisibilityGraph) VisibleCount(i int) (int, error) {
	if i < 0 || i >= g.NFaces() {
		return 0, ErrFaceOutOfRange
	}
	return g.Offsets[i+1] - g.Offsets[i], nil
}

// Row returns face i's adjacency. The returned slices alias the graph's
// backing arrays and must not be mutated.
func (g *FaceVisibilityGraph) Row(i int) (VisibilityRow, error) {
	if i < 0 || i >= g.NFaces() {
		return VisibilityRow{}, ErrFaceOutOfRange
	}
	lo, hi := g.Offsets[i], g.Offsets[i+1]
	return VisibilityRow{
		Targets:     g.Targets[lo:hi],
		ViewFactors: g.ViewFactors[lo:hi],
		Distances:   g.Distances[lo:hi],
		Dirs:        g.Dirs[lo:hi],
	}, nil
}

// visCandidate is a face that survived the mutual-facing pre-filter.
type visCandidate struct {
	face int
	dist Real
}

// visEntry is one confirmed visible pair, before CSR packing.
type visEntry struct {
	target     int
	viewFactor Real
	dist       Real
	dir        Vector3
}

// viewFactor is the Lambertian form: fraction of diffusely radiated energy
// leaving face i that directly reaches face j. Zero whenever either face does
// not face the other.
func viewFactor(ni, nj Vector3, dir Vector3, dist, areaJ Real) Real {
	ci := ni.Dot(dir)
	cj := -nj.Dot(dir)
	if ci < 0 {
		ci = 0
	}
	if cj < 0 {
		cj = 0
	}
	return ci * cj * areaJ / (math.Pi * dist * dist)
}

// BuildVisibilityGraph determines, for every face, the set of other faces
// with an unobstructed line of sight, and packs the result into CSR form.
//
// The builder deliberately does not use the spatial index: the mutual-facing
// pre-filter rejects the vast majority of pairs in O(1), and the surviving
// candidate sets are small and locally clustered, where a linear scan beats
// general tree traversal.
func BuildVisibilityGraph(mesh *Mesh) *FaceVisibilityGraph {
	n := mesh.NFaces()

	// Pre-filter: face j is a candidate of face i only when each lies in
	// front of the other's plane. Candidates are sorted by distance so the
	// occlusion test only has to look at strictly nearer ones. Each face's
	// candidate list is independent, so this phase runs in parallel.
	candidates := make([][]visCandidate, n)
	parallelRange(n, func(lo, hi int) {
		for i := lo; i < hi; i++ {
			ci := mesh.Centroids[i]
			ni := mesh.Normals[i]
			var list []visCandidate
			for j := 0; j < n; j++ {
				if j == i {
					continue
				}
				d := mesh.Centroids[j].Sub(ci)
				if d.Dot(ni) <= 0 || d.Dot(mesh.Normals[j]) >= 0 {
					continue
				}
				list = append(list, visCandidate{face: j, dist: d.Len()})
			}
			sort.Slice(list, func(a, b int) bool { return list[a].dist < list[b].dist })
			candidates[i] = list
		}
	})

	// Occlusion pass with symmetric insertion. Pairs (i,j) with j < i were
	// already decided from j's side, so only j > i is inspected here; a
	// visible pair is recorded in both directions in the same step, each with
	// its own view factor, distance and unit direction.
	adj := make([][]visEntry, n)
	nnz := 0
	for i := 0; i < n; i++ {
		ci := mesh.Centroids[i]
		for _, cand := range candidates[i] {
			j := cand.face
			if j < i {
				continue
			}
			dir := mesh.Centroids[j].Sub(ci).Norm()
			ray := Ray{Origin: ci, Dir: dir}

			occluded := false
			for _, k := range candidates[i] {
				if k.dist >= cand.dist {
					break // sorted: nothing nearer remains
				}
				v0, v1, v2 := mesh.FaceVertices(k.face)
				if h := IntersectRayTriangle(ray, v0, v1, v2); h.Hit && h.Dist < cand.dist {
					occluded = true
					break
				}
			}
			if occluded {
				continue
			}

			ni, nj := mesh.Normals[i], mesh.Normals[j]
			adj[i] = append(adj[i], visEntry{
				target:     j,
				viewFactor: viewFactor(ni, nj, dir, cand.dist, mesh.Areas[j]),
				dist:       cand.dist,
				dir:        dir,
			})
			adj[j] = append(adj[j], visEntry{
				target:     i,
				viewFactor: viewFactor(nj, ni, dir.Mul(-1), cand.dist, mesh.Areas[i]),
				dist:       cand.dist,
				dir:        dir.Mul(-1),
			})
			nnz += 2
		}
	}

	// CSR assembly: offsets as a running sum of list lengths, then a second
	// pass filling the flat arrays.
	g := &FaceVisibilityGraph{
		Offsets:     make([]int, n+1),
		Targets:     make([]int, nnz),
		ViewFactors: make([]Real, nnz),
		Distances:   make([]Real, nnz),
		Dirs:        make([]Vector3, nnz),
	}
	for i := 0; i < n; i++ {
		g.Offsets[i+1] = g.Offsets[i] + len(adj[i])
	}
	for i := 0; i < n; i++ {
		at := g.Offsets[i]
		for _, e := range adj[i] {
			g.Targets[at] = e.target
			g.ViewFactors[at] = e.viewFactor
			g.Distances[at] = e.dist
			g.Dirs[at] = e.dir
			at++
		}
	}
	return g
}
