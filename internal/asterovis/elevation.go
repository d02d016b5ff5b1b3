package asterovis

import "math"

// FaceMaxElevations computes, for every face, the maximum elevation angle
// (radians, relative to the face's horizon plane) at which any visible face's
// vertices lie. Derived entirely from the visibility graph; must be
// recomputed if the graph changes. A face with no visible faces gets -Inf,
// which makes the illumination fast path always applicable to it.
func FaceMaxElevations(mesh *Mesh, graph *FaceVisibilityGraph) ([]Real, error) {
	if graph == nil {
		return nil, ErrGraphNotBuilt
	}
	if graph.NFaces() != mesh.NFaces() {
		return nil, ErrSizeMismatch
	}

	elev := make([]Real, mesh.NFaces())
	parallelRange(mesh.NFaces(), func(lo, hi int) {
		for i := lo; i < hi; i++ {
			ci := mesh.Centroids[i]
			ni := mesh.Normals[i]
			maxElev := math.Inf(-1)
			row, _ := graph.Row(i)
			for _, j := range row.Targets {
				f := mesh.Faces[j]
				for _, vi := range f {
					d := mesh.Vertices[vi].Sub(ci).Norm()
					s := d.Dot(ni)
					if s < -1 {
						s = -1
					} else if s > 1 {
						s = 1
					}
					if e := math.Asin(s); e > maxElev {
						maxElev = e
					}
				}
			}
			elev[i] = maxElev
		}
	})
	return elev, nil
}
