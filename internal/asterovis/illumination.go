package asterovis

import "math"

// IlluminationMode selects how direct sunlight is evaluated.
type IlluminationMode int

const (
	// PseudoConvex treats a face as sunlit whenever it faces the sun,
	// ignoring all terrain occlusion. Valid for convex bodies.
	PseudoConvex IlluminationMode = iota
	// SelfShadowing additionally tests occlusion by the body's own terrain
	// via the face visibility graph.
	SelfShadowing
)

// Illuminator evaluates direct solar illumination of mesh faces. The two
// modes are fixed at construction so an Illuminator can never silently mix
// them, and a self-shadowing Illuminator cannot exist without a built
// visibility graph.
type Illuminator struct {
	mesh    *Mesh
	mode    IlluminationMode
	graph   *FaceVisibilityGraph
	maxElev []Real
	margin  Real
}

// NewPseudoConvexIlluminator builds an orientation-only illuminator.
func NewPseudoConvexIlluminator(mesh *Mesh) *Illuminator {
	return &Illuminator{mesh: mesh, mode: PseudoConvex}
}

// NewSelfShadowingIlluminator builds an illuminator that accounts for
// occlusion by the body's own terrain. maxElev is the per-face maximum
// occluder elevation from FaceMaxElevations; margin is the angular safety
// margin (radians) added before the elevation fast path is trusted
// (DefaultElevationMargin when unsure).
func NewSelfShadowingIlluminator(mesh *Mesh, graph *FaceVisibilityGraph, maxElev []Real, margin Real) (*Illuminator, error) {
	if graph == nil {
		return nil, ErrGraphNotBuilt
	}
	if graph.NFaces() != mesh.NFaces() || len(maxElev) != mesh.NFaces() {
		return nil, ErrSizeMismatch
	}
	if margin < 0 {
		margin = DefaultElevationMargin
	}
	return &Illuminator{
		mesh:    mesh,
		mode:    SelfShadowing,
		graph:   graph,
		maxElev: maxElev,
		margin:  margin,
	}, nil
}

// Mode reports the illumination mode fixed at construction.
func (il *Illuminator) Mode() IlluminationMode { return il.mode }

// Illuminated reports whether a single face receives direct sunlight from
// direction sunDir (need not be unit-length).
func (il *Illuminator) Illuminated(face int, sunDir Vector3) (bool, error) {
	if face < 0 || face >= il.mesh.NFaces() {
		return false, ErrFaceOutOfRange
	}
	return il.illuminatedUnit(face, sunDir.Norm()), nil
}

// IlluminateAll evaluates every face into the caller-supplied buffer, whose
// length must equal the face count. The sun direction is normalized once for
// the whole batch; faces are partitioned across workers, each writing only
// its own output slots.
func (il *Illuminator) IlluminateAll(sunDir Vector3, out []bool) error {
	if len(out) != il.mesh.NFaces() {
		return ErrSizeMismatch
	}
	s := sunDir.Norm()
	parallelRange(il.mesh.NFaces(), func(lo, hi int) {
		for i := lo; i < hi; i++ {
			out[i] = il.illuminatedUnit(i, s)
		}
	})
	return nil
}

func (il *Illuminator) illuminatedUnit(face int, s Vector3) bool {
	ni := il.mesh.Normals[face]
	sinElev := ni.Dot(s) // sine of the sun's elevation over the horizon plane
	if sinElev <= 0 {
		return false // facing away from the sun
	}
	if il.mode == PseudoConvex {
		return true
	}

	// Fast path: the sun sits strictly above every occluder this face can
	// see, so no ray casting is needed.
	if sinElev > 1 {
		sinElev = 1
	}
	if math.Asin(sinElev) > il.maxElev[face]+il.margin {
		return true
	}

	// Exact path: cast toward the sun against the face's adjacency list.
	ray := Ray{Origin: il.mesh.Centroids[face], Dir: s}
	row, _ := il.graph.Row(face)
	for _, j := range row.Targets {
		v0, v1, v2 := il.mesh.FaceVertices(j)
		if h := IntersectRayTriangle(ray, v0, v1, v2); h.Hit {
			return false
		}
	}
	return true
}
