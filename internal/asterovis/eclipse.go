package asterovis

import "math"

// EclipseStatus summarizes one eclipse-shadowing pass over a face
// illumination vector.
type EclipseStatus int

const (
	NoEclipse EclipseStatus = iota
	PartialEclipse
	TotalEclipse
)

func (s EclipseStatus) String() string {
	switch s {
	case NoEclipse:
		return "no_eclipse"
	case PartialEclipse:
		return "partial_eclipse"
	case TotalEclipse:
		return "total_eclipse"
	default:
		return "unknown"
	}
}

// raySphere solves the quadratic distance equation for a ray against a sphere
// centered at c. Returns whether any part of the sphere lies ahead of the
// origin, plus the near/far parameters. A degenerate radius never hits.
func raySphere(o Point3, d Vector3, c Point3, radius Real) (bool, Real, Real) {
	if radius <= 0 {
		return false, 0, 0
	}
	oc := o.Sub(c)
	a := d.Dot(d)
	if a < epsLen2 {
		return false, 0, 0
	}
	b := 2 * oc.Dot(d)
	cc := oc.Dot(oc) - radius*radius

	disc := b*b - 4*a*cc
	if disc < 0 {
		return false, 0, 0
	}
	sq := math.Sqrt(disc)
	denom := 2 * a
	tNear := (-b - sq) / denom
	tFar := (-b + sq) / denom
	if tFar <= epsHit {
		return false, 0, 0 // sphere entirely behind the origin
	}
	return true, tNear, tFar
}

// ApplyEclipseShadowing demotes faces of body A that are currently marked
// illuminated wherever body B occludes the sun. It never re-illuminates a
// shadowed face. illum holds one flag per face of A; sunDirA and posBinA are
// the sun direction and B's center expressed in A's frame; rotA2B rotates
// A-frame vectors into B's frame. B's spatial index must be pre-built.
func ApplyEclipseShadowing(illum []bool, meshA, meshB *Mesh, indexB *SpatialIndex, sunDirA Vector3, posBinA Point3, rotA2B Mat3) (EclipseStatus, error) {
	if indexB == nil || indexB.root == nil {
		return NoEclipse, ErrIndexNotBuilt
	}
	if len(illum) != meshA.NFaces() {
		return NoEclipse, ErrSizeMismatch
	}

	s := sunDirA.Norm()
	if s.Dot(s) < epsLen2 {
		return NoEclipse, nil // zero sun direction: nothing can be occluded
	}

	ra := meshA.BoundingRadius()
	rbOut := meshB.BoundingRadius()
	rbIn := meshB.InscribedRadius()

	d := posBinA.Vec()
	// B's offset along the sun line and across it.
	proj := d.Dot(s)
	perp := d.Sub(s.Mul(proj)).Len()

	// Body-level early-outs, evaluated once per call.
	if proj < -(ra + rbOut) {
		return NoEclipse, nil // B is too far behind A to cast on it
	}
	if perp > ra+rbOut {
		return NoEclipse, nil // shadow cone cannot reach A
	}
	if proj > 0 && perp+ra <= rbIn {
		// A's bounding sphere sits entirely inside B's umbra.
		for i := range illum {
			illum[i] = false
		}
		return TotalEclipse, nil
	}

	sB := rotA2B.MulVec(s)
	bCenter := Point3{}

	nBefore := 0
	for i := range illum {
		if illum[i] {
			nBefore++
		}
	}
	if nBefore == 0 {
		return NoEclipse, nil
	}

	// One demotion flag slot per face keeps the parallel loop free of shared
	// counters; the total is summed after the join.
	chunkCounts := make([]int, meshA.NFaces())
	parallelRange(meshA.NFaces(), func(lo, hi int) {
		for i := lo; i < hi; i++ {
			if !illum[i] {
				continue
			}
			// Face center and sunward ray, expressed in B's frame.
			oB := rotA2B.MulVec(meshA.Centroids[i].Sub(posBinA)).Point()

			// Outer-sphere pre-filter: a clear miss skips the face.
			hitOut, _, _ := raySphere(oB, sB, bCenter, rbOut)
			if !hitOut {
				continue
			}

			// Inner-sphere shortcut: passing through the inscribed sphere
			// guarantees a mesh hit.
			if hitIn, _, _ := raySphere(oB, sB, bCenter, rbIn); hitIn {
				illum[i] = false
				chunkCounts[i] = 1
				continue
			}

			// Exact test against B's mesh.
			if h := indexB.traverseNearest(oB, sB); h.Hit {
				illum[i] = false
				chunkCounts[i] = 1
			}
		}
	})

	nDemoted := 0
	for _, c := range chunkCounts {
		nDemoted += c
	}
	switch {
	case nDemoted == 0:
		return NoEclipse, nil
	case nDemoted == nBefore:
		return TotalEclipse, nil
	default:
		return PartialEclipse, nil
	}
}
