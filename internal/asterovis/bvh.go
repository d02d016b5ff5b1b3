package asterovis

import (
	"math"
	"sort"
)

type bvhLeaf struct {
	min, max Point3
	face     int
}

type aabbNode struct {
	min, max Point3
	left     *aabbNode
	right    *aabbNode
	leafObjs []bvhLeaf // non-nil ⇒ leaf
}

// SpatialIndex is a bounding-volume hierarchy over a mesh's per-face boxes.
// Built once from an immutable mesh; never updated incrementally. Safe for
// unsynchronized concurrent queries after construction.
type SpatialIndex struct {
	mesh *Mesh
	root *aabbNode
}

// BuildIndex constructs one bounding box per face and builds a median-split
// BVH over them. Must be called before any query.
func BuildIndex(mesh *Mesh) *SpatialIndex {
	leaves := make([]bvhLeaf, mesh.NFaces())
	for i := range leaves {
		v0, v1, v2 := mesh.FaceVertices(i)
		leaves[i] = bvhLeaf{
			min: Point3{
				rmin(v0.X, rmin(v1.X, v2.X)),
				rmin(v0.Y, rmin(v1.Y, v2.Y)),
				rmin(v0.Z, rmin(v1.Z, v2.Z)),
			},
			max: Point3{
				rmax(v0.X, rmax(v1.X, v2.X)),
				rmax(v0.Y, rmax(v1.Y, v2.Y)),
				rmax(v0.Z, rmax(v1.Z, v2.Z)),
			},
			face: i,
		}
	}
	return &SpatialIndex{mesh: mesh, root: buildBVHRec(leaves)}
}

func buildBVHRec(objs []bvhLeaf) *aabbNode {
	n := len(objs)
	if n == 0 {
		return nil
	}
	if n <= bvhMaxLeafSize {
		minP, maxP := objs[0].min, objs[0].max
		for i := 1; i < n; i++ {
			minP, maxP = aabbUnion(minP, maxP, objs[i].min, objs[i].max)
		}
		return &aabbNode{min: minP, max: maxP, leafObjs: objs}
	}

	// Union bounds and centroid spreads
	minP, maxP := objs[0].min, objs[0].max
	cmin := [3]Real{centroid(objs[0].min.X, objs[0].max.X), centroid(objs[0].min.Y, objs[0].max.Y), centroid(objs[0].min.Z, objs[0].max.Z)}
	cmax := cmin
	for i := 1; i < n; i++ {
		minP, maxP = aabbUnion(minP, maxP, objs[i].min, objs[i].max)
		cx := centroid(objs[i].min.X, objs[i].max.X)
		cy := centroid(objs[i].min.Y, objs[i].max.Y)
		cz := centroid(objs[i].min.Z, objs[i].max.Z)
		if cx < cmin[0] {
			cmin[0] = cx
		}
		if cx > cmax[0] {
			cmax[0] = cx
		}
		if cy < cmin[1] {
			cmin[1] = cy
		}
		if cy > cmax[1] {
			cmax[1] = cy
		}
		if cz < cmin[2] {
			cmin[2] = cz
		}
		if cz > cmax[2] {
			cmax[2] = cz
		}
	}
	spread := [3]Real{cmax[0] - cmin[0], cmax[1] - cmin[1], cmax[2] - cmin[2]}
	axis := 0
	if spread[1] > spread[axis] {
		axis = 1
	}
	if spread[2] > spread[axis] {
		axis = 2
	}

	// If all centroids coincide (degenerate), fall back to longest box extent axis.
	if spread[axis] <= 1e-18 {
		ext := [3]Real{maxP.X - minP.X, maxP.Y - minP.Y, maxP.Z - minP.Z}
		axis = 0
		if ext[1] > ext[axis] {
			axis = 1
		}
		if ext[2] > ext[axis] {
			axis = 2
		}
	}

	// Sort by chosen centroid axis, split at median
	sort.Slice(objs, func(i, j int) bool {
		ci := getCentroidAxis(objs[i], axis)
		cj := getCentroidAxis(objs[j], axis)
		if ci == cj {
			return objs[i].face < objs[j].face
		}
		return ci < cj
	})
	mid := n / 2
	left := buildBVHRec(objs[:mid])
	right := buildBVHRec(objs[mid:])

	return &aabbNode{min: minP, max: maxP, left: left, right: right}
}

func aabbUnion(aMin, aMax, bMin, bMax Point3) (Point3, Point3) {
	return Point3{
			rmin(aMin.X, bMin.X),
			rmin(aMin.Y, bMin.Y),
			rmin(aMin.Z, bMin.Z),
		}, Point3{
			rmax(aMax.X, bMax.X),
			rmax(aMax.Y, bMax.Y),
			rmax(aMax.Z, bMax.Z),
		}
}

func rmin(a, b Real) Real {
	if a < b {
		return a
	}
	return b
}

func rmax(a, b Real) Real {
	if a > b {
		return a
	}
	return b
}

func centroid(a, b Real) Real { return (a + b) * 0.5 }

func getCentroidAxis(o bvhLeaf, axis int) Real {
	switch axis {
	case 0:
		return centroid(o.min.X, o.max.X)
	case 1:
		return centroid(o.min.Y, o.max.Y)
	default:
		return centroid(o.min.Z, o.max.Z)
	}
}

// QueryRay returns the closest intersection of a ray with the indexed mesh,
// or NoMeshHit. Querying a nil or unbuilt index is a precondition violation.
func (idx *SpatialIndex) QueryRay(ray Ray) (RayMeshHit, error) {
	if idx == nil || idx.root == nil {
		return NoMeshHit, ErrIndexNotBuilt
	}
	return idx.traverseNearest(ray.Origin, ray.Dir), nil
}

// QueryBatch runs QueryRay for every origin/direction pair. Directions are
// normalized per ray; output slot i belongs to ray i, so the batch is
// partitioned across workers.
func (idx *SpatialIndex) QueryBatch(origins []Point3, dirs []Vector3) ([]RayMeshHit, error) {
	if idx == nil || idx.root == nil {
		return nil, ErrIndexNotBuilt
	}
	if len(origins) != len(dirs) {
		return nil, ErrSizeMismatch
	}
	hits := make([]RayMeshHit, len(origins))
	parallelRange(len(origins), func(lo, hi int) {
		for i := lo; i < hi; i++ {
			hits[i] = idx.traverseNearest(origins[i], dirs[i].Norm())
		}
	})
	return hits, nil
}

// Nearest-hit traversal (iterative, stack-based). Tree nodes give candidate
// faces; every candidate is narrowed with the exact ray–triangle test and
// only the closest hit survives. Prunes by current best t.
func (idx *SpatialIndex) traverseNearest(O Point3, D Vector3) RayMeshHit {
	bestT := Real(math.Inf(1))
	bestFace := -1
	var bestP Point3
	rr := computeRayRecips(D)
	ray := Ray{Origin: O, Dir: D}

	type entry struct {
		n    *aabbNode
		tmin Real
	}
	stack := []entry{{n: idx.root, tmin: 0}}
	for len(stack) > 0 {
		// pop
		e := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		ok, tmin := rayAABB(O, e.n.min, e.n.max, rr)
		if !ok || tmin > bestT {
			continue
		}

		if e.n.leafObjs != nil {
			for i := range e.n.leafObjs {
				f := e.n.leafObjs[i].face
				v0, v1, v2 := idx.mesh.FaceVertices(f)
				if h := IntersectRayTriangle(ray, v0, v1, v2); h.Hit && h.Dist < bestT {
					bestT = h.Dist
					bestFace = f
					bestP = h.Point
				}
			}
			continue
		}

		// order children near→far (push far first so near is processed next)
		var lOK, rOK bool
		var lT, rT Real
		if e.n.left != nil {
			lOK, lT = rayAABB(O, e.n.left.min, e.n.left.max, rr)
			lOK = lOK && lT <= bestT
		}
		if e.n.right != nil {
			rOK, rT = rayAABB(O, e.n.right.min, e.n.right.max, rr)
			rOK = rOK && rT <= bestT
		}
		if lOK && rOK {
			if lT < rT {
				stack = append(stack, entry{e.n.right, rT}, entry{e.n.left, lT})
			} else {
				stack = append(stack, entry{e.n.left, lT}, entry{e.n.right, rT})
			}
		} else if lOK {
			stack = append(stack, entry{e.n.left, lT})
		} else if rOK {
			stack = append(stack, entry{e.n.right, rT})
		}
	}

	if bestFace < 0 {
		return NoMeshHit
	}
	return RayMeshHit{Hit: true, Dist: bestT, Point: bestP, Face: bestFace}
}
