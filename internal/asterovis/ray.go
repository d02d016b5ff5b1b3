package asterovis

// Ray is an origin plus a unit direction.
type Ray struct {
	Origin Point3
	Dir    Vector3 // unit-length; constructor normalizes
}

// NewRay builds a ray with a normalized direction. A (near) zero direction is
// kept as-is; such a ray intersects nothing.
func NewRay(origin Point3, dir Vector3) Ray {
	return Ray{Origin: origin, Dir: dir.Norm()}
}

// At returns the point at parameter t along the ray.
func (r Ray) At(t Real) Point3 { return r.Origin.Add(r.Dir.Mul(t)) }

// RayTriangleHit reports the outcome of a single ray–triangle test.
type RayTriangleHit struct {
	Hit   bool
	Dist  Real
	Point Point3
}

// RayMeshHit reports the closest intersection of a ray with a mesh.
type RayMeshHit struct {
	Hit   bool
	Dist  Real
	Point Point3
	Face  int
}

// NoMeshHit is the canonical miss record for ray–mesh queries.
var NoMeshHit = RayMeshHit{Face: -1}

// IntersectRayTriangle tests a ray against a single triangle using the
// Möller–Trumbore algorithm. Triangles are hit from either side (no backface
// culling). Intersections behind the ray origin are not hits. Pure: safe for
// unrestricted parallel invocation.
func IntersectRayTriangle(ray Ray, v0, v1, v2 Point3) RayTriangleHit {
	edge1 := v1.Sub(v0)
	edge2 := v2.Sub(v0)

	h := ray.Dir.Cross(edge2)
	det := edge1.Dot(h)
	if det > -epsParallel && det < epsParallel {
		return RayTriangleHit{} // parallel to the triangle plane
	}

	f := 1.0 / det
	s := ray.Origin.Sub(v0)
	u := f * s.Dot(h)
	if u < 0 || u > 1 {
		return RayTriangleHit{}
	}

	q := s.Cross(edge1)
	v := f * ray.Dir.Dot(q)
	if v < 0 || u+v > 1 {
		return RayTriangleHit{}
	}

	t := f * edge2.Dot(q)
	if t <= epsHit {
		return RayTriangleHit{} // plane intersection behind the origin
	}
	return RayTriangleHit{Hit: true, Dist: t, Point: ray.At(t)}
}
