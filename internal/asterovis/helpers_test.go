package asterovis

import (
	"math"
	"testing"
)

func p3(x, y, z float64) Point3  { return Point3{X: x, Y: y, Z: z} }
func v3(x, y, z float64) Vector3 { return Vector3{X: x, Y: y, Z: z} }

func almostEq(a, b Real) bool { return math.Abs(float64(a-b)) < 1e-9 }

func nearly(a, b, tol Real) bool { return math.Abs(float64(a-b)) <= float64(tol) }

func mustMesh(t *testing.T, vertices []Point3, faces [][3]int) *Mesh {
	t.Helper()
	m, err := NewMesh(vertices, faces)
	if err != nil {
		t.Fatalf("NewMesh: %v", err)
	}
	return m
}

// orientOutward flips face windings so every normal points away from the
// origin. Only meaningful for meshes enclosing the origin.
func orientOutward(vertices []Point3, faces [][3]int) [][3]int {
	out := make([][3]int, len(faces))
	for i, f := range faces {
		v0, v1, v2 := vertices[f[0]], vertices[f[1]], vertices[f[2]]
		c := v3((v0.X+v1.X+v2.X)/3, (v0.Y+v1.Y+v2.Y)/3, (v0.Z+v1.Z+v2.Z)/3)
		n := v1.Sub(v0).Cross(v2.Sub(v0))
		if n.Dot(c) < 0 {
			f[1], f[2] = f[2], f[1]
		}
		out[i] = f
	}
	return out
}

// appendPlate adds a square plate (two triangles) centered at c with the
// given half-size, lying in a constant-z plane, with the normal pointing
// toward +z when up is true.
func appendPlate(vertices []Point3, faces [][3]int, c Point3, half Real, up bool) ([]Point3, [][3]int) {
	base := len(vertices)
	vertices = append(vertices,
		p3(c.X-half, c.Y-half, c.Z),
		p3(c.X+half, c.Y-half, c.Z),
		p3(c.X+half, c.Y+half, c.Z),
		p3(c.X-half, c.Y+half, c.Z),
	)
	if up {
		faces = append(faces,
			[3]int{base, base + 1, base + 2},
			[3]int{base, base + 2, base + 3},
		)
	} else {
		faces = append(faces,
			[3]int{base, base + 2, base + 1},
			[3]int{base, base + 3, base + 2},
		)
	}
	return vertices, faces
}

// cubeMesh returns an axis-aligned unit cube centered at the origin,
// triangulated with outward normals.
func cubeMesh(t *testing.T) *Mesh {
	t.Helper()
	const h = 0.5
	vertices := []Point3{
		p3(-h, -h, -h), p3(h, -h, -h), p3(h, h, -h), p3(-h, h, -h),
		p3(-h, -h, h), p3(h, -h, h), p3(h, h, h), p3(-h, h, h),
	}
	quads := [][4]int{
		{0, 3, 2, 1}, // -z
		{4, 5, 6, 7}, // +z
		{0, 1, 5, 4}, // -y
		{2, 3, 7, 6}, // +y
		{1, 2, 6, 5}, // +x
		{0, 4, 7, 3}, // -x
	}
	var faces [][3]int
	for _, q := range quads {
		faces = append(faces, [3]int{q[0], q[1], q[2]}, [3]int{q[0], q[2], q[3]})
	}
	return mustMesh(t, vertices, orientOutward(vertices, faces))
}

// icosahedron returns a regular icosahedron scaled so its circumradius
// (= bounding-sphere radius) equals r.
func icosahedron(t *testing.T, r Real) *Mesh {
	t.Helper()
	phi := (1 + math.Sqrt(5)) / 2
	s := r / math.Sqrt(1+phi*phi)
	a, b := s, phi*s
	vertices := []Point3{
		p3(-a, b, 0), p3(a, b, 0), p3(-a, -b, 0), p3(a, -b, 0),
		p3(0, -a, b), p3(0, a, b), p3(0, -a, -b), p3(0, a, -b),
		p3(b, 0, -a), p3(b, 0, a), p3(-b, 0, -a), p3(-b, 0, a),
	}
	faces := [][3]int{
		{0, 11, 5}, {0, 5, 1}, {0, 1, 7}, {0, 7, 10}, {0, 10, 11},
		{1, 5, 9}, {5, 11, 4}, {11, 10, 2}, {10, 7, 6}, {7, 1, 8},
		{3, 9, 4}, {3, 4, 2}, {3, 2, 6}, {3, 6, 8}, {3, 8, 9},
		{4, 9, 5}, {2, 4, 11}, {6, 2, 10}, {8, 6, 7}, {9, 8, 1},
	}
	return mustMesh(t, vertices, orientOutward(vertices, faces))
}

// threePlates is a bottom plate at z=0 facing up, a top plate at z=1 facing
// down, and a large occluder between them at z=0.5 facing down, offset so no
// centroid ray grazes a triangle edge.
func threePlates(t *testing.T) *Mesh {
	t.Helper()
	var vertices []Point3
	var faces [][3]int
	vertices, faces = appendPlate(vertices, faces, p3(0, 0, 0), 1, true)        // faces 0,1
	vertices, faces = appendPlate(vertices, faces, p3(0, 0, 1), 1, false)       // faces 2,3
	vertices, faces = appendPlate(vertices, faces, p3(0.1, 0, 0.5), 1.5, false) // faces 4,5
	return mustMesh(t, vertices, faces)
}

// craterMesh is a bottom plate with a small occluder hovering over its
// center. From either bottom centroid the occluder's nearest point is one of
// its corner vertices, so the per-face maximum vertex elevation equals the
// true horizon and the illumination fast path is exact.
func craterMesh(t *testing.T) *Mesh {
	t.Helper()
	var vertices []Point3
	var faces [][3]int
	vertices, faces = appendPlate(vertices, faces, p3(0, 0, 0), 1, true)       // faces 0,1
	vertices, faces = appendPlate(vertices, faces, p3(0, 0, 0.6), 0.25, false) // faces 2,3
	return mustMesh(t, vertices, faces)
}
