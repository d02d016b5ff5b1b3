package asterovis

import (
	"fmt"
	"math"
)

// Mesh is an immutable triangulated shape model. Per-face centroid, outward
// unit normal and area are derived once at construction; the geometry itself
// never mutates afterwards, so a Mesh is safe for unsynchronized concurrent
// reads.
type Mesh struct {
	Vertices []Point3
	Faces    [][3]int

	Centroids []Point3
	Normals   []Vector3
	Areas     []Real

	maxRadius Real // bounding sphere about the body-frame origin
	minRadius Real // inscribed sphere about the body-frame origin
}

// NewMesh validates the face list and precomputes per-face attributes plus the
// bounding- and inscribed-sphere radii.
func NewMesh(vertices []Point3, faces [][3]int) (*Mesh, error) {
	if len(vertices) < 3 || len(faces) < 1 {
		return nil, fmt.Errorf("mesh needs at least 3 vertices and 1 face, got %d/%d", len(vertices), len(faces))
	}
	for fi, f := range faces {
		for _, vi := range f {
			if vi < 0 || vi >= len(vertices) {
				return nil, fmt.Errorf("face %d references vertex %d, mesh has %d vertices", fi, vi, len(vertices))
			}
		}
	}

	m := &Mesh{
		Vertices:  vertices,
		Faces:     faces,
		Centroids: make([]Point3, len(faces)),
		Normals:   make([]Vector3, len(faces)),
		Areas:     make([]Real, len(faces)),
	}

	minRadius := math.Inf(1)
	for i, f := range faces {
		v0, v1, v2 := vertices[f[0]], vertices[f[1]], vertices[f[2]]
		m.Centroids[i] = Point3{
			(v0.X + v1.X + v2.X) / 3,
			(v0.Y + v1.Y + v2.Y) / 3,
			(v0.Z + v1.Z + v2.Z) / 3,
		}
		cr := v1.Sub(v0).Cross(v2.Sub(v0))
		m.Normals[i] = cr.Norm()
		m.Areas[i] = 0.5 * cr.Len()

		// distance from the origin to the face plane
		if d := math.Abs(m.Normals[i].Dot(v0.Vec())); d < minRadius {
			minRadius = d
		}
	}

	maxRadius := 0.0
	for _, v := range vertices {
		if r := v.Vec().Len(); r > maxRadius {
			maxRadius = r
		}
	}
	m.maxRadius = maxRadius
	m.minRadius = minRadius
	return m, nil
}

// NFaces returns the number of triangular faces.
func (m *Mesh) NFaces() int { return len(m.Faces) }

// FaceVertices returns the three vertex positions of face i.
func (m *Mesh) FaceVertices(i int) (Point3, Point3, Point3) {
	f := m.Faces[i]
	return m.Vertices[f[0]], m.Vertices[f[1]], m.Vertices[f[2]]
}

// BoundingRadius is the radius of the smallest origin-centered sphere
// containing every vertex.
func (m *Mesh) BoundingRadius() Real { return m.maxRadius }

// InscribedRadius is the radius of the largest origin-centered sphere that
// stays inside every face plane.
func (m *Mesh) InscribedRadius() Real { return m.minRadius }
