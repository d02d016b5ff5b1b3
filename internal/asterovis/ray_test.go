package asterovis

import (
	"math"
	"testing"
)

func TestIntersectRayTriangle_HitAtAnalyticDistance(t *testing.T) {
	v0, v1, v2 := p3(0, 0, 0), p3(1, 0, 0), p3(0, 1, 0)
	ray := NewRay(p3(0.2, 0.2, 5), v3(0, 0, -1))

	h := IntersectRayTriangle(ray, v0, v1, v2)
	if !h.Hit {
		t.Fatalf("expected hit")
	}
	if !almostEq(h.Dist, 5) {
		t.Fatalf("distance: want 5, got %.15g", h.Dist)
	}
	if !almostEq(h.Point.X, 0.2) || !almostEq(h.Point.Y, 0.2) || !almostEq(h.Point.Z, 0) {
		t.Fatalf("hit point wrong: %+v", h.Point)
	}
}

func TestIntersectRayTriangle_ObliqueDistance(t *testing.T) {
	// 45° approach: distance is sqrt(2) times the perpendicular height.
	v0, v1, v2 := p3(-2, -2, 0), p3(2, -2, 0), p3(0, 2, 0)
	ray := NewRay(p3(-1, 0, 1), v3(1, 0, -1))

	h := IntersectRayTriangle(ray, v0, v1, v2)
	if !h.Hit {
		t.Fatalf("expected hit")
	}
	if !nearly(h.Dist, math.Sqrt2, 1e-12) {
		t.Fatalf("distance: want sqrt(2), got %.15g", h.Dist)
	}
}

func TestIntersectRayTriangle_NoBackfaceCulling(t *testing.T) {
	v0, v1, v2 := p3(0, 0, 0), p3(1, 0, 0), p3(0, 1, 0)

	front := IntersectRayTriangle(NewRay(p3(0.2, 0.2, 5), v3(0, 0, -1)), v0, v1, v2)
	back := IntersectRayTriangle(NewRay(p3(0.2, 0.2, -5), v3(0, 0, 1)), v0, v1, v2)
	if !front.Hit || !back.Hit {
		t.Fatalf("both approach sides must hit: front=%v back=%v", front.Hit, back.Hit)
	}

	away := IntersectRayTriangle(NewRay(p3(0.2, 0.2, 5), v3(0, 0, 1)), v0, v1, v2)
	if away.Hit {
		t.Fatalf("ray pointing away must miss")
	}
}

func TestIntersectRayTriangle_ParallelMiss(t *testing.T) {
	v0, v1, v2 := p3(0, 0, 0), p3(1, 0, 0), p3(0, 1, 0)
	h := IntersectRayTriangle(NewRay(p3(0, 0, 1), v3(1, 0, 0)), v0, v1, v2)
	if h.Hit {
		t.Fatalf("parallel ray must miss")
	}
}

func TestIntersectRayTriangle_OutsideBarycentricMiss(t *testing.T) {
	v0, v1, v2 := p3(0, 0, 0), p3(1, 0, 0), p3(0, 1, 0)
	for _, origin := range []Point3{
		p3(-0.2, 0.2, 5), // u < 0
		p3(0.2, -0.2, 5), // v < 0
		p3(0.8, 0.8, 5),  // u+v > 1
	} {
		if h := IntersectRayTriangle(NewRay(origin, v3(0, 0, -1)), v0, v1, v2); h.Hit {
			t.Fatalf("origin %+v should miss", origin)
		}
	}
}

func TestIntersectRayTriangle_ZeroDirectionMiss(t *testing.T) {
	v0, v1, v2 := p3(0, 0, 0), p3(1, 0, 0), p3(0, 1, 0)
	h := IntersectRayTriangle(NewRay(p3(0.2, 0.2, 5), v3(0, 0, 0)), v0, v1, v2)
	if h.Hit {
		t.Fatalf("zero-direction ray must resolve to the miss sentinel")
	}
}

func TestNewRay_NormalizesDirection(t *testing.T) {
	ray := NewRay(p3(0, 0, 0), v3(3, 0, 4))
	if !almostEq(ray.Dir.Len(), 1) {
		t.Fatalf("direction not unit: %+v", ray.Dir)
	}
	if !almostEq(ray.Dir.X, 0.6) || !almostEq(ray.Dir.Z, 0.8) {
		t.Fatalf("direction wrong: %+v", ray.Dir)
	}
}
