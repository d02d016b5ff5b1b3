package asterovis

// Real is the scalar type used by all geometry code.
type Real = float64

const (
	// DefaultElevationMargin is the angular safety margin (radians) added to a
	// face's maximum occluder elevation before the illumination fast path is
	// allowed to skip ray casting. Tuning constant: only performance depends
	// on its value, never correctness.
	DefaultElevationMargin = 0.01

	bvhMaxLeafSize = 4

	// hot-loop epsilons shared by the intersection code
	epsParallel = 1e-12 // |det| below this: ray parallel to the triangle plane
	epsHit      = 1e-12 // minimum accepted hit distance along a ray
	epsLen2     = 1e-24 // minimum squared length for a usable direction
)
