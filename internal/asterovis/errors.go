package asterovis

import "errors"

// Precondition violations are caller defects, never retried.
var (
	ErrIndexNotBuilt  = errors.New("spatial index not built")
	ErrGraphNotBuilt  = errors.New("visibility graph not built")
	ErrSizeMismatch   = errors.New("batch size mismatch")
	ErrFaceOutOfRange = errors.New("face index out of range")
)
