package core

import "errors"

// ErrGeometry is wrapped by every error caused by degenerate geometric input:
// zero-length directions, non-positive radii, out-of-range material values.
var ErrGeometry = errors.New("invalid geometry")
