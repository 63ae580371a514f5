package core

import (
	"fmt"

	"github.com/chewxy/math32"
)

// Vec3 represents a 3D vector. It is used for points, directions and colors.
type Vec3 struct {
	X, Y, Z float32
}

// NewVec3 creates a new Vec3
func NewVec3(x, y, z float32) Vec3 {
	return Vec3{X: x, Y: y, Z: z}
}

// Add returns the sum of two vectors
func (v Vec3) Add(other Vec3) Vec3 {
	return Vec3{v.X + other.X, v.Y + other.Y, v.Z + other.Z}
}

// Subtract returns the difference of two vectors
func (v Vec3) Subtract(other Vec3) Vec3 {
	return Vec3{v.X - other.X, v.Y - other.Y, v.Z - other.Z}
}

// Multiply returns the vector scaled by a scalar
func (v Vec3) Multiply(scalar float32) Vec3 {
	return Vec3{v.X * scalar, v.Y * scalar, v.Z * scalar}
}

// Dot returns the dot product of two vectors
func (v Vec3) Dot(other Vec3) float32 {
	return v.X*other.X + v.Y*other.Y + v.Z*other.Z
}

// Length returns the magnitude of the vector
func (v Vec3) Length() float32 {
	return math32.Sqrt(v.Dot(v))
}

// Normalize returns a unit vector in the same direction.
// The vector is scaled by the reciprocal of its length, so a zero vector
// comes back with NaN or Inf components. Use NormalizeChecked at input
// boundaries.
func (v Vec3) Normalize() Vec3 {
	return v.Multiply(1 / v.Length())
}

// NormalizeChecked is Normalize for untrusted input: it rejects vectors whose
// length is zero or not finite.
func (v Vec3) NormalizeChecked() (Vec3, error) {
	length := v.Length()
	if length == 0 || math32.IsNaN(length) || math32.IsInf(length, 0) {
		return Vec3{}, fmt.Errorf("%w: cannot normalize %v (length %v)", ErrGeometry, v, length)
	}
	return v.Multiply(1 / length), nil
}

// Negate returns the negative of the vector
func (v Vec3) Negate() Vec3 {
	return Vec3{-v.X, -v.Y, -v.Z}
}

// Clamp returns a vector with components clamped to [min, max]
func (v Vec3) Clamp(minVal, maxVal float32) Vec3 {
	return Vec3{
		X: max(minVal, min(maxVal, v.X)),
		Y: max(minVal, min(maxVal, v.Y)),
		Z: max(minVal, min(maxVal, v.Z)),
	}
}

// IsFinite reports whether no component is NaN or infinite
func (v Vec3) IsFinite() bool {
	for _, c := range [3]float32{v.X, v.Y, v.Z} {
		if math32.IsNaN(c) || math32.IsInf(c, 0) {
			return false
		}
	}
	return true
}

// Reflect mirrors the incoming direction i about the unit normal n.
func Reflect(i, n Vec3) Vec3 {
	return i.Subtract(n.Multiply(2).Multiply(i.Dot(n)))
}

// Ray represents a ray with an origin and direction.
// Direction is expected to be unit length; the type does not enforce it.
type Ray struct {
	Origin    Vec3
	Direction Vec3
}

// NewRay creates a new ray
func NewRay(origin, direction Vec3) Ray {
	return Ray{Origin: origin, Direction: direction}
}

// At returns the point at parameter t along the ray
func (r Ray) At(t float32) Vec3 {
	return r.Origin.Add(r.Direction.Multiply(t))
}
