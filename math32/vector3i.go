package math32

import "fmt"

// Vector3i represents a 3D vector with integer components.
type Vector3i struct {
	X int32 `json:"x"`
	Y int32 `json:"y"`
	Z int32 `json:"z"`
}

func (v Vector3i) Add(other Vector3i) Vector3i {
	return Vector3i{v.X + other.X, v.Y + other.Y, v.Z + other.Z}
}

func (v Vector3i) Sub(other Vector3i) Vector3i {
	return Vector3i{v.X - other.X, v.Y - other.Y, v.Z - other.Z}
}

func (v Vector3i) Max(other Vector3i) Vector3i {
	return Vector3i{Max(v.X, other.X), Max(v.Y, other.Y), Max(v.Z, other.Z)}
}

func (v Vector3i) Min(other Vector3i) Vector3i {
	return Vector3i{Min(v.X, other.X), Min(v.Y, other.Y), Min(v.Z, other.Z)}
}

// Clamp limits each component to the inclusive range [lo, hi].
func (v Vector3i) Clamp(lo, hi Vector3i) Vector3i {
	return v.Max(lo).Min(hi)
}

// ToVector3 converts the vector to its float32 counterpart.
func (v Vector3i) ToVector3() Vector3 {
	return Vector3{float32(v.X), float32(v.Y), float32(v.Z)}
}

// Distance calculates the Euclidean distance between two integer vectors.
func (v Vector3i) Distance(other Vector3i) float32 {
	diff := v.Sub(other)
	return Sqrt(float32(diff.X*diff.X + diff.Y*diff.Y + diff.Z*diff.Z))
}

// String returns a string representation of the vector.
func (v Vector3i) String() string {
	return fmt.Sprintf("[%d,%d,%d]", v.X, v.Y, v.Z)
}
