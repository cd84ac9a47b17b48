package math

import "github.com/chewxy/math32"

// Euler is an intrinsic X-then-Y-then-Z rotation in radians.
// Angles are never normalized; they accumulate as written.
type Euler struct {
	X, Y, Z float32
}

// Add returns the componentwise sum.
func (e Euler) Add(other Euler) Euler {
	return Euler{e.X + other.X, e.Y + other.Y, e.Z + other.Z}
}

// ToMat4 returns the rotation matrix Rx * Ry * Rz.
func (e Euler) ToMat4() Mat4 {
	a, b := math32.Cos(e.X), math32.Sin(e.X)
	c, d := math32.Cos(e.Y), math32.Sin(e.Y)
	ce, f := math32.Cos(e.Z), math32.Sin(e.Z)

	ae, af, be, bf := a*ce, a*f, b*ce, b*f

	return Mat4{
		c * ce, af + be*d, bf - ae*d, 0,
		-c * f, ae - bf*d, be + af*d, 0,
		d, -b * c, a * c, 0,
		0, 0, 0, 1,
	}
}

// EulerFromMat4 extracts XYZ angles from the upper 3x3 of a pure rotation matrix.
func EulerFromMat4(m Mat4) Euler {
	m11, m12, m13 := m[0], m[4], m[8]
	m22, m23 := m[5], m[9]
	m32, m33 := m[6], m[10]

	var e Euler
	e.Y = math32.Asin(clamp(m13, -1, 1))
	if math32.Abs(m13) < 0.9999999 {
		e.X = math32.Atan2(-m23, m33)
		e.Z = math32.Atan2(-m12, m11)
	} else {
		// gimbal lock: fold Z into X
		e.X = math32.Atan2(m32, m22)
		e.Z = 0
	}
	return e
}

// EulerFromQuat converts a quaternion to XYZ angles.
func EulerFromQuat(q Quat) Euler {
	return EulerFromMat4(q.ToMat4())
}

func clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
