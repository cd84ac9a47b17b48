package math

import "github.com/go-gl/mathgl/mgl32"

// arcDivisions is the number of chord samples used to build the arc-length table.
const arcDivisions = 200

// Curve is a parametric 3D curve sampled by normalized arc length.
type Curve interface {
	PointAt(u float32) Vec3
}

// CubicBezier is a cubic Bézier curve with a precomputed arc-length table,
// so PointAt moves at constant speed along the curve.
type CubicBezier struct {
	P0, P1, P2, P3 Vec3

	lengths []float32 // cumulative chord lengths, arcDivisions+1 entries
}

// NewCubicBezier creates a curve from its four control points.
func NewCubicBezier(p0, p1, p2, p3 Vec3) *CubicBezier {
	b := &CubicBezier{P0: p0, P1: p1, P2: p2, P3: p3}
	b.lengths = b.arcLengths(arcDivisions)
	return b
}

// CubicBezierFromArray creates a curve from control points in config layout.
func CubicBezierFromArray(pts [4][3]float32) *CubicBezier {
	return NewCubicBezier(V3(pts[0]), V3(pts[1]), V3(pts[2]), V3(pts[3]))
}

// Point evaluates the curve at the raw Bézier parameter t in [0, 1].
func (b *CubicBezier) Point(t float32) Vec3 {
	return fromMgl(mgl32.CubicBezierCurve3D(t, b.P0.mgl(), b.P1.mgl(), b.P2.mgl(), b.P3.mgl()))
}

// PointAt evaluates the curve at normalized arc length u in [0, 1].
func (b *CubicBezier) PointAt(u float32) Vec3 {
	return b.Point(b.uToT(u))
}

// Length returns the approximate arc length of the curve.
func (b *CubicBezier) Length() float32 {
	return b.lengths[len(b.lengths)-1]
}

func (b *CubicBezier) arcLengths(divisions int) []float32 {
	lengths := make([]float32, divisions+1)
	prev := b.Point(0)
	var sum float32
	for i := 1; i <= divisions; i++ {
		p := b.Point(float32(i) / float32(divisions))
		sum += p.Distance(prev)
		lengths[i] = sum
		prev = p
	}
	return lengths
}

// uToT maps normalized arc length to the Bézier parameter by binary search
// over the arc-length table and linear interpolation inside the segment.
func (b *CubicBezier) uToT(u float32) float32 {
	u = clamp(u, 0, 1)
	n := len(b.lengths)
	target := u * b.lengths[n-1]

	low, high := 0, n-1
	for low <= high {
		i := low + (high-low)/2
		d := b.lengths[i] - target
		if d < 0 {
			low = i + 1
		} else if d > 0 {
			high = i - 1
		} else {
			high = i
			break
		}
	}
	i := high
	if i < 0 {
		return 0
	}
	if b.lengths[i] == target || i >= n-1 {
		return float32(i) / float32(n-1)
	}

	before := b.lengths[i]
	segment := b.lengths[i+1] - before
	fraction := (target - before) / segment
	return (float32(i) + fraction) / float32(n-1)
}
