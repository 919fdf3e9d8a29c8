package overlay

import (
	"math"

	"github.com/seqsense/pcgol/mat"
)

const (
	arcLengthDivisions = 200
	tangentDelta       = 1e-4
)

// Curve is an open centripetal Catmull-Rom spline.
type Curve struct {
	Points []mat.Vec3

	lengths []float32
}

func NewCurve(points []mat.Vec3) *Curve {
	return &Curve{Points: points}
}

// Point returns the position at parameter t in [0, 1].
func (c *Curve) Point(t float32) mat.Vec3 {
	pts := c.Points
	l := len(pts)
	switch l {
	case 0:
		return mat.Vec3{}
	case 1:
		return pts[0]
	}

	p := float32(l-1) * t
	i := int(math.Floor(float64(p)))
	w := p - float32(i)
	if i >= l-1 {
		i, w = l-2, 1
	}
	if i < 0 {
		i, w = 0, 0
	}

	var p0, p3 mat.Vec3
	if i > 0 {
		p0 = pts[i-1]
	} else {
		p0 = pts[0].Mul(2).Sub(pts[1])
	}
	p1, p2 := pts[i], pts[i+1]
	if i+2 < l {
		p3 = pts[i+2]
	} else {
		p3 = pts[l-1].Mul(2).Sub(pts[l-2])
	}

	dt0 := float32(math.Pow(float64(p1.Sub(p0).NormSq()), 0.25))
	dt1 := float32(math.Pow(float64(p2.Sub(p1).NormSq()), 0.25))
	dt2 := float32(math.Pow(float64(p3.Sub(p2).NormSq()), 0.25))
	if dt1 < 1e-4 {
		dt1 = 1
	}
	if dt0 < 1e-4 {
		dt0 = dt1
	}
	if dt2 < 1e-4 {
		dt2 = dt1
	}

	var out mat.Vec3
	for k := 0; k < 3; k++ {
		out[k] = cubic(p0[k], p1[k], p2[k], p3[k], dt0, dt1, dt2, w)
	}
	return out
}

func cubic(x0, x1, x2, x3, dt0, dt1, dt2, t float32) float32 {
	t1 := (x1-x0)/dt0 - (x2-x0)/(dt0+dt1) + (x2-x1)/dt1
	t2 := (x2-x1)/dt1 - (x3-x1)/(dt1+dt2) + (x3-x2)/dt2
	t1 *= dt1
	t2 *= dt1

	c0 := x1
	c1 := t1
	c2 := -3*x1 + 3*x2 - 2*t1 - t2
	c3 := 2*x1 - 2*x2 + t1 + t2
	return c0 + t*(c1+t*(c2+t*c3))
}

// Length returns the approximated arc length.
func (c *Curve) Length() float32 {
	l := c.arcLengths()
	return l[len(l)-1]
}

func (c *Curve) arcLengths() []float32 {
	if c.lengths != nil {
		return c.lengths
	}
	c.lengths = make([]float32, arcLengthDivisions+1)
	last := c.Point(0)
	var sum float32
	for i := 1; i <= arcLengthDivisions; i++ {
		p := c.Point(float32(i) / arcLengthDivisions)
		sum += p.Sub(last).Norm()
		c.lengths[i] = sum
		last = p
	}
	return c.lengths
}

// param maps arc length fraction u to curve parameter t.
func (c *Curve) param(u float32) float32 {
	l := c.arcLengths()
	n := len(l) - 1
	if l[n] == 0 {
		return u
	}
	target := u * l[n]

	low, high := 0, n
	for low <= high {
		i := low + (high-low)/2
		d := l[i] - target
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
	if l[i] == target || i >= n {
		return float32(i) / float32(n)
	}
	frac := (target - l[i]) / (l[i+1] - l[i])
	return (float32(i) + frac) / float32(n)
}

// PointAt returns the position at arc length fraction u in [0, 1].
func (c *Curve) PointAt(u float32) mat.Vec3 {
	return c.Point(c.param(u))
}

// TangentAt returns the unit tangent at arc length fraction u.
func (c *Curve) TangentAt(u float32) mat.Vec3 {
	t := c.param(u)
	t1, t2 := t-tangentDelta, t+tangentDelta
	if t1 < 0 {
		t1 = 0
	}
	if t2 > 1 {
		t2 = 1
	}
	d := c.Point(t2).Sub(c.Point(t1))
	if d.NormSq() == 0 {
		return mat.Vec3{}
	}
	return d.Normalized()
}

// frames computes parallel transported tangent, normal and binormal vectors
// at segments+1 evenly spaced arc length positions.
func (c *Curve) frames(segments int) (tangents, normals, binormals []mat.Vec3) {
	tangents = make([]mat.Vec3, segments+1)
	normals = make([]mat.Vec3, segments+1)
	binormals = make([]mat.Vec3, segments+1)
	for i := range tangents {
		tangents[i] = c.TangentAt(float32(i) / float32(segments))
	}

	t0 := tangents[0]
	var n mat.Vec3
	min := float32(math.MaxFloat32)
	if a := abs32(t0[0]); a <= min {
		min, n = a, mat.Vec3{1, 0, 0}
	}
	if a := abs32(t0[1]); a <= min {
		min, n = a, mat.Vec3{0, 1, 0}
	}
	if a := abs32(t0[2]); a <= min {
		n = mat.Vec3{0, 0, 1}
	}
	v := t0.Cross(n)
	if v.NormSq() > 0 {
		v = v.Normalized()
	}
	normals[0] = t0.Cross(v)
	binormals[0] = t0.Cross(normals[0])

	for i := 1; i <= segments; i++ {
		normals[i] = normals[i-1]
		binormals[i] = binormals[i-1]
		axis := tangents[i-1].Cross(tangents[i])
		if axis.Norm() > 1e-12 {
			axis = axis.Normalized()
			dot := tangents[i-1].Dot(tangents[i])
			if dot > 1 {
				dot = 1
			} else if dot < -1 {
				dot = -1
			}
			theta := float32(math.Acos(float64(dot)))
			normals[i] = rotate(normals[i], axis, theta)
		}
		binormals[i] = tangents[i].Cross(normals[i])
	}
	return tangents, normals, binormals
}

// rotate turns v around the unit axis k by theta radians.
func rotate(v, k mat.Vec3, theta float32) mat.Vec3 {
	s := float32(math.Sin(float64(theta)))
	c := float32(math.Cos(float64(theta)))
	return v.Mul(c).
		Add(k.Cross(v).Mul(s)).
		Add(k.Mul(k.Dot(v) * (1 - c)))
}

func abs32(f float32) float32 {
	if f < 0 {
		return -f
	}
	return f
}
