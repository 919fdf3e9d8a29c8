package gallery

import (
	"math"
	"time"

	"github.com/seqsense/pcgol/mat"
)

const (
	phiEpsilon = 1e-6
	zoomBase   = 0.95
)

// Orbit is a Y-up camera orbiting a target point.
type Orbit struct {
	Target mat.Vec3

	AutoRotate      bool
	AutoRotateSpeed float64
	Damping         float64

	theta, phi, radius float64
	dTheta, dPhi       float64
	scale              float64

	minDistance, maxDistance float64

	dragging bool
	x0, y0   float64

	wheel *wheelNormalizer
}

// NewOrbit places the camera at target + (d, d, d) and limits the distance
// to [0.5d, 10d].
func NewOrbit(target mat.Vec3, d float32, c Config, now func() time.Time) *Orbit {
	if d <= 0 {
		d = 1
	}
	dd := float64(d)
	r := dd * math.Sqrt(3)
	return &Orbit{
		Target:          target,
		AutoRotate:      c.AutoRotate,
		AutoRotateSpeed: c.AutoRotateSpeed,
		Damping:         c.Damping,
		theta:           math.Atan2(dd, dd),
		phi:             math.Acos(dd / r),
		radius:          r,
		scale:           1,
		minDistance:     dd * 0.5,
		maxDistance:     dd * 10,
		wheel:           newWheelNormalizer(now),
	}
}

func (o *Orbit) Distance() float64 {
	return o.radius
}

// Eye returns the camera position.
func (o *Orbit) Eye() mat.Vec3 {
	s := math.Sin(o.phi)
	return o.Target.Add(mat.Vec3{
		float32(o.radius * s * math.Sin(o.theta)),
		float32(o.radius * math.Cos(o.phi)),
		float32(o.radius * s * math.Cos(o.theta)),
	})
}

// Update advances the camera by one frame.
func (o *Orbit) Update() {
	if o.AutoRotate && !o.dragging {
		o.dTheta -= 2 * math.Pi / 60 / 60 * o.AutoRotateSpeed
	}

	if o.Damping > 0 {
		o.theta += o.dTheta * o.Damping
		o.phi += o.dPhi * o.Damping
	} else {
		o.theta += o.dTheta
		o.phi += o.dPhi
	}
	o.theta = math.Remainder(o.theta, 2*math.Pi)
	if o.phi < phiEpsilon {
		o.phi = phiEpsilon
	} else if o.phi > math.Pi-phiEpsilon {
		o.phi = math.Pi - phiEpsilon
	}

	o.radius *= o.scale
	if o.radius < o.minDistance {
		o.radius = o.minDistance
	} else if o.radius > o.maxDistance {
		o.radius = o.maxDistance
	}
	o.scale = 1

	if o.Damping > 0 {
		o.dTheta *= 1 - o.Damping
		o.dPhi *= 1 - o.Damping
	} else {
		o.dTheta, o.dPhi = 0, 0
	}
}

// View returns the world to camera transform.
func (o *Orbit) View() mat.Mat4 {
	return lookAt(o.Eye(), o.Target, mat.Vec3{0, 1, 0})
}

func (o *Orbit) DragStart(x, y float64) {
	o.dragging = true
	o.x0, o.y0 = x, y
}

// Drag rotates by a full turn per surface height of pointer motion.
func (o *Orbit) Drag(x, y float64, height int) {
	if !o.dragging || height <= 0 {
		return
	}
	h := float64(height)
	o.dTheta -= 2 * math.Pi * (x - o.x0) / h
	o.dPhi -= 2 * math.Pi * (y - o.y0) / h
	o.x0, o.y0 = x, y
}

func (o *Orbit) DragEnd() {
	o.dragging = false
}

func (o *Orbit) Wheel(deltaY float64) {
	n, ok := o.wheel.Normalize(deltaY)
	if !ok {
		if n > 0 {
			n = 1
		} else if n < 0 {
			n = -1
		}
	}
	o.scale *= math.Pow(zoomBase, -n)
}

func lookAt(eye, target, up mat.Vec3) mat.Mat4 {
	f := target.Sub(eye).Normalized()
	s := f.Cross(up).Normalized()
	u := s.Cross(f)
	return mat.Mat4{
		s[0], u[0], -f[0], 0,
		s[1], u[1], -f[1], 0,
		s[2], u[2], -f[2], 0,
		-s.Dot(eye), -u.Dot(eye), f.Dot(eye), 1,
	}
}
