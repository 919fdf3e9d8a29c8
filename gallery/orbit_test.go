package gallery

import (
	"math"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/seqsense/pcgol/mat"
)

func newTestOrbit(target mat.Vec3, d float32, autoRotate bool) *Orbit {
	c := DefaultConfig()
	c.AutoRotate = autoRotate
	clock := &fakeClock{t: time.Unix(1000, 0)}
	return NewOrbit(target, d, c, clock.Now)
}

func TestOrbit_Initial(t *testing.T) {
	target := mat.Vec3{1, 2, 3}
	o := newTestOrbit(target, 2, false)
	opt := approxVec3(1e-5)

	if diff := cmp.Diff(mat.Vec3{3, 4, 5}, o.Eye(), opt); diff != "" {
		t.Errorf("Eye mismatch (-want +got):\n%s", diff)
	}

	v := o.View()
	if diff := cmp.Diff(mat.Vec3{}, v.Transform(o.Eye()), opt); diff != "" {
		t.Errorf("Eye must be at the view origin (-want +got):\n%s", diff)
	}
	dist := float32(2 * math.Sqrt(3))
	if diff := cmp.Diff(mat.Vec3{0, 0, -dist}, v.Transform(target), opt); diff != "" {
		t.Errorf("Target must be in front of the camera (-want +got):\n%s", diff)
	}

	o.Update()
	if diff := cmp.Diff(mat.Vec3{3, 4, 5}, o.Eye(), opt); diff != "" {
		t.Errorf("Camera must stay without input (-want +got):\n%s", diff)
	}
}

func TestOrbit_AutoRotate(t *testing.T) {
	o := newTestOrbit(mat.Vec3{}, 1, true)
	e0 := o.Eye()
	for i := 0; i < 100; i++ {
		o.Update()
	}
	e1 := o.Eye()
	if e0.Equal(e1) {
		t.Error("Camera must rotate")
	}
	if math.Abs(float64(e1.Norm()-e0.Norm())) > 1e-4 {
		t.Errorf("Distance must be kept, %f -> %f", e0.Norm(), e1.Norm())
	}
	if math.Abs(float64(e1[1]-e0[1])) > 1e-4 {
		t.Errorf("Height must be kept, %f -> %f", e0[1], e1[1])
	}
}

func TestOrbit_Zoom(t *testing.T) {
	testCases := map[string]struct {
		delta    float64
		expected float64
	}{
		"In":  {delta: -100, expected: 0.5},
		"Out": {delta: 100, expected: 10},
	}
	for name, tt := range testCases {
		tt := tt
		t.Run(name, func(t *testing.T) {
			o := newTestOrbit(mat.Vec3{}, 1, false)
			for i := 0; i < 200; i++ {
				o.Wheel(tt.delta)
				o.Update()
			}
			if d := o.Distance(); math.Abs(d-tt.expected) > 1e-9 {
				t.Errorf("Expected distance %f, got: %f", tt.expected, d)
			}
		})
	}
}

func TestOrbit_Drag(t *testing.T) {
	o := newTestOrbit(mat.Vec3{}, 1, false)
	o.Damping = 0
	e0 := o.Eye()

	o.Drag(100, 0, 300)
	o.Update()
	if !o.Eye().Equal(e0) {
		t.Error("Drag without start must be ignored")
	}

	o.DragStart(0, 0)
	o.Drag(150, 0, 300)
	o.Update()
	e1 := o.Eye()
	opt := approxVec3(1e-5)
	if diff := cmp.Diff(mat.Vec3{-e0[0], e0[1], -e0[2]}, e1, opt); diff != "" {
		t.Errorf("Half height drag must turn half around (-want +got):\n%s", diff)
	}

	o.Drag(150, 3000, 300)
	o.Update()
	if e := o.Eye(); e[1] <= 0 || math.Abs(float64(e.Norm()-e0.Norm())) > 1e-4 {
		t.Errorf("Camera must stay on the upper pole limit, got: %v", e)
	}
	o.DragEnd()
}

func approxVec3(margin float64) cmp.Option {
	return cmp.Options{
		cmp.Transformer("vec3", func(v mat.Vec3) [3]float32 { return v }),
		cmpopts.EquateApprox(0, margin),
	}
}
