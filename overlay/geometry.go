package overlay

import (
	"math"

	"github.com/seqsense/pcgol/mat"
)

// Geometry is an indexed triangle mesh.
type Geometry struct {
	Positions []float32
	Indices   []uint32
}

func (g *Geometry) VertexCount() int {
	return len(g.Positions) / 3
}

// Triangles expands the index buffer into a flat triangle list.
func (g *Geometry) Triangles() []float32 {
	out := make([]float32, 0, 3*len(g.Indices))
	for _, i := range g.Indices {
		out = append(out, g.Positions[3*i], g.Positions[3*i+1], g.Positions[3*i+2])
	}
	return out
}

func (g *Geometry) vertex(v mat.Vec3) {
	g.Positions = append(g.Positions, v[0], v[1], v[2])
}

// NewTube sweeps a circle of the given radius along the curve.
func NewTube(c *Curve, tubular, radial int, radius float32) *Geometry {
	_, normals, binormals := c.frames(tubular)
	g := &Geometry{
		Positions: make([]float32, 0, 3*(tubular+1)*(radial+1)),
		Indices:   make([]uint32, 0, 6*tubular*radial),
	}
	for i := 0; i <= tubular; i++ {
		p := c.PointAt(float32(i) / float32(tubular))
		n, b := normals[i], binormals[i]
		for j := 0; j <= radial; j++ {
			v := float64(j) / float64(radial) * math.Pi * 2
			s := float32(math.Sin(v))
			co := -float32(math.Cos(v))
			dir := n.Mul(co).Add(b.Mul(s))
			g.vertex(p.Add(dir.Mul(radius)))
		}
	}

	w := uint32(radial + 1)
	for j := uint32(1); j <= uint32(tubular); j++ {
		for i := uint32(1); i <= uint32(radial); i++ {
			a := w*(j-1) + (i - 1)
			b := w*j + (i - 1)
			c := w*j + i
			d := w*(j-1) + i
			g.Indices = append(g.Indices, a, b, d, b, c, d)
		}
	}
	return g
}

// NewDisc returns a filled circle on the XY plane facing +Z.
func NewDisc(radius float32, segments int) *Geometry {
	g := &Geometry{
		Positions: make([]float32, 0, 3*(segments+2)),
		Indices:   make([]uint32, 0, 3*segments),
	}
	g.vertex(mat.Vec3{})
	for s := 0; s <= segments; s++ {
		a := float64(s) / float64(segments) * math.Pi * 2
		g.vertex(mat.Vec3{
			radius * float32(math.Cos(a)),
			radius * float32(math.Sin(a)),
			0,
		})
	}
	for i := uint32(1); i <= uint32(segments); i++ {
		g.Indices = append(g.Indices, i, i+1, 0)
	}
	return g
}

// facing returns a transform placing the XY plane at p with +Z along dir.
func facing(p, dir mat.Vec3) mat.Mat4 {
	z := dir.Normalized()
	x := mat.Vec3{0, 1, 0}.Cross(z)
	if x.NormSq() < 1e-12 {
		x = mat.Vec3{0, 0, 1}.Cross(z)
	}
	x = x.Normalized()
	y := z.Cross(x)
	return mat.Mat4{
		x[0], x[1], x[2], 0,
		y[0], y[1], y[2], 0,
		z[0], z[1], z[2], 0,
		p[0], p[1], p[2], 1,
	}
}
