package cloud

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/seqsense/pcgol/mat"
)

type Shape int

const (
	ShapeSphere Shape = iota
	ShapeCube
	ShapeSpiral
	ShapeTorus
	ShapeHelix
	ShapeCone
	ShapeWave
	ShapeClusters
)

var shapeNames = map[Shape]string{
	ShapeSphere:   "sphere",
	ShapeCube:     "cube",
	ShapeSpiral:   "spiral",
	ShapeTorus:    "torus",
	ShapeHelix:    "helix",
	ShapeCone:     "cone",
	ShapeWave:     "wave",
	ShapeClusters: "clusters",
}

func (s Shape) String() string {
	if n, ok := shapeNames[s]; ok {
		return n
	}
	return fmt.Sprintf("shape(%d)", int(s))
}

// generator returns i-th of n points. Random shapes draw from rnd.
type generator func(rnd *rand.Rand, i, n int) mat.Vec3

var generators = map[Shape]generator{
	ShapeSphere: func(rnd *rand.Rand, _, _ int) mat.Vec3 {
		phi := rnd.Float64() * math.Pi * 2
		theta := math.Acos(rnd.Float64()*2 - 1)
		r := 2 * math.Cbrt(rnd.Float64())
		return vec3(
			r*math.Sin(theta)*math.Cos(phi),
			r*math.Sin(theta)*math.Sin(phi),
			r*math.Cos(theta),
		)
	},
	ShapeCube: func(rnd *rand.Rand, _, _ int) mat.Vec3 {
		return vec3(
			(rnd.Float64()-0.5)*4,
			(rnd.Float64()-0.5)*4,
			(rnd.Float64()-0.5)*4,
		)
	},
	ShapeSpiral: func(_ *rand.Rand, i, n int) mat.Vec3 {
		t := float64(i) / float64(n) * math.Pi * 4
		r := t * 0.3
		return vec3(r*math.Cos(t), t*0.5-3, r*math.Sin(t))
	},
	ShapeTorus: func(rnd *rand.Rand, _, _ int) mat.Vec3 {
		const R, r = 2, 0.8
		u := rnd.Float64() * math.Pi * 2
		v := rnd.Float64() * math.Pi * 2
		return vec3(
			(R+r*math.Cos(v))*math.Cos(u),
			(R+r*math.Cos(v))*math.Sin(u),
			r*math.Sin(v),
		)
	},
	ShapeHelix: func(_ *rand.Rand, i, n int) mat.Vec3 {
		t := float64(i) / float64(n) * math.Pi * 6
		return vec3(2*math.Cos(t), t*0.3-3, 2*math.Sin(t))
	},
	ShapeCone: func(rnd *rand.Rand, _, _ int) mat.Vec3 {
		h := rnd.Float64() * 4
		r := (4 - h) * 0.5
		a := rnd.Float64() * math.Pi * 2
		return vec3(r*math.Cos(a), h-2, r*math.Sin(a))
	},
	ShapeWave: func(rnd *rand.Rand, _, _ int) mat.Vec3 {
		x := (rnd.Float64() - 0.5) * 6
		z := (rnd.Float64() - 0.5) * 6
		return vec3(x, math.Sin(x)*math.Cos(z), z)
	},
	ShapeClusters: func(rnd *rand.Rand, _, _ int) mat.Vec3 {
		offsets := [3][3]float64{{0, 0, 0}, {3, 0, 0}, {-1.5, 2.6, 0}}
		o := offsets[rnd.Intn(3)]
		return vec3(
			(rnd.Float64()-0.5)*1.5+o[0],
			(rnd.Float64()-0.5)*1.5+o[1],
			(rnd.Float64()-0.5)*1.5+o[2],
		)
	},
}

type SyntheticConfig struct {
	Shape Shape
	Count int
}

// DefaultSynthetic is the fallback gallery shown when no file is available.
var DefaultSynthetic = []SyntheticConfig{
	{Shape: ShapeSphere, Count: 500},
	{Shape: ShapeCube, Count: 400},
	{Shape: ShapeSpiral, Count: 700},
	{Shape: ShapeTorus, Count: 800},
	{Shape: ShapeHelix, Count: 900},
	{Shape: ShapeCone, Count: 550},
	{Shape: ShapeWave, Count: 800},
	{Shape: ShapeClusters, Count: 600},
}

// Generate builds a procedural asset. The same seed always gives the same
// points.
func Generate(shape Shape, count int, seed int64) (*Asset, error) {
	gen, ok := generators[shape]
	if !ok {
		return nil, fmt.Errorf("unknown shape %v", shape)
	}
	rnd := rand.New(rand.NewSource(seed))
	positions := make([]float32, 0, 3*count)
	colors := make([]float32, 0, 3*count)
	for i := 0; i < count; i++ {
		p := gen(rnd, i, count)
		positions = append(positions, p[0], p[1], p[2])

		hue := math.Mod(float64(p[0]+p[1]+p[2]+10)/20, 1)
		if hue < 0 {
			hue++
		}
		c := colorful.Hsl(hue*360, 0.8, 0.6)
		colors = append(colors, float32(c.R), float32(c.G), float32(c.B))
	}
	return NewAsset(shape.String(), positions, colors)
}

// Synthetic generates DefaultSynthetic. Each shape uses its own random
// stream derived from seed.
func Synthetic(seed int64) ([]*Asset, error) {
	assets := make([]*Asset, 0, len(DefaultSynthetic))
	for _, c := range DefaultSynthetic {
		a, err := Generate(c.Shape, c.Count, seed+int64(c.Shape))
		if err != nil {
			return nil, err
		}
		assets = append(assets, a)
	}
	return assets, nil
}

func vec3(x, y, z float64) mat.Vec3 {
	return mat.Vec3{float32(x), float32(y), float32(z)}
}
