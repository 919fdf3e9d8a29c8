package overlay

import (
	"github.com/seqsense/pcgol/mat"
)

const (
	DefaultRadius          = 0.01
	DefaultTubularSegments = 100
	DefaultRadialSegments  = 8
	DefaultCapSegments     = 8
)

type MeshType int

const (
	MeshTube MeshType = iota
	MeshStartCap
	MeshEndCap
)

type Mesh struct {
	Kind      Kind
	Type      MeshType
	Class     int
	Color     mat.Vec3
	Geometry  *Geometry
	Transform mat.Mat4
}

type Builder struct {
	Palette         Palette
	Radius          float32
	TubularSegments int
	RadialSegments  int
	CapSegments     int

	// Disc provides the end cap geometry. Caps of every mesh share it.
	Disc func(radius float32, segments int) *Geometry
}

func NewBuilder(p Palette, radius float32) *Builder {
	return &Builder{
		Palette:         p,
		Radius:          radius,
		TubularSegments: DefaultTubularSegments,
		RadialSegments:  DefaultRadialSegments,
		CapSegments:     DefaultCapSegments,
	}
}

// Build returns meshes of the visible items, ground truth first.
// Items with less than two points are skipped.
func (b *Builder) Build(d *Data, v Visibility) []*Mesh {
	var meshes []*Mesh
	for _, k := range []Kind{GroundTruth, Prediction} {
		if !v.Shows(k) {
			continue
		}
		for _, it := range d.Items(k) {
			meshes = append(meshes, b.item(k, it)...)
		}
	}
	return meshes
}

func (b *Builder) item(k Kind, it Item) []*Mesh {
	n := len(it.Points)
	if n < 2 {
		return nil
	}
	color := b.Palette.Color(it.Class)
	c := NewCurve(it.Points)

	disc := b.Disc
	if disc == nil {
		disc = NewDisc
	}
	capGeom := disc(b.Radius, b.CapSegments)

	startDir := it.Points[0].Sub(it.Points[1])
	if startDir.NormSq() == 0 {
		startDir = c.TangentAt(0).Mul(-1)
	}
	endDir := it.Points[n-1].Sub(it.Points[n-2])
	if endDir.NormSq() == 0 {
		endDir = c.TangentAt(1)
	}

	meshes := []*Mesh{{
		Kind:      k,
		Type:      MeshTube,
		Class:     it.Class,
		Color:     color,
		Geometry:  NewTube(c, b.TubularSegments, b.RadialSegments, b.Radius),
		Transform: mat.Translate(0, 0, 0),
	}}
	for _, e := range []struct {
		typ MeshType
		p   mat.Vec3
		dir mat.Vec3
	}{
		{MeshStartCap, it.Points[0], startDir},
		{MeshEndCap, it.Points[n-1], endDir},
	} {
		if e.dir.NormSq() == 0 {
			// All points coincide.
			continue
		}
		meshes = append(meshes, &Mesh{
			Kind:      k,
			Type:      e.typ,
			Class:     it.Class,
			Color:     color,
			Geometry:  capGeom,
			Transform: facing(e.p, e.dir),
		})
	}
	return meshes
}
