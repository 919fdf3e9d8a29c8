// Package cloud holds point cloud assets shown in the gallery and the
// decoders producing them.
package cloud

import (
	"encoding/binary"
	"errors"
	"math"

	"github.com/seqsense/pcgol/mat"
	"github.com/seqsense/pcgol/pc"
)

var (
	ErrPositionLength = errors.New("position buffer length must be a multiple of 3")
	ErrColorLength    = errors.New("color buffer length must equal position buffer length")
)

type Box struct {
	Min, Max mat.Vec3
}

func (b Box) Size() mat.Vec3 {
	return b.Max.Sub(b.Min)
}

// Center is the centroid of the box. Assets are never translated by it.
func (b Box) Center() mat.Vec3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

func (b Box) MaxDimension() float32 {
	s := b.Size()
	return float32Max(s[0], float32Max(s[1], s[2]))
}

// Asset is an immutable point cloud geometry. Positions and Colors are flat
// xyz and rgb triples in file order.
type Asset struct {
	Name      string
	Positions []float32
	Colors    []float32
	Box       Box
}

func NewAsset(name string, positions, colors []float32) (*Asset, error) {
	if len(positions)%3 != 0 {
		return nil, ErrPositionLength
	}
	if len(colors) != len(positions) {
		return nil, ErrColorLength
	}
	a := &Asset{
		Name:      name,
		Positions: positions,
		Colors:    colors,
	}
	if len(positions) == 0 {
		return a, nil
	}
	min, max, err := minMax(positions)
	if err != nil {
		return nil, err
	}
	a.Box = Box{Min: min, Max: max}
	return a, nil
}

func (a *Asset) Len() int {
	return len(a.Positions) / 3
}

func (a *Asset) Position(i int) mat.Vec3 {
	return mat.Vec3{a.Positions[3*i], a.Positions[3*i+1], a.Positions[3*i+2]}
}

func (a *Asset) Color(i int) mat.Vec3 {
	return mat.Vec3{a.Colors[3*i], a.Colors[3*i+1], a.Colors[3*i+2]}
}

func minMax(positions []float32) (mat.Vec3, mat.Vec3, error) {
	n := len(positions) / 3
	pp := &pc.PointCloud{
		PointCloudHeader: pc.PointCloudHeader{
			Version: 0.7,
			Fields:  []string{"x", "y", "z"},
			Size:    []int{4, 4, 4},
			Type:    []string{"F", "F", "F"},
			Count:   []int{1, 1, 1},
			Width:   n,
			Height:  1,
		},
		Points: n,
		Data:   make([]byte, 4*len(positions)),
	}
	for i, f := range positions {
		binary.LittleEndian.PutUint32(pp.Data[4*i:], math.Float32bits(f))
	}
	it, err := pp.Vec3Iterator()
	if err != nil {
		return mat.Vec3{}, mat.Vec3{}, err
	}
	return pc.MinMaxVec3(it)
}

func float32Max(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}
