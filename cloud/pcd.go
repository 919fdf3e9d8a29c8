package cloud

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"math"
	"path"
	"strings"

	pkgerrors "github.com/pkg/errors"
	"github.com/seqsense/pcgol/mat"
	"github.com/seqsense/pcgol/pc"
)

var ErrUnknownFormat = errors.New("unknown point cloud format")

// Decode parses b according to the extension of name (.xyz or .pcd).
func Decode(name string, b []byte) (*Asset, error) {
	switch strings.ToLower(path.Ext(name)) {
	case ".xyz":
		return ParseXYZ(name, bytes.NewReader(b))
	case ".pcd":
		pp, err := pc.Unmarshal(bytes.NewReader(b))
		if err != nil {
			return nil, pkgerrors.Wrapf(err, "parsing %s", name)
		}
		return FromPointCloud(name, pp)
	default:
		return nil, pkgerrors.Wrap(ErrUnknownFormat, name)
	}
}

// FromPointCloud converts a PCD point cloud. Packed "rgb" is used for
// colors when the field exists.
func FromPointCloud(name string, pp *pc.PointCloud) (*Asset, error) {
	if pp.Points == 0 {
		return NewAsset(name, nil, nil)
	}
	it, err := pp.Vec3Iterator()
	if err != nil {
		return nil, err
	}
	colorAt := func(p mat.Vec3) [3]float32 {
		return heightColor(p[1])
	}
	if hasField(pp, "rgb") {
		rgb, err := pp.Uint32Iterator("rgb")
		if err != nil {
			return nil, err
		}
		colorAt = func(mat.Vec3) [3]float32 {
			v := rgb.Uint32()
			rgb.Incr()
			return [3]float32{
				float32((v>>16)&0xFF) / 255,
				float32((v>>8)&0xFF) / 255,
				float32(v&0xFF) / 255,
			}
		}
	}

	positions := make([]float32, 0, 3*pp.Points)
	colors := make([]float32, 0, 3*pp.Points)
	for ; it.IsValid(); it.Incr() {
		p := it.Vec3()
		c := colorAt(p)
		positions = append(positions, p[0], p[1], p[2])
		colors = append(colors, c[0], c[1], c[2])
	}
	return NewAsset(name, positions, colors)
}

// PointCloud exports the asset with fields x, y, z and packed rgb.
func (a *Asset) PointCloud() *pc.PointCloud {
	n := a.Len()
	pp := &pc.PointCloud{
		PointCloudHeader: pc.PointCloudHeader{
			Version:   0.7,
			Fields:    []string{"x", "y", "z", "rgb"},
			Size:      []int{4, 4, 4, 4},
			Type:      []string{"F", "F", "F", "U"},
			Count:     []int{1, 1, 1, 1},
			Width:     n,
			Height:    1,
			Viewpoint: []float32{0, 0, 0, 1, 0, 0, 0},
		},
		Points: n,
	}
	stride := pp.Stride()
	pp.Data = make([]byte, n*stride)
	for i := 0; i < n; i++ {
		b := pp.Data[i*stride:]
		for j := 0; j < 3; j++ {
			binary.LittleEndian.PutUint32(b[4*j:], math.Float32bits(a.Positions[3*i+j]))
		}
		var v uint32
		for j := 0; j < 3; j++ {
			v = v<<8 | uint32(to255(a.Colors[3*i+j]))
		}
		binary.LittleEndian.PutUint32(b[12:], v)
	}
	return pp
}

// WritePCD writes the asset in binary PCD format.
func (a *Asset) WritePCD(w io.Writer) error {
	return pc.Marshal(a.PointCloud(), w)
}

func hasField(pp *pc.PointCloud, name string) bool {
	for _, f := range pp.Fields {
		if f == name {
			return true
		}
	}
	return false
}

func to255(c float32) uint8 {
	switch {
	case c <= 0:
		return 0
	case c >= 1:
		return 255
	}
	return uint8(math.Round(float64(c) * 255))
}
