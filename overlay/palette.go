package overlay

import (
	"github.com/lucasb-eyer/go-colorful"
	"github.com/pkg/errors"
	"github.com/seqsense/pcgol/mat"
)

// Palette maps trajectory class to RGB color.
type Palette map[int]mat.Vec3

var white = mat.Vec3{1, 1, 1}

var DefaultClassColors = map[int]string{
	1: "#ffa300",
	2: "#0000ff",
	3: "#00ff00",
	4: "#ff0000",
}

func DefaultPalette() Palette {
	p, err := ParsePalette(DefaultClassColors)
	if err != nil {
		panic(err)
	}
	return p
}

func ParsePalette(hex map[int]string) (Palette, error) {
	p := make(Palette, len(hex))
	for class, h := range hex {
		c, err := ParseHex(h)
		if err != nil {
			return nil, errors.Wrapf(err, "class %d", class)
		}
		p[class] = c
	}
	return p, nil
}

func ParseHex(h string) (mat.Vec3, error) {
	c, err := colorful.Hex(h)
	if err != nil {
		return mat.Vec3{}, err
	}
	return mat.Vec3{float32(c.R), float32(c.G), float32(c.B)}, nil
}

// Color returns white for unknown classes.
func (p Palette) Color(class int) mat.Vec3 {
	if c, ok := p[class]; ok {
		return c
	}
	return white
}
