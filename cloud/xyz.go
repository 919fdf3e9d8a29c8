package cloud

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

const maxLineLength = 1024 * 1024

// ParseXYZ reads whitespace separated "x y z [r g b]" rows.
// Blank lines, '#' comments, rows without three numeric fields and rows
// longer than maxLineLength are skipped. r, g, b are 0-255 and normalized to
// 0-1. Rows without a color are colored by height.
func ParseXYZ(name string, r io.Reader) (*Asset, error) {
	var positions, colors []float32

	br := bufio.NewReader(r)
	for {
		line, err := readLine(br)
		if p, c, ok := parseRow(line); ok {
			positions = append(positions, p[0], p[1], p[2])
			colors = append(colors, c[0], c[1], c[2])
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrapf(err, "reading %s", name)
		}
	}
	return NewAsset(name, positions, colors)
}

// readLine returns the next line without its delimiter. A line longer than
// maxLineLength is consumed and returned empty.
func readLine(br *bufio.Reader) (string, error) {
	var b []byte
	var long bool
	for {
		chunk, err := br.ReadSlice('\n')
		if !long {
			if len(b)+len(chunk) > maxLineLength {
				long, b = true, nil
			} else {
				b = append(b, chunk...)
			}
		}
		if err == bufio.ErrBufferFull {
			continue
		}
		return string(b), err
	}
}

func parseRow(line string) (p, c [3]float32, ok bool) {
	line = strings.TrimSpace(line)
	if line == "" || line[0] == '#' {
		return p, c, false
	}
	args := strings.Fields(line)
	if len(args) < 3 {
		return p, c, false
	}
	if p, ok = parseFloats(args[:3]); !ok {
		return p, c, false
	}
	if len(args) >= 6 {
		if rgb, ok := parseFloats(args[3:6]); ok {
			return p, [3]float32{rgb[0] / 255, rgb[1] / 255, rgb[2] / 255}, true
		}
	}
	return p, heightColor(p[1]), true
}

// WriteXYZ writes "x y z r g b" rows with 0-255 colors.
func (a *Asset) WriteXYZ(w io.Writer) error {
	bw := bufio.NewWriter(w)
	for i := 0; i < a.Len(); i++ {
		p, c := a.Position(i), a.Color(i)
		if _, err := fmt.Fprintf(bw, "%g %g %g %d %d %d\n",
			p[0], p[1], p[2], to255(c[0]), to255(c[1]), to255(c[2]),
		); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func parseFloats(args []string) ([3]float32, bool) {
	var out [3]float32
	for i, a := range args {
		f, err := strconv.ParseFloat(a, 32)
		if err != nil {
			return out, false
		}
		out[i] = float32(f)
	}
	return out, true
}

// heightColor maps y in [-1, 1] onto a blue to red ramp.
func heightColor(y float32) [3]float32 {
	n := (y + 1) * 0.5
	return [3]float32{n, 0.5, 1 - n}
}
