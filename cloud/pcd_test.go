package cloud

import (
	"bytes"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestPointCloudRoundTrip(t *testing.T) {
	a, err := NewAsset("in",
		[]float32{1, 2, 3, -4, 5.5, 0},
		[]float32{1, 0, 0, 0.2, 0.4, 1},
	)
	if err != nil {
		t.Fatal(err)
	}

	buf := &bytes.Buffer{}
	if err := a.WritePCD(buf); err != nil {
		t.Fatal(err)
	}
	out, err := Decode("out.pcd", buf.Bytes())
	if err != nil {
		t.Fatal(err)
	}

	if diff := cmp.Diff(a.Positions, out.Positions); diff != "" {
		t.Errorf("Positions mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(a.Colors, out.Colors, cmpopts.EquateApprox(0, 1.0/255)); diff != "" {
		t.Errorf("Colors mismatch (-want +got):\n%s", diff)
	}
	if out.Box != a.Box {
		t.Errorf("Expected box: %v, got: %v", a.Box, out.Box)
	}
}

func TestFromPointCloud_WithoutColor(t *testing.T) {
	a, err := NewAsset("in", []float32{0, 1, 0}, []float32{0, 0, 0})
	if err != nil {
		t.Fatal(err)
	}
	pp := a.PointCloud()
	pp.Fields = []string{"x", "y", "z", "intensity"}

	out, err := FromPointCloud("out", pp)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]float32{1, 0.5, 0}, out.Colors); diff != "" {
		t.Errorf("Expected height color (-want +got):\n%s", diff)
	}
}

func TestDecode(t *testing.T) {
	testCases := map[string]struct {
		name   string
		input  string
		points int
		err    error
	}{
		"XYZ": {
			name:   "a/pointcloud_01.xyz",
			input:  "1 2 3\n4 5 6\n",
			points: 2,
		},
		"UpperCaseExtension": {
			name:   "A.XYZ",
			input:  "1 2 3\n",
			points: 1,
		},
		"Unknown": {
			name: "a.ply",
			err:  ErrUnknownFormat,
		},
	}

	for name, tt := range testCases {
		tt := tt
		t.Run(name, func(t *testing.T) {
			a, err := Decode(tt.name, []byte(tt.input))
			if !errors.Is(err, tt.err) {
				t.Fatalf("Expected error: %v, got: %v", tt.err, err)
			}
			if err != nil {
				return
			}
			if a.Len() != tt.points {
				t.Errorf("Expected %d points, got: %d", tt.points, a.Len())
			}
		})
	}
}

func TestDecode_BrokenPCD(t *testing.T) {
	if _, err := Decode("broken.pcd", []byte("not a pcd")); err == nil {
		t.Error("Expected error")
	}
}
