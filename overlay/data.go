// Package overlay builds trajectory meshes drawn over point clouds.
package overlay

import (
	"encoding/json"
	"math"

	"github.com/pkg/errors"
	"github.com/seqsense/pcgol/mat"
)

type Kind int

const (
	GroundTruth Kind = iota
	Prediction
)

func (k Kind) String() string {
	switch k {
	case GroundTruth:
		return "gt"
	case Prediction:
		return "pred"
	}
	return "unknown"
}

type Item struct {
	Class  int        `json:"class"`
	Points []mat.Vec3 `json:"points"`
}

// UnknownClass is the class of items whose class is not an integer. It has
// no palette entry.
const UnknownClass = -1

// UnmarshalJSON accepts any JSON number as class.
func (it *Item) UnmarshalJSON(b []byte) error {
	var raw struct {
		Class  float64    `json:"class"`
		Points []mat.Vec3 `json:"points"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	it.Class = UnknownClass
	if c := math.Trunc(raw.Class); c == raw.Class && math.Abs(c) < math.MaxInt32 {
		it.Class = int(c)
	}
	it.Points = raw.Points
	return nil
}

type Data struct {
	GroundTruth []Item `json:"gt"`
	Predictions []Item `json:"pred"`
}

func Parse(b []byte) (*Data, error) {
	d := &Data{}
	if err := json.Unmarshal(b, d); err != nil {
		return nil, errors.Wrap(err, "parsing overlay")
	}
	return d, nil
}

func (d *Data) Items(k Kind) []Item {
	if d == nil {
		return nil
	}
	switch k {
	case GroundTruth:
		return d.GroundTruth
	case Prediction:
		return d.Predictions
	}
	return nil
}

type Visibility struct {
	GroundTruth bool
	Predictions bool
}

func (v Visibility) Shows(k Kind) bool {
	switch k {
	case GroundTruth:
		return v.GroundTruth
	case Prediction:
		return v.Predictions
	}
	return false
}
