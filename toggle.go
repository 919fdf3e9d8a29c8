package main

import (
	"github.com/seqsense/pcgallery/overlay"
)

// displayMode holds the trajectory toggle buttons. At most one of them is
// active.
type displayMode struct {
	v overlay.Visibility
}

func newDisplayMode(v overlay.Visibility) *displayMode {
	if v.GroundTruth && v.Predictions {
		v.GroundTruth = false
	}
	return &displayMode{v: v}
}

// toggle turns k off when active, otherwise turns k on and the other off.
func (m *displayMode) toggle(k overlay.Kind) overlay.Visibility {
	active := m.v.Shows(k)
	m.v = overlay.Visibility{}
	if !active {
		switch k {
		case overlay.GroundTruth:
			m.v.GroundTruth = true
		case overlay.Prediction:
			m.v.Predictions = true
		}
	}
	return m.v
}

func (m *displayMode) visibility() overlay.Visibility {
	return m.v
}

const (
	buttonInactive      = "button is-light"
	buttonPredictionsOn = "button is-info is-selected"
	buttonGroundTruthOn = "button is-success is-selected"
)

// buttonClasses returns CSS classes of prediction and ground truth buttons.
func (m *displayMode) buttonClasses() (pred, gt string) {
	pred, gt = buttonInactive, buttonInactive
	if m.v.Predictions {
		pred = buttonPredictionsOn
	}
	if m.v.GroundTruth {
		gt = buttonGroundTruthOn
	}
	return pred, gt
}
