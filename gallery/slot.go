package gallery

import (
	"errors"
	"fmt"
	"math"

	"github.com/seqsense/pcgol/mat"

	"github.com/seqsense/pcgallery/cloud"
)

var ErrInvalidTransition = errors.New("invalid slot state transition")

type SlotState int

const (
	SlotLoading SlotState = iota
	SlotReady
	SlotError
	SlotHidden
	SlotDisposed
)

func (s SlotState) String() string {
	switch s {
	case SlotLoading:
		return "loading"
	case SlotReady:
		return "ready"
	case SlotError:
		return "error"
	case SlotHidden:
		return "hidden"
	case SlotDisposed:
		return "disposed"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

var slotTransitions = map[SlotState][]SlotState{
	SlotLoading: {SlotReady, SlotError, SlotHidden, SlotDisposed},
	SlotReady:   {SlotError, SlotDisposed},
	SlotHidden:  {SlotDisposed},
	SlotError:   {SlotDisposed},
}

func (s SlotState) canTransit(to SlotState) bool {
	for _, t := range slotTransitions[s] {
		if t == to {
			return true
		}
	}
	return false
}

const (
	fov  = math.Pi / 3
	near = 0.1
	far  = 1000
)

// Slot is one viewer of the gallery. Its fields are guarded by the owning
// Gallery.
type Slot struct {
	Index int

	state SlotState
	err   error

	asset    *cloud.Asset
	renderer Renderer
	orbit    *Orbit
	scene    *Scene

	cancelLoop    func()
	width, height int
	projection    mat.Mat4
}

func newSlot(i int) *Slot {
	return &Slot{Index: i}
}

func (s *Slot) State() SlotState {
	return s.state
}

func (s *Slot) Err() error {
	return s.err
}

func (s *Slot) Asset() *cloud.Asset {
	return s.asset
}

func (s *Slot) Scene() *Scene {
	return s.scene
}

func (s *Slot) transit(to SlotState) error {
	if !s.state.canTransit(to) {
		return fmt.Errorf("slot %d: %v -> %v: %w", s.Index, s.state, to, ErrInvalidTransition)
	}
	s.state = to
	return nil
}

// frame renders one frame. Projection is rebuilt when the surface size
// changes.
func (s *Slot) frame() error {
	w, h := s.renderer.ClientSize()
	if w != s.width || h != s.height || s.width == 0 {
		s.width, s.height = w, h
		aspect := float32(1)
		if h > 0 {
			aspect = float32(w) / float32(h)
		}
		s.projection = mat.Perspective(fov, aspect, near, far)
	}
	s.orbit.Update()
	return s.renderer.Render(s.scene, s.projection, s.orbit.View())
}
