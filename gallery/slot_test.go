package gallery

import (
	"errors"
	"testing"
)

func TestSlotTransit(t *testing.T) {
	all := []SlotState{SlotLoading, SlotReady, SlotError, SlotHidden, SlotDisposed}
	allowed := map[SlotState]map[SlotState]bool{
		SlotLoading:  {SlotReady: true, SlotError: true, SlotHidden: true, SlotDisposed: true},
		SlotReady:    {SlotError: true, SlotDisposed: true},
		SlotError:    {SlotDisposed: true},
		SlotHidden:   {SlotDisposed: true},
		SlotDisposed: {},
	}

	for _, from := range all {
		for _, to := range all {
			from, to := from, to
			t.Run(from.String()+"To"+to.String(), func(t *testing.T) {
				s := newSlot(1)
				s.state = from
				err := s.transit(to)
				if allowed[from][to] {
					if err != nil {
						t.Fatalf("Unexpected error: %v", err)
					}
					if s.State() != to {
						t.Errorf("Expected %v, got: %v", to, s.State())
					}
					return
				}
				if !errors.Is(err, ErrInvalidTransition) {
					t.Fatalf("Expected %v, got: %v", ErrInvalidTransition, err)
				}
				if s.State() != from {
					t.Errorf("State must not change on error, got: %v", s.State())
				}
			})
		}
	}
}
