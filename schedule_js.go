package main

import (
	"syscall/js"
)

const idleFallbackMillis = 16

// scheduler runs callbacks from the browser event loop. The callbacks are
// called directly since none of them block.
type scheduler struct {
	window js.Value
}

func newScheduler() *scheduler {
	return &scheduler{window: js.Global()}
}

func (s *scheduler) Idle(fn func()) {
	var cb js.Func
	cb = js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		cb.Release()
		fn()
		return nil
	})
	if ric := s.window.Get("requestIdleCallback"); ric.Type() == js.TypeFunction {
		s.window.Call("requestIdleCallback", cb)
		return
	}
	s.window.Call("setTimeout", cb, idleFallbackMillis)
}

func (s *scheduler) Frame(fn func()) func() {
	var done bool
	var cb js.Func
	cb = js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		if done {
			return nil
		}
		done = true
		cb.Release()
		fn()
		return nil
	})
	id := s.window.Call("requestAnimationFrame", cb)
	return func() {
		if done {
			return
		}
		done = true
		s.window.Call("cancelAnimationFrame", id)
		cb.Release()
	}
}
