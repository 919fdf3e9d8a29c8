package main

import (
	"math"
	"syscall/js"

	webgl "github.com/seqsense/webgl-go"

	"github.com/seqsense/pcgallery/gallery"
)

type gestureMode int

const (
	gestureNone gestureMode = iota
	gestureRotate
	gesturePinch
)

const pinchScale = 10

// gesture turns pointer events of a canvas into orbit operations. One
// pointer rotates, two pointers zoom.
type gesture struct {
	orbit  *gallery.Orbit
	height func() int
	canvas js.Value

	pointers map[int]webgl.PointerEvent
	pointer0 webgl.PointerEvent

	mode      gestureMode
	distance0 float64
}

func newGesture(o *gallery.Orbit, canvas js.Value, height func() int) *gesture {
	setCursor(canvas, cursorGrab)
	return &gesture{
		orbit:    o,
		height:   height,
		canvas:   canvas,
		pointers: make(map[int]webgl.PointerEvent),
	}
}

func (g *gesture) bind(c webgl.Canvas) {
	c.OnPointerDown(g.pointerDown)
	c.OnPointerMove(g.pointerMove)
	c.OnPointerUp(g.pointerUp)
	c.OnPointerOut(g.pointerUp)
	c.OnWheel(g.wheel)
}

func (g *gesture) wheel(e webgl.WheelEvent) {
	e.PreventDefault()
	e.StopPropagation()
	g.orbit.Wheel(e.DeltaY)
}

func (g *gesture) pointerUp(e webgl.PointerEvent) {
	e.PreventDefault()
	e.StopPropagation()

	if _, ok := g.pointers[e.PointerId]; ok {
		delete(g.pointers, e.PointerId)
	}
	if len(g.pointers) == 0 {
		if g.mode == gestureRotate {
			g.orbit.DragEnd()
			setCursor(g.canvas, cursorGrab)
		}
		g.mode = gestureNone
	}
}

func (g *gesture) pointerMove(e webgl.PointerEvent) {
	e.PreventDefault()
	e.StopPropagation()
	if _, ok := g.pointers[e.PointerId]; !ok {
		return
	}
	g.pointers[e.PointerId] = e

	if g.mode == gestureNone {
		switch len(g.pointers) {
		case 1:
			g.orbit.DragStart(float64(g.pointer0.OffsetX), float64(g.pointer0.OffsetY))
			setCursor(g.canvas, cursorGrabbing)
			g.mode = gestureRotate
		case 2:
			g.mode = gesturePinch
		}
	}
	switch g.mode {
	case gestureRotate:
		if e.IsPrimary {
			g.orbit.Drag(float64(e.OffsetX), float64(e.OffsetY), g.height())
		}
	case gesturePinch:
		if len(g.pointers) != 2 {
			break
		}
		d := g.distance()
		g.orbit.Wheel((g.distance0 - d) / pinchScale)
		g.distance0 = d
	}
	if e.IsPrimary {
		g.pointer0 = e
	}
}

func (g *gesture) pointerDown(e webgl.PointerEvent) {
	e.PreventDefault()
	e.StopPropagation()
	g.pointers[e.PointerId] = e

	switch len(g.pointers) {
	case 1:
		g.pointer0 = e
	case 2:
		if g.mode == gestureRotate {
			g.orbit.DragEnd()
			g.mode = gestureNone
		}
		g.distance0 = g.distance()
	}
}

func (g *gesture) distance() float64 {
	var pp []webgl.PointerEvent
	for id := range g.pointers {
		pp = append(pp, g.pointers[id])
	}
	return math.Hypot(float64(pp[0].OffsetX-pp[1].OffsetX), float64(pp[0].OffsetY-pp[1].OffsetY))
}
