package main

import (
	"fmt"
	"syscall/js"

	"go.uber.org/zap"

	"github.com/seqsense/pcgallery/gallery"
)

const (
	containerIDFormat = "pointcloud-viewer-%d"
	itemClassFormat   = ".item-pointcloud-%d"
	overlayClass      = "loading-overlay"
	errorOverlayClass = "loading-overlay error-overlay"
)

type page struct {
	doc js.Value
	log *zap.SugaredLogger

	overlays map[int]js.Value
}

func newPage(log *zap.SugaredLogger) *page {
	return &page{
		doc:      js.Global().Get("document"),
		log:      log,
		overlays: make(map[int]js.Value),
	}
}

func (p *page) container(slot int) (js.Value, bool) {
	c := p.doc.Call("getElementById", fmt.Sprintf(containerIDFormat, slot))
	if c.IsNull() || c.IsUndefined() {
		return js.Null(), false
	}
	return c, true
}

func (p *page) HasContainer(slot int) bool {
	_, ok := p.container(slot)
	return ok
}

func (p *page) NewRenderer(slot int) (gallery.Renderer, error) {
	c, ok := p.container(slot)
	if !ok {
		return nil, gallery.ErrNoContainer
	}
	canvas := p.doc.Call("createElement", "canvas")
	style := canvas.Get("style")
	style.Set("width", "100%")
	style.Set("height", "100%")
	style.Set("display", "block")
	style.Set("touchAction", "none")
	c.Call("appendChild", canvas)

	r, err := newRenderer(canvas, p.log.With("slot", slot))
	if err != nil {
		canvas.Call("remove")
		return nil, err
	}
	return r, nil
}

func (p *page) ShowLoading(slot int) {
	p.setOverlay(slot, overlayClass,
		`<div class="loading-content">`+
			`<div class="loading-spinner"></div>`+
			fmt.Sprintf(`<div class="loading-text">Loading Point Cloud %d...</div>`, slot)+
			`</div>`,
	)
}

func (p *page) HideLoading(slot int) {
	p.removeOverlay(slot)
}

func (p *page) ShowError(slot int, msg string) {
	o, ok := p.setOverlay(slot, errorOverlayClass,
		`<div class="loading-content">`+
			`<div class="error-icon">⚠️</div>`+
			fmt.Sprintf(`<div class="loading-text">Failed to load Point Cloud %d</div>`, slot)+
			`<div class="error-message"></div>`+
			`</div>`,
	)
	if !ok {
		return
	}
	// The message may come from the network. It must not be parsed as HTML.
	o.Call("querySelector", ".error-message").Set("textContent", msg)
}

func (p *page) HideSlot(slot int) {
	item := p.doc.Call("querySelector", fmt.Sprintf(itemClassFormat, slot))
	if item.IsNull() {
		return
	}
	item.Get("style").Set("display", "none")
}

func (p *page) setOverlay(slot int, class, html string) (js.Value, bool) {
	p.removeOverlay(slot)
	c, ok := p.container(slot)
	if !ok {
		return js.Null(), false
	}
	o := p.doc.Call("createElement", "div")
	o.Set("className", class)
	o.Set("innerHTML", html)
	c.Call("appendChild", o)
	p.overlays[slot] = o
	return o, true
}

func (p *page) removeOverlay(slot int) {
	if o, ok := p.overlays[slot]; ok {
		o.Call("remove")
		delete(p.overlays, slot)
	}
}
