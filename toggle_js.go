package main

import (
	"syscall/js"

	"go.uber.org/zap"

	"github.com/seqsense/pcgallery/gallery"
	"github.com/seqsense/pcgallery/overlay"
)

const (
	carouselID         = "results-carousel"
	predictionsBtnID   = "toggle-predictions-btn"
	groundTruthBtnID   = "toggle-ground-truth-btn"
	toggleGroupClass   = "field has-addons mb-3"
	toggleControlClass = "control"
)

// installToggles inserts the trajectory buttons above the carousel. The page
// is left untouched when there is no carousel.
func installToggles(g *gallery.Gallery, log *zap.SugaredLogger) {
	doc := js.Global().Get("document")
	carousel := doc.Call("getElementById", carouselID)
	if carousel.IsNull() {
		log.Debug("no carousel, trajectory toggles are not installed")
		return
	}
	parent := carousel.Get("parentNode")

	mode := newDisplayMode(g.Visibility())
	g.SetVisibility(mode.visibility())

	group := doc.Call("createElement", "div")
	group.Set("className", toggleGroupClass)
	control := doc.Call("createElement", "div")
	control.Set("className", toggleControlClass)
	group.Call("appendChild", control)

	newButton := func(id, label string) js.Value {
		b := doc.Call("createElement", "button")
		b.Set("id", id)
		b.Set("textContent", label)
		control.Call("appendChild", b)
		return b
	}
	pred := newButton(predictionsBtnID, "Predictions")
	gt := newButton(groundTruthBtnID, "Ground Truth")

	update := func() {
		p, t := mode.buttonClasses()
		pred.Set("className", p)
		gt.Set("className", t)
	}
	onClick := func(b js.Value, k overlay.Kind) {
		b.Call("addEventListener", "click", js.FuncOf(func(this js.Value, args []js.Value) interface{} {
			v := mode.toggle(k)
			update()
			log.Debugw("trajectory visibility", "groundTruth", v.GroundTruth, "predictions", v.Predictions)
			g.SetVisibility(v)
			return nil
		}))
	}
	onClick(pred, overlay.Prediction)
	onClick(gt, overlay.GroundTruth)
	update()

	parent.Call("insertBefore", group, parent.Get("firstChild"))
}
