package gallery

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/seqsense/pcgallery/overlay"
)

// loadOverlays fetches the overlay of each loaded index. Missing or broken
// files leave the slot without overlay.
func (g *Gallery) loadOverlays(ctx context.Context, indices []int) {
	data := make([]*overlay.Data, len(indices))

	eg, egCtx := errgroup.WithContext(ctx)
	for k, i := range indices {
		k, i := k, i
		eg.Go(func() error {
			b, err := g.fetcher.Fetch(egCtx, g.cfg.OverlayPath(i))
			if err != nil {
				g.log.Debugw("no overlay", "index", i, "error", err)
				return nil
			}
			d, err := overlay.Parse(b)
			if err != nil {
				g.log.Warnw("ignoring overlay", "index", i, "error", err)
				return nil
			}
			data[k] = d
			return nil
		})
	}
	_ = eg.Wait()

	g.mu.Lock()
	if g.closed {
		g.mu.Unlock()
		return
	}
	var n int
	for k, i := range indices {
		if data[k] != nil {
			g.overlays[i] = data[k]
			n++
		}
	}
	g.mu.Unlock()

	g.log.Infof("loaded %d overlays", n)
	g.ApplyOverlays()
}

// Visibility returns which trajectory kinds are drawn.
func (g *Gallery) Visibility() overlay.Visibility {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.visibility
}

func (g *Gallery) SetVisibility(v overlay.Visibility) {
	g.mu.Lock()
	g.visibility = v
	g.mu.Unlock()
	g.ApplyOverlays()
}

// ApplyOverlays rebuilds overlay meshes of all ready slots in slot order.
// The first batch is applied immediately, the following ones on subsequent
// frames. A pending run from an earlier call is discarded.
func (g *Gallery) ApplyOverlays() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.closed {
		return
	}
	if g.cancelBatch != nil {
		g.cancelBatch()
		g.cancelBatch = nil
	}
	var targets []*Slot
	for _, s := range g.slots {
		if s.state == SlotReady {
			targets = append(targets, s)
		}
	}
	g.applyBatch(targets)
}

// applyBatch must be called with g.mu held.
func (g *Gallery) applyBatch(targets []*Slot) {
	n := g.cfg.BatchSize
	if n > len(targets) {
		n = len(targets)
	}
	for _, s := range targets[:n] {
		if s.state != SlotReady {
			continue
		}
		s.scene.SetOverlay(g.meshes(g.overlays[s.Index]))
	}

	rest := targets[n:]
	if len(rest) == 0 {
		g.cancelBatch = nil
		return
	}
	g.cancelBatch = g.sched.Frame(func() {
		g.mu.Lock()
		defer g.mu.Unlock()
		if g.closed {
			return
		}
		g.applyBatch(rest)
	})
}

// meshes builds overlay meshes of d. Nil d gives no mesh.
func (g *Gallery) meshes(d *overlay.Data) []Mesh {
	if d == nil {
		return nil
	}
	built := g.builder.Build(d, g.visibility)
	out := make([]Mesh, 0, len(built))
	for _, m := range built {
		color := m.Color
		out = append(out, Mesh{
			Mesh: m,
			Material: g.cache.Material(meshMaterialKey(color), func() Material {
				return Material{Color: color, Opacity: 1}
			}),
		})
	}
	return out
}
