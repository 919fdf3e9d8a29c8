package gallery

import (
	"context"
	"testing"

	"github.com/seqsense/pcgallery/overlay"
)

const overlayJSON = `{
  "gt": [{"class": 1, "points": [[0, 0, 0], [1, 0, 0]]}],
  "pred": [
    {"class": 2, "points": [[0, 1, 0], [1, 1, 0], [2, 1, 0]]},
    {"class": 3, "points": [[0, 0, 1], [0, 1, 1]]},
    {"class": 4, "points": [[9, 9, 9]]}
  ]
}`

func countKind(meshes []Mesh, k overlay.Kind) int {
	var n int
	for _, m := range meshes {
		if m.Kind == k {
			n++
		}
	}
	return n
}

func TestOverlay(t *testing.T) {
	cfg := DefaultConfig()
	fs := files(cfg, 1, 2)
	fs[cfg.OverlayPath(1)] = overlayJSON
	fs[cfg.OverlayPath(2)] = "{broken"

	env := newTestEnv(t, fs, nil)
	g := env.gallery
	if err := g.Load(context.Background()); err != nil {
		t.Fatal(err)
	}
	env.sched.RunIdle()

	s1, s2 := g.Slot(1), g.Slot(2)
	if n := len(s1.Scene().Overlay); n != 6 {
		t.Fatalf("Expected 6 prediction meshes, got: %d", n)
	}
	if n := len(s2.Scene().Overlay); n != 0 {
		t.Errorf("Broken overlay must be ignored, got %d meshes", n)
	}

	g.ApplyOverlays()
	g.ApplyOverlays()
	if n := len(s1.Scene().Overlay); n != 6 {
		t.Errorf("Re-applying must replace meshes, got: %d", n)
	}

	g.SetVisibility(overlay.Visibility{GroundTruth: true, Predictions: true})
	if n := countKind(s1.Scene().Overlay, overlay.GroundTruth); n != 3 {
		t.Errorf("Expected 3 ground truth meshes, got: %d", n)
	}
	if n := countKind(s1.Scene().Overlay, overlay.Prediction); n != 6 {
		t.Errorf("Expected 6 prediction meshes, got: %d", n)
	}

	g.SetVisibility(overlay.Visibility{})
	if n := len(s1.Scene().Overlay); n != 0 {
		t.Errorf("Expected no mesh, got: %d", n)
	}

	g.SetVisibility(overlay.Visibility{GroundTruth: true})
	meshes := s1.Scene().Overlay
	if len(meshes) != 3 {
		t.Fatalf("Expected 3 meshes, got: %d", len(meshes))
	}
	if meshes[1].Geometry != meshes[2].Geometry {
		t.Error("End caps must share cached disc geometry")
	}
	if c := meshes[0].Material.Color; c != meshes[0].Color {
		t.Errorf("Material color must match class color, got: %v", c)
	}
}

func TestOverlay_Batch(t *testing.T) {
	cfg := DefaultConfig()
	var indices []int
	for i := 1; i <= 10; i++ {
		indices = append(indices, i)
	}
	fs := files(cfg, indices...)
	for _, i := range indices {
		fs[cfg.OverlayPath(i)] = overlayJSON
	}

	env := newTestEnv(t, fs, nil)
	g := env.gallery
	if err := g.Load(context.Background()); err != nil {
		t.Fatal(err)
	}
	env.sched.RunIdle()

	gt := func(i int) int {
		return countKind(g.Slot(i).Scene().Overlay, overlay.GroundTruth)
	}

	g.SetVisibility(overlay.Visibility{GroundTruth: true, Predictions: true})
	expected := [][]int{
		{3, 3, 3, 0, 0, 0, 0, 0, 0, 0},
		{3, 3, 3, 3, 3, 3, 0, 0, 0, 0},
		{3, 3, 3, 3, 3, 3, 3, 3, 3, 0},
		{3, 3, 3, 3, 3, 3, 3, 3, 3, 3},
	}
	for frame, e := range expected {
		for i := 1; i <= 10; i++ {
			if n := gt(i); n != e[i-1] {
				t.Errorf("Frame %d, slot %d: expected %d ground truth meshes, got: %d", frame, i, e[i-1], n)
			}
		}
		env.sched.RunFrame()
	}

	// A new request discards the pending batches of the previous one.
	g.SetVisibility(overlay.Visibility{Predictions: true})
	g.SetVisibility(overlay.Visibility{GroundTruth: true, Predictions: true})
	g.SetVisibility(overlay.Visibility{Predictions: true})
	for i := 0; i < 4; i++ {
		env.sched.RunFrame()
	}
	for i := 1; i <= 10; i++ {
		if n := gt(i); n != 0 {
			t.Errorf("Slot %d: expected no ground truth mesh, got: %d", i, n)
		}
	}
}
