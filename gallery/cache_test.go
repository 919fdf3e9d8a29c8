package gallery

import (
	"testing"

	"github.com/seqsense/pcgol/mat"

	"github.com/seqsense/pcgallery/cloud"
	"github.com/seqsense/pcgallery/overlay"
)

func TestCache(t *testing.T) {
	c := NewCache()

	var builds int
	build := func() Material {
		builds++
		return Material{Color: mat.Vec3{1, 0, 0}, Size: 1}
	}
	m1 := c.Material(pointsMaterialKey, build)
	m1.Size = 5
	m2 := c.Material(pointsMaterialKey, build)
	if builds != 1 {
		t.Errorf("Expected 1 build, got: %d", builds)
	}
	if m2.Size != 1 {
		t.Errorf("Modifying a returned material must not affect the cache, got size: %f", m2.Size)
	}

	g1 := c.Geometry(discKey(0.01, 8), func() *overlay.Geometry { return overlay.NewDisc(0.01, 8) })
	g2 := c.Geometry(discKey(0.01, 8), func() *overlay.Geometry {
		t.Error("Cached geometry must not be rebuilt")
		return nil
	})
	if g1 != g2 {
		t.Error("Expected shared geometry")
	}
	g3 := c.Geometry(discKey(0.02, 8), func() *overlay.Geometry { return overlay.NewDisc(0.02, 8) })
	if g3 == g1 {
		t.Error("Different key must build a new geometry")
	}

	a, err := cloud.NewAsset("a", []float32{1, 2, 3}, []float32{0, 0, 0})
	if err != nil {
		t.Fatal(err)
	}
	c.SetAsset(1, a)
	if got, ok := c.Asset(1); !ok || got != a {
		t.Error("Expected cached asset")
	}
	if _, ok := c.Asset(2); ok {
		t.Error("Unexpected asset")
	}

	if n := c.Len(); n != 4 {
		t.Errorf("Expected 4 entries, got: %d", n)
	}
	c.Clear()
	if n := c.Len(); n != 0 {
		t.Errorf("Expected empty cache, got: %d", n)
	}
	c.Material(pointsMaterialKey, build)
	if builds != 2 {
		t.Errorf("Material must be rebuilt after clear, got %d builds", builds)
	}
}
