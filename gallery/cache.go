package gallery

import (
	"sync"

	"github.com/seqsense/pcgallery/cloud"
	"github.com/seqsense/pcgallery/overlay"
)

const pointsMaterialKey = "points"

// Cache holds shared resources of a Gallery. Lookups that miss build the
// resource and keep it for later calls with the same key.
type Cache struct {
	mu         sync.Mutex
	materials  map[string]Material
	geometries map[string]*overlay.Geometry
	assets     map[int]*cloud.Asset
}

func NewCache() *Cache {
	return &Cache{
		materials:  make(map[string]Material),
		geometries: make(map[string]*overlay.Geometry),
		assets:     make(map[int]*cloud.Asset),
	}
}

// Material returns a copy, so callers may modify it freely.
func (c *Cache) Material(key string, build func() Material) Material {
	c.mu.Lock()
	defer c.mu.Unlock()
	if m, ok := c.materials[key]; ok {
		return m
	}
	m := build()
	c.materials[key] = m
	return m
}

func (c *Cache) Geometry(key string, build func() *overlay.Geometry) *overlay.Geometry {
	c.mu.Lock()
	defer c.mu.Unlock()
	if g, ok := c.geometries[key]; ok {
		return g
	}
	g := build()
	c.geometries[key] = g
	return g
}

func (c *Cache) SetAsset(i int, a *cloud.Asset) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.assets[i] = a
}

func (c *Cache) Asset(i int) (*cloud.Asset, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	a, ok := c.assets[i]
	return a, ok
}

func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.materials) + len(c.geometries) + len(c.assets)
}

func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.materials = make(map[string]Material)
	c.geometries = make(map[string]*overlay.Geometry)
	c.assets = make(map[int]*cloud.Asset)
}
