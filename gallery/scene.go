package gallery

import (
	"fmt"

	"github.com/seqsense/pcgol/mat"

	"github.com/seqsense/pcgallery/cloud"
	"github.com/seqsense/pcgallery/overlay"
)

type Material struct {
	Color           mat.Vec3
	Size            float32
	Opacity         float32
	SizeAttenuation bool
	VertexColors    bool
}

type Mesh struct {
	*overlay.Mesh
	Material Material
}

// Scene is everything a Renderer draws for one slot.
type Scene struct {
	Background mat.Vec3
	Asset      *cloud.Asset
	Points     Material
	Overlay    []Mesh
}

// SetOverlay replaces the overlay meshes.
func (s *Scene) SetOverlay(meshes []Mesh) {
	s.Overlay = meshes
}

func discKey(radius float32, segments int) string {
	return fmt.Sprintf("disc/%g/%d", radius, segments)
}

func meshMaterialKey(c mat.Vec3) string {
	return fmt.Sprintf("mesh/%.3f/%.3f/%.3f", c[0], c[1], c[2])
}
