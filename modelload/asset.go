package modelload

import (
	"math"

	"github.com/Carmen-Shannon/oxy-go/engine/model"
)

// Mesh is one drawable unit of a loaded asset: the triangles of a single
// source object that share one material.
type Mesh struct {
	// Name identifies the mesh, derived from the source object and material.
	Name string

	// Vertices are the GPU-ready vertices in engine layout.
	Vertices []model.GPUVertex

	// Indices are the triangle indices into Vertices.
	Indices []uint32

	// MaterialIndex references Asset.Materials.
	MaterialIndex int

	// CastShadow marks the mesh as a shadow caster.
	CastShadow bool

	// ReceiveShadow marks the mesh as a shadow receiver.
	ReceiveShadow bool
}

// MaterialSpec carries the surface properties resolved from the material
// definition file, ready to construct an engine material from.
type MaterialSpec struct {
	// Name is the material identifier from the material library.
	Name string

	// BaseColor is the diffuse color with opacity in the alpha channel.
	BaseColor [4]float32

	// Metallic is the metalness factor (source materials are dielectric).
	Metallic float32

	// Roughness is derived from the specular exponent.
	Roughness float32

	// DiffuseTexturePath is the diffuse texture map path, if any.
	DiffuseTexturePath string
}

// Asset is a fully converted model: scaled to scene units and re-centered so
// the axis-aligned bounding box center sits at the origin.
type Asset struct {
	// Name identifies the asset (the geometry file stem).
	Name string

	// Meshes are the drawable meshes.
	Meshes []Mesh

	// Materials are the resolved materials referenced by the meshes.
	Materials []MaterialSpec

	// BoundsMin and BoundsMax are the axis-aligned bounding box corners after
	// scaling and re-centering, so BoundsMin = -BoundsMax holds per axis.
	BoundsMin [3]float32
	BoundsMax [3]float32
}

// BoundingRadius returns the maximum vertex distance from the origin across
// all meshes, suitable for the engine's frustum culling.
//
// Returns:
//   - float32: the bounding sphere radius
func (a *Asset) BoundingRadius() float32 {
	var maxSq float32
	for _, m := range a.Meshes {
		for _, v := range m.Vertices {
			p := v.Position
			sq := p[0]*p[0] + p[1]*p[1] + p[2]*p[2]
			if sq > maxSq {
				maxSq = sq
			}
		}
	}
	return float32(math.Sqrt(float64(maxSq)))
}

// VertexCount returns the total vertex count across all meshes.
//
// Returns:
//   - int: the vertex count
func (a *Asset) VertexCount() int {
	n := 0
	for _, m := range a.Meshes {
		n += len(m.Vertices)
	}
	return n
}
