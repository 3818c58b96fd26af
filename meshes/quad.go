// package meshes builds small procedural geometry used by the overlay and the
// panel view: GPU-ready vertex and index slices in the engine's layout.
package meshes

import (
	"github.com/Carmen-Shannon/oxy-go/engine/model"
)

// BuildQuad builds a thin box centered on the origin with the given half
// extents in X and Z, half thickness in Y, and a uniform vertex color.
//
// Parameters:
//   - half: half-extent in X and Z
//   - thickness: half-thickness in Y
//   - color: the vertex color applied to every vertex
//
// Returns:
//   - []model.GPUVertex: the vertices
//   - []uint32: the triangle indices, CCW when viewed from outside
func BuildQuad(half, thickness float32, color [4]float32) ([]model.GPUVertex, []uint32) {
	v := func(px, py, pz, nx, ny, nz, u, vt, tx, ty, tz, tw float32) model.GPUVertex {
		return model.GPUVertex{
			Position: [3]float32{px, py, pz},
			Normal:   [3]float32{nx, ny, nz},
			TexCoord: [2]float32{u, vt},
			Color:    color,
			Tangent:  [4]float32{tx, ty, tz, tw},
		}
	}

	vertices := []model.GPUVertex{
		// Top face (+Y), tangent +X
		v(-half, thickness, -half, 0, 1, 0, 0, 0, 1, 0, 0, 1),
		v(half, thickness, -half, 0, 1, 0, 1, 0, 1, 0, 0, 1),
		v(half, thickness, half, 0, 1, 0, 1, 1, 1, 0, 0, 1),
		v(-half, thickness, half, 0, 1, 0, 0, 1, 1, 0, 0, 1),

		// Bottom face (-Y), tangent +X
		v(-half, -thickness, half, 0, -1, 0, 0, 0, 1, 0, 0, 1),
		v(half, -thickness, half, 0, -1, 0, 1, 0, 1, 0, 0, 1),
		v(half, -thickness, -half, 0, -1, 0, 1, 1, 1, 0, 0, 1),
		v(-half, -thickness, -half, 0, -1, 0, 0, 1, 1, 0, 0, 1),

		// Front face (+Z), tangent +X
		v(-half, -thickness, half, 0, 0, 1, 0, 0, 1, 0, 0, 1),
		v(half, -thickness, half, 0, 0, 1, 1, 0, 1, 0, 0, 1),
		v(half, thickness, half, 0, 0, 1, 1, 1, 1, 0, 0, 1),
		v(-half, thickness, half, 0, 0, 1, 0, 1, 1, 0, 0, 1),

		// Back face (-Z), tangent -X
		v(half, -thickness, -half, 0, 0, -1, 0, 0, -1, 0, 0, 1),
		v(-half, -thickness, -half, 0, 0, -1, 1, 0, -1, 0, 0, 1),
		v(-half, thickness, -half, 0, 0, -1, 1, 1, -1, 0, 0, 1),
		v(half, thickness, -half, 0, 0, -1, 0, 1, -1, 0, 0, 1),

		// Right face (+X), tangent +Z
		v(half, -thickness, half, 1, 0, 0, 0, 0, 0, 0, 1, 1),
		v(half, -thickness, -half, 1, 0, 0, 1, 0, 0, 0, 1, 1),
		v(half, thickness, -half, 1, 0, 0, 1, 1, 0, 0, 1, 1),
		v(half, thickness, half, 1, 0, 0, 0, 1, 0, 0, 1, 1),

		// Left face (-X), tangent -Z
		v(-half, -thickness, -half, -1, 0, 0, 0, 0, 0, 0, -1, 1),
		v(-half, -thickness, half, -1, 0, 0, 1, 0, 0, 0, -1, 1),
		v(-half, thickness, half, -1, 0, 0, 1, 1, 0, 0, -1, 1),
		v(-half, thickness, -half, -1, 0, 0, 0, 1, 0, 0, -1, 1),
	}

	indices := []uint32{
		0, 2, 1, 0, 3, 2, // top
		4, 6, 5, 4, 7, 6, // bottom
		8, 10, 9, 8, 11, 10, // front
		12, 14, 13, 12, 15, 14, // back
		16, 18, 17, 16, 19, 18, // right
		20, 22, 21, 20, 23, 22, // left
	}

	return vertices, indices
}

// Recolor overwrites the color of every vertex in place and returns the slice.
//
// Parameters:
//   - vertices: the vertices to recolor
//   - color: the new vertex color
//
// Returns:
//   - []model.GPUVertex: the same slice, recolored
func Recolor(vertices []model.GPUVertex, color [4]float32) []model.GPUVertex {
	for i := range vertices {
		vertices[i].Color = color
	}
	return vertices
}
