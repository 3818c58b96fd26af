package modelload

import (
	"fmt"
	"math"

	"github.com/Carmen-Shannon/oxy-go/engine/model"
	"github.com/g3n/engine/loader/obj"
)

const maxFloat32 = math.MaxFloat32

func sqrt32(v float32) float32 {
	return float32(math.Sqrt(float64(v)))
}

// defaultMaterial is used for faces whose material is absent from the
// material library.
var defaultMaterial = MaterialSpec{
	Name:      "default",
	BaseColor: [4]float32{0.7, 0.7, 0.7, 1},
	Metallic:  0,
	Roughness: 0.9,
}

// convertDecoded turns the decoder's object graph into an Asset: faces are
// fan-triangulated into GPU vertices, the configured uniform scale is applied,
// and all positions are translated so the bounding box center sits at the
// origin. Every mesh is marked as both shadow caster and receiver.
//
// Parameters:
//   - name: the asset name
//   - dec: the decoded OBJ/MTL object graph
//   - scale: the uniform scale applied to source positions
//
// Returns:
//   - *Asset: the converted asset
//   - error: error if the decoded graph holds no usable geometry
func convertDecoded(name string, dec *obj.Decoder, scale float32) (*Asset, error) {
	a := &Asset{Name: name}
	matIndex := make(map[string]int)

	for oi := range dec.Objects {
		object := &dec.Objects[oi]
		// one mesh per material used within the object, in face order
		meshByMat := make(map[string]*Mesh)
		var order []string

		for fi := range object.Faces {
			face := &object.Faces[fi]
			if len(face.Vertices) < 3 {
				continue
			}

			m, ok := meshByMat[face.Material]
			if !ok {
				m = &Mesh{
					Name:          meshName(object.Name, face.Material),
					MaterialIndex: resolveMaterial(a, matIndex, dec, face.Material),
					CastShadow:    true,
					ReceiveShadow: true,
				}
				meshByMat[face.Material] = m
				order = append(order, face.Material)
			}

			appendFace(m, dec, face)
		}

		for _, mat := range order {
			m := meshByMat[mat]
			if len(m.Indices) > 0 {
				a.Meshes = append(a.Meshes, *m)
			}
		}
	}

	if len(a.Meshes) == 0 {
		return nil, fmt.Errorf("decoded model %s contains no triangles", name)
	}

	applyScale(a, scale)
	recenter(a)
	return a, nil
}

// meshName builds a stable mesh identifier from the object and material names.
func meshName(object, material string) string {
	if object == "" {
		object = "object"
	}
	if material == "" {
		return object
	}
	return object + "/" + material
}

// resolveMaterial returns the Asset material index for the named library
// material, appending a new MaterialSpec on first use.
func resolveMaterial(a *Asset, index map[string]int, dec *obj.Decoder, name string) int {
	if idx, ok := index[name]; ok {
		return idx
	}

	spec := defaultMaterial
	if mat, ok := dec.Materials[name]; ok && mat != nil {
		spec = MaterialSpec{
			Name:               name,
			BaseColor:          [4]float32{mat.Diffuse.R, mat.Diffuse.G, mat.Diffuse.B, mat.Opacity},
			Metallic:           0,
			Roughness:          roughnessFromShininess(mat.Shininess),
			DiffuseTexturePath: mat.MapKd,
		}
		if spec.BaseColor[3] <= 0 {
			spec.BaseColor[3] = 1
		}
	}

	idx := len(a.Materials)
	a.Materials = append(a.Materials, spec)
	index[name] = idx
	return idx
}

// roughnessFromShininess maps the OBJ specular exponent (Ns, 0..1000) onto
// the engine's roughness factor.
func roughnessFromShininess(shininess float32) float32 {
	if shininess < 0 {
		shininess = 0
	}
	r := 1 - shininess/256
	if r < 0.05 {
		r = 0.05
	}
	if r > 1 {
		r = 1
	}
	return r
}

// appendFace fan-triangulates one decoded face into the mesh's vertex and
// index lists. Corners are emitted as discrete vertices; indices reference
// them sequentially.
func appendFace(m *Mesh, dec *obj.Decoder, face *obj.Face) {
	base := uint32(len(m.Vertices))
	corners := len(face.Vertices)

	nx, ny, nz := faceNormal(dec, face)

	for c := 0; c < corners; c++ {
		vi := face.Vertices[c]
		v := model.GPUVertex{
			Position: [3]float32{
				dec.Vertices[vi*3],
				dec.Vertices[vi*3+1],
				dec.Vertices[vi*3+2],
			},
			Normal:  [3]float32{nx, ny, nz},
			Color:   [4]float32{1, 1, 1, 1},
			Tangent: [4]float32{1, 0, 0, 1},
		}
		if c < len(face.Normals) && face.Normals[c] >= 0 && (face.Normals[c]+1)*3 <= len(dec.Normals) {
			ni := face.Normals[c]
			v.Normal = [3]float32{
				dec.Normals[ni*3],
				dec.Normals[ni*3+1],
				dec.Normals[ni*3+2],
			}
		}
		if c < len(face.Uvs) && face.Uvs[c] >= 0 && (face.Uvs[c]+1)*2 <= len(dec.Uvs) {
			ui := face.Uvs[c]
			v.TexCoord = [2]float32{dec.Uvs[ui*2], dec.Uvs[ui*2+1]}
		}
		m.Vertices = append(m.Vertices, v)
	}

	for c := 1; c < corners-1; c++ {
		m.Indices = append(m.Indices, base, base+uint32(c), base+uint32(c+1))
	}
}

// faceNormal computes the flat geometric normal of a face from its first
// three corners, used when the source file carries no normals.
func faceNormal(dec *obj.Decoder, face *obj.Face) (nx, ny, nz float32) {
	if len(face.Vertices) < 3 {
		return 0, 1, 0
	}
	ax, ay, az := vertexAt(dec, face.Vertices[0])
	bx, by, bz := vertexAt(dec, face.Vertices[1])
	cx, cy, cz := vertexAt(dec, face.Vertices[2])

	ux, uy, uz := bx-ax, by-ay, bz-az
	vx, vy, vz := cx-ax, cy-ay, cz-az

	nx = uy*vz - uz*vy
	ny = uz*vx - ux*vz
	nz = ux*vy - uy*vx

	if lenSq := nx*nx + ny*ny + nz*nz; lenSq > 0 {
		inv := invSqrt(lenSq)
		return nx * inv, ny * inv, nz * inv
	}
	return 0, 1, 0
}

func vertexAt(dec *obj.Decoder, idx int) (x, y, z float32) {
	return dec.Vertices[idx*3], dec.Vertices[idx*3+1], dec.Vertices[idx*3+2]
}

func invSqrt(v float32) float32 {
	return 1 / sqrt32(v)
}

// applyScale multiplies every vertex position by the uniform scale factor.
func applyScale(a *Asset, scale float32) {
	if scale == 0 {
		scale = 1
	}
	for mi := range a.Meshes {
		verts := a.Meshes[mi].Vertices
		for vi := range verts {
			verts[vi].Position[0] *= scale
			verts[vi].Position[1] *= scale
			verts[vi].Position[2] *= scale
		}
	}
}

// recenter computes the axis-aligned bounding box of the scaled geometry and
// translates every position so the box center sits at the origin.
func recenter(a *Asset) {
	min := [3]float32{maxFloat32, maxFloat32, maxFloat32}
	max := [3]float32{-maxFloat32, -maxFloat32, -maxFloat32}

	for mi := range a.Meshes {
		for _, v := range a.Meshes[mi].Vertices {
			for axis := 0; axis < 3; axis++ {
				if v.Position[axis] < min[axis] {
					min[axis] = v.Position[axis]
				}
				if v.Position[axis] > max[axis] {
					max[axis] = v.Position[axis]
				}
			}
		}
	}

	center := [3]float32{
		(min[0] + max[0]) / 2,
		(min[1] + max[1]) / 2,
		(min[2] + max[2]) / 2,
	}

	for mi := range a.Meshes {
		verts := a.Meshes[mi].Vertices
		for vi := range verts {
			verts[vi].Position[0] -= center[0]
			verts[vi].Position[1] -= center[1]
			verts[vi].Position[2] -= center[2]
		}
	}

	for axis := 0; axis < 3; axis++ {
		a.BoundsMin[axis] = min[axis] - center[axis]
		a.BoundsMax[axis] = max[axis] - center[axis]
	}
}
