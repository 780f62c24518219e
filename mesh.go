package lanegeom

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"
)

// MeshBuffers holds flat vertex data ready for a renderer: 3 floats per position and normal,
// 2 floats per uv and 3 indices per triangle
type MeshBuffers struct {
	Positions []float32
	Normals   []float32
	UVs       []float32
	Indices   []uint32
}

// String returns pretty printed value for MeshBuffers
func (mesh *MeshBuffers) String() string {
	return fmt.Sprintf("MeshBuffers vertices=%d triangles=%d", mesh.VertexCount(), mesh.TriangleCount())
}

// VertexCount returns number of vertices
func (mesh *MeshBuffers) VertexCount() int {
	return len(mesh.Positions) / 3
}

// TriangleCount returns number of triangles
func (mesh *MeshBuffers) TriangleCount() int {
	return len(mesh.Indices) / 3
}

// Empty tells whether mesh has no triangles
func (mesh *MeshBuffers) Empty() bool {
	return len(mesh.Indices) == 0
}

// Vertex returns i-th position
func (mesh *MeshBuffers) Vertex(i int) r3.Vec {
	return r3.Vec{X: float64(mesh.Positions[3*i]), Y: float64(mesh.Positions[3*i+1]), Z: float64(mesh.Positions[3*i+2])}
}

// Normal returns i-th normal
func (mesh *MeshBuffers) Normal(i int) r3.Vec {
	return r3.Vec{X: float64(mesh.Normals[3*i]), Y: float64(mesh.Normals[3*i+1]), Z: float64(mesh.Normals[3*i+2])}
}

// Append concatenates other mesh into this one, offsetting its indices
func (mesh *MeshBuffers) Append(other *MeshBuffers) {
	base := uint32(mesh.VertexCount())
	mesh.Positions = append(mesh.Positions, other.Positions...)
	mesh.Normals = append(mesh.Normals, other.Normals...)
	mesh.UVs = append(mesh.UVs, other.UVs...)
	for _, idx := range other.Indices {
		mesh.Indices = append(mesh.Indices, base+idx)
	}
}

// meshWriter accumulates vertices and triangles in float64 and flushes them into MeshBuffers
type meshWriter struct {
	positions []r3.Vec
	uvs       [][2]float64
	indices   []uint32
}

func (writer *meshWriter) addVertex(pos r3.Vec, u, v float64) uint32 {
	writer.positions = append(writer.positions, pos)
	writer.uvs = append(writer.uvs, [2]float64{u, v})
	return uint32(len(writer.positions) - 1)
}

func (writer *meshWriter) addTriangle(a, b, c uint32) {
	writer.indices = append(writer.indices, a, b, c)
}

// addQuad emits quad a-b-c-d where a,b lie on one station and c,d on the next one.
// flip mirrors winding order
func (writer *meshWriter) addQuad(a, b, c, d uint32, flip bool) {
	if flip {
		writer.addTriangle(a, c, b)
		writer.addTriangle(b, c, d)
		return
	}
	writer.addTriangle(a, b, c)
	writer.addTriangle(b, d, c)
}

// buffers recomputes vertex normals as normalized sums of adjacent face normals and flattens everything
func (writer *meshWriter) buffers() *MeshBuffers {
	normals := make([]r3.Vec, len(writer.positions))
	for i := 0; i+2 < len(writer.indices); i += 3 {
		a, b, c := writer.indices[i], writer.indices[i+1], writer.indices[i+2]
		face := r3.Cross(r3.Sub(writer.positions[b], writer.positions[a]), r3.Sub(writer.positions[c], writer.positions[a]))
		normals[a] = r3.Add(normals[a], face)
		normals[b] = r3.Add(normals[b], face)
		normals[c] = r3.Add(normals[c], face)
	}
	mesh := &MeshBuffers{
		Positions: make([]float32, 0, 3*len(writer.positions)),
		Normals:   make([]float32, 0, 3*len(writer.positions)),
		UVs:       make([]float32, 0, 2*len(writer.positions)),
		Indices:   writer.indices,
	}
	for i, pos := range writer.positions {
		normal := r3.Vec{Z: 1}
		if r3.Norm(normals[i]) > 0 {
			normal = r3.Unit(normals[i])
		}
		mesh.Positions = append(mesh.Positions, float32(pos.X), float32(pos.Y), float32(pos.Z))
		mesh.Normals = append(mesh.Normals, float32(normal.X), float32(normal.Y), float32(normal.Z))
		mesh.UVs = append(mesh.UVs, float32(writer.uvs[i][0]), float32(writer.uvs[i][1]))
	}
	return mesh
}
