package lanegeom

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestMeshWriter(t *testing.T) {
	writer := &meshWriter{}
	a := writer.addVertex(r3.Vec{X: 0, Y: 0}, 0, 0)
	b := writer.addVertex(r3.Vec{X: 0, Y: -1}, 1, 0)
	c := writer.addVertex(r3.Vec{X: 1, Y: 0}, 0, 1)
	d := writer.addVertex(r3.Vec{X: 1, Y: -1}, 1, 1)
	lonely := writer.addVertex(r3.Vec{X: 5, Y: 5, Z: 5}, 0, 0)
	writer.addQuad(a, b, c, d, false)

	mesh := writer.buffers()
	assert.Equal(t, 5, mesh.VertexCount())
	assert.Equal(t, 2, mesh.TriangleCount())
	assert.Equal(t, []uint32{0, 1, 2, 1, 3, 2}, mesh.Indices)
	for i := 0; i < 4; i++ {
		assert.Equal(t, r3.Vec{Z: 1}, mesh.Normal(i))
	}
	assert.Equal(t, r3.Vec{Z: 1}, mesh.Normal(int(lonely)), "vertex without faces gets the up vector")

	flipped := &meshWriter{}
	flipped.addQuad(0, 1, 2, 3, true)
	assert.Equal(t, []uint32{0, 2, 1, 1, 2, 3}, flipped.indices)
}

func TestMeshAppend(t *testing.T) {
	first := &MeshBuffers{
		Positions: []float32{0, 0, 0, 1, 0, 0, 0, 1, 0},
		Normals:   []float32{0, 0, 1, 0, 0, 1, 0, 0, 1},
		UVs:       []float32{0, 0, 1, 0, 0, 1},
		Indices:   []uint32{0, 1, 2},
	}
	second := &MeshBuffers{
		Positions: []float32{5, 5, 0, 6, 5, 0, 5, 6, 0},
		Normals:   []float32{0, 0, 1, 0, 0, 1, 0, 0, 1},
		UVs:       []float32{0, 0, 1, 0, 0, 1},
		Indices:   []uint32{0, 1, 2},
	}
	merged := &MeshBuffers{}
	merged.Append(first)
	merged.Append(second)
	assert.Equal(t, 6, merged.VertexCount())
	assert.Equal(t, []uint32{0, 1, 2, 3, 4, 5}, merged.Indices)
	assert.Equal(t, r3.Vec{X: 5, Y: 5}, merged.Vertex(3))
	assert.Equal(t, "MeshBuffers vertices=6 triangles=2", merged.String())
}
