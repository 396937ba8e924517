package mesh

import (
	"github.com/Faultbox/procscape/pkg/math"
)

// Builder accumulates vertices and primitives for a single Buffer.
type Builder struct {
	name       string
	vertices   []Vertex
	primitives []Primitive
}

// NewBuilder creates a builder for a buffer with the given name.
func NewBuilder(name string) *Builder {
	return &Builder{name: name}
}

// Grow reserves room for n more vertices.
func (b *Builder) Grow(n int) {
	if cap(b.vertices)-len(b.vertices) < n {
		grown := make([]Vertex, len(b.vertices), len(b.vertices)+n)
		copy(grown, b.vertices)
		b.vertices = grown
	}
}

// AddVertex appends a vertex and returns its index.
func (b *Builder) AddVertex(p math.Vec3, c Color) uint32 {
	b.vertices = append(b.vertices, Vertex{Position: p.Array(), Color: c})
	return uint32(len(b.vertices) - 1)
}

// Len returns the number of vertices added so far.
func (b *Builder) Len() int {
	return len(b.vertices)
}

// AddPrimitive appends a primitive. Indices are copied.
func (b *Builder) AddPrimitive(t Topology, indices ...uint32) {
	b.primitives = append(b.primitives, Primitive{
		Topology: t,
		Indices:  append([]uint32(nil), indices...),
	})
}

// Build returns the finished buffer. The builder should not be reused.
func (b *Builder) Build() *Buffer {
	return &Buffer{
		Name:       b.name,
		Vertices:   b.vertices,
		Primitives: b.primitives,
	}
}
