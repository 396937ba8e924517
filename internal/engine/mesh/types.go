// Package mesh defines the vertex/primitive buffers every generator emits and the host uploads.
package mesh

import (
	"fmt"
	"iter"
)

// Topology is the primitive kind of an index list.
type Topology int

const (
	TriangleStrip Topology = iota
	LineStrip
)

func (t Topology) String() string {
	switch t {
	case TriangleStrip:
		return "triangle-strip"
	case LineStrip:
		return "line-strip"
	default:
		return fmt.Sprintf("topology(%d)", int(t))
	}
}

// Color is linear RGBA.
type Color [4]float32

// Vertex is a position with a color.
type Vertex struct {
	Position [3]float32
	Color    Color
}

// Primitive is one strip of vertex indices.
type Primitive struct {
	Topology Topology
	Indices  []uint32
}

// Buffer holds a complete mesh ready for upload. Vertex index is insertion order.
// Buffers are built once by a Builder and must not be modified afterwards.
type Buffer struct {
	Name       string
	Vertices   []Vertex
	Primitives []Primitive
}

// Bounds holds an axis-aligned bounding box.
type Bounds struct {
	Min [3]float32
	Max [3]float32
}

// Producer is implemented by every generator: buildings, terrain and landmarks.
type Producer interface {
	Meshes() []*Buffer
}

// VertexCount returns the number of vertices.
func (b *Buffer) VertexCount() int {
	return len(b.Vertices)
}

// All iterates (index, vertex) pairs in insertion order.
func (b *Buffer) All() iter.Seq2[int, Vertex] {
	return func(yield func(int, Vertex) bool) {
		for i, v := range b.Vertices {
			if !yield(i, v) {
				return
			}
		}
	}
}

// Count returns how many primitives of the given topology the buffer holds.
func (b *Buffer) Count(t Topology) int {
	n := 0
	for _, p := range b.Primitives {
		if p.Topology == t {
			n++
		}
	}
	return n
}

// TriangleCount returns the number of non-degenerate triangles described by the triangle strips.
func (b *Buffer) TriangleCount() int {
	n := 0
	for _, p := range b.Primitives {
		if p.Topology != TriangleStrip {
			continue
		}
		for i := 2; i < len(p.Indices); i++ {
			a, c, d := p.Indices[i-2], p.Indices[i-1], p.Indices[i]
			if a != c && c != d && a != d {
				n++
			}
		}
	}
	return n
}

// Bounds returns the bounding box of all vertices. An empty buffer yields zero bounds.
func (b *Buffer) Bounds() Bounds {
	var bounds Bounds
	for i, v := range b.Vertices {
		if i == 0 {
			bounds = Bounds{Min: v.Position, Max: v.Position}
			continue
		}
		bounds = bounds.Extend(v.Position)
	}
	return bounds
}

// Validate checks that every primitive index refers to an existing vertex.
func (b *Buffer) Validate() error {
	n := uint32(len(b.Vertices))
	for pi, p := range b.Primitives {
		for _, idx := range p.Indices {
			if idx >= n {
				return fmt.Errorf("%s: primitive %d (%s) index %d out of range [0,%d)", b.Name, pi, p.Topology, idx, n)
			}
		}
	}
	return nil
}

// Extend grows the box to contain p.
func (bb Bounds) Extend(p [3]float32) Bounds {
	for i := 0; i < 3; i++ {
		if p[i] < bb.Min[i] {
			bb.Min[i] = p[i]
		}
		if p[i] > bb.Max[i] {
			bb.Max[i] = p[i]
		}
	}
	return bb
}

// Union returns the box containing both bb and other.
func (bb Bounds) Union(other Bounds) Bounds {
	return bb.Extend(other.Min).Extend(other.Max)
}

// Center returns the midpoint of the box.
func (bb Bounds) Center() [3]float32 {
	return [3]float32{
		(bb.Min[0] + bb.Max[0]) / 2,
		(bb.Min[1] + bb.Max[1]) / 2,
		(bb.Min[2] + bb.Max[2]) / 2,
	}
}

// BoundsOf returns the union of the bounds of all non-empty buffers.
func BoundsOf(buffers []*Buffer) Bounds {
	var bounds Bounds
	first := true
	for _, b := range buffers {
		if b == nil || len(b.Vertices) == 0 {
			continue
		}
		if first {
			bounds = b.Bounds()
			first = false
			continue
		}
		bounds = bounds.Union(b.Bounds())
	}
	return bounds
}
