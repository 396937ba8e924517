package scene

import "github.com/Faultbox/procscape/internal/engine/mesh"

// Stats summarizes generated geometry.
type Stats struct {
	Buffers        int
	Vertices       int
	Triangles      int
	TriangleStrips int
	LineStrips     int
}

// Add accumulates b into s.
func (s *Stats) Add(b *mesh.Buffer) {
	s.Buffers++
	s.Vertices += b.VertexCount()
	s.Triangles += b.TriangleCount()
	s.TriangleStrips += b.Count(mesh.TriangleStrip)
	s.LineStrips += b.Count(mesh.LineStrip)
}

// StatsOf summarizes buffers.
func StatsOf(buffers []*mesh.Buffer) Stats {
	var s Stats
	for _, b := range buffers {
		s.Add(b)
	}
	return s
}

// Stats summarizes the whole scene.
func (s *Scene) Stats() Stats {
	return StatsOf(s.Meshes())
}
