package mesh

// DrawRange is a contiguous run of indices drawn with one topology.
type DrawRange struct {
	Topology Topology
	Offset   int // in indices
	Count    int
}

// Flatten concatenates the indices of all primitives in order and returns one
// range per primitive, the layout an element buffer upload needs.
func (b *Buffer) Flatten() ([]uint32, []DrawRange) {
	total := 0
	for _, p := range b.Primitives {
		total += len(p.Indices)
	}

	indices := make([]uint32, 0, total)
	ranges := make([]DrawRange, 0, len(b.Primitives))
	for _, p := range b.Primitives {
		if len(p.Indices) == 0 {
			continue
		}
		ranges = append(ranges, DrawRange{
			Topology: p.Topology,
			Offset:   len(indices),
			Count:    len(p.Indices),
		})
		indices = append(indices, p.Indices...)
	}
	return indices, ranges
}

// Interleave packs vertices as x,y,z,r,g,b,a floats.
func (b *Buffer) Interleave() []float32 {
	out := make([]float32, 0, len(b.Vertices)*FloatsPerVertex)
	for _, v := range b.Vertices {
		out = append(out, v.Position[0], v.Position[1], v.Position[2],
			v.Color[0], v.Color[1], v.Color[2], v.Color[3])
	}
	return out
}

// FloatsPerVertex is the stride of Interleave in float32s.
const FloatsPerVertex = 7
