package mesh

import (
	"testing"

	"github.com/Faultbox/procscape/pkg/math"
)

func quadStrip() *Buffer {
	b := NewBuilder("quad")
	white := Color{1, 1, 1, 1}
	b.AddVertex(math.Vec3{X: 0, Y: 0, Z: 0}, white)
	b.AddVertex(math.Vec3{X: 0, Y: 1, Z: 0}, white)
	b.AddVertex(math.Vec3{X: 1, Y: 0, Z: 2}, white)
	b.AddVertex(math.Vec3{X: 1, Y: 1, Z: -1}, white)
	b.AddPrimitive(TriangleStrip, 0, 1, 2, 3)
	b.AddPrimitive(LineStrip, 0, 1, 3, 2, 0)
	return b.Build()
}

func TestBuilder(t *testing.T) {
	buf := quadStrip()

	if buf.Name != "quad" {
		t.Errorf("expected name quad, got %s", buf.Name)
	}
	if buf.VertexCount() != 4 {
		t.Errorf("expected 4 vertices, got %d", buf.VertexCount())
	}
	if buf.Count(TriangleStrip) != 1 || buf.Count(LineStrip) != 1 {
		t.Errorf("expected one strip of each kind, got %d/%d", buf.Count(TriangleStrip), buf.Count(LineStrip))
	}
	if err := buf.Validate(); err != nil {
		t.Errorf("Validate failed: %v", err)
	}
}

func TestAddPrimitiveCopiesIndices(t *testing.T) {
	b := NewBuilder("copy")
	b.AddVertex(math.Vec3{}, Color{})
	b.AddVertex(math.Vec3{}, Color{})
	idx := []uint32{0, 1}
	b.AddPrimitive(LineStrip, idx...)
	idx[0] = 99

	if got := b.Build().Primitives[0].Indices[0]; got != 0 {
		t.Errorf("primitive indices alias caller slice, got %d", got)
	}
}

func TestAllIteratesInOrder(t *testing.T) {
	buf := quadStrip()

	next := 0
	for i, v := range buf.All() {
		if i != next {
			t.Fatalf("expected index %d, got %d", next, i)
		}
		if v != buf.Vertices[i] {
			t.Errorf("vertex %d mismatch", i)
		}
		next++
	}
	if next != 4 {
		t.Errorf("iterated %d vertices, want 4", next)
	}
}

func TestTriangleCount(t *testing.T) {
	tests := []struct {
		name    string
		indices []uint32
		want    int
	}{
		{"quad", []uint32{0, 1, 2, 3}, 2},
		{"too short", []uint32{0, 1}, 0},
		{"degenerate stitch", []uint32{0, 1, 1, 2}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBuilder(tt.name)
			for i := 0; i < 4; i++ {
				b.AddVertex(math.Vec3{X: float32(i)}, Color{})
			}
			b.AddPrimitive(TriangleStrip, tt.indices...)
			if got := b.Build().TriangleCount(); got != tt.want {
				t.Errorf("TriangleCount() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestValidateOutOfRange(t *testing.T) {
	b := NewBuilder("bad")
	b.AddVertex(math.Vec3{}, Color{})
	b.AddPrimitive(LineStrip, 0, 1)

	if err := b.Build().Validate(); err == nil {
		t.Error("expected error for out-of-range index")
	}
}

func TestBounds(t *testing.T) {
	bounds := quadStrip().Bounds()

	if bounds.Min != [3]float32{0, 0, -1} {
		t.Errorf("unexpected min %v", bounds.Min)
	}
	if bounds.Max != [3]float32{1, 1, 2} {
		t.Errorf("unexpected max %v", bounds.Max)
	}
	if c := bounds.Center(); c != [3]float32{0.5, 0.5, 0.5} {
		t.Errorf("unexpected center %v", c)
	}
}

func TestBoundsOfSkipsEmpty(t *testing.T) {
	empty := NewBuilder("empty").Build()
	bounds := BoundsOf([]*Buffer{empty, quadStrip(), nil})

	if bounds.Min != [3]float32{0, 0, -1} || bounds.Max != [3]float32{1, 1, 2} {
		t.Errorf("unexpected bounds %v", bounds)
	}
}

func TestFlatten(t *testing.T) {
	indices, ranges := quadStrip().Flatten()

	if len(indices) != 9 {
		t.Fatalf("expected 9 indices, got %d", len(indices))
	}
	want := []DrawRange{
		{Topology: TriangleStrip, Offset: 0, Count: 4},
		{Topology: LineStrip, Offset: 4, Count: 5},
	}
	if len(ranges) != len(want) {
		t.Fatalf("expected %d ranges, got %d", len(want), len(ranges))
	}
	for i := range want {
		if ranges[i] != want[i] {
			t.Errorf("range %d = %+v, want %+v", i, ranges[i], want[i])
		}
	}
	if indices[4] != 0 || indices[8] != 0 {
		t.Errorf("line strip indices misplaced: %v", indices)
	}
}

func TestInterleave(t *testing.T) {
	buf := quadStrip()
	data := buf.Interleave()

	if len(data) != 4*FloatsPerVertex {
		t.Fatalf("expected %d floats, got %d", 4*FloatsPerVertex, len(data))
	}
	// Vertex 2 position then color.
	off := 2 * FloatsPerVertex
	if data[off] != 1 || data[off+1] != 0 || data[off+2] != 2 || data[off+6] != 1 {
		t.Errorf("unexpected vertex 2 layout: %v", data[off:off+FloatsPerVertex])
	}
}

func TestTopologyString(t *testing.T) {
	if TriangleStrip.String() != "triangle-strip" || LineStrip.String() != "line-strip" {
		t.Errorf("unexpected names %s %s", TriangleStrip, LineStrip)
	}
}
