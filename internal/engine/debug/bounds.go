// Package debug provides debug overlays and screenshot capture for the viewer.
package debug

import (
	"github.com/Faultbox/procscape/internal/engine/mesh"
	"github.com/Faultbox/procscape/pkg/math"
)

// BoundsColor is the default overlay color.
var BoundsColor = mesh.Color{1, 0.8, 0, 1}

// BoundsMesh returns the 12 edges of b as line strips: the bottom and top rings closed
// on themselves, plus four verticals.
func BoundsMesh(name string, b mesh.Bounds, padding float32, color mesh.Color) *mesh.Buffer {
	lo := math.Vec3{X: b.Min[0] - padding, Y: b.Min[1] - padding, Z: b.Min[2] - padding}
	hi := math.Vec3{X: b.Max[0] + padding, Y: b.Max[1] + padding, Z: b.Max[2] + padding}

	builder := mesh.NewBuilder(name)
	builder.Grow(8)
	var corner [8]uint32
	for i := range corner {
		p := lo
		if i&1 != 0 {
			p.X = hi.X
		}
		if i&2 != 0 {
			p.Y = hi.Y
		}
		if i&4 != 0 {
			p.Z = hi.Z
		}
		corner[i] = builder.AddVertex(p, color)
	}

	// Corners 0,1,3,2 walk one face around; +4 is the same corner on top.
	builder.AddPrimitive(mesh.LineStrip, corner[0], corner[1], corner[3], corner[2], corner[0])
	builder.AddPrimitive(mesh.LineStrip, corner[4], corner[5], corner[7], corner[6], corner[4])
	for _, i := range []int{0, 1, 2, 3} {
		builder.AddPrimitive(mesh.LineStrip, corner[i], corner[i+4])
	}
	return builder.Build()
}
