package landmarks

import (
	"fmt"

	"github.com/Faultbox/procscape/internal/engine/mesh"
	"github.com/Faultbox/procscape/pkg/delaunay"
	"github.com/Faultbox/procscape/pkg/math"
)

// Triangulation is a triangle list over an index-preserving copy of the input points.
type Triangulation struct {
	Points    []math.Vec2
	Triangles [][3]int
}

// Triangulator turns 2D sites into triangles. Implementations must keep input order.
type Triangulator interface {
	Triangulate(points []math.Vec2) (Triangulation, error)
}

// Delaunay is the default Triangulator.
type Delaunay struct{}

// Triangulate implements Triangulator.
func (Delaunay) Triangulate(points []math.Vec2) (Triangulation, error) {
	sites := make([]delaunay.Point, len(points))
	for i, p := range points {
		sites[i] = delaunay.Point{X: float64(p.X), Y: float64(p.Y)}
	}

	res, err := delaunay.Triangulate(sites)
	if err != nil {
		return Triangulation{}, err
	}

	out := Triangulation{
		Points:    append([]math.Vec2(nil), points...),
		Triangles: make([][3]int, len(res.Triangles)),
	}
	for i, t := range res.Triangles {
		out.Triangles[i] = [3]int(t)
	}
	return out, nil
}

// checkTriangulation rejects results that broke the index-preserving contract.
func checkTriangulation(t Triangulation, n int) error {
	if len(t.Points) != n {
		return fmt.Errorf("%w: triangulator returned %d points for %d sites", mesh.ErrDegenerateSample, len(t.Points), n)
	}
	if len(t.Triangles) == 0 {
		return fmt.Errorf("%w: triangulation has no triangles", mesh.ErrDegenerateSample)
	}
	for i, tri := range t.Triangles {
		for _, idx := range tri {
			if idx < 0 || idx >= n {
				return fmt.Errorf("%w: triangle %d refers to point %d of %d", mesh.ErrDegenerateSample, i, idx, n)
			}
		}
	}
	return nil
}
