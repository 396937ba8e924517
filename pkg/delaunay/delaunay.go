// Package delaunay triangulates 2D point sets.
//
// The result is index-preserving: Triangulation.Points is the input slice and every
// triangle refers to positions in it. Triangles cover the whole convex hull.
package delaunay

import (
	"cmp"
	"errors"
	"slices"
)

var (
	ErrTooFewPoints = errors.New("delaunay: at least 3 points are required")
	ErrCollinear    = errors.New("delaunay: points are collinear or coincident")
)

// Point is a 2D input site.
type Point struct {
	X, Y float64
}

// Triangle holds three indices into Triangulation.Points, counter-clockwise.
type Triangle [3]int

// Triangulation is the output of Triangulate.
type Triangulation struct {
	Points    []Point
	Triangles []Triangle
}

// edge is directed; each triangle owns its three edges in counter-clockwise order.
type edge struct {
	a, b int
}

type builder struct {
	pts   []Point
	tris  []Triangle
	owner map[edge]int
	hull  []int // counter-clockwise
}

// Triangulate computes the Delaunay triangulation of points.
//
// Sites are inserted in lexicographic order, so each new site lies outside the current
// hull. It is joined to every hull edge it sees and the new edges are legalised by
// flipping. Exact duplicates of an earlier site belong to no triangle.
func Triangulate(points []Point) (*Triangulation, error) {
	if len(points) < 3 {
		return nil, ErrTooFewPoints
	}

	order := make([]int, len(points))
	for i := range order {
		order[i] = i
	}
	slices.SortFunc(order, func(i, j int) int {
		if c := cmp.Compare(points[i].X, points[j].X); c != 0 {
			return c
		}
		if c := cmp.Compare(points[i].Y, points[j].Y); c != 0 {
			return c
		}
		return cmp.Compare(i, j)
	})

	unique := order[:1]
	for _, idx := range order[1:] {
		if points[idx] != points[unique[len(unique)-1]] {
			unique = append(unique, idx)
		}
	}

	// The first site off the line through the first two seeds the triangulation.
	k := 2
	for k < len(unique) && orientation(points[unique[0]], points[unique[1]], points[unique[k]]) == 0 {
		k++
	}
	if k >= len(unique) {
		return nil, ErrCollinear
	}

	b := &builder{
		pts:   points,
		owner: make(map[edge]int, 6*len(unique)),
	}
	b.seed(unique[:k], unique[k])
	for _, idx := range unique[k+1:] {
		b.insert(idx)
	}

	return &Triangulation{Points: points, Triangles: b.tris}, nil
}

// seed fans apex over the sorted collinear run line. That triangulation is unique.
func (b *builder) seed(line []int, apex int) {
	line = slices.Clone(line)
	if orientation(b.pts[line[0]], b.pts[line[1]], b.pts[apex]) < 0 {
		slices.Reverse(line)
	}
	for i := 0; i+1 < len(line); i++ {
		b.add(Triangle{line[i], line[i+1], apex})
	}
	b.hull = append(line, apex)
}

func (b *builder) insert(p int) {
	n := len(b.hull)
	visible := make([]bool, n)
	for i := range n {
		if orientation(b.pts[b.hull[i]], b.pts[b.hull[(i+1)%n]], b.pts[p]) < 0 {
			visible[i] = true
		}
	}

	start := -1
	for i := range n {
		if visible[i] && !visible[(i+n-1)%n] {
			start = i
			break
		}
	}
	if start < 0 {
		return
	}

	m := 0
	for visible[(start+m)%n] {
		u, v := b.hull[(start+m)%n], b.hull[(start+m+1)%n]
		b.add(Triangle{u, p, v})
		b.legalize(p, u, v)
		m++
	}

	hull := make([]int, 0, n-m+2)
	for i := start + m; i <= start+n; i++ {
		hull = append(hull, b.hull[i%n])
	}
	b.hull = append(hull, p)
}

// legalize checks the edge u-v of triangle (u, p, v) against the triangle across it and
// flips while the opposite vertex lies inside the circumcircle.
func (b *builder) legalize(p, u, v int) {
	t2, ok := b.owner[edge{u, v}]
	if !ok {
		return
	}
	t1 := b.owner[edge{v, u}]
	q := third(b.tris[t2], u, v)
	if !inCircle(b.pts[u], b.pts[p], b.pts[v], b.pts[q]) {
		return
	}

	b.unlink(t1)
	b.unlink(t2)
	b.tris[t1] = Triangle{u, p, q}
	b.tris[t2] = Triangle{p, v, q}
	b.link(t1)
	b.link(t2)

	b.legalize(p, u, q)
	b.legalize(p, q, v)
}

func (b *builder) add(t Triangle) {
	b.tris = append(b.tris, t)
	b.link(len(b.tris) - 1)
}

func (b *builder) link(i int) {
	t := b.tris[i]
	for j := range 3 {
		b.owner[edge{t[j], t[(j+1)%3]}] = i
	}
}

func (b *builder) unlink(i int) {
	t := b.tris[i]
	for j := range 3 {
		delete(b.owner, edge{t[j], t[(j+1)%3]})
	}
}

func third(t Triangle, u, v int) int {
	for _, idx := range t {
		if idx != u && idx != v {
			return idx
		}
	}
	return -1
}

// orientation is twice the signed area of abc; positive when counter-clockwise.
func orientation(a, b, c Point) float64 {
	return (b.X-a.X)*(c.Y-a.Y) - (c.X-a.X)*(b.Y-a.Y)
}

// inCircle reports whether d lies strictly inside the circumcircle of the
// counter-clockwise triangle abc.
func inCircle(a, b, c, d Point) bool {
	adx, ady := a.X-d.X, a.Y-d.Y
	bdx, bdy := b.X-d.X, b.Y-d.Y
	cdx, cdy := c.X-d.X, c.Y-d.Y

	det := (adx*adx+ady*ady)*(bdx*cdy-cdx*bdy) -
		(bdx*bdx+bdy*bdy)*(adx*cdy-cdx*ady) +
		(cdx*cdx+cdy*cdy)*(adx*bdy-bdx*ady)
	return det > 0
}
