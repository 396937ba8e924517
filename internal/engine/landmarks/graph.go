package landmarks

import "sort"

// Edge is a directed pair of node indices.
type Edge struct {
	A, B int
}

// Graph is the adjacency derived from a triangle list. Neighbor sets are deduplicated;
// the edge list is not: every triangle contributes its three sides, so an edge shared by
// two triangles appears twice.
type Graph struct {
	neighbors []map[int]struct{}
	edges     []Edge
}

// NewGraph builds the graph over nodeCount nodes from triangles.
func NewGraph(nodeCount int, triangles [][3]int) *Graph {
	g := &Graph{
		neighbors: make([]map[int]struct{}, nodeCount),
		edges:     make([]Edge, 0, 3*len(triangles)),
	}
	for i := range g.neighbors {
		g.neighbors[i] = make(map[int]struct{})
	}

	for _, t := range triangles {
		for _, e := range [3]Edge{{t[0], t[1]}, {t[1], t[2]}, {t[2], t[0]}} {
			g.neighbors[e.A][e.B] = struct{}{}
			g.neighbors[e.B][e.A] = struct{}{}
			g.edges = append(g.edges, e)
		}
	}
	return g
}

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int { return len(g.neighbors) }

// Neighbors returns the sorted neighbor set of node i.
func (g *Graph) Neighbors(i int) []int {
	out := make([]int, 0, len(g.neighbors[i]))
	for n := range g.neighbors[i] {
		out = append(out, n)
	}
	sort.Ints(out)
	return out
}

// Degree returns the size of node i's neighbor set.
func (g *Graph) Degree(i int) int { return len(g.neighbors[i]) }

// Edges returns the raw directed edge list, three per triangle.
func (g *Graph) Edges() []Edge { return g.edges }

// RawDegree counts edge-list entries touching node i.
func (g *Graph) RawDegree(i int) int {
	n := 0
	for _, e := range g.edges {
		if e.A == i || e.B == i {
			n++
		}
	}
	return n
}

// UniqueEdges returns each undirected edge once, as (low, high), sorted.
func (g *Graph) UniqueEdges() []Edge {
	var out []Edge
	for a, set := range g.neighbors {
		for b := range set {
			if a < b {
				out = append(out, Edge{a, b})
			}
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].A != out[j].A {
			return out[i].A < out[j].A
		}
		return out[i].B < out[j].B
	})
	return out
}
