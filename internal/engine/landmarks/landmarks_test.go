package landmarks

import (
	"errors"
	gomath "math"
	"math/rand"
	"testing"

	"github.com/Faultbox/procscape/internal/engine/mesh"
	"github.com/Faultbox/procscape/internal/engine/noise"
	"github.com/Faultbox/procscape/pkg/delaunay"
	"github.com/Faultbox/procscape/pkg/math"
)

type flatField float64

func (f flatField) Elevation(x, y float64) float64 { return float64(f) }

// slopeField rises along X.
type slopeField struct{ grade float64 }

func (s slopeField) Elevation(x, y float64) float64 { return s.grade * x }

func wireConfig() Config {
	cfg := DefaultConfig()
	cfg.Mode = ModeWireframe
	return cfg
}

func TestPointCount(t *testing.T) {
	tests := []struct {
		diameter, density float64
		want              int
	}{
		{10000, 2.5 / 1000000, 196},
		{2, 1 / gomath.Pi, 1},
		{100, 0, 0},
	}
	for _, tt := range tests {
		if got := PointCount(tt.diameter, tt.density); got != tt.want {
			t.Errorf("PointCount(%g, %g) = %d, want %d", tt.diameter, tt.density, got, tt.want)
		}
	}
}

func TestScatterStaysInDisk(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	const r = 500.0
	var outer int
	for _, p := range Scatter(rng, 5000, r) {
		d := float64(p.Length())
		if d > r+1e-3 {
			t.Fatalf("point %v at distance %g outside radius %g", p, d, r)
		}
		if d > r/2 {
			outer++
		}
	}
	// Uniform by area puts 3/4 of the points in the outer half of the radius.
	if frac := float64(outer) / 5000; frac < 0.7 || frac > 0.8 {
		t.Errorf("outer fraction = %g, want about 0.75", frac)
	}
}

func TestEdgeListIsThreePerTriangle(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	l, err := New(flatField(0), Delaunay{}, rng, wireConfig())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	g := l.Graph()
	if got, want := len(g.Edges()), 3*len(l.Triangles()); got != want {
		t.Errorf("edges = %d, want %d", got, want)
	}
	if g.NodeCount() != len(l.Points()) {
		t.Errorf("NodeCount() = %d, want %d", g.NodeCount(), len(l.Points()))
	}
	for i := 0; i < g.NodeCount(); i++ {
		if g.Degree(i) > g.RawDegree(i) {
			t.Errorf("node %d: degree %d > raw degree %d", i, g.Degree(i), g.RawDegree(i))
		}
		if g.Degree(i) == 0 {
			t.Errorf("node %d is isolated", i)
		}
	}
}

func TestGraphDedup(t *testing.T) {
	// Two triangles sharing edge 1-2.
	g := NewGraph(4, [][3]int{{0, 1, 2}, {2, 1, 3}})

	if got := len(g.Edges()); got != 6 {
		t.Errorf("len(Edges()) = %d, want 6", got)
	}
	if got := g.Neighbors(1); len(got) != 3 || got[0] != 0 || got[1] != 2 || got[2] != 3 {
		t.Errorf("Neighbors(1) = %v, want [0 2 3]", got)
	}
	if g.RawDegree(1) != 4 {
		t.Errorf("RawDegree(1) = %d, want 4", g.RawDegree(1))
	}
	unique := g.UniqueEdges()
	want := []Edge{{0, 1}, {0, 2}, {1, 2}, {1, 3}, {2, 3}}
	if len(unique) != len(want) {
		t.Fatalf("UniqueEdges() = %v, want %v", unique, want)
	}
	for i := range want {
		if unique[i] != want[i] {
			t.Errorf("UniqueEdges()[%d] = %v, want %v", i, unique[i], want[i])
		}
	}
}

func TestWireframe(t *testing.T) {
	sites := []math.Vec2{{X: 0, Y: 0}, {X: 100, Y: 0}, {X: 0, Y: 100}, {X: 100, Y: 100}}
	cfg := wireConfig()
	cfg.ElevationOffset = 50

	l, err := NewFromSites(flatField(10), Delaunay{}, sites, cfg)
	if err != nil {
		t.Fatalf("NewFromSites() error = %v", err)
	}

	buf := l.Mesh()
	if buf.VertexCount() != 4 {
		t.Errorf("VertexCount() = %d, want 4", buf.VertexCount())
	}
	if len(buf.Primitives) != len(l.Triangles()) {
		t.Fatalf("primitives = %d, want one per triangle (%d)", len(buf.Primitives), len(l.Triangles()))
	}
	for i, p := range buf.Primitives {
		if p.Topology != mesh.LineStrip {
			t.Errorf("primitive %d topology = %v, want line strip", i, p.Topology)
		}
		if len(p.Indices) != 4 || p.Indices[0] != p.Indices[3] {
			t.Errorf("primitive %d indices = %v, want closed a,b,c,a", i, p.Indices)
		}
	}
	for i, v := range buf.All() {
		if v.Position[2] != 60 {
			t.Errorf("vertex %d z = %g, want 60", i, v.Position[2])
		}
		if v.Color != wireColor {
			t.Errorf("vertex %d color = %v, want %v", i, v.Color, wireColor)
		}
	}
	if err := buf.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}

func TestRoadRibbon(t *testing.T) {
	rc := DefaultRoadConfig()
	tests := []struct {
		name     string
		b        math.Vec3
		segments int
	}{
		{"short", math.Vec3{X: 10}, 2},
		{"hundred", math.Vec3{X: 100}, 4},
		{"diagonal", math.Vec3{X: 300, Y: 400}, 20},
		{"round down", math.Vec3{Y: 62}, 2},
		{"round up", math.Vec3{Y: 88}, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := mesh.NewBuilder("road")
			if err := addRibbon(b, flatField(5), math.Vec3{Z: 5}, tt.b, rc); err != nil {
				t.Fatalf("addRibbon() error = %v", err)
			}
			buf := b.Build()

			if got, want := buf.VertexCount(), 2*(tt.segments+1); got != want {
				t.Errorf("VertexCount() = %d, want %d", got, want)
			}
			if len(buf.Primitives) != 1 || buf.Primitives[0].Topology != mesh.TriangleStrip {
				t.Fatalf("primitives = %+v, want one triangle strip", buf.Primitives)
			}
			if got := len(buf.Primitives[0].Indices); got != buf.VertexCount() {
				t.Errorf("strip length = %d, want %d", got, buf.VertexCount())
			}

			for k := 0; k < buf.VertexCount(); k += 2 {
				l, r := buf.Vertices[k].Position, buf.Vertices[k+1].Position
				width := gomath.Hypot(float64(l[0]-r[0]), float64(l[1]-r[1]))
				if gomath.Abs(width-rc.Width) > 1e-3 {
					t.Errorf("probe %d rail distance = %g, want %g", k/2, width, rc.Width)
				}
				if l[2] != r[2] || gomath.Abs(float64(l[2])-5.3) > 1e-5 {
					t.Errorf("probe %d rail z = %g, %g, want 5.3", k/2, l[2], r[2])
				}
				if buf.Vertices[k].Color != buf.Vertices[k+1].Color {
					t.Errorf("probe %d rails differ in color", k/2)
				}
			}
		})
	}
}

func TestRoadColorPolicy(t *testing.T) {
	rc := DefaultRoadConfig()
	tests := []struct {
		name  string
		field noise.Field
		to    float32
		want  RoadClass
	}{
		{"flat short", flatField(0), 500, RoadLocal},
		{"flat long", flatField(0), 1500, RoadLong},
		{"steep short", slopeField{0.2}, 500, RoadSteep},
		{"steep long", slopeField{0.2}, 1500, RoadSteep},
		{"gentle long", slopeField{0.05}, 1500, RoadLong},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := math.Vec3{}
			c := math.Vec3{X: tt.to, Z: float32(tt.field.Elevation(float64(tt.to), 0))}
			b := mesh.NewBuilder("road")
			if err := addRibbon(b, tt.field, a, c, rc); err != nil {
				t.Fatalf("addRibbon() error = %v", err)
			}
			want := tt.want.Color()
			for i, v := range b.Build().All() {
				if v.Color != want {
					t.Fatalf("vertex %d color = %v, want %v (%s)", i, v.Color, want, tt.want)
				}
			}
		})
	}
}

func TestZeroLengthRoad(t *testing.T) {
	b := mesh.NewBuilder("road")
	p := math.Vec3{X: 3, Y: 4, Z: 1}
	err := addRibbon(b, flatField(0), p, math.Vec3{X: 3, Y: 4, Z: 9}, DefaultRoadConfig())
	if !errors.Is(err, mesh.ErrInvalidGeometry) {
		t.Errorf("addRibbon() error = %v, want ErrInvalidGeometry", err)
	}
}

func TestRoadsMode(t *testing.T) {
	sites := []math.Vec2{{X: 0, Y: 0}, {X: 100, Y: 0}, {X: 0, Y: 50}}
	l, err := NewFromSites(flatField(0), Delaunay{}, sites, DefaultConfig())
	if err != nil {
		t.Fatalf("NewFromSites() error = %v", err)
	}

	buf := l.Mesh()
	if len(buf.Primitives) != 3 {
		t.Errorf("primitives = %d, want one ribbon per edge (3)", len(buf.Primitives))
	}
	// Edges of length 100, 111.8 and 50 give 4, 4 and 2 segments.
	if got := buf.VertexCount(); got != 10+10+6 {
		t.Errorf("VertexCount() = %d, want 26", got)
	}
	if err := buf.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}

func TestDegenerateSites(t *testing.T) {
	tests := []struct {
		name  string
		sites []math.Vec2
		cause error
	}{
		{"two points", []math.Vec2{{X: 0}, {X: 1}}, delaunay.ErrTooFewPoints},
		{"collinear", []math.Vec2{{X: 0}, {X: 1}, {X: 2}, {X: 3}}, delaunay.ErrCollinear},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewFromSites(flatField(0), Delaunay{}, tt.sites, wireConfig())
			if !errors.Is(err, mesh.ErrDegenerateSample) {
				t.Errorf("error = %v, want ErrDegenerateSample", err)
			}
			if !errors.Is(err, tt.cause) {
				t.Errorf("error = %v, want cause %v", err, tt.cause)
			}
		})
	}
}

func TestDelaunayCoversHull(t *testing.T) {
	n := PointCount(10000, 2.5/1000000)
	for seed := int64(0); seed < 20; seed++ {
		sites := Scatter(rand.New(rand.NewSource(seed)), n, 5000)
		tri, err := Delaunay{}.Triangulate(sites)
		if err != nil {
			t.Fatalf("seed %d: Triangulate() error = %v", seed, err)
		}

		// Edges used by one triangle form the rim; every site must lie on or left of each.
		uses := make(map[[2]int]int)
		for _, tr := range tri.Triangles {
			for j := range 3 {
				a, b := tr[j], tr[(j+1)%3]
				uses[[2]int{min(a, b), max(a, b)}]++
			}
		}
		var rim int
		for _, tr := range tri.Triangles {
			for j := range 3 {
				a, b := tr[j], tr[(j+1)%3]
				if uses[[2]int{min(a, b), max(a, b)}] != 1 {
					continue
				}
				rim++
				pa, pb := sites[a], sites[b]
				for i, p := range sites {
					cross := float64(pb.X-pa.X)*float64(p.Y-pa.Y) - float64(p.X-pa.X)*float64(pb.Y-pa.Y)
					if cross < -1e-6 {
						t.Fatalf("seed %d: site %d lies outside rim edge %d-%d", seed, i, a, b)
					}
				}
			}
		}
		if want := 2*n - 2 - rim; len(tri.Triangles) != want {
			t.Errorf("seed %d: %d triangles, want %d (hull %d)", seed, len(tri.Triangles), want, rim)
		}
	}
}

type badTriangulator struct{}

func (badTriangulator) Triangulate(points []math.Vec2) (Triangulation, error) {
	return Triangulation{Points: points, Triangles: [][3]int{{0, 1, 7}}}, nil
}

func TestTriangulatorContract(t *testing.T) {
	sites := []math.Vec2{{X: 0}, {X: 1}, {Y: 1}}
	_, err := NewFromSites(flatField(0), badTriangulator{}, sites, wireConfig())
	if !errors.Is(err, mesh.ErrDegenerateSample) {
		t.Errorf("error = %v, want ErrDegenerateSample", err)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"zero diameter", func(c *Config) { c.Diameter = 0 }},
		{"negative density", func(c *Config) { c.Density = -1 }},
		{"unknown mode", func(c *Config) { c.Mode = "tunnels" }},
		{"zero road width", func(c *Config) { c.Road.Width = 0 }},
		{"zero probe spacing", func(c *Config) { c.Road.ProbeSpacing = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(&cfg)
			_, err := New(flatField(0), Delaunay{}, rand.New(rand.NewSource(1)), cfg)
			if !errors.Is(err, mesh.ErrInvalidParameter) {
				t.Errorf("error = %v, want ErrInvalidParameter", err)
			}
		})
	}
}
