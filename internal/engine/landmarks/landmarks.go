// Package landmarks scatters landmark sites over a disk, connects them by Delaunay
// triangulation, and renders the result as a wireframe or as terrain-following roads.
package landmarks

import (
	"fmt"
	"math/rand"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/procscape/internal/engine/mesh"
	"github.com/Faultbox/procscape/internal/engine/noise"
	"github.com/Faultbox/procscape/internal/logger"
	"github.com/Faultbox/procscape/pkg/math"
)

// Mode selects how the graph is rendered.
type Mode string

const (
	ModeWireframe Mode = "wireframe"
	ModeRoads     Mode = "roads"
)

// Config holds landmark parameters.
type Config struct {
	Diameter        float64    `yaml:"diameter"`
	Density         float64    `yaml:"density"` // sites per unit area
	Mode            Mode       `yaml:"mode"`
	ElevationOffset float64    `yaml:"elevation_offset"` // added to site elevation, e.g. to float above terrain
	Road            RoadConfig `yaml:"road"`
}

// DefaultConfig returns about 196 sites over a 10km disk, drawn as roads.
func DefaultConfig() Config {
	return Config{
		Diameter: 10000,
		Density:  2.5 / 1000000,
		Mode:     ModeRoads,
		Road:     DefaultRoadConfig(),
	}
}

// Validate checks landmark parameters.
func (c Config) Validate() error {
	if c.Diameter <= 0 {
		return fmt.Errorf("%w: landmark diameter must be positive, got %g", mesh.ErrInvalidParameter, c.Diameter)
	}
	if c.Density <= 0 {
		return fmt.Errorf("%w: landmark density must be positive, got %g", mesh.ErrInvalidParameter, c.Density)
	}
	if c.Mode != ModeWireframe && c.Mode != ModeRoads {
		return fmt.Errorf("%w: unknown landmark mode %q", mesh.ErrInvalidParameter, c.Mode)
	}
	if c.Mode == ModeRoads {
		return c.Road.Validate()
	}
	return nil
}

var wireColor = mesh.Color{0.2, 0.2, 0.2, 0}

// Landmarks is a triangulated set of sites and its rendered mesh.
type Landmarks struct {
	cfg       Config
	points    []math.Vec3
	triangles [][3]int
	graph     *Graph
	buffer    *mesh.Buffer
}

// New scatters PointCount sites with rng and builds the landmark mesh.
func New(field noise.Field, tri Triangulator, rng *rand.Rand, cfg Config) (*Landmarks, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	n := PointCount(cfg.Diameter, cfg.Density)
	return NewFromSites(field, tri, Scatter(rng, n, cfg.Diameter/2), cfg)
}

// NewFromSites builds landmarks over caller-supplied sites.
func NewFromSites(field noise.Field, tri Triangulator, sites []math.Vec2, cfg Config) (*Landmarks, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	start := time.Now()

	t, err := tri.Triangulate(sites)
	if err != nil {
		return nil, fmt.Errorf("%w: triangulating %d sites: %w", mesh.ErrDegenerateSample, len(sites), err)
	}
	if err := checkTriangulation(t, len(sites)); err != nil {
		return nil, err
	}

	l := &Landmarks{
		cfg:       cfg,
		points:    make([]math.Vec3, len(t.Points)),
		triangles: t.Triangles,
		graph:     NewGraph(len(t.Points), t.Triangles),
	}
	for i, p := range t.Points {
		z := field.Elevation(float64(p.X), float64(p.Y)) + cfg.ElevationOffset
		l.points[i] = p.Lift(float32(z))
	}

	switch cfg.Mode {
	case ModeWireframe:
		l.buffer = l.wireframe()
	case ModeRoads:
		l.buffer, err = l.roads(field)
		if err != nil {
			return nil, err
		}
	}

	logger.Named("landmarks").Debug("landmarks built",
		zap.String("mode", string(cfg.Mode)),
		zap.Int("sites", len(l.points)),
		zap.Int("triangles", len(l.triangles)),
		zap.Int("edges", len(l.graph.Edges())),
		zap.Int("vertices", l.buffer.VertexCount()),
		zap.Duration("elapsed", time.Since(start)),
	)
	return l, nil
}

// wireframe draws every triangle as a closed line strip; shared edges are drawn twice.
func (l *Landmarks) wireframe() *mesh.Buffer {
	b := mesh.NewBuilder("landmarks")
	b.Grow(len(l.points))
	for _, p := range l.points {
		b.AddVertex(p, wireColor)
	}
	for _, t := range l.triangles {
		a, c, d := uint32(t[0]), uint32(t[1]), uint32(t[2])
		b.AddPrimitive(mesh.LineStrip, a, c, d, a)
	}
	return b.Build()
}

// Points returns the 3D landmark sites, in triangulation order.
func (l *Landmarks) Points() []math.Vec3 { return l.points }

// Triangles returns the triangle list.
func (l *Landmarks) Triangles() [][3]int { return l.triangles }

// Graph returns the adjacency graph.
func (l *Landmarks) Graph() *Graph { return l.graph }

// Mode returns the render mode the mesh was built with.
func (l *Landmarks) Mode() Mode { return l.cfg.Mode }

// Road returns the road parameters used for classification.
func (l *Landmarks) Road() RoadConfig { return l.cfg.Road }

// Mesh returns the rendered buffer.
func (l *Landmarks) Mesh() *mesh.Buffer { return l.buffer }

// Meshes implements mesh.Producer.
func (l *Landmarks) Meshes() []*mesh.Buffer {
	return []*mesh.Buffer{l.buffer}
}
