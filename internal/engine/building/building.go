// Package building extrudes footprint polygons into tapered, stacked levels.
package building

import (
	"fmt"
	gomath "math"

	"github.com/Faultbox/procscape/internal/engine/mesh"
	"github.com/Faultbox/procscape/pkg/math"
)

// Config holds extrusion parameters.
type Config struct {
	FloorHeight float32 `yaml:"floor_height"` // rise per level
	Shrink      float32 `yaml:"shrink"`       // level i is pulled toward its centroid by 1-Shrink^i
	Cover       bool    `yaml:"cover"`        // emit a cap on every level
}

// DefaultConfig returns the standard tower settings.
func DefaultConfig() Config {
	return Config{
		FloorHeight: 2.5,
		Shrink:      0.99,
		Cover:       true,
	}
}

// Validate checks extrusion parameters.
func (c Config) Validate() error {
	if c.FloorHeight <= 0 {
		return fmt.Errorf("%w: floor height must be positive, got %g", mesh.ErrInvalidParameter, c.FloorHeight)
	}
	if c.Shrink <= 0 || c.Shrink > 1 {
		return fmt.Errorf("%w: shrink must be in (0, 1], got %g", mesh.ErrInvalidParameter, c.Shrink)
	}
	return nil
}

var (
	wallBaseColor = mesh.Color{0.5, 0.5, 0.5, 0}
	wallTopColor  = mesh.Color{1, 1, 1, 0}
)

// Level is one tier: a footprint ring, the wall height above it, and whether it is capped.
type Level struct {
	border []math.Vec3
	top    float32
	cover  bool
}

// NewLevel creates a level from an already-placed border.
func NewLevel(border []math.Vec3, top float32, cover bool) (*Level, error) {
	if len(border) < 3 {
		return nil, fmt.Errorf("%w: level border has %d points, need at least 3", mesh.ErrInvalidGeometry, len(border))
	}
	return &Level{
		border: append([]math.Vec3(nil), border...),
		top:    top,
		cover:  cover,
	}, nil
}

// Border returns a copy of the level's footprint ring.
func (l *Level) Border() []math.Vec3 {
	return append([]math.Vec3(nil), l.border...)
}

// Top returns the wall height above the level's base.
func (l *Level) Top() float32 { return l.top }

// Cover reports whether the level has a cap.
func (l *Level) Cover() bool { return l.cover }

// Mesh builds the level geometry: a base ring, a raised ring, a closed wall strip,
// and the optional cap strip over the raised ring.
func (l *Level) Mesh(name string) *mesh.Buffer {
	n := uint32(len(l.border))
	b := mesh.NewBuilder(name)
	b.Grow(int(2 * n))

	for _, p := range l.border {
		b.AddVertex(p, wallBaseColor)
	}
	for _, p := range l.border {
		b.AddVertex(math.Vec3{X: p.X, Y: p.Y, Z: p.Z + l.top}, wallTopColor)
	}

	wall := make([]uint32, 0, 2*n+2)
	for i := uint32(0); i < n; i++ {
		wall = append(wall, i, i+n)
	}
	wall = append(wall, 0, n)
	b.AddPrimitive(mesh.TriangleStrip, wall...)

	if l.cover {
		ceil := make([]uint32, 0, n+1)
		for i := uint32(0); i < n; i++ {
			ceil = append(ceil, n+i)
		}
		ceil = append(ceil, n)
		b.AddPrimitive(mesh.TriangleStrip, ceil...)
	}
	return b.Build()
}

// Building is a stack of levels over one footprint.
type Building struct {
	name      string
	footprint []math.Vec3
	heights   []float32
	cfg       Config
	levels    []*Level
}

// New extrudes footprint into len(heights) levels. Level i sits at i*FloorHeight, rises
// (i+1)*FloorHeight, and is shrunk toward its centroid by 1-Shrink^i; heights only set the count.
func New(name string, footprint []math.Vec3, heights []float32, cfg Config) (*Building, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if len(footprint) < 3 {
		return nil, fmt.Errorf("%w: footprint has %d points, need at least 3", mesh.ErrInvalidGeometry, len(footprint))
	}

	b := &Building{
		name:      name,
		footprint: append([]math.Vec3(nil), footprint...),
		heights:   append([]float32(nil), heights...),
		cfg:       cfg,
		levels:    make([]*Level, 0, len(heights)),
	}
	for i := range heights {
		border := shrinkToward(raise(footprint, float32(i)*cfg.FloorHeight), shrinkFactor(cfg.Shrink, i))
		level, err := NewLevel(border, float32(i+1)*cfg.FloorHeight, cfg.Cover)
		if err != nil {
			return nil, err
		}
		b.levels = append(b.levels, level)
	}
	return b, nil
}

// Name returns the building name.
func (b *Building) Name() string { return b.name }

// Footprint returns a copy of the ground footprint.
func (b *Building) Footprint() []math.Vec3 {
	return append([]math.Vec3(nil), b.footprint...)
}

// Levels returns the levels, ground first.
func (b *Building) Levels() []*Level {
	return b.levels
}

// Height returns how far the top of the last level rises above the footprint.
func (b *Building) Height() float32 {
	n := len(b.levels)
	if n == 0 {
		return 0
	}
	return float32(n-1)*b.cfg.FloorHeight + b.levels[n-1].top
}

// Meshes returns one buffer per level.
func (b *Building) Meshes() []*mesh.Buffer {
	out := make([]*mesh.Buffer, len(b.levels))
	for i, l := range b.levels {
		out[i] = l.Mesh(fmt.Sprintf("%s/level-%d", b.name, i))
	}
	return out
}

// shrinkFactor is the interpolation weight toward the centroid for level i.
func shrinkFactor(shrink float32, i int) float32 {
	return float32(1 - gomath.Pow(float64(shrink), float64(i)))
}

func raise(points []math.Vec3, dz float32) []math.Vec3 {
	out := make([]math.Vec3, len(points))
	for i, p := range points {
		out[i] = math.Vec3{X: p.X, Y: p.Y, Z: p.Z + dz}
	}
	return out
}

func shrinkToward(points []math.Vec3, t float32) []math.Vec3 {
	c := math.Centroid(points)
	out := make([]math.Vec3, len(points))
	for i, p := range points {
		out[i] = math.Lerp(p, c, t)
	}
	return out
}
