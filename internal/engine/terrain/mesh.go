package terrain

import (
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/procscape/internal/engine/mesh"
	"github.com/Faultbox/procscape/internal/engine/noise"
	"github.com/Faultbox/procscape/internal/logger"
	"github.com/Faultbox/procscape/pkg/math"
)

// Heightfield is a square grid of elevation samples centered at the origin.
type Heightfield struct {
	cfg     Config
	n       int
	heights []float64 // row-major, index row*n+col
	buffer  *mesh.Buffer
}

// New samples field on the grid described by cfg and builds the strip mesh.
// Vertex colors come from colorizer, one draw per vertex.
func New(field noise.Field, colorizer *noise.Colorizer, cfg Config) (*Heightfield, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	start := time.Now()

	n := cfg.GridSize()
	h := &Heightfield{
		cfg:     cfg,
		n:       n,
		heights: make([]float64, n*n),
	}

	b := mesh.NewBuilder("terrain")
	b.Grow(n * n)
	for row := 0; row < n; row++ {
		y := h.coord(row)
		for col := 0; col < n; col++ {
			x := h.coord(col)
			z := field.Elevation(x, y)
			h.heights[row*n+col] = z
			b.AddVertex(math.Vec3{X: float32(x), Y: float32(y), Z: float32(z)}, colorizer.Color(z))
		}
	}

	// One strip per pair of adjacent rows, alternating upper and lower row.
	strip := make([]uint32, 0, 2*n)
	for row := 0; row < n-1; row++ {
		strip = strip[:0]
		for col := 0; col < n; col++ {
			strip = append(strip, uint32(row*n+col), uint32((row+1)*n+col))
		}
		b.AddPrimitive(mesh.TriangleStrip, strip...)
	}
	h.buffer = b.Build()

	logger.Named("terrain").Debug("heightfield built",
		zap.Int("grid", n),
		zap.Int("vertices", h.buffer.VertexCount()),
		zap.Int("strips", len(h.buffer.Primitives)),
		zap.Duration("elapsed", time.Since(start)),
	)
	return h, nil
}

// coord maps a grid index to a world coordinate.
func (h *Heightfield) coord(i int) float64 {
	return (float64(i) - float64(h.n-1)/2) * h.cfg.Resolution
}

// GridSize returns the number of samples per side.
func (h *Heightfield) GridSize() int { return h.n }

// Sample returns the stored elevation at a grid position.
func (h *Heightfield) Sample(row, col int) float64 {
	return h.heights[row*h.n+col]
}

// Mesh returns the terrain buffer.
func (h *Heightfield) Mesh() *mesh.Buffer { return h.buffer }

// Meshes implements mesh.Producer.
func (h *Heightfield) Meshes() []*mesh.Buffer {
	return []*mesh.Buffer{h.buffer}
}

// Bounds returns the bounding box of the terrain mesh.
func (h *Heightfield) Bounds() mesh.Bounds {
	return h.buffer.Bounds()
}
