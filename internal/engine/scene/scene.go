// Package scene assembles the generated terrain, landmark network and buildings into one
// renderable set of meshes.
package scene

import (
	"fmt"
	gomath "math"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/Faultbox/procscape/internal/config"
	"github.com/Faultbox/procscape/internal/engine/building"
	"github.com/Faultbox/procscape/internal/engine/landmarks"
	"github.com/Faultbox/procscape/internal/engine/mesh"
	"github.com/Faultbox/procscape/internal/engine/noise"
	"github.com/Faultbox/procscape/internal/engine/terrain"
	"github.com/Faultbox/procscape/internal/logger"
	"github.com/Faultbox/procscape/pkg/math"
)

// Scene is one generation run. Any component may be nil if it failed to build.
type Scene struct {
	ID        uuid.UUID
	Seed      int64
	Field     *noise.Octave
	Terrain   *terrain.Heightfield
	Landmarks *landmarks.Landmarks
	Buildings []*building.Building
}

// Build generates every component described by cfg. Seed drives point scattering and color
// jitter; the elevation field uses cfg.Noise.Seed. Component failures are collected and
// returned together with the components that did build; only an unusable noise field
// yields a nil scene.
func Build(cfg *config.Config, seed int64) (*Scene, error) {
	return BuildWith(cfg, seed, landmarks.Delaunay{})
}

// BuildWith is Build with a custom triangulator.
func BuildWith(cfg *config.Config, seed int64, tri landmarks.Triangulator) (*Scene, error) {
	log := logger.Named("scene")
	start := time.Now()

	field, err := noise.New(cfg.Noise)
	if err != nil {
		return nil, fmt.Errorf("noise field: %w", err)
	}

	s := &Scene{
		ID:    uuid.New(),
		Seed:  seed,
		Field: field,
	}
	log = log.With(zap.String("scene", s.ID.String()), zap.Int64("seed", seed))

	var errs error
	fail := func(component string, err error) {
		log.Warn("component failed", zap.String("component", component), zap.Error(err))
		errs = multierr.Append(errs, fmt.Errorf("%s: %w", component, err))
	}

	colorizer := noise.NewColorizer(field.MaxElevation(), noise.DefaultJitter, rand.New(rand.NewSource(seed+1)))
	if s.Terrain, err = terrain.New(field, colorizer, cfg.Terrain); err != nil {
		fail("terrain", err)
	}

	if s.Landmarks, err = landmarks.New(field, tri, rand.New(rand.NewSource(seed)), cfg.Landmarks); err != nil {
		fail("landmarks", err)
	}

	for i, spec := range cfg.Buildings.Items {
		name := spec.Name
		if name == "" {
			name = fmt.Sprintf("building-%d", i)
		}
		b, err := PlaceBuilding(field, name, spec, cfg.Buildings.Config)
		if err != nil {
			fail("building "+name, err)
			continue
		}
		if s.Terrain != nil && !s.onTerrain(b) {
			log.Warn("building outside terrain", zap.String("building", name))
		}
		s.Buildings = append(s.Buildings, b)
	}

	stats := s.Stats()
	log.Info("scene built",
		zap.Int("buffers", stats.Buffers),
		zap.Int("vertices", stats.Vertices),
		zap.Int("triangles", stats.Triangles),
		zap.Int("buildings", len(s.Buildings)),
		zap.Int("failures", len(multierr.Errors(errs))),
		zap.Duration("elapsed", time.Since(start)),
	)
	return s, errs
}

// PlaceBuilding lifts spec's footprint onto the field at spec.Origin and extrudes it.
func PlaceBuilding(field noise.Field, name string, spec config.BuildingSpec, cfg building.Config) (*building.Building, error) {
	if spec.Levels < 1 {
		return nil, fmt.Errorf("%w: building needs at least one level, got %d", mesh.ErrInvalidParameter, spec.Levels)
	}

	footprint := make([]math.Vec3, len(spec.Footprint))
	for i, p := range spec.Footprint {
		x, y := spec.Origin[0]+p[0], spec.Origin[1]+p[1]
		footprint[i] = math.Vec3{X: float32(x), Y: float32(y), Z: float32(field.Elevation(x, y))}
	}

	heights := make([]float32, spec.Levels)
	for i := range heights {
		heights[i] = float32(i+1) * cfg.FloorHeight
	}
	return building.New(name, footprint, heights, cfg)
}

func (s *Scene) onTerrain(b *building.Building) bool {
	for _, p := range b.Footprint() {
		if !s.Terrain.Contains(float64(p.X), float64(p.Y)) {
			return false
		}
	}
	return true
}

// GroundGap returns the largest vertical distance between b's footprint and the rendered
// terrain surface below it. The footprint follows the exact field while the mesh
// interpolates between samples, so coarse grids leave visible gaps.
func (s *Scene) GroundGap(b *building.Building) float64 {
	if s.Terrain == nil {
		return 0
	}
	gap := 0.0
	for _, p := range b.Footprint() {
		d := gomath.Abs(float64(p.Z) - s.Terrain.HeightAt(float64(p.X), float64(p.Y)))
		gap = gomath.Max(gap, d)
	}
	return gap
}

// Producers returns the components that built, terrain first.
func (s *Scene) Producers() []mesh.Producer {
	var out []mesh.Producer
	if s.Terrain != nil {
		out = append(out, s.Terrain)
	}
	if s.Landmarks != nil {
		out = append(out, s.Landmarks)
	}
	for _, b := range s.Buildings {
		out = append(out, b)
	}
	return out
}

// Meshes implements mesh.Producer.
func (s *Scene) Meshes() []*mesh.Buffer {
	var out []*mesh.Buffer
	for _, p := range s.Producers() {
		out = append(out, p.Meshes()...)
	}
	return out
}

// Bounds returns the box around every generated vertex.
func (s *Scene) Bounds() mesh.Bounds {
	return mesh.BoundsOf(s.Meshes())
}
