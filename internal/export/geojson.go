// Package export writes the generated scene plan as GeoJSON for inspection in GIS tools.
package export

import (
	"fmt"
	"io"
	gomath "math"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/Faultbox/procscape/internal/engine/building"
	"github.com/Faultbox/procscape/internal/engine/landmarks"
	"github.com/Faultbox/procscape/internal/engine/scene"
	"github.com/Faultbox/procscape/internal/engine/terrain"
)

// Feature kinds, stored in the "kind" property.
const (
	KindTerrain  = "terrain"
	KindLandmark = "landmark"
	KindRoad     = "road"
	KindBuilding = "building"
)

// FeatureCollection converts a scene into planar GeoJSON. Coordinates are scene units,
// not longitude and latitude. Roads are the undirected network, one feature per edge.
func FeatureCollection(s *scene.Scene) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	fc.ExtraMembers = geojson.Properties{
		"scene": s.ID.String(),
		"seed":  s.Seed,
	}

	if s.Terrain != nil {
		fc.Append(terrainFeature(s.ID, s.Terrain))
	}
	if s.Landmarks != nil {
		for _, f := range landmarkFeatures(s.ID, s.Landmarks) {
			fc.Append(f)
		}
		for _, f := range roadFeatures(s.ID, s.Landmarks) {
			fc.Append(f)
		}
	}
	for _, b := range s.Buildings {
		f := buildingFeature(s.ID, b)
		f.Properties["ground_gap"] = s.GroundGap(b)
		fc.Append(f)
	}

	var bound orb.Bound
	for i, f := range fc.Features {
		if i == 0 {
			bound = f.Geometry.Bound()
		} else {
			bound = bound.Union(f.Geometry.Bound())
		}
	}
	if len(fc.Features) > 0 {
		fc.BBox = geojson.NewBBox(bound)
	}
	return fc
}

// Write encodes the scene as GeoJSON to w.
func Write(w io.Writer, s *scene.Scene) error {
	data, err := FeatureCollection(s).MarshalJSON()
	if err != nil {
		return fmt.Errorf("encoding geojson: %w", err)
	}
	_, err = w.Write(data)
	return err
}

// featureID derives a stable ID for a feature within one scene run.
func featureID(sceneID uuid.UUID, key string) string {
	return uuid.NewSHA1(sceneID, []byte(key)).String()
}

func newFeature(sceneID uuid.UUID, key, kind string, g orb.Geometry) *geojson.Feature {
	f := geojson.NewFeature(g)
	f.ID = featureID(sceneID, key)
	f.Properties["kind"] = kind
	return f
}

func terrainFeature(sceneID uuid.UUID, h *terrain.Heightfield) *geojson.Feature {
	bb := h.Bounds()
	extent := orb.Bound{
		Min: orb.Point{float64(bb.Min[0]), float64(bb.Min[1])},
		Max: orb.Point{float64(bb.Max[0]), float64(bb.Max[1])},
	}
	f := newFeature(sceneID, KindTerrain, KindTerrain, extent.ToPolygon())
	f.Properties["grid_size"] = h.GridSize()
	f.Properties["min_elevation"] = float64(bb.Min[2])
	f.Properties["max_elevation"] = float64(bb.Max[2])
	return f
}

func landmarkFeatures(sceneID uuid.UUID, l *landmarks.Landmarks) []*geojson.Feature {
	g := l.Graph()
	out := make([]*geojson.Feature, len(l.Points()))
	for i, p := range l.Points() {
		f := newFeature(sceneID, fmt.Sprintf("landmark/%d", i), KindLandmark, orb.Point{float64(p.X), float64(p.Y)})
		f.Properties["index"] = i
		f.Properties["elevation"] = float64(p.Z)
		f.Properties["degree"] = g.Degree(i)
		out[i] = f
	}
	return out
}

func roadFeatures(sceneID uuid.UUID, l *landmarks.Landmarks) []*geojson.Feature {
	points := l.Points()
	road := l.Road()
	edges := l.Graph().UniqueEdges()
	out := make([]*geojson.Feature, 0, len(edges))
	for _, e := range edges {
		a, b := points[e.A], points[e.B]
		length := gomath.Hypot(float64(b.X-a.X), float64(b.Y-a.Y))
		grade := 0.0
		if length > 0 {
			grade = gomath.Abs(float64(b.Z-a.Z)) / length
		}

		line := orb.LineString{{float64(a.X), float64(a.Y)}, {float64(b.X), float64(b.Y)}}
		f := newFeature(sceneID, fmt.Sprintf("road/%d-%d", e.A, e.B), KindRoad, line)
		f.Properties["from"] = e.A
		f.Properties["to"] = e.B
		f.Properties["length"] = length
		f.Properties["grade"] = grade
		f.Properties["class"] = road.Classify(grade, length).String()
		out = append(out, f)
	}
	return out
}

func buildingFeature(sceneID uuid.UUID, b *building.Building) *geojson.Feature {
	footprint := b.Footprint()
	ring := make(orb.Ring, 0, len(footprint)+1)
	base := gomath.Inf(1)
	for _, p := range footprint {
		ring = append(ring, orb.Point{float64(p.X), float64(p.Y)})
		base = gomath.Min(base, float64(p.Z))
	}
	if len(ring) > 0 {
		ring = append(ring, ring[0])
	}

	f := newFeature(sceneID, "building/"+b.Name(), KindBuilding, orb.Polygon{ring})
	f.Properties["name"] = b.Name()
	f.Properties["levels"] = len(b.Levels())
	f.Properties["height"] = float64(b.Height())
	f.Properties["base_elevation"] = base
	return f
}
