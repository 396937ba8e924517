package export

import (
	"bytes"
	"testing"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/Faultbox/procscape/internal/config"
	"github.com/Faultbox/procscape/internal/engine/scene"
)

func buildScene(t *testing.T) *scene.Scene {
	t.Helper()
	cfg := config.Default()
	cfg.Terrain.Diameter = 1000
	cfg.Terrain.Resolution = 100
	cfg.Landmarks.Diameter = 1000
	cfg.Landmarks.Density = 2e-5
	cfg.Buildings.Items = []config.BuildingSpec{
		{Name: "tower", Origin: [2]float64{50, 50}, Footprint: [][2]float64{{0, 0}, {0, 55}, {30, 60}, {30, 0}}, Levels: 4},
	}
	s, err := scene.Build(cfg, 17)
	if err != nil {
		t.Fatalf("scene.Build() error = %v", err)
	}
	return s
}

func countKinds(fc *geojson.FeatureCollection) map[string]int {
	kinds := make(map[string]int)
	for _, f := range fc.Features {
		kinds[f.Properties.MustString("kind")]++
	}
	return kinds
}

func TestFeatureCollection(t *testing.T) {
	s := buildScene(t)
	fc := FeatureCollection(s)

	kinds := countKinds(fc)
	if kinds[KindTerrain] != 1 {
		t.Errorf("terrain features = %d, want 1", kinds[KindTerrain])
	}
	if got, want := kinds[KindLandmark], len(s.Landmarks.Points()); got != want {
		t.Errorf("landmark features = %d, want %d", got, want)
	}
	if got, want := kinds[KindRoad], len(s.Landmarks.Graph().UniqueEdges()); got != want {
		t.Errorf("road features = %d, want %d", got, want)
	}
	if kinds[KindRoad] >= len(s.Landmarks.Graph().Edges()) {
		t.Errorf("road features = %d, want fewer than the %d raw edges", kinds[KindRoad], len(s.Landmarks.Graph().Edges()))
	}
	if kinds[KindBuilding] != 1 {
		t.Errorf("building features = %d, want 1", kinds[KindBuilding])
	}

	ids := make(map[string]bool)
	for _, f := range fc.Features {
		id, ok := f.ID.(string)
		if !ok || id == "" {
			t.Fatalf("feature %v has no string ID", f.Properties)
		}
		if ids[id] {
			t.Errorf("duplicate feature ID %s", id)
		}
		ids[id] = true
	}

	if fc.ExtraMembers["scene"] != s.ID.String() {
		t.Errorf("scene member = %v, want %s", fc.ExtraMembers["scene"], s.ID)
	}
	if len(fc.BBox) != 4 {
		t.Errorf("BBox = %v, want 2D box", fc.BBox)
	}
}

func TestFeatureIDsAreStable(t *testing.T) {
	s := buildScene(t)
	a, b := FeatureCollection(s), FeatureCollection(s)
	for i := range a.Features {
		if a.Features[i].ID != b.Features[i].ID {
			t.Fatalf("feature %d ID changed between exports: %v vs %v", i, a.Features[i].ID, b.Features[i].ID)
		}
	}
}

func TestBuildingPolygon(t *testing.T) {
	s := buildScene(t)
	fc := FeatureCollection(s)

	for _, f := range fc.Features {
		if f.Properties.MustString("kind") != KindBuilding {
			continue
		}
		poly, ok := f.Geometry.(orb.Polygon)
		if !ok {
			t.Fatalf("building geometry is %T, want orb.Polygon", f.Geometry)
		}
		if len(poly) != 1 || len(poly[0]) != 5 {
			t.Fatalf("ring = %v, want 4 points plus closing point", poly)
		}
		if !poly[0].Closed() {
			t.Error("building ring is not closed")
		}
		if poly[0][1] != (orb.Point{50, 105}) {
			t.Errorf("ring[1] = %v, want origin-shifted (50, 105)", poly[0][1])
		}
		if f.Properties.MustInt("levels") != 4 {
			t.Errorf("levels = %v, want 4", f.Properties["levels"])
		}
	}
}

func TestRoadProperties(t *testing.T) {
	s := buildScene(t)
	road := s.Landmarks.Road()
	for _, f := range FeatureCollection(s).Features {
		if f.Properties.MustString("kind") != KindRoad {
			continue
		}
		line, ok := f.Geometry.(orb.LineString)
		if !ok || len(line) != 2 {
			t.Fatalf("road geometry = %v, want 2-point line", f.Geometry)
		}
		length := f.Properties.MustFloat64("length")
		grade := f.Properties.MustFloat64("grade")
		if want := road.Classify(grade, length).String(); f.Properties.MustString("class") != want {
			t.Errorf("class = %s, want %s", f.Properties.MustString("class"), want)
		}
		if f.Properties.MustInt("from") >= f.Properties.MustInt("to") {
			t.Errorf("road %v-%v not in canonical order", f.Properties["from"], f.Properties["to"])
		}
	}
}

func TestWriteRoundTrip(t *testing.T) {
	s := buildScene(t)

	var buf bytes.Buffer
	if err := Write(&buf, s); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	fc, err := geojson.UnmarshalFeatureCollection(buf.Bytes())
	if err != nil {
		t.Fatalf("UnmarshalFeatureCollection() error = %v", err)
	}
	if len(fc.Features) != len(FeatureCollection(s).Features) {
		t.Errorf("decoded %d features, want %d", len(fc.Features), len(FeatureCollection(s).Features))
	}
	if fc.ExtraMembers["scene"] != s.ID.String() {
		t.Errorf("decoded scene member = %v, want %s", fc.ExtraMembers["scene"], s.ID)
	}
}

func TestPartialScene(t *testing.T) {
	s := buildScene(t)
	s.Landmarks = nil
	s.Buildings = nil

	kinds := countKinds(FeatureCollection(s))
	if kinds[KindTerrain] != 1 || len(kinds) != 1 {
		t.Errorf("kinds = %v, want terrain only", kinds)
	}
}

func TestBuildingGroundGap(t *testing.T) {
	s := buildScene(t)
	for _, f := range FeatureCollection(s).Features {
		if f.Properties.MustString("kind") != KindBuilding {
			continue
		}
		gap := f.Properties.MustFloat64("ground_gap", -1)
		if gap < 0 {
			t.Errorf("ground_gap = %v, want non-negative", f.Properties["ground_gap"])
		}
		if gap != s.GroundGap(s.Buildings[0]) {
			t.Errorf("ground_gap = %g, want %g", gap, s.GroundGap(s.Buildings[0]))
		}
	}
}
