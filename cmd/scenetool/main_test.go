package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/paulmach/orb/geojson"

	"github.com/Faultbox/procscape/internal/config"
	"github.com/Faultbox/procscape/internal/engine/scene"
)

func smallScene(t *testing.T) *scene.Scene {
	t.Helper()
	cfg := config.Default()
	cfg.Terrain.Diameter = 1000
	cfg.Terrain.Resolution = 100
	cfg.Landmarks.Diameter = 1000
	cfg.Landmarks.Density = 2e-5
	cfg.Buildings.Items = nil
	s, err := scene.Build(cfg, 5)
	if err != nil {
		t.Fatalf("scene.Build() error = %v", err)
	}
	return s
}

func TestWriteGeoJSONFile(t *testing.T) {
	s := smallScene(t)
	path := filepath.Join(t.TempDir(), "scene.geojson")

	if err := writeGeoJSONFile(path, s); err != nil {
		t.Fatalf("writeGeoJSONFile() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		t.Fatalf("output is not a feature collection: %v", err)
	}
	if len(fc.Features) == 0 {
		t.Error("expected features in the export")
	}
}

func TestWriteGeoJSONFileBadPath(t *testing.T) {
	s := smallScene(t)
	path := filepath.Join(t.TempDir(), "missing", "scene.geojson")

	if err := writeGeoJSONFile(path, s); err == nil {
		t.Error("expected an error for a missing directory")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("expected no file at %s, got %v", path, err)
	}
}
