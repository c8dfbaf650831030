package telemetry

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSnapshotRoundTrip(t *testing.T) {
	dir := t.TempDir()

	snap := &Snapshot{
		Version:    SnapshotVersion,
		Seed:       42,
		Tick:       1000,
		SimTime:    16.6,
		MapWidth:   60,
		MapHeight:  60,
		TileCounts: []int{100, 200, 300, 400, 500, 600},
		Objects: []ObjectState{
			{Kind: 0, X: 3, Y: 4, Stage: 1, StageTimer: 2.5},
			{Kind: 5, X: 10, Y: 11},
		},
		Blobs: []BlobState{
			{ID: 7, X: 12.5, Y: 30.25, Hunger: 45, Thirst: 20, HP: 80, Age: 33,
				Intelligence: 50, Strength: 60, Speed: 1.5, Sight: 6, Lifespan: 220},
		},
	}

	path, err := SaveSnapshot(snap, dir)
	if err != nil {
		t.Fatalf("SaveSnapshot: %v", err)
	}

	loaded, err := LoadSnapshot(path)
	if err != nil {
		t.Fatalf("LoadSnapshot: %v", err)
	}

	if loaded.Seed != snap.Seed || loaded.Tick != snap.Tick {
		t.Errorf("identity fields differ: seed %d tick %d", loaded.Seed, loaded.Tick)
	}
	if len(loaded.Objects) != 2 || loaded.Objects[0].StageTimer != 2.5 {
		t.Errorf("objects did not round-trip: %+v", loaded.Objects)
	}
	if len(loaded.Blobs) != 1 || loaded.Blobs[0].Speed != 1.5 {
		t.Errorf("blobs did not round-trip: %+v", loaded.Blobs)
	}
}

func TestLoadSnapshotRejectsVersionMismatch(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "snapshot_0.json")
	if err := os.WriteFile(path, []byte(`{"version": 999}`), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadSnapshot(path); err == nil {
		t.Error("expected an error for a mismatched snapshot version")
	}
}

func TestOutputManagerDisabled(t *testing.T) {
	om, err := NewOutputManager("")
	if err != nil {
		t.Fatalf("empty dir should disable output, got error: %v", err)
	}
	if om != nil {
		t.Fatal("empty dir should return a nil manager")
	}

	// Nil manager methods are no-ops.
	if err := om.WriteStats(WindowStats{}); err != nil {
		t.Errorf("WriteStats on nil manager: %v", err)
	}
	if err := om.Close(); err != nil {
		t.Errorf("Close on nil manager: %v", err)
	}
}

func TestOutputManagerWritesStats(t *testing.T) {
	dir := t.TempDir()
	om, err := NewOutputManager(dir)
	if err != nil {
		t.Fatal(err)
	}

	if err := om.WriteStats(WindowStats{WindowEndTick: 10, Population: 5}); err != nil {
		t.Fatal(err)
	}
	if err := om.WriteStats(WindowStats{WindowEndTick: 20, Population: 6}); err != nil {
		t.Fatal(err)
	}
	if err := om.Close(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "stats.csv"))
	if err != nil {
		t.Fatal(err)
	}
	lines := 0
	for _, b := range data {
		if b == '\n' {
			lines++
		}
	}
	// One header line plus two records.
	if lines != 3 {
		t.Errorf("stats.csv has %d lines, want 3:\n%s", lines, data)
	}
}
