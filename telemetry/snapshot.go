package telemetry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// SnapshotVersion is incremented when the format changes.
const SnapshotVersion = 1

// Snapshot holds the complete simulation state for inspection or replay.
type Snapshot struct {
	Version int   `json:"version"`
	Seed    int64 `json:"seed"`

	Tick    int64   `json:"tick"`
	SimTime float64 `json:"sim_time"`

	MapWidth  int `json:"map_width"`
	MapHeight int `json:"map_height"`

	// Tile counts indexed by tile type
	TileCounts []int `json:"tile_counts"`

	Objects []ObjectState `json:"objects"`
	Blobs   []BlobState   `json:"blobs"`
}

// ObjectState holds one world object's state.
type ObjectState struct {
	Kind       uint8   `json:"kind"`
	X          int     `json:"x"`
	Y          int     `json:"y"`
	Stage      uint8   `json:"stage,omitempty"`
	StageTimer float32 `json:"stage_timer,omitempty"`
	FlowerType uint8   `json:"flower_type,omitempty"`
}

// BlobState holds one blob's complete state.
type BlobState struct {
	ID    uint32 `json:"id"`
	State uint8  `json:"state"`

	X float32 `json:"x"`
	Y float32 `json:"y"`

	Hunger float32 `json:"hunger"`
	Thirst float32 `json:"thirst"`
	HP     float32 `json:"hp"`
	Age    float32 `json:"age"`

	ReproCooldown float32 `json:"repro_cooldown"`

	// Genome
	Intelligence float32 `json:"intelligence"`
	Strength     float32 `json:"strength"`
	Speed        float32 `json:"speed"`
	Sight        float32 `json:"sight"`
	Lifespan     float32 `json:"lifespan"`
}

// SaveSnapshot writes a snapshot to disk.
// Returns the filepath where it was saved.
func SaveSnapshot(snapshot *Snapshot, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create snapshot dir: %w", err)
	}

	path := filepath.Join(dir, fmt.Sprintf("snapshot_%d.json", snapshot.Tick))

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal snapshot: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("write snapshot: %w", err)
	}

	return path, nil
}

// LoadSnapshot reads a snapshot from disk and checks its version.
func LoadSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}

	var snapshot Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot: %w", err)
	}

	if snapshot.Version != SnapshotVersion {
		return nil, fmt.Errorf("snapshot version %d, want %d", snapshot.Version, SnapshotVersion)
	}

	return &snapshot, nil
}
