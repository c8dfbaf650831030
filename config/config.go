// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	Screen       ScreenConfig       `yaml:"screen"`
	World        WorldConfig        `yaml:"world"`
	Noise        NoiseConfig        `yaml:"noise"`
	Spawning     SpawningConfig     `yaml:"spawning"`
	Growth       GrowthConfig       `yaml:"growth"`
	Blobs        BlobConfig         `yaml:"blobs"`
	Genetics     GeneticsConfig     `yaml:"genetics"`
	Reproduction ReproductionConfig `yaml:"reproduction"`
	Parallel     ParallelConfig     `yaml:"parallel"`
	Telemetry    TelemetryConfig    `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings. Rendering-only; the core ignores it.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// WorldConfig holds map dimensions in tiles.
type WorldConfig struct {
	MapWidth  int `yaml:"map_width"`
	MapHeight int `yaml:"map_height"`
	TileSize  int `yaml:"tile_size"` // pixels per tile; rendering-only
}

// NoiseConfig holds terrain noise parameters.
type NoiseConfig struct {
	Scale       float64 `yaml:"scale"`       // Base noise frequency divisor
	Octaves     int     `yaml:"octaves"`     // FBM octaves (detail level)
	Persistence float64 `yaml:"persistence"` // Amplitude multiplier per octave
	Lacunarity  float64 `yaml:"lacunarity"`  // Frequency multiplier per octave
}

// SpawningConfig holds per-object spawn probabilities and adjacency radii.
type SpawningConfig struct {
	TreeForestProb       float64 `yaml:"tree_forest_prob"`
	RockGrassSandProb    float64 `yaml:"rock_grass_sand_prob"`
	RockForestProb       float64 `yaml:"rock_forest_prob"`
	BushGrassProb        float64 `yaml:"bush_grass_prob"`
	BushForestProb       float64 `yaml:"bush_forest_prob"`
	MushroomForestProb   float64 `yaml:"mushroom_forest_prob"`
	SugarCaneProb        float64 `yaml:"sugar_cane_prob"`
	SugarCaneWaterRadius int     `yaml:"sugar_cane_water_radius"` // Max distance to shallow water
	FlowerGrassProb      float64 `yaml:"flower_grass_prob"`
	BlobProb             float64 `yaml:"blob_prob"` // Initial blob chance per walkable tile
	MinBlobs             int     `yaml:"min_blobs"` // Floor on the initial population
}

// GrowthConfig holds berry bush growth-stage durations.
type GrowthConfig struct {
	StageDurations []float64 `yaml:"stage_durations"` // Seconds in stage 0 and stage 1
}

// BlobConfig holds need rates, thresholds, and interaction parameters.
type BlobConfig struct {
	HungerRate          float64 `yaml:"hunger_rate"` // Hunger increase per second
	ThirstRate          float64 `yaml:"thirst_rate"` // Thirst increase per second
	HungerSeekThreshold float64 `yaml:"hunger_seek_threshold"`
	ThirstSeekThreshold float64 `yaml:"thirst_seek_threshold"`
	ThirstCritical      float64 `yaml:"thirst_critical"` // Water preempts food above this
	HungerStarvation    float64 `yaml:"hunger_starvation"`
	ThirstStarvation    float64 `yaml:"thirst_starvation"`
	StarvationHPDrain   float64 `yaml:"starvation_hp_drain"` // HP loss per second per starved need
	WellFedThreshold    float64 `yaml:"wellfed_threshold"`
	WellFedHPRegen      float64 `yaml:"wellfed_hp_regen"` // HP gain per second per satisfied need
	MaxHP               float64 `yaml:"max_hp"`

	InteractionRadius    float64 `yaml:"interaction_radius"`   // Tiles from target center to start
	InteractionDuration  float64 `yaml:"interaction_duration"` // Seconds spent drinking/harvesting
	HarvestHungerRestore float64 `yaml:"harvest_hunger_restore"`
	HarvestHPRestore     float64 `yaml:"harvest_hp_restore"`
	DrinkThirstRestore   float64 `yaml:"drink_thirst_restore"`
	DrinkHPRestore       float64 `yaml:"drink_hp_restore"`

	// InterruptInteractions allows a critical need to abort an in-progress
	// drink/harvest. Off by default: a committed timer runs to completion.
	InterruptInteractions bool `yaml:"interrupt_interactions"`

	OldAge OldAgeConfig `yaml:"old_age"`
}

// OldAgeConfig holds the two escalating old-age penalty tiers.
type OldAgeConfig struct {
	Tier1Age      float64 `yaml:"tier1_age"`
	Tier1Speed    float64 `yaml:"tier1_speed"`
	Tier1Strength float64 `yaml:"tier1_strength"`
	Tier1Sight    float64 `yaml:"tier1_sight"`
	Tier2Age      float64 `yaml:"tier2_age"`
	Tier2Speed    float64 `yaml:"tier2_speed"`
	Tier2Strength float64 `yaml:"tier2_strength"`
	Tier2Sight    float64 `yaml:"tier2_sight"`
	Tier2HPDrain  float64 `yaml:"tier2_hp_drain"` // Extra HP loss per second in tier 2
}

// GeneticsConfig holds trait ranges for founders and mutation magnitudes.
type GeneticsConfig struct {
	IntelligenceMin float64 `yaml:"intelligence_min"`
	IntelligenceMax float64 `yaml:"intelligence_max"`
	StrengthMin     float64 `yaml:"strength_min"`
	StrengthMax     float64 `yaml:"strength_max"`
	SpeedMin        float64 `yaml:"speed_min"` // Tiles per second
	SpeedMax        float64 `yaml:"speed_max"`
	SightMin        float64 `yaml:"sight_min"` // Tiles
	SightMax        float64 `yaml:"sight_max"`
	LifespanMin     float64 `yaml:"lifespan_min"` // Seconds
	LifespanMax     float64 `yaml:"lifespan_max"`

	Mutation MutationConfig `yaml:"mutation"`
}

// MutationConfig holds per-trait mutation bounds (uniform perturbation).
type MutationConfig struct {
	Intelligence float64 `yaml:"intelligence"`
	Strength     float64 `yaml:"strength"`
	Speed        float64 `yaml:"speed"`
	Sight        float64 `yaml:"sight"`
	Lifespan     float64 `yaml:"lifespan"`
}

// ReproductionConfig holds mate eligibility and cooldown parameters.
type ReproductionConfig struct {
	AdultAge        float64 `yaml:"adult_age"`
	MateSeekAge     float64 `yaml:"mate_seek_age"` // Courtship starts before breeding age
	MinHPFraction   float64 `yaml:"min_hp_fraction"` // HP must exceed MaxHP * this
	MaxNeed         float64 `yaml:"max_need"`        // Hunger and thirst must be below this
	MatingRadius    float64 `yaml:"mating_radius"`   // Euclidean distance in tiles
	ParentCooldown  float64 `yaml:"parent_cooldown"`
	NewbornCooldown float64 `yaml:"newborn_cooldown"`
}

// ParallelConfig holds the parallel decision-phase parameters.
type ParallelConfig struct {
	Threshold int `yaml:"threshold"` // Min blob count to use the worker pool
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow float64 `yaml:"stats_window"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	MapW32 float32 // World.MapWidth as float32
	MapH32 float32 // World.MapHeight as float32
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	// Start with embedded defaults
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	// Load user config if provided
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	// Reject broken configs before any world state exists
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	cfg.computeDerived()

	return cfg, nil
}

// Validate rejects configurations that cannot produce a valid world.
func (c *Config) Validate() error {
	if c.World.MapWidth <= 0 || c.World.MapHeight <= 0 {
		return fmt.Errorf("config: map dimensions must be positive, got %dx%d",
			c.World.MapWidth, c.World.MapHeight)
	}
	if c.Noise.Scale <= 0 {
		return fmt.Errorf("config: noise scale must be positive, got %g", c.Noise.Scale)
	}
	if c.Noise.Octaves < 1 {
		return fmt.Errorf("config: noise octaves must be at least 1, got %d", c.Noise.Octaves)
	}

	probs := []struct {
		name string
		p    float64
	}{
		{"tree_forest_prob", c.Spawning.TreeForestProb},
		{"rock_grass_sand_prob", c.Spawning.RockGrassSandProb},
		{"rock_forest_prob", c.Spawning.RockForestProb},
		{"bush_grass_prob", c.Spawning.BushGrassProb},
		{"bush_forest_prob", c.Spawning.BushForestProb},
		{"mushroom_forest_prob", c.Spawning.MushroomForestProb},
		{"sugar_cane_prob", c.Spawning.SugarCaneProb},
		{"flower_grass_prob", c.Spawning.FlowerGrassProb},
		{"blob_prob", c.Spawning.BlobProb},
	}
	for _, pr := range probs {
		if pr.p < 0 || pr.p > 1 {
			return fmt.Errorf("config: spawning.%s must be in [0,1], got %g", pr.name, pr.p)
		}
	}
	if c.Spawning.SugarCaneWaterRadius < 1 {
		return fmt.Errorf("config: sugar_cane_water_radius must be at least 1, got %d",
			c.Spawning.SugarCaneWaterRadius)
	}

	if len(c.Growth.StageDurations) != 2 {
		return fmt.Errorf("config: growth.stage_durations needs 2 entries, got %d",
			len(c.Growth.StageDurations))
	}
	for i, d := range c.Growth.StageDurations {
		if d <= 0 {
			return fmt.Errorf("config: growth.stage_durations[%d] must be positive, got %g", i, d)
		}
	}

	if c.Blobs.MaxHP <= 0 {
		return fmt.Errorf("config: blobs.max_hp must be positive, got %g", c.Blobs.MaxHP)
	}
	if c.Blobs.InteractionDuration <= 0 {
		return fmt.Errorf("config: blobs.interaction_duration must be positive, got %g",
			c.Blobs.InteractionDuration)
	}

	traitRanges := []struct {
		name     string
		min, max float64
	}{
		{"intelligence", c.Genetics.IntelligenceMin, c.Genetics.IntelligenceMax},
		{"strength", c.Genetics.StrengthMin, c.Genetics.StrengthMax},
		{"speed", c.Genetics.SpeedMin, c.Genetics.SpeedMax},
		{"sight", c.Genetics.SightMin, c.Genetics.SightMax},
		{"lifespan", c.Genetics.LifespanMin, c.Genetics.LifespanMax},
	}
	for _, r := range traitRanges {
		if r.min <= 0 || r.max < r.min {
			return fmt.Errorf("config: genetics %s range [%g, %g] is invalid", r.name, r.min, r.max)
		}
	}

	if c.Reproduction.MatingRadius <= 0 {
		return fmt.Errorf("config: reproduction.mating_radius must be positive, got %g",
			c.Reproduction.MatingRadius)
	}

	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.MapW32 = float32(c.World.MapWidth)
	c.Derived.MapH32 = float32(c.World.MapHeight)
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
