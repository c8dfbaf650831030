package components

// BlobState identifies the current step of the decision state machine.
type BlobState uint8

const (
	StateWandering BlobState = iota
	StateSeekingWater
	StateSeekingFood
	StateSeekingMate
	StateDrinking
	StateHarvesting
	StateDead // terminal
)

// String returns a human-readable state name for logging and the HUD.
func (s BlobState) String() string {
	switch s {
	case StateWandering:
		return "wandering"
	case StateSeekingWater:
		return "seeking water"
	case StateSeekingFood:
		return "seeking food"
	case StateSeekingMate:
		return "seeking mate"
	case StateDrinking:
		return "drinking"
	case StateHarvesting:
		return "harvesting"
	case StateDead:
		return "dead"
	default:
		return "unknown"
	}
}

// TargetKind identifies what a blob is currently moving toward.
type TargetKind uint8

const (
	TargetNone TargetKind = iota
	TargetFood             // A ripe berry bush at (TargetX, TargetY)
	TargetWater            // A walkable tile adjacent to shallow water
	TargetMate             // Another blob, by id
)

// Blob holds per-agent mutable state: needs, timers, and the current
// decision. Effective Speed/Strength/Sight are recomputed every tick from
// genetics modulated by condition and age.
type Blob struct {
	ID    uint32
	State BlobState
	Alive bool

	// Needs, all clamped to [0, 100]. Higher hunger/thirst is worse.
	Hunger float32
	Thirst float32
	HP     float32

	Age float32 // Seconds; 1 age unit = 1 second of simulation

	// Effective stats for this tick
	Speed    float32
	Strength float32
	Sight    float32

	// Timers
	ReproCooldown    float32
	InteractionTimer float32 // Counts down during drinking/harvesting
	DirCooldown      float32 // Seconds until the next random wander turn

	// Current seek target
	Target           TargetKind
	TargetX, TargetY int32  // Grid coordinate, for food/water targets
	TargetID         uint32 // Blob id, for mate targets
}

// ClearTarget resets the current seek target.
func (b *Blob) ClearTarget() {
	b.Target = TargetNone
	b.TargetX = 0
	b.TargetY = 0
	b.TargetID = 0
}
