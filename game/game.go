// Package game holds the simulation core: the entity world, the
// per-tick update loop, and blob behavior.
package game

import (
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/blobs/components"
	"github.com/pthm-cable/blobs/config"
	"github.com/pthm-cable/blobs/systems"
	"github.com/pthm-cable/blobs/telemetry"
)

// GridCellSize is the spatial grid cell size in tile units.
const GridCellSize = 4.0

// Game holds the complete simulation state.
type Game struct {
	cfg   *config.Config
	world *ecs.World
	rng   *rand.Rand

	// Entity mappers for the blob archetype
	entityMapper *ecs.Map4[
		components.Position,
		components.Velocity,
		components.Blob,
		components.Genetics,
	]
	entityFilter *ecs.Filter4[
		components.Position,
		components.Velocity,
		components.Blob,
		components.Genetics,
	]

	// Individual component mappers for lookups
	posMap  *ecs.Map1[components.Position]
	velMap  *ecs.Map1[components.Velocity]
	blobMap *ecs.Map1[components.Blob]
	genMap  *ecs.Map1[components.Genetics]

	// Static world and resource systems
	terrain *systems.World
	berries *systems.BerryLifecycle

	// Spatial index over live blobs, rebuilt each tick
	spatialGrid *systems.SpatialGrid

	// Positions captured at the start of the tick, keyed by blob id.
	// Distance checks against other blobs read these so results do not
	// depend on update order within the tick.
	prevPos    map[uint32]components.Position
	entityByID map[uint32]ecs.Entity

	parallel  *parallelState
	collector *telemetry.Collector

	// State
	tick       int64
	simTime    float64
	nextID     uint32
	aliveCount int
	birthCount int
	deathCount int
}

// New creates a simulation from the given seed. The world is generated,
// initial blobs are placed on their spawn tiles, and the update loop is
// ready to run.
func New(seed int64, cfg *config.Config) *Game {
	world := ecs.NewWorld()

	g := &Game{
		cfg:   cfg,
		world: world,
		rng:   rand.New(rand.NewSource(seed)),
		entityMapper: ecs.NewMap4[
			components.Position,
			components.Velocity,
			components.Blob,
			components.Genetics,
		](world),
		entityFilter: ecs.NewFilter4[
			components.Position,
			components.Velocity,
			components.Blob,
			components.Genetics,
		](world),
		posMap:     ecs.NewMap1[components.Position](world),
		velMap:     ecs.NewMap1[components.Velocity](world),
		blobMap:    ecs.NewMap1[components.Blob](world),
		genMap:     ecs.NewMap1[components.Genetics](world),
		prevPos:    make(map[uint32]components.Position),
		entityByID: make(map[uint32]ecs.Entity),
	}

	g.terrain = systems.Generate(seed, cfg)
	g.berries = systems.NewBerryLifecycle(g.terrain.Occupancy, cfg.Growth)
	g.spatialGrid = systems.NewSpatialGrid(cfg.Derived.MapW32, cfg.Derived.MapH32, GridCellSize)
	g.parallel = newParallelState(cfg.Parallel.Threshold)

	for _, c := range g.terrain.BlobSpawns {
		g.spawnBlob(float32(c.X)+0.5, float32(c.Y)+0.5, g.rollGenetics())
	}

	return g
}

// SetCollector attaches a telemetry collector. Nil detaches.
func (g *Game) SetCollector(c *telemetry.Collector) {
	g.collector = c
}

// Step advances the simulation by dt seconds.
func (g *Game) Step(dt float32) {
	// 1. Capture start-of-tick positions and rebuild the spatial index
	g.beginTick()

	// 2. Needs, aging, condition, and death checks
	g.updatePassive(dt)

	// 3. Decide: pure target selection, possibly parallel
	g.decideAll()

	// 4. Act: movement, arrivals, interaction timers
	g.actAll(dt)

	// 5. Berry regrowth
	g.berries.Update(dt)

	// 6. Mating and births
	g.updateReproduction()

	// 7. Remove dead entities
	g.cleanupDead()

	g.tick++
	g.simTime += float64(dt)
	if g.collector != nil {
		g.collector.Tick(float64(dt), g.aliveCount)
	}
}

// beginTick snapshots positions and rebuilds the spatial grid over live
// blobs.
func (g *Game) beginTick() {
	clear(g.prevPos)
	g.spatialGrid.Clear()

	query := g.entityFilter.Query()
	for query.Next() {
		entity := query.Entity()
		pos, _, blob, _ := query.Get()

		if !blob.Alive {
			continue
		}
		g.prevPos[blob.ID] = *pos
		g.spatialGrid.Insert(entity, pos.X, pos.Y)
	}
}

// Shutdown stops background workers. The game is unusable afterwards.
func (g *Game) Shutdown() {
	g.parallel.stopWorkers()
}

// Tick returns the current simulation tick.
func (g *Game) Tick() int64 { return g.tick }

// Time returns the elapsed simulation time in seconds.
func (g *Game) Time() float64 { return g.simTime }

// AliveCount returns the number of living blobs.
func (g *Game) AliveCount() int { return g.aliveCount }

// BirthCount returns the total births since the start.
func (g *Game) BirthCount() int { return g.birthCount }

// DeathCount returns the total deaths since the start.
func (g *Game) DeathCount() int { return g.deathCount }

// Terrain returns the generated static world.
func (g *Game) Terrain() *systems.World { return g.terrain }

// Berries returns the berry lifecycle system.
func (g *Game) Berries() *systems.BerryLifecycle { return g.berries }

// Config returns the active configuration.
func (g *Game) Config() *config.Config { return g.cfg }

// ForEachBlob calls fn for every living blob. Read-only access for
// rendering and telemetry; fn must not mutate world structure.
func (g *Game) ForEachBlob(fn func(pos *components.Position, blob *components.Blob, gen *components.Genetics)) {
	query := g.entityFilter.Query()
	for query.Next() {
		pos, _, blob, gen := query.Get()
		if !blob.Alive {
			continue
		}
		fn(pos, blob, gen)
	}
}

// BlobByID returns the blob and position for the given id, or nil if it
// is not alive.
func (g *Game) BlobByID(id uint32) (*components.Blob, *components.Position) {
	entity, ok := g.entityByID[id]
	if !ok {
		return nil, nil
	}
	blob := g.blobMap.Get(entity)
	if blob == nil || !blob.Alive {
		return nil, nil
	}
	return blob, g.posMap.Get(entity)
}

// GeneticsByID returns the genetics for the given id, or nil if the blob
// is not alive.
func (g *Game) GeneticsByID(id uint32) *components.Genetics {
	entity, ok := g.entityByID[id]
	if !ok {
		return nil
	}
	blob := g.blobMap.Get(entity)
	if blob == nil || !blob.Alive {
		return nil
	}
	return g.genMap.Get(entity)
}
