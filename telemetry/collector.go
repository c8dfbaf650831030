// Package telemetry collects simulation statistics and writes them to
// structured output.
package telemetry

// Collector accumulates events within time windows and produces WindowStats.
type Collector struct {
	windowDurationSec float64

	simTime     float64
	windowStart float64
	tick        int64
	population  int

	// Event counters for current window
	births   int
	deaths   int
	harvests int
	drinks   int
}

// NewCollector creates a new stats collector.
// windowDurationSec: how long each stats window lasts in simulation seconds.
func NewCollector(windowDurationSec float64) *Collector {
	if windowDurationSec <= 0 {
		windowDurationSec = 1
	}
	return &Collector{windowDurationSec: windowDurationSec}
}

// Tick advances the collector clock by dt and records the current
// population. Call once per simulation step.
func (c *Collector) Tick(dt float64, population int) {
	c.simTime += dt
	c.tick++
	c.population = population
}

// RecordBirth records a birth event.
func (c *Collector) RecordBirth() {
	c.births++
}

// RecordDeath records a death event.
func (c *Collector) RecordDeath() {
	c.deaths++
}

// RecordHarvest records a completed berry harvest.
func (c *Collector) RecordHarvest() {
	c.harvests++
}

// RecordDrink records a completed drink.
func (c *Collector) RecordDrink() {
	c.drinks++
}

// ShouldFlush returns true if the current window has elapsed.
func (c *Collector) ShouldFlush() bool {
	return c.simTime-c.windowStart >= c.windowDurationSec
}

// PopulationSample holds per-blob values sampled at window end, for
// distribution statistics.
type PopulationSample struct {
	Hunger   []float64
	Thirst   []float64
	HP       []float64
	Age      []float64
	Speed    []float64
	Sight    []float64
	Strength []float64
	Lifespan []float64
}

// Flush produces a WindowStats and resets counters for the next window.
func (c *Collector) Flush(sample PopulationSample) WindowStats {
	stats := WindowStats{
		WindowEndTick: c.tick,
		SimTimeSec:    c.simTime,
		Population:    c.population,

		Births:   c.births,
		Deaths:   c.deaths,
		Harvests: c.harvests,
		Drinks:   c.drinks,
	}

	stats.HungerMean, _, _, stats.HungerP50, _ = ComputeDistribution(sample.Hunger)
	stats.ThirstMean, _, _, stats.ThirstP50, _ = ComputeDistribution(sample.Thirst)
	stats.HPMean, _, stats.HPP10, stats.HPP50, stats.HPP90 = ComputeDistribution(sample.HP)
	stats.AgeMean, _, _, _, stats.AgeP90 = ComputeDistribution(sample.Age)

	stats.SpeedMean, stats.SpeedStd, _, _, _ = ComputeDistribution(sample.Speed)
	stats.SightMean, stats.SightStd, _, _, _ = ComputeDistribution(sample.Sight)
	stats.StrengthMean, stats.StrengthStd, _, _, _ = ComputeDistribution(sample.Strength)
	stats.LifespanMean, stats.LifespanStd, _, _, _ = ComputeDistribution(sample.Lifespan)

	// Reset for next window
	c.windowStart = c.simTime
	c.births = 0
	c.deaths = 0
	c.harvests = 0
	c.drinks = 0

	return stats
}
