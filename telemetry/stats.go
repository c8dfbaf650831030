package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a time window.
type WindowStats struct {
	WindowEndTick int64   `csv:"window_end"`
	SimTimeSec    float64 `csv:"sim_time"`

	// Population at window end
	Population int `csv:"population"`

	// Events during window
	Births   int `csv:"births"`
	Deaths   int `csv:"deaths"`
	Harvests int `csv:"harvests"`
	Drinks   int `csv:"drinks"`

	// Need and health distribution (sampled at window end)
	HungerMean float64 `csv:"hunger_mean"`
	HungerP50  float64 `csv:"hunger_p50"`
	ThirstMean float64 `csv:"thirst_mean"`
	ThirstP50  float64 `csv:"thirst_p50"`
	HPMean     float64 `csv:"hp_mean"`
	HPP10      float64 `csv:"hp_p10"`
	HPP50      float64 `csv:"hp_p50"`
	HPP90      float64 `csv:"hp_p90"`
	AgeMean    float64 `csv:"age_mean"`
	AgeP90     float64 `csv:"age_p90"`

	// Trait distribution, for watching selection drift
	SpeedMean    float64 `csv:"speed_mean"`
	SpeedStd     float64 `csv:"speed_std"`
	SightMean    float64 `csv:"sight_mean"`
	SightStd     float64 `csv:"sight_std"`
	StrengthMean float64 `csv:"strength_mean"`
	StrengthStd  float64 `csv:"strength_std"`
	LifespanMean float64 `csv:"lifespan_mean"`
	LifespanStd  float64 `csv:"lifespan_std"`
}

// ComputeDistribution calculates mean, standard deviation, and the 10th,
// 50th, and 90th percentiles of values. Returns zeros for empty input.
func ComputeDistribution(values []float64) (mean, std, p10, p50, p90 float64) {
	n := len(values)
	if n == 0 {
		return 0, 0, 0, 0, 0
	}

	mean = stat.Mean(values, nil)
	if n > 1 {
		std = stat.StdDev(values, nil)
	}

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	p10 = stat.Quantile(0.10, stat.Empirical, sorted, nil)
	p50 = stat.Quantile(0.50, stat.Empirical, sorted, nil)
	p90 = stat.Quantile(0.90, stat.Empirical, sorted, nil)

	return mean, std, p10, p50, p90
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int64("window_end", s.WindowEndTick),
		slog.Float64("sim_time", s.SimTimeSec),
		slog.Int("population", s.Population),
		slog.Int("births", s.Births),
		slog.Int("deaths", s.Deaths),
		slog.Int("harvests", s.Harvests),
		slog.Int("drinks", s.Drinks),
		slog.Float64("hunger_mean", s.HungerMean),
		slog.Float64("thirst_mean", s.ThirstMean),
		slog.Float64("hp_mean", s.HPMean),
		slog.Float64("age_mean", s.AgeMean),
		slog.Float64("speed_mean", s.SpeedMean),
		slog.Float64("sight_mean", s.SightMean),
		slog.Float64("strength_mean", s.StrengthMean),
		slog.Float64("lifespan_mean", s.LifespanMean),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats", "window", s)
}
