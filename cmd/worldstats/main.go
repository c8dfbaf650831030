// Package main runs headless batch simulations across multiple seeds
// and summarizes population outcomes.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/gocarina/gocsv"
	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/blobs/config"
	"github.com/pthm-cable/blobs/game"
	"github.com/pthm-cable/blobs/telemetry"
)

const dt = 1.0 / 60.0

// runResult holds the outcome of one seeded run.
type runResult struct {
	Seed       int64   `csv:"seed"`
	Ticks      int64   `csv:"ticks"`
	SimTime    float64 `csv:"sim_time"`
	Extinct    bool    `csv:"extinct"`
	FinalPop   int     `csv:"final_population"`
	PeakPop    int     `csv:"peak_population"`
	Births     int     `csv:"births"`
	Deaths     int     `csv:"deaths"`
	ElapsedSec float64 `csv:"elapsed_sec"`
}

func main() {
	configPath := flag.String("config", "", "Config YAML file (empty = use defaults)")
	seeds := flag.Int("seeds", 5, "Number of seeds to run")
	baseSeed := flag.Int64("base-seed", 42, "First seed; subsequent runs use base-seed + i*1000")
	maxTicks := flag.Int("max-ticks", 108000, "Tick cap per run (108000 = 30 sim minutes)")
	outputDir := flag.String("output", "", "Output directory for runs.csv and snapshots")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	if *outputDir != "" {
		if err := os.MkdirAll(*outputDir, 0755); err != nil {
			slog.Error("failed to create output directory", "error", err)
			os.Exit(1)
		}
	}

	results := make([]*runResult, 0, *seeds)
	for i := 0; i < *seeds; i++ {
		seed := *baseSeed + int64(i)*1000
		res := runOne(seed, cfg, *maxTicks, *outputDir)
		results = append(results, res)
		slog.Info("run complete",
			"seed", res.Seed,
			"ticks", res.Ticks,
			"extinct", res.Extinct,
			"final_population", res.FinalPop,
			"births", res.Births,
			"deaths", res.Deaths,
			"elapsed_sec", res.ElapsedSec,
		)
	}

	if *outputDir != "" {
		if err := writeRuns(results, filepath.Join(*outputDir, "runs.csv")); err != nil {
			slog.Error("failed to write runs.csv", "error", err)
			os.Exit(1)
		}
	}

	summarize(results)
}

// runOne executes a single headless run to the tick cap or extinction.
func runOne(seed int64, cfg *config.Config, maxTicks int, outputDir string) *runResult {
	start := time.Now()

	g := game.New(seed, cfg)
	defer g.Shutdown()
	g.SetCollector(telemetry.NewCollector(cfg.Telemetry.StatsWindow))

	peak := g.AliveCount()
	for int(g.Tick()) < maxTicks && g.AliveCount() > 0 {
		g.Step(dt)
		if g.AliveCount() > peak {
			peak = g.AliveCount()
		}
	}

	if outputDir != "" {
		runDir := filepath.Join(outputDir, fmt.Sprintf("seed_%d", seed))
		if err := os.MkdirAll(runDir, 0755); err == nil {
			if _, err := telemetry.SaveSnapshot(g.BuildSnapshot(), runDir); err != nil {
				slog.Warn("failed to save snapshot", "seed", seed, "error", err)
			}
		}
	}

	return &runResult{
		Seed:       seed,
		Ticks:      g.Tick(),
		SimTime:    g.Time(),
		Extinct:    g.AliveCount() == 0,
		FinalPop:   g.AliveCount(),
		PeakPop:    peak,
		Births:     g.BirthCount(),
		Deaths:     g.DeathCount(),
		ElapsedSec: time.Since(start).Seconds(),
	}
}

func writeRuns(results []*runResult, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating runs file: %w", err)
	}
	defer f.Close()
	return gocsv.Marshal(results, f)
}

// summarize logs aggregate statistics across all runs.
func summarize(results []*runResult) {
	finalPops := make([]float64, len(results))
	births := make([]float64, len(results))
	survival := make([]float64, len(results))
	extinct := 0
	for i, r := range results {
		finalPops[i] = float64(r.FinalPop)
		births[i] = float64(r.Births)
		survival[i] = r.SimTime
		if r.Extinct {
			extinct++
		}
	}

	slog.Info("batch summary",
		"runs", len(results),
		"extinct", extinct,
		"final_population_mean", stat.Mean(finalPops, nil),
		"final_population_std", stdDev(finalPops),
		"births_mean", stat.Mean(births, nil),
		"survival_time_mean", stat.Mean(survival, nil),
	)
}

func stdDev(xs []float64) float64 {
	if len(xs) < 2 {
		return 0
	}
	return stat.StdDev(xs, nil)
}
