package main

import (
	"flag"
	"log/slog"
	"os"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/blobs/camera"
	"github.com/pthm-cable/blobs/components"
	"github.com/pthm-cable/blobs/config"
	"github.com/pthm-cable/blobs/game"
	"github.com/pthm-cable/blobs/renderer"
	"github.com/pthm-cable/blobs/telemetry"
	"github.com/pthm-cable/blobs/ui"
)

// dt is the fixed simulation timestep in seconds.
const dt = 1.0 / 60.0

const sidePanelWidth = 220

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without graphics")
	logStats := flag.Bool("log-stats", false, "Output stats via slog")
	statsWindow := flag.Float64("stats-window", 0, "Stats window size in seconds (0 = use config)")
	snapshotDir := flag.String("snapshot-dir", "", "Directory for snapshot files")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	seed := flag.Int64("seed", 0, "World seed (0 = time-based)")
	maxTicks := flag.Int("max-ticks", 0, "Stop after N ticks (0 = unlimited)")
	stepsPerUpdate := flag.Int("steps-per-update", 1, "Simulation ticks per update call (higher = faster headless runs)")

	flag.Parse()

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	// Set up seed
	worldSeed := *seed
	if worldSeed == 0 {
		worldSeed = time.Now().UnixNano()
	}

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Use config stats window if not overridden by CLI
	statsWindowSec := cfg.Telemetry.StatsWindow
	if *statsWindow > 0 {
		statsWindowSec = *statsWindow
	}

	om, err := telemetry.NewOutputManager(*outputDir)
	if err != nil {
		slog.Error("failed to create output directory", "error", err)
		os.Exit(1)
	}
	defer om.Close()
	if err := om.WriteConfig(cfg); err != nil {
		slog.Error("failed to write config snapshot", "error", err)
	}

	g := game.New(worldSeed, cfg)
	defer g.Shutdown()
	g.SetCollector(telemetry.NewCollector(statsWindowSec))

	slog.Info("world generated",
		"seed", worldSeed,
		"map", cfg.World.MapWidth*cfg.World.MapHeight,
		"blobs", g.AliveCount(),
	)

	if *headless {
		runHeadless(g, om, *logStats, *maxTicks, *stepsPerUpdate, *snapshotDir)
		return
	}
	runGraphical(g, om, *logStats, *maxTicks, *snapshotDir)
}

// worldLogTicks is the interval between world-state log dumps in
// headless mode, one simulated minute at the fixed timestep.
const worldLogTicks = 3600

// runHeadless runs the simulation without graphics until maxTicks or
// extinction.
func runHeadless(g *game.Game, om *telemetry.OutputManager, logStats bool, maxTicks, stepsPerUpdate int, snapshotDir string) {
	slog.Info("starting headless simulation",
		"max_ticks", maxTicks,
		"steps_per_update", stepsPerUpdate,
	)

	game.SetLogWriter(os.Stderr)

	lastWorldLog := int64(0)
	for {
		for i := 0; i < stepsPerUpdate; i++ {
			g.Step(dt)
		}
		if err := g.FlushStats(om, logStats); err != nil {
			slog.Error("failed to write stats", "error", err)
		}
		if logStats && g.Tick()-lastWorldLog >= worldLogTicks {
			g.LogWorldState()
			lastWorldLog = g.Tick()
		}

		if maxTicks > 0 && int(g.Tick()) >= maxTicks {
			slog.Info("max ticks reached", "tick", g.Tick())
			break
		}
		if g.AliveCount() == 0 {
			slog.Info("population extinct", "tick", g.Tick())
			break
		}
	}

	saveFinalSnapshot(g, snapshotDir)
}

func saveFinalSnapshot(g *game.Game, dir string) {
	if dir == "" {
		return
	}
	path, err := telemetry.SaveSnapshot(g.BuildSnapshot(), dir)
	if err != nil {
		slog.Error("failed to save snapshot", "error", err)
		return
	}
	slog.Info("snapshot saved", "path", path)
}

// app holds the interactive session state.
type app struct {
	g     *game.Game
	cam   *camera.Camera
	rend  *renderer.Renderer
	hud   *ui.HUD
	panel *ui.SidePanel

	flags    renderer.DebugFlags
	paused   bool
	speed    int
	selected uint32
	hasSel   bool
}

func runGraphical(g *game.Game, om *telemetry.OutputManager, logStats bool, maxTicks int, snapshotDir string) {
	cfg := g.Config()

	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), "Blob World")
	defer rl.CloseWindow()
	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	tileSize := cfg.World.TileSize
	worldPxW := float32(cfg.World.MapWidth * tileSize)
	worldPxH := float32(cfg.World.MapHeight * tileSize)
	viewW := float32(cfg.Screen.Width - sidePanelWidth)
	viewH := float32(cfg.Screen.Height)

	a := &app{
		g:     g,
		cam:   camera.New(viewW, viewH, worldPxW, worldPxH),
		rend:  renderer.New(tileSize),
		hud:   ui.NewHUD(),
		panel: ui.NewSidePanel(sidePanelWidth),
		speed: 1,
	}

	for !rl.WindowShouldClose() {
		a.handleInput()

		if !a.paused {
			for i := 0; i < a.speed; i++ {
				g.Step(dt)
			}
			if err := g.FlushStats(om, logStats); err != nil {
				slog.Error("failed to write stats", "error", err)
			}
		}

		a.draw()

		if maxTicks > 0 && int(g.Tick()) >= maxTicks {
			break
		}
	}

	saveFinalSnapshot(g, snapshotDir)
}

// handleInput processes keyboard and mouse input. Clicks over the side
// panel never select blobs.
func (a *app) handleInput() {
	if rl.IsKeyPressed(rl.KeySpace) {
		a.paused = !a.paused
	}
	if rl.IsKeyPressed(rl.KeyComma) && a.speed > 1 {
		a.speed--
	}
	if rl.IsKeyPressed(rl.KeyPeriod) && a.speed < 10 {
		a.speed++
	}
	if rl.IsKeyPressed(rl.KeyG) {
		a.flags.ShowGrid = !a.flags.ShowGrid
	}
	if rl.IsKeyPressed(rl.KeyS) {
		a.flags.ShowSight = !a.flags.ShowSight
	}
	if rl.IsKeyPressed(rl.KeyT) {
		a.flags.ShowTargets = !a.flags.ShowTargets
	}

	// Camera
	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		a.cam.ZoomBy(1 + wheel*0.1)
	}
	panSpeed := float32(8)
	if rl.IsKeyDown(rl.KeyRight) {
		a.cam.Pan(panSpeed, 0)
	}
	if rl.IsKeyDown(rl.KeyLeft) {
		a.cam.Pan(-panSpeed, 0)
	}
	if rl.IsKeyDown(rl.KeyDown) {
		a.cam.Pan(0, panSpeed)
	}
	if rl.IsKeyDown(rl.KeyUp) {
		a.cam.Pan(0, -panSpeed)
	}
	if rl.IsMouseButtonDown(rl.MouseRightButton) {
		delta := rl.GetMouseDelta()
		a.cam.Pan(-delta.X, -delta.Y)
	}

	mouse := rl.GetMousePosition()
	if rl.IsMouseButtonPressed(rl.MouseLeftButton) && mouse.X < a.cam.ViewportW {
		a.pickBlob(mouse.X, mouse.Y)
	}
}

// pickBlob selects the blob nearest the clicked point, within half a
// tile. Clicking empty ground clears the selection.
func (a *app) pickBlob(sx, sy float32) {
	wxPx, wyPx := a.cam.ScreenToWorld(sx, sy)
	wx := wxPx / a.rend.TileSize()
	wy := wyPx / a.rend.TileSize()

	bestDistSq := float32(0.25) // half a tile, squared
	a.hasSel = false
	a.g.ForEachBlob(func(pos *components.Position, blob *components.Blob, _ *components.Genetics) {
		dx := pos.X - wx
		dy := pos.Y - wy
		distSq := dx*dx + dy*dy
		if distSq < bestDistSq {
			bestDistSq = distSq
			a.selected = blob.ID
			a.hasSel = true
		}
	})
}

func (a *app) draw() {
	cfg := a.g.Config()

	rl.BeginDrawing()
	rl.ClearBackground(rl.Black)

	a.rend.DrawTerrain(a.cam, a.g.Terrain().Tiles, a.flags)
	a.rend.DrawObjects(a.cam, a.g.Terrain(), a.flags)

	maxHP := float32(cfg.Blobs.MaxHP)
	a.g.ForEachBlob(func(pos *components.Position, blob *components.Blob, _ *components.Genetics) {
		a.rend.DrawBlob(a.cam, pos, blob, maxHP, a.hasSel && blob.ID == a.selected, a.flags)
	})

	a.hud.Draw(ui.HUDData{
		Seed:       a.g.Terrain().Seed,
		Tick:       a.g.Tick(),
		SimTime:    a.g.Time(),
		Population: a.g.AliveCount(),
		Births:     a.g.BirthCount(),
		Deaths:     a.g.DeathCount(),
		Speed:      a.speed,
		FPS:        rl.GetFPS(),
		Paused:     a.paused,
	})
	a.hud.DrawControls(int32(cfg.Screen.Height))

	var info *ui.BlobInfo
	if a.hasSel {
		if blob, _ := a.g.BlobByID(a.selected); blob != nil {
			gen := a.g.GeneticsByID(a.selected)
			info = &ui.BlobInfo{
				ID:     blob.ID,
				State:  blob.State,
				Hunger: blob.Hunger,
				Thirst: blob.Thirst,
				HP:     blob.HP,
				MaxHP:  maxHP,
				Age:    blob.Age,
			}
			if gen != nil {
				info.Genetics = *gen
			}
		} else {
			a.hasSel = false
		}
	}

	a.panel.Draw(int32(cfg.Screen.Width), int32(cfg.Screen.Height), a.g.Terrain(), &a.flags, &a.paused, &a.speed, info)

	rl.EndDrawing()
}
