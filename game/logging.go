package game

import (
	"fmt"
	"io"

	"github.com/pthm-cable/blobs/components"
	"github.com/pthm-cable/blobs/systems"
)

// logWriter is the destination for log output.
var logWriter io.Writer

// SetLogWriter sets the log output destination.
func SetLogWriter(w io.Writer) {
	logWriter = w
}

// Logf writes a formatted log message.
func Logf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if logWriter != nil {
		fmt.Fprintln(logWriter, msg)
	} else {
		fmt.Println(msg)
	}
}

// LogWorldState logs a population summary at the current tick.
func (g *Game) LogWorldState() {
	var stateCounts [int(components.StateDead) + 1]int
	var hunger, thirst, hp, age float32
	var minAge, maxAge float32

	first := true
	g.ForEachBlob(func(_ *components.Position, blob *components.Blob, _ *components.Genetics) {
		stateCounts[blob.State]++
		hunger += blob.Hunger
		thirst += blob.Thirst
		hp += blob.HP
		age += blob.Age
		if first || blob.Age < minAge {
			minAge = blob.Age
		}
		if first || blob.Age > maxAge {
			maxAge = blob.Age
		}
		first = false
	})

	n := g.aliveCount
	Logf("=== Tick %d (t=%.1fs) ===", g.tick, g.simTime)
	if n == 0 {
		Logf("Population extinct (births: %d, deaths: %d)", g.birthCount, g.deathCount)
		Logf("")
		return
	}

	fn := float32(n)
	Logf("Blobs: %d (births: %d, deaths: %d)", n, g.birthCount, g.deathCount)
	Logf("Needs: hunger=%.1f avg, thirst=%.1f avg, hp=%.1f avg", hunger/fn, thirst/fn, hp/fn)
	Logf("Age: %.1f avg, %.1f-%.1f range", age/fn, minAge, maxAge)
	Logf("States: wander=%d, water=%d, food=%d, mate=%d, drink=%d, harvest=%d",
		stateCounts[components.StateWandering],
		stateCounts[components.StateSeekingWater],
		stateCounts[components.StateSeekingFood],
		stateCounts[components.StateSeekingMate],
		stateCounts[components.StateDrinking],
		stateCounts[components.StateHarvesting])

	berries := 0
	for _, obj := range g.terrain.Occupancy.Objects() {
		if obj.Kind == systems.ObjectBerryBush && obj.Stage == systems.StageRipe {
			berries++
		}
	}
	Logf("Ripe bushes: %d", berries)
	Logf("")
}
