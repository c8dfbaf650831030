package game

import (
	"runtime"
	"sync"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/blobs/components"
	"github.com/pthm-cable/blobs/systems"
)

// blobSnapshot captures read-only state for the decide phase.
type blobSnapshot struct {
	Entity ecs.Entity
	Pos    components.Position
	Blob   components.Blob
	Gen    components.Genetics
}

// workerScratch holds per-worker reusable buffers.
type workerScratch struct {
	Neighbors []systems.Neighbor
}

// workChunk represents a range of snapshots for a worker to process.
type workChunk struct {
	start, end int
}

// parallelState holds resources for parallel decision computation.
// Below threshold, decisions run single-threaded; goroutine overhead
// dominates for small populations.
type parallelState struct {
	threshold  int
	snapshots  []blobSnapshot
	decisions  []decision
	scratches  []workerScratch
	numWorkers int

	// Worker pool channels
	workChan chan workChunk // sends work to workers
	doneChan chan struct{}  // workers signal completion
	stopChan chan struct{}  // signals workers to exit
	wg       sync.WaitGroup // tracks active workers
	running  bool           // true if workers are running
}

func newParallelState(threshold int) *parallelState {
	numWorkers := runtime.GOMAXPROCS(0)
	scratches := make([]workerScratch, numWorkers)
	for i := range scratches {
		scratches[i].Neighbors = make([]systems.Neighbor, 0, 64)
	}
	return &parallelState{
		threshold:  threshold,
		numWorkers: numWorkers,
		scratches:  scratches,
		snapshots:  make([]blobSnapshot, 0, 256),
		decisions:  make([]decision, 0, 256),
	}
}

// startWorkers launches persistent worker goroutines.
func (p *parallelState) startWorkers(g *Game) {
	if p.running {
		return
	}

	p.workChan = make(chan workChunk, p.numWorkers)
	p.doneChan = make(chan struct{}, p.numWorkers)
	p.stopChan = make(chan struct{})
	p.running = true

	for i := 0; i < p.numWorkers; i++ {
		p.wg.Add(1)
		go p.worker(g, i)
	}
}

// stopWorkers signals all workers to exit and waits for them.
func (p *parallelState) stopWorkers() {
	if !p.running {
		return
	}

	close(p.stopChan)
	p.wg.Wait()
	close(p.workChan)
	close(p.doneChan)
	p.running = false
}

// worker runs in a goroutine, processing chunks until stopped.
func (p *parallelState) worker(g *Game, workerID int) {
	defer p.wg.Done()
	scratch := &p.scratches[workerID]

	for {
		select {
		case <-p.stopChan:
			return
		case chunk, ok := <-p.workChan:
			if !ok {
				return
			}
			g.computeChunk(chunk.start, chunk.end, scratch)
			p.doneChan <- struct{}{}
		}
	}
}

// decideAll runs the decide phase: snapshot, compute, apply. The
// compute step is pure per blob, so chunks can run concurrently; the
// serial apply step keeps results identical either way.
func (g *Game) decideAll() {
	// Phase A: Build snapshots (single-threaded)
	g.parallel.snapshots = g.parallel.snapshots[:0]

	query := g.entityFilter.Query()
	for query.Next() {
		entity := query.Entity()
		pos, _, blob, gen := query.Get()

		if !blob.Alive {
			continue
		}

		g.parallel.snapshots = append(g.parallel.snapshots, blobSnapshot{
			Entity: entity,
			Pos:    *pos,
			Blob:   *blob,
			Gen:    *gen,
		})
	}

	n := len(g.parallel.snapshots)
	if n == 0 {
		return
	}

	// Resize decisions slice
	if cap(g.parallel.decisions) < n {
		g.parallel.decisions = make([]decision, n)
	}
	g.parallel.decisions = g.parallel.decisions[:n]

	// Phase B: Compute - single or parallel based on population
	if n < g.parallel.threshold {
		g.computeChunk(0, n, &g.parallel.scratches[0])
	} else {
		g.computeParallel(n)
	}

	// Phase C: Apply decisions (single-threaded)
	g.applyDecisions()
}

// computeParallel dispatches work to the worker pool.
func (g *Game) computeParallel(n int) {
	if !g.parallel.running {
		g.parallel.startWorkers(g)
	}

	numWorkers := g.parallel.numWorkers
	chunkSize := (n + numWorkers - 1) / numWorkers

	chunksDispatched := 0
	for w := 0; w < numWorkers; w++ {
		start := w * chunkSize
		end := start + chunkSize
		if end > n {
			end = n
		}
		if start >= end {
			continue
		}

		g.parallel.workChan <- workChunk{start: start, end: end}
		chunksDispatched++
	}

	for i := 0; i < chunksDispatched; i++ {
		<-g.parallel.doneChan
	}
}

// computeChunk decides for a range of snapshots.
func (g *Game) computeChunk(i0, i1 int, scratch *workerScratch) {
	for i := i0; i < i1; i++ {
		g.parallel.decisions[i] = g.decideOne(&g.parallel.snapshots[i], scratch)
	}
}

// applyDecisions writes computed decisions back to blob components.
func (g *Game) applyDecisions() {
	for i, snap := range g.parallel.snapshots {
		d := &g.parallel.decisions[i]
		if d.keep {
			continue
		}

		blob := g.blobMap.Get(snap.Entity)
		if blob == nil || !blob.Alive {
			continue
		}

		// Leaving an interaction early discards its progress.
		if blob.State == components.StateDrinking || blob.State == components.StateHarvesting {
			blob.InteractionTimer = 0
		}

		blob.State = d.state
		blob.Target = d.target
		blob.TargetX = d.targetX
		blob.TargetY = d.targetY
		blob.TargetID = d.targetID
	}
}
