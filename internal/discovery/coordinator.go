package discovery

import (
	"context"
	"log"
	"sort"
	"sync"
	"time"
)

const defaultAdapterTimeout = 30 * time.Second

// Snapshot is the aggregated result of one discovery cycle.
type Snapshot struct {
	Cameras  []Camera                 `json:"cameras"`
	Warnings []Warning                `json:"warnings,omitempty"`
	Timings  map[Source]time.Duration `json:"-"`
	Taken    time.Time                `json:"taken"`
}

// Coordinator fans discovery out to every registered adapter concurrently and
// owns the single current snapshot. A cycle replaces the snapshot atomically;
// readers always see a complete one.
type Coordinator struct {
	adapters []Adapter
	timeout  time.Duration

	mu       sync.Mutex
	snapshot Snapshot
	prevIDs  map[string]struct{}
	tracker  *StalenessTracker
}

func NewCoordinator(adapters []Adapter, adapterTimeout time.Duration) *Coordinator {
	if adapterTimeout <= 0 {
		adapterTimeout = defaultAdapterTimeout
	}
	return &Coordinator{
		adapters: adapters,
		timeout:  adapterTimeout,
		tracker:  NewStalenessTracker(),
	}
}

type adapterResult struct {
	cameras  []Camera
	warnings []Warning
	elapsed  time.Duration
}

// Discover runs one full cycle: all adapters in parallel, each isolated
// behind its own goroutine and timeout, results aggregated in registration
// order. The new snapshot is published only after every adapter finished.
func (c *Coordinator) Discover(ctx context.Context) Snapshot {
	results := make([]adapterResult, len(c.adapters))

	var wg sync.WaitGroup
	for i, adapter := range c.adapters {
		wg.Add(1)
		go func(i int, adapter Adapter) {
			defer wg.Done()
			start := time.Now()

			if !adapter.Available() {
				results[i] = adapterResult{}
				return
			}

			actx, cancel := context.WithTimeout(ctx, c.timeout)
			defer cancel()

			cameras, warnings := adapter.Discover(actx)
			results[i] = adapterResult{
				cameras:  cameras,
				warnings: warnings,
				elapsed:  time.Since(start),
			}
		}(i, adapter)
	}
	wg.Wait()

	snap := Snapshot{
		Timings: make(map[Source]time.Duration, len(c.adapters)),
		Taken:   time.Now(),
	}
	seen := make(map[string]Source)

	for i, adapter := range c.adapters {
		res := results[i]
		snap.Timings[adapter.Source()] = res.elapsed
		snap.Warnings = append(snap.Warnings, res.warnings...)

		for _, cam := range res.cameras {
			// Two integrations can surface the same physical device; the
			// first-registered adapter wins and the duplicate is reported.
			if firstSource, dup := seen[cam.ID]; dup {
				snap.Warnings = append(snap.Warnings, warnf(
					cam.Source, cam.ID,
					"duplicate id, already discovered by %s", firstSource,
				))
				continue
			}
			seen[cam.ID] = cam.Source
			snap.Cameras = append(snap.Cameras, cam)
		}
	}

	ids := make([]string, 0, len(snap.Cameras))
	for _, cam := range snap.Cameras {
		ids = append(ids, cam.ID)
	}

	c.mu.Lock()
	for i := range snap.Cameras {
		_, existed := c.prevIDs[snap.Cameras[i].ID]
		snap.Cameras[i].IsNew = !existed
	}
	c.tracker.Observe(ids)
	c.prevIDs = toSet(ids)
	c.snapshot = snap
	c.mu.Unlock()

	log.Printf("discovery: %d cameras from %d adapters (%d warnings)",
		len(snap.Cameras), len(c.adapters), len(snap.Warnings))
	return snap
}

// Cameras returns a copy of the current snapshot's descriptor list.
func (c *Coordinator) Cameras() []Camera {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Camera(nil), c.snapshot.Cameras...)
}

// Warnings returns a copy of the current snapshot's warnings.
func (c *Coordinator) Warnings() []Warning {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Warning(nil), c.snapshot.Warnings...)
}

// Status reports the staleness state with the id-set drift since the last
// generation.
func (c *Coordinator) Status() (stale bool, added, removed []string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.tracker.Stale(), c.tracker.Added(), c.tracker.Removed()
}

// MarkGenerated captures the current snapshot's id set as the staleness
// baseline. Call after a successful generation.
func (c *Coordinator) MarkGenerated() {
	c.mu.Lock()
	defer c.mu.Unlock()
	ids := make([]string, 0, len(c.snapshot.Cameras))
	for _, cam := range c.snapshot.Cameras {
		ids = append(ids, cam.ID)
	}
	c.tracker.MarkGenerated(ids)
}

// AdapterStatus reports which adapters have their vendor integration
// configured.
func (c *Coordinator) AdapterStatus() map[Source]bool {
	status := make(map[Source]bool, len(c.adapters))
	for _, a := range c.adapters {
		status[a.Source()] = a.Available()
	}
	return status
}

// Selected filters the current snapshot down to the chosen camera ids. An
// empty selection means every discovered camera. Unavailable cameras are
// dropped when excludeUnavailable is set.
func (c *Coordinator) Selected(ids []string, excludeUnavailable bool) []Camera {
	cameras := c.Cameras()

	if len(ids) > 0 {
		want := toSet(ids)
		kept := cameras[:0]
		for _, cam := range cameras {
			if _, ok := want[cam.ID]; ok {
				kept = append(kept, cam)
			}
		}
		cameras = kept
	}

	if excludeUnavailable {
		kept := cameras[:0]
		for _, cam := range cameras {
			if cam.Available {
				kept = append(kept, cam)
			}
		}
		cameras = kept
	}

	return cameras
}

// ByArea groups the current snapshot by spatial area; cameras without one
// land under the empty key.
func (c *Coordinator) ByArea() map[string][]Camera {
	byArea := make(map[string][]Camera)
	for _, cam := range c.Cameras() {
		byArea[cam.Area] = append(byArea[cam.Area], cam)
	}
	return byArea
}

// Sources returns every registered adapter source in registration order.
func (c *Coordinator) Sources() []Source {
	sources := make([]Source, 0, len(c.adapters))
	for _, a := range c.adapters {
		sources = append(sources, a.Source())
	}
	return sources
}

// SortedIDs returns the current snapshot's camera ids in sorted order.
func (c *Coordinator) SortedIDs() []string {
	cameras := c.Cameras()
	ids := make([]string, 0, len(cameras))
	for _, cam := range cameras {
		ids = append(ids, cam.ID)
	}
	sort.Strings(ids)
	return ids
}
