/*
scheduler.go - Automated reserve cycle advance

PURPOSE:
  Periodically checks for reserves whose due date has passed and rolls
  them into their next cycle: due date moves forward by one interval,
  the saved balance counts as spent on the obligation, and the monthly
  contribution is re-smoothed over the new cycle.

  This is deliberately OUTSIDE the forecast engine. The engine treats
  every reserve as a flat monthly drain; the smoothing math only ever
  runs here and at record creation.

DESIGN:
  - Runs a background goroutine with configurable check interval
  - Skips reserves that are not yet due
  - Writes the whole reserve collection back in one Set

CONFIGURATION:
  - CheckInterval: How often to check (default: 12 hours)
  - Enabled: Whether scheduler is active (default: true)

USAGE:
  scheduler := NewReserveScheduler(repo)
  scheduler.Start()
  // ... later
  scheduler.Stop()

SEE ALSO:
  - adapter/adapter.go: AdvanceReserveCycle, SmoothContribution
*/
package api

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/warp/plan-engine/adapter"
	"github.com/warp/plan-engine/plan"
)

// ReserveScheduler handles automated reserve cycle advances.
type ReserveScheduler struct {
	Repo          *adapter.Repository
	CheckInterval time.Duration
	Enabled       bool

	ticker *time.Ticker
	stop   chan bool
	wg     sync.WaitGroup
	mu     sync.Mutex
}

// NewReserveScheduler creates a new scheduler.
func NewReserveScheduler(repo *adapter.Repository) *ReserveScheduler {
	return &ReserveScheduler{
		Repo:          repo,
		CheckInterval: 12 * time.Hour,
		Enabled:       true,
		stop:          make(chan bool),
	}
}

// Start begins the scheduler.
func (rs *ReserveScheduler) Start() {
	rs.mu.Lock()
	defer rs.mu.Unlock()

	if !rs.Enabled {
		log.Println("[Scheduler] Disabled, not starting")
		return
	}

	rs.ticker = time.NewTicker(rs.CheckInterval)
	rs.wg.Add(1)

	go rs.run()

	log.Printf("[Scheduler] Started with check interval: %v", rs.CheckInterval)
}

// Stop stops the scheduler.
func (rs *ReserveScheduler) Stop() {
	rs.mu.Lock()
	defer rs.mu.Unlock()

	if rs.ticker != nil {
		rs.ticker.Stop()
		close(rs.stop)
		rs.wg.Wait()
		log.Println("[Scheduler] Stopped")
	}
}

func (rs *ReserveScheduler) run() {
	defer rs.wg.Done()

	// Run immediately on start
	rs.checkAndAdvance()

	for {
		select {
		case <-rs.ticker.C:
			rs.checkAndAdvance()
		case <-rs.stop:
			return
		}
	}
}

func (rs *ReserveScheduler) checkAndAdvance() {
	ctx := context.Background()
	now := plan.CurrentMonth(time.Now())

	reserves, err := rs.Repo.LoadReserves(ctx)
	if err != nil {
		log.Printf("[Scheduler] Error loading reserves: %v", err)
		return
	}
	if len(reserves) == 0 {
		return
	}

	advanced := 0
	for i, r := range reserves {
		next, changed := adapter.AdvanceReserveCycle(r, now)
		if !changed {
			continue
		}
		reserves[i] = next
		advanced++
		log.Printf("[Scheduler] Advanced reserve %s (%s) to next cycle, due %s",
			next.ID, next.Name, next.DueDate)
	}

	if advanced == 0 {
		return
	}
	if err := rs.Repo.SaveReserves(ctx, reserves); err != nil {
		log.Printf("[Scheduler] Error saving reserves: %v", err)
		return
	}
	log.Printf("[Scheduler] Completed: %d reserve(s) advanced", advanced)
}

// RunNow triggers an immediate check (for testing/admin).
func (rs *ReserveScheduler) RunNow() {
	rs.checkAndAdvance()
}
