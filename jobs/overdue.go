package jobs

import (
	"context"
	"log"
	"time"

	"github.com/Archiit19/equipment-lending/db"
)

// Sweeper runs the overdue scan on a fixed cadence. The scan itself lives in
// the repo and takes an explicit now, so tests drive it without a scheduler.
type Sweeper struct {
	Repo     *db.Repo
	Interval time.Duration
}

func NewSweeper(repo *db.Repo, interval time.Duration) *Sweeper {
	return &Sweeper{Repo: repo, Interval: interval}
}

// Start launches the sweep loop; it stops when ctx is cancelled.
func (s *Sweeper) Start(ctx context.Context) {
	log.Printf("overdue sweep every %s", s.Interval)
	go s.loop(ctx)
}

func (s *Sweeper) loop(ctx context.Context) {
	t := time.NewTicker(s.Interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-t.C:
			n, err := s.Repo.RunOverdueSweep(ctx, now.UTC())
			if err != nil {
				log.Printf("overdue sweep: %v", err)
				continue
			}
			if n > 0 {
				log.Printf("marked %d request(s) overdue", n)
			}
		}
	}
}
