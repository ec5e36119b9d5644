package CronJobs

import (
	"fmt"
	"log"

	"Escapade/Maps"

	"github.com/robfig/cron/v3"
)

// CacheSweeper periodically purges expired directions cache entries
type CacheSweeper struct {
	cronScheduler *cron.Cron
	cache         *Maps.DirectionsCache
	schedule      string
	jobID         cron.EntryID
}

// NewCacheSweeper creates a sweeper for the given cache. An empty schedule
// defaults to a sweep every minute.
func NewCacheSweeper(cache *Maps.DirectionsCache, schedule string) *CacheSweeper {
	if schedule == "" {
		schedule = "@every 1m"
	}
	return &CacheSweeper{
		cronScheduler: cron.New(),
		cache:         cache,
		schedule:      schedule,
	}
}

// Start initiates the sweep job
func (s *CacheSweeper) Start() error {
	var err error
	s.jobID, err = s.cronScheduler.AddFunc(s.schedule, func() {
		if removed := s.cache.PurgeExpired(); removed > 0 {
			log.Printf("Directions cache sweep removed %d expired entries", removed)
		}
	})
	if err != nil {
		return fmt.Errorf("error scheduling cache sweep: %w", err)
	}

	s.cronScheduler.Start()
	return nil
}

// Stop terminates the sweep job
func (s *CacheSweeper) Stop() {
	s.cronScheduler.Remove(s.jobID)
	s.cronScheduler.Stop()
}
