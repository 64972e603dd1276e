package cache

import (
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

const DefaultJanitorSchedule = "@every 5m"

// StartJanitor sweeps expired cache entries on a cron schedule.
// The caller stops the returned cron on shutdown.
func StartJanitor(schedule string, purgers ...Purger) (*cron.Cron, error) {
	if schedule == "" {
		schedule = DefaultJanitorSchedule
	}
	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger)))

	if _, err := c.AddFunc(schedule, func() { sweep(time.Now(), purgers) }); err != nil {
		return nil, err
	}
	log.Printf("[CACHE-JANITOR] started schedule=%q caches=%d", schedule, len(purgers))
	c.Start()
	return c, nil
}

func sweep(now time.Time, purgers []Purger) int {
	total := 0
	for _, p := range purgers {
		total += p.Purge(now)
	}
	if total > 0 {
		log.Printf("[CACHE-JANITOR] evicted %d expired entries", total)
	}
	return total
}
