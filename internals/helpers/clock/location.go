// file: internals/helpers/clock/location.go
package clock

import (
	"log"
	"strings"
	"sync"
	"time"
)

var (
	locMu    sync.RWMutex
	locCache = map[string]*time.Location{}
)

// Location resolves an IANA zone name, caching the result.
// Unknown or empty names fall back to UTC.
func Location(name string) *time.Location {
	name = strings.TrimSpace(name)
	if name == "" {
		return time.UTC
	}

	locMu.RLock()
	loc, ok := locCache[name]
	locMu.RUnlock()
	if ok {
		return loc
	}

	loc, err := time.LoadLocation(name)
	if err != nil {
		log.Printf("[WARN] unknown time zone %q, using UTC: %v", name, err)
		loc = time.UTC
	}

	locMu.Lock()
	locCache[name] = loc
	locMu.Unlock()
	return loc
}

// Now returns the wall clock in the named zone.
func Now(zone string) time.Time {
	return time.Now().In(Location(zone))
}
