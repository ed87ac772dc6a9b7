// internal/app/system/timeouts/timeouts.go

// Package timeouts provides centralized timeout values for handler
// operations. The stores impose no timeouts of their own; handlers wrap
// their request contexts with these values so one slow partition read
// cannot hold a request open indefinitely.
//
// Guidelines for choosing a timeout:
//   - Ping: health checks and connectivity verification
//   - Short: single-document reads and writes
//   - Medium: container listings and the access request queries
//   - Long: the reflection fan-out aggregation and cache refreshes
package timeouts

import (
	"sync"
	"time"
)

// Default timeout values (used if Configure is not called).
const (
	DefaultPing   = 2 * time.Second
	DefaultShort  = 5 * time.Second
	DefaultMedium = 10 * time.Second
	DefaultLong   = 30 * time.Second
)

var (
	mu sync.RWMutex

	ping   = DefaultPing
	short  = DefaultShort
	medium = DefaultMedium
	long   = DefaultLong
)

// Configure overrides the default timeout tiers. Zero values keep the
// current setting.
func Configure(pingT, shortT, mediumT, longT time.Duration) {
	mu.Lock()
	defer mu.Unlock()
	if pingT > 0 {
		ping = pingT
	}
	if shortT > 0 {
		short = shortT
	}
	if mediumT > 0 {
		medium = mediumT
	}
	if longT > 0 {
		long = longT
	}
}

// Ping returns the timeout for health checks.
func Ping() time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	return ping
}

// Short returns the timeout for single-document operations.
func Short() time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	return short
}

// Medium returns the timeout for listings and queries.
func Medium() time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	return medium
}

// Long returns the timeout for fan-out aggregation and cache refreshes.
func Long() time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	return long
}
