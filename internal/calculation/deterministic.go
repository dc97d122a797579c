package calculation

import "time"

// nowFunc returns the current time; reports stamp GeneratedAt and maturity with it.
var nowFunc = time.Now

// SetNowFunc overrides the time provider (use only in tests).
func SetNowFunc(f func() time.Time) { nowFunc = f }

// seedFunc supplies the simulation seed when none is configured.
var seedFunc = func() int64 { return time.Now().UnixNano() }

// SetSeedFunc overrides the seed provider (use only in tests).
func SetSeedFunc(f func() int64) { seedFunc = f }
