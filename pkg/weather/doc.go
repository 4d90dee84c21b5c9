// Package weather fetches current conditions, forecast, and air quality
// from an OpenWeatherMap-shaped API and maintains the last known good
// snapshot.
//
// The snapshot follows a dual-field-atomic policy: the current-conditions
// and forecast fetches are issued concurrently, each response is parsed
// into locals first, and only when BOTH succeed are current, forecast,
// and lastUpdated assigned together in one critical section. The lock is
// never held across network I/O, so a hung fetch never blocks a reader.
// Any failure, full or partial, leaves the prior snapshot completely
// unchanged: stale-but-valid data is always preferred over no data.
//
// All field access during parsing is defensive: a missing field gets an
// explicit default (absent description becomes "Unknown") instead of
// failing the fetch.
package weather
