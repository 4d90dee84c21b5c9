// Package solar computes daily sun event times (dawn, sunrise, solar
// noon, sunset, dusk) for a fixed location, with a per-day cache so the
// computation runs at most once per calendar day.
package solar
