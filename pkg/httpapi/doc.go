// Package httpapi exposes the display over HTTP: screenshots of the
// current view, next/prev navigation, view status, health, and
// Prometheus metrics. All endpoints except /health and /metrics pass
// through a token-bucket rate limiter and optional basic auth.
package httpapi
