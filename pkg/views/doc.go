// Package views implements the concrete display views: clock, weather,
// air quality, sun times, day length, moon phase, and the analemma
// chart. Each view renders a complete frame at its own cadence and
// shares the navigation bar drawn along the bottom edge.
package views
