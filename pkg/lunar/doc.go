// Package lunar computes moon phase data and yearly sun-geometry tables
// (analemma points, solstices and equinoxes). The yearly table is cached
// so it is computed once per calendar year.
package lunar
