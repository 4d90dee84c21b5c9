// Package view defines the renderable view abstraction and the manager
// that owns view navigation and render serialization.
//
// A View is a self-contained page with a fixed refresh cadence. The ordered
// view registry is fixed at construction and never changes at runtime.
// The Manager guarantees at most one in-flight render system-wide: the
// render lock is held for the entire render call, so no caller ever
// observes a partially drawn Frame.
//
// Navigation (Next/Prev) signals a latched wake channel. Multiple signals
// before a wait collapse into a single pending wake; only "something
// changed" is remembered, never a queue of intents.
package view
