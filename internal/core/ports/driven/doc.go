// Package driven defines the interfaces the engine depends on:
// encoded file access, settings and the operation history store.
// Adapters under internal/adapters/driven implement them.
package driven
