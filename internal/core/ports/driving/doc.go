// Package driving defines the interfaces through which callers (the
// CLI today, a GUI or host application tomorrow) drive the engine.
package driving
