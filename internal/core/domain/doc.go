// Package domain contains the core types for the sdlsplit engine:
// the structural document model, split descriptors, merge modes,
// encodings and the engine's error kinds.
//
// The domain is pure data plus invariant-preserving accessors. It has
// no knowledge of files, databases or the CLI; those live behind the
// ports in internal/core/ports.
package domain
