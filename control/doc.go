// Package control
// Author: momentics <momentics@gmail.com>
//
// Runtime metrics and debug introspection layer for wait sets.
// Part of hioload-waitset high-load architecture core.
//
// Provides concurrent-safe instrumentation primitives including:
//   - Prometheus collectors fed by the wait set observer hook
//   - Debug probe registration, state dumps, and rendered snapshots
//
// Nothing in this package touches the dispatch path unless wired in
// through waitset.Builder.Observer.
package control
