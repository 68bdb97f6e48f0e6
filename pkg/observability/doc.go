// Package observability provides Prometheus instrumentation for the dialog
// engine: event outcomes, per-scene transition counts and the depth of
// transitional scene chains.
package observability
