// Package loadtest turns a declarative workload profile into concurrently
// executing operations against an external store and reduces the captured
// per-operation telemetry into aggregate and percentile statistics.
//
// The package deliberately knows nothing about wire protocols: all store
// access goes through the conn.Handle boundary, and each worker owns
// exactly one handle for the lifetime of a run.
package loadtest
