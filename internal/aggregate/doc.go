// Package aggregate turns raw test-management records into classified,
// aggregated reporting data.
//
// The package is organized in layers. Pure functions at the bottom:
// Classify buckets a single execution by status, AggregateCycle folds a
// cycle's executions into counters and rates, and AggregateVersion rolls
// per-cycle results up to version level. The Engine sits on top and drives
// remote fetches through the Fetcher interface, fanning out per-cycle
// execution reads with a bounded worker pool. Nothing is cached: every
// entry point fetches fresh and computes from scratch.
package aggregate
