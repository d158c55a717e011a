/*
Package observability provides Prometheus instrumentation for the matching engine.

It bundles the collectors for build and search activity into a single Metrics
value that adapters register and feed. The core packages stay metric-free; a
nil *Metrics is safe to call, so instrumentation is strictly opt-in.
*/
package observability
