// Package metrics provides build metrics for site generation.
//
// # Design Philosophy
//
// This package implements the Null Object pattern to enable metrics collection
// without requiring explicit nil checks throughout the codebase. By default
// the generator uses NoopRecorder, which implements the Recorder interface
// with no-op methods.
//
// # Usage Pattern
//
// The generator receives a Recorder through its struct:
//
//	gen := site.Generator{Recorder: metrics.NoopRecorder{}}
//
// # Activation
//
// A generate run with a metrics textfile configured swaps in the Prometheus
// recorder and writes the registry after the build:
//
//	rec := metrics.NewPrometheusRecorder(nil)
//	gen.Recorder = rec
//	_, err := gen.Run(ctx)
//	_ = rec.WriteTextfile("/var/lib/node_exporter/sitewinder.prom")
//
// There is no scrape endpoint: a generator run is short lived, so metrics are
// exported as a textfile for a node_exporter collector.
package metrics
