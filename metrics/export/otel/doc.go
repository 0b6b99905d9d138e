// Package otel provides OpenTelemetry metric exporter bindings for eduauth counters and
// histograms.
//
// [NewOTelExporter] registers Int64ObservableCounter instruments for each eduauth metric
// and Int64ObservableGauge per histogram bucket. A single callback reads
// [eduauth.Manager.MetricsSnapshot] on each collection cycle.
//
// # What this package must NOT do
//
//   - Own the OTel MeterProvider — callers supply the Meter.
//   - Mutate session state.
package otel
