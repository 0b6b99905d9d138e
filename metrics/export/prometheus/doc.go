// Package prometheus provides Prometheus collectors for eduauth metrics.
//
// [NewPrometheusExporter] accepts an [eduauth.Manager] and exposes an [http.Handler]
// that renders all eduauth counters and histograms in Prometheus text exposition format.
// Counter names are prefixed eduauth_*_total; the single histogram is
// eduauth_login_latency_seconds.
//
// # What this package must NOT do
//
//   - Register metrics in a global Prometheus registry — callers mount the Handler.
//   - Mutate session state.
package prometheus
