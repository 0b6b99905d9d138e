package internaldefs

import (
	eduauth "github.com/profblog/eduauth"
)

// CounterDef defines a public type used by eduauth APIs.
//
// CounterDef instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type CounterDef struct {
	ID   eduauth.MetricID
	Name string
	Help string
}

// HistogramDef defines a public type used by eduauth APIs.
//
// HistogramDef instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type HistogramDef struct {
	ID   eduauth.MetricID
	Name string
	Help string
}

// CounterDefs is an exported constant or variable used by the session manager.
var CounterDefs = []CounterDef{
	{ID: eduauth.MetricLoginSuccess, Name: "eduauth_login_success_total", Help: "Successful login attempts."},
	{ID: eduauth.MetricLoginFailure, Name: "eduauth_login_failure_total", Help: "Sign-in calls rejected by the server or transport."},
	{ID: eduauth.MetricLoginNoToken, Name: "eduauth_login_no_token_total", Help: "Sign-in responses that carried no token."},
	{ID: eduauth.MetricLoginTokenRejected, Name: "eduauth_login_token_rejected_total", Help: "Sign-in tokens rejected as malformed or expired."},
	{ID: eduauth.MetricRehydrateSuccess, Name: "eduauth_rehydrate_success_total", Help: "Startups that restored an authenticated session."},
	{ID: eduauth.MetricRehydrateAnonymous, Name: "eduauth_rehydrate_anonymous_total", Help: "Startups that settled anonymous."},
	{ID: eduauth.MetricLogout, Name: "eduauth_logout_total", Help: "Explicit logout operations."},
	{ID: eduauth.MetricForcedInvalidation, Name: "eduauth_forced_invalidation_total", Help: "Sessions torn down after a server authentication rejection."},
	{ID: eduauth.MetricStorageFailure, Name: "eduauth_storage_failure_total", Help: "Session storage operations that failed."},
}

// HistogramDefs is an exported constant or variable used by the session manager.
var HistogramDefs = []HistogramDef{
	{ID: eduauth.MetricLoginLatency, Name: "eduauth_login_latency_seconds", Help: "Login latency histogram."},
}

// HistogramBounds is an exported constant or variable used by the session manager.
var HistogramBounds = []string{
	"0.005",
	"0.01",
	"0.025",
	"0.05",
	"0.1",
	"0.25",
	"0.5",
	"+Inf",
}

// HistogramBoundSuffix is an exported constant or variable used by the session manager.
var HistogramBoundSuffix = []string{
	"0_005",
	"0_01",
	"0_025",
	"0_05",
	"0_1",
	"0_25",
	"0_5",
	"inf",
}

// NormalizeBuckets describes the normalizebuckets operation and its observable behavior.
//
// NormalizeBuckets does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func NormalizeBuckets(raw []uint64) [8]uint64 {
	var out [8]uint64
	for i := 0; i < len(out) && i < len(raw); i++ {
		out[i] = raw[i]
	}
	return out
}

// CumulativeBuckets describes the cumulativebuckets operation and its observable behavior.
//
// CumulativeBuckets does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func CumulativeBuckets(raw [8]uint64) [8]uint64 {
	var out [8]uint64
	var running uint64
	for i := 0; i < len(raw); i++ {
		running += raw[i]
		out[i] = running
	}
	return out
}
