package eduauth

import "context"

type deviceIDContextKey struct{}
type appVersionContextKey struct{}

// WithDeviceID attaches the caller's device identifier to ctx. The session
// manager records it on audit events so a session transition can be traced
// back to the device that triggered it.
func WithDeviceID(ctx context.Context, deviceID string) context.Context {
	return context.WithValue(ctx, deviceIDContextKey{}, deviceID)
}

// WithAppVersion attaches the client application version to ctx. The session
// manager records it in audit event metadata.
func WithAppVersion(ctx context.Context, version string) context.Context {
	return context.WithValue(ctx, appVersionContextKey{}, version)
}

func deviceIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}

	deviceID, _ := ctx.Value(deviceIDContextKey{}).(string)
	return deviceID
}

func appVersionFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}

	version, _ := ctx.Value(appVersionContextKey{}).(string)
	return version
}
