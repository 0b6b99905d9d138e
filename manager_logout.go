package eduauth

import "context"

// Logout describes the logout operation and its observable behavior.
//
// Logout never fails. Clearing durable storage is best-effort: the
// in-memory state transitions to Anonymous even when the medium rejects the
// delete, because correctness of the live session matters more than cleanup.
// The store is overwritten on the next login, and rehydration validates the
// token on every startup regardless.
func (m *Manager) Logout(ctx context.Context) {
	if m == nil {
		return
	}

	m.op.Lock()
	defer func() {
		// A forced invalidation queued behind this logout is already
		// satisfied; drop the flag.
		m.pendingInvalidation.Store(false)
		m.op.Unlock()
	}()

	m.performClear(ctx, "logout", MetricLogout)
}

// Invalidate describes the invalidate operation and its observable behavior.
//
// Invalidate is the forced-invalidation entry point for the transport
// boundary: any request answered with an authentication rejection tears the
// session down exactly like Logout. When another transition is in flight
// the teardown is queued and applied after that transition settles, so a
// login never races a logout into an inconsistent final state. Idempotent.
func (m *Manager) Invalidate() {
	if m == nil {
		return
	}

	if !m.op.TryLock() {
		m.pendingInvalidation.Store(true)
		return
	}
	defer m.op.Unlock()

	m.performClear(context.Background(), "session.invalidated", MetricForcedInvalidation)
}
