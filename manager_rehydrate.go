package eduauth

import (
	"context"

	"github.com/profblog/eduauth/identity"
)

// Rehydrate describes the rehydrate operation and its observable behavior.
//
// Rehydrate reconstructs the session from durable storage at process
// startup. It runs once per process lifetime; later calls return the
// settled state without touching storage. A missing, undecodable, or
// expired persisted token clears storage and settles Anonymous. A persisted
// identity alongside a valid token is trusted as-is (no re-decoding);
// without one the identity is derived from the token's claims and persisted.
//
// Every failure path is swallowed: a bad persisted session must never crash
// startup, it degrades to logged-out.
func (m *Manager) Rehydrate(ctx context.Context) State {
	if m == nil {
		return StateUnknown
	}

	m.op.Lock()
	defer func() {
		m.settlePendingInvalidation(ctx)
		m.op.Unlock()
	}()

	if m.rehydrated {
		return m.State()
	}
	m.rehydrated = true

	tok, err := m.store.Token(ctx)
	if err != nil {
		m.metricInc(MetricStorageFailure)
		m.rehydrateAnonymous(ctx, err.Error())
		return StateAnonymous
	}
	if tok == "" {
		m.rehydrateAnonymous(ctx, "")
		return StateAnonymous
	}

	claims, err := m.codec.Decode(tok)
	if err != nil {
		m.rehydrateAnonymous(ctx, err.Error())
		return StateAnonymous
	}
	if m.codec.Expired(claims) {
		m.rehydrateAnonymous(ctx, "persisted token expired")
		return StateAnonymous
	}

	ident, err := m.store.Identity(ctx)
	if err != nil || ident == nil {
		derived := identity.FromClaims(claims, "")
		// Best effort: the derived identity is good for this process even
		// when persisting it fails.
		if err := m.store.SetAll(ctx, tok, derived); err != nil {
			m.metricInc(MetricStorageFailure)
		}
		ident = &derived
	}

	m.commit(tok, *ident)
	m.metricInc(MetricRehydrateSuccess)
	m.emitAudit(ctx, "session.rehydrate", ident, true, "")

	return StateAuthenticated
}

// rehydrateAnonymous settles startup as logged-out, clearing any stale
// persisted session along the way.
//
// Caller must hold the op guard.
func (m *Manager) rehydrateAnonymous(ctx context.Context, reason string) {
	if err := m.store.ClearAll(ctx); err != nil {
		m.metricInc(MetricStorageFailure)
	}
	m.clearState()
	m.metricInc(MetricRehydrateAnonymous)
	m.emitAudit(ctx, "session.rehydrate", nil, false, reason)
}
