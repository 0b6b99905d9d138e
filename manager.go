package eduauth

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/profblog/eduauth/token"
)

// Manager defines a public type used by eduauth APIs.
//
// Manager owns the single logical session of the process: the token, the
// identity derived from it, and the authorization facts published to the
// rest of the app. All transitions are serialized through one in-flight
// operation guard; published facts read the last-settled state and never
// block on storage or network I/O.
type Manager struct {
	config  Config
	codec   *token.Codec
	store   Store
	signIn  SignInProvider
	audit   *auditDispatcher
	metrics *Metrics

	// op is the in-flight transition guard. Exactly one of rehydrate,
	// login, logout, or forced invalidation runs at a time.
	op                  sync.Mutex
	pendingInvalidation atomic.Bool
	rehydrated          bool

	// mu guards the last-settled published state.
	mu    sync.RWMutex
	state State
	tok   string
	ident *Identity
}

// Close describes the close operation and its observable behavior.
func (m *Manager) Close() {
	if m == nil {
		return
	}
	if m.audit != nil {
		m.audit.Close()
	}
}

// AuditDropped describes the auditdropped operation and its observable behavior.
func (m *Manager) AuditDropped() uint64 {
	if m == nil || m.audit == nil {
		return 0
	}
	return m.audit.Dropped()
}

// MetricsSnapshot describes the metricssnapshot operation and its observable behavior.
func (m *Manager) MetricsSnapshot() MetricsSnapshot {
	if m == nil || m.metrics == nil {
		return MetricsSnapshot{
			Counters:   map[MetricID]uint64{},
			Histograms: map[MetricID][]uint64{},
		}
	}
	return m.metrics.Snapshot()
}

// State returns the last-settled session state.
func (m *Manager) State() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

// IsAuthenticated reports whether a session is live. Recomputed from state,
// never cached separately from the identity.
func (m *Manager) IsAuthenticated() bool {
	return m.State() == StateAuthenticated
}

// Identity returns the published identity. The second return value is false
// when the session is anonymous or not yet rehydrated.
func (m *Manager) Identity() (Identity, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.state != StateAuthenticated || m.ident == nil {
		return Identity{}, false
	}
	return *m.ident, true
}

// IsProfessor reports the published role fact. False when anonymous.
func (m *Manager) IsProfessor() bool {
	ident, ok := m.Identity()
	return ok && ident.IsProfessor
}

// ProfessorID returns the published professor id fact. Absent when
// anonymous or when the identity carries no professor id.
func (m *Manager) ProfessorID() (int64, bool) {
	ident, ok := m.Identity()
	if !ok || ident.ProfessorID == nil {
		return 0, false
	}
	return *ident.ProfessorID, true
}

// Token returns the current bearer token for the transport layer. The
// second return value is false when the session is anonymous.
func (m *Manager) Token() (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.state != StateAuthenticated || m.tok == "" {
		return "", false
	}
	return m.tok, true
}

// Current returns the full session pair, for callers that need token and
// identity together.
func (m *Manager) Current() (Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.state != StateAuthenticated || m.ident == nil {
		return Session{}, false
	}
	return Session{Token: m.tok, Identity: *m.ident}, true
}

func (m *Manager) metricInc(id MetricID) {
	if m == nil || m.metrics == nil {
		return
	}
	m.metrics.Inc(id)
}

// commit publishes a settled authenticated session. Token and identity are
// always replaced together.
func (m *Manager) commit(tok string, ident Identity) {
	m.mu.Lock()
	m.state = StateAuthenticated
	m.tok = tok
	m.ident = &ident
	m.mu.Unlock()
}

// clearState publishes a settled anonymous session. Token and identity are
// always cleared together.
func (m *Manager) clearState() {
	m.mu.Lock()
	m.state = StateAnonymous
	m.tok = ""
	m.ident = nil
	m.mu.Unlock()
}

// performClear tears the session down: best-effort storage clear, then the
// in-memory transition. The live state always reaches StateAnonymous even
// when the storage medium fails; rehydration re-validates the token on every
// startup regardless.
//
// Caller must hold the op guard.
func (m *Manager) performClear(ctx context.Context, eventType string, metric MetricID) {
	ident := m.snapshotIdentity()

	if err := m.store.ClearAll(ctx); err != nil {
		m.metricInc(MetricStorageFailure)
		m.emitAudit(ctx, eventType, ident, false, err.Error())
	} else {
		m.emitAudit(ctx, eventType, ident, true, "")
	}

	m.clearState()
	m.metricInc(metric)
}

// settlePendingInvalidation applies a forced invalidation that arrived while
// another transition was in flight. Last transition to complete wins;
// invalidation is idempotent, so ordering only affects which state is
// user-visible.
//
// Caller must hold the op guard.
func (m *Manager) settlePendingInvalidation(ctx context.Context) {
	if !m.pendingInvalidation.Swap(false) {
		return
	}
	m.performClear(ctx, "session.invalidated", MetricForcedInvalidation)
}

func (m *Manager) snapshotIdentity() *Identity {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.ident == nil {
		return nil
	}
	ident := *m.ident
	return &ident
}

func (m *Manager) emitAudit(ctx context.Context, eventType string, ident *Identity, success bool, errMsg string) {
	if m.audit == nil {
		return
	}

	event := AuditEvent{
		ID:        uuid.NewString(),
		Timestamp: time.Now().UTC(),
		EventType: eventType,
		DeviceID:  deviceIDFromContext(ctx),
		Success:   success,
		Error:     errMsg,
	}
	if ident != nil {
		event.UserID = ident.ID
		event.Email = ident.Email
	}
	if version := appVersionFromContext(ctx); version != "" {
		event.Metadata = map[string]string{"app_version": version}
	}

	m.audit.Emit(ctx, event)
}
