package eduauth

import (
	"context"
	"fmt"
	"time"

	"github.com/profblog/eduauth/identity"
	"github.com/profblog/eduauth/token"
)

// Login describes the login operation and its observable behavior.
//
// Login exchanges credentials for a token through the sign-in collaborator,
// resolves the identity, persists token and identity atomically, and
// publishes the authenticated session. Any failure leaves the prior state
// untouched: there is no partial session. Failures are surfaced to the
// caller, since the user must be told login did not succeed.
//
// A login cannot be aborted once started; it only ever resolves to success
// or leaves the prior state in place. No timeout is imposed here — that
// belongs to the transport collaborator.
func (m *Manager) Login(ctx context.Context, email, senha string) error {
	if m == nil || m.signIn == nil {
		return ErrManagerNotReady
	}

	m.op.Lock()
	defer func() {
		m.settlePendingInvalidation(ctx)
		m.op.Unlock()
	}()

	start := time.Now()

	result, err := m.signIn.SignIn(ctx, email, senha)
	if err != nil {
		m.metricInc(MetricLoginFailure)
		m.emitAudit(ctx, "login.failure", nil, false, err.Error())
		return fmt.Errorf("%w: %v", ErrSignInFailed, err)
	}

	if result == nil || result.Token == "" {
		m.metricInc(MetricLoginNoToken)
		m.emitAudit(ctx, "login.failure", nil, false, ErrNoTokenReturned.Error())
		return ErrNoTokenReturned
	}

	claims, err := m.codec.Decode(result.Token)
	if err != nil {
		m.metricInc(MetricLoginTokenRejected)
		m.emitAudit(ctx, "login.failure", nil, false, err.Error())
		return fmt.Errorf("sign-in token rejected: %w", err)
	}
	if m.codec.Expired(claims) {
		m.metricInc(MetricLoginTokenRejected)
		m.emitAudit(ctx, "login.failure", nil, false, token.ErrExpired.Error())
		return fmt.Errorf("sign-in token rejected: %w", token.ErrExpired)
	}

	var ident Identity
	if result.User != nil {
		ident = identity.FromServerPayload(*result.User, claims, email)
	} else {
		ident = identity.FromClaims(claims, email)
	}

	if err := m.store.SetAll(ctx, result.Token, ident); err != nil {
		m.metricInc(MetricStorageFailure)
		m.emitAudit(ctx, "login.failure", &ident, false, err.Error())
		return fmt.Errorf("%w: %v", ErrStorageFailure, err)
	}

	m.commit(result.Token, ident)
	m.metricInc(MetricLoginSuccess)
	if m.metrics.LatencyEnabled() {
		m.metrics.Observe(MetricLoginLatency, time.Since(start))
	}
	m.emitAudit(ctx, "login.success", &ident, true, "")

	return nil
}
