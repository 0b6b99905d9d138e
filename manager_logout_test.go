package eduauth

import (
	"context"
	"errors"
	"testing"
	"time"
)

func loginTestManager(t *testing.T, provider *stubSignIn) (*Manager, *failingStore) {
	t.Helper()

	manager, store := buildTestManager(t, provider)
	if err := manager.Login(context.Background(), "prof@blog.edu", "senha"); err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	return manager, store
}

func TestLogoutClearsSessionAndStorage(t *testing.T) {
	tok := mintToken(t, map[string]any{
		"sub": "7",
		"exp": futureExp(),
	})
	manager, store := loginTestManager(t, &stubSignIn{result: &SignInResult{Token: tok}})

	manager.Logout(context.Background())

	if manager.State() != StateAnonymous {
		t.Fatalf("state = %v, want StateAnonymous", manager.State())
	}
	if _, ok := manager.Token(); ok {
		t.Fatal("token still published after logout")
	}
	if _, ok := manager.Identity(); ok {
		t.Fatal("identity still published after logout")
	}

	store.mu.Lock()
	leftoverTok, leftoverIdent := store.tok, store.ident
	store.mu.Unlock()
	if leftoverTok != "" || leftoverIdent != nil {
		t.Fatal("storage not cleared after logout")
	}
	if got := manager.MetricsSnapshot().Counters[MetricLogout]; got != 1 {
		t.Fatalf("MetricLogout = %d, want 1", got)
	}
}

func TestLogoutNeverFailsOnStorageError(t *testing.T) {
	tok := mintToken(t, map[string]any{
		"sub": "7",
		"exp": futureExp(),
	})
	manager, store := loginTestManager(t, &stubSignIn{result: &SignInResult{Token: tok}})
	store.clearErr = errors.New("redis down")

	manager.Logout(context.Background())

	if manager.State() != StateAnonymous {
		t.Fatal("logout must settle Anonymous even when the storage clear fails")
	}
	if got := manager.MetricsSnapshot().Counters[MetricStorageFailure]; got != 1 {
		t.Fatalf("MetricStorageFailure = %d, want 1", got)
	}
}

func TestLogoutWhileAnonymousIsIdempotent(t *testing.T) {
	manager, _ := buildTestManager(t, &stubSignIn{})

	manager.Logout(context.Background())
	manager.Logout(context.Background())

	if manager.State() != StateAnonymous {
		t.Fatal("expected StateAnonymous after repeated logout")
	}
}

func TestInvalidateTearsDownSession(t *testing.T) {
	tok := mintToken(t, map[string]any{
		"sub": "7",
		"exp": futureExp(),
	})
	manager, store := loginTestManager(t, &stubSignIn{result: &SignInResult{Token: tok}})

	manager.Invalidate()
	manager.Invalidate()

	if manager.State() != StateAnonymous {
		t.Fatal("invalidate must settle Anonymous")
	}
	store.mu.Lock()
	leftover := store.tok
	store.mu.Unlock()
	if leftover != "" {
		t.Fatal("storage not cleared by invalidate")
	}
	if got := manager.MetricsSnapshot().Counters[MetricForcedInvalidation]; got != 2 {
		t.Fatalf("MetricForcedInvalidation = %d, want 2", got)
	}
}

func TestInvalidateQueuedBehindInFlightLogin(t *testing.T) {
	tok := mintToken(t, map[string]any{
		"sub": "7",
		"exp": futureExp(),
	})
	gate := make(chan struct{})
	provider := &stubSignIn{
		result: &SignInResult{Token: tok},
		gate:   gate,
	}
	manager, _ := buildTestManager(t, provider)

	loginDone := make(chan error, 1)
	go func() {
		loginDone <- manager.Login(context.Background(), "prof@blog.edu", "senha")
	}()

	// Wait until the login holds the operation guard inside SignIn.
	deadline := time.Now().Add(2 * time.Second)
	for provider.Calls() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("login never reached the sign-in provider")
		}
		time.Sleep(time.Millisecond)
	}

	// Arrives mid-login: must queue, not block, not race.
	manager.Invalidate()

	close(gate)
	if err := <-loginDone; err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	if manager.State() != StateAnonymous {
		t.Fatalf("state = %v, want the queued invalidation applied after login", manager.State())
	}
	if _, ok := manager.Token(); ok {
		t.Fatal("token survived a queued invalidation")
	}
	if got := manager.MetricsSnapshot().Counters[MetricForcedInvalidation]; got != 1 {
		t.Fatalf("MetricForcedInvalidation = %d, want 1", got)
	}
}

func TestLogoutDropsQueuedInvalidation(t *testing.T) {
	tok := mintToken(t, map[string]any{
		"sub": "7",
		"exp": futureExp(),
	})
	manager, _ := loginTestManager(t, &stubSignIn{result: &SignInResult{Token: tok}})

	// Simulate an invalidation queued while another transition was settling.
	manager.pendingInvalidation.Store(true)
	manager.Logout(context.Background())

	if manager.pendingInvalidation.Load() {
		t.Fatal("logout must satisfy and drop a queued invalidation")
	}
	if manager.State() != StateAnonymous {
		t.Fatal("expected StateAnonymous after logout")
	}
	if got := manager.MetricsSnapshot().Counters[MetricForcedInvalidation]; got != 0 {
		t.Fatalf("queued invalidation must not double-fire: counter = %d", got)
	}
}
