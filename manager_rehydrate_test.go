package eduauth

import (
	"context"
	"errors"
	"testing"
	"time"
)

func seedStore(t *testing.T, store *failingStore, tok string, ident *Identity) {
	t.Helper()

	store.mu.Lock()
	store.tok = tok
	store.ident = ident
	store.mu.Unlock()
}

func TestRehydrateEmptyStoreSettlesAnonymous(t *testing.T) {
	manager, _ := buildTestManager(t, &stubSignIn{})

	if got := manager.Rehydrate(context.Background()); got != StateAnonymous {
		t.Fatalf("Rehydrate = %v, want StateAnonymous", got)
	}
	if manager.State() != StateAnonymous {
		t.Fatal("state not settled after rehydrate")
	}
	if got := manager.MetricsSnapshot().Counters[MetricRehydrateAnonymous]; got != 1 {
		t.Fatalf("MetricRehydrateAnonymous = %d, want 1", got)
	}
}

func TestRehydrateValidTokenWithPersistedIdentity(t *testing.T) {
	tok := mintToken(t, map[string]any{
		"sub": "7",
		"exp": futureExp(),
	})
	// Deliberately different from the claims: a persisted identity is
	// trusted as-is, not re-derived.
	pid := int64(44)
	persisted := &Identity{
		ID:          "55",
		Email:       "persisted@blog.edu",
		IsProfessor: true,
		ProfessorID: &pid,
	}

	manager, store := buildTestManager(t, &stubSignIn{})
	seedStore(t, store, tok, persisted)

	if got := manager.Rehydrate(context.Background()); got != StateAuthenticated {
		t.Fatalf("Rehydrate = %v, want StateAuthenticated", got)
	}

	ident, _ := manager.Identity()
	if ident.ID != "55" || ident.Email != "persisted@blog.edu" || !ident.IsProfessor {
		t.Fatalf("persisted identity not trusted as-is: %+v", ident)
	}
	if bearer, _ := manager.Token(); bearer != tok {
		t.Fatal("token not published after rehydrate")
	}
}

func TestRehydrateTokenOnlyDerivesAndPersists(t *testing.T) {
	tok := mintToken(t, map[string]any{
		"sub":         "7",
		"email":       "claims@blog.edu",
		"isProfessor": true,
		"professorId": 12,
		"exp":         futureExp(),
	})
	manager, store := buildTestManager(t, &stubSignIn{})
	seedStore(t, store, tok, nil)

	if got := manager.Rehydrate(context.Background()); got != StateAuthenticated {
		t.Fatalf("Rehydrate = %v, want StateAuthenticated", got)
	}

	ident, _ := manager.Identity()
	if ident.ID != "7" || ident.Email != "claims@blog.edu" || !ident.IsProfessor {
		t.Fatalf("claims-derived identity wrong: %+v", ident)
	}

	store.mu.Lock()
	repaired := store.ident
	store.mu.Unlock()
	if repaired == nil || repaired.ID != "7" {
		t.Fatal("derived identity was not written back to storage")
	}
}

func TestRehydrateExpiredTokenClearsStorage(t *testing.T) {
	tok := mintToken(t, map[string]any{
		"sub": "7",
		"exp": time.Now().Add(-time.Hour).Unix(),
	})
	manager, store := buildTestManager(t, &stubSignIn{})
	seedStore(t, store, tok, nil)

	if got := manager.Rehydrate(context.Background()); got != StateAnonymous {
		t.Fatalf("Rehydrate = %v, want StateAnonymous", got)
	}

	store.mu.Lock()
	leftover := store.tok
	clears := store.clearCalls
	store.mu.Unlock()
	if leftover != "" || clears == 0 {
		t.Fatal("stale persisted session not cleared")
	}
}

func TestRehydrateGarbageTokenSettlesAnonymous(t *testing.T) {
	manager, store := buildTestManager(t, &stubSignIn{})
	seedStore(t, store, "x%%y", nil)

	if got := manager.Rehydrate(context.Background()); got != StateAnonymous {
		t.Fatalf("Rehydrate = %v, want StateAnonymous", got)
	}
}

func TestRehydrateStorageReadFailureSettlesAnonymous(t *testing.T) {
	manager, store := buildTestManager(t, &stubSignIn{})
	store.tokenErr = errors.New("redis down")

	if got := manager.Rehydrate(context.Background()); got != StateAnonymous {
		t.Fatalf("Rehydrate = %v, want StateAnonymous", got)
	}
	if got := manager.MetricsSnapshot().Counters[MetricStorageFailure]; got == 0 {
		t.Fatal("expected a storage failure metric")
	}
}

func TestRehydrateIdentityReadFailureFallsBackToClaims(t *testing.T) {
	tok := mintToken(t, map[string]any{
		"sub": "7",
		"exp": futureExp(),
	})
	manager, store := buildTestManager(t, &stubSignIn{})
	seedStore(t, store, tok, nil)
	store.identErr = errors.New("corrupt blob")

	if got := manager.Rehydrate(context.Background()); got != StateAuthenticated {
		t.Fatalf("Rehydrate = %v, want StateAuthenticated", got)
	}
	ident, _ := manager.Identity()
	if ident.ID != "7" {
		t.Fatalf("expected claims-derived identity, got %+v", ident)
	}
}

func TestRehydrateRunsOncePerProcess(t *testing.T) {
	tok := mintToken(t, map[string]any{
		"sub": "7",
		"exp": futureExp(),
	})
	manager, store := buildTestManager(t, &stubSignIn{})
	seedStore(t, store, tok, nil)

	if got := manager.Rehydrate(context.Background()); got != StateAuthenticated {
		t.Fatalf("first Rehydrate = %v", got)
	}

	// A second call must not reread storage even when the medium now fails.
	store.tokenErr = errors.New("redis down")
	if got := manager.Rehydrate(context.Background()); got != StateAuthenticated {
		t.Fatalf("second Rehydrate = %v, want the settled state", got)
	}
	if got := manager.MetricsSnapshot().Counters[MetricRehydrateSuccess]; got != 1 {
		t.Fatalf("MetricRehydrateSuccess = %d, want 1", got)
	}
}
