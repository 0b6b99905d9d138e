package transport

import (
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
)

type staticTokens struct {
	tok string
	ok  bool
}

func (s staticTokens) Token() (string, bool) {
	return s.tok, s.ok
}

type spyInvalidator struct {
	calls atomic.Int64
}

func (s *spyInvalidator) Invalidate() {
	s.calls.Add(1)
}

func TestAuthTransportInjectsBearerHeader(t *testing.T) {
	var seen string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = r.Header.Get("Authorization")
	}))
	defer server.Close()

	client := NewClient(staticTokens{tok: "abc123", ok: true}, nil)
	resp, err := client.Get(server.URL)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	resp.Body.Close()

	if seen != "Bearer abc123" {
		t.Fatalf("Authorization = %q, want Bearer abc123", seen)
	}
}

func TestAuthTransportAnonymousSendsNoHeader(t *testing.T) {
	var seen string
	var present bool
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = r.Header.Get("Authorization")
		_, present = r.Header["Authorization"]
	}))
	defer server.Close()

	client := NewClient(staticTokens{ok: false}, nil)
	resp, err := client.Get(server.URL)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	resp.Body.Close()

	if present || seen != "" {
		t.Fatalf("expected no Authorization header, got %q", seen)
	}
}

func TestAuthTransportDoesNotMutateCallerRequest(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer server.Close()

	req, err := http.NewRequest(http.MethodGet, server.URL, nil)
	if err != nil {
		t.Fatalf("NewRequest failed: %v", err)
	}

	client := NewClient(staticTokens{tok: "abc", ok: true}, nil)
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	resp.Body.Close()

	if got := req.Header.Get("Authorization"); got != "" {
		t.Fatalf("caller request mutated: Authorization = %q", got)
	}
}

func TestAuthTransportInvalidatesOn401(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	spy := &spyInvalidator{}
	client := NewClient(staticTokens{tok: "stale", ok: true}, spy)

	resp, err := client.Get(server.URL)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	resp.Body.Close()

	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401 passed through", resp.StatusCode)
	}
	if spy.calls.Load() != 1 {
		t.Fatalf("Invalidate calls = %d, want 1", spy.calls.Load())
	}
}

func TestAuthTransportNoSignalOnOtherErrors(t *testing.T) {
	for _, status := range []int{http.StatusForbidden, http.StatusInternalServerError, http.StatusOK} {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
		}))

		spy := &spyInvalidator{}
		client := NewClient(staticTokens{tok: "abc", ok: true}, spy)

		resp, err := client.Get(server.URL)
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		resp.Body.Close()
		server.Close()

		if spy.calls.Load() != 0 {
			t.Fatalf("status %d must not invalidate, calls = %d", status, spy.calls.Load())
		}
	}
}
