package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/profblog/eduauth"
)

const (
	endpointPosts   = "/posts"
	endpointUser    = "/user"
	endpointTeacher = "/teacher"
)

// APIError defines a public type used by eduauth APIs.
//
// APIError carries the HTTP status and the server's message for any
// non-2xx response.
type APIError struct {
	Status  int
	Message string
}

// Error describes the error operation and its observable behavior.
func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api: server returned status %d", e.Status)
	}
	return fmt.Sprintf("api: server returned status %d: %s", e.Status, e.Message)
}

// Client defines a public type used by eduauth APIs.
//
// Client instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a Client for the server at baseURL. A nil httpClient
// selects http.DefaultClient; pass a transport.NewClient result to attach
// the session's bearer token to every request.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
	}
}

// SignUpRequest is the registration payload. ProfessorName and Materia are
// only meaningful for professor accounts.
type SignUpRequest struct {
	Email         string `json:"email"`
	Senha         string `json:"senha"`
	Name          string `json:"name,omitempty"`
	ProfessorName string `json:"professorName,omitempty"`
	Materia       string `json:"materia,omitempty"`
}

// SignIn describes the signin operation and its observable behavior.
//
// SignIn exchanges credentials for a token. The result is handed verbatim
// to the session manager; Client satisfies its sign-in collaborator
// interface.
func (c *Client) SignIn(ctx context.Context, email, senha string) (*eduauth.SignInResult, error) {
	body := map[string]string{
		"email": email,
		"senha": senha,
	}

	var result eduauth.SignInResult
	if err := c.do(ctx, http.MethodPost, endpointUser+"/signin", nil, body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// SignUp describes the signup operation and its observable behavior.
func (c *Client) SignUp(ctx context.Context, req SignUpRequest) error {
	return c.do(ctx, http.MethodPost, endpointUser, nil, req, nil)
}

// CurrentUser describes the currentuser operation and its observable behavior.
//
// CurrentUser fetches the authenticated user's record from the server.
// It also doubles as a token validity probe: a stale token answers 401,
// which the transport layer turns into a session invalidation.
func (c *Client) CurrentUser(ctx context.Context) (*eduauth.UserPayload, error) {
	var envelope struct {
		User *eduauth.UserPayload `json:"user"`
	}
	raw, err := c.doRaw(ctx, http.MethodGet, endpointUser+"/me", nil, nil)
	if err != nil {
		return nil, err
	}

	if json.Unmarshal(raw, &envelope) == nil && envelope.User != nil {
		return envelope.User, nil
	}

	var user eduauth.UserPayload
	if err := json.Unmarshal(raw, &user); err != nil {
		return nil, fmt.Errorf("api: decode user response: %w", err)
	}
	return &user, nil
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	raw, err := c.doRaw(ctx, method, path, query, body)
	if err != nil {
		return err
	}
	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("api: decode response: %w", err)
	}
	return nil
}

func (c *Client) doRaw(ctx context.Context, method, path string, query url.Values, body any) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		blob, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("api: encode request: %w", err)
		}
		reader = bytes.NewReader(blob)
	}

	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, fmt.Errorf("api: build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("api: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("api: read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, newAPIError(resp.StatusCode, raw)
	}

	return raw, nil
}

func newAPIError(status int, raw []byte) *APIError {
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	_ = json.Unmarshal(raw, &payload)

	message := payload.Message
	if message == "" {
		message = payload.Error
	}

	return &APIError{
		Status:  status,
		Message: message,
	}
}
