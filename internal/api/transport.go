// ABOUTME: Authenticating HTTP transport with single-retry-on-401 refresh
// ABOUTME: Attaches the stored access token and transparently refreshes it once per request

package api

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/basgenix/uni-complaint-system/internal/credstore"
)

// maxErrorBody bounds how much of a failed refresh response gets read
const maxErrorBody = 4 << 10

// authTransport is an http.RoundTripper that authorizes outbound
// requests with the persisted access token. On the first 401 for a
// request it exchanges the refresh token for a new access token and
// re-sends the original request exactly once; a 401 on the retried
// request, or a failed refresh, is terminal: both persisted tokens are
// removed, the expiry callback fires, and the 401 response propagates
// to the caller unchanged.
//
// Tokens are read from the credential store rather than the in-memory
// session so the transport works before any session object exists.
type authTransport struct {
	base       http.RoundTripper
	creds      *credstore.Store
	refreshURL string

	// onAuthExpired is invoked once per terminal failure. The command
	// shell uses it to tell the user to log in again; it is a side
	// effect, not a substitute for the propagated error.
	onAuthExpired func()
}

func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	token := t.creds.AccessToken()
	resp, err := t.send(req, token)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusUnauthorized {
		return resp, nil
	}

	// A 401 on an anonymous request, or from the credential-issuing
	// endpoints themselves (wrong login password, rejected refresh
	// token), is bad input rather than an expired access token.
	if token == "" || isAuthEndpoint(req.URL.Path) {
		return resp, nil
	}

	// First 401. A request whose body cannot be replayed is returned
	// as-is: refreshing without the ability to retry helps nobody.
	if req.Body != nil && req.GetBody == nil {
		return resp, nil
	}

	refreshToken := t.creds.RefreshToken()
	if refreshToken == "" {
		t.expire()
		return resp, nil
	}

	newToken, refreshErr := t.refresh(req, refreshToken)
	if refreshErr != nil {
		slog.Debug("token refresh failed", "error", refreshErr)
		t.expire()
		return resp, nil
	}

	if err := t.creds.SetAccessToken(newToken); err != nil {
		slog.Warn("could not persist refreshed token", "error", err)
	}
	resp.Body.Close()

	// The single retry. Another 401 here is terminal, never refreshed.
	retryResp, err := t.send(req, newToken)
	if err != nil {
		return nil, err
	}
	if retryResp.StatusCode == http.StatusUnauthorized {
		t.expire()
	}
	return retryResp, nil
}

// isAuthEndpoint reports whether path issues or exchanges credentials
func isAuthEndpoint(path string) bool {
	return strings.HasSuffix(path, "/auth/login") ||
		strings.HasSuffix(path, "/auth/register") ||
		strings.HasSuffix(path, "/auth/refresh")
}

// send issues a copy of req authorized with the given token. The
// original request is never mutated; retry state lives entirely in
// RoundTrip's locals.
func (t *authTransport) send(req *http.Request, token string) (*http.Response, error) {
	out := req.Clone(req.Context())
	if req.GetBody != nil {
		body, err := req.GetBody()
		if err != nil {
			return nil, fmt.Errorf("failed to replay request body: %w", err)
		}
		out.Body = body
	}
	if token != "" {
		out.Header.Set("Authorization", "Bearer "+token)
	} else {
		out.Header.Del("Authorization")
	}
	return t.base.RoundTrip(out)
}

// refresh exchanges the refresh token for a new access token
func (t *authTransport) refresh(orig *http.Request, refreshToken string) (string, error) {
	req, err := http.NewRequestWithContext(orig.Context(), http.MethodPost, t.refreshURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create refresh request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+refreshToken)

	resp, err := t.base.RoundTrip(req)
	if err != nil {
		return "", fmt.Errorf("refresh request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return "", fmt.Errorf("refresh rejected (status %d): %s", resp.StatusCode, body)
	}

	var env struct {
		Success bool `json:"success"`
		Data    struct {
			AccessToken string `json:"access_token"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return "", fmt.Errorf("failed to parse refresh response: %w", err)
	}
	if env.Data.AccessToken == "" {
		return "", fmt.Errorf("refresh response contained no access token")
	}
	return env.Data.AccessToken, nil
}

// expire removes both persisted tokens and notifies the shell. The
// session cannot be recovered without a fresh login.
func (t *authTransport) expire() {
	t.creds.Clear()
	if t.onAuthExpired != nil {
		t.onAuthExpired()
	}
}
