// ABOUTME: Tests for the login, logout, and whoami commands
// ABOUTME: Drives the full session flow against a stub backend

package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// envelope writes the server's uniform response shape
func envelope(w http.ResponseWriter, status int, message string, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]any{
		"success": status < 400,
		"message": message,
		"data":    data,
	})
}

// useStubBackend points the command layer at a test server with its
// own credential directory.
func useStubBackend(t *testing.T, handler http.Handler) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	apiURL = server.URL
	configDir = t.TempDir()
	t.Cleanup(func() {
		apiURL = ""
		configDir = ""
	})
}

func authHandler(t *testing.T) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/login":
			var body map[string]string
			json.NewDecoder(r.Body).Decode(&body)
			if body["password"] != "Secret12" {
				envelope(w, http.StatusUnauthorized, "Invalid email or password", nil)
				return
			}
			envelope(w, http.StatusOK, "Login successful", map[string]any{
				"user": map[string]any{
					"id": 3, "email": body["email"], "full_name": "Ada Obi", "role": "student",
				},
				"access_token":  "T1",
				"refresh_token": "R1",
			})
		case "/auth/me":
			if r.Header.Get("Authorization") != "Bearer T1" {
				envelope(w, http.StatusUnauthorized, "token invalid", nil)
				return
			}
			envelope(w, http.StatusOK, "ok", map[string]any{
				"user": map[string]any{
					"id": 3, "email": "a@u.edu", "full_name": "Ada Obi", "role": "student",
				},
			})
		default:
			t.Errorf("unexpected request to %s", r.URL.Path)
		}
	})
}

func TestLoginCommand_Success(t *testing.T) {
	useStubBackend(t, authHandler(t))
	loginEmail, loginPassword = "a@u.edu", "Secret12"
	defer func() { loginEmail, loginPassword = "", "" }()

	var buf bytes.Buffer
	if exitCode := runLogin(context.Background(), &buf); exitCode != 0 {
		t.Fatalf("expected exit code 0, got %d: %s", exitCode, buf.String())
	}
	if !strings.Contains(buf.String(), "Ada Obi") {
		t.Errorf("expected user name in output, got %q", buf.String())
	}
}

func TestLoginCommand_InvalidPassword(t *testing.T) {
	useStubBackend(t, authHandler(t))
	loginEmail, loginPassword = "a@u.edu", "WrongPass1"
	defer func() { loginEmail, loginPassword = "", "" }()

	var buf bytes.Buffer
	if exitCode := runLogin(context.Background(), &buf); exitCode != 2 {
		t.Fatalf("expected exit code 2, got %d", exitCode)
	}
	if !strings.Contains(buf.String(), "Invalid email or password") {
		t.Errorf("expected server message in output, got %q", buf.String())
	}
}

func TestLoginCommand_BadEmail(t *testing.T) {
	useStubBackend(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("validation failure must not reach the network")
	}))
	loginEmail, loginPassword = "not-an-email", "Secret12"
	defer func() { loginEmail, loginPassword = "", "" }()

	var buf bytes.Buffer
	if exitCode := runLogin(context.Background(), &buf); exitCode != 1 {
		t.Fatalf("expected exit code 1, got %d", exitCode)
	}
}

func TestWhoamiCommand_FullFlow(t *testing.T) {
	useStubBackend(t, authHandler(t))
	loginEmail, loginPassword = "a@u.edu", "Secret12"
	defer func() { loginEmail, loginPassword = "", "" }()

	var buf bytes.Buffer
	if exitCode := runLogin(context.Background(), &buf); exitCode != 0 {
		t.Fatalf("login failed: %s", buf.String())
	}

	buf.Reset()
	if exitCode := runWhoami(context.Background(), &buf); exitCode != 0 {
		t.Fatalf("expected exit code 0, got %d: %s", exitCode, buf.String())
	}
	if !strings.Contains(buf.String(), "a@u.edu") {
		t.Errorf("expected email in output, got %q", buf.String())
	}
}

func TestWhoamiCommand_NotLoggedIn(t *testing.T) {
	useStubBackend(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("whoami without credentials must not reach the network")
	}))

	var buf bytes.Buffer
	if exitCode := runWhoami(context.Background(), &buf); exitCode != 1 {
		t.Fatalf("expected exit code 1, got %d", exitCode)
	}
	if !strings.Contains(buf.String(), "Not logged in") {
		t.Errorf("expected 'Not logged in', got %q", buf.String())
	}
}

func TestLogoutCommand_EndsSession(t *testing.T) {
	useStubBackend(t, authHandler(t))
	loginEmail, loginPassword = "a@u.edu", "Secret12"
	defer func() { loginEmail, loginPassword = "", "" }()

	var buf bytes.Buffer
	if exitCode := runLogin(context.Background(), &buf); exitCode != 0 {
		t.Fatalf("login failed: %s", buf.String())
	}

	buf.Reset()
	if exitCode := runLogout(&buf); exitCode != 0 {
		t.Fatalf("expected exit code 0, got %d", exitCode)
	}

	buf.Reset()
	if exitCode := runWhoami(context.Background(), &buf); exitCode != 1 {
		t.Fatalf("expected whoami to report no session, got %d: %s", exitCode, buf.String())
	}
}

func TestLogoutCommand_Idempotent(t *testing.T) {
	configDir = t.TempDir()
	defer func() { configDir = "" }()

	var buf bytes.Buffer
	if exitCode := runLogout(&buf); exitCode != 0 {
		t.Fatalf("expected exit code 0 without a session, got %d", exitCode)
	}
}
