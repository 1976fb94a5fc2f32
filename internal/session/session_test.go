// ABOUTME: Tests for the session store lifecycle
// ABOUTME: Covers login, startup restore, fail-closed teardown, and logout races

package session

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/basgenix/uni-complaint-system/internal/api"
	"github.com/basgenix/uni-complaint-system/internal/credstore"
)

func writeEnvelope(w http.ResponseWriter, status int, message string, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]any{
		"success": status < 400,
		"message": message,
		"data":    data,
	})
}

func newTestStore(t *testing.T, handler http.Handler) (*Store, *credstore.Store) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	creds := credstore.New(t.TempDir())
	client := api.New(server.URL, creds)
	return New(client, creds), creds
}

func TestLogin_Success(t *testing.T) {
	store, creds := newTestStore(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/login" {
			t.Errorf("expected path /auth/login, got %s", r.URL.Path)
		}
		var body map[string]string
		json.NewDecoder(r.Body).Decode(&body)
		if body["email"] != "a@u.edu" || body["password"] != "Secret1" {
			writeEnvelope(w, http.StatusUnauthorized, "Invalid email or password", nil)
			return
		}
		writeEnvelope(w, http.StatusOK, "Login successful", map[string]any{
			"user":          api.User{ID: 3, Email: "a@u.edu", FullName: "Ada Obi", Role: api.RoleStudent},
			"access_token":  "T1",
			"refresh_token": "R1",
		})
	}))

	user, err := store.Login(context.Background(), "a@u.edu", "Secret1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.Email != "a@u.edu" {
		t.Errorf("expected user a@u.edu, got %s", user.Email)
	}
	if !store.IsAuthenticated() {
		t.Error("expected authenticated session after login")
	}
	if store.IsLoading() {
		t.Error("expected loading cleared after login")
	}
	if creds.AccessToken() != "T1" || creds.RefreshToken() != "R1" {
		t.Error("expected both tokens persisted after login")
	}
}

func TestLogin_InvalidCredentialsLeavesStateUntouched(t *testing.T) {
	store, creds := newTestStore(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusUnauthorized, "Invalid email or password", nil)
	}))

	_, err := store.Login(context.Background(), "a@u.edu", "wrong")
	if err == nil {
		t.Fatal("expected error for invalid credentials")
	}
	if store.IsAuthenticated() {
		t.Error("expected anonymous session after failed login")
	}
	if store.LastError() != "Invalid email or password" {
		t.Errorf("expected server message in LastError, got %q", store.LastError())
	}
	if creds.AccessToken() != "" {
		t.Error("expected no token persisted after failed login")
	}
}

func TestRegister_LogsStraightIn(t *testing.T) {
	store, creds := newTestStore(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/register" {
			t.Errorf("expected path /auth/register, got %s", r.URL.Path)
		}
		writeEnvelope(w, http.StatusCreated, "Registration successful", map[string]any{
			"user":          api.User{ID: 9, Email: "new@u.edu", Role: api.RoleStudent},
			"access_token":  "T1",
			"refresh_token": "R1",
		})
	}))

	user, err := store.Register(context.Background(), &api.RegisterInput{
		Email:        "new@u.edu",
		Password:     "Passw0rd",
		FullName:     "New Student",
		MatricNumber: "CSC/2024/001",
		Department:   "Computer Science",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.ID != 9 {
		t.Errorf("expected user 9, got %d", user.ID)
	}
	if !store.IsAuthenticated() || creds.AccessToken() != "T1" {
		t.Error("expected authenticated session with persisted token")
	}
}

func TestInitialize_NoStoredCredential(t *testing.T) {
	var calls atomic.Int32
	store, _ := newTestStore(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))

	if err := store.Initialize(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls.Load() != 0 {
		t.Error("expected no network call without a stored credential")
	}
	if store.IsAuthenticated() {
		t.Error("expected anonymous session")
	}
	if store.IsLoading() {
		t.Error("expected loading to end false")
	}
}

func TestInitialize_RestoresSession(t *testing.T) {
	store, creds := newTestStore(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/me" {
			t.Errorf("expected path /auth/me, got %s", r.URL.Path)
		}
		writeEnvelope(w, http.StatusOK, "ok", map[string]any{
			"user": api.User{ID: 3, Email: "a@u.edu", Role: api.RoleAdmin},
		})
	}))

	if err := creds.SetTokens("T1", "R1"); err != nil {
		t.Fatal(err)
	}

	if err := store.Initialize(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !store.IsAuthenticated() {
		t.Error("expected restored session")
	}
	if !store.IsAdmin() {
		t.Error("expected admin role from restored user")
	}
}

func TestInitialize_InvalidCredentialFailsClosed(t *testing.T) {
	store, creds := newTestStore(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusUnauthorized, "token expired", nil)
	}))

	if err := creds.SetTokens("T1", ""); err != nil {
		t.Fatal(err)
	}

	if err := store.Initialize(context.Background()); err == nil {
		t.Fatal("expected error for rejected credential")
	}
	if store.IsAuthenticated() {
		t.Error("expected anonymous session after failed restore")
	}
	if creds.AccessToken() != "" || creds.RefreshToken() != "" {
		t.Error("expected stored credentials cleared after failed restore")
	}
	if store.IsLoading() {
		t.Error("expected loading to end false")
	}
}

func TestRefreshIdentity_FailureLogsOut(t *testing.T) {
	var loggedIn atomic.Bool
	loggedIn.Store(true)
	store, creds := newTestStore(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/login":
			writeEnvelope(w, http.StatusOK, "Login successful", map[string]any{
				"user":          api.User{ID: 3, Role: api.RoleStudent},
				"access_token":  "T1",
				"refresh_token": "R1",
			})
		default:
			if loggedIn.Load() {
				writeEnvelope(w, http.StatusOK, "ok", map[string]any{"user": api.User{ID: 3}})
				return
			}
			writeEnvelope(w, http.StatusUnauthorized, "account deactivated", nil)
		}
	}))

	if _, err := store.Login(context.Background(), "a@u.edu", "Secret1"); err != nil {
		t.Fatal(err)
	}

	loggedIn.Store(false)
	if _, err := store.RefreshIdentity(context.Background()); err == nil {
		t.Fatal("expected error when identity fetch fails")
	}
	if store.IsAuthenticated() {
		t.Error("expected session logged out after failed identity refresh")
	}
	if creds.AccessToken() != "" {
		t.Error("expected credentials cleared after failed identity refresh")
	}
}

func TestUpdateProfile_NeverTouchesCredentials(t *testing.T) {
	store, creds := newTestStore(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/login":
			writeEnvelope(w, http.StatusOK, "ok", map[string]any{
				"user":          api.User{ID: 3, FullName: "Ada Obi", Role: api.RoleStudent},
				"access_token":  "T1",
				"refresh_token": "R1",
			})
		case "/auth/profile":
			writeEnvelope(w, http.StatusOK, "Profile updated successfully", map[string]any{
				"user": api.User{ID: 3, FullName: "Ada Obi-Eze", Role: api.RoleStudent},
			})
		}
	}))

	if _, err := store.Login(context.Background(), "a@u.edu", "Secret1"); err != nil {
		t.Fatal(err)
	}

	name := "Ada Obi-Eze"
	user, err := store.UpdateProfile(context.Background(), &api.ProfileInput{FullName: &name})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.FullName != "Ada Obi-Eze" {
		t.Errorf("expected updated name, got %q", user.FullName)
	}
	if store.User().FullName != "Ada Obi-Eze" {
		t.Error("expected store user replaced")
	}
	if creds.AccessToken() != "T1" || creds.RefreshToken() != "R1" {
		t.Error("profile update must not mutate credentials")
	}
}

func TestUpdateProfile_FailurePreservesUser(t *testing.T) {
	var failProfile atomic.Bool
	store, _ := newTestStore(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/login":
			writeEnvelope(w, http.StatusOK, "ok", map[string]any{
				"user":          api.User{ID: 3, FullName: "Ada Obi", Role: api.RoleStudent},
				"access_token":  "T1",
				"refresh_token": "R1",
			})
		case "/auth/profile":
			if failProfile.Load() {
				writeEnvelope(w, http.StatusBadRequest, "No data provided", nil)
				return
			}
		}
	}))

	if _, err := store.Login(context.Background(), "a@u.edu", "Secret1"); err != nil {
		t.Fatal(err)
	}
	failProfile.Store(true)

	_, err := store.UpdateProfile(context.Background(), &api.ProfileInput{})
	if err == nil {
		t.Fatal("expected error")
	}
	if store.User().FullName != "Ada Obi" {
		t.Error("expected prior user record preserved on failure")
	}
	if store.LastError() != "No data provided" {
		t.Errorf("expected server message in LastError, got %q", store.LastError())
	}
}

func TestChangePassword_Success(t *testing.T) {
	store, _ := newTestStore(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/login":
			writeEnvelope(w, http.StatusOK, "ok", map[string]any{
				"user":          api.User{ID: 3, Role: api.RoleStudent},
				"access_token":  "T1",
				"refresh_token": "R1",
			})
		case "/auth/change-password":
			var body map[string]string
			json.NewDecoder(r.Body).Decode(&body)
			if body["current_password"] != "Secret1" || body["new_password"] != "Secret2" {
				writeEnvelope(w, http.StatusBadRequest, "Current password is incorrect", nil)
				return
			}
			writeEnvelope(w, http.StatusOK, "Password changed successfully", nil)
		}
	}))

	if _, err := store.Login(context.Background(), "a@u.edu", "Secret1"); err != nil {
		t.Fatal(err)
	}
	if err := store.ChangePassword(context.Background(), "Secret1", "Secret2"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !store.IsAuthenticated() {
		t.Error("password change must not end the session")
	}
}

func TestLogout_Unconditional(t *testing.T) {
	store, creds := newTestStore(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusOK, "ok", map[string]any{
			"user":          api.User{ID: 3, Role: api.RoleStudent},
			"access_token":  "T1",
			"refresh_token": "R1",
		})
	}))

	if _, err := store.Login(context.Background(), "a@u.edu", "Secret1"); err != nil {
		t.Fatal(err)
	}

	store.Logout()
	if store.IsAuthenticated() || store.User() != nil {
		t.Error("expected fully cleared session after logout")
	}
	if creds.AccessToken() != "" || creds.RefreshToken() != "" {
		t.Error("expected persisted credentials removed after logout")
	}
	// Logout of an already-anonymous session must also succeed
	store.Logout()
}

func TestLogout_DiscardsLateResponse(t *testing.T) {
	release := make(chan struct{})
	store, _ := newTestStore(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
		writeEnvelope(w, http.StatusOK, "ok", map[string]any{
			"user":          api.User{ID: 3, Role: api.RoleStudent},
			"access_token":  "T1",
			"refresh_token": "R1",
		})
	}))

	done := make(chan error, 1)
	go func() {
		_, err := store.Login(context.Background(), "a@u.edu", "Secret1")
		done <- err
	}()

	// Log out while the login response is still pending, then let the
	// response arrive.
	time.Sleep(20 * time.Millisecond)
	store.Logout()
	close(release)

	if err := <-done; err != ErrSuperseded {
		t.Fatalf("expected ErrSuperseded for late login result, got %v", err)
	}
	if store.IsAuthenticated() || store.User() != nil {
		t.Error("late response must not repopulate a logged-out session")
	}
}

func TestCachedUser_RoundTrip(t *testing.T) {
	store, _ := newTestStore(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusOK, "ok", map[string]any{
			"user":          api.User{ID: 3, FullName: "Ada Obi", Role: api.RoleSuperAdmin},
			"access_token":  "T1",
			"refresh_token": "R1",
		})
	}))

	if store.CachedUser() != nil {
		t.Error("expected no cached user before login")
	}
	if _, err := store.Login(context.Background(), "a@u.edu", "Secret1"); err != nil {
		t.Fatal(err)
	}

	cached := store.CachedUser()
	if cached == nil || cached.FullName != "Ada Obi" {
		t.Fatalf("expected cached user record, got %+v", cached)
	}
	if !store.IsSuperAdmin() {
		t.Error("expected super admin role")
	}
}
