// ABOUTME: Session store: single source of truth for the logged-in identity
// ABOUTME: Orchestrates login, registration, logout, silent restore, and profile mutations

package session

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"

	"github.com/basgenix/uni-complaint-system/internal/api"
	"github.com/basgenix/uni-complaint-system/internal/credstore"
)

// ErrSuperseded is returned when an operation completes after the
// session it started under was torn down. Its result is discarded
// rather than applied to the fresh state.
var ErrSuperseded = errors.New("session superseded by logout")

// Store holds the current user identity and authentication status.
// Credentials themselves live in the durable credential store; the
// Store orchestrates the operations that change them. All mutation
// goes through the operation methods, never through field access.
type Store struct {
	client *api.Client
	creds  *credstore.Store

	mu            sync.Mutex
	user          *api.User
	authenticated bool
	loading       bool
	lastError     string

	// epoch increments on every logout. Operations capture it before
	// their network call and discard the result if it moved, so a late
	// response can never repopulate a logged-out session.
	epoch uint64
}

// New creates a session store and subscribes it to the client's
// auth-expired events: when the request pipeline gives up on the
// credentials, the in-memory session is cleared too.
func New(client *api.Client, creds *credstore.Store) *Store {
	s := &Store{client: client, creds: creds}
	client.OnAuthExpired(s.forceLogout)
	return s
}

// User returns the current identity, or nil when anonymous
func (s *Store) User() *api.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user
}

// IsAuthenticated reports whether an identity is currently loaded
func (s *Store) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.authenticated
}

// IsLoading reports whether an auth-affecting network call is in flight
func (s *Store) IsLoading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// LastError returns the message from the most recent failed operation
func (s *Store) LastError() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastError
}

// IsAdmin reports whether the current user has admin privileges
func (s *Store) IsAdmin() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user != nil && s.user.IsAdmin()
}

// IsSuperAdmin reports whether the current user is a super admin
func (s *Store) IsSuperAdmin() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user != nil && s.user.IsSuperAdmin()
}

// begin marks the store as loading and returns the current epoch
func (s *Store) begin() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = true
	return s.epoch
}

// finish clears the loading flag and records the outcome. It reports
// whether the session the operation started under is still current;
// when it is not, the caller must discard the result.
func (s *Store) finish(epoch uint64, err error) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if s.epoch != epoch {
		return false
	}
	if err != nil {
		s.lastError = err.Error()
	} else {
		s.lastError = ""
	}
	return true
}

// Login authenticates with email and password. On success the user,
// access credential, and refresh credential are all replaced and
// persisted; on failure prior state is untouched apart from LastError.
func (s *Store) Login(ctx context.Context, email, password string) (*api.User, error) {
	epoch := s.begin()
	result, err := s.client.Login(ctx, email, password)
	current := s.finish(epoch, err)
	if err != nil {
		return nil, err
	}
	if !current {
		return nil, ErrSuperseded
	}
	return s.adopt(epoch, result)
}

// Register creates a student account and logs straight into it, with
// the same contract as Login.
func (s *Store) Register(ctx context.Context, input *api.RegisterInput) (*api.User, error) {
	epoch := s.begin()
	result, err := s.client.Register(ctx, input)
	current := s.finish(epoch, err)
	if err != nil {
		return nil, err
	}
	if !current {
		return nil, ErrSuperseded
	}
	return s.adopt(epoch, result)
}

// adopt installs a fresh authentication result: both credentials and
// the cached user record are persisted, then the in-memory state flips
// to authenticated.
func (s *Store) adopt(epoch uint64, result *api.AuthResult) (*api.User, error) {
	if err := s.creds.SetTokens(result.AccessToken, result.RefreshToken); err != nil {
		return nil, err
	}
	s.cacheUser(&result.User)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.epoch != epoch {
		// Logged out while persisting; leave the cleared state alone
		s.creds.Clear()
		return nil, ErrSuperseded
	}
	user := result.User
	s.user = &user
	s.authenticated = true
	return &user, nil
}

// Logout clears all session state and persisted credentials. It is
// synchronous, makes no network call, and cannot fail.
func (s *Store) Logout() {
	s.forceLogout()
}

func (s *Store) forceLogout() {
	s.creds.Clear()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = nil
	s.authenticated = false
	s.loading = false
	s.lastError = ""
	s.epoch++
}

// Initialize restores the session at startup. With no persisted access
// credential the session stays anonymous and no network call is made.
// With one, the current identity is fetched; failure clears all
// credentials and storage (fail-closed).
func (s *Store) Initialize(ctx context.Context) error {
	if s.creds.AccessToken() == "" {
		s.mu.Lock()
		s.loading = false
		s.mu.Unlock()
		return nil
	}

	epoch := s.begin()
	user, err := s.client.Me(ctx)
	current := s.finish(epoch, err)
	if err != nil {
		// The pipeline already tore down on a terminal 401; clear
		// explicitly for the non-auth failure paths too.
		if !api.IsUnauthorized(err) {
			slog.Debug("session restore failed", "error", err)
		}
		s.forceLogout()
		return err
	}
	if !current {
		return ErrSuperseded
	}

	s.cacheUser(user)
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.epoch != epoch {
		return ErrSuperseded
	}
	s.user = user
	s.authenticated = true
	return nil
}

// RefreshIdentity re-fetches the current identity, used to re-sync
// after mutations. Failure logs the session out as a side effect.
func (s *Store) RefreshIdentity(ctx context.Context) (*api.User, error) {
	epoch := s.begin()
	user, err := s.client.Me(ctx)
	current := s.finish(epoch, err)
	if err != nil {
		s.forceLogout()
		return nil, err
	}
	if !current {
		return nil, ErrSuperseded
	}

	s.cacheUser(user)
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.epoch != epoch {
		return nil, ErrSuperseded
	}
	s.user = user
	s.authenticated = true
	return user, nil
}

// UpdateProfile mutates the current user's profile fields. Credentials
// are never touched; on failure the prior user record is preserved.
func (s *Store) UpdateProfile(ctx context.Context, input *api.ProfileInput) (*api.User, error) {
	epoch := s.begin()
	user, err := s.client.UpdateProfile(ctx, input)
	current := s.finish(epoch, err)
	if err != nil {
		return nil, err
	}
	if !current {
		return nil, ErrSuperseded
	}

	s.cacheUser(user)
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.epoch != epoch {
		return nil, ErrSuperseded
	}
	s.user = user
	return user, nil
}

// ChangePassword replaces the current user's password. Neither the
// user record nor the credentials are mutated.
func (s *Store) ChangePassword(ctx context.Context, current, next string) error {
	epoch := s.begin()
	err := s.client.ChangePassword(ctx, current, next)
	stillCurrent := s.finish(epoch, err)
	if err != nil {
		return err
	}
	if !stillCurrent {
		return ErrSuperseded
	}
	return nil
}

// CachedUser returns the persisted user record for fast rendering
// before the session has been validated against the server.
func (s *Store) CachedUser() *api.User {
	raw := s.creds.Load().CachedUser
	if len(raw) == 0 {
		return nil
	}
	var user api.User
	if err := json.Unmarshal(raw, &user); err != nil {
		return nil
	}
	return &user
}

// cacheUser persists the user record for display on the next startup
func (s *Store) cacheUser(user *api.User) {
	raw, err := json.Marshal(user)
	if err != nil {
		return
	}
	if err := s.creds.SetCachedUser(raw); err != nil {
		slog.Debug("could not cache user record", "error", err)
	}
}
