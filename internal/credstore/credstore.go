// ABOUTME: Durable credential storage for the CLI session
// ABOUTME: Persists access/refresh tokens and a cached user record in the XDG config directory

package credstore

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
)

// Credentials is the on-disk shape of the persisted session state.
// CachedUser is an opaque copy of the last known user record, kept for
// fast rendering; it is always revalidated against /auth/me before the
// session is considered authenticated.
type Credentials struct {
	AccessToken  string          `json:"access_token,omitempty"`
	RefreshToken string          `json:"refresh_token,omitempty"`
	CachedUser   json.RawMessage `json:"cached_user,omitempty"`
}

// Store reads and writes credentials under a config directory.
// Writes are whole-file overwrites, so concurrent writers cannot
// interleave partial state.
type Store struct {
	mu        sync.Mutex
	configDir string
}

// New creates a credential store rooted at the given config directory
func New(configDir string) *Store {
	return &Store{configDir: configDir}
}

// credFile returns the path to the credentials JSON
func (s *Store) credFile() string {
	return filepath.Join(s.configDir, "credentials.json")
}

// Load reads the persisted credentials. A missing or corrupt file is
// treated as an empty (anonymous) state, never an error.
func (s *Store) Load() Credentials {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

func (s *Store) load() Credentials {
	data, err := os.ReadFile(s.credFile())
	if err != nil {
		return Credentials{}
	}

	var creds Credentials
	if err := json.Unmarshal(data, &creds); err != nil {
		// Invalid JSON, start fresh
		return Credentials{}
	}
	return creds
}

// Save persists the given credentials, replacing whatever was stored
func (s *Store) Save(creds Credentials) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(creds)
}

func (s *Store) save(creds Credentials) error {
	if err := os.MkdirAll(s.configDir, 0700); err != nil {
		return err
	}

	data, err := json.MarshalIndent(creds, "", "  ")
	if err != nil {
		return err
	}

	// Tokens authorize API calls, keep them out of other users' reach
	return os.WriteFile(s.credFile(), data, 0600)
}

// AccessToken returns the persisted access token, or "" when absent
func (s *Store) AccessToken() string {
	return s.Load().AccessToken
}

// RefreshToken returns the persisted refresh token, or "" when absent
func (s *Store) RefreshToken() string {
	return s.Load().RefreshToken
}

// SetTokens replaces both tokens, preserving the cached user record
func (s *Store) SetTokens(access, refresh string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	creds := s.load()
	creds.AccessToken = access
	creds.RefreshToken = refresh
	return s.save(creds)
}

// SetAccessToken replaces only the access token, as happens after a
// successful refresh (the refresh endpoint returns no new refresh token)
func (s *Store) SetAccessToken(access string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	creds := s.load()
	creds.AccessToken = access
	return s.save(creds)
}

// SetCachedUser stores the serialized user record for fast rendering
func (s *Store) SetCachedUser(user json.RawMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	creds := s.load()
	creds.CachedUser = user
	return s.save(creds)
}

// Clear removes all persisted credentials. Missing state is not an
// error: logout must always succeed.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	os.Remove(s.credFile())
}
