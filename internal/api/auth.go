// ABOUTME: Authentication endpoints: register, login, refresh, identity, profile
// ABOUTME: Login and registration return the user plus both bearer tokens

package api

import (
	"context"
	"net/http"
)

// RegisterInput is the payload for student self-registration
type RegisterInput struct {
	Email        string `json:"email"`
	Password     string `json:"password"`
	FullName     string `json:"full_name"`
	MatricNumber string `json:"matric_number"`
	Department   string `json:"department"`
	Faculty      string `json:"faculty,omitempty"`
	Phone        string `json:"phone,omitempty"`
}

// RegisterAdminInput is the payload for super-admin-only admin creation
type RegisterAdminInput struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	FullName   string `json:"full_name"`
	Role       string `json:"role"`
	Department string `json:"department,omitempty"`
	Phone      string `json:"phone,omitempty"`
}

// ProfileInput carries the mutable profile fields. Nil fields are
// omitted and left unchanged by the server.
type ProfileInput struct {
	FullName   *string `json:"full_name,omitempty"`
	Department *string `json:"department,omitempty"`
	Faculty    *string `json:"faculty,omitempty"`
	Phone      *string `json:"phone,omitempty"`
}

// AuthResult is a successful login or registration: the user record
// and both credentials.
type AuthResult struct {
	User         User   `json:"user"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// Login authenticates with email and password
func (c *Client) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	body := map[string]string{"email": email, "password": password}
	var result AuthResult
	if _, err := c.do(ctx, http.MethodPost, "/auth/login", nil, body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Register creates a student account and logs straight into it
func (c *Client) Register(ctx context.Context, input *RegisterInput) (*AuthResult, error) {
	var result AuthResult
	if _, err := c.do(ctx, http.MethodPost, "/auth/register", nil, input, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Me fetches the identity behind the current access token
func (c *Client) Me(ctx context.Context) (*User, error) {
	var result struct {
		User User `json:"user"`
	}
	if _, err := c.do(ctx, http.MethodGet, "/auth/me", nil, nil, &result); err != nil {
		return nil, err
	}
	return &result.User, nil
}

// UpdateProfile mutates the current user's profile fields
func (c *Client) UpdateProfile(ctx context.Context, input *ProfileInput) (*User, error) {
	var result struct {
		User User `json:"user"`
	}
	if _, err := c.do(ctx, http.MethodPut, "/auth/profile", nil, input, &result); err != nil {
		return nil, err
	}
	return &result.User, nil
}

// ChangePassword replaces the current user's password
func (c *Client) ChangePassword(ctx context.Context, current, next string) error {
	body := map[string]string{"current_password": current, "new_password": next}
	_, err := c.do(ctx, http.MethodPost, "/auth/change-password", nil, body, nil)
	return err
}

// RegisterAdmin creates an admin account (super admin only)
func (c *Client) RegisterAdmin(ctx context.Context, input *RegisterAdminInput) (*User, error) {
	var result struct {
		User User `json:"user"`
	}
	if _, err := c.do(ctx, http.MethodPost, "/auth/register-admin", nil, input, &result); err != nil {
		return nil, err
	}
	return &result.User, nil
}
