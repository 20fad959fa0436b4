package services

import (
	"context"
	"fmt"

	"blogclient/app/api"
	"blogclient/app/models"
)

// AuthService handles account and session operations
type AuthService struct {
	client *api.Client
}

// NewAuthService creates a new AuthService
func NewAuthService(client *api.Client) *AuthService {
	return &AuthService{client: client}
}

// Register creates a new account and returns the created identity.
func (s *AuthService) Register(ctx context.Context, reg models.Registration) (*models.Identity, error) {
	if err := reg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid registration: %w", err)
	}

	payload := struct {
		User models.Registration `json:"user"`
	}{User: reg}

	var identity models.Identity
	if err := s.client.Post(ctx, "/users", payload, &identity); err != nil {
		return nil, err
	}
	return &identity, nil
}

// Login establishes a server session for the given credentials. The response
// body is intentionally ignored; callers re-probe the current identity so the
// client never trusts a login payload.
func (s *AuthService) Login(ctx context.Context, email, password string) error {
	payload := struct {
		User struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		} `json:"user"`
	}{}
	payload.User.Email = email
	payload.User.Password = password

	return s.client.Post(ctx, "/login", payload, nil)
}

// Logout terminates the server-side session.
func (s *AuthService) Logout(ctx context.Context) error {
	return s.client.Delete(ctx, "/logout")
}

// CurrentUser probes the API for the current identity. A 401 response is a
// valid "no session" outcome and returns (nil, nil); every other failure
// propagates as an error.
func (s *AuthService) CurrentUser(ctx context.Context) (*models.Identity, error) {
	var identity models.Identity
	err := s.client.Get(ctx, "/users/current", &identity)
	if err != nil {
		if api.IsUnauthorized(err) {
			return nil, nil
		}
		return nil, err
	}
	return &identity, nil
}
