package api

import (
	"context"

	"github.com/dmitrijs2005/accountcli/internal/client/models"
)

// Client is the backend contract the stores depend on.
type Client interface {
	// Register creates an account. A newer Register call supersedes a
	// still-outstanding one, which then fails with ErrSuperseded.
	Register(ctx context.Context, data models.RegisterData) (*models.AuthResponse, error)

	// Login authenticates with email and password.
	Login(ctx context.Context, credentials models.LoginData) (*models.AuthResponse, error)

	// GetProfile fetches the canonical profile of the authenticated user.
	GetProfile(ctx context.Context) (*models.User, error)

	// UpdateProfile applies a partial update and returns the updated user.
	UpdateProfile(ctx context.Context, data models.UpdateProfileData) (*models.User, error)

	// Logout invalidates the session on the server.
	Logout(ctx context.Context) error
}

// TokenSource supplies the bearer credential attached to authenticated
// requests. Token returns "" when no session token is stored.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}
