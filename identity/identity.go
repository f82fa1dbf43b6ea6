// Package identity wraps the external identity provider (a GoTrue-style
// auth API): user creation, password sign-in, bearer-token resolution and
// password recovery. Handlers depend on the Provider interface so tests
// can substitute a fake.
package identity

import "context"

// User is the provider's account record as this service sees it.
type User struct {
	Id    string `json:"id"`
	Email string `json:"email"`
}

// Session is the result of a successful password sign-in.
type Session struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
	User        User   `json:"user"`
}

type Provider interface {
	// CreateUser registers a new account with the email already confirmed.
	CreateUser(ctx context.Context, email, password string) (*User, error)

	// SignIn performs a password-grant login and returns the session.
	SignIn(ctx context.Context, email, password string) (*Session, error)

	// UserFromToken resolves a bearer token to its user. Any failure,
	// including transport errors, means the token cannot be trusted.
	UserFromToken(ctx context.Context, token string) (*User, error)

	// Recover triggers the provider's password-reset email flow.
	Recover(ctx context.Context, email, redirectTo string) error
}
