package auth

import (
	"context"

	"github.com/mytodoapp/todo/internal/apperrors"
	"github.com/mytodoapp/todo/internal/auth/password"
	"github.com/mytodoapp/todo/internal/domain"
	"github.com/mytodoapp/todo/internal/store"
)

// CredentialVerifier checks presented credentials against the user store.
// A missing account and a wrong password are indistinguishable to the
// caller.
type CredentialVerifier struct {
	users  store.UserStore
	hasher password.Hasher
}

// NewCredentialVerifier creates a verifier over the given store and hasher.
func NewCredentialVerifier(users store.UserStore, hasher password.Hasher) *CredentialVerifier {
	return &CredentialVerifier{users: users, hasher: hasher}
}

// Authenticate returns the account matching email if pw verifies against
// its stored hash, or an UNAUTHORIZED error otherwise.
func (v *CredentialVerifier) Authenticate(ctx context.Context, email, pw string) (*domain.User, error) {
	user, err := v.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	if user == nil || !v.hasher.Verify(pw, user.PasswordHash) {
		return nil, apperrors.Unauthorized("Invalid email or password")
	}
	return user, nil
}
