// Package auth orchestrates registration, login, and token refresh. It is
// the only component that touches the user store on behalf of the
// authentication flows; every decision it makes is stateless beyond that
// store and the process-wide signing secret.
package auth

import (
	"context"

	"github.com/mytodoapp/todo/internal/apperrors"
	"github.com/mytodoapp/todo/internal/auth/password"
	"github.com/mytodoapp/todo/internal/auth/token"
	"github.com/mytodoapp/todo/internal/database"
	"github.com/mytodoapp/todo/internal/domain"
	"github.com/mytodoapp/todo/internal/logger"
	"github.com/mytodoapp/todo/internal/store"
)

// Session is the response shape for all three auth operations. It is never
// persisted.
type Session struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	TokenType    string `json:"tokenType"`
	ExpiresIn    int64  `json:"expiresIn"`
	Email        string `json:"email"`
	Role         string `json:"role"`
}

// RegisterRequest carries the inputs of the register operation.
type RegisterRequest struct {
	Username        string
	Email           string
	Password        string
	ConfirmPassword string
}

// Service coordinates the authentication workflows.
type Service struct {
	users    store.UserStore
	hasher   password.Hasher
	codec    *token.Codec
	verifier *CredentialVerifier
	log      *logger.Logger
}

// NewService creates the authentication coordinator.
func NewService(users store.UserStore, hasher password.Hasher, codec *token.Codec, log *logger.Logger) *Service {
	return &Service{
		users:    users,
		hasher:   hasher,
		codec:    codec,
		verifier: NewCredentialVerifier(users, hasher),
		log:      log.WithComponent("auth"),
	}
}

// Register creates a new USER account and returns a token pair. It performs
// exactly one store write. Two concurrent registrations with the same email
// can both pass the existence check; the store's unique constraint decides
// the race.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*Session, error) {
	exists, err := s.users.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	if exists {
		return nil, apperrors.AlreadyExists("user", "Email already exists")
	}

	if req.Password != req.ConfirmPassword {
		return nil, apperrors.InvalidInput("Passwords do not match")
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	user := &domain.User{
		Username:              req.Username,
		Email:                 req.Email,
		PasswordHash:          hash,
		Role:                  domain.RoleUser,
		Enabled:               true,
		AccountNonExpired:     true,
		AccountNonLocked:      true,
		CredentialsNonExpired: true,
	}
	if err := s.users.Save(ctx, user); err != nil {
		return nil, database.FromDatabase(err, "user")
	}

	s.log.Info("User registered", logger.Fields(logger.FieldEmail, user.Email, logger.FieldUserID, user.ID))
	return s.issueSession(user)
}

// Login verifies credentials and returns a fresh token pair. Read-only.
func (s *Service) Login(ctx context.Context, email, pw string) (*Session, error) {
	user, err := s.verifier.Authenticate(ctx, email, pw)
	if err != nil {
		return nil, err
	}

	s.log.Info("User logged in", logger.Fields(logger.FieldEmail, user.Email))
	return s.issueSession(user)
}

// Refresh validates a refresh token and mints a new access token with
// claims re-derived from the current account. The refresh token is never
// rotated: the same string remains valid until its own expiry, and it is
// echoed back unchanged.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (*Session, error) {
	subject, err := s.codec.ExtractSubject(refreshToken)
	if err != nil {
		return nil, err
	}

	user, err := s.users.FindByEmail(ctx, subject)
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	if user == nil {
		return nil, apperrors.NotFound("user", subject)
	}

	if !s.codec.IsValid(refreshToken, subject) {
		return nil, apperrors.InvalidInput("Invalid or expired refresh token")
	}

	accessToken, err := s.codec.IssueAccess(user.Email, user.Role, user.ID)
	if err != nil {
		return nil, err
	}

	return s.session(user, accessToken, refreshToken), nil
}

// issueSession mints a fresh access/refresh pair for the user.
func (s *Service) issueSession(user *domain.User) (*Session, error) {
	accessToken, err := s.codec.IssueAccess(user.Email, user.Role, user.ID)
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.codec.IssueRefresh(user.Email)
	if err != nil {
		return nil, err
	}
	return s.session(user, accessToken, refreshToken), nil
}

func (s *Service) session(user *domain.User, accessToken, refreshToken string) *Session {
	return &Session{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    s.codec.AccessTTLMillis(),
		Email:        user.Email,
		Role:         string(user.Role),
	}
}
