// Package user implements the admin-facing user management operations.
package user

import (
	"context"

	"github.com/mytodoapp/todo/internal/apperrors"
	"github.com/mytodoapp/todo/internal/auth/password"
	"github.com/mytodoapp/todo/internal/database"
	"github.com/mytodoapp/todo/internal/domain"
	"github.com/mytodoapp/todo/internal/logger"
	"github.com/mytodoapp/todo/internal/store"
)

// CreateInput carries the fields of an admin user-create request.
type CreateInput struct {
	Username string
	Email    string
	Password string
	Role     domain.Role
}

// UpdateInput carries the mutable account fields. The password and its
// hash are never updated through this path.
type UpdateInput struct {
	Username              string
	Email                 string
	Role                  domain.Role
	Enabled               bool
	AccountNonExpired     bool
	AccountNonLocked      bool
	CredentialsNonExpired bool
}

// Service implements user CRUD over the user store.
type Service struct {
	users  store.UserStore
	hasher password.Hasher
	log    *logger.Logger
}

// NewService creates the user service.
func NewService(users store.UserStore, hasher password.Hasher, log *logger.Logger) *Service {
	return &Service{users: users, hasher: hasher, log: log.WithComponent("user")}
}

// Create adds a new account. Both a duplicate email and a duplicate
// username are conflicts.
func (s *Service) Create(ctx context.Context, in CreateInput) (*domain.User, error) {
	exists, err := s.users.ExistsByEmail(ctx, in.Email)
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	if exists {
		return nil, apperrors.AlreadyExists("user", "Email already exists: "+in.Email)
	}

	existing, err := s.users.FindByUsername(ctx, in.Username)
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	if existing != nil {
		return nil, apperrors.AlreadyExists("user", "Username already exists: "+in.Username)
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	role := in.Role
	if role == "" {
		role = domain.RoleUser
	}

	u := &domain.User{
		Username:              in.Username,
		Email:                 in.Email,
		PasswordHash:          hash,
		Role:                  role,
		Enabled:               true,
		AccountNonExpired:     true,
		AccountNonLocked:      true,
		CredentialsNonExpired: true,
	}
	if err := s.users.Save(ctx, u); err != nil {
		return nil, database.FromDatabase(err, "user")
	}

	s.log.Info("User created", logger.Fields(logger.FieldUserID, u.ID, logger.FieldEmail, u.Email))
	return u, nil
}

// Update mutates account fields of an existing user.
func (s *Service) Update(ctx context.Context, id uint, in UpdateInput) (*domain.User, error) {
	u, err := s.findByIDOrErr(ctx, id)
	if err != nil {
		return nil, err
	}

	u.Username = in.Username
	u.Email = in.Email
	if in.Role != "" {
		u.Role = in.Role
	}
	u.Enabled = in.Enabled
	u.AccountNonExpired = in.AccountNonExpired
	u.AccountNonLocked = in.AccountNonLocked
	u.CredentialsNonExpired = in.CredentialsNonExpired

	if err := s.users.Save(ctx, u); err != nil {
		return nil, database.FromDatabase(err, "user")
	}
	return u, nil
}

// Delete removes a user and, via the store's cascade, their tasks.
func (s *Service) Delete(ctx context.Context, id uint) error {
	if _, err := s.findByIDOrErr(ctx, id); err != nil {
		return err
	}
	if err := s.users.Delete(ctx, id); err != nil {
		return apperrors.DatabaseError(err)
	}
	s.log.Info("User deleted", logger.Fields(logger.FieldUserID, id))
	return nil
}

// FindByID returns a single user.
func (s *Service) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	return s.findByIDOrErr(ctx, id)
}

// FindAll returns every user ordered by id.
func (s *Service) FindAll(ctx context.Context) ([]domain.User, error) {
	users, err := s.users.FindAll(ctx)
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	return users, nil
}

func (s *Service) findByIDOrErr(ctx context.Context, id uint) (*domain.User, error) {
	u, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	if u == nil {
		return nil, apperrors.NotFound("user", id)
	}
	return u, nil
}
