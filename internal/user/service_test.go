package user_test

import (
	"context"
	"errors"
	"testing"

	"github.com/mytodoapp/todo/internal/apperrors"
	"github.com/mytodoapp/todo/internal/auth/password"
	"github.com/mytodoapp/todo/internal/domain"
	"github.com/mytodoapp/todo/internal/logger"
	"github.com/mytodoapp/todo/internal/store"
	"github.com/mytodoapp/todo/internal/user"
)

func newService(t *testing.T) (*user.Service, *store.MemoryUserStore) {
	t.Helper()
	users := store.NewMemoryUserStore()
	hasher := password.NewBcryptHasher(password.WithCost(4))
	return user.NewService(users, hasher, logger.NewDefault("test")), users
}

func createUser(t *testing.T, svc *user.Service, username, email string, role domain.Role) *domain.User {
	t.Helper()
	u, err := svc.Create(context.Background(), user.CreateInput{
		Username: username,
		Email:    email,
		Password: "S3cret!pass",
		Role:     role,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	return u
}

func assertCode(t *testing.T, err error, code apperrors.ErrorCode) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %s error, got nil", code)
	}
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected AppError, got %T: %v", err, err)
	}
	if appErr.Code != code {
		t.Fatalf("expected code %s, got %s (%s)", code, appErr.Code, appErr.Message)
	}
}

func TestService_Create_Success(t *testing.T) {
	svc, users := newService(t)

	u := createUser(t, svc, "bob_01", "bob@example.com", domain.RoleAdmin)
	if u.ID == 0 {
		t.Error("expected an assigned id")
	}
	if u.Role != domain.RoleAdmin {
		t.Errorf("expected role ADMIN, got %s", u.Role)
	}
	if u.PasswordHash == "S3cret!pass" {
		t.Error("password must be stored hashed")
	}
	if !u.Enabled || !u.AccountNonExpired || !u.AccountNonLocked || !u.CredentialsNonExpired {
		t.Error("new accounts must start fully enabled")
	}

	stored, err := users.FindByID(context.Background(), u.ID)
	if err != nil || stored == nil {
		t.Fatalf("expected stored user, got %v, %v", stored, err)
	}
}

func TestService_Create_DefaultRole(t *testing.T) {
	svc, _ := newService(t)

	u, err := svc.Create(context.Background(), user.CreateInput{
		Username: "bob_01",
		Email:    "bob@example.com",
		Password: "S3cret!pass",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if u.Role != domain.RoleUser {
		t.Errorf("expected default role USER, got %s", u.Role)
	}
}

func TestService_Create_DuplicateEmail(t *testing.T) {
	svc, _ := newService(t)
	createUser(t, svc, "bob_01", "bob@example.com", domain.RoleUser)

	_, err := svc.Create(context.Background(), user.CreateInput{
		Username: "bob_02",
		Email:    "bob@example.com",
		Password: "S3cret!pass",
	})
	assertCode(t, err, apperrors.ErrCodeAlreadyExists)
}

func TestService_Create_DuplicateUsername(t *testing.T) {
	svc, _ := newService(t)
	createUser(t, svc, "bob_01", "bob@example.com", domain.RoleUser)

	_, err := svc.Create(context.Background(), user.CreateInput{
		Username: "bob_01",
		Email:    "other@example.com",
		Password: "S3cret!pass",
	})
	assertCode(t, err, apperrors.ErrCodeAlreadyExists)
}

func TestService_Update_Success(t *testing.T) {
	svc, _ := newService(t)
	u := createUser(t, svc, "bob_01", "bob@example.com", domain.RoleUser)
	originalHash := u.PasswordHash

	updated, err := svc.Update(context.Background(), u.ID, user.UpdateInput{
		Username:              "bob_renamed",
		Email:                 "bob.new@example.com",
		Role:                  domain.RoleAdmin,
		Enabled:               true,
		AccountNonExpired:     true,
		AccountNonLocked:      false,
		CredentialsNonExpired: true,
	})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.Username != "bob_renamed" || updated.Email != "bob.new@example.com" {
		t.Errorf("unexpected identity fields: %s / %s", updated.Username, updated.Email)
	}
	if updated.Role != domain.RoleAdmin {
		t.Errorf("expected role ADMIN, got %s", updated.Role)
	}
	if updated.AccountNonLocked {
		t.Error("expected account to be locked")
	}
	if updated.PasswordHash != originalHash {
		t.Error("update must never touch the password hash")
	}
}

func TestService_Update_NotFound(t *testing.T) {
	svc, _ := newService(t)
	_, err := svc.Update(context.Background(), 99, user.UpdateInput{Username: "x", Email: "x@example.com"})
	assertCode(t, err, apperrors.ErrCodeNotFound)
}

func TestService_Delete_Success(t *testing.T) {
	svc, users := newService(t)
	u := createUser(t, svc, "bob_01", "bob@example.com", domain.RoleUser)

	if err := svc.Delete(context.Background(), u.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	stored, err := users.FindByID(context.Background(), u.ID)
	if err != nil {
		t.Fatalf("FindByID failed: %v", err)
	}
	if stored != nil {
		t.Error("expected user to be gone")
	}
}

func TestService_Delete_NotFound(t *testing.T) {
	svc, _ := newService(t)
	assertCode(t, svc.Delete(context.Background(), 99), apperrors.ErrCodeNotFound)
}

func TestService_FindByID_NotFound(t *testing.T) {
	svc, _ := newService(t)
	_, err := svc.FindByID(context.Background(), 99)
	assertCode(t, err, apperrors.ErrCodeNotFound)
}

func TestService_FindAll(t *testing.T) {
	svc, _ := newService(t)
	createUser(t, svc, "bob_01", "bob@example.com", domain.RoleUser)
	createUser(t, svc, "carol_01", "carol@example.com", domain.RoleAdmin)

	all, err := svc.FindAll(context.Background())
	if err != nil {
		t.Fatalf("FindAll failed: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 users, got %d", len(all))
	}
	if all[0].Username != "bob_01" || all[1].Username != "carol_01" {
		t.Errorf("expected id order, got %s, %s", all[0].Username, all[1].Username)
	}
}
