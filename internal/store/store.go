// Package store exposes the persistence capability of the todo service as
// narrow repository interfaces. Find methods return (nil, nil) when no
// record matches; errors are reserved for storage failures.
//
// Uniqueness of users.email is enforced here by a UNIQUE constraint. Two
// concurrent registrations can both pass the coordinator's existence check;
// the constraint is the last line of defense.
package store

import (
	"context"

	"github.com/mytodoapp/todo/internal/domain"
)

// UserStore is the repository capability for user accounts.
type UserStore interface {
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByID(ctx context.Context, id uint) (*domain.User, error)
	FindAll(ctx context.Context) ([]domain.User, error)
	Save(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id uint) error
}

// TaskStore is the repository capability for tasks. Lookups are always
// scoped by the owning user.
type TaskStore interface {
	FindByIDAndUserID(ctx context.Context, taskID, userID uint) (*domain.Task, error)
	FindAllByUserID(ctx context.Context, userID uint) ([]domain.Task, error)
	Save(ctx context.Context, task *domain.Task) error
	Delete(ctx context.Context, task *domain.Task) error
}
