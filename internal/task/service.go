// Package task implements task CRUD. Every operation first resolves the
// owning user and scopes the task lookup by (taskID, userID).
package task

import (
	"context"

	"github.com/mytodoapp/todo/internal/apperrors"
	"github.com/mytodoapp/todo/internal/domain"
	"github.com/mytodoapp/todo/internal/logger"
	"github.com/mytodoapp/todo/internal/store"
)

// Input carries the writable task fields.
type Input struct {
	Title       string
	Description string
}

// Service implements task CRUD over the task and user stores.
type Service struct {
	tasks store.TaskStore
	users store.UserStore
	log   *logger.Logger
}

// NewService creates the task service.
func NewService(tasks store.TaskStore, users store.UserStore, log *logger.Logger) *Service {
	return &Service{tasks: tasks, users: users, log: log.WithComponent("task")}
}

// Add creates a task owned by userID.
func (s *Service) Add(ctx context.Context, userID uint, in Input) (*domain.Task, error) {
	if err := s.requireUser(ctx, userID); err != nil {
		return nil, err
	}

	t := &domain.Task{
		Title:       in.Title,
		Description: in.Description,
		UserID:      userID,
	}
	if err := s.tasks.Save(ctx, t); err != nil {
		return nil, apperrors.DatabaseError(err)
	}

	s.log.Info("Task created", logger.Fields("task_id", t.ID, logger.FieldUserID, userID))
	return t, nil
}

// Update replaces the writable fields of an existing task.
func (s *Service) Update(ctx context.Context, userID, taskID uint, in Input) (*domain.Task, error) {
	t, err := s.findTaskOrErr(ctx, userID, taskID)
	if err != nil {
		return nil, err
	}

	t.Title = in.Title
	t.Description = in.Description
	if err := s.tasks.Save(ctx, t); err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	return t, nil
}

// Delete removes a task.
func (s *Service) Delete(ctx context.Context, userID, taskID uint) error {
	t, err := s.findTaskOrErr(ctx, userID, taskID)
	if err != nil {
		return err
	}
	if err := s.tasks.Delete(ctx, t); err != nil {
		return apperrors.DatabaseError(err)
	}
	return nil
}

// FindByUserID returns a single task owned by userID.
func (s *Service) FindByUserID(ctx context.Context, userID, taskID uint) (*domain.Task, error) {
	return s.findTaskOrErr(ctx, userID, taskID)
}

// FindAllByUserID returns every task owned by userID.
func (s *Service) FindAllByUserID(ctx context.Context, userID uint) ([]domain.Task, error) {
	if err := s.requireUser(ctx, userID); err != nil {
		return nil, err
	}
	tasks, err := s.tasks.FindAllByUserID(ctx, userID)
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	return tasks, nil
}

func (s *Service) requireUser(ctx context.Context, userID uint) error {
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return apperrors.DatabaseError(err)
	}
	if u == nil {
		return apperrors.NotFound("user", userID)
	}
	return nil
}

func (s *Service) findTaskOrErr(ctx context.Context, userID, taskID uint) (*domain.Task, error) {
	if err := s.requireUser(ctx, userID); err != nil {
		return nil, err
	}
	t, err := s.tasks.FindByIDAndUserID(ctx, taskID, userID)
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	if t == nil {
		return nil, apperrors.NotFound("task", taskID)
	}
	return t, nil
}
