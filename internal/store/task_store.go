package store

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/mytodoapp/todo/internal/domain"
)

// GormTaskStore implements TaskStore on a GORM database.
type GormTaskStore struct {
	db *gorm.DB
}

// NewGormTaskStore creates a task store backed by db.
func NewGormTaskStore(db *gorm.DB) *GormTaskStore {
	return &GormTaskStore{db: db}
}

func (s *GormTaskStore) FindByIDAndUserID(ctx context.Context, taskID, userID uint) (*domain.Task, error) {
	var task domain.Task
	err := s.db.WithContext(ctx).Where("id = ? AND user_id = ?", taskID, userID).First(&task).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &task, nil
}

func (s *GormTaskStore) FindAllByUserID(ctx context.Context, userID uint) ([]domain.Task, error) {
	var tasks []domain.Task
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).Order("id").Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

func (s *GormTaskStore) Save(ctx context.Context, task *domain.Task) error {
	return s.db.WithContext(ctx).Save(task).Error
}

func (s *GormTaskStore) Delete(ctx context.Context, task *domain.Task) error {
	return s.db.WithContext(ctx).Delete(task).Error
}
