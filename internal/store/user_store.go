package store

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/mytodoapp/todo/internal/domain"
)

// GormUserStore implements UserStore on a GORM database.
type GormUserStore struct {
	db *gorm.DB
}

// NewGormUserStore creates a user store backed by db.
func NewGormUserStore(db *gorm.DB) *GormUserStore {
	return &GormUserStore{db: db}
}

func (s *GormUserStore) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&domain.User{}).Where("email = ?", email).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *GormUserStore) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.findOne(ctx, "email = ?", email)
}

func (s *GormUserStore) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	return s.findOne(ctx, "username = ?", username)
}

func (s *GormUserStore) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	return s.findOne(ctx, "id = ?", id)
}

func (s *GormUserStore) FindAll(ctx context.Context) ([]domain.User, error) {
	var users []domain.User
	if err := s.db.WithContext(ctx).Order("id").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (s *GormUserStore) Save(ctx context.Context, user *domain.User) error {
	return s.db.WithContext(ctx).Save(user).Error
}

func (s *GormUserStore) Delete(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Delete(&domain.User{}, id).Error
}

func (s *GormUserStore) findOne(ctx context.Context, query string, arg any) (*domain.User, error) {
	var user domain.User
	err := s.db.WithContext(ctx).Where(query, arg).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}
