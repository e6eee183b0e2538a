package store

import (
	"context"
	"sync"

	"gorm.io/gorm"

	"github.com/mytodoapp/todo/internal/domain"
)

// MemoryUserStore is an in-memory UserStore used in tests. It enforces the
// same email/username uniqueness the SQL schema does, returning
// gorm.ErrDuplicatedKey like the translated database error.
type MemoryUserStore struct {
	mu     sync.RWMutex
	nextID uint
	users  map[uint]domain.User
}

// NewMemoryUserStore creates an empty in-memory user store.
func NewMemoryUserStore() *MemoryUserStore {
	return &MemoryUserStore{nextID: 1, users: make(map[uint]domain.User)}
}

func (s *MemoryUserStore) ExistsByEmail(_ context.Context, email string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (s *MemoryUserStore) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.Email == email {
			copied := u
			return &copied, nil
		}
	}
	return nil, nil
}

func (s *MemoryUserStore) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.Username == username {
			copied := u
			return &copied, nil
		}
	}
	return nil, nil
}

func (s *MemoryUserStore) FindByID(_ context.Context, id uint) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if u, ok := s.users[id]; ok {
		copied := u
		return &copied, nil
	}
	return nil, nil
}

func (s *MemoryUserStore) FindAll(_ context.Context) ([]domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	users := make([]domain.User, 0, len(s.users))
	for id := uint(1); id < s.nextID; id++ {
		if u, ok := s.users[id]; ok {
			users = append(users, u)
		}
	}
	return users, nil
}

func (s *MemoryUserStore) Save(_ context.Context, user *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, existing := range s.users {
		if id == user.ID {
			continue
		}
		if existing.Email == user.Email || existing.Username == user.Username {
			return gorm.ErrDuplicatedKey
		}
	}
	if user.ID == 0 {
		user.ID = s.nextID
		s.nextID++
	}
	s.users[user.ID] = *user
	return nil
}

func (s *MemoryUserStore) Delete(_ context.Context, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.users, id)
	return nil
}

// SaveCount is the number of stored users; tests use it to assert write
// counts.
func (s *MemoryUserStore) SaveCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.users)
}

// MemoryTaskStore is an in-memory TaskStore used in tests.
type MemoryTaskStore struct {
	mu     sync.RWMutex
	nextID uint
	tasks  map[uint]domain.Task
}

// NewMemoryTaskStore creates an empty in-memory task store.
func NewMemoryTaskStore() *MemoryTaskStore {
	return &MemoryTaskStore{nextID: 1, tasks: make(map[uint]domain.Task)}
}

func (s *MemoryTaskStore) FindByIDAndUserID(_ context.Context, taskID, userID uint) (*domain.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if t, ok := s.tasks[taskID]; ok && t.UserID == userID {
		copied := t
		return &copied, nil
	}
	return nil, nil
}

func (s *MemoryTaskStore) FindAllByUserID(_ context.Context, userID uint) ([]domain.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	tasks := make([]domain.Task, 0)
	for id := uint(1); id < s.nextID; id++ {
		if t, ok := s.tasks[id]; ok && t.UserID == userID {
			tasks = append(tasks, t)
		}
	}
	return tasks, nil
}

func (s *MemoryTaskStore) Save(_ context.Context, task *domain.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if task.ID == 0 {
		task.ID = s.nextID
		s.nextID++
	}
	s.tasks[task.ID] = *task
	return nil
}

func (s *MemoryTaskStore) Delete(_ context.Context, task *domain.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.tasks, task.ID)
	return nil
}
