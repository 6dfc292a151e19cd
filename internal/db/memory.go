package db

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/taskhive/taskhive/internal/models"
)

// Memory is a map-backed Store used by unit tests and by local development
// when no Mongo instance is configured. It enforces the same email
// uniqueness and owner scoping as the Mongo store.
type Memory struct {
	mu    sync.RWMutex
	users map[string]*models.User
	tasks map[string]*models.Task
}

func NewMemory() *Memory {
	return &Memory{
		users: make(map[string]*models.User),
		tasks: make(map[string]*models.Task),
	}
}

func (s *Memory) InsertUser(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.users {
		if existing.Email == user.Email {
			return ErrDuplicateEmail
		}
	}
	s.users[user.ID] = user.Clone()
	return nil
}

func (s *Memory) FindUserByID(_ context.Context, id string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return user.Clone(), nil
}

func (s *Memory) FindUserByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, user := range s.users {
		if user.Email == email {
			return user.Clone(), nil
		}
	}
	return nil, ErrNotFound
}

func (s *Memory) SaveUser(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[user.ID]; !ok {
		return ErrNotFound
	}
	for id, existing := range s.users {
		if id != user.ID && existing.Email == user.Email {
			return ErrDuplicateEmail
		}
	}

	user.UpdatedAt = time.Now().UTC()
	s.users[user.ID] = user.Clone()
	return nil
}

func (s *Memory) DeleteUser(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[id]; !ok {
		return ErrNotFound
	}
	delete(s.users, id)

	for taskID, task := range s.tasks {
		if task.OwnerID == id {
			delete(s.tasks, taskID)
		}
	}
	return nil
}

func (s *Memory) AddToken(_ context.Context, userID, token string) error {
	return s.mutateUser(userID, func(u *models.User) { u.AddToken(token) })
}

func (s *Memory) RemoveToken(_ context.Context, userID, token string) error {
	return s.mutateUser(userID, func(u *models.User) { u.RemoveToken(token) })
}

func (s *Memory) ClearTokens(_ context.Context, userID string) error {
	return s.mutateUser(userID, func(u *models.User) { u.ClearTokens() })
}

func (s *Memory) SetAvatar(_ context.Context, userID string, avatar []byte) error {
	return s.mutateUser(userID, func(u *models.User) {
		u.Avatar = append([]byte(nil), avatar...)
	})
}

func (s *Memory) ClearAvatar(_ context.Context, userID string) error {
	return s.mutateUser(userID, func(u *models.User) { u.Avatar = nil })
}

func (s *Memory) mutateUser(userID string, mutate func(*models.User)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[userID]
	if !ok {
		return ErrNotFound
	}
	mutate(user)
	user.UpdatedAt = time.Now().UTC()
	return nil
}

func (s *Memory) InsertTask(_ context.Context, task *models.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := *task
	s.tasks[task.ID] = &copied
	return nil
}

func (s *Memory) FindTask(_ context.Context, ownerID, id string) (*models.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	task, ok := s.tasks[id]
	if !ok || task.OwnerID != ownerID {
		return nil, ErrNotFound
	}
	copied := *task
	return &copied, nil
}

func (s *Memory) ListTasks(_ context.Context, ownerID string, filter TaskFilter) ([]models.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tasks := []models.Task{}
	for _, task := range s.tasks {
		if task.OwnerID != ownerID {
			continue
		}
		if filter.Completed != nil && task.Completed != *filter.Completed {
			continue
		}
		tasks = append(tasks, *task)
	}

	field := filter.SortField
	if field == "" {
		field = "created_at"
	}
	less := func(a, b models.Task) bool {
		switch field {
		case "description":
			return a.Description < b.Description
		case "completed":
			return !a.Completed && b.Completed
		case "updated_at":
			return a.UpdatedAt.Before(b.UpdatedAt)
		default:
			return a.CreatedAt.Before(b.CreatedAt)
		}
	}
	descending := filter.SortField != "" && !filter.SortAsc
	sort.SliceStable(tasks, func(i, j int) bool {
		if descending {
			return less(tasks[j], tasks[i])
		}
		return less(tasks[i], tasks[j])
	})

	if filter.Skip > 0 {
		if filter.Skip >= int64(len(tasks)) {
			return []models.Task{}, nil
		}
		tasks = tasks[filter.Skip:]
	}
	if filter.Limit > 0 && filter.Limit < int64(len(tasks)) {
		tasks = tasks[:filter.Limit]
	}
	return tasks, nil
}

func (s *Memory) SaveTask(_ context.Context, task *models.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.tasks[task.ID]
	if !ok || existing.OwnerID != task.OwnerID {
		return ErrNotFound
	}

	task.UpdatedAt = time.Now().UTC()
	copied := *task
	s.tasks[task.ID] = &copied
	return nil
}

func (s *Memory) DeleteTask(_ context.Context, ownerID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	task, ok := s.tasks[id]
	if !ok || task.OwnerID != ownerID {
		return ErrNotFound
	}
	delete(s.tasks, id)
	return nil
}
