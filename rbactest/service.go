// Package rbactest provides an instant rbac.UserService for tests of code
// built on top of a coordinator.
package rbactest

import (
	"context"
	"slices"
	"sync"

	rbac "github.com/paulvitic/rbac-admin"
)

// Service keeps records in memory like inMemory.NewUserService, without the
// simulated latency. Setting Err makes every call fail with it.
type Service struct {
	mu    sync.Mutex
	users []rbac.User
	Err   error
}

func NewService(users ...rbac.User) *Service {
	return &Service{users: slices.Clone(users)}
}

func (s *Service) ListAll(ctx context.Context) ([]rbac.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	return slices.Clone(s.users), nil
}

func (s *Service) Create(ctx context.Context, draft rbac.UserDraft) (rbac.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return rbac.User{}, s.Err
	}
	var highest rbac.ID
	for _, u := range s.users {
		highest = max(highest, u.ID)
	}
	user := draft.WithID(highest + 1)
	s.users = append(s.users, user)
	return user, nil
}

func (s *Service) Update(ctx context.Context, user rbac.User) (rbac.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return rbac.User{}, s.Err
	}
	i := slices.IndexFunc(s.users, func(u rbac.User) bool { return u.ID == user.ID })
	if i == -1 {
		return rbac.User{}, rbac.NotFound(user.ID)
	}
	s.users[i] = user
	return user, nil
}

func (s *Service) Delete(ctx context.Context, id rbac.ID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	i := slices.IndexFunc(s.users, func(u rbac.User) bool { return u.ID == id })
	if i == -1 {
		return rbac.NotFound(id)
	}
	s.users = slices.Delete(s.users, i, i+1)
	return nil
}

// Users returns a copy of the stored records.
func (s *Service) Users() []rbac.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.users)
}
