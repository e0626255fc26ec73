package inMemory

import (
	"context"
	"slices"
	"sync"
	"time"

	rbac "github.com/paulvitic/rbac-admin"
)

// Latency is the fixed delay every operation waits before acting, standing in
// for a network round trip.
const Latency = 500 * time.Millisecond

// Seed is the collection a new service starts with unless WithSeed is given.
func Seed() []rbac.User {
	return []rbac.User{
		{ID: 1, Name: "John Doe", Email: "john@example.com", Role: rbac.RoleAdmin, Status: rbac.StatusActive},
		{ID: 2, Name: "Jane Smith", Email: "jane@example.com", Role: rbac.RoleEditor, Status: rbac.StatusActive},
		{ID: 3, Name: "Bob Johnson", Email: "bob@example.com", Role: rbac.RoleViewer, Status: rbac.StatusInactive},
	}
}

// Implements rbac.UserService over a slice held in process memory.
//
// New identities are one greater than the current maximum, so deleting the
// record with the largest identity and then creating reuses that identity.
type userService struct {
	users  []rbac.User
	logger *rbac.Logger
	mu     sync.RWMutex
}

type UserServiceOption func(*userService)

// WithSeed replaces the default fixtures.
func WithSeed(users ...rbac.User) UserServiceOption {
	return func(s *userService) {
		s.users = slices.Clone(users)
	}
}

func WithServiceLogger(logger *rbac.Logger) UserServiceOption {
	return func(s *userService) {
		s.logger = logger
	}
}

func NewUserService(opts ...UserServiceOption) rbac.UserService {
	s := &userService{
		users:  Seed(),
		logger: rbac.NewNopLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// delay waits out the simulated latency. It does not observe ctx: once issued
// a call always runs to completion.
func delay() {
	time.Sleep(Latency)
}

func (s *userService) ListAll(ctx context.Context) ([]rbac.User, error) {
	delay()

	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.users), nil
}

func (s *userService) Create(ctx context.Context, draft rbac.UserDraft) (rbac.User, error) {
	delay()

	s.mu.Lock()
	defer s.mu.Unlock()

	user := draft.WithID(s.nextID())
	s.users = append(s.users, user)
	s.logger.Debug("created user %s", user.ID)
	return user, nil
}

func (s *userService) Update(ctx context.Context, user rbac.User) (rbac.User, error) {
	delay()

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(user.ID)
	if i == -1 {
		return rbac.User{}, rbac.NotFound(user.ID)
	}
	s.users[i] = user
	s.logger.Debug("updated user %s", user.ID)
	return user, nil
}

func (s *userService) Delete(ctx context.Context, id rbac.ID) error {
	delay()

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i == -1 {
		return rbac.NotFound(id)
	}
	s.users = slices.Delete(s.users, i, i+1)
	s.logger.Debug("deleted user %s", id)
	return nil
}

// nextID must be called with the write lock held.
func (s *userService) nextID() rbac.ID {
	var highest rbac.ID
	for _, u := range s.users {
		highest = max(highest, u.ID)
	}
	return highest + 1
}

func (s *userService) indexOf(id rbac.ID) int {
	return slices.IndexFunc(s.users, func(u rbac.User) bool { return u.ID == id })
}
