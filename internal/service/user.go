package service

import (
	"context"
	"fmt"

	"github.com/taskforge/bountyboard/internal/domain"
)

type UserService struct {
	store Store
}

func NewUserService(store Store) *UserService {
	return &UserService{store: store}
}

func (s *UserService) Create(ctx context.Context, name string, role domain.Role) (*domain.User, error) {
	if name == "" {
		return nil, fmt.Errorf("user name is required")
	}
	if role == "" {
		role = domain.RoleDeveloper
	}
	if !role.Valid() {
		return nil, fmt.Errorf("unknown role %q", role)
	}
	return s.store.CreateUser(ctx, name, role)
}

func (s *UserService) Get(ctx context.Context, id int64) (*domain.User, error) {
	return s.store.UserByID(ctx, id)
}

// SetStatus soft-disables or re-enables a user. The wallet row is untouched;
// a disabled owner is what takes the wallet out of circulation.
func (s *UserService) SetStatus(ctx context.Context, id int64, status domain.UserStatus) error {
	if status != domain.UserStatusActive && status != domain.UserStatusDisabled {
		return fmt.Errorf("unknown status %q", status)
	}
	if _, err := s.store.UserByID(ctx, id); err != nil {
		return err
	}
	return s.store.SetUserStatus(ctx, id, status)
}
