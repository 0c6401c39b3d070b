package users

import (
	"context"
	"errors"

	apperrors "github.com/softnova/crm-console/internal/errors"
)

// Service validates account changes before they reach the CRM. It holds no state;
// the CRM is the only copy of the account list.
type Service struct {
	repo UserRepo
}

func NewService(repo UserRepo) (*Service, error) {
	if repo == nil {
		return nil, errors.New("[users.NewService] repo is required")
	}
	return &Service{repo: repo}, nil
}

func (s *Service) List(ctx context.Context) ([]User, error) {
	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, apperrors.Wrapf(err, "list users")
	}
	return list, nil
}

func (s *Service) Get(ctx context.Context, id int64) (User, error) {
	u, err := s.repo.Get(ctx, id)
	if err != nil {
		return User{}, apperrors.Wrapf(err, "get user %d", id)
	}
	return u, nil
}

// Create defaults the role to RoleUser, as the new-user form does
func (s *Service) Create(ctx context.Context, req CreateRequest) (User, error) {
	if req.Rol == "" {
		req.Rol = string(RoleUser)
	}
	if err := req.Validate(); err != nil {
		return User{}, err
	}
	u, err := s.repo.Create(ctx, req)
	if err != nil {
		return User{}, apperrors.Wrapf(err, "create user")
	}
	return u, nil
}

// Update drops an empty password so the stored one is kept
func (s *Service) Update(ctx context.Context, id int64, req UpdateRequest) (User, error) {
	if req.Password != nil && *req.Password == "" {
		req.Password = nil
	}
	if err := req.Validate(); err != nil {
		return User{}, err
	}
	u, err := s.repo.Update(ctx, id, req)
	if err != nil {
		return User{}, apperrors.Wrapf(err, "update user %d", id)
	}
	return u, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return apperrors.Wrapf(err, "delete user %d", id)
	}
	return nil
}
