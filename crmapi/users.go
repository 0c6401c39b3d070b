package crmapi

import (
	"context"
	"fmt"
	"net/http"

	"github.com/softnova/crm-console/users"
)

var _ users.UserRepo = (*UsersService)(nil)

// UsersService is the /usuarios resource
type UsersService struct {
	client *Client
}

func (s *UsersService) List(ctx context.Context) ([]users.User, error) {
	var list []users.User
	err := s.client.do(ctx, call{method: http.MethodGet, path: "/usuarios", out: &list, authed: true})
	if err != nil {
		return nil, err
	}
	if list == nil {
		return []users.User{}, nil
	}
	return list, nil
}

func (s *UsersService) Get(ctx context.Context, id int64) (users.User, error) {
	var u users.User
	err := s.client.do(ctx, call{method: http.MethodGet, path: fmt.Sprintf("/usuarios/%d", id), out: &u, authed: true})
	if err != nil {
		return users.User{}, err
	}
	return u, nil
}

func (s *UsersService) Create(ctx context.Context, req users.CreateRequest) (users.User, error) {
	var u users.User
	err := s.client.do(ctx, call{method: http.MethodPost, path: "/usuarios", body: req, out: &u, authed: true})
	if err != nil {
		return users.User{}, err
	}
	return u, nil
}

func (s *UsersService) Update(ctx context.Context, id int64, req users.UpdateRequest) (users.User, error) {
	var u users.User
	err := s.client.do(ctx, call{method: http.MethodPut, path: fmt.Sprintf("/usuarios/%d", id), body: req, out: &u, authed: true})
	if err != nil {
		return users.User{}, err
	}
	return u, nil
}

func (s *UsersService) Delete(ctx context.Context, id int64) error {
	return s.client.do(ctx, call{method: http.MethodDelete, path: fmt.Sprintf("/usuarios/%d", id), authed: true})
}
