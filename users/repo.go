package users

import "context"

// UserRepo is the remote /usuarios resource
type UserRepo interface {
	List(ctx context.Context) ([]User, error)
	Get(ctx context.Context, id int64) (User, error)
	Create(ctx context.Context, req CreateRequest) (User, error)
	Update(ctx context.Context, id int64, req UpdateRequest) (User, error)
	Delete(ctx context.Context, id int64) error
}
