package leads

import "context"

// Repo is the remote leads resource
type Repo interface {
	List(ctx context.Context, page, limit int) ([]Lead, error)
	Get(ctx context.Context, id int64) (Lead, error)
	UpdateStatus(ctx context.Context, id int64, status Status) error
}
