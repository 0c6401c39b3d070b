package credstore

import (
	"context"
	"sync"
)

var _ Repo = (*InMemoryRepo)(nil)

// InMemoryRepo keeps entries for the life of the process only
type InMemoryRepo struct {
	mu      sync.RWMutex
	entries map[string]string
}

func NewInMemoryRepo() *InMemoryRepo {
	return &InMemoryRepo{entries: make(map[string]string)}
}

func (r *InMemoryRepo) Get(_ context.Context, key string) (string, bool, error) {
	if err := checkKey(key); err != nil {
		return "", false, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.entries[key]
	return v, ok, nil
}

func (r *InMemoryRepo) Set(_ context.Context, key, value string) error {
	if err := checkKey(key); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[key] = value
	return nil
}

func (r *InMemoryRepo) Delete(_ context.Context, key string) error {
	if err := checkKey(key); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.entries, key)
	return nil
}

func (r *InMemoryRepo) Close() error {
	return nil
}
