package fakeuserrepo

import (
	"context"
	"fmt"
	"sort"
	"sync"

	apperrors "github.com/softnova/crm-console/internal/errors"
	"github.com/softnova/crm-console/users"
)

var _ users.UserRepo = (*FakeUserRepo)(nil)

// FakeUserRepo is an in-memory stand-in for the /usuarios resource
type FakeUserRepo struct {
	users  map[int64]users.User
	nextID int64
	lock   sync.RWMutex

	// Err, when set, is returned by every call
	Err error
	// Calls counts the calls that reached the repo
	Calls int
}

func NewFakeUserRepo(seed ...users.User) *FakeUserRepo {
	ur := &FakeUserRepo{users: make(map[int64]users.User)}
	for _, u := range seed {
		ur.users[u.ID] = u
		if u.ID > ur.nextID {
			ur.nextID = u.ID
		}
	}
	return ur
}

func (ur *FakeUserRepo) List(_ context.Context) ([]users.User, error) {
	ur.lock.Lock()
	defer ur.lock.Unlock()
	ur.Calls++
	if ur.Err != nil {
		return nil, ur.Err
	}

	list := make([]users.User, 0, len(ur.users))
	for _, u := range ur.users {
		list = append(list, u)
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].ID < list[j].ID
	})
	return list, nil
}

func (ur *FakeUserRepo) Get(_ context.Context, id int64) (users.User, error) {
	ur.lock.Lock()
	defer ur.lock.Unlock()
	ur.Calls++
	if ur.Err != nil {
		return users.User{}, ur.Err
	}

	u, ok := ur.users[id]
	if !ok {
		return users.User{}, fmt.Errorf("user %d: %w", id, apperrors.ErrNotFound)
	}
	return u, nil
}

func (ur *FakeUserRepo) Create(_ context.Context, req users.CreateRequest) (users.User, error) {
	ur.lock.Lock()
	defer ur.lock.Unlock()
	ur.Calls++
	if ur.Err != nil {
		return users.User{}, ur.Err
	}

	ur.nextID++
	u := users.User{ID: ur.nextID, Nombre: req.Nombre, Email: req.Email, Rol: req.Rol}
	ur.users[u.ID] = u
	return u, nil
}

func (ur *FakeUserRepo) Update(_ context.Context, id int64, req users.UpdateRequest) (users.User, error) {
	ur.lock.Lock()
	defer ur.lock.Unlock()
	ur.Calls++
	if ur.Err != nil {
		return users.User{}, ur.Err
	}

	u, ok := ur.users[id]
	if !ok {
		return users.User{}, fmt.Errorf("user %d: %w", id, apperrors.ErrNotFound)
	}
	if req.Nombre != nil {
		u.Nombre = *req.Nombre
	}
	if req.Email != nil {
		u.Email = *req.Email
	}
	if req.Rol != nil {
		u.Rol = *req.Rol
	}
	ur.users[id] = u
	return u, nil
}

func (ur *FakeUserRepo) Delete(_ context.Context, id int64) error {
	ur.lock.Lock()
	defer ur.lock.Unlock()
	ur.Calls++
	if ur.Err != nil {
		return ur.Err
	}

	if _, ok := ur.users[id]; !ok {
		return fmt.Errorf("user %d: %w", id, apperrors.ErrNotFound)
	}
	delete(ur.users, id)
	return nil
}
