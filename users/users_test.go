package users_test

import (
	"context"
	"testing"

	apperrors "github.com/softnova/crm-console/internal/errors"
	"github.com/softnova/crm-console/internal/utils"
	"github.com/softnova/crm-console/users"
	fakeuserrepo "github.com/softnova/crm-console/users/repofake"
	"github.com/stretchr/testify/require"
)

func setupService(t *testing.T, seed ...users.User) (*users.Service, *fakeuserrepo.FakeUserRepo) {
	t.Helper()
	repo := fakeuserrepo.NewFakeUserRepo(seed...)
	svc, err := users.NewService(repo)
	require.NoError(t, err)
	return svc, repo
}

func TestCreateRequest_Validate(t *testing.T) {
	valid := users.CreateRequest{Nombre: "Ana Pérez", Email: "ana@softnova.com", Password: "secret1", Rol: "usuario"}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name  string
		edit  func(r *users.CreateRequest)
		field string
	}{
		{"blank name", func(r *users.CreateRequest) { r.Nombre = "   " }, "nombre"},
		{"missing email", func(r *users.CreateRequest) { r.Email = "" }, "email"},
		{"malformed email", func(r *users.CreateRequest) { r.Email = "ana.softnova.com" }, "email"},
		{"missing password", func(r *users.CreateRequest) { r.Password = "" }, "password"},
		{"short password", func(r *users.CreateRequest) { r.Password = "12345" }, "password"},
		{"missing role", func(r *users.CreateRequest) { r.Rol = "" }, "rol"},
		{"unknown role", func(r *users.CreateRequest) { r.Rol = "root" }, "rol"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid
			tt.edit(&req)
			err := req.Validate()
			require.ErrorIs(t, err, apperrors.ErrValidation)

			var vErr *apperrors.ValidationError
			require.ErrorAs(t, err, &vErr)
			require.Contains(t, vErr.Fields, tt.field)
		})
	}
}

func TestUpdateRequest_Validate(t *testing.T) {
	require.NoError(t, users.UpdateRequest{}.Validate())
	require.NoError(t, users.UpdateRequest{Nombre: utils.Ptr("Ana")}.Validate())
	require.ErrorIs(t, users.UpdateRequest{Password: utils.Ptr("123")}.Validate(), apperrors.ErrValidation)
	require.ErrorIs(t, users.UpdateRequest{Email: utils.Ptr("nope")}.Validate(), apperrors.ErrValidation)
}

func TestValidPasswordLength(t *testing.T) {
	require.True(t, users.ValidPasswordLength("secret"))
	require.False(t, users.ValidPasswordLength("12345"))
	require.True(t, users.ValidPasswordLength("ñáéíóú"))
	require.False(t, users.ValidPasswordLength("ñáéíó"))
	require.ErrorIs(t, users.UpdateRequest{Password: utils.Ptr("ñáéíó")}.Validate(), apperrors.ErrValidation)
}

func TestUser_Helpers(t *testing.T) {
	u := &users.User{ID: 1, Nombre: "ángel luis ruiz", Email: "a@b.com", Rol: "administrador"}
	require.True(t, u.Valid())
	require.Equal(t, "ÁL", u.Initials())

	var nilUser *users.User
	require.False(t, nilUser.Valid())
	require.Empty(t, nilUser.Initials())
	require.False(t, (&users.User{Email: "a@b.com"}).Valid())
}

func TestService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("defaults role", func(t *testing.T) {
		svc, _ := setupService(t)
		u, err := svc.Create(ctx, users.CreateRequest{Nombre: "Ana", Email: "ana@b.com", Password: "secret1"})
		require.NoError(t, err)
		require.Equal(t, "usuario", u.Rol)
		require.NotZero(t, u.ID)
	})

	t.Run("invalid request never reaches the repo", func(t *testing.T) {
		svc, repo := setupService(t)
		_, err := svc.Create(ctx, users.CreateRequest{Nombre: "Ana", Email: "bad"})
		require.ErrorIs(t, err, apperrors.ErrValidation)
		require.Zero(t, repo.Calls)
	})

	t.Run("repo failure propagates", func(t *testing.T) {
		svc, repo := setupService(t)
		repo.Err = &apperrors.APIError{Kind: apperrors.ErrNetwork, StatusCode: 500, Message: "El email ya existe"}
		_, err := svc.Create(ctx, users.CreateRequest{Nombre: "Ana", Email: "ana@b.com", Password: "secret1"})
		require.ErrorIs(t, err, apperrors.ErrNetwork)
		require.Equal(t, "El email ya existe", apperrors.UserMessage(err, "Error al procesar la solicitud"))
	})
}

func TestService_UpdateDelete(t *testing.T) {
	ctx := context.Background()
	svc, _ := setupService(t, users.User{ID: 7, Nombre: "Luis", Email: "luis@b.com", Rol: "usuario"})

	u, err := svc.Update(ctx, 7, users.UpdateRequest{Rol: utils.Ptr("administrador"), Password: utils.Ptr("")})
	require.NoError(t, err)
	require.Equal(t, "administrador", u.Rol)
	require.Equal(t, "Luis", u.Nombre)

	require.NoError(t, svc.Delete(ctx, 7))
	_, err = svc.Get(ctx, 7)
	require.ErrorIs(t, err, apperrors.ErrNotFound)

	err = svc.Delete(ctx, 7)
	require.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestNewService_RequiresRepo(t *testing.T) {
	_, err := users.NewService(nil)
	require.Error(t, err)
}
