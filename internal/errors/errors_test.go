package errors_test

import (
	"errors"
	"fmt"
	"testing"

	apperrors "github.com/softnova/crm-console/internal/errors"
	"github.com/stretchr/testify/require"
)

func TestValidationError(t *testing.T) {
	err := apperrors.NewValidationError(map[string]string{
		"password": "too short",
		"email":    "required",
	})

	require.ErrorIs(t, err, apperrors.ErrValidation)
	require.NotErrorIs(t, err, apperrors.ErrNetwork)
	require.Equal(t, "validation failed: email: required; password: too short", err.Error())
	require.Equal(t, "required", apperrors.UserMessage(err, "fallback"))
}

func TestAPIError(t *testing.T) {
	err := fmt.Errorf("login: %w", &apperrors.APIError{
		Kind:       apperrors.ErrAuthentication,
		StatusCode: 401,
		Message:    "Usuario bloqueado",
		Op:         "POST /login",
	})

	require.ErrorIs(t, err, apperrors.ErrAuthentication)
	require.Contains(t, err.Error(), "status 401")

	var apiErr *apperrors.APIError
	require.True(t, apperrors.As(err, &apiErr))
	require.Equal(t, 401, apiErr.StatusCode)

	cause := errors.New("connection refused")
	netErr := &apperrors.APIError{Kind: apperrors.ErrNetwork, Op: "GET /leads", Cause: cause}
	require.ErrorIs(t, netErr, apperrors.ErrNetwork)
	require.ErrorIs(t, netErr, cause)
	require.Equal(t, "GET /leads: connection refused (network error)", netErr.Error())
}

func TestUserMessage(t *testing.T) {
	t.Run("server message wins", func(t *testing.T) {
		err := &apperrors.APIError{Kind: apperrors.ErrAuthentication, Message: "Contraseña incorrecta"}
		require.Equal(t, "Contraseña incorrecta", apperrors.UserMessage(err, "Credenciales inválidas"))
	})

	t.Run("fallback without server message", func(t *testing.T) {
		err := &apperrors.APIError{Kind: apperrors.ErrNetwork, Message: "  "}
		require.Equal(t, "Credenciales inválidas", apperrors.UserMessage(err, "Credenciales inválidas"))
	})

	t.Run("plain error", func(t *testing.T) {
		require.Equal(t, "generic", apperrors.UserMessage(apperrors.ErrNetwork, "generic"))
	})

	t.Run("nil", func(t *testing.T) {
		require.Empty(t, apperrors.UserMessage(nil, "generic"))
	})
}

func TestWrapf(t *testing.T) {
	require.NoError(t, apperrors.Wrapf(nil, "context"))

	err := apperrors.Wrapf(apperrors.ErrNotFound, "lead %d", 42)
	require.EqualError(t, err, "lead 42: not found")
	require.True(t, apperrors.Is(err, apperrors.ErrNotFound))
}

func TestWorkflowErrorKinds(t *testing.T) {
	require.ErrorIs(t, apperrors.ErrInvalidStatus, apperrors.ErrValidation)
	require.ErrorIs(t, apperrors.ErrTransitionInFlight, apperrors.ErrValidation)
	require.ErrorIs(t, apperrors.ErrNoSession, apperrors.ErrAuthentication)
}
