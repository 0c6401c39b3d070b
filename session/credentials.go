package session

import (
	"strings"

	apperrors "github.com/softnova/crm-console/internal/errors"
	"github.com/softnova/crm-console/users"
)

// Credentials are what the operator types into the login form
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate applies the login form rules. It never touches the network.
func (c Credentials) Validate() error {
	fields := map[string]string{}
	switch email := strings.TrimSpace(c.Email); {
	case email == "":
		fields["email"] = "El email es requerido"
	case !users.ValidEmail(email):
		fields["email"] = "Email inválido"
	}
	switch {
	case c.Password == "":
		fields["password"] = "La contraseña es requerida"
	case !users.ValidPasswordLength(c.Password):
		fields["password"] = "La contraseña debe tener al menos 6 caracteres"
	}
	if len(fields) > 0 {
		return apperrors.NewValidationError(fields)
	}
	return nil
}

// LoginResponse is the body of a successful POST /login
type LoginResponse struct {
	Token string      `json:"token"`
	User  *users.User `json:"user"`
}
