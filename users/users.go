package users

import (
	"regexp"
	"strings"
	"unicode/utf8"

	apperrors "github.com/softnova/crm-console/internal/errors"
)

// RoleType is the role the CRM assigns to an operator account
type RoleType string

const (
	RoleUser  RoleType = "usuario"
	RoleAdmin RoleType = "administrador"
)

// MinPasswordLength is the shortest password the CRM accepts
const MinPasswordLength = 6

var emailPattern = regexp.MustCompile(`\S+@\S+\.\S+`)

// User is an operator account as returned by the CRM API. It is also the record held
// by the console session for the logged-in operator.
type User struct {
	ID     int64  `json:"id"`     // Identifier assigned by the CRM
	Nombre string `json:"nombre"` // Display name
	Email  string `json:"email"`  // Login email
	Rol    string `json:"rol"`    // RoleUser or RoleAdmin
}

// CreateRequest is the body of POST /usuarios
type CreateRequest struct {
	Nombre   string `json:"nombre"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Rol      string `json:"rol,omitempty"`
}

// UpdateRequest is the body of PUT /usuarios/{id}. Nil fields are left unchanged.
type UpdateRequest struct {
	Nombre   *string `json:"nombre,omitempty"`
	Email    *string `json:"email,omitempty"`
	Password *string `json:"password,omitempty"`
	Rol      *string `json:"rol,omitempty"`
}

// Initials returns up to two upper-case initials of the display name, e.g. "Ana María" -> "AM"
func (u *User) Initials() string {
	if u == nil {
		return ""
	}
	var initials []rune
	for _, word := range strings.Fields(u.Nombre) {
		initials = append(initials, []rune(word)[0])
		if len(initials) == 2 {
			break
		}
	}
	return strings.ToUpper(string(initials))
}

// Valid reports whether the user record is complete enough to represent a session user
func (u *User) Valid() bool {
	return u != nil && u.ID != 0 && strings.TrimSpace(u.Email) != ""
}

// ValidEmail applies the console's loose email shape check
func ValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// ValidPasswordLength reports whether password has at least MinPasswordLength characters
func ValidPasswordLength(password string) bool {
	return utf8.RuneCountInString(password) >= MinPasswordLength
}

// ValidRole reports whether r is one of the roles the console can assign
func ValidRole(r string) bool {
	switch RoleType(r) {
	case RoleUser, RoleAdmin:
		return true
	}
	return false
}

// Validate checks a create request the way the user form does
func (r CreateRequest) Validate() error {
	fields := map[string]string{}
	validateName(fields, r.Nombre)
	validateEmail(fields, r.Email)
	if r.Password == "" {
		fields["password"] = "La contraseña es requerida"
	} else {
		validatePassword(fields, r.Password)
	}
	validateRole(fields, r.Rol)
	if len(fields) > 0 {
		return apperrors.NewValidationError(fields)
	}
	return nil
}

// Validate checks the fields present on an update request
func (r UpdateRequest) Validate() error {
	fields := map[string]string{}
	if r.Nombre != nil {
		validateName(fields, *r.Nombre)
	}
	if r.Email != nil {
		validateEmail(fields, *r.Email)
	}
	if r.Password != nil {
		validatePassword(fields, *r.Password)
	}
	if r.Rol != nil {
		validateRole(fields, *r.Rol)
	}
	if len(fields) > 0 {
		return apperrors.NewValidationError(fields)
	}
	return nil
}

func validateName(fields map[string]string, nombre string) {
	if strings.TrimSpace(nombre) == "" {
		fields["nombre"] = "El nombre es requerido"
	}
}

func validateEmail(fields map[string]string, email string) {
	switch {
	case strings.TrimSpace(email) == "":
		fields["email"] = "El email es requerido"
	case !ValidEmail(email):
		fields["email"] = "El email no es válido"
	}
}

func validatePassword(fields map[string]string, password string) {
	if !ValidPasswordLength(password) {
		fields["password"] = "La contraseña debe tener al menos 6 caracteres"
	}
}

func validateRole(fields map[string]string, rol string) {
	switch {
	case rol == "":
		fields["rol"] = "El rol es requerido"
	case !ValidRole(rol):
		fields["rol"] = "El rol no es válido"
	}
}
