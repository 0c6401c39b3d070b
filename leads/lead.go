package leads

import (
	"fmt"
	"strings"

	apperrors "github.com/softnova/crm-console/internal/errors"
	"github.com/softnova/crm-console/internal/i18n"
	"golang.org/x/text/message"
)

// Status is the triage state of a lead. The CRM only accepts these three values.
type Status string

const (
	StatusNew       Status = "nuevo"
	StatusContacted Status = "contactado"
	StatusDiscarded Status = "descartado"
)

// Statuses lists every legal status in display order
func Statuses() []Status {
	return []Status{StatusNew, StatusContacted, StatusDiscarded}
}

// ParseStatus accepts only the three legal statuses, case-sensitively
func ParseStatus(s string) (Status, error) {
	switch st := Status(s); st {
	case StatusNew, StatusContacted, StatusDiscarded:
		return st, nil
	}
	return "", fmt.Errorf("%q: %w", s, apperrors.ErrInvalidStatus)
}

func (s Status) Valid() bool {
	_, err := ParseStatus(string(s))
	return err == nil
}

func (s Status) String() string {
	return string(s)
}

// Label returns the localized display name of the status
func (s Status) Label(p *message.Printer) string {
	switch s {
	case StatusNew:
		return p.Sprintf(i18n.StatusNew)
	case StatusContacted:
		return p.Sprintf(i18n.StatusContacted)
	case StatusDiscarded:
		return p.Sprintf(i18n.StatusDiscarded)
	}
	return string(s)
}

// Lead is an inbound contact request as served by GET /leads. Only Estado is ever
// changed by the console.
type Lead struct {
	ID             int64  `json:"id"`
	NombreCompleto string `json:"nombre_completo"`
	Correo         string `json:"correo"`
	Telefono       string `json:"telefono,omitempty"`
	ServicioID     int64  `json:"servicio_id,omitempty"`
	Servicio       string `json:"servicio,omitempty"`
	Mensaje        string `json:"mensaje,omitempty"`
	Estado         Status `json:"estado"`
	FechaEnvio     string `json:"fecha_envio,omitempty"`
}

// matches reports whether any of the searchable fields contains the lowercased query
func (l Lead) matches(query string) bool {
	for _, field := range []string{l.NombreCompleto, l.Correo, string(l.Estado), l.Servicio} {
		if strings.Contains(strings.ToLower(field), query) {
			return true
		}
	}
	return false
}
