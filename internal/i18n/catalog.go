package i18n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Message keys shared by the HTML console and the CLI
const (
	StatusNew       = "New"
	StatusContacted = "Contacted"
	StatusDiscarded = "Discarded"

	MsgCheckingSession    = "Checking authentication..."
	MsgInvalidCredentials = "Invalid credentials"
	MsgLoginFailed        = "Authentication error"
	MsgLoggedOut          = "Session closed"
	MsgStatusUpdated      = "The lead is now marked as %s"
	MsgStatusUnchanged    = "The lead already has that status"
	MsgStatusFailed       = "Could not update the lead status"
	MsgStatusBusy         = "A status change for this lead is already in progress"
	MsgLeadsLoadFailed    = "Could not load the leads"
	MsgUsersLoadFailed    = "Could not load the users"
	MsgUserCreated        = "The user has been created"
	MsgUserUpdated        = "The user has been updated"
	MsgUserDeleted        = "The user has been deleted"
	MsgUserDeleteFailed   = "Could not delete the user"
	MsgRequestFailed      = "Could not process the request"
	MsgPageNotFound       = "Page not found"
	MsgUserNotFound       = "User not found"
	MsgLeadNotFound       = "Lead not found"
)

// Labels used by the HTML pages
const (
	LabelDashboard      = "Dashboard"
	LabelLeads          = "Leads"
	LabelUsers          = "Users"
	LabelLogin          = "Sign in"
	LabelLogout         = "Sign out"
	LabelEmail          = "Email"
	LabelPassword       = "Password"
	LabelName           = "Name"
	LabelRole           = "Role"
	LabelRoleUser       = "User"
	LabelRoleAdmin      = "Administrator"
	LabelClient         = "Client"
	LabelService        = "Service"
	LabelPhone          = "Phone"
	LabelMessage        = "Message"
	LabelStatus         = "Status"
	LabelDate           = "Date"
	LabelActions        = "Actions"
	LabelSearch         = "Search"
	LabelRefresh        = "Refresh"
	LabelSave           = "Save"
	LabelCreate         = "Create"
	LabelDelete         = "Delete"
	LabelDetails        = "Lead details"
	LabelTotal          = "Total leads"
	LabelRecentLeads    = "Recent leads"
	LabelSeeAll         = "See all"
	LabelNewUser        = "New user"
	LabelUsersTitle     = "User management"
	LabelNoService      = "No service"
	LabelNoPhone        = "Not provided"
	LabelNoMessage      = "No message"
	LabelNoLeads        = "No leads found"
	LabelNoUsers        = "No users found"
	LabelBackToPanel    = "Go to the dashboard"
	LabelConfirmDelete  = "Are you sure you want to delete this user?"
	LabelPasswordKeep   = "Leave blank to keep the current password"
	LabelUpdateInFlight = "Updating..."
)

var spanish = map[string]string{
	StatusNew:       "Nuevo",
	StatusContacted: "Contactado",
	StatusDiscarded: "Descartado",

	MsgCheckingSession:    "Verificando autenticación...",
	MsgInvalidCredentials: "Credenciales inválidas",
	MsgLoginFailed:        "Error de autenticación",
	MsgLoggedOut:          "Sesión cerrada",
	MsgStatusUpdated:      "El lead ahora está marcado como %s",
	MsgStatusUnchanged:    "El lead ya tiene ese estado",
	MsgStatusFailed:       "No se pudo actualizar el estado del lead",
	MsgStatusBusy:         "Ya hay un cambio de estado en curso para este lead",
	MsgLeadsLoadFailed:    "No se pudieron cargar los leads",
	MsgUsersLoadFailed:    "No se pudieron cargar los usuarios",
	MsgUserCreated:        "El usuario ha sido creado correctamente",
	MsgUserUpdated:        "El usuario ha sido actualizado correctamente",
	MsgUserDeleted:        "El usuario ha sido eliminado correctamente",
	MsgUserDeleteFailed:   "No se pudo eliminar el usuario",
	MsgRequestFailed:      "Error al procesar la solicitud",
	MsgPageNotFound:       "Página no encontrada",
	MsgUserNotFound:       "Usuario no encontrado",
	MsgLeadNotFound:       "Lead no encontrado",

	LabelDashboard:      "Dashboard",
	LabelLeads:          "Leads",
	LabelUsers:          "Usuarios",
	LabelLogin:          "Iniciar sesión",
	LabelLogout:         "Cerrar sesión",
	LabelEmail:          "Email",
	LabelPassword:       "Contraseña",
	LabelName:           "Nombre",
	LabelRole:           "Rol",
	LabelRoleUser:       "Usuario",
	LabelRoleAdmin:      "Administrador",
	LabelClient:         "Cliente",
	LabelService:        "Servicio",
	LabelPhone:          "Teléfono",
	LabelMessage:        "Mensaje",
	LabelStatus:         "Estado",
	LabelDate:           "Fecha",
	LabelActions:        "Acciones",
	LabelSearch:         "Buscar",
	LabelRefresh:        "Actualizar",
	LabelSave:           "Guardar",
	LabelCreate:         "Crear",
	LabelDelete:         "Eliminar",
	LabelDetails:        "Detalles del Lead",
	LabelTotal:          "Total de leads",
	LabelRecentLeads:    "Leads recientes",
	LabelSeeAll:         "Ver todos",
	LabelNewUser:        "Nuevo Usuario",
	LabelUsersTitle:     "Gestión de Usuarios",
	LabelNoService:      "Sin servicio",
	LabelNoPhone:        "No proporcionado",
	LabelNoMessage:      "Sin mensaje",
	LabelNoLeads:        "No se encontraron leads",
	LabelNoUsers:        "No se encontraron usuarios",
	LabelBackToPanel:    "Ir al Dashboard",
	LabelConfirmDelete:  "¿Está seguro de que desea eliminar este usuario?",
	LabelPasswordKeep:   "Dejar en blanco para mantener la contraseña actual",
	LabelUpdateInFlight: "Actualizando...",
}

func init() {
	for key, msg := range spanish {
		_ = message.SetString(language.Spanish, key, msg)
		_ = message.SetString(language.English, key, key)
	}
}
