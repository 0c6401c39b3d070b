package crmapi_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/softnova/crm-console/credstore"
	"github.com/softnova/crm-console/crmapi"
	apperrors "github.com/softnova/crm-console/internal/errors"
	"github.com/softnova/crm-console/leads"
	"github.com/softnova/crm-console/session"
	"github.com/softnova/crm-console/users"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

type recorded struct {
	method, path, query, auth, body string
}

type recorder struct {
	mu    sync.Mutex
	calls []recorded
}

func (r *recorder) all() []recorded {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]recorded(nil), r.calls...)
}

func setupAPI(t *testing.T, handler http.HandlerFunc) (*crmapi.Client, *recorder) {
	t.Helper()
	rec := &recorder{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		rec.mu.Lock()
		rec.calls = append(rec.calls, recorded{
			method: r.Method,
			path:   r.URL.Path,
			query:  r.URL.RawQuery,
			auth:   r.Header.Get("Authorization"),
			body:   string(body),
		})
		rec.mu.Unlock()
		handler(w, r)
	}))
	t.Cleanup(srv.Close)

	client, err := crmapi.New(srv.URL+"/api/", time.Second)
	require.NoError(t, err)
	return client, rec
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestLogin(t *testing.T) {
	client, calls := setupAPI(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"token": "t1",
			"user":  map[string]any{"id": 1, "nombre": "Ana", "email": "a@b.com", "rol": "administrador"},
		})
	})

	resp, err := client.Login(context.Background(), session.Credentials{Email: "a@b.com", Password: "secret1"})
	require.NoError(t, err)
	require.Equal(t, "t1", resp.Token)
	require.Equal(t, int64(1), resp.User.ID)

	require.Len(t, calls.all(), 1)
	got := calls.all()[0]
	require.Equal(t, "POST", got.method)
	require.Equal(t, "/api/login", got.path)
	require.Empty(t, got.auth)
	require.JSONEq(t, `{"email":"a@b.com","password":"secret1"}`, got.body)
}

func TestErrorMapping(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		payload any
		kind    error
		message string
	}{
		{"unauthorized with mensaje", 401, map[string]string{"mensaje": "Credenciales inválidas"}, apperrors.ErrAuthentication, "Credenciales inválidas"},
		{"forbidden with message", 403, map[string]string{"message": "Sin permisos"}, apperrors.ErrAuthentication, "Sin permisos"},
		{"not found", 404, map[string]string{"error": "Lead no encontrado"}, apperrors.ErrNotFound, "Lead no encontrado"},
		{"bad request", 400, map[string]string{"mensaje": "Estado inválido"}, apperrors.ErrValidation, "Estado inválido"},
		{"unprocessable", 422, nil, apperrors.ErrValidation, ""},
		{"server error without body", 500, nil, apperrors.ErrNetwork, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, _ := setupAPI(t, func(w http.ResponseWriter, r *http.Request) {
				if tt.payload == nil {
					w.WriteHeader(tt.status)
					return
				}
				writeJSON(w, tt.status, tt.payload)
			})

			_, err := client.Login(context.Background(), session.Credentials{Email: "a@b.com", Password: "secret1"})
			require.ErrorIs(t, err, tt.kind)

			var apiErr *apperrors.APIError
			require.ErrorAs(t, err, &apiErr)
			require.Equal(t, tt.status, apiErr.StatusCode)
			require.Equal(t, tt.message, apiErr.Message)
			require.Equal(t, "POST /login", apiErr.Op)
		})
	}
}

func TestUnreachableServer(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	client, err := crmapi.New(url, time.Second)
	require.NoError(t, err)
	_, err = client.Login(context.Background(), session.Credentials{Email: "a@b.com", Password: "secret1"})
	require.ErrorIs(t, err, apperrors.ErrNetwork)
}

func TestLeads(t *testing.T) {
	client, calls := setupAPI(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/api/leads":
			writeJSON(w, http.StatusOK, []map[string]any{
				{"id": 42, "nombre_completo": "María", "correo": "m@x.com", "servicio_id": 3, "estado": "nuevo", "fecha_envio": "2024-05-02"},
			})
		case r.Method == http.MethodGet && r.URL.Path == "/api/leads/42":
			writeJSON(w, http.StatusOK, map[string]any{"id": 42, "estado": "contactado"})
		case r.Method == http.MethodPut && r.URL.Path == "/api/leads/42/estado":
			w.WriteHeader(http.StatusNoContent)
		default:
			writeJSON(w, http.StatusNotFound, map[string]string{"mensaje": "no existe"})
		}
	})
	api := client.WithTokenSource(oauth2.StaticTokenSource(&oauth2.Token{AccessToken: "t1", TokenType: "Bearer"})).Leads()
	ctx := context.Background()

	list, err := api.List(ctx, 2, 25)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, "María", list[0].NombreCompleto)
	require.Equal(t, int64(3), list[0].ServicioID)
	require.Equal(t, leads.StatusNew, list[0].Estado)

	l, err := api.Get(ctx, 42)
	require.NoError(t, err)
	require.Equal(t, leads.StatusContacted, l.Estado)

	require.NoError(t, api.UpdateStatus(ctx, 42, leads.StatusDiscarded))

	_, err = api.Get(ctx, 7)
	require.ErrorIs(t, err, apperrors.ErrNotFound)

	query, err := url.ParseQuery(calls.all()[0].query)
	require.NoError(t, err)
	require.Equal(t, "2", query.Get("page"))
	require.Equal(t, "25", query.Get("limit"))
	for _, c := range calls.all() {
		require.Equal(t, "Bearer t1", c.auth)
	}
	require.JSONEq(t, `{"estado":"descartado"}`, calls.all()[2].body)
}

func TestLeads_Envelope(t *testing.T) {
	client, _ := setupAPI(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"leads": []map[string]any{{"id": 1, "estado": "nuevo"}}, "total": 1})
	})
	list, err := client.WithTokenSource(oauth2.StaticTokenSource(&oauth2.Token{AccessToken: "t"})).Leads().List(context.Background(), 1, 10)
	require.NoError(t, err)
	require.Len(t, list, 1)
}

func TestAuthenticatedCallWithoutSession(t *testing.T) {
	client, calls := setupAPI(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, []any{})
	})

	_, err := client.Leads().List(context.Background(), 1, 10)
	require.ErrorIs(t, err, apperrors.ErrNoSession)

	store, err := session.NewStore(credstore.NewInMemoryRepo(), client)
	require.NoError(t, err)
	_, err = client.WithTokenSource(store).Users().List(context.Background())
	require.ErrorIs(t, err, apperrors.ErrAuthentication)
	require.Empty(t, calls.all())
}

func TestUsers(t *testing.T) {
	client, calls := setupAPI(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			if r.URL.Path == "/api/usuarios" {
				writeJSON(w, http.StatusOK, []users.User{{ID: 1, Nombre: "Ana", Email: "a@b.com", Rol: "usuario"}})
				return
			}
			writeJSON(w, http.StatusOK, users.User{ID: 1, Nombre: "Ana", Email: "a@b.com", Rol: "usuario"})
		case http.MethodPost:
			writeJSON(w, http.StatusCreated, users.User{ID: 2, Nombre: "Luis", Email: "l@b.com", Rol: "usuario"})
		case http.MethodPut:
			writeJSON(w, http.StatusOK, users.User{ID: 2, Nombre: "Luis", Email: "l@b.com", Rol: "administrador"})
		case http.MethodDelete:
			w.WriteHeader(http.StatusOK)
		}
	})
	api := client.WithTokenSource(oauth2.StaticTokenSource(&oauth2.Token{AccessToken: "t1"})).Users()
	ctx := context.Background()

	list, err := api.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)

	u, err := api.Get(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, "Ana", u.Nombre)

	created, err := api.Create(ctx, users.CreateRequest{Nombre: "Luis", Email: "l@b.com", Password: "secret1"})
	require.NoError(t, err)
	require.Equal(t, int64(2), created.ID)

	rol := "administrador"
	updated, err := api.Update(ctx, 2, users.UpdateRequest{Rol: &rol})
	require.NoError(t, err)
	require.Equal(t, "administrador", updated.Rol)

	require.NoError(t, api.Delete(ctx, 2))

	require.Equal(t, "/api/usuarios/2", calls.all()[4].path)
	require.Equal(t, http.MethodDelete, calls.all()[4].method)
	require.JSONEq(t, `{"rol":"administrador"}`, calls.all()[3].body)
	require.JSONEq(t, `{"nombre":"Luis","email":"l@b.com","password":"secret1"}`, calls.all()[2].body)
}

func TestNew_InvalidBaseURL(t *testing.T) {
	_, err := crmapi.New("not a url", time.Second)
	require.Error(t, err)

	c, err := crmapi.New("", 0)
	require.NoError(t, err)
	require.Equal(t, crmapi.DefaultBaseURL, c.BaseURL())
}
