package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/dmitrijs2005/useradmin/internal/client/models"
	"github.com/dmitrijs2005/useradmin/internal/common"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticTokens struct {
	token string
	err   error
}

func (s staticTokens) Token(context.Context) (string, error) { return s.token, s.err }

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func newServer(t *testing.T, h http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return srv
}

var remoteUser = map[string]any{
	"id": 3, "nombre": "Maria Garcia", "login": "mgarcia", "email": "maria.garcia@empresa.com",
	"idEmpresa": 1, "activo": true, "rol": 2,
	"creacion": "2024-02-01T10:00:00.000Z", "modificacion": "2024-02-01T10:00:00.000Z",
}

func TestLogin_Success(t *testing.T) {
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/auth/login", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Empty(t, r.Header.Get("Authorization"))
		_, err := uuid.Parse(r.Header.Get(common.RequestIDHeaderName))
		assert.NoError(t, err)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, map[string]string{"login": "admin", "password": "admin123"}, body)

		writeJSON(w, http.StatusOK, map[string]any{
			"success": true,
			"data": map[string]any{
				"token": "remote-token",
				"user":  map[string]any{"id": 1, "nombre": "Administrador", "login": "admin", "email": "admin@sistema.com", "rol": 1, "idEmpresa": 1},
			},
		})
	})

	c := NewHTTPClient(srv.URL+"/api/", time.Second, nil)
	res, err := c.Login(context.Background(), "admin", "admin123")
	require.NoError(t, err)
	assert.Equal(t, "remote-token", res.Token)
	assert.Equal(t, models.RoleSuperUser, res.User.Role)
	assert.Equal(t, "admin", res.User.LoginName)
}

func TestLogin_RejectionIsInvalidCredentials(t *testing.T) {
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnauthorized, map[string]any{"success": false, "message": "Credenciales inválidas"})
	})

	_, err := NewHTTPClient(srv.URL, time.Second, nil).Login(context.Background(), "admin", "wrong-pw")
	require.ErrorIs(t, err, common.ErrInvalidCredentials)
	require.False(t, IsUnavailable(err))
}

func TestLogin_TransportFailureIsUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := NewHTTPClient(url, time.Second, nil).Login(context.Background(), "admin", "admin123")
	require.ErrorIs(t, err, ErrUnavailable)
	require.NotErrorIs(t, err, common.ErrInvalidCredentials)
}

func TestRequests_CarryBearerToken(t *testing.T) {
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok-123", r.Header.Get("Authorization"))
		writeJSON(w, http.StatusOK, map[string]any{
			"success": true,
			"data":    map[string]any{"user": map[string]any{"id": 1, "login": "admin", "rol": 1}},
		})
	})

	c := NewHTTPClient(srv.URL, time.Second, staticTokens{token: "tok-123"})
	id, err := c.CurrentUser(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), id.ID)
}

func TestRequests_TokenSourceError(t *testing.T) {
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("request must not be sent")
	})

	boom := errors.New("boom")
	_, err := NewHTTPClient(srv.URL, time.Second, staticTokens{err: boom}).CurrentUser(context.Background())
	require.ErrorIs(t, err, boom)
}

func TestListUsers_SendsQueryAndDecodesPage(t *testing.T) {
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/users", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "garcia", q.Get("search"))
		assert.Equal(t, "2", q.Get("rol"))
		assert.Equal(t, "true", q.Get("activo"))
		assert.Equal(t, "login", q.Get("sortBy"))
		assert.Equal(t, "ASC", q.Get("sortOrder"))
		assert.Equal(t, "2", q.Get("page"))
		assert.Equal(t, "5", q.Get("limit"))

		writeJSON(w, http.StatusOK, map[string]any{
			"success": true,
			"data": map[string]any{
				"users": []any{remoteUser},
				"pagination": map[string]any{
					"currentPage": 2, "totalPages": 2, "totalItems": 6, "itemsPerPage": 5,
					"hasNextPage": false, "hasPrevPage": true,
				},
			},
		})
	})

	c := NewHTTPClient(srv.URL, time.Second, nil)
	page, err := c.ListUsers(context.Background(), models.ListFilter{
		Search: "garcia", Role: "2", Active: "true", SortBy: "login", SortOrder: "ASC", Page: 2, Limit: 5,
	})
	require.NoError(t, err)
	require.Len(t, page.Users, 1)
	assert.Equal(t, "mgarcia", page.Users[0].LoginName)
	assert.Equal(t, time.Date(2024, 2, 1, 10, 0, 0, 0, time.UTC), page.Users[0].CreatedAt.UTC())
	assert.Equal(t, models.NewPagination(2, 5, 6), page.Pagination)
}

func TestCreateUser_ValidationErrors(t *testing.T) {
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "secret1", body["pwd"])
		assert.Equal(t, "jdoe", body["login"])

		writeJSON(w, http.StatusBadRequest, map[string]any{
			"success": false,
			"errors":  []map[string]string{{"message": "El email ya está en uso"}, {"message": "login inválido"}},
		})
	})

	_, err := NewHTTPClient(srv.URL, time.Second, nil).CreateUser(context.Background(), models.CreateUserData{
		DisplayName: "John Doe", LoginName: "jdoe", Email: "j@x.io", Password: "secret1", CompanyID: 1, Role: 2,
	})

	var ve *common.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "El email ya está en uso, login inválido", ve.Error())
	assert.False(t, IsUnavailable(err))
}

func TestUpdateUser_SendsOnlySuppliedFields(t *testing.T) {
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/users/3", r.URL.Path)
		b, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{"nombre":"Maria G.","activo":false}`, string(b))

		writeJSON(w, http.StatusOK, map[string]any{"success": true, "data": map[string]any{"user": remoteUser}})
	})

	name, active := "Maria G.", false
	u, err := NewHTTPClient(srv.URL, time.Second, nil).UpdateUser(context.Background(), 3,
		models.UpdateUserData{DisplayName: &name, Active: &active})
	require.NoError(t, err)
	assert.Equal(t, int64(3), u.ID)
}

func TestErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		check  func(t *testing.T, err error)
	}{
		{
			name: "not found", status: http.StatusNotFound,
			body:  `{"success":false,"message":"Usuario no encontrado"}`,
			check: func(t *testing.T, err error) { require.ErrorIs(t, err, common.ErrorNotFound) },
		},
		{
			name: "forbidden", status: http.StatusForbidden,
			body:  `{"success":false,"message":"no"}`,
			check: func(t *testing.T, err error) { require.ErrorIs(t, err, ErrUnauthorized) },
		},
		{
			name: "server error with envelope", status: http.StatusInternalServerError,
			body: `{"success":false,"message":"db down"}`,
			check: func(t *testing.T, err error) {
				require.ErrorIs(t, err, ErrRejected)
				require.ErrorContains(t, err, "db down")
			},
		},
		{
			name: "server error without envelope", status: http.StatusBadGateway,
			body:  `<html>bad gateway</html>`,
			check: func(t *testing.T, err error) { require.ErrorIs(t, err, ErrUnavailable) },
		},
		{
			name: "success without data", status: http.StatusOK,
			body:  `{"success":true}`,
			check: func(t *testing.T, err error) { require.ErrorIs(t, err, ErrRejected) },
		},
		{
			name: "success false on 200", status: http.StatusOK,
			body:  `{"success":false}`,
			check: func(t *testing.T, err error) { require.ErrorIs(t, err, ErrRejected) },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})
			_, err := NewHTTPClient(srv.URL, time.Second, nil).GetUser(context.Background(), 7)
			require.Error(t, err)
			tt.check(t, err)
		})
	}
}

func TestTimeoutIsUnavailable(t *testing.T) {
	release := make(chan struct{})
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	})
	defer close(release)

	start := time.Now()
	_, err := NewHTTPClient(srv.URL, 50*time.Millisecond, nil).GetUser(context.Background(), 1)
	require.ErrorIs(t, err, ErrUnavailable)
	require.Less(t, time.Since(start), 5*time.Second)
}

func TestDeleteUser(t *testing.T) {
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/users/999", r.URL.Path)
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "message": "Usuario eliminado"})
	})

	require.NoError(t, NewHTTPClient(srv.URL, time.Second, nil).DeleteUser(context.Background(), 999))
}

func TestPing(t *testing.T) {
	var healthy atomic.Bool
	healthy.Store(true)
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/health", r.URL.Path)
		if healthy.Load() {
			_, _ = w.Write([]byte("OK"))
			return
		}
		w.WriteHeader(http.StatusServiceUnavailable)
	})
	c := NewHTTPClient(srv.URL, time.Second, nil)

	require.NoError(t, c.Ping(context.Background()))

	healthy.Store(false)
	require.ErrorIs(t, c.Ping(context.Background()), ErrUnavailable)
}

func TestWithHTTPClient(t *testing.T) {
	custom := &http.Client{Timeout: time.Second}
	c := NewHTTPClient("http://example.invalid", 0, nil, WithHTTPClient(custom))
	assert.Same(t, custom, c.http)
	assert.Equal(t, DefaultTimeout, c.timeout)
}
