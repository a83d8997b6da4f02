package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/systech-labs/deskflow/internal/domain/product"
	"github.com/systech-labs/deskflow/internal/infrastructure/config"
	"github.com/systech-labs/deskflow/internal/infrastructure/migration"
	"github.com/systech-labs/deskflow/internal/infrastructure/repository"
	"github.com/systech-labs/deskflow/internal/shared/authorization"
	sharedConfig "github.com/systech-labs/deskflow/internal/shared/config"
	"github.com/systech-labs/deskflow/internal/shared/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

type testServer struct {
	router *Router
	tokens map[authorization.UserRole]string
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, gdb.AutoMigrate(migration.AutoMigrateModels()...))

	p, err := product.NewProduct("CRM", "CRM product")
	require.NoError(t, err)
	require.NoError(t, repository.NewProductRepository(gdb).Create(context.Background(), p))

	cfg := &config.Config{
		Auth: sharedConfig.AuthConfig{JWT: sharedConfig.JWTConfig{
			Secret:           "test-secret",
			Issuer:           "deskflow",
			AccessExpMinutes: 15,
		}},
		Permission: sharedConfig.PermissionConfig{SeedDefaults: true},
	}

	router, err := NewRouter(gdb, cfg, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(router.Shutdown)

	clientID := uint(42)
	actors := []authorization.Actor{
		{UserID: 1, Role: authorization.RoleAdmin},
		{UserID: 2, Role: authorization.RoleAgent},
		{UserID: 3, Role: authorization.RoleClient, ClientID: &clientID},
	}
	tokens := make(map[authorization.UserRole]string, len(actors))
	for _, a := range actors {
		token, _, err := router.JWTService().Generate(a)
		require.NoError(t, err)
		tokens[a.Role] = token
	}

	return &testServer{router: router, tokens: tokens}
}

func (s *testServer) do(t *testing.T, role authorization.UserRole, method, path string, body any) (int, envelope) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token, ok := s.tokens[role]; ok {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.router.GetEngine().ServeHTTP(w, req)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return w.Code, env
}

func TestRouter_Health(t *testing.T) {
	s := newTestServer(t)

	code, env := s.do(t, "", http.MethodGet, "/health", nil)

	require.Equal(t, http.StatusOK, code)
	var status struct {
		Status string            `json:"status"`
		Checks map[string]string `json:"checks"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &status))
	assert.Equal(t, "healthy", status.Status)
	assert.Equal(t, "up", status.Checks["database"])
}

func TestRouter_ClientTicketFlow(t *testing.T) {
	s := newTestServer(t)

	code, env := s.do(t, authorization.RoleClient, http.MethodPost, "/tickets", map[string]any{
		"product_id": 1,
		"title":      "Invoice export fails",
		"priority":   2,
	})
	require.Equal(t, http.StatusCreated, code, env.Error)

	var created struct {
		ID       uint   `json:"id"`
		IssueKey string `json:"issue_key"`
		Channel  string `json:"channel"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &created))
	assert.Equal(t, "CRM-B001", created.IssueKey)

	code, env = s.do(t, authorization.RoleClient, http.MethodGet, "/tickets/crm-b001", nil)
	require.Equal(t, http.StatusOK, code)
	var view struct {
		IssueKey string `json:"issue_key"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &view))
	assert.Equal(t, "CRM-B001", view.IssueKey)

	code, _ = s.do(t, authorization.RoleAgent, http.MethodGet, "/tickets/1/actions", nil)
	assert.Equal(t, http.StatusOK, code)
}

func TestRouter_Guards(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		name     string
		role     authorization.UserRole
		method   string
		path     string
		body     any
		wantCode int
	}{
		{"anonymous ticket read", "", http.MethodGet, "/tickets/1", nil, http.StatusUnauthorized},
		{"client creates dev task", authorization.RoleClient, http.MethodPost, "/dev-tasks",
			map[string]any{"product_id": 1, "title": "x"}, http.StatusForbidden},
		{"client reads escalations", authorization.RoleClient, http.MethodGet, "/escalations", nil, http.StatusForbidden},
		{"agent reads escalations", authorization.RoleAgent, http.MethodGet, "/escalations", nil, http.StatusOK},
		{"agent creates sprint", authorization.RoleAgent, http.MethodPost, "/sprints",
			map[string]any{"start_date": "2026-02-02"}, http.StatusForbidden},
		{"admin creates sprint", authorization.RoleAdmin, http.MethodPost, "/sprints",
			map[string]any{"start_date": "2026-02-02"}, http.StatusCreated},
		{"agent reads velocity", authorization.RoleAgent, http.MethodGet, "/sprints/velocity", nil, http.StatusOK},
		{"unknown ticket", authorization.RoleAgent, http.MethodGet, "/tickets/CRM-B404", nil, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, _ := s.do(t, tt.role, tt.method, tt.path, tt.body)
			assert.Equal(t, tt.wantCode, code)
		})
	}
}
