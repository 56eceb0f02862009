package api

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"admindash/internal/cache"
	intconfig "admindash/internal/config"
	"admindash/internal/domain"
	"admindash/internal/domain/models"
	h "admindash/internal/http/handlers"
	"admindash/internal/http/middleware"
	"admindash/internal/llm"
	"admindash/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type accounts map[string]models.AuthorizedUser

func (a accounts) GetByEmail(ctx context.Context, email string) (models.AuthorizedUser, error) {
	u, ok := a[strings.ToLower(email)]
	if !ok {
		return u, domain.NotFoundError{Resource: "authorized user"}
	}
	return u, nil
}

func (a accounts) Count(ctx context.Context) (int, error) { return len(a), nil }

type noLogs struct{}

func (noLogs) List(ctx context.Context, req domain.PageRequest, level string) ([]models.SystemLog, int, error) {
	return nil, 0, nil
}

func (noLogs) CountByLevel(ctx context.Context) ([]models.LevelCount, error) {
	return []models.LevelCount{}, nil
}

type directory struct{}

func (directory) ListUsers(ctx context.Context, page, perPage int) ([]models.DirectoryUser, error) {
	if page > 1 {
		return []models.DirectoryUser{}, nil
	}
	return []models.DirectoryUser{{ID: "u1", Email: "alice@example.com", Name: "Alice"}}, nil
}

func (directory) GetUser(ctx context.Context, id string) (models.DirectoryUser, error) {
	return models.DirectoryUser{}, domain.NotFoundError{Resource: "user"}
}

func testRouter(t *testing.T) (*gin.Engine, services.AuthService) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	hash, err := bcrypt.GenerateFromPassword([]byte("pw"), bcrypt.MinCost)
	require.NoError(t, err)

	auth := services.AuthService{
		Users: accounts{
			"admin@example.com":  {Email: "admin@example.com", Role: "Administrator", PasswordHash: string(hash)},
			"editor@example.com": {Email: "editor@example.com", Role: "editor", PasswordHash: string(hash)},
		},
		Secret: []byte("router-secret"),
	}
	deps := h.API{
		Logs:  services.LogService{Logs: noLogs{}},
		Users: services.UserService{Directory: directory{}, Cache: cache.NewMemory()},
		Auth:  auth,
		Cache: cache.NewMemory(),
		LLM:   llm.NewRegistry(),
	}
	env := intconfig.Env{CORSOrigins: []string{"http://localhost:3000"}}
	return NewRouter(env, deps), auth
}

func sessionCookie(t *testing.T, auth services.AuthService, email string) *http.Cookie {
	t.Helper()
	sess, err := auth.Login(context.Background(), email, "pw")
	require.NoError(t, err)
	return &http.Cookie{Name: middleware.SessionCookie, Value: sess.Token}
}

func get(r http.Handler, path string, cookie *http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHealthIsPublic(t *testing.T) {
	r, _ := testRouter(t)
	w := get(r, "/api/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))
}

func TestNoRouteUsesEnvelope(t *testing.T) {
	r, _ := testRouter(t)
	w := get(r, "/api/nope", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), `"code":"not_found"`)
	assert.Contains(t, w.Body.String(), `"success":false`)
}

func TestAdminRoutesNeedAdminRole(t *testing.T) {
	r, auth := testRouter(t)

	w := get(r, "/api/logs", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = get(r, "/api/logs", sessionCookie(t, auth, "editor@example.com"))
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = get(r, "/api/logs", sessionCookie(t, auth, "admin@example.com"))
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = get(r, "/api/logs?level=verbose", sessionCookie(t, auth, "admin@example.com"))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTamperedSessionRejected(t *testing.T) {
	r, auth := testRouter(t)
	c := sessionCookie(t, auth, "admin@example.com")
	c.Value += "x"
	w := get(r, "/api/auth/me", c)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestMetricsExposed(t *testing.T) {
	r, _ := testRouter(t)
	get(r, "/api/health", nil)

	w := get(r, "/metrics", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body, _ := io.ReadAll(w.Body)
	assert.Contains(t, string(body), `admindash_http_requests_total{method="GET",route="/api/health",status="200"} 1`)
	assert.Contains(t, string(body), "admindash_cache_entries")
}

func TestRoutesListing(t *testing.T) {
	r, _ := testRouter(t)
	w := get(r, "/api/routes", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "/api/ai-playground/:provider")
}

func TestCORSPreflight(t *testing.T) {
	r, _ := testRouter(t)
	req := httptest.NewRequest(http.MethodOptions, "/api/blogs/list", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
}

func TestPanicAnswersWithEnvelope(t *testing.T) {
	r, _ := testRouter(t)
	r.GET("/api/explode", func(c *gin.Context) {
		panic("explode")
	})

	w := get(r, "/api/explode", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "application/json")
	assert.Contains(t, w.Body.String(), `"success":false`)
	assert.Contains(t, w.Body.String(), `"code":"internal_error"`)
	assert.Contains(t, w.Body.String(), `"request_id":"`)
}

func TestUserSearchWithHugePage(t *testing.T) {
	r, auth := testRouter(t)
	admin := sessionCookie(t, auth, "admin@example.com")

	w := get(r, "/api/users?search=alice&page=9223372036854775807", admin)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"data":[]`)
	assert.Contains(t, w.Body.String(), `"total":1`)

	w = get(r, "/api/users?search=alice", admin)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "alice@example.com")
}
