package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Marco21c/backend-noticias/internal/config"
	"github.com/Marco21c/backend-noticias/internal/domain/user"
	apphttp "github.com/Marco21c/backend-noticias/internal/http"
	"github.com/Marco21c/backend-noticias/internal/http/handlers"
	"github.com/Marco21c/backend-noticias/internal/repo/memory"
	"github.com/Marco21c/backend-noticias/internal/security"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const password = "Str0ng!Pass"

type testApp struct {
	router http.Handler
	users  *memory.UsersRepo
	hasher security.Hasher
}

func testConfig() config.Config {
	return config.Config{
		Env:             config.EnvTest,
		StorageDriver:   config.DriverMemory,
		JWTSecret:       "test-secret-key",
		JWTExpiresIn:    "1h",
		AllowedOrigins:  []string{"http://localhost:5173"},
		LoginRateLimit:  100,
		LoginRateWindow: time.Minute,
		MaxBodyBytes:    1 << 20,
		ServiceName:     "backend-noticias-test",
	}
}

func setupApp(t *testing.T, cfg config.Config) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)

	app := &testApp{
		users:  memory.NewUsersRepo(),
		hasher: security.Hasher{Cost: bcrypt.MinCost},
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelDebug}))

	router, err := apphttp.NewRouter(logger, cfg, apphttp.Deps{
		Stores: apphttp.Stores{
			Users:      app.users,
			Categories: memory.NewCategoriesRepo(),
			News:       memory.NewNewsRepo(),
			Ping:       handlers.PingFunc(func(context.Context) error { return nil }),
		},
		Hasher: app.hasher,
	})
	require.NoError(t, err)

	app.router = router
	return app
}

// seedUser writes straight to the store so any role, superadmin included, can be created.
func (a *testApp) seedUser(t *testing.T, email string, role user.Role) user.User {
	t.Helper()

	hash, err := a.hasher.Hash(password)
	require.NoError(t, err)

	u, err := a.users.Create(context.Background(), user.User{
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		Name:         "Seed",
		LastName:     "User",
	})
	require.NoError(t, err)
	return u
}

func (a *testApp) do(method, path, body, token string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = bytes.NewBufferString(body)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("X-Request-Id", "test-request")
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func (a *testApp) login(t *testing.T, email string) string {
	t.Helper()

	w := a.do(http.MethodPost, "/api/auth/login", `{"email":"`+email+`","password":"`+password+`"}`, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	resp := readJSON[struct {
		Token string `json:"token"`
	}](t, w)
	require.NotEmpty(t, resp.Data.Token)
	return resp.Data.Token
}

type response[T any] struct {
	Success bool   `json:"success"`
	Data    T      `json:"data"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func readJSON[T any](t *testing.T, w *httptest.ResponseRecorder) response[T] {
	t.Helper()
	var out response[T]
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), "body=%s", w.Body.String())
	return out
}

func TestRouter_HealthAndMetrics(t *testing.T) {
	app := setupApp(t, testConfig())

	assert.Equal(t, http.StatusOK, app.do(http.MethodGet, "/healthz", "", "").Code)
	assert.Equal(t, http.StatusOK, app.do(http.MethodGet, "/readyz", "", "").Code)

	w := app.do(http.MethodGet, "/metrics", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "noticias_http_requests_total")
}

func TestRouter_UnknownRoute(t *testing.T) {
	app := setupApp(t, testConfig())

	w := app.do(http.MethodGet, "/api/nope", "", "")
	require.Equal(t, http.StatusNotFound, w.Code)
	body := readJSON[any](t, w)
	assert.False(t, body.Success)
	assert.Equal(t, "ROUTE_NOT_FOUND", body.Code)
}

func TestRouter_SignUpMeAndLogin(t *testing.T) {
	app := setupApp(t, testConfig())

	w := app.do(http.MethodPost, "/api/auth/signup",
		`{"email":"Ana@Example.com","password":"`+password+`","name":"Ana","lastName":"Diaz","role":"admin"}`, "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.NotContains(t, w.Body.String(), "$2a$")

	signup := readJSON[struct {
		User  user.User `json:"user"`
		Token string    `json:"token"`
	}](t, w)
	assert.Equal(t, "ana@example.com", signup.Data.User.Email)
	assert.Equal(t, user.RoleUser, signup.Data.User.Role)

	w = app.do(http.MethodGet, "/api/auth/me", "", signup.Data.Token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, signup.Data.User.ID, readJSON[user.User](t, w).Data.ID)

	token := app.login(t, "ANA@example.com")
	assert.NotEmpty(t, token)
}

func TestRouter_LoginFailuresAreIdentical(t *testing.T) {
	app := setupApp(t, testConfig())
	app.seedUser(t, "ana@example.com", user.RoleUser)

	wrongPassword := app.do(http.MethodPost, "/api/auth/login", `{"email":"ana@example.com","password":"Wr0ng!Pass"}`, "")
	unknownEmail := app.do(http.MethodPost, "/api/auth/login", `{"email":"nobody@example.com","password":"Wr0ng!Pass"}`, "")

	require.Equal(t, http.StatusUnauthorized, wrongPassword.Code)
	require.Equal(t, http.StatusUnauthorized, unknownEmail.Code)
	assert.Equal(t, wrongPassword.Body.String(), unknownEmail.Body.String())
	assert.Equal(t, "INVALID_CREDENTIALS", readJSON[any](t, wrongPassword).Code)
}

func TestRouter_AuthenticationErrors(t *testing.T) {
	app := setupApp(t, testConfig())

	w := app.do(http.MethodGet, "/api/auth/me", "", "")
	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "TOKEN_MISSING", readJSON[any](t, w).Code)

	w = app.do(http.MethodGet, "/api/auth/me", "", "garbage")
	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "TOKEN_INVALID", readJSON[any](t, w).Code)

	// a valid token for a user that has since been deleted
	gone := app.seedUser(t, "gone@example.com", user.RoleAdmin)
	token := app.login(t, gone.Email)
	_, err := app.users.Delete(context.Background(), gone.ID)
	require.NoError(t, err)

	w = app.do(http.MethodGet, "/api/auth/me", "", token)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "TOKEN_INVALID", readJSON[any](t, w).Code)
}

func TestRouter_ExpiredToken(t *testing.T) {
	cfg := testConfig()
	cfg.JWTExpiresIn = "0"
	app := setupApp(t, cfg)
	app.seedUser(t, "ana@example.com", user.RoleUser)

	token := app.login(t, "ana@example.com")

	w := app.do(http.MethodGet, "/api/auth/me", "", token)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "TOKEN_EXPIRED", readJSON[any](t, w).Code)
}

func TestRouter_UserManagement(t *testing.T) {
	app := setupApp(t, testConfig())
	app.seedUser(t, "admin@example.com", user.RoleAdmin)
	plain := app.seedUser(t, "plain@example.com", user.RoleUser)
	other := app.seedUser(t, "other@example.com", user.RoleUser)

	adminToken := app.login(t, "admin@example.com")
	userToken := app.login(t, plain.Email)

	// superadmin cannot be created through the API, even by an admin
	w := app.do(http.MethodPost, "/api/user",
		`{"email":"boss@example.com","password":"`+password+`","role":"superadmin","name":"Boss","lastName":"Man"}`, adminToken)
	require.Equal(t, http.StatusForbidden, w.Code, w.Body.String())
	assert.Equal(t, "FORBIDDEN_ROLE", readJSON[any](t, w).Code)

	// duplicate email differing only by case
	w = app.do(http.MethodPost, "/api/user",
		`{"email":"PLAIN@example.com","password":"`+password+`","name":"Dup","lastName":"User"}`, adminToken)
	require.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "EMAIL_DUPLICATE", readJSON[any](t, w).Code)

	// well-formed unknown id
	w = app.do(http.MethodDelete, "/api/user/65f1a0b2c3d4e5f6a7b8c9d0", "", adminToken)
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "USER_NOT_FOUND", readJSON[any](t, w).Code)

	// plain users cannot list
	w = app.do(http.MethodGet, "/api/user", "", userToken)
	require.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "FORBIDDEN", readJSON[any](t, w).Code)

	// but may edit themselves
	w = app.do(http.MethodPut, "/api/user/"+plain.ID, `{"name":"Renamed"}`, userToken)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "Renamed", readJSON[user.User](t, w).Data.Name)

	// not someone else, and not their own role
	w = app.do(http.MethodPut, "/api/user/"+other.ID, `{"name":"Hacked"}`, userToken)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = app.do(http.MethodPut, "/api/user/"+plain.ID, `{"role":"admin"}`, userToken)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = app.do(http.MethodGet, "/api/user", "", adminToken)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, readJSON[[]user.User](t, w).Data, 3)
	assert.NotContains(t, w.Body.String(), "password")
}

func TestRouter_CategoriesAndNews(t *testing.T) {
	app := setupApp(t, testConfig())
	app.seedUser(t, "admin@example.com", user.RoleAdmin)
	editor := app.seedUser(t, "editor@example.com", user.RoleEditor)
	app.seedUser(t, "reader@example.com", user.RoleUser)

	adminToken := app.login(t, "admin@example.com")
	editorToken := app.login(t, editor.Email)
	readerToken := app.login(t, "reader@example.com")

	type idOnly struct {
		ID string `json:"id"`
	}

	// categories: admin only, duplicates ignore case and whitespace
	w := app.do(http.MethodPost, "/api/categories", `{"name":"Sports"}`, editorToken)
	require.Equal(t, http.StatusForbidden, w.Code)

	w = app.do(http.MethodPost, "/api/categories", `{"name":"Sports"}`, adminToken)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	sports := readJSON[idOnly](t, w).Data.ID

	w = app.do(http.MethodPost, "/api/categories", `{"name":"sports "}`, adminToken)
	require.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "NAME_DUPLICATE", readJSON[any](t, w).Code)

	w = app.do(http.MethodGet, "/api/categories", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("ETag"))

	newsBody := func(category string) string {
		return `{
			"title": "Local team wins",
			"slug": "Local Team Wins",
			"summary": "A summary long enough",
			"content": "<p>Some content that is long enough.</p><script>alert(1)</script>",
			"category": "` + category + `",
			"status": "published",
			"publicationDate": "2020-01-01T00:00:00Z"
		}`
	}

	// malformed category id fails validation before the service
	w = app.do(http.MethodPost, "/api/news", newsBody("sports"), editorToken)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "REQUEST_VALIDATION_ERROR", readJSON[any](t, w).Code)

	// readers cannot write
	w = app.do(http.MethodPost, "/api/news", newsBody(sports), readerToken)
	require.Equal(t, http.StatusForbidden, w.Code)

	w = app.do(http.MethodPost, "/api/news", newsBody(sports), editorToken)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	created := readJSON[struct {
		ID              string     `json:"id"`
		Slug            string     `json:"slug"`
		Content         string     `json:"content"`
		Author          string     `json:"author"`
		Status          string     `json:"status"`
		PublicationDate *time.Time `json:"publicationDate"`
	}](t, w).Data
	assert.Equal(t, "draft", created.Status)
	assert.Nil(t, created.PublicationDate)
	assert.Equal(t, editor.ID, created.Author)
	assert.Equal(t, "local-team-wins", created.Slug)
	assert.NotContains(t, created.Content, "<script>")

	w = app.do(http.MethodPost, "/api/news", newsBody(sports), editorToken)
	require.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "SLUG_DUPLICATE", readJSON[any](t, w).Code)

	// publishing stamps the publication date
	w = app.do(http.MethodPut, "/api/news/"+created.ID, `{"status":"published"}`, editorToken)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	published := readJSON[struct {
		Status          string     `json:"status"`
		PublicationDate *time.Time `json:"publicationDate"`
	}](t, w).Data
	assert.Equal(t, "published", published.Status)
	assert.NotNil(t, published.PublicationDate)

	// public reads
	w = app.do(http.MethodGet, "/api/news?status=published", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, readJSON[[]idOnly](t, w).Data, 1)

	w = app.do(http.MethodGet, "/api/news?author=not-an-id", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, readJSON[[]idOnly](t, w).Data)

	w = app.do(http.MethodGet, "/api/news/category?category="+sports, "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, readJSON[[]idOnly](t, w).Data, 1)

	w = app.do(http.MethodDelete, "/api/news/"+created.ID, "", editorToken)
	require.Equal(t, http.StatusOK, w.Code)

	w = app.do(http.MethodGet, "/api/news/category?category="+sports, "", "")
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "NEWS_NOT_FOUND", readJSON[any](t, w).Code)
}

func TestRouter_PathIDsIgnoreCase(t *testing.T) {
	app := setupApp(t, testConfig())
	admin := app.seedUser(t, "admin@example.com", user.RoleAdmin)
	adminToken := app.login(t, "admin@example.com")

	w := app.do(http.MethodPost, "/api/categories", `{"name":"Culture"}`, adminToken)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := readJSON[struct {
		ID string `json:"id"`
	}](t, w).Data.ID

	w = app.do(http.MethodGet, "/api/categories/"+strings.ToUpper(created), "", "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = app.do(http.MethodPut, "/api/user/"+strings.ToUpper(admin.ID), `{"name":"Root"}`, adminToken)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "Root", readJSON[user.User](t, w).Data.Name)
}

func TestRouter_LoginRateLimit(t *testing.T) {
	cfg := testConfig()
	cfg.LoginRateLimit = 2
	app := setupApp(t, cfg)

	body := `{"email":"nobody@example.com","password":"x"}`
	for i := 0; i < 2; i++ {
		w := app.do(http.MethodPost, "/api/auth/login", body, "")
		require.Equal(t, http.StatusUnauthorized, w.Code)
	}

	w := app.do(http.MethodPost, "/api/auth/login", body, "")
	require.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
	assert.Equal(t, "RATE_LIMITED", readJSON[any](t, w).Code)
}

func TestRouter_RequiresJSONBodies(t *testing.T) {
	app := setupApp(t, testConfig())

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewBufferString("email=a"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	app.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnsupportedMediaType, w.Code)
	assert.Equal(t, "UNSUPPORTED_MEDIA_TYPE", readJSON[any](t, w).Code)
}
