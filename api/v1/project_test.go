package v1_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/mmatt-net/site/config"
	"github.com/mmatt-net/site/dto"
	"github.com/mmatt-net/site/routes"
	"github.com/mmatt-net/site/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type apiResponse struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Session *dto.Session    `json:"session"`
}

func setupAPI(t *testing.T) (*gin.Engine, *gorm.DB, *routes.Dependencies) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testutil.NewTestDB(t)
	deps, err := routes.NewDependencies(db, config.Config{
		SessionSecret: "test-secret",
		AdminUserIDs:  []string{"admin"},
	})
	require.NoError(t, err)

	router, err := routes.SetupRouter(deps)
	require.NoError(t, err)
	return router, db, deps
}

func doJSON(t *testing.T, router *gin.Engine, method, target string, body interface{}, cookie *http.Cookie) (int, apiResponse) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	if cookie != nil {
		req.AddCookie(cookie)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var res apiResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res), w.Body.String())
	return w.Code, res
}

func TestHealthCheck(t *testing.T) {
	router, _, _ := setupAPI(t)

	code, res := doJSON(t, router, http.MethodGet, "/api/v1/health", nil, nil)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "ok", res.Status)
}

func TestGetCurrentUser(t *testing.T) {
	router, db, deps := setupAPI(t)
	testutil.CreateUser(t, db, "u1", "Alice")

	code, _ := doJSON(t, router, http.MethodGet, "/api/v1/auth/me", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, code)

	code, res := doJSON(t, router, http.MethodGet, "/api/v1/auth/me", nil, testutil.SessionCookie(t, deps.Auth, "u1"))
	require.Equal(t, http.StatusOK, code)
	require.NotNil(t, res.Session)
	assert.Equal(t, "u1", res.Session.JSON.ID)
	assert.Equal(t, "Alice", res.Session.JSON.DisplayName)
}

func TestProjectAPIRequiresAdmin(t *testing.T) {
	router, db, deps := setupAPI(t)
	testutil.CreateUser(t, db, "u1", "Alice")

	code, res := doJSON(t, router, http.MethodGet, "/api/v1/projects", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "error", res.Status)

	code, _ = doJSON(t, router, http.MethodPost, "/api/v1/projects", dto.EntryRequest{Title: "x"}, testutil.SessionCookie(t, deps.Auth, "u1"))
	assert.Equal(t, http.StatusForbidden, code)
}

func TestProjectAPICRUD(t *testing.T) {
	router, db, deps := setupAPI(t)
	testutil.CreateUser(t, db, "admin", "Matt")
	admin := testutil.SessionCookie(t, deps.Auth, "admin")

	code, res := doJSON(t, router, http.MethodPost, "/api/v1/projects", dto.EntryRequest{
		Title:    "Hello World",
		Category: "code",
		Markdown: "# hi",
	}, admin)
	require.Equal(t, http.StatusCreated, code, res.Message)

	var created dto.EntryResponse
	require.NoError(t, json.Unmarshal(res.Data, &created))
	assert.Equal(t, "hello-world", created.Slug)
	assert.Equal(t, "draft", created.Status)

	code, _ = doJSON(t, router, http.MethodPost, "/api/v1/projects", dto.EntryRequest{Title: "Hello World"}, admin)
	assert.Equal(t, http.StatusConflict, code)

	code, _ = doJSON(t, router, http.MethodPost, "/api/v1/projects", map[string]string{"slug": "no-title"}, admin)
	assert.Equal(t, http.StatusBadRequest, code)

	code, res = doJSON(t, router, http.MethodPut, "/api/v1/projects/"+created.ID, dto.EntryRequest{
		Title:  "Hello World",
		Status: "published",
	}, admin)
	require.Equal(t, http.StatusOK, code, res.Message)
	var updated dto.EntryResponse
	require.NoError(t, json.Unmarshal(res.Data, &updated))
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "hello-world", updated.Slug)
	assert.Equal(t, "published", updated.Status)

	code, res = doJSON(t, router, http.MethodGet, "/api/v1/projects", nil, admin)
	require.Equal(t, http.StatusOK, code)
	var list []dto.EntryResponse
	require.NoError(t, json.Unmarshal(res.Data, &list))
	assert.Len(t, list, 1)

	code, _ = doJSON(t, router, http.MethodDelete, "/api/v1/projects/"+created.ID, nil, admin)
	assert.Equal(t, http.StatusOK, code)

	code, _ = doJSON(t, router, http.MethodGet, "/api/v1/projects/"+created.ID, nil, admin)
	assert.Equal(t, http.StatusNotFound, code)

	code, _ = doJSON(t, router, http.MethodDelete, "/api/v1/projects/"+created.ID, nil, admin)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestPostAPICRUD(t *testing.T) {
	router, db, deps := setupAPI(t)
	testutil.CreateUser(t, db, "admin", "Matt")
	admin := testutil.SessionCookie(t, deps.Auth, "admin")

	code, res := doJSON(t, router, http.MethodPost, "/api/v1/posts", dto.EntryRequest{
		Title:  "First post",
		Status: "published",
	}, admin)
	require.Equal(t, http.StatusCreated, code, res.Message)

	var created dto.EntryResponse
	require.NoError(t, json.Unmarshal(res.Data, &created))
	assert.Equal(t, "first-post", created.Slug)

	code, _ = doJSON(t, router, http.MethodPut, "/api/v1/posts/"+created.ID, dto.EntryRequest{Title: "x", Status: "archived"}, admin)
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = doJSON(t, router, http.MethodDelete, "/api/v1/posts/"+created.ID, nil, admin)
	assert.Equal(t, http.StatusOK, code)

	code, _ = doJSON(t, router, http.MethodGet, "/api/v1/posts/"+created.ID, nil, admin)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestEntryAPIMalformedID(t *testing.T) {
	router, db, deps := setupAPI(t)
	testutil.CreateUser(t, db, "admin", "Matt")
	admin := testutil.SessionCookie(t, deps.Auth, "admin")

	for _, target := range []string{"/api/v1/projects/abc", "/api/v1/posts/abc"} {
		code, _ := doJSON(t, router, http.MethodGet, target, nil, admin)
		assert.Equal(t, http.StatusNotFound, code, target)

		code, _ = doJSON(t, router, http.MethodPut, target, dto.EntryRequest{Title: "x"}, admin)
		assert.Equal(t, http.StatusNotFound, code, target)

		code, _ = doJSON(t, router, http.MethodDelete, target, nil, admin)
		assert.Equal(t, http.StatusNotFound, code, target)
	}
}
