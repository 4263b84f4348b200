package controllers_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/mmatt-net/site/config"
	"github.com/mmatt-net/site/dto"
	"github.com/mmatt-net/site/routes"
	"github.com/mmatt-net/site/testutil"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const adminID = "admin-1"

type fakeProvider struct {
	user     *dto.ProviderUser
	code     string
	verifier string
}

func (p *fakeProvider) AuthCodeURL(state, verifier string) string {
	return "https://provider.test/authorize?state=" + url.QueryEscape(state)
}

func (p *fakeProvider) Exchange(_ context.Context, code, verifier string) (*dto.ProviderUser, error) {
	p.code = code
	p.verifier = verifier
	if p.user == nil {
		return nil, errors.New("exchange refused")
	}
	return p.user, nil
}

type testServer struct {
	router   *gin.Engine
	db       *gorm.DB
	deps     *routes.Dependencies
	provider *fakeProvider
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testutil.NewTestDB(t)
	deps, err := routes.NewDependencies(db, config.Config{
		SessionSecret:      "test-secret",
		PublicURL:          "http://localhost:8080",
		AdminUserIDs:       []string{adminID},
		CorsAllowedOrigins: []string{"*"},
	})
	require.NoError(t, err)

	provider := &fakeProvider{}
	deps.Provider = provider

	router, err := routes.SetupRouter(deps)
	require.NoError(t, err)

	return &testServer{router: router, db: db, deps: deps, provider: provider}
}

func (s *testServer) do(t *testing.T, method, target string, form url.Values, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req := httptest.NewRequest(method, target, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

// login stores a user and returns its session cookie
func (s *testServer) login(t *testing.T, id, displayName string) *http.Cookie {
	t.Helper()
	testutil.CreateUser(t, s.db, id, displayName)
	return testutil.SessionCookie(t, s.deps.Auth, id)
}

func findCookie(w *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == name {
			return cookie
		}
	}
	return nil
}
