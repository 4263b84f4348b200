package controllers_test

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/mmatt-net/site/dto"
	"github.com/mmatt-net/site/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// startLogin runs /auth/twitter and returns the state cookie and the state
// handed to the provider
func startLogin(t *testing.T, s *testServer, returnTo string) (*http.Cookie, string) {
	t.Helper()

	w := s.do(t, http.MethodGet, "/auth/twitter?returnTo="+url.QueryEscape(returnTo), nil)
	require.Equal(t, http.StatusFound, w.Code)

	location, err := url.Parse(w.Header().Get("Location"))
	require.NoError(t, err)
	assert.Equal(t, "provider.test", location.Host)

	cookie := findCookie(w, "oauth_state")
	require.NotNil(t, cookie)
	assert.True(t, cookie.HttpOnly)
	return cookie, location.Query().Get("state")
}

func TestLoginFlow(t *testing.T) {
	s := newTestServer(t)
	s.provider.user = &dto.ProviderUser{ID: "99", Name: "Bob", Username: "bob", ProfileImageURL: "https://img/bob.png"}

	stateCookie, state := startLogin(t, s, "/projects/hello-world")
	require.NotEmpty(t, state)

	w := s.do(t, http.MethodGet, "/auth/twitter/callback?state="+state+"&code=abc", nil, stateCookie)
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/projects/hello-world", w.Header().Get("Location"))
	assert.Equal(t, "abc", s.provider.code)
	assert.NotEmpty(t, s.provider.verifier)

	session := findCookie(w, "access_token")
	require.NotNil(t, session)
	assert.True(t, session.HttpOnly)

	var user models.User
	require.NoError(t, s.db.First(&user, "id = ?", "99").Error)
	assert.Equal(t, "Bob", user.DisplayName)

	w = s.do(t, http.MethodGet, "/login", nil, session)
	assert.Contains(t, w.Body.String(), "You are logged in as Bob")

	w = s.do(t, http.MethodPost, "/logout", nil, session)
	assert.Equal(t, http.StatusFound, w.Code)
	cleared := findCookie(w, "access_token")
	require.NotNil(t, cleared)
	assert.Empty(t, cleared.Value)
}

func TestLoginCallbackRejectsBadState(t *testing.T) {
	s := newTestServer(t)
	s.provider.user = &dto.ProviderUser{ID: "99", Name: "Bob"}

	stateCookie, _ := startLogin(t, s, "/")

	t.Run("state mismatch", func(t *testing.T) {
		w := s.do(t, http.MethodGet, "/auth/twitter/callback?state=other&code=abc", nil, stateCookie)
		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "/login", w.Header().Get("Location"))
		assert.Nil(t, findCookie(w, "access_token"))
	})

	t.Run("missing state cookie", func(t *testing.T) {
		w := s.do(t, http.MethodGet, "/auth/twitter/callback?state=x&code=abc", nil)
		assert.Equal(t, "/login", w.Header().Get("Location"))
		assert.Nil(t, findCookie(w, "access_token"))
	})
}

func TestLoginCallbackProviderFailure(t *testing.T) {
	s := newTestServer(t)

	stateCookie, state := startLogin(t, s, "/projects/hello-world")

	w := s.do(t, http.MethodGet, "/auth/twitter/callback?state="+state+"&code=abc", nil, stateCookie)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login?returnTo=%2Fprojects%2Fhello-world", w.Header().Get("Location"))
	assert.Nil(t, findCookie(w, "access_token"))
}

func TestLoginReturnToStaysLocal(t *testing.T) {
	s := newTestServer(t)
	s.provider.user = &dto.ProviderUser{ID: "99", Name: "Bob"}

	stateCookie, state := startLogin(t, s, "//evil.example.com")

	w := s.do(t, http.MethodGet, "/auth/twitter/callback?state="+state+"&code=abc", nil, stateCookie)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
}
