package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/mmatt-net/site/dto"
	"github.com/mmatt-net/site/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAuthenticator(t *testing.T) *Authenticator {
	t.Helper()
	auth, err := NewAuthenticator(testutil.NewTestDB(t), "test-secret")
	require.NoError(t, err)
	return auth
}

func requestWithCookie(cookie *http.Cookie) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	return req
}

func TestNewAuthenticatorRequiresSecret(t *testing.T) {
	_, err := NewAuthenticator(testutil.NewTestDB(t), "")
	assert.Error(t, err)
}

func TestSessionToken(t *testing.T) {
	auth := newTestAuthenticator(t)

	token, expiresAt, err := auth.GenerateToken("42")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(sessionTTL), expiresAt, time.Minute)

	claims, err := auth.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "42", claims.UserID)

	t.Run("rejects tampered tokens", func(t *testing.T) {
		_, err := auth.ValidateToken(token + "x")
		assert.Error(t, err)
		_, err = auth.ValidateToken("not-a-token")
		assert.Error(t, err)
	})

	t.Run("rejects tokens signed with another secret", func(t *testing.T) {
		other, err := NewAuthenticator(testutil.NewTestDB(t), "other-secret")
		require.NoError(t, err)
		_, err = other.ValidateToken(token)
		assert.Error(t, err)
	})

	t.Run("rejects expired tokens", func(t *testing.T) {
		auth.now = func() time.Time { return time.Now().Add(sessionTTL + time.Hour) }
		defer func() { auth.now = time.Now }()
		_, err := auth.ValidateToken(token)
		assert.Error(t, err)
	})

	t.Run("state tokens are not session tokens", func(t *testing.T) {
		state, err := auth.GenerateStateToken("s", "v", "/projects/x")
		require.NoError(t, err)
		_, err = auth.ValidateToken(state)
		assert.Error(t, err)
		_, err = auth.ValidateStateToken(token)
		assert.Error(t, err)
	})
}

func TestStateToken(t *testing.T) {
	auth := newTestAuthenticator(t)

	token, err := auth.GenerateStateToken("state-1", "verifier-1", "/projects/hello-world")
	require.NoError(t, err)

	claims, err := auth.ValidateStateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "state-1", claims.State)
	assert.Equal(t, "verifier-1", claims.Verifier)
	assert.Equal(t, "/projects/hello-world", claims.ReturnTo)

	auth.now = func() time.Time { return time.Now().Add(stateTTL + time.Minute) }
	_, err = auth.ValidateStateToken(token)
	assert.Error(t, err)
}

func TestIsAuthenticated(t *testing.T) {
	db := testutil.NewTestDB(t)
	auth, err := NewAuthenticator(db, "test-secret")
	require.NoError(t, err)
	testutil.CreateUser(t, db, "42", "Matt")

	t.Run("valid cookie yields the identity", func(t *testing.T) {
		identity, err := auth.IsAuthenticated(requestWithCookie(testutil.SessionCookie(t, auth, "42")))
		require.NoError(t, err)
		require.NotNil(t, identity)
		assert.Equal(t, "42", identity.ID)
		assert.Equal(t, "Matt", identity.DisplayName)
		assert.Equal(t, "https://example.com/42.png", identity.ProfileImageURL)
	})

	t.Run("anonymous cases yield nil", func(t *testing.T) {
		cases := map[string]*http.Cookie{
			"no cookie":    nil,
			"empty cookie": {Name: SessionCookieName, Value: ""},
			"garbage":      {Name: SessionCookieName, Value: "garbage"},
			"unknown user": testutil.SessionCookie(t, auth, "404"),
		}
		for name, cookie := range cases {
			identity, err := auth.IsAuthenticated(requestWithCookie(cookie))
			assert.NoError(t, err, name)
			assert.Nil(t, identity, name)
		}
	})
}

func TestLogin(t *testing.T) {
	db := testutil.NewTestDB(t)
	auth, err := NewAuthenticator(db, "test-secret")
	require.NoError(t, err)
	ctx := context.Background()

	token, _, err := auth.Login(ctx, dto.ProviderUser{ID: "7", Username: "matt"})
	require.NoError(t, err)

	identity, err := auth.IsAuthenticated(requestWithCookie(&http.Cookie{Name: SessionCookieName, Value: token}))
	require.NoError(t, err)
	require.NotNil(t, identity)
	assert.Equal(t, "matt", identity.DisplayName)

	// a second login refreshes the stored profile
	_, _, err = auth.Login(ctx, dto.ProviderUser{ID: "7", Name: "Matt M", Username: "matt", ProfileImageURL: "https://img/7.png"})
	require.NoError(t, err)

	identity, err = auth.IsAuthenticated(requestWithCookie(&http.Cookie{Name: SessionCookieName, Value: token}))
	require.NoError(t, err)
	require.NotNil(t, identity)
	assert.Equal(t, "Matt M", identity.DisplayName)
	assert.Equal(t, "https://img/7.png", identity.ProfileImageURL)

	_, _, err = auth.Login(ctx, dto.ProviderUser{})
	assert.Error(t, err)
}
