package services

import (
	"context"
	"crypto/sha256"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/mmatt-net/site/dto"
	"github.com/mmatt-net/site/models"
	"github.com/mmatt-net/site/repositories"
	"github.com/pkg/errors"
	"golang.org/x/crypto/hkdf"
	"gorm.io/gorm"
)

const (
	// SessionCookieName holds the signed session token
	SessionCookieName = "access_token"
	// StateCookieName holds the signed OAuth state while the user is at the provider
	StateCookieName = "oauth_state"

	sessionTTL = 30 * 24 * time.Hour
	stateTTL   = 10 * time.Minute
)

// Authenticator issues and verifies session tokens and resolves the
// identity behind a request
type Authenticator struct {
	userRepo   *repositories.UserRepository
	sessionKey []byte
	stateKey   []byte
	now        func() time.Time
}

// NewAuthenticator derives separate signing keys for sessions and OAuth
// state from secret
func NewAuthenticator(db *gorm.DB, secret string) (*Authenticator, error) {
	if secret == "" {
		return nil, errors.New("session secret cannot be empty")
	}
	sessionKey, err := deriveKey(secret, "session")
	if err != nil {
		return nil, err
	}
	stateKey, err := deriveKey(secret, "oauth-state")
	if err != nil {
		return nil, err
	}
	return &Authenticator{
		userRepo:   repositories.NewUserRepository(db),
		sessionKey: sessionKey,
		stateKey:   stateKey,
		now:        time.Now,
	}, nil
}

func deriveKey(secret, purpose string) ([]byte, error) {
	key := make([]byte, 32)
	if _, err := io.ReadFull(hkdf.New(sha256.New, []byte(secret), nil, []byte(purpose)), key); err != nil {
		return nil, errors.Wrap(err, "derive signing key")
	}
	return key, nil
}

// Login stores the provider profile and returns a session token for it
func (a *Authenticator) Login(ctx context.Context, user dto.ProviderUser) (string, time.Time, error) {
	if user.ID == "" {
		return "", time.Time{}, errors.New("provider returned a user without id")
	}
	displayName := user.Name
	if displayName == "" {
		displayName = user.Username
	}
	if _, err := a.userRepo.Upsert(ctx, models.User{
		ID:              user.ID,
		Username:        user.Username,
		DisplayName:     displayName,
		ProfileImageURL: user.ProfileImageURL,
	}); err != nil {
		return "", time.Time{}, errors.Wrap(err, "store user")
	}
	return a.GenerateToken(user.ID)
}

// GenerateToken generates a new session token for a user
func (a *Authenticator) GenerateToken(userID string) (string, time.Time, error) {
	now := a.now()
	expiresAt := now.Add(sessionTTL)

	claims := dto.SessionClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	tokenString, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.sessionKey)
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

// ValidateToken validates a session token and returns its claims
func (a *Authenticator) ValidateToken(tokenString string) (*dto.SessionClaims, error) {
	claims := &dto.SessionClaims{}
	if err := a.parse(tokenString, claims, a.sessionKey); err != nil {
		return nil, err
	}
	if claims.UserID == "" {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}

// GenerateStateToken signs the OAuth state, PKCE verifier and return path
func (a *Authenticator) GenerateStateToken(state, verifier, returnTo string) (string, error) {
	now := a.now()
	claims := dto.OAuthStateClaims{
		State:    state,
		Verifier: verifier,
		ReturnTo: returnTo,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(stateTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.stateKey)
}

// ValidateStateToken returns the claims of a state token signed by GenerateStateToken
func (a *Authenticator) ValidateStateToken(tokenString string) (*dto.OAuthStateClaims, error) {
	claims := &dto.OAuthStateClaims{}
	if err := a.parse(tokenString, claims, a.stateKey); err != nil {
		return nil, err
	}
	return claims, nil
}

func (a *Authenticator) parse(tokenString string, claims jwt.Claims, key []byte) error {
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return key, nil
	}, jwt.WithTimeFunc(a.now))
	if err != nil {
		return err
	}
	if !token.Valid {
		return errors.New("invalid token")
	}
	return nil
}

// IsAuthenticated resolves the identity behind the session cookie of r.
// A missing or invalid cookie, or a user that no longer exists, yields
// (nil, nil). Only store failures are returned as errors.
func (a *Authenticator) IsAuthenticated(r *http.Request) (*dto.Identity, error) {
	cookie, err := r.Cookie(SessionCookieName)
	if err != nil || cookie.Value == "" {
		return nil, nil
	}

	claims, err := a.ValidateToken(cookie.Value)
	if err != nil {
		slog.Debug("ignoring invalid session cookie", "err", err)
		return nil, nil
	}

	user, err := a.userRepo.FindByID(r.Context(), claims.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, nil
	}

	return &dto.Identity{
		ID:              user.ID,
		DisplayName:     user.DisplayName,
		ProfileImageURL: user.ProfileImageURL,
	}, nil
}
