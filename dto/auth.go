package dto

import (
	"github.com/golang-jwt/jwt/v5"
)

// SessionClaims is the payload of the signed access_token cookie
type SessionClaims struct {
	UserID string `json:"userId"`
	jwt.RegisteredClaims
}

// OAuthStateClaims carries the OAuth state and PKCE verifier between
// the login redirect and the provider callback
type OAuthStateClaims struct {
	State    string `json:"state"`
	Verifier string `json:"verifier"`
	ReturnTo string `json:"returnTo"`
	jwt.RegisteredClaims
}

// Identity is the authenticated visitor of one request
type Identity struct {
	ID              string `json:"id"`
	DisplayName     string `json:"display_name"`
	ProfileImageURL string `json:"profile_image_url"`
}

// Session wraps the identity the way page templates consume it
type Session struct {
	JSON Identity `json:"json"`
}

// ProviderUser is the profile returned by the OAuth provider
type ProviderUser struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Username        string `json:"username"`
	ProfileImageURL string `json:"profile_image_url"`
}
