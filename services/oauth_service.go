package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/mmatt-net/site/dto"
	"github.com/pkg/errors"
	"golang.org/x/oauth2"
)

// OAuthProvider is the third-party login the site delegates authentication to
type OAuthProvider interface {
	// AuthCodeURL is where the visitor is sent to log in
	AuthCodeURL(state, verifier string) string
	// Exchange trades the callback code for the visitor's profile
	Exchange(ctx context.Context, code, verifier string) (*dto.ProviderUser, error)
}

const twitterUserURL = "https://api.twitter.com/2/users/me?user.fields=profile_image_url"

// TwitterProvider logs visitors in with Twitter/X OAuth 2.0 and PKCE
type TwitterProvider struct {
	conf    *oauth2.Config
	userURL string
}

// NewTwitterProvider creates the provider; callbacks land on publicURL/auth/twitter/callback
func NewTwitterProvider(clientID, clientSecret, publicURL string) *TwitterProvider {
	return &TwitterProvider{
		conf: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  fmt.Sprintf("%s/auth/twitter/callback", publicURL),
			Endpoint: oauth2.Endpoint{
				AuthURL:   "https://twitter.com/i/oauth2/authorize",
				TokenURL:  "https://api.twitter.com/2/oauth2/token",
				AuthStyle: oauth2.AuthStyleInHeader,
			},
			Scopes: []string{"users.read", "tweet.read"},
		},
		userURL: twitterUserURL,
	}
}

func (p *TwitterProvider) AuthCodeURL(state, verifier string) string {
	return p.conf.AuthCodeURL(state, oauth2.S256ChallengeOption(verifier))
}

func (p *TwitterProvider) Exchange(ctx context.Context, code, verifier string) (*dto.ProviderUser, error) {
	token, err := p.conf.Exchange(ctx, code, oauth2.VerifierOption(verifier))
	if err != nil {
		return nil, errors.Wrap(err, "could not exchange code for token")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.userURL, nil)
	if err != nil {
		return nil, err
	}
	res, err := p.conf.Client(ctx, token).Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "could not fetch user profile")
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, errors.Errorf("user profile request failed with status %d", res.StatusCode)
	}

	var body struct {
		Data dto.ProviderUser `json:"data"`
	}
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return nil, errors.Wrap(err, "could not decode user profile")
	}
	return &body.Data, nil
}
