package controllers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mmatt-net/site/monitoring"
	"github.com/mmatt-net/site/services"
	"github.com/mmatt-net/site/utils"
	"golang.org/x/oauth2"
)

// AuthController runs the login flow against the OAuth provider
type AuthController struct {
	auth         *services.Authenticator
	provider     services.OAuthProvider
	cookieSecure bool
}

func NewAuthController(auth *services.Authenticator, provider services.OAuthProvider, cookieSecure bool) *AuthController {
	return &AuthController{
		auth:         auth,
		provider:     provider,
		cookieSecure: cookieSecure,
	}
}

func (ac *AuthController) RegisterRoutes(router gin.IRoutes) {
	router.GET("/login", ac.LoginPage)
	router.GET("/auth/twitter", ac.Start)
	router.GET("/auth/twitter/callback", ac.Callback)
	router.POST("/logout", ac.Logout)
}

// LoginPage renders the login prompt
func (ac *AuthController) LoginPage(c *gin.Context) {
	identity, err := ac.auth.IsAuthenticated(c.Request)
	if err != nil {
		renderError(c, nil, http.StatusInternalServerError, err)
		return
	}
	c.HTML(http.StatusOK, "login.html", LoginPage{
		Page:     Page{Title: "log in", Identity: identity},
		ReturnTo: safeReturnTo(c.Query("returnTo")),
	})
}

// Start redirects to the provider. State and PKCE verifier travel in a
// short-lived signed cookie.
func (ac *AuthController) Start(c *gin.Context) {
	state := utils.GenerateID()
	verifier := oauth2.GenerateVerifier()

	stateToken, err := ac.auth.GenerateStateToken(state, verifier, safeReturnTo(c.Query("returnTo")))
	if err != nil {
		renderError(c, nil, http.StatusInternalServerError, err)
		return
	}

	utils.SetCookie(c, services.StateCookieName, stateToken, 600, ac.cookieSecure)
	c.Redirect(http.StatusFound, ac.provider.AuthCodeURL(state, verifier))
}

// Callback finishes the login, stores the user and sets the session cookie
func (ac *AuthController) Callback(c *gin.Context) {
	stateCookie, err := c.Cookie(services.StateCookieName)
	utils.ClearCookie(c, services.StateCookieName, ac.cookieSecure)
	if err != nil {
		c.Redirect(http.StatusFound, "/login")
		return
	}

	claims, err := ac.auth.ValidateStateToken(stateCookie)
	if err != nil || claims.State != c.Query("state") {
		slog.Warn("oauth callback with invalid state", "err", err)
		c.Redirect(http.StatusFound, "/login")
		return
	}

	code := c.Query("code")
	if code == "" {
		// the visitor declined at the provider
		c.Redirect(http.StatusFound, loginURL(claims.ReturnTo))
		return
	}

	user, err := ac.provider.Exchange(c.Request.Context(), code, claims.Verifier)
	if err != nil {
		slog.Warn("oauth exchange failed", "err", err)
		c.Redirect(http.StatusFound, loginURL(claims.ReturnTo))
		return
	}

	token, expiresAt, err := ac.auth.Login(c.Request.Context(), *user)
	if err != nil {
		renderError(c, nil, http.StatusInternalServerError, err)
		return
	}

	utils.SetCookie(c, services.SessionCookieName, token, int(time.Until(expiresAt).Seconds()), ac.cookieSecure)
	monitoring.LoginsCompleted.Inc()
	slog.Info("user logged in", "userId", user.ID)
	c.Redirect(http.StatusFound, safeReturnTo(claims.ReturnTo))
}

// Logout drops the session cookie and goes home
func (ac *AuthController) Logout(c *gin.Context) {
	utils.ClearCookie(c, services.SessionCookieName, ac.cookieSecure)
	c.Redirect(http.StatusFound, "/")
}
