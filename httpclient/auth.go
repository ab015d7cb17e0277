package httpclient

import (
	"encoding/base64"
	"net/http"
)

// AuthType identifies the authentication method.
type AuthType int

const (
	// AuthNone disables authentication.
	AuthNone AuthType = iota
	// AuthBearer sends an OAuth access token.
	AuthBearer
	// AuthBasic sends a personal access token as basic credentials.
	AuthBasic
	// AuthHeader sends a raw Authorization header value.
	AuthHeader
	// AuthCustom runs a caller-provided request modifier.
	AuthCustom
)

// AuthConfig configures request authentication.
type AuthConfig struct {
	Type AuthType
	// Token is the bearer token (AuthBearer) or the raw header value (AuthHeader).
	Token string
	// Username and Password are the basic credentials (AuthBasic). For
	// personal access tokens the username is the account id.
	Username string
	Password string
	// Apply modifies the request (AuthCustom).
	Apply func(*http.Request)
}

// BearerAuth authenticates with an access token.
func BearerAuth(token string) *AuthConfig {
	return &AuthConfig{Type: AuthBearer, Token: token}
}

// BasicAuth authenticates with basic credentials.
func BasicAuth(username, password string) *AuthConfig {
	return &AuthConfig{Type: AuthBasic, Username: username, Password: password}
}

// PersonalAccessToken authenticates with an account id and personal access
// token, sent as basic credentials.
func PersonalAccessToken(accountID, token string) *AuthConfig {
	return BasicAuth(accountID, token)
}

// HeaderAuth sets the Authorization header verbatim.
func HeaderAuth(value string) *AuthConfig {
	return &AuthConfig{Type: AuthHeader, Token: value}
}

// CustomAuth runs fn on every request.
func CustomAuth(fn func(*http.Request)) *AuthConfig {
	return &AuthConfig{Type: AuthCustom, Apply: fn}
}

// Header returns the Authorization header value this config produces, or ""
// for AuthNone and AuthCustom.
func (a *AuthConfig) Header() string {
	if a == nil {
		return ""
	}
	switch a.Type {
	case AuthBearer:
		return "Bearer " + a.Token
	case AuthBasic:
		return "Basic " + base64.StdEncoding.EncodeToString([]byte(a.Username+":"+a.Password))
	case AuthHeader:
		return a.Token
	default:
		return ""
	}
}

// apply applies authentication to an HTTP request.
func (a *AuthConfig) apply(req *http.Request) {
	if a == nil {
		return
	}
	if a.Type == AuthCustom {
		if a.Apply != nil {
			a.Apply(req)
		}
		return
	}
	if h := a.Header(); h != "" {
		req.Header.Set("Authorization", h)
	}
}
