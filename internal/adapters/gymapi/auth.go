package gymapi

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

// Credential selects how the client authenticates against the gym API:
// a static bearer token, or OAuth2 client credentials when no token is
// configured. Every outgoing request carries the resulting header.
type Credential struct {
	StaticToken  string
	TokenURL     string
	ClientID     string
	ClientSecret string
	Scopes       []string
}

// TokenSource builds the oauth2 source for the configured mode.
// PRE: at least one credential mode is configured, or requests go out
// unauthenticated (local development against an open server)
// POST: Returns nil only when nothing is configured
func (c Credential) TokenSource(ctx context.Context) oauth2.TokenSource {
	if c.StaticToken != "" {
		return oauth2.StaticTokenSource(&oauth2.Token{
			AccessToken: c.StaticToken,
			TokenType:   "Bearer",
		})
	}
	if c.TokenURL != "" {
		cc := &clientcredentials.Config{
			ClientID:     c.ClientID,
			ClientSecret: c.ClientSecret,
			TokenURL:     c.TokenURL,
			Scopes:       c.Scopes,
		}
		return cc.TokenSource(ctx)
	}
	return nil
}

// StaticTokenExpiry reads the exp claim from a static bearer token without
// verifying the signature. Operators rotate tokens by hand, so startup
// warns when one is close to lapsing. Opaque (non-JWT) tokens report false.
// INVARIANT: the token is never validated here, only inspected
func StaticTokenExpiry(token string) (time.Time, bool) {
	if token == "" {
		return time.Time{}, false
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}
