package creator

import (
	"context"
	"strings"

	"golang.org/x/oauth2"
)

// NewTokenSource exchanges a long-lived refresh token for access tokens at
// the accounts server, caching each token until it expires.
func NewTokenSource(ctx context.Context, accountsURL, clientID, clientSecret, refreshToken string) oauth2.TokenSource {
	conf := &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		Endpoint: oauth2.Endpoint{
			TokenURL:  strings.TrimRight(accountsURL, "/") + "/oauth/v2/token",
			AuthStyle: oauth2.AuthStyleInParams,
		},
	}
	return conf.TokenSource(ctx, &oauth2.Token{RefreshToken: refreshToken})
}
